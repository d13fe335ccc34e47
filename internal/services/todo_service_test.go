package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebgil/tandem/internal/database/testutil"
	"github.com/calebgil/tandem/internal/models"
	apperrors "github.com/calebgil/tandem/pkg/errors"
)

func TestCreateTodoRequiresPair(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewTodoService(db)
	require.NoError(t, err)

	solo := createTestUser(t, db, "solo@example.com", "Solo")
	_, err = svc.Create(testCtx(), solo.ID, TodoInput{Title: "Laundry"})
	assert.ErrorIs(t, err, apperrors.ErrNotPaired)

	partner := createTestUser(t, db, "p@example.com", "P")
	pairTestUsers(t, db, solo, partner)

	todo, err := svc.Create(testCtx(), solo.ID, TodoInput{Title: "  Laundry  "})
	require.NoError(t, err)
	assert.Equal(t, "Laundry", todo.Title)
	assert.Equal(t, models.ListTypeTodo, todo.ListType, "unknown list types fall back to todo")

	_, err = svc.Create(testCtx(), solo.ID, TodoInput{Title: "   "})
	require.Error(t, err, "blank titles are rejected")
}

func TestUpdateTodoReturnsBeforeAndAfter(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewTodoService(db)
	require.NoError(t, err)

	a := createTestUser(t, db, "a@example.com", "A")
	b := createTestUser(t, db, "b@example.com", "B")
	pairTestUsers(t, db, a, b)

	todo, err := svc.Create(testCtx(), a.ID, TodoInput{Title: "Groceries"})
	require.NoError(t, err)

	title := "Weekly groceries"
	before, after, err := svc.Update(testCtx(), b.ID, todo.ID, TodoPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", before.Title)
	assert.Equal(t, "Weekly groceries", after.Title)

	// Partner access only extends to the shared pair.
	outsider := createTestUser(t, db, "x@example.com", "X")
	other := createTestUser(t, db, "y@example.com", "Y")
	pairTestUsers(t, db, outsider, other)
	_, _, err = svc.Update(testCtx(), outsider.ID, todo.ID, TodoPatch{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateTodoClearsDueDate(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewTodoService(db)
	require.NoError(t, err)

	a := createTestUser(t, db, "a@example.com", "A")
	b := createTestUser(t, db, "b@example.com", "B")
	pairTestUsers(t, db, a, b)

	due := time.Now().Add(48 * time.Hour)
	todo, err := svc.Create(testCtx(), a.ID, TodoInput{Title: "Book table", DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, todo.DueDate)

	_, after, err := svc.Update(testCtx(), a.ID, todo.ID, TodoPatch{ClearDue: true})
	require.NoError(t, err)
	assert.Nil(t, after.DueDate)
}

func TestCompleteTodoReportsAlreadyDone(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewTodoService(db)
	require.NoError(t, err)

	a := createTestUser(t, db, "a@example.com", "A")
	b := createTestUser(t, db, "b@example.com", "B")
	pairTestUsers(t, db, a, b)

	todo, err := svc.Create(testCtx(), a.ID, TodoInput{Title: "Dishes"})
	require.NoError(t, err)

	_, alreadyDone, err := svc.Complete(testCtx(), b.ID, todo.ID)
	require.NoError(t, err)
	assert.False(t, alreadyDone)

	_, alreadyDone, err = svc.Complete(testCtx(), b.ID, todo.ID)
	require.NoError(t, err)
	assert.True(t, alreadyDone, "repeat completion must not re-notify")

	stored, err := svc.Get(testCtx(), a.ID, todo.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCompleted)
	require.NotNil(t, stored.CompletedBy)
	assert.Equal(t, b.ID, *stored.CompletedBy)
}

func TestListFiltersByListType(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewTodoService(db)
	require.NoError(t, err)

	a := createTestUser(t, db, "a@example.com", "A")
	b := createTestUser(t, db, "b@example.com", "B")
	pairTestUsers(t, db, a, b)

	_, err = svc.Create(testCtx(), a.ID, TodoInput{Title: "Task"})
	require.NoError(t, err)
	_, err = svc.Create(testCtx(), b.ID, TodoInput{Title: "Dream", ListType: models.ListTypeDream})
	require.NoError(t, err)

	all, err := svc.List(testCtx(), a.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	dreams, err := svc.List(testCtx(), a.ID, models.ListTypeDream)
	require.NoError(t, err)
	require.Len(t, dreams, 1)
	assert.Equal(t, "Dream", dreams[0].Title)
}

func TestDueForReminderWindowAndOneShot(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewTodoService(db)
	require.NoError(t, err)

	a := createTestUser(t, db, "a@example.com", "A")
	b := createTestUser(t, db, "b@example.com", "B")
	pairTestUsers(t, db, a, b)

	now := time.Now().UTC()
	inWindow := now.Add(30 * time.Minute)
	beyond := now.Add(3 * time.Hour)
	past := now.Add(-time.Minute)

	due, err := svc.Create(testCtx(), a.ID, TodoInput{Title: "due soon", DueDate: &inWindow})
	require.NoError(t, err)
	_, err = svc.Create(testCtx(), a.ID, TodoInput{Title: "far out", DueDate: &beyond})
	require.NoError(t, err)
	_, err = svc.Create(testCtx(), a.ID, TodoInput{Title: "already late", DueDate: &past})
	require.NoError(t, err)
	_, err = svc.Create(testCtx(), a.ID, TodoInput{Title: "no deadline"})
	require.NoError(t, err)

	matches, err := svc.DueForReminder(testCtx(), now, time.Hour)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, due.ID, matches[0].ID)

	require.NoError(t, svc.MarkReminderSent(testCtx(), due.ID, now))

	matches, err = svc.DueForReminder(testCtx(), now, time.Hour)
	require.NoError(t, err)
	assert.Empty(t, matches, "a reminded item never reminds twice")
}

func TestOverdueSkipsCompletedAndNotified(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewTodoService(db)
	require.NoError(t, err)

	a := createTestUser(t, db, "a@example.com", "A")
	b := createTestUser(t, db, "b@example.com", "B")
	pairTestUsers(t, db, a, b)

	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	late, err := svc.Create(testCtx(), a.ID, TodoInput{Title: "late", DueDate: &past})
	require.NoError(t, err)
	done, err := svc.Create(testCtx(), a.ID, TodoInput{Title: "done late", DueDate: &past})
	require.NoError(t, err)
	_, _, err = svc.Complete(testCtx(), a.ID, done.ID)
	require.NoError(t, err)

	matches, err := svc.Overdue(testCtx(), now)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, late.ID, matches[0].ID)

	require.NoError(t, svc.MarkOverdueNotified(testCtx(), late.ID, now))

	matches, err = svc.Overdue(testCtx(), now)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDeleteTodoReturnsRecord(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewTodoService(db)
	require.NoError(t, err)

	a := createTestUser(t, db, "a@example.com", "A")
	b := createTestUser(t, db, "b@example.com", "B")
	pairTestUsers(t, db, a, b)

	todo, err := svc.Create(testCtx(), a.ID, TodoInput{Title: "Old task"})
	require.NoError(t, err)

	deleted, err := svc.Delete(testCtx(), b.ID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old task", deleted.Title)

	_, err = svc.Get(testCtx(), a.ID, todo.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

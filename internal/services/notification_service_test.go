package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebgil/tandem/internal/database/testutil"
	"github.com/calebgil/tandem/internal/models"
	"github.com/calebgil/tandem/internal/notify"
	apperrors "github.com/calebgil/tandem/pkg/errors"
)

func TestCreateNotificationRecord(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	recipient := createTestUser(t, db, "r@example.com", "R")

	record, err := svc.Create(testCtx(), CreateInput{
		RecipientID: recipient.ID,
		Category:    notify.CategoryNudge,
		Title:       "👋 Nudge",
		Body:        "Someone is thinking of you",
		Data:        map[string]string{"k": "v"},
	})
	require.NoError(t, err)
	assert.Equal(t, "nudge", record.Type)
	assert.False(t, record.IsRead)
	assert.NotEmpty(t, record.ID)

	_, err = svc.Create(testCtx(), CreateInput{Title: "missing recipient"})
	require.Error(t, err)
}

func TestListForUserCapsLimit(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	recipient := createTestUser(t, db, "r@example.com", "R")
	for i := 0; i < maxListLimit+20; i++ {
		_, err := svc.Create(testCtx(), CreateInput{
			RecipientID: recipient.ID,
			Category:    notify.CategoryOther,
			Title:       "n",
		})
		require.NoError(t, err)
	}

	records, err := svc.ListForUser(testCtx(), recipient.ID, 10_000, 0)
	require.NoError(t, err)
	assert.Len(t, records, maxListLimit)

	records, err = svc.ListForUser(testCtx(), recipient.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, records, defaultListLimit, "zero limit uses the default")
}

func TestMarkReadOnlyByRecipient(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	recipient := createTestUser(t, db, "r@example.com", "R")
	other := createTestUser(t, db, "o@example.com", "O")

	record, err := svc.Create(testCtx(), CreateInput{
		RecipientID: recipient.ID,
		Category:    notify.CategoryOther,
		Title:       "n",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.MarkRead(testCtx(), other.ID, record.ID), apperrors.ErrNotFound)
	require.NoError(t, svc.MarkRead(testCtx(), recipient.ID, record.ID))

	var fresh models.Notification
	require.NoError(t, db.First(&fresh, "id = ?", record.ID).Error)
	assert.True(t, fresh.IsRead)
	assert.NotNil(t, fresh.ReadAt)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	recipient := createTestUser(t, db, "r@example.com", "R")
	for i := 0; i < 3; i++ {
		_, err := svc.Create(testCtx(), CreateInput{
			RecipientID: recipient.ID,
			Category:    notify.CategoryOther,
			Title:       "n",
		})
		require.NoError(t, err)
	}

	count, err := svc.UnreadCount(testCtx(), recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	updated, err := svc.MarkAllRead(testCtx(), recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	count, err = svc.UnreadCount(testCtx(), recipient.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestClearAllRemovesOnlyOwnFeed(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	a := createTestUser(t, db, "a@example.com", "A")
	b := createTestUser(t, db, "b@example.com", "B")
	for _, uid := range []string{a.ID, b.ID} {
		_, err := svc.Create(testCtx(), CreateInput{
			RecipientID: uid,
			Category:    notify.CategoryOther,
			Title:       "n",
		})
		require.NoError(t, err)
	}

	deleted, err := svc.ClearAll(testCtx(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := svc.ListForUser(testCtx(), b.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestCleanupOlderThanBatches(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	recipient := createTestUser(t, db, "r@example.com", "R")

	old := time.Now().Add(-40 * 24 * time.Hour)
	for i := 0; i < 5; i++ {
		record := models.Notification{RecipientID: recipient.ID, Type: "other", Title: "old"}
		require.NoError(t, db.Create(&record).Error)
		require.NoError(t, db.Model(&record).Update("created_at", old).Error)
	}
	_, err = svc.Create(testCtx(), CreateInput{
		RecipientID: recipient.ID,
		Category:    notify.CategoryOther,
		Title:       "fresh",
	})
	require.NoError(t, err)

	removed, err := svc.CleanupOlderThan(testCtx(), time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(5), removed)

	records, err := svc.ListForUser(testCtx(), recipient.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fresh", records[0].Title)
}

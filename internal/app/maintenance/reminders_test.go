package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/database/testutil"
	"github.com/calebgil/tandem/internal/models"
	"github.com/calebgil/tandem/internal/services"
)

type reminderFixture struct {
	todos         *services.TodoService
	notifications *services.NotificationService
	notifier      *services.Notifier
	alex          *models.User
	blair         *models.User
}

func newReminderFixture(t *testing.T, db *gorm.DB) *reminderFixture {
	t.Helper()

	users, err := services.NewUserService(db)
	require.NoError(t, err)
	pairs, err := services.NewPairService(db)
	require.NoError(t, err)
	notifications, err := services.NewNotificationService(db, nil)
	require.NoError(t, err)
	todos, err := services.NewTodoService(db)
	require.NoError(t, err)
	notifier, err := services.NewNotifier(users, pairs, notifications, nil)
	require.NoError(t, err)

	alex := seedUser(t, db, "alex@example.com")
	blair := seedUser(t, db, "blair@example.com")

	pair := models.Pair{ParticipantA: alex.ID, ParticipantB: blair.ID, Status: models.PairStatusActive}
	require.NoError(t, db.Create(&pair).Error)
	require.NoError(t, db.Model(&models.User{}).
		Where("id IN ?", []string{alex.ID, blair.ID}).
		Update("pair_id", pair.ID).Error)
	alex.PairID = &pair.ID
	blair.PairID = &pair.ID

	return &reminderFixture{
		todos:         todos,
		notifications: notifications,
		notifier:      notifier,
		alex:          alex,
		blair:         blair,
	}
}

func TestReminderSweepNotifiesBothMembersOnce(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	fx := newReminderFixture(t, db)
	ctx := context.Background()

	now := time.Now().UTC()
	dueSoon := now.Add(30 * time.Minute)
	overdue := now.Add(-2 * time.Hour)

	_, err := fx.todos.Create(ctx, fx.alex.ID, services.TodoInput{Title: "Call the vet", DueDate: &dueSoon})
	require.NoError(t, err)
	_, err = fx.todos.Create(ctx, fx.alex.ID, services.TodoInput{Title: "Pay rent", DueDate: &overdue})
	require.NoError(t, err)

	sweep := NewReminderSweep(fx.todos, fx.notifier,
		WithReminderNow(func() time.Time { return now }),
		WithReminderWindow(time.Hour),
	)

	require.NoError(t, sweep.RunOnce(ctx))

	// Scheduled reminders go to both members of the pair.
	for _, uid := range []string{fx.alex.ID, fx.blair.ID} {
		feed, err := fx.notifications.ListForUser(ctx, uid, 0, 0)
		require.NoError(t, err)
		require.Len(t, feed, 2)

		types := []string{feed[0].Type, feed[1].Type}
		assert.ElementsMatch(t, []string{"todo_due_soon", "todo_overdue"}, types)
	}

	// The one-shot flags keep a second run silent.
	require.NoError(t, sweep.RunOnce(ctx))
	feed, err := fx.notifications.ListForUser(ctx, fx.blair.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

func TestReminderSweepIgnoresCompletedItems(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	fx := newReminderFixture(t, db)
	ctx := context.Background()

	now := time.Now().UTC()
	dueSoon := now.Add(30 * time.Minute)

	todo, err := fx.todos.Create(ctx, fx.alex.ID, services.TodoInput{Title: "Already handled", DueDate: &dueSoon})
	require.NoError(t, err)
	_, _, err = fx.todos.Complete(ctx, fx.alex.ID, todo.ID)
	require.NoError(t, err)

	sweep := NewReminderSweep(fx.todos, fx.notifier,
		WithReminderNow(func() time.Time { return now }),
	)
	require.NoError(t, sweep.RunOnce(ctx))

	feed, err := fx.notifications.ListForUser(ctx, fx.blair.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

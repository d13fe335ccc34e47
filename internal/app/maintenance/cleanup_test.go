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

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", DisplayName: "Test"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestCleanerRunOnceRemovesExpiredAndStaleRows(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	pairs, err := services.NewPairService(db)
	require.NoError(t, err)
	notifications, err := services.NewNotificationService(db, nil)
	require.NoError(t, err)
	devices, err := services.NewDeviceService(db)
	require.NoError(t, err)

	owner := seedUser(t, db, "owner@example.com")
	ctx := context.Background()

	code, err := pairs.GenerateCode(ctx, owner.ID)
	require.NoError(t, err)

	record := models.Notification{RecipientID: owner.ID, Type: "other", Title: "old"}
	require.NoError(t, db.Create(&record).Error)

	_, err = devices.Register(ctx, owner.ID, "stale-token", "ios")
	require.NoError(t, err)

	// Jump the cleaner's clock far past every retention horizon.
	future := time.Now().UTC().Add(365 * 24 * time.Hour)
	cleaner := NewCleaner(pairs, notifications, devices,
		WithNow(func() time.Time { return future }),
		WithNotificationTTL(30*24*time.Hour),
		WithDeviceTokenMaxAge(90*24*time.Hour),
	)

	require.NoError(t, cleaner.RunOnce(ctx))

	var codes int64
	require.NoError(t, db.Model(&models.PairCode{}).Where("code = ?", code.Code).Count(&codes).Error)
	assert.Zero(t, codes)

	var remaining int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	tokens, err := devices.ActiveTokens(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestCleanerRunOnceKeepsRecentRows(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	pairs, err := services.NewPairService(db)
	require.NoError(t, err)
	notifications, err := services.NewNotificationService(db, nil)
	require.NoError(t, err)
	devices, err := services.NewDeviceService(db)
	require.NoError(t, err)

	owner := seedUser(t, db, "owner@example.com")
	ctx := context.Background()

	_, err = pairs.GenerateCode(ctx, owner.ID)
	require.NoError(t, err)
	record := models.Notification{RecipientID: owner.ID, Type: "other", Title: "fresh"}
	require.NoError(t, db.Create(&record).Error)
	_, err = devices.Register(ctx, owner.ID, "live-token", "ios")
	require.NoError(t, err)

	cleaner := NewCleaner(pairs, notifications, devices)
	require.NoError(t, cleaner.RunOnce(ctx))

	var codes, remaining int64
	require.NoError(t, db.Model(&models.PairCode{}).Count(&codes).Error)
	require.NoError(t, db.Model(&models.Notification{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), codes)
	assert.Equal(t, int64(1), remaining)

	tokens, err := devices.ActiveTokens(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"live-token"}, tokens)
}

func TestCleanerSkipsNilDependencies(t *testing.T) {
	cleaner := NewCleaner(nil, nil, nil)
	require.NoError(t, cleaner.RunOnce(context.Background()))
}

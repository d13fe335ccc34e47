package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calebgil/tandem/internal/models"
	apperrors "github.com/calebgil/tandem/pkg/errors"
)

// DeviceService is the device token registry backing push delivery. It
// satisfies push.TokenStore.
type DeviceService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDeviceService constructs a DeviceService.
func NewDeviceService(db *gorm.DB) (*DeviceService, error) {
	if db == nil {
		return nil, errors.New("device service: db is required")
	}
	return &DeviceService{db: db, now: time.Now}, nil
}

// Register stores or refreshes a device token. Tokens are globally unique;
// re-registering a token moves it to the new user, so a shared device always
// pushes to whoever signed in last.
func (s *DeviceService) Register(ctx context.Context, uid, token, platform string) (*models.DeviceToken, error) {
	ctx = ensureContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.NewBadRequest("device token is required")
	}

	record := models.DeviceToken{
		UserID:       uid,
		Token:        token,
		Platform:     strings.ToLower(strings.TrimSpace(platform)),
		LastActiveAt: s.now().UTC(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "last_active_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("device service: register token: %w", err)
	}

	return &record, nil
}

// Unregister removes one token owned by the user, typically on sign-out.
func (s *DeviceService) Unregister(ctx context.Context, uid, token string) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", uid, token).
		Delete(&models.DeviceToken{}).Error
	if err != nil {
		return fmt.Errorf("device service: unregister token: %w", err)
	}
	return nil
}

// ListForUser returns the user's registered devices.
func (s *DeviceService) ListForUser(ctx context.Context, uid string) ([]models.DeviceToken, error) {
	ctx = ensureContext(ctx)

	var tokens []models.DeviceToken
	err := s.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("last_active_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("device service: list tokens: %w", err)
	}
	return tokens, nil
}

// ActiveTokens returns the raw token strings registered to the user.
func (s *DeviceService) ActiveTokens(ctx context.Context, uid string) ([]string, error) {
	ctx = ensureContext(ctx)

	var values []string
	err := s.db.WithContext(ctx).
		Model(&models.DeviceToken{}).
		Where("user_id = ?", uid).
		Pluck("token", &values).Error
	if err != nil {
		return nil, fmt.Errorf("device service: load tokens: %w", err)
	}
	return values, nil
}

// RemoveTokens drops tokens the push provider reported as dead. Called by the
// dispatcher after a send, so it must tolerate tokens that are already gone.
func (s *DeviceService) RemoveTokens(ctx context.Context, uid string, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND token IN ?", uid, tokens).
		Delete(&models.DeviceToken{}).Error
	if err != nil {
		return fmt.Errorf("device service: remove tokens: %w", err)
	}
	return nil
}

// PruneStale deletes tokens that have not been active since the cutoff.
func (s *DeviceService) PruneStale(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("last_active_at < ?", cutoff).
		Delete(&models.DeviceToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("device service: prune stale tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

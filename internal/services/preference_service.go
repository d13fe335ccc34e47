package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/models"
	"github.com/calebgil/tandem/internal/notify"
	"github.com/calebgil/tandem/pkg/logger"
)

// PreferenceService owns per-user notification preferences. It backs the
// dispatcher's category gate, so lookups degrade to the all-enabled defaults
// rather than failing a send.
type PreferenceService struct {
	db *gorm.DB
}

// NewPreferenceService constructs a PreferenceService.
func NewPreferenceService(db *gorm.DB) (*PreferenceService, error) {
	if db == nil {
		return nil, errors.New("preference service: db is required")
	}
	return &PreferenceService{db: db}, nil
}

// Get returns the user's stored preferences, falling back to defaults when
// nothing has been saved yet or the stored blob is unreadable.
func (s *PreferenceService) Get(ctx context.Context, uid string) (notify.Preferences, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).Select("id", "preferences").Where("id = ?", uid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notify.DefaultPreferences(), ErrUserNotFound
		}
		return notify.DefaultPreferences(), fmt.Errorf("preference service: load user: %w", err)
	}

	return notify.DecodePreferences(user.Preferences), nil
}

// Update merges the patch into the stored preferences and persists the result.
func (s *PreferenceService) Update(ctx context.Context, uid string, patch notify.PreferencesPatch) (notify.Preferences, error) {
	ctx = ensureContext(ctx)

	prefs, err := s.Get(ctx, uid)
	if err != nil {
		return prefs, err
	}

	prefs = prefs.Apply(patch)
	if err := s.save(ctx, uid, prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// Reset restores the default preferences.
func (s *PreferenceService) Reset(ctx context.Context, uid string) (notify.Preferences, error) {
	ctx = ensureContext(ctx)

	prefs := notify.DefaultPreferences()
	if err := s.save(ctx, uid, prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// IsCategoryAllowed reports whether the user accepts pushes for the category.
// Any lookup failure falls back to allowing the send.
func (s *PreferenceService) IsCategoryAllowed(ctx context.Context, uid string, category notify.Category) bool {
	prefs, err := s.Get(ctx, uid)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		logger.WithModule("preferences").Warn("preference lookup failed, allowing send")
		return true
	}
	return prefs.Allows(category)
}

// InQuietHours reports whether the given instant falls inside the user's
// configured quiet window. Informational only; it does not block delivery.
func (s *PreferenceService) InQuietHours(ctx context.Context, uid string, now time.Time) (bool, error) {
	prefs, err := s.Get(ctx, uid)
	if err != nil {
		return false, err
	}
	return prefs.InQuietHours(now), nil
}

func (s *PreferenceService) save(ctx context.Context, uid string, prefs notify.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("preference service: encode preferences: %w", err)
	}

	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", uid).
		Update("preferences", raw)
	if result.Error != nil {
		return fmt.Errorf("preference service: save preferences: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/models"
	apperrors "github.com/calebgil/tandem/pkg/errors"
)

// MoodService records mood check-ins. Paired users share non-private entries
// with their partner through the notifier.
type MoodService struct {
	db *gorm.DB
}

// NewMoodService constructs a MoodService.
func NewMoodService(db *gorm.DB) (*MoodService, error) {
	if db == nil {
		return nil, errors.New("mood service: db is required")
	}
	return &MoodService{db: db}, nil
}

// MoodInput describes one check-in.
type MoodInput struct {
	Level     int
	Note      string
	IsPrivate bool
}

// Record stores a mood entry. Pairing is optional; unpaired entries simply
// never fan out.
func (s *MoodService) Record(ctx context.Context, uid string, input MoodInput) (*models.Mood, error) {
	ctx = ensureContext(ctx)

	if input.Level < 1 || input.Level > 5 {
		return nil, apperrors.NewBadRequest("mood level must be between 1 and 5")
	}

	var user models.User
	err := s.db.WithContext(ctx).Select("id", "pair_id").Where("id = ?", uid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("mood service: load user: %w", err)
	}

	mood := models.Mood{
		UserID:    uid,
		PairID:    user.PairID,
		Level:     input.Level,
		Note:      input.Note,
		IsPrivate: input.IsPrivate,
	}
	if err := s.db.WithContext(ctx).Create(&mood).Error; err != nil {
		return nil, fmt.Errorf("mood service: create: %w", err)
	}
	return &mood, nil
}

// History returns the caller's own mood entries, newest first.
func (s *MoodService) History(ctx context.Context, uid string, limit int) ([]models.Mood, error) {
	ctx = ensureContext(ctx)

	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}

	var moods []models.Mood
	err := s.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("created_at DESC").
		Limit(limit).
		Find(&moods).Error
	if err != nil {
		return nil, fmt.Errorf("mood service: history: %w", err)
	}
	return moods, nil
}

// PartnerLatest returns the partner's most recent non-private entry.
func (s *MoodService) PartnerLatest(ctx context.Context, partnerID string) (*models.Mood, error) {
	ctx = ensureContext(ctx)

	var mood models.Mood
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_private = ?", partnerID, false).
		Order("created_at DESC").
		First(&mood).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("mood service: partner latest: %w", err)
	}
	return &mood, nil
}

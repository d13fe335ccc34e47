package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/models"
	apperrors "github.com/calebgil/tandem/pkg/errors"
)

// FavoriteService manages the pair's shared bookmarks.
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(db *gorm.DB) (*FavoriteService, error) {
	if db == nil {
		return nil, errors.New("favorite service: db is required")
	}
	return &FavoriteService{db: db}, nil
}

// FavoriteInput describes one shared bookmark.
type FavoriteInput struct {
	Title    string
	Category string
	URL      string
	Note     string
}

// Add stores a bookmark on the caller's shared list. Requires an active pair.
func (s *FavoriteService) Add(ctx context.Context, uid string, input FavoriteInput) (*models.Favorite, error) {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}

	pairID, err := s.requirePair(ctx, uid)
	if err != nil {
		return nil, err
	}

	favorite := models.Favorite{
		PairID:   pairID,
		UserID:   uid,
		Title:    strings.TrimSpace(input.Title),
		Category: input.Category,
		URL:      input.URL,
		Note:     input.Note,
	}
	if err := s.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		return nil, fmt.Errorf("favorite service: create: %w", err)
	}
	return &favorite, nil
}

// List returns the pair's bookmarks, newest first.
func (s *FavoriteService) List(ctx context.Context, uid string) ([]models.Favorite, error) {
	ctx = ensureContext(ctx)

	pairID, err := s.requirePair(ctx, uid)
	if err != nil {
		return nil, err
	}

	var favorites []models.Favorite
	err = s.db.WithContext(ctx).
		Where("pair_id = ?", pairID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("favorite service: list: %w", err)
	}
	return favorites, nil
}

// Remove deletes one bookmark from the shared list.
func (s *FavoriteService) Remove(ctx context.Context, uid, favoriteID string) error {
	ctx = ensureContext(ctx)

	pairID, err := s.requirePair(ctx, uid)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND pair_id = ?", favoriteID, pairID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("favorite service: delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *FavoriteService) requirePair(ctx context.Context, uid string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("id", "pair_id").Where("id = ?", uid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("favorite service: load user: %w", err)
	}
	if user.PairID == nil || *user.PairID == "" {
		return "", apperrors.ErrNotPaired
	}
	return *user.PairID, nil
}

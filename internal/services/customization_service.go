package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/models"
	"github.com/calebgil/tandem/internal/notify"
	apperrors "github.com/calebgil/tandem/pkg/errors"
)

// CustomizationService owns per-user notification appearance settings.
type CustomizationService struct {
	db *gorm.DB
}

// NewCustomizationService constructs a CustomizationService.
func NewCustomizationService(db *gorm.DB) (*CustomizationService, error) {
	if db == nil {
		return nil, errors.New("customization service: db is required")
	}
	return &CustomizationService{db: db}, nil
}

// Get returns the user's stored customization, or the default preset when
// nothing has been saved yet.
func (s *CustomizationService) Get(ctx context.Context, uid string) (notify.Customization, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).Select("id", "customization").Where("id = ?", uid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notify.DefaultCustomization(), ErrUserNotFound
		}
		return notify.DefaultCustomization(), fmt.Errorf("customization service: load user: %w", err)
	}

	return notify.DecodeCustomization(user.Customization), nil
}

// ApplyPreset replaces the whole customization with the named preset and
// records it as active.
func (s *CustomizationService) ApplyPreset(ctx context.Context, uid, presetID string) (notify.Customization, error) {
	ctx = ensureContext(ctx)

	if !notify.KnownPreset(presetID) {
		return notify.Customization{}, apperrors.NewBadRequest(fmt.Sprintf("unknown preset %q", presetID))
	}
	preset := notify.PresetByID(presetID)

	if err := s.save(ctx, uid, preset); err != nil {
		return preset, err
	}
	return preset, nil
}

// Update merges the patch into the stored customization. Any manual edit
// clears the active preset marker.
func (s *CustomizationService) Update(ctx context.Context, uid string, patch notify.CustomizationPatch) (notify.Customization, error) {
	ctx = ensureContext(ctx)

	custom, err := s.Get(ctx, uid)
	if err != nil {
		return custom, err
	}

	custom = custom.Apply(patch)
	if err := s.save(ctx, uid, custom); err != nil {
		return custom, err
	}
	return custom, nil
}

// UpdateGroupColors overrides the color set for one style group.
func (s *CustomizationService) UpdateGroupColors(ctx context.Context, uid, group string, patch notify.ColorSetPatch) (notify.Customization, error) {
	ctx = ensureContext(ctx)

	custom, err := s.Get(ctx, uid)
	if err != nil {
		return custom, err
	}

	custom = custom.ApplyGroupColors(group, patch)
	if err := s.save(ctx, uid, custom); err != nil {
		return custom, err
	}
	return custom, nil
}

// UpdateGroupStyle overrides the visual style for one style group.
func (s *CustomizationService) UpdateGroupStyle(ctx context.Context, uid, group string, style notify.VisualStyle) (notify.Customization, error) {
	ctx = ensureContext(ctx)

	if !notify.ValidStyle(style) {
		return notify.Customization{}, apperrors.NewBadRequest(fmt.Sprintf("unknown visual style %q", style))
	}

	custom, err := s.Get(ctx, uid)
	if err != nil {
		return custom, err
	}

	custom = custom.ApplyGroupStyle(group, style)
	if err := s.save(ctx, uid, custom); err != nil {
		return custom, err
	}
	return custom, nil
}

// Reset restores the default preset.
func (s *CustomizationService) Reset(ctx context.Context, uid string) (notify.Customization, error) {
	ctx = ensureContext(ctx)

	custom := notify.DefaultCustomization()
	if err := s.save(ctx, uid, custom); err != nil {
		return custom, err
	}
	return custom, nil
}

// StyleForCategory resolves the effective visual style for a notification
// category, honouring per-group overrides.
func (s *CustomizationService) StyleForCategory(ctx context.Context, uid string, category notify.Category) (notify.VisualStyle, error) {
	custom, err := s.Get(ctx, uid)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", err
	}
	return custom.StyleForCategory(category), nil
}

// ColorsForCategory resolves the effective color set for a notification
// category.
func (s *CustomizationService) ColorsForCategory(ctx context.Context, uid string, category notify.Category) (notify.ColorSet, error) {
	custom, err := s.Get(ctx, uid)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return notify.ColorSet{}, err
	}
	return custom.ColorsForCategory(category), nil
}

func (s *CustomizationService) save(ctx context.Context, uid string, custom notify.Customization) error {
	raw, err := json.Marshal(custom)
	if err != nil {
		return fmt.Errorf("customization service: encode customization: %w", err)
	}

	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", uid).
		Update("customization", raw)
	if result.Error != nil {
		return fmt.Errorf("customization service: save customization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/models"
	"github.com/calebgil/tandem/internal/notify"
	apperrors "github.com/calebgil/tandem/pkg/errors"
)

// UserService manages accounts and profile data.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

// RegisterInput holds the attributes required to create an account.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Register creates a new account with a hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperrors.NewBadRequest("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	user := models.User{
		Email:       email,
		Password:    string(hash),
		DisplayName: strings.TrimSpace(input.DisplayName),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies the email/password pair and returns the account.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("user service: load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// Get loads a user by id.
func (s *UserService) Get(ctx context.Context, uid string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", uid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user service: load user: %w", err)
	}
	return &user, nil
}

// DisplayName resolves a user's display name with the generic fallback used
// in notification wording when the profile is incomplete or missing.
func (s *UserService) DisplayName(ctx context.Context, uid string) string {
	user, err := s.Get(ctx, uid)
	if err != nil || strings.TrimSpace(user.DisplayName) == "" {
		return notify.FallbackActorName
	}
	return user.DisplayName
}

// ProfilePatch carries a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// UpdateProfile applies the patch and reports whether anything changed.
func (s *UserService) UpdateProfile(ctx context.Context, uid string, patch ProfilePatch) (*models.User, bool, error) {
	ctx = ensureContext(ctx)

	user, err := s.Get(ctx, uid)
	if err != nil {
		return nil, false, err
	}

	updates := map[string]any{}
	if patch.DisplayName != nil && strings.TrimSpace(*patch.DisplayName) != user.DisplayName {
		updates["display_name"] = strings.TrimSpace(*patch.DisplayName)
	}
	if patch.AvatarURL != nil && *patch.AvatarURL != user.AvatarURL {
		updates["avatar_url"] = *patch.AvatarURL
	}

	if len(updates) == 0 {
		return user, false, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, false, fmt.Errorf("user service: update profile: %w", err)
	}

	return user, true, nil
}

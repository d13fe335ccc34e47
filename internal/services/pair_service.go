package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/models"
	apperrors "github.com/calebgil/tandem/pkg/errors"
	"github.com/calebgil/tandem/pkg/metrics"
)

// Codes avoid 0/O, 1/I/L so they survive being read out loud.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	codeLength        = 8
	codeTTL           = 10 * time.Minute
	codeMintRetries   = 5
	codeRateLimit     = 5
	codeRateLimitSpan = time.Hour
)

// PairService owns the pairing lifecycle: minting invitation codes, redeeming
// them atomically into an active pair, and dissolving pairs.
type PairService struct {
	db  *gorm.DB
	now func() time.Time
}

// PairOption customises a PairService.
type PairOption func(*PairService)

// WithPairNow overrides the clock, used by tests.
func WithPairNow(now func() time.Time) PairOption {
	return func(s *PairService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPairService constructs a PairService.
func NewPairService(db *gorm.DB, opts ...PairOption) (*PairService, error) {
	if db == nil {
		return nil, errors.New("pair service: db is required")
	}
	s := &PairService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetPair loads a pair by id.
func (s *PairService) GetPair(ctx context.Context, pairID string) (*models.Pair, error) {
	ctx = ensureContext(ctx)

	var pair models.Pair
	err := s.db.WithContext(ctx).Where("id = ?", pairID).First(&pair).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("pair service: load pair: %w", err)
	}
	return &pair, nil
}

// PartnerID resolves the other member of the user's pair. It returns "" with
// no error when the user is unpaired or the pair record is missing, so
// notification triggers can skip partner fan-out silently.
func (s *PairService) PartnerID(ctx context.Context, uid string, pairID *string) (string, error) {
	if pairID == nil || *pairID == "" {
		return "", nil
	}
	ctx = ensureContext(ctx)

	var pair models.Pair
	err := s.db.WithContext(ctx).Where("id = ?", *pairID).First(&pair).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("pair service: load pair: %w", err)
	}
	if pair.Status != models.PairStatusActive {
		return "", nil
	}
	return pair.OtherParticipant(uid), nil
}

// GenerateCode mints a pairing code for an unpaired user. An unexpired,
// unused code is reissued instead of minting a new one, and minting is
// rate-limited per owner.
func (s *PairService) GenerateCode(ctx context.Context, uid string) (*models.PairCode, error) {
	ctx = ensureContext(ctx)
	now := s.now().UTC()

	user, err := s.loadUser(ctx, s.db, uid)
	if err != nil {
		return nil, err
	}
	if user.PairID != nil {
		return nil, apperrors.ErrAlreadyPaired
	}

	var existing models.PairCode
	err = s.db.WithContext(ctx).
		Where("owner_id = ? AND used = ? AND expires_at > ?", uid, false, now).
		Order("expires_at DESC").
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("pair service: load existing code: %w", err)
	}

	var recent int64
	err = s.db.WithContext(ctx).
		Model(&models.PairCode{}).
		Where("owner_id = ? AND created_at > ?", uid, now.Add(-codeRateLimitSpan)).
		Count(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("pair service: count recent codes: %w", err)
	}
	if recent >= codeRateLimit {
		return nil, apperrors.ErrResourceExhausted
	}

	for attempt := 0; attempt < codeMintRetries; attempt++ {
		code, err := randomCode(codeLength)
		if err != nil {
			return nil, fmt.Errorf("pair service: generate code: %w", err)
		}

		record := models.PairCode{
			Code:      code,
			OwnerID:   uid,
			ExpiresAt: now.Add(codeTTL),
		}
		err = s.db.WithContext(ctx).Create(&record).Error
		if err == nil {
			return &record, nil
		}
		if !isUniqueConstraintError(err) {
			return nil, fmt.Errorf("pair service: store code: %w", err)
		}
	}

	return nil, apperrors.ErrInternalServer.WithInternal(errors.New("pair service: code space exhausted"))
}

// RedeemResult describes a successful redemption for downstream fan-out.
type RedeemResult struct {
	Pair       *models.Pair
	OwnerID    string
	RedeemerID string
}

// RedeemCode redeems a pairing code inside one transaction: the code flips to
// used, the pair row is created, and both users gain the pair id, or none of
// it happens. A lost race against a concurrent redeemer surfaces as code_used.
func (s *PairService) RedeemCode(ctx context.Context, uid, rawCode string) (*RedeemResult, error) {
	ctx = ensureContext(ctx)
	now := s.now().UTC()
	code := strings.ToUpper(strings.TrimSpace(rawCode))

	var result RedeemResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.PairCode
		err := tx.Where("code = ?", code).First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New("pairing.code_invalid", "Invalid pairing code", http.StatusNotFound)
			}
			return fmt.Errorf("load code: %w", err)
		}

		if record.Used {
			return apperrors.ErrCodeUsed
		}
		if record.Expired(now) {
			return apperrors.ErrCodeExpired
		}
		if record.OwnerID == uid {
			return apperrors.ErrSelfPairing
		}

		redeemer, err := s.loadUser(ctx, tx, uid)
		if err != nil {
			return err
		}
		owner, err := s.loadUser(ctx, tx, record.OwnerID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return apperrors.ErrPartnerNotFound
			}
			return err
		}
		if redeemer.PairID != nil || owner.PairID != nil {
			return apperrors.ErrAlreadyPaired
		}

		pair := models.Pair{
			ParticipantA: owner.ID,
			ParticipantB: redeemer.ID,
			Status:       models.PairStatusActive,
		}
		if err := tx.Create(&pair).Error; err != nil {
			return fmt.Errorf("create pair: %w", err)
		}

		// Guarded update wins over concurrent redeemers of the same code.
		claim := tx.Model(&models.PairCode{}).
			Where("code = ? AND used = ?", code, false).
			Updates(map[string]any{"used": true, "pair_id": pair.ID})
		if claim.Error != nil {
			return fmt.Errorf("claim code: %w", claim.Error)
		}
		if claim.RowsAffected == 0 {
			return apperrors.ErrCodeUsed
		}

		err = tx.Model(&models.User{}).
			Where("id IN ?", []string{owner.ID, redeemer.ID}).
			Update("pair_id", pair.ID).Error
		if err != nil {
			return fmt.Errorf("link users: %w", err)
		}

		result = RedeemResult{Pair: &pair, OwnerID: owner.ID, RedeemerID: redeemer.ID}
		return nil
	})
	if err != nil {
		metrics.PairRedemptions.WithLabelValues("error").Inc()
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, fmt.Errorf("pair service: redeem code: %w", err)
	}

	metrics.PairRedemptions.WithLabelValues("ok").Inc()
	return &result, nil
}

// Unpair dissolves the caller's pair and detaches both members.
func (s *PairService) Unpair(ctx context.Context, uid string) error {
	ctx = ensureContext(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.loadUser(ctx, tx, uid)
		if err != nil {
			return err
		}
		if user.PairID == nil {
			return apperrors.ErrNotPaired
		}

		err = tx.Model(&models.Pair{}).
			Where("id = ?", *user.PairID).
			Update("status", models.PairStatusDissolved).Error
		if err != nil {
			return fmt.Errorf("pair service: dissolve pair: %w", err)
		}

		err = tx.Model(&models.User{}).
			Where("pair_id = ?", *user.PairID).
			Update("pair_id", nil).Error
		if err != nil {
			return fmt.Errorf("pair service: detach users: %w", err)
		}
		return nil
	})
}

// CleanupExpiredCodes removes codes past their expiry and returns the count.
func (s *PairService) CleanupExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.PairCode{})
	if result.Error != nil {
		return 0, fmt.Errorf("pair service: cleanup codes: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *PairService) loadUser(ctx context.Context, tx *gorm.DB, uid string) (*models.User, error) {
	var user models.User
	err := tx.WithContext(ctx).Where("id = ?", uid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("pair service: load user: %w", err)
	}
	return &user, nil
}

func randomCode(length int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

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
	"github.com/calebgil/tandem/internal/realtime"
	apperrors "github.com/calebgil/tandem/pkg/errors"
	"github.com/calebgil/tandem/pkg/metrics"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100

	cleanupBatchSize = 500
)

// NotificationService owns the in-app notification feed. Records are written
// independently of push delivery so the feed stays complete even when the
// push provider is down or the recipient has muted the category.
type NotificationService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

// NewNotificationService constructs a NotificationService. The hub is
// optional; without it records are still written, just not streamed.
func NewNotificationService(db *gorm.DB, hub *realtime.Hub) (*NotificationService, error) {
	if db == nil {
		return nil, errors.New("notification service: db is required")
	}
	return &NotificationService{db: db, hub: hub}, nil
}

// CreateInput describes one notification record.
type CreateInput struct {
	RecipientID string
	SenderID    *string
	PairID      *string
	Category    notify.Category
	Title       string
	Body        string
	Data        map[string]string
}

// Create writes a notification record and streams it to the recipient's
// connected clients.
func (s *NotificationService) Create(ctx context.Context, input CreateInput) (*models.Notification, error) {
	ctx = ensureContext(ctx)

	if input.RecipientID == "" {
		return nil, apperrors.NewBadRequest("recipient is required")
	}
	if input.Title == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}

	record := models.Notification{
		RecipientID: input.RecipientID,
		SenderID:    input.SenderID,
		PairID:      input.PairID,
		Type:        string(input.Category),
		Title:       input.Title,
		Body:        input.Body,
	}
	if record.Type == "" {
		record.Type = string(notify.CategoryOther)
	}
	if len(input.Data) > 0 {
		raw, err := json.Marshal(input.Data)
		if err != nil {
			return nil, fmt.Errorf("notification service: encode data: %w", err)
		}
		record.Data = raw
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("notification service: create record: %w", err)
	}

	metrics.NotificationsCreated.WithLabelValues(record.Type).Inc()

	if s.hub != nil {
		s.hub.BroadcastToUser(record.RecipientID, realtime.Message{
			Event: "notification",
			Data:  record,
		})
	}

	return &record, nil
}

// ListForUser returns the recipient's feed, newest first. The limit is capped
// so one request cannot drag the whole history across the wire.
func (s *NotificationService) ListForUser(ctx context.Context, uid string, limit, offset int) ([]models.Notification, error) {
	ctx = ensureContext(ctx)

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var records []models.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_id = ?", uid).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("notification service: list records: %w", err)
	}
	return records, nil
}

// UnreadCount returns the number of unread records in the recipient's feed.
func (s *NotificationService) UnreadCount(ctx context.Context, uid string) (int64, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", uid, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("notification service: count unread: %w", err)
	}
	return count, nil
}

// MarkRead flags a single record as read. Only the recipient can do so.
func (s *NotificationService) MarkRead(ctx context.Context, uid, notificationID string) error {
	ctx = ensureContext(ctx)

	now := time.Now().UTC()
	result := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, uid).
		Updates(map[string]any{"is_read": true, "read_at": now})
	if result.Error != nil {
		return fmt.Errorf("notification service: mark read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkAllRead flags every unread record for the recipient and returns how
// many were affected.
func (s *NotificationService) MarkAllRead(ctx context.Context, uid string) (int64, error) {
	ctx = ensureContext(ctx)

	now := time.Now().UTC()
	result := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", uid, false).
		Updates(map[string]any{"is_read": true, "read_at": now})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: mark all read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Delete removes a single record from the recipient's feed.
func (s *NotificationService) Delete(ctx context.Context, uid, notificationID string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", notificationID, uid).
		Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("notification service: delete record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearAll empties the recipient's feed.
func (s *NotificationService) ClearAll(ctx context.Context, uid string) (int64, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("recipient_id = ?", uid).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: clear feed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CleanupOlderThan deletes records created before the cutoff in bounded
// batches so the sweep never holds a long transaction over a hot table.
func (s *NotificationService) CleanupOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)

	var total int64
	for {
		var ids []string
		err := s.db.WithContext(ctx).
			Model(&models.Notification{}).
			Where("created_at < ?", cutoff).
			Limit(cleanupBatchSize).
			Pluck("id", &ids).Error
		if err != nil {
			return total, fmt.Errorf("notification service: select stale records: %w", err)
		}
		if len(ids) == 0 {
			return total, nil
		}

		result := s.db.WithContext(ctx).
			Where("id IN ?", ids).
			Delete(&models.Notification{})
		if result.Error != nil {
			return total, fmt.Errorf("notification service: delete stale records: %w", result.Error)
		}
		total += result.RowsAffected

		if len(ids) < cleanupBatchSize {
			return total, nil
		}
	}
}

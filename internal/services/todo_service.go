package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/models"
	apperrors "github.com/calebgil/tandem/pkg/errors"
)

// TodoService manages the shared task and dream lists. It is the main
// producer of notification events; handlers run the matching notifier trigger
// after each successful mutation.
type TodoService struct {
	db *gorm.DB
}

// NewTodoService constructs a TodoService.
func NewTodoService(db *gorm.DB) (*TodoService, error) {
	if db == nil {
		return nil, errors.New("todo service: db is required")
	}
	return &TodoService{db: db}, nil
}

// TodoInput describes a new list item.
type TodoInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string
	Category    string
	ListType    string
	Subtasks    json.RawMessage
}

// Create adds an item to the caller's shared list. Requires an active pair.
func (s *TodoService) Create(ctx context.Context, uid string, input TodoInput) (*models.Todo, error) {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}

	pairID, err := s.requirePair(ctx, uid)
	if err != nil {
		return nil, err
	}

	listType := input.ListType
	if listType != models.ListTypeDream {
		listType = models.ListTypeTodo
	}

	todo := models.Todo{
		PairID:      pairID,
		CreatorID:   uid,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Category:    input.Category,
		ListType:    listType,
	}
	if len(input.Subtasks) > 0 {
		todo.Subtasks = []byte(input.Subtasks)
	}

	if err := s.db.WithContext(ctx).Create(&todo).Error; err != nil {
		return nil, fmt.Errorf("todo service: create: %w", err)
	}
	return &todo, nil
}

// TodoPatch carries a partial update; nil fields are left untouched.
type TodoPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	DueDate     *time.Time       `json:"due_date"`
	ClearDue    bool             `json:"clear_due_date"`
	Priority    *string          `json:"priority"`
	Category    *string          `json:"category"`
	IsCompleted *bool            `json:"is_completed"`
	Subtasks    *json.RawMessage `json:"subtasks"`
}

// Update applies the patch and returns the item before and after, so the
// notifier can diff them into at most one notification.
func (s *TodoService) Update(ctx context.Context, uid, todoID string, patch TodoPatch) (before, after *models.Todo, err error) {
	ctx = ensureContext(ctx)

	current, err := s.getForUser(ctx, uid, todoID)
	if err != nil {
		return nil, nil, err
	}
	prev := *current

	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.ClearDue {
		updates["due_date"] = nil
	} else if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.IsCompleted != nil {
		updates["is_completed"] = *patch.IsCompleted
		if *patch.IsCompleted {
			updates["completed_by"] = uid
		} else {
			updates["completed_by"] = nil
		}
	}
	if patch.Subtasks != nil {
		updates["subtasks"] = []byte(*patch.Subtasks)
	}

	if len(updates) == 0 {
		return &prev, current, nil
	}

	if err := s.db.WithContext(ctx).Model(current).Updates(updates).Error; err != nil {
		return nil, nil, fmt.Errorf("todo service: update: %w", err)
	}

	updated, err := s.getForUser(ctx, uid, todoID)
	if err != nil {
		return nil, nil, err
	}
	return &prev, updated, nil
}

// Complete marks an item done by the caller. Returns whether it was already
// completed, in which case no notification should fire.
func (s *TodoService) Complete(ctx context.Context, uid, todoID string) (*models.Todo, bool, error) {
	ctx = ensureContext(ctx)

	todo, err := s.getForUser(ctx, uid, todoID)
	if err != nil {
		return nil, false, err
	}
	if todo.IsCompleted {
		return todo, true, nil
	}

	updates := map[string]any{"is_completed": true, "completed_by": uid}
	if err := s.db.WithContext(ctx).Model(todo).Updates(updates).Error; err != nil {
		return nil, false, fmt.Errorf("todo service: complete: %w", err)
	}
	return todo, false, nil
}

// Delete removes an item from the shared list and returns the deleted record
// for notification wording.
func (s *TodoService) Delete(ctx context.Context, uid, todoID string) (*models.Todo, error) {
	ctx = ensureContext(ctx)

	todo, err := s.getForUser(ctx, uid, todoID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(todo).Error; err != nil {
		return nil, fmt.Errorf("todo service: delete: %w", err)
	}
	return todo, nil
}

// List returns the caller's shared list, optionally filtered by list type.
func (s *TodoService) List(ctx context.Context, uid, listType string) ([]models.Todo, error) {
	ctx = ensureContext(ctx)

	pairID, err := s.requirePair(ctx, uid)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Where("pair_id = ?", pairID)
	if listType != "" {
		query = query.Where("list_type = ?", listType)
	}

	var todos []models.Todo
	if err := query.Order("created_at DESC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("todo service: list: %w", err)
	}
	return todos, nil
}

// Get returns one item the caller can see.
func (s *TodoService) Get(ctx context.Context, uid, todoID string) (*models.Todo, error) {
	return s.getForUser(ensureContext(ctx), uid, todoID)
}

// DueForReminder returns incomplete items due within the window that have not
// been reminded yet.
func (s *TodoService) DueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]models.Todo, error) {
	ctx = ensureContext(ctx)

	var todos []models.Todo
	err := s.db.WithContext(ctx).
		Where("is_completed = ?", false).
		Where("due_date IS NOT NULL AND due_date > ? AND due_date <= ?", now, now.Add(window)).
		Where("reminder_sent_at IS NULL").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("todo service: due reminders: %w", err)
	}
	return todos, nil
}

// Overdue returns incomplete items past their due date that have not been
// flagged overdue yet.
func (s *TodoService) Overdue(ctx context.Context, now time.Time) ([]models.Todo, error) {
	ctx = ensureContext(ctx)

	var todos []models.Todo
	err := s.db.WithContext(ctx).
		Where("is_completed = ?", false).
		Where("due_date IS NOT NULL AND due_date <= ?", now).
		Where("overdue_notified_at IS NULL").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("todo service: overdue: %w", err)
	}
	return todos, nil
}

// MarkReminderSent stamps the one-shot reminder flag.
func (s *TodoService) MarkReminderSent(ctx context.Context, todoID string, at time.Time) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).
		Model(&models.Todo{}).
		Where("id = ?", todoID).
		Update("reminder_sent_at", at).Error
	if err != nil {
		return fmt.Errorf("todo service: mark reminded: %w", err)
	}
	return nil
}

// MarkOverdueNotified stamps the one-shot overdue flag.
func (s *TodoService) MarkOverdueNotified(ctx context.Context, todoID string, at time.Time) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).
		Model(&models.Todo{}).
		Where("id = ?", todoID).
		Update("overdue_notified_at", at).Error
	if err != nil {
		return fmt.Errorf("todo service: mark overdue notified: %w", err)
	}
	return nil
}

func (s *TodoService) requirePair(ctx context.Context, uid string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("id", "pair_id").Where("id = ?", uid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("todo service: load user: %w", err)
	}
	if user.PairID == nil || *user.PairID == "" {
		return "", apperrors.ErrNotPaired
	}
	return *user.PairID, nil
}

func (s *TodoService) getForUser(ctx context.Context, uid, todoID string) (*models.Todo, error) {
	pairID, err := s.requirePair(ctx, uid)
	if err != nil {
		return nil, err
	}

	var todo models.Todo
	err = s.db.WithContext(ctx).Where("id = ? AND pair_id = ?", todoID, pairID).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("todo service: load todo: %w", err)
	}
	return &todo, nil
}

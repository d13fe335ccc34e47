package models

import (
	"time"

	"gorm.io/datatypes"
)

// Todo list types. Dream items get their own notification wording.
const (
	ListTypeTodo  = "todo"
	ListTypeDream = "dream"
)

// Todo is a shared task visible to both pair members.
type Todo struct {
	BaseModel

	PairID    string `gorm:"type:uuid;not null;index" json:"pair_id"`
	CreatorID string `gorm:"type:uuid;not null" json:"creator_id"`

	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"index" json:"due_date"`
	Priority    string     `gorm:"type:varchar(16)" json:"priority"`
	Category    string     `gorm:"type:varchar(64)" json:"category"`
	ListType    string     `gorm:"type:varchar(16);default:'todo'" json:"list_type"`

	IsCompleted bool    `gorm:"default:false" json:"is_completed"`
	CompletedBy *string `gorm:"type:uuid" json:"completed_by"`

	Subtasks datatypes.JSON `json:"subtasks"`

	// One-shot flags stamped by the due-reminder sweep so an item is never
	// re-notified on subsequent runs.
	ReminderSentAt    *time.Time `json:"reminder_sent_at"`
	OverdueNotifiedAt *time.Time `json:"overdue_notified_at"`
}

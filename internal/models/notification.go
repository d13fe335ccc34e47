package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an in-app notification record. Content is immutable once
// created; only the read flag transitions and deletion mutate it.
type Notification struct {
	BaseModel

	RecipientID string  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	SenderID    *string `gorm:"type:uuid" json:"sender_id"`
	PairID      *string `gorm:"type:uuid;index" json:"pair_id"`

	Type  string         `gorm:"type:varchar(64);not null" json:"type"`
	Title string         `gorm:"type:varchar(255);not null" json:"title"`
	Body  string         `gorm:"type:text" json:"body"`
	Data  datatypes.JSON `json:"data"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`
}

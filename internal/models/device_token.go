package models

import "time"

// DeviceToken is a registered push delivery token for one physical device.
// Deleted when the provider reports it unregistered or after 90 days idle.
type DeviceToken struct {
	BaseModel

	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Token        string    `gorm:"uniqueIndex;not null" json:"-"`
	Platform     string    `gorm:"type:varchar(16)" json:"platform"`
	LastActiveAt time.Time `gorm:"index" json:"last_active_at"`
}

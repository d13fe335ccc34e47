package models

import (
	"gorm.io/datatypes"
)

// User describes an account in the companion app. PairID is null until the user
// redeems (or owns a redeemed) pairing code and is cleared again on unpair.
type User struct {
	BaseModel

	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`

	PairID *string `gorm:"type:uuid;index" json:"pair_id"`

	// Notification preferences and visual customization, persisted as JSON blobs
	// and normalised into typed structures by the preference services.
	Preferences   datatypes.JSON `json:"preferences"`
	Customization datatypes.JSON `json:"customization"`
}

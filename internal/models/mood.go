package models

// Mood captures one user's mood entry. Private entries never notify the partner.
type Mood struct {
	BaseModel

	UserID string  `gorm:"type:uuid;not null;index" json:"user_id"`
	PairID *string `gorm:"type:uuid;index" json:"pair_id"`

	Level     int    `gorm:"not null" json:"level"` // 1 (low) .. 5 (great)
	Note      string `gorm:"type:text" json:"note"`
	IsPrivate bool   `gorm:"default:false" json:"is_private"`
}

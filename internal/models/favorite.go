package models

// Favorite is a shared bookmark (place, activity, link) saved by either partner.
type Favorite struct {
	BaseModel

	PairID string `gorm:"type:uuid;not null;index" json:"pair_id"`
	UserID string `gorm:"type:uuid;not null" json:"user_id"`

	Title    string `gorm:"type:varchar(255);not null" json:"title"`
	Category string `gorm:"type:varchar(64)" json:"category"`
	URL      string `gorm:"type:text" json:"url"`
	Note     string `gorm:"type:text" json:"note"`
}

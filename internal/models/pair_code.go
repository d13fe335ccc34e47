package models

import "time"

// PairCode is a single-use invitation minted by an unpaired user. Expiry is
// derived from ExpiresAt; there is no explicit "expired" state field.
type PairCode struct {
	Code      string    `gorm:"primaryKey;type:varchar(16)" json:"code"`
	OwnerID   string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	Used      bool      `gorm:"default:false" json:"used"`
	PairID    *string   `gorm:"type:uuid" json:"pair_id"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (c *PairCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

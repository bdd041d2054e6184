package models

import "time"

// CartDraft is the server-side copy of an in-progress cart so a
// customer can pick up where they left off on another device.
// One draft per user.
type CartDraft struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Payload   string    `json:"payload" gorm:"type:text"` // JSON: quantities + preferences
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"
)

// Webhook represents a bearer token that grants TradingView permission to
// trigger one bot. Rows are never mutated, only superseded by newer mints;
// a token is valid strictly while now < ExpiresAt.
type Webhook struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	OwnerID   uint      `json:"owner_id" gorm:"not null"`
	BotID     uint      `json:"bot_id" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// Relations
	Bot Bot `json:"bot" gorm:"foreignKey:BotID"`
}

package models

import (
	"time"
)

// Trade is the append-only record of one processed alert, written after a
// successful (real or simulated) execution. Quantities and prices are stored
// as the decimal strings that went over the wire.
type Trade struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`
	BotID     uint      `json:"bot_id" gorm:"not null;index"`
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"`
	OrderType string    `json:"order_type"`
	Quantity  string    `json:"quantity"`
	Price     string    `json:"price"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

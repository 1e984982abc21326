package models

import (
	"time"
)

// Bot statuses
const (
	BotStatusActive = "active"
	BotStatusPaused = "paused"
)

// Bot represents a trading bot owned by a user. An inbound alert is merged
// over the bot's defaults field by field; TestMode alone decides whether the
// resulting order is executed for real or simulated.
type Bot struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	OwnerID           uint       `json:"owner_id" gorm:"not null;index"`
	Name              string     `json:"name"`
	Symbol            string     `json:"symbol"`
	DefaultSide       string     `json:"default_side"`       // Buy, Sell
	DefaultOrderType  string     `json:"default_order_type"` // Market, Limit
	DefaultQuantity   float64    `json:"default_quantity"`
	DefaultStopLoss   float64    `json:"default_stop_loss"`
	DefaultTakeProfit float64    `json:"default_take_profit"`
	TestMode          bool       `json:"test_mode"`
	Status            string     `json:"status" gorm:"default:'active'"` // active, paused
	TradeCount        int64      `json:"trade_count"`
	LastTradeAt       *time.Time `json:"last_trade_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Credential represents exchange API credentials for a user. One row per
// (owner, exchange). Key material is never serialized into responses.
type Credential struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;uniqueIndex:idx_owner_exchange"`
	Exchange  string    `json:"exchange" gorm:"not null;uniqueIndex:idx_owner_exchange"` // bybit
	APIKey    string    `json:"-" gorm:"not null"`
	APISecret string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

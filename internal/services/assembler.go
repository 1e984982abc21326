package services

import (
	"strings"

	"github.com/CRT-AUTO/Trading-bot-app-V1/bybit"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/models"
	"github.com/shopspring/decimal"
)

// AlertPayload is the inbound TradingView alert body. Every field is
// optional; pointers keep absent and zero-valued fields distinguishable
// during the merge with the bot's defaults.
type AlertPayload struct {
	Symbol     *string  `json:"symbol"`
	Side       *string  `json:"side"`
	OrderType  *string  `json:"orderType"`
	Quantity   *float64 `json:"quantity"`
	Price      *float64 `json:"price"`
	StopLoss   *float64 `json:"stopLoss"`
	TakeProfit *float64 `json:"takeProfit"`
}

// Assemble merges an alert payload over a bot's defaults into a canonical
// order intent. Payload fields win field by field when present and non-null.
// Price is the sole exception: it is taken only from the payload, because a
// stale default price on the bot would be dangerous. Numeric fields become
// decimal strings; they cross the wire as-is.
func Assemble(payload *AlertPayload, bot *models.Bot) (*bybit.OrderRequest, error) {
	if payload == nil {
		payload = &AlertPayload{}
	}

	symbol := bot.Symbol
	if payload.Symbol != nil && *payload.Symbol != "" {
		symbol = *payload.Symbol
	}
	if symbol == "" {
		return nil, NewValidationError("symbol is required")
	}

	side := bot.DefaultSide
	if payload.Side != nil && *payload.Side != "" {
		side = *payload.Side
	}
	side = canonicalSide(side)
	if side == "" {
		return nil, NewValidationError("side must be Buy or Sell")
	}

	orderType := bot.DefaultOrderType
	if payload.OrderType != nil && *payload.OrderType != "" {
		orderType = *payload.OrderType
	}
	orderType = canonicalOrderType(orderType)
	if orderType == "" {
		return nil, NewValidationError("orderType must be Market or Limit")
	}

	quantity := bot.DefaultQuantity
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}
	if quantity <= 0 {
		return nil, NewValidationError("quantity must be positive")
	}

	req := &bybit.OrderRequest{
		Symbol:    strings.ToUpper(symbol),
		Side:      side,
		OrderType: orderType,
		Qty:       decimal.NewFromFloat(quantity).String(),
	}

	// Bots never carry a default price.
	if payload.Price != nil && *payload.Price > 0 {
		req.Price = decimal.NewFromFloat(*payload.Price).String()
	}
	if orderType == bybit.OrderTypeLimit && req.Price == "" {
		return nil, NewValidationError("price is required for limit orders")
	}

	stopLoss := bot.DefaultStopLoss
	if payload.StopLoss != nil {
		stopLoss = *payload.StopLoss
	}
	if stopLoss > 0 {
		req.StopLoss = decimal.NewFromFloat(stopLoss).String()
	}

	takeProfit := bot.DefaultTakeProfit
	if payload.TakeProfit != nil {
		takeProfit = *payload.TakeProfit
	}
	if takeProfit > 0 {
		req.TakeProfit = decimal.NewFromFloat(takeProfit).String()
	}

	return req, nil
}

func canonicalSide(side string) string {
	switch strings.ToLower(side) {
	case "buy", "long":
		return bybit.SideBuy
	case "sell", "short":
		return bybit.SideSell
	default:
		return ""
	}
}

func canonicalOrderType(orderType string) string {
	switch strings.ToLower(orderType) {
	case "market":
		return bybit.OrderTypeMarket
	case "limit":
		return bybit.OrderTypeLimit
	default:
		return ""
	}
}

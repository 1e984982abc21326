package bybit

import (
	"encoding/json"
)

// Order sides (Bybit wire values)
const (
	SideBuy  = "Buy"
	SideSell = "Sell"
)

// Order types
const (
	OrderTypeMarket = "Market"
	OrderTypeLimit  = "Limit"
)

// Time-in-force policies. Market orders default to IOC, limit orders to
// PostOnly; see Client.PlaceOrder.
const (
	TimeInForceGTC      = "GTC"
	TimeInForceIOC      = "IOC"
	TimeInForcePostOnly = "PostOnly"
)

// Credentials represents a Bybit API key pair
type Credentials struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"-"`
}

// OrderRequest represents a canonical order intent. Quantity and prices are
// decimal strings; the client transmits them as-is and never reformats them.
type OrderRequest struct {
	Symbol      string `json:"symbol"`
	Side        string `json:"side"`       // Buy, Sell
	OrderType   string `json:"order_type"` // Market, Limit
	Qty         string `json:"qty"`
	Price       string `json:"price,omitempty"`       // Required for limit orders
	StopLoss    string `json:"stop_loss,omitempty"`   // Sent only when set
	TakeProfit  string `json:"take_profit,omitempty"` // Sent only when set
	TimeInForce string `json:"time_in_force,omitempty"`
}

// OrderResult represents an accepted order
type OrderResult struct {
	OrderID   string `json:"order_id"`
	Symbol    string `json:"symbol"`
	Side      string `json:"side"`
	OrderType string `json:"order_type"`
	Qty       string `json:"qty"`
	Price     string `json:"price"`
	Status    string `json:"status"`
}

// v5Envelope is the response envelope of the v5 API generation
type v5Envelope struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
	Time    int64           `json:"time"`
}

// legacyEnvelope is the response envelope of the v2 API generation
type legacyEnvelope struct {
	RetCode int             `json:"ret_code"`
	RetMsg  string          `json:"ret_msg"`
	Result  json.RawMessage `json:"result"`
	TimeNow string          `json:"time_now"`
}

type v5OrderResult struct {
	OrderID     string `json:"orderId"`
	OrderLinkID string `json:"orderLinkId"`
}

type legacyOrderResult struct {
	OrderID     string `json:"order_id"`
	OrderStatus string `json:"order_status"`
}

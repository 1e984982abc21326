package bybit

import (
	"errors"
	"fmt"
)

// Common client errors
var (
	ErrInvalidSymbol    = errors.New("invalid symbol")
	ErrInvalidOrderSide = errors.New("invalid order side")
	ErrInvalidOrderType = errors.New("invalid order type")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrPriceRequired    = errors.New("price required for limit orders")
)

// ExchangeError represents a request that reached Bybit and was rejected.
// Code and Message carry the vendor return code and message verbatim.
type ExchangeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("bybit: retCode %d: %s", e.Code, e.Message)
}

// TransportError represents a request that never produced a vendor response
// (connection failure, timeout, unparseable body).
type TransportError struct {
	Op  string `json:"op"`
	Err error  `json:"-"`
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bybit: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

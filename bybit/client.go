package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Base URLs per venue
const (
	MainnetBaseURL = "https://api.bybit.com"
	TestnetBaseURL = "https://api-testnet.bybit.com"
)

// DefaultRecvWindow bounds acceptable clock skew between the signed
// timestamp and arrival at the exchange, in milliseconds.
const DefaultRecvWindow int64 = 15000

// Protocol selects the API generation the client signs and encodes requests
// for. It is chosen per account configuration, never auto-negotiated.
type Protocol string

const (
	ProtocolV5     Protocol = "v5"
	ProtocolLegacy Protocol = "legacy"
)

// Options configures a Client. Testnet selects the venue base URL; BaseURL
// overrides it (used by tests).
type Options struct {
	Testnet    bool
	Protocol   Protocol
	RecvWindow int64
	BaseURL    string
	Timeout    time.Duration
}

// Client is a stateless Bybit REST client. Credentials and parameters are
// supplied at construction and each call performs exactly one signed request;
// no state is retained between calls.
type Client struct {
	creds Credentials
	opts  Options
	http  *resty.Client
}

// NewClient creates a Bybit client for the given credentials and venue
func NewClient(creds Credentials, opts Options) *Client {
	if opts.Protocol == "" {
		opts.Protocol = ProtocolV5
	}
	if opts.RecvWindow == 0 {
		opts.RecvWindow = DefaultRecvWindow
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.BaseURL == "" {
		if opts.Testnet {
			opts.BaseURL = TestnetBaseURL
		} else {
			opts.BaseURL = MainnetBaseURL
		}
	}

	return &Client{
		creds: creds,
		opts:  opts,
		http:  resty.New().SetBaseURL(opts.BaseURL).SetTimeout(opts.Timeout),
	}
}

// ServerTime returns the exchange clock in milliseconds. The v5 signing path
// uses this instead of the local clock to avoid clock-skew rejections.
func (c *Client) ServerTime(ctx context.Context) (int64, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/v5/market/time")
	if err != nil {
		return 0, &TransportError{Op: "get server time", Err: err}
	}

	var env v5Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return 0, &TransportError{Op: "decode server time response", Err: err}
	}
	if env.RetCode != 0 {
		return 0, &ExchangeError{Code: env.RetCode, Message: env.RetMsg}
	}

	return env.Time, nil
}

// PlaceOrder submits a linear-perpetual order. Price is transmitted only for
// limit orders; stop loss and take profit only when set. Unless the request
// carries an explicit TimeInForce, market orders use IOC and limit orders use
// PostOnly (maker-only); callers override by setting OrderRequest.TimeInForce.
func (c *Client) PlaceOrder(ctx context.Context, req *OrderRequest) (*OrderResult, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	tif := req.TimeInForce
	if tif == "" {
		if req.OrderType == OrderTypeMarket {
			tif = TimeInForceIOC
		} else {
			tif = TimeInForcePostOnly
		}
	}

	if c.opts.Protocol == ProtocolLegacy {
		return c.placeOrderLegacy(ctx, req, tif)
	}
	return c.placeOrderV5(ctx, req, tif)
}

func (c *Client) placeOrderV5(ctx context.Context, req *OrderRequest, tif string) (*OrderResult, error) {
	body := map[string]string{
		"category":    "linear",
		"symbol":      req.Symbol,
		"side":        req.Side,
		"orderType":   req.OrderType,
		"qty":         req.Qty,
		"timeInForce": tif,
	}
	if req.OrderType == OrderTypeLimit {
		body["price"] = req.Price
	}
	if req.StopLoss != "" {
		body["stopLoss"] = req.StopLoss
	}
	if req.TakeProfit != "" {
		body["takeProfit"] = req.TakeProfit
	}

	// The exact marshaled bytes are signed and sent; re-encoding would break
	// the signature.
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal order body: %w", err)
	}

	result, err := c.doV5(ctx, "POST", "/v5/order/create", string(payload))
	if err != nil {
		return nil, err
	}

	var created v5OrderResult
	if err := json.Unmarshal(result, &created); err != nil {
		return nil, &TransportError{Op: "decode order response", Err: err}
	}

	return &OrderResult{
		OrderID:   created.OrderID,
		Symbol:    req.Symbol,
		Side:      req.Side,
		OrderType: req.OrderType,
		Qty:       req.Qty,
		Price:     req.Price,
		Status:    "New",
	}, nil
}

func (c *Client) placeOrderLegacy(ctx context.Context, req *OrderRequest, tif string) (*OrderResult, error) {
	params := map[string]string{
		"api_key":       c.creds.APIKey,
		"symbol":        req.Symbol,
		"side":          req.Side,
		"order_type":    req.OrderType,
		"qty":           req.Qty,
		"time_in_force": legacyTimeInForce(tif),
		"timestamp":     strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
	if req.OrderType == OrderTypeLimit {
		params["price"] = req.Price
	}
	if req.StopLoss != "" {
		params["stop_loss"] = req.StopLoss
	}
	if req.TakeProfit != "" {
		params["take_profit"] = req.TakeProfit
	}
	params["sign"] = SignLegacy(c.creds.APISecret, params)

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(params).
		Post("/v2/private/order/create")
	if err != nil {
		return nil, &TransportError{Op: "place order", Err: err}
	}

	var env legacyEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, &TransportError{Op: "decode order response", Err: err}
	}
	if env.RetCode != 0 {
		return nil, &ExchangeError{Code: env.RetCode, Message: env.RetMsg}
	}

	var created legacyOrderResult
	if err := json.Unmarshal(env.Result, &created); err != nil {
		return nil, &TransportError{Op: "decode order response", Err: err}
	}

	status := created.OrderStatus
	if status == "" {
		status = "New"
	}

	return &OrderResult{
		OrderID:   created.OrderID,
		Symbol:    req.Symbol,
		Side:      req.Side,
		OrderType: req.OrderType,
		Qty:       req.Qty,
		Price:     req.Price,
		Status:    status,
	}, nil
}

// ListPositions returns the vendor position payload verbatim for a symbol.
// An empty symbol lists all USDT-settled positions.
func (c *Client) ListPositions(ctx context.Context, symbol string) (json.RawMessage, error) {
	if c.opts.Protocol == ProtocolLegacy {
		return c.listPositionsLegacy(ctx, symbol)
	}

	values := url.Values{}
	values.Set("category", "linear")
	if symbol != "" {
		values.Set("symbol", symbol)
	} else {
		values.Set("settleCoin", "USDT")
	}

	return c.doV5(ctx, "GET", "/v5/position/list", values.Encode())
}

func (c *Client) listPositionsLegacy(ctx context.Context, symbol string) (json.RawMessage, error) {
	params := map[string]string{
		"api_key":   c.creds.APIKey,
		"timestamp": strconv.FormatInt(time.Now().UnixMilli(), 10),
	}
	if symbol != "" {
		params["symbol"] = symbol
	}
	params["sign"] = SignLegacy(c.creds.APISecret, params)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/v2/private/position/list")
	if err != nil {
		return nil, &TransportError{Op: "list positions", Err: err}
	}

	var env legacyEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, &TransportError{Op: "decode position response", Err: err}
	}
	if env.RetCode != 0 {
		return nil, &ExchangeError{Code: env.RetCode, Message: env.RetMsg}
	}

	return env.Result, nil
}

// doV5 performs one signed v5 request. payload is the JSON body for POST or
// the canonical query string for GET; the same bytes are signed and sent.
func (c *Client) doV5(ctx context.Context, method, path, payload string) (json.RawMessage, error) {
	ts, err := c.ServerTime(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := strconv.FormatInt(ts, 10)
	recvWindow := strconv.FormatInt(c.opts.RecvWindow, 10)
	signature := SignV5(c.creds.APISecret, timestamp, c.creds.APIKey, recvWindow, payload)

	r := c.http.R().
		SetContext(ctx).
		SetHeader("X-BAPI-API-KEY", c.creds.APIKey).
		SetHeader("X-BAPI-TIMESTAMP", timestamp).
		SetHeader("X-BAPI-RECV-WINDOW", recvWindow).
		SetHeader("X-BAPI-SIGN", signature).
		SetHeader("X-BAPI-SIGN-TYPE", "2")

	var resp *resty.Response
	if method == "POST" {
		resp, err = r.SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(path)
	} else {
		resp, err = r.SetQueryString(payload).Get(path)
	}
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}

	var env v5Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, &TransportError{Op: "decode response for " + path, Err: err}
	}
	if env.RetCode != 0 {
		return nil, &ExchangeError{Code: env.RetCode, Message: env.RetMsg}
	}

	return env.Result, nil
}

func validateOrderRequest(req *OrderRequest) error {
	if req == nil {
		return fmt.Errorf("order request is nil")
	}
	if req.Symbol == "" {
		return ErrInvalidSymbol
	}
	if req.Side != SideBuy && req.Side != SideSell {
		return ErrInvalidOrderSide
	}
	if req.OrderType != OrderTypeMarket && req.OrderType != OrderTypeLimit {
		return ErrInvalidOrderType
	}
	if req.Qty == "" || req.Qty == "0" {
		return ErrInvalidQuantity
	}
	if req.OrderType == OrderTypeLimit && req.Price == "" {
		return ErrPriceRequired
	}
	return nil
}

func legacyTimeInForce(tif string) string {
	switch tif {
	case TimeInForceIOC:
		return "ImmediateOrCancel"
	case TimeInForceGTC:
		return "GoodTillCancel"
	default:
		return tif
	}
}

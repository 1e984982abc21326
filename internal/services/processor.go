package services

import (
	"context"
	"log"
	"time"

	"github.com/CRT-AUTO/Trading-bot-app-V1/bybit"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/config"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExchangeName is the only venue this relay trades on
const ExchangeName = "bybit"

// StatusSimulated marks orders that were synthesized locally instead of
// being sent to the exchange
const StatusSimulated = "TEST_ORDER"

// ExchangeClient is the slice of the Bybit client the processor depends on
type ExchangeClient interface {
	PlaceOrder(ctx context.Context, req *bybit.OrderRequest) (*bybit.OrderResult, error)
}

// ClientFactory builds an exchange client for one invocation. Credentials
// and venue are supplied fresh on every call; nothing is cached between
// alerts.
type ClientFactory func(creds bybit.Credentials, testnet bool) ExchangeClient

// ProcessResult is the caller-facing outcome of one processed alert
type ProcessResult struct {
	OrderID  string `json:"orderId"`
	Status   string `json:"status"`
	TestMode bool   `json:"testMode"`
}

// AlertProcessor sequences webhook resolution, credential lookup, order
// assembly, execution (or simulation) and bookkeeping for one inbound alert.
// All dependencies are passed in explicitly; there is no ambient state.
type AlertProcessor struct {
	webhooks    *WebhookService
	credentials *CredentialService
	bots        *BotService
	trades      *TradeService
	newClient   ClientFactory
}

// NewAlertProcessor creates a processor wired to the given database handle
// and exchange configuration
func NewAlertProcessor(db *gorm.DB, cfg *config.Config) *AlertProcessor {
	return &AlertProcessor{
		webhooks:    NewWebhookService(db, cfg.Webhook.TTL),
		credentials: NewCredentialService(db),
		bots:        NewBotService(db),
		trades:      NewTradeService(db),
		newClient:   defaultClientFactory(&cfg.Exchange),
	}
}

// SetClientFactory overrides how exchange clients are built (used by tests)
func (p *AlertProcessor) SetClientFactory(factory ClientFactory) {
	p.newClient = factory
}

// Webhooks exposes the webhook service sharing this processor's database
func (p *AlertProcessor) Webhooks() *WebhookService {
	return p.webhooks
}

// Process handles one inbound alert, strictly sequentially:
//
//  1. resolve the webhook token (opaque not-found on any miss)
//  2. load the owner's Bybit credential
//  3. merge the payload over the bot's defaults
//  4. place the order, or synthesize a simulated result when the bot is in
//     test mode (no network call is made in that case)
//  5. append the trade record
//  6. bump the bot's counters
//
// Steps 5 and 6 are best-effort: once the order itself succeeded it cannot
// be taken back, so bookkeeping failures are logged and swallowed rather
// than retried. The returned result reflects the order outcome alone.
func (p *AlertProcessor) Process(ctx context.Context, token string, payload *AlertPayload) (*ProcessResult, error) {
	webhook, err := p.webhooks.Resolve(token)
	if err != nil {
		return nil, err
	}
	bot := &webhook.Bot

	if bot.Status == models.BotStatusPaused {
		return nil, NewValidationError("bot is paused")
	}

	credential, err := p.credentials.Get(webhook.OwnerID, ExchangeName)
	if err != nil {
		return nil, err
	}

	order, err := Assemble(payload, bot)
	if err != nil {
		return nil, err
	}

	// bot.TestMode is the single authority for whether real execution
	// happens; credential-level flags do not participate.
	var result *bybit.OrderResult
	if bot.TestMode {
		result = simulateOrder(order)
	} else {
		client := p.newClient(bybit.Credentials{
			APIKey:    credential.APIKey,
			APISecret: credential.APISecret,
		}, bot.TestMode)

		result, err = client.PlaceOrder(ctx, order)
		if err != nil {
			return nil, err
		}
	}

	trade := &models.Trade{
		OwnerID:   webhook.OwnerID,
		BotID:     bot.ID,
		Symbol:    result.Symbol,
		Side:      result.Side,
		OrderType: result.OrderType,
		Quantity:  result.Qty,
		Price:     result.Price,
		OrderID:   result.OrderID,
		Status:    result.Status,
		CreatedAt: time.Now(),
	}
	if err := p.trades.SaveTrade(trade); err != nil {
		log.Printf("Warning: failed to record trade for bot %d, order %s: %v",
			bot.ID, result.OrderID, err)
	}

	if err := p.bots.RecordTrade(bot.ID); err != nil {
		log.Printf("Warning: failed to update counters for bot %d: %v", bot.ID, err)
	}

	return &ProcessResult{
		OrderID:  result.OrderID,
		Status:   result.Status,
		TestMode: bot.TestMode,
	}, nil
}

// simulateOrder synthesizes the result of a test-mode alert. The order id is
// prefixed so simulated trades are recognizable in the history.
func simulateOrder(req *bybit.OrderRequest) *bybit.OrderResult {
	return &bybit.OrderResult{
		OrderID:   "TEST-" + uuid.NewString(),
		Symbol:    req.Symbol,
		Side:      req.Side,
		OrderType: req.OrderType,
		Qty:       req.Qty,
		Price:     req.Price,
		Status:    StatusSimulated,
	}
}

// defaultClientFactory builds real Bybit clients from the exchange config.
// The testnet venue is selected when either the invocation asks for it or
// the deployment forces all live orders onto testnet.
func defaultClientFactory(cfg *config.ExchangeConfig) ClientFactory {
	return func(creds bybit.Credentials, testnet bool) ExchangeClient {
		return bybit.NewClient(creds, bybit.Options{
			Testnet:    testnet || cfg.Testnet,
			Protocol:   bybit.Protocol(cfg.Protocol),
			RecvWindow: cfg.RecvWindowMS,
			Timeout:    cfg.HTTPTimeout,
		})
	}
}

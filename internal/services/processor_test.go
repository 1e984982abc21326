package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/CRT-AUTO/Trading-bot-app-V1/bybit"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/config"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeExchangeClient records placed orders and returns a scripted outcome.
type fakeExchangeClient struct {
	calls  []*bybit.OrderRequest
	result *bybit.OrderResult
	err    error
}

func (f *fakeExchangeClient) PlaceOrder(_ context.Context, req *bybit.OrderRequest) (*bybit.OrderResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	result := *f.result
	result.Symbol = req.Symbol
	result.Side = req.Side
	result.OrderType = req.OrderType
	result.Qty = req.Qty
	result.Price = req.Price
	return &result, nil
}

type processorFixture struct {
	db        *gorm.DB
	processor *AlertProcessor
	exchange  *fakeExchangeClient
	bot       *models.Bot
	token     string
}

func setupProcessor(t *testing.T, testMode bool) *processorFixture {
	t.Helper()

	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.Webhook.TTL = time.Hour

	bot := &models.Bot{
		OwnerID:          1,
		Name:             "btc scalper",
		Symbol:           "BTCUSDT",
		DefaultSide:      "Buy",
		DefaultOrderType: "Market",
		DefaultQuantity:  0.001,
		TestMode:         testMode,
		Status:           models.BotStatusActive,
	}
	require.NoError(t, db.Create(bot).Error)

	require.NoError(t, db.Create(&models.Credential{
		OwnerID:   bot.OwnerID,
		Exchange:  ExchangeName,
		APIKey:    "test-key",
		APISecret: "test-secret",
	}).Error)

	processor := NewAlertProcessor(db, cfg)
	webhook, err := processor.Webhooks().Mint(bot.OwnerID, bot.ID)
	require.NoError(t, err)

	exchange := &fakeExchangeClient{
		result: &bybit.OrderResult{OrderID: "real-order-1", Status: "New"},
	}
	processor.SetClientFactory(func(creds bybit.Credentials, testnet bool) ExchangeClient {
		assert.Equal(t, "test-key", creds.APIKey, "stored credential reaches the client")
		return exchange
	})

	return &processorFixture{
		db:        db,
		processor: processor,
		exchange:  exchange,
		bot:       bot,
		token:     webhook.Token,
	}
}

func TestProcessLiveOrder(t *testing.T) {
	fx := setupProcessor(t, false)

	result, err := fx.processor.Process(context.Background(), fx.token, &AlertPayload{})
	require.NoError(t, err)

	assert.Equal(t, "real-order-1", result.OrderID)
	assert.Equal(t, "New", result.Status)
	assert.False(t, result.TestMode)
	require.Len(t, fx.exchange.calls, 1)
	assert.Equal(t, "BTCUSDT", fx.exchange.calls[0].Symbol)

	// The trade lands in the history and the counters move.
	var trade models.Trade
	require.NoError(t, fx.db.First(&trade).Error)
	assert.Equal(t, "real-order-1", trade.OrderID)
	assert.Equal(t, fx.bot.ID, trade.BotID)
	assert.Equal(t, "0.001", trade.Quantity)

	var bot models.Bot
	require.NoError(t, fx.db.First(&bot, fx.bot.ID).Error)
	assert.Equal(t, int64(1), bot.TradeCount)
	assert.NotNil(t, bot.LastTradeAt)
}

func TestProcessTestMode(t *testing.T) {
	fx := setupProcessor(t, true)

	result, err := fx.processor.Process(context.Background(), fx.token, &AlertPayload{})
	require.NoError(t, err)

	assert.True(t, result.TestMode)
	assert.Equal(t, StatusSimulated, result.Status)
	assert.True(t, strings.HasPrefix(result.OrderID, "TEST-"))
	assert.Empty(t, fx.exchange.calls, "test mode must not touch the exchange")

	// Simulated trades are persisted just like real ones.
	var trade models.Trade
	require.NoError(t, fx.db.First(&trade).Error)
	assert.Equal(t, StatusSimulated, trade.Status)
	assert.Equal(t, result.OrderID, trade.OrderID)

	var bot models.Bot
	require.NoError(t, fx.db.First(&bot, fx.bot.ID).Error)
	assert.Equal(t, int64(1), bot.TradeCount)
}

func TestProcessExchangeFailure(t *testing.T) {
	fx := setupProcessor(t, false)
	fx.exchange.err = &bybit.ExchangeError{Code: 110007, Message: "ab not enough for new order"}

	_, err := fx.processor.Process(context.Background(), fx.token, &AlertPayload{})
	require.Error(t, err)

	var exchangeErr *bybit.ExchangeError
	assert.ErrorAs(t, err, &exchangeErr)

	// A failed order leaves no trace in the trade history.
	var count int64
	require.NoError(t, fx.db.Model(&models.Trade{}).Count(&count).Error)
	assert.Zero(t, count)

	var bot models.Bot
	require.NoError(t, fx.db.First(&bot, fx.bot.ID).Error)
	assert.Zero(t, bot.TradeCount)
}

func TestProcessUnknownToken(t *testing.T) {
	fx := setupProcessor(t, false)

	_, err := fx.processor.Process(context.Background(), "bogus", &AlertPayload{})
	assert.ErrorIs(t, err, ErrWebhookNotFound)
	assert.Empty(t, fx.exchange.calls)
}

func TestProcessMissingCredentials(t *testing.T) {
	fx := setupProcessor(t, false)
	require.NoError(t, fx.db.Where("owner_id = ?", fx.bot.OwnerID).Delete(&models.Credential{}).Error)

	_, err := fx.processor.Process(context.Background(), fx.token, &AlertPayload{})
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
	assert.Empty(t, fx.exchange.calls)
}

func TestProcessPausedBot(t *testing.T) {
	fx := setupProcessor(t, false)
	require.NoError(t, fx.db.Model(&models.Bot{}).
		Where("id = ?", fx.bot.ID).
		Update("status", models.BotStatusPaused).Error)

	_, err := fx.processor.Process(context.Background(), fx.token, &AlertPayload{})
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Empty(t, fx.exchange.calls)
}

func TestProcessInvalidPayload(t *testing.T) {
	fx := setupProcessor(t, false)

	side := "hold"
	_, err := fx.processor.Process(context.Background(), fx.token, &AlertPayload{Side: &side})
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Empty(t, fx.exchange.calls, "rejected alerts never reach the exchange")
}

package services

import (
	"testing"

	"github.com/CRT-AUTO/Trading-bot-app-V1/bybit"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func defaultsBot() *models.Bot {
	return &models.Bot{
		Symbol:           "BTCUSDT",
		DefaultSide:      "Buy",
		DefaultOrderType: "Market",
		DefaultQuantity:  0.001,
	}
}

func TestAssembleDefaults(t *testing.T) {
	// An empty payload falls back to the bot's defaults entirely.
	req, err := Assemble(&AlertPayload{}, defaultsBot())
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", req.Symbol)
	assert.Equal(t, bybit.SideBuy, req.Side)
	assert.Equal(t, bybit.OrderTypeMarket, req.OrderType)
	assert.Equal(t, "0.001", req.Qty)
	assert.Empty(t, req.Price)
	assert.Empty(t, req.StopLoss)
	assert.Empty(t, req.TakeProfit)
}

func TestAssembleNilPayload(t *testing.T) {
	req, err := Assemble(nil, defaultsBot())
	require.NoError(t, err)
	assert.Equal(t, "0.001", req.Qty)
}

func TestAssemblePayloadWins(t *testing.T) {
	payload := &AlertPayload{
		Symbol:    strPtr("ethusdt"),
		Side:      strPtr("sell"),
		OrderType: strPtr("limit"),
		Quantity:  f64Ptr(0.5),
		Price:     f64Ptr(3000.25),
	}

	req, err := Assemble(payload, defaultsBot())
	require.NoError(t, err)

	assert.Equal(t, "ETHUSDT", req.Symbol)
	assert.Equal(t, bybit.SideSell, req.Side)
	assert.Equal(t, bybit.OrderTypeLimit, req.OrderType)
	assert.Equal(t, "0.5", req.Qty)
	assert.Equal(t, "3000.25", req.Price)
}

func TestAssembleSideAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"buy", bybit.SideBuy},
		{"Buy", bybit.SideBuy},
		{"long", bybit.SideBuy},
		{"LONG", bybit.SideBuy},
		{"sell", bybit.SideSell},
		{"short", bybit.SideSell},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			req, err := Assemble(&AlertPayload{Side: strPtr(tt.alias)}, defaultsBot())
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Side)
		})
	}
}

func TestAssemblePriceOnlyFromPayload(t *testing.T) {
	// Bots have no default price field at all; a limit order without a
	// payload price must be rejected rather than invented.
	bot := defaultsBot()
	bot.DefaultOrderType = "Limit"

	_, err := Assemble(&AlertPayload{}, bot)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "price")
}

func TestAssembleStopsFromDefaults(t *testing.T) {
	bot := defaultsBot()
	bot.DefaultStopLoss = 45000
	bot.DefaultTakeProfit = 55000

	req, err := Assemble(&AlertPayload{}, bot)
	require.NoError(t, err)
	assert.Equal(t, "45000", req.StopLoss)
	assert.Equal(t, "55000", req.TakeProfit)

	// Payload stops override per field.
	req, err = Assemble(&AlertPayload{StopLoss: f64Ptr(44000)}, bot)
	require.NoError(t, err)
	assert.Equal(t, "44000", req.StopLoss)
	assert.Equal(t, "55000", req.TakeProfit)
}

func TestAssembleDecimalStrings(t *testing.T) {
	// Float payload values must not pick up binary noise on the way to the
	// wire: 0.1 stays "0.1", never "0.1000000000000000055511...".
	payload := &AlertPayload{
		Quantity: f64Ptr(0.1),
		Price:    f64Ptr(26145.7),
	}
	bot := defaultsBot()
	bot.DefaultOrderType = "Limit"

	req, err := Assemble(payload, bot)
	require.NoError(t, err)
	assert.Equal(t, "0.1", req.Qty)
	assert.Equal(t, "26145.7", req.Price)
}

func TestAssembleValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload *AlertPayload
		bot     *models.Bot
		wantMsg string
	}{
		{
			name:    "no symbol anywhere",
			payload: &AlertPayload{},
			bot:     &models.Bot{DefaultSide: "Buy", DefaultOrderType: "Market", DefaultQuantity: 1},
			wantMsg: "symbol",
		},
		{
			name:    "unknown side",
			payload: &AlertPayload{Side: strPtr("hold")},
			bot:     defaultsBot(),
			wantMsg: "side",
		},
		{
			name:    "unknown order type",
			payload: &AlertPayload{OrderType: strPtr("stop")},
			bot:     defaultsBot(),
			wantMsg: "orderType",
		},
		{
			name:    "zero quantity",
			payload: &AlertPayload{Quantity: f64Ptr(0)},
			bot:     defaultsBot(),
			wantMsg: "quantity",
		},
		{
			name:    "negative quantity",
			payload: &AlertPayload{Quantity: f64Ptr(-1)},
			bot:     defaultsBot(),
			wantMsg: "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(tt.payload, tt.bot)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Message, tt.wantMsg)
		})
	}
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/CRT-AUTO/Trading-bot-app-V1/bybit"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/config"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/models"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ManagementHandler serves the bot, webhook, credential and trade-history
// endpoints around the alert pipeline
type ManagementHandler struct {
	bots        *services.BotService
	trades      *services.TradeService
	credentials *services.CredentialService
	webhooks    *services.WebhookService
	exchangeCfg config.ExchangeConfig
}

// NewManagementHandler creates a new management handler
func NewManagementHandler(db *gorm.DB, cfg *config.Config) *ManagementHandler {
	return &ManagementHandler{
		bots:        services.NewBotService(db),
		trades:      services.NewTradeService(db),
		credentials: services.NewCredentialService(db),
		webhooks:    services.NewWebhookService(db, cfg.Webhook.TTL),
		exchangeCfg: cfg.Exchange,
	}
}

// CreateBot creates a new bot
func (h *ManagementHandler) CreateBot(c *gin.Context) {
	var bot models.Bot
	if err := c.ShouldBindJSON(&bot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bot payload"})
		return
	}
	if bot.OwnerID == 0 || bot.Symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id and symbol are required"})
		return
	}

	if err := h.bots.CreateBot(&bot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bot"})
		return
	}

	c.JSON(http.StatusCreated, bot)
}

// GetBots lists bots, optionally filtered by owner_id
func (h *ManagementHandler) GetBots(c *gin.Context) {
	ownerID, _ := strconv.ParseUint(c.DefaultQuery("owner_id", "0"), 10, 32)

	bots, err := h.bots.GetBots(uint(ownerID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bots": bots, "total": len(bots)})
}

// GetBot retrieves a bot by ID
func (h *ManagementHandler) GetBot(c *gin.Context) {
	bot, ok := h.botFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bot)
}

// UpdateBot updates a bot's configuration
func (h *ManagementHandler) UpdateBot(c *gin.Context) {
	bot, ok := h.botFromPath(c)
	if !ok {
		return
	}

	var update models.Bot
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bot payload"})
		return
	}
	update.ID = bot.ID
	update.OwnerID = bot.OwnerID
	update.TradeCount = bot.TradeCount
	update.LastTradeAt = bot.LastTradeAt
	update.CreatedAt = bot.CreatedAt
	if update.Status == "" {
		update.Status = bot.Status
	}

	if err := h.bots.UpdateBot(&update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bot"})
		return
	}

	c.JSON(http.StatusOK, update)
}

// DeleteBot removes a bot
func (h *ManagementHandler) DeleteBot(c *gin.Context) {
	bot, ok := h.botFromPath(c)
	if !ok {
		return
	}

	if err := h.bots.DeleteBot(bot.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": bot.ID})
}

// MintWebhook creates a fresh webhook token for a bot and returns the
// path TradingView should post alerts to
func (h *ManagementHandler) MintWebhook(c *gin.Context) {
	bot, ok := h.botFromPath(c)
	if !ok {
		return
	}

	webhook, err := h.webhooks.Mint(bot.OwnerID, bot.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create webhook"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      webhook.Token,
		"url":        fmt.Sprintf("/api/v1/processAlert/%s", webhook.Token),
		"expires_at": webhook.ExpiresAt,
	})
}

// GetBotTrades retrieves recent trades for a bot
func (h *ManagementHandler) GetBotTrades(c *gin.Context) {
	bot, ok := h.botFromPath(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	trades, err := h.trades.GetTradesByBot(bot.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trades"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bot_id": bot.ID, "trades": trades})
}

type credentialRequest struct {
	OwnerID   uint   `json:"owner_id"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}

// UpsertCredential stores or replaces an owner's Bybit API key pair. Key
// material is accepted here and never returned by any endpoint.
func (h *ManagementHandler) UpsertCredential(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credential payload"})
		return
	}
	if req.OwnerID == 0 || req.APIKey == "" || req.APISecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id, api_key and api_secret are required"})
		return
	}

	cred := &models.Credential{
		OwnerID:   req.OwnerID,
		Exchange:  services.ExchangeName,
		APIKey:    req.APIKey,
		APISecret: req.APISecret,
	}
	if err := h.credentials.Upsert(cred); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save credential"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"owner_id": cred.OwnerID, "exchange": cred.Exchange})
}

// GetPositions performs a live signed position query for an owner. The
// vendor payload is returned verbatim.
func (h *ManagementHandler) GetPositions(c *gin.Context) {
	ownerID, err := strconv.ParseUint(c.Query("owner_id"), 10, 32)
	if err != nil || ownerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id parameter is required"})
		return
	}

	credential, err := h.credentials.Get(uint(ownerID), services.ExchangeName)
	if err != nil {
		if errors.Is(err, services.ErrCredentialsNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "API credentials not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load credentials"})
		return
	}

	client := bybit.NewClient(bybit.Credentials{
		APIKey:    credential.APIKey,
		APISecret: credential.APISecret,
	}, bybit.Options{
		Testnet:    h.exchangeCfg.Testnet,
		Protocol:   bybit.Protocol(h.exchangeCfg.Protocol),
		RecvWindow: h.exchangeCfg.RecvWindowMS,
		Timeout:    h.exchangeCfg.HTTPTimeout,
	})

	result, err := client.ListPositions(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *ManagementHandler) botFromPath(c *gin.Context) (*models.Bot, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bot ID"})
		return nil, false
	}

	bot, err := h.bots.GetBot(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bot not found"})
		return nil, false
	}

	return bot, true
}

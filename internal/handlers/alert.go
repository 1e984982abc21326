package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/services"
	"github.com/gin-gonic/gin"
)

// AlertHandler handles TradingView alert webhooks
type AlertHandler struct {
	processor *services.AlertProcessor
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(processor *services.AlertProcessor) *AlertHandler {
	return &AlertHandler{processor: processor}
}

// HandleProcessAlert processes an inbound TradingView alert for the webhook
// token in the path. The response reflects the order outcome only; trade-log
// and counter bookkeeping never change the status code.
func (h *AlertHandler) HandleProcessAlert(c *gin.Context) {
	token := c.Param("token")

	// An absent body is a valid alert (the bot's defaults carry the order);
	// ContentLength cannot gate this because chunked requests report -1.
	var payload services.AlertPayload
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("Failed to parse alert payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert payload"})
		return
	}

	result, err := h.processor.Process(c.Request.Context(), token, &payload)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"orderId":  result.OrderID,
		"status":   result.Status,
		"testMode": result.TestMode,
	})
}

// renderError maps processing failures onto the HTTP contract. Webhook
// misses stay opaque; everything unexpected is a 500 with the message of the
// terminal error (never credentials).
func (h *AlertHandler) renderError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrWebhookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or expired webhook"})
	case errors.Is(err, services.ErrCredentialsNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "API credentials not found"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	default:
		log.Printf("Alert processing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/models"
	"gorm.io/gorm"
)

// WebhookService resolves inbound webhook tokens and mints new ones
type WebhookService struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewWebhookService creates a new webhook service
func NewWebhookService(db *gorm.DB, ttl time.Duration) *WebhookService {
	return &WebhookService{db: db, ttl: ttl}
}

// Resolve looks up a token and loads the associated bot in the same query.
// A token is valid only while expires_at is strictly in the future. Unknown
// tokens, expired tokens, and tokens whose bot has been deleted all collapse
// to ErrWebhookNotFound.
func (s *WebhookService) Resolve(token string) (*models.Webhook, error) {
	var webhook models.Webhook
	err := s.db.Joins("Bot").
		Where("webhooks.token = ? AND webhooks.expires_at > ?", token, time.Now()).
		First(&webhook).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWebhookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query webhook: %w", err)
	}

	if webhook.Bot.ID == 0 {
		return nil, ErrWebhookNotFound
	}

	return &webhook, nil
}

// Mint creates a fresh webhook token for a bot. Tokens are 32 random bytes,
// hex encoded; existing rows are never mutated, only superseded.
func (s *WebhookService) Mint(ownerID, botID uint) (*models.Webhook, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	webhook := &models.Webhook{
		Token:     hex.EncodeToString(buf),
		OwnerID:   ownerID,
		BotID:     botID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	if err := s.db.Create(webhook).Error; err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}

	return webhook, nil
}

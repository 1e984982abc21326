package services

import (
	"time"

	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/models"
	"gorm.io/gorm"
)

// BotService handles bot configuration and counters
type BotService struct {
	db *gorm.DB
}

// NewBotService creates a new bot service
func NewBotService(db *gorm.DB) *BotService {
	return &BotService{db: db}
}

// CreateBot saves a new bot
func (s *BotService) CreateBot(bot *models.Bot) error {
	if bot.Status == "" {
		bot.Status = models.BotStatusActive
	}
	return s.db.Create(bot).Error
}

// GetBot retrieves a bot by ID
func (s *BotService) GetBot(id uint) (*models.Bot, error) {
	var bot models.Bot
	if err := s.db.First(&bot, id).Error; err != nil {
		return nil, err
	}
	return &bot, nil
}

// GetBots retrieves bots, optionally filtered by owner
func (s *BotService) GetBots(ownerID uint) ([]models.Bot, error) {
	var bots []models.Bot
	query := s.db.Order("created_at DESC")
	if ownerID != 0 {
		query = query.Where("owner_id = ?", ownerID)
	}
	err := query.Find(&bots).Error
	return bots, err
}

// UpdateBot saves changes to a bot
func (s *BotService) UpdateBot(bot *models.Bot) error {
	return s.db.Save(bot).Error
}

// DeleteBot removes a bot
func (s *BotService) DeleteBot(id uint) error {
	return s.db.Delete(&models.Bot{}, id).Error
}

// RecordTrade bumps the bot's trade counter and last-trade timestamp after a
// processed alert. The counter is a display counter, not a ledger; callers
// treat failures as best-effort.
func (s *BotService) RecordTrade(botID uint) error {
	return s.db.Model(&models.Bot{}).
		Where("id = ?", botID).
		Updates(map[string]interface{}{
			"trade_count":   gorm.Expr("trade_count + 1"),
			"last_trade_at": time.Now(),
		}).Error
}

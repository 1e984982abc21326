package services

import (
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/models"
	"gorm.io/gorm"
)

// TradeService handles the append-only trade history
type TradeService struct {
	db *gorm.DB
}

// NewTradeService creates a new trade service
func NewTradeService(db *gorm.DB) *TradeService {
	return &TradeService{db: db}
}

// SaveTrade appends a trade record
func (s *TradeService) SaveTrade(trade *models.Trade) error {
	return s.db.Create(trade).Error
}

// GetTradesByBot retrieves recent trades for a bot
func (s *TradeService) GetTradesByBot(botID uint, limit int) ([]models.Trade, error) {
	var trades []models.Trade
	query := s.db.Where("bot_id = ?", botID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&trades).Error
	return trades, err
}

// CountTradesByBot returns the number of recorded trades for a bot
func (s *TradeService) CountTradesByBot(botID uint) (int64, error) {
	var total int64
	err := s.db.Model(&models.Trade{}).Where("bot_id = ?", botID).Count(&total).Error
	return total, err
}

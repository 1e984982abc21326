package database

import (
	"fmt"
	"log"

	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDatabase opens the database and migrates the schema. The handle is
// returned and passed explicitly into services; there is no package-level
// instance.
func InitDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Webhook{},
		&models.Bot{},
		&models.Credential{},
		&models.Trade{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database initialized successfully")
	return db, nil
}

package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/config"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/database"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/handlers"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/routes"
	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Parse command line flags
	configFile := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", *configFile, err)
	}

	// Initialize database
	db, err := database.InitDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Add middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// Wire handlers with explicit dependencies
	processor := services.NewAlertProcessor(db, cfg)
	alertHandler := handlers.NewAlertHandler(processor)
	mgmtHandler := handlers.NewManagementHandler(db, cfg)

	// Set up routes
	routes.SetupRoutes(r, alertHandler, mgmtHandler)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("TradingView webhook endpoint: http://%s/api/v1/processAlert/<token>", addr)
	log.Printf("Health check: http://%s/health", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

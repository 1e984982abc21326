package routes

import (
	"net/http"

	"github.com/CRT-AUTO/Trading-bot-app-V1/internal/handlers"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, alertHandler *handlers.AlertHandler, mgmtHandler *handlers.ManagementHandler) {
	r.HandleMethodNotAllowed = true
	r.Use(corsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// API routes
	api := r.Group("/api/v1")
	{
		// TradingView alert endpoint (token-authenticated)
		api.POST("/processAlert/:token", alertHandler.HandleProcessAlert)

		// Bot management endpoints
		bots := api.Group("/bots")
		{
			bots.POST("", mgmtHandler.CreateBot)
			bots.GET("", mgmtHandler.GetBots)
			bots.GET("/:id", mgmtHandler.GetBot)
			bots.PUT("/:id", mgmtHandler.UpdateBot)
			bots.DELETE("/:id", mgmtHandler.DeleteBot)
			bots.POST("/:id/webhook", mgmtHandler.MintWebhook)
			bots.GET("/:id/trades", mgmtHandler.GetBotTrades)
		}

		api.PUT("/credentials", mgmtHandler.UpsertCredential)
		api.GET("/positions", mgmtHandler.GetPositions)
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "tv-bybit-relay",
		})
	})

	// Root endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "TradingView Bybit Relay",
			"version": "1.0.0",
			"endpoints": gin.H{
				"alerts": "/api/v1/processAlert/:token",
				"bots":   "/api/v1/bots",
				"health": "/health",
			},
		})
	})
}

// corsMiddleware sets the CORS headers on every response and short-circuits
// preflight requests with 204
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

package http

import (
	"github.com/gin-gonic/gin"

	"github.com/skinpredict/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	router.POST("/analyze", handler.Analyze)
	router.POST("/chat", handler.Chat)
	router.GET("/find-dermatologists", handler.FindDermatologists)
	router.GET("/product-recommendations", handler.ProductRecommendations)
	router.GET("/nearby-products", handler.NearbyProducts)
	router.POST("/send-email", handler.SendEmail)

	return router
}

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/skinpredict/backend/config"
	httpDelivery "github.com/skinpredict/backend/internal/delivery/http"
	"github.com/skinpredict/backend/internal/infrastructure/cache"
	"github.com/skinpredict/backend/internal/infrastructure/groq"
	"github.com/skinpredict/backend/internal/infrastructure/mailer"
	"github.com/skinpredict/backend/internal/infrastructure/places"
	"github.com/skinpredict/backend/internal/infrastructure/retailer"
	"github.com/skinpredict/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.Environment == "development" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	log := logrus.WithField("component", "main")
	log.Infof("Starting SkinPredict Backend v1.0.0")
	log.Infof("Environment: %s", cfg.Server.Environment)
	log.Infof("Port: %s", cfg.Server.Port)

	// Infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	groqClient := groq.NewClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Groq.Model)
	if groqClient.Configured() {
		log.Infof("Groq API configured: %s (model %s)", cfg.Groq.BaseURL, cfg.Groq.Model)
	} else {
		log.Warn("Groq API key not configured - analysis and chat will degrade")
	}

	placesClient := places.NewClient(cfg.Maps.APIKey, cfg.Maps.BaseURL)
	if cfg.Maps.APIKey == "" {
		log.Warn("Maps API key not configured - store and dermatologist lookups will fail")
	}

	fetcher := retailer.NewFetcher(cfg.Scrape.Timeout, cfg.Scrape.MinDelay, cfg.Scrape.MaxDelay)
	sephora := retailer.NewSephoraAdapter(fetcher, cfg.Scrape.SephoraBaseURL)
	ulta := retailer.NewUltaAdapter(fetcher, cfg.Scrape.UltaBaseURL)

	smtpMailer := mailer.New(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.From, cfg.Mail.Password)

	// Usecase layer
	analysisService := usecase.NewAnalysisService(usecase.AnalysisDeps{
		Chat: groqClient,
	})
	recommendationService := usecase.NewRecommendationService(
		usecase.NewCatalogStore(), cfg.Scrape.Timeout, sephora, ulta)
	locatorService := usecase.NewLocatorService(placesClient, memoryCache, cfg.Cache.TTL)

	// HTTP delivery
	handler := httpDelivery.NewHandler(analysisService, recommendationService, locatorService, smtpMailer)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

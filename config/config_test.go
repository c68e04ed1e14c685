package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("SKINPREDICT_SERVER_PORT")
		os.Unsetenv("SKINPREDICT_SERVER_ENVIRONMENT")
		os.Unsetenv("SKINPREDICT_GROQ_API_KEY")
		os.Unsetenv("SKINPREDICT_GROQ_BASE_URL")
		os.Unsetenv("SKINPREDICT_GROQ_MODEL")
		os.Unsetenv("SKINPREDICT_MAPS_API_KEY")
		os.Unsetenv("SKINPREDICT_MAPS_BASE_URL")
		os.Unsetenv("SKINPREDICT_SCRAPE_MIN_DELAY")
		os.Unsetenv("SKINPREDICT_SCRAPE_MAX_DELAY")
		os.Unsetenv("SKINPREDICT_SCRAPE_TIMEOUT")
		os.Unsetenv("SKINPREDICT_CACHE_TTL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Groq.BaseURL != "https://api.groq.com/openai" {
			t.Errorf("Groq.BaseURL = %s, want https://api.groq.com/openai", cfg.Groq.BaseURL)
		}
		if cfg.Groq.Model != "llama3-70b-8192" {
			t.Errorf("Groq.Model = %s, want llama3-70b-8192", cfg.Groq.Model)
		}
		if cfg.Maps.BaseURL != "https://maps.googleapis.com/maps/api" {
			t.Errorf("Maps.BaseURL = %s, want https://maps.googleapis.com/maps/api", cfg.Maps.BaseURL)
		}
		if cfg.Scrape.MinDelay != 1*time.Second {
			t.Errorf("Scrape.MinDelay = %v, want 1s", cfg.Scrape.MinDelay)
		}
		if cfg.Scrape.MaxDelay != 3*time.Second {
			t.Errorf("Scrape.MaxDelay = %v, want 3s", cfg.Scrape.MaxDelay)
		}
		if cfg.Scrape.Timeout != 10*time.Second {
			t.Errorf("Scrape.Timeout = %v, want 10s", cfg.Scrape.Timeout)
		}
		if cfg.Cache.TTL != 10*time.Minute {
			t.Errorf("Cache.TTL = %v, want 10m", cfg.Cache.TTL)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SKINPREDICT_SERVER_PORT", "9090")
		os.Setenv("SKINPREDICT_SERVER_ENVIRONMENT", "production")
		os.Setenv("SKINPREDICT_GROQ_API_KEY", "gsk-test")
		os.Setenv("SKINPREDICT_MAPS_API_KEY", "maps-test")
		os.Setenv("SKINPREDICT_SCRAPE_MIN_DELAY", "0s")
		os.Setenv("SKINPREDICT_SCRAPE_MAX_DELAY", "500ms")
		os.Setenv("SKINPREDICT_SCRAPE_TIMEOUT", "5s")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Groq.APIKey != "gsk-test" {
			t.Errorf("Groq.APIKey = %s, want gsk-test", cfg.Groq.APIKey)
		}
		if cfg.Maps.APIKey != "maps-test" {
			t.Errorf("Maps.APIKey = %s, want maps-test", cfg.Maps.APIKey)
		}
		if cfg.Scrape.MinDelay != 0 {
			t.Errorf("Scrape.MinDelay = %v, want 0", cfg.Scrape.MinDelay)
		}
		if cfg.Scrape.MaxDelay != 500*time.Millisecond {
			t.Errorf("Scrape.MaxDelay = %v, want 500ms", cfg.Scrape.MaxDelay)
		}
		if cfg.Scrape.Timeout != 5*time.Second {
			t.Errorf("Scrape.Timeout = %v, want 5s", cfg.Scrape.Timeout)
		}
	})

	t.Run("fails validation for unknown environment", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SKINPREDICT_SERVER_ENVIRONMENT", "staging")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for unknown environment")
		}
	})

	t.Run("fails validation when max delay below min delay", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SKINPREDICT_SCRAPE_MIN_DELAY", "3s")
		os.Setenv("SKINPREDICT_SCRAPE_MAX_DELAY", "1s")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for inverted delay bounds")
		}
	})

	t.Run("fails validation for non-positive timeout", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SKINPREDICT_SCRAPE_TIMEOUT", "0s")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for zero timeout")
		}
	})
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Groq   GroqConfig
	Maps   MapsConfig
	Scrape ScrapeConfig
	Mail   MailConfig
	Cache  CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GroqConfig holds chat/vision completion API configuration
type GroqConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// MapsConfig holds places API configuration
type MapsConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// ScrapeConfig holds retailer scraping configuration.
// MinDelay/MaxDelay bound the randomized politeness delay before each fetch;
// it directly impacts request latency, so it is configurable.
type ScrapeConfig struct {
	SephoraBaseURL string        `mapstructure:"sephora_base_url"`
	UltaBaseURL    string        `mapstructure:"ulta_base_url"`
	MinDelay       time.Duration `mapstructure:"min_delay"`
	MaxDelay       time.Duration `mapstructure:"max_delay"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// MailConfig holds outbound email configuration
type MailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort string `mapstructure:"smtp_port"`
	From     string `mapstructure:"from"`
	Password string `mapstructure:"password"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/skinpredict/")

	// Environment variable settings
	v.SetEnvPrefix("SKINPREDICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Groq defaults
	v.SetDefault("groq.base_url", "https://api.groq.com/openai")
	v.SetDefault("groq.model", "llama3-70b-8192")

	// Maps defaults
	v.SetDefault("maps.base_url", "https://maps.googleapis.com/maps/api")

	// Scrape defaults
	v.SetDefault("scrape.sephora_base_url", "https://www.sephora.com")
	v.SetDefault("scrape.ulta_base_url", "https://www.ulta.com")
	v.SetDefault("scrape.min_delay", "1s")
	v.SetDefault("scrape.max_delay", "3s")
	v.SetDefault("scrape.timeout", "10s")

	// Mail defaults
	v.SetDefault("mail.smtp_host", "smtp.gmail.com")
	v.SetDefault("mail.smtp_port", "587")
	v.SetDefault("mail.from", "skinpredict@example.com")

	// Cache defaults
	v.SetDefault("cache.ttl", "10m")
}

// validate validates the configuration.
// Upstream API keys are deliberately NOT required here: endpoints that need a
// missing key fail with a descriptive 500 at request time instead of keeping
// the whole service from starting.
func validate(config *Config) error {
	env := config.Server.Environment
	if env != "development" && env != "production" && env != "test" {
		return fmt.Errorf("environment must be 'development', 'production' or 'test', got: %s", env)
	}

	if config.Scrape.MinDelay < 0 || config.Scrape.MaxDelay < 0 {
		return fmt.Errorf("scrape delays must not be negative")
	}

	if config.Scrape.MaxDelay < config.Scrape.MinDelay {
		return fmt.Errorf("scrape.max_delay (%s) must be >= scrape.min_delay (%s)",
			config.Scrape.MaxDelay, config.Scrape.MinDelay)
	}

	if config.Scrape.Timeout <= 0 {
		return fmt.Errorf("scrape.timeout must be positive, got: %s", config.Scrape.Timeout)
	}

	return nil
}

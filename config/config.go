package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`  // e.g., ":8080"
	FrontendOrigin string `mapstructure:"FRONTEND_ORIGIN"` // CORS origin, e.g., "http://localhost:3000"
	AppEnv         string `mapstructure:"APP_ENV"`         // "development" or "production"

	// Generation Configuration
	OpenRouterKey     string `mapstructure:"OPENROUTER_API_KEY"`  // API key for the completion endpoint
	OpenRouterBaseURL string `mapstructure:"OPENROUTER_BASE_URL"` // e.g., "https://openrouter.ai/api/v1"
	GenerationModel   string `mapstructure:"GENERATION_MODEL"`    // e.g., "anthropic/claude-3-opus:free"
	MaxOutputTokens   int    `mapstructure:"MAX_OUTPUT_TOKENS"`   // output budget for one generation
	SiteName          string `mapstructure:"SITE_NAME"`           // sent as X-Title to the provider
	SiteURL           string `mapstructure:"SITE_URL"`            // sent as HTTP-Referer to the provider

	// Database Configuration
	DatabaseURL string `mapstructure:"DATABASE_URL"` // Postgres DSN for the hosted project store

	// Identity Service Configuration
	IdentityURL     string `mapstructure:"IDENTITY_URL"`      // base URL of the hosted auth service
	IdentityAnonKey string `mapstructure:"IDENTITY_ANON_KEY"` // public anon key for the auth service

	// Session Cache Configuration
	RedisAddr string `mapstructure:"REDIS_ADDR"` // optional; empty selects the in-memory cache

	// Offline Fallback Configuration
	OfflineStorePath string `mapstructure:"OFFLINE_STORE_PATH"` // JSON file for the degraded save path
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	viper.SetDefault("GENERATION_MODEL", "anthropic/claude-3-opus:free")
	viper.SetDefault("MAX_OUTPUT_TOKENS", 4000)
	viper.SetDefault("SITE_NAME", "Prompt2Site Generator")
	viper.SetDefault("OFFLINE_STORE_PATH", "offline_projects.json")

	// Keys without a meaningful default still need one registered, otherwise
	// Unmarshal will not see their environment values.
	viper.SetDefault("FRONTEND_ORIGIN", "")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("OPENROUTER_API_KEY", "")
	viper.SetDefault("SITE_URL", "")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("IDENTITY_URL", "")
	viper.SetDefault("IDENTITY_ANON_KEY", "")
	viper.SetDefault("REDIS_ADDR", "")

	err = viper.ReadInConfig()
	if err != nil {
		// If config file not found, log it but continue if env vars might be set
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.OpenRouterKey == "" {
		log.Println("WARN: OPENROUTER_API_KEY is not set; generations will fall back to placeholder HTML.")
	}
	if config.DatabaseURL == "" {
		log.Println("WARN: DATABASE_URL is not set; projects will only be saved to the offline store.")
	}

	return
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	ServiceName    string
	HTTPPort       int
	MaxUploadBytes int64
	Database       DatabaseConfig
	OpenAI         OpenAIConfig
	RabbitMQ       RabbitMQConfig
	Plausibility   PlausibilityConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// OpenAIConfig holds the vision model settings
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// RabbitMQConfig holds the optional reading-event publishing settings.
// Leaving URL empty disables event publishing.
type RabbitMQConfig struct {
	URL                 string
	EventsExchange      string
	CreatedRoutingKey   string
	ConfirmedRoutingKey string
}

// PlausibilityConfig holds thresholds for the reading plausibility advisory
type PlausibilityConfig struct {
	SpikeFactor float64
	MinHistory  int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:    getEnv("SERVICE_NAME", "meter-reading-api"),
		HTTPPort:       getEnvAsInt("SERVICE_PORT", 3000),
		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 50<<20)),
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:                 getEnv("RABBITMQ_URL", ""),
			EventsExchange:      getEnv("RABBITMQ_EVENTS_EXCHANGE", "meter-reading.events.exchange"),
			CreatedRoutingKey:   getEnv("RABBITMQ_CREATED_ROUTING_KEY", "meter.reading.created"),
			ConfirmedRoutingKey: getEnv("RABBITMQ_CONFIRMED_ROUTING_KEY", "meter.reading.confirmed"),
		},
		Plausibility: PlausibilityConfig{
			SpikeFactor: getEnvAsFloat("PLAUSIBILITY_SPIKE_FACTOR", 10.0),
			MinHistory:  getEnvAsInt("PLAUSIBILITY_MIN_HISTORY", 1),
		},
	}

	// Validate required fields
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set in environment variables")
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required but not set in environment variables")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

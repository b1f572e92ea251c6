package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required"`
	Port        string `validate:"required"`
	LogLevel    string

	// Region is the AWS region the table lives in
	Region string `validate:"required"`
	// TableName is the single table backing every entity type
	TableName string `validate:"required"`
	// IsLocal switches the store client to the emulator endpoint
	IsLocal bool
	// LocalEndpoint is the emulator address used when IsLocal is set
	LocalEndpoint string

	JWT       JWTConfig
	RateLimit RateLimitConfig
}

// JWTConfig holds bearer-token configuration for the local harness
type JWTConfig struct {
	// Secret verifies inbound tokens when set. Unset, tokens are parsed
	// without verification, matching the emulator's permissive posture.
	Secret string
}

// RateLimitConfig holds rate limiting configuration for the local server
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REGION", "us-east-1")
	viper.SetDefault("IS_LOCAL", false)
	viper.SetDefault("LOCAL_ENDPOINT", "http://localhost:8000")
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	config := &Config{
		Environment:   viper.GetString("ENVIRONMENT"),
		Port:          viper.GetString("PORT"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		Region:        viper.GetString("REGION"),
		TableName:     viper.GetString("TABLE_NAME"),
		IsLocal:       viper.GetBool("IS_LOCAL"),
		LocalEndpoint: viper.GetString("LOCAL_ENDPOINT"),
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

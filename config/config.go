package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	API    APIConfig
	App    AppConfig
}

type ServerConfig struct {
	Port                string
	AuthSecret          string
	PipelineTickSeconds int
}

type APIConfig struct {
	BaseURL string
	WSBase  string
}

type AppConfig struct {
	Environment string
	DeployMode  string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:                getEnv("PORT", "8000"),
			AuthSecret:          getEnv("AUTH_SECRET", "dev-secret-change-me"),
			PipelineTickSeconds: getEnvAsInt("PIPELINE_TICK_SECONDS", 5),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8000/api/v1"),
			WSBase:  getEnv("WS_BASE_URL", "ws://localhost:8000"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			DeployMode:  getEnv("DEPLOY_MODE", "server"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}

	if c.App.DeployMode != "server" && c.App.DeployMode != "static" {
		return fmt.Errorf("DEPLOY_MODE must be server or static, got %q", c.App.DeployMode)
	}

	return nil
}

// BasePath returns the route prefix pages are addressed under.
// Static exports are hosted under /bp-review, server deployments at root.
// The API contract is unaffected by deploy mode.
func (c *Config) BasePath() string {
	if c.App.DeployMode == "static" {
		return "/bp-review"
	}
	return ""
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
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

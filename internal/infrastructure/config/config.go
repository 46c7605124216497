// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (airport reference data)
	PostgresURI string

	// FlightAware AeroAPI
	AeroAPIKey     string
	AeroAPIBaseURL string
	AeroAPITimeout time.Duration

	// Slack
	SlackBotToken string
	SlackBaseURL  string

	// OpenSky (optional live position feed)
	OpenSkyClientID     string
	OpenSkyClientSecret string

	// Scheduler
	ReconcileInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "flightwatch"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		AeroAPIKey:     getEnv("AEROAPI_KEY", ""),
		AeroAPIBaseURL: getEnv("AEROAPI_BASE_URL", "https://aeroapi.flightaware.com/aeroapi"),
		AeroAPITimeout: time.Duration(getEnvAsInt("AEROAPI_TIMEOUT", 30)) * time.Second,

		SlackBotToken: getEnv("SLACK_BOT_TOKEN", ""),
		SlackBaseURL:  getEnv("SLACK_BASE_URL", "https://slack.com/api"),

		OpenSkyClientID:     getEnv("OPENSKY_CLIENT", ""),
		OpenSkyClientSecret: getEnv("OPENSKY_SECRET", ""),

		ReconcileInterval: time.Duration(getEnvAsInt("RECONCILE_INTERVAL", 600)) * time.Second,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort        string
	DatabaseURL       string
	JWTSecret         string
	IPOSyncURL        string
	SyncIntervalHours string
	LogLevel          string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		IPOSyncURL:        getEnv("IPO_SYNC_URL", ""),
		SyncIntervalHours: getEnv("SYNC_INTERVAL_HOURS", "8"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

// GetSyncInterval returns the external sync cadence from environment or default.
func (c *Config) GetSyncInterval() time.Duration {
	if c.SyncIntervalHours == "" {
		return 8 * time.Hour
	}

	hours, err := strconv.Atoi(c.SyncIntervalHours)
	if err != nil || hours <= 0 {
		logrus.Warnf("Invalid SYNC_INTERVAL_HOURS value: %s, using default 8 hours", c.SyncIntervalHours)
		return 8 * time.Hour
	}

	return time.Duration(hours) * time.Hour
}

// ApplyLogLevel configures the global logrus level from config.
func (c *Config) ApplyLogLevel() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

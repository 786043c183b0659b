// Package config loads runtime configuration from the environment and an
// optional .env file. The database credential has no embedded fallback:
// a missing DATABASE_URL fails startup.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Server
	ServerPort     string
	RequestTimeout time.Duration

	// Database
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// Logging
	LogLevel   string
	LogFile    string
	LogMaxSize int // megabytes before rotation
}

// Load reads configuration from environment variables and a .env file.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "log/reelbase.log")
	viper.SetDefault("LOG_MAX_SIZE_MB", 50)

	cfg := &Config{
		ServerPort:        viper.GetString("SERVER_PORT"),
		RequestTimeout:    time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		DatabaseURL:       viper.GetString("DATABASE_URL"),
		DBMaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute,
		LogLevel:          viper.GetString("LOG_LEVEL"),
		LogFile:           viper.GetString("LOG_FILE"),
		LogMaxSize:        viper.GetInt("LOG_MAX_SIZE_MB"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

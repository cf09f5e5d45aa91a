package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Session storage backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	// BotURL is the deep link handed out in groups; t.me/<username> when empty
	BotURL     string
	ChannelURL string
	Database   DatabaseConfig
	Session    SessionConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// SessionConfig selects where conversation state lives
type SessionConfig struct {
	Backend     string
	RedisAddr   string
	RedisPrefix string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:   os.Getenv("BOT_TOKEN"),
		BotURL:     os.Getenv("BOT_URL_FOR_START"),
		ChannelURL: os.Getenv("CHANNEL_URL"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "assembl"),
			User:     getEnv("DB_USER", "assembl"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Session: SessionConfig{
			Backend:     getEnv("STATE_BACKEND", BackendMemory),
			RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPrefix: getEnv("REDIS_PREFIX", "assembl:session"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	switch cfg.Session.Backend {
	case BackendMemory, BackendRedis:
	default:
		return nil, fmt.Errorf("STATE_BACKEND must be %q or %q, got %q", BackendMemory, BackendRedis, cfg.Session.Backend)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

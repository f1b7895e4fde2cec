package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	AI         AIConfig
	Redis      RedisConfig
	Extraction ExtractionConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string
	Env         string
	Timezone    string
	MaxUploadMB int
}

// StoreConfig selects where application state lives.
type StoreConfig struct {
	Backend      string
	SeedDemoData bool
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	PoolMin  int
	PoolMax  int
	Migrate  bool
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// AIConfig holds generative model configuration.
type AIConfig struct {
	Enabled bool
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// RedisConfig holds the narrative cache connection. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ExtractionConfig sizes the document extraction worker pool.
type ExtractionConfig struct {
	Workers   int
	QueueSize int
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("TIMEZONE", "Europe/London")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "propman")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("AI_ENABLED", true)
	v.SetDefault("AI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("AI_MODEL", "gemini-2.5-flash")
	v.SetDefault("AI_TIMEOUT", "60s")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "24h")
	v.SetDefault("EXTRACTION_WORKERS", 2)
	v.SetDefault("EXTRACTION_QUEUE_SIZE", 32)

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetString("PORT"),
			Env:         v.GetString("ENV"),
			Timezone:    v.GetString("TIMEZONE"),
			MaxUploadMB: v.GetInt("MAX_UPLOAD_MB"),
		},
		Store: StoreConfig{
			Backend:      strings.ToLower(v.GetString("STORE_BACKEND")),
			SeedDemoData: v.GetBool("SEED_DEMO_DATA"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			PoolMin:  v.GetInt("DB_POOL_MIN"),
			PoolMax:  v.GetInt("DB_POOL_MAX"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		AI: AIConfig{
			Enabled: v.GetBool("AI_ENABLED"),
			APIKey:  v.GetString("AI_API_KEY"),
			BaseURL: v.GetString("AI_BASE_URL"),
			Model:   v.GetString("AI_MODEL"),
			Timeout: v.GetDuration("AI_TIMEOUT"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Extraction: ExtractionConfig{
			Workers:   v.GetInt("EXTRACTION_WORKERS"),
			QueueSize: v.GetInt("EXTRACTION_QUEUE_SIZE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a known location: %w", c.Server.Timezone, err)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("MAX_UPLOAD_MB must be at least 1")
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendPostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendMemory, BackendPostgres, c.Store.Backend)
	}

	if c.AI.Enabled && c.AI.APIKey == "" {
		return fmt.Errorf("AI_API_KEY is required when AI_ENABLED is true")
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("AI_TIMEOUT must be non-negative")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must be non-negative")
	}

	if c.Extraction.Workers < 1 {
		return fmt.Errorf("EXTRACTION_WORKERS must be at least 1")
	}
	if c.Extraction.QueueSize < 1 {
		return fmt.Errorf("EXTRACTION_QUEUE_SIZE must be at least 1")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	return nil
}

func (d DatabaseConfig) validate() error {
	if d.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if d.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if d.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if d.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if d.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if d.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if d.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if d.PoolMin > d.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}
	return nil
}

// Location returns the configured timezone. Validate guarantees it loads.
func (s ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MaxUploadBytes is the upload size limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

// DSN builds a postgres connection URL with the given scheme.
func (d DatabaseConfig) DSN(scheme string) string {
	return fmt.Sprintf(
		"%s://%s:%s@%s:%s/%s?sslmode=disable",
		scheme,
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
	)
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithDefaults(t *testing.T) {
	clearConfigEnvVars(t)
	t.Setenv("AI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Expected env development, got %s", cfg.Server.Env)
	}
	if cfg.Server.Timezone != "Europe/London" {
		t.Errorf("Expected timezone Europe/London, got %s", cfg.Server.Timezone)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("Expected memory backend, got %s", cfg.Store.Backend)
	}
	if !cfg.Store.SeedDemoData {
		t.Error("Expected demo data to be seeded by default")
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("Expected model gemini-2.5-flash, got %s", cfg.AI.Model)
	}
	if cfg.AI.Timeout != 60*time.Second {
		t.Errorf("Expected AI timeout 60s, got %s", cfg.AI.Timeout)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Expected cache disabled by default, got %s", cfg.Redis.Addr)
	}
	if cfg.Extraction.Workers != 2 {
		t.Errorf("Expected 2 extraction workers, got %d", cfg.Extraction.Workers)
	}
	if cfg.Extraction.QueueSize != 32 {
		t.Errorf("Expected queue size 32, got %d", cfg.Extraction.QueueSize)
	}
	if cfg.Server.MaxUploadBytes() != 10<<20 {
		t.Errorf("Expected 10MB upload limit, got %d", cfg.Server.MaxUploadBytes())
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	clearConfigEnvVars(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_POOL_MIN", "5")
	t.Setenv("DB_POOL_MAX", "20")
	t.Setenv("AI_ENABLED", "false")
	t.Setenv("AI_TIMEOUT", "0s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("EXTRACTION_WORKERS", "4")
	t.Setenv("CORS_ORIGINS", "http://example.com,https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendPostgres {
		t.Errorf("Expected postgres backend, got %s", cfg.Store.Backend)
	}
	if cfg.Store.SeedDemoData {
		t.Error("Expected demo data to be disabled")
	}
	if cfg.Database.PoolMax != 20 {
		t.Errorf("Expected pool max 20, got %d", cfg.Database.PoolMax)
	}
	if cfg.AI.Enabled {
		t.Error("Expected AI to be disabled")
	}
	if cfg.AI.Timeout != 0 {
		t.Errorf("Expected no AI timeout, got %s", cfg.AI.Timeout)
	}
	if cfg.Redis.TTL != time.Hour {
		t.Errorf("Expected cache TTL 1h, got %s", cfg.Redis.TTL)
	}
	if cfg.Extraction.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Extraction.Workers)
	}
	if cfg.CORS.Origins[0] != "http://example.com" {
		t.Errorf("Expected first origin http://example.com, got %s", cfg.CORS.Origins[0])
	}
	if dsn := cfg.Database.DSN("pgx5"); dsn != "pgx5://testuser:testpass@db:5433/testdb?sslmode=disable" {
		t.Errorf("Unexpected DSN %s", dsn)
	}
}

func TestLoad_MissingAIKey(t *testing.T) {
	clearConfigEnvVars(t)

	if _, err := Load(); err == nil {
		t.Error("Expected error when AI is enabled without AI_API_KEY")
	}
}

func TestLoad_PostgresRequiresPassword(t *testing.T) {
	clearConfigEnvVars(t)
	t.Setenv("AI_ENABLED", "false")
	t.Setenv("STORE_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Error("Expected error when DB_PASSWORD is missing for the postgres backend")
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Env: "development", Timezone: "Europe/London", MaxUploadMB: 10},
		Store:  StoreConfig{Backend: BackendPostgres},
		Database: DatabaseConfig{
			Host: "localhost", Port: "5432", Name: "propman",
			User: "postgres", Password: "postgres", PoolMin: 2, PoolMax: 10,
		},
		CORS:       CORSConfig{Origins: []string{"http://localhost:3000"}},
		AI:         AIConfig{Enabled: true, APIKey: "key", Timeout: time.Minute},
		Extraction: ExtractionConfig{Workers: 2, QueueSize: 32},
	}
}

func TestValidate_InvalidPoolSizes(t *testing.T) {
	tests := []struct {
		name    string
		poolMin int
		poolMax int
		wantErr bool
	}{
		{name: "negative pool min", poolMin: -1, poolMax: 10, wantErr: true},
		{name: "zero pool max", poolMin: 0, poolMax: 0, wantErr: true},
		{name: "pool min greater than max", poolMin: 15, poolMax: 10, wantErr: true},
		{name: "valid pool sizes", poolMin: 2, poolMax: 10, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Database.PoolMin = tt.poolMin
			cfg.Database.PoolMax = tt.poolMax

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_MemoryBackendIgnoresDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Backend = BackendMemory
	cfg.Database = DatabaseConfig{}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected memory backend to skip database validation, got %v", err)
	}
}

func TestValidate_InvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"unknown timezone", func(c *Config) { c.Server.Timezone = "Mars/Olympus" }},
		{"zero upload limit", func(c *Config) { c.Server.MaxUploadMB = 0 }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }},
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"missing db password", func(c *Config) { c.Database.Password = "" }},
		{"ai without key", func(c *Config) { c.AI.APIKey = "" }},
		{"negative ai timeout", func(c *Config) { c.AI.Timeout = -time.Second }},
		{"no workers", func(c *Config) { c.Extraction.Workers = 0 }},
		{"no queue", func(c *Config) { c.Extraction.QueueSize = 0 }},
		{"missing CORS origins", func(c *Config) { c.CORS.Origins = []string{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error but got none")
			}
		})
	}
}

func TestLocation(t *testing.T) {
	loc := ServerConfig{Timezone: "Europe/London"}.Location()
	if loc.String() != "Europe/London" {
		t.Errorf("Expected Europe/London, got %s", loc)
	}
	if (ServerConfig{Timezone: "Nowhere/Special"}).Location() != time.UTC {
		t.Error("Expected UTC fallback for unknown timezone")
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "single origin", input: "http://localhost:3000", expect: []string{"http://localhost:3000"}},
		{name: "multiple origins", input: "http://localhost:3000,http://localhost:3001", expect: []string{"http://localhost:3000", "http://localhost:3001"}},
		{name: "origins with spaces", input: " http://localhost:3000 , http://localhost:3001 ", expect: []string{"http://localhost:3000", "http://localhost:3001"}},
		{name: "empty string", input: "", expect: []string{}},
		{name: "only commas", input: ",,,", expect: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseOrigins(tt.input)
			if len(result) != len(tt.expect) {
				t.Errorf("Expected %d origins, got %d", len(tt.expect), len(result))
				return
			}
			for i, origin := range result {
				if origin != tt.expect[i] {
					t.Errorf("Expected origin %s at index %d, got %s", tt.expect[i], i, origin)
				}
			}
		})
	}
}

var configEnvVars = []string{
	"PORT", "ENV", "TIMEZONE", "MAX_UPLOAD_MB", "STORE_BACKEND", "SEED_DEMO_DATA",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_POOL_MIN", "DB_POOL_MAX", "DB_MIGRATE",
	"CORS_ORIGINS", "AI_ENABLED", "AI_API_KEY", "AI_BASE_URL", "AI_MODEL", "AI_TIMEOUT",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL", "EXTRACTION_WORKERS", "EXTRACTION_QUEUE_SIZE",
}

// clearConfigEnvVars unsets every config variable for the duration of the test.
func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, value) })
		}
		os.Unsetenv(key)
	}
}

package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	DatabaseURL         string
	StoragePath         string
	StorageBaseURL      string
	SwatchCatalogPath   string
	TemplateCatalogPath string
	GeminiAPIKey        string
	GeminiModel         string
	GeminiBaseURL       string
	ImageSize           string
	RenderConcurrency   int
	WorkerPollInterval  time.Duration
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	RateLimitPerMin     int
	CORSAllowedOrigins  []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// DATABASE_URL is optional here; processes that need persistence call RequireDatabase.
func LoadConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                port,
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		StoragePath:         getEnv("STORAGE_PATH", "./data/storage"),
		StorageBaseURL:      getEnv("STORAGE_BASE_URL", "http://localhost:"+port+"/static"),
		SwatchCatalogPath:   os.Getenv("SWATCH_CATALOG_PATH"),
		TemplateCatalogPath: os.Getenv("TEMPLATE_CATALOG_PATH"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),
		GeminiBaseURL:       getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		ImageSize:           strings.ToLower(getEnv("IMAGE_SIZE", "1920x1080")),
		RenderConcurrency:   getEnvInt("RENDER_CONCURRENCY", 4),
		WorkerPollInterval:  time.Millisecond * time.Duration(getEnvInt("WORKER_POLL_INTERVAL_MS", 1000)),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if cfg.ImageSize != "1920x1080" && cfg.ImageSize != "1792x1008" {
		return nil, fmt.Errorf("IMAGE_SIZE must be 1920x1080 or 1792x1008, got %q", cfg.ImageSize)
	}
	if cfg.RenderConcurrency <= 0 {
		return nil, fmt.Errorf("RENDER_CONCURRENCY must be positive")
	}

	return cfg, nil
}

// RequireDatabase fails when DATABASE_URL is not set.
func (c *Config) RequireDatabase() error {
	if c == nil || c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// PersistenceEnabled reports whether a database is configured.
func (c *Config) PersistenceEnabled() bool {
	return c != nil && c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blanks and duplicates.
func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	seen := map[string]struct{}{}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

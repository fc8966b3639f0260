package homepage

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the server. Site identity and page
// metadata are not configurable here; they live in package consts.
type Config struct {
	URL          string // Canonical URL (default "http://localhost:3000")
	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/notes.db")
	ContentDir   string // Markdown notes (default "content/notes")
	StaticDir    string // User static assets (default "public")

	PostCacheTTL   time.Duration // default 5min
	WatchContent   bool          // Re-sync notes when ContentDir changes
	MetricsEnabled bool          // Serve /metrics
	LogLevel       string
}

func (c *Config) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/notes.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/notes"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// LoadConfig reads a .env file from the working directory when present and
// builds a Config from the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("homepage: load .env: %w", err)
	}

	cfg := Config{
		URL:          os.Getenv("SITE_URL"),
		Addr:         os.Getenv("ADDR"),
		DatabasePath: os.Getenv("DATABASE_PATH"),
		ContentDir:   os.Getenv("CONTENT_DIR"),
		StaticDir:    os.Getenv("STATIC_DIR"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}

	if v := os.Getenv("POST_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("homepage: POST_CACHE_TTL: %w", err)
		}
		cfg.PostCacheTTL = d
	}
	var err error
	if cfg.WatchContent, err = envBool("WATCH_CONTENT"); err != nil {
		return Config{}, err
	}
	if cfg.MetricsEnabled, err = envBool("METRICS_ENABLED"); err != nil {
		return Config{}, err
	}

	cfg.setDefaults()
	return cfg, nil
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("homepage: %s: %w", key, err)
	}
	return b, nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

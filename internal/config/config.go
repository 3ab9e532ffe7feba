package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultAdditions values control which additions a newly created product offers.
const (
	AdditionsAll  = "all"  // snapshot the whole ingredient catalog
	AdditionsNone = "none" // products start with no additions
)

// Config holds all application configuration.
type Config struct {
	Telegram TelegramConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Images   ImagesConfig
	Session  SessionConfig
	Menu     MenuConfig
	Log      LogConfig
}

// TelegramConfig contains chat transport settings.
type TelegramConfig struct {
	Token     string // bot credential
	AdminID   int64  // the single admin chat identity
	WebAppURL string // front-end URL offered on /start; optional
}

// HTTPConfig contains HTTP API settings.
type HTTPConfig struct {
	Address       string // listen address (e.g., ":8000")
	PublicBaseURL string // base URL used to build image links
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// ImagesConfig contains product photo storage settings.
type ImagesConfig struct {
	Dir string // directory for downloaded product photos
}

// SessionConfig bounds admin chat sessions.
type SessionConfig struct {
	TTL time.Duration // abandoned sessions expire after this
}

// MenuConfig contains catalog behaviour settings.
type MenuConfig struct {
	DefaultAdditions string // "all" or "none"
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// Load loads configuration from the environment. TG_TOKEN and ADMIN_ID are
// required; their absence is a fatal startup error surfaced to the caller.
func Load() (*Config, error) {
	cfg := &Config{
		Telegram: TelegramConfig{
			Token:     getEnv("TG_TOKEN", ""),
			WebAppURL: getEnv("WEBAPP_URL", ""),
		},
		HTTP: HTTPConfig{
			Address:       getEnv("HTTP_ADDRESS", ":8000"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8000"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "foodbot.db"),
		},
		Images: ImagesConfig{
			Dir: getEnv("IMAGES_DIR", "images"),
		},
		Menu: MenuConfig{
			DefaultAdditions: getEnv("DEFAULT_ADDITIONS", AdditionsAll),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("TG_TOKEN environment variable is not set")
	}

	adminRaw := getEnv("ADMIN_ID", "")
	if adminRaw == "" {
		return nil, fmt.Errorf("ADMIN_ID environment variable is not set")
	}
	adminID, err := strconv.ParseInt(adminRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_ID %q: %w", adminRaw, err)
	}
	cfg.Telegram.AdminID = adminID

	ttlRaw := getEnv("SESSION_TTL", "10m")
	ttl, err := time.ParseDuration(ttlRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttlRaw, err)
	}
	cfg.Session.TTL = ttl

	switch cfg.Menu.DefaultAdditions {
	case AdditionsAll, AdditionsNone:
	default:
		return nil, fmt.Errorf("invalid DEFAULT_ADDITIONS %q: must be %q or %q",
			cfg.Menu.DefaultAdditions, AdditionsAll, AdditionsNone)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// String returns a string representation of the config (credential masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Token: ***, AdminID: %d, HTTP: %s, DB: %s, Images: %s, SessionTTL: %s}",
		c.Telegram.AdminID, c.HTTP.Address, c.Database.Path, c.Images.Dir, c.Session.TTL)
}

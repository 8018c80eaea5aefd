package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	Token            string
	GuildID          string
	WelcomeChannelID string
	ApplyChannelID   string
	CTAChannelID     string

	StoreBackend string
	AlertsFile   string
	DatabaseURL  string

	DispatchInterval  time.Duration
	CountdownInterval time.Duration
	RetryWindow       time.Duration
	UTCOffsetHours    int

	Locale   string
	LogLevel string
}

// Load reads the configuration from the environment, after loading the given
// .env files (default ".env"), and validates it. Missing .env files are fine
// when the variables come from the environment (Docker, systemd, ...).
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		Token:            os.Getenv("DISCORD_BOT_TOKEN"),
		GuildID:          os.Getenv("DISCORD_SERVER_ID"),
		WelcomeChannelID: os.Getenv("WELCOME_CHANNEL_ID"),
		ApplyChannelID:   os.Getenv("APPLY_CHANNEL_ID"),
		CTAChannelID:     os.Getenv("PING_CTA_CHANNEL_ID"),
		StoreBackend:     envOr("STORE_BACKEND", BackendFile),
		AlertsFile:       envOr("ALERTS_FILE", "zvz_alerts.json"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Locale:           envOr("LOCALE", "en"),
		LogLevel:         envOr("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.DispatchInterval, err = durationEnv("DISPATCH_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CountdownInterval, err = durationEnv("COUNTDOWN_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RetryWindow, err = durationEnv("DISPATCH_RETRY_WINDOW", time.Hour); err != nil {
		return nil, err
	}
	if cfg.UTCOffsetHours, err = intEnv("UTC_OFFSET_HOURS", 7); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks the settings every command needs.
func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendFile:
		if strings.TrimSpace(c.AlertsFile) == "" {
			return fmt.Errorf("config: ALERTS_FILE cannot be empty")
		}
	case BackendPostgres:
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	default:
		return fmt.Errorf("config: STORE_BACKEND must be %q or %q, got %q", BackendFile, BackendPostgres, c.StoreBackend)
	}

	if c.DispatchInterval <= 0 || c.CountdownInterval <= 0 {
		return fmt.Errorf("config: DISPATCH_INTERVAL and COUNTDOWN_INTERVAL must be positive")
	}
	if c.RetryWindow < 0 {
		return fmt.Errorf("config: DISPATCH_RETRY_WINDOW cannot be negative")
	}
	if c.UTCOffsetHours < -12 || c.UTCOffsetHours > 14 {
		return fmt.Errorf("config: UTC_OFFSET_HOURS out of range: %d", c.UTCOffsetHours)
	}
	return nil
}

// ValidateBot checks the settings needed to connect to Discord.
func (c *Config) ValidateBot() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: DISCORD_BOT_TOKEN is required")
	}
	for name, id := range map[string]string{
		"DISCORD_SERVER_ID":   c.GuildID,
		"WELCOME_CHANNEL_ID":  c.WelcomeChannelID,
		"APPLY_CHANNEL_ID":    c.ApplyChannelID,
		"PING_CTA_CHANNEL_ID": c.CTAChannelID,
	} {
		if !isSnowflake(id) {
			return fmt.Errorf("config: %s must be a Discord id (digits only)", name)
		}
	}
	return nil
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s (%q): %w", key, v, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s (%q): %w", key, v, err)
	}
	return n, nil
}

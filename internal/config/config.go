package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// General
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":8080"`

	// HTTP
	CORSOrigins    string `envconfig:"CORS_ORIGINS"`
	RateLimitRPS   int    `envconfig:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst int    `envconfig:"RATE_LIMIT_BURST" default:"100"`

	// Chat intake
	ReplyDelay    time.Duration `envconfig:"CHAT_REPLY_DELAY" default:"600ms"`
	SessionTTL    time.Duration `envconfig:"CHAT_SESSION_TTL" default:"24h"`
	MaxSessionID  int           `envconfig:"CHAT_MAX_SESSION_ID" default:"128"`
	MaxMessageLen int           `envconfig:"CHAT_MAX_MESSAGE_LEN" default:"2000"`

	// Content guard (optional YAML override for thresholds and word lists)
	GuardRulesPath string `envconfig:"GUARD_RULES_PATH"`

	// Session store backends (memory is the default; Redis wins over SQLite)
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	SQLitePath    string `envconfig:"SQLITE_PATH"`

	// Email (Resend is the primary provider, SMTP the fallback)
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	EmailFrom    string `envconfig:"EMAIL_FROM" default:"hello@brightforge.dev"`
	LeadInbox    string `envconfig:"LEAD_INBOX" default:"leads@brightforge.dev"`

	// Slack lead alerts (optional)
	SlackBotToken    string `envconfig:"SLACK_BOT_TOKEN"`
	SlackLeadChannel string `envconfig:"SLACK_LEAD_CHANNEL" default:"#leads"`
}

// RedisEnabled returns true if a Redis session backend is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// SQLiteEnabled returns true if a SQLite session backend is configured.
func (c *Config) SQLiteEnabled() bool {
	return c.SQLitePath != ""
}

// ResendEnabled returns true if the Resend provider is configured.
func (c *Config) ResendEnabled() bool {
	return c.ResendAPIKey != ""
}

// SMTPEnabled returns true if the SMTP fallback provider is configured.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

// SlackEnabled returns true if Slack lead alerts are configured.
func (c *Config) SlackEnabled() bool {
	return c.SlackBotToken != "" && c.SlackLeadChannel != ""
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// LoadWithPrefix reads configuration with a prefix.
func LoadWithPrefix(prefix string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config with prefix %s: %w", prefix, err)
	}
	return &cfg, nil
}

// Package config tests.
package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 600*time.Millisecond, cfg.ReplyDelay)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 128, cfg.MaxSessionID)
	assert.Equal(t, 2000, cfg.MaxMessageLen)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "#leads", cfg.SlackLeadChannel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("CHAT_REPLY_DELAY", "0s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, time.Duration(0), cfg.ReplyDelay)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestConfig_BackendPredicates(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.SQLiteEnabled())
	assert.False(t, cfg.ResendEnabled())
	assert.False(t, cfg.SMTPEnabled())
	assert.False(t, cfg.SlackEnabled())

	cfg.RedisAddr = "localhost:6379"
	cfg.SQLitePath = "/tmp/sessions.db"
	cfg.ResendAPIKey = "re_test"
	cfg.SMTPHost = "smtp.example.com"
	cfg.SlackBotToken = "xoxb-test"
	cfg.SlackLeadChannel = "#leads"

	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.SQLiteEnabled())
	assert.True(t, cfg.ResendEnabled())
	assert.True(t, cfg.SMTPEnabled())
	assert.True(t, cfg.SlackEnabled())
}

func TestLoadWithPrefix(t *testing.T) {
	t.Setenv("SITE_LOG_LEVEL", "debug")
	cfg, err := LoadWithPrefix("SITE")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

package config

import (
	"testing"

	"blackjackbot/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDevelopmentDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("APP_ENV", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("DATABASE_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, api.DefaultLocalURL, cfg.APIBaseURL)
	assert.Equal(t, "./blackjack.db", cfg.DatabasePath)
	assert.False(t, cfg.Production)
	assert.Equal(t, 1000, cfg.StartBalance)
	assert.Equal(t, []int{5, 10, 25, 100}, cfg.ChipValues)
}

func TestLoadProductionRejectsInsecureURL(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_BASE_URL", "http://casino.example.com/api/blackjack")

	_, err := Load()
	assert.Error(t, err, "http outside localhost is fatal in production")
}

func TestLoadProductionRequiresURL(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_BASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDevelopmentFallsBackOnInvalidURL(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("APP_ENV", "")
	t.Setenv("API_BASE_URL", "ftp://not-http")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, api.DefaultLocalURL, cfg.APIBaseURL)
}

func TestLoadProductionAcceptsHTTPS(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_BASE_URL", "https://casino.example.com/api/blackjack")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Production)
	assert.Equal(t, "https://casino.example.com/api/blackjack", cfg.APIBaseURL)
}

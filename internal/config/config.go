package config

import (
	"fmt"
	"os"

	"blackjackbot/internal/api"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken     string
	APIBaseURL   string
	DatabasePath string
	Production   bool

	StartBalance int
	ChipValues   []int
	DefaultDecks int
}

func Load() (*Config, error) {
	godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	production := os.Getenv("APP_ENV") == "production"

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		if production {
			return nil, fmt.Errorf("API_BASE_URL is not set")
		}
		baseURL = api.DefaultLocalURL
	}

	validated, err := api.ValidateBaseURL(baseURL, production)
	if err != nil {
		if production {
			return nil, err
		}
		// In development fall back to the local endpoint instead of
		// refusing to start.
		validated = api.DefaultLocalURL
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./blackjack.db"
	}

	return &Config{
		BotToken:     token,
		APIBaseURL:   validated,
		DatabasePath: dbPath,
		Production:   production,
		StartBalance: 1000,
		ChipValues:   []int{5, 10, 25, 100},
		DefaultDecks: 1,
	}, nil
}

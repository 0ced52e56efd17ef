package main

import (
	"blackjackbot/internal/bot"
	"blackjackbot/internal/config"
	"blackjackbot/internal/storage"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open storage")
	}
	defer store.Close()

	logrus.WithField("path", cfg.DatabasePath).Info("storage ready")

	b, err := bot.New(cfg, store)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create bot")
	}

	if err := b.Run(); err != nil {
		logrus.WithError(err).Fatal("bot stopped")
	}
}

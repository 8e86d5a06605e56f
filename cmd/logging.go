package cmd

import (
	"fmt"
	"os"

	"github.com/paulohenriquejustino/payment-gateway/config"
	"github.com/sirupsen/logrus"
)

func configureLogging(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Log.Level, err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)

	switch cfg.Log.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", cfg.Log.Format)
	}

	return nil
}

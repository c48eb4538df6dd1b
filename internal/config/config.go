// Package config loads environment variables and the application
// configuration file, and wires the logging level and format from them.
package config

import (
	"os"
	"sync"

	"concilia/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var loadEnvOnce sync.Once

// LoadEnv loads variables from a .env file if one exists. Missing files
// are fine; the process environment always wins.
func LoadEnv(logger logging.Logger) {
	loadEnvOnce.Do(func() {
		if logger == nil {
			logger = logging.Default()
		}
		if err := godotenv.Load(); err != nil {
			if !os.IsNotExist(err) {
				logger.WithError(err).Warn("Could not load .env file")
			}
			return
		}
		logger.Debug("Loaded environment from .env file")
	})
}

// ConfigureLogging builds a logger from the LOG_LEVEL and LOG_FORMAT
// environment variables. Unknown values fall back to info level and
// text format.
func ConfigureLogging() logging.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = logrus.InfoLevel.String()
	}
	return logging.NewLogrusAdapter(level, os.Getenv("LOG_FORMAT"))
}

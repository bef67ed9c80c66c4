package config

import (
	"os"

	"fjacquet/bank-insights/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// LoadEnv loads environment variables from the given .env files, or from
// .env in the working directory when none are given. Variables already set
// in the environment win. A missing default .env file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return nil
		}
		files = []string{".env"}
	}
	return godotenv.Load(files...)
}

// ConfigureLoggingFromConfig builds the logrus logger described by config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	return logging.NewLogrusLogger(config.Log.Level, config.Log.Format)
}

// NewLogger returns a logging.Logger configured from config.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapterFromLogger(ConfigureLoggingFromConfig(config))
}

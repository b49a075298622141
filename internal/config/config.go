// internal/config/config.go

// Package config loads process configuration from the environment, after an
// optional .env file has been applied.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config carries everything the process reads from its environment.
type Config struct {
	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `env:"MAUMAU_LOG_LEVEL,default=info"`
	// Seed fixes the deck shuffle; 0 means derive one from the clock.
	Seed uint64 `env:"MAUMAU_SEED,default=0"`
	// PlayerName is the human seat name for the terminal game.
	PlayerName string `env:"MAUMAU_PLAYER,default=Player"`
	// Bots is how many easy bots join the table. A table seats at most
	// one named bot, so values above 1 are clamped.
	Bots int `env:"MAUMAU_BOTS,default=1"`
}

// Load reads .env if present, then decodes the environment. A missing .env
// file is not an error; a malformed environment is.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding environment: %w", err)
	}
	if cfg.Bots > 1 {
		cfg.Bots = 1
	}
	return cfg, nil
}

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/config"
)

// LoadEnvironment reads .env in development and validates the environment.
func LoadEnvironment() *config.Config {
	if env := os.Getenv("APP_ENV"); env == "" || env == "development" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("could not read .env")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

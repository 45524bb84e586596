package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from a .env file in the working
// directory (if one exists) and from the process environment. Variables
// already set in the environment win over the .env file, which is godotenv's
// default behavior.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("BOOKSHELF_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("BOOKSHELF_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("BOOKSHELF_TIMEOUT"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(seconds) * time.Second
		}
	}
}

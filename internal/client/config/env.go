package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present; a missing file is not
// an error. Only variables that are actually set override anything.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("CIVICWATCH_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("CIVICWATCH_DB_PATH"); v != "" {
		cfg.CredentialDBPath = v
	}
	if v := os.Getenv("CIVICWATCH_SECRET"); v != "" {
		cfg.SecretPassphrase = v
	}
	if v := os.Getenv("CIVICWATCH_UPLOAD_BASE"); v != "" {
		cfg.ImageUploadBase = v
	}
}

package config

import "time"

// Config holds runtime settings for the CivicWatch CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DebounceInterval: delay applied to search keystrokes before a request.
//   - PageSize: number of reports fetched per feed page.
//   - CredentialDBPath: path of the local encrypted credential database.
//   - SecretPassphrase: passphrase the credential database is encrypted with.
//   - ImageUploadBase: storage prefix report images are uploaded under;
//     empty disables attachments.
type Config struct {
	ServerBaseURL    string
	RequestTimeout   time.Duration
	DebounceInterval time.Duration
	PageSize         int
	CredentialDBPath string
	SecretPassphrase string
	ImageUploadBase  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DebounceInterval = 350 * time.Millisecond
	c.PageSize = 10
	c.CredentialDBPath = "civicwatch.db"
	c.SecretPassphrase = ""
	c.ImageUploadBase = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment, and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

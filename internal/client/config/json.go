package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dvelez2005/civicwatch/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// the keys it names. Durations are integers in the unit named by the key.
type JsonConfig struct {
	ServerBaseURL    *string `json:"server_base_url"`
	RequestTimeoutS  *int    `json:"request_timeout_s"`
	DebounceMs       *int    `json:"debounce_ms"`
	PageSize         *int    `json:"page_size"`
	CredentialDBPath *string `json:"credential_db_path"`
	SecretPassphrase *string `json:"secret_passphrase"`
	ImageUploadBase  *string `json:"image_upload_base"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.RequestTimeoutS != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeoutS) * time.Second
	}
	if jc.DebounceMs != nil {
		cfg.DebounceInterval = time.Duration(*jc.DebounceMs) * time.Millisecond
	}
	if jc.PageSize != nil {
		cfg.PageSize = *jc.PageSize
	}
	if jc.CredentialDBPath != nil {
		cfg.CredentialDBPath = *jc.CredentialDBPath
	}
	if jc.SecretPassphrase != nil {
		cfg.SecretPassphrase = *jc.SecretPassphrase
	}
	if jc.ImageUploadBase != nil {
		cfg.ImageUploadBase = *jc.ImageUploadBase
	}
}

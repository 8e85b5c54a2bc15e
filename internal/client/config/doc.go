// Package config loads runtime configuration for the CivicWatch CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), with an optional .env file.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      request timeout (seconds)
//	-p int      feed page size
//	-f string   path to the local credential database
//
// Environment variables
//
//	CIVICWATCH_SERVER_URL    base URL of the backend REST API
//	CIVICWATCH_DB_PATH       path to the local credential database
//	CIVICWATCH_SECRET        passphrase protecting the credential database
//	CIVICWATCH_UPLOAD_BASE   storage prefix report images are uploaded under
//
// # JSON schema
//
// Durations are plain integers in the unit named by the key:
//
//	{
//	  "server_base_url": "https://civicwatch.example.com",
//	  "request_timeout_s": 10,
//	  "debounce_ms": 350,
//	  "page_size": 10,
//	  "credential_db_path": "civicwatch.db",
//	  "image_upload_base": "https://img.example.com/uploads"
//	}
//
// The secret passphrase is deliberately not a flag so it never shows up in
// process listings; use the environment or the JSON file.
package config

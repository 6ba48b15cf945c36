// Package config handles loading and parsing the storeops configuration file.
//
// The Load function reads ~/.config/storeops/config.toml (or an explicit
// path) and falls back to sensible defaults when the file or individual
// fields are missing, so the console works out of the box against a local
// backend. Tilde expansion is applied to all path fields.
//
// Example config.toml:
//
//	api_url = "https://admin.example.com/api/v1"
//	request_timeout_seconds = 10
//	page_size = 10
//	theme = "Dracula"
//	log_file = "~/.local/state/storeops/storeops.log"
package config

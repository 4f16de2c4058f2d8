// Package config loads runtime settings for the notekeeper CLI.
// Sources are applied in order: defaults, then a JSON file (if given via
// -c/-config), then command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the notekeeper CLI.
type Config struct {
	// DatabasePath is the local SQLite file.
	DatabasePath string

	// AuthEndpointURL is the base URL of the auth backend.
	AuthEndpointURL string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	// OnlineCheckInterval is how often the client probes backend reachability.
	OnlineCheckInterval time.Duration

	MetadataUploadTimeout time.Duration
	MediaUploadTimeout    time.Duration
	FetchTimeout          time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "notekeeper.db"
	c.AuthEndpointURL = "http://127.0.0.1:8080"
	c.S3Region = "us-east-1"
	c.S3Bucket = "notekeeper"
	c.OnlineCheckInterval = 3 * time.Second
	c.MetadataUploadTimeout = 10 * time.Second
	c.MediaUploadTimeout = 100 * time.Second
	c.FetchTimeout = 50 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"flag"
	"os"
	"time"

	"notekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local SQLite database file
//	-a string   base URL of the auth backend
//	-s string   S3 endpoint URL (empty for AWS)
//	-b string   S3 bucket name
//	-i int      online check interval in seconds
//
// os.Args is filtered to the flags handled here via flagx.FilterArgs so other
// components can define their own flags without interference.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-a", "-s", "-b", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.AuthEndpointURL, "a", cfg.AuthEndpointURL, "base URL of the auth backend")
	fs.StringVar(&cfg.S3Endpoint, "s", cfg.S3Endpoint, "S3 endpoint URL (empty for AWS)")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket name")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}

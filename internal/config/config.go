// Package config provides functionality for managing configuration options
// for the application using command-line flags, a .env file, environment
// variables, and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// BaseURL is the listing API base, including the /api prefix.
	BaseURL string

	// Addr is the listen address of the stub server (ip:port).
	Addr string

	// DataDir holds the local key-value cache (Badger).
	DataDir string

	// JWTSecret signs tokens issued by the stub server.
	JWTSecret string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.BaseURL, "u", "http://localhost:8080/api", "listing API base URL")
	flag.StringVar(&options.Addr, "a", "localhost:8080", "stub server listen address")
	flag.StringVar(&options.DataDir, "d", ".homeseek", "local cache directory")
	flag.StringVar(&options.JWTSecret, "s", "homeseek-dev-secret", "stub server token signing secret")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, .env file, and environment variables
// to set configuration values. It returns a pointer to the Options struct
// containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// A missing .env is fine; values from an existing one become
	// visible through os.Getenv below.
	_ = godotenv.Load()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if baseURL := os.Getenv("HOMESEEK_BASE_URL"); baseURL != "" {
		options.BaseURL = baseURL
	}
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		options.Addr = addr
	}
	if dataDir := os.Getenv("HOMESEEK_DATA_DIR"); dataDir != "" {
		options.DataDir = dataDir
	}
	if secret := os.Getenv("HOMESEEK_JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}

	return options
}

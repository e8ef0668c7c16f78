package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

const (
	defaultGRPCAddr      = ":8080"
	defaultAPIToken      = "dev-token"
	defaultEnvironment   = "production"
	defaultMaxRecipients = 1_000_000
)

// Config holds the settings of the split server
type Config struct {
	GRPCAddr    string
	APIToken    string
	Environment string
	LogLevel    string

	// Workers and MaxRecipients feed allocator.Config
	Workers       int
	MaxRecipients int
}

// Load reads the configuration from environment variables, falling back to defaults
//
//	GRPC_ADDR             listen address (":8080")
//	API_TOKEN             value expected in the authorization metadata ("dev-token")
//	APP_ENV               logger profile: production, staging, development or local ("production")
//	LOG_LEVEL             zap level name, empty picks the profile default
//	SPLIT_WORKERS         goroutines used to fill shares (GOMAXPROCS)
//	SPLIT_MAX_RECIPIENTS  largest accepted recipient count (1000000)
func Load() (Config, error) {
	cfg := Config{
		GRPCAddr:    getEnv("GRPC_ADDR", defaultGRPCAddr),
		APIToken:    getEnv("API_TOKEN", defaultAPIToken),
		Environment: getEnv("APP_ENV", defaultEnvironment),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	var err error
	cfg.Workers, err = getEnvInt("SPLIT_WORKERS", runtime.GOMAXPROCS(0))
	if err != nil {
		return Config{}, err
	}

	cfg.MaxRecipients, err = getEnvInt("SPLIT_MAX_RECIPIENTS", defaultMaxRecipients)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %d", key, n)
	}

	return n, nil
}

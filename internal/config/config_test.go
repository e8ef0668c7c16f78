package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"GRPC_ADDR", "API_TOKEN", "APP_ENV", "LOG_LEVEL", "SPLIT_WORKERS", "SPLIT_MAX_RECIPIENTS"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.GRPCAddr)
	assert.Equal(t, "dev-token", cfg.APIToken)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "", cfg.LogLevel)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Workers)
	assert.Equal(t, 1_000_000, cfg.MaxRecipients)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRPC_ADDR", "127.0.0.1:9090")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("APP_ENV", "local")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SPLIT_WORKERS", "3")
	t.Setenv("SPLIT_MAX_RECIPIENTS", "500")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, Config{
		GRPCAddr:      "127.0.0.1:9090",
		APIToken:      "secret",
		Environment:   "local",
		LogLevel:      "debug",
		Workers:       3,
		MaxRecipients: 500,
	}, cfg)
}

func TestLoad_InvalidIntegers(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		errMsg string
	}{
		{name: "workers not a number", key: "SPLIT_WORKERS", value: "many", errMsg: "invalid SPLIT_WORKERS"},
		{name: "workers zero", key: "SPLIT_WORKERS", value: "0", errMsg: "must be positive"},
		{name: "max recipients negative", key: "SPLIT_MAX_RECIPIENTS", value: "-5", errMsg: "invalid SPLIT_MAX_RECIPIENTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

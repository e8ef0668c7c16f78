package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLevel zapcore.Level
		wantErr   string
	}{
		{
			name:      "production defaults to info",
			cfg:       Config{Environment: EnvironmentProduction},
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "local defaults to debug",
			cfg:       Config{Environment: EnvironmentLocal},
			wantLevel: zapcore.DebugLevel,
		},
		{
			name:      "explicit level wins",
			cfg:       Config{Environment: EnvironmentDevelopment, Level: "warn"},
			wantLevel: zapcore.WarnLevel,
		},
		{
			name:    "unknown environment",
			cfg:     Config{Environment: "moon"},
			wantErr: "invalid environment",
		},
		{
			name:    "unknown level",
			cfg:     Config{Environment: EnvironmentStaging, Level: "loud"},
			wantErr: "invalid level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

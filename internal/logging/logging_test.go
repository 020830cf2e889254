package logging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
		{name: "garbage falls back to info", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(Config{Level: tt.level})
			require.NoError(t, err)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger, err := New(Config{Level: "debug"})
	require.NoError(t, err)

	ctx := WithContext(context.Background(), logger)
	got := FromContext(ctx)
	assert.Equal(t, logger.GetLevel(), got.GetLevel())
}

func TestFromContextWithoutLogger(t *testing.T) {
	// Must not panic and must be silent.
	logger := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

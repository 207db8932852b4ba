package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promanage/promanage-api/internal/config"
)

func TestSetup(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		log, err := Setup(config.ServerConfig{Port: 3000, LogLevel: level})
		require.NoError(t, err, "level %q", level)
		assert.NotNil(t, log)
	}
}

func TestFromContext(t *testing.T) {
	attached := slog.Default().With("component", "test")

	ctx := WithLogger(context.Background(), attached)
	assert.Same(t, attached, FromContext(ctx))

	// No logger attached falls back to the default.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	def := slog.Default().With("component", "fallback")

	assert.Same(t, def, FromContextOrDefault(context.Background(), def))

	attached := slog.Default().With("component", "attached")
	ctx := WithLogger(context.Background(), attached)
	assert.Same(t, attached, FromContextOrDefault(ctx, def))
}

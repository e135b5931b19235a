package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	// Not parallel: Setup mutates the process default logger.
	original := slog.Default()
	defer slog.SetDefault(original)

	tests := []struct {
		name  string
		level string
	}{
		{name: "debug level", level: "debug"},
		{name: "info level", level: "info"},
		{name: "warn level", level: "warn"},
		{name: "error level", level: "error"},
		{name: "case insensitive", level: "DEBUG"},
		{name: "invalid level falls back to info", level: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := Setup(tt.level)
			require.NotNil(t, logger)
			assert.Same(t, logger, slog.Default())
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Without a stored logger, the default is returned.
	assert.Same(t, slog.Default(), FromContext(ctx))

	stored := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx = WithLogger(ctx, stored)
	assert.Same(t, stored, FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Empty context resolves to the fallback.
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))

	// Nil fallback resolves to the process default.
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))

	// Stored logger wins over the fallback.
	stored := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := WithLogger(context.Background(), stored)
	assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
}

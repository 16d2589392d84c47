package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("returns the embedded logger", func(t *testing.T) {
		// --- Arrange ---
		logger := slog.New(slog.DiscardHandler)
		ctx := WithLogger(context.Background(), logger)

		// --- Act ---
		got := FromContext(ctx)

		// --- Assert ---
		assert.Same(t, logger, got)
	})

	t.Run("panics without a logger", func(t *testing.T) {
		assert.PanicsWithValue(t, "ctxlog: logger missing from context", func() {
			FromContext(context.Background())
		})
	})
}

func TestWith(t *testing.T) {
	// --- Arrange ---
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	// --- Act ---
	ctx = With(ctx, "problem", "arbiter")
	FromContext(ctx).Info("solving")

	// --- Assert ---
	require.Contains(t, buf.String(), "problem=arbiter")
	assert.Contains(t, buf.String(), "msg=solving")
}

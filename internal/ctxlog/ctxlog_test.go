package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	ctx := WithLogger(context.Background(), logger)

	// --- Act ---
	FromContext(ctx).Info("hello", "k", "v")
	FromContext(context.Background()).Info("dropped")

	// --- Assert ---
	require.Same(t, logger, FromContext(ctx))
	require.Contains(t, buf.String(), "msg=hello k=v")
	require.NotContains(t, buf.String(), "dropped")
}

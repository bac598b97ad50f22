package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContextFields(t *testing.T) {
	ctx := WithStage(WithBuildID(context.Background(), "build-123"), "scan")
	require.Equal(t, LogContext{BuildID: "build-123", Stage: "scan"}, GetContext(ctx))

	ctx = WithStage(ctx, "render")
	require.Equal(t, "render", GetContext(ctx).Stage)
	require.Equal(t, "build-123", GetContext(ctx).BuildID)

	require.Equal(t, LogContext{}, GetContext(context.Background()))
}

func TestLogsCarryContext(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithStage(WithBuildID(context.Background(), "b-1"), "fold")
	WarnContext(ctx, "orphaned child", slog.String("block", "card"))
	DebugContext(ctx, "detail")

	out := buf.String()
	require.Contains(t, out, "level=WARN")
	require.Contains(t, out, `msg="orphaned child"`)
	require.Contains(t, out, "build_id=b-1")
	require.Contains(t, out, "stage=fold")
	require.Contains(t, out, "block=card")
	require.Contains(t, out, "msg=detail")
}

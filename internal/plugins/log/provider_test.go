package log

import (
	"context"
	"testing"

	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/logging"
	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedProvider() (*Provider, *observer.ObservedLogs) {
	core, observed := observer.New(zap.InfoLevel)
	logger := &logging.Logger{Logger: zap.New(core)}
	return NewProvider(logger), observed
}

// TestLogDefinition tests plugin metadata
func TestLogDefinition(t *testing.T) {
	provider, _ := newObservedProvider()

	def := provider.Definition()

	assert.Equal(t, "log", def.ID)
	assert.Equal(t, types.CategoryLogging, def.Category)
	assert.Len(t, def.Tools, 6)
}

// TestLogForwarding tests that Info and above reach the host logger
func TestLogForwarding(t *testing.T) {
	provider, observed := newObservedProvider()
	ctx := context.Background()

	result, err := provider.Execute(ctx, "log.info", map[string]interface{}{
		"message": "app ready",
	}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, true, result.Data["logged"])

	provider.Execute(ctx, "log.warn", map[string]interface{}{"message": "slow fetch"}, nil)
	provider.Execute(ctx, "log.error", map[string]interface{}{"message": "fetch failed"}, nil)

	entries := observed.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "app ready", entries[0].Message)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}

// TestLogVerbosityGate tests that trace and debug are dropped
func TestLogVerbosityGate(t *testing.T) {
	provider, observed := newObservedProvider()
	ctx := context.Background()

	for _, tool := range []string{"log.trace", "log.debug"} {
		result, err := provider.Execute(ctx, tool, map[string]interface{}{
			"message": "noisy",
		}, nil)
		require.NoError(t, err)
		assert.True(t, result.Success, "%s should still succeed", tool)
		assert.Equal(t, false, result.Data["logged"])
	}

	assert.Equal(t, 0, observed.Len())
	assert.Equal(t, 0, provider.ring.Len())
}

// TestLogContextFields tests structured context forwarding
func TestLogContextFields(t *testing.T) {
	provider, observed := newObservedProvider()

	window := "main"
	invCtx := &types.Context{Window: &window}

	provider.Execute(context.Background(), "log.info", map[string]interface{}{
		"message": "note saved",
		"context": map[string]interface{}{
			"note_id": "n-42",
			"bytes":   float64(512),
			"dirty":   false,
		},
	}, invCtx)

	entries := observed.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "webview", fields["source"])
	assert.Equal(t, "main", fields["window"])
	assert.Equal(t, "n-42", fields["note_id"])
	assert.Equal(t, float64(512), fields["bytes"])
	assert.Equal(t, false, fields["dirty"])
}

// TestLogTail tests reading back recent entries
func TestLogTail(t *testing.T) {
	provider, _ := newObservedProvider()
	ctx := context.Background()

	provider.Execute(ctx, "log.info", map[string]interface{}{"message": "first"}, nil)
	provider.Execute(ctx, "log.error", map[string]interface{}{"message": "second"}, nil)
	provider.Execute(ctx, "log.info", map[string]interface{}{"message": "third"}, nil)

	result, err := provider.Execute(ctx, "log.tail", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Data["count"])

	items := result.Data["entries"].([]map[string]interface{})
	assert.Equal(t, "third", items[0]["message"])
	assert.Equal(t, "first", items[2]["message"])

	// Level filter
	result, _ = provider.Execute(ctx, "log.tail", map[string]interface{}{"level": "error"}, nil)
	assert.Equal(t, 1, result.Data["count"])

	// Limit
	result, _ = provider.Execute(ctx, "log.tail", map[string]interface{}{"limit": 2}, nil)
	assert.Equal(t, 2, result.Data["count"])
}

// TestLogMissingMessage tests parameter validation
func TestLogMissingMessage(t *testing.T) {
	provider, _ := newObservedProvider()

	result, err := provider.Execute(context.Background(), "log.info", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "message parameter required")
}

// TestLogUnknownTool tests routing failure
func TestLogUnknownTool(t *testing.T) {
	provider, _ := newObservedProvider()

	result, err := provider.Execute(context.Background(), "log.shout", map[string]interface{}{
		"message": "hello",
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, *result.Error, "unknown tool")
}

// TestRingEviction tests the circular buffer at capacity
func TestRingEviction(t *testing.T) {
	ring := NewRing(3)

	for _, msg := range []string{"a", "b", "c", "d"} {
		ring.Add(&Entry{Level: "info", Message: msg})
	}

	assert.Equal(t, 3, ring.Len())
	recent := ring.Recent(10, "")
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Message)
	assert.Equal(t, "b", recent[2].Message)
}

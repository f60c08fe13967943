package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	ctx := WithFields(context.Background(), "run_id", "r1")
	child := WithFields(ctx, "indicator_id", "43")
	sibling := WithFields(ctx, "indicator_id", "44")

	Infof(child, "synced %d rows", 3)
	Warnf(sibling, "skipped")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "synced 3 rows", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"run_id": "r1", "indicator_id": "43"}, entries[0].ContextMap())
	assert.Equal(t, map[string]interface{}{"run_id": "r1", "indicator_id": "44"}, entries[1].ContextMap())
}

func TestInitRejectsBadLevel(t *testing.T) {
	err := Init(Config{Level: "loud"})
	assert.Error(t, err)
}

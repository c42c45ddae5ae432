package infrastructure

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactsim/internal/shared/testutil"
)

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	assert.NotEqual(t, id, GenerateRunID())
}

func TestContextWithRunID(t *testing.T) {
	ctx := ContextWithRunID(context.Background())
	assert.NotEmpty(t, GetRunID(ctx))
}

func TestEnsureRunID(t *testing.T) {
	t.Run("generates when absent", func(t *testing.T) {
		ctx := EnsureRunID(context.Background())
		assert.NotEmpty(t, GetRunID(ctx))
	})

	t.Run("preserves existing", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "existing-run")
		ctx = EnsureRunID(ctx)
		assert.Equal(t, "existing-run", GetRunID(ctx))
	})
}

func TestLoggerWithContext(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logger, handler := testutil.NewTestLogger(t)
	globalLogger = logger

	ctx := WithRunID(context.Background(), "ctx-run-42")
	LoggerWithContext(ctx).Info("stage finished")

	testutil.AssertLogAttr(t, handler, "run_id", "ctx-run-42")
}

func TestWithComponent(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)

	WithComponent(logger, "simulator").Info("running")

	testutil.AssertLogAttr(t, handler, "component", "simulator")
}

func TestWithError(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)

	WithError(logger, fmt.Errorf("disk full")).Error("export failed")
	testutil.AssertLogAttr(t, handler, "error", "disk full")

	// nil error leaves the logger unchanged
	assert.NotPanics(t, func() {
		WithError(logger, nil).Info("no error")
	})
}

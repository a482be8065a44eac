package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/rpg-forge/internal/telemetry"
)

func TestSetupTracingDisabled(t *testing.T) {
	shutdown, err := telemetry.SetupTracing(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, telemetry.Tracer())
}

func TestNewLogger(t *testing.T) {
	logger, err := telemetry.NewLogger(zapcore.WarnLevel)
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

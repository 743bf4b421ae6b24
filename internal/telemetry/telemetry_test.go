package telemetry

import (
	"context"
	"testing"

	"github.com/avforge/configurator/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DisabledIsNoop(t *testing.T) {
	shutdown, err := Init(config.TelemetryConfig{Enabled: false, OTLPEndpoint: "localhost:4317"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	shutdown, err = Init(config.TelemetryConfig{Enabled: true})
	require.NoError(t, err, "an empty endpoint disables export")
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartEngineSpan(t *testing.T) {
	ctx, span := StartEngineSpan(context.Background(), "validate", "room-1")
	defer span.End()
	assert.NotNil(t, ctx)
	assert.NotNil(t, span)
}

//go:build unit

package telemetry_test

import (
	"context"
	"testing"

	"garden-stock-api/internal/pkg/config"
	"garden-stock-api/internal/pkg/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetupTracing(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without endpoint", func(t *testing.T) {
		before := otel.GetTracerProvider()

		shutdown, err := telemetry.SetupTracing(ctx, config.TracingConfig{ServiceName: "test"})
		require.NoError(t, err)

		assert.Equal(t, before, otel.GetTracerProvider())
		assert.NoError(t, shutdown(ctx))
	})

	t.Run("installs sdk provider with endpoint", func(t *testing.T) {
		before := otel.GetTracerProvider()
		t.Cleanup(func() { otel.SetTracerProvider(before) })

		shutdown, err := telemetry.SetupTracing(ctx, config.TracingConfig{
			OTLPEndpoint: "http://127.0.0.1:4318/v1/traces",
			ServiceName:  "test",
		})
		require.NoError(t, err)

		_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
		assert.True(t, ok)
		assert.NoError(t, shutdown(ctx))
	})

	t.Run("merges resource attributes from the environment", func(t *testing.T) {
		before := otel.GetTracerProvider()
		t.Cleanup(func() { otel.SetTracerProvider(before) })
		t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment=test")

		shutdown, err := telemetry.SetupTracing(ctx, config.TracingConfig{
			OTLPEndpoint: "http://127.0.0.1:4318/v1/traces",
			ServiceName:  "garden-stock-api-test",
		})
		require.NoError(t, err)
		assert.NoError(t, shutdown(ctx))
	})
}

package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"insight-center-be/internal/config"
)

func TestInitTracerDisabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown := InitTracer(config.TracingConfig{Enabled: false, Endpoint: "collector:4318"})

	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestInitTracerEnabled(t *testing.T) {
	shutdown := InitTracer(config.TracingConfig{Enabled: true, Endpoint: "127.0.0.1:1"})
	defer func() { _ = shutdown(context.Background()) }()

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)
}

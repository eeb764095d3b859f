// Package telemetry wires OpenTelemetry tracing for the chatrelay server.
package telemetry

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	serviceName    = "chatrelay"
	serviceVersion = "1.0.0"
)

// Config holds the configuration for telemetry
type Config struct {
	Enabled      bool
	OTLPEndpoint string
}

// Provider manages the tracer provider lifecycle. A disabled provider
// installs nothing and shuts down as a no-op.
type Provider struct {
	tracerProvider *sdktrace.TracerProvider
}

// NewProvider creates a telemetry provider and, when enabled, registers it
// as the global tracer provider.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	if !config.Enabled {
		log.Printf("Telemetry disabled")
		return &Provider{}, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithInsecure()}
	if config.OTLPEndpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(config.OTLPEndpoint))
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)

	log.Printf("Telemetry enabled, exporting to %s", config.OTLPEndpoint)
	return &Provider{tracerProvider: tracerProvider}, nil
}

// Shutdown flushes and stops the tracer provider
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tracerProvider == nil {
		return nil
	}
	return p.tracerProvider.Shutdown(ctx)
}

package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mwhitaker/chatrelay/internal/config"
	"github.com/mwhitaker/chatrelay/internal/telemetry"
	"github.com/mwhitaker/chatrelay/internal/transport"
)

func setupContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	// Setup graceful shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		log.Println("Interrupt signal detected, shutting down gracefully...")
		cancel()
		<-interrupt
		log.Fatal("Forcing shutdown")
	}()

	return ctx
}

func createAnthropicClient(apiKey string) anthropic.Client {
	loggingHTTPClient := &http.Client{
		Transport: transport.WithRequestLogging(nil),
	}
	// The pipeline makes a single best-effort call per user message, so SDK
	// retries are disabled
	return anthropic.NewClient(
		option.WithHTTPClient(loggingHTTPClient),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)
}

func createTelemetryProvider(ctx context.Context, cfg config.Config) (*telemetry.Provider, error) {
	telemetryConfig := telemetry.Config{
		Enabled:      cfg.TelemetryEnabled,
		OTLPEndpoint: cfg.OTLPEndpoint,
	}
	return telemetry.NewProvider(ctx, telemetryConfig)
}

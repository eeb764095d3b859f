package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/mwhitaker/chatrelay/internal/chat"
	"github.com/mwhitaker/chatrelay/internal/config"
	"github.com/mwhitaker/chatrelay/internal/httpapi"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat proxy HTTP server",
	Long: `Starts the HTTP server exposing /chat, /reset_session, and /health.
Sessions are held in memory and do not survive a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (overrides LISTEN_ADDR)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := setupContext()

	cfg := config.Load()
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	telemetryProvider, err := createTelemetryProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Telemetry shutdown error: %v", err)
		}
	}()

	anthropicClient := createAnthropicClient(cfg.AnthropicAPIKey)
	store := chat.NewSessionStore(cfg.SystemPrompt, cfg.MaxMessages)
	gateway := chat.NewAnthropicGateway(anthropicClient, anthropic.Model(cfg.Model), cfg.MaxOutputTokens)
	orchestrator := chat.NewOrchestrator(store, gateway, cfg.MaxContextTokens)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpapi.NewServer(orchestrator).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving on %s (model %s, max %d messages per session)", cfg.ListenAddr, cfg.Model, cfg.MaxMessages)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Printf("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	}
}

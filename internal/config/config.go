// Package config provides configuration management for the chatrelay server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultSystemPrompt guides the assistant when SYSTEM_PROMPT is not set.
const DefaultSystemPrompt = "You are a helpful, concise AI assistant. Answer user queries politely and clearly."

// Config holds the configuration for the server
type Config struct {
	AnthropicAPIKey string
	Model           string
	SystemPrompt    string

	// MaxMessages bounds the number of turns kept per session.
	MaxMessages int
	// MaxContextTokens is an approximate guard on prompt size, advisory
	// only; nothing is enforced from it.
	MaxContextTokens int
	// MaxOutputTokens caps the length of a single generated reply.
	MaxOutputTokens int64

	ListenAddr string

	TelemetryEnabled bool
	OTLPEndpoint     string
}

// Load loads configuration from environment variables
func Load() Config {
	config := Config{
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		Model:            "claude-3-5-haiku-latest",
		SystemPrompt:     DefaultSystemPrompt,
		MaxMessages:      20,
		MaxContextTokens: 2000,
		MaxOutputTokens:  1024,
		ListenAddr:       ":8000",
		OTLPEndpoint:     os.Getenv("OTLP_ENDPOINT"),
	}

	if model := os.Getenv("CHAT_MODEL"); model != "" {
		config.Model = model
	}
	if prompt := os.Getenv("SYSTEM_PROMPT"); prompt != "" {
		config.SystemPrompt = prompt
	}
	if raw := os.Getenv("MAX_MESSAGES"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			config.MaxMessages = n
		}
	}
	if raw := os.Getenv("MAX_TOKENS_CONTEXT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			config.MaxContextTokens = n
		}
	}
	if raw := os.Getenv("MAX_TOKENS_OUTPUT"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			config.MaxOutputTokens = n
		}
	}
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		config.ListenAddr = addr
	}
	if raw := os.Getenv("TELEMETRY_ENABLED"); raw != "" {
		if enabled, err := strconv.ParseBool(raw); err == nil {
			config.TelemetryEnabled = enabled
		}
	}

	return config
}

// Validate checks if the required configuration is present
func (c Config) Validate() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("missing required environment variable: ANTHROPIC_API_KEY")
	}
	if c.MaxMessages < 2 {
		return fmt.Errorf("MAX_MESSAGES must be at least 2, got %d", c.MaxMessages)
	}
	return nil
}

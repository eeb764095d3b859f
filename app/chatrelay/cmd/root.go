package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatrelay",
	Short: "Session-aware chat proxy for a hosted language model",
	Long: `Chatrelay sits in front of a hosted text-generation service. It keeps a
bounded rolling conversation history per session, flattens that history into
a single prompt per request, and returns normalized responses with provider
failures classified into user-facing categories.`,
	PersistentPreRun: loadEnvironment,
}

func Execute() error {
	return rootCmd.Execute()
}

func loadEnvironment(_ *cobra.Command, _ []string) {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

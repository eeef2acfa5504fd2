package main

import (
	"log"

	"github.com/joho/godotenv"

	"droidpilot/internal/cli"
	"droidpilot/internal/config"
	"droidpilot/internal/logger"
)

func main() {
	// A missing .env is fine; credentials may come from the environment.
	_ = godotenv.Load()

	if err := logger.Init(config.LogPath()); err != nil {
		log.Fatalf("Fatal Error: Could not initialize logger: %v", err)
	}

	cli.Execute()
}

package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"commission/cmd"
	"commission/internal/config"
	"commission/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Log with defaults until the configuration says otherwise
	if err := logger.Setup(logger.DefaultConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog := logger.WithComponent("main")
		mainLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	log := logger.WithComponent("main")
	log.Debug().Msg("Starting Commission CLI")

	cmd.Execute(cfg)

	log.Debug().Msg("Commission CLI shutdown")
	os.Exit(0)
}

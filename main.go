package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cosplay-booking/cmd"
	"cosplay-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name+"-"+command, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "serve":
		err = cmd.APIServer(ctx, config, logger)
	case "sweep":
		err = cmd.Sweep(ctx, config, logger)
	default:
		logger.Fatal("Unknown command, use: serve | sweep", zap.String("command", command))
	}

	if err != nil {
		logger.Error("Command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

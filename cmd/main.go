package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/yungbote/coursehub-backend/internal/app"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Info("Loading configuration...")
	cfg, err := app.LoadConfig(log)
	if err != nil {
		log.Error("Config invalid", "error", err)
		log.Sync()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, log, cfg)
	if err != nil {
		log.Error("App init failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Start(ctx); err != nil {
		log.Error("App start failed", "error", err)
		return
	}
	if err := a.Run(ctx); err != nil {
		log.Error("Server failed", "error", err)
	}
}

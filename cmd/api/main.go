package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/careerpath/careerpath-backend/internal/app"
	"github.com/careerpath/careerpath-backend/internal/observability"
	"github.com/careerpath/careerpath-backend/internal/platform/envutil"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/platform/shutdown"
)

func main() {
	// A missing .env is fine; the process environment wins.
	_ = godotenv.Load()

	// Logger
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	// Tracing
	stopOTel := observability.InitOTel(ctx, log, observability.OtelConfigFromEnv())
	defer func() {
		if err := stopOTel(context.Background()); err != nil {
			log.Warn("otel shutdown", "error", err)
		}
	}()

	// Metrics
	if m := observability.Init(log); m != nil {
		m.StartServer(ctx, log, envutil.String("METRICS_ADDR", ":9090"))
	}

	a, err := app.New(ctx, log)
	if err != nil {
		log.Error("Failed to init app", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Start(ctx)
	if err := a.Run(ctx); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}

// Package main is the entry point for the fee service. It resolves
// configuration, connects the rule store, starts the metrics listener and
// serves the HTTP API.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"lannisterpay/internal/config"
	"lannisterpay/internal/metrics"
	"lannisterpay/internal/repositories"
	"lannisterpay/internal/routes"
)

func main() {
	cfg := config.Load()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slogger)

	store, err := repositories.NewStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize rule store: %v", err)
	}

	if checker, ok := store.(repositories.HealthChecker); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := checker.HealthCheck(ctx); err != nil {
			cancel()
			log.Fatalf("Rule store is unreachable: %v", err)
		}
		cancel()
		slogger.Info("connected to rule store", slog.String("backend", cfg.StoreBackend))
	}

	defer func() {
		if closer, ok := store.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				slogger.Error("failed to close rule store", slog.String("error", err.Error()))
			}
		}
	}()

	collector := metrics.NewCollector(slogger)
	collector.StartMetricsServer(":" + cfg.MetricsPort)

	app := fiber.New()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, cfg, store, slogger, collector)

	log.Fatal(app.Listen(":" + cfg.Port))
}

package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/supermall-dev/supermall-golang/internal/database"
	"github.com/supermall-dev/supermall-golang/internal/handlers"
	"github.com/supermall-dev/supermall-golang/internal/logging"
	"github.com/supermall-dev/supermall-golang/internal/metrics"
	"github.com/supermall-dev/supermall-golang/internal/routes"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on system environment variables")
	}

	logging.Setup()

	// 1. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// 2. --- Schema Migrations ---
	if err := database.RunMigrations(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Application Setup ---
	app := &handlers.Handlers{DB: db}
	requestMetrics := metrics.NewRequestMetrics()

	// --- Router Setup ---
	router := routes.SetupRouter(app, requestMetrics)

	// --- Start Server ---
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	slog.Info("starting SuperMall API server", "addr", addr)
	if err := router.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// Package main starts the HTTP server for the schematic editor backend:
// netlist generation and validation, simulation via the external SPICE
// engine, and the circuit chat proxy.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/circuitsim/core/cmd/api/middleware"
	"github.com/circuitsim/core/internal/chat"
	"github.com/circuitsim/core/internal/config"
	"github.com/circuitsim/core/internal/handlers"
	"github.com/circuitsim/core/internal/simulation"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	engine := simulation.NewEngine(cfg.Engine.Path, cfg.Engine.Timeout, logger)
	chatClient := chat.NewClient(cfg.Chat.APIKey, cfg.Chat.Model, "")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.HealthHandler)
	mux.HandleFunc("/api/netlist", handlers.NetlistHandler)
	mux.HandleFunc("/api/validate", handlers.ValidateHandler)
	mux.HandleFunc("/api/simulate", handlers.SimulateHandler(engine))
	mux.HandleFunc("/api/chat", handlers.ChatHandler(chatClient))
	mux.Handle("/metrics", promhttp.Handler())

	handler := middleware.Cors(cfg.CORSAllowedOrigin,
		middleware.Logging(logger,
			middleware.Metrics(mux)))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		// Simulations and chat calls run inside the request; the write
		// timeout must outlast both.
		WriteTimeout: cfg.Engine.Timeout + 30*time.Second,
	}

	logger.Info("server starting",
		"port", cfg.Port,
		"engine_path", cfg.Engine.Path,
		"chat_mock", cfg.Chat.APIKey == "",
	)

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

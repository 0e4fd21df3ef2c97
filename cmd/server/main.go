package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/csolympiad/portal/internal/backend"
	"github.com/csolympiad/portal/internal/config"
	"github.com/csolympiad/portal/internal/logging"
	"github.com/csolympiad/portal/internal/server"
	"github.com/csolympiad/portal/internal/store"
)

func main() {
	// Optional .env file for local development; real deployments set env vars.
	_ = godotenv.Load()

	configFile := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	backendURL := flag.String("backend", "", "Competition backend URL (overrides config)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "Log format (text, json)")
	dbPath := flag.String("db", "", "Database path (default ~/.portal/portal.db)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if *addr != "" {
		cfg.Addr = *addr
	}
	if *backendURL != "" {
		cfg.BackendURL = *backendURL
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Resolve database path.
	path := cfg.DBPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".portal")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		path = filepath.Join(dir, "portal.db")
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", path)

	client := backend.New(cfg.BackendURL, logger)
	srv := server.New(cfg, st, client, logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the gate resync loop and session sweeper in the background.
	srv.Run(ctx)

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "backend", cfg.BackendURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	srv.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

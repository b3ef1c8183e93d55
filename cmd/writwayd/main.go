// File path: cmd/writwayd/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/writway/writway/internal/api"
	"github.com/writway/writway/internal/auth"
	"github.com/writway/writway/internal/billing"
	"github.com/writway/writway/internal/common"
	"github.com/writway/writway/internal/llm"
	"github.com/writway/writway/internal/tenant"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("writway: .env file not loaded", "error", err)
	} else {
		logger.Info("writway: environment loaded from .env")
	}

	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the SQLite database")
	plansPath := flag.String("plans", strings.TrimSpace(os.Getenv("WRITWAY_PLANS_FILE")), "path to the billing plans YAML (empty for built-in)")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "session token lifetime")
	flag.Parse()

	logger.Info("writway: startup initiated", "addr", *addr, "db", *dbPath)

	storeCfg, err := tenant.LoadConfig()
	if err != nil {
		fatal(logger, "store config", err)
	}
	if trimmed := strings.TrimSpace(*dbPath); trimmed != "" {
		storeCfg.Path = trimmed
	}
	store, err := tenant.OpenWithConfig(storeCfg)
	if err != nil {
		fatal(logger, "open store", err)
	}
	defer store.Close()

	catalog, err := billing.LoadCatalog(*plansPath)
	if err != nil {
		fatal(logger, "load plan catalog", err)
	}

	secret := strings.TrimSpace(os.Getenv("WRITWAY_JWT_SECRET"))
	if secret == "" {
		fatal(logger, "auth config", errors.New("WRITWAY_JWT_SECRET must be set"))
	}
	authManager, err := auth.NewManager(secret, *tokenTTL)
	if err != nil {
		fatal(logger, "auth config", err)
	}

	provider := llm.NewProvider()
	logger.Info("writway: llm provider ready", "provider", provider.Name(), "available", provider.Available())

	server, err := api.NewServer(provider, store, catalog, authManager)
	if err != nil {
		fatal(logger, "server construction", err)
	}

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("writway: server listening", "addr", *addr, "health", "/healthz")
		fmt.Printf("Serving on %s\n", *addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("writway: shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error("writway: shutdown failed", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "server stopped", err)
		}
	}
	logger.Info("writway: stopped")
}

func defaultDBPath() string {
	return filepath.Join("data", "writway.db")
}

func fatal(logger *slog.Logger, stage string, err error) {
	logger.Error("writway: "+stage+" failed", "error", err)
	fmt.Println(stage+" error:", err)
	os.Exit(1)
}

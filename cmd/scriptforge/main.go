// File path: cmd/scriptforge/main.go
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"scriptforge/internal/api"
	"scriptforge/internal/common"
	"scriptforge/internal/config"
	"scriptforge/internal/kb"
	"scriptforge/internal/knowledge"
	"scriptforge/internal/transcript"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		common.Logger().Debug("no .env file loaded", "error", err)
	}
	logger := common.Logger()

	addr := flag.String("addr", envOr("SCRIPTFORGE_ADDR", ":8080"), "listen address")
	sqlitePath := flag.String("sqlite", envOr("SCRIPTFORGE_SQLITE", "scriptforge.db"), "sqlite file used when no Supabase URL is configured")
	fetchTimeout := flag.Duration("fetch-timeout", 20*time.Second, "transcript fetch timeout")
	flag.Parse()

	remote, err := openRemote(*sqlitePath)
	if err != nil {
		logger.Error("knowledge remote unavailable", "error", err)
		os.Exit(1)
	}
	store, err := knowledge.NewStore(remote)
	if err != nil {
		logger.Error("knowledge store init failed", "error", err)
		os.Exit(1)
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := store.Reload(loadCtx); err != nil {
		logger.Warn("initial knowledge reload failed, starting with empty cache", "error", err)
	}
	cancel()

	server, err := api.NewServer(kb.NewRegistry(), store, config.NewResolver(), transcript.NewFetcher(*fetchTimeout), api.DefaultConfig())
	if err != nil {
		logger.Error("server init failed", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", *addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

// openRemote picks the knowledge backend: Supabase when a URL is configured,
// a local sqlite file otherwise.
func openRemote(sqlitePath string) (knowledge.Remote, error) {
	logger := common.Logger()
	cfg := knowledge.LoadSupabaseConfig()
	if cfg.URL != "" {
		logger.Info("using supabase knowledge remote", "table", cfg.Table)
		return knowledge.NewSupabaseRemote(cfg)
	}
	logger.Info("using sqlite knowledge remote", "path", sqlitePath)
	return knowledge.OpenSQLiteRemote(sqlitePath)
}

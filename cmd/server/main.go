// Package main runs the dashboard web server: per-browser sessions over the
// CoinGecko API, plus /health, /status and /metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crypto-tracker/internal/coingecko"
	"crypto-tracker/internal/config"
	"crypto-tracker/internal/market"
	"crypto-tracker/internal/session"
	"crypto-tracker/internal/web"
)

func main() {
	// Load .env file if exists
	config.LoadEnvFile(".env")

	// Parse flags (config file and env vars as defaults)
	configPath := flag.String("config", os.Getenv("CRYPTO_TRACKER_CONFIG"), "Path to a YAML config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides server.addr)")
	apiKey := flag.String("api-key", "", "CoinGecko demo API key (overrides coingecko.api_key)")
	sessionTTL := flag.Duration("session-ttl", 0, "Idle session expiry (overrides session.ttl)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *apiKey != "" {
		cfg.CoinGecko.APIKey = *apiKey
	}
	if *sessionTTL > 0 {
		cfg.Session.TTL = *sessionTTL
	}
	if cfg.CoinGecko.APIKey == "" {
		logger.Println("No CoinGecko API key configured, using the keyless public tier")
	}

	client := coingecko.NewHTTPClient(cfg.CoinGecko.BaseURL,
		coingecko.WithAPIKey(cfg.CoinGecko.APIKey),
		coingecko.WithTimeout(cfg.CoinGecko.Timeout),
		coingecko.WithMaxRetries(cfg.CoinGecko.MaxRetries),
	)

	store := session.NewStore(session.Dependencies{
		Markets: client,
		Details: client,
		Options: market.ProviderOptions{
			Currency: cfg.DefaultCurrency,
			Logger:   log.New(os.Stdout, "[market] ", log.LstdFlags|log.Lshortfile),
		},
		Logger: log.New(os.Stdout, "[session] ", log.LstdFlags|log.Lshortfile),
	}, session.WithTTL(cfg.Session.TTL))

	srv, err := web.New(web.Options{
		Store:  store,
		Logger: log.New(os.Stdout, "[web] ", log.LstdFlags|log.Lshortfile),
	})
	if err != nil {
		logger.Fatalf("Failed to create web server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Channel to signal completion
	done := make(chan struct{})

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	// Evict idle sessions
	go store.RunSweeper(ctx, cfg.Session.SweepInterval)

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown error: %v", err)
		}
	}()

	logger.Printf("Starting HTTP server on %s (default currency %s)", cfg.Server.Addr, cfg.DefaultCurrency.Code)
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		close(done)
		logger.Fatalf("HTTP server error: %v", err)
	}

	// Wait for in-flight requests to drain
	<-drained
	close(done)
	logger.Println("Shutdown complete")
}

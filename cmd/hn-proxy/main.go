package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sternhagen/hn-api-client/pkg/hn"
	"github.com/sternhagen/hn-api-client/pkg/logging"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Server.LogLevel),
		Output: os.Stderr,
	})
	logger := logging.NewLogger("hn-proxy")

	fetcher, err := hn.NewHTTPFetcher(hn.FetcherConfig{
		BaseURL:        cfg.Upstream.BaseURL,
		UserAgent:      cfg.Upstream.UserAgent,
		Timeout:        time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		MaxConcurrency: cfg.Upstream.MaxConcurrency,
		MaxRetries:     cfg.Upstream.MaxRetries,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create fetcher")
	}

	client, err := hn.New(hn.Config{Fetcher: fetcher})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create client")
	}

	srv := newServer(client, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().
			Int("port", cfg.Server.Port).
			Str("upstream", cfg.Upstream.BaseURL).
			Msg("Starting proxy server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
		os.Exit(1)
	}
	logger.Info().Msg("Server shutdown completed")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/songyh0828/groqify-chatbot/internal/chat"
	"github.com/songyh0828/groqify-chatbot/internal/config"
	"github.com/songyh0828/groqify-chatbot/internal/groq"
	"github.com/songyh0828/groqify-chatbot/internal/httpapi"
	"github.com/songyh0828/groqify-chatbot/internal/metrics"
	"github.com/songyh0828/groqify-chatbot/internal/promptcache"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogger(cfg.Log.Level)
	log.Info().
		Str("base_url", cfg.BaseURL).
		Str("default_model", cfg.DefaultModelID).
		Str("cache_driver", cfg.Cache.Driver).
		Msg("starting groqify")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := metrics.Global()

	client := groq.New(groq.Config{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.HTTP.ClientTimeout},
	})

	var rdb *redis.Client
	if cfg.Cache.Driver == config.CacheDriverRedis {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer rdb.Close()
	}

	cache, err := promptcache.New(promptcache.Config{
		Driver:    cfg.Cache.Driver,
		TTL:       cfg.Cache.TTL,
		Completer: client,
		Redis:     rdb,
		Logger:    log.Logger,
		Metrics:   m,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize prompt cache")
	}

	store := chat.New(chat.Config{
		Completer:      client,
		DefaultModelID: cfg.DefaultModelID,
		Logger:         log.Logger,
		Metrics:        m,
	})

	api := httpapi.NewService(httpapi.Config{
		Store:   store,
		Cache:   cache,
		Logger:  log.Logger,
		Metrics: m,
	})

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.HTTP.HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle(cfg.HTTP.MetricsPath, promhttp.Handler())
	api.Register(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.ListenAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("runtime error")
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop http server")
	}

	log.Info().Msg("stopped")
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLogLevel(level))
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

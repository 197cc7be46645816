package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

var (
	ErrMissingAPIKey      = errors.New("GROQ_API_KEY is required")
	ErrInvalidCacheDriver = errors.New("PROMPT_CACHE_DRIVER must be 'memory' or 'redis'")
)

type Config struct {
	APIKey  string
	BaseURL string

	DefaultModelID string

	HTTP  HTTPConfig
	Cache CacheConfig
	Redis RedisConfig
	Log   LogConfig
}

type HTTPConfig struct {
	ListenAddr    string
	HealthPath    string
	MetricsPath   string
	ClientTimeout time.Duration
}

type CacheConfig struct {
	Driver string
	TTL    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		APIKey:         mustEnv("GROQ_API_KEY", ""),
		BaseURL:        mustEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		DefaultModelID: mustEnv("DEFAULT_MODEL", "mixtral-8x7b-32768"),
		HTTP: HTTPConfig{
			ListenAddr:    mustEnv("LISTEN_ADDR", ":8080"),
			HealthPath:    mustEnv("HEALTH_PATH", "/healthz"),
			MetricsPath:   mustEnv("METRICS_PATH", "/metrics"),
			ClientTimeout: mustDuration("HTTP_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			Driver: strings.ToLower(mustEnv("PROMPT_CACHE_DRIVER", CacheDriverMemory)),
			TTL:    mustDuration("PROMPT_CACHE_TTL", time.Hour),
		},
		Redis: RedisConfig{
			Addr:     mustEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: mustEnv("REDIS_PASSWORD", ""),
			DB:       mustInt("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level: strings.ToLower(mustEnv("LOG_LEVEL", "info")),
		},
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Cache.Driver != CacheDriverMemory && cfg.Cache.Driver != CacheDriverRedis {
		return nil, ErrInvalidCacheDriver
	}
	if cfg.Cache.TTL <= 0 {
		return nil, fmt.Errorf("PROMPT_CACHE_TTL must be positive, got %s", cfg.Cache.TTL)
	}

	return cfg, nil
}

func mustEnv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func mustInt(key string, def int) int {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func mustDuration(key string, def time.Duration) time.Duration {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

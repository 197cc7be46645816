package promptcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/songyh0828/groqify-chatbot/internal/catalog"
	"github.com/songyh0828/groqify-chatbot/internal/groq"
	"github.com/songyh0828/groqify-chatbot/internal/metrics"
)

// Redis is the shared-deployment variant of the cache: entries live in redis
// with the TTL applied on write, so several processes reuse one fetch.
type Redis struct {
	redis     *redis.Client
	ttl       time.Duration
	completer groq.Completer
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

func NewRedis(cfg Config) *Redis {
	return &Redis{
		redis:     cfg.Redis,
		ttl:       cfg.TTL,
		completer: cfg.Completer,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
}

var _ Cache = (*Redis)(nil)

func (r *Redis) Prompts(ctx context.Context, category catalog.Category, model string) ([]string, error) {
	key := promptKey(category.Description)

	raw, err := r.redis.Get(ctx, key).Result()
	if err == nil {
		var prompts []string
		if unmarshalErr := json.Unmarshal([]byte(raw), &prompts); unmarshalErr == nil {
			r.metrics.PromptCacheHits.Inc()
			return prompts, nil
		}
		// Unreadable entry: treat as a miss and refetch below.
	} else if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("prompt cache get: %w", err)
	}

	r.metrics.PromptCacheMisses.Inc()
	prompts, err := fetchPrompts(ctx, r.completer, model, category.Description)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category.Key).Msg("fetching prompts failed")
		return nil, err
	}

	payload, err := json.Marshal(prompts)
	if err != nil {
		return nil, fmt.Errorf("marshal prompts: %w", err)
	}
	if err := r.redis.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("prompt cache set: %w", err)
	}
	return prompts, nil
}

func promptKey(description string) string {
	return "groqify:prompts:" + description
}

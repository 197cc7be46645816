package promptcache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/songyh0828/groqify-chatbot/internal/catalog"
	"github.com/songyh0828/groqify-chatbot/internal/groq"
	"github.com/songyh0828/groqify-chatbot/internal/metrics"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"

	// promptMaxTokens bounds the generation request for starter prompts.
	promptMaxTokens = 100

	maxPrompts = 3

	DefaultTTL = time.Hour
)

// Cache memoizes generated starter prompts per category for a bounded time
// window. Within the window repeated lookups return the identical sequence
// without a remote call. Failed fetches are never cached, so the next lookup
// retries.
type Cache interface {
	Prompts(ctx context.Context, category catalog.Category, model string) ([]string, error)
}

type Config struct {
	Driver    string
	TTL       time.Duration
	Completer groq.Completer
	Redis     *redis.Client
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

func New(cfg Config) (Cache, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Global()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(cfg), nil
	case DriverRedis:
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis driver requires a redis client")
		}
		return NewRedis(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported prompt cache driver %q", cfg.Driver)
	}
}

type entry struct {
	prompts   []string
	fetchedAt time.Time
}

// Memory keys entries by category description and checks expiry at read time.
type Memory struct {
	mu        sync.Mutex
	entries   map[string]entry
	ttl       time.Duration
	completer groq.Completer
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewMemory(cfg Config) *Memory {
	return &Memory{
		entries:   make(map[string]entry),
		ttl:       cfg.TTL,
		completer: cfg.Completer,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		now:       cfg.Now,
	}
}

var _ Cache = (*Memory)(nil)

func (m *Memory) Prompts(ctx context.Context, category catalog.Category, model string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[category.Description]; ok && m.now().Sub(e.fetchedAt) < m.ttl {
		m.metrics.PromptCacheHits.Inc()
		return append([]string(nil), e.prompts...), nil
	}

	m.metrics.PromptCacheMisses.Inc()
	prompts, err := fetchPrompts(ctx, m.completer, model, category.Description)
	if err != nil {
		m.logger.Error().Err(err).Str("category", category.Key).Msg("fetching prompts failed")
		return nil, err
	}
	m.entries[category.Description] = entry{prompts: prompts, fetchedAt: m.now()}
	return append([]string(nil), prompts...), nil
}

func fetchPrompts(ctx context.Context, completer groq.Completer, model, description string) ([]string, error) {
	text, err := completer.Complete(ctx, groq.Request{
		Model:     model,
		Messages:  []groq.Message{{Role: groq.RoleUser, Content: description}},
		MaxTokens: promptMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch prompts: %w", err)
	}
	return splitPrompts(text), nil
}

func splitPrompts(text string) []string {
	out := make([]string, 0, maxPrompts)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxPrompts {
			break
		}
	}
	return out
}

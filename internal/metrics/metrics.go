package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	CompletionRequests prometheus.Counter
	CompletionFailures prometheus.Counter
	PromptCacheHits    prometheus.Counter
	PromptCacheMisses  prometheus.Counter
	Exports            prometheus.Counter
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			CompletionRequests: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "groqify",
				Name:      "completion_requests_total",
				Help:      "Total chat completion calls issued to the Groq API",
			}),
			CompletionFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "groqify",
				Name:      "completion_failures_total",
				Help:      "Total chat completion calls that returned an error",
			}),
			PromptCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "groqify",
				Name:      "prompt_cache_hits_total",
				Help:      "Total category prompt lookups served from cache",
			}),
			PromptCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "groqify",
				Name:      "prompt_cache_misses_total",
				Help:      "Total category prompt lookups that required a remote fetch",
			}),
			Exports: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "groqify",
				Name:      "exports_total",
				Help:      "Total transcript exports rendered",
			}),
		}
		prometheus.MustRegister(
			global.CompletionRequests,
			global.CompletionFailures,
			global.PromptCacheHits,
			global.PromptCacheMisses,
			global.Exports,
		)
	})
	return global
}

package llm

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
)

// ResilienceConfig bounds retries and total time of one Chat call.
type ResilienceConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Timeout      time.Duration
}

// DefaultResilienceConfig returns two attempts, one second apart, within two
// minutes.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		MaxAttempts:  2,
		InitialDelay: time.Second,
		Timeout:      120 * time.Second,
	}
}

// Resilient wraps an LLM with a timeout and exponential-backoff retries.
type Resilient struct {
	inner LLM
	cfg   ResilienceConfig
}

// NewResilient wraps inner. Zero fields of cfg take their defaults.
func NewResilient(inner LLM, cfg ResilienceConfig) *Resilient {
	def := DefaultResilienceConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = def.InitialDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Resilient{inner: inner, cfg: cfg}
}

func (r *Resilient) Name() string {
	return r.inner.Name()
}

func (r *Resilient) Chat(ctx context.Context, req Request) (string, error) {
	rt := retry.New[string](retry.Config{
		MaxAttempts:   r.cfg.MaxAttempts,
		InitialDelay:  r.cfg.InitialDelay,
		BackoffPolicy: retry.BackoffExponential,
	})
	t := timeout.New[string](timeout.Config{
		DefaultTimeout: r.cfg.Timeout,
	})

	return t.Execute(ctx, r.cfg.Timeout, func(ctx context.Context) (string, error) {
		return rt.Do(ctx, func(ctx context.Context) (string, error) {
			return r.inner.Chat(ctx, req)
		})
	})
}

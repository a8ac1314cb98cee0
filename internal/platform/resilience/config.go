package resilience

import (
	"math/rand"
	"time"
)

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// BackoffConfig shapes the retry delay between attempts against the
// provider: exponential growth capped at MaxDelay, with full jitter so
// concurrent retries do not synchronize.
type BackoffConfig struct {
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		BaseDelay: 500 * time.Millisecond,
		MaxDelay:  8 * time.Second,
	}
}

func NormalizeBackoffConfig(cfg BackoffConfig) BackoffConfig {
	defaults := DefaultBackoffConfig()
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaults.BaseDelay
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = defaults.MaxDelay
	}
	return cfg
}

// Delay computes the jittered delay for a zero-based attempt number.
func (c BackoffConfig) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := c.BaseDelay << uint(attempt)
	if delay <= 0 || delay > c.MaxDelay {
		delay = c.MaxDelay
	}

	// Full jitter over [delay/2, delay].
	half := delay / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}

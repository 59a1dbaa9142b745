package resilience

import (
	"context"
	stderrors "errors"
	"math"
	"syscall"
	"time"

	"github.com/kbukum/lazyflow/errors"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// Attempts is the maximum number of attempts, including the first.
	Attempts int `yaml:"attempts" mapstructure:"attempts" validate:"gte=1,lte=10"`
	// Backoff is the delay before the second attempt.
	Backoff time.Duration `yaml:"backoff" mapstructure:"backoff" validate:"gte=0"`
	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration `yaml:"max_backoff" mapstructure:"max_backoff" validate:"gte=0"`
	// Factor multiplies the delay after every failed attempt.
	Factor float64 `yaml:"factor" mapstructure:"factor" validate:"gte=1"`

	// RetryIf reports whether err is worth another attempt.
	RetryIf func(err error) bool `yaml:"-" mapstructure:"-"`
	// OnRetry is called before sleeping ahead of the next attempt.
	OnRetry func(attempt int, err error, wait time.Duration) `yaml:"-" mapstructure:"-"`
}

// DefaultRetryConfig tries three times, waiting 10ms and then 20ms.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts:   3,
		Backoff:    10 * time.Millisecond,
		MaxBackoff: time.Second,
		Factor:     2,
		RetryIf:    Transient,
	}
}

// NoRetry makes a single attempt.
func NoRetry() RetryConfig {
	return RetryConfig{Attempts: 1}
}

// ApplyDefaults fills zero fields from DefaultRetryConfig.
func (c *RetryConfig) ApplyDefaults() {
	d := DefaultRetryConfig()
	if c.Attempts == 0 {
		c.Attempts = d.Attempts
	}
	if c.Backoff == 0 {
		c.Backoff = d.Backoff
	}
	if c.MaxBackoff == 0 {
		c.MaxBackoff = d.MaxBackoff
	}
	if c.Factor == 0 {
		c.Factor = d.Factor
	}
	if c.RetryIf == nil {
		c.RetryIf = d.RetryIf
	}
}

// Transient reports errors caused by temporary resource exhaustion or
// interrupted system calls.
func Transient(err error) bool {
	for _, errno := range []syscall.Errno{syscall.EMFILE, syscall.ENFILE, syscall.EINTR, syscall.EAGAIN} {
		if stderrors.Is(err, errno) {
			return true
		}
	}
	return false
}

// Retry calls fn until it succeeds, returns an error RetryIf rejects, or runs
// out of attempts. The last error is returned unchanged.
func Retry[T any](cfg RetryConfig, fn func() (T, error)) (T, error) {
	return RetryContext(context.Background(), cfg, fn)
}

// RetryContext is Retry that stops waiting when ctx is done.
func RetryContext[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	attempts := max(cfg.Attempts, 1)
	retryIf := cfg.RetryIf
	if retryIf == nil {
		retryIf = Transient
	}

	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if attempt >= attempts || !retryIf(err) {
			return zero, err
		}

		wait := backoff(attempt, cfg)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, errors.Internal(ctx.Err())
		case <-timer.C:
		}
	}
}

// RetryFunc is Retry for functions without a result.
func RetryFunc(cfg RetryConfig, fn func() error) error {
	_, err := Retry(cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// backoff is Backoff * Factor^(attempt-1), capped at MaxBackoff.
func backoff(attempt int, cfg RetryConfig) time.Duration {
	factor := cfg.Factor
	if factor < 1 {
		factor = 1
	}
	wait := float64(cfg.Backoff) * math.Pow(factor, float64(attempt-1))
	if cfg.MaxBackoff > 0 && wait > float64(cfg.MaxBackoff) {
		wait = float64(cfg.MaxBackoff)
	}
	return time.Duration(wait)
}

package retrier

import (
	"context"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// MaxRetries caps attempts after the first one; zero means bounded only by MaxElapsedTime.
	MaxRetries uint64

	// nil retries every error, otherwise only errors for which it returns true
	ShouldRetry ShouldRetryFunc
}

package idgen

import (
	"context"
	"fmt"
	"time"

	"waste-service/internal/entities"
)

const (
	PrefixBinRequest = "BR"
	PrefixDelivery   = "DEL"
	PrefixTracking   = "TRK"
	PrefixPickup     = "PU"
	PrefixSmartBin   = "BIN"

	DefaultMaxAttempts = 100

	timestampLayout = "20060102150405"
	sequenceModulo  = 10000
)

// ExistsFunc reports whether id is already taken in the backing store.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// PairExistsFunc reports whether either id of a pair is already taken.
type PairExistsFunc func(ctx context.Context, first, second string) (bool, error)

type Generator struct {
	sequence    Sequence
	now         func() time.Time
	maxAttempts int
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func New(sequence Sequence, opts ...Option) *Generator {
	g := &Generator{
		sequence:    sequence,
		now:         time.Now,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns PREFIX-<yyyymmddHHMMSS>-<seq> that exists reports as free.
func (g *Generator) Generate(ctx context.Context, prefix string, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		id, err := g.next(ctx, prefix)
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check %s id uniqueness: %w", prefix, err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s after %d attempts", entities.ErrGenerationFailure, prefix, g.maxAttempts)
}

// GeneratePair produces two ids that must be unique together, like a delivery id and its tracking number.
func (g *Generator) GeneratePair(ctx context.Context, first, second string, exists PairExistsFunc) (string, string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		firstID, err := g.next(ctx, first)
		if err != nil {
			return "", "", err
		}
		secondID, err := g.next(ctx, second)
		if err != nil {
			return "", "", err
		}

		taken, err := exists(ctx, firstID, secondID)
		if err != nil {
			return "", "", fmt.Errorf("check %s/%s id uniqueness: %w", first, second, err)
		}
		if !taken {
			return firstID, secondID, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s/%s after %d attempts", entities.ErrGenerationFailure, first, second, g.maxAttempts)
}

func (g *Generator) next(ctx context.Context, prefix string) (string, error) {
	n, err := g.sequence.Next(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("%w: next %s sequence: %v", entities.ErrGenerationFailure, prefix, err)
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, g.now().UTC().Format(timestampLayout), n%sequenceModulo), nil
}

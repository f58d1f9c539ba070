// Package token_bucket limits request rates per client key with in-memory
// token buckets.
package token_bucket

import (
	"context"
	"sync"
	"time"
)

const defaultIdleTTL = 10 * time.Minute

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter keeps one bucket per key. A bucket starts full with capacity tokens
// and regains refillRate tokens per second.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	capacity   float64
	refillRate float64
	idleTTL    time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithIdleTTL sets how long an untouched bucket survives before it is dropped.
func WithIdleTTL(ttl time.Duration) Option {
	return func(l *Limiter) { l.idleTTL = ttl }
}

func New(capacity int, refillRate float64, opts ...Option) *Limiter {
	l := &Limiter{
		buckets:    make(map[string]*bucket),
		capacity:   float64(capacity),
		refillRate: refillRate,
		idleTTL:    defaultIdleTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l
}

func (l *Limiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.lastRefill).Seconds(); elapsed > 0 {
		b.tokens = min(l.capacity, b.tokens+elapsed*l.refillRate)
		b.lastRefill = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, nil
	}
	return false, nil
}

// Len reports how many keys are tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastRefill) >= l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

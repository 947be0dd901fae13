package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/atletiek"
	"golang.org/x/time/rate"
)

// Default gate configuration: one token per second, at most two banked, and
// none available at startup.
const (
	DefaultRefillInterval = time.Second
	DefaultCapacity       = 2
	DefaultInitialTokens  = 0
)

// Ensure TokenBucket implements atletiek.Gate at compile time.
var _ atletiek.Gate = (*TokenBucket)(nil)

// TokenBucket admits fetches at a steady rate with a bounded burst.
// It is safe for concurrent use; waiters are admitted in arrival order.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket creates a bucket that gains a token every interval, holds
// at most capacity tokens and starts with initial tokens.
func NewTokenBucket(interval time.Duration, capacity, initial int) *TokenBucket {
	capacity = max(capacity, 1)
	initial = min(max(initial, 0), capacity)

	limiter := rate.NewLimiter(rate.Every(interval), capacity)
	if drain := capacity - initial; drain > 0 {
		limiter.ReserveN(time.Now(), drain)
	}
	return &TokenBucket{limiter: limiter}
}

// NewDefaultTokenBucket creates a bucket with the default configuration.
func NewDefaultTokenBucket() *TokenBucket {
	return NewTokenBucket(DefaultRefillInterval, DefaultCapacity, DefaultInitialTokens)
}

// Acquire blocks until a token is available or ctx is done.
func (b *TokenBucket) Acquire(ctx context.Context) error {
	return b.limiter.Wait(ctx)
}

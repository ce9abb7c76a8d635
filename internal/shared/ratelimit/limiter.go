// Package ratelimit provides a keyed token-bucket limiter for inbound
// voice/audio processing, one bucket per Telegram user or chat ID.
package ratelimit

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	// Idle buckets are evicted after this TTL; a fresh bucket starts full,
	// which is acceptable for per-user limits at this scale.
	bucketTTL  = 5 * time.Minute
	maxBuckets = 1000
)

// Limiter hands out one token per Allow call, keyed by ID.
type Limiter struct {
	buckets *expirable.LRU[int64, *rate.Limiter]
	rate    rate.Limit
	burst   int
}

// New creates a limiter allowing perMinute requests per key.
func New(perMinute int) *Limiter {
	burst := perMinute / 2
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		buckets: expirable.NewLRU[int64, *rate.Limiter](maxBuckets, nil, bucketTTL),
		rate:    rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
	}
}

// Allow consumes one token for key, reporting whether the call may proceed.
func (l *Limiter) Allow(key int64) bool {
	bucket, ok := l.buckets.Get(key)
	if !ok {
		bucket = rate.NewLimiter(l.rate, l.burst)
		l.buckets.Add(key, bucket)
	}
	return bucket.Allow()
}

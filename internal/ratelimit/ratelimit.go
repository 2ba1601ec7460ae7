// Package ratelimit provides the per-source token buckets that gate every
// outbound request to an upstream site.
package ratelimit

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// defaultRPS applies to sources that were not given an explicit rate.
const defaultRPS = 1.0

// Registry holds one token bucket per upstream source. Buckets are created
// once and live for the whole process; they are the only state shared
// across requests.
//
// Each bucket carries a single-token burst: a cold bucket cannot burst
// ahead, so N back-to-back acquires against a bucket refilling at R tokens
// per second always span at least (N-1)/R of wall clock. The wait duration
// is computed from the token deficit and refill rate and slept once; there
// is no busy-spinning.
type Registry struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	rates   map[string]float64
}

// NewRegistry creates a registry with the given requests-per-second rate
// for each source ID. Sources missing from the map fall back to defaultRPS
// on first acquire.
func NewRegistry(rates map[string]float64) *Registry {
	r := &Registry{
		buckets: make(map[string]*rate.Limiter, len(rates)),
		rates:   make(map[string]float64, len(rates)),
	}
	for id, rps := range rates {
		if rps <= 0 {
			rps = defaultRPS
		}
		r.rates[id] = rps
		r.buckets[id] = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return r
}

func (r *Registry) bucketFor(source string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.buckets[source]; ok {
		return b
	}
	b := rate.NewLimiter(rate.Limit(defaultRPS), 1)
	r.buckets[source] = b
	return b
}

// Acquire blocks until the bucket for source grants a token, then deducts
// it. Concurrent callers against the same bucket serialize on the bucket's
// own accounting; callers against different sources never block each
// other. Returns an error only when ctx is done before a token is granted.
func (r *Registry) Acquire(ctx context.Context, source string) error {
	if err := r.bucketFor(source).Wait(ctx); err != nil {
		return eris.Wrapf(err, "ratelimit: acquire %s", source)
	}
	return nil
}

// Rate returns the configured requests-per-second for source, or
// defaultRPS when the source was never configured.
func (r *Registry) Rate(source string) float64 {
	if rps, ok := r.rates[source]; ok {
		return rps
	}
	return defaultRPS
}

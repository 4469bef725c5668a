package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/shopinsight"
	"golang.org/x/time/rate"
)

var _ shopinsight.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter rate limits requests per store host with token buckets.
// Stores on different hosts proceed independently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per domain with no bursting. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    1,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.rps <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/reviewskim"
	"golang.org/x/time/rate"
)

var _ reviewskim.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRequestsPerSecond is the per-host request rate used by the CLI.
const DefaultRequestsPerSecond = 1.0

// DomainLimiter spaces out requests to each host. Hosts are limited
// independently and never burst.
type DomainLimiter struct {
	every rate.Limit

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter returns a DomainLimiter allowing rps requests per second
// to every host.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{every: rate.Limit(rps), hosts: map[string]*rate.Limiter{}}
}

// Wait blocks until a request to host may be sent or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.limiter(host).Wait(ctx)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l := d.hosts[host]
	if l == nil {
		l = rate.NewLimiter(d.every, 1)
		d.hosts[host] = l
	}
	return l
}

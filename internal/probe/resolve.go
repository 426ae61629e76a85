package probe

import (
	"context"
	"net"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/tcheinen/bandwhich/internal/logger"
)

const (
	lookupTimeout = 2 * time.Second
	lookupQueue   = 256
)

// lookupFunc matches net.Resolver.LookupAddr; swapped out in tests.
type lookupFunc func(ctx context.Context, addr string) ([]string, error)

// Resolver maintains a reverse-DNS cache for remote addresses. Lookups run
// on a background goroutine so sampling and drawing never wait on DNS.
type Resolver struct {
	log    logger.Logger
	lookup lookupFunc

	mu      sync.Mutex
	cache   map[netip.Addr]string
	pending map[netip.Addr]bool

	queue chan netip.Addr
	done  chan struct{}
}

func NewResolver(log logger.Logger) *Resolver {
	return newResolver(log, net.DefaultResolver.LookupAddr)
}

func newResolver(log logger.Logger, lookup lookupFunc) *Resolver {
	if log == nil {
		log = logger.Noop()
	}
	r := &Resolver{
		log:     log,
		lookup:  lookup,
		cache:   map[netip.Addr]string{},
		pending: map[netip.Addr]bool{},
		queue:   make(chan netip.Addr, lookupQueue),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Resolver) run() {
	for {
		select {
		case <-r.done:
			return
		case addr := <-r.queue:
			ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
			names, err := r.lookup(ctx, addr.String())
			cancel()

			host := ""
			if err != nil {
				r.log.Debug("reverse lookup %s: %v", addr, err)
			} else if len(names) > 0 {
				host = strings.TrimSuffix(names[0], ".")
			}

			r.mu.Lock()
			r.cache[addr] = host
			delete(r.pending, addr)
			r.mu.Unlock()
		}
	}
}

// Request queues reverse lookups for any address not yet cached or in
// flight. It never blocks: when the queue is full remaining addresses are
// retried on a later call.
func (r *Resolver) Request(addrs []netip.Addr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, addr := range addrs {
		if _, done := r.cache[addr]; done {
			continue
		}
		if r.pending[addr] {
			continue
		}
		select {
		case r.queue <- addr:
			r.pending[addr] = true
		default:
			return
		}
	}
}

// Hosts returns a copy of the cache with failed lookups omitted.
func (r *Resolver) Hosts() map[netip.Addr]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[netip.Addr]string, len(r.cache))
	for addr, host := range r.cache {
		if host != "" {
			out[addr] = host
		}
	}
	return out
}

func (r *Resolver) Close() {
	close(r.done)
}

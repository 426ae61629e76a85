package probe

import (
	"context"
	"errors"
	"net/netip"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForHosts(t *testing.T, r *Resolver, want int) map[netip.Addr]string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hosts := r.Hosts(); len(hosts) >= want {
			return hosts
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("resolver never produced %d hosts", want)
	return nil
}

func TestResolverCachesLookups(t *testing.T) {
	var calls atomic.Int64
	r := newResolver(nil, func(ctx context.Context, addr string) ([]string, error) {
		calls.Add(1)
		return []string{"host-" + addr + "."}, nil
	})
	defer r.Close()

	addr := netip.MustParseAddr("1.2.3.4")
	r.Request([]netip.Addr{addr})

	hosts := waitForHosts(t, r, 1)
	assert.Equal(t, "host-1.2.3.4", hosts[addr])

	// cached now; further requests don't hit the lookup function
	r.Request([]netip.Addr{addr})
	r.Request([]netip.Addr{addr})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
}

func TestResolverOmitsFailedLookups(t *testing.T) {
	r := newResolver(nil, func(ctx context.Context, addr string) ([]string, error) {
		return nil, errors.New("nxdomain")
	})
	defer r.Close()

	addr := netip.MustParseAddr("10.9.8.7")
	r.Request([]netip.Addr{addr})

	// give the worker a moment to record the failure
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		_, done := r.cache[addr]
		r.mu.Unlock()
		if done {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	assert.Empty(t, r.Hosts())

	// failures are cached too, no retry storm
	r.Request([]netip.Addr{addr})
	r.mu.Lock()
	pending := len(r.pending)
	r.mu.Unlock()
	assert.Zero(t, pending)
}

func TestResolverRequestNeverBlocks(t *testing.T) {
	block := make(chan struct{})
	r := newResolver(nil, func(ctx context.Context, addr string) ([]string, error) {
		<-block
		return nil, nil
	})
	defer func() {
		close(block)
		r.Close()
	}()

	addrs := make([]netip.Addr, 0, lookupQueue*2)
	for i := 0; i < lookupQueue*2; i++ {
		addrs = append(addrs, netip.AddrFrom4([4]byte{10, 0, byte(i / 256), byte(i % 256)}))
	}

	done := make(chan struct{})
	go func() {
		r.Request(addrs)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Request blocked on a full queue")
	}
}

func TestResolverStripsTrailingDot(t *testing.T) {
	r := newResolver(nil, func(ctx context.Context, addr string) ([]string, error) {
		return []string{"dns.google."}, nil
	})
	defer r.Close()

	addr := netip.MustParseAddr("8.8.8.8")
	r.Request([]netip.Addr{addr})
	hosts := waitForHosts(t, r, 1)
	require.Contains(t, hosts, addr)
	assert.Equal(t, "dns.google", hosts[addr])
}

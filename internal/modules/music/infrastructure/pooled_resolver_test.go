package infrastructure

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
)

// blockingResolver tracks concurrent invocations and blocks until released.
type blockingResolver struct {
	release    chan struct{}
	inFlight   atomic.Int32
	maxSeen    atomic.Int32
	honorCtx   bool
	lookupDone atomic.Int32
}

func (r *blockingResolver) Lookup(
	ctx context.Context,
	query string,
	opts ports.LookupOptions,
) (*ports.LookupResult, error) {
	current := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		max := r.maxSeen.Load()
		if current <= max || r.maxSeen.CompareAndSwap(max, current) {
			break
		}
	}

	if r.honorCtx {
		select {
		case <-r.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	} else {
		<-r.release
	}

	r.lookupDone.Add(1)
	return &ports.LookupResult{Entries: []*ports.MediaInfo{{Title: query}}}, nil
}

func TestPooledResolver_BoundsConcurrency(t *testing.T) {
	inner := &blockingResolver{release: make(chan struct{})}
	pool := NewPooledResolver(inner, 2, time.Minute)
	defer pool.Close()

	var wg sync.WaitGroup
	for range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = pool.Lookup(context.Background(), "q", ports.LookupOptions{})
		}()
	}

	// Let the workers pick tasks up, then release everything.
	time.Sleep(50 * time.Millisecond)
	close(inner.release)
	wg.Wait()

	if max := inner.maxSeen.Load(); max > 2 {
		t.Errorf("expected at most 2 concurrent lookups, saw %d", max)
	}
	if done := inner.lookupDone.Load(); done != 6 {
		t.Errorf("expected all 6 lookups to complete, got %d", done)
	}
}

func TestPooledResolver_AppliesTimeout(t *testing.T) {
	inner := &blockingResolver{release: make(chan struct{}), honorCtx: true}
	pool := NewPooledResolver(inner, 1, 20*time.Millisecond)
	defer pool.Close()
	defer close(inner.release)

	_, err := pool.Lookup(context.Background(), "slow", ports.LookupOptions{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestPooledResolver_CallerCancellation(t *testing.T) {
	inner := &blockingResolver{release: make(chan struct{}), honorCtx: true}
	pool := NewPooledResolver(inner, 1, time.Minute)
	defer pool.Close()
	defer close(inner.release)

	// Occupy the single worker.
	go func() {
		_, _ = pool.Lookup(context.Background(), "busy", ports.LookupOptions{})
	}()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pool.Lookup(ctx, "queued", ports.LookupOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected Canceled, got %v", err)
	}
}

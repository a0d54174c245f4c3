package infrastructure

import (
	"context"
	"time"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
)

// lookupTask is one queued resolver invocation.
type lookupTask struct {
	ctx    context.Context
	query  string
	opts   ports.LookupOptions
	result chan<- lookupOutcome
}

type lookupOutcome struct {
	result *ports.LookupResult
	err    error
}

// PooledResolver runs lookups through a fixed pool of workers, bounding how
// many yt-dlp subprocesses run at once, and applies a per-lookup timeout.
// Excess lookups queue up rather than spawning more work.
type PooledResolver struct {
	inner   ports.MediaResolver
	timeout time.Duration
	tasks   chan lookupTask
	done    chan struct{}
}

var _ ports.MediaResolver = (*PooledResolver)(nil)

// NewPooledResolver wraps inner with a pool of workers concurrent lookups.
func NewPooledResolver(inner ports.MediaResolver, workers int, timeout time.Duration) *PooledResolver {
	p := &PooledResolver{
		inner:   inner,
		timeout: timeout,
		tasks:   make(chan lookupTask),
		done:    make(chan struct{}),
	}
	for range workers {
		go p.worker()
	}
	return p
}

func (p *PooledResolver) worker() {
	for {
		select {
		case task := <-p.tasks:
			ctx, cancel := context.WithTimeout(task.ctx, p.timeout)
			result, err := p.inner.Lookup(ctx, task.query, task.opts)
			cancel()
			task.result <- lookupOutcome{result: result, err: err}
		case <-p.done:
			return
		}
	}
}

// Lookup implements ports.MediaResolver. Blocks until a worker picks the
// task up and finishes, or the caller's context ends first.
func (p *PooledResolver) Lookup(
	ctx context.Context,
	query string,
	opts ports.LookupOptions,
) (*ports.LookupResult, error) {
	result := make(chan lookupOutcome, 1)
	task := lookupTask{ctx: ctx, query: query, opts: opts, result: result}

	select {
	case p.tasks <- task:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case outcome := <-result:
		return outcome.result, outcome.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the worker pool. In-flight lookups finish; queued ones are
// abandoned.
func (p *PooledResolver) Close() {
	close(p.done)
}

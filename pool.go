package md2docx

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent conversions; each holds a full document
	// tree in memory.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the request handling goroutines.
	cpuDivisor = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("converter pool closed")

// ConverterPool bounds the number of conversions running at once.
// Converters are created lazily on first acquire to avoid startup delay.
type ConverterPool struct {
	size    int
	opts    []Option
	sem     chan *Converter
	mu      sync.Mutex
	created int
	closed  bool
	done    chan struct{}
}

// NewConverterPool creates a pool with capacity for n converters, each
// built with opts. Converters are created when acquired, not at pool creation.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < 1 {
		n = 1
	}

	return &ConverterPool{
		size: n,
		opts: opts,
		sem:  make(chan *Converter, n),
		done: make(chan struct{}),
	}
}

// Acquire gets a converter from the pool, creating one if needed.
// Blocks until a converter is released, ctx ends or the pool is closed.
func (p *ConverterPool) Acquire(ctx context.Context) (*Converter, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}

	// Try to get an existing converter (non-blocking)
	select {
	case conv := <-p.sem:
		p.mu.Unlock()
		return conv, nil
	default:
	}

	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new converter outside the lock
		conv, err := NewConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		return conv, nil
	}
	p.mu.Unlock()

	// All converters created, wait for one to be released
	select {
	case conv := <-p.sem:
		return conv, nil
	case <-p.done:
		return nil, ErrPoolClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a converter to the pool. Releasing after Close is a no-op.
func (p *ConverterPool) Release(conv *Converter) {
	if conv == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	select {
	case p.sem <- conv:
	default:
		// More releases than acquires; drop the extra.
	}
}

// Convert acquires a converter, runs one conversion and releases it.
func (p *ConverterPool) Convert(ctx context.Context, input Input) (*ConvertResult, error) {
	conv, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(conv)
	return conv.Convert(ctx, input)
}

// Profiles lists the style profiles of a pooled converter. Every converter
// in the pool is built with the same options, so any one of them answers.
func (p *ConverterPool) Profiles(ctx context.Context) ([]ProfileInfo, error) {
	conv, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(conv)
	return conv.Profiles()
}

// Close stops handing out converters. Blocked Acquire calls return
// ErrPoolClosed.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	return nil
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

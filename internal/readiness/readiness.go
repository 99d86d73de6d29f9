package readiness

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Flag is a readiness marker that can be set exactly once.
type Flag struct {
	once sync.Once
	done chan struct{}
}

func NewFlag() *Flag {
	return &Flag{done: make(chan struct{})}
}

func (f *Flag) MarkReady() {
	f.once.Do(func() { close(f.done) })
}

func (f *Flag) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done is closed once the flag is marked ready.
func (f *Flag) Done() <-chan struct{} {
	return f.done
}

// Gate bounds how long callers wait for a Flag. Each Wait call is independent.
type Gate struct {
	pollInterval time.Duration
	maxPolls     int
}

func NewGate(pollInterval time.Duration, maxPolls int) *Gate {
	if pollInterval <= 0 {
		pollInterval = 300 * time.Millisecond
	}
	if maxPolls <= 0 {
		maxPolls = 20
	}
	return &Gate{pollInterval: pollInterval, maxPolls: maxPolls}
}

// MaxWait is the longest a single Wait call blocks.
func (g *Gate) MaxWait() time.Duration {
	return g.pollInterval * time.Duration(g.maxPolls)
}

// Wait blocks until the flag is ready, MaxWait elapses or ctx is done. It
// reports whether the flag became ready.
func (g *Gate) Wait(ctx context.Context, f *Flag) bool {
	if f.Ready() {
		return true
	}
	timer := time.NewTimer(g.MaxWait())
	defer timer.Stop()

	select {
	case <-f.Done():
		return true
	case <-timer.C:
		return f.Ready()
	case <-ctx.Done():
		return f.Ready()
	}
}

// Probe runs check up to attempts times, pausing delay between failures, and
// marks the flag ready on the first success.
func Probe(ctx context.Context, f *Flag, attempts int, delay time.Duration, check func(context.Context) error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var lasterr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if err := check(ctx); err != nil {
			lasterr = err
			continue
		}
		f.MarkReady()
		return nil
	}
	return fmt.Errorf("readiness probe failed after %d attempts: %w", attempts, lasterr)
}

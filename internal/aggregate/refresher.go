package aggregate

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Refresher reloads an Engine on a fixed interval until stopped.
type Refresher struct {
	engine   *Engine
	interval time.Duration
	logger   *zap.Logger
	stop     chan struct{}
	done     chan struct{}
}

func NewRefresher(engine *Engine, interval time.Duration, logger *zap.Logger) *Refresher {
	return &Refresher{
		engine:   engine,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the reload loop. A non-positive interval disables it.
func (r *Refresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		close(r.done)
		return
	}
	go r.run(ctx)
}

func (r *Refresher) Stop(ctx context.Context) error {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := r.engine.LoadAll(ctx)
			r.logger.Debug("snapshot refreshed", zap.Int("total", stats.Total()))
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

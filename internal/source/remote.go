package source

import (
	"context"
	"fmt"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/ChaseHampton/goobituaries/internal/readiness"
	"go.uber.org/zap"
)

// RemoteStore is the client of the authoritative remote backend.
type RemoteStore interface {
	FetchObituaries(ctx context.Context) ([]RemoteRecord, error)
	AppendCondolence(ctx context.Context, obituaryID string, in obituary.CondolenceInput) (string, error)
	FetchCondolences(ctx context.Context, obituaryID string) ([]obituary.Condolence, error)
}

// Remote reads from a RemoteStore once its readiness flag is set.
type Remote struct {
	store  RemoteStore
	flag   *readiness.Flag
	gate   *readiness.Gate
	logger *zap.Logger
}

func NewRemote(store RemoteStore, flag *readiness.Flag, gate *readiness.Gate, logger *zap.Logger) *Remote {
	return &Remote{store: store, flag: flag, gate: gate, logger: logger}
}

func (r *Remote) FetchAll(ctx context.Context) ([]NativeRecord, error) {
	if r.store == nil {
		return nil, nil
	}
	if !r.gate.Wait(ctx, r.flag) {
		r.logger.Warn("remote store not ready, skipping", zap.Duration("waited", r.gate.MaxWait()))
		return nil, ErrNotReady
	}
	rows, err := r.store.FetchObituaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote obituaries: %w", err)
	}
	recs := make([]NativeRecord, len(rows))
	for i, row := range rows {
		recs[i] = row
	}
	return recs, nil
}

func (r *Remote) AppendCondolence(ctx context.Context, obituaryID string, in obituary.CondolenceInput) (string, error) {
	if r.store == nil || !r.flag.Ready() {
		return "", ErrNotReady
	}
	id, err := r.store.AppendCondolence(ctx, obituaryID, in)
	if err != nil {
		return "", fmt.Errorf("failed to append condolence: %w", err)
	}
	return id, nil
}

func (r *Remote) FetchCondolences(ctx context.Context, obituaryID string) ([]obituary.Condolence, error) {
	if r.store == nil || !r.flag.Ready() {
		return nil, ErrNotReady
	}
	cs, err := r.store.FetchCondolences(ctx, obituaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch condolences: %w", err)
	}
	return cs, nil
}

package source

import (
	"context"
	"errors"
)

var ErrNotReady = errors.New("remote store not ready")

// Adapter fetches every row a source currently holds.
type Adapter interface {
	FetchAll(ctx context.Context) ([]NativeRecord, error)
}

// AdapterFunc adapts a plain function to Adapter.
type AdapterFunc func(ctx context.Context) ([]NativeRecord, error)

func (f AdapterFunc) FetchAll(ctx context.Context) ([]NativeRecord, error) {
	return f(ctx)
}

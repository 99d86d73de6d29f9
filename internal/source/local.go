package source

import (
	"context"
	"fmt"

	"github.com/ChaseHampton/goobituaries/internal/cache"
	"go.uber.org/zap"
)

// Local reads the admin tool's rows from a single cache key.
type Local struct {
	store  cache.Cache
	key    string
	logger *zap.Logger
}

func NewLocal(store cache.Cache, key string, logger *zap.Logger) *Local {
	return &Local{store: store, key: key, logger: logger}
}

func (l *Local) FetchAll(ctx context.Context) ([]NativeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := l.store.Get(l.key)
	if !ok || len(data) == 0 {
		return nil, nil
	}
	rows, err := decodeRows[LocalRecord](data, func(i int, err error) {
		l.logger.Warn("skipping malformed local row", zap.String("key", l.key), zap.Int("row", i), zap.Error(err))
	})
	if err != nil {
		return nil, fmt.Errorf("malformed local cache %q: %w", l.key, err)
	}
	recs := make([]NativeRecord, len(rows))
	for i, row := range rows {
		recs[i] = row
	}
	return recs, nil
}

package aggregate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/duplicates"
	"github.com/ChaseHampton/goobituaries/internal/normalize"
	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/ChaseHampton/goobituaries/internal/search"
	"github.com/ChaseHampton/goobituaries/internal/source"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sources are the three adapters in merge priority order. A nil adapter
// contributes nothing.
type Sources struct {
	Remote source.Adapter
	Static source.Adapter
	Local  source.Adapter
}

// CondolenceStore is the authoritative store for condolences.
type CondolenceStore interface {
	AppendCondolence(ctx context.Context, obituaryID string, in obituary.CondolenceInput) (string, error)
	FetchCondolences(ctx context.Context, obituaryID string) ([]obituary.Condolence, error)
}

// Stats describes the last load.
type Stats struct {
	Remote   int       `json:"remote"`
	Static   int       `json:"static"`
	Local    int       `json:"local"`
	Fallback bool      `json:"fallback"`
	LoadedAt time.Time `json:"loadedAt"`
}

func (s Stats) Total() int {
	return s.Remote + s.Static + s.Local
}

// Engine owns the merged snapshot. One Engine is shared by every consumer in
// a process; its methods never panic and never return errors, failures show
// up as empty results and in the log.
type Engine struct {
	sources Sources
	store   CondolenceStore
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.RWMutex
	snapshot []obituary.Obituary
	stats    Stats
}

// NewEngine builds an engine with an empty snapshot. store may be nil, in
// which case condolences are kept in memory only.
func NewEngine(sources Sources, store CondolenceStore, logger *zap.Logger) *Engine {
	return &Engine{
		sources:  sources,
		store:    store,
		logger:   logger,
		now:      time.Now,
		snapshot: []obituary.Obituary{},
	}
}

// LoadAll fetches every source concurrently and replaces the snapshot in one
// step. Placeholder records are used when every source comes back empty.
func (e *Engine) LoadAll(ctx context.Context) (stats Stats) {
	defer e.recoverTo("LoadAll")

	adapters := []struct {
		src     obituary.Source
		adapter source.Adapter
	}{
		{obituary.SourceRemote, e.sources.Remote},
		{obituary.SourceStatic, e.sources.Static},
		{obituary.SourceLocal, e.sources.Local},
	}

	results := make([][]obituary.Obituary, len(adapters))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range adapters {
		i, a := i, a
		g.Go(func() error {
			results[i] = e.fetch(gctx, a.src, a.adapter)
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]obituary.Obituary, 0, len(results[0])+len(results[1])+len(results[2]))
	for _, r := range results {
		merged = append(merged, r...)
	}
	stats = Stats{
		Remote:   len(results[0]),
		Static:   len(results[1]),
		Local:    len(results[2]),
		LoadedAt: e.now(),
	}
	if len(merged) == 0 {
		merged = Placeholders()
		stats.Fallback = true
		e.logger.Info("no obituaries from any source, using placeholders")
	}

	for _, grp := range duplicates.Find(merged) {
		e.logger.Info("possible duplicate obituaries", zap.String("key", grp.Key), zap.Strings("ids", grp.IDs))
	}

	e.mu.Lock()
	e.snapshot = merged
	e.stats = stats
	e.mu.Unlock()

	e.logger.Info("obituaries loaded",
		zap.Int("remote", stats.Remote),
		zap.Int("static", stats.Static),
		zap.Int("local", stats.Local),
		zap.Bool("fallback", stats.Fallback))
	return stats
}

// fetch runs one adapter; errors and panics count as zero records.
func (e *Engine) fetch(ctx context.Context, src obituary.Source, a source.Adapter) (out []obituary.Obituary) {
	if a == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("source adapter panicked", zap.String("source", string(src)), zap.Any("panic", r))
			out = nil
		}
	}()

	start := time.Now()
	recs, err := a.FetchAll(ctx)
	if err != nil {
		e.logger.Warn("source unavailable", zap.String("source", string(src)), zap.Error(err))
		return nil
	}
	out = normalize.All(recs, e.logger.With(zap.String("source", string(src))))
	e.logger.Debug("source fetched",
		zap.String("source", string(src)),
		zap.Int("rows", len(recs)),
		zap.Int("kept", len(out)),
		zap.Duration("took", time.Since(start)))
	return out
}

// GetAll returns a copy of the snapshot in merge order.
func (e *Engine) GetAll() (out []obituary.Obituary) {
	defer e.recoverTo("GetAll")
	e.mu.RLock()
	defer e.mu.RUnlock()
	return obituary.CloneAll(e.snapshot)
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

// GetByID finds a record by prefixed id, bare id, numeric id or legacy
// prefixed id. The first match in merge order wins.
func (e *Engine) GetByID(id string) (o obituary.Obituary, ok bool) {
	defer e.recoverTo("GetByID")
	e.mu.RLock()
	defer e.mu.RUnlock()

	if i := e.indexOf(id); i >= 0 {
		return e.snapshot[i].Clone(), true
	}
	e.logger.Debug("obituary not found", zap.String("id", id))
	return obituary.Obituary{}, false
}

func (e *Engine) GetByNumber(n int64) (obituary.Obituary, bool) {
	return e.GetByID(strconv.FormatInt(n, 10))
}

// indexOf must be called with e.mu held.
func (e *Engine) indexOf(id string) int {
	if strings.TrimSpace(id) == "" {
		return -1
	}
	for i := range e.snapshot {
		if obituary.MatchID(e.snapshot[i].ID, id) {
			return i
		}
	}
	return -1
}

// GetRecent returns the first limit records in snapshot order.
func (e *Engine) GetRecent(limit int) (out []obituary.Obituary) {
	defer e.recoverTo("GetRecent")
	if limit <= 0 {
		return []obituary.Obituary{}
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if limit > len(e.snapshot) {
		limit = len(e.snapshot)
	}
	return obituary.CloneAll(e.snapshot[:limit])
}

func (e *Engine) Search(p search.Params) (out []obituary.Obituary) {
	defer e.recoverTo("Search")
	e.mu.RLock()
	defer e.mu.RUnlock()
	return obituary.CloneAll(search.Filter(e.snapshot, p))
}

// AddCondolence stores a condolence for the record named by id and appends
// it to the in-memory record. It reports false, with nothing changed, when
// the record is unknown or the store rejects the write.
func (e *Engine) AddCondolence(ctx context.Context, id string, in obituary.CondolenceInput) (ok bool) {
	defer e.recoverTo("AddCondolence")

	// Inputs may alias a transport buffer; the snapshot keeps its own copy.
	in.Name = strings.Clone(strings.TrimSpace(in.Name))
	in.Email = strings.Clone(strings.TrimSpace(in.Email))
	in.Message = strings.Clone(strings.TrimSpace(in.Message))
	if in.Name == "" || in.Message == "" {
		e.logger.Warn("rejecting empty condolence", zap.String("id", id))
		return false
	}

	target, found := e.GetByID(id)
	if !found {
		e.logger.Warn("condolence for unknown obituary", zap.String("id", id))
		return false
	}

	condolenceID := uuid.NewString()
	if e.store != nil {
		storedID, err := e.store.AppendCondolence(ctx, target.ID, in)
		if err != nil {
			e.logger.Error("failed to store condolence", zap.String("id", target.ID), zap.Error(err))
			return false
		}
		if storedID != "" {
			condolenceID = storedID
		}
	}

	c := obituary.Condolence{
		ID:          condolenceID,
		Name:        in.Name,
		Email:       in.Email,
		Message:     in.Message,
		SubmittedAt: e.now().UTC(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// The snapshot may have been reloaded while the store call was in flight.
	for i := range e.snapshot {
		if e.snapshot[i].ID == target.ID {
			e.snapshot[i].Condolences = append(e.snapshot[i].Condolences, c)
			break
		}
	}
	return true
}

// Condolences returns the stored condolences for a record, falling back to
// the in-memory list when the store is unavailable or has none.
func (e *Engine) Condolences(ctx context.Context, id string) (out []obituary.Condolence) {
	defer e.recoverTo("Condolences")

	target, found := e.GetByID(id)
	if !found {
		return []obituary.Condolence{}
	}
	if e.store != nil {
		stored, err := e.store.FetchCondolences(ctx, target.ID)
		if err != nil {
			e.logger.Warn("condolence store unavailable, using memory", zap.String("id", target.ID), zap.Error(err))
		} else if len(stored) > 0 {
			return stored
		}
	}
	return target.Condolences
}

func (e *Engine) recoverTo(op string) {
	if r := recover(); r != nil {
		e.logger.Error("recovered from panic", zap.String("op", op), zap.String("panic", fmt.Sprint(r)))
	}
}

package cli

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/ChaseHampton/goobituaries/internal/aggregate"
	"github.com/ChaseHampton/goobituaries/internal/cache"
	"github.com/ChaseHampton/goobituaries/internal/client"
	"github.com/ChaseHampton/goobituaries/internal/config"
	"github.com/ChaseHampton/goobituaries/internal/db"
	"github.com/ChaseHampton/goobituaries/internal/docstore"
	"github.com/ChaseHampton/goobituaries/internal/logging"
	"github.com/ChaseHampton/goobituaries/internal/readiness"
	"github.com/ChaseHampton/goobituaries/internal/source"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app is everything one process shares: a single engine and a single
// readiness flag for the remote store.
type app struct {
	cfg    *config.Config
	dbcfg  *config.DbConfig
	logger *zap.Logger
	engine *aggregate.Engine
	flag   *readiness.Flag

	initRemote  func(context.Context) error
	closeRemote func(context.Context) error
}

type remoteStore interface {
	source.RemoteStore
	Init(ctx context.Context) error
}

func newApp(ctx context.Context) (*app, error) {
	v := viper.GetViper()
	cfg := config.NewConfig(v)
	dbcfg := config.NewDbConfig(v)
	if viper.GetBool("verbose") {
		cfg.LogConfig.Level = "debug"
	}

	logger, err := logging.New(cfg.LogConfig)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		dbcfg:  dbcfg,
		logger: logger,
		flag:   readiness.NewFlag(),
	}

	var store remoteStore
	switch dbcfg.Backend {
	case config.BackendSQL:
		s, err := db.Open(dbcfg)
		if err != nil {
			return nil, err
		}
		store = s
		a.closeRemote = func(context.Context) error { return s.Close() }
	case config.BackendMongo:
		loc, err := time.LoadLocation(dbcfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_TIMEZONE %q: %w", dbcfg.Timezone, err)
		}
		s, err := docstore.Connect(ctx, dbcfg.MongoURI, dbcfg.MongoDatabase, loc)
		if err != nil {
			return nil, err
		}
		store = s
		a.closeRemote = s.Close
	case config.BackendNone, "":
	default:
		return nil, fmt.Errorf("unknown remote backend %q", dbcfg.Backend)
	}

	gate := readiness.NewGate(cfg.ReadinessConfig.PollInterval, cfg.ReadinessConfig.MaxPolls)
	var remote *source.Remote
	var condolences aggregate.CondolenceStore
	if store != nil {
		remote = source.NewRemote(store, a.flag, gate, logger.Named("remote"))
		condolences = remote
		a.initRemote = store.Init
	} else {
		remote = source.NewRemote(nil, a.flag, gate, logger.Named("remote"))
	}

	local := cache.NewLayeredCache(cfg.SourcesConfig.LocalCacheTTL, cfg.SourcesConfig.LocalCacheDir)
	a.engine = aggregate.NewEngine(aggregate.Sources{
		Remote: remote,
		Static: source.NewManifest(cfg.SourcesConfig.ManifestLocation, client.NewClient(&cfg.HTTPConfig), logger.Named("manifest")),
		Local:  source.NewLocal(local, cfg.SourcesConfig.LocalCacheKey, logger.Named("local")),
	}, condolences, logger.Named("engine"))
	return a, nil
}

// startProbe initializes the remote store in the background and marks the
// readiness flag once it answers.
func (a *app) startProbe(ctx context.Context) {
	if a.initRemote == nil {
		return
	}
	rc := a.cfg.ReadinessConfig
	go func() {
		if err := readiness.Probe(ctx, a.flag, rc.ProbeAttempts, rc.ProbeDelay, a.initRemote); err != nil {
			a.logger.Warn("remote store unavailable", zap.String("backend", a.dbcfg.Backend), zap.Error(err))
			return
		}
		a.logger.Info("remote store ready", zap.String("backend", a.dbcfg.Backend))
	}()
}

func (a *app) close(ctx context.Context) {
	if a.closeRemote != nil {
		if err := a.closeRemote(ctx); err != nil {
			a.logger.Warn("failed to close remote store", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

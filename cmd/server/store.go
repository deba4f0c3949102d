package main

import (
	"context"
	"fmt"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/prometheus/client_golang/prometheus"

	tc "github.com/linnemanlabs/trigon/internal/cfg"
	"github.com/linnemanlabs/trigon/internal/classify"
	"github.com/linnemanlabs/trigon/internal/classify/memstore"
	"github.com/linnemanlabs/trigon/internal/classify/pgstore"
	"github.com/linnemanlabs/trigon/internal/postgres"
)

// openStore picks postgres when a database url is configured and the
// in-memory store otherwise. The returned close func is never nil.
func openStore(ctx context.Context, L log.Logger, appCfg *tc.Config) (classify.Store, func(), error) {
	if appCfg.DatabaseURL == "" {
		L.Info(ctx, "using in-memory store (no database-url configured)")
		return memstore.New(), func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, appCfg.DatabaseURL, postgres.PoolOptions{
		MaxConns:  int32(appCfg.DatabaseMaxConns), //nolint:gosec // bounded to 0..1000 by Validate
		SlowQuery: appCfg.SlowQuery(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("postgres pool: %w", err)
	}

	st, err := pgstore.New(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pgstore init: %w", err)
	}

	L.Info(ctx, "using postgres store", "max_conns", pool.Config().MaxConns, "slow_query", appCfg.SlowQuery())
	return st, pool.Close, nil
}

// registerDBMetrics exports per-query durations labelled by the request
// that issued them.
func registerDBMetrics(reg prometheus.Registerer) {
	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trigon_db_query_duration_seconds",
		Help:    "Duration of individual database queries.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "outcome"})
	reg.MustRegister(dbQueryDuration)

	postgres.SetQueryObserver(postgres.QueryObserverFunc(
		func(_ context.Context, method, route, outcome string, dur time.Duration) {
			dbQueryDuration.WithLabelValues(method, route, outcome).Observe(dur.Seconds())
		},
	))
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"waste-service/internal/pkg/config"
	"waste-service/pkg/logger"
	retrierconfig "waste-service/pkg/retrier"
	"waste-service/pkg/retrier/backoff_adapter"
)

const (
	defaultMaxConns = 10
	applicationName = "waste-service"
)

var pingRetry = retrierconfig.Config{
	InitialInterval: 2 * time.Second,
	MaxInterval:     30 * time.Second,
	MaxElapsedTime:  2 * time.Minute,
	Randomization:   0.5,
	Multiplier:      2,
}

// NewConnPool opens the pool, waits until Postgres answers and exports pool gauges.
func NewConnPool(ctx context.Context, log logger.Logger, cfg *config.Database) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(newDsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	applyPoolLimits(poolCfg, cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connection pool: %w", err)
	}

	dbLog := log.With(
		logger.NewField("component", "postgres"),
		logger.NewField("addr", net.JoinHostPort(cfg.Host, cfg.Port)),
		logger.NewField("db", cfg.DBName),
	)

	if err := waitForDatabase(ctx, dbLog, pool); err != nil {
		pool.Close()
		return nil, err
	}

	if err := registerPoolMetrics(pool); err != nil {
		dbLog.Warn("pool metrics not registered", logger.NewField("error", err))
	}
	return pool, nil
}

// applyPoolLimits keeps a quarter of the pool warm and recycles connections hourly.
func applyPoolLimits(poolCfg *pgxpool.Config, maxConns int) {
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	poolCfg.MaxConns = int32(maxConns)
	poolCfg.MinConns = max(int32(maxConns/4), 1)
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 10 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
}

// newDsn escapes credentials so passwords with reserved characters survive.
func newDsn(cfg *config.Database) string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   cfg.DBName,
	}
	query := dsn.Query()
	query.Set("sslmode", cfg.SSLMode)
	query.Set("application_name", applicationName)
	dsn.RawQuery = query.Encode()

	return dsn.String()
}

func waitForDatabase(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	var attempt uint64
	err := backoff_adapter.New(pingRetry).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(logger.NewField("attempt", attempt)).Info("waiting for postgres")
		return pool.Ping(ctx)
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("postgres unreachable")
		return fmt.Errorf("ping postgres: %w", err)
	}

	log.With(logger.NewField("attempts", attempt)).Info("postgres connected")
	return nil
}

func registerPoolMetrics(pool *pgxpool.Pool) error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "postgres_pool_acquired_connections",
			Help: "Connections currently checked out of the pool",
		}, func() float64 { return float64(pool.Stat().AcquiredConns()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "postgres_pool_idle_connections",
			Help: "Idle connections held by the pool",
		}, func() float64 { return float64(pool.Stat().IdleConns()) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "postgres_pool_empty_acquire_total",
			Help: "Acquires that had to wait because the pool was empty",
		}, func() float64 { return float64(pool.Stat().EmptyAcquireCount()) }),
	}

	for _, gauge := range gauges {
		var already prometheus.AlreadyRegisteredError
		if err := prometheus.Register(gauge); err != nil && !errors.As(err, &already) {
			return err
		}
	}
	return nil
}

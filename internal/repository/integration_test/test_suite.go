package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/stretchr/testify/require"
	"waste-service/internal/pkg/config"
	"waste-service/internal/pkg/dotenv"
	"waste-service/internal/pkg/postgres"
	"waste-service/pkg/logger/zap_adapter"
	"waste-service/pkg/querier"
)

var (
	querierInstance *querier.Querier
	querierOnce     sync.Once
)

// Seed users shared by repository tests.
const SeedUsers = `
	INSERT INTO users (id, name, email, role, active, device_token)
	VALUES
		('res-1', 'Nimal Perera', 'nimal@example.com', 'resident', TRUE, 'fcm-token-res-1'),
		('res-2', 'Kamala Silva', 'kamala@example.com', 'resident', TRUE, NULL),
		('op-1', 'Operator One', 'op1@example.com', 'operator', TRUE, NULL),
		('adm-1', 'Admin One', 'adm1@example.com', 'admin', TRUE, NULL),
		('adm-2', 'Admin Retired', 'adm2@example.com', 'admin', FALSE, NULL),
		('col-1', 'Collector One', 'col1@example.com', 'collector', TRUE, NULL);
`

// GetQuerier connects once per test binary and brings the schema up to date.
// Settings come from the environment or the file named by ENV_FILE.
func GetQuerier() *querier.Querier {
	querierOnce.Do(func() {
		if err := dotenv.Load(); err != nil {
			log.Fatalf("load test environment: %v", err)
		}

		cfg := &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: 4,
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		zapLogger, err := zap_adapter.NewZapAdapter("warn")
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}

		connPool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			log.Fatalf("connect test database: %v", err)
		}

		if err := postgres.Migrate(ctx, zapLogger, connPool); err != nil {
			log.Fatalf("migrate test database: %v", err)
		}

		querierInstance = querier.New(connPool, pgxv5.DefaultCtxGetter)
	})

	return querierInstance
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, SeedUsers+setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE notifications, pickup_requests, deliveries, bin_requests,
			smart_bins, payments, users RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}

package grpcclient

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"
	"waste-service/internal/pkg/config"
	"waste-service/pkg/logger"
	retrierconfig "waste-service/pkg/retrier"
	"waste-service/pkg/retrier/backoff_adapter"
)

var healthRetry = retrierconfig.Config{
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     15 * time.Second,
	MaxElapsedTime:  time.Minute,
	Randomization:   0.5,
	Multiplier:      2,
}

// NewConnClient opens a connection to the billing ledger and returns once its
// health service reports SERVING.
func NewConnClient(ctx context.Context, log logger.Logger, cfg *config.Payment) (*grpc.ClientConn, error) {
	ledgerLog := log.With(
		logger.NewField("component", "payment-ledger-client"),
		logger.NewField("target", cfg.GRPCHost),
	)

	conn, err := dial(cfg.GRPCHost, ledgerLog)
	if err != nil {
		return nil, err
	}

	if err := awaitServing(ctx, ledgerLog, healthpb.NewHealthClient(conn)); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			ledgerLog.Warn("close unhealthy ledger connection", logger.NewField("error", closeErr))
		}
		return nil, err
	}
	return conn, nil
}

func dial(target string, log logger.Logger, extra ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    5 * time.Minute,
			Timeout: 3 * time.Second,
		}),
		grpc.WithUnaryInterceptor(logFailedCalls(log)),
	}, extra...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("create payment ledger client for %q: %w", target, err)
	}
	return conn, nil
}

// logFailedCalls reports every unary call that ends with a non-OK status.
func logFailedCalls(log logger.Logger) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		started := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err != nil {
			log.Warn("payment ledger call failed",
				logger.NewField("method", method),
				logger.NewField("code", status.Code(err).String()),
				logger.NewField("elapsed", time.Since(started)),
			)
		}
		return err
	}
}

func awaitServing(ctx context.Context, log logger.Logger, health healthpb.HealthClient) error {
	var attempt uint64
	err := backoff_adapter.New(healthRetry).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		resp, err := health.Check(ctx, &healthpb.HealthCheckRequest{})
		if err != nil {
			return err
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			return fmt.Errorf("payment ledger reports %s", resp.GetStatus())
		}
		return nil
	})
	if err != nil {
		log.Error("payment ledger never became healthy",
			logger.NewField("attempts", attempt),
			logger.NewField("error", err),
		)
		return fmt.Errorf("payment ledger health: %w", err)
	}

	log.Info("payment ledger connected", logger.NewField("attempts", attempt))
	return nil
}

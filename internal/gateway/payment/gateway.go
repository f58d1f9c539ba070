package payment

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
	"waste-service/internal/entities"
	retrierconfig "waste-service/pkg/retrier"
	"waste-service/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "billing-service"

	// MethodHasCompletedPayment is the unary RPC of the billing PaymentLedger service.
	MethodHasCompletedPayment = "/billing.v1.PaymentLedger/HasCompletedPayment"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// GRPCLedger asks the remote billing service whether a resident has a completed payment.
type GRPCLedger struct {
	conn    invoker
	retrier retrier
}

func NewGRPCLedger(conn invoker) *GRPCLedger {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableCode,
	}

	return &GRPCLedger{
		conn:    conn,
		retrier: backoff_adapter.New(retryConfig),
	}
}

func (g *GRPCLedger) HasCompletedPayment(ctx context.Context, residentID string, types []entities.PaymentType) (bool, error) {
	req := toRequest(residentID, types)

	var reply *wrapperspb.BoolValue
	err := g.executeWithMetrics(ctx, "HasCompletedPayment", func(ctx context.Context) error {
		reply = &wrapperspb.BoolValue{}
		return g.conn.Invoke(ctx, MethodHasCompletedPayment, req, reply)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("gateway payment, has completed payment: %s: %w", residentID, err)
	}
	return reply.GetValue(), nil
}

func isRetryableCode(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}

	switch st.Code() {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

func (g *GRPCLedger) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	grpcCode := status.Code(err).String()
	GatewayRequestDuration.WithLabelValues(serviceName, method, grpcCode).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, grpcCode).Inc()
	}

	return err
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"
	"time"

	"waste-service/internal/entities"
	"waste-service/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, notification entities.Notification) (*entities.Notification, error)
	CreateBatch(ctx context.Context, notifications []entities.Notification) ([]entities.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, limit uint64) ([]entities.Notification, error)
	ListPending(ctx context.Context, limit uint64) ([]entities.Notification, error)
	MarkDispatched(ctx context.Context, ids []string, at time.Time) (int64, error)
}

type UserDirectory interface {
	ListActiveByRoles(ctx context.Context, roles []entities.Role) ([]entities.User, error)
}

// Publisher hands a stored notification to the delivery pipeline.
type Publisher interface {
	Publish(ctx context.Context, notification entities.Notification) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

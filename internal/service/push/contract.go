//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=push_test
package push

import (
	"context"

	"waste-service/internal/entities"
	"waste-service/pkg/logger"
)

type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
}

// Sender delivers one push message to a device token.
type Sender interface {
	Send(ctx context.Context, token string, notification entities.Notification) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

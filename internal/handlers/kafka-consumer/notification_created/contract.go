//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_created_test
package notification_created

import (
	"context"

	"waste-service/internal/entities"
	"waste-service/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Deliver(ctx context.Context, notification entities.Notification) error
}

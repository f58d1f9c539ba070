//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=device_token_post_test
package device_token_post

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
	RegisterDeviceToken(ctx context.Context, actor entities.Actor, token string) error
}

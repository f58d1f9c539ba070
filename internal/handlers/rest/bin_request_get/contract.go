//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bin_request_get_test
package bin_request_get

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
	GetRequest(ctx context.Context, id string, actor entities.Actor) (*entities.BinRequest, error)
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bin_request_cancel_post_test
package bin_request_cancel_post

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
	CancelRequest(ctx context.Context, id string, actor entities.Actor) (*entities.BinRequest, error)
}

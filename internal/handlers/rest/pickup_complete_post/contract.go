//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pickup_complete_post_test
package pickup_complete_post

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
	CompletePickup(ctx context.Context, completion entities.PickupCompletion) (*entities.PickupCompletionResult, error)
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"

	"waste-service/internal/entities"
	"waste-service/internal/pkg/idgen"
	"waste-service/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, delivery entities.Delivery) (*entities.Delivery, error)
	GetByID(ctx context.Context, id string) (*entities.Delivery, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entities.Delivery, error)
	ExistsAny(ctx context.Context, id string, trackingNumber string) (bool, error)
	Update(ctx context.Context, modify entities.DeliveryModify) (*entities.Delivery, error)
}

type RequestRepository interface {
	GetByID(ctx context.Context, id string) (*entities.BinRequest, error)
	FindApprovedByDelivery(ctx context.Context, residentID string, deliveryID string) (*entities.BinRequest, error)
	Update(ctx context.Context, modify entities.BinRequestModify) (*entities.BinRequest, error)
}

type BinRepository interface {
	Create(ctx context.Context, bin entities.SmartBin) (*entities.SmartBin, error)
	GetByID(ctx context.Context, id string) (*entities.SmartBin, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, modify entities.SmartBinModify) (*entities.SmartBin, error)
}

type Notifier interface {
	Notify(ctx context.Context, create entities.NotificationCreate) (*entities.Notification, error)
}

type IDGenerator interface {
	Generate(ctx context.Context, prefix string, exists idgen.ExistsFunc) (string, error)
	GeneratePair(ctx context.Context, first string, second string, exists idgen.PairExistsFunc) (string, string, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

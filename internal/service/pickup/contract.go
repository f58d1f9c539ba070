//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pickup_test
package pickup

import (
	"context"

	"waste-service/internal/entities"
	"waste-service/internal/pkg/idgen"
	"waste-service/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, pickup entities.Pickup) (*entities.Pickup, error)
	GetByID(ctx context.Context, id string) (*entities.Pickup, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, modify entities.PickupModify) (*entities.Pickup, error)
}

type BinRepository interface {
	ListActiveByOwner(ctx context.Context, residentID string) ([]entities.SmartBin, error)
	Update(ctx context.Context, modify entities.SmartBinModify) (*entities.SmartBin, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
}

type Notifier interface {
	Notify(ctx context.Context, create entities.NotificationCreate) (*entities.Notification, error)
	NotifyRoles(ctx context.Context, roles []entities.Role, template entities.NotificationCreate) ([]entities.Notification, error)
}

type IDGenerator interface {
	Generate(ctx context.Context, prefix string, exists idgen.ExistsFunc) (string, error)
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

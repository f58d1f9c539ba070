//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=binrequest_test
package binrequest

import (
	"context"
	"time"

	"waste-service/internal/entities"
	"waste-service/internal/pkg/idgen"
	"waste-service/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, request entities.BinRequest) (*entities.BinRequest, error)
	GetByID(ctx context.Context, id string) (*entities.BinRequest, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, modify entities.BinRequestModify) (*entities.BinRequest, error)
}

type BinRepository interface {
	GetByID(ctx context.Context, id string) (*entities.SmartBin, error)
	FindAvailableByType(ctx context.Context, binType entities.BinType) (*entities.SmartBin, error)
	Update(ctx context.Context, modify entities.SmartBinModify) (*entities.SmartBin, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
}

type PaymentLedger interface {
	HasCompletedPayment(ctx context.Context, residentID string, types []entities.PaymentType) (bool, error)
}

// DeliveryScheduler creates the delivery for an approved request and links both sides.
type DeliveryScheduler interface {
	ScheduleForRequest(ctx context.Context, request entities.BinRequest, binID *string, date time.Time, actor entities.Actor) (*entities.Delivery, *entities.BinRequest, error)
}

type Notifier interface {
	Notify(ctx context.Context, create entities.NotificationCreate) (*entities.Notification, error)
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

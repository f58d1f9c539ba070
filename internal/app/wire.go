//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"waste-service/internal/gateway/broker"
	"waste-service/internal/gateway/fcm"
	paymentGateway "waste-service/internal/gateway/payment"
	"waste-service/internal/handlers/rest/bin_request_approve_post"
	"waste-service/internal/handlers/rest/bin_request_cancel_post"
	"waste-service/internal/handlers/rest/bin_request_get"
	"waste-service/internal/handlers/rest/bin_request_post"
	"waste-service/internal/handlers/rest/bin_request_reject_post"
	"waste-service/internal/handlers/rest/delivery_confirm_post"
	"waste-service/internal/handlers/rest/delivery_post"
	"waste-service/internal/handlers/rest/delivery_status_put"
	"waste-service/internal/handlers/rest/delivery_tracking_get"
	"waste-service/internal/handlers/rest/device_token_post"
	"waste-service/internal/handlers/rest/notifications_get"
	"waste-service/internal/handlers/rest/pickup_assign_post"
	"waste-service/internal/handlers/rest/pickup_complete_post"
	"waste-service/internal/handlers/rest/pickup_get"
	"waste-service/internal/handlers/rest/pickup_post"
	"waste-service/internal/handlers/rest/pickup_start_post"
	"waste-service/internal/handlers/tasks/notification_outbox"
	"waste-service/internal/pkg/config"
	"waste-service/internal/pkg/idgen"
	binRepo "waste-service/internal/repository/bin"
	binRequestRepo "waste-service/internal/repository/binrequest"
	deliveryRepo "waste-service/internal/repository/delivery"
	notificationRepo "waste-service/internal/repository/notification"
	paymentRepo "waste-service/internal/repository/payment"
	pickupRepo "waste-service/internal/repository/pickup"
	userRepo "waste-service/internal/repository/user"
	binRequestService "waste-service/internal/service/binrequest"
	deliveryService "waste-service/internal/service/delivery"
	notificationService "waste-service/internal/service/notification"
	pickupService "waste-service/internal/service/pickup"
	pushService "waste-service/internal/service/push"
	userService "waste-service/internal/service/user"
	"waste-service/pkg/background"
	"waste-service/pkg/logger"
	"waste-service/pkg/querier"
	"waste-service/pkg/tx"
)

type (
	DispatchInterval time.Duration
	DispatchBatch    int
)

type Application struct {
	ServiceBinRequest   ServiceBinRequest
	ServiceDelivery     ServiceDelivery
	ServicePickup       ServicePickup
	ServiceNotification ServiceNotification
	ServiceUser         ServiceUser
	BackgroundWorkers   *background.Worker
}

type ServiceBinRequest interface {
	bin_request_post.Service
	bin_request_get.Service
	bin_request_approve_post.Service
	bin_request_reject_post.Service
	bin_request_cancel_post.Service
}

type ServiceDelivery interface {
	delivery_post.Service
	delivery_status_put.Service
	delivery_confirm_post.Service
	delivery_tracking_get.Service
}

type ServicePickup interface {
	pickup_post.Service
	pickup_get.Service
	pickup_assign_post.Service
	pickup_start_post.Service
	pickup_complete_post.Service
}

type ServiceNotification interface {
	notifications_get.Service
}

type ServiceUser interface {
	device_token_post.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	producer sarama.SyncProducer,
	conn *grpc.ClientConn,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideIDGenerator,
		provideDispatchInterval,
		provideDispatchBatch,

		provideBinRepository,
		provideBinRequestRepository,
		provideDeliveryRepository,
		provideNotificationRepository,
		providePickupRepository,
		provideUserRepository,
		providePaymentLedger,
		provideNotificationPublisher,

		provideServiceNotification,
		provideServiceDelivery,
		provideServiceBinRequest,
		provideServicePickup,
		provideServiceUser,

		provideNotificationOutboxTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceBinRequest), new(*binRequestService.Service)),
		wire.Bind(new(ServiceDelivery), new(*deliveryService.Service)),
		wire.Bind(new(ServicePickup), new(*pickupService.Service)),
		wire.Bind(new(ServiceNotification), new(*notificationService.Service)),
		wire.Bind(new(ServiceUser), new(*userService.Service)),

		wire.Bind(new(notification_outbox.Service), new(*notificationService.Service)),
	)
	return &Application{}, nil
}

type NotificationWorkerApp struct {
	PushService *pushService.Service
}

// InitializeNotificationWorkerApp для Kafka воркера (cmd/worker-notification-dispatch)
func InitializeNotificationWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*NotificationWorkerApp, error) {
	wire.Build(
		provideQuerier,
		provideUserRepository,
		providePushSender,
		providePushService,

		wire.Struct(new(NotificationWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool, cfg *config.Config) (*tx.Manager, error) {
	level, err := tx.ParseIsoLevel(cfg.Database.IsolationLevel)
	if err != nil {
		return nil, fmt.Errorf("transaction manager: %w", err)
	}
	return tx.New(pool, level), nil
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

// provideIDGenerator counts through Redis and falls back to an in-process counter when Redis is down.
func provideIDGenerator(log logger.Logger, redisClient *goredis.Client) *idgen.Generator {
	sequence := idgen.NewFallbackSequence(
		idgen.NewRedisSequence(redisClient),
		idgen.NewAtomicSequence(),
		log,
	)
	return idgen.New(sequence)
}

func provideBinRepository(querier *querier.Querier) *binRepo.Repository {
	return binRepo.New(querier)
}

func provideBinRequestRepository(querier *querier.Querier) *binRequestRepo.Repository {
	return binRequestRepo.New(querier)
}

func provideDeliveryRepository(querier *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(querier)
}

func provideNotificationRepository(querier *querier.Querier) *notificationRepo.Repository {
	return notificationRepo.New(querier)
}

func providePickupRepository(querier *querier.Querier) *pickupRepo.Repository {
	return pickupRepo.New(querier)
}

func provideUserRepository(querier *querier.Querier) *userRepo.Repository {
	return userRepo.New(querier)
}

// providePaymentLedger picks the ledger named by PAYMENT_LEDGER; conn is nil unless it is grpc.
func providePaymentLedger(cfg *config.Config, querier *querier.Querier, conn *grpc.ClientConn) binRequestService.PaymentLedger {
	if cfg.Payment.Ledger == config.PaymentLedgerGRPC && conn != nil {
		return paymentGateway.NewGRPCLedger(conn)
	}
	return paymentRepo.New(querier)
}

func provideNotificationPublisher(producer sarama.SyncProducer, cfg *config.Config) *broker.NotificationPublisher {
	return broker.NewNotificationPublisher(producer, cfg.Kafka.NotificationTopic)
}

func provideServiceNotification(
	repository *notificationRepo.Repository,
	users *userRepo.Repository,
	publisher *broker.NotificationPublisher,
	log logger.Logger,
) *notificationService.Service {
	return notificationService.New(repository, users, publisher, log)
}

func provideServiceDelivery(
	repository *deliveryRepo.Repository,
	requests *binRequestRepo.Repository,
	bins *binRepo.Repository,
	notifier *notificationService.Service,
	ids *idgen.Generator,
	txManager *tx.Manager,
	log logger.Logger,
	cfg *config.Config,
) *deliveryService.Service {
	return deliveryService.New(
		repository,
		requests,
		bins,
		notifier,
		ids,
		txManager,
		log,
		deliveryService.Options{
			StrictTransitions: cfg.Workflow.StrictDeliveryTransitions,
			CompareAndSwap:    cfg.Workflow.CompareAndSwap,
		},
	)
}

func provideServiceBinRequest(
	repository *binRequestRepo.Repository,
	bins *binRepo.Repository,
	users *userRepo.Repository,
	payments binRequestService.PaymentLedger,
	deliveries *deliveryService.Service,
	notifier *notificationService.Service,
	ids *idgen.Generator,
	txManager *tx.Manager,
	log logger.Logger,
	cfg *config.Config,
) *binRequestService.Service {
	return binRequestService.New(
		repository,
		bins,
		users,
		payments,
		deliveries,
		notifier,
		ids,
		txManager,
		log,
		binRequestService.Options{CompareAndSwap: cfg.Workflow.CompareAndSwap},
	)
}

func provideServicePickup(
	repository *pickupRepo.Repository,
	bins *binRepo.Repository,
	users *userRepo.Repository,
	notifier *notificationService.Service,
	ids *idgen.Generator,
	txManager *tx.Manager,
	log logger.Logger,
	cfg *config.Config,
) *pickupService.Service {
	return pickupService.New(
		repository,
		bins,
		users,
		notifier,
		ids,
		txManager,
		log,
		pickupService.Options{
			RadiusMeters:   cfg.Workflow.PickupRadiusMeters,
			CompareAndSwap: cfg.Workflow.CompareAndSwap,
		},
	)
}

func provideServiceUser(repository *userRepo.Repository) *userService.Service {
	return userService.New(repository)
}

func providePushSender(ctx context.Context, cfg *config.Config) (*fcm.Sender, error) {
	return fcm.NewSender(ctx, cfg.Notification.FCMCredentialsFile)
}

func providePushService(users *userRepo.Repository, sender *fcm.Sender, log logger.Logger) *pushService.Service {
	return pushService.New(users, sender, log)
}

func provideDispatchInterval(cfg *config.Config) DispatchInterval {
	return DispatchInterval(cfg.Tasks.NotificationDispatchInterval)
}

func provideDispatchBatch(cfg *config.Config) DispatchBatch {
	return DispatchBatch(cfg.Tasks.NotificationDispatchBatch)
}

func provideNotificationOutboxTask(
	log logger.Logger,
	service notification_outbox.Service,
	interval DispatchInterval,
	batch DispatchBatch,
) *notification_outbox.NotificationOutbox {
	return notification_outbox.NewNotificationOutbox(log, service, time.Duration(interval), int(batch))
}

func provideTaskList(
	outboxTask *notification_outbox.NotificationOutbox,
) []background.Task {
	return []background.Task{
		outboxTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

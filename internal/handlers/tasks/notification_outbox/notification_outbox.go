package notification_outbox

import (
	"context"
	"time"

	"waste-service/pkg/logger"
)

type Service interface {
	DispatchPending(ctx context.Context, limit int) (int64, error)
}

// NotificationOutbox forwards stored notifications that were not yet handed
// to the broker.
type NotificationOutbox struct {
	log      logger.Logger
	service  Service
	interval time.Duration
	batch    int
}

func NewNotificationOutbox(log logger.Logger, service Service, interval time.Duration, batch int) *NotificationOutbox {
	return &NotificationOutbox{
		log:      log,
		service:  service,
		interval: interval,
		batch:    batch,
	}
}

func (o *NotificationOutbox) TTL() time.Duration {
	return o.interval
}

func (o *NotificationOutbox) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	dispatched, err := o.service.DispatchPending(ctxWithTimeout, o.batch)

	if dispatched > 0 {
		o.log.With(
			logger.NewField("dispatched", dispatched),
		).Info("notification outbox")
	}

	return err
}

func (o *NotificationOutbox) Info() string {
	return "notification outbox"
}

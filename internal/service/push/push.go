package push

import (
	"context"
	"errors"
	"fmt"

	"waste-service/internal/entities"
	"waste-service/internal/pkg/metrics"
	"waste-service/pkg/logger"
)

type Service struct {
	users  UserDirectory
	sender Sender
	log    serviceLogger
}

func New(users UserDirectory, sender Sender, log serviceLogger) *Service {
	return &Service{
		users:  users,
		sender: sender,
		log:    log,
	}
}

// Deliver pushes the notification to its recipient's device. Notifications without the push
// channel, unknown recipients and recipients without a token are skipped.
func (s *Service) Deliver(ctx context.Context, notification entities.Notification) error {
	if !notification.HasChannel(entities.ChannelPush) {
		metrics.PushDeliveriesTotal.WithLabelValues("skipped").Inc()
		return nil
	}

	log := s.log.With(
		logger.NewField("notification_id", notification.ID),
		logger.NewField("recipient_id", notification.RecipientID),
	)

	recipient, err := s.users.GetByID(ctx, notification.RecipientID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			metrics.PushDeliveriesTotal.WithLabelValues("skipped").Inc()
			log.Warn("push recipient not found")
			return nil
		}
		return fmt.Errorf("get recipient: %w", err)
	}
	if recipient.DeviceToken == nil || *recipient.DeviceToken == "" {
		metrics.PushDeliveriesTotal.WithLabelValues("skipped").Inc()
		log.Info("recipient has no device token")
		return nil
	}

	if err := s.sender.Send(ctx, *recipient.DeviceToken, notification); err != nil {
		if errors.Is(err, entities.ErrDeviceTokenUnregistered) {
			metrics.PushDeliveriesTotal.WithLabelValues("unregistered").Inc()
			log.Warn("device token is no longer registered")
			return nil
		}
		metrics.PushDeliveriesTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("send push: %w", err)
	}

	metrics.PushDeliveriesTotal.WithLabelValues("sent").Inc()
	return nil
}

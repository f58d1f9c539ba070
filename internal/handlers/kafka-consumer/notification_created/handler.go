package notification_created

import (
	"context"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"waste-service/internal/gateway/broker"
	"waste-service/pkg/logger"
)

type Handler struct {
	pushService              Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, pushService Service, timeout time.Duration) *Handler {
	return &Handler{
		pushService:              pushService,
		log:                      log.With(logger.NewField("handler", "notification.created")),
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("notification.created: claim closed, exiting ConsumeClaim")
				return nil
			}

			if h.messageProcessing(sess, message) {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("notification.created: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing returns true when ConsumeClaim must stop and leave the
// message unmarked for redelivery.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	notification, err := broker.DecodeNotification(message.Value)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("notification.created handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("notification", notification.ID),
		logger.NewField("recipient", notification.RecipientID),
		logger.NewField("offset", message.Offset),
	)

	err = h.pushService.Deliver(ctx, notification)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			msgLog.With(
				logger.NewField("error", err),
			).Warn("notification.created handler context cancelled, message will be reprocessed")
			return true
		}

		msgLog.With(
			logger.NewField("error", err),
		).Warn("notification.created handler failed to deliver push")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("notification.created: processed")
	sess.MarkMessage(message, "")
	return false
}

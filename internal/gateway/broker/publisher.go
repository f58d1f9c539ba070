package broker

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"waste-service/internal/entities"
)

// NotificationPublisher writes notifications to Kafka keyed by recipient,
// so one recipient's notifications stay ordered within a partition.
type NotificationPublisher struct {
	producer syncProducer
	topic    string
}

func NewNotificationPublisher(producer syncProducer, topic string) *NotificationPublisher {
	return &NotificationPublisher{producer: producer, topic: topic}
}

func (p *NotificationPublisher) Publish(ctx context.Context, notification entities.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := EncodeNotification(notification)
	if err != nil {
		return fmt.Errorf("encode notification %s: %w", notification.ID, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(notification.RecipientID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("notification_type"), Value: []byte(notification.Type)},
		},
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send notification %s: %w", notification.ID, err)
	}
	return nil
}

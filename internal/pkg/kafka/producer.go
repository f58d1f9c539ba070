package kafka

import (
	"context"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"waste-service/internal/pkg/config"
	"waste-service/pkg/logger"
)

// Brokers splits the comma separated KAFKA_BROKERS value.
func Brokers(cfg *config.Kafka) []string {
	var brokers []string
	for _, b := range strings.Split(cfg.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewProducerConfig(versionStr string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1

	return cfg, nil
}

// NewSyncProducer connects an idempotent producer once the brokers answer.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (sarama.SyncProducer, error) {
	brokers := Brokers(cfg)

	saramaConfig, err := NewProducerConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("build producer config: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("component", "kafka-producer"),
	)

	if err := waitForBrokers(ctx, kafkaLog, brokers, saramaConfig, []string{cfg.NotificationTopic}); err != nil {
		return nil, err
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}
	return producer, nil
}

package kafka

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/IBM/sarama"
	"waste-service/pkg/logger"
	retrierconfig "waste-service/pkg/retrier"
	"waste-service/pkg/retrier/backoff_adapter"
)

var dialRetry = retrierconfig.Config{
	InitialInterval: 1 * time.Second,
	MaxInterval:     30 * time.Second,
	MaxElapsedTime:  2 * time.Minute,
	Randomization:   0.5,
	Multiplier:      2,
}

// waitForBrokers blocks until the cluster answers a metadata request.
// Topics missing from the metadata are only reported, brokers may create them on first write.
func waitForBrokers(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config, topics []string) error {
	var (
		attempt uint64
		known   []string
	)

	err := backoff_adapter.New(dialRetry).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(logger.NewField("attempt", attempt)).Info("waiting for kafka brokers")

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := client.Close(); closeErr != nil {
				log.Warn("kafka metadata client close", logger.NewField("error", closeErr))
			}
		}()

		known, err = client.Topics()
		return err
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("kafka brokers unreachable")
		return fmt.Errorf("kafka brokers %v: %w", brokers, err)
	}

	for _, topic := range topics {
		if !slices.Contains(known, topic) {
			log.Warn("kafka topic not found in cluster metadata", logger.NewField("topic", topic))
		}
	}

	log.With(logger.NewField("attempts", attempt)).Info("kafka brokers reachable")
	return nil
}

package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"waste-service/internal/pkg/config"
	"waste-service/pkg/logger"
)

// Consumer runs one consumer group session after another until the context ends.
type Consumer struct {
	log     logger.Logger
	group   sarama.ConsumerGroup
	topics  []string
	handler sarama.ConsumerGroupHandler
}

// NewConsumerConfig reads from the oldest offset so notifications published
// while the worker was down are still dispatched.
func NewConsumerConfig(cfg *config.Kafka) (*sarama.Config, error) {
	saramaConfig := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", cfg.Sarama.Version, err)
	}
	saramaConfig.Version = version

	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = cfg.Sarama.ConsumerOffsetsAutocommit
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{
		sarama.NewBalanceStrategySticky(),
	}
	saramaConfig.Consumer.Return.Errors = true

	return saramaConfig, nil
}

func NewConsumer(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Kafka,
	groupID string,
	topics []string,
	handler sarama.ConsumerGroupHandler,
) (*Consumer, error) {
	brokers := Brokers(cfg)

	saramaConfig, err := NewConsumerConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build consumer config: %w", err)
	}

	consumerLog := log.With(
		logger.NewField("component", "kafka-consumer"),
		logger.NewField("group", groupID),
		logger.NewField("topics", topics),
	)

	if err := waitForBrokers(ctx, consumerLog, brokers, saramaConfig, topics); err != nil {
		return nil, err
	}

	group, err := sarama.NewConsumerGroup(brokers, groupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create consumer group %q: %w", groupID, err)
	}

	return &Consumer{
		log:     consumerLog,
		group:   group,
		topics:  topics,
		handler: handler,
	}, nil
}

// Start consumes until ctx is cancelled or the group is closed.
// A rebalance ends the current session and the loop joins the next one.
func (c *Consumer) Start(ctx context.Context) error {
	go c.drainErrors()

	c.log.Info("kafka consumer started")
	for session := 1; ; session++ {
		err := c.group.Consume(ctx, c.topics, c.handler)
		switch {
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			c.log.Info("kafka consumer group closed")
			return nil
		case err != nil:
			c.log.Error("kafka consume session failed",
				logger.NewField("session", session),
				logger.NewField("error", err),
			)
			return fmt.Errorf("consume session %d: %w", session, err)
		}

		if ctx.Err() != nil {
			c.log.Info("kafka consumer stopping")
			return ctx.Err()
		}
		c.log.Info("kafka consumer rebalanced", logger.NewField("session", session))
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

func (c *Consumer) drainErrors() {
	for err := range c.group.Errors() {
		c.log.Warn("kafka consumer group error", logger.NewField("error", err))
	}
}

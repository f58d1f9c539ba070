package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"waste-service/internal/entities"
	"waste-service/internal/pkg/metrics"
	"waste-service/pkg/logger"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type Service struct {
	repository Repository
	users      UserDirectory
	publisher  Publisher
	log        serviceLogger
}

func New(repository Repository, users UserDirectory, publisher Publisher, log serviceLogger) *Service {
	return &Service{
		repository: repository,
		users:      users,
		publisher:  publisher,
		log:        log,
	}
}

// Notify stores one notification for its recipient. It is dispatched later by the outbox task.
func (s *Service) Notify(ctx context.Context, create entities.NotificationCreate) (*entities.Notification, error) {
	n, err := build(create)
	if err != nil {
		return nil, err
	}

	created, err := s.repository.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	metrics.NotificationsCreatedTotal.WithLabelValues(string(created.Type), string(created.Priority)).Inc()
	return created, nil
}

// NotifyRoles fans the template out to every active user holding one of roles.
func (s *Service) NotifyRoles(ctx context.Context, roles []entities.Role, template entities.NotificationCreate) ([]entities.Notification, error) {
	users, err := s.users.ListActiveByRoles(ctx, roles)
	if err != nil {
		return nil, fmt.Errorf("list users by roles: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}

	batch := make([]entities.Notification, 0, len(users))
	for _, u := range users {
		create := template
		create.RecipientID = u.ID
		n, err := build(create)
		if err != nil {
			return nil, err
		}
		batch = append(batch, n)
	}

	created, err := s.repository.CreateBatch(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("create notifications: %w", err)
	}

	for _, n := range created {
		metrics.NotificationsCreatedTotal.WithLabelValues(string(n.Type), string(n.Priority)).Inc()
	}
	return created, nil
}

func (s *Service) ListForRecipient(ctx context.Context, recipientID string, limit int) ([]entities.Notification, error) {
	if recipientID == "" {
		return nil, ErrMissingRecipient
	}
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	notifications, err := s.repository.ListByRecipient(ctx, recipientID, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// DispatchPending publishes up to limit undispatched notifications and marks the published ones.
// A failed publish leaves the row pending for the next run.
func (s *Service) DispatchPending(ctx context.Context, limit int) (int64, error) {
	if limit <= 0 {
		return 0, ErrInvalidLimit
	}

	pending, err := s.repository.ListPending(ctx, uint64(limit))
	if err != nil {
		return 0, fmt.Errorf("list pending notifications: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	published := make([]string, 0, len(pending))
	for _, n := range pending {
		if err := s.publisher.Publish(ctx, n); err != nil {
			metrics.NotificationsDispatchedTotal.WithLabelValues("failed").Inc()
			s.log.With(
				logger.NewField("notification_id", n.ID),
				logger.NewField("error", err),
			).Warn("publish notification")
			continue
		}
		metrics.NotificationsDispatchedTotal.WithLabelValues("published").Inc()
		published = append(published, n.ID)
	}

	if len(published) == 0 {
		return 0, nil
	}

	marked, err := s.repository.MarkDispatched(ctx, published, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("mark notifications dispatched: %w", err)
	}
	return marked, nil
}

func build(create entities.NotificationCreate) (entities.Notification, error) {
	if create.RecipientID == "" {
		return entities.Notification{}, ErrMissingRecipient
	}
	if create.Type == "" || create.Title == "" || create.Message == "" {
		return entities.Notification{}, ErrMissingContent
	}

	priority := create.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	if !priority.IsValid() {
		return entities.Notification{}, ErrInvalidPriority
	}

	channels := create.Channels
	if len(channels) == 0 {
		channels = []entities.NotificationChannel{entities.ChannelInApp, entities.ChannelPush}
	}

	return entities.Notification{
		ID:            uuid.NewString(),
		RecipientID:   create.RecipientID,
		Type:          create.Type,
		Title:         create.Title,
		Message:       create.Message,
		Priority:      priority,
		Channels:      channels,
		RelatedEntity: create.RelatedEntity,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

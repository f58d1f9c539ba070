package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"waste-service/internal/entities"
)

type Sender struct {
	client messagingClient
}

// NewSender builds a Firebase Cloud Messaging client from a service account credentials file.
func NewSender(ctx context.Context, credentialsFile string) (*Sender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	return NewSenderWithClient(client), nil
}

func NewSenderWithClient(client messagingClient) *Sender {
	return &Sender{
		client: client,
	}
}

func (s *Sender) Send(ctx context.Context, token string, notification entities.Notification) error {
	_, err := s.client.Send(ctx, toMessage(token, notification))
	if err != nil {
		if messaging.IsUnregistered(err) {
			return fmt.Errorf("fcm send: %w", entities.ErrDeviceTokenUnregistered)
		}
		return fmt.Errorf("fcm send: %w", err)
	}
	return nil
}

func toMessage(token string, notification entities.Notification) *messaging.Message {
	data := map[string]string{
		"notification_id": notification.ID,
		"type":            string(notification.Type),
		"priority":        string(notification.Priority),
	}
	if ref := notification.RelatedEntity; ref != nil {
		data["entity_kind"] = ref.Kind
		data["entity_id"] = ref.ID
	}

	androidPriority := "normal"
	if notification.Priority == entities.PriorityHigh {
		androidPriority = "high"
	}

	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Message,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: androidPriority,
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					ContentAvailable: true,
					Sound:            "default",
				},
			},
		},
	}
}

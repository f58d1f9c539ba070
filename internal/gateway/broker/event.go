package broker

import (
	"encoding/json"
	"fmt"
	"time"

	"waste-service/internal/entities"
)

// NotificationEvent is the payload written to the notification topic.
type NotificationEvent struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Priority    string    `json:"priority"`
	Channels    []string  `json:"channels"`
	EntityKind  string    `json:"entity_kind,omitempty"`
	EntityID    string    `json:"entity_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func EncodeNotification(n entities.Notification) ([]byte, error) {
	event := NotificationEvent{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		Priority:    string(n.Priority),
		Channels:    make([]string, 0, len(n.Channels)),
		CreatedAt:   n.CreatedAt,
	}
	for _, ch := range n.Channels {
		event.Channels = append(event.Channels, string(ch))
	}
	if n.RelatedEntity != nil {
		event.EntityKind = n.RelatedEntity.Kind
		event.EntityID = n.RelatedEntity.ID
	}

	return json.Marshal(event)
}

func DecodeNotification(data []byte) (entities.Notification, error) {
	var event NotificationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return entities.Notification{}, fmt.Errorf("decode notification event: %w", err)
	}
	if event.ID == "" || event.RecipientID == "" {
		return entities.Notification{}, fmt.Errorf("decode notification event: id and recipient_id are required")
	}

	n := entities.Notification{
		ID:          event.ID,
		RecipientID: event.RecipientID,
		Type:        entities.NotificationType(event.Type),
		Title:       event.Title,
		Message:     event.Message,
		Priority:    entities.NotificationPriority(event.Priority),
		Channels:    make([]entities.NotificationChannel, 0, len(event.Channels)),
		CreatedAt:   event.CreatedAt,
	}
	for _, ch := range event.Channels {
		n.Channels = append(n.Channels, entities.NotificationChannel(ch))
	}
	if event.EntityKind != "" {
		n.RelatedEntity = &entities.EntityRef{Kind: event.EntityKind, ID: event.EntityID}
	}

	return n, nil
}

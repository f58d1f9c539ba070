package notification

import "waste-service/internal/entities"

func ToDomain(n *NotificationDB) *entities.Notification {
	if n == nil {
		return nil
	}

	channels := make([]entities.NotificationChannel, 0, len(n.Channels))
	for _, c := range n.Channels {
		channels = append(channels, entities.NotificationChannel(c))
	}

	notification := &entities.Notification{
		ID:           n.ID,
		RecipientID:  n.RecipientID,
		Type:         entities.NotificationType(n.Type),
		Title:        n.Title,
		Message:      n.Message,
		Priority:     entities.NotificationPriority(n.Priority),
		Channels:     channels,
		DispatchedAt: n.DispatchedAt,
		CreatedAt:    n.CreatedAt,
	}
	if n.RelatedKind != nil && n.RelatedID != nil {
		notification.RelatedEntity = &entities.EntityRef{
			Kind: *n.RelatedKind,
			ID:   *n.RelatedID,
		}
	}

	return notification
}

func FromDomain(n *entities.Notification) *NotificationDB {
	if n == nil {
		return nil
	}

	channels := make([]string, 0, len(n.Channels))
	for _, c := range n.Channels {
		channels = append(channels, string(c))
	}

	notificationDB := &NotificationDB{
		ID:           n.ID,
		RecipientID:  n.RecipientID,
		Type:         string(n.Type),
		Title:        n.Title,
		Message:      n.Message,
		Priority:     string(n.Priority),
		Channels:     channels,
		DispatchedAt: n.DispatchedAt,
		CreatedAt:    n.CreatedAt,
	}
	if n.RelatedEntity != nil {
		notificationDB.RelatedKind = &n.RelatedEntity.Kind
		notificationDB.RelatedID = &n.RelatedEntity.ID
	}

	return notificationDB
}

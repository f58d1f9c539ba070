package entities

import "time"

type NotificationType string

const (
	NotificationBinRequestApproved NotificationType = "bin_request_approved"
	NotificationBinRequestRejected NotificationType = "bin_request_rejected"
	NotificationDeliveryScheduled  NotificationType = "delivery_scheduled"
	NotificationBinActivated       NotificationType = "bin_activated"
	NotificationPickupAssigned     NotificationType = "pickup_assigned"
	NotificationPickupCompleted    NotificationType = "pickup_completed"
	NotificationPickupEmpty        NotificationType = "pickup_empty"
	NotificationBinDamaged         NotificationType = "bin_damaged"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

func (p NotificationPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type NotificationChannel string

const (
	ChannelInApp NotificationChannel = "in_app"
	ChannelPush  NotificationChannel = "push"
	ChannelEmail NotificationChannel = "email"
)

type EntityRef struct {
	Kind string
	ID   string
}

const (
	EntityBinRequest = "bin_request"
	EntityDelivery   = "delivery"
	EntitySmartBin   = "smart_bin"
	EntityPickup     = "pickup"
)

type Notification struct {
	ID            string
	RecipientID   string
	Type          NotificationType
	Title         string
	Message       string
	Priority      NotificationPriority
	Channels      []NotificationChannel
	RelatedEntity *EntityRef
	DispatchedAt  *time.Time
	CreatedAt     time.Time
}

func (n Notification) HasChannel(c NotificationChannel) bool {
	for _, ch := range n.Channels {
		if ch == c {
			return true
		}
	}
	return false
}

type NotificationCreate struct {
	RecipientID   string
	Type          NotificationType
	Title         string
	Message       string
	Priority      NotificationPriority
	Channels      []NotificationChannel
	RelatedEntity *EntityRef
}

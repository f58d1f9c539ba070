package notification

import "time"

type NotificationDB struct {
	ID           string
	RecipientID  string
	Type         string
	Title        string
	Message      string
	Priority     string
	Channels     []string
	RelatedKind  *string
	RelatedID    *string
	DispatchedAt *time.Time
	CreatedAt    time.Time
}

package delivery

import "time"

type DeliveryDB struct {
	ID             string
	TrackingNumber string
	BinID          *string
	ResidentID     string
	BinRequestID   *string
	ScheduledDate  time.Time
	Attempts       []byte
	ConfirmedAt    *time.Time
	Status         string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type DeliveryModifyDB struct {
	ID             *string
	ExpectedStatus *string
	Status         *string
	BinID          *string
	ConfirmedAt    *time.Time
	AppendAttempt  []byte
}

// AttemptDB is one element of the attempts jsonb array.
type AttemptDB struct {
	At      time.Time `json:"at"`
	Note    string    `json:"note"`
	ActorID string    `json:"actor_id"`
}

package entities

import "time"

type DeliveryStatus string

const (
	DeliveryScheduled   DeliveryStatus = "scheduled"
	DeliveryInTransit   DeliveryStatus = "in-transit"
	DeliveryDelivered   DeliveryStatus = "delivered"
	DeliveryFailed      DeliveryStatus = "failed"
	DeliveryRescheduled DeliveryStatus = "rescheduled"
)

func (s DeliveryStatus) String() string {
	return string(s)
}

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryScheduled, DeliveryInTransit, DeliveryDelivered, DeliveryFailed, DeliveryRescheduled:
		return true
	}
	return false
}

type DeliveryAttempt struct {
	At      time.Time
	Note    string
	ActorID string
}

type Delivery struct {
	ID             string
	TrackingNumber string
	BinID          *string
	ResidentID     string
	BinRequestID   *string
	ScheduledDate  time.Time
	Attempts       []DeliveryAttempt
	ConfirmedAt    *time.Time
	Status         DeliveryStatus
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type DeliveryModify struct {
	ID             *string
	ExpectedStatus *DeliveryStatus
	Status         *DeliveryStatus
	BinID          *string
	ConfirmedAt    *time.Time
	AppendAttempt  *DeliveryAttempt
}

type DeliveryCreate struct {
	BinRequestID  string
	BinID         *string
	ScheduledDate time.Time
	Actor         Actor
}

type DeliveryStatusUpdate struct {
	DeliveryID string
	Status     DeliveryStatus
	Note       *string
	Actor      Actor
}

// DeliveryTransition is the outcome of moving a delivery; Bin and Request are set when the
// transition materialised a bin for the owning request.
type DeliveryTransition struct {
	Delivery Delivery
	Bin      *SmartBin
	Request  *BinRequest
	Warnings []SideEffectWarning
}

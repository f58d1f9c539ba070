package entities

import "time"

type BinRequestStatus string

const (
	RequestPending   BinRequestStatus = "pending"
	RequestApproved  BinRequestStatus = "approved"
	RequestRejected  BinRequestStatus = "rejected"
	RequestCancelled BinRequestStatus = "cancelled"
	RequestDelivered BinRequestStatus = "delivered"
)

func (s BinRequestStatus) String() string {
	return string(s)
}

type BinRequest struct {
	ID                    string
	ResidentID            string
	RequestedBinType      BinType
	PreferredDeliveryDate *time.Time
	Notes                 string
	Address               Address
	Coordinates           GeoPoint
	Status                BinRequestStatus
	AssignedBinID         *string
	DeliveryID            *string
	PaymentVerified       bool
	ApprovedBy            *string
	ApprovedAt            *time.Time
	RejectionReason       *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type BinRequestModify struct {
	ID              *string
	ExpectedStatus  *BinRequestStatus
	Status          *BinRequestStatus
	AssignedBinID   *string
	DeliveryID      *string
	PaymentVerified *bool
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
}

type BinRequestCreate struct {
	ResidentID            string
	RequestedBinType      BinType
	PreferredDeliveryDate *time.Time
	Notes                 string
	Address               Address
	Coordinates           GeoPoint
}

type BinRequestApproval struct {
	RequestID    string
	BinID        *string
	BinType      *BinType
	DeliveryDate time.Time
	Actor        Actor
}

type ApprovalResult struct {
	Request      BinRequest
	Bin          SmartBin
	Delivery     Delivery
	Notification *Notification
}

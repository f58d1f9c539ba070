package binrequest

import "time"

type BinRequestDB struct {
	ID                    string
	ResidentID            string
	RequestedBinType      string
	PreferredDeliveryDate *time.Time
	Notes                 string
	AddressLine           string
	Street                string
	City                  string
	PostalCode            string
	Latitude              *float64
	Longitude             *float64
	Status                string
	AssignedBinID         *string
	DeliveryID            *string
	PaymentVerified       bool
	ApprovedBy            *string
	ApprovedAt            *time.Time
	RejectionReason       *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type BinRequestModifyDB struct {
	ID              *string
	ExpectedStatus  *string
	Status          *string
	AssignedBinID   *string
	DeliveryID      *string
	PaymentVerified *bool
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
}

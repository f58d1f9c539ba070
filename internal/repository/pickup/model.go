package pickup

import "time"

type PickupDB struct {
	ID                string
	ResidentID        string
	AssignedCollector *string
	AddressLine       string
	Street            string
	City              string
	PostalCode        string
	Latitude          *float64
	Longitude         *float64
	BinType           string
	ScheduledDate     time.Time
	Notes             string
	Status            string
	BinStatus         *string
	CompletedDate     *time.Time
	StatusHistory     []byte
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type PickupModifyDB struct {
	ID                *string
	ExpectedStatus    *string
	Status            *string
	AssignedCollector *string
	BinStatus         *string
	CompletedDate     *time.Time
	AppendHistory     []byte
}

// StatusEntryDB is one element of the status_history jsonb array.
type StatusEntryDB struct {
	Status    string    `json:"status"`
	BinStatus *string   `json:"bin_status,omitempty"`
	ActorID   string    `json:"actor_id"`
	At        time.Time `json:"at"`
	Notes     string    `json:"notes,omitempty"`
}

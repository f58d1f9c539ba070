package entities

import "time"

type PickupStatus string

const (
	PickupPending    PickupStatus = "pending"
	PickupAssigned   PickupStatus = "assigned"
	PickupInProgress PickupStatus = "in_progress"
	PickupCompleted  PickupStatus = "completed"
	PickupCancelled  PickupStatus = "cancelled"
)

func (s PickupStatus) String() string {
	return string(s)
}

// PickupBinStatus is the outcome a collector reports for a pickup.
type PickupBinStatus string

const (
	BinCollected PickupBinStatus = "collected"
	BinEmpty     PickupBinStatus = "empty"
	BinDamaged   PickupBinStatus = "damaged"
)

func (s PickupBinStatus) String() string {
	return string(s)
}

func (s PickupBinStatus) IsValid() bool {
	switch s {
	case BinCollected, BinEmpty, BinDamaged:
		return true
	}
	return false
}

type PickupStatusEntry struct {
	Status    PickupStatus
	BinStatus *PickupBinStatus
	ActorID   string
	At        time.Time
	Notes     string
}

type Pickup struct {
	ID                string
	ResidentID        string
	AssignedCollector *string
	Address           Address
	Coordinates       GeoPoint
	BinType           BinType
	ScheduledDate     time.Time
	Notes             string
	Status            PickupStatus
	BinStatus         *PickupBinStatus
	CompletedDate     *time.Time
	History           []PickupStatusEntry
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type PickupModify struct {
	ID                *string
	ExpectedStatus    *PickupStatus
	Status            *PickupStatus
	AssignedCollector *string
	BinStatus         *PickupBinStatus
	CompletedDate     *time.Time
	AppendHistory     *PickupStatusEntry
}

type PickupCreate struct {
	ResidentID    string
	Address       Address
	Coordinates   GeoPoint
	BinType       BinType
	ScheduledDate time.Time
	Notes         string
}

type PickupCompletion struct {
	PickupID  string
	BinStatus PickupBinStatus
	Notes     string
	Actor     Actor
}

type PickupCompletionResult struct {
	Pickup        Pickup
	EmptiedBins   []SmartBin
	Notifications int
	Warnings      []SideEffectWarning
}

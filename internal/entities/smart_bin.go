package entities

import "time"

type BinType string

const (
	BinTypeGeneral    BinType = "general"
	BinTypeRecyclable BinType = "recyclable"
	BinTypeOrganic    BinType = "organic"
	BinTypeHazardous  BinType = "hazardous"
)

func (t BinType) String() string {
	return string(t)
}

func (t BinType) IsValid() bool {
	switch t {
	case BinTypeGeneral, BinTypeRecyclable, BinTypeOrganic, BinTypeHazardous:
		return true
	}
	return false
}

// NormalizeBinType falls back to general for anything outside the enum.
func NormalizeBinType(t BinType) BinType {
	if t.IsValid() {
		return t
	}
	return BinTypeGeneral
}

// DefaultCapacity returns the capacity in liters for a new bin of the given type.
func DefaultCapacity(t BinType) int {
	switch t {
	case BinTypeHazardous:
		return 80
	case BinTypeOrganic:
		return 100
	default:
		return 120
	}
}

type SmartBinStatus string

const (
	BinAvailable   SmartBinStatus = "available"
	BinAssigned    SmartBinStatus = "assigned"
	BinInTransit   SmartBinStatus = "in-transit"
	BinActive      SmartBinStatus = "active"
	BinMaintenance SmartBinStatus = "maintenance"
)

func (s SmartBinStatus) String() string {
	return string(s)
}

type SmartBin struct {
	ID           string
	Type         BinType
	Capacity     int
	CurrentLevel int
	Location     Location
	AssignedTo   *string
	CreatedBy    string
	Status       SmartBinStatus
	DeliveredAt  *time.Time
	ActivatedAt  *time.Time
	LastEmptied  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SmartBinModify struct {
	ID             *string
	ExpectedStatus *SmartBinStatus
	Status         *SmartBinStatus
	AssignedTo     *string
	Location       *Location
	Capacity       *int
	CurrentLevel   *int
	DeliveredAt    *time.Time
	ActivatedAt    *time.Time
	LastEmptied    *time.Time
}

package bin

import "time"

type SmartBinDB struct {
	ID           string
	BinType      string
	Capacity     int
	CurrentLevel int
	Latitude     float64
	Longitude    float64
	Address      string
	AssignedTo   *string
	CreatedBy    string
	Status       string
	DeliveredAt  *time.Time
	ActivatedAt  *time.Time
	LastEmptied  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SmartBinModifyDB struct {
	ID             *string
	ExpectedStatus *string
	Status         *string
	AssignedTo     *string
	Latitude       *float64
	Longitude      *float64
	Address        *string
	Capacity       *int
	CurrentLevel   *int
	DeliveredAt    *time.Time
	ActivatedAt    *time.Time
	LastEmptied    *time.Time
}

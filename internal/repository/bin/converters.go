package bin

import "waste-service/internal/entities"

func ToDomain(b *SmartBinDB) *entities.SmartBin {
	if b == nil {
		return nil
	}
	return &entities.SmartBin{
		ID:           b.ID,
		Type:         entities.BinType(b.BinType),
		Capacity:     b.Capacity,
		CurrentLevel: b.CurrentLevel,
		Location: entities.Location{
			Coordinates: entities.Coordinates{
				Latitude:  b.Latitude,
				Longitude: b.Longitude,
			},
			Address: b.Address,
		},
		AssignedTo:  b.AssignedTo,
		CreatedBy:   b.CreatedBy,
		Status:      entities.SmartBinStatus(b.Status),
		DeliveredAt: b.DeliveredAt,
		ActivatedAt: b.ActivatedAt,
		LastEmptied: b.LastEmptied,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func FromDomain(b *entities.SmartBin) *SmartBinDB {
	if b == nil {
		return nil
	}
	return &SmartBinDB{
		ID:           b.ID,
		BinType:      b.Type.String(),
		Capacity:     b.Capacity,
		CurrentLevel: b.CurrentLevel,
		Latitude:     b.Location.Coordinates.Latitude,
		Longitude:    b.Location.Coordinates.Longitude,
		Address:      b.Location.Address,
		AssignedTo:   b.AssignedTo,
		CreatedBy:    b.CreatedBy,
		Status:       b.Status.String(),
		DeliveredAt:  b.DeliveredAt,
		ActivatedAt:  b.ActivatedAt,
		LastEmptied:  b.LastEmptied,
	}
}

func FromDomainModify(b *entities.SmartBinModify) *SmartBinModifyDB {
	if b == nil {
		return nil
	}
	modifyDB := &SmartBinModifyDB{
		ID:           b.ID,
		AssignedTo:   b.AssignedTo,
		Capacity:     b.Capacity,
		CurrentLevel: b.CurrentLevel,
		DeliveredAt:  b.DeliveredAt,
		ActivatedAt:  b.ActivatedAt,
		LastEmptied:  b.LastEmptied,
	}

	if b.ExpectedStatus != nil {
		expected := b.ExpectedStatus.String()
		modifyDB.ExpectedStatus = &expected
	}
	if b.Status != nil {
		status := b.Status.String()
		modifyDB.Status = &status
	}
	if b.Location != nil {
		modifyDB.Latitude = &b.Location.Coordinates.Latitude
		modifyDB.Longitude = &b.Location.Coordinates.Longitude
		modifyDB.Address = &b.Location.Address
	}

	return modifyDB
}

package binrequest

import "waste-service/internal/entities"

func ToDomain(b *BinRequestDB) *entities.BinRequest {
	if b == nil {
		return nil
	}
	return &entities.BinRequest{
		ID:                    b.ID,
		ResidentID:            b.ResidentID,
		RequestedBinType:      entities.BinType(b.RequestedBinType),
		PreferredDeliveryDate: b.PreferredDeliveryDate,
		Notes:                 b.Notes,
		Address: entities.Address{
			Line:       b.AddressLine,
			Street:     b.Street,
			City:       b.City,
			PostalCode: b.PostalCode,
		},
		Coordinates: entities.GeoPoint{
			Latitude:  b.Latitude,
			Longitude: b.Longitude,
		},
		Status:          entities.BinRequestStatus(b.Status),
		AssignedBinID:   b.AssignedBinID,
		DeliveryID:      b.DeliveryID,
		PaymentVerified: b.PaymentVerified,
		ApprovedBy:      b.ApprovedBy,
		ApprovedAt:      b.ApprovedAt,
		RejectionReason: b.RejectionReason,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func FromDomain(b *entities.BinRequest) *BinRequestDB {
	if b == nil {
		return nil
	}
	return &BinRequestDB{
		ID:                    b.ID,
		ResidentID:            b.ResidentID,
		RequestedBinType:      b.RequestedBinType.String(),
		PreferredDeliveryDate: b.PreferredDeliveryDate,
		Notes:                 b.Notes,
		AddressLine:           b.Address.Line,
		Street:                b.Address.Street,
		City:                  b.Address.City,
		PostalCode:            b.Address.PostalCode,
		Latitude:              b.Coordinates.Latitude,
		Longitude:             b.Coordinates.Longitude,
		Status:                b.Status.String(),
		AssignedBinID:         b.AssignedBinID,
		DeliveryID:            b.DeliveryID,
		PaymentVerified:       b.PaymentVerified,
		ApprovedBy:            b.ApprovedBy,
		ApprovedAt:            b.ApprovedAt,
		RejectionReason:       b.RejectionReason,
	}
}

func FromDomainModify(b *entities.BinRequestModify) *BinRequestModifyDB {
	if b == nil {
		return nil
	}
	modifyDB := &BinRequestModifyDB{
		ID:              b.ID,
		AssignedBinID:   b.AssignedBinID,
		DeliveryID:      b.DeliveryID,
		PaymentVerified: b.PaymentVerified,
		ApprovedBy:      b.ApprovedBy,
		ApprovedAt:      b.ApprovedAt,
		RejectionReason: b.RejectionReason,
	}

	if b.ExpectedStatus != nil {
		expected := b.ExpectedStatus.String()
		modifyDB.ExpectedStatus = &expected
	}
	if b.Status != nil {
		status := b.Status.String()
		modifyDB.Status = &status
	}

	return modifyDB
}

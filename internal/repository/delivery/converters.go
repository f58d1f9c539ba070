package delivery

import (
	"encoding/json"
	"fmt"

	"waste-service/internal/entities"
)

func ToDomain(d *DeliveryDB) (*entities.Delivery, error) {
	if d == nil {
		return nil, nil
	}

	var attemptsDB []AttemptDB
	if len(d.Attempts) > 0 {
		if err := json.Unmarshal(d.Attempts, &attemptsDB); err != nil {
			return nil, fmt.Errorf("decode delivery attempts: %w", err)
		}
	}

	attempts := make([]entities.DeliveryAttempt, 0, len(attemptsDB))
	for _, a := range attemptsDB {
		attempts = append(attempts, entities.DeliveryAttempt{
			At:      a.At,
			Note:    a.Note,
			ActorID: a.ActorID,
		})
	}

	return &entities.Delivery{
		ID:             d.ID,
		TrackingNumber: d.TrackingNumber,
		BinID:          d.BinID,
		ResidentID:     d.ResidentID,
		BinRequestID:   d.BinRequestID,
		ScheduledDate:  d.ScheduledDate,
		Attempts:       attempts,
		ConfirmedAt:    d.ConfirmedAt,
		Status:         entities.DeliveryStatus(d.Status),
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}, nil
}

func FromDomainModify(d *entities.DeliveryModify) (*DeliveryModifyDB, error) {
	if d == nil {
		return nil, nil
	}
	modifyDB := &DeliveryModifyDB{
		ID:          d.ID,
		BinID:       d.BinID,
		ConfirmedAt: d.ConfirmedAt,
	}

	if d.ExpectedStatus != nil {
		expected := d.ExpectedStatus.String()
		modifyDB.ExpectedStatus = &expected
	}
	if d.Status != nil {
		status := d.Status.String()
		modifyDB.Status = &status
	}
	if d.AppendAttempt != nil {
		payload, err := json.Marshal([]AttemptDB{{
			At:      d.AppendAttempt.At,
			Note:    d.AppendAttempt.Note,
			ActorID: d.AppendAttempt.ActorID,
		}})
		if err != nil {
			return nil, fmt.Errorf("encode delivery attempt: %w", err)
		}
		modifyDB.AppendAttempt = payload
	}

	return modifyDB, nil
}

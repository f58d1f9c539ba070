package pickup

import (
	"encoding/json"
	"fmt"

	"waste-service/internal/entities"
)

func ToDomain(p *PickupDB) (*entities.Pickup, error) {
	if p == nil {
		return nil, nil
	}

	var historyDB []StatusEntryDB
	if len(p.StatusHistory) > 0 {
		if err := json.Unmarshal(p.StatusHistory, &historyDB); err != nil {
			return nil, fmt.Errorf("decode pickup status history: %w", err)
		}
	}

	history := make([]entities.PickupStatusEntry, 0, len(historyDB))
	for _, h := range historyDB {
		entry := entities.PickupStatusEntry{
			Status:  entities.PickupStatus(h.Status),
			ActorID: h.ActorID,
			At:      h.At,
			Notes:   h.Notes,
		}
		if h.BinStatus != nil {
			binStatus := entities.PickupBinStatus(*h.BinStatus)
			entry.BinStatus = &binStatus
		}
		history = append(history, entry)
	}

	pickup := &entities.Pickup{
		ID:                p.ID,
		ResidentID:        p.ResidentID,
		AssignedCollector: p.AssignedCollector,
		Address: entities.Address{
			Line:       p.AddressLine,
			Street:     p.Street,
			City:       p.City,
			PostalCode: p.PostalCode,
		},
		Coordinates: entities.GeoPoint{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		},
		BinType:       entities.BinType(p.BinType),
		ScheduledDate: p.ScheduledDate,
		Notes:         p.Notes,
		Status:        entities.PickupStatus(p.Status),
		CompletedDate: p.CompletedDate,
		History:       history,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.BinStatus != nil {
		binStatus := entities.PickupBinStatus(*p.BinStatus)
		pickup.BinStatus = &binStatus
	}

	return pickup, nil
}

func FromDomainModify(p *entities.PickupModify) (*PickupModifyDB, error) {
	if p == nil {
		return nil, nil
	}
	modifyDB := &PickupModifyDB{
		ID:                p.ID,
		AssignedCollector: p.AssignedCollector,
		CompletedDate:     p.CompletedDate,
	}

	if p.ExpectedStatus != nil {
		expected := p.ExpectedStatus.String()
		modifyDB.ExpectedStatus = &expected
	}
	if p.Status != nil {
		status := p.Status.String()
		modifyDB.Status = &status
	}
	if p.BinStatus != nil {
		binStatus := p.BinStatus.String()
		modifyDB.BinStatus = &binStatus
	}
	if p.AppendHistory != nil {
		entry := StatusEntryDB{
			Status:  p.AppendHistory.Status.String(),
			ActorID: p.AppendHistory.ActorID,
			At:      p.AppendHistory.At,
			Notes:   p.AppendHistory.Notes,
		}
		if p.AppendHistory.BinStatus != nil {
			binStatus := p.AppendHistory.BinStatus.String()
			entry.BinStatus = &binStatus
		}
		payload, err := json.Marshal([]StatusEntryDB{entry})
		if err != nil {
			return nil, fmt.Errorf("encode pickup status entry: %w", err)
		}
		modifyDB.AppendHistory = payload
	}

	return modifyDB, nil
}

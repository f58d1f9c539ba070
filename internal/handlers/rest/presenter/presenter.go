// Package presenter converts domain entities into API DTOs.
package presenter

import (
	"time"

	"github.com/AlekSi/pointer"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"waste-service/internal/entities"
	"waste-service/internal/generated/dto"
)

func BinRequest(r entities.BinRequest) dto.BinRequest {
	out := dto.BinRequest{
		Id:              r.ID,
		ResidentId:      r.ResidentID,
		BinType:         r.RequestedBinType.String(),
		Address:         Address(r.Address),
		Coordinates:     Coordinates(r.Coordinates),
		Notes:           optionalString(r.Notes),
		Status:          r.Status.String(),
		AssignedBinId:   r.AssignedBinID,
		DeliveryId:      r.DeliveryID,
		PaymentVerified: r.PaymentVerified,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.PreferredDeliveryDate != nil {
		out.PreferredDeliveryDate = &openapi_types.Date{Time: *r.PreferredDeliveryDate}
	}
	return out
}

func SmartBin(b entities.SmartBin) dto.SmartBin {
	return dto.SmartBin{
		Id:           b.ID,
		Type:         b.Type.String(),
		Capacity:     b.Capacity,
		CurrentLevel: b.CurrentLevel,
		Location: dto.Location{
			Lat:     b.Location.Coordinates.Latitude,
			Lng:     b.Location.Coordinates.Longitude,
			Address: b.Location.Address,
		},
		AssignedTo:  b.AssignedTo,
		Status:      b.Status.String(),
		DeliveredAt: b.DeliveredAt,
		ActivatedAt: b.ActivatedAt,
		LastEmptied: b.LastEmptied,
	}
}

func SmartBins(bins []entities.SmartBin) []dto.SmartBin {
	out := make([]dto.SmartBin, 0, len(bins))
	for _, b := range bins {
		out = append(out, SmartBin(b))
	}
	return out
}

func Delivery(d entities.Delivery) dto.Delivery {
	attempts := make([]dto.DeliveryAttempt, 0, len(d.Attempts))
	for _, a := range d.Attempts {
		attempts = append(attempts, dto.DeliveryAttempt{At: a.At, Note: a.Note, ActorId: a.ActorID})
	}

	return dto.Delivery{
		Id:             d.ID,
		TrackingNumber: d.TrackingNumber,
		BinId:          d.BinID,
		ResidentId:     d.ResidentID,
		BinRequestId:   d.BinRequestID,
		ScheduledDate:  d.ScheduledDate,
		Attempts:       attempts,
		ConfirmedAt:    d.ConfirmedAt,
		Status:         d.Status.String(),
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func DeliveryTransition(t entities.DeliveryTransition) dto.DeliveryTransition {
	out := dto.DeliveryTransition{Delivery: Delivery(t.Delivery)}
	if t.Bin != nil {
		out.Bin = pointer.To(SmartBin(*t.Bin))
	}
	if t.Request != nil {
		out.BinRequest = pointer.To(BinRequest(*t.Request))
	}
	return out
}

func ApprovalResult(r entities.ApprovalResult) dto.ApprovalResult {
	out := dto.ApprovalResult{
		BinRequest: BinRequest(r.Request),
		Bin:        SmartBin(r.Bin),
		Delivery:   Delivery(r.Delivery),
	}
	if r.Notification != nil {
		out.Notification = pointer.To(Notification(*r.Notification))
	}
	return out
}

func Pickup(p entities.Pickup) dto.Pickup {
	history := make([]dto.PickupStatusEntry, 0, len(p.History))
	for _, h := range p.History {
		entry := dto.PickupStatusEntry{
			Status:  h.Status.String(),
			ActorId: h.ActorID,
			At:      h.At,
			Notes:   optionalString(h.Notes),
		}
		if h.BinStatus != nil {
			entry.BinStatus = pointer.ToString(h.BinStatus.String())
		}
		history = append(history, entry)
	}

	out := dto.Pickup{
		Id:                p.ID,
		ResidentId:        p.ResidentID,
		AssignedCollector: p.AssignedCollector,
		Address:           Address(p.Address),
		Coordinates:       Coordinates(p.Coordinates),
		BinType:           p.BinType.String(),
		ScheduledDate:     p.ScheduledDate,
		Notes:             optionalString(p.Notes),
		Status:            p.Status.String(),
		CompletedDate:     p.CompletedDate,
		History:           history,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.BinStatus != nil {
		out.BinStatus = pointer.ToString(p.BinStatus.String())
	}
	return out
}

func PickupCompletionResult(r entities.PickupCompletionResult) dto.PickupCompletionResult {
	return dto.PickupCompletionResult{
		Pickup:        Pickup(r.Pickup),
		EmptiedBins:   SmartBins(r.EmptiedBins),
		Notifications: r.Notifications,
	}
}

func Notification(n entities.Notification) dto.Notification {
	channels := make([]string, 0, len(n.Channels))
	for _, ch := range n.Channels {
		channels = append(channels, string(ch))
	}

	id, err := uuid.Parse(n.ID)
	if err != nil {
		id = uuid.Nil
	}

	out := dto.Notification{
		Id:           id,
		RecipientId:  n.RecipientID,
		Type:         string(n.Type),
		Title:        n.Title,
		Message:      n.Message,
		Priority:     string(n.Priority),
		Channels:     channels,
		DispatchedAt: n.DispatchedAt,
		CreatedAt:    n.CreatedAt,
	}
	if n.RelatedEntity != nil {
		out.RelatedEntity = &dto.EntityRef{Kind: n.RelatedEntity.Kind, Id: n.RelatedEntity.ID}
	}
	return out
}

func Notifications(list []entities.Notification) []dto.Notification {
	out := make([]dto.Notification, 0, len(list))
	for _, n := range list {
		out = append(out, Notification(n))
	}
	return out
}

func Address(a entities.Address) dto.Address {
	return dto.Address{
		Line:       a.Line,
		Street:     optionalString(a.Street),
		City:       optionalString(a.City),
		PostalCode: optionalString(a.PostalCode),
	}
}

func Coordinates(g entities.GeoPoint) *dto.Coordinates {
	if g.Latitude == nil && g.Longitude == nil {
		return nil
	}
	return &dto.Coordinates{Lat: g.Latitude, Lng: g.Longitude}
}

// ToAddress and ToGeoPoint convert request bodies back into entities.
func ToAddress(a dto.Address) entities.Address {
	return entities.Address{
		Line:       a.Line,
		Street:     pointer.GetString(a.Street),
		City:       pointer.GetString(a.City),
		PostalCode: pointer.GetString(a.PostalCode),
	}
}

func ToGeoPoint(c *dto.Coordinates) entities.GeoPoint {
	if c == nil {
		return entities.GeoPoint{}
	}
	return entities.GeoPoint{Latitude: c.Lat, Longitude: c.Lng}
}

// ToDate returns the calendar day at UTC midnight.
func ToDate(d openapi_types.Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"waste-service/internal/entities"
	"waste-service/internal/pkg/idgen"
	"waste-service/internal/pkg/metrics"
	"waste-service/internal/pkg/statemachine"
	"waste-service/pkg/logger"
)

const (
	scheduleDateLayout = "2006-01-02"

	opActivateBin = "activate_bin"
)

type Options struct {
	// StrictTransitions rejects status updates that are not in the delivery transition table.
	StrictTransitions bool
	// CompareAndSwap guards every status write with the status read at the start of the call.
	CompareAndSwap bool
}

type Service struct {
	repository Repository
	requests   RequestRepository
	bins       BinRepository
	notifier   Notifier
	ids        IDGenerator
	txManager  TxManager
	log        serviceLogger
	opts       Options
}

func New(
	repository Repository,
	requests RequestRepository,
	bins BinRepository,
	notifier Notifier,
	ids IDGenerator,
	txManager TxManager,
	log serviceLogger,
	opts Options,
) *Service {
	return &Service{
		repository: repository,
		requests:   requests,
		bins:       bins,
		notifier:   notifier,
		ids:        ids,
		txManager:  txManager,
		log:        log,
		opts:       opts,
	}
}

// ScheduleForRequest creates a scheduled delivery for an approved request and links the request
// back to it. It joins the caller's transaction when there is one.
func (s *Service) ScheduleForRequest(
	ctx context.Context,
	request entities.BinRequest,
	binID *string,
	date time.Time,
	actor entities.Actor,
) (*entities.Delivery, *entities.BinRequest, error) {
	if date.IsZero() {
		return nil, nil, ErrMissingScheduledDate
	}

	var (
		delivery *entities.Delivery
		linked   *entities.BinRequest
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		id, trackingNumber, err := s.ids.GeneratePair(ctx, idgen.PrefixDelivery, idgen.PrefixTracking, s.repository.ExistsAny)
		if err != nil {
			return fmt.Errorf("generate delivery ids: %w", err)
		}

		delivery, err = s.repository.Create(ctx, entities.Delivery{
			ID:             id,
			TrackingNumber: trackingNumber,
			BinID:          binID,
			ResidentID:     request.ResidentID,
			BinRequestID:   &request.ID,
			ScheduledDate:  date,
			Status:         entities.DeliveryScheduled,
			CreatedBy:      actor.ID,
		})
		if err != nil {
			return fmt.Errorf("create delivery: %w", err)
		}

		linked, err = s.requests.Update(ctx, entities.BinRequestModify{
			ID:         &request.ID,
			DeliveryID: &delivery.ID,
		})
		if err != nil {
			return fmt.Errorf("link bin request to delivery: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntityDelivery, entities.DeliveryScheduled.String()).Inc()
	return delivery, linked, nil
}

// CreateDelivery schedules a delivery for an approved request. A request whose current delivery
// failed gets a new one and the request is re-linked to it; any other linked delivery is a conflict.
func (s *Service) CreateDelivery(ctx context.Context, create entities.DeliveryCreate) (*entities.Delivery, error) {
	if !create.Actor.HasRole(entities.StaffRoles...) {
		return nil, ErrStaffOnly
	}
	if create.BinRequestID == "" {
		return nil, ErrMissingRequestID
	}
	if create.ScheduledDate.IsZero() {
		return nil, ErrMissingScheduledDate
	}

	var delivery *entities.Delivery
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		request, err := s.requests.GetByID(ctx, create.BinRequestID)
		if err != nil {
			return fmt.Errorf("get bin request: %w", err)
		}
		if request.Status != entities.RequestApproved {
			return fmt.Errorf("%w: current status is %s", ErrRequestNotReady, request.Status)
		}
		if request.DeliveryID != nil {
			if err := s.ensureReplaceable(ctx, *request.DeliveryID); err != nil {
				return err
			}
		}

		binID := request.AssignedBinID
		if create.BinID != nil {
			bin, err := s.bins.GetByID(ctx, *create.BinID)
			if err != nil {
				return fmt.Errorf("get smart bin %s: %w", *create.BinID, err)
			}
			binID = &bin.ID
		}

		delivery, _, err = s.ScheduleForRequest(ctx, *request, binID, create.ScheduledDate, create.Actor)
		if err != nil {
			return err
		}

		_, err = s.notifier.Notify(ctx, entities.NotificationCreate{
			RecipientID: request.ResidentID,
			Type:        entities.NotificationDeliveryScheduled,
			Title:       "Delivery scheduled",
			Message: fmt.Sprintf(
				"Your bin delivery is scheduled for %s, tracking number %s.",
				create.ScheduledDate.Format(scheduleDateLayout), delivery.TrackingNumber,
			),
			Priority:      entities.PriorityMedium,
			RelatedEntity: &entities.EntityRef{Kind: entities.EntityDelivery, ID: delivery.ID},
		})
		if err != nil {
			return fmt.Errorf("notify resident: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return delivery, nil
}

func (s *Service) ensureReplaceable(ctx context.Context, deliveryID string) error {
	linked, err := s.repository.GetByID(ctx, deliveryID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get linked delivery: %w", err)
	}
	if linked.Status != entities.DeliveryFailed {
		return fmt.Errorf("%w: %s is %s", ErrAlreadyLinked, linked.ID, linked.Status)
	}
	return nil
}

// UpdateStatus moves a delivery to a new status. Reaching delivered materialises the owning
// request's bin once.
func (s *Service) UpdateStatus(ctx context.Context, update entities.DeliveryStatusUpdate) (*entities.DeliveryTransition, error) {
	if !update.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, update.Status)
	}
	if !update.Actor.HasRole(entities.RoleCollector, entities.RoleOperator, entities.RoleAdmin) {
		return nil, ErrCannotUpdate
	}

	var transition entities.DeliveryTransition
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, update.DeliveryID)
		if err != nil {
			return fmt.Errorf("get delivery: %w", err)
		}
		if s.opts.StrictTransitions {
			if err := statemachine.Deliveries.Check(current.Status, update.Status); err != nil {
				return err
			}
		}

		modify := entities.DeliveryModify{
			ID:     &current.ID,
			Status: &update.Status,
		}
		if note := noteOf(update.Note); note != "" {
			modify.AppendAttempt = &entities.DeliveryAttempt{
				At:      time.Now().UTC(),
				Note:    note,
				ActorID: update.Actor.ID,
			}
		}
		if s.opts.CompareAndSwap {
			modify.ExpectedStatus = &current.Status
		}

		updated, err := s.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("update delivery status: %w", err)
		}
		transition.Delivery = *updated

		if update.Status != entities.DeliveryDelivered {
			return nil
		}
		return s.materialiseBin(ctx, &transition, update.Actor)
	})
	if err != nil {
		return nil, err
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntityDelivery, update.Status.String()).Inc()
	return &transition, nil
}

// ConfirmReceipt marks the delivery delivered and activates the linked bin. A delivery without a
// bin is still confirmed and the skipped activation is reported as a warning.
func (s *Service) ConfirmReceipt(ctx context.Context, deliveryID string, actor entities.Actor) (*entities.DeliveryTransition, error) {
	var transition entities.DeliveryTransition
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, deliveryID)
		if err != nil {
			return fmt.Errorf("get delivery: %w", err)
		}
		if actor.HasRole(entities.RoleResident) && current.ResidentID != actor.ID {
			return ErrNotRecipient
		}
		if s.opts.StrictTransitions {
			if err := statemachine.Deliveries.Check(current.Status, entities.DeliveryDelivered); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		delivered := entities.DeliveryDelivered
		modify := entities.DeliveryModify{
			ID:          &current.ID,
			Status:      &delivered,
			ConfirmedAt: &now,
		}
		if s.opts.CompareAndSwap {
			modify.ExpectedStatus = &current.Status
		}

		updated, err := s.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("confirm delivery: %w", err)
		}
		transition.Delivery = *updated

		if updated.BinID == nil {
			transition.Warnings = append(transition.Warnings, s.warn(updated.ID, "delivery has no linked bin, activation skipped"))
			return nil
		}

		bin, err := s.bins.GetByID(ctx, *updated.BinID)
		if err != nil {
			if errors.Is(err, entities.ErrNotFound) {
				transition.Warnings = append(transition.Warnings, s.warn(updated.ID, fmt.Sprintf("linked bin %s not found, activation skipped", *updated.BinID)))
				return nil
			}
			return fmt.Errorf("get smart bin: %w", err)
		}

		transition.Bin, err = s.activate(ctx, bin, nil, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntityDelivery, entities.DeliveryDelivered.String()).Inc()
	return &transition, nil
}

func (s *Service) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entities.Delivery, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, ErrMissingTrackingNumber
	}

	delivery, err := s.repository.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("get delivery by tracking number: %w", err)
	}
	return delivery, nil
}

// materialiseBin gives the approved request behind a delivered delivery its active bin, links the
// bin on both records and closes the request. A delivery with no approved request is left as is,
// which also makes a repeated delivered update a no-op.
func (s *Service) materialiseBin(ctx context.Context, transition *entities.DeliveryTransition, actor entities.Actor) error {
	delivery := transition.Delivery

	request, err := s.requests.FindApprovedByDelivery(ctx, delivery.ResidentID, delivery.ID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find approved bin request: %w", err)
	}

	now := time.Now().UTC()
	bin, err := s.assignedBin(ctx, request, now)
	if err != nil {
		return err
	}
	if bin == nil {
		if bin, err = s.createBin(ctx, request, actor, now); err != nil {
			return err
		}
	}
	transition.Bin = bin

	if delivery.BinID == nil || *delivery.BinID != bin.ID {
		linked, err := s.repository.Update(ctx, entities.DeliveryModify{
			ID:    &delivery.ID,
			BinID: &bin.ID,
		})
		if err != nil {
			return fmt.Errorf("link bin to delivery: %w", err)
		}
		transition.Delivery = *linked
	}

	deliveredStatus := entities.RequestDelivered
	modify := entities.BinRequestModify{
		ID:            &request.ID,
		Status:        &deliveredStatus,
		AssignedBinID: &bin.ID,
	}
	if s.opts.CompareAndSwap {
		modify.ExpectedStatus = &request.Status
	}
	closed, err := s.requests.Update(ctx, modify)
	if err != nil {
		return fmt.Errorf("mark bin request delivered: %w", err)
	}
	transition.Request = closed

	_, err = s.notifier.Notify(ctx, entities.NotificationCreate{
		RecipientID:   request.ResidentID,
		Type:          entities.NotificationBinActivated,
		Title:         "Your bin has arrived",
		Message:       fmt.Sprintf("Your %s bin %s has been delivered and is now active.", bin.Type, bin.ID),
		Priority:      entities.PriorityHigh,
		RelatedEntity: &entities.EntityRef{Kind: entities.EntitySmartBin, ID: bin.ID},
	})
	if err != nil {
		return fmt.Errorf("notify resident: %w", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntityBinRequest, entities.RequestDelivered.String()).Inc()
	return nil
}

// assignedBin activates the bin reserved at approval and places it the way a freshly created bin
// would be: request coordinates or [0,0], capacity by type. It returns nil when the request has no
// usable reserved bin and a new one has to be created.
func (s *Service) assignedBin(ctx context.Context, request *entities.BinRequest, now time.Time) (*entities.SmartBin, error) {
	if request.AssignedBinID == nil {
		return nil, nil
	}

	bin, err := s.bins.GetByID(ctx, *request.AssignedBinID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assigned smart bin: %w", err)
	}
	if bin.Status != entities.BinActive && !statemachine.SmartBins.Can(bin.Status, entities.BinActive) {
		return nil, nil
	}

	active := entities.BinActive
	capacity := entities.DefaultCapacity(entities.NormalizeBinType(bin.Type))
	location := deliveredLocation(request, bin.Location.Address)
	modify := entities.SmartBinModify{
		ID:          &bin.ID,
		Status:      &active,
		AssignedTo:  &request.ResidentID,
		Location:    &location,
		Capacity:    &capacity,
		DeliveredAt: &now,
		ActivatedAt: &now,
	}
	if s.opts.CompareAndSwap {
		modify.ExpectedStatus = &bin.Status
	}

	activated, err := s.bins.Update(ctx, modify)
	if err != nil {
		return nil, fmt.Errorf("activate assigned smart bin: %w", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntitySmartBin, entities.BinActive.String()).Inc()
	return activated, nil
}

func (s *Service) createBin(ctx context.Context, request *entities.BinRequest, actor entities.Actor, now time.Time) (*entities.SmartBin, error) {
	id, err := s.ids.Generate(ctx, idgen.PrefixSmartBin, s.bins.Exists)
	if err != nil {
		return nil, fmt.Errorf("generate smart bin id: %w", err)
	}

	binType := entities.NormalizeBinType(request.RequestedBinType)
	bin, err := s.bins.Create(ctx, entities.SmartBin{
		ID:          id,
		Type:        binType,
		Capacity:    entities.DefaultCapacity(binType),
		Location:    deliveredLocation(request, ""),
		AssignedTo:  &request.ResidentID,
		CreatedBy:   actor.ID,
		Status:      entities.BinActive,
		DeliveredAt: &now,
		ActivatedAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("create smart bin: %w", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntitySmartBin, entities.BinActive.String()).Inc()
	return bin, nil
}

// activate leaves an already active bin untouched.
func (s *Service) activate(ctx context.Context, bin *entities.SmartBin, owner *string, now time.Time) (*entities.SmartBin, error) {
	if bin.Status == entities.BinActive {
		return bin, nil
	}

	active := entities.BinActive
	modify := entities.SmartBinModify{
		ID:          &bin.ID,
		Status:      &active,
		AssignedTo:  owner,
		DeliveredAt: &now,
		ActivatedAt: &now,
	}
	if s.opts.CompareAndSwap {
		modify.ExpectedStatus = &bin.Status
	}

	activated, err := s.bins.Update(ctx, modify)
	if err != nil {
		return nil, fmt.Errorf("activate smart bin: %w", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntitySmartBin, entities.BinActive.String()).Inc()
	return activated, nil
}

// deliveredLocation never keeps inventory coordinates: invalid request coordinates become [0,0].
func deliveredLocation(request *entities.BinRequest, fallbackAddress string) entities.Location {
	address := request.Address.Line
	if address == "" {
		address = fallbackAddress
	}
	return entities.Location{
		Coordinates: request.Coordinates.Resolve(),
		Address:     address,
	}
}

func (s *Service) warn(deliveryID, message string) entities.SideEffectWarning {
	metrics.SideEffectWarningsTotal.WithLabelValues(opActivateBin).Inc()
	s.log.With(logger.NewField("delivery_id", deliveryID)).Warn(message)
	return entities.SideEffectWarning{
		Operation: opActivateBin,
		EntityID:  deliveryID,
		Message:   message,
	}
}

func noteOf(note *string) string {
	if note == nil {
		return ""
	}
	return strings.TrimSpace(*note)
}

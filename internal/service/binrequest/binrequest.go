package binrequest

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

const deliveryDateLayout = "2006-01-02"

type Options struct {
	// CompareAndSwap guards every status write with the status read at the start of the call.
	CompareAndSwap bool
}

type Service struct {
	repository Repository
	bins       BinRepository
	users      UserDirectory
	payments   PaymentLedger
	deliveries DeliveryScheduler
	notifier   Notifier
	ids        IDGenerator
	txManager  TxManager
	log        serviceLogger
	opts       Options
}

func New(
	repository Repository,
	bins BinRepository,
	users UserDirectory,
	payments PaymentLedger,
	deliveries DeliveryScheduler,
	notifier Notifier,
	ids IDGenerator,
	txManager TxManager,
	log serviceLogger,
	opts Options,
) *Service {
	return &Service{
		repository: repository,
		bins:       bins,
		users:      users,
		payments:   payments,
		deliveries: deliveries,
		notifier:   notifier,
		ids:        ids,
		txManager:  txManager,
		log:        log,
		opts:       opts,
	}
}

func (s *Service) CreateRequest(ctx context.Context, create entities.BinRequestCreate, actor entities.Actor) (*entities.BinRequest, error) {
	if !actor.HasRole(entities.RoleResident) {
		return nil, ErrNotResident
	}
	create.ResidentID = actor.ID
	if err := validateCreate(&create); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, create.ResidentID); err != nil {
		return nil, fmt.Errorf("get resident: %w", err)
	}

	id, err := s.ids.Generate(ctx, idgen.PrefixBinRequest, s.repository.Exists)
	if err != nil {
		return nil, fmt.Errorf("generate bin request id: %w", err)
	}

	request, err := s.repository.Create(ctx, entities.BinRequest{
		ID:                    id,
		ResidentID:            create.ResidentID,
		RequestedBinType:      create.RequestedBinType,
		PreferredDeliveryDate: create.PreferredDeliveryDate,
		Notes:                 create.Notes,
		Address:               create.Address,
		Coordinates:           create.Coordinates,
		Status:                entities.RequestPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create bin request: %w", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntityBinRequest, request.Status.String()).Inc()
	return request, nil
}

// GetRequest returns the request to staff and to the resident who filed it.
func (s *Service) GetRequest(ctx context.Context, id string, actor entities.Actor) (*entities.BinRequest, error) {
	request, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bin request: %w", err)
	}
	if actor.HasRole(entities.RoleResident) && request.ResidentID != actor.ID {
		return nil, ErrNotOwner
	}
	return request, nil
}

// ApproveRequest assigns a bin, approves the request, schedules its delivery and notifies the
// resident, all in one transaction.
func (s *Service) ApproveRequest(ctx context.Context, approval entities.BinRequestApproval) (*entities.ApprovalResult, error) {
	if !approval.Actor.HasRole(entities.StaffRoles...) {
		return nil, ErrStaffOnly
	}
	if approval.BinType != nil && !approval.BinType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBinType, *approval.BinType)
	}

	var result entities.ApprovalResult
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		request, err := s.repository.GetByID(ctx, approval.RequestID)
		if err != nil {
			return fmt.Errorf("get bin request: %w", err)
		}
		if err := ensurePending(request, entities.RequestApproved); err != nil {
			return err
		}

		deliveryDate := approval.DeliveryDate
		if deliveryDate.IsZero() && request.PreferredDeliveryDate != nil {
			deliveryDate = *request.PreferredDeliveryDate
		}
		if deliveryDate.IsZero() {
			return ErrMissingDeliveryDate
		}

		binType := entities.NormalizeBinType(request.RequestedBinType)
		if approval.BinType != nil {
			binType = *approval.BinType
		}

		bin, err := s.resolveBin(ctx, approval.BinID, binType)
		if err != nil {
			return err
		}

		assigned, err := s.assignBin(ctx, bin, request)
		if err != nil {
			return err
		}

		paymentVerified := s.paymentVerified(ctx, request)
		now := time.Now().UTC()
		approvedStatus := entities.RequestApproved
		modify := entities.BinRequestModify{
			ID:              &request.ID,
			Status:          &approvedStatus,
			AssignedBinID:   &assigned.ID,
			PaymentVerified: &paymentVerified,
			ApprovedBy:      &approval.Actor.ID,
			ApprovedAt:      &now,
		}
		if s.opts.CompareAndSwap {
			modify.ExpectedStatus = &request.Status
		}
		approved, err := s.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("approve bin request: %w", err)
		}

		delivery, linked, err := s.deliveries.ScheduleForRequest(ctx, *approved, &assigned.ID, deliveryDate, approval.Actor)
		if err != nil {
			return fmt.Errorf("schedule delivery: %w", err)
		}

		n, err := s.notifier.Notify(ctx, entities.NotificationCreate{
			RecipientID: request.ResidentID,
			Type:        entities.NotificationBinRequestApproved,
			Title:       "Bin request approved",
			Message: fmt.Sprintf(
				"Your request for a %s bin was approved. Delivery is scheduled for %s, tracking number %s.",
				assigned.Type, deliveryDate.Format(deliveryDateLayout), delivery.TrackingNumber,
			),
			Priority:      entities.PriorityMedium,
			RelatedEntity: &entities.EntityRef{Kind: entities.EntityBinRequest, ID: request.ID},
		})
		if err != nil {
			return fmt.Errorf("notify resident: %w", err)
		}

		result = entities.ApprovalResult{
			Request:      *linked,
			Bin:          *assigned,
			Delivery:     *delivery,
			Notification: n,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntityBinRequest, entities.RequestApproved.String()).Inc()
	return &result, nil
}

func (s *Service) RejectRequest(ctx context.Context, id, reason string, actor entities.Actor) (*entities.BinRequest, error) {
	if !actor.HasRole(entities.StaffRoles...) {
		return nil, ErrStaffOnly
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrMissingReason
	}

	var rejected *entities.BinRequest
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		request, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get bin request: %w", err)
		}
		if err := ensurePending(request, entities.RequestRejected); err != nil {
			return err
		}

		rejectedStatus := entities.RequestRejected
		modify := entities.BinRequestModify{
			ID:              &request.ID,
			Status:          &rejectedStatus,
			RejectionReason: &reason,
		}
		if s.opts.CompareAndSwap {
			modify.ExpectedStatus = &request.Status
		}
		rejected, err = s.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("reject bin request: %w", err)
		}

		_, err = s.notifier.Notify(ctx, entities.NotificationCreate{
			RecipientID:   request.ResidentID,
			Type:          entities.NotificationBinRequestRejected,
			Title:         "Bin request rejected",
			Message:       fmt.Sprintf("Your bin request %s was rejected: %s", request.ID, reason),
			Priority:      entities.PriorityMedium,
			RelatedEntity: &entities.EntityRef{Kind: entities.EntityBinRequest, ID: request.ID},
		})
		if err != nil {
			return fmt.Errorf("notify resident: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntityBinRequest, entities.RequestRejected.String()).Inc()
	return rejected, nil
}

// CancelRequest lets the owning resident withdraw a request that is still pending.
func (s *Service) CancelRequest(ctx context.Context, id string, actor entities.Actor) (*entities.BinRequest, error) {
	var cancelled *entities.BinRequest
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		request, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get bin request: %w", err)
		}
		if request.ResidentID != actor.ID {
			return ErrNotOwner
		}
		if err := ensurePending(request, entities.RequestCancelled); err != nil {
			return err
		}

		cancelledStatus := entities.RequestCancelled
		modify := entities.BinRequestModify{
			ID:     &request.ID,
			Status: &cancelledStatus,
		}
		if s.opts.CompareAndSwap {
			modify.ExpectedStatus = &request.Status
		}
		cancelled, err = s.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("cancel bin request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntityBinRequest, entities.RequestCancelled.String()).Inc()
	return cancelled, nil
}

func (s *Service) resolveBin(ctx context.Context, binID *string, binType entities.BinType) (*entities.SmartBin, error) {
	if binID != nil {
		bin, err := s.bins.GetByID(ctx, *binID)
		if err != nil {
			return nil, fmt.Errorf("get smart bin %s: %w", *binID, err)
		}
		if bin.Status != entities.BinAvailable {
			return nil, fmt.Errorf("%w: %s is %s", ErrBinNotAvailable, bin.ID, bin.Status)
		}
		return bin, nil
	}

	bin, err := s.bins.FindAvailableByType(ctx, binType)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w of type %s, add inventory or choose another bin type", ErrNoAvailableBin, binType)
		}
		return nil, fmt.Errorf("find available smart bin: %w", err)
	}
	return bin, nil
}

func (s *Service) assignBin(ctx context.Context, bin *entities.SmartBin, request *entities.BinRequest) (*entities.SmartBin, error) {
	assignedStatus := entities.BinAssigned
	modify := entities.SmartBinModify{
		ID:         &bin.ID,
		Status:     &assignedStatus,
		AssignedTo: &request.ResidentID,
		Location:   requestLocation(request, bin.Location),
	}
	if s.opts.CompareAndSwap {
		modify.ExpectedStatus = &bin.Status
	}

	assigned, err := s.bins.Update(ctx, modify)
	if err != nil {
		return nil, fmt.Errorf("assign smart bin: %w", err)
	}
	return assigned, nil
}

// paymentVerified never fails the approval; lookup errors and missing payments are only logged.
func (s *Service) paymentVerified(ctx context.Context, request *entities.BinRequest) bool {
	log := s.log.With(
		logger.NewField("bin_request_id", request.ID),
		logger.NewField("resident_id", request.ResidentID),
	)

	verified, err := s.payments.HasCompletedPayment(ctx, request.ResidentID, entities.ApprovalPaymentTypes)
	if err != nil {
		log.With(logger.NewField("error", err)).Warn("payment lookup failed, approving without verification")
		return false
	}
	if !verified {
		log.Info("no completed payment found for resident")
	}
	return verified
}

func ensurePending(request *entities.BinRequest, target entities.BinRequestStatus) error {
	if !statemachine.BinRequests.Can(request.Status, target) {
		return fmt.Errorf("%w: current status is %s", ErrRequestNotPending, request.Status)
	}
	return nil
}

// requestLocation overrides the bin location with whatever the request supplies.
func requestLocation(request *entities.BinRequest, current entities.Location) *entities.Location {
	location := current
	if request.Coordinates.IsValid() {
		location.Coordinates = request.Coordinates.Resolve()
	}
	if line := request.Address.Line; line != "" {
		location.Address = line
	}
	return &location
}

func validateCreate(create *entities.BinRequestCreate) error {
	if create.ResidentID == "" {
		return ErrMissingResident
	}
	create.Address.Line = strings.TrimSpace(create.Address.Line)
	if create.Address.Line == "" {
		return ErrMissingAddress
	}
	if create.RequestedBinType == "" {
		create.RequestedBinType = entities.BinTypeGeneral
	}
	if !create.RequestedBinType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidBinType, create.RequestedBinType)
	}
	return nil
}

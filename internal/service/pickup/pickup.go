package pickup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"waste-service/internal/entities"
	"waste-service/internal/pkg/geo"
	"waste-service/internal/pkg/idgen"
	"waste-service/internal/pkg/metrics"
	"waste-service/internal/pkg/statemachine"
	"waste-service/pkg/logger"
)

const (
	DefaultRadiusMeters = 50.0

	opEmptyBins = "empty_bins"
)

type Options struct {
	// RadiusMeters bounds which of the resident's bins a collected pickup empties.
	RadiusMeters float64
	// CompareAndSwap guards every status write with the status read at the start of the call.
	CompareAndSwap bool
}

type Service struct {
	repository Repository
	bins       BinRepository
	users      UserDirectory
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
	notifier Notifier,
	ids IDGenerator,
	txManager TxManager,
	log serviceLogger,
	opts Options,
) *Service {
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = DefaultRadiusMeters
	}
	return &Service{
		repository: repository,
		bins:       bins,
		users:      users,
		notifier:   notifier,
		ids:        ids,
		txManager:  txManager,
		log:        log,
		opts:       opts,
	}
}

func (s *Service) CreatePickup(ctx context.Context, create entities.PickupCreate, actor entities.Actor) (*entities.Pickup, error) {
	if !actor.HasRole(entities.RoleResident) {
		return nil, ErrNotResident
	}
	create.ResidentID = actor.ID
	create.Address.Line = strings.TrimSpace(create.Address.Line)
	if create.Address.Line == "" {
		return nil, ErrMissingAddress
	}
	if create.ScheduledDate.IsZero() {
		return nil, ErrMissingScheduledDate
	}
	if create.BinType == "" {
		create.BinType = entities.BinTypeGeneral
	}
	if !create.BinType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBinType, create.BinType)
	}

	id, err := s.ids.Generate(ctx, idgen.PrefixPickup, s.repository.Exists)
	if err != nil {
		return nil, fmt.Errorf("generate pickup id: %w", err)
	}

	pickup, err := s.repository.Create(ctx, entities.Pickup{
		ID:            id,
		ResidentID:    create.ResidentID,
		Address:       create.Address,
		Coordinates:   create.Coordinates,
		BinType:       create.BinType,
		ScheduledDate: create.ScheduledDate,
		Notes:         create.Notes,
		Status:        entities.PickupPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create pickup: %w", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntityPickup, pickup.Status.String()).Inc()
	return pickup, nil
}

// GetPickup returns the pickup to staff, to its resident and to its assigned collector.
func (s *Service) GetPickup(ctx context.Context, id string, actor entities.Actor) (*entities.Pickup, error) {
	pickup, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get pickup: %w", err)
	}

	switch actor.Role {
	case entities.RoleResident:
		if pickup.ResidentID != actor.ID {
			return nil, ErrNotOwner
		}
	case entities.RoleCollector:
		if !assignedTo(pickup, actor.ID) {
			return nil, ErrNotAssignedCollector
		}
	}
	return pickup, nil
}

// AssignCollector hands the pickup to an active collector. Reassigning an assigned pickup is allowed.
func (s *Service) AssignCollector(ctx context.Context, id, collectorID string, actor entities.Actor) (*entities.Pickup, error) {
	if !actor.HasRole(entities.StaffRoles...) {
		return nil, ErrStaffOnly
	}

	collector, err := s.users.GetByID(ctx, collectorID)
	if err != nil {
		return nil, fmt.Errorf("get collector: %w", err)
	}
	if collector.Role != entities.RoleCollector || !collector.Active {
		return nil, fmt.Errorf("%w: %s", ErrNotACollector, collectorID)
	}

	var assigned *entities.Pickup
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		pickup, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get pickup: %w", err)
		}

		assigned, err = s.transition(ctx, pickup, entities.PickupAssigned, actor, func(modify *entities.PickupModify) {
			modify.AssignedCollector = &collector.ID
		}, nil, "")
		if err != nil {
			return err
		}

		_, err = s.notifier.Notify(ctx, entities.NotificationCreate{
			RecipientID:   collector.ID,
			Type:          entities.NotificationPickupAssigned,
			Title:         "New pickup assigned",
			Message:       fmt.Sprintf("Pickup %s at %s is scheduled for %s.", pickup.ID, pickup.Address.Line, pickup.ScheduledDate.Format("2006-01-02")),
			Priority:      entities.PriorityMedium,
			RelatedEntity: &entities.EntityRef{Kind: entities.EntityPickup, ID: pickup.ID},
		})
		if err != nil {
			return fmt.Errorf("notify collector: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

// StartPickup marks the pickup in progress. Only its assigned collector may start it.
func (s *Service) StartPickup(ctx context.Context, id string, actor entities.Actor) (*entities.Pickup, error) {
	var started *entities.Pickup
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		pickup, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get pickup: %w", err)
		}
		if !assignedTo(pickup, actor.ID) {
			return ErrNotAssignedCollector
		}

		started, err = s.transition(ctx, pickup, entities.PickupInProgress, actor, nil, nil, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return started, nil
}

// CompletePickup records the collector's outcome. Status, history and notifications commit
// together; emptying the resident's bins after a collection runs afterwards and only reports
// failures as warnings.
func (s *Service) CompletePickup(ctx context.Context, completion entities.PickupCompletion) (*entities.PickupCompletionResult, error) {
	if !completion.BinStatus.IsValid() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidBinStatus, completion.BinStatus)
	}

	var result entities.PickupCompletionResult
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		pickup, err := s.repository.GetByID(ctx, completion.PickupID)
		if err != nil {
			return fmt.Errorf("get pickup: %w", err)
		}
		if !assignedTo(pickup, completion.Actor.ID) {
			return ErrNotAssignedCollector
		}

		now := time.Now().UTC()
		completed, err := s.transition(ctx, pickup, entities.PickupCompleted, completion.Actor, func(modify *entities.PickupModify) {
			modify.BinStatus = &completion.BinStatus
			modify.CompletedDate = &now
		}, &completion.BinStatus, strings.TrimSpace(completion.Notes))
		if err != nil {
			return err
		}
		result.Pickup = *completed

		result.Notifications, err = s.notifyOutcome(ctx, completed)
		return err
	})
	if err != nil {
		return nil, err
	}

	if completion.BinStatus == entities.BinCollected {
		result.EmptiedBins, result.Warnings = s.emptyBins(ctx, &result.Pickup)
	}
	return &result, nil
}

func (s *Service) transition(
	ctx context.Context,
	pickup *entities.Pickup,
	to entities.PickupStatus,
	actor entities.Actor,
	apply func(modify *entities.PickupModify),
	binStatus *entities.PickupBinStatus,
	notes string,
) (*entities.Pickup, error) {
	if err := statemachine.Pickups.Check(pickup.Status, to); err != nil {
		return nil, err
	}

	modify := entities.PickupModify{
		ID:     &pickup.ID,
		Status: &to,
		AppendHistory: &entities.PickupStatusEntry{
			Status:    to,
			BinStatus: binStatus,
			ActorID:   actor.ID,
			At:        time.Now().UTC(),
			Notes:     notes,
		},
	}
	if apply != nil {
		apply(&modify)
	}
	if s.opts.CompareAndSwap {
		modify.ExpectedStatus = &pickup.Status
	}

	updated, err := s.repository.Update(ctx, modify)
	if err != nil {
		return nil, fmt.Errorf("update pickup status: %w", err)
	}

	metrics.WorkflowTransitionsTotal.WithLabelValues(entities.EntityPickup, to.String()).Inc()
	return updated, nil
}

func (s *Service) notifyOutcome(ctx context.Context, pickup *entities.Pickup) (int, error) {
	ref := &entities.EntityRef{Kind: entities.EntityPickup, ID: pickup.ID}

	switch *pickup.BinStatus {
	case entities.BinEmpty:
		_, err := s.notifier.Notify(ctx, entities.NotificationCreate{
			RecipientID:   pickup.ResidentID,
			Type:          entities.NotificationPickupEmpty,
			Title:         "Pickup completed",
			Message:       fmt.Sprintf("The collector found your bin empty during pickup %s.", pickup.ID),
			Priority:      entities.PriorityLow,
			RelatedEntity: ref,
		})
		if err != nil {
			return 0, fmt.Errorf("notify resident: %w", err)
		}
		return 1, nil

	case entities.BinDamaged:
		_, err := s.notifier.Notify(ctx, entities.NotificationCreate{
			RecipientID:   pickup.ResidentID,
			Type:          entities.NotificationBinDamaged,
			Title:         "Damaged bin reported",
			Message:       fmt.Sprintf("The collector reported your bin as damaged during pickup %s. Our team will follow up.", pickup.ID),
			Priority:      entities.PriorityHigh,
			RelatedEntity: ref,
		})
		if err != nil {
			return 0, fmt.Errorf("notify resident: %w", err)
		}

		staff, err := s.notifier.NotifyRoles(ctx, entities.StaffRoles, entities.NotificationCreate{
			Type:          entities.NotificationBinDamaged,
			Title:         "Damaged bin reported",
			Message:       fmt.Sprintf("Pickup %s at %s reported a damaged bin.", pickup.ID, pickup.Address.Line),
			Priority:      entities.PriorityHigh,
			RelatedEntity: ref,
		})
		if err != nil {
			return 0, fmt.Errorf("notify staff: %w", err)
		}
		return 1 + len(staff), nil
	}
	return 0, nil
}

// emptyBins resets the level of the resident's active bins near the pickup, or of all of them when
// none is within the radius.
func (s *Service) emptyBins(ctx context.Context, pickup *entities.Pickup) ([]entities.SmartBin, []entities.SideEffectWarning) {
	log := s.log.With(logger.NewField("pickup_id", pickup.ID))

	bins, err := s.bins.ListActiveByOwner(ctx, pickup.ResidentID)
	if err != nil {
		log.With(logger.NewField("error", err)).Warn("list resident bins")
		return nil, []entities.SideEffectWarning{warning(pickup.ID, fmt.Sprintf("list resident bins: %v", err))}
	}

	targets := s.nearby(pickup, bins)
	now := time.Now().UTC()
	zero := 0

	var (
		emptied  []entities.SmartBin
		warnings []entities.SideEffectWarning
	)
	for _, bin := range targets {
		modify := entities.SmartBinModify{
			ID:           &bin.ID,
			CurrentLevel: &zero,
			LastEmptied:  &now,
		}
		if s.opts.CompareAndSwap {
			modify.ExpectedStatus = &bin.Status
		}

		updated, err := s.bins.Update(ctx, modify)
		if err != nil {
			log.With(
				logger.NewField("bin_id", bin.ID),
				logger.NewField("error", err),
			).Warn("empty bin")
			warnings = append(warnings, warning(bin.ID, fmt.Sprintf("empty bin: %v", err)))
			continue
		}
		emptied = append(emptied, *updated)
	}
	return emptied, warnings
}

func (s *Service) nearby(pickup *entities.Pickup, bins []entities.SmartBin) []entities.SmartBin {
	if !pickup.Coordinates.IsValid() {
		return bins
	}

	origin := pickup.Coordinates.Resolve()
	near := make([]entities.SmartBin, 0, len(bins))
	for _, bin := range bins {
		if geo.Within(origin, bin.Location.Coordinates, s.opts.RadiusMeters) {
			near = append(near, bin)
		}
	}
	if len(near) == 0 {
		return bins
	}
	return near
}

func assignedTo(pickup *entities.Pickup, collectorID string) bool {
	return pickup.AssignedCollector != nil && *pickup.AssignedCollector == collectorID
}

func warning(entityID, message string) entities.SideEffectWarning {
	metrics.SideEffectWarningsTotal.WithLabelValues(opEmptyBins).Inc()
	return entities.SideEffectWarning{
		Operation: opEmptyBins,
		EntityID:  entityID,
		Message:   message,
	}
}

package pickup

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"waste-service/internal/entities"
	"waste-service/internal/repository"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const columns = `id, resident_id, assigned_collector, address_line, street, city, postal_code,
	latitude, longitude, bin_type, scheduled_date, notes, status, bin_status,
	completed_date, status_history, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, pickup entities.Pickup) (*entities.Pickup, error) {
	query := `
		INSERT INTO pickup_requests (id, resident_id, address_line, street, city, postal_code,
			latitude, longitude, bin_type, scheduled_date, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + columns

	created, err := scan(r.querier.QueryRow(
		ctx,
		query,
		pickup.ID,
		pickup.ResidentID,
		pickup.Address.Line,
		pickup.Address.Street,
		pickup.Address.City,
		pickup.Address.PostalCode,
		pickup.Coordinates.Latitude,
		pickup.Coordinates.Longitude,
		pickup.BinType.String(),
		pickup.ScheduledDate,
		pickup.Notes,
		pickup.Status.String(),
	))
	if err != nil {
		return nil, repository.InsertError(err, "pickup_requests")
	}

	return ToDomain(created)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Pickup, error) {
	query := `SELECT ` + columns + ` FROM pickup_requests WHERE id = $1`

	pickupDB, err := scan(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrPickupNotFound
		}
		return nil, fmt.Errorf("unexpected pickup repository getbyid error: %w", err)
	}

	return ToDomain(pickupDB)
}

func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pickup_requests WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("unexpected pickup repository exists error: %w", err)
	}
	return exists, nil
}

// Update applies the set fields. With ExpectedStatus it only touches a row still in that status.
func (r *Repository) Update(ctx context.Context, modify entities.PickupModify) (*entities.Pickup, error) {
	modifyDB, err := FromDomainModify(&modify)
	if err != nil {
		return nil, err
	}
	if modifyDB.ID == nil {
		return nil, fmt.Errorf("%w: pickup id is required", entities.ErrValidation)
	}

	builder := qb.Update("pickup_requests")

	if modifyDB.Status != nil {
		builder = builder.Set("status", modifyDB.Status)
	}
	if modifyDB.AssignedCollector != nil {
		builder = builder.Set("assigned_collector", modifyDB.AssignedCollector)
	}
	if modifyDB.BinStatus != nil {
		builder = builder.Set("bin_status", modifyDB.BinStatus)
	}
	if modifyDB.CompletedDate != nil {
		builder = builder.Set("completed_date", modifyDB.CompletedDate)
	}
	if modifyDB.AppendHistory != nil {
		builder = builder.Set("status_history", sq.Expr("status_history || ?::jsonb", string(modifyDB.AppendHistory)))
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": modifyDB.ID})

	if modifyDB.ExpectedStatus != nil {
		builder = builder.Where(sq.Eq{"status": modifyDB.ExpectedStatus})
	}

	query, args, err := builder.Suffix("RETURNING " + columns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected pickup repository update error: %w", err)
	}

	pickupDB, err := scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missingRowError(ctx, *modifyDB.ID, modifyDB.ExpectedStatus != nil)
		}
		return nil, fmt.Errorf("unexpected pickup repository update error: %w", err)
	}

	return ToDomain(pickupDB)
}

func (r *Repository) missingRowError(ctx context.Context, id string, guarded bool) error {
	if !guarded {
		return entities.ErrPickupNotFound
	}
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return entities.ErrStatusChanged
	}
	return entities.ErrPickupNotFound
}

func scan(row pgx.Row) (*PickupDB, error) {
	var p PickupDB
	err := row.Scan(
		&p.ID,
		&p.ResidentID,
		&p.AssignedCollector,
		&p.AddressLine,
		&p.Street,
		&p.City,
		&p.PostalCode,
		&p.Latitude,
		&p.Longitude,
		&p.BinType,
		&p.ScheduledDate,
		&p.Notes,
		&p.Status,
		&p.BinStatus,
		&p.CompletedDate,
		&p.StatusHistory,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

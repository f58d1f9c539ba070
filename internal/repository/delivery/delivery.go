package delivery

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

const columns = `id, tracking_number, bin_id, resident_id, bin_request_id, scheduled_date,
	attempts, confirmed_at, status, created_by, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, delivery entities.Delivery) (*entities.Delivery, error) {
	query := `
		INSERT INTO deliveries (id, tracking_number, bin_id, resident_id, bin_request_id,
			scheduled_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + columns

	created, err := scan(r.querier.QueryRow(
		ctx,
		query,
		delivery.ID,
		delivery.TrackingNumber,
		delivery.BinID,
		delivery.ResidentID,
		delivery.BinRequestID,
		delivery.ScheduledDate,
		delivery.Status.String(),
		delivery.CreatedBy,
	))
	if err != nil {
		return nil, repository.InsertError(err, "deliveries")
	}

	return ToDomain(created)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Delivery, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *Repository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entities.Delivery, error) {
	return r.getOne(ctx, sq.Eq{"tracking_number": trackingNumber})
}

// ExistsAny reports whether either the delivery id or the tracking number is already in use.
func (r *Repository) ExistsAny(ctx context.Context, id, trackingNumber string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM deliveries WHERE id = $1 OR tracking_number = $2)`

	var exists bool
	err := r.querier.QueryRow(ctx, query, id, trackingNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("unexpected delivery repository exists error: %w", err)
	}
	return exists, nil
}

// Update applies the set fields. With ExpectedStatus it only touches a row still in that status.
func (r *Repository) Update(ctx context.Context, modify entities.DeliveryModify) (*entities.Delivery, error) {
	modifyDB, err := FromDomainModify(&modify)
	if err != nil {
		return nil, err
	}
	if modifyDB.ID == nil {
		return nil, fmt.Errorf("%w: delivery id is required", entities.ErrValidation)
	}

	builder := qb.Update("deliveries")

	if modifyDB.Status != nil {
		builder = builder.Set("status", modifyDB.Status)
	}
	if modifyDB.BinID != nil {
		builder = builder.Set("bin_id", modifyDB.BinID)
	}
	if modifyDB.ConfirmedAt != nil {
		builder = builder.Set("confirmed_at", modifyDB.ConfirmedAt)
	}
	if modifyDB.AppendAttempt != nil {
		builder = builder.Set("attempts", sq.Expr("attempts || ?::jsonb", string(modifyDB.AppendAttempt)))
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": modifyDB.ID})

	if modifyDB.ExpectedStatus != nil {
		builder = builder.Where(sq.Eq{"status": modifyDB.ExpectedStatus})
	}

	query, args, err := builder.Suffix("RETURNING " + columns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	deliveryDB, err := scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missingRowError(ctx, *modifyDB.ID, modifyDB.ExpectedStatus != nil)
		}
		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	return ToDomain(deliveryDB)
}

func (r *Repository) getOne(ctx context.Context, where sq.Eq) (*entities.Delivery, error) {
	query, args, err := qb.Select(columns).From("deliveries").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository get error: %w", err)
	}

	deliveryDB, err := scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository get error: %w", err)
	}

	return ToDomain(deliveryDB)
}

func (r *Repository) missingRowError(ctx context.Context, id string, guarded bool) error {
	if !guarded {
		return entities.ErrDeliveryNotFound
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return entities.ErrStatusChanged
}

func scan(row pgx.Row) (*DeliveryDB, error) {
	var d DeliveryDB
	err := row.Scan(
		&d.ID,
		&d.TrackingNumber,
		&d.BinID,
		&d.ResidentID,
		&d.BinRequestID,
		&d.ScheduledDate,
		&d.Attempts,
		&d.ConfirmedAt,
		&d.Status,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

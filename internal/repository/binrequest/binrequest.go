package binrequest

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

const columns = `id, resident_id, requested_bin_type, preferred_delivery_date, notes,
	address_line, street, city, postal_code, latitude, longitude, status,
	assigned_bin_id, delivery_id, payment_verified, approved_by, approved_at,
	rejection_reason, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, request entities.BinRequest) (*entities.BinRequest, error) {
	requestDB := FromDomain(&request)

	query := `
		INSERT INTO bin_requests (id, resident_id, requested_bin_type, preferred_delivery_date, notes,
			address_line, street, city, postal_code, latitude, longitude, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + columns

	created, err := scan(r.querier.QueryRow(
		ctx,
		query,
		requestDB.ID,
		requestDB.ResidentID,
		requestDB.RequestedBinType,
		requestDB.PreferredDeliveryDate,
		requestDB.Notes,
		requestDB.AddressLine,
		requestDB.Street,
		requestDB.City,
		requestDB.PostalCode,
		requestDB.Latitude,
		requestDB.Longitude,
		requestDB.Status,
	))
	if err != nil {
		return nil, repository.InsertError(err, "bin_requests")
	}

	return ToDomain(created), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.BinRequest, error) {
	query := `SELECT ` + columns + ` FROM bin_requests WHERE id = $1`

	requestDB, err := scan(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrBinRequestNotFound
		}
		return nil, fmt.Errorf("unexpected bin request repository getbyid error: %w", err)
	}

	return ToDomain(requestDB), nil
}

func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bin_requests WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("unexpected bin request repository exists error: %w", err)
	}
	return exists, nil
}

// FindApprovedByDelivery looks up the approved request of residentID that points at deliveryID.
func (r *Repository) FindApprovedByDelivery(ctx context.Context, residentID, deliveryID string) (*entities.BinRequest, error) {
	query, args, err := qb.
		Select(columns).
		From("bin_requests").
		Where(sq.Eq{
			"resident_id": residentID,
			"status":      entities.RequestApproved.String(),
			"delivery_id": deliveryID,
		}).
		OrderBy("approved_at DESC NULLS LAST").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected bin request repository find approved error: %w", err)
	}

	requestDB, err := scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrBinRequestNotFound
		}
		return nil, fmt.Errorf("unexpected bin request repository find approved error: %w", err)
	}

	return ToDomain(requestDB), nil
}

// Update applies the set fields. With ExpectedStatus it only touches a row still in that status.
func (r *Repository) Update(ctx context.Context, modify entities.BinRequestModify) (*entities.BinRequest, error) {
	modifyDB := FromDomainModify(&modify)
	if modifyDB.ID == nil {
		return nil, fmt.Errorf("%w: bin request id is required", entities.ErrValidation)
	}

	builder := qb.Update("bin_requests")

	// опциональные поля
	if modifyDB.Status != nil {
		builder = builder.Set("status", modifyDB.Status)
	}
	if modifyDB.AssignedBinID != nil {
		builder = builder.Set("assigned_bin_id", modifyDB.AssignedBinID)
	}
	if modifyDB.DeliveryID != nil {
		builder = builder.Set("delivery_id", modifyDB.DeliveryID)
	}
	if modifyDB.PaymentVerified != nil {
		builder = builder.Set("payment_verified", modifyDB.PaymentVerified)
	}
	if modifyDB.ApprovedBy != nil {
		builder = builder.Set("approved_by", modifyDB.ApprovedBy)
	}
	if modifyDB.ApprovedAt != nil {
		builder = builder.Set("approved_at", modifyDB.ApprovedAt)
	}
	if modifyDB.RejectionReason != nil {
		builder = builder.Set("rejection_reason", modifyDB.RejectionReason)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": modifyDB.ID})

	if modifyDB.ExpectedStatus != nil {
		builder = builder.Where(sq.Eq{"status": modifyDB.ExpectedStatus})
	}

	query, args, err := builder.Suffix("RETURNING " + columns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected bin request repository update error: %w", err)
	}

	requestDB, err := scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missingRowError(ctx, *modifyDB.ID, modifyDB.ExpectedStatus != nil)
		}
		return nil, fmt.Errorf("unexpected bin request repository update error: %w", err)
	}

	return ToDomain(requestDB), nil
}

func (r *Repository) missingRowError(ctx context.Context, id string, guarded bool) error {
	if !guarded {
		return entities.ErrBinRequestNotFound
	}
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return entities.ErrStatusChanged
	}
	return entities.ErrBinRequestNotFound
}

func scan(row pgx.Row) (*BinRequestDB, error) {
	var b BinRequestDB
	err := row.Scan(
		&b.ID,
		&b.ResidentID,
		&b.RequestedBinType,
		&b.PreferredDeliveryDate,
		&b.Notes,
		&b.AddressLine,
		&b.Street,
		&b.City,
		&b.PostalCode,
		&b.Latitude,
		&b.Longitude,
		&b.Status,
		&b.AssignedBinID,
		&b.DeliveryID,
		&b.PaymentVerified,
		&b.ApprovedBy,
		&b.ApprovedAt,
		&b.RejectionReason,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

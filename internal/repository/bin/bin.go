package bin

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

const columns = `id, bin_type, capacity, current_level, latitude, longitude, address,
	assigned_to, created_by, status, delivered_at, activated_at, last_emptied,
	created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, bin entities.SmartBin) (*entities.SmartBin, error) {
	binDB := FromDomain(&bin)

	query := `
		INSERT INTO smart_bins (id, bin_type, capacity, current_level, latitude, longitude, address,
			assigned_to, created_by, status, delivered_at, activated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + columns

	created, err := scan(r.querier.QueryRow(
		ctx,
		query,
		binDB.ID,
		binDB.BinType,
		binDB.Capacity,
		binDB.CurrentLevel,
		binDB.Latitude,
		binDB.Longitude,
		binDB.Address,
		binDB.AssignedTo,
		binDB.CreatedBy,
		binDB.Status,
		binDB.DeliveredAt,
		binDB.ActivatedAt,
	))
	if err != nil {
		return nil, repository.InsertError(err, "smart_bins")
	}

	return ToDomain(created), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.SmartBin, error) {
	query := `SELECT ` + columns + ` FROM smart_bins WHERE id = $1`

	binDB, err := scan(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrSmartBinNotFound
		}
		return nil, fmt.Errorf("unexpected smart bin repository getbyid error: %w", err)
	}

	return ToDomain(binDB), nil
}

func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM smart_bins WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("unexpected smart bin repository exists error: %w", err)
	}
	return exists, nil
}

// FindAvailableByType returns the oldest available bin of the given type.
func (r *Repository) FindAvailableByType(ctx context.Context, binType entities.BinType) (*entities.SmartBin, error) {
	query, args, err := qb.
		Select(columns).
		From("smart_bins").
		Where(sq.Eq{
			"status":   entities.BinAvailable.String(),
			"bin_type": binType.String(),
		}).
		OrderBy("created_at", "id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected smart bin repository find available error: %w", err)
	}

	binDB, err := scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrSmartBinNotFound
		}
		return nil, fmt.Errorf("unexpected smart bin repository find available error: %w", err)
	}

	return ToDomain(binDB), nil
}

func (r *Repository) ListActiveByOwner(ctx context.Context, residentID string) ([]entities.SmartBin, error) {
	query, args, err := qb.
		Select(columns).
		From("smart_bins").
		Where(sq.Eq{
			"assigned_to": residentID,
			"status":      entities.BinActive.String(),
		}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected smart bin repository list active error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected smart bin repository list active error: %w", err)
	}
	defer rows.Close()

	bins := make([]entities.SmartBin, 0, 4)
	for rows.Next() {
		binDB, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected smart bin repository scan error: %w", err)
		}
		bins = append(bins, *ToDomain(binDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected smart bin repository rows error: %w", err)
	}

	return bins, nil
}

// Update applies the set fields. With ExpectedStatus it only touches a row still in that status.
func (r *Repository) Update(ctx context.Context, modify entities.SmartBinModify) (*entities.SmartBin, error) {
	modifyDB := FromDomainModify(&modify)
	if modifyDB.ID == nil {
		return nil, fmt.Errorf("%w: smart bin id is required", entities.ErrValidation)
	}

	builder := qb.Update("smart_bins")

	if modifyDB.Status != nil {
		builder = builder.Set("status", modifyDB.Status)
	}
	if modifyDB.AssignedTo != nil {
		builder = builder.Set("assigned_to", modifyDB.AssignedTo)
	}
	if modifyDB.Latitude != nil {
		builder = builder.Set("latitude", modifyDB.Latitude)
	}
	if modifyDB.Longitude != nil {
		builder = builder.Set("longitude", modifyDB.Longitude)
	}
	if modifyDB.Address != nil {
		builder = builder.Set("address", modifyDB.Address)
	}
	if modifyDB.Capacity != nil {
		builder = builder.Set("capacity", modifyDB.Capacity)
	}
	if modifyDB.CurrentLevel != nil {
		builder = builder.Set("current_level", modifyDB.CurrentLevel)
	}
	if modifyDB.DeliveredAt != nil {
		builder = builder.Set("delivered_at", modifyDB.DeliveredAt)
	}
	if modifyDB.ActivatedAt != nil {
		builder = builder.Set("activated_at", modifyDB.ActivatedAt)
	}
	if modifyDB.LastEmptied != nil {
		builder = builder.Set("last_emptied", modifyDB.LastEmptied)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": modifyDB.ID})

	if modifyDB.ExpectedStatus != nil {
		builder = builder.Where(sq.Eq{"status": modifyDB.ExpectedStatus})
	}

	query, args, err := builder.Suffix("RETURNING " + columns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected smart bin repository update error: %w", err)
	}

	binDB, err := scan(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missingRowError(ctx, *modifyDB.ID, modifyDB.ExpectedStatus != nil)
		}
		return nil, fmt.Errorf("unexpected smart bin repository update error: %w", err)
	}

	return ToDomain(binDB), nil
}

func (r *Repository) missingRowError(ctx context.Context, id string, guarded bool) error {
	if !guarded {
		return entities.ErrSmartBinNotFound
	}
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return entities.ErrStatusChanged
	}
	return entities.ErrSmartBinNotFound
}

func scan(row pgx.Row) (*SmartBinDB, error) {
	var b SmartBinDB
	err := row.Scan(
		&b.ID,
		&b.BinType,
		&b.Capacity,
		&b.CurrentLevel,
		&b.Latitude,
		&b.Longitude,
		&b.Address,
		&b.AssignedTo,
		&b.CreatedBy,
		&b.Status,
		&b.DeliveredAt,
		&b.ActivatedAt,
		&b.LastEmptied,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

package user

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"waste-service/internal/entities"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const columns = `id, name, email, role, active, device_token, created_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE id = $1`

	userDB, err := scan(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("unexpected user repository getbyid error: %w", err)
	}

	return ToDomain(userDB), nil
}

func (r *Repository) ListActiveByRoles(ctx context.Context, roles []entities.Role) ([]entities.User, error) {
	roleNames := make([]string, 0, len(roles))
	for _, role := range roles {
		roleNames = append(roleNames, role.String())
	}

	query, args, err := qb.
		Select(columns).
		From("users").
		Where(sq.Eq{"role": roleNames, "active": true}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected user repository list by roles error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected user repository list by roles error: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0, 8)
	for rows.Next() {
		userDB, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected user repository scan error: %w", err)
		}
		users = append(users, *ToDomain(userDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected user repository rows error: %w", err)
	}

	return users, nil
}

func (r *Repository) UpdateDeviceToken(ctx context.Context, userID, token string) error {
	result, err := r.querier.Exec(ctx, `UPDATE users SET device_token = $2 WHERE id = $1`, userID, token)
	if err != nil {
		return fmt.Errorf("unexpected user repository update device token error: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}

func scan(row pgx.Row) (*UserDB, error) {
	var u UserDB
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.Active,
		&u.DeviceToken,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

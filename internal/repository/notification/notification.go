package notification

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"waste-service/internal/entities"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	columns = `id, recipient_id, type, title, message, priority, channels,
	related_kind, related_id, dispatched_at, created_at`

	insertQuery = `
		INSERT INTO notifications (id, recipient_id, type, title, message, priority, channels,
			related_kind, related_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + columns
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, notification entities.Notification) (*entities.Notification, error) {
	created, err := scan(r.querier.QueryRow(ctx, insertQuery, insertArgs(FromDomain(&notification))...))
	if err != nil {
		return nil, fmt.Errorf("unexpected notification repository create error: %w", err)
	}
	return ToDomain(created), nil
}

// CreateBatch inserts all notifications in one round trip.
func (r *Repository) CreateBatch(ctx context.Context, notifications []entities.Notification) ([]entities.Notification, error) {
	if len(notifications) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for i := range notifications {
		batch.Queue(insertQuery, insertArgs(FromDomain(&notifications[i]))...)
	}

	results := r.querier.SendBatch(ctx, batch)
	defer results.Close()

	created := make([]entities.Notification, 0, len(notifications))
	for range notifications {
		notificationDB, err := scan(results.QueryRow())
		if err != nil {
			return nil, fmt.Errorf("unexpected notification repository create batch error: %w", err)
		}
		created = append(created, *ToDomain(notificationDB))
	}

	return created, nil
}

func (r *Repository) ListByRecipient(ctx context.Context, recipientID string, limit uint64) ([]entities.Notification, error) {
	return r.list(ctx, qb.
		Select(columns).
		From("notifications").
		Where(sq.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC", "id").
		Limit(limit))
}

// ListPending returns undispatched notifications, oldest first.
func (r *Repository) ListPending(ctx context.Context, limit uint64) ([]entities.Notification, error) {
	return r.list(ctx, qb.
		Select(columns).
		From("notifications").
		Where(sq.Eq{"dispatched_at": nil}).
		OrderBy("created_at", "id").
		Limit(limit))
}

func (r *Repository) MarkDispatched(ctx context.Context, ids []string, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := qb.
		Update("notifications").
		Set("dispatched_at", at).
		Where(sq.Eq{"id": ids, "dispatched_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected notification repository mark dispatched error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("unexpected notification repository mark dispatched error: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *Repository) list(ctx context.Context, builder sq.SelectBuilder) ([]entities.Notification, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected notification repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected notification repository list error: %w", err)
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0, 16)
	for rows.Next() {
		notificationDB, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected notification repository scan error: %w", err)
		}
		notifications = append(notifications, *ToDomain(notificationDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected notification repository rows error: %w", err)
	}

	return notifications, nil
}

func insertArgs(n *NotificationDB) []any {
	return []any{
		n.ID,
		n.RecipientID,
		n.Type,
		n.Title,
		n.Message,
		n.Priority,
		n.Channels,
		n.RelatedKind,
		n.RelatedID,
		n.CreatedAt,
	}
}

func scan(row pgx.Row) (*NotificationDB, error) {
	var n NotificationDB
	err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.Priority,
		&n.Channels,
		&n.RelatedKind,
		&n.RelatedID,
		&n.DispatchedAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

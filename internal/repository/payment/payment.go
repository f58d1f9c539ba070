package payment

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"waste-service/internal/entities"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const statusCompleted = "completed"

// Repository answers payment questions from the local payments table.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) HasCompletedPayment(ctx context.Context, residentID string, types []entities.PaymentType) (bool, error) {
	typeNames := make([]string, 0, len(types))
	for _, t := range types {
		typeNames = append(typeNames, t.String())
	}

	subquery, args, err := qb.
		Select("1").
		From("payments").
		Where(sq.Eq{
			"resident_id":  residentID,
			"status":       statusCompleted,
			"payment_type": typeNames,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("unexpected payment repository error: %w", err)
	}

	var exists bool
	err = r.querier.QueryRow(ctx, "SELECT EXISTS ("+subquery+")", args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("unexpected payment repository error: %w", err)
	}

	return exists, nil
}

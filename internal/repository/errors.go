package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"waste-service/internal/entities"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	PgErrForeignKeyViolation = "23503"
	PgErrUniqueViolation     = "23505"
)

// InsertError maps constraint violations of an INSERT into table onto domain errors.
// A unique violation means the generated id is taken, a foreign key violation
// means the row points at a user, bin or request that does not exist.
func InsertError(err error, table string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrUniqueViolation:
			return entities.ErrDuplicateID
		case PgErrForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing row (%s)", entities.ErrNotFound, table, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("unexpected %s insert error: %w", table, err)
}

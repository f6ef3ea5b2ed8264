package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const foreignKeyViolationCode = "23503"

// isForeignKeyViolation checks if the given error is a PostgreSQL
// foreign key constraint violation, which signals a reference to a
// missing row (e.g. metadata for a post that does not exist).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

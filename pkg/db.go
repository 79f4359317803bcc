package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// error codes: https://www.postgresql.org/docs/current/errcodes-appendix.html

// IsUniqueViolationError reports whether err is a postgres unique
// constraint violation, e.g. an already taken username.
func IsUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

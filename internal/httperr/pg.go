package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports a postgres unique index violation, e.g. the
// partial index allowing one live appointment per slot.
func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func IsExclusionConflict(err error) bool {
	return pgCode(err) == pgExclusionViolation
}

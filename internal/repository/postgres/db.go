package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation. The unique indexes are the authoritative guard behind the
// application-level duplicate pre-checks.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

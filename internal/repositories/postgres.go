package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a Postgres unique_violation.
// The create paths pre-check duplicates with a lookup, but that check is
// racy under concurrent requests; the schema-level unique constraints are
// the backstop, and their failures get the same conflict treatment.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

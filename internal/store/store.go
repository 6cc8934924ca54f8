package store

import (
	"errors"

	"modernc.org/sqlite"
)

// ErrDuplicate is returned when an insert violates a unique constraint,
// e.g. adding the same (event, user) contributor pair twice.
var ErrDuplicate = errors.New("duplicate row")

const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqliteConstraintUnique || se.Code() == sqliteConstraintPrimaryKey
	}
	return false
}

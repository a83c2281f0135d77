package apperrors

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// WrapDBError converts a database error into the taxonomy. Unique and
// foreign-key violations become conflicts, missing rows become not
// found, everything else is a storage failure.
func WrapDBError(message string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Message: message}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return &ConflictError{Message: message, Code: string(pqErr.Code)}
		case "23503":
			return &ConflictError{Message: "value is referenced by other resources: " + message, Code: string(pqErr.Code)}
		}
	}

	return &StorageError{Message: message, Err: err}
}

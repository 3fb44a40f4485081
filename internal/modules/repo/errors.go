package repo

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrNonIntegerKey = errors.New("key column is not an integer")

	// Mutation validation errors, returned before any statement runs.
	ErrUnknownTable      = errors.New("unknown table")
	ErrInvalidColumn     = errors.New("invalid column name")
	ErrInvalidValue      = errors.New("column value must be a scalar")
	ErrEmptyData         = errors.New("no columns to write")
	ErrKeyColumnMismatch = errors.New("key column does not match table")
)

// IsValidation reports whether err is a mutation input error rather than a
// store failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUnknownTable) ||
		errors.Is(err, ErrInvalidColumn) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrEmptyData) ||
		errors.Is(err, ErrKeyColumnMismatch)
}

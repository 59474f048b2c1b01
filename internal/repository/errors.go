package repository

import "errors"

var (
	// ErrNotFound is returned when a requested run doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a run with the same ID already exists
	ErrConflict = errors.New("conflict: run already exists")

	// ErrForeignKeyViolation is returned when entries reference a missing run
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrConstraint is returned when a stored value is outside its allowed set
	ErrConstraint = errors.New("constraint violation")
)

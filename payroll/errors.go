/*
errors.go - Centralized error types for the payroll pipeline

ERROR CATEGORIES:
  1. Validation errors - a record may not be written
  2. Malformed records - a stored line cannot be decoded (skipped on read)
  3. Persistence warnings - an append failed; the session keeps going

None of these is fatal to a session or a report.

SEE ALSO:
  - codec.go:  Produces MalformedError
  - ledger.go: Produces PersistenceWarning
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRecord wraps every write-path validation failure.
	ErrInvalidRecord = errors.New("invalid record")

	ErrEmptyName     = errors.New("name cannot be empty")
	ErrNameDelimiter = errors.New("name cannot contain '|' or line breaks")
	ErrDateDelimiter = errors.New("date cannot contain '|' or line breaks")
	ErrNameTooLong   = errors.New("name is too long")
	ErrDateTooLong   = errors.New("date is too long")
	ErrNegativeHours = errors.New("hours must be a non-negative number")
	ErrNegativeRate  = errors.New("rate must be a non-negative number")
	ErrTaxRateRange  = errors.New("tax rate must be between 0 and 1")

	// ErrMalformed is returned when a stored line cannot be decoded.
	ErrMalformed = errors.New("malformed record")

	// ErrPersistence is returned when a record could not be appended.
	ErrPersistence = errors.New("record not persisted")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
}

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MalformedError describes why a line was rejected by Decode.
type MalformedError struct {
	Reason string
	Fields int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed record: %s (%d fields)", e.Reason, e.Fields)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// PersistenceWarning reports a failed append. The record was entered but
// is absent from the store, so later reports will not include it.
type PersistenceWarning struct {
	Record Record
	Err    error
}

func (w *PersistenceWarning) Error() string {
	return fmt.Sprintf("record for %q not saved: %v", w.Record.Name, w.Err)
}

func (w *PersistenceWarning) Unwrap() []error {
	return []error{ErrPersistence, w.Err}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

func IsMalformed(err error) bool   { return errors.Is(err, ErrMalformed) }
func IsPersistence(err error) bool { return errors.Is(err, ErrPersistence) }
func IsInvalid(err error) bool     { return errors.Is(err, ErrInvalidRecord) }

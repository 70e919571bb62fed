package arbor

import (
	"errors"
	"fmt"
)

// ValidationError rejects a whole batch: nothing from the batch is
// applied. ItemID identifies the offending item when the rule is
// item-scoped and is empty for batch-level rules.
type ValidationError struct {
	ItemID string
	Rule   string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.ItemID == "" {
		return fmt.Sprintf("validation failed: %s", e.Rule)
	}
	return fmt.Sprintf("validation failed: item %s: %s", e.ItemID, e.Rule)
}

// NotFoundError reports a read or delete target that does not exist
// or was previously deleted
type NotFoundError struct {
	ID string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.ID)
}

// StoreError reports a transaction or connectivity failure. The
// enclosing transaction is rolled back, so retrying is always safe.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// storeErr wraps a low-level store failure with the operation it
// interrupted
func storeErr(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

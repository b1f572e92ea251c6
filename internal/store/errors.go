package store

import (
	"errors"
	"fmt"
)

// Common data-access error types
var (
	ErrNotFound    = errors.New("record not found")
	ErrMissingID   = errors.New("record has no id")
	ErrUnavailable = errors.New("table service unavailable")
)

// NotFoundError reports a lookup that matched no stored record
type NotFoundError struct {
	EntityType string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s record '%s' not found", e.EntityType, e.ID)
}

// Is makes NotFoundError match ErrNotFound in errors.Is chains
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// OperationError represents a failed table operation with additional context
type OperationError struct {
	Op  string // Operation that failed (e.g., "GetItem", "Query")
	Key string // Partition key involved in the operation
	Err error  // Underlying error
}

func (e *OperationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s operation failed for key '%s': %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store %s operation failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError
func NewOperationError(op, key string, err error) *OperationError {
	return &OperationError{
		Op:  op,
		Key: key,
		Err: err,
	}
}

// IsNotFound returns true if the error indicates a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects an entity,
	// for example on a check or not-null constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrPoolUnavailable is wrapped by every PoolError.
	ErrPoolUnavailable = errors.New("connection pool unavailable")

	// ErrTodoNotFound indicates that the requested todo does not exist in the store.
	ErrTodoNotFound = fmt.Errorf("%w: todo", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "todo")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// PoolError reports that no connection could be obtained from the pool.
type PoolError struct {
	Err error
}

// Error implements the error interface for PoolError.
func (e *PoolError) Error() string {
	if e.Err == nil {
		return ErrPoolUnavailable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrPoolUnavailable, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PoolError) Unwrap() error {
	return e.Err
}

// Is makes every PoolError match ErrPoolUnavailable.
func (e *PoolError) Is(target error) bool {
	return target == ErrPoolUnavailable
}

// NewPoolError wraps err as a PoolError.
func NewPoolError(err error) *PoolError {
	return &PoolError{Err: err}
}

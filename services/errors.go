// Package services holds the business core: note (service order)
// lifecycle with derived pricing, and the delete guards protecting
// customers and cars that still have dependent records. Each service is
// constructed with an injected *gorm.DB; mutations run in a single
// transaction.
package services

import "fmt"

// NotFoundError marks a read/update/delete target that does not exist.
// The HTTP layer maps it to 404.
type NotFoundError struct {
	Entity string
	Id     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Id)
}

// ConflictError is a delete-guard refusal. Message carries the
// user-facing reason (entity name plus dependent counts) and is the
// only explanation the end user gets. Maps to 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ValidationError marks malformed input caught before persisting
// (negative prices, zero quantities, unknown status). Maps to 422.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StoreError wraps a persistence failure (connectivity, constraint
// violations not otherwise classified). Not retried here. Maps to 500.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

// Package apperr holds the error kinds shared by every progression component.
// Callers branch on kind with the Is* helpers; wrapping with fmt.Errorf("...: %w")
// keeps the kind visible.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is returned for malformed input before any state changes.
type ValidationError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	if ve.Field == "" {
		return fmt.Sprintf("validation failed: %s", ve.Message)
	}
	return fmt.Sprintf("validation failed for %s: %s", ve.Field, ve.Message)
}

// NotFoundError represents an entity not found error
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", nfe.Entity, nfe.ID)
}

// AuthorizationError covers a missing identity, a wrong credential and acting
// on a record owned by someone else.
type AuthorizationError struct {
	Reason string
	// Unauthenticated is set when no identity was presented at all.
	Unauthenticated bool
}

func (ae *AuthorizationError) Error() string {
	return fmt.Sprintf("not authorized: %s", ae.Reason)
}

// ConflictError represents a data conflict error
type ConflictError struct {
	Entity string
	Field  string
	Value  interface{}
	Reason string
}

func (ce *ConflictError) Error() string {
	if ce.Reason != "" {
		return fmt.Sprintf("%s %v: %s", ce.Entity, ce.Value, ce.Reason)
	}
	return fmt.Sprintf("%s with %s %v already exists", ce.Entity, ce.Field, ce.Value)
}

// StorageError wraps a failure of the record store. It is transient from the
// caller's point of view.
type StorageError struct {
	Operation string
	Entity    string
	Err       error
}

func (se *StorageError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", se.Operation, se.Entity, se.Err)
}

func (se *StorageError) Unwrap() error {
	return se.Err
}

func Validation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity string, id interface{}) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Unauthenticated() error {
	return &AuthorizationError{Reason: "no identity", Unauthenticated: true}
}

func Forbidden(reason string) error {
	return &AuthorizationError{Reason: reason}
}

func Conflict(entity string, id interface{}, reason string) error {
	return &ConflictError{Entity: entity, Field: "id", Value: id, Reason: reason}
}

func Storage(operation, entity string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Operation: operation, Entity: entity, Err: err}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}

// IsUnauthenticated reports whether err is an AuthorizationError caused by a
// missing identity rather than a denied one.
func IsUnauthenticated(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target) && target.Unauthenticated
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

// Package ledgererror defines the error taxonomy shared by the ledger core.
// Callers distinguish validation failures, missing records and storage
// failures by type, never by matching message text.
package ledgererror

import (
	"errors"
	"fmt"
)

// ValidationError represents bad caller input. It is never retried and is
// surfaced verbatim to the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError represents a record that does not exist.
// Kind names the record type ("expense", "category", "task", "user").
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// StorageError represents a filesystem or document failure. It is fatal to
// the current operation; no recovery or retry is attempted.
type StorageError struct {
	Op      string // "read", "write", "backup", "initialize"
	Path    string
	Corrupt bool // true when the persisted document is not well-formed
	Err     error
}

func (e *StorageError) Error() string {
	if e.Corrupt {
		return fmt.Sprintf("storage %s failed for %s: corrupt document: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// CategoryErrorKind classifies category registry failures.
type CategoryErrorKind string

const (
	CategoryDuplicate CategoryErrorKind = "duplicate"
	CategoryInUse     CategoryErrorKind = "in-use"
)

// CategoryError represents a category registry constraint violation.
// The in-use kind is a distinguished validation failure preventing deletion.
type CategoryError struct {
	Name string
	Kind CategoryErrorKind
}

func (e *CategoryError) Error() string {
	switch e.Kind {
	case CategoryDuplicate:
		return fmt.Sprintf("category already exists: %s", e.Name)
	case CategoryInUse:
		return fmt.Sprintf("category still referenced by expenses: %s", e.Name)
	}
	return fmt.Sprintf("category error: %s", e.Name)
}

// IsValidation reports whether err is caused by caller input. Category
// constraint violations count as validation failures.
func IsValidation(err error) bool {
	var ve *ValidationError
	var ce *CategoryError
	return errors.As(err, &ve) || errors.As(err, &ce)
}

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsStorage reports whether err is a fatal storage failure.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsCategoryInUse reports whether err is the deletion-blocking in-use case.
func IsCategoryInUse(err error) bool {
	var ce *CategoryError
	return errors.As(err, &ce) && ce.Kind == CategoryInUse
}

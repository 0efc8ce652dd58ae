// Package apperrors holds the typed error kinds used across the engine, in
// the style of the teacher's internal/errors package: small structs with an
// Error() string, meant to be matched with errors.As rather than string
// comparison.
package apperrors

import "fmt"

// NoMatchError means a property had no matching piles in the catalog. The
// caller decides whether that is fatal in context.
type NoMatchError struct {
	Property string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no piles match property %s", e.Property)
}

// ConstraintFailError means the current recursion branch dead-ends: some
// constraint's broken threshold was reached. The builder backtracks.
type ConstraintFailError struct {
	Label string
}

func (e *ConstraintFailError) Error() string {
	return fmt.Sprintf("constraint %q failed", e.Label)
}

// AddRejectedError means adding a pile would exceed the selection's
// required-card cap.
type AddRejectedError struct {
	Pile string
}

func (e *AddRejectedError) Error() string {
	return fmt.Sprintf("cannot add pile %q: selection is full", e.Pile)
}

// ActionExhaustedError means a constraint's action ran out of candidates
// without producing a successful selection.
type ActionExhaustedError struct {
	Label string
}

func (e *ActionExhaustedError) Error() string {
	return fmt.Sprintf("action for constraint %q exhausted its candidates", e.Label)
}

// BadCatalogError is fatal: a base-pile add failed, meaning the catalog is
// missing mandatory groups.
type BadCatalogError struct {
	Reason string
}

func (e *BadCatalogError) Error() string {
	return fmt.Sprintf("catalog is corrupt: %s", e.Reason)
}

// UnknownOptionError is a configuration-boundary error.
type UnknownOptionError struct {
	Option string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option: %s", e.Option)
}

// MissingFileError is a configuration-boundary error.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("missing file %s: %v", e.Path, e.Err)
}

func (e *MissingFileError) Unwrap() error { return e.Err }

// UnknownReferenceError is a configuration-boundary error for a named card,
// group, or box that does not exist in the catalog/box file.
type UnknownReferenceError struct {
	Kind string // "card", "group", or "box"
	Name string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.Name)
}

// InvalidCostSpecError is a configuration-boundary error for a malformed
// cost... interaction string.
type InvalidCostSpecError struct {
	Spec string
}

func (e *InvalidCostSpecError) Error() string {
	return fmt.Sprintf("invalid cost spec: %s", e.Spec)
}

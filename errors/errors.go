// Package errors is the error package used throughout netlens.
//
// It re-exports github.com/cockroachdb/errors so call sites get stack traces,
// hints and details without importing the library directly, and it declares
// the sentinel errors of the graph engine:
//
//	ErrIntegrity            a link, selection or component references an unknown id
//	ErrEmptyResult          a filter produced no visible nodes (a valid state)
//	ErrInvalidModeParameter a filter was rejected before it touched the dataset
//
// Wrap sentinels to add context and test them with Is:
//
//	err := errors.Wrapf(errors.ErrInvalidModeParameter, "min %d > max %d", min, max)
//	if errors.Is(err, errors.ErrInvalidModeParameter) { ... }
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// AssertionFailedf reports a broken internal invariant.
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors. Compare with Is, never with ==, since most of them reach
// callers wrapped.
var (
	// ErrIntegrity marks references to node, link or component ids that are
	// not present in the loaded dataset. The offending entity is dropped.
	ErrIntegrity = New("integrity violation")

	// ErrEmptyResult marks a filter that left zero nodes visible.
	ErrEmptyResult = New("empty result")

	// ErrInvalidModeParameter marks a filter mode rejected before mutation.
	ErrInvalidModeParameter = New("invalid mode parameter")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")
)

// IsIntegrityError reports whether err is or wraps ErrIntegrity.
func IsIntegrityError(err error) bool {
	return err != nil && Is(err, ErrIntegrity)
}

// IsEmptyResult reports whether err is or wraps ErrEmptyResult.
func IsEmptyResult(err error) bool {
	return err != nil && Is(err, ErrEmptyResult)
}

// IsInvalidModeParameter reports whether err is or wraps ErrInvalidModeParameter.
func IsInvalidModeParameter(err error) bool {
	return err != nil && Is(err, ErrInvalidModeParameter)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidRequest, format, args...)
}

// Package fcerrors provides error handling for fastcraft.
//
// It re-exports github.com/cockroachdb/errors and defines the sentinel
// errors the compact pipeline classifies failures with. Wrap a sentinel
// with Wrap/Wrapf to add context while preserving the class, and test
// with the Is* helpers.
package fcerrors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// User-facing hints
var (
	WithHint  = crdb.WithHint
	WithHintf = crdb.WithHintf
)

// Sentinel errors for the pipeline's failure classes.
// NotFound and InvalidArgument are detected before any walking begins.
// PermissionDenied and Parse are tolerated per-subtree/per-file.
// IO (unwritable destination) is the only fatal condition after work
// has been done.
var (
	// ErrNotFound indicates the starting path or target does not exist.
	ErrNotFound = New("not found")

	// ErrPermissionDenied indicates a directory could not be read.
	ErrPermissionDenied = New("permission denied")

	// ErrParse indicates a source file's syntax tree could not be built.
	ErrParse = New("parse error")

	// ErrInvalidArgument indicates an unsupported flag value or a
	// combination of mutually exclusive flags.
	ErrInvalidArgument = New("invalid argument")

	// ErrIO indicates the output destination is unwritable.
	ErrIO = New("io error")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsPermissionDenied reports whether err is or wraps ErrPermissionDenied.
func IsPermissionDenied(err error) bool {
	return err != nil && Is(err, ErrPermissionDenied)
}

// IsParse reports whether err is or wraps ErrParse.
func IsParse(err error) bool {
	return err != nil && Is(err, ErrParse)
}

// IsInvalidArgument reports whether err is or wraps ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return err != nil && Is(err, ErrInvalidArgument)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return err != nil && Is(err, ErrIO)
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// InvalidArgumentf creates an invalid-argument error with a formatted message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidArgument, Newf(format, args...).Error())
}

// WrapParse wraps an error as a per-file parse error with context.
func WrapParse(err error, context string) error {
	return Wrap(Wrap(ErrParse, err.Error()), context)
}

// WrapIO wraps an error as a fatal IO error with context.
func WrapIO(err error, context string) error {
	return Wrap(Wrap(ErrIO, err.Error()), context)
}

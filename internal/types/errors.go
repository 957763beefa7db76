// Package types contains shared types used across multiple packages to avoid import cycles.
package types

import "errors"

// Error classes surfaced by the loader, preprocessor and splitters.
// Callers match them with errors.Is; every returned error wraps exactly one.
var (
	// ErrDataAccess means the input file is missing or unreadable.
	ErrDataAccess = errors.New("data access error")
	// ErrParse means the input is not well-formed delimited text, or a cell
	// could not be converted to the type its feature group requires.
	ErrParse = errors.New("parse error")
	// ErrSchema means a required column is absent.
	ErrSchema = errors.New("schema error")
	// ErrCardinality means a stratified split is impossible with the given classes.
	ErrCardinality = errors.New("cardinality error")
	// ErrShapeMismatch means features and labels disagree on row count.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrNotFitted means a transform was applied before Fit.
	ErrNotFitted = errors.New("preprocessor not fitted")
	// ErrInvalidArgument means a parameter is out of range.
	ErrInvalidArgument = errors.New("invalid argument")
)

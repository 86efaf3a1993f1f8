/*
errors.go - Centralized error types for the star-schema core

PURPOSE:
  All error types in one place for consistency and discoverability.

ERROR CATEGORIES:
  1. Configuration errors - invalid generation parameters, rejected
     synchronously before any data is produced
  2. Referential-integrity errors - a store or fact referencing an
     unknown dimension key; generation fails fast rather than emitting
     orphaned rows

  There is no retryable category: the core does no I/O. Degenerate
  aggregation inputs (empty fact subsets) are NOT errors - the metrics
  package resolves them to defined zero values.

USAGE:
  Callers can branch on the sentinels:

    if errors.Is(err, star.ErrInvalidConfig) { ... }

SEE ALSO:
  - config.go: Validate returns ConfigError values
  - facts.go, dataset.go: return ReferentialIntegrityError values
*/
package star

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidConfig is returned when generation parameters fail validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownDimension is returned when a record references a dimension
	// key that does not exist.
	ErrUnknownDimension = errors.New("unknown dimension reference")

	// ErrEmptyDimension is returned when a required dimension set is empty.
	ErrEmptyDimension = errors.New("empty dimension set")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigError describes a single invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// ReferentialIntegrityError describes a dangling dimension reference.
type ReferentialIntegrityError struct {
	Dimension    string // "brand", "store", "method"
	Key          int
	ReferencedBy string // e.g. "store 402", "fact ORD-100031"
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("referential integrity: %s %d referenced by %s does not exist",
		e.Dimension, e.Key, e.ReferencedBy)
}

func (e *ReferentialIntegrityError) Unwrap() error {
	return ErrUnknownDimension
}

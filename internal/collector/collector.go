// Package collector defines the Collector interface and the hardware
// collectors for the six inventory components.
package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guliveer/hwinfo/internal/models"
)

// ErrUnavailable is reported for a selected component that has no collector
// on the current platform.
var ErrUnavailable = errors.New("collector not available on this platform")

// Collector is the interface that all hardware collectors must implement.
// Each collector gathers the record of exactly one component.
type Collector interface {
	// Name returns the component this collector reports on.
	Name() models.Component

	// Collect gathers the component record at the given verbosity.
	// A failing sub-query returns a partial record together with an error;
	// a failing primary query returns a nil record and an error.
	Collect(ctx context.Context, verbosity models.Verbosity) (any, error)

	// IsAvailable checks if this collector can run on the current platform.
	// Collectors that return false will not be registered.
	IsAvailable() bool
}

// CollectionError is a recoverable, per-component failure. It is embedded in
// the report and never aborts the run.
type CollectionError struct {
	Component models.Component
	Err       error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collect %s: %v", e.Component, e.Err)
}

func (e *CollectionError) Unwrap() error { return e.Err }

// Cause returns the human-readable cause without the component prefix.
func (e *CollectionError) Cause() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

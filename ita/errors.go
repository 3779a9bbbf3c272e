// SPDX-License-Identifier: MIT

package ita

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is the umbrella configuration error. Every validation failure
	// matches it under errors.Is alongside its specific sentinel.
	ErrConfig = errors.New("ita: configuration error")

	// ErrNilInput indicates a nil graph or demand matrix.
	ErrNilInput = errors.New("ita: nil graph or demand")

	// ErrEmptySchedule indicates a schedule without proportions.
	ErrEmptySchedule = errors.New("ita: schedule is empty")

	// ErrBadProportion indicates a proportion outside (0, 1].
	ErrBadProportion = errors.New("ita: schedule proportion must be in (0, 1]")

	// ErrScheduleSum indicates proportions whose sum is not 1 within ScheduleTolerance.
	ErrScheduleSum = errors.New("ita: schedule proportions must sum to 1")

	// ErrBadDemandScale indicates a non-positive or non-finite demand scale.
	ErrBadDemandScale = errors.New("ita: demand scale must be positive and finite")

	// ErrBadWorkers indicates a worker count below 1.
	ErrBadWorkers = errors.New("ita: workers must be at least 1")

	// ErrUnknownVertex indicates an OD origin or destination missing from the graph.
	ErrUnknownVertex = errors.New("ita: OD vertex not in graph")

	// ErrNegativeCost indicates a negative or NaN base cost on an edge.
	ErrNegativeCost = errors.New("ita: base cost must be non-negative")
)

// configError wraps ErrConfig and the specific cause.
func configError(cause error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w: %s", ErrConfig, cause, fmt.Sprintf(format, args...))
}

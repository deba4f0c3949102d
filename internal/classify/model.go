package classify

import (
	"time"

	"github.com/linnemanlabs/trigon/internal/triangle"
)

// Measurement tells which numeric domain a triple was classified in.
type Measurement string

const (
	// MeasurementInteger means every side parsed as a non-negative integer
	MeasurementInteger Measurement = "integer"

	// MeasurementFractional means at least one side had a fractional form
	MeasurementFractional Measurement = "fractional"
)

// Verdict is the outcome of evaluating one side-length triple.
type Verdict struct {
	Measurement Measurement   `json:"measurement"`
	Valid       bool          `json:"valid"`
	Kind        triangle.Kind `json:"kind,omitempty"`
	Reason      string        `json:"reason,omitempty"`
}

// Record is a persisted verdict.
type Record struct {
	ID        string    `json:"id"`
	Sides     [3]string `json:"sides"`
	CreatedAt time.Time `json:"created_at"`
	Verdict
}

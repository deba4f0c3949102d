package triangle

import "errors"

// Sentinel errors naming why a triple is not a triangle.
var (
	ErrZeroSide           = errors.New("side length must be positive")
	ErrInequalityViolated = errors.New("one side exceeds the sum of the other two")
)

// Reason labels, stable for logs, metrics and stored records.
const (
	ReasonZeroSide           = "zero_side"
	ReasonInequalityViolated = "inequality_violated"
)

// Validate reports why sides cannot form a triangle, or nil when Build would
// succeed. The zero-side check runs first.
func Validate[T Measurement](sides [3]T) error {
	var zero T
	for _, s := range sides {
		// !(s > 0) also rejects NaN
		if !(s > zero) {
			return ErrZeroSide
		}
	}

	a, b, c := sides[0], sides[1], sides[2]
	if exceeds(c, a, b) || exceeds(b, a, c) || exceeds(a, b, c) {
		return ErrInequalityViolated
	}
	return nil
}

// Reason maps a Validate error to its label, or "" for anything else.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrZeroSide):
		return ReasonZeroSide
	case errors.Is(err, ErrInequalityViolated):
		return ReasonInequalityViolated
	default:
		return ""
	}
}

// exceeds reports x + y < z for positive operands. A sum that wrapped is
// larger than any T, so it cannot be exceeded.
func exceeds[T Measurement](z, x, y T) bool {
	s := x + y
	if s < x {
		return false
	}
	return s < z
}

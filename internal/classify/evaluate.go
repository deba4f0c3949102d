package classify

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/linnemanlabs/trigon/internal/triangle"
)

var (
	// ErrBadMeasurement means a side is not a finite, non-negative number.
	ErrBadMeasurement = errors.New("side is not a non-negative number")

	// ErrFractionalDisabled means a side has a fractional form but only
	// integral measurements are accepted.
	ErrFractionalDisabled = errors.New("fractional sides are disabled")
)

// Evaluate parses three side lengths and classifies them. Integral text is
// evaluated as uint64; any fractional side switches the whole triple to
// float64, which requires allowFractional. A triple that is not a triangle
// is a valid Verdict with Valid=false, not an error.
func Evaluate(sides [3]string, allowFractional bool) (Verdict, error) {
	var ints [3]uint64
	integral := true
	for i, s := range sides {
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		switch {
		case errors.Is(err, strconv.ErrRange):
			// too large for uint64 wherever it sits in the triple
			return Verdict{}, fmt.Errorf("side %d %q: %w", i+1, s, ErrBadMeasurement)
		case err != nil:
			integral = false
		default:
			ints[i] = n
		}
	}
	if integral {
		return verdictFor(MeasurementInteger, ints), nil
	}

	var floats [3]float64
	for i, s := range sides {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Signbit(f) {
			return Verdict{}, fmt.Errorf("side %d %q: %w", i+1, s, ErrBadMeasurement)
		}
		floats[i] = f
	}
	if !allowFractional {
		return Verdict{}, ErrFractionalDisabled
	}
	return verdictFor(MeasurementFractional, floats), nil
}

func verdictFor[T triangle.Measurement](m Measurement, sides [3]T) Verdict {
	v := Verdict{Measurement: m}
	tri, ok := triangle.Build(sides)
	if !ok {
		v.Reason = triangle.Reason(triangle.Validate(sides))
		return v
	}
	v.Valid = true
	v.Kind = tri.Kind()
	return v
}

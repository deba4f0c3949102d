// Package triangle validates side-length triples and classifies the
// triangles they describe.
//
// The package is transport- and persistence-agnostic. A Triangle can only be
// obtained from Build, so every live value satisfies the positive-side and
// triangle-inequality invariants.
package triangle

import "fmt"

// Measurement is any numeric type usable as a side length.
type Measurement interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Kind names the classification of a valid triangle.
type Kind string

const (
	// KindEquilateral has three equal sides
	KindEquilateral Kind = "equilateral"

	// KindIsosceles has exactly two equal sides
	KindIsosceles Kind = "isosceles"

	// KindScalene has no equal sides
	KindScalene Kind = "scalene"
)

// Triangle is an immutable, validated triple of side lengths.
type Triangle[T Measurement] struct {
	a, b, c T
}

// Build returns the triangle described by sides, or ok=false when any side is
// not strictly positive or one side is longer than the other two combined.
// Degenerate triangles (one side equal to the sum of the others) are accepted.
func Build[T Measurement](sides [3]T) (Triangle[T], bool) {
	if Validate(sides) != nil {
		return Triangle[T]{}, false
	}
	return Triangle[T]{a: sides[0], b: sides[1], c: sides[2]}, true
}

// Sides returns the side lengths in the order they were given to Build.
func (t Triangle[T]) Sides() [3]T {
	return [3]T{t.a, t.b, t.c}
}

// IsEquilateral reports whether all three sides are equal.
func (t Triangle[T]) IsEquilateral() bool {
	return t.a == t.b && t.b == t.c
}

// IsIsosceles reports whether exactly two sides are equal.
func (t Triangle[T]) IsIsosceles() bool {
	return !t.IsEquilateral() && (t.a == t.b || t.b == t.c || t.a == t.c)
}

// IsScalene reports whether all three sides differ.
func (t Triangle[T]) IsScalene() bool {
	return !t.IsEquilateral() && !t.IsIsosceles()
}

// Kind returns the single classification that holds for t.
func (t Triangle[T]) Kind() Kind {
	switch {
	case t.IsEquilateral():
		return KindEquilateral
	case t.IsIsosceles():
		return KindIsosceles
	default:
		return KindScalene
	}
}

func (t Triangle[T]) String() string {
	return fmt.Sprintf("%s(%v,%v,%v)", t.Kind(), t.a, t.b, t.c)
}

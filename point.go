package spindex

import (
	stdmath "math"

	"github.com/spindex/spindex/math"
)

// A Point is a coordinate vector in d-dimensional euclidean space.
// The dimensionality is the length of the slice and is fixed for any
// index an instance is stored in.
type Point []float64

// Dims returns the dimensionality of the point.
func (p Point) Dims() int {
	return len(p)
}

// Clone returns a new copy of the point.
func (p Point) Clone() Point {
	if p == nil {
		return nil
	}

	q := make(Point, len(p))
	copy(q, p)

	return q
}

// Equal checks if the point represents the same point or vector.
// The comparison is exact, bitwise per coordinate.
func (p Point) Equal(point Point) bool {
	if len(p) != len(point) {
		return false
	}

	for i := range p {
		if p[i] != point[i] {
			return false
		}
	}

	return true
}

// Bound returns a single point bound of the point.
func (p Point) Bound() Box {
	return Box{Min: p, Max: p}
}

// DistanceTo returns the euclidean distance between the two points.
func (p Point) DistanceTo(point Point) float64 {
	return math.Sqrt(p.DistanceToSquared(point))
}

// DistanceToSquared returns the square of the euclidean distance
// between the two points.
func (p Point) DistanceToSquared(point Point) float64 {
	var d float64
	for i := range p {
		di := p[i] - point[i]
		d += di * di
	}

	return d
}

// Validate checks the point against the dimensionality of an index.
// It returns ErrDimension on a length mismatch and ErrNaN if any
// coordinate is NaN.
func (p Point) Validate(dims int) error {
	if len(p) != dims {
		return ErrDimension
	}

	for _, c := range p {
		if stdmath.IsNaN(c) {
			return ErrNaN
		}
	}

	return nil
}

package spindex

import (
	"github.com/spindex/spindex/math"
)

// A Box represents a closed axis-aligned box in d dimensions with
// Min[i] <= Max[i] for every axis i. A point is stored as the
// degenerate box with Min == Max.
type Box struct {
	Min, Max Point
}

// NewBox validates the corner points against the dimensionality of an
// index and returns the box. It returns ErrDimension or ErrNaN for bad
// coordinates and ErrInvalidBox if min > max on any axis.
func NewBox(min, max Point, dims int) (Box, error) {
	if err := min.Validate(dims); err != nil {
		return Box{}, err
	}
	if err := max.Validate(dims); err != nil {
		return Box{}, err
	}

	for i := range min {
		if min[i] > max[i] {
			return Box{}, ErrInvalidBox
		}
	}

	return Box{Min: min, Max: max}, nil
}

// Clone returns a new copy of the box.
func (b Box) Clone() Box {
	return Box{Min: b.Min.Clone(), Max: b.Max.Clone()}
}

// Equal returns if two boxes are equal.
func (b Box) Equal(box Box) bool {
	return b.Min.Equal(box.Min) && b.Max.Equal(box.Max)
}

// ContainsPoint determines if the point is within the box.
// Points on the boundary are considered within.
func (b Box) ContainsPoint(point Point) bool {
	for i := range point {
		if point[i] < b.Min[i] || b.Max[i] < point[i] {
			return false
		}
	}

	return true
}

// ContainsBox determines if the given box is fully within b.
// Shared boundaries are considered within.
func (b Box) ContainsBox(box Box) bool {
	// if b contains both corners of box, it contains all of box
	return b.ContainsPoint(box.Min) && b.ContainsPoint(box.Max)
}

// Intersects determines if two boxes intersect.
// Returns true if they are touching.
func (b Box) Intersects(box Box) bool {
	for i := range b.Min {
		if b.Max[i] < box.Min[i] || b.Min[i] > box.Max[i] {
			return false
		}
	}

	return true
}

// Extend grows the bound to include the new point.
// The receiver is not modified.
func (b Box) Extend(point Point) Box {
	// already included, no big deal
	if b.ContainsPoint(point) {
		return b
	}

	min := make(Point, len(b.Min))
	max := make(Point, len(b.Max))
	for i := range point {
		min[i] = math.Min(b.Min[i], point[i])
		max[i] = math.Max(b.Max[i], point[i])
	}

	return Box{Min: min, Max: max}
}

// Union extends this box to contain the union of this and the given box.
func (b Box) Union(box Box) Box {
	b = b.Extend(box.Min)
	b = b.Extend(box.Max)

	return b
}

// Center returns the center of the box by averaging the per-axis
// coordinates.
func (b Box) Center() Point {
	c := make(Point, len(b.Min))
	for i := range c {
		c[i] = (b.Min[i] + b.Max[i]) / 2.0
	}

	return c
}

// Area returns the d-dimensional volume of the box.
func (b Box) Area() float64 {
	area := 1.0
	for i := range b.Min {
		area *= b.Max[i] - b.Min[i]
	}

	return area
}

// Margin returns the sum of the edge lengths of the box, doubled.
// It is the d-dimensional generalisation of a rectangle's perimeter.
func (b Box) Margin() float64 {
	var margin float64
	for i := range b.Min {
		margin += b.Max[i] - b.Min[i]
	}

	return 2 * margin
}

// OverlapArea returns the area of the intersection of the two boxes,
// or 0 if they do not intersect.
func (b Box) OverlapArea(box Box) float64 {
	area := 1.0
	for i := range b.Min {
		min := math.Max(b.Min[i], box.Min[i])
		max := math.Min(b.Max[i], box.Max[i])
		if max <= min {
			return 0
		}
		area *= max - min
	}

	return area
}

// DistanceToEdge returns the euclidean distance from the point to the
// closest face of the box, or 0 if the point is inside it.
func (b Box) DistanceToEdge(point Point) float64 {
	return math.Sqrt(b.DistanceToEdgeSquared(point))
}

// DistanceToEdgeSquared returns the square of DistanceToEdge.
func (b Box) DistanceToEdgeSquared(point Point) float64 {
	var d float64
	for i := range point {
		var di float64
		if point[i] < b.Min[i] {
			di = b.Min[i] - point[i]
		} else if point[i] > b.Max[i] {
			di = point[i] - b.Max[i]
		}
		d += di * di
	}

	return d
}

// DistanceToCenter returns the euclidean distance from the point to the
// center of the box.
func (b Box) DistanceToCenter(point Point) float64 {
	return math.Sqrt(b.DistanceToCenterSquared(point))
}

// DistanceToCenterSquared returns the square of DistanceToCenter.
func (b Box) DistanceToCenterSquared(point Point) float64 {
	var d float64
	for i := range point {
		di := (b.Min[i]+b.Max[i])/2.0 - point[i]
		d += di * di
	}

	return d
}

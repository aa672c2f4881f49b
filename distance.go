package spindex

// A Distance is the pluggable metric used by nearest-neighbour queries.
// PointToBox must never overestimate PointToPoint for any point inside
// the box, otherwise best-first search loses its ordering guarantee.
type Distance interface {
	// PointToPoint returns the distance between two points.
	PointToPoint(a, b Point) float64

	// PointToBox returns a lower bound for the distance from p to any
	// point within the box.
	PointToBox(p Point, b Box) float64
}

// EdgeDistance is the euclidean metric: point-to-point distance and
// point-to-closest-box-face distance. It is the default for kNN queries.
type EdgeDistance struct{}

func (EdgeDistance) PointToPoint(a, b Point) float64 {
	return a.DistanceTo(b)
}

func (EdgeDistance) PointToBox(p Point, b Box) float64 {
	return b.DistanceToEdge(p)
}

// EdgeDistanceSquared is the squared euclidean metric. Distances are
// reported squared; the ordering of results is the same as with
// EdgeDistance but without the square roots.
type EdgeDistanceSquared struct{}

func (EdgeDistanceSquared) PointToPoint(a, b Point) float64 {
	return a.DistanceToSquared(b)
}

func (EdgeDistanceSquared) PointToBox(p Point, b Box) float64 {
	return b.DistanceToEdgeSquared(p)
}

// CenterDistance measures to the center of a box instead of its edge.
// It is not a lower bound for the distance to a box's contents, so it
// suits ranged-NN node ranking, not use as a kNN metric.
type CenterDistance struct{}

func (CenterDistance) PointToPoint(a, b Point) float64 {
	return a.DistanceTo(b)
}

func (CenterDistance) PointToBox(p Point, b Box) float64 {
	return b.DistanceToCenter(p)
}

// CenterDistanceSquared is the squared variant of CenterDistance.
type CenterDistanceSquared struct{}

func (CenterDistanceSquared) PointToPoint(a, b Point) float64 {
	return a.DistanceToSquared(b)
}

func (CenterDistanceSquared) PointToBox(p Point, b Box) float64 {
	return b.DistanceToCenterSquared(p)
}

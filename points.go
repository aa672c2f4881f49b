package spindex

// Points represents a set of points in d-dimensional euclidean space.
// It is the input shape for bulk loading point data.
type Points []Point

// Clone returns a new deep copy of the points.
func (ps Points) Clone() Points {
	if ps == nil {
		return nil
	}

	points := make(Points, len(ps))
	for i := range ps {
		points[i] = ps[i].Clone()
	}

	return points
}

// Bound returns a box around the points.
func (ps Points) Bound() Box {
	if len(ps) == 0 {
		return Box{}
	}

	b := ps[0].Bound().Clone()
	for _, p := range ps {
		b = b.Extend(p)
	}

	return b
}

// Equal compares two point sets. Returns true if lengths are the same
// and all points are Equal, and in the same order.
func (ps Points) Equal(points Points) bool {
	if len(ps) != len(points) {
		return false
	}

	for i := range ps {
		if !ps[i].Equal(points[i]) {
			return false
		}
	}

	return true
}

package spindex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBox(t *testing.T) {
	_, err := NewBox(Point{0, 0}, Point{1, 1}, 2)
	assert.NoError(t, err)

	_, err = NewBox(Point{0, 0, 0}, Point{1, 1, 1}, 2)
	assert.ErrorIs(t, err, ErrDimension)

	_, err = NewBox(Point{0, 2}, Point{1, 1}, 2)
	assert.ErrorIs(t, err, ErrInvalidBox)

	_, err = NewBox(Point{0, math.NaN()}, Point{1, 1}, 2)
	assert.ErrorIs(t, err, ErrNaN)

	// zero-extent boxes are points and legal
	_, err = NewBox(Point{3, 4}, Point{3, 4}, 2)
	assert.NoError(t, err)
}

func TestContains(t *testing.T) {
	b := Box{Min: Point{0, 0}, Max: Point{10, 10}}

	cases := []struct {
		name  string
		point Point
		want  bool
	}{
		{"inside", Point{5, 5}, true},
		{"on corner", Point{0, 0}, true},
		{"on edge", Point{10, 5}, true},
		{"outside x", Point{11, 5}, false},
		{"outside y", Point{5, -1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.ContainsPoint(tc.point))
		})
	}

	assert.True(t, b.ContainsBox(Box{Min: Point{1, 1}, Max: Point{9, 9}}))
	assert.True(t, b.ContainsBox(b))
	assert.False(t, b.ContainsBox(Box{Min: Point{1, 1}, Max: Point{11, 9}}))
}

func TestIntersects(t *testing.T) {
	a := Box{Min: Point{0, 0}, Max: Point{10, 10}}

	assert.True(t, a.Intersects(Box{Min: Point{5, 5}, Max: Point{15, 15}}))
	assert.True(t, a.Intersects(Box{Min: Point{10, 10}, Max: Point{20, 20}})) // touching
	assert.False(t, a.Intersects(Box{Min: Point{11, 0}, Max: Point{20, 10}}))
	assert.True(t, a.Intersects(Box{Min: Point{-5, -5}, Max: Point{15, 15}})) // contains a
}

func TestExtendUnion(t *testing.T) {
	b := Box{Min: Point{0, 0}, Max: Point{1, 1}}

	got := b.Extend(Point{3, -2})
	assert.Equal(t, Box{Min: Point{0, -2}, Max: Point{3, 1}}, got)
	// the original is untouched
	assert.Equal(t, Box{Min: Point{0, 0}, Max: Point{1, 1}}, b)

	u := b.Union(Box{Min: Point{-1, 0}, Max: Point{0.5, 4}})
	assert.Equal(t, Box{Min: Point{-1, 0}, Max: Point{1, 4}}, u)
}

func TestAreaMarginCenter(t *testing.T) {
	b := Box{Min: Point{0, 0, 0}, Max: Point{2, 3, 4}}

	assert.Equal(t, 24.0, b.Area())
	assert.Equal(t, 18.0, b.Margin())
	assert.Equal(t, Point{1, 1.5, 2}, b.Center())

	assert.Equal(t, 0.0, Box{Min: Point{1, 1}, Max: Point{1, 5}}.Area())
}

func TestOverlapArea(t *testing.T) {
	a := Box{Min: Point{0, 0}, Max: Point{10, 10}}

	assert.Equal(t, 25.0, a.OverlapArea(Box{Min: Point{5, 5}, Max: Point{15, 15}}))
	assert.Equal(t, 0.0, a.OverlapArea(Box{Min: Point{20, 20}, Max: Point{30, 30}}))
	// touching boxes overlap in a degenerate, zero-area strip
	assert.Equal(t, 0.0, a.OverlapArea(Box{Min: Point{10, 0}, Max: Point{20, 10}}))
	assert.Equal(t, 100.0, a.OverlapArea(a))
}

func TestDistances(t *testing.T) {
	b := Box{Min: Point{0, 0}, Max: Point{10, 10}}

	assert.Equal(t, 0.0, b.DistanceToEdge(Point{5, 5})) // inside
	assert.Equal(t, 3.0, b.DistanceToEdge(Point{13, 5}))
	assert.InDelta(t, math.Sqrt(8), b.DistanceToEdge(Point{12, 12}), 1e-12)

	assert.InDelta(t, math.Sqrt(50), b.DistanceToCenter(Point{0, 0}), 1e-12)

	require.InDelta(t, math.Sqrt(2), Point{2, 3}.DistanceTo(Point{3, 4}), 1e-12)
	assert.Equal(t, 2.0, Point{2, 3}.DistanceToSquared(Point{3, 4}))
}

func TestPointValidate(t *testing.T) {
	assert.NoError(t, Point{1, 2}.Validate(2))
	assert.ErrorIs(t, Point{1, 2}.Validate(3), ErrDimension)
	assert.ErrorIs(t, Point{1, math.NaN()}.Validate(2), ErrNaN)
}

func TestPointsBound(t *testing.T) {
	ps := Points{{1, 5}, {-2, 3}, {4, 0}}
	assert.Equal(t, Box{Min: Point{-2, 0}, Max: Point{4, 5}}, ps.Bound())

	assert.True(t, ps.Equal(ps.Clone()))
	assert.False(t, ps.Equal(ps[:2]))
}

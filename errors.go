package spindex

import "errors"

var (
	// ErrDimension is returned when a key's coordinate count does not
	// match the dimensionality the index was created with.
	ErrDimension = errors.New("spindex: wrong coordinate dimensionality")

	// ErrInvalidBox is returned when a box key has min > max on some axis.
	ErrInvalidBox = errors.New("spindex: box min greater than max")

	// ErrNaN is returned when a key contains a NaN coordinate.
	ErrNaN = errors.New("spindex: NaN coordinate in key")

	// ErrUnsupported is returned by operations an index does not implement.
	ErrUnsupported = errors.New("spindex: operation not supported by this index")
)

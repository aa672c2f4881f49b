// Package spindex provides in-memory spatial indexes over points and
// axis-aligned boxes in any dimension, together with the geometry
// primitives, entry types and iterator contracts the index packages
// share. The indexes themselves live in the quadtree and rtree
// subpackages; both satisfy the map and multimap interfaces defined
// here, so callers can swap one family for the other.
package spindex

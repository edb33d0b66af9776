package geometry

import "errors"

// Sentinel errors for region construction and queries.
var (
	// ErrInvalidGeometry indicates a malformed contour: fewer than three
	// distinct vertices, an open vertex loop, or a region with no
	// additive contour at finalize time.
	ErrInvalidGeometry = errors.New("geometry: invalid contour geometry")
	// ErrFrozenRegion indicates an attempt to modify a region after
	// Finalize.
	ErrFrozenRegion = errors.New("geometry: region is finalized")
	// ErrNotFinalized indicates a query on a region before Finalize.
	ErrNotFinalized = errors.New("geometry: region is not finalized")
)

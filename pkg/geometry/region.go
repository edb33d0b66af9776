package geometry

import (
	"fmt"
	"math"
)

// Op tags how a contour combines with the layers before it.
type Op int

const (
	// OpAdd unions the contour with the running shape.
	OpAdd Op = iota
	// OpSub subtracts the contour's strict interior from the running shape.
	OpSub
)

// String returns the op's DSL spelling.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Region is a frozen shape that supports containment and bounding-box
// queries. Implementations must be safe for concurrent read-only use.
//
// Contains expects len(p) == Dim(); positions produced by the lattice
// generator always satisfy this.
type Region interface {
	// Dim returns the ambient dimension (2 or 3).
	Dim() int
	// Bounds returns the axis-aligned bounding box enclosing the shape.
	// It fails with ErrNotFinalized on a region still under construction.
	Bounds() (lower, upper []float64, err error)
	// Contains reports whether p is inside the shape, boundary included.
	Contains(p []float64) bool
}

// layer is one tagged boolean operation in a PolygonRegion.
type layer struct {
	op      Op
	contour Contour
}

// PolygonRegion is a 2D region assembled from closed polygonal contours
// combined with ordered add/subtract operations. The operation list is
// kept explicit and evaluated left-to-right at query time, so a later
// subtract wins over an earlier add and a later add re-admits area
// removed by an earlier subtract.
//
// A PolygonRegion is mutable until Finalize and read-only afterwards.
type PolygonRegion struct {
	layers    []layer
	finalized bool
	lower     Point2
	upper     Point2
}

// Compile-time interface check.
var _ Region = (*PolygonRegion)(nil)

// NewPolygonRegion returns an empty region ready for AddContour calls.
func NewPolygonRegion() *PolygonRegion {
	return &PolygonRegion{}
}

// AddContour appends a contour combined with the running shape via op.
// The vertex loop must repeat its first vertex as the last one. It
// fails with ErrInvalidGeometry on malformed input and ErrFrozenRegion
// after Finalize.
func (r *PolygonRegion) AddContour(vertices []Point2, op Op) error {
	if r.finalized {
		return fmt.Errorf("%w: cannot add contour", ErrFrozenRegion)
	}
	c, err := NewContour(vertices)
	if err != nil {
		return err
	}
	r.layers = append(r.layers, layer{op: op, contour: c})
	return nil
}

// Finalize freezes the region and computes its bounding box from the
// additive contours. Subtracted contours only carve interior area and
// never extend the bound. Finalize is idempotent: calling it again on a
// finalized region is a no-op. It fails with ErrInvalidGeometry when no
// additive contour was added.
func (r *PolygonRegion) Finalize() error {
	if r.finalized {
		return nil
	}
	first := true
	for _, l := range r.layers {
		if l.op != OpAdd {
			continue
		}
		lo, hi := l.contour.Bounds()
		if first {
			r.lower, r.upper = lo, hi
			first = false
			continue
		}
		r.lower.X = math.Min(r.lower.X, lo.X)
		r.lower.Y = math.Min(r.lower.Y, lo.Y)
		r.upper.X = math.Max(r.upper.X, hi.X)
		r.upper.Y = math.Max(r.upper.Y, hi.Y)
	}
	if first {
		return fmt.Errorf("%w: region has no additive contour", ErrInvalidGeometry)
	}
	r.finalized = true
	return nil
}

// Finalized reports whether the region has been frozen.
func (r *PolygonRegion) Finalized() bool {
	return r.finalized
}

// Dim returns 2.
func (r *PolygonRegion) Dim() int {
	return 2
}

// Bounds returns the bounding box of the additive contours. It fails
// with ErrNotFinalized before Finalize.
func (r *PolygonRegion) Bounds() (lower, upper []float64, err error) {
	if !r.finalized {
		return nil, nil, fmt.Errorf("%w: bounds query", ErrNotFinalized)
	}
	return []float64{r.lower.X, r.lower.Y}, []float64{r.upper.X, r.upper.Y}, nil
}

// Contains walks the operation list in insertion order. An additive
// layer containing p (boundary included) marks it inside; a subtractive
// layer strictly containing p marks it outside. Points on a subtracted
// contour's edge lie on the final region's boundary and therefore stay
// inside. Contains reports false on a region that is not finalized.
func (r *PolygonRegion) Contains(p []float64) bool {
	if !r.finalized {
		return false
	}
	q := Point2{X: p[0], Y: p[1]}
	inside := false
	for _, l := range r.layers {
		switch l.op {
		case OpAdd:
			if l.contour.Contains(q) {
				inside = true
			}
		case OpSub:
			if l.contour.ContainsInterior(q) {
				inside = false
			}
		}
	}
	return inside
}

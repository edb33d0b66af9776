package geometry

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Shape2 is a 2D region backed by a signed distance field from
// github.com/deadsy/sdfx, for planar cases built from primitives
// rather than explicit contours. Shapes are immutable and always
// finalized.
type Shape2 struct {
	s sdf.SDF2
}

// Compile-time interface check.
var _ Region = (*Shape2)(nil)

// NewShape2 wraps an arbitrary sdf.SDF2 as a Region.
func NewShape2(s sdf.SDF2) *Shape2 {
	return &Shape2{s: s}
}

// SDF2 returns the underlying signed distance field.
func (s *Shape2) SDF2() sdf.SDF2 {
	return s.s
}

// NewDisc creates a disc of the given radius centered at the origin.
func NewDisc(radius float64) (*Shape2, error) {
	c, err := sdf.Circle2D(radius)
	if err != nil {
		return nil, fmt.Errorf("geometry: disc: %w", err)
	}
	return &Shape2{s: c}, nil
}

// NewRect creates a rectangle of the given full dimensions centered at
// the origin.
func NewRect(x, y float64) (*Shape2, error) {
	b := sdf.Box2D(v2.Vec{X: x, Y: y}, 0)
	return &Shape2{s: b}, nil
}

// Union returns the union of two shapes.
func (s *Shape2) Union(o *Shape2) *Shape2 {
	return &Shape2{s: sdf.Union2D(s.s, o.s)}
}

// Subtract returns the difference s - o.
func (s *Shape2) Subtract(o *Shape2) *Shape2 {
	return &Shape2{s: sdf.Difference2D(s.s, o.s)}
}

// Intersect returns the intersection of two shapes.
func (s *Shape2) Intersect(o *Shape2) *Shape2 {
	return &Shape2{s: sdf.Intersect2D(s.s, o.s)}
}

// Translate moves the shape by (x, y).
func (s *Shape2) Translate(x, y float64) *Shape2 {
	m := sdf.Translate2d(v2.Vec{X: x, Y: y})
	return &Shape2{s: sdf.Transform2D(s.s, m)}
}

// Dim returns 2.
func (s *Shape2) Dim() int {
	return 2
}

// Bounds returns the axis-aligned bounding box of the distance field.
func (s *Shape2) Bounds() (lower, upper []float64, err error) {
	bb := s.s.BoundingBox()
	return []float64{bb.Min.X, bb.Min.Y}, []float64{bb.Max.X, bb.Max.Y}, nil
}

// Contains reports whether p is inside the shape, boundary included.
func (s *Shape2) Contains(p []float64) bool {
	return s.s.Evaluate(v2.Vec{X: p[0], Y: p[1]}) <= Epsilon
}

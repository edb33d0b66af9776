package geometry

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid is a 3D region backed by a signed distance field from
// github.com/deadsy/sdfx. Solids are immutable: the boolean and
// transform combinators return new values. A Solid is always finalized.
type Solid struct {
	s sdf.SDF3
}

// Compile-time interface check.
var _ Region = (*Solid)(nil)

// NewSolid wraps an arbitrary sdf.SDF3 as a Region.
func NewSolid(s sdf.SDF3) *Solid {
	return &Solid{s: s}
}

// SDF3 returns the underlying signed distance field.
func (s *Solid) SDF3() sdf.SDF3 {
	return s.s
}

// NewBox creates a box of the given full dimensions centered at the
// origin.
func NewBox(x, y, z float64) (*Solid, error) {
	b, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("geometry: box: %w", err)
	}
	return &Solid{s: b}, nil
}

// NewSphere creates a sphere of the given radius centered at the origin.
func NewSphere(radius float64) (*Solid, error) {
	b, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("geometry: sphere: %w", err)
	}
	return &Solid{s: b}, nil
}

// NewCylinder creates a cylinder of the given height and radius, with
// its axis along Z, centered at the origin.
func NewCylinder(height, radius float64) (*Solid, error) {
	b, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("geometry: cylinder: %w", err)
	}
	return &Solid{s: b}, nil
}

// Union returns the union of two solids.
func (s *Solid) Union(o *Solid) *Solid {
	return &Solid{s: sdf.Union3D(s.s, o.s)}
}

// Subtract returns the difference s - o.
func (s *Solid) Subtract(o *Solid) *Solid {
	return &Solid{s: sdf.Difference3D(s.s, o.s)}
}

// Intersect returns the intersection of two solids.
func (s *Solid) Intersect(o *Solid) *Solid {
	return &Solid{s: sdf.Intersect3D(s.s, o.s)}
}

// Translate moves the solid by (x, y, z).
func (s *Solid) Translate(x, y, z float64) *Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return &Solid{s: sdf.Transform3D(s.s, m)}
}

// Rotate rotates the solid by Euler angles (degrees) around the X, Y
// and Z axes, applied in that order.
func (s *Solid) Rotate(x, y, z float64) *Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0
	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return &Solid{s: sdf.Transform3D(s.s, m)}
}

// Dim returns 3.
func (s *Solid) Dim() int {
	return 3
}

// Bounds returns the axis-aligned bounding box of the distance field.
func (s *Solid) Bounds() (lower, upper []float64, err error) {
	bb := s.s.BoundingBox()
	return []float64{bb.Min.X, bb.Min.Y, bb.Min.Z},
		[]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}, nil
}

// Contains reports whether p is inside the solid, surface included.
func (s *Solid) Contains(p []float64) bool {
	return s.s.Evaluate(v3.Vec{X: p[0], Y: p[1], Z: p[2]}) <= Epsilon
}

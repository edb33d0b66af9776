package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for vertex coincidence and boundary
// classification.
const Epsilon = 1e-9

// Point2 represents a 2D point or vector.
type Point2 struct {
	X, Y float64
}

// Pt is a convenience function to create a Point2.
func Pt(x, y float64) Point2 {
	return Point2{X: x, Y: y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point2) Sub(q Point2) Point2 {
	return Point2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Cross returns the 2D cross product (scalar).
func (p Point2) Cross(q Point2) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Dot returns the dot product of two vectors.
func (p Point2) Dot(q Point2) float64 {
	return p.X*q.X + p.Y*q.Y
}

// coincident reports whether two points are equal within Epsilon.
func coincident(a, b Point2) bool {
	return math.Abs(a.X-b.X) <= Epsilon && math.Abs(a.Y-b.Y) <= Epsilon
}

// Contour is a closed simple polygon, stored without the duplicated
// closing vertex. A Contour is immutable once built.
//
// Simplicity (absence of self-intersection) is a caller obligation and
// is not validated.
type Contour struct {
	vertices []Point2
}

// NewContour validates and builds a closed contour. The input must
// repeat the first vertex as its last (within Epsilon) and contain at
// least three distinct vertices; otherwise ErrInvalidGeometry is
// returned.
func NewContour(vertices []Point2) (Contour, error) {
	if len(vertices) < 4 {
		return Contour{}, fmt.Errorf("%w: contour needs at least 3 distinct vertices plus the closing vertex, got %d", ErrInvalidGeometry, len(vertices))
	}
	first, last := vertices[0], vertices[len(vertices)-1]
	if !coincident(first, last) {
		return Contour{}, fmt.Errorf("%w: contour is not closed: first (%g,%g) != last (%g,%g)", ErrInvalidGeometry, first.X, first.Y, last.X, last.Y)
	}
	// Drop the closing vertex and collapse consecutive duplicates.
	loop := vertices[:len(vertices)-1]
	kept := make([]Point2, 0, len(loop))
	for _, v := range loop {
		if len(kept) > 0 && coincident(kept[len(kept)-1], v) {
			continue
		}
		kept = append(kept, v)
	}
	if len(kept) > 1 && coincident(kept[0], kept[len(kept)-1]) {
		kept = kept[:len(kept)-1]
	}
	if distinctCount(kept) < 3 {
		return Contour{}, fmt.Errorf("%w: contour has fewer than 3 distinct vertices", ErrInvalidGeometry)
	}
	return Contour{vertices: kept}, nil
}

// distinctCount counts pairwise-distinct vertices within Epsilon.
func distinctCount(pts []Point2) int {
	n := 0
	for i, p := range pts {
		dup := false
		for _, q := range pts[:i] {
			if coincident(p, q) {
				dup = true
				break
			}
		}
		if !dup {
			n++
		}
	}
	return n
}

// Vertices returns a copy of the contour's vertex loop, without the
// closing vertex.
func (c Contour) Vertices() []Point2 {
	out := make([]Point2, len(c.vertices))
	copy(out, c.vertices)
	return out
}

// Bounds returns the contour's axis-aligned bounding box.
func (c Contour) Bounds() (lower, upper Point2) {
	lower = c.vertices[0]
	upper = c.vertices[0]
	for _, v := range c.vertices[1:] {
		lower.X = math.Min(lower.X, v.X)
		lower.Y = math.Min(lower.Y, v.Y)
		upper.X = math.Max(upper.X, v.X)
		upper.Y = math.Max(upper.Y, v.Y)
	}
	return lower, upper
}

// OnBoundary reports whether p lies on a contour edge, within Epsilon.
func (c Contour) OnBoundary(p Point2) bool {
	j := len(c.vertices) - 1
	for i := range c.vertices {
		if onSegment(c.vertices[j], c.vertices[i], p) {
			return true
		}
		j = i
	}
	return false
}

// Contains reports whether p is inside the contour, with boundary
// points counting as inside (closed polygon).
func (c Contour) Contains(p Point2) bool {
	if c.OnBoundary(p) {
		return true
	}
	return c.interior(p)
}

// ContainsInterior reports whether p is strictly inside the contour,
// with boundary points counting as outside (open polygon).
func (c Contour) ContainsInterior(p Point2) bool {
	if c.OnBoundary(p) {
		return false
	}
	return c.interior(p)
}

// interior performs a ray-crossing parity test. The caller has already
// excluded boundary points, so edge grazing cannot flip the parity
// inconsistently.
func (c Contour) interior(p Point2) bool {
	inside := false
	j := len(c.vertices) - 1
	for i := range c.vertices {
		a, b := c.vertices[i], c.vertices[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// onSegment reports whether p lies on the segment [a,b] within Epsilon.
func onSegment(a, b, p Point2) bool {
	ab := b.Sub(a)
	ap := p.Sub(a)
	if math.Abs(ab.Cross(ap)) > Epsilon {
		return false
	}
	t := ap.Dot(ab)
	return t >= -Epsilon && t <= ab.Dot(ab)+Epsilon
}

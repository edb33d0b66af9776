package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/sphgen/pkg/geometry"
)

// square returns the closed loop of the axis-aligned square
// [x0,x1]x[y0,y1].
func square(x0, y0, x1, y1 float64) []geometry.Point2 {
	return []geometry.Point2{
		geometry.Pt(x0, y0), geometry.Pt(x0, y1),
		geometry.Pt(x1, y1), geometry.Pt(x1, y0),
		geometry.Pt(x0, y0),
	}
}

// squareRegion builds and finalizes a single-contour region.
func squareRegion(t *testing.T, x0, y0, x1, y1 float64) *geometry.PolygonRegion {
	t.Helper()
	r := geometry.NewPolygonRegion()
	require.NoError(t, r.AddContour(square(x0, y0, x1, y1), geometry.OpAdd))
	require.NoError(t, r.Finalize())
	return r
}

// annulusRegion builds the outer square [0,2]^2 minus the inner square
// [0.5,1.5]^2, in that insertion order.
func annulusRegion(t *testing.T) *geometry.PolygonRegion {
	t.Helper()
	r := geometry.NewPolygonRegion()
	require.NoError(t, r.AddContour(square(0, 0, 2, 2), geometry.OpAdd))
	require.NoError(t, r.AddContour(square(0.5, 0.5, 1.5, 1.5), geometry.OpSub))
	require.NoError(t, r.Finalize())
	return r
}

func positions(ps []Particle) [][]float64 {
	out := make([][]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Position
	}
	return out
}

func TestUnitSquareFourParticles(t *testing.T) {
	g, err := New(squareRegion(t, 0, 0, 1, 1), 0.5)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, g.Counts())

	got := g.Generate()
	require.Len(t, got, 4)

	// Row-major, last axis fastest.
	want := [][]float64{
		{0.25, 0.25}, {0.25, 0.75},
		{0.75, 0.25}, {0.75, 0.75},
	}
	for i, p := range got {
		assert.InDeltaSlice(t, want[i], p.Position, 1e-12)
		assert.InDelta(t, 0.25, p.Volume, 1e-12)
	}
}

func TestAnnulusKeepsCarvedEdge(t *testing.T) {
	g, err := New(annulusRegion(t), 1.0)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, g.Counts())

	got := g.Generate()
	require.Len(t, got, 4)

	// The four corner-cell centers sit exactly on the subtracted inner
	// square's corners; the carved hole is open so they survive.
	want := [][]float64{
		{0.5, 0.5}, {0.5, 1.5},
		{1.5, 0.5}, {1.5, 1.5},
	}
	for i, p := range got {
		assert.InDeltaSlice(t, want[i], p.Position, 1e-12)
		assert.InDelta(t, 1.0, p.Volume, 1e-12)
	}
}

func TestAnnulusExcludesInterior(t *testing.T) {
	g, err := New(annulusRegion(t), 0.5)
	require.NoError(t, err)
	require.Equal(t, []int{4, 4}, g.Counts())

	got := g.Generate()
	// 16 candidates; the 4 at (0.75|1.25, 0.75|1.25) fall strictly
	// inside the carved hole.
	require.Len(t, got, 12)
	for _, p := range got {
		x, y := p.Position[0], p.Position[1]
		strictlyInHole := x > 0.5 && x < 1.5 && y > 0.5 && y < 1.5
		assert.False(t, strictlyInHole, "position (%v,%v) lies in the carved hole", x, y)
	}
}

func TestEmittedParticlesSatisfyRegion(t *testing.T) {
	r := geometry.NewPolygonRegion()
	// A concave shape that does not fill its bounding box.
	require.NoError(t, r.AddContour([]geometry.Point2{
		geometry.Pt(0, 0), geometry.Pt(3, 0), geometry.Pt(3, 1),
		geometry.Pt(1, 1), geometry.Pt(1, 3), geometry.Pt(0, 3),
		geometry.Pt(0, 0),
	}, geometry.OpAdd))
	require.NoError(t, r.Finalize())

	g, err := New(r, 0.3)
	require.NoError(t, err)

	lower, upper, err := r.Bounds()
	require.NoError(t, err)

	count := 0
	for p := range g.Particles() {
		count++
		require.True(t, r.Contains(p.Position))
		for i := range p.Position {
			require.GreaterOrEqual(t, p.Position[i], lower[i])
			require.LessOrEqual(t, p.Position[i], upper[i])
		}
		require.InDelta(t, g.CellVolume(), p.Volume, 1e-15)
	}
	require.Greater(t, count, 0)
	// The concave cut must discard some candidates.
	require.Less(t, count, g.Counts()[0]*g.Counts()[1])
}

func TestDeterministicSequence(t *testing.T) {
	g, err := New(annulusRegion(t), 0.3)
	require.NoError(t, err)

	first := g.Generate()
	second := g.Generate()
	require.Equal(t, first, second)
}

func TestLazySequenceStopsEarly(t *testing.T) {
	g, err := New(squareRegion(t, 0, 0, 1, 1), 0.1)
	require.NoError(t, err)

	taken := 0
	for range g.Particles() {
		taken++
		if taken == 3 {
			break
		}
	}
	require.Equal(t, 3, taken)
}

func TestDegenerateSpacing(t *testing.T) {
	r := squareRegion(t, 0, 0, 1, 1)

	_, err := New(r, 0)
	require.ErrorIs(t, err, ErrDegenerateRegion)
	_, err = New(r, -0.5)
	require.ErrorIs(t, err, ErrDegenerateRegion)
}

func TestSpacingLargerThanExtent(t *testing.T) {
	// ceil(1/10) = 1 along both axes: never an error. The lone
	// candidate sits at lower + 0.5*spacing = (5,5), outside the unit
	// square, so the pass legitimately emits nothing.
	g, err := New(squareRegion(t, 0, 0, 1, 1), 10)
	require.NoError(t, err)
	require.Equal(t, []int{1, 1}, g.Counts())
	require.Empty(t, g.Generate())

	// A spacing that still covers the shape keeps emitting.
	g, err = New(squareRegion(t, 0, 0, 1, 1), 1)
	require.NoError(t, err)
	got := g.Generate()
	require.Len(t, got, 1)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, got[0].Position, 1e-12)
}

func TestZeroParticlesIsValid(t *testing.T) {
	// Outer square with its single candidate cell center carved out.
	r := geometry.NewPolygonRegion()
	require.NoError(t, r.AddContour(square(0, 0, 1, 1), geometry.OpAdd))
	require.NoError(t, r.AddContour(square(0.4, 0.4, 0.6, 0.6), geometry.OpSub))
	require.NoError(t, r.Finalize())

	g, err := New(r, 1.0)
	require.NoError(t, err)
	require.Empty(t, g.Generate())
}

func TestNotFinalizedRegionPropagates(t *testing.T) {
	r := geometry.NewPolygonRegion()
	require.NoError(t, r.AddContour(square(0, 0, 1, 1), geometry.OpAdd))

	_, err := New(r, 0.5)
	require.ErrorIs(t, err, geometry.ErrNotFinalized)
}

func TestGeneratorOverSolid(t *testing.T) {
	ball, err := geometry.NewSphere(1)
	require.NoError(t, err)

	g, err := New(ball, 0.25)
	require.NoError(t, err)
	require.Equal(t, []int{8, 8, 8}, g.Counts())

	got := g.Generate()
	require.NotEmpty(t, got)
	for _, p := range got {
		require.True(t, ball.Contains(p.Position))
		require.InDelta(t, 0.25*0.25*0.25, p.Volume, 1e-15)
	}
	// The ball occupies roughly half its bounding box; the corners must
	// have been discarded.
	require.Less(t, len(got), 8*8*8)
}

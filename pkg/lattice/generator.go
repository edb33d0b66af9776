package lattice

import (
	"fmt"
	"iter"
	"math"

	"github.com/chazu/sphgen/pkg/geometry"
)

// Particle is one generated sample: a position inside the region and
// the volume of the lattice cell it represents. Particles are immutable
// once emitted.
type Particle struct {
	Position []float64
	Volume   float64
}

// Generator samples a frozen region on a uniform lattice. It holds no
// mutable state after construction and is safe for concurrent use.
type Generator struct {
	region  geometry.Region
	spacing float64
	lower   []float64
	counts  []int
	volume  float64
}

// New builds a generator for the given region and spacing. It fails
// with ErrDegenerateRegion when spacing is not positive or when the
// lattice count along any axis is zero, and propagates region errors
// such as geometry.ErrNotFinalized.
func New(region geometry.Region, spacing float64) (*Generator, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: spacing %v must be positive", ErrDegenerateRegion, spacing)
	}
	lower, upper, err := region.Bounds()
	if err != nil {
		return nil, fmt.Errorf("lattice: region bounds: %w", err)
	}
	dim := region.Dim()
	counts := make([]int, dim)
	for i := 0; i < dim; i++ {
		counts[i] = int(math.Ceil((upper[i] - lower[i]) / spacing))
		if counts[i] <= 0 {
			return nil, fmt.Errorf("%w: axis %d has zero extent", ErrDegenerateRegion, i)
		}
	}
	return &Generator{
		region:  region,
		spacing: spacing,
		lower:   lower,
		counts:  counts,
		volume:  math.Pow(spacing, float64(dim)),
	}, nil
}

// Spacing returns the lattice spacing.
func (g *Generator) Spacing() float64 {
	return g.spacing
}

// Counts returns the per-axis lattice cell counts.
func (g *Generator) Counts() []int {
	out := make([]int, len(g.counts))
	copy(out, g.counts)
	return out
}

// CellVolume returns the volume carried by every emitted particle,
// spacing raised to the ambient dimension.
func (g *Generator) CellVolume() float64 {
	return g.volume
}

// position returns the cell-center candidate for the given index tuple.
// Cell centers rather than corners avoid boundary-alignment artifacts
// when the region edge coincides with a lattice line.
func (g *Generator) position(idx []int) []float64 {
	p := make([]float64, len(idx))
	for i, k := range idx {
		p[i] = g.lower[i] + (float64(k)+0.5)*g.spacing
	}
	return p
}

// Particles returns a lazy sequence over the generated particles.
// Every ranging of the sequence performs one full fresh pass over the
// lattice; repeated passes yield identical particles in identical
// order. Candidates outside the region are discarded silently, so a
// region much smaller than a lattice cell may yield no particles at
// all, which is a valid outcome.
func (g *Generator) Particles() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		idx := make([]int, len(g.counts))
		for {
			p := g.position(idx)
			if g.region.Contains(p) {
				if !yield(Particle{Position: p, Volume: g.volume}) {
					return
				}
			}
			if !advance(idx, g.counts) {
				return
			}
		}
	}
}

// Generate performs one full pass and collects the particles.
func (g *Generator) Generate() []Particle {
	var out []Particle
	for p := range g.Particles() {
		out = append(out, p)
	}
	return out
}

// advance steps idx to the next index tuple in row-major order, last
// axis fastest. It reports false after the final tuple.
func advance(idx, counts []int) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < counts[i] {
			return true
		}
		idx[i] = 0
	}
	return false
}

package body

import (
	"errors"
	"fmt"

	"github.com/chazu/sphgen/pkg/geometry"
	"github.com/chazu/sphgen/pkg/lattice"
)

// ErrEmptyObserver indicates an observer body declared without points.
var ErrEmptyObserver = errors.New("body: observer needs at least one point")

// Def describes one body of a scenario as plain data. Region and
// Spacing drive the lattice generator; Material and the field closures
// are sampled at the generated positions.
type Def struct {
	Name     string
	Region   geometry.Region
	Spacing  float64
	Material Material

	// Scalars maps field names (e.g. "pressure", "voltage") to their
	// initial-condition closures. Optional.
	Scalars map[string]ScalarField
	// Velocity is the initial velocity closure. Optional; defaults to
	// rest.
	Velocity VectorField

	// Parallel selects the order-preserving parallel generation pass;
	// the worker count follows lattice.GenerateParallel semantics.
	Parallel bool
	Workers  int
}

// Body is a constructed particle set. All slices are indexed by
// particle and share the deterministic ordering of the generator (or,
// for observers, the declaration order of the input points).
type Body struct {
	Name     string
	Material Material
	Observer bool

	Positions  [][]float64
	Volumes    []float64
	Masses     []float64
	Velocities [][]float64
	Scalars    map[string][]float64
}

// Count returns the number of particles in the body.
func (b *Body) Count() int {
	return len(b.Positions)
}

// WeightedPoint is a direct particle specification for observer
// bodies: a position and the weight stored in the volume slot.
type WeightedPoint struct {
	Position []float64
	Weight   float64
}

// New constructs a body by lattice generation. Generator failures
// propagate unchanged; on failure no partial body is returned. A body
// with zero particles is valid, though callers usually treat it as a
// scenario configuration warning.
func New(def Def) (*Body, error) {
	gen, err := lattice.New(def.Region, def.Spacing)
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", def.Name, err)
	}
	var particles []lattice.Particle
	if def.Parallel {
		particles = gen.GenerateParallel(def.Workers)
	} else {
		particles = gen.Generate()
	}

	b := &Body{
		Name:     def.Name,
		Material: def.Material,
	}
	b.attach(particles, def)
	return b, nil
}

// attach fills the per-particle slices from generator output and the
// def's initial-condition closures.
func (b *Body) attach(particles []lattice.Particle, def Def) {
	n := len(particles)
	b.Positions = make([][]float64, n)
	b.Volumes = make([]float64, n)
	b.Masses = make([]float64, n)
	b.Velocities = make([][]float64, n)
	if len(def.Scalars) > 0 {
		b.Scalars = make(map[string][]float64, len(def.Scalars))
		for name := range def.Scalars {
			b.Scalars[name] = make([]float64, n)
		}
	}

	velocity := def.Velocity
	if velocity == nil && def.Region != nil {
		velocity = Still(def.Region.Dim())
	}

	for i, p := range particles {
		b.Positions[i] = p.Position
		b.Volumes[i] = p.Volume
		b.Masses[i] = def.Material.Density * p.Volume
		if velocity != nil {
			b.Velocities[i] = velocity(p.Position)
		}
		for name, f := range def.Scalars {
			b.Scalars[name][i] = f(p.Position)
		}
	}
}

// NewObserver constructs a fictitious body directly from weighted
// points, bypassing lattice generation. Observer particles carry no
// mass and are never advanced by physics; they only record field
// values at their positions.
func NewObserver(name string, points []WeightedPoint) (*Body, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyObserver, name)
	}
	b := &Body{
		Name:     name,
		Observer: true,
	}
	b.Positions = make([][]float64, len(points))
	b.Volumes = make([]float64, len(points))
	b.Masses = make([]float64, len(points))
	b.Velocities = make([][]float64, len(points))
	for i, p := range points {
		b.Positions[i] = p.Position
		b.Volumes[i] = p.Weight
		if len(p.Position) > 0 {
			b.Velocities[i] = make([]float64, len(p.Position))
		}
	}
	return b, nil
}

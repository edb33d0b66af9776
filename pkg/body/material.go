package body

// Material is the physical parameter block attached to a body. For
// weakly compressible fluids Density and SoundSpeed feed the equation
// of state; solids typically leave SoundSpeed and Viscosity zero.
type Material struct {
	Name       string
	Density    float64
	SoundSpeed float64
	Viscosity  float64
}

// ScalarField computes a per-particle initial scalar (pressure,
// voltage, temperature, ...) from the particle position.
type ScalarField func(position []float64) float64

// VectorField computes a per-particle initial vector, typically the
// velocity, from the particle position.
type VectorField func(position []float64) []float64

// Uniform returns a ScalarField with the same value everywhere.
func Uniform(value float64) ScalarField {
	return func([]float64) float64 { return value }
}

// Still returns a VectorField that is zero everywhere in the given
// dimension.
func Still(dim int) VectorField {
	return func([]float64) []float64 { return make([]float64, dim) }
}

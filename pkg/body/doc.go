// Package body turns geometric regions into SPH particle sets.
//
// A scenario declares each body as data: a Def bundles the region, the
// target particle spacing, the material parameter block and the
// initial-condition closures. New runs the lattice generator over the
// region and attaches per-particle mass and initial fields, replacing
// the per-scenario subclass hierarchies of classical SPH drivers with a
// single generic construction path.
//
// Observer (fictitious) bodies bypass lattice generation: they are
// built directly from explicit weighted points and only sample field
// values at fixed positions. Their particle layout is interchangeable
// with generated bodies, so downstream operators treat both uniformly.
//
// A System collects the bodies of one scenario together with the
// computational domain and the body contact topology. The simulation
// clock is explicit state (Clock) threaded through the time-stepping
// call sequence by the caller, never package-level state.
package body

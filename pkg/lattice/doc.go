// Package lattice generates the initial particle positions of an SPH
// body by sampling a regular grid over a region's bounding box.
//
// The generator covers the bounding box with cells of uniform spacing,
// places a candidate at each cell center, and keeps the candidates the
// region contains. Each kept candidate becomes a particle carrying the
// cell volume spacing^d. Candidate cells are enumerated in row-major
// order with the last axis varying fastest; this ordering is part of
// the contract, since downstream consumers rely on deterministic
// particle indexing.
//
// Generation is a pure computation over a frozen region: two passes
// over the same generator yield identical sequences, and the parallel
// variant merges worker output back into the same canonical order.
package lattice

package lattice

import "errors"

// ErrDegenerateRegion indicates a non-positive spacing or a bounding
// box whose extent along some axis yields a lattice count of zero.
var ErrDegenerateRegion = errors.New("lattice: degenerate region or spacing")

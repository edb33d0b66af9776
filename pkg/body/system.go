package body

import (
	"errors"
	"fmt"
)

// ErrUnknownBody indicates a topology entry referencing a body that
// was never registered.
var ErrUnknownBody = errors.New("body: unknown body in topology")

// System is the scenario container: the computational domain, the
// reference particle spacing and the ordered body registry. It is
// assembled once during setup and read-only during stepping.
type System struct {
	Lower, Upper []float64
	Spacing      float64

	bodies []*Body
	byName map[string]*Body

	// topology maps a body to the bodies it interacts with, the input
	// for neighbor-list construction in the simulation engine.
	topology map[string][]string
}

// NewSystem creates a system covering the domain [lower, upper] with
// the given reference spacing.
func NewSystem(lower, upper []float64, spacing float64) *System {
	return &System{
		Lower:   lower,
		Upper:   upper,
		Spacing: spacing,
		byName:  make(map[string]*Body),
	}
}

// AddBody registers a body. Registration order is preserved; the name
// must be unique within the system.
func (s *System) AddBody(b *Body) error {
	if _, dup := s.byName[b.Name]; dup {
		return fmt.Errorf("body: duplicate body name %q", b.Name)
	}
	s.bodies = append(s.bodies, b)
	s.byName[b.Name] = b
	return nil
}

// Bodies returns the registered bodies in registration order.
func (s *System) Bodies() []*Body {
	out := make([]*Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Body returns the body with the given name, or nil.
func (s *System) Body(name string) *Body {
	return s.byName[name]
}

// SetTopology records the contact map between bodies. Every name on
// either side must belong to a registered body.
func (s *System) SetTopology(topology map[string][]string) error {
	for name, contacts := range topology {
		if _, ok := s.byName[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBody, name)
		}
		for _, c := range contacts {
			if _, ok := s.byName[c]; !ok {
				return fmt.Errorf("%w: %q (contact of %q)", ErrUnknownBody, c, name)
			}
		}
	}
	s.topology = topology
	return nil
}

// Contacts returns the contact bodies of the named body, in topology
// order.
func (s *System) Contacts(name string) []*Body {
	names := s.topology[name]
	out := make([]*Body, 0, len(names))
	for _, n := range names {
		out = append(out, s.byName[n])
	}
	return out
}

// Clock is the explicit simulation time state, threaded through the
// stepping call sequence by the caller instead of living in package
// globals.
type Clock struct {
	PhysicalTime float64
	Step         int
	// RestartStep is nonzero when the run resumes from restart output.
	RestartStep int
}

// Advance moves the clock forward by dt and counts the step.
func (c *Clock) Advance(dt float64) {
	c.PhysicalTime += dt
	c.Step++
}

package scene

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/sphgen/pkg/body"
	"github.com/chazu/sphgen/pkg/geometry"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMaterial wraps a body.Material so it can be passed between builtins.
type sexpMaterial struct {
	mat body.Material
}

func (m *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(material :name %q :density %g)", m.mat.Name, m.mat.Density)
}
func (m *sexpMaterial) Type() *zygo.RegisteredType { return nil }

// sexpContour wraps a validated vertex loop for use by add/sub.
type sexpContour struct {
	vertices []geometry.Point2
}

func (c *sexpContour) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(contour %d vertices)", len(c.vertices))
}
func (c *sexpContour) Type() *zygo.RegisteredType { return nil }

// sexpLayer is a contour tagged with its boolean operation.
type sexpLayer struct {
	op      geometry.Op
	contour *sexpContour
}

func (l *sexpLayer) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %s)", l.op, l.contour.SexpString(ps))
}
func (l *sexpLayer) Type() *zygo.RegisteredType { return nil }

// sexpRegion wraps a finalized region.
type sexpRegion struct {
	region geometry.Region
}

func (r *sexpRegion) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(region dim=%d)", r.region.Dim())
}
func (r *sexpRegion) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks whether a Sexp is a preprocessed keyword string,
// returning the keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds a parsed mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		if name, ok := isKW(args[i]); ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go
// slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toFloats extracts a flat numeric vector like [0 5.366].
func toFloats(s zygo.Sexp) ([]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, it := range items {
		f, err := toFloat64(it)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// toVertexLoop extracts a vertex loop like [[0 0] [0 1] [1 1] [0 0]].
func toVertexLoop(s zygo.Sexp) ([]geometry.Point2, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]geometry.Point2, len(items))
	for i, it := range items {
		coords, err := toFloats(it)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if len(coords) != 2 {
			return nil, fmt.Errorf("vertex %d: expected [x y], got %d coordinates", i, len(coords))
		}
		out[i] = geometry.Pt(coords[0], coords[1])
	}
	return out, nil
}

// toContour extracts a sexpContour.
func toContour(s zygo.Sexp) (*sexpContour, error) {
	if c, ok := s.(*sexpContour); ok {
		return c, nil
	}
	return nil, fmt.Errorf("expected contour, got %T (%s)", s, s.SexpString(nil))
}

// toRegion extracts a Region from a sexpRegion.
func toRegion(s zygo.Sexp) (geometry.Region, error) {
	if r, ok := s.(*sexpRegion); ok {
		return r.region, nil
	}
	return nil, fmt.Errorf("expected region, got %T (%s)", s, s.SexpString(nil))
}

// toMaterial extracts a body.Material from a sexpMaterial.
func toMaterial(s zygo.Sexp) (body.Material, error) {
	if m, ok := s.(*sexpMaterial); ok {
		return m.mat, nil
	}
	return body.Material{}, fmt.Errorf("expected material, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scenario DSL builtins into a zygomys
// environment. The builtins populate the provided Scene during
// evaluation.
//
// Source code must be preprocessed with preprocessSource first so that
// :keyword tokens are recognizable.
func registerBuiltins(env *zygo.Zlisp, sc *Scene) {

	// -----------------------------------------------------------------------
	// (system :lower [0 0] :upper [5.366 5.366] :spacing 0.025)
	// -----------------------------------------------------------------------
	env.AddFunction("system", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		lowerSexp, ok := pa.kw["lower"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("system: missing :lower")
		}
		lower, err := toFloats(lowerSexp)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("system: lower: %w", err)
		}
		upperSexp, ok := pa.kw["upper"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("system: missing :upper")
		}
		upper, err := toFloats(upperSexp)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("system: upper: %w", err)
		}
		if len(lower) != len(upper) {
			return zygo.SexpNull, fmt.Errorf("system: lower has %d axes, upper has %d", len(lower), len(upper))
		}
		spacing := 0.0
		if v, ok := pa.kw["spacing"]; ok {
			if spacing, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("system: spacing: %w", err)
			}
		}

		sc.System = body.NewSystem(lower, upper, spacing)
		// Bodies declared before (system ...) join it retroactively.
		for _, b := range sc.Bodies {
			if err := sc.System.AddBody(b); err != nil {
				return zygo.SexpNull, fmt.Errorf("system: %w", err)
			}
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (material :name "water" :density 1.0 :sound-speed 14.6 :viscosity 0.0)
	// -----------------------------------------------------------------------
	env.AddFunction("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		mat := body.Material{}
		var err error

		if v, ok := pa.kw["name"]; ok {
			if mat.Name, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("material: name: %w", err)
			}
		}
		if v, ok := pa.kw["density"]; ok {
			if mat.Density, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("material: density: %w", err)
			}
		}
		if v, ok := pa.kw["sound-speed"]; ok {
			if mat.SoundSpeed, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("material: sound-speed: %w", err)
			}
		}
		if v, ok := pa.kw["viscosity"]; ok {
			if mat.Viscosity, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("material: viscosity: %w", err)
			}
		}
		return &sexpMaterial{mat: mat}, nil
	})

	// -----------------------------------------------------------------------
	// (contour [[x y] [x y] ... [x y]])  -- closed vertex loop
	// -----------------------------------------------------------------------
	env.AddFunction("contour", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("contour: expected one vertex list, got %d arguments", len(pa.positional))
		}
		loop, err := toVertexLoop(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contour: %w", err)
		}
		// Validate eagerly so errors surface at the declaration site.
		if _, err := geometry.NewContour(loop); err != nil {
			return zygo.SexpNull, fmt.Errorf("contour: %w", err)
		}
		return &sexpContour{vertices: loop}, nil
	})

	// -----------------------------------------------------------------------
	// (add c) / (sub c) -- tag a contour with its boolean operation
	// -----------------------------------------------------------------------
	layerBuiltin := func(op geometry.Op) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s: expected one contour, got %d arguments", op, len(args))
			}
			c, err := toContour(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
			}
			return &sexpLayer{op: op, contour: c}, nil
		}
	}
	env.AddFunction("add", layerBuiltin(geometry.OpAdd))
	env.AddFunction("sub", layerBuiltin(geometry.OpSub))

	// -----------------------------------------------------------------------
	// (region (add c1) (sub c2) ...) -- layers applied in order
	// -----------------------------------------------------------------------
	env.AddFunction("region", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("region: expected at least one layer")
		}
		r := geometry.NewPolygonRegion()
		for i, a := range args {
			l, ok := a.(*sexpLayer)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("region: argument %d: expected (add ...) or (sub ...), got %T", i, a)
			}
			if err := r.AddContour(l.contour.vertices, l.op); err != nil {
				return zygo.SexpNull, fmt.Errorf("region: layer %d: %w", i, err)
			}
		}
		if err := r.Finalize(); err != nil {
			return zygo.SexpNull, fmt.Errorf("region: %w", err)
		}
		return &sexpRegion{region: r}, nil
	})

	// -----------------------------------------------------------------------
	// (body :name "WaterBody" :region r :spacing 0.025 :material m
	//       :velocity [2 0] :parallel true)
	// -----------------------------------------------------------------------
	env.AddFunction("body", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		def := body.Def{}
		var err error

		nameSexp, ok := pa.kw["name"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("body: missing :name")
		}
		if def.Name, err = toString(nameSexp); err != nil {
			return zygo.SexpNull, fmt.Errorf("body: name: %w", err)
		}
		regionSexp, ok := pa.kw["region"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("body %q: missing :region", def.Name)
		}
		if def.Region, err = toRegion(regionSexp); err != nil {
			return zygo.SexpNull, fmt.Errorf("body %q: region: %w", def.Name, err)
		}
		spacingSexp, ok := pa.kw["spacing"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("body %q: missing :spacing", def.Name)
		}
		if def.Spacing, err = toFloat64(spacingSexp); err != nil {
			return zygo.SexpNull, fmt.Errorf("body %q: spacing: %w", def.Name, err)
		}
		if v, ok := pa.kw["material"]; ok {
			if def.Material, err = toMaterial(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("body %q: material: %w", def.Name, err)
			}
		}
		if v, ok := pa.kw["velocity"]; ok {
			vel, err := toFloats(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("body %q: velocity: %w", def.Name, err)
			}
			def.Velocity = func([]float64) []float64 {
				out := make([]float64, len(vel))
				copy(out, vel)
				return out
			}
		}
		if v, ok := pa.kw["parallel"]; ok {
			if b, isBool := v.(*zygo.SexpBool); isBool {
				def.Parallel = b.Val
			}
		}

		b, err := body.New(def)
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := registerBody(sc, b); err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (observer :name "FluidObserver" :points [[x y w] ...])
	// -----------------------------------------------------------------------
	env.AddFunction("observer", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		nameSexp, ok := pa.kw["name"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("observer: missing :name")
		}
		obsName, err := toString(nameSexp)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("observer: name: %w", err)
		}
		pointsSexp, ok := pa.kw["points"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("observer %q: missing :points", obsName)
		}
		items, err := sexpListToSlice(pointsSexp)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("observer %q: points: %w", obsName, err)
		}
		points := make([]body.WeightedPoint, len(items))
		for i, it := range items {
			coords, err := toFloats(it)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("observer %q: point %d: %w", obsName, i, err)
			}
			if len(coords) < 3 {
				return zygo.SexpNull, fmt.Errorf("observer %q: point %d: expected [coords... weight], got %d values", obsName, i, len(coords))
			}
			points[i] = body.WeightedPoint{
				Position: coords[:len(coords)-1],
				Weight:   coords[len(coords)-1],
			}
		}

		b, err := body.NewObserver(obsName, points)
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := registerBody(sc, b); err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})
}

// registerBody appends a body to the scene and, when a system has been
// declared, to the system registry as well.
func registerBody(sc *Scene, b *body.Body) error {
	for _, existing := range sc.Bodies {
		if existing.Name == b.Name {
			return fmt.Errorf("duplicate body name %q", b.Name)
		}
	}
	sc.Bodies = append(sc.Bodies, b)
	if sc.System != nil {
		return sc.System.AddBody(b)
	}
	return nil
}

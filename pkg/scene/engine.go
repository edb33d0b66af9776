// Package scene provides the Lisp scenario DSL for sphgen. It wraps
// zygomys in a sandboxed environment and evaluates a scenario source
// into a Scene: the system description plus the fully constructed
// bodies, ready for the simulation engine.
//
// The DSL replaces the per-case driver boilerplate of classical SPH
// frameworks with declarations:
//
//	(system :lower [0 0] :upper [5.366 5.366] :spacing 0.025)
//	(def water (material :name "water" :density 1.0 :sound-speed 14.6))
//	(def tank (region
//	  (add (contour [[-0.1 -0.1] [-0.1 5.5] [5.5 5.5] [5.5 -0.1] [-0.1 -0.1]]))
//	  (sub (contour [[0 0] [0 5.4] [5.4 5.4] [5.4 0] [0 0]]))))
//	(body :name "Wall" :region tank :spacing 0.025 :material water)
//	(observer :name "FluidObserver" :points [[5.366 0.2 0]])
package scene

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/sphgen/pkg/body"
)

// Scene is the result of evaluating a scenario source.
type Scene struct {
	// System is nil when the source never calls (system ...).
	System *body.System
	// Bodies holds every declared body in declaration order,
	// observers included.
	Bodies []*body.Body
}

// Body returns the declared body with the given name, or nil.
func (s *Scene) Body(name string) *body.Body {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// EvalError represents a non-fatal error encountered during
// evaluation, such as a parse error or an invalid declaration.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter for scenario evaluation. It is
// safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a scenario source and produces a Scene. Each call
// creates a fresh zygomys sandbox.
//
// Return semantics:
//   - On success: Scene + nil eval errors + nil error.
//   - On parse/eval failure: nil Scene + eval errors + nil error.
//   - On fatal failure (timeout, panic): nil + nil + error.
func (e *Engine) Evaluate(source string) (*Scene, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		sc, evalErrs, err := e.evaluate(source)
		ch <- evalResult{scene: sc, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Scene, []EvalError, error) {
	// Empty source is a valid scenario with no bodies.
	if strings.TrimSpace(source) == "" {
		return &Scene{}, nil, nil
	}

	// Sandbox mode prevents scenario code from reaching the
	// filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	sc := &Scene{}
	registerBuiltins(env, sc)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return sc, nil, nil
}

// linePattern matches zygomys error messages that include
// "Error on line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting line information when the message carries it.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

// preprocessSource transforms scenario source before zygomys sees it:
// :keyword tokens become marker string literals, kebab-case identifiers
// become underscore form (zygomys parses hyphens as subtraction), and
// Lisp ; comments become zygomys // comments. String literal
// boundaries are respected.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to a marker string literal.
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Kebab-case to underscore, only between identifier characters.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

package scene

import (
	"strings"
	"testing"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	sc, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if sc == nil {
		t.Fatal("expected non-nil scene")
	}
	if len(sc.Bodies) != 0 {
		t.Errorf("expected empty scene, got %d bodies", len(sc.Bodies))
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	sc, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if sc == nil {
		t.Fatal("expected non-nil scene")
	}
}

func TestEvaluatePlainExpression(t *testing.T) {
	eng := NewEngine()

	// Valid Lisp that declares nothing leaves the scene empty.
	sc, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(sc.Bodies) != 0 {
		t.Errorf("expected no bodies, got %d", len(sc.Bodies))
	}
}

func TestEvaluateParseError(t *testing.T) {
	eng := NewEngine()

	sc, evalErrs, err := eng.Evaluate("(contour [[0 0]")
	if err != nil {
		t.Fatalf("parse failure must not be fatal: %v", err)
	}
	if sc != nil {
		t.Error("expected nil scene on parse failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
}

func TestEvaluateBuiltinError(t *testing.T) {
	eng := NewEngine()

	// The contour is not closed; the declaration must fail, not the
	// process.
	sc, evalErrs, err := eng.Evaluate(`(contour [[0 0] [0 1] [1 1]])`)
	if err != nil {
		t.Fatalf("builtin failure must not be fatal: %v", err)
	}
	if sc != nil {
		t.Error("expected nil scene on builtin failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	joined := ""
	for _, e := range evalErrs {
		joined += e.Error() + "\n"
	}
	if !strings.Contains(joined, "contour") {
		t.Errorf("expected contour failure in errors, got: %s", joined)
	}
}

func TestEvaluateIndependentRuns(t *testing.T) {
	eng := NewEngine()
	source := `
(body :name "Block"
      :region (region (add (contour [[0 0] [0 1] [1 1] [1 0] [0 0]])))
      :spacing 0.5
      :material (material :name "water" :density 1.0))
`
	for i := 0; i < 2; i++ {
		sc, evalErrs, err := eng.Evaluate(source)
		if err != nil {
			t.Fatalf("run %d: unexpected fatal error: %v", i, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("run %d: unexpected eval errors: %v", i, evalErrs)
		}
		if len(sc.Bodies) != 1 {
			t.Fatalf("run %d: expected 1 body, got %d", i, len(sc.Bodies))
		}
		if got := sc.Bodies[0].Count(); got != 4 {
			t.Errorf("run %d: expected 4 particles, got %d", i, got)
		}
	}
}

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "keyword",
			source: "(material :density 1.0)",
			want:   `(material "__kw_density" 1.0)`,
		},
		{
			name:   "kebab case keyword",
			source: "(material :sound-speed 10)",
			want:   `(material "__kw_sound-speed" 10)`,
		},
		{
			name:   "kebab identifier",
			source: "(def water-block 1)",
			want:   "(def water_block 1)",
		},
		{
			name:   "minus stays minus",
			source: "(- 1 2)",
			want:   "(- 1 2)",
		},
		{
			name:   "negative literal in vector",
			source: "[-0.1 -0.1]",
			want:   "[-0.1 -0.1]",
		},
		{
			name:   "string untouched",
			source: `(body :name "water-block")`,
			want:   `(body "__kw_name" "water-block")`,
		},
		{
			name:   "semicolon comment",
			source: "; tank walls\n(+ 1 2)",
			want:   "// tank walls\n(+ 1 2)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.source); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

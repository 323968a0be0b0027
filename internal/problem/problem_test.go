package problem

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	src := `# a trivial two-unknown system
unknowns: x y
coeffs: a b

x^2 + a*x - 1
y*x + b
`
	p, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if got, want := p.Unknowns, []string{"x", "y"}; !equal(got, want) {
		t.Errorf("unknowns = %v, want %v", got, want)
	}
	if got, want := p.Coeffs, []string{"a", "b"}; !equal(got, want) {
		t.Errorf("coeffs = %v, want %v", got, want)
	}
	if got, want := p.Equations, []string{"x^2 + a*x - 1", "y*x + b"}; !equal(got, want) {
		t.Errorf("equations = %v, want %v", got, want)
	}

	idx := p.UnknownIndex()
	if idx["x"] != 1 || idx["y"] != 2 {
		t.Errorf("unknown index = %v", idx)
	}
}

func TestParseNoCoeffsIsOptional(t *testing.T) {
	src := "unknowns: x\nx^2 - 1\n"
	p, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(p.Coeffs) != 0 {
		t.Errorf("coeffs = %v, want none", p.Coeffs)
	}
}

func TestParseRequiresUnknowns(t *testing.T) {
	src := "x^2 - 1\n"
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatalf("expected error for missing unknowns declaration")
	}
}

func TestParseRequiresEquations(t *testing.T) {
	src := "unknowns: x\n"
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatalf("expected error for missing equations")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

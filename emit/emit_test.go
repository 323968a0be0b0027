package emit_test

import (
	"fmt"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/polyjam-go/polyjam/emit"
	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/poly"
	"github.com/polyjam-go/polyjam/template"
	"github.com/polyjam-go/polyjam/term"
)

const testCharacteristic = 101

func zpTyp() poly.Type {
	return poly.Type{Order: monomial.Grevlex, Arity: 1, CarrierKinds: []field.Kind{field.Zp}, Characteristic: testCharacteristic}
}

func symTyp() poly.Type {
	return poly.Type{Order: monomial.Grevlex, Arity: 1, CarrierKinds: []field.Kind{field.Sym}}
}

func m(exp int) monomial.Monomial {
	return monomial.NewFromExponents([]int{exp}, monomial.Grevlex)
}

// quadraticSystem builds x^2 - 2 = 0 (numeric, over Zp) alongside its
// symbolic source x^2 - a = 0, with a a single named coefficient.
func quadraticSystem(t *testing.T) (numeric, symbolic []*poly.Polynomial) {
	n, err := poly.New(zpTyp(),
		term.New(m(2), field.NewCoefficientInt(1, field.Zp, testCharacteristic)),
		term.New(m(0), field.NewCoefficientInt(-2, field.Zp, testCharacteristic)),
	)
	if err != nil {
		t.Fatalf("numeric system: %v", err)
	}
	s, err := poly.New(symTyp(),
		term.New(m(2), field.NewCoefficientInt(1, field.Sym, 0)),
		term.New(m(0), field.NewCoefficientName("a")),
	)
	if err != nil {
		t.Fatalf("symbolic system: %v", err)
	}
	return []*poly.Polynomial{n}, []*poly.Polynomial{s}
}

func buildPlan(t *testing.T) *template.Plan {
	numeric, symbolic := quadraticSystem(t)
	base := []monomial.Monomial{m(1)}
	expanders, err := template.GenerateSuperlinearExpanders(base, 2)
	if err != nil {
		t.Fatalf("expanders: %v", err)
	}
	quotientBasis := []monomial.Monomial{m(0), m(1)}
	multiplier := m(1)

	plan, err := template.Generate(numeric, symbolic, expanders, quotientBasis, multiplier)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return plan
}

func TestGenerateProducesParsableGoSource(t *testing.T) {
	plan := buildPlan(t)

	src, err := emit.Generate(plan, emit.Options{
		PackageName: "quadsolver",
		SolverName:  "Quadratic",
		Parameters:  []string{"a"},
	})
	if err != nil {
		t.Fatalf("emit generate: %v", err)
	}

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "quadratic.go", src, 0); err != nil {
		t.Fatalf("emitted source does not parse: %v\n---\n%s", err, src)
	}

	for _, want := range []string{
		"package quadsolver",
		"func SolveQuadratic(a float64) ([][]float64, error)",
		"gonum.org/v1/gonum/mat",
		"mat.NewDense(",
		"initRow(M2, M1,",
		"eig.Factorize(Action, mat.EigenRight)",
		"func initRow(m2, m1 *mat.Dense,",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("emitted source missing %q\n---\n%s", want, src)
		}
	}
}

// This example builds the action-matrix template for x^2 - a = 0 and
// prints the emitted solver's package clause and exported signature.
func Example() {
	numeric, err := poly.New(zpTyp(),
		term.New(m(2), field.NewCoefficientInt(1, field.Zp, testCharacteristic)),
		term.New(m(0), field.NewCoefficientInt(-2, field.Zp, testCharacteristic)),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	symbolic, err := poly.New(symTyp(),
		term.New(m(2), field.NewCoefficientInt(1, field.Sym, 0)),
		term.New(m(0), field.NewCoefficientName("a")),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	expanders, err := template.GenerateSuperlinearExpanders([]monomial.Monomial{m(1)}, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	quotientBasis := []monomial.Monomial{m(0), m(1)}
	plan, err := template.Generate([]*poly.Polynomial{numeric}, []*poly.Polynomial{symbolic}, expanders, quotientBasis, m(1))
	if err != nil {
		fmt.Println(err)
		return
	}

	src, err := emit.Generate(plan, emit.Options{
		PackageName: "quadsolver",
		SolverName:  "Quadratic",
		Parameters:  []string{"a"},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(line, "package ") || strings.HasPrefix(line, "func Solve") {
			fmt.Println(line)
		}
	}
	// Output:
	// package quadsolver
	// func SolveQuadratic(a float64) ([][]float64, error) {
}

func TestGenerateRejectsMissingOptions(t *testing.T) {
	plan := buildPlan(t)

	if _, err := emit.Generate(plan, emit.Options{SolverName: "Quadratic", Parameters: []string{"a"}}); err == nil {
		t.Fatalf("expected error for missing package name")
	}
	if _, err := emit.Generate(plan, emit.Options{PackageName: "quadsolver", SolverName: "Quadratic"}); err == nil {
		t.Fatalf("expected error for missing parameters")
	}
}

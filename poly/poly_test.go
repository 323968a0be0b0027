package poly_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/poly"
	"github.com/polyjam-go/polyjam/term"
)

func realType(arity int) poly.Type {
	return poly.Type{Order: monomial.Grevlex, Arity: arity, CarrierKinds: []field.Kind{field.R}}
}

func rterm(arity int, exp []int, v float64) term.Term {
	m := monomial.NewFromExponents(exp, monomial.Grevlex)
	return term.New(m, field.NewCoefficientR(v))
}

func TestCancellationLeavesCanonicalZero(t *testing.T) {
	typ := realType(2)
	x, err := poly.New(typ, rterm(2, []int{1, 0}, 3))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	y, err := poly.New(typ, rterm(2, []int{1, 0}, 3))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	z := poly.Empty(typ)
	if _, err := z.Sub(x, y); err != nil {
		t.Fatalf("sub: %v", err)
	}
	if !z.IsZero() || z.Len() != 0 {
		t.Fatalf("x-x should cancel to the canonical zero polynomial, got %s (len %d)", z, z.Len())
	}
	if z.String() != "0" {
		t.Fatalf("zero polynomial should print as 0, got %q", z.String())
	}
}

func TestNoRepeatedMonomialsAfterAdd(t *testing.T) {
	typ := realType(1)
	x, _ := poly.New(typ, rterm(1, []int{1}, 2), rterm(1, []int{0}, 1))
	y, _ := poly.New(typ, rterm(1, []int{1}, 5))
	z := poly.Empty(typ)
	if _, err := z.Add(x, y); err != nil {
		t.Fatalf("add: %v", err)
	}
	if z.Len() != 2 {
		t.Fatalf("2x+1 + 5x should have 2 terms (7x and 1), got %d: %s", z.Len(), z)
	}
	lead := z.LeadingTerm()
	if lead.DominantCoefficient().String() != "7" {
		t.Fatalf("leading coefficient should be 7, got %s", lead.DominantCoefficient())
	}
}

func TestLeadingTermDescendsUnderGrevlex(t *testing.T) {
	typ := realType(3)
	x, err := poly.New(typ,
		rterm(3, []int{0, 0, 2}, 1),
		rterm(3, []int{2, 0, 0}, 1),
		rterm(3, []int{1, 1, 0}, 1),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if x.LeadingTerm().Monomial().String() != "x_1^2" {
		t.Fatalf("leading monomial under GREVLEX should be x_1^2, got %s", x.LeadingTerm().Monomial())
	}
}

func TestTypeMismatchAcrossOrders(t *testing.T) {
	lexType := poly.Type{Order: monomial.Lex, Arity: 1, CarrierKinds: []field.Kind{field.R}}
	grevType := poly.Type{Order: monomial.Grevlex, Arity: 1, CarrierKinds: []field.Kind{field.R}}
	x, _ := poly.New(lexType, rterm(1, []int{1}, 1))
	y, _ := poly.New(grevType, rterm(1, []int{1}, 1))
	z := poly.Empty(lexType)
	if _, err := z.Add(x, y); !errors.Is(err, errs.ErrTypeMismatch) {
		t.Fatalf("want ErrTypeMismatch across orders, got %v", err)
	}
}

// TestQuotientRingSystem exercises the {x^2-1, xy-y} system named by
// spec scenario 5: over ℚ, x*(xy-y) - y*(x^2-1) cancels the x^2y terms
// and leaves -xy + y, confirming term cancellation and leading-term
// tracking work together across a small elimination step.
func TestQuotientRingSystem(t *testing.T) {
	typ := poly.Type{Order: monomial.Grevlex, Arity: 2, CarrierKinds: []field.Kind{field.Q}}
	qterm := func(exp []int, num int64) term.Term {
		m := monomial.NewFromExponents(exp, monomial.Grevlex)
		c, err := field.NewCoefficientQ(num, 1)
		if err != nil {
			t.Fatalf("coefficient: %v", err)
		}
		return term.New(m, c)
	}

	f1, err := poly.New(typ, qterm([]int{2, 0}, 1), qterm([]int{0, 0}, -1)) // x^2 - 1
	if err != nil {
		t.Fatalf("f1: %v", err)
	}
	f2, err := poly.New(typ, qterm([]int{1, 1}, 1), qterm([]int{0, 1}, -1)) // xy - y
	if err != nil {
		t.Fatalf("f2: %v", err)
	}

	x, err := poly.New(typ, qterm([]int{1, 0}, 1))
	if err != nil {
		t.Fatalf("x: %v", err)
	}
	y, err := poly.New(typ, qterm([]int{0, 1}, 1))
	if err != nil {
		t.Fatalf("y: %v", err)
	}

	xf2 := poly.Empty(typ)
	if _, err := xf2.Mul(x, f2); err != nil {
		t.Fatalf("x*f2: %v", err)
	}
	yf1 := poly.Empty(typ)
	if _, err := yf1.Mul(y, f1); err != nil {
		t.Fatalf("y*f1: %v", err)
	}

	diff := poly.Empty(typ)
	if _, err := diff.Sub(xf2, yf1); err != nil {
		t.Fatalf("sub: %v", err)
	}
	if diff.Len() != 2 {
		t.Fatalf("x*(xy-y) - y*(x^2-1) should reduce to the two terms -xy + y, got %d terms: %s", diff.Len(), diff)
	}
	want, err := poly.New(typ, qterm([]int{1, 1}, -1), qterm([]int{0, 1}, 1)) // -xy + y
	if err != nil {
		t.Fatalf("want: %v", err)
	}
	if !diff.Equal(want) {
		t.Fatalf("expected -xy + y, got %s", diff)
	}
}

func TestApproximateDropsHighDegreeTerms(t *testing.T) {
	typ := realType(1)
	x, _ := poly.New(typ, rterm(1, []int{3}, 1), rterm(1, []int{1}, 2), rterm(1, []int{0}, 5))
	y := x.Approximate(1)
	if y.Len() != 2 {
		t.Fatalf("approximate(1) should keep degree<=1 terms only, got %d: %s", y.Len(), y)
	}
}

func TestEvalR(t *testing.T) {
	typ := realType(2)
	x, _ := poly.New(typ, rterm(2, []int{1, 1}, 2), rterm(2, []int{0, 0}, 3))
	v, err := x.EvalR([]float64{5, 7})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v != 2*5*7+3 {
		t.Fatalf("eval = %v, want %v", v, 2*5*7+3)
	}
}

func TestDifferentOrderVersionPreservesTerms(t *testing.T) {
	typ := realType(2)
	x, _ := poly.New(typ, rterm(2, []int{2, 0}, 1), rterm(2, []int{1, 1}, 1))
	y := x.DifferentOrderVersion(monomial.Lex)
	if y.Order() != monomial.Lex {
		t.Fatalf("order not updated")
	}
	if y.Len() != x.Len() {
		t.Fatalf("term count changed across order rewrite")
	}
}

package monomial_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
	"github.com/polyjam-go/polyjam/monomial"
)

func TestGrevlexDegreeTwoOrder(t *testing.T) {
	// x1^2 > x1x2 > x2^2 > x1x3 > x2x3 > x3^2 under GREVLEX, arity 3.
	m := func(e ...int) monomial.Monomial { return monomial.NewFromExponents(e, monomial.Grevlex) }
	order := []monomial.Monomial{
		m(2, 0, 0),
		m(1, 1, 0),
		m(0, 2, 0),
		m(1, 0, 1),
		m(0, 1, 1),
		m(0, 0, 2),
	}
	for i := 0; i+1 < len(order); i++ {
		c, err := order[i].Compare(order[i+1], monomial.Grevlex)
		if err != nil {
			t.Fatalf("compare: %v", err)
		}
		if c <= 0 {
			t.Fatalf("expected %v > %v under GREVLEX, got cmp=%d", order[i], order[i+1], c)
		}
	}
}

func TestMonomialOrderTotality(t *testing.T) {
	orders := []monomial.Order{monomial.Lex, monomial.RevLex, monomial.Grlex, monomial.Grevlex}
	vectors := [][]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 0}, {0, 2}}
	for _, ord := range orders {
		for _, a := range vectors {
			for _, b := range vectors {
				x := monomial.NewFromExponents(a, ord)
				y := monomial.NewFromExponents(b, ord)
				c, err := x.Compare(y, ord)
				if err != nil {
					t.Fatalf("compare: %v", err)
				}
				d, err := y.Compare(x, ord)
				if err != nil {
					t.Fatalf("compare: %v", err)
				}
				if c != -d {
					t.Fatalf("order %v not antisymmetric for %v,%v: %d vs %d", ord, a, b, c, d)
				}
			}
		}
	}
}

func TestDivideNegativeExponent(t *testing.T) {
	a := monomial.NewFromExponents([]int{1, 0}, monomial.Lex)
	b := monomial.NewFromExponents([]int{0, 1}, monomial.Lex)
	if _, err := a.Divide(b); !errors.Is(err, errs.ErrArithmeticDomain) {
		t.Fatalf("want ErrArithmeticDomain, got %v", err)
	}
}

func TestArityMismatch(t *testing.T) {
	a := monomial.NewFromExponents([]int{1, 0}, monomial.Lex)
	b := monomial.NewFromExponents([]int{1, 0, 0}, monomial.Lex)
	if _, err := a.Multiply(b); !errors.Is(err, errs.ErrTypeMismatch) {
		t.Fatalf("want ErrTypeMismatch, got %v", err)
	}
}

func TestIsDivisibleByAndLcm(t *testing.T) {
	x2y := monomial.NewFromExponents([]int{2, 1}, monomial.Lex)
	x := monomial.NewFromExponents([]int{1, 0}, monomial.Lex)
	ok, err := x2y.IsDivisibleBy(x)
	if err != nil || !ok {
		t.Fatalf("x^2y should be divisible by x: %v, %v", ok, err)
	}

	y2 := monomial.NewFromExponents([]int{0, 2}, monomial.Lex)
	lcm, err := x2y.Lcm(y2)
	if err != nil {
		t.Fatalf("lcm: %v", err)
	}
	if !lcm.Equal(monomial.NewFromExponents([]int{2, 2}, monomial.Lex)) {
		t.Fatalf("lcm(x^2y, y^2) = %v, want x^2y^2", lcm)
	}
}

func TestIndicatorMonomial(t *testing.T) {
	identity, err := monomial.NewIndicator(3, 0, monomial.Lex)
	if err != nil {
		t.Fatalf("indicator 0: %v", err)
	}
	if !identity.IsIdentity() {
		t.Fatalf("index 0 should produce identity, got %v", identity)
	}

	x2, err := monomial.NewIndicator(3, 2, monomial.Lex)
	if err != nil {
		t.Fatalf("indicator 2: %v", err)
	}
	if !x2.Equal(monomial.NewFromExponents([]int{0, 1, 0}, monomial.Lex)) {
		t.Fatalf("indicator(3,2) = %v, want x_2", x2)
	}
}

func TestEvaluate(t *testing.T) {
	m := monomial.NewFromExponents([]int{2, 1}, monomial.Lex)
	v, err := m.Evaluate([]float64{3, 5})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v != 45 {
		t.Fatalf("x^2y at (3,5) = %v, want 45", v)
	}
}

package monomial

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
)

// A Monomial is an exponent vector over a fixed arity together with
// its default ordering tag (spec 4.C).
type Monomial struct {
	exp   []int
	order Order
}

// New returns the identity monomial (all exponents zero) of the given
// arity and default order.
func New(arity int, order Order) Monomial {
	return Monomial{exp: make([]int, arity), order: order}
}

// NewFromExponents returns the monomial with the given exponent
// vector. The slice is copied.
func NewFromExponents(exp []int, order Order) Monomial {
	e := make([]int, len(exp))
	copy(e, exp)
	return Monomial{exp: e, order: order}
}

// NewIndicator returns the monomial of the given arity with a single
// exponent set to 1. index == 0 produces the identity; otherwise index
// selects the 1-based unknown to set.
func NewIndicator(arity, index int, order Order) (Monomial, error) {
	if index < 0 || index > arity {
		return Monomial{}, errors.Wrapf(errs.ErrBounds, "indicator monomial: index %d out of [0,%d]", index, arity)
	}
	m := New(arity, order)
	if index > 0 {
		m.exp[index-1] = 1
	}
	return m, nil
}

// NewIndicatorMust is NewIndicator with panic-on-error, for use by
// callers (tests, the parser) that already know index is in range.
func NewIndicatorMust(arity, index int, order Order) Monomial {
	m, err := NewIndicator(arity, index, order)
	if err != nil {
		panic(err)
	}
	return m
}

// Arity returns the number of unknowns m is defined over.
func (m Monomial) Arity() int { return len(m.exp) }

// Order returns m's default ordering tag.
func (m Monomial) Order() Order { return m.order }

// Degree returns the total degree, the sum of all exponents.
func (m Monomial) Degree() int { return degreeOf(m.exp) }

// Exponents returns a copy of the exponent vector.
func (m Monomial) Exponents() []int {
	e := make([]int, len(m.exp))
	copy(e, m.exp)
	return e
}

// Exponent returns the exponent of the i'th unknown (0-based).
func (m Monomial) Exponent(i int) int { return m.exp[i] }

func checkArity(op string, a, b Monomial) error {
	if len(a.exp) != len(b.exp) {
		return errors.Wrapf(errs.ErrTypeMismatch, "%s: arity %d vs %d", op, len(a.exp), len(b.exp))
	}
	return nil
}

// Multiply returns m*other.
func (m Monomial) Multiply(other Monomial) (Monomial, error) {
	if err := checkArity("multiply", m, other); err != nil {
		return Monomial{}, err
	}
	out := make([]int, len(m.exp))
	for i := range out {
		out[i] = m.exp[i] + other.exp[i]
	}
	return Monomial{exp: out, order: m.order}, nil
}

// Divide returns m/other. It fails with errs.ErrArithmeticDomain if
// any resulting exponent would be negative.
func (m Monomial) Divide(other Monomial) (Monomial, error) {
	if err := checkArity("divide", m, other); err != nil {
		return Monomial{}, err
	}
	out := make([]int, len(m.exp))
	for i := range out {
		out[i] = m.exp[i] - other.exp[i]
		if out[i] < 0 {
			return Monomial{}, errors.Wrapf(errs.ErrArithmeticDomain, "divide: exponent %d would go negative at index %d", out[i], i)
		}
	}
	return Monomial{exp: out, order: m.order}, nil
}

// IsDivisibleBy reports whether other divides m, i.e. every exponent
// of other is at most the corresponding exponent of m.
func (m Monomial) IsDivisibleBy(other Monomial) (bool, error) {
	if err := checkArity("is-divisible-by", m, other); err != nil {
		return false, err
	}
	for i := range m.exp {
		if other.exp[i] > m.exp[i] {
			return false, nil
		}
	}
	return true, nil
}

// Lcm returns the least common multiple of m and other: the
// coordinate-wise maximum of their exponent vectors.
func (m Monomial) Lcm(other Monomial) (Monomial, error) {
	if err := checkArity("lcm", m, other); err != nil {
		return Monomial{}, err
	}
	out := make([]int, len(m.exp))
	for i := range out {
		out[i] = max(m.exp[i], other.exp[i])
	}
	return Monomial{exp: out, order: m.order}, nil
}

// IsRelativelyPrime reports whether m and other share no common
// variable, i.e. for every index at most one of the two exponents is
// nonzero.
func (m Monomial) IsRelativelyPrime(other Monomial) (bool, error) {
	if err := checkArity("is-relatively-prime", m, other); err != nil {
		return false, err
	}
	for i := range m.exp {
		if m.exp[i] != 0 && other.exp[i] != 0 {
			return false, nil
		}
	}
	return true, nil
}

// Compare returns -1, 0, or 1 according to the given order. It fails
// with errs.ErrTypeMismatch on an arity mismatch.
func (m Monomial) Compare(other Monomial, order Order) (int, error) {
	if err := checkArity("compare", m, other); err != nil {
		return 0, err
	}
	return compare(order, m.exp, other.exp), nil
}

// Equal reports whether m and other have the same exponent vector,
// independent of their ordering tags. Monomials of different arity
// are never equal.
func (m Monomial) Equal(other Monomial) bool {
	if len(m.exp) != len(other.exp) {
		return false
	}
	for i := range m.exp {
		if m.exp[i] != other.exp[i] {
			return false
		}
	}
	return true
}

// Less reports whether m < other under m's own ordering tag.
func (m Monomial) Less(other Monomial) bool {
	c, err := m.Compare(other, m.order)
	if err != nil {
		panic(err)
	}
	return c < 0
}

// Greater reports whether m > other under m's own ordering tag.
func (m Monomial) Greater(other Monomial) bool {
	c, err := m.Compare(other, m.order)
	if err != nil {
		panic(err)
	}
	return c > 0
}

// SetOrder returns a copy of m with the ordering tag rewritten to
// order; the exponents are unchanged.
func (m Monomial) SetOrder(order Order) Monomial {
	e := make([]int, len(m.exp))
	copy(e, m.exp)
	return Monomial{exp: e, order: order}
}

// Evaluate computes ∏ values[i]^exp[i]. It fails with
// errs.ErrTypeMismatch if len(values) != m.Arity().
func (m Monomial) Evaluate(values []float64) (float64, error) {
	if len(values) != len(m.exp) {
		return 0, errors.Wrapf(errs.ErrTypeMismatch, "evaluate: arity %d vs %d values", len(m.exp), len(values))
	}
	result := 1.0
	for i, e := range m.exp {
		for k := 0; k < e; k++ {
			result *= values[i]
		}
	}
	return result, nil
}

// IsIdentity reports whether every exponent is zero.
func (m Monomial) IsIdentity() bool {
	for _, e := range m.exp {
		if e != 0 {
			return false
		}
	}
	return true
}

// String renders m using the conventional x_1, x_2, ... names.
func (m Monomial) String() string {
	if m.IsIdentity() {
		return "1"
	}
	var b strings.Builder
	first := true
	for i, e := range m.exp {
		if e == 0 {
			continue
		}
		if !first {
			b.WriteByte('*')
		}
		first = false
		if e == 1 {
			fmt.Fprintf(&b, "x_%d", i+1)
		} else {
			fmt.Fprintf(&b, "x_%d^%d", i+1, e)
		}
	}
	return b.String()
}

// Package term implements Term, the ordered pair of a monomial and a
// vector of coefficients (spec 4.D). The vector has length 1 for an
// ordinary term and length 2 for the dual-carrier terms used
// throughout template generation, where position 0 carries a ℤ/pℤ
// value and position 1 its 𝕊 pre-image.
package term

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/monomial"
)

// A Term is a monomial paired with one or more synchronized
// coefficients. Dominant selects which carrier single-value accessors
// expose; arithmetic is always applied pointwise across every
// carrier.
type Term struct {
	mono      monomial.Monomial
	coeffs    []field.Coefficient
	dominant  int
}

// New returns a term over mono with the given coefficients in carrier
// order. The dominant carrier defaults to 0.
func New(mono monomial.Monomial, coeffs ...field.Coefficient) Term {
	c := make([]field.Coefficient, len(coeffs))
	copy(c, coeffs)
	return Term{mono: mono, coeffs: c, dominant: 0}
}

// Monomial returns t's monomial.
func (t Term) Monomial() monomial.Monomial { return t.mono }

// Coefficients returns a copy of t's coefficient vector.
func (t Term) Coefficients() []field.Coefficient {
	c := make([]field.Coefficient, len(t.coeffs))
	copy(c, t.coeffs)
	return c
}

// Coefficient returns the i'th carrier's coefficient.
func (t Term) Coefficient(i int) field.Coefficient { return t.coeffs[i] }

// NumCarriers returns the number of coefficient carriers.
func (t Term) NumCarriers() int { return len(t.coeffs) }

// Dominant returns the dominant carrier index.
func (t Term) Dominant() int { return t.dominant }

// DominantCoefficient returns the coefficient exposed by single-value
// accessors.
func (t Term) DominantCoefficient() field.Coefficient { return t.coeffs[t.dominant] }

// SetDominant returns a copy of t with the dominant carrier
// reassigned. It fails with errs.ErrBounds if i is out of range.
func (t Term) SetDominant(i int) (Term, error) {
	if i < 0 || i >= len(t.coeffs) {
		return Term{}, errors.Wrapf(errs.ErrBounds, "set dominant: index %d out of [0,%d)", i, len(t.coeffs))
	}
	u := t
	u.coeffs = t.Coefficients()
	u.dominant = i
	return u, nil
}

// IsSimilar reports whether t and other may be combined by a binary
// operation: same arity, same monomial ordering, same carrier count,
// and matching per-carrier kind (and, for Zp, characteristic).
func (t Term) IsSimilar(other Term) bool {
	if t.mono.Arity() != other.mono.Arity() {
		return false
	}
	if t.mono.Order() != other.mono.Order() {
		return false
	}
	if len(t.coeffs) != len(other.coeffs) {
		return false
	}
	for i := range t.coeffs {
		if t.coeffs[i].Kind() != other.coeffs[i].Kind() {
			return false
		}
		if t.coeffs[i].Kind() == field.Zp {
			pa, _ := t.coeffs[i].Characteristic()
			pb, _ := other.coeffs[i].Characteristic()
			if pa != pb {
				return false
			}
		}
	}
	return true
}

// IsZero reports whether t's dominant coefficient is zero.
func (t Term) IsZero() bool { return t.coeffs[t.dominant].IsZero() }

// IsOne reports whether t's dominant coefficient is one and its
// monomial is the identity.
func (t Term) IsOne() bool { return t.coeffs[t.dominant].IsOne() && t.mono.IsIdentity() }

// Equal reports whether t and other have the same monomial and the
// same dominant coefficient.
func (t Term) Equal(other Term) (bool, error) {
	if !t.mono.Equal(other.mono) {
		return false, nil
	}
	return t.coeffs[t.dominant].Equal(other.coeffs[other.dominant])
}

// Compare orders t and other by monomial only, under the given order.
func (t Term) Compare(other Term, order monomial.Order) (int, error) {
	return t.mono.Compare(other.mono, order)
}

func (t Term) checkBinary(op string, other Term) error {
	if !t.IsSimilar(other) {
		return errors.Wrapf(errs.ErrTypeMismatch, "%s: terms are not similar", op)
	}
	return nil
}

// Add returns t+other. Both terms must share the same monomial (term
// level addition is only meaningful inside polynomial insertion, which
// merges equal monomials); a differing monomial is reported as
// errs.ErrTypeMismatch, the closest bucket in the taxonomy to an
// invalid-argument error.
func (t Term) Add(other Term) (Term, error) {
	if err := t.checkBinary("term add", other); err != nil {
		return Term{}, err
	}
	if !t.mono.Equal(other.mono) {
		return Term{}, errors.Wrap(errs.ErrTypeMismatch, "term add: monomials differ")
	}
	coeffs := make([]field.Coefficient, len(t.coeffs))
	for i := range coeffs {
		c, err := t.coeffs[i].Add(other.coeffs[i])
		if err != nil {
			return Term{}, errors.Wrap(err, "term add")
		}
		coeffs[i] = c
	}
	return Term{mono: t.mono, coeffs: coeffs, dominant: t.dominant}, nil
}

// Sub returns t-other, under the same monomial constraint as Add.
func (t Term) Sub(other Term) (Term, error) {
	if err := t.checkBinary("term sub", other); err != nil {
		return Term{}, err
	}
	if !t.mono.Equal(other.mono) {
		return Term{}, errors.Wrap(errs.ErrTypeMismatch, "term sub: monomials differ")
	}
	coeffs := make([]field.Coefficient, len(t.coeffs))
	for i := range coeffs {
		c, err := t.coeffs[i].Sub(other.coeffs[i])
		if err != nil {
			return Term{}, errors.Wrap(err, "term sub")
		}
		coeffs[i] = c
	}
	return Term{mono: t.mono, coeffs: coeffs, dominant: t.dominant}, nil
}

// Mul returns t*other: the product monomial with pointwise coefficient
// products.
func (t Term) Mul(other Term) (Term, error) {
	if err := t.checkBinary("term mul", other); err != nil {
		return Term{}, err
	}
	mono, err := t.mono.Multiply(other.mono)
	if err != nil {
		return Term{}, errors.Wrap(err, "term mul")
	}
	coeffs := make([]field.Coefficient, len(t.coeffs))
	for i := range coeffs {
		c, err := t.coeffs[i].Mul(other.coeffs[i])
		if err != nil {
			return Term{}, errors.Wrap(err, "term mul")
		}
		coeffs[i] = c
	}
	return Term{mono: mono, coeffs: coeffs, dominant: t.dominant}, nil
}

// Neg returns -t.
func (t Term) Neg() Term {
	coeffs := make([]field.Coefficient, len(t.coeffs))
	for i := range coeffs {
		coeffs[i] = t.coeffs[i].Neg()
	}
	return Term{mono: t.mono, coeffs: coeffs, dominant: t.dominant}
}

// Zero returns the additive identity with the same type as t: every
// carrier's coefficient is zero and the monomial is the identity. If
// full is false, only the dominant carrier survives.
func (t Term) Zero(full bool) Term {
	ident := monomial.New(t.mono.Arity(), t.mono.Order())
	if !full {
		c := field.ZeroCoefficient(t.coeffs[t.dominant].Kind(), characteristicOf(t.coeffs[t.dominant]))
		return Term{mono: ident, coeffs: []field.Coefficient{c}, dominant: 0}
	}
	coeffs := make([]field.Coefficient, len(t.coeffs))
	for i := range coeffs {
		coeffs[i] = field.ZeroCoefficient(t.coeffs[i].Kind(), characteristicOf(t.coeffs[i]))
	}
	return Term{mono: ident, coeffs: coeffs, dominant: t.dominant}
}

// One returns the multiplicative identity with the same type as t.
// If full is false, only the dominant carrier survives.
func (t Term) One(full bool) Term {
	ident := monomial.New(t.mono.Arity(), t.mono.Order())
	if !full {
		c := field.OneCoefficient(t.coeffs[t.dominant].Kind(), characteristicOf(t.coeffs[t.dominant]))
		return Term{mono: ident, coeffs: []field.Coefficient{c}, dominant: 0}
	}
	coeffs := make([]field.Coefficient, len(t.coeffs))
	for i := range coeffs {
		coeffs[i] = field.OneCoefficient(t.coeffs[i].Kind(), characteristicOf(t.coeffs[i]))
	}
	return Term{mono: ident, coeffs: coeffs, dominant: t.dominant}
}

func characteristicOf(c field.Coefficient) uint64 {
	p, err := c.Characteristic()
	if err != nil {
		return 0
	}
	return p
}

// String renders t as "coefficient*monomial" using the dominant
// carrier.
func (t Term) String() string {
	var b strings.Builder
	b.WriteString(t.coeffs[t.dominant].String())
	if !t.mono.IsIdentity() {
		b.WriteByte('*')
		b.WriteString(t.mono.String())
	}
	return b.String()
}

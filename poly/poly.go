// Package poly implements Polynomial, the ordered term container of
// spec 4.E: a descending sequence of terms keyed by monomial under a
// fixed monomial order, with no zero terms, no repeated monomials, and
// a reserved placeholder for the zero polynomial.
package poly

import (
	"iter"
	"strings"

	"github.com/jba/omap"
	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/term"
)

// A Type fixes the closed set of attributes spec 4.E requires two
// polynomials to share before any binary operation is defined on them:
// the monomial ordering tag, the arity, the carrier count, and the
// per-carrier field kinds (and, for ℤ/pℤ carriers, their shared
// characteristic).
type Type struct {
	Order          monomial.Order
	Arity          int
	CarrierKinds   []field.Kind
	Characteristic uint64
	Dominant       int
}

func (t Type) carrierCharacteristic(i int) uint64 {
	if t.CarrierKinds[i] == field.Zp {
		return t.Characteristic
	}
	return 0
}

func (t Type) zeroCoeffs() []field.Coefficient {
	c := make([]field.Coefficient, len(t.CarrierKinds))
	for i, k := range t.CarrierKinds {
		c[i] = field.ZeroCoefficient(k, t.carrierCharacteristic(i))
	}
	return c
}

func (t Type) matches(tm term.Term) bool {
	if tm.Monomial().Arity() != t.Arity {
		return false
	}
	if tm.NumCarriers() != len(t.CarrierKinds) {
		return false
	}
	for i, k := range t.CarrierKinds {
		c := tm.Coefficient(i)
		if c.Kind() != k {
			return false
		}
		if k == field.Zp {
			p, _ := c.Characteristic()
			if p != t.Characteristic {
				return false
			}
		}
	}
	return true
}

// A Polynomial is the ordered-descending container of terms described
// by spec 4.E. The zero value is not usable; construct with Empty or
// New.
type Polynomial struct {
	typ   Type
	sugar int
	m     *omap.MapFunc[monomial.Monomial, []field.Coefficient]
}

func newMap(order monomial.Order) *omap.MapFunc[monomial.Monomial, []field.Coefficient] {
	cmp := func(a, b monomial.Monomial) int {
		c, err := a.Compare(b, order)
		if err != nil {
			panic(err)
		}
		return c
	}
	return omap.NewMapFunc[monomial.Monomial, []field.Coefficient](cmp)
}

// Empty returns the zero polynomial of the given type.
func Empty(typ Type) *Polynomial {
	return &Polynomial{typ: typ, m: newMap(typ.Order)}
}

// New returns a polynomial of the given type containing terms. Terms
// that do not match typ fail with errs.ErrTypeMismatch.
func New(typ Type, terms ...term.Term) (*Polynomial, error) {
	x := Empty(typ)
	for _, t := range terms {
		if err := x.addTerm(1, t); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// TypeOf derives a Type from a single representative term, using
// order as the polynomial's ordering tag.
func TypeOf(order monomial.Order, t term.Term) Type {
	kinds := make([]field.Kind, t.NumCarriers())
	var characteristic uint64
	for i := range kinds {
		c := t.Coefficient(i)
		kinds[i] = c.Kind()
		if kinds[i] == field.Zp {
			characteristic, _ = c.Characteristic()
		}
	}
	return Type{
		Order:        order,
		Arity:        t.Monomial().Arity(),
		CarrierKinds: kinds,
		Characteristic: characteristic,
		Dominant:     t.Dominant(),
	}
}

// Type returns x's type.
func (x *Polynomial) Type() Type { return x.typ }

// Order returns the monomial order employed by x.
func (x *Polynomial) Order() monomial.Order { return x.typ.Order }

// Len reports the number of nonzero terms in x.
func (x *Polynomial) Len() int { return x.m.Len() }

// Sugar returns x's sugar, an auxiliary non-negative integer carried
// for use by downstream elimination heuristics.
func (x *Polynomial) Sugar() int { return x.sugar }

// SetSugar overrides x's sugar value directly.
func (x *Polynomial) SetSugar(s int) { x.sugar = s }

// Terms iterates x's terms from the leading term down to the
// smallest, mirroring the printed order.
func (x *Polynomial) Terms() iter.Seq[term.Term] {
	return func(yield func(term.Term) bool) {
		for w, c := range x.m.Backward() {
			t := term.New(w, c...)
			var err error
			t, err = t.SetDominant(x.typ.Dominant)
			if err != nil {
				panic(err)
			}
			if !yield(t) {
				return
			}
		}
	}
}

// LeadingTerm returns the term of the greatest monomial under x's
// order. The zero polynomial's leading term is the reserved
// placeholder zero term of x's type.
func (x *Polynomial) LeadingTerm() term.Term {
	w, ok := x.m.Max()
	if !ok {
		return placeholderZero(x.typ)
	}
	c, _ := x.m.Get(w)
	t := term.New(w, c...)
	t, _ = t.SetDominant(x.typ.Dominant)
	return t
}

func placeholderZero(typ Type) term.Term {
	ident := monomial.New(typ.Arity, typ.Order)
	t := term.New(ident, typ.zeroCoeffs()...)
	t, _ = t.SetDominant(typ.Dominant)
	return t
}

// IsZero reports whether x has no terms.
func (x *Polynomial) IsZero() bool { return x.m.Len() == 0 }

// Equal reports whether x and y have exactly the same monomials and
// coefficients, term for term, in their shared order.
func (x *Polynomial) Equal(y *Polynomial) bool {
	if x.m.Len() != y.m.Len() {
		return false
	}
	for i := range x.m.Len() {
		xw, xc := x.m.At(i)
		yw, yc := y.m.At(i)
		if !xw.Equal(yw) {
			return false
		}
		if len(xc) != len(yc) {
			return false
		}
		for k := range xc {
			ok, err := xc[k].Equal(yc[k])
			if err != nil || !ok {
				return false
			}
		}
	}
	return true
}

func (x *Polynomial) checkBinary(op string, y *Polynomial) error {
	if x.typ.Order != y.typ.Order {
		return errors.Wrapf(errs.ErrTypeMismatch, "%s: order %s vs %s", op, x.typ.Order, y.typ.Order)
	}
	if x.typ.Arity != y.typ.Arity {
		return errors.Wrapf(errs.ErrTypeMismatch, "%s: arity %d vs %d", op, x.typ.Arity, y.typ.Arity)
	}
	if len(x.typ.CarrierKinds) != len(y.typ.CarrierKinds) {
		return errors.Wrapf(errs.ErrTypeMismatch, "%s: carrier count %d vs %d", op, len(x.typ.CarrierKinds), len(y.typ.CarrierKinds))
	}
	for i := range x.typ.CarrierKinds {
		if x.typ.CarrierKinds[i] != y.typ.CarrierKinds[i] {
			return errors.Wrapf(errs.ErrTypeMismatch, "%s: carrier %d kind %s vs %s", op, i, x.typ.CarrierKinds[i], y.typ.CarrierKinds[i])
		}
		if x.typ.CarrierKinds[i] == field.Zp && x.typ.Characteristic != y.typ.Characteristic {
			return errors.Wrapf(errs.ErrTypeMismatch, "%s: characteristic %d vs %d", op, x.typ.Characteristic, y.typ.Characteristic)
		}
	}
	return nil
}

// Set sets z to x (a full rebuild, not a reference share: because
// field.Value is immutable a rebuild and a structural share are
// observationally identical, and this is the shape the teacher's own
// Set used) and returns z.
func (z *Polynomial) Set(x *Polynomial) *Polynomial {
	if z == x {
		return z
	}
	z.typ = x.typ
	z.sugar = x.sugar
	z.m = newMap(z.typ.Order)
	for xw, xc := range x.m.All() {
		z.m.Set(xw, cloneCoeffs(xc))
	}
	return z
}

func cloneCoeffs(c []field.Coefficient) []field.Coefficient {
	out := make([]field.Coefficient, len(c))
	for i := range c {
		out[i] = c[i].Clone()
	}
	return out
}

// addTerm folds sign*t into x, deleting the monomial's entry if the
// result cancels to zero.
func (x *Polynomial) addTerm(sign int, t term.Term) error {
	if !x.typ.matches(t) {
		return errors.Wrap(errs.ErrTypeMismatch, "polynomial: term does not match polynomial type")
	}
	w := t.Monomial().SetOrder(x.typ.Order)
	existing, ok := x.m.Get(w)
	if !ok {
		existing = x.typ.zeroCoeffs()
	}
	incoming := t.Coefficients()
	out := make([]field.Coefficient, len(existing))
	allZero := true
	for i := range out {
		var c field.Coefficient
		var err error
		if sign < 0 {
			c, err = existing[i].Sub(incoming[i])
		} else {
			c, err = existing[i].Add(incoming[i])
		}
		if err != nil {
			return errors.Wrap(err, "polynomial add term")
		}
		out[i] = c
		if !c.IsZero() {
			allZero = false
		}
	}
	if allZero {
		x.m.Delete(w)
	} else {
		x.m.Set(w, out)
	}
	return nil
}

// Add sets z to x+y and returns z. z may alias x or y.
func (z *Polynomial) Add(x, y *Polynomial) (*Polynomial, error) {
	if err := x.checkBinary("polynomial add", y); err != nil {
		return nil, err
	}
	if y == z {
		x, y = y, x
	}
	if z != x {
		z.typ = x.typ
		z.m = newMap(z.typ.Order)
		for xw, xc := range x.m.All() {
			z.m.Set(xw, cloneCoeffs(xc))
		}
	}
	for yw, yc := range y.m.All() {
		t := term.New(yw, yc...)
		if err := z.addTerm(1, t); err != nil {
			return nil, err
		}
	}
	z.sugar = max(x.sugar, y.sugar)
	return z, nil
}

// Sub sets z to x-y and returns z. z may alias x or y.
func (z *Polynomial) Sub(x, y *Polynomial) (*Polynomial, error) {
	if err := x.checkBinary("polynomial sub", y); err != nil {
		return nil, err
	}
	if y == z {
		neg := Empty(y.typ)
		for yw, yc := range y.m.All() {
			neg.m.Set(yw, negCoeffs(yc))
		}
		return z.Add(x, neg)
	}
	if z != x {
		z.typ = x.typ
		z.m = newMap(z.typ.Order)
		for xw, xc := range x.m.All() {
			z.m.Set(xw, cloneCoeffs(xc))
		}
	}
	for yw, yc := range y.m.All() {
		t := term.New(yw, yc...)
		if err := z.addTerm(-1, t); err != nil {
			return nil, err
		}
	}
	z.sugar = max(x.sugar, y.sugar)
	return z, nil
}

func negCoeffs(c []field.Coefficient) []field.Coefficient {
	out := make([]field.Coefficient, len(c))
	for i := range c {
		out[i] = c[i].Neg()
	}
	return out
}

// Mul sets z to x*y and returns z. Unlike Add/Sub, z must not alias x
// or y: the product is built incrementally into z's own storage while
// both inputs are read, exactly as the multiplication this is grounded
// on; aliasing is a programmer error and panics.
func (z *Polynomial) Mul(x, y *Polynomial) (*Polynomial, error) {
	if z == x || z == y {
		panic("poly: z must not alias x or y in Mul")
	}
	if err := x.checkBinary("polynomial mul", y); err != nil {
		return nil, err
	}
	z.typ = x.typ
	z.m = newMap(z.typ.Order)
	for xw, xc := range x.m.Backward() {
		for yw, yc := range y.m.Backward() {
			xt := term.New(xw, xc...)
			yt := term.New(yw, yc...)
			xt, _ = xt.SetDominant(x.typ.Dominant)
			yt, _ = yt.SetDominant(y.typ.Dominant)
			p, err := xt.Mul(yt)
			if err != nil {
				return nil, errors.Wrap(err, "polynomial mul")
			}
			if err := z.addTerm(1, p); err != nil {
				return nil, err
			}
		}
	}
	z.sugar = x.sugar + y.sugar
	return z, nil
}

// Neg sets z to -x and returns z.
func (z *Polynomial) Neg(x *Polynomial) *Polynomial {
	z.typ = x.typ
	z.sugar = x.sugar
	z.m = newMap(z.typ.Order)
	for xw, xc := range x.m.All() {
		z.m.Set(xw, negCoeffs(xc))
	}
	return z
}

// Scale sets z to scalar*x and returns z. scalar is applied to every
// carrier of every term.
func (z *Polynomial) Scale(scalar []field.Coefficient, x *Polynomial) (*Polynomial, error) {
	if len(scalar) != len(x.typ.CarrierKinds) {
		return nil, errors.Wrap(errs.ErrShapeMismatch, "polynomial scale: carrier count mismatch")
	}
	if z == x {
		for xw, xc := range x.m.All() {
			out := make([]field.Coefficient, len(xc))
			for i := range out {
				c, err := xc[i].Mul(scalar[i])
				if err != nil {
					return nil, errors.Wrap(err, "polynomial scale")
				}
				out[i] = c
			}
			if allZeroCoeffs(out) {
				z.m.Delete(xw)
			} else {
				z.m.Set(xw, out)
			}
		}
		return z, nil
	}
	z.typ = x.typ
	z.sugar = x.sugar
	z.m = newMap(z.typ.Order)
	for xw, xc := range x.m.All() {
		out := make([]field.Coefficient, len(xc))
		for i := range out {
			c, err := xc[i].Mul(scalar[i])
			if err != nil {
				return nil, errors.Wrap(err, "polynomial scale")
			}
			out[i] = c
		}
		if !allZeroCoeffs(out) {
			z.m.Set(xw, out)
		}
	}
	return z, nil
}

func allZeroCoeffs(c []field.Coefficient) bool {
	for _, v := range c {
		if !v.IsZero() {
			return false
		}
	}
	return true
}

// DifferentOrderVersion returns a new polynomial with the same terms
// under a different monomial order.
func (x *Polynomial) DifferentOrderVersion(order monomial.Order) *Polynomial {
	typ := x.typ
	typ.Order = order
	y := Empty(typ)
	for xw, xc := range x.m.All() {
		y.m.Set(xw.SetOrder(order), cloneCoeffs(xc))
	}
	y.sugar = x.sugar
	return y
}

// Approximate returns the lower-degree approximation of x: a new
// polynomial retaining only the terms of total degree at most
// degreeCap.
func (x *Polynomial) Approximate(degreeCap int) *Polynomial {
	y := Empty(x.typ)
	for xw, xc := range x.m.All() {
		if xw.Degree() <= degreeCap {
			y.m.Set(xw, cloneCoeffs(xc))
		}
	}
	y.sugar = x.sugar
	return y
}

// EvalR evaluates x at the given real point. It requires every
// carrier to be of kind field.R.
func (x *Polynomial) EvalR(values []float64) (float64, error) {
	for _, k := range x.typ.CarrierKinds {
		if k != field.R {
			return 0, errors.Wrap(errs.ErrUnsupported, "eval: not all carriers are real")
		}
	}
	var sum float64
	for xw, xc := range x.m.All() {
		mv, err := xw.Evaluate(values)
		if err != nil {
			return 0, errors.Wrap(err, "eval")
		}
		for _, c := range xc {
			rv, ok := c.Value().(interface{ Float64() float64 })
			if !ok {
				return 0, errors.Wrap(errs.ErrUnsupported, "eval: carrier has no float view")
			}
			sum += rv.Float64() * mv
		}
	}
	return sum, nil
}

// EvalGeneric substitutes values (one per unknown, of the dominant
// carrier's kind) into x by repeated multiplication, and works for any
// field kind including ℤ/pℤ and 𝕊.
func (x *Polynomial) EvalGeneric(values []field.Coefficient) (field.Coefficient, error) {
	if len(values) != x.typ.Arity {
		return field.Coefficient{}, errors.Wrapf(errs.ErrTypeMismatch, "eval: arity %d vs %d values", x.typ.Arity, len(values))
	}
	dom := x.typ.Dominant
	sum := field.ZeroCoefficient(x.typ.CarrierKinds[dom], x.typ.carrierCharacteristic(dom))
	for xw, xc := range x.m.All() {
		term := xc[dom]
		for i, e := range xw.Exponents() {
			for k := 0; k < e; k++ {
				p, err := term.Mul(values[i])
				if err != nil {
					return field.Coefficient{}, errors.Wrap(err, "eval generic")
				}
				term = p
			}
		}
		s, err := sum.Add(term)
		if err != nil {
			return field.Coefficient{}, errors.Wrap(err, "eval generic")
		}
		sum = s
	}
	return sum, nil
}

// String renders x from the leading term down, "0" for the zero
// polynomial.
func (x *Polynomial) String() string {
	if x.m.Len() == 0 {
		return "0"
	}
	var b strings.Builder
	first := true
	for i := range x.m.Len() {
		w, c := x.m.At(x.m.Len() - 1 - i)
		t := term.New(w, c...)
		t, _ = t.SetDominant(x.typ.Dominant)
		s := t.String()
		if !first && len(s) > 0 && s[0] != '-' {
			b.WriteByte('+')
		}
		first = false
		b.WriteString(s)
	}
	return b.String()
}

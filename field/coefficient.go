package field

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
)

// A Coefficient is a type-erased field element: a thin dispatcher over
// Value that exposes the factory shortcuts named in spec 4.B. Because
// Value is itself immutable, ordinary Go assignment already gives
// Coefficient's "assignment shares" semantics; Clone performs the one
// deep copy operation a mutable backing type (Q, Sym) requires.
type Coefficient struct {
	v Value
}

// NewCoefficient wraps an existing Value.
func NewCoefficient(v Value) Coefficient { return Coefficient{v: v} }

// NewCoefficientR returns a real coefficient equal to value.
func NewCoefficientR(value float64) Coefficient { return Coefficient{v: NewR(value)} }

// NewCoefficientQ returns a rational coefficient num/den.
func NewCoefficientQ(num int64, den uint64) (Coefficient, error) {
	v, err := NewQ(num, den)
	if err != nil {
		return Coefficient{}, errors.Wrap(err, "new coefficient Q")
	}
	return Coefficient{v: v}, nil
}

// NewCoefficientInt casts the integer n into kind k. For Sym, n
// becomes the constant symbolic value n; for Zp, n is reduced modulo
// characteristic.
func NewCoefficientInt(n int64, k Kind, characteristic uint64) Coefficient {
	switch k {
	case R:
		return Coefficient{v: NewR(float64(n))}
	case Q:
		return Coefficient{v: newQ(n, 1)}
	case Zp:
		return Coefficient{v: NewZp(n, characteristic)}
	case Sym:
		return Coefficient{v: NewSymInt(n)}
	default:
		panic("field: unknown kind")
	}
}

// NewCoefficientName returns the symbolic coefficient consisting of
// the single named indeterminate. Only Sym supports construction from
// a name.
func NewCoefficientName(name string) Coefficient { return Coefficient{v: NewSym(name)} }

// ZeroCoefficient returns the additive identity of kind k.
func ZeroCoefficient(k Kind, characteristic uint64) Coefficient {
	return Coefficient{v: Zero(k, characteristic)}
}

// OneCoefficient returns the multiplicative identity of kind k.
func OneCoefficient(k Kind, characteristic uint64) Coefficient {
	return Coefficient{v: One(k, characteristic)}
}

// RandomCoefficient returns a uniformly distributed coefficient of
// kind k. bound restricts the numerator/denominator range for Q and
// the interval for R; it is ignored for Zp and Sym.
func RandomCoefficient(k Kind, rng *rand.Rand, characteristic uint64, bound float64) Coefficient {
	switch k {
	case R:
		if bound == 0 {
			bound = 1
		}
		return Coefficient{v: RandomR(rng, -bound, bound)}
	case Q:
		b := int64(bound)
		if b == 0 {
			b = 1 << 16
		}
		return Coefficient{v: RandomQ(rng, b)}
	case Zp:
		return Coefficient{v: RandomZp(rng, characteristic)}
	case Sym:
		panic("field: symbolic values have no random generator")
	default:
		panic("field: unknown kind")
	}
}

// Value returns the underlying field element.
func (c Coefficient) Value() Value { return c.v }

// Kind returns the coefficient's field kind.
func (c Coefficient) Kind() Kind { return c.v.Kind() }

// Characteristic returns the prime characteristic. It fails with
// errs.ErrUnsupported unless Kind() == Zp.
func (c Coefficient) Characteristic() (uint64, error) {
	if c.v.Kind() != Zp {
		return 0, errors.Wrapf(errs.ErrUnsupported, "characteristic: kind %s has none", c.v.Kind())
	}
	return c.v.Characteristic(), nil
}

// Clone performs a deep copy.
func (c Coefficient) Clone() Coefficient { return Coefficient{v: c.v.clone()} }

// IsZero reports whether c is the additive identity.
func (c Coefficient) IsZero() bool { return c.v.IsZero() }

// IsOne reports whether c is the multiplicative identity.
func (c Coefficient) IsOne() bool { return c.v.IsOne() }

func (c Coefficient) String() string { return c.v.String() }

// Add returns c+other.
func (c Coefficient) Add(other Coefficient) (Coefficient, error) {
	v, err := Add(c.v, other.v)
	if err != nil {
		return Coefficient{}, errors.Wrap(err, "coefficient add")
	}
	return Coefficient{v: v}, nil
}

// Sub returns c-other.
func (c Coefficient) Sub(other Coefficient) (Coefficient, error) {
	v, err := Sub(c.v, other.v)
	if err != nil {
		return Coefficient{}, errors.Wrap(err, "coefficient sub")
	}
	return Coefficient{v: v}, nil
}

// Mul returns c*other.
func (c Coefficient) Mul(other Coefficient) (Coefficient, error) {
	v, err := Mul(c.v, other.v)
	if err != nil {
		return Coefficient{}, errors.Wrap(err, "coefficient mul")
	}
	return Coefficient{v: v}, nil
}

// Div returns c/other.
func (c Coefficient) Div(other Coefficient) (Coefficient, error) {
	v, err := Div(c.v, other.v)
	if err != nil {
		return Coefficient{}, errors.Wrap(err, "coefficient div")
	}
	return Coefficient{v: v}, nil
}

// Neg returns -c.
func (c Coefficient) Neg() Coefficient { return Coefficient{v: Neg(c.v)} }

// Inv returns 1/c.
func (c Coefficient) Inv() (Coefficient, error) {
	v, err := Inv(c.v)
	if err != nil {
		return Coefficient{}, errors.Wrap(err, "coefficient inv")
	}
	return Coefficient{v: v}, nil
}

// Equal reports whether c equals other.
func (c Coefficient) Equal(other Coefficient) (bool, error) {
	ok, err := Equal(c.v, other.v)
	if err != nil {
		return false, errors.Wrap(err, "coefficient equal")
	}
	return ok, nil
}

// Cmp performs a strict comparison; see Cmp.
func (c Coefficient) Cmp(other Coefficient) (int, error) {
	v, err := Cmp(c.v, other.v)
	if err != nil {
		return 0, errors.Wrap(err, "coefficient cmp")
	}
	return v, nil
}

package field

import (
	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
)

// A Value is an immutable element of one of the four supported fields.
// Concrete implementations are rVal, qVal, zpVal and symVal. Package
// level functions, not methods, implement binary arithmetic so that a
// kind (and, for Zp, characteristic) mismatch can be reported as
// errs.ErrTypeMismatch before any operation executes.
type Value interface {
	Kind() Kind
	// Characteristic is only meaningful for Zp; it returns 0 otherwise.
	Characteristic() uint64
	IsZero() bool
	IsOne() bool
	String() string
	clone() Value
}

// Clone performs a deep copy of x.
func Clone(x Value) Value { return x.clone() }

// Zero returns the additive identity of kind k. characteristic is only
// consulted when k == Zp; pass 0 to get DefaultCharacteristic.
func Zero(k Kind, characteristic uint64) Value {
	switch k {
	case R:
		return rVal(0)
	case Q:
		return newQ(0, 1)
	case Zp:
		return newZp(0, normalizeCharacteristic(characteristic))
	case Sym:
		return symVal{}
	default:
		panic("field: unknown kind")
	}
}

// One returns the multiplicative identity of kind k.
func One(k Kind, characteristic uint64) Value {
	switch k {
	case R:
		return rVal(1)
	case Q:
		return newQ(1, 1)
	case Zp:
		return newZp(1, normalizeCharacteristic(characteristic))
	case Sym:
		return symVal{{factor: 1}}
	default:
		panic("field: unknown kind")
	}
}

func normalizeCharacteristic(p uint64) uint64 {
	if p == 0 {
		return DefaultCharacteristic
	}
	return p
}

func checkKinds(op string, x, y Value) error {
	if x.Kind() != y.Kind() {
		return errors.Wrapf(errs.ErrTypeMismatch, "%s: kind %s vs %s", op, x.Kind(), y.Kind())
	}
	if x.Kind() == Zp && x.Characteristic() != y.Characteristic() {
		return errors.Wrapf(errs.ErrTypeMismatch, "%s: characteristic %d vs %d", op, x.Characteristic(), y.Characteristic())
	}
	return nil
}

// Add returns x+y, or errs.ErrTypeMismatch if x and y are of different
// kinds (or, for Zp, different characteristics).
func Add(x, y Value) (Value, error) {
	if err := checkKinds("add", x, y); err != nil {
		return nil, err
	}
	switch a := x.(type) {
	case rVal:
		return a + y.(rVal), nil
	case qVal:
		return addQ(a, y.(qVal)), nil
	case zpVal:
		return addZp(a, y.(zpVal)), nil
	case symVal:
		return addSym(a, y.(symVal)), nil
	default:
		panic("field: unknown value type")
	}
}

// Sub returns x-y, or errs.ErrTypeMismatch if x and y are of different
// kinds.
func Sub(x, y Value) (Value, error) {
	if err := checkKinds("sub", x, y); err != nil {
		return nil, err
	}
	return Add(x, Neg(y))
}

// Mul returns x*y, or errs.ErrTypeMismatch if x and y are of different
// kinds.
func Mul(x, y Value) (Value, error) {
	if err := checkKinds("mul", x, y); err != nil {
		return nil, err
	}
	switch a := x.(type) {
	case rVal:
		return a * y.(rVal), nil
	case qVal:
		return mulQ(a, y.(qVal)), nil
	case zpVal:
		return mulZp(a, y.(zpVal)), nil
	case symVal:
		return mulSym(a, y.(symVal)), nil
	default:
		panic("field: unknown value type")
	}
}

// Div returns x/y. It fails with errs.ErrTypeMismatch on a kind
// mismatch, errs.ErrArithmeticDomain if y is zero (R, Q, Zp), and
// errs.ErrUnsupported if x or y is symbolic.
func Div(x, y Value) (Value, error) {
	if err := checkKinds("div", x, y); err != nil {
		return nil, err
	}
	if x.Kind() == Sym {
		return nil, errors.Wrap(errs.ErrUnsupported, "div: symbolic division")
	}
	yInv, err := Inv(y)
	if err != nil {
		return nil, errors.Wrap(err, "div")
	}
	return Mul(x, yInv)
}

// Neg returns -x.
func Neg(x Value) Value {
	switch a := x.(type) {
	case rVal:
		return -a
	case qVal:
		return negQ(a)
	case zpVal:
		return negZp(a)
	case symVal:
		return negSym(a)
	default:
		panic("field: unknown value type")
	}
}

// Inv returns 1/x. It fails with errs.ErrArithmeticDomain if x is
// zero (R, Q, Zp), and errs.ErrUnsupported if x is symbolic.
func Inv(x Value) (Value, error) {
	switch a := x.(type) {
	case rVal:
		if a == 0 {
			return nil, errors.Wrap(errs.ErrArithmeticDomain, "inv: division by zero")
		}
		return 1 / a, nil
	case qVal:
		return invQ(a)
	case zpVal:
		return invZp(a)
	case symVal:
		return nil, errors.Wrap(errs.ErrUnsupported, "inv: symbolic inversion")
	default:
		panic("field: unknown value type")
	}
}

// Equal reports whether x and y are equal. It fails with
// errs.ErrTypeMismatch on a kind mismatch.
func Equal(x, y Value) (bool, error) {
	if err := checkKinds("equal", x, y); err != nil {
		return false, err
	}
	switch a := x.(type) {
	case rVal:
		return a == y.(rVal), nil
	case qVal:
		return equalQ(a, y.(qVal)), nil
	case zpVal:
		return equalZp(a, y.(zpVal)), nil
	case symVal:
		return equalSym(a, y.(symVal)), nil
	default:
		panic("field: unknown value type")
	}
}

// Cmp performs a strict comparison, returning -1, 0, or 1. It is only
// supported for R and Q; Zp and Sym return errs.ErrUnsupported.
func Cmp(x, y Value) (int, error) {
	if err := checkKinds("cmp", x, y); err != nil {
		return 0, err
	}
	switch a := x.(type) {
	case rVal:
		return cmpR(a, y.(rVal)), nil
	case qVal:
		return cmpQ(a, y.(qVal)), nil
	default:
		return 0, errors.Wrapf(errs.ErrUnsupported, "cmp: kind %s has no strict order", x.Kind())
	}
}

func cmpR(x, y rVal) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

package field

import (
	"math/big"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
)

// qVal is a rational number, kept in lowest terms with the sign on the
// numerator, matching spec 4.A's ℚ invariant.
type qVal struct {
	num *big.Int
	den *big.Int
}

// NewQ returns the rational num/den, reduced to lowest terms. It fails
// with errs.ErrArithmeticDomain if den is zero.
func NewQ(num int64, den uint64) (Value, error) {
	if den == 0 {
		return nil, errors.Wrap(errs.ErrArithmeticDomain, "new Q: zero denominator")
	}
	return newQ(num, int64(den)), nil
}

func newQ(num, den int64) qVal {
	n := big.NewInt(num)
	d := big.NewInt(den)
	return reduceQ(n, d)
}

// reduceQ normalizes n/d to lowest terms with the sign carried on the
// numerator and a strictly positive denominator.
func reduceQ(n, d *big.Int) qVal {
	if d.Sign() < 0 {
		n = new(big.Int).Neg(n)
		d = new(big.Int).Neg(d)
	}
	if n.Sign() == 0 {
		return qVal{num: big.NewInt(0), den: big.NewInt(1)}
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	return qVal{
		num: new(big.Int).Quo(n, g),
		den: new(big.Int).Quo(d, g),
	}
}

func (x qVal) Kind() Kind             { return Q }
func (x qVal) Characteristic() uint64 { return 0 }
func (x qVal) IsZero() bool           { return x.num.Sign() == 0 }
func (x qVal) IsOne() bool            { return x.num.Cmp(x.den) == 0 }
func (x qVal) clone() Value {
	return qVal{num: new(big.Int).Set(x.num), den: new(big.Int).Set(x.den)}
}
func (x qVal) String() string {
	if x.den.Cmp(big.NewInt(1)) == 0 {
		return x.num.String()
	}
	return x.num.String() + "/" + x.den.String()
}

// Num returns the numerator.
func (x qVal) Num() *big.Int { return x.num }

// Den returns the denominator, always strictly positive.
func (x qVal) Den() *big.Int { return x.den }

func addQ(x, y qVal) qVal {
	n := new(big.Int).Add(new(big.Int).Mul(x.num, y.den), new(big.Int).Mul(y.num, x.den))
	d := new(big.Int).Mul(x.den, y.den)
	return reduceQ(n, d)
}

func negQ(x qVal) qVal {
	return qVal{num: new(big.Int).Neg(x.num), den: new(big.Int).Set(x.den)}
}

func mulQ(x, y qVal) qVal {
	n := new(big.Int).Mul(x.num, y.num)
	d := new(big.Int).Mul(x.den, y.den)
	return reduceQ(n, d)
}

func invQ(x qVal) (Value, error) {
	if x.IsZero() {
		return nil, errors.Wrap(errs.ErrArithmeticDomain, "inv: division by zero")
	}
	return reduceQ(new(big.Int).Set(x.den), new(big.Int).Set(x.num)), nil
}

func equalQ(x, y qVal) bool {
	return x.num.Cmp(y.num) == 0 && x.den.Cmp(y.den) == 0
}

func cmpQ(x, y qVal) int {
	left := new(big.Int).Mul(x.num, y.den)
	right := new(big.Int).Mul(y.num, x.den)
	return left.Cmp(right)
}

// RandomQ returns a rational with numerator and denominator uniformly
// sampled from [-bound, bound] and [1, bound] respectively. Unlike the
// original generator, which sampled across the full 64-bit range, this
// bounds the sample to keep fractions small (see spec.md's open
// question on random coefficient sampling).
func RandomQ(rng *rand.Rand, bound int64) Value {
	if bound <= 0 {
		bound = 1 << 16
	}
	num := rng.Int63n(2*bound+1) - bound
	den := rng.Int63n(bound) + 1
	return newQ(num, den)
}

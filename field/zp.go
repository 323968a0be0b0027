package field

import (
	"math/big"
	"math/rand"
	"strconv"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
)

// zpVal is an unsigned residue in [0, p), adapted from the original
// generator's prime-field member.
type zpVal struct {
	v uint64
	p uint64
}

// NewZp returns v mod p as a member of the prime field ℤ/pℤ. Passing
// p == 0 selects DefaultCharacteristic.
func NewZp(v int64, p uint64) Value { return newZp(v, normalizeCharacteristic(p)) }

func newZp(v int64, p uint64) zpVal {
	m := v % int64(p)
	if m < 0 {
		m += int64(p)
	}
	return zpVal{v: uint64(m), p: p}
}

func (x zpVal) Kind() Kind             { return Zp }
func (x zpVal) Characteristic() uint64 { return x.p }
func (x zpVal) IsZero() bool           { return x.v == 0 }
func (x zpVal) IsOne() bool            { return x.v == 1 }
func (x zpVal) clone() Value           { return x }
func (x zpVal) String() string         { return strconv.FormatUint(x.v, 10) }

// Uint64 returns the residue as an unsigned integer in [0, p).
func (x zpVal) Uint64() uint64 { return x.v }

func addZp(x, y zpVal) zpVal {
	return zpVal{v: (x.v + y.v) % x.p, p: x.p}
}

func negZp(x zpVal) zpVal {
	if x.v == 0 {
		return x
	}
	return zpVal{v: x.p - x.v, p: x.p}
}

func mulZp(x, y zpVal) zpVal {
	// Multiply in big.Int to avoid overflow for large characteristics.
	prod := new(big.Int).Mul(new(big.Int).SetUint64(x.v), new(big.Int).SetUint64(y.v))
	prod.Mod(prod, new(big.Int).SetUint64(x.p))
	return zpVal{v: prod.Uint64(), p: x.p}
}

func invZp(x zpVal) (Value, error) {
	if x.v == 0 {
		return nil, errors.Wrap(errs.ErrArithmeticDomain, "inv: division by zero in Zp")
	}
	inv := new(big.Int).ModInverse(new(big.Int).SetUint64(x.v), new(big.Int).SetUint64(x.p))
	if inv == nil {
		return nil, errors.Wrapf(errs.ErrArithmeticDomain, "inv: %d has no inverse mod %d", x.v, x.p)
	}
	return zpVal{v: inv.Uint64(), p: x.p}, nil
}

func equalZp(x, y zpVal) bool {
	return x.v == y.v
}

// RandomZp returns a uniformly distributed member of ℤ/pℤ.
func RandomZp(rng *rand.Rand, p uint64) Value {
	p = normalizeCharacteristic(p)
	return zpVal{v: uint64(rng.Int63n(int64(p))), p: p}
}

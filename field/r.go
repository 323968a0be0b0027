package field

import (
	"math/rand"
	"strconv"
)

// rVal is a real, held as a 64-bit float. It is used only for
// evaluation and for the emitted code's own arithmetic.
type rVal float64

// NewR returns the real value v.
func NewR(v float64) Value { return rVal(v) }

func (x rVal) Kind() Kind                { return R }
func (x rVal) Characteristic() uint64    { return 0 }
func (x rVal) IsZero() bool              { return x == 0 }
func (x rVal) IsOne() bool               { return x == 1 }
func (x rVal) clone() Value              { return x }
func (x rVal) String() string            { return strconv.FormatFloat(float64(x), 'g', -1, 64) }
func (x rVal) Float64() float64          { return float64(x) }

// RandomR returns a uniformly distributed real in [lo, hi).
func RandomR(rng *rand.Rand, lo, hi float64) Value {
	return rVal(lo + rng.Float64()*(hi-lo))
}

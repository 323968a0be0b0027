package gauss

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
)

// Epsilon is the precision tolerance spec 4.H asks for when testing a
// floating ℝ value for zero.
const Epsilon = 1e-10

// A Real is a float64 Element, used to instantiate Reduce for the
// numeric paths that sit alongside the emitted code's own arithmetic
// rather than the field.Coefficient-based symbolic pipeline.
type Real float64

func (x Real) IsZero() bool { return math.Abs(float64(x)) < Epsilon }

func (x Real) Add(y Real) (Real, error) { return x + y, nil }
func (x Real) Sub(y Real) (Real, error) { return x - y, nil }
func (x Real) Mul(y Real) (Real, error) { return x * y, nil }

func (x Real) Div(y Real) (Real, error) {
	if y.IsZero() {
		return 0, errors.Wrap(errs.ErrArithmeticDomain, "gauss: division by zero")
	}
	return x / y, nil
}

func (x Real) Neg() Real { return -x }

func (x Real) String() string { return strconv.FormatFloat(float64(x), 'g', -1, 64) }

// ArgmaxAbsPivot implements spec 4.H's stability-motivated pivot rule
// for floating ℝ: among rows[fromRow:], pick the row with the largest
// absolute value in col.
func ArgmaxAbsPivot(m *Matrix[Real], fromRow, col int) (int, bool) {
	best := -1
	var bestAbs float64
	for r := fromRow; r < m.Rows(); r++ {
		v := math.Abs(float64(m.Row(r)[col]))
		if v > Epsilon && (best == -1 || v > bestAbs) {
			best, bestAbs = r, v
		}
	}
	return best, best != -1
}

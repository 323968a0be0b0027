// Package gauss implements the polymorphic Gauss-Jordan reduction of
// spec 4.H: forward elimination to row-echelon form followed by back
// substitution to reduced row-echelon form, over any element type that
// supports the four field operations and a zero test.
package gauss

import (
	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
)

// An Element is a field element usable by Reduce: the same four
// operations field.Coefficient already exposes, which is why
// field.Coefficient itself satisfies Element[field.Coefficient]
// without an adapter.
type Element[T any] interface {
	IsZero() bool
	Add(y T) (T, error)
	Sub(y T) (T, error)
	Mul(y T) (T, error)
	Div(y T) (T, error)
	Neg() T
}

// A Matrix is a dense row-major matrix over T, stored as independent
// row slices so that Reduce can delete a row in place.
type Matrix[T Element[T]] struct {
	rows [][]T
	cols int
}

// NewMatrix wraps rows, which must all share the same length. Row
// slices are used directly, not copied.
func NewMatrix[T Element[T]](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return &Matrix[T]{}, nil
	}
	cols := len(rows[0])
	for i, r := range rows {
		if len(r) != cols {
			return nil, errors.Wrapf(errs.ErrShapeMismatch, "gauss: row %d has %d columns, want %d", i, len(r), cols)
		}
	}
	return &Matrix[T]{rows: rows, cols: cols}, nil
}

// Rows returns the current row count (shrinks as Reduce deletes
// all-zero rows).
func (m *Matrix[T]) Rows() int { return len(m.rows) }

// Cols returns the column count.
func (m *Matrix[T]) Cols() int { return m.cols }

// Row returns row i directly (not a copy).
func (m *Matrix[T]) Row(i int) []T { return m.rows[i] }

// AllRows returns the full row set, directly (not a copy).
func (m *Matrix[T]) AllRows() [][]T { return m.rows }

func (m *Matrix[T]) deleteRow(i int) {
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
}

// A PivotSelector picks, among rows[fromRow:], the row to use as the
// pivot for column col. It returns the row's absolute index and false
// if every candidate row is zero in that column.
type PivotSelector[T Element[T]] func(m *Matrix[T], fromRow, col int) (int, bool)

// A ZeroTest reports whether v should be treated as zero. Exact kinds
// use v.IsZero(); ℝ additionally tolerates the ε = 1e-10 the spec asks
// for (see Real.IsZero).
type ZeroTest[T Element[T]] func(v T) bool

// FirstNonZeroPivot returns the PivotSelector spec 4.H calls for over
// exact kinds: the first row (scanning top to bottom) whose entry in
// col is not zero under isZero.
func FirstNonZeroPivot[T Element[T]](isZero ZeroTest[T]) PivotSelector[T] {
	return func(m *Matrix[T], fromRow, col int) (int, bool) {
		for r := fromRow; r < len(m.rows); r++ {
			if !isZero(m.rows[r][col]) {
				return r, true
			}
		}
		return 0, false
	}
}

// DefaultZeroTest returns isZero calling T's own IsZero method,
// appropriate for every exact kind (ℚ, ℤ/pℤ, 𝕊).
func DefaultZeroTest[T Element[T]]() ZeroTest[T] {
	return func(v T) bool { return v.IsZero() }
}

// Reduce performs the two-phase reduction of spec 4.H in place:
// forward elimination to row-echelon form with unit pivots (deleting
// any row that becomes entirely zero along the way), then back
// substitution to reduced row-echelon form.
func Reduce[T Element[T]](m *Matrix[T], pivot PivotSelector[T], isZero ZeroTest[T]) error {
	frontRow, col := 0, 0
	for frontRow < len(m.rows) && col < m.cols {
		pivotRow, ok := pivot(m, frontRow, col)
		if !ok {
			col++
			continue
		}
		m.rows[frontRow], m.rows[pivotRow] = m.rows[pivotRow], m.rows[frontRow]

		pivotVal := m.rows[frontRow][col]
		for c := 0; c < m.cols; c++ {
			v, err := m.rows[frontRow][c].Div(pivotVal)
			if err != nil {
				return errors.Wrap(err, "gauss: normalise pivot row")
			}
			m.rows[frontRow][c] = v
		}

		for r := frontRow + 1; r < len(m.rows); {
			factor := m.rows[r][col]
			if isZero(factor) {
				r++
				continue
			}
			if err := subtractScaled(m.rows[r], m.rows[frontRow], factor, m.cols); err != nil {
				return errors.Wrap(err, "gauss: eliminate below pivot")
			}
			if rowIsZero(m.rows[r], isZero) {
				m.deleteRow(r)
				continue
			}
			r++
		}

		frontRow++
		col++
	}

	for row := len(m.rows) - 1; row >= 0; row-- {
		pivotCol := -1
		for c := 0; c < m.cols; c++ {
			if !isZero(m.rows[row][c]) {
				pivotCol = c
				break
			}
		}
		if pivotCol == -1 {
			continue
		}
		for r2 := row - 1; r2 >= 0; r2-- {
			factor := m.rows[r2][pivotCol]
			if isZero(factor) {
				continue
			}
			if err := subtractScaled(m.rows[r2], m.rows[row], factor, m.cols); err != nil {
				return errors.Wrap(err, "gauss: back substitution")
			}
		}
	}
	return nil
}

func subtractScaled[T Element[T]](target, pivotRow []T, factor T, cols int) error {
	for c := 0; c < cols; c++ {
		prod, err := pivotRow[c].Mul(factor)
		if err != nil {
			return err
		}
		v, err := target[c].Sub(prod)
		if err != nil {
			return err
		}
		target[c] = v
	}
	return nil
}

func rowIsZero[T Element[T]](row []T, isZero ZeroTest[T]) bool {
	for _, v := range row {
		if !isZero(v) {
			return false
		}
	}
	return true
}

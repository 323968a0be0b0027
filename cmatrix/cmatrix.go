// Package cmatrix implements CoefficientMatrix (spec 4.G): the dense
// numeric matrix a list of polynomials is expanded into before
// reduction, keyed by a shared, order-sorted column set of monomials.
package cmatrix

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/gauss"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/poly"
	"github.com/polyjam-go/polyjam/term"
)

// An Expansion is one (polynomial index, monomial) pair of an
// expansion schedule: it contributes the row polynomials[index] *
// monomial.
type Expansion struct {
	PolyIndex int
	Monomial  monomial.Monomial
}

// A CoefficientMatrix is the dense matrix of spec 4.G: one row per
// input polynomial (or expansion), one column per monomial in the
// shared column set, sorted descending under typ.Order.
type CoefficientMatrix struct {
	typ     poly.Type
	columns []monomial.Monomial
	rows    [][]field.Coefficient
}

func columnLess(order monomial.Order) func(a, b monomial.Monomial) bool {
	return func(a, b monomial.Monomial) bool {
		c, err := a.Compare(b, order)
		if err != nil {
			panic(err)
		}
		return c > 0 // descending
	}
}

func unionColumns(polys []*poly.Polynomial, order monomial.Order) []monomial.Monomial {
	seen := map[string]monomial.Monomial{}
	for _, p := range polys {
		for t := range p.Terms() {
			m := t.Monomial()
			key := m.String() + "#" + fmt.Sprint(m.Exponents())
			if _, ok := seen[key]; !ok {
				seen[key] = m
			}
		}
	}
	cols := make([]monomial.Monomial, 0, len(seen))
	for _, m := range seen {
		cols = append(cols, m)
	}
	less := columnLess(order)
	sort.Slice(cols, func(i, j int) bool { return less(cols[i], cols[j]) })
	return cols
}

// fillRow places p's terms into a row over columns using the
// monotonic binary-searched sweep of spec 4.G: both the term sequence
// (descending, via Terms()) and the column set (descending) are
// walked with a position cursor that only ever advances, and each
// term's column index within the remaining suffix is found by binary
// search.
func fillRow(p *poly.Polynomial, columns []monomial.Monomial, order monomial.Order) []field.Coefficient {
	row := make([]field.Coefficient, len(columns))
	dom := p.Type().Dominant
	zero := field.ZeroCoefficient(p.Type().CarrierKinds[dom], carrierCharacteristic(p.Type(), dom))
	for i := range row {
		row[i] = zero
	}
	pos := 0
	for t := range p.Terms() {
		m := t.Monomial()
		idx := sort.Search(len(columns)-pos, func(i int) bool {
			c, err := columns[pos+i].Compare(m, order)
			if err != nil {
				panic(err)
			}
			return c <= 0 // first column <= m in descending order
		})
		idx += pos
		if idx >= len(columns) || !columns[idx].Equal(m) {
			continue // monomial outside the given column set: silently ignored
		}
		row[idx] = t.DominantCoefficient()
		pos = idx + 1
	}
	return row
}

func carrierCharacteristic(typ poly.Type, i int) uint64 {
	if typ.CarrierKinds[i] == field.Zp {
		return typ.Characteristic
	}
	return 0
}

func checkCommonType(polys []*poly.Polynomial) (poly.Type, error) {
	if len(polys) == 0 {
		return poly.Type{}, errors.Wrap(errs.ErrShapeMismatch, "cmatrix: need at least one polynomial")
	}
	typ := polys[0].Type()
	for _, p := range polys[1:] {
		o, a := p.Type().Order, p.Type().Arity
		if o != typ.Order || a != typ.Arity {
			return poly.Type{}, errors.Wrap(errs.ErrTypeMismatch, "cmatrix: polynomials do not share a type")
		}
	}
	return typ, nil
}

// NewFromPolynomials builds the matrix whose column set is the union
// of monomials appearing across polys, sorted descending by their
// shared order (construction variant 1).
func NewFromPolynomials(polys []*poly.Polynomial) (*CoefficientMatrix, error) {
	typ, err := checkCommonType(polys)
	if err != nil {
		return nil, err
	}
	columns := unionColumns(polys, typ.Order)
	return buildMatrix(typ, polys, columns), nil
}

// NewFromColumns builds the matrix over an explicit, caller-supplied
// column order; monomials outside it are silently ignored
// (construction variant 2).
func NewFromColumns(polys []*poly.Polynomial, columns []monomial.Monomial) (*CoefficientMatrix, error) {
	typ, err := checkCommonType(polys)
	if err != nil {
		return nil, err
	}
	cols := make([]monomial.Monomial, len(columns))
	copy(cols, columns)
	return buildMatrix(typ, polys, cols), nil
}

// NewFromSchedule builds the matrix from an expansion schedule: each
// (polynomial index, monomial) pair contributes one row equal to
// polys[index] * monomial; the column set is the union over the
// resulting expanded polynomials (construction variant 3).
func NewFromSchedule(polys []*poly.Polynomial, schedule []Expansion) (*CoefficientMatrix, error) {
	typ, err := checkCommonType(polys)
	if err != nil {
		return nil, err
	}
	expanded := make([]*poly.Polynomial, len(schedule))
	for i, e := range schedule {
		if e.PolyIndex < 0 || e.PolyIndex >= len(polys) {
			return nil, errors.Wrapf(errs.ErrBounds, "cmatrix: schedule entry %d references polynomial %d", i, e.PolyIndex)
		}
		p, err := expandByMonomial(polys[e.PolyIndex], e.Monomial)
		if err != nil {
			return nil, errors.Wrap(err, "cmatrix: expand schedule")
		}
		expanded[i] = p
	}
	columns := unionColumns(expanded, typ.Order)
	return buildMatrix(typ, expanded, columns), nil
}

// NewFromScheduleWithColumns is NewFromSchedule over an explicit
// caller-supplied column order instead of an auto-derived union; used
// by the template generator to rebuild a schedule's matrix under a
// previously established monomial ordering.
func NewFromScheduleWithColumns(polys []*poly.Polynomial, schedule []Expansion, columns []monomial.Monomial) (*CoefficientMatrix, error) {
	typ, err := checkCommonType(polys)
	if err != nil {
		return nil, err
	}
	expanded := make([]*poly.Polynomial, len(schedule))
	for i, e := range schedule {
		if e.PolyIndex < 0 || e.PolyIndex >= len(polys) {
			return nil, errors.Wrapf(errs.ErrBounds, "cmatrix: schedule entry %d references polynomial %d", i, e.PolyIndex)
		}
		p, err := expandByMonomial(polys[e.PolyIndex], e.Monomial)
		if err != nil {
			return nil, errors.Wrap(err, "cmatrix: expand schedule")
		}
		expanded[i] = p
	}
	cols := make([]monomial.Monomial, len(columns))
	copy(cols, columns)
	return buildMatrix(typ, expanded, cols), nil
}

// expandByMonomial returns p's terms each multiplied by m.
func expandByMonomial(p *poly.Polynomial, m monomial.Monomial) (*poly.Polynomial, error) {
	out := poly.Empty(p.Type())
	terms := make([]term.Term, 0, p.Len())
	for t := range p.Terms() {
		nm, err := t.Monomial().Multiply(m)
		if err != nil {
			return nil, err
		}
		nt := term.New(nm, t.Coefficients()...)
		nt, err = nt.SetDominant(t.Dominant())
		if err != nil {
			return nil, err
		}
		terms = append(terms, nt)
	}
	built, err := poly.New(p.Type(), terms...)
	if err != nil {
		return nil, err
	}
	out.Set(built)
	return out, nil
}

func buildMatrix(typ poly.Type, polys []*poly.Polynomial, columns []monomial.Monomial) *CoefficientMatrix {
	rows := make([][]field.Coefficient, len(polys))
	for i, p := range polys {
		rows[i] = fillRow(p, columns, typ.Order)
	}
	return &CoefficientMatrix{typ: typ, columns: columns, rows: rows}
}

// Rows returns the current row count.
func (m *CoefficientMatrix) Rows() int { return len(m.rows) }

// Cols returns the column count.
func (m *CoefficientMatrix) Cols() int { return len(m.columns) }

// Columns returns a copy of the column monomial set, descending.
func (m *CoefficientMatrix) Columns() []monomial.Monomial {
	out := make([]monomial.Monomial, len(m.columns))
	copy(out, m.columns)
	return out
}

// At returns the coefficient at (row, col).
func (m *CoefficientMatrix) At(row, col int) (field.Coefficient, error) {
	if row < 0 || row >= len(m.rows) || col < 0 || col >= len(m.columns) {
		return field.Coefficient{}, errors.Wrapf(errs.ErrBounds, "cmatrix: (%d,%d) out of %dx%d", row, col, len(m.rows), len(m.columns))
	}
	return m.rows[row][col], nil
}

// Reduce performs the 4.H Gauss-Jordan reduction on the matrix's rows
// in place, deleting any row that cancels to all-zero.
func (m *CoefficientMatrix) Reduce() error {
	dom := m.typ.Dominant
	kind := m.typ.CarrierKinds[dom]
	isZero := gauss.DefaultZeroTest[field.Coefficient]()
	var pivot gauss.PivotSelector[field.Coefficient]
	if kind == field.R {
		pivot = argmaxAbsCoefficientPivot(isZero)
	} else {
		pivot = gauss.FirstNonZeroPivot(isZero)
	}
	gm, err := gauss.NewMatrix(m.rows)
	if err != nil {
		return errors.Wrap(err, "cmatrix reduce")
	}
	if err := gauss.Reduce(gm, pivot, isZero); err != nil {
		return errors.Wrap(err, "cmatrix reduce")
	}
	m.rows = gm.AllRows()
	return nil
}

func argmaxAbsCoefficientPivot(isZero gauss.ZeroTest[field.Coefficient]) gauss.PivotSelector[field.Coefficient] {
	return func(m *gauss.Matrix[field.Coefficient], fromRow, col int) (int, bool) {
		best := -1
		var bestAbs float64
		for r := fromRow; r < m.Rows(); r++ {
			v := m.Row(r)[col]
			if isZero(v) {
				continue
			}
			rv, ok := v.Value().(interface{ Float64() float64 })
			if !ok {
				return r, true // non-float kind: fall back to first non-zero
			}
			abs := rv.Float64()
			if abs < 0 {
				abs = -abs
			}
			if best == -1 || abs > bestAbs {
				best, bestAbs = r, abs
			}
		}
		return best, best != -1
	}
}

// Contains reports whether every polynomial in polynomials appears,
// up to equality, as some row of m (via GetPolynomial).
func (m *CoefficientMatrix) Contains(polynomials []*poly.Polynomial) (bool, error) {
	for _, want := range polynomials {
		found := false
		for r := range m.rows {
			got, err := m.GetPolynomial(r)
			if err != nil {
				return false, err
			}
			if got.Equal(want) {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

// SubMatrix clones the named rows into a new matrix sharing this
// matrix's column set.
func (m *CoefficientMatrix) SubMatrix(rowIndices []int) (*CoefficientMatrix, error) {
	rows := make([][]field.Coefficient, len(rowIndices))
	for i, r := range rowIndices {
		if r < 0 || r >= len(m.rows) {
			return nil, errors.Wrapf(errs.ErrBounds, "cmatrix submatrix: row %d out of [0,%d)", r, len(m.rows))
		}
		row := make([]field.Coefficient, len(m.columns))
		copy(row, m.rows[r])
		rows[i] = row
	}
	return &CoefficientMatrix{typ: m.typ, columns: m.columns, rows: rows}, nil
}

// GetPolynomial re-assembles row as a polynomial of m's type.
func (m *CoefficientMatrix) GetPolynomial(row int) (*poly.Polynomial, error) {
	if row < 0 || row >= len(m.rows) {
		return nil, errors.Wrapf(errs.ErrBounds, "cmatrix get polynomial: row %d out of [0,%d)", row, len(m.rows))
	}
	var terms []term.Term
	for c, coeff := range m.rows[row] {
		if coeff.IsZero() {
			continue
		}
		terms = append(terms, term.New(m.columns[c], coeff))
	}
	return poly.New(m.typ, terms...)
}

// GetSymbolicPolynomial re-assembles row as a 𝕊 polynomial: every
// non-zero entry is replaced by a placeholder symbol named
// "<matrixName>_<row>_<col>" so downstream 𝕊 propagation can track
// which matrix entry a symbolic coefficient came from.
func (m *CoefficientMatrix) GetSymbolicPolynomial(row int, matrixName string) (*poly.Polynomial, error) {
	if row < 0 || row >= len(m.rows) {
		return nil, errors.Wrapf(errs.ErrBounds, "cmatrix get symbolic polynomial: row %d out of [0,%d)", row, len(m.rows))
	}
	symTyp := poly.Type{Order: m.typ.Order, Arity: m.typ.Arity, CarrierKinds: []field.Kind{field.Sym}}
	var terms []term.Term
	for c, coeff := range m.rows[row] {
		if coeff.IsZero() {
			continue
		}
		name := fmt.Sprintf("%s_%d_%d", matrixName, row, c)
		terms = append(terms, term.New(m.columns[c], field.NewCoefficientName(name)))
	}
	return poly.New(symTyp, terms...)
}

// String renders the matrix as a visualisation grid: one row per
// matrix row, "." for a zero entry and the coefficient's string form
// otherwise, columns separated by single spaces.
func (m *CoefficientMatrix) String() string {
	var b strings.Builder
	for r, row := range m.rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, v := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			if v.IsZero() {
				b.WriteByte('.')
			} else {
				b.WriteString(v.String())
			}
		}
	}
	return b.String()
}

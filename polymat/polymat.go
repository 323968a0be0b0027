// Package polymat implements PolynomialMatrix (spec 4.F): a dense
// matrix of polynomials supporting the usual linear-algebra operators
// plus the vector/quaternion special cases the generator's geometric
// problems need.
package polymat

import (
	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/poly"
	"github.com/polyjam-go/polyjam/term"
)

// NoDegreeCap marks a matrix with no degree limitation.
const NoDegreeCap = -1

// A PolynomialMatrix is dense row-major storage of *poly.Polynomial
// elements sharing a common poly.Type.
type PolynomialMatrix struct {
	rows, cols int
	typ        poly.Type
	degreeCap  int
	elems      []*poly.Polynomial
}

// New returns an rows×cols matrix of zero polynomials of type typ,
// with no degree cap.
func New(typ poly.Type, rows, cols int) *PolynomialMatrix {
	return NewCapped(typ, rows, cols, NoDegreeCap)
}

// NewCapped is New with an explicit degree cap. Set truncates every
// element to it via poly.Approximate, and the results of Negation,
// Add, Sub, MatMul and ScalarMul carry the (tighter) cap and are
// truncated the same way. Dot, Cross, Determinant, Trace,
// SkewSymmetric, QuatMult and QuatConj apply no cap to their results.
func NewCapped(typ poly.Type, rows, cols int, degreeCap int) *PolynomialMatrix {
	m := &PolynomialMatrix{rows: rows, cols: cols, typ: typ, degreeCap: degreeCap}
	m.elems = make([]*poly.Polynomial, rows*cols)
	for i := range m.elems {
		m.elems[i] = poly.Empty(typ)
	}
	return m
}

// Identity returns the n×n identity matrix (diagonal ones).
func Identity(typ poly.Type, n int) (*PolynomialMatrix, error) {
	m := New(typ, n, n)
	ident := monomial.New(typ.Arity, typ.Order)
	coeffs := make([]field.Coefficient, len(typ.CarrierKinds))
	for i, k := range typ.CarrierKinds {
		var characteristic uint64
		if k == field.Zp {
			characteristic = typ.Characteristic
		}
		coeffs[i] = field.OneCoefficient(k, characteristic)
	}
	one, err := poly.New(typ, term.New(ident, coeffs...))
	if err != nil {
		return nil, errors.Wrap(err, "polymat identity")
	}
	for i := 0; i < n; i++ {
		if err := m.Set(i, i, one); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *PolynomialMatrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *PolynomialMatrix) Cols() int { return m.cols }

// DegreeCap returns the matrix's degree cap, or NoDegreeCap if none.
func (m *PolynomialMatrix) DegreeCap() int { return m.degreeCap }

func (m *PolynomialMatrix) index(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, errors.Wrapf(errs.ErrBounds, "polymat: (%d,%d) out of %dx%d", row, col, m.rows, m.cols)
	}
	return row*m.cols + col, nil
}

// At returns the element at (row, col).
func (m *PolynomialMatrix) At(row, col int) (*poly.Polynomial, error) {
	i, err := m.index(row, col)
	if err != nil {
		return nil, err
	}
	return m.elems[i], nil
}

// AtLinear returns the row-major linear-indexed element, useful for
// treating a single-column matrix as a vector.
func (m *PolynomialMatrix) AtLinear(index int) (*poly.Polynomial, error) {
	if index < 0 || index >= len(m.elems) {
		return nil, errors.Wrapf(errs.ErrBounds, "polymat: linear index %d out of [0,%d)", index, len(m.elems))
	}
	return m.elems[index], nil
}

// Set replaces the element at (row, col).
func (m *PolynomialMatrix) Set(row, col int, p *poly.Polynomial) error {
	i, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.elems[i] = m.truncate(p)
	return nil
}

func (m *PolynomialMatrix) truncate(p *poly.Polynomial) *poly.Polynomial {
	if m.degreeCap == NoDegreeCap {
		return p
	}
	return p.Approximate(m.degreeCap)
}

func tighterCap(a, b int) int {
	switch {
	case a == NoDegreeCap:
		return b
	case b == NoDegreeCap:
		return a
	case a < b:
		return a
	default:
		return b
	}
}

func (m *PolynomialMatrix) checkShape(op string, other *PolynomialMatrix) error {
	if m.rows != other.rows || m.cols != other.cols {
		return errors.Wrapf(errs.ErrShapeMismatch, "%s: %dx%d vs %dx%d", op, m.rows, m.cols, other.rows, other.cols)
	}
	return nil
}

// Negation returns -m.
func (m *PolynomialMatrix) Negation() (*PolynomialMatrix, error) {
	out := NewCapped(m.typ, m.rows, m.cols, m.degreeCap)
	for i, e := range m.elems {
		z := poly.Empty(m.typ)
		z.Neg(e)
		out.elems[i] = out.truncate(z)
	}
	return out, nil
}

// Transpose returns m^T.
func (m *PolynomialMatrix) Transpose() *PolynomialMatrix {
	out := NewCapped(m.typ, m.cols, m.rows, m.degreeCap)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.elems[c*m.rows+r] = m.elems[r*m.cols+c]
		}
	}
	return out
}

// Add returns m+other. Shapes must agree.
func (m *PolynomialMatrix) Add(other *PolynomialMatrix) (*PolynomialMatrix, error) {
	if err := m.checkShape("polymat add", other); err != nil {
		return nil, err
	}
	cap := tighterCap(m.degreeCap, other.degreeCap)
	out := NewCapped(m.typ, m.rows, m.cols, cap)
	for i := range m.elems {
		z := poly.Empty(m.typ)
		if _, err := z.Add(m.elems[i], other.elems[i]); err != nil {
			return nil, errors.Wrap(err, "polymat add")
		}
		out.elems[i] = out.truncate(z)
	}
	return out, nil
}

// Sub returns m-other. Shapes must agree.
func (m *PolynomialMatrix) Sub(other *PolynomialMatrix) (*PolynomialMatrix, error) {
	if err := m.checkShape("polymat sub", other); err != nil {
		return nil, err
	}
	cap := tighterCap(m.degreeCap, other.degreeCap)
	out := NewCapped(m.typ, m.rows, m.cols, cap)
	for i := range m.elems {
		z := poly.Empty(m.typ)
		if _, err := z.Sub(m.elems[i], other.elems[i]); err != nil {
			return nil, errors.Wrap(err, "polymat sub")
		}
		out.elems[i] = out.truncate(z)
	}
	return out, nil
}

// MatMul returns the matrix product m*other. m.Cols() must equal
// other.Rows().
func (m *PolynomialMatrix) MatMul(other *PolynomialMatrix) (*PolynomialMatrix, error) {
	if m.cols != other.rows {
		return nil, errors.Wrapf(errs.ErrShapeMismatch, "polymat matmul: %dx%d * %dx%d", m.rows, m.cols, other.rows, other.cols)
	}
	cap := tighterCap(m.degreeCap, other.degreeCap)
	out := NewCapped(m.typ, m.rows, other.cols, cap)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < other.cols; c++ {
			sum := poly.Empty(m.typ)
			for k := 0; k < m.cols; k++ {
				a, _ := m.At(r, k)
				b, _ := other.At(k, c)
				prod := poly.Empty(m.typ)
				if _, err := prod.Mul(a, b); err != nil {
					return nil, errors.Wrap(err, "polymat matmul")
				}
				if _, err := sum.Add(sum, prod); err != nil {
					return nil, errors.Wrap(err, "polymat matmul")
				}
			}
			out.elems[r*out.cols+c] = out.truncate(sum)
		}
	}
	return out, nil
}

// ScalarMul returns scalar*m, multiplying every element by scalar.
func (m *PolynomialMatrix) ScalarMul(scalar *poly.Polynomial) (*PolynomialMatrix, error) {
	out := NewCapped(m.typ, m.rows, m.cols, m.degreeCap)
	for i, e := range m.elems {
		prod := poly.Empty(m.typ)
		if _, err := prod.Mul(e, scalar); err != nil {
			return nil, errors.Wrap(err, "polymat scalar mul")
		}
		out.elems[i] = out.truncate(prod)
	}
	return out, nil
}

// Dot returns the dot product of m and other, both column vectors of
// equal height.
func (m *PolynomialMatrix) Dot(other *PolynomialMatrix) (*poly.Polynomial, error) {
	if m.cols != 1 || other.cols != 1 || m.rows != other.rows {
		return nil, errors.Wrap(errs.ErrShapeMismatch, "polymat dot: both operands must be column vectors of equal height")
	}
	sum := poly.Empty(m.typ)
	for i := 0; i < m.rows; i++ {
		prod := poly.Empty(m.typ)
		if _, err := prod.Mul(m.elems[i], other.elems[i]); err != nil {
			return nil, errors.Wrap(err, "polymat dot")
		}
		if _, err := sum.Add(sum, prod); err != nil {
			return nil, errors.Wrap(err, "polymat dot")
		}
	}
	return sum, nil
}

// Cross returns the cross product of m and other, both height-3
// column vectors.
func (m *PolynomialMatrix) Cross(other *PolynomialMatrix) (*PolynomialMatrix, error) {
	if m.rows != 3 || m.cols != 1 || other.rows != 3 || other.cols != 1 {
		return nil, errors.Wrap(errs.ErrShapeMismatch, "polymat cross: both operands must be height-3 column vectors")
	}
	a := m.elems
	b := other.elems
	out := New(m.typ, 3, 1)
	terms := [3][2][2]int{{{1, 2}, {2, 1}}, {{2, 0}, {0, 2}}, {{0, 1}, {1, 0}}}
	for i, t := range terms {
		p1 := poly.Empty(m.typ)
		if _, err := p1.Mul(a[t[0][0]], b[t[0][1]]); err != nil {
			return nil, errors.Wrap(err, "polymat cross")
		}
		p2 := poly.Empty(m.typ)
		if _, err := p2.Mul(a[t[1][0]], b[t[1][1]]); err != nil {
			return nil, errors.Wrap(err, "polymat cross")
		}
		diff := poly.Empty(m.typ)
		if _, err := diff.Sub(p1, p2); err != nil {
			return nil, errors.Wrap(err, "polymat cross")
		}
		out.elems[i] = diff
	}
	return out, nil
}

// Determinant computes the determinant for 1x1, 2x2, 3x3 matrices
// explicitly and falls back to cofactor expansion along the first row
// for larger square matrices.
func (m *PolynomialMatrix) Determinant() (*poly.Polynomial, error) {
	if m.rows != m.cols {
		return nil, errors.Wrap(errs.ErrShapeMismatch, "polymat determinant: matrix must be square")
	}
	switch m.rows {
	case 0:
		return nil, errors.Wrap(errs.ErrShapeMismatch, "polymat determinant: empty matrix")
	case 1:
		return m.elems[0], nil
	case 2:
		a, _ := m.At(0, 0)
		b, _ := m.At(0, 1)
		c, _ := m.At(1, 0)
		d, _ := m.At(1, 1)
		ad := poly.Empty(m.typ)
		if _, err := ad.Mul(a, d); err != nil {
			return nil, err
		}
		bc := poly.Empty(m.typ)
		if _, err := bc.Mul(b, c); err != nil {
			return nil, err
		}
		out := poly.Empty(m.typ)
		if _, err := out.Sub(ad, bc); err != nil {
			return nil, err
		}
		return out, nil
	case 3:
		return m.determinant3()
	default:
		return m.cofactorExpansion()
	}
}

func (m *PolynomialMatrix) determinant3() (*poly.Polynomial, error) {
	e := func(r, c int) *poly.Polynomial { v, _ := m.At(r, c); return v }
	term := func(a, b, c *poly.Polynomial) (*poly.Polynomial, error) {
		p := poly.Empty(m.typ)
		if _, err := p.Mul(a, b); err != nil {
			return nil, err
		}
		q := poly.Empty(m.typ)
		if _, err := q.Mul(p, c); err != nil {
			return nil, err
		}
		return q, nil
	}
	t1, err := term(e(0, 0), e(1, 1), e(2, 2))
	if err != nil {
		return nil, errors.Wrap(err, "polymat determinant3")
	}
	t2, err := term(e(0, 1), e(1, 2), e(2, 0))
	if err != nil {
		return nil, errors.Wrap(err, "polymat determinant3")
	}
	t3, err := term(e(0, 2), e(1, 0), e(2, 1))
	if err != nil {
		return nil, errors.Wrap(err, "polymat determinant3")
	}
	t4, err := term(e(0, 2), e(1, 1), e(2, 0))
	if err != nil {
		return nil, errors.Wrap(err, "polymat determinant3")
	}
	t5, err := term(e(0, 0), e(1, 2), e(2, 1))
	if err != nil {
		return nil, errors.Wrap(err, "polymat determinant3")
	}
	t6, err := term(e(0, 1), e(1, 0), e(2, 2))
	if err != nil {
		return nil, errors.Wrap(err, "polymat determinant3")
	}
	pos := poly.Empty(m.typ)
	if _, err := pos.Add(t1, t2); err != nil {
		return nil, err
	}
	if _, err := pos.Add(pos, t3); err != nil {
		return nil, err
	}
	neg := poly.Empty(m.typ)
	if _, err := neg.Add(t4, t5); err != nil {
		return nil, err
	}
	if _, err := neg.Add(neg, t6); err != nil {
		return nil, err
	}
	out := poly.Empty(m.typ)
	if _, err := out.Sub(pos, neg); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *PolynomialMatrix) minor(excludeRow, excludeCol int) *PolynomialMatrix {
	out := New(m.typ, m.rows-1, m.cols-1)
	rr := 0
	for r := 0; r < m.rows; r++ {
		if r == excludeRow {
			continue
		}
		cc := 0
		for c := 0; c < m.cols; c++ {
			if c == excludeCol {
				continue
			}
			v, _ := m.At(r, c)
			out.elems[rr*out.cols+cc] = v
			cc++
		}
		rr++
	}
	return out
}

func (m *PolynomialMatrix) cofactorExpansion() (*poly.Polynomial, error) {
	sum := poly.Empty(m.typ)
	for c := 0; c < m.cols; c++ {
		entry, _ := m.At(0, c)
		sub := m.minor(0, c)
		subDet, err := sub.Determinant()
		if err != nil {
			return nil, errors.Wrap(err, "polymat cofactor expansion")
		}
		term := poly.Empty(m.typ)
		if _, err := term.Mul(entry, subDet); err != nil {
			return nil, errors.Wrap(err, "polymat cofactor expansion")
		}
		if c%2 == 1 {
			neg := poly.Empty(m.typ)
			neg.Neg(term)
			term = neg
		}
		if _, err := sum.Add(sum, term); err != nil {
			return nil, errors.Wrap(err, "polymat cofactor expansion")
		}
	}
	return sum, nil
}

// Trace returns the sum of the diagonal elements.
func (m *PolynomialMatrix) Trace() (*poly.Polynomial, error) {
	if m.rows != m.cols {
		return nil, errors.Wrap(errs.ErrShapeMismatch, "polymat trace: matrix must be square")
	}
	sum := poly.Empty(m.typ)
	for i := 0; i < m.rows; i++ {
		e, _ := m.At(i, i)
		if _, err := sum.Add(sum, e); err != nil {
			return nil, errors.Wrap(err, "polymat trace")
		}
	}
	return sum, nil
}

// SkewSymmetric returns the 3x3 skew-symmetric matrix of a height-3
// column vector, such that SkewSymmetric(v)*w == Cross(v, w).
func (m *PolynomialMatrix) SkewSymmetric() (*PolynomialMatrix, error) {
	if m.rows != 3 || m.cols != 1 {
		return nil, errors.Wrap(errs.ErrShapeMismatch, "polymat skew-symmetric: operand must be a height-3 column vector")
	}
	x, _ := m.At(0, 0)
	y, _ := m.At(1, 0)
	z, _ := m.At(2, 0)
	out := New(m.typ, 3, 3)
	negX := poly.Empty(m.typ)
	negX.Neg(x)
	negY := poly.Empty(m.typ)
	negY.Neg(y)
	negZ := poly.Empty(m.typ)
	negZ.Neg(z)
	must := func(row, col int, p *poly.Polynomial) { _ = out.Set(row, col, p) }
	must(0, 1, negZ)
	must(0, 2, y)
	must(1, 0, z)
	must(1, 2, negX)
	must(2, 0, negY)
	must(2, 1, x)
	return out, nil
}

// QuatMult treats m and other as height-4 quaternion vectors
// (w, x, y, z) and returns their Hamilton product.
func (m *PolynomialMatrix) QuatMult(other *PolynomialMatrix) (*PolynomialMatrix, error) {
	if m.rows != 4 || m.cols != 1 || other.rows != 4 || other.cols != 1 {
		return nil, errors.Wrap(errs.ErrShapeMismatch, "polymat quaternion multiply: both operands must be height-4 column vectors")
	}
	w1, _ := m.At(0, 0)
	x1, _ := m.At(1, 0)
	y1, _ := m.At(2, 0)
	z1, _ := m.At(3, 0)
	w2, _ := other.At(0, 0)
	x2, _ := other.At(1, 0)
	y2, _ := other.At(2, 0)
	z2, _ := other.At(3, 0)

	mul := func(a, b *poly.Polynomial) (*poly.Polynomial, error) {
		p := poly.Empty(m.typ)
		if _, err := p.Mul(a, b); err != nil {
			return nil, err
		}
		return p, nil
	}
	combine := func(signs []int, ps ...*poly.Polynomial) (*poly.Polynomial, error) {
		sum := poly.Empty(m.typ)
		for i, p := range ps {
			if signs[i] < 0 {
				neg := poly.Empty(m.typ)
				neg.Neg(p)
				if _, err := sum.Add(sum, neg); err != nil {
					return nil, err
				}
			} else {
				if _, err := sum.Add(sum, p); err != nil {
					return nil, err
				}
			}
		}
		return sum, nil
	}

	w1w2, err := mul(w1, w2)
	if err != nil {
		return nil, errors.Wrap(err, "polymat quaternion multiply")
	}
	x1x2, err := mul(x1, x2)
	if err != nil {
		return nil, errors.Wrap(err, "polymat quaternion multiply")
	}
	y1y2, err := mul(y1, y2)
	if err != nil {
		return nil, errors.Wrap(err, "polymat quaternion multiply")
	}
	z1z2, err := mul(z1, z2)
	if err != nil {
		return nil, errors.Wrap(err, "polymat quaternion multiply")
	}
	w, err := combine([]int{1, -1, -1, -1}, w1w2, x1x2, y1y2, z1z2)
	if err != nil {
		return nil, err
	}

	w1x2, _ := mul(w1, x2)
	x1w2, _ := mul(x1, w2)
	y1z2, _ := mul(y1, z2)
	z1y2, _ := mul(z1, y2)
	xOut, err := combine([]int{1, 1, 1, -1}, w1x2, x1w2, y1z2, z1y2)
	if err != nil {
		return nil, err
	}

	w1y2, _ := mul(w1, y2)
	y1w2, _ := mul(y1, w2)
	z1x2, _ := mul(z1, x2)
	x1z2, _ := mul(x1, z2)
	yOut, err := combine([]int{1, 1, 1, -1}, w1y2, y1w2, z1x2, x1z2)
	if err != nil {
		return nil, err
	}

	w1z2, _ := mul(w1, z2)
	z1w2, _ := mul(z1, w2)
	x1y2, _ := mul(x1, y2)
	y1x2, _ := mul(y1, x2)
	zOut, err := combine([]int{1, 1, 1, -1}, w1z2, z1w2, x1y2, y1x2)
	if err != nil {
		return nil, err
	}

	out := New(m.typ, 4, 1)
	_ = out.Set(0, 0, w)
	_ = out.Set(1, 0, xOut)
	_ = out.Set(2, 0, yOut)
	_ = out.Set(3, 0, zOut)
	return out, nil
}

// QuatConj returns the conjugate of a height-4 quaternion vector
// (w, x, y, z) -> (w, -x, -y, -z).
func (m *PolynomialMatrix) QuatConj() (*PolynomialMatrix, error) {
	if m.rows != 4 || m.cols != 1 {
		return nil, errors.Wrap(errs.ErrShapeMismatch, "polymat quaternion conjugate: operand must be a height-4 column vector")
	}
	out := New(m.typ, 4, 1)
	w, _ := m.At(0, 0)
	_ = out.Set(0, 0, w)
	for i := 1; i < 4; i++ {
		e, _ := m.At(i, 0)
		neg := poly.Empty(m.typ)
		neg.Neg(e)
		_ = out.Set(i, 0, neg)
	}
	return out, nil
}

// Package template implements the action-matrix template generator of
// spec 4.I: given a polynomial system (a random numeric ℤ/pℤ sample of
// it, paired with its literal 𝕊 source expressions), it searches for
// an expansion degree that reveals every leading monomial of a
// supplied quotient basis, minimises the resulting expansion schedule
// down to the smallest row set that still contains every polynomial
// the action matrix needs, and reorders it toward row-echelon form.
package template

import (
	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/cmatrix"
	"github.com/polyjam-go/polyjam/errs"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/poly"
)

// MaxSearchDegree bounds automatic degree search (spec 4.I): beyond
// this degree the system is declared not to converge.
const MaxSearchDegree = 12

// TransformExpanders builds the expansion schedule of spec 4.G variant
// 3 from a flat list of expander monomials and a polynomial count: one
// identity row per polynomial, followed by one row per
// (polynomial, expander) pair for every expander. An empty expander
// list yields an empty schedule, with no identity rows.
func TransformExpanders(expanders []monomial.Monomial, numPolynomials int) []cmatrix.Expansion {
	schedule := make([]cmatrix.Expansion, 0, numPolynomials*(len(expanders)+1))
	if numPolynomials == 0 {
		return schedule
	}
	if len(expanders) == 0 {
		return schedule
	}
	identity := monomial.New(expanders[0].Arity(), expanders[0].Order())
	for i := 0; i < numPolynomials; i++ {
		schedule = append(schedule, cmatrix.Expansion{PolyIndex: i, Monomial: identity})
	}
	for _, e := range expanders {
		for i := 0; i < numPolynomials; i++ {
			schedule = append(schedule, cmatrix.Expansion{PolyIndex: i, Monomial: e})
		}
	}
	return schedule
}

// combinations returns every non-decreasing index tuple of length deg
// over [0,n), used to build the sorted multi-index products that
// generate degree-deg monomial expanders without repeating a
// commutative product under a different factor order.
func combinations(n, deg int) [][]int {
	if deg == 0 {
		return [][]int{{}}
	}
	var out [][]int
	var rec func(start int, cur []int)
	rec = func(start int, cur []int) {
		if len(cur) == deg {
			tuple := make([]int, deg)
			copy(tuple, cur)
			out = append(out, tuple)
			return
		}
		for i := start; i < n; i++ {
			rec(i, append(cur, i))
		}
	}
	rec(0, nil)
	return out
}

func productOf(base []monomial.Monomial, idx []int) (monomial.Monomial, error) {
	m := base[idx[0]]
	for _, i := range idx[1:] {
		var err error
		m, err = m.Multiply(base[i])
		if err != nil {
			return monomial.Monomial{}, err
		}
	}
	return m, nil
}

// GenerateSuperlinearExpanders returns base's monomials together with
// every product of up to maxDegree of them (degree 2..maxDegree),
// mirroring the original generator's degree-by-degree nested-loop
// expansion as a single recursive combinations-with-repetition pass.
func GenerateSuperlinearExpanders(base []monomial.Monomial, maxDegree int) ([]monomial.Monomial, error) {
	out := make([]monomial.Monomial, len(base))
	copy(out, base)
	for deg := 2; deg <= maxDegree; deg++ {
		for _, idx := range combinations(len(base), deg) {
			p, err := productOf(base, idx)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	return out, nil
}

// GenerateEvenDegreeExpanders returns only the even-degree (2,4,...)
// products of base's monomials up to maxDegree, excluding base itself.
func GenerateEvenDegreeExpanders(base []monomial.Monomial, maxDegree int) ([]monomial.Monomial, error) {
	var out []monomial.Monomial
	for deg := 2; deg <= maxDegree; deg += 2 {
		for _, idx := range combinations(len(base), deg) {
			p, err := productOf(base, idx)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	return out, nil
}

// Experiment pre-eliminates polynomials, then builds and reduces the
// full expansion-schedule matrix over expanders.
func Experiment(polynomials []*poly.Polynomial, expanders []monomial.Monomial) (*cmatrix.CoefficientMatrix, error) {
	pe, err := cmatrix.NewFromPolynomials(polynomials)
	if err != nil {
		return nil, errors.Wrap(err, "experiment: pre-elimination")
	}
	if err := pe.Reduce(); err != nil {
		return nil, errors.Wrap(err, "experiment: pre-elimination reduce")
	}
	zp := make([]*poly.Polynomial, pe.Rows())
	for r := range zp {
		p, err := pe.GetPolynomial(r)
		if err != nil {
			return nil, errors.Wrap(err, "experiment: extract pre-eliminated polynomial")
		}
		zp[r] = p
	}
	schedule := TransformExpanders(expanders, len(zp))
	m, err := cmatrix.NewFromSchedule(zp, schedule)
	if err != nil {
		return nil, errors.Wrap(err, "experiment: build schedule matrix")
	}
	if err := m.Reduce(); err != nil {
		return nil, errors.Wrap(err, "experiment: reduce schedule matrix")
	}
	return m, nil
}

// AutomaticDegreeFinder searches increasing expansion degrees until
// every leading monomial the multiplier operator requires (every
// baseMonomials[i]*multiplier not already present in baseMonomials) is
// produced as some row's leading term, with every other term of that
// row already expressible in baseMonomials. It fails with
// errs.ErrNotConverged beyond MaxSearchDegree.
func AutomaticDegreeFinder(polynomials []*poly.Polynomial, expanders, baseMonomials []monomial.Monomial, multiplier monomial.Monomial, evenOnly bool) (int, error) {
	var leadingMonomials []monomial.Monomial
	for _, b := range baseMonomials {
		mb, err := b.Multiply(multiplier)
		if err != nil {
			return 0, err
		}
		if !containsMonomial(baseMonomials, mb) {
			leadingMonomials = append(leadingMonomials, mb)
		}
	}

	degree := 1
	if evenOnly {
		degree = 0
	}
	for {
		if evenOnly {
			degree += 2
		} else {
			degree++
		}
		if degree > MaxSearchDegree {
			return 0, errors.Wrap(errs.ErrNotConverged, "automatic degree finder: exceeded maximum search degree")
		}

		var current []monomial.Monomial
		var err error
		if evenOnly {
			current, err = GenerateEvenDegreeExpanders(expanders, degree)
		} else {
			current, err = GenerateSuperlinearExpanders(expanders, degree)
		}
		if err != nil {
			return 0, err
		}

		attempt, err := Experiment(polynomials, current)
		if err != nil {
			return 0, err
		}

		allFound := true
		for _, lm := range leadingMonomials {
			if !rowWithLeadingMonomialIsGood(attempt, lm, baseMonomials) {
				allFound = false
				break
			}
		}
		if allFound {
			return degree, nil
		}
	}
}

func containsMonomial(set []monomial.Monomial, m monomial.Monomial) bool {
	for _, s := range set {
		if s.Equal(m) {
			return true
		}
	}
	return false
}

func rowWithLeadingMonomialIsGood(m *cmatrix.CoefficientMatrix, lm monomial.Monomial, baseMonomials []monomial.Monomial) bool {
	for r := 0; r < m.Rows(); r++ {
		p, err := m.GetPolynomial(r)
		if err != nil {
			continue
		}
		if !p.LeadingTerm().Monomial().Equal(lm) {
			continue
		}
		allOtherContained := true
		first := true
		for t := range p.Terms() {
			if first {
				first = false
				continue
			}
			if !containsMonomial(baseMonomials, t.Monomial()) {
				allOtherContained = false
				break
			}
		}
		if allOtherContained {
			return true
		}
	}
	return false
}

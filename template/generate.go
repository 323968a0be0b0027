package template

import (
	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/cmatrix"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/poly"
)

// A Plan is the output of Generate: everything the code emitter (spec
// 4.K) needs to print a solver's pre-elimination and elimination
// matrices plus its action-matrix extraction, without itself touching
// Gauss-Jordan or polynomial algebra again.
type Plan struct {
	// M1Symbolic is the pre-elimination matrix filled with the literal
	// 𝕊 source expressions of the input system, unreduced: this is
	// what the emitted code's "M1.fill/M1(r,c)=..." block mirrors.
	M1Symbolic *cmatrix.CoefficientMatrix

	// Helper is the symbolic elimination matrix built over the same
	// final, reordered schedule as FinalMatrix, but carrying named
	// placeholders ("M1_<row>_<col>") in place of numeric values: its
	// nonzero cells tell the emitter which M1 cell feeds which M2 cell.
	Helper *cmatrix.CoefficientMatrix

	// FinalMatrix is the minimised, reordered, reduced numeric
	// elimination matrix: its row/column counts become M2's dimensions
	// and M3's column count (M2cols - M2rows).
	FinalMatrix *cmatrix.CoefficientMatrix

	// FinalSchedule is the reordered expansion schedule FinalMatrix (and
	// Helper) were built from; FinalSchedule[r].PolyIndex is the
	// original pre-eliminated-polynomial index row r of M2 came from.
	FinalSchedule []cmatrix.Expansion

	BaseMonomials []monomial.Monomial
	Multiplier    monomial.Monomial
}

// Generate runs the full spec 4.I pipeline: pre-elimination,
// expansion-schedule assembly, extraction of the polynomials the
// action matrix needs, exponential-probe row minimisation down to the
// smallest schedule that still contains them, and a final reordering
// toward row-echelon form.
func Generate(polynomials, symPolynomials []*poly.Polynomial, expanders, baseMonomials []monomial.Monomial, multiplier monomial.Monomial) (*Plan, error) {
	if len(polynomials) != len(symPolynomials) {
		return nil, errors.New("template generate: numeric and symbolic polynomial lists must be parallel")
	}

	m1Symbolic, err := cmatrix.NewFromPolynomials(symPolynomials)
	if err != nil {
		return nil, errors.Wrap(err, "generate: build symbolic pre-elimination matrix")
	}

	pe, err := cmatrix.NewFromPolynomials(polynomials)
	if err != nil {
		return nil, errors.Wrap(err, "generate: build pre-elimination matrix")
	}
	if err := pe.Reduce(); err != nil {
		return nil, errors.Wrap(err, "generate: pre-eliminate")
	}

	zpPolynomials := make([]*poly.Polynomial, pe.Rows())
	symPolynomials2 := make([]*poly.Polynomial, pe.Rows())
	for r := range zpPolynomials {
		p, err := pe.GetPolynomial(r)
		if err != nil {
			return nil, errors.Wrap(err, "generate: extract pre-eliminated polynomial")
		}
		zpPolynomials[r] = p
		s, err := pe.GetSymbolicPolynomial(r, "M1")
		if err != nil {
			return nil, errors.Wrap(err, "generate: extract symbolic placeholder polynomial")
		}
		symPolynomials2[r] = s
	}

	equations := TransformExpanders(expanders, len(zpPolynomials))
	bigMatrix, err := cmatrix.NewFromSchedule(zpPolynomials, equations)
	if err != nil {
		return nil, errors.Wrap(err, "generate: build schedule matrix")
	}

	attempt, err := cmatrix.NewFromSchedule(zpPolynomials, equations)
	if err != nil {
		return nil, errors.Wrap(err, "generate: build attempt matrix")
	}
	if err := attempt.Reduce(); err != nil {
		return nil, errors.Wrap(err, "generate: reduce attempt matrix")
	}

	goodPolynomials, err := extractGoodPolynomials(attempt, baseMonomials, multiplier)
	if err != nil {
		return nil, err
	}

	usedEquations, err := minimizeSchedule(bigMatrix, equations, goodPolynomials)
	if err != nil {
		return nil, err
	}

	finalEquations := make([]cmatrix.Expansion, len(usedEquations))
	for i, idx := range usedEquations {
		finalEquations[i] = equations[idx]
	}

	finalMatrix, err := cmatrix.NewFromSchedule(zpPolynomials, finalEquations)
	if err != nil {
		return nil, errors.Wrap(err, "generate: build final matrix")
	}
	if err := finalMatrix.Reduce(); err != nil {
		return nil, errors.Wrap(err, "generate: reduce final matrix")
	}

	finalMonomials, err := leadingMonomialsFirstOrder(finalMatrix)
	if err != nil {
		return nil, err
	}

	reorderedEquations, err := reorderForEchelon(zpPolynomials, finalEquations, finalMonomials)
	if err != nil {
		return nil, err
	}

	reorderedFinal, err := cmatrix.NewFromScheduleWithColumns(zpPolynomials, reorderedEquations, finalMonomials)
	if err != nil {
		return nil, errors.Wrap(err, "generate: build reordered final matrix")
	}
	if err := reorderedFinal.Reduce(); err != nil {
		return nil, errors.Wrap(err, "generate: reduce reordered final matrix")
	}

	helper, err := cmatrix.NewFromScheduleWithColumns(symPolynomials2, reorderedEquations, finalMonomials)
	if err != nil {
		return nil, errors.Wrap(err, "generate: build helper matrix")
	}

	return &Plan{
		M1Symbolic:    m1Symbolic,
		Helper:        helper,
		FinalMatrix:   reorderedFinal,
		FinalSchedule: reorderedEquations,
		BaseMonomials: baseMonomials,
		Multiplier:    multiplier,
	}, nil
}

// extractGoodPolynomials collects every row of attempt whose leading
// monomial is some baseMonomials[i]*multiplier that does not already
// lie in baseMonomials: these are the polynomials the final action
// matrix must be able to reconstruct.
func extractGoodPolynomials(attempt *cmatrix.CoefficientMatrix, baseMonomials []monomial.Monomial, multiplier monomial.Monomial) ([]*poly.Polynomial, error) {
	var good []*poly.Polynomial
	for _, b := range baseMonomials {
		multiplied, err := b.Multiply(multiplier)
		if err != nil {
			return nil, err
		}
		if containsMonomial(baseMonomials, multiplied) {
			continue
		}
		for r := 0; r < attempt.Rows(); r++ {
			p, err := attempt.GetPolynomial(r)
			if err != nil {
				return nil, err
			}
			if p.LeadingTerm().Monomial().Equal(multiplied) {
				good = append(good, p)
			}
		}
	}
	return good, nil
}

// minimizeSchedule implements the exponential-probe drop strategy:
// starting from every row index, repeatedly try to drop a batch of
// rows (doubling the batch size on success, halving on failure) while
// the remaining schedule's reduced submatrix still contains every
// polynomial in goodPolynomials.
func minimizeSchedule(bigMatrix *cmatrix.CoefficientMatrix, equations []cmatrix.Expansion, goodPolynomials []*poly.Polynomial) ([]int, error) {
	used := make([]int, len(equations))
	for i := range used {
		used[i] = i
	}
	if len(goodPolynomials) == 0 {
		return used, nil
	}

	toRemove := 1
	pos := 0
	for pos < len(used) {
		end := pos + toRemove
		if end > len(used) {
			end = len(used)
		}
		trial := make([]int, 0, len(used)-(end-pos))
		trial = append(trial, used[:pos]...)
		trial = append(trial, used[end:]...)

		sub, err := bigMatrix.SubMatrix(trial)
		if err != nil {
			return nil, errors.Wrap(err, "minimize schedule: submatrix")
		}
		if err := sub.Reduce(); err != nil {
			return nil, errors.Wrap(err, "minimize schedule: reduce")
		}
		ok, err := sub.Contains(goodPolynomials)
		if err != nil {
			return nil, errors.Wrap(err, "minimize schedule: contains")
		}

		if ok {
			used = trial
			toRemove *= 2
			for toRemove > len(used)-pos && toRemove > 1 {
				toRemove /= 2
			}
		} else if toRemove > 1 {
			toRemove /= 2
		} else {
			pos++
		}
	}
	return used, nil
}

// leadingMonomialsFirstOrder returns finalMatrix's row leading
// monomials, in row order, followed by any remaining column monomial
// not already among them.
func leadingMonomialsFirstOrder(finalMatrix *cmatrix.CoefficientMatrix) ([]monomial.Monomial, error) {
	var order []monomial.Monomial
	for r := 0; r < finalMatrix.Rows(); r++ {
		p, err := finalMatrix.GetPolynomial(r)
		if err != nil {
			return nil, err
		}
		order = append(order, p.LeadingTerm().Monomial())
	}
	for _, c := range finalMatrix.Columns() {
		if !containsMonomial(order, c) {
			order = append(order, c)
		}
	}
	return order, nil
}

// reorderForEchelon sweeps columns left to right, pulling to the front
// (in column order) any not-yet-placed row whose entry in the current
// column is nonzero, matching the original generator's column-sweep
// reordering toward row-echelon form.
func reorderForEchelon(zpPolynomials []*poly.Polynomial, finalEquations []cmatrix.Expansion, finalMonomials []monomial.Monomial) ([]cmatrix.Expansion, error) {
	m, err := cmatrix.NewFromScheduleWithColumns(zpPolynomials, finalEquations, finalMonomials)
	if err != nil {
		return nil, errors.Wrap(err, "reorder for echelon: build matrix")
	}
	remaining := make([]int, m.Rows())
	for i := range remaining {
		remaining[i] = i
	}
	var order []int
	for col := 0; col < m.Cols() && len(remaining) > 0; col++ {
		var next []int
		for _, r := range remaining {
			v, err := m.At(r, col)
			if err != nil {
				return nil, err
			}
			if !v.IsZero() {
				order = append(order, r)
			} else {
				next = append(next, r)
			}
		}
		remaining = next
	}
	order = append(order, remaining...)

	out := make([]cmatrix.Expansion, len(order))
	for i, r := range order {
		out[i] = finalEquations[r]
	}
	return out, nil
}

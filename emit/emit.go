// Package emit implements the code emitter of spec 4.K: given a
// template.Plan, it prints the Go source of a standalone solver
// package that assembles the action matrix at runtime from a caller's
// coefficient values and extracts its real eigenvalues with gonum.
//
// The emitted package never repeats the elimination work the
// generator already did. Pre-elimination survives at runtime only as
// one matrix inverse-and-multiply (the schedule's pivot columns are
// already known to be the left-most M1rows columns, because the
// generator's own Gauss-Jordan pass sorted them that way); the
// expansion schedule survives as a fixed list of initRow calls
// copying cells from M1 into M2; and the action matrix's rows are
// either a fixed 1.0 or a fixed subtraction from the linear-solve
// result M3, depending entirely on plan data decided at generation
// time.
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/template"
)

// Options configures the Go source Generate prints for one solver.
type Options struct {
	// PackageName is the emitted file's package clause.
	PackageName string
	// SolverName becomes part of the exported Solve<SolverName> function
	// name and the generated doc comment.
	SolverName string
	// Parameters names the runtime float64 inputs, in the order the
	// caller's symbolic source polynomials referenced them. Every named
	// symbol appearing in plan.M1Symbolic's cells must be listed here.
	Parameters []string
}

// Generate prints the Go source of a package implementing plan: one
// exported Solve<SolverName> function taking Options.Parameters as
// float64 arguments and returning every real root as a slice of
// unknown values, plus the unexported initRow helper it calls.
func Generate(plan *template.Plan, opts Options) (string, error) {
	if opts.PackageName == "" {
		return "", errors.New("emit: package name required")
	}
	if opts.SolverName == "" {
		return "", errors.New("emit: solver name required")
	}
	if len(opts.Parameters) == 0 {
		return "", errors.New("emit: at least one parameter required")
	}
	if len(plan.BaseMonomials) == 0 {
		return "", errors.New("emit: plan has no base monomials")
	}

	solNbr := len(plan.BaseMonomials)
	unknownNbr := plan.BaseMonomials[0].Arity()
	finalMonomials := plan.FinalMatrix.Columns()
	m1rows, m1cols := plan.M1Symbolic.Rows(), plan.M1Symbolic.Cols()
	m2rows, m2cols := plan.FinalMatrix.Rows(), plan.FinalMatrix.Cols()
	m3cols := m2cols - m2rows

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated for %s by the polyjamgen solver generator. DO NOT EDIT.\n\n", opts.SolverName)
	fmt.Fprintf(&b, "package %s\n\n", opts.PackageName)
	b.WriteString("import (\n\t\"errors\"\n\t\"math\"\n\n\t\"gonum.org/v1/gonum/mat\"\n)\n\n")

	fmt.Fprintf(&b, "// Solve%s extracts the real roots of the system %s was generated\n", opts.SolverName, opts.SolverName)
	b.WriteString("// for, given the runtime values of its input coefficients.\n")
	fmt.Fprintf(&b, "func Solve%s(%s float64) ([][]float64, error) {\n", opts.SolverName, paramList(opts.Parameters))

	if err := emitM1(&b, plan, m1rows, m1cols); err != nil {
		return "", err
	}
	if err := emitM2(&b, plan, m2rows, m2cols); err != nil {
		return "", err
	}

	fmt.Fprintf(&b, "\tvar M3 mat.Dense\n")
	fmt.Fprintf(&b, "\tif err := M3.Solve(M2.Slice(0, %d, 0, %d), M2.Slice(0, %d, %d, %d)); err != nil {\n", m2rows, m2rows, m2rows, m2rows, m2cols)
	b.WriteString("\t\treturn nil, err\n\t}\n\n")

	if err := emitAction(&b, plan, finalMonomials, solNbr, m3cols); err != nil {
		return "", err
	}

	b.WriteString("\tvar eig mat.Eigen\n")
	b.WriteString("\tif ok := eig.Factorize(Action, mat.EigenRight); !ok {\n")
	b.WriteString("\t\treturn nil, errors.New(\"action matrix eigendecomposition did not converge\")\n\t}\n")
	b.WriteString("\tvalues := eig.Values(nil)\n")
	b.WriteString("\tvar vectors mat.CDense\n")
	b.WriteString("\teig.VectorsTo(&vectors)\n\n")

	if err := emitRootExtraction(&b, plan, solNbr, unknownNbr); err != nil {
		return "", err
	}

	b.WriteString("\treturn solutions, nil\n}\n\n")
	b.WriteString("func initRow(m2, m1 *mat.Dense, row2, row1 int, cols2, cols1 []int) {\n")
	b.WriteString("\tfor i := range cols2 {\n\t\tm2.Set(row2, cols2[i], m1.At(row1, cols1[i]))\n\t}\n}\n")

	return b.String(), nil
}

// emitM1 prints the pre-elimination matrix's fixed cell assignments
// (every nonzero cell's 𝕊 source expression, already a valid Go
// arithmetic expression by construction) followed by the runtime
// normalisation that replaces symbolic Gauss-Jordan: multiplying by
// the inverse of the left M1rows-by-M1rows block, whose columns are
// known at generation time to hold the system's pivots.
func emitM1(b *strings.Builder, plan *template.Plan, m1rows, m1cols int) error {
	fmt.Fprintf(b, "\tM1 := mat.NewDense(%d, %d, nil)\n", m1rows, m1cols)
	for r := 0; r < m1rows; r++ {
		for c := 0; c < m1cols; c++ {
			v, err := plan.M1Symbolic.At(r, c)
			if err != nil {
				return err
			}
			if v.IsZero() {
				continue
			}
			fmt.Fprintf(b, "\tM1.Set(%d, %d, %s)\n", r, c, v.String())
		}
	}
	fmt.Fprintf(b, "\tpreLeft := M1.Slice(0, %d, 0, %d)\n", m1rows, m1rows)
	b.WriteString("\tvar preInv mat.Dense\n")
	b.WriteString("\tif err := preInv.Inverse(preLeft); err != nil {\n\t\treturn nil, err\n\t}\n")
	b.WriteString("\tvar preReduced mat.Dense\n")
	b.WriteString("\tpreReduced.Mul(&preInv, M1)\n")
	b.WriteString("\tM1 = &preReduced\n\n")
	return nil
}

// emitM2 prints the fixed expansion-schedule copy: one initRow call
// per final row, driven entirely by Helper's nonzero placeholder
// cells, which name the exact M1 row/column each M2 cell is sourced
// from (spec 4.G's named-placeholder convention, "<matrix>_<row>_<col>").
func emitM2(b *strings.Builder, plan *template.Plan, m2rows, m2cols int) error {
	fmt.Fprintf(b, "\tM2 := mat.NewDense(%d, %d, nil)\n", m2rows, m2cols)
	for r := 0; r < m2rows; r++ {
		if r >= len(plan.FinalSchedule) {
			return errors.Wrapf(errs.ErrBounds, "emit: final schedule shorter than final matrix (row %d)", r)
		}
		row1 := plan.FinalSchedule[r].PolyIndex
		var cols2, cols1 []int
		for c := 0; c < plan.Helper.Cols(); c++ {
			v, err := plan.Helper.At(r, c)
			if err != nil {
				return err
			}
			if v.IsZero() {
				continue
			}
			col1, err := parsePlaceholderColumn(v.String())
			if err != nil {
				return err
			}
			cols2 = append(cols2, c)
			cols1 = append(cols1, col1)
		}
		fmt.Fprintf(b, "\tinitRow(M2, M1, %d, %d, %s, %s)\n", r, row1, intSliceLiteral(cols2), intSliceLiteral(cols1))
	}
	b.WriteString("\n")
	return nil
}

// emitAction prints the fixed action-matrix assembly: row i is the
// identity row when baseMonomials[i]*multiplier is itself a base
// monomial, otherwise it is read off M3's last solNbr columns at the
// row where that product appears among finalMonomials.
func emitAction(b *strings.Builder, plan *template.Plan, finalMonomials []monomial.Monomial, solNbr, m3cols int) error {
	fmt.Fprintf(b, "\tAction := mat.NewDense(%d, %d, nil)\n", solNbr, solNbr)
	for i, bm := range plan.BaseMonomials {
		temp, err := bm.Multiply(plan.Multiplier)
		if err != nil {
			return err
		}
		if idx := indexOfMonomial(plan.BaseMonomials, temp); idx >= 0 {
			fmt.Fprintf(b, "\tAction.Set(%d, %d, 1.0)\n", i, idx)
			continue
		}
		idx := indexOfMonomial(finalMonomials, temp)
		if idx < 0 {
			return errors.Wrapf(errs.ErrNotConverged, "emit: %s not found among final monomials", temp.String())
		}
		fmt.Fprintf(b, "\tfor k := 0; k < %d; k++ {\n", solNbr)
		fmt.Fprintf(b, "\t\tAction.Set(%d, k, Action.At(%d, k)-M3.At(%d, %d+k))\n", i, i, idx, m3cols-solNbr)
		b.WriteString("\t}\n")
	}
	b.WriteString("\n")
	return nil
}

// emitRootExtraction prints the fixed real-root filter: for every
// eigenvalue with a near-zero imaginary part, divide out the
// homogenising coordinate (the last action-matrix row/column,
// conventionally the constant monomial) from each unknown's
// eigenvector component.
func emitRootExtraction(b *strings.Builder, plan *template.Plan, solNbr, unknownNbr int) error {
	b.WriteString("\tvar solutions [][]float64\n")
	fmt.Fprintf(b, "\tfor c := 0; c < %d; c++ {\n", solNbr)
	b.WriteString("\t\tif math.Abs(imag(values[c])) > 1e-4 {\n\t\t\tcontinue\n\t\t}\n")
	fmt.Fprintf(b, "\t\tsol := make([]float64, %d)\n", unknownNbr)
	for d := 0; d < unknownNbr; d++ {
		indicator := monomial.NewIndicatorMust(unknownNbr, d+1, plan.Multiplier.Order())
		idx := indexOfMonomial(plan.BaseMonomials, indicator)
		if idx < 0 {
			return errors.Wrapf(errs.ErrNotConverged, "emit: unknown %d not found among base monomials", d)
		}
		fmt.Fprintf(b, "\t\tsol[%d] = real(vectors.At(%d, c) / vectors.At(%d, c))\n", d, idx, solNbr-1)
	}
	b.WriteString("\t\tsolutions = append(solutions, sol)\n")
	b.WriteString("\t}\n\n")
	return nil
}

func paramList(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + " float64"
	}
	return strings.Join(parts, ", ")
}

func intSliceLiteral(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return "[]int{" + strings.Join(parts, ", ") + "}"
}

func indexOfMonomial(set []monomial.Monomial, m monomial.Monomial) int {
	for i, s := range set {
		if s.Equal(m) {
			return i
		}
	}
	return -1
}

// parsePlaceholderColumn recovers the source column from a
// "<matrix>_<row>_<col>" placeholder name.
func parsePlaceholderColumn(name string) (int, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 3 {
		return 0, errors.Errorf("emit: malformed placeholder name %q", name)
	}
	return strconv.Atoi(parts[2])
}

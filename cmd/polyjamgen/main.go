// Command polyjamgen is the generator driver of spec 4.I–4.K: given a
// problem file naming a polynomial system's unknowns, named
// coefficients and equation texts, it samples a random ℤ/pℤ instance,
// queries the basis oracle for the system's quotient basis, searches
// for an expansion degree that reveals the action-matrix rows,
// minimises and reorders the resulting template, and emits a
// standalone Go solver package.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam"
	"github.com/polyjam-go/polyjam/cmatrix"
	"github.com/polyjam-go/polyjam/emit"
	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/internal/config"
	"github.com/polyjam-go/polyjam/internal/problem"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/oracle"
	"github.com/polyjam-go/polyjam/poly"
	"github.com/polyjam-go/polyjam/template"
	"github.com/polyjam-go/polyjam/term"
)

var logger = log.New(os.Stderr, "", log.LstdFlags)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "polyjamgen: %+v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.ProblemFile)
	if err != nil {
		return errors.Wrap(err, "polyjamgen: open problem file")
	}
	defer f.Close()
	prob, err := problem.Parse(f)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	transport := oracle.ExecTransport{Command: cfg.OracleCommand, Dir: cfg.Workspace}
	plan, err := buildPlan(context.Background(), cfg, prob, rng, transport)
	if err != nil {
		return err
	}

	src, err := emit.Generate(plan, emit.Options{
		PackageName: cfg.PackageName,
		SolverName:  cfg.SolverName,
		Parameters:  cfg.Parameters,
	})
	if err != nil {
		return errors.Wrap(err, "polyjamgen: emit solver")
	}

	outPath := filepath.Join(cfg.OutputDir, strings.ToLower(cfg.SolverName)+"_solver.go")
	if err := os.WriteFile(outPath, []byte(src), 0o644); err != nil {
		return errors.Wrap(err, "polyjamgen: write solver")
	}
	logger.Printf("wrote %s", outPath)
	return nil
}

// buildPlan runs the A-K pipeline: sample a numeric instance of the
// problem, ask the oracle for its quotient basis, search for an
// expansion degree, and build the action-matrix template.
func buildPlan(ctx context.Context, cfg *config.Config, prob *problem.Problem, rng *rand.Rand, transport oracle.Transport) (*template.Plan, error) {
	arity := len(prob.Unknowns)
	unknowns := prob.UnknownIndex()

	zpType := poly.Type{Order: monomial.Grevlex, Arity: arity, CarrierKinds: []field.Kind{field.Zp}, Characteristic: cfg.Characteristic}
	symType := poly.Type{Order: monomial.Grevlex, Arity: arity, CarrierKinds: []field.Kind{field.Sym}}

	zpCoeffs := make(map[string]field.Coefficient, len(prob.Coeffs))
	symCoeffs := make(map[string]field.Coefficient, len(prob.Coeffs))
	for _, name := range prob.Coeffs {
		zpCoeffs[name] = field.RandomCoefficient(field.Zp, rng, cfg.Characteristic, 0)
		symCoeffs[name] = field.NewCoefficientName(name)
	}

	polysZp := make([]*poly.Polynomial, len(prob.Equations))
	polysSym := make([]*poly.Polynomial, len(prob.Equations))
	for i, eq := range prob.Equations {
		p, err := polyjam.Parse(unknowns, zpCoeffs, zpType, eq)
		if err != nil {
			return nil, errors.Wrapf(err, "polyjamgen: parse equation %d over Zp", i+1)
		}
		polysZp[i] = p
		s, err := polyjam.Parse(unknowns, symCoeffs, symType, eq)
		if err != nil {
			return nil, errors.Wrapf(err, "polyjamgen: parse equation %d over Sym", i+1)
		}
		polysSym[i] = s
	}

	logger.Printf("querying basis oracle for a %d-equation, %d-unknown system", len(polysZp), arity)
	basis, err := oracle.QuotientBasis(ctx, transport, polysZp)
	if err != nil {
		return nil, err
	}
	baseMonomials, err := orderMonomials(zpType, basis)
	if err != nil {
		return nil, err
	}
	logger.Printf("quotient basis has dimension %d", len(baseMonomials))

	expanders := make([]monomial.Monomial, arity)
	for i := 0; i < arity; i++ {
		m, err := monomial.NewIndicator(arity, i+1, monomial.Grevlex)
		if err != nil {
			return nil, err
		}
		expanders[i] = m
	}
	multiplier, err := monomial.NewIndicator(arity, arity, monomial.Grevlex)
	if err != nil {
		return nil, err
	}

	degree, err := template.AutomaticDegreeFinder(polysZp, expanders, baseMonomials, multiplier, false)
	if err != nil {
		return nil, err
	}
	logger.Printf("automatic degree search converged at degree %d", degree)

	finalExpanders, err := template.GenerateSuperlinearExpanders(expanders, degree)
	if err != nil {
		return nil, err
	}

	plan, err := template.Generate(polysZp, polysSym, finalExpanders, baseMonomials, multiplier)
	if err != nil {
		return nil, err
	}

	if cfg.Visualize {
		m, err := cmatrix.NewFromPolynomials(polysZp)
		if err == nil {
			logger.Printf("input system:\n%s", m.String())
		}
		logger.Printf("final elimination matrix:\n%s", plan.FinalMatrix.String())
	}

	return plan, nil
}

// orderMonomials re-derives the oracle's basis monomials in the
// system's own descending monomial order: the oracle reply lists them
// in Macaulay2's order, which need not match ours, so each is inserted
// as a term of a throwaway polynomial and read back via the container's
// own sort.
func orderMonomials(typ poly.Type, basis []monomial.Monomial) ([]monomial.Monomial, error) {
	terms := make([]term.Term, len(basis))
	for i, m := range basis {
		terms[i] = term.New(m, field.OneCoefficient(typ.CarrierKinds[0], typ.Characteristic))
	}
	p, err := poly.New(typ, terms...)
	if err != nil {
		return nil, errors.Wrap(err, "polyjamgen: order basis monomials")
	}
	ordered := make([]monomial.Monomial, 0, p.Len())
	for t := range p.Terms() {
		ordered = append(ordered, t.Monomial())
	}
	return ordered, nil
}

// Package problem reads the plain-text description cmd/polyjamgen
// generates a solver from: the unknown and named-coefficient
// identifiers a problem's equations reference, and the equation texts
// themselves. This replaces the excluded top-level driver's C++
// problem-construction calls (spec 4.F's geometric-vision consumer is
// out of scope here) with the minimal textual input spec §6 actually
// requires: "a list of polynomials".
package problem

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// A Problem names the unknowns and coefficient placeholders a set of
// equation texts is parsed over.
type Problem struct {
	// Unknowns lists the problem's unknowns in declaration order;
	// Unknowns[i]'s 1-based index (i+1) is its position.Arity() index.
	Unknowns []string
	// Coeffs lists the named coefficient placeholders the equations
	// may reference, distinct from Unknowns (spec 4.D's dual carrier:
	// see the parse.go (root) ledger entry for the grounding).
	Coeffs []string
	// Equations is the list of equation texts, parsed against
	// Unknowns and Coeffs.
	Equations []string
}

// Parse reads a problem description from r. Lines beginning with
// "unknowns" or "coeffs" declare the two identifier namespaces
// (whitespace-separated names after the keyword); blank lines and
// lines beginning with "#" are ignored; every other line is an
// equation text.
func Parse(r io.Reader) (*Problem, error) {
	p := &Problem{}
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case consume(&line, "unknowns"):
			p.Unknowns = fields(line)
		case consume(&line, "coeffs"):
			p.Coeffs = fields(line)
		default:
			p.Equations = append(p.Equations, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "problem: read")
	}
	if len(p.Unknowns) == 0 {
		return nil, errors.New("problem: no unknowns declared")
	}
	if len(p.Equations) == 0 {
		return nil, errors.New("problem: no equations declared")
	}
	return p, nil
}

// consume reports whether line starts with keyword (optionally
// followed by ":"), and if so rewrites *line to the remainder.
func consume(line *string, keyword string) bool {
	rest, ok := strings.CutPrefix(*line, keyword)
	if !ok {
		return false
	}
	rest = strings.TrimPrefix(strings.TrimSpace(rest), ":")
	*line = strings.TrimSpace(rest)
	return true
}

func fields(line string) []string {
	return strings.Fields(line)
}

// UnknownIndex returns p's unknowns as a 1-based name-to-index map,
// matching monomial.NewIndicator's own indexing convention.
func (p *Problem) UnknownIndex() map[string]int {
	m := make(map[string]int, len(p.Unknowns))
	for i, name := range p.Unknowns {
		m[name] = i + 1
	}
	return m
}

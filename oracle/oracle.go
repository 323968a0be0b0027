// Package oracle implements spec 4.J: formatting a polynomial system
// as a Macaulay2 ideal-dimension/basis script, running it through a
// pluggable Transport, and parsing its reply back into the quotient
// basis monomials the action-matrix construction needs.
package oracle

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/poly"
)

// FormatIdeal renders polys as a Macaulay2 script computing the
// dimension and monomial basis of the quotient ring they generate.
// Every polynomial's dominant carrier must be field.Zp, and all must
// share the same arity and characteristic. Returns the script text
// and the system's arity (needed to parse the reply back).
func FormatIdeal(polys []*poly.Polynomial) (string, int, error) {
	if len(polys) == 0 {
		return "", 0, errors.New("oracle: ideal requires at least one polynomial")
	}

	var arity int
	var characteristic uint64
	for i, p := range polys {
		c := p.LeadingTerm().DominantCoefficient()
		if c.Kind() != field.Zp {
			return "", 0, errors.Wrapf(errs.ErrTypeMismatch, "oracle: polynomial %d's dominant carrier is %v, not Zp (did you forget to set the dominant index?)", i, c.Kind())
		}
		ch, err := c.Characteristic()
		if err != nil {
			return "", 0, err
		}
		a := p.Type().Arity
		if i == 0 {
			arity, characteristic = a, ch
			continue
		}
		if a != arity || ch != characteristic {
			return "", 0, errors.Wrapf(errs.ErrShapeMismatch, "oracle: polynomial %d has arity/characteristic %d/%d, want %d/%d", i, a, ch, arity, characteristic)
		}
	}

	var b strings.Builder
	b.WriteString("-- Macaulay2 code template for gbsolver generator\n")
	b.WriteString("-- by Laurent Kneip 2013\n\n")
	fmt.Fprintf(&b, "KK = ZZ/%d\n", characteristic)
	fmt.Fprintf(&b, "R = KK[x_1..x_%d, MonomialOrder=>GRevLex]\n\n", arity)
	b.WriteString("-- equations\n\n")

	names := make([]string, len(polys))
	for i, p := range polys {
		names[i] = fmt.Sprintf("f%d", i+1)
		fmt.Fprintf(&b, "%s=%s;\n", names[i], p.String())
	}
	fmt.Fprintf(&b, "f = (%s);\n\n", strings.Join(names, " || "))

	b.WriteString("-- computation of the basis\n\n")
	b.WriteString("gbTrace = 0;\n")
	b.WriteString("I1 = ideal(f);\n")
	b.WriteString("dm = dim I1;\n")
	b.WriteString("dg = degree I1;\n\n")
	b.WriteString("--printing of the output\n\n")
	b.WriteString("print dm;\n\n")
	b.WriteString("A = R/I1;\n")
	b.WriteString("Ab = basis A;\n\n")
	b.WriteString("print Ab;\n\n")
	b.WriteString("exit 0\n")

	return b.String(), arity, nil
}

// A Transport runs a Macaulay2 script and returns its standard
// output, so callers can stub out the real binary in tests.
type Transport interface {
	Run(ctx context.Context, script string) (string, error)
}

// ExecTransport runs Command (a Macaulay2 binary) as a subprocess,
// invoked as "<Command> --silent <scriptfile>" against a temporary
// script file written under Dir.
type ExecTransport struct {
	Command string
	Dir     string
}

// Run writes script to a temporary file under t.Dir and executes it.
func (t ExecTransport) Run(ctx context.Context, script string) (string, error) {
	command := t.Command
	if command == "" {
		command = "M2"
	}
	f, err := os.CreateTemp(t.Dir, "polyjam-*.m2")
	if err != nil {
		return "", errors.Wrap(err, "oracle: create script file")
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if _, err := f.WriteString(script); err != nil {
		return "", errors.Wrap(err, "oracle: write script file")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "oracle: close script file")
	}

	cmd := exec.CommandContext(ctx, command, "--silent", f.Name())
	out, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(err, "oracle: run %s", command)
	}
	return string(out), nil
}

// ParseQuotientBasis parses a Macaulay2 reply to the script
// FormatIdeal produced: a first line holding the ideal's dimension
// (must be zero — positive means underconstrained, negative means
// overconstrained), followed by the "basis A" print, whose matrix of
// monomials is wrapped in "| ... |" bars and may span several lines,
// each interspersed with Macaulay2's "----" rule lines.
func ParseQuotientBasis(output string, arity int) ([]monomial.Monomial, error) {
	lines := strings.Split(output, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, errors.Wrap(errs.ErrMalformedInput, "oracle: empty reply")
	}

	dim, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, errors.Wrap(errs.ErrMalformedInput, "oracle: first line is not the ideal dimension")
	}
	switch {
	case dim > 0:
		return nil, errors.Wrap(errs.ErrMalformedInput, "oracle: ideal dimension is positive, system is underconstrained")
	case dim < 0:
		return nil, errors.Wrap(errs.ErrMalformedInput, "oracle: ideal dimension is negative, system is overconstrained")
	}

	var basisLines []string
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, "----") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		basisLines = append(basisLines, line)
	}
	if len(basisLines) == 0 {
		return nil, nil
	}

	basisLines[0] = stripBar(basisLines[0], true)
	basisLines[len(basisLines)-1] = stripBar(basisLines[len(basisLines)-1], false)

	basis := make([]monomial.Monomial, 0, len(basisLines))
	for _, line := range basisLines {
		for _, tok := range strings.Fields(line) {
			m, err := parseMonomialToken(tok, arity)
			if err != nil {
				return nil, err
			}
			basis = append(basis, m)
		}
	}
	return basis, nil
}

// stripBar removes the two leading ("| ") or trailing (" |") bar
// characters Macaulay2 wraps a printed matrix row in.
func stripBar(line string, leading bool) string {
	if len(line) < 2 {
		return line
	}
	if leading {
		return line[2:]
	}
	return line[:len(line)-2]
}

// parseMonomialToken parses one Macaulay2 monomial, e.g. "x_1^2x_3",
// into its exponent vector over arity variables. A token with no "x"
// at all is the constant monomial.
func parseMonomialToken(tok string, arity int) (monomial.Monomial, error) {
	exponents := make([]int, arity)

	var xPositions []int
	for i := 0; i < len(tok); i++ {
		if tok[i] == 'x' {
			xPositions = append(xPositions, i)
		}
	}
	if len(xPositions) == 0 {
		return monomial.NewFromExponents(exponents, monomial.Grevlex), nil
	}

	for i, start := range xPositions {
		end := len(tok)
		if i+1 < len(xPositions) {
			end = xPositions[i+1]
		}
		factor := tok[start:end]

		underscore := strings.IndexByte(factor, '_')
		if underscore < 0 {
			return monomial.Monomial{}, errors.Wrapf(errs.ErrMalformedInput, "oracle: malformed monomial factor %q", factor)
		}

		dimEnd := len(factor)
		exponent := 1
		if hat := strings.IndexByte(factor, '^'); hat >= 0 {
			dimEnd = hat
			e, err := strconv.Atoi(factor[hat+1:])
			if err != nil {
				return monomial.Monomial{}, errors.Wrapf(errs.ErrMalformedInput, "oracle: malformed exponent in %q", factor)
			}
			exponent = e
		}

		dim, err := strconv.Atoi(factor[underscore+1 : dimEnd])
		if err != nil {
			return monomial.Monomial{}, errors.Wrapf(errs.ErrMalformedInput, "oracle: malformed variable index in %q", factor)
		}
		if dim < 1 || dim > arity {
			return monomial.Monomial{}, errors.Wrapf(errs.ErrBounds, "oracle: variable index %d out of [1,%d]", dim, arity)
		}
		exponents[dim-1] = exponent
	}

	return monomial.NewFromExponents(exponents, monomial.Grevlex), nil
}

// QuotientBasis formats polys as an ideal, runs it through transport,
// and parses the quotient basis monomials back out of the reply.
func QuotientBasis(ctx context.Context, transport Transport, polys []*poly.Polynomial) ([]monomial.Monomial, error) {
	script, arity, err := FormatIdeal(polys)
	if err != nil {
		return nil, err
	}
	output, err := transport.Run(ctx, script)
	if err != nil {
		return nil, errors.Wrap(err, "oracle: run transport")
	}
	return ParseQuotientBasis(output, arity)
}

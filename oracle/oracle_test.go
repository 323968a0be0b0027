package oracle_test

import (
	"context"
	"strings"
	"testing"

	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/oracle"
	"github.com/polyjam-go/polyjam/poly"
	"github.com/polyjam-go/polyjam/term"
)

const testCharacteristic = 101

func zpTyp(arity int) poly.Type {
	return poly.Type{Order: monomial.Grevlex, Arity: arity, CarrierKinds: []field.Kind{field.Zp}, Characteristic: testCharacteristic}
}

func m(arity int, exps ...int) monomial.Monomial {
	return monomial.NewFromExponents(exps, monomial.Grevlex)
}

func twoVariableSystem(t *testing.T) []*poly.Polynomial {
	f1, err := poly.New(zpTyp(2),
		term.New(m(2, 2, 0), field.NewCoefficientInt(1, field.Zp, testCharacteristic)),
		term.New(m(2, 0, 1), field.NewCoefficientInt(-1, field.Zp, testCharacteristic)),
	)
	if err != nil {
		t.Fatalf("f1: %v", err)
	}
	f2, err := poly.New(zpTyp(2),
		term.New(m(2, 0, 2), field.NewCoefficientInt(1, field.Zp, testCharacteristic)),
		term.New(m(2, 1, 0), field.NewCoefficientInt(-1, field.Zp, testCharacteristic)),
	)
	if err != nil {
		t.Fatalf("f2: %v", err)
	}
	return []*poly.Polynomial{f1, f2}
}

func TestFormatIdealRendersMacaulayScript(t *testing.T) {
	script, arity, err := oracle.FormatIdeal(twoVariableSystem(t))
	if err != nil {
		t.Fatalf("format ideal: %v", err)
	}
	if arity != 2 {
		t.Fatalf("want arity 2, got %d", arity)
	}
	for _, want := range []string{
		"KK = ZZ/101",
		"R = KK[x_1..x_2, MonomialOrder=>GRevLex]",
		"f1=",
		"f2=",
		"f = (f1 || f2);",
		"I1 = ideal(f);",
		"Ab = basis A;",
		"print Ab;",
		"exit 0",
	} {
		if !strings.Contains(script, want) {
			t.Fatalf("script missing %q\n---\n%s", want, script)
		}
	}
}

func TestFormatIdealRejectsNonZpDominant(t *testing.T) {
	symTyp := poly.Type{Order: monomial.Grevlex, Arity: 1, CarrierKinds: []field.Kind{field.Sym}}
	p, err := poly.New(symTyp, term.New(m(1, 1), field.NewCoefficientName("a")))
	if err != nil {
		t.Fatalf("build poly: %v", err)
	}
	if _, _, err := oracle.FormatIdeal([]*poly.Polynomial{p}); err == nil {
		t.Fatalf("expected error for non-Zp dominant carrier")
	}
}

func TestFormatIdealRejectsMismatchedArity(t *testing.T) {
	polys := twoVariableSystem(t)
	extra, err := poly.New(zpTyp(1), term.New(m(1, 1), field.NewCoefficientInt(1, field.Zp, testCharacteristic)))
	if err != nil {
		t.Fatalf("build poly: %v", err)
	}
	if _, _, err := oracle.FormatIdeal(append(polys, extra)); err == nil {
		t.Fatalf("expected error for mismatched arity")
	}
}

func TestParseQuotientBasisParsesWrappedBasis(t *testing.T) {
	reply := "0\n" +
		"| 1 x_1 x_2 x_1x_2 |\n"
	basis, err := oracle.ParseQuotientBasis(reply, 2)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []monomial.Monomial{
		m(2, 0, 0),
		m(2, 1, 0),
		m(2, 0, 1),
		m(2, 1, 1),
	}
	if len(basis) != len(want) {
		t.Fatalf("want %d monomials, got %d: %v", len(want), len(basis), basis)
	}
	for i := range want {
		if !basis[i].Equal(want[i]) {
			t.Fatalf("basis[%d] = %v, want %v", i, basis[i], want[i])
		}
	}
}

func TestParseQuotientBasisParsesExponentsAndMultipleLines(t *testing.T) {
	// Macaulay2 wraps a row wider than the terminal across several
	// physical lines, separated by "----" rules: only the true first
	// line opens with "| " and the true last line closes with " |".
	reply := "0\n" +
		"| 1 x_1^2x_2\n" +
		"----------------\n" +
		"x_2^3 |\n"
	basis, err := oracle.ParseQuotientBasis(reply, 2)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []monomial.Monomial{
		m(2, 0, 0),
		m(2, 2, 1),
		m(2, 0, 3),
	}
	if len(basis) != len(want) {
		t.Fatalf("want %d monomials, got %d: %v", len(want), len(basis), basis)
	}
	for i := range want {
		if !basis[i].Equal(want[i]) {
			t.Fatalf("basis[%d] = %v, want %v", i, basis[i], want[i])
		}
	}
}

func TestParseQuotientBasisRejectsNonzeroDimension(t *testing.T) {
	if _, err := oracle.ParseQuotientBasis("1\n", 2); err == nil {
		t.Fatalf("expected error for positive dimension")
	}
	if _, err := oracle.ParseQuotientBasis("-1\n", 2); err == nil {
		t.Fatalf("expected error for negative dimension")
	}
}

type stubTransport struct {
	script string
	reply  string
	err    error
}

func (s *stubTransport) Run(ctx context.Context, script string) (string, error) {
	s.script = script
	return s.reply, s.err
}

func TestQuotientBasisRunsTransportAndParsesReply(t *testing.T) {
	transport := &stubTransport{reply: "0\n| 1 x_1 x_2 |\n"}
	basis, err := oracle.QuotientBasis(context.Background(), transport, twoVariableSystem(t))
	if err != nil {
		t.Fatalf("quotient basis: %v", err)
	}
	if len(basis) != 3 {
		t.Fatalf("want 3 basis monomials, got %d", len(basis))
	}
	if !strings.Contains(transport.script, "MonomialOrder=>GRevLex") {
		t.Fatalf("transport did not receive a rendered script")
	}
}

package polyjam

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/parse"
	"github.com/polyjam-go/polyjam/parse/scan"
	"github.com/polyjam-go/polyjam/poly"
	"github.com/polyjam-go/polyjam/term"
)

// env resolves the two identifier namespaces a generator source
// expression draws from: unknowns (monomial variables, 1-based per
// monomial.NewIndicator) and named coefficients (constant
// placeholders standing for a measurement, such as the "F1(0,0)" names
// a geometric-vision problem gives its inputs).
type env struct {
	unknowns map[string]int
	coeffs   map[string]field.Coefficient
}

// Parse parses input as a polynomial expression over typ's carriers.
// variables maps each unknown's name to its 1-based index (x_1 has
// index 1); coeffs maps each named coefficient placeholder directly to
// the constant it should become (nil if the source declares none).
// "+", "-" and "*" build the expected arithmetic; "/" only accepts
// integer literals on both sides and "^" only an integer-literal
// exponent, exactly as Macaulay2-style generator sources write
// constant ratios and powers.
func Parse(variables map[string]int, coeffs map[string]field.Coefficient, typ poly.Type, input string) (*poly.Polynomial, error) {
	n, err := parse.Parse(scan.NewScanner(bytes.NewBufferString(input)))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	e := env{unknowns: variables, coeffs: coeffs}
	p, err := evaluateExpr(n, e, typ)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return p, nil
}

func evaluateExpr(n *parse.Node, e env, typ poly.Type) (*poly.Polynomial, error) {
	switch n.Token.Type {
	case scan.Parenthesis:
		return evaluateParenthesisExpr(n, e, typ)
	case scan.Operator:
		return evaluateOperatorExpr(n, e, typ)
	case scan.Int:
		return evaluateIntExpr(n, typ)
	case scan.Identifier:
		return evaluateIdentifierExpr(n, e, typ)
	default:
		return nil, errors.Errorf("unknown node %#v", n)
	}
}

func evaluateParenthesisExpr(n *parse.Node, e env, typ poly.Type) (*poly.Polynomial, error) {
	if n.Left == nil {
		return nil, errors.Errorf("%#v", n)
	}
	return evaluateExpr(n.Left, e, typ)
}

func evaluateOperatorExpr(n *parse.Node, e env, typ poly.Type) (*poly.Polynomial, error) {
	switch n.Token.Text {
	case "+":
		return evaluatePlusExpr(n, e, typ)
	case "-":
		return evaluateMinusExpr(n, e, typ)
	case "*":
		return evaluateMultiplyExpr(n, e, typ)
	case "/":
		return evaluateDivideExpr(n, typ)
	case "^":
		return evaluatePowerExpr(n, e, typ)
	default:
		return nil, errors.Errorf("%#v", n)
	}
}

// evaluateIdentifierExpr resolves an identifier as an unknown first,
// then as a named coefficient; an identifier cannot be both.
func evaluateIdentifierExpr(n *parse.Node, e env, typ poly.Type) (*poly.Polynomial, error) {
	name := n.Token.Text
	if index, ok := e.unknowns[name]; ok {
		return variablePoly(typ, index)
	}
	if c, ok := e.coeffs[name]; ok {
		return coefficientPoly(typ, c)
	}
	return nil, errors.Errorf("undeclared identifier %q", name)
}

func evaluatePlusExpr(n *parse.Node, e env, typ poly.Type) (*poly.Polynomial, error) {
	left, right, err := evaluateLeftRightExpr(n, e, typ)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	z := poly.Empty(typ)
	if _, err := z.Add(left, right); err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return z, nil
}

func evaluateMinusExpr(n *parse.Node, e env, typ poly.Type) (*poly.Polynomial, error) {
	left, right, err := evaluateLeftRightExpr(n, e, typ)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	negRight := poly.Empty(typ).Neg(right)
	z := poly.Empty(typ)
	if _, err := z.Add(left, negRight); err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return z, nil
}

func evaluateMultiplyExpr(n *parse.Node, e env, typ poly.Type) (*poly.Polynomial, error) {
	left, right, err := evaluateLeftRightExpr(n, e, typ)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	z := poly.Empty(typ)
	if _, err := z.Mul(left, right); err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return z, nil
}

func evaluateDivideExpr(n *parse.Node, typ poly.Type) (*poly.Polynomial, error) {
	if n.Left == nil {
		return nil, errors.Errorf("%#v", n)
	}
	num, err := strconv.ParseInt(n.Left.Token.Text, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	if n.Right == nil {
		return nil, errors.Errorf("%#v", n)
	}
	denom, err := strconv.ParseInt(n.Right.Token.Text, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return ratioPoly(typ, num, denom)
}

func evaluatePowerExpr(n *parse.Node, e env, typ poly.Type) (*poly.Polynomial, error) {
	if n.Left == nil {
		return nil, errors.Errorf("%#v", n)
	}
	base, err := evaluateExpr(n.Left, e, typ)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	if n.Right == nil {
		return nil, errors.Errorf("%#v", n)
	}
	exp, err := strconv.Atoi(n.Right.Token.Text)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	if exp < 0 {
		return nil, errors.Errorf("negative exponent %d", exp)
	}

	result, err := constPoly(typ, 1)
	if err != nil {
		return nil, err
	}
	// poly.Polynomial.Mul forbids the target aliasing either operand, so
	// each multiplication lands in a fresh Empty(typ) rather than result
	// itself.
	for i := 0; i < exp; i++ {
		next := poly.Empty(typ)
		if _, err := next.Mul(result, base); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
		}
		result = next
	}
	return result, nil
}

func evaluateIntExpr(n *parse.Node, typ poly.Type) (*poly.Polynomial, error) {
	i, err := strconv.ParseInt(n.Token.Text, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return constPoly(typ, i)
}

func evaluateLeftRightExpr(n *parse.Node, e env, typ poly.Type) (*poly.Polynomial, *poly.Polynomial, error) {
	if n.Left == nil {
		return nil, nil, errors.Errorf("%#v", n)
	}
	left, err := evaluateExpr(n.Left, e, typ)
	if err != nil {
		return nil, nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	if n.Right == nil {
		return nil, nil, errors.Errorf("%#v", n)
	}
	right, err := evaluateExpr(n.Right, e, typ)
	if err != nil {
		return nil, nil, errors.Wrap(err, fmt.Sprintf("%#v", n))
	}
	return left, right, nil
}

// constPoly builds the constant polynomial n, with one coefficient per
// carrier in typ.
func constPoly(typ poly.Type, n int64) (*poly.Polynomial, error) {
	coeffs := make([]field.Coefficient, len(typ.CarrierKinds))
	for i, k := range typ.CarrierKinds {
		coeffs[i] = field.NewCoefficientInt(n, k, typ.Characteristic)
	}
	identity := monomial.New(typ.Arity, typ.Order)
	return poly.New(typ, term.New(identity, coeffs...))
}

// ratioPoly builds the constant polynomial num/denom. Division is
// carrier-local: a carrier that doesn't support it (𝕊) simply fails,
// the same way a symbolic generator source could never sensibly
// contain a literal ratio in the first place.
func ratioPoly(typ poly.Type, num, denom int64) (*poly.Polynomial, error) {
	coeffs := make([]field.Coefficient, len(typ.CarrierKinds))
	for i, k := range typ.CarrierKinds {
		n := field.NewCoefficientInt(num, k, typ.Characteristic)
		d := field.NewCoefficientInt(denom, k, typ.Characteristic)
		c, err := n.Div(d)
		if err != nil {
			return nil, errors.Wrapf(err, "divide in carrier %d", i)
		}
		coeffs[i] = c
	}
	identity := monomial.New(typ.Arity, typ.Order)
	return poly.New(typ, term.New(identity, coeffs...))
}

// variablePoly builds the degree-1 monomial in variable index, with
// coefficient one in every carrier.
func variablePoly(typ poly.Type, index int) (*poly.Polynomial, error) {
	coeffs := make([]field.Coefficient, len(typ.CarrierKinds))
	for i, k := range typ.CarrierKinds {
		coeffs[i] = field.OneCoefficient(k, typ.Characteristic)
	}
	mono, err := monomial.NewIndicator(typ.Arity, index, typ.Order)
	if err != nil {
		return nil, err
	}
	return poly.New(typ, term.New(mono, coeffs...))
}

// coefficientPoly builds the constant polynomial whose single carrier
// is c. typ must declare exactly one carrier, of c's kind: a named
// coefficient placeholder only ever stands for one field at a time
// (the caller parses the same source twice, once per carrier, to
// build the dual-carrier pair spec 4.D describes).
func coefficientPoly(typ poly.Type, c field.Coefficient) (*poly.Polynomial, error) {
	identity := monomial.New(typ.Arity, typ.Order)
	return poly.New(typ, term.New(identity, c))
}

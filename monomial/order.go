// Package monomial implements exponent-vector monomials over a fixed
// arity together with the four monomial orders named in spec 4.C:
// LEX, REVLEX, GRLEX and GREVLEX.
package monomial

import "cmp"

// An Order selects how two monomials of equal arity are compared.
type Order uint8

const (
	// Lex compares exponent vectors left to right.
	Lex Order = iota
	// RevLex compares exponent vectors right to left with the sign
	// reversed.
	RevLex
	// Grlex compares total degree first, breaking ties with Lex.
	Grlex
	// Grevlex compares total degree first, breaking ties with RevLex.
	Grevlex
)

func (o Order) String() string {
	switch o {
	case Lex:
		return "lex"
	case RevLex:
		return "revlex"
	case Grlex:
		return "grlex"
	case Grevlex:
		return "grevlex"
	default:
		return "order(?)"
	}
}

// compare implements the strict total order named by o over two
// exponent vectors of equal length.
func compare(o Order, x, y []int) int {
	switch o {
	case Lex:
		return lexCompare(x, y)
	case RevLex:
		return -revCompare(x, y)
	case Grlex:
		if c := degreeOf(x) - degreeOf(y); c != 0 {
			return cmp.Compare(c, 0)
		}
		return lexCompare(x, y)
	case Grevlex:
		if c := degreeOf(x) - degreeOf(y); c != 0 {
			return cmp.Compare(c, 0)
		}
		return -revCompare(x, y)
	default:
		panic("monomial: unknown order")
	}
}

func lexCompare(x, y []int) int {
	for i := range x {
		if c := cmp.Compare(x[i], y[i]); c != 0 {
			return c
		}
	}
	return 0
}

// revCompare compares right to left, without the sign reversal that
// REVLEX additionally applies.
func revCompare(x, y []int) int {
	for i := len(x) - 1; i >= 0; i-- {
		if c := cmp.Compare(x[i], y[i]); c != 0 {
			return c
		}
	}
	return 0
}

func degreeOf(exp []int) int {
	var d int
	for _, e := range exp {
		d += e
	}
	return d
}

package field

import (
	"fmt"
	"sort"
	"strings"
)

// symFactor is one (symbol-name, positive-exponent) pair inside a
// product.
type symFactor struct {
	name string
	exp  int
}

// symProduct is a signed product of symFactors: an integer factor
// together with the symbols it multiplies. Within a product every
// symbol name is unique (exponents are merged on construction) and
// vars is kept sorted by name for a canonical key.
type symProduct struct {
	factor int64
	vars   []symFactor
}

func (p symProduct) key() string {
	var b strings.Builder
	for i, v := range p.vars {
		if i > 0 {
			b.WriteByte('*')
		}
		fmt.Fprintf(&b, "%s^%d", v.name, v.exp)
	}
	return b.String()
}

// symVal is a sum of symProducts, sorted by key and normalized: no
// product carries a zero factor, and the empty sum represents zero.
// This is polyjam's free symbolic algebra 𝕊 (spec 3, 4.A).
type symVal []symProduct

// NewSym returns the symbolic value consisting of the single named
// indeterminate, with coefficient 1.
func NewSym(name string) Value {
	return symVal{{factor: 1, vars: []symFactor{{name: name, exp: 1}}}}
}

// NewSymInt returns the symbolic value representing the integer n.
func NewSymInt(n int64) Value {
	if n == 0 {
		return symVal{}
	}
	return symVal{{factor: n}}
}

func (x symVal) Kind() Kind             { return Sym }
func (x symVal) Characteristic() uint64 { return 0 }
func (x symVal) IsZero() bool           { return len(x) == 0 }
func (x symVal) IsOne() bool            { return len(x) == 1 && x[0].factor == 1 && len(x[0].vars) == 0 }

func (x symVal) clone() Value {
	y := make(symVal, len(x))
	for i, p := range x {
		vars := make([]symFactor, len(p.vars))
		copy(vars, p.vars)
		y[i] = symProduct{factor: p.factor, vars: vars}
	}
	return y
}

// String renders x as a Go arithmetic expression: every symbol
// exponent is expanded into repeated multiplication rather than a
// power call, so the result is directly usable inside emitted source.
func (x symVal) String() string {
	if len(x) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, p := range x {
		s := p.factor
		switch {
		case i == 0 && s < 0:
			fmt.Fprintf(&b, "-")
			s = -s
		case i > 0 && s < 0:
			fmt.Fprintf(&b, "-")
			s = -s
		case i > 0:
			fmt.Fprintf(&b, "+")
		}
		wroteFactor := false
		if s != 1 || len(p.vars) == 0 {
			fmt.Fprintf(&b, "%d", s)
			wroteFactor = true
		}
		for _, v := range p.vars {
			if wroteFactor {
				b.WriteByte('*')
			}
			for k := 0; k < v.exp; k++ {
				if k > 0 {
					b.WriteByte('*')
				}
				b.WriteString(v.name)
			}
			wroteFactor = true
		}
	}
	return b.String()
}

// mergeVars combines two sorted, unique-name factor lists into one,
// summing exponents for names shared by both.
func mergeVars(a, b []symFactor) []symFactor {
	out := make([]symFactor, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].name < b[j].name:
			out = append(out, a[i])
			i++
		case a[i].name > b[j].name:
			out = append(out, b[j])
			j++
		default:
			out = append(out, symFactor{name: a[i].name, exp: a[i].exp + b[j].exp})
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func sortedInsert(products []symProduct, p symProduct) []symProduct {
	if p.factor == 0 {
		return products
	}
	key := p.key()
	idx := sort.Search(len(products), func(i int) bool { return products[i].key() >= key })
	if idx < len(products) && products[idx].key() == key {
		products[idx].factor += p.factor
		if products[idx].factor == 0 {
			products = append(products[:idx], products[idx+1:]...)
		}
		return products
	}
	products = append(products, symProduct{})
	copy(products[idx+1:], products[idx:])
	products[idx] = p
	return products
}

func addSym(x, y symVal) symVal {
	out := make([]symProduct, len(x))
	copy(out, x)
	for _, p := range y {
		out = sortedInsert(out, p)
	}
	return symVal(out)
}

func negSym(x symVal) symVal {
	out := make(symVal, len(x))
	for i, p := range x {
		vars := make([]symFactor, len(p.vars))
		copy(vars, p.vars)
		out[i] = symProduct{factor: -p.factor, vars: vars}
	}
	return out
}

func mulSym(x, y symVal) symVal {
	var out []symProduct
	for _, a := range x {
		for _, b := range y {
			out = sortedInsert(out, symProduct{
				factor: a.factor * b.factor,
				vars:   mergeVars(a.vars, b.vars),
			})
		}
	}
	return symVal(out)
}

func equalSym(x, y symVal) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i].factor != y[i].factor || x[i].key() != y[i].key() {
			return false
		}
	}
	return true
}

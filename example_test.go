package polyjam_test

import (
	"fmt"

	"github.com/polyjam-go/polyjam"
	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/monomial"
	"github.com/polyjam-go/polyjam/poly"
)

// This example parses a small two-unknown polynomial system over
// ℤ/101ℤ, including one named coefficient placeholder standing for a
// measured quantity, and prints the resulting polynomials.
func Example() {
	typ := poly.Type{Order: monomial.Grevlex, Arity: 2, CarrierKinds: []field.Kind{field.Zp}, Characteristic: 101}
	variables := map[string]int{"x": 1, "y": 2}
	coeffs := map[string]field.Coefficient{"a": field.NewCoefficientInt(7, field.Zp, 101)}

	f1, err := polyjam.Parse(variables, coeffs, typ, "x^2 + a*y + 1")
	if err != nil {
		fmt.Println(err)
		return
	}
	f2, err := polyjam.Parse(variables, coeffs, typ, "x*y + a")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("f1 = %v\n", f1)
	fmt.Printf("f2 = %v\n", f2)
	// Output:
	// f1 = 1*x_1^2+7*x_2+1
	// f2 = 1*x_1*x_2+7
}

package field_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/errs"
	"github.com/polyjam-go/polyjam/field"
)

func TestQArithmetic(t *testing.T) {
	tests := []struct {
		name string
		x, y field.Value
		op   func(x, y field.Value) (field.Value, error)
		want string
	}{
		{"half plus third", mustQ(t, 1, 2), mustQ(t, 1, 3), field.Add, "5/6"},
		{"half minus half", mustQ(t, 2, 4), mustQ(t, 1, 2), field.Sub, "0"},
		{"three quarters times four ninths", mustQ(t, 3, 4), mustQ(t, 4, 9), field.Mul, "1/3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.x, tt.y)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("got %v, want %s", got, tt.want)
			}
		})
	}
}

func mustQ(t *testing.T, num int64, den uint64) field.Value {
	t.Helper()
	v, err := field.NewQ(num, den)
	if err != nil {
		t.Fatalf("NewQ(%d,%d): %v", num, den, err)
	}
	return v
}

func TestQCanonical(t *testing.T) {
	v := mustQ(t, 6, 8)
	if v.String() != "3/4" {
		t.Fatalf("6/8 did not reduce: got %v", v)
	}
	neg := mustQ(t, -2, 4)
	if neg.String() != "-1/2" {
		t.Fatalf("sign did not land on numerator: got %v", neg)
	}
}

func TestQDivisionByZero(t *testing.T) {
	zero := field.Zero(field.Q, 0)
	one := field.One(field.Q, 0)
	if _, err := field.Div(one, zero); !errors.Is(err, errs.ErrArithmeticDomain) {
		t.Fatalf("want ErrArithmeticDomain, got %v", err)
	}
}

func TestZpArithmetic(t *testing.T) {
	const p = 7
	three := field.NewZp(3, p)
	five := field.NewZp(5, p)
	six := field.NewZp(6, p)

	sum, err := field.Add(three, five)
	if err != nil || sum.String() != "1" {
		t.Fatalf("3+5 mod 7: got %v, %v", sum, err)
	}

	inv, err := field.Inv(three)
	if err != nil || inv.String() != "5" {
		t.Fatalf("inverse(3) mod 7: got %v, %v", inv, err)
	}

	prod, err := field.Mul(six, six)
	if err != nil || prod.String() != "1" {
		t.Fatalf("6*6 mod 7: got %v, %v", prod, err)
	}
}

func TestZpInverseOfZero(t *testing.T) {
	zero := field.NewZp(0, 7)
	if _, err := field.Inv(zero); !errors.Is(err, errs.ErrArithmeticDomain) {
		t.Fatalf("want ErrArithmeticDomain, got %v", err)
	}
}

func TestZpCharacteristicMismatch(t *testing.T) {
	x := field.NewZp(1, 7)
	y := field.NewZp(1, 11)
	if _, err := field.Add(x, y); !errors.Is(err, errs.ErrTypeMismatch) {
		t.Fatalf("want ErrTypeMismatch, got %v", err)
	}
}

func TestKindMismatch(t *testing.T) {
	x := field.NewR(1)
	y := field.NewZp(1, 7)
	if _, err := field.Add(x, y); !errors.Is(err, errs.ErrTypeMismatch) {
		t.Fatalf("want ErrTypeMismatch, got %v", err)
	}
}

func TestSymExpansion(t *testing.T) {
	a := field.NewSym("a")
	b := field.NewSym("b")

	aPlusB, _ := field.Add(a, b)
	aMinusB, _ := field.Sub(a, b)
	prod, err := field.Mul(aPlusB, aMinusB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (a+b)(a-b) = a^2 - b^2.
	a2 := mustMul(t, a, a)
	b2 := mustMul(t, b, b)
	want, _ := field.Sub(a2, b2)
	ok, err := field.Equal(prod, want)
	if err != nil || !ok {
		t.Fatalf("(a+b)(a-b) != a^2-b^2: got %v, want %v", prod, want)
	}

	// (a+b)^2 = a^2 + 2ab + b^2.
	sq := mustMul(t, aPlusB, aPlusB)
	ab := mustMul(t, a, b)
	two := field.NewSymInt(2)
	twoAB := mustMul(t, two, ab)
	expanded, _ := field.Add(a2, twoAB)
	expanded, _ = field.Add(expanded, b2)
	ok, err = field.Equal(sq, expanded)
	if err != nil || !ok {
		t.Fatalf("(a+b)^2 != a^2+2ab+b^2: got %v, want %v", sq, expanded)
	}
}

func mustMul(t *testing.T, x, y field.Value) field.Value {
	t.Helper()
	v, err := field.Mul(x, y)
	if err != nil {
		t.Fatalf("mul: %v", err)
	}
	return v
}

func TestSymNormalization(t *testing.T) {
	a := field.NewSym("a")
	negA := field.Neg(a)
	sum, _ := field.Add(a, negA)
	if !sum.IsZero() {
		t.Fatalf("a + (-a) should be zero, got %v", sum)
	}

	aPlusA, _ := field.Add(a, a)
	twoA := mustMul(t, field.NewSymInt(2), a)
	ok, _ := field.Equal(aPlusA, twoA)
	if !ok {
		t.Fatalf("a+a should equal 2a, got %v vs %v", aPlusA, twoA)
	}
}

func TestSymUnsupported(t *testing.T) {
	a := field.NewSym("a")
	if _, err := field.Inv(a); !errors.Is(err, errs.ErrUnsupported) {
		t.Fatalf("want ErrUnsupported, got %v", err)
	}
	if _, err := field.Div(a, a); !errors.Is(err, errs.ErrUnsupported) {
		t.Fatalf("want ErrUnsupported, got %v", err)
	}
	if _, err := field.Cmp(a, a); !errors.Is(err, errs.ErrUnsupported) {
		t.Fatalf("want ErrUnsupported, got %v", err)
	}
}

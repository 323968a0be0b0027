package field

// A Kind tags which of the four supported fields a Value belongs to.
// Binary operations between values of different kinds are refused with
// errs.ErrTypeMismatch; ℤ/pℤ values additionally carry a characteristic
// that must agree between operands.
type Kind uint8

const (
	// R is the field of 64-bit floating-point reals, used only for
	// evaluation and for the emitted code's own arithmetic.
	R Kind = iota
	// Q is the field of arbitrary-precision rationals.
	Q
	// Zp is the prime field ℤ/pℤ.
	Zp
	// Sym is the free symbolic algebra of integer polynomials in named
	// indeterminates.
	Sym
)

// DefaultCharacteristic is the prime used for Zp values when none is
// given explicitly, matching the original generator's default.
const DefaultCharacteristic = 30097

func (k Kind) String() string {
	switch k {
	case R:
		return "R"
	case Q:
		return "Q"
	case Zp:
		return "Zp"
	case Sym:
		return "Sym"
	default:
		return "Kind(?)"
	}
}

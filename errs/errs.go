// Package errs enumerates the error taxonomy shared across polyjam's
// core packages (field, term, poly, polymat, cmatrix, gauss, template,
// oracle). Every sentinel below corresponds to one row of the error
// table in the design specification; call sites wrap a sentinel with
// github.com/pkg/errors so that context survives while errors.Is still
// matches the underlying kind.
package errs

import "github.com/pkg/errors"

// ErrTypeMismatch is raised when combining elements of different field
// kinds, carrier counts, orderings, or arities.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrShapeMismatch is raised when polynomial-matrix operands have
// incompatible dimensions.
var ErrShapeMismatch = errors.New("shape mismatch")

// ErrArithmeticDomain is raised on division or inversion of zero, or
// on a monomial division that would produce a negative exponent.
var ErrArithmeticDomain = errors.New("arithmetic domain error")

// ErrUnsupported is raised on inversion or division of a symbolic
// value, or strict comparison of a prime-field or symbolic value.
var ErrUnsupported = errors.New("unsupported operation")

// ErrBounds is raised when a dominant-carrier index or matrix index
// falls outside its valid range.
var ErrBounds = errors.New("index out of bounds")

// ErrMalformedInput is raised when the basis oracle reports a nonzero
// ideal dimension, or its reply cannot be parsed.
var ErrMalformedInput = errors.New("malformed input")

// ErrNotConverged is raised when automatic degree search exceeds its
// degree cap without finding a valid template.
var ErrNotConverged = errors.New("search did not converge")

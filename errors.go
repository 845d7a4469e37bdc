package goalgebra

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the kernel wraps exactly one of them,
// so callers can test with errors.Is.
var (
	ErrNotDivisible         = errors.New("not divisible")
	ErrNotIntegrable        = errors.New("not integrable")
	ErrNotAnInteger         = errors.New("not an integer")
	ErrNotARational         = errors.New("not a rational")
	ErrNotAVariable         = errors.New("not a variable")
	ErrNotAProduct          = errors.New("not a product")
	ErrArithmeticDegenerate = errors.New("degenerate arithmetic")
)

// Error records the operation and operands that produced a failure.
type Error struct {
	Kind     error
	Op       string
	Operands []Value
}

func newError(kind error, op string, operands ...Value) *Error {
	return &Error{Kind: kind, Op: op, Operands: operands}
}

func (e *Error) Error() string {
	if len(e.Operands) == 0 {
		return fmt.Sprintf("goalgebra: %s: %v", e.Op, e.Kind)
	}
	parts := make([]string, len(e.Operands))
	for i, o := range e.Operands {
		parts[i] = o.String()
	}
	return fmt.Sprintf("goalgebra: %s(%s): %v", e.Op, strings.Join(parts, ", "), e.Kind)
}

func (e *Error) Unwrap() error { return e.Kind }

// ErrorKind returns a stable snake_case name for the kind wrapped by err, or
// the empty string when err is not a kernel error.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotDivisible):
		return "not_divisible"
	case errors.Is(err, ErrNotIntegrable):
		return "not_integrable"
	case errors.Is(err, ErrNotAnInteger):
		return "not_an_integer"
	case errors.Is(err, ErrNotARational):
		return "not_a_rational"
	case errors.Is(err, ErrNotAVariable):
		return "not_a_variable"
	case errors.Is(err, ErrNotAProduct):
		return "not_a_product"
	case errors.Is(err, ErrArithmeticDegenerate):
		return "arithmetic_degenerate"
	}
	return ""
}

// Package goalgebra provides the arithmetic kernel of a symbolic algebra engine.
//
// Design goals:
//   - Exact arithmetic on arbitrary precision integers and reduced rationals
//   - Canonical sparse multivariate polynomials with integer coefficients
//   - A closed numeric tower: Integer < Rational < Expression < Numeric
//   - Immutable values, safe to share between goroutines
//   - Text, LaTeX, Go source, MathML and JSON renderings of every value
package goalgebra

import (
	"fmt"

	"go.uber.org/zap"
)

// ============================================================
// Core Interface
// ============================================================

// Kind is the rank of a value inside the numeric tower.
type Kind int

const (
	KindInteger Kind = iota
	KindRational
	KindExpression
	KindNumeric
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindRational:
		return "rational"
	case KindExpression:
		return "expression"
	case KindNumeric:
		return "numeric"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is an element of the numeric tower. The set of implementations is
// closed: *Integer, *Rational, *Expression and *Numeric.
//
// Binary operations accept any Value. When the operands differ in kind the
// lower-ranked one is promoted first, so a *Rational plus an *Integer is a
// *Rational and an *Expression times a *Rational is an *Expression.
type Value interface {
	Kind() Kind

	Add(that Value) Value
	Subtract(that Value) Value
	Multiply(that Value) Value
	// Divide is exact division. It fails with ErrNotDivisible when a
	// remainder is left and ErrArithmeticDegenerate on a zero divisor.
	Divide(that Value) (Value, error)
	DivideAndRemainder(that Value) (DivisionResult, error)
	Gcd(that Value) Value
	Negate() Value

	Signum() int
	IsZero() bool
	IsOne() bool
	// Compare is a total order within a kind; mixed kinds are promoted.
	Compare(that Value) int

	// IntegerGcd is the gcd of the integer coefficients (the content).
	IntegerGcd() *Integer
	IntegerValue() (*Integer, error)
	VariableValue() (Variable, error)
	SumValue() []Value
	ProductValue() ([]Value, error)
	Variables() []Variable
	IsPolynomial(v Variable) bool
	IsConstant(v Variable) bool

	Derivative(v Variable) Value
	AntiDerivative(v Variable) (Value, error)
	Substitute(v Variable, value Value) (Value, error)
	Numeric() Value
	Expression() *Expression

	String() string
	LaTeX() string
	Code() string

	appendMarkup(parent *Markup, exponent int)
	toJSON() map[string]interface{}
}

// DivisionResult is the quotient and remainder of DivideAndRemainder.
type DivisionResult struct {
	Quotient  Value
	Remainder Value
}

// ============================================================
// Promotion
// ============================================================

// promote lifts the lower-ranked operand to the kind of the other one.
// Both returned values always have the same kind.
//
// Lifting an Expression to Numeric fails when the expression still holds
// symbols without a numeric value; the Numeric operand is then demoted into
// the Expression as a numeric variable instead.
func promote(a, b Value) (Value, Value) {
	switch {
	case a.Kind() < b.Kind():
		if x, ok := lift(a, b.Kind()); ok {
			return x, b
		}
		return a, b.Expression()
	case a.Kind() > b.Kind():
		if y, ok := lift(b, a.Kind()); ok {
			return a, y
		}
		return a.Expression(), b
	}
	return a, b
}

func lift(v Value, to Kind) (Value, bool) {
	if v.Kind() >= to {
		return v, true
	}
	switch x := v.(type) {
	case *Integer:
		switch to {
		case KindRational:
			return x.Rational(), true
		case KindExpression:
			return x.Expression(), true
		case KindNumeric:
			return x.Numeric(), true
		}
	case *Rational:
		switch to {
		case KindExpression:
			return x.Expression(), true
		case KindNumeric:
			return x.Numeric(), true
		}
	case *Expression:
		if n, ok := x.Numeric().(*Numeric); ok {
			return n, true
		}
		zap.L().Debug("expression has no numeric value, demoting numeric operand",
			zap.Stringer("expression", x))
		return nil, false
	}
	panic(fmt.Sprintf("goalgebra: no promotion from %s to %s", v.Kind(), to))
}

// Promote lifts v to kind k. A value already at or above k is returned
// unchanged. The second result is false when an Expression has no numeric
// value.
func Promote(v Value, k Kind) (Value, bool) {
	return lift(v, k)
}

// Simplest demotes v to the lowest kind that represents it exactly: an
// Expression of degree zero becomes an Integer, an Expression holding a
// single rational factor becomes a Rational and a Rational with unit
// denominator becomes an Integer.
func Simplest(v Value) Value {
	switch x := v.(type) {
	case *Rational:
		if i, err := x.IntegerValue(); err == nil {
			return i
		}
	case *Expression:
		if i, err := x.IntegerValue(); err == nil {
			return i
		}
		if r, ok := x.rationalValue(); ok {
			return Simplest(r)
		}
	}
	return v
}

// Equal reports whether a and b denote the same value after demotion.
func Equal(a, b Value) bool {
	return Simplest(a).Compare(Simplest(b)) == 0
}

// ============================================================
// Derived operations
// ============================================================

// IsMultiple reports whether b divides a exactly.
func IsMultiple(a, b Value) (bool, error) {
	res, err := a.DivideAndRemainder(b)
	if err != nil {
		return false, err
	}
	return res.Remainder.IsZero(), nil
}

// Remainder returns the remainder of a divided by b.
func Remainder(a, b Value) (Value, error) {
	res, err := a.DivideAndRemainder(b)
	if err != nil {
		return nil, err
	}
	return res.Remainder, nil
}

// Inverse returns 1/v. Integers invert to rationals; expressions invert only
// when they are units.
func Inverse(v Value) (Value, error) {
	switch x := v.(type) {
	case *Integer:
		r, err := x.Rational().inverse()
		if err != nil {
			return nil, err
		}
		return Simplest(r), nil
	case *Rational:
		r, err := x.inverse()
		if err != nil {
			return nil, err
		}
		return Simplest(r), nil
	case *Numeric:
		return x.inverse()
	}
	if v.IsZero() {
		return nil, newError(ErrArithmeticDegenerate, "inverse", v)
	}
	return One().Divide(v)
}

// Lcm returns a/gcd(a, b)*b.
func Lcm(a, b Value) (Value, error) {
	g := a.Gcd(b)
	if g.IsZero() {
		return nil, newError(ErrArithmeticDegenerate, "lcm", a, b)
	}
	q, err := a.Divide(g)
	if err != nil {
		return nil, err
	}
	return q.Multiply(b), nil
}

// Pow raises v to a non-negative power. A negative exponent panics.
func Pow(v Value, n int) Value {
	if n < 0 {
		panic(fmt.Sprintf("goalgebra: negative exponent %d", n))
	}
	switch x := v.(type) {
	case *Integer:
		return x.pow(n)
	case *Rational:
		return x.pow(n)
	}
	var result Value = One()
	base := v
	for n > 0 {
		if n&1 == 1 {
			result = result.Multiply(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Multiply(base)
		}
	}
	return result
}

// Abs returns v with a non-negative sign.
func Abs(v Value) Value {
	if v.Signum() < 0 {
		return v.Negate()
	}
	return v
}

// GcdAndNormalize splits v into its signed content and the primitive part,
// so that content times primitive equals v and the primitive part has a
// positive leading coefficient.
func GcdAndNormalize(v Value) (*Integer, Value) {
	g := v.IntegerGcd()
	if g.IsZero() {
		return g, v
	}
	if g.Signum() != v.Signum() {
		g = g.neg()
	}
	q, err := v.Divide(g)
	if err != nil {
		zap.L().Debug("content does not divide value", zap.Stringer("value", v), zap.Error(err))
		return One(), v
	}
	return g, q
}

// Normalize returns the primitive part of v.
func Normalize(v Value) Value {
	_, p := GcdAndNormalize(v)
	return p
}

// RationalValue demotes v to a Rational.
func RationalValue(v Value) (*Rational, error) {
	switch x := Simplest(v).(type) {
	case *Integer:
		return x.Rational(), nil
	case *Rational:
		return x, nil
	}
	return nil, newError(ErrNotARational, "rationalValue", v)
}

// Sum adds all values; the empty sum is zero.
func Sum(values ...Value) Value {
	var result Value = Zero()
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Product multiplies all values; the empty product is one.
func Product(values ...Value) Value {
	var result Value = One()
	for _, v := range values {
		result = result.Multiply(v)
	}
	return result
}

// MarkupOf renders v as a presentation tree rooted at an mrow element.
func MarkupOf(v Value) *Markup {
	root := element("mrow")
	v.appendMarkup(root, 1)
	return root
}

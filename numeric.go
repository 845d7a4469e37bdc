package goalgebra

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// ============================================================
// Numeric — binary floating point at quadruple precision
// ============================================================

// Precision matches the IEEE 754 binary128 significand.
const Precision = 113

func newFloat() *big.Float {
	return new(big.Float).SetPrec(Precision)
}

type Numeric struct{ val *big.Float }

// NewNumeric converts f. NaN and infinities panic.
func NewNumeric(f float64) *Numeric {
	if math.IsInf(f, 0) {
		panic(fmt.Sprintf("goalgebra: numeric %v is not finite", f))
	}
	return &Numeric{val: newFloat().SetFloat64(f)}
}

// NewNumericBig copies f at the kernel precision. Infinities panic.
func NewNumericBig(f *big.Float) *Numeric {
	if f.IsInf() {
		panic(fmt.Sprintf("goalgebra: numeric %s is not finite", f.String()))
	}
	return &Numeric{val: newFloat().Set(f)}
}

// ParseNumeric parses a finite decimal floating point literal.
func ParseNumeric(s string) (*Numeric, error) {
	f, ok := newFloat().SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid numeric: %q", s)
	}
	if f.IsInf() {
		return nil, fmt.Errorf("invalid numeric: %q is not finite", s)
	}
	return &Numeric{val: f}, nil
}

func (n *Numeric) Kind() Kind         { return KindNumeric }
func (n *Numeric) Big() *big.Float    { return newFloat().Set(n.val) }
func (n *Numeric) Signum() int        { return n.val.Sign() }
func (n *Numeric) IsZero() bool       { return n.val.Sign() == 0 }
func (n *Numeric) IsOne() bool        { return n.val.Cmp(big.NewFloat(1)) == 0 }
func (n *Numeric) String() string     { return n.val.Text('g', 16) }
func (n *Numeric) LaTeX() string      { return n.String() }
func (n *Numeric) neg() *Numeric      { return &Numeric{val: newFloat().Neg(n.val)} }
func (n *Numeric) cmp(m *Numeric) int { return n.val.Cmp(m.val) }

// Float64 returns the nearest float64.
func (n *Numeric) Float64() float64 {
	f, _ := n.val.Float64()
	return f
}

func (n *Numeric) Expression() *Expression {
	if n.IsZero() {
		return emptyExpression
	}
	return LiteralOf(&NumericVariable{value: n}, 1).Expression()
}

func (n *Numeric) Code() string {
	s := n.val.Text('g', 17)
	if !strings.ContainsAny(s, ".eI") {
		s += ".0"
	}
	return s
}

func (n *Numeric) quo(m *Numeric) (*Numeric, error) {
	if m.IsZero() {
		return nil, newError(ErrArithmeticDegenerate, "divide", n, m)
	}
	return &Numeric{val: newFloat().Quo(n.val, m.val)}, nil
}

func (n *Numeric) inverse() (Value, error) {
	q, err := NewNumeric(1).quo(n)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// apply evaluates a float64 function, reporting false for NaN or infinite
// results.
func (n *Numeric) apply(fn func(float64) float64) (*Numeric, bool) {
	r := fn(n.Float64())
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, false
	}
	return NewNumeric(r), true
}

// ---- Value ----

func (n *Numeric) Add(that Value) Value {
	if m, ok := that.(*Numeric); ok {
		return &Numeric{val: newFloat().Add(n.val, m.val)}
	}
	a, b := promote(n, that)
	return a.Add(b)
}

func (n *Numeric) Subtract(that Value) Value {
	if m, ok := that.(*Numeric); ok {
		return &Numeric{val: newFloat().Sub(n.val, m.val)}
	}
	a, b := promote(n, that)
	return a.Subtract(b)
}

func (n *Numeric) Multiply(that Value) Value {
	if m, ok := that.(*Numeric); ok {
		return &Numeric{val: newFloat().Mul(n.val, m.val)}
	}
	a, b := promote(n, that)
	return a.Multiply(b)
}

func (n *Numeric) Divide(that Value) (Value, error) {
	if m, ok := that.(*Numeric); ok {
		q, err := n.quo(m)
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	a, b := promote(n, that)
	return a.Divide(b)
}

func (n *Numeric) DivideAndRemainder(that Value) (DivisionResult, error) {
	if m, ok := that.(*Numeric); ok {
		q, err := n.quo(m)
		if err != nil {
			return DivisionResult{}, err
		}
		return DivisionResult{Quotient: q, Remainder: &Numeric{val: newFloat()}}, nil
	}
	a, b := promote(n, that)
	return a.DivideAndRemainder(b)
}

// Gcd of two floats is one unless both are zero.
func (n *Numeric) Gcd(that Value) Value {
	if m, ok := that.(*Numeric); ok {
		if n.IsZero() && m.IsZero() {
			return &Numeric{val: newFloat()}
		}
		return NewNumeric(1)
	}
	a, b := promote(n, that)
	return a.Gcd(b)
}

func (n *Numeric) Negate() Value { return n.neg() }

func (n *Numeric) Compare(that Value) int {
	if m, ok := that.(*Numeric); ok {
		return n.cmp(m)
	}
	a, b := promote(n, that)
	return a.Compare(b)
}

func (n *Numeric) IntegerGcd() *Integer {
	if n.IsZero() {
		return zero
	}
	return one
}

func (n *Numeric) IntegerValue() (*Integer, error) {
	if !n.val.IsInt() {
		return nil, newError(ErrNotAnInteger, "integerValue", n)
	}
	i, _ := n.val.Int(nil)
	return wrap(i), nil
}

func (n *Numeric) VariableValue() (Variable, error) {
	return &NumericVariable{value: n}, nil
}

func (n *Numeric) SumValue() []Value {
	if n.IsZero() {
		return nil
	}
	return []Value{n}
}

func (n *Numeric) ProductValue() ([]Value, error) {
	if n.IsOne() {
		return nil, nil
	}
	return []Value{n}, nil
}

func (n *Numeric) Variables() []Variable      { return nil }
func (n *Numeric) IsPolynomial(Variable) bool { return true }
func (n *Numeric) IsConstant(Variable) bool   { return true }
func (n *Numeric) Derivative(Variable) Value  { return &Numeric{val: newFloat()} }
func (n *Numeric) Numeric() Value             { return n }

func (n *Numeric) AntiDerivative(v Variable) (Value, error) {
	return n.Multiply(v.Value()), nil
}

func (n *Numeric) Substitute(Variable, Value) (Value, error) { return n, nil }

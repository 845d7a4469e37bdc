package goalgebra

import (
	"fmt"
	"math/big"
)

// ============================================================
// Integer — arbitrary precision integer
// ============================================================

type Integer struct{ val *big.Int }

var (
	zero     = &Integer{val: new(big.Int)}
	one      = &Integer{val: big.NewInt(1)}
	minusOne = &Integer{val: big.NewInt(-1)}
)

// Zero returns the integer 0.
func Zero() *Integer { return zero }

// One returns the integer 1.
func One() *Integer { return one }

// NewInteger returns n as an Integer.
func NewInteger(n int64) *Integer {
	switch n {
	case 0:
		return zero
	case 1:
		return one
	}
	return &Integer{val: big.NewInt(n)}
}

// NewIntegerBig copies n into an Integer.
func NewIntegerBig(n *big.Int) *Integer { return &Integer{val: new(big.Int).Set(n)} }

// ParseInteger parses a base 10 integer.
func ParseInteger(s string) (*Integer, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer: %q", s)
	}
	return &Integer{val: n}, nil
}

// wrap takes ownership of n.
func wrap(n *big.Int) *Integer { return &Integer{val: n} }

func (i *Integer) Kind() Kind         { return KindInteger }
func (i *Integer) Big() *big.Int      { return new(big.Int).Set(i.val) }
func (i *Integer) Signum() int        { return i.val.Sign() }
func (i *Integer) IsZero() bool       { return i.val.Sign() == 0 }
func (i *Integer) IsOne() bool        { return i.val.IsInt64() && i.val.Int64() == 1 }
func (i *Integer) String() string     { return i.val.String() }
func (i *Integer) LaTeX() string      { return i.val.String() }
func (i *Integer) cmp(j *Integer) int { return i.val.Cmp(j.val) }

// Int returns the value as an int and whether it fits.
func (i *Integer) Int() (int, bool) {
	if !i.val.IsInt64() {
		return 0, false
	}
	n := i.val.Int64()
	return int(n), int64(int(n)) == n
}

func (i *Integer) Code() string {
	if i.val.IsInt64() {
		return i.val.String()
	}
	return fmt.Sprintf("%s.0", i.val.String())
}

func (i *Integer) add(j *Integer) *Integer { return wrap(new(big.Int).Add(i.val, j.val)) }
func (i *Integer) sub(j *Integer) *Integer { return wrap(new(big.Int).Sub(i.val, j.val)) }
func (i *Integer) mul(j *Integer) *Integer { return wrap(new(big.Int).Mul(i.val, j.val)) }
func (i *Integer) neg() *Integer           { return wrap(new(big.Int).Neg(i.val)) }
func (i *Integer) abs() *Integer {
	if i.val.Sign() >= 0 {
		return i
	}
	return i.neg()
}

// gcd is always non-negative; gcd(0, 0) is 0.
func (i *Integer) gcd(j *Integer) *Integer {
	return wrap(new(big.Int).GCD(nil, nil, new(big.Int).Abs(i.val), new(big.Int).Abs(j.val)))
}

// quoRem truncates toward zero, so the remainder takes the dividend's sign.
func (i *Integer) quoRem(j *Integer) (*Integer, *Integer, error) {
	if j.IsZero() {
		return nil, nil, newError(ErrArithmeticDegenerate, "divideAndRemainder", i, j)
	}
	q, r := new(big.Int).QuoRem(i.val, j.val, new(big.Int))
	return wrap(q), wrap(r), nil
}

func (i *Integer) divide(j *Integer) (*Integer, error) {
	q, r, err := i.quoRem(j)
	if err != nil {
		return nil, err
	}
	if !r.IsZero() {
		return nil, newError(ErrNotDivisible, "divide", i, j)
	}
	return q, nil
}

func (i *Integer) pow(n int) *Integer {
	return wrap(new(big.Int).Exp(i.val, big.NewInt(int64(n)), nil))
}

// ---- Value ----

func (i *Integer) Add(that Value) Value {
	if t, ok := that.(*Integer); ok {
		return i.add(t)
	}
	a, b := promote(i, that)
	return a.Add(b)
}

func (i *Integer) Subtract(that Value) Value {
	if t, ok := that.(*Integer); ok {
		return i.sub(t)
	}
	a, b := promote(i, that)
	return a.Subtract(b)
}

func (i *Integer) Multiply(that Value) Value {
	if t, ok := that.(*Integer); ok {
		return i.mul(t)
	}
	a, b := promote(i, that)
	return a.Multiply(b)
}

func (i *Integer) Divide(that Value) (Value, error) {
	if t, ok := that.(*Integer); ok {
		q, err := i.divide(t)
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	a, b := promote(i, that)
	return a.Divide(b)
}

func (i *Integer) DivideAndRemainder(that Value) (DivisionResult, error) {
	if t, ok := that.(*Integer); ok {
		q, r, err := i.quoRem(t)
		if err != nil {
			return DivisionResult{}, err
		}
		return DivisionResult{Quotient: q, Remainder: r}, nil
	}
	a, b := promote(i, that)
	return a.DivideAndRemainder(b)
}

func (i *Integer) Gcd(that Value) Value {
	if t, ok := that.(*Integer); ok {
		return i.gcd(t)
	}
	a, b := promote(i, that)
	return a.Gcd(b)
}

func (i *Integer) Negate() Value { return i.neg() }

func (i *Integer) Compare(that Value) int {
	if t, ok := that.(*Integer); ok {
		return i.cmp(t)
	}
	a, b := promote(i, that)
	return a.Compare(b)
}

func (i *Integer) IntegerGcd() *Integer            { return i.abs() }
func (i *Integer) IntegerValue() (*Integer, error) { return i, nil }

func (i *Integer) VariableValue() (Variable, error) {
	return nil, newError(ErrNotAVariable, "variableValue", i)
}

func (i *Integer) SumValue() []Value {
	if i.IsZero() {
		return nil
	}
	return []Value{i}
}

func (i *Integer) ProductValue() ([]Value, error) {
	if i.IsOne() {
		return nil, nil
	}
	return []Value{i}, nil
}

func (i *Integer) Variables() []Variable      { return nil }
func (i *Integer) IsPolynomial(Variable) bool { return true }
func (i *Integer) IsConstant(Variable) bool   { return true }
func (i *Integer) Derivative(Variable) Value  { return zero }
func (i *Integer) Numeric() Value             { return &Numeric{val: newFloat().SetInt(i.val)} }
func (i *Integer) Rational() *Rational        { return &Rational{num: i.val, den: one.val} }

func (i *Integer) AntiDerivative(v Variable) (Value, error) {
	return i.Multiply(v.Value()), nil
}

func (i *Integer) Substitute(Variable, Value) (Value, error) { return i, nil }

func (i *Integer) Expression() *Expression {
	if i.IsZero() {
		return emptyExpression
	}
	return &Expression{summands: []Summand{{coefficient: i, literal: emptyLiteral}}}
}

// ---- number theory ----

// Mod returns the Euclidean modulus, always in [0, |m|).
func (i *Integer) Mod(m *Integer) (*Integer, error) {
	if m.IsZero() {
		return nil, newError(ErrArithmeticDegenerate, "mod", i, m)
	}
	return wrap(new(big.Int).Mod(i.val, m.val)), nil
}

// ModPow returns i^e mod m for non-negative e.
func (i *Integer) ModPow(e, m *Integer) (*Integer, error) {
	if m.IsZero() {
		return nil, newError(ErrArithmeticDegenerate, "modPow", i, e, m)
	}
	if e.Signum() < 0 {
		inv, err := i.ModInverse(m)
		if err != nil {
			return nil, err
		}
		return inv.ModPow(e.neg(), m)
	}
	return wrap(new(big.Int).Exp(i.val, e.val, new(big.Int).Abs(m.val))), nil
}

// ModInverse returns x with i*x = 1 mod m.
func (i *Integer) ModInverse(m *Integer) (*Integer, error) {
	if m.IsZero() {
		return nil, newError(ErrArithmeticDegenerate, "modInverse", i, m)
	}
	r := new(big.Int).ModInverse(i.val, new(big.Int).Abs(m.val))
	if r == nil {
		return nil, newError(ErrNotDivisible, "modInverse", i, m)
	}
	return wrap(r), nil
}

// Sqrt returns the floor of the square root.
func (i *Integer) Sqrt() (*Integer, error) {
	if i.Signum() < 0 {
		return nil, newError(ErrArithmeticDegenerate, "sqrt", i)
	}
	return wrap(new(big.Int).Sqrt(i.val)), nil
}

// NthRoot returns the floor of the n-th root for non-negative i.
func (i *Integer) NthRoot(n int) (*Integer, error) {
	if n <= 0 || i.Signum() < 0 {
		return nil, newError(ErrArithmeticDegenerate, "nthRoot", i, NewInteger(int64(n)))
	}
	if n == 1 || i.IsZero() {
		return i, nil
	}
	// Newton iteration from an upper bound of 2^ceil(bits/n).
	x := new(big.Int).Lsh(big.NewInt(1), uint(i.val.BitLen()+n-1)/uint(n))
	nn := big.NewInt(int64(n))
	n1 := big.NewInt(int64(n - 1))
	for {
		// y = ((n-1)*x + i/x^(n-1)) / n
		xp := new(big.Int).Exp(x, n1, nil)
		y := new(big.Int).Mul(n1, x)
		y.Add(y, new(big.Int).Quo(i.val, xp))
		y.Quo(y, nn)
		if y.Cmp(x) >= 0 {
			return wrap(x), nil
		}
		x = y
	}
}

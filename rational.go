package goalgebra

import (
	"fmt"
	"math/big"
)

// ============================================================
// Rational — reduced fraction with positive denominator
// ============================================================

type Rational struct{ num, den *big.Int }

// NewRational returns n/d in lowest terms.
func NewRational(n, d int64) (*Rational, error) {
	return NewRationalBig(big.NewInt(n), big.NewInt(d))
}

// NewRationalBig returns n/d in lowest terms. A zero denominator fails with
// ErrArithmeticDegenerate.
func NewRationalBig(n, d *big.Int) (*Rational, error) {
	if d.Sign() == 0 {
		return nil, newError(ErrArithmeticDegenerate, "rational", NewIntegerBig(n), zero)
	}
	return reduce(new(big.Int).Set(n), new(big.Int).Set(d)), nil
}

// reduce takes ownership of n and d.
func reduce(n, d *big.Int) *Rational {
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), new(big.Int).Abs(d))
	if g.Sign() == 0 {
		return &Rational{num: n, den: d}
	}
	if d.Sign() < 0 {
		g.Neg(g)
	}
	return &Rational{num: n.Quo(n, g), den: d.Quo(d, g)}
}

func (r *Rational) Kind() Kind            { return KindRational }
func (r *Rational) Numerator() *Integer   { return wrap(r.num) }
func (r *Rational) Denominator() *Integer { return wrap(r.den) }
func (r *Rational) Signum() int           { return r.num.Sign() }
func (r *Rational) IsZero() bool          { return r.num.Sign() == 0 }
func (r *Rational) IsOne() bool           { return r.num.Cmp(r.den) == 0 }
func (r *Rational) isInteger() bool       { return r.den.IsInt64() && r.den.Int64() == 1 }

func (r *Rational) add(s *Rational) *Rational {
	g := new(big.Int).GCD(nil, nil, r.den, s.den)
	t1 := new(big.Int).Quo(r.den, g)
	t2 := new(big.Int).Quo(s.den, g)
	n := new(big.Int).Mul(r.num, t2)
	n.Add(n, new(big.Int).Mul(s.num, t1))
	return reduce(n, new(big.Int).Mul(r.den, t2))
}

func (r *Rational) neg() *Rational { return &Rational{num: new(big.Int).Neg(r.num), den: r.den} }

// mul cancels crosswise before multiplying so the result is already reduced.
func (r *Rational) mul(s *Rational) *Rational {
	if r.IsZero() || s.IsZero() {
		return zero.Rational()
	}
	g1 := new(big.Int).GCD(nil, nil, new(big.Int).Abs(r.num), s.den)
	g2 := new(big.Int).GCD(nil, nil, r.den, new(big.Int).Abs(s.num))
	n1, d2 := new(big.Int).Quo(r.num, g1), new(big.Int).Quo(s.den, g1)
	d1, n2 := new(big.Int).Quo(r.den, g2), new(big.Int).Quo(s.num, g2)
	return &Rational{num: n1.Mul(n1, n2), den: d2.Mul(d1, d2)}
}

func (r *Rational) inverse() (*Rational, error) {
	if r.IsZero() {
		return nil, newError(ErrArithmeticDegenerate, "inverse", r)
	}
	if r.num.Sign() < 0 {
		return &Rational{num: new(big.Int).Neg(r.den), den: new(big.Int).Neg(r.num)}, nil
	}
	return &Rational{num: r.den, den: r.num}, nil
}

func (r *Rational) divide(s *Rational) (*Rational, error) {
	inv, err := s.inverse()
	if err != nil {
		return nil, newError(ErrArithmeticDegenerate, "divide", r, s)
	}
	return r.mul(inv), nil
}

func (r *Rational) cmp(s *Rational) int {
	return new(big.Int).Mul(r.num, s.den).Cmp(new(big.Int).Mul(s.num, r.den))
}

func (r *Rational) pow(n int) *Rational {
	e := big.NewInt(int64(n))
	return &Rational{num: new(big.Int).Exp(r.num, e, nil), den: new(big.Int).Exp(r.den, e, nil)}
}

// ---- Value ----

func (r *Rational) Add(that Value) Value {
	if s, ok := that.(*Rational); ok {
		return r.add(s)
	}
	a, b := promote(r, that)
	return a.Add(b)
}

func (r *Rational) Subtract(that Value) Value {
	if s, ok := that.(*Rational); ok {
		return r.add(s.neg())
	}
	a, b := promote(r, that)
	return a.Subtract(b)
}

func (r *Rational) Multiply(that Value) Value {
	if s, ok := that.(*Rational); ok {
		return r.mul(s)
	}
	a, b := promote(r, that)
	return a.Multiply(b)
}

func (r *Rational) Divide(that Value) (Value, error) {
	if s, ok := that.(*Rational); ok {
		q, err := r.divide(s)
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	a, b := promote(r, that)
	return a.Divide(b)
}

// DivideAndRemainder never leaves a remainder: rationals form a field.
func (r *Rational) DivideAndRemainder(that Value) (DivisionResult, error) {
	if s, ok := that.(*Rational); ok {
		q, err := r.divide(s)
		if err != nil {
			return DivisionResult{}, err
		}
		return DivisionResult{Quotient: q, Remainder: zero.Rational()}, nil
	}
	a, b := promote(r, that)
	return a.DivideAndRemainder(b)
}

// Gcd is gcd(n1, n2)/lcm(d1, d2).
func (r *Rational) Gcd(that Value) Value {
	if s, ok := that.(*Rational); ok {
		n := new(big.Int).GCD(nil, nil, new(big.Int).Abs(r.num), new(big.Int).Abs(s.num))
		g := new(big.Int).GCD(nil, nil, r.den, s.den)
		d := new(big.Int).Mul(new(big.Int).Quo(r.den, g), s.den)
		return reduce(n, d)
	}
	a, b := promote(r, that)
	return a.Gcd(b)
}

func (r *Rational) Negate() Value { return r.neg() }

// Compare orders rationals by value.
func (r *Rational) Compare(that Value) int {
	if s, ok := that.(*Rational); ok {
		return r.cmp(s)
	}
	a, b := promote(r, that)
	return a.Compare(b)
}

func (r *Rational) IntegerGcd() *Integer { return wrap(new(big.Int).Abs(r.num)) }

func (r *Rational) IntegerValue() (*Integer, error) {
	if !r.isInteger() {
		return nil, newError(ErrNotAnInteger, "integerValue", r)
	}
	return wrap(r.num), nil
}

// VariableValue views r as a fraction variable: 1/d becomes an inverse,
// anything else a general fraction.
func (r *Rational) VariableValue() (Variable, error) {
	if r.isInteger() {
		return nil, newError(ErrNotAVariable, "variableValue", r)
	}
	if r.num.IsInt64() && r.num.Int64() == 1 {
		return NewInverse(wrap(r.den)), nil
	}
	return NewFraction(wrap(r.num), wrap(r.den)), nil
}

func (r *Rational) SumValue() []Value {
	if r.IsZero() {
		return nil
	}
	return []Value{r}
}

func (r *Rational) ProductValue() ([]Value, error) {
	if r.IsOne() {
		return nil, nil
	}
	return []Value{r}, nil
}

func (r *Rational) Variables() []Variable      { return nil }
func (r *Rational) IsPolynomial(Variable) bool { return true }
func (r *Rational) IsConstant(Variable) bool   { return true }
func (r *Rational) Derivative(Variable) Value  { return zero }

func (r *Rational) AntiDerivative(v Variable) (Value, error) {
	return r.Multiply(v.Value()), nil
}

func (r *Rational) Substitute(Variable, Value) (Value, error) { return r, nil }

func (r *Rational) Numeric() Value {
	return &Numeric{val: newFloat().Quo(newFloat().SetInt(r.num), newFloat().SetInt(r.den))}
}

// Expression lifts n/d to the single term n*(1/d).
func (r *Rational) Expression() *Expression {
	if r.isInteger() {
		return wrap(r.num).Expression()
	}
	lit := LiteralOf(NewInverse(wrap(r.den)), 1)
	return &Expression{summands: []Summand{{coefficient: wrap(r.num), literal: lit}}}
}

func (r *Rational) String() string {
	if r.isInteger() {
		return r.num.String()
	}
	return r.num.String() + "/" + r.den.String()
}

func (r *Rational) LaTeX() string {
	if r.isInteger() {
		return r.num.String()
	}
	if r.num.Sign() < 0 {
		return fmt.Sprintf("-\\frac{%s}{%s}", new(big.Int).Neg(r.num).String(), r.den.String())
	}
	return fmt.Sprintf("\\frac{%s}{%s}", r.num.String(), r.den.String())
}

func (r *Rational) Code() string {
	if r.isInteger() {
		return wrap(r.num).Code()
	}
	return fmt.Sprintf("(%s.0 / %s.0)", r.num.String(), r.den.String())
}

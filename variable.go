package goalgebra

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"strings"

	"go.uber.org/zap"
)

// ============================================================
// Variable — the atoms of a Literal
// ============================================================

// Variable is an indivisible factor of a term. Variables are ordered first
// by kind and then by their own content; that order fixes the layout of
// every Literal.
type Variable interface {
	Name() string
	Compare(that Variable) int
	IsIdentity(that Variable) bool
	// IsConstant reports whether the variable does not depend on v.
	IsConstant(v Variable) bool
	Derivative(v Variable) Value
	AntiDerivative(v Variable) (Value, error)
	Substitute(v Variable, value Value) (Value, error)
	// Value is the variable as a single-term expression.
	Value() Value
	Numeric() Value

	String() string
	LaTeX() string
	Code() string

	appendMarkup(parent *Markup, exponent int)
	toJSON() map[string]interface{}
	order() int
}

const (
	orderNumeric  = 2
	orderFraction = 3
	orderConstant = 5
	orderFunction = 9
)

func variableValue(v Variable) *Expression { return LiteralOf(v, 1).Expression().reduceRationals() }

// ============================================================
// Constant — named symbol
// ============================================================

// Constant is a named symbol. Pi and E carry a numeric value; any other
// name is an indeterminate.
type Constant struct {
	name  string
	value *big.Float
}

var (
	Pi = &Constant{name: "pi", value: mustFloat("3.141592653589793238462643383279502884")}
	E  = &Constant{name: "e", value: mustFloat("2.718281828459045235360287471352662498")}
)

func mustFloat(s string) *big.Float {
	f, ok := newFloat().SetString(s)
	if !ok {
		panic("goalgebra: bad float literal " + s)
	}
	return f
}

// NewSymbol returns the indeterminate called name.
func NewSymbol(name string) *Constant { return &Constant{name: name} }

// ConstantNamed returns the named constant pi or e.
func ConstantNamed(name string) (*Constant, bool) {
	switch name {
	case "pi":
		return Pi, true
	case "e":
		return E, true
	}
	return nil, false
}

func (c *Constant) Name() string   { return c.name }
func (c *Constant) String() string { return c.name }
func (c *Constant) Code() string   { return c.name }
func (c *Constant) order() int     { return orderConstant }
func (c *Constant) Value() Value   { return variableValue(c) }

func (c *Constant) LaTeX() string {
	if c.value != nil && c.name == "pi" {
		return "\\pi"
	}
	return c.name
}

func (c *Constant) Compare(that Variable) int {
	if d := cmp.Compare(c.order(), that.order()); d != 0 {
		return d
	}
	t := that.(*Constant)
	if d := strings.Compare(c.name, t.name); d != 0 {
		return d
	}
	return cmp.Compare(c.evaluable(), t.evaluable())
}

func (c *Constant) evaluable() int {
	if c.value != nil {
		return 1
	}
	return 0
}

func (c *Constant) IsIdentity(that Variable) bool { return c.Compare(that) == 0 }
func (c *Constant) IsConstant(v Variable) bool    { return !c.IsIdentity(v) }

func (c *Constant) Derivative(v Variable) Value {
	if c.IsIdentity(v) {
		return one
	}
	return zero
}

// AntiDerivative integrates x to x^2/2 and any other constant c to c*x.
func (c *Constant) AntiDerivative(v Variable) (Value, error) {
	if c.IsIdentity(v) {
		half, _ := NewRational(1, 2)
		return half.Multiply(Pow(c.Value(), 2)), nil
	}
	return c.Value().Multiply(v.Value()), nil
}

func (c *Constant) Substitute(v Variable, value Value) (Value, error) {
	if c.IsIdentity(v) {
		return value, nil
	}
	return c.Value(), nil
}

func (c *Constant) Numeric() Value {
	if c.value == nil {
		return c.Value()
	}
	return &Numeric{val: c.value}
}

// ============================================================
// Fraction — unevaluated quotient num/den
// ============================================================

// Fraction is a quotient kept as an atom because its denominator does not
// divide its numerator. An inverse is a fraction with numerator one.
type Fraction struct{ num, den Value }

// NewFraction returns the atom num/den without simplification.
func NewFraction(num, den Value) *Fraction { return &Fraction{num: num, den: den} }

// NewInverse returns the atom 1/den.
func NewInverse(den Value) *Fraction { return &Fraction{num: one, den: den} }

// FractionOf returns num/den in simplest form: an exact quotient when den
// divides num, num times a rational when den is rational, and a fraction
// atom otherwise. A zero denominator fails with ErrArithmeticDegenerate.
func FractionOf(num, den Value) (Value, error) {
	if den.IsZero() {
		return nil, newError(ErrArithmeticDegenerate, "fraction", num, den)
	}
	if num.IsZero() {
		return zero, nil
	}
	if den.IsOne() {
		return Simplest(num), nil
	}
	if r, err := RationalValue(den); err == nil {
		inv, err := r.inverse()
		if err != nil {
			return nil, err
		}
		return Simplest(num.Multiply(inv)), nil
	}
	if q, err := num.Divide(den); err == nil {
		return Simplest(q), nil
	}
	if den.Signum() < 0 {
		num, den = num.Negate(), den.Negate()
	}
	inv := NewInverse(Simplest(den)).Value()
	if r, err := RationalValue(num); err == nil {
		return Simplest(inv.Multiply(r)), nil
	}
	return NewFraction(Simplest(num), Simplest(den)).Value(), nil
}

// reciprocal is 1/v for a v known to be non-zero.
func reciprocal(v Value) Value {
	r, err := FractionOf(one, v)
	if err != nil {
		zap.L().Debug("reciprocal of zero", zap.Stringer("value", v))
		return NewInverse(v).Value()
	}
	return r
}

func (f *Fraction) Numerator() Value   { return f.num }
func (f *Fraction) Denominator() Value { return f.den }
func (f *Fraction) IsInverse() bool    { return f.num.IsOne() }
func (f *Fraction) order() int         { return orderFraction }
func (f *Fraction) Value() Value       { return variableValue(f) }
func (f *Fraction) Name() string       { return f.String() }

func (f *Fraction) String() string {
	return parenthesize(f.num) + "/" + parenthesize(f.den)
}

func (f *Fraction) LaTeX() string {
	return "\\frac{" + f.num.LaTeX() + "}{" + f.den.LaTeX() + "}"
}

func (f *Fraction) Code() string {
	return "(float64(" + f.num.Code() + ") / float64(" + f.den.Code() + "))"
}

func (f *Fraction) Compare(that Variable) int {
	if d := cmp.Compare(f.order(), that.order()); d != 0 {
		return d
	}
	t := that.(*Fraction)
	if d := f.num.Compare(t.num); d != 0 {
		return d
	}
	return f.den.Compare(t.den)
}

func (f *Fraction) IsIdentity(that Variable) bool { return f.Compare(that) == 0 }

func (f *Fraction) IsConstant(v Variable) bool {
	return f.num.IsConstant(v) && f.den.IsConstant(v)
}

// Derivative applies the quotient rule (n'd - nd')/d^2.
func (f *Fraction) Derivative(v Variable) Value {
	if f.IsConstant(v) {
		return zero
	}
	n := f.num.Derivative(v).Multiply(f.den).Subtract(f.num.Multiply(f.den.Derivative(v)))
	d := f.den.Multiply(f.den)
	r, err := FractionOf(n, d)
	if err != nil {
		zap.L().Debug("quotient rule hit a zero denominator", zap.Stringer("fraction", f))
		return NewFraction(n, d).Value()
	}
	return r
}

// AntiDerivative only handles fractions constant in v; the expression level
// handles constant denominators.
func (f *Fraction) AntiDerivative(v Variable) (Value, error) {
	if f.IsConstant(v) {
		return f.Value().Multiply(v.Value()), nil
	}
	return nil, newError(ErrNotIntegrable, "antiderivative", f.Value())
}

func (f *Fraction) Substitute(v Variable, value Value) (Value, error) {
	n, err := f.num.Substitute(v, value)
	if err != nil {
		return nil, err
	}
	d, err := f.den.Substitute(v, value)
	if err != nil {
		return nil, err
	}
	return FractionOf(n, d)
}

func (f *Fraction) Numeric() Value {
	n, d := f.num.Numeric(), f.den.Numeric()
	if _, ok := n.(*Numeric); !ok {
		return f.Value()
	}
	if _, ok := d.(*Numeric); !ok {
		return f.Value()
	}
	q, err := n.Divide(d)
	if err != nil {
		return f.Value()
	}
	return q
}

// ============================================================
// Function — elementary function applications
// ============================================================

// Function applies one of sin, cos, exp or ln to an argument.
type Function struct {
	name string
	arg  Value
}

var functionNames = map[string]func(float64) float64{
	"sin": math.Sin,
	"cos": math.Cos,
	"exp": math.Exp,
	"ln":  math.Log,
}

// FunctionOf applies the function called name to arg, folding the trivial
// arguments sin(0), cos(0), exp(0), ln(1) and the inverse pairs exp(ln u)
// and ln(exp u).
func FunctionOf(name string, arg Value) (Value, error) {
	if _, ok := functionNames[name]; !ok {
		return nil, fmt.Errorf("unknown function: %s", name)
	}
	arg = Simplest(arg)
	switch name {
	case "sin":
		if arg.IsZero() {
			return zero, nil
		}
	case "cos":
		if arg.IsZero() {
			return one, nil
		}
	case "exp":
		if arg.IsZero() {
			return one, nil
		}
		if inner, ok := innerFunction(arg, "ln"); ok {
			return inner, nil
		}
	case "ln":
		if arg.IsOne() {
			return zero, nil
		}
		if inner, ok := innerFunction(arg, "exp"); ok {
			return inner, nil
		}
	}
	return (&Function{name: name, arg: arg}).Value(), nil
}

func innerFunction(arg Value, name string) (Value, bool) {
	v, err := arg.VariableValue()
	if err != nil {
		return nil, false
	}
	f, ok := v.(*Function)
	if !ok || f.name != name {
		return nil, false
	}
	return f.arg, true
}

func mustFunction(name string, arg Value) Value {
	v, err := FunctionOf(name, arg)
	if err != nil {
		panic(err)
	}
	return v
}

func Sin(arg Value) Value { return mustFunction("sin", arg) }
func Cos(arg Value) Value { return mustFunction("cos", arg) }
func Exp(arg Value) Value { return mustFunction("exp", arg) }
func Ln(arg Value) Value  { return mustFunction("ln", arg) }

func (f *Function) Name() string   { return f.name }
func (f *Function) Arg() Value     { return f.arg }
func (f *Function) order() int     { return orderFunction }
func (f *Function) Value() Value   { return variableValue(f) }
func (f *Function) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Function) LaTeX() string {
	return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Function) Code() string {
	switch f.name {
	case "sin":
		return "math.Sin(" + f.arg.Code() + ")"
	case "cos":
		return "math.Cos(" + f.arg.Code() + ")"
	case "exp":
		return "math.Exp(" + f.arg.Code() + ")"
	}
	return "math.Log(" + f.arg.Code() + ")"
}

func (f *Function) Compare(that Variable) int {
	if d := cmp.Compare(f.order(), that.order()); d != 0 {
		return d
	}
	t := that.(*Function)
	if d := strings.Compare(f.name, t.name); d != 0 {
		return d
	}
	return f.arg.Compare(t.arg)
}

func (f *Function) IsIdentity(that Variable) bool { return f.Compare(that) == 0 }
func (f *Function) IsConstant(v Variable) bool    { return f.arg.IsConstant(v) }

// Derivative applies the chain rule.
func (f *Function) Derivative(v Variable) Value {
	if f.IsConstant(v) {
		return zero
	}
	du := f.arg.Derivative(v)
	var outer Value
	switch f.name {
	case "sin":
		outer = Cos(f.arg)
	case "cos":
		outer = Sin(f.arg).Negate()
	case "exp":
		outer = Exp(f.arg)
	case "ln":
		outer = reciprocal(f.arg)
	}
	return outer.Multiply(du)
}

// AntiDerivative integrates f(a*v + b) for a constant in v.
func (f *Function) AntiDerivative(v Variable) (Value, error) {
	if f.IsConstant(v) {
		return f.Value().Multiply(v.Value()), nil
	}
	a := f.arg.Derivative(v)
	if !f.arg.IsPolynomial(v) || a.IsZero() || !a.IsConstant(v) {
		return nil, newError(ErrNotIntegrable, "antiderivative", f.Value())
	}
	var primitive Value
	switch f.name {
	case "sin":
		primitive = Cos(f.arg).Negate()
	case "cos":
		primitive = Sin(f.arg)
	case "exp":
		primitive = Exp(f.arg)
	case "ln":
		primitive = f.arg.Multiply(Ln(f.arg)).Subtract(f.arg)
	}
	return primitive.Multiply(reciprocal(a)), nil
}

func (f *Function) Substitute(v Variable, value Value) (Value, error) {
	arg, err := f.arg.Substitute(v, value)
	if err != nil {
		return nil, err
	}
	return FunctionOf(f.name, arg)
}

func (f *Function) Numeric() Value {
	arg := f.arg.Numeric()
	n, ok := arg.(*Numeric)
	if !ok {
		v, err := FunctionOf(f.name, arg)
		if err != nil {
			return f.Value()
		}
		return v
	}
	if r, ok := n.apply(functionNames[f.name]); ok {
		return r
	}
	return f.Value()
}

// ============================================================
// NumericVariable — a float held inside an expression
// ============================================================

// NumericVariable lets a Numeric take part in an Expression whose symbols
// have no numeric value.
type NumericVariable struct{ value *Numeric }

func (n *NumericVariable) Name() string   { return n.value.String() }
func (n *NumericVariable) String() string { return n.value.String() }
func (n *NumericVariable) LaTeX() string  { return n.value.LaTeX() }
func (n *NumericVariable) Code() string   { return n.value.Code() }
func (n *NumericVariable) order() int     { return orderNumeric }
func (n *NumericVariable) Value() Value   { return variableValue(n) }
func (n *NumericVariable) Numeric() Value { return n.value }

func (n *NumericVariable) Compare(that Variable) int {
	if d := cmp.Compare(n.order(), that.order()); d != 0 {
		return d
	}
	return n.value.cmp(that.(*NumericVariable).value)
}

func (n *NumericVariable) IsIdentity(that Variable) bool { return n.Compare(that) == 0 }
func (n *NumericVariable) IsConstant(Variable) bool      { return true }
func (n *NumericVariable) Derivative(Variable) Value     { return zero }

func (n *NumericVariable) AntiDerivative(v Variable) (Value, error) {
	return n.Value().Multiply(v.Value()), nil
}

func (n *NumericVariable) Substitute(Variable, Value) (Value, error) { return n.Value(), nil }

package goalgebra

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Literal — monomial as sorted variable powers
// ============================================================

// Productand is one variable raised to a positive exponent.
type Productand struct {
	variable Variable
	exponent int
}

func (p Productand) Variable() Variable { return p.variable }
func (p Productand) Exponent() int      { return p.exponent }
func (p Productand) Value() Value       { return Pow(p.variable.Value(), p.exponent) }

// Literal is a product of variable powers, kept in ascending variable
// order with no zero exponents. The empty literal stands for 1.
type Literal struct {
	productands []Productand
	degree      int
}

var emptyLiteral = &Literal{}

// EmptyLiteral returns the literal 1.
func EmptyLiteral() *Literal { return emptyLiteral }

// LiteralOf returns v^exponent; a zero exponent gives the empty literal.
func LiteralOf(v Variable, exponent int) *Literal {
	b := NewLiteralBuilder(1)
	b.Add(v, exponent)
	return b.Build()
}

func (l *Literal) Size() int     { return len(l.productands) }
func (l *Literal) Degree() int   { return l.degree }
func (l *Literal) IsEmpty() bool { return len(l.productands) == 0 }

func (l *Literal) Productand(i int) Productand { return l.productands[i] }

func (l *Literal) Productands() []Productand {
	out := make([]Productand, len(l.productands))
	copy(out, l.productands)
	return out
}

// Variables lists the variables in ascending order.
func (l *Literal) Variables() []Variable {
	out := make([]Variable, len(l.productands))
	for i, p := range l.productands {
		out[i] = p.variable
	}
	return out
}

// Exponent returns the power of v in l, zero when absent.
func (l *Literal) Exponent(v Variable) int {
	lo, hi := 0, len(l.productands)
	for lo < hi {
		mid := (lo + hi) / 2
		switch c := l.productands[mid].variable.Compare(v); {
		case c == 0:
			return l.productands[mid].exponent
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Expression returns l with coefficient one.
func (l *Literal) Expression() *Expression {
	return &Expression{summands: []Summand{{coefficient: one, literal: l}}}
}

// VariableValue succeeds when l is a single variable to the first power.
func (l *Literal) VariableValue() (Variable, error) {
	if len(l.productands) != 1 || l.productands[0].exponent != 1 {
		return nil, newError(ErrNotAVariable, "variableValue", l.Expression())
	}
	return l.productands[0].variable, nil
}

// ProductValue lists each productand as a value.
func (l *Literal) ProductValue() []Value {
	out := make([]Value, len(l.productands))
	for i, p := range l.productands {
		out[i] = p.Value()
	}
	return out
}

// Multiply adds exponents of shared variables.
func (l *Literal) Multiply(r *Literal) *Literal {
	switch {
	case l.IsEmpty():
		return r
	case r.IsEmpty():
		return l
	}
	b := NewLiteralBuilder(len(l.productands) + len(r.productands))
	lc, rc := forward(l.productands), forward(r.productands)
	lp, lok := lc.next()
	rp, rok := rc.next()
	for lok || rok {
		switch c := mergeOrder(lok, rok, func() int { return lp.variable.Compare(rp.variable) }); {
		case c < 0:
			b.Add(lp.variable, lp.exponent)
			lp, lok = lc.next()
		case c > 0:
			b.Add(rp.variable, rp.exponent)
			rp, rok = rc.next()
		default:
			b.Add(lp.variable, lp.exponent+rp.exponent)
			lp, lok = lc.next()
			rp, rok = rc.next()
		}
	}
	return b.Build()
}

// Divide subtracts exponents. It fails with ErrNotDivisible when r holds a
// variable l lacks or a higher power of one.
func (l *Literal) Divide(r *Literal) (*Literal, error) {
	if r.IsEmpty() {
		return l, nil
	}
	fail := func() (*Literal, error) {
		return nil, newError(ErrNotDivisible, "divide", l.Expression(), r.Expression())
	}
	b := NewLiteralBuilder(len(l.productands))
	lc, rc := forward(l.productands), forward(r.productands)
	lp, lok := lc.next()
	rp, rok := rc.next()
	for lok || rok {
		switch c := mergeOrder(lok, rok, func() int { return lp.variable.Compare(rp.variable) }); {
		case c < 0:
			b.Add(lp.variable, lp.exponent)
			lp, lok = lc.next()
		case c > 0:
			return fail()
		default:
			e := lp.exponent - rp.exponent
			if e < 0 {
				return fail()
			}
			b.Add(lp.variable, e)
			lp, lok = lc.next()
			rp, rok = rc.next()
		}
	}
	return b.Build(), nil
}

// Gcd keeps shared variables at their smaller exponent.
func (l *Literal) Gcd(r *Literal) *Literal {
	b := NewLiteralBuilder(min(len(l.productands), len(r.productands)))
	lc, rc := forward(l.productands), forward(r.productands)
	lp, lok := lc.next()
	rp, rok := rc.next()
	for lok && rok {
		switch c := lp.variable.Compare(rp.variable); {
		case c < 0:
			lp, lok = lc.next()
		case c > 0:
			rp, rok = rc.next()
		default:
			b.Add(lp.variable, min(lp.exponent, rp.exponent))
			lp, lok = lc.next()
			rp, rok = rc.next()
		}
	}
	return b.Build()
}

// Lcm keeps every variable at its larger exponent.
func (l *Literal) Lcm(r *Literal) *Literal {
	switch {
	case l.IsEmpty():
		return r
	case r.IsEmpty():
		return l
	}
	b := NewLiteralBuilder(len(l.productands) + len(r.productands))
	lc, rc := forward(l.productands), forward(r.productands)
	lp, lok := lc.next()
	rp, rok := rc.next()
	for lok || rok {
		switch c := mergeOrder(lok, rok, func() int { return lp.variable.Compare(rp.variable) }); {
		case c < 0:
			b.Add(lp.variable, lp.exponent)
			lp, lok = lc.next()
		case c > 0:
			b.Add(rp.variable, rp.exponent)
			rp, rok = rc.next()
		default:
			b.Add(lp.variable, max(lp.exponent, rp.exponent))
			lp, lok = lc.next()
			rp, rok = rc.next()
		}
	}
	return b.Build()
}

// Compare orders literals lexicographically on their exponent vectors with
// the highest variable most significant. When one side runs out first it
// is the lesser.
func (l *Literal) Compare(r *Literal) int {
	lc, rc := backward(l.productands), backward(r.productands)
	for {
		lp, lok := lc.next()
		rp, rok := rc.next()
		switch {
		case !lok && !rok:
			return 0
		case !lok:
			return -1
		case !rok:
			return 1
		}
		if c := lp.variable.Compare(rp.variable); c != 0 {
			return c
		}
		if lp.exponent != rp.exponent {
			if lp.exponent < rp.exponent {
				return -1
			}
			return 1
		}
	}
}

func (l *Literal) Equal(r *Literal) bool { return l.Compare(r) == 0 }

// without returns l with v removed and the exponent v had.
func (l *Literal) without(v Variable) (*Literal, int) {
	k := l.Exponent(v)
	if k == 0 {
		return l, 0
	}
	rest, _ := l.Divide(LiteralOf(v, k))
	return rest, k
}

func (l *Literal) String() string {
	if l.IsEmpty() {
		return "1"
	}
	parts := make([]string, len(l.productands))
	for i, p := range l.productands {
		s := p.variable.String()
		if _, ok := p.variable.(*Fraction); ok {
			s = "(" + s + ")"
		}
		if p.exponent != 1 {
			s += "^" + strconv.Itoa(p.exponent)
		}
		parts[i] = s
	}
	return strings.Join(parts, "*")
}

// ============================================================
// LiteralBuilder
// ============================================================

// LiteralBuilder appends productands in strictly ascending variable order.
// Zero exponents are skipped. Build hands the productands to the literal;
// the builder cannot be used afterwards.
type LiteralBuilder struct {
	productands []Productand
	built       bool
}

func NewLiteralBuilder(capacity int) *LiteralBuilder {
	return &LiteralBuilder{productands: make([]Productand, 0, capacity)}
}

func (b *LiteralBuilder) Add(v Variable, exponent int) {
	if b.built {
		panic("goalgebra: LiteralBuilder.Add after Build")
	}
	if exponent < 0 {
		panic(fmt.Sprintf("goalgebra: negative exponent %d for %s", exponent, v))
	}
	if exponent == 0 {
		return
	}
	if n := len(b.productands); n > 0 && b.productands[n-1].variable.Compare(v) >= 0 {
		panic(fmt.Sprintf("goalgebra: productand %s added after %s", v, b.productands[n-1].variable))
	}
	b.productands = append(b.productands, Productand{variable: v, exponent: exponent})
}

func (b *LiteralBuilder) Build() *Literal {
	if b.built {
		panic("goalgebra: LiteralBuilder.Build called twice")
	}
	b.built = true
	ps := b.productands
	b.productands = nil
	if len(ps) == 0 {
		return emptyLiteral
	}
	l := &Literal{productands: ps}
	for _, p := range ps {
		l.degree += p.exponent
	}
	return l
}

package goalgebra

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// ============================================================
// Summand — coefficient times literal
// ============================================================

type Summand struct {
	coefficient *Integer
	literal     *Literal
}

func (s Summand) Coefficient() *Integer { return s.coefficient }
func (s Summand) Literal() *Literal     { return s.literal }

func (s Summand) multiply(m Summand) Summand {
	return Summand{coefficient: s.coefficient.mul(m.coefficient), literal: s.literal.Multiply(m.literal)}
}

// Value returns the summand as a single-term expression.
func (s Summand) Value() Value {
	if s.coefficient.IsZero() {
		return zero
	}
	return &Expression{summands: []Summand{s}}
}

// ============================================================
// Expression — canonical sparse polynomial
// ============================================================

// Expression is a sum of summands with non-zero integer coefficients and
// pairwise distinct literals, kept in descending literal order. The empty
// expression is zero.
type Expression struct {
	summands []Summand

	lcmOnce sync.Once
	lcm     *Literal
}

var emptyExpression = &Expression{}

// NewExpression returns the single term c*l.
func NewExpression(c *Integer, l *Literal) *Expression {
	if c.IsZero() {
		return emptyExpression
	}
	return &Expression{summands: []Summand{{coefficient: c, literal: l}}}
}

func (e *Expression) Kind() Kind              { return KindExpression }
func (e *Expression) Size() int               { return len(e.summands) }
func (e *Expression) Summand(i int) Summand   { return e.summands[i] }
func (e *Expression) Expression() *Expression { return e }
func (e *Expression) Variables() []Variable   { return e.LiteralLcm().Variables() }

func (e *Expression) Summands() []Summand {
	out := make([]Summand, len(e.summands))
	copy(out, e.summands)
	return out
}

// LiteralLcm is the lcm of all literals: every variable of e at its highest
// power. It is computed once.
func (e *Expression) LiteralLcm() *Literal {
	e.lcmOnce.Do(func() {
		l := emptyLiteral
		for _, s := range e.summands {
			l = l.Lcm(s.literal)
		}
		e.lcm = l
	})
	return e.lcm
}

// Degree is the highest total degree of any term.
func (e *Expression) Degree() int {
	d := 0
	for _, s := range e.summands {
		d = max(d, s.literal.degree)
	}
	return d
}

// sum merges l*lm and r*rm in one pass; a nil multiplier means one.
func sum(l *Expression, lm *Summand, r *Expression, rm *Summand) *Expression {
	b := NewExpressionBuilder(len(l.summands) + len(r.summands))
	lc, rc := forward(l.summands), forward(r.summands)
	ls, lok := scaled(lc, lm)
	rs, rok := scaled(rc, rm)
	for lok || rok {
		switch c := mergeOrder(lok, rok, func() int { return rs.literal.Compare(ls.literal) }); {
		case c < 0:
			b.Add(ls.coefficient, ls.literal)
			ls, lok = scaled(lc, lm)
		case c > 0:
			b.Add(rs.coefficient, rs.literal)
			rs, rok = scaled(rc, rm)
		default:
			b.Add(ls.coefficient.add(rs.coefficient), ls.literal)
			ls, lok = scaled(lc, lm)
			rs, rok = scaled(rc, rm)
		}
	}
	return b.Build()
}

func scaled(c *cursor[Summand], m *Summand) (Summand, bool) {
	s, ok := c.next()
	if ok && m != nil {
		s = s.multiply(*m)
	}
	return s, ok
}

func (e *Expression) add(t *Expression) *Expression { return sum(e, nil, t, nil).reduceRationals() }

func (e *Expression) subtract(t *Expression) *Expression {
	return sum(e, nil, t, &Summand{coefficient: minusOne, literal: emptyLiteral}).reduceRationals()
}

// multiply folds the shorter operand term by term into the longer one.
func (e *Expression) multiply(t *Expression) *Expression {
	if len(e.summands) < len(t.summands) {
		e, t = t, e
	}
	result := emptyExpression
	for i := range t.summands {
		result = sum(result, nil, e, &t.summands[i])
	}
	return result.reduceRationals()
}

func (e *Expression) scale(c *Integer) *Expression {
	return sum(emptyExpression, nil, e, &Summand{coefficient: c, literal: emptyLiteral}).reduceRationals()
}

// ratio returns n/d when v is a fraction atom of two integers.
func ratio(v Variable) (n, d *Integer, ok bool) {
	f, ok := v.(*Fraction)
	if !ok {
		return nil, nil, false
	}
	if n, ok = f.num.(*Integer); !ok {
		return nil, nil, false
	}
	if d, ok = f.den.(*Integer); !ok || d.IsZero() {
		return nil, nil, false
	}
	return n, d, true
}

// reduced reports whether the integer fraction atoms of s are already
// folded: at most one atom, of the form 1/d with d > 1 coprime to the
// coefficient.
func (s Summand) reduced() bool {
	seen := false
	for _, p := range s.literal.productands {
		n, d, ok := ratio(p.variable)
		if !ok {
			continue
		}
		if seen || p.exponent != 1 || !n.IsOne() || d.cmp(one) <= 0 || !s.coefficient.gcd(d).IsOne() {
			return false
		}
		seen = true
	}
	return true
}

// split multiplies the integer fraction atoms of s into its coefficient
// and returns that rational with the rest of the literal.
func (s Summand) split() (*Rational, *Literal) {
	r := s.coefficient.Rational()
	b := NewLiteralBuilder(s.literal.Size())
	for _, p := range s.literal.productands {
		if n, d, ok := ratio(p.variable); ok {
			r = r.mul(reduce(n.Big(), d.Big()).pow(p.exponent))
			continue
		}
		b.Add(p.variable, p.exponent)
	}
	return r, b.Build()
}

// rationalSummand is r*l written as num*(1/den)*l.
func rationalSummand(r *Rational, l *Literal) Summand {
	if !r.isInteger() {
		l = l.Multiply(LiteralOf(NewInverse(wrap(r.den)), 1))
	}
	return Summand{coefficient: wrap(r.num), literal: l}
}

func (e *Expression) hasRatio() bool {
	for _, s := range e.summands {
		for _, p := range s.literal.productands {
			if _, _, ok := ratio(p.variable); ok {
				return true
			}
		}
	}
	return false
}

type rationalPart struct {
	r    *Rational
	rest *Literal
}

// reduceRationals keeps integer fraction atoms canonical so that equal
// values have equal terms: terms whose literals differ only in such atoms
// are combined over a common denominator, e.g. x*(1/2) + x*(1/3) is
// 5*x*(1/6).
func (e *Expression) reduceRationals() *Expression {
	if !e.hasRatio() {
		return e
	}
	parts := make([]rationalPart, len(e.summands))
	clean := true
	for i, s := range e.summands {
		parts[i].r, parts[i].rest = s.split()
		clean = clean && s.reduced()
	}
	slices.SortFunc(parts, func(a, b rationalPart) int { return b.rest.Compare(a.rest) })
	ss := make([]Summand, 0, len(parts))
	for i := 0; i < len(parts); {
		r, rest := parts[i].r, parts[i].rest
		j := i + 1
		for ; j < len(parts) && parts[j].rest.Equal(rest); j++ {
			r = r.add(parts[j].r)
		}
		clean = clean && j == i+1
		if !r.IsZero() {
			ss = append(ss, rationalSummand(r, rest))
		}
		i = j
	}
	if clean {
		return e
	}
	slices.SortFunc(ss, func(a, b Summand) int { return b.literal.Compare(a.literal) })
	bld := NewExpressionBuilder(len(ss))
	for _, t := range ss {
		bld.Add(t.coefficient, t.literal)
	}
	return bld.Build()
}

func (e *Expression) compare(t *Expression) int {
	lc, rc := backward(e.summands), backward(t.summands)
	for {
		ls, lok := lc.next()
		rs, rok := rc.next()
		switch {
		case !lok && !rok:
			return 0
		case !lok:
			return -1
		case !rok:
			return 1
		}
		if c := ls.literal.Compare(rs.literal); c != 0 {
			return c
		}
		if c := ls.coefficient.cmp(rs.coefficient); c != 0 {
			return c
		}
	}
}

// ---- Value ----

func (e *Expression) Add(that Value) Value {
	if t, ok := that.(*Expression); ok {
		return e.add(t)
	}
	a, b := promote(e, that)
	return a.Add(b)
}

func (e *Expression) Subtract(that Value) Value {
	if t, ok := that.(*Expression); ok {
		return e.subtract(t)
	}
	a, b := promote(e, that)
	return a.Subtract(b)
}

func (e *Expression) Multiply(that Value) Value {
	if t, ok := that.(*Expression); ok {
		return e.multiply(t)
	}
	a, b := promote(e, that)
	return a.Multiply(b)
}

func (e *Expression) Negate() Value { return e.scale(minusOne) }

func (e *Expression) Divide(that Value) (Value, error) {
	res, err := e.DivideAndRemainder(that)
	if err != nil {
		return nil, err
	}
	if !res.Remainder.IsZero() {
		return nil, newError(ErrNotDivisible, "divide", e, that)
	}
	return res.Quotient, nil
}

// DivideAndRemainder is exact or nothing: when that does not divide e the
// result is (0, e).
func (e *Expression) DivideAndRemainder(that Value) (DivisionResult, error) {
	if that.IsZero() {
		return DivisionResult{}, newError(ErrArithmeticDegenerate, "divideAndRemainder", e, that)
	}
	switch t := that.(type) {
	case *Integer:
		return e.divideInteger(t), nil
	case *Rational:
		inv, err := t.inverse()
		if err != nil {
			return DivisionResult{}, err
		}
		return DivisionResult{Quotient: e.Multiply(inv), Remainder: zero}, nil
	case *Numeric:
		inv, err := t.inverse()
		if err != nil {
			return DivisionResult{}, err
		}
		return DivisionResult{Quotient: e.Multiply(inv), Remainder: zero}, nil
	case *Expression:
		return e.divideExpression(t), nil
	}
	panic(fmt.Sprintf("goalgebra: unexpected value %T", that))
}

func (e *Expression) divideInteger(t *Integer) DivisionResult {
	b := NewExpressionBuilder(len(e.summands))
	for _, s := range e.summands {
		q, err := s.coefficient.divide(t)
		if err != nil {
			return DivisionResult{Quotient: zero, Remainder: e}
		}
		b.Add(q, s.literal)
	}
	return DivisionResult{Quotient: b.Build(), Remainder: zero}
}

func (e *Expression) divideExpression(t *Expression) DivisionResult {
	if i, err := t.IntegerValue(); err == nil {
		return e.divideInteger(i)
	}
	shared := e.LiteralLcm().Gcd(t.LiteralLcm())
	if shared.IsEmpty() {
		if e.IsZero() {
			return DivisionResult{Quotient: zero, Remainder: zero}
		}
		return DivisionResult{Quotient: zero, Remainder: e}
	}
	v := shared.productands[0].variable
	p, q := PolynomialOf(e, v), PolynomialOf(t, v)
	quo, rem, err := p.DivideAndRemainder(q)
	if err != nil || !rem.IsZero() {
		zap.L().Debug("polynomial division is not exact",
			zap.Stringer("dividend", e), zap.Stringer("divisor", t), zap.Error(err))
		return DivisionResult{Quotient: zero, Remainder: e}
	}
	return DivisionResult{Quotient: quo.Value(), Remainder: zero}
}

// Gcd of expressions is the polynomial gcd with a positive leading
// coefficient; expressions with no variable in common reduce to the gcd of
// their contents.
func (e *Expression) Gcd(that Value) Value {
	switch t := that.(type) {
	case *Integer:
		if t.IsZero() {
			return Abs(e)
		}
		return e.IntegerGcd().gcd(t)
	case *Expression:
		return e.gcd(t)
	}
	a, b := promote(e, that)
	return a.Gcd(b)
}

func (e *Expression) gcd(t *Expression) Value {
	switch {
	case t.IsZero():
		return Abs(e)
	case e.IsZero():
		return Abs(t)
	}
	shared := e.LiteralLcm().Gcd(t.LiteralLcm())
	if shared.IsEmpty() {
		return e.IntegerGcd().gcd(t.IntegerGcd())
	}
	v := shared.productands[0].variable
	return PolynomialOf(e, v).Gcd(PolynomialOf(t, v)).Value()
}

func (e *Expression) Compare(that Value) int {
	if t, ok := that.(*Expression); ok {
		return e.compare(t)
	}
	a, b := promote(e, that)
	return a.Compare(b)
}

// Signum is the sign of the leading coefficient.
func (e *Expression) Signum() int {
	if len(e.summands) == 0 {
		return 0
	}
	return e.summands[0].coefficient.Signum()
}

func (e *Expression) IsZero() bool {
	for _, s := range e.summands {
		if !s.coefficient.IsZero() {
			return false
		}
	}
	return true
}

func (e *Expression) IsOne() bool {
	return len(e.summands) == 1 && e.summands[0].literal.IsEmpty() && e.summands[0].coefficient.IsOne()
}

func (e *Expression) IntegerGcd() *Integer {
	g := zero
	for _, s := range e.summands {
		g = g.gcd(s.coefficient)
		if g.IsOne() {
			break
		}
	}
	return g
}

func (e *Expression) IntegerValue() (*Integer, error) {
	switch {
	case len(e.summands) == 0:
		return zero, nil
	case len(e.summands) == 1 && e.summands[0].literal.IsEmpty():
		return e.summands[0].coefficient, nil
	}
	return nil, newError(ErrNotAnInteger, "integerValue", e)
}

// rationalValue recognises c*(n/d)^k with integer n and d.
func (e *Expression) rationalValue() (*Rational, bool) {
	if len(e.summands) != 1 || e.summands[0].literal.Size() != 1 {
		return nil, false
	}
	s := e.summands[0]
	p := s.literal.productands[0]
	f, ok := p.variable.(*Fraction)
	if !ok {
		return nil, false
	}
	n, ok := f.num.(*Integer)
	if !ok {
		return nil, false
	}
	d, ok := f.den.(*Integer)
	if !ok || d.IsZero() {
		return nil, false
	}
	num := s.coefficient.mul(n.pow(p.exponent))
	return reduce(num.Big(), d.pow(p.exponent).Big()), true
}

func (e *Expression) VariableValue() (Variable, error) {
	if len(e.summands) != 1 || !e.summands[0].coefficient.IsOne() {
		return nil, newError(ErrNotAVariable, "variableValue", e)
	}
	return e.summands[0].literal.VariableValue()
}

// SumValue splits e into its terms.
func (e *Expression) SumValue() []Value {
	out := make([]Value, len(e.summands))
	for i, s := range e.summands {
		out[i] = s.Value()
	}
	return out
}

// ProductValue splits a single term into its coefficient and variable
// powers. Zero is the product [0]; a sum of several terms is not a product.
func (e *Expression) ProductValue() ([]Value, error) {
	switch len(e.summands) {
	case 0:
		return []Value{zero}, nil
	case 1:
	default:
		return nil, newError(ErrNotAProduct, "productValue", e)
	}
	s := e.summands[0]
	var out []Value
	if !s.coefficient.IsOne() {
		out = append(out, s.coefficient)
	}
	return append(out, s.literal.ProductValue()...), nil
}

// IsPolynomial reports whether every variable is v itself or constant in v.
func (e *Expression) IsPolynomial(v Variable) bool {
	for _, u := range e.Variables() {
		if !u.IsIdentity(v) && !u.IsConstant(v) {
			return false
		}
	}
	return true
}

func (e *Expression) IsConstant(v Variable) bool {
	for _, u := range e.Variables() {
		if !u.IsConstant(v) {
			return false
		}
	}
	return true
}

// ============================================================
// ExpressionBuilder
// ============================================================

// ExpressionBuilder appends summands in strictly descending literal order.
// Zero coefficients are skipped. Build hands the summands to the
// expression; the builder cannot be used afterwards.
type ExpressionBuilder struct {
	summands []Summand
	built    bool
}

func NewExpressionBuilder(capacity int) *ExpressionBuilder {
	return &ExpressionBuilder{summands: make([]Summand, 0, capacity)}
}

func (b *ExpressionBuilder) Add(c *Integer, l *Literal) {
	if b.built {
		panic("goalgebra: ExpressionBuilder.Add after Build")
	}
	if c.IsZero() {
		return
	}
	if n := len(b.summands); n > 0 && b.summands[n-1].literal.Compare(l) <= 0 {
		panic(fmt.Sprintf("goalgebra: summand %s added after %s", l, b.summands[n-1].literal))
	}
	b.summands = append(b.summands, Summand{coefficient: c, literal: l})
}

func (b *ExpressionBuilder) Build() *Expression {
	if b.built {
		panic("goalgebra: ExpressionBuilder.Build called twice")
	}
	b.built = true
	ss := b.summands
	b.summands = nil
	if len(ss) == 0 {
		return emptyExpression
	}
	return &Expression{summands: ss}
}

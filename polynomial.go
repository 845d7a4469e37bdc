package goalgebra

import (
	"go.uber.org/zap"
)

// ============================================================
// Polynomial — dense univariate view of an expression
// ============================================================

// Polynomial views an expression as a polynomial in one variable whose
// coefficients are values free of that variable. coefficients[k] belongs to
// variable^k; the slice carries no trailing zeros.
type Polynomial struct {
	variable     Variable
	coefficients []Value
}

// PolynomialOf collects the terms of e by their power of v.
func PolynomialOf(e *Expression, v Variable) *Polynomial {
	degree := e.LiteralLcm().Exponent(v)
	coefficients := make([]Value, degree+1)
	builders := make([]*ExpressionBuilder, degree+1)
	for _, s := range e.summands {
		rest, k := s.literal.without(v)
		if builders[k] == nil {
			builders[k] = NewExpressionBuilder(1)
		}
		// Removing the same power of v from literals in descending order keeps
		// them descending.
		builders[k].Add(s.coefficient, rest)
	}
	for k, b := range builders {
		if b == nil {
			coefficients[k] = zero
			continue
		}
		coefficients[k] = Simplest(b.Build())
	}
	return newPolynomial(v, coefficients)
}

func newPolynomial(v Variable, coefficients []Value) *Polynomial {
	n := len(coefficients)
	for n > 0 && coefficients[n-1].IsZero() {
		n--
	}
	return &Polynomial{variable: v, coefficients: coefficients[:n]}
}

func (p *Polynomial) Variable() Variable { return p.variable }
func (p *Polynomial) Degree() int        { return len(p.coefficients) - 1 }
func (p *Polynomial) IsZero() bool       { return len(p.coefficients) == 0 }

// Coefficient returns the coefficient of variable^k.
func (p *Polynomial) Coefficient(k int) Value {
	if k < 0 || k >= len(p.coefficients) {
		return zero
	}
	return p.coefficients[k]
}

func (p *Polynomial) lead() Value {
	if p.IsZero() {
		return zero
	}
	return p.coefficients[len(p.coefficients)-1]
}

// Value folds the polynomial back into a canonical value.
func (p *Polynomial) Value() Value {
	var result Value = zero
	x := p.variable.Value()
	for k, c := range p.coefficients {
		if c.IsZero() {
			continue
		}
		result = result.Add(c.Multiply(Pow(x, k)))
	}
	return Simplest(result)
}

func (p *Polynomial) String() string { return p.Value().String() }

// shift multiplies every coefficient by c and the whole by variable^k.
func (p *Polynomial) shift(c Value, k int) *Polynomial {
	out := make([]Value, len(p.coefficients)+k)
	for i := 0; i < k; i++ {
		out[i] = zero
	}
	for i, a := range p.coefficients {
		out[i+k] = a.Multiply(c)
	}
	return newPolynomial(p.variable, out)
}

func (p *Polynomial) subtract(q *Polynomial) *Polynomial {
	out := make([]Value, max(len(p.coefficients), len(q.coefficients)))
	for i := range out {
		out[i] = Simplest(p.Coefficient(i).Subtract(q.Coefficient(i)))
	}
	return newPolynomial(p.variable, out)
}

func (p *Polynomial) negate() *Polynomial {
	out := make([]Value, len(p.coefficients))
	for i, a := range p.coefficients {
		out[i] = a.Negate()
	}
	return &Polynomial{variable: p.variable, coefficients: out}
}

// DivideAndRemainder is long division. Each step divides leading
// coefficients exactly; when that fails the partial quotient and remainder
// are returned with the error.
func (p *Polynomial) DivideAndRemainder(q *Polynomial) (*Polynomial, *Polynomial, error) {
	if q.IsZero() {
		return nil, nil, newError(ErrArithmeticDegenerate, "divideAndRemainder", p.Value(), q.Value())
	}
	n := max(p.Degree()-q.Degree()+1, 0)
	quotient := make([]Value, n)
	for i := range quotient {
		quotient[i] = zero
	}
	r := p
	for !r.IsZero() && r.Degree() >= q.Degree() {
		k := r.Degree() - q.Degree()
		t, err := r.lead().Divide(q.lead())
		if err != nil {
			return newPolynomial(p.variable, quotient), r, err
		}
		quotient[k] = Simplest(t)
		r = r.subtract(q.shift(t, k))
	}
	return newPolynomial(p.variable, quotient), r, nil
}

// pseudoRemainder is lc(b)^m * a mod b, computed without division.
func (p *Polynomial) pseudoRemainder(b *Polynomial) *Polynomial {
	r := p
	lb := b.lead()
	for !r.IsZero() && r.Degree() >= b.Degree() {
		k := r.Degree() - b.Degree()
		r = r.shift(lb, 0).subtract(b.shift(r.lead(), k))
	}
	return r
}

// content is the gcd of the coefficients; primitive is p divided by it.
func (p *Polynomial) contentAndPrimitive() (Value, *Polynomial) {
	var c Value = zero
	for _, a := range p.coefficients {
		c = c.Gcd(a)
	}
	if c.IsZero() || c.IsOne() {
		return c, p
	}
	out := make([]Value, len(p.coefficients))
	for i, a := range p.coefficients {
		q, err := a.Divide(c)
		if err != nil {
			zap.L().Debug("content does not divide coefficient",
				zap.Stringer("content", c), zap.Stringer("coefficient", a))
			return one, p
		}
		out[i] = Simplest(q)
	}
	return c, newPolynomial(p.variable, out)
}

func (p *Polynomial) normalized() *Polynomial {
	if p.lead().Signum() < 0 {
		return p.negate()
	}
	return p
}

// Gcd runs Euclid on primitive parts with pseudo-remainders, so it works
// over any coefficient domain with a gcd. The result has a positive leading
// coefficient.
func (p *Polynomial) Gcd(q *Polynomial) *Polynomial {
	switch {
	case p.IsZero():
		return q.normalized()
	case q.IsZero():
		return p.normalized()
	}
	cp, a := p.contentAndPrimitive()
	cq, b := q.contentAndPrimitive()
	c := Simplest(cp.Gcd(cq))
	if a.Degree() < b.Degree() {
		a, b = b, a
	}
	for !b.IsZero() {
		r := a.pseudoRemainder(b)
		a = b
		if r.IsZero() {
			break
		}
		_, b = r.contentAndPrimitive()
	}
	_, a = a.contentAndPrimitive()
	return a.shift(c, 0).normalized()
}

// Derivative is the formal derivative with respect to the polynomial
// variable.
func (p *Polynomial) Derivative() *Polynomial {
	if p.Degree() < 1 {
		return &Polynomial{variable: p.variable}
	}
	out := make([]Value, len(p.coefficients)-1)
	for k := 1; k < len(p.coefficients); k++ {
		out[k-1] = p.coefficients[k].Multiply(NewInteger(int64(k)))
	}
	return newPolynomial(p.variable, out)
}

// AntiDerivative integrates term by term with zero constant of
// integration. Coefficients divisible by k+1 stay integral.
func (p *Polynomial) AntiDerivative() *Polynomial {
	out := make([]Value, len(p.coefficients)+1)
	out[0] = zero
	for k, c := range p.coefficients {
		n := NewInteger(int64(k + 1))
		if q, err := c.Divide(n); err == nil {
			out[k+1] = Simplest(q)
			continue
		}
		inv, _ := NewRational(1, int64(k+1))
		out[k+1] = c.Multiply(inv)
	}
	return newPolynomial(p.variable, out)
}

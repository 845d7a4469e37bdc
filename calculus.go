package goalgebra

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the number of distinct variables from which
// per-variable work is spread over goroutines.
const parallelThreshold = 8

// forEach runs fn for 0..n-1, concurrently once n reaches
// parallelThreshold. It returns the first error.
func forEach(n int, fn func(i int) error) error {
	if n < parallelThreshold {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}

// forAll is forEach for work that cannot fail.
func forAll(n int, fn func(i int)) {
	if n < parallelThreshold {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() {
				<-sem
				wg.Done()
			}()
			fn(i)
		}()
	}
	wg.Wait()
}

// ============================================================
// Derivative
// ============================================================

// Derivative sums, over every variable u of e that depends on v, the
// formal partial derivative in u times du/dv.
func (e *Expression) Derivative(v Variable) Value {
	vars := e.Variables()
	parts := make([]Value, len(vars))
	forAll(len(vars), func(i int) {
		u := vars[i]
		if u.IsConstant(v) {
			parts[i] = zero
			return
		}
		parts[i] = PolynomialOf(e, u).Derivative().Value().Multiply(u.Derivative(v))
	})
	return Simplest(Sum(parts...))
}

// Gradient returns the partial derivatives of e in the order of vars.
func Gradient(e Value, vars []Variable) []Value {
	out := make([]Value, len(vars))
	for i, v := range vars {
		out[i] = e.Derivative(v)
	}
	return out
}

// Laplacian returns the sum of the second partial derivatives.
func Laplacian(e Value, vars []Variable) Value {
	var result Value = zero
	for _, v := range vars {
		result = result.Add(e.Derivative(v).Derivative(v))
	}
	return Simplest(result)
}

// ============================================================
// AntiDerivative
// ============================================================

// AntiDerivative tries, in order: polynomial integration in v, the
// antiderivative of e seen as a single variable (with constant
// denominators pulled out of fractions), term by term integration, and
// pulling the factors constant in v out of a single term. It fails with
// ErrNotIntegrable when none applies.
func (e *Expression) AntiDerivative(v Variable) (Value, error) {
	if e.IsPolynomial(v) {
		return PolynomialOf(e, v).AntiDerivative().Value(), nil
	}
	if u, err := e.VariableValue(); err == nil {
		r, err := u.AntiDerivative(v)
		if err == nil {
			return Simplest(r), nil
		}
		zap.L().Debug("variable has no antiderivative", zap.Stringer("variable", u), zap.Error(err))
		if f, ok := u.(*Fraction); ok && f.den.IsConstant(v) {
			a, err := f.num.AntiDerivative(v)
			if err != nil {
				return nil, err
			}
			return Simplest(reciprocal(f.den).Multiply(a)), nil
		}
		return nil, newError(ErrNotIntegrable, "antiderivative", e)
	}
	terms := e.SumValue()
	if len(terms) > 1 {
		var result Value = zero
		for _, t := range terms {
			a, err := t.AntiDerivative(v)
			if err != nil {
				return nil, err
			}
			result = result.Add(a)
		}
		return Simplest(result), nil
	}
	factors, err := e.ProductValue()
	if err != nil {
		return nil, err
	}
	var constant, rest Value = one, one
	for _, f := range factors {
		if f.IsConstant(v) {
			constant = constant.Multiply(f)
		} else {
			rest = rest.Multiply(f)
		}
	}
	if !Equal(constant, one) {
		a, err := rest.AntiDerivative(v)
		if err == nil {
			return Simplest(constant.Multiply(a)), nil
		}
		zap.L().Debug("no antiderivative after removing constant factor",
			zap.Stringer("constant", constant), zap.Stringer("rest", rest), zap.Error(err))
	}
	return nil, newError(ErrNotIntegrable, "antiderivative", e)
}

// ============================================================
// Substitution and evaluation
// ============================================================

// Substitute replaces v by value in every variable of e and rebuilds the
// sum of products.
func (e *Expression) Substitute(v Variable, value Value) (Value, error) {
	vars := e.Variables()
	values := make([]Value, len(vars))
	err := forEach(len(vars), func(i int) error {
		s, err := vars[i].Substitute(v, value)
		values[i] = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return e.evaluate(vars, values), nil
}

// Numeric evaluates every variable that has a numeric value. Symbols
// without one stay symbolic, so the result is a Numeric only when e is
// fully evaluable.
func (e *Expression) Numeric() Value {
	if i, err := e.IntegerValue(); err == nil {
		return i.Numeric()
	}
	vars := e.Variables()
	values := make([]Value, len(vars))
	for i, u := range vars {
		values[i] = u.Numeric()
	}
	return e.evaluate(vars, values)
}

// evaluate computes sum(c * prod(values[u]^k)) where vars is the sorted
// variable list of e and values holds the replacement for each.
func (e *Expression) evaluate(vars []Variable, values []Value) Value {
	var result Value = zero
	for _, s := range e.summands {
		var term Value = s.coefficient
		j := 0
		for _, p := range s.literal.productands {
			for vars[j].Compare(p.variable) < 0 {
				j++
			}
			term = term.Multiply(Pow(values[j], p.exponent))
		}
		result = result.Add(term)
	}
	return Simplest(result)
}

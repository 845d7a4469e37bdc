package goalgebra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/goalgebra"
)

// ============================================================
// Polynomial tests
// ============================================================

func TestPolynomialOf(t *testing.T) {
	p := goalgebra.PolynomialOf(poly(x, 1, 2, 3).Expression(), x)
	assert.Equal(t, 2, p.Degree())
	assert.Equal(t, "1", p.Coefficient(0).String())
	assert.Equal(t, "2", p.Coefficient(1).String())
	assert.Equal(t, "3", p.Coefficient(2).String())
	assert.Equal(t, "0", p.Coefficient(5).String())
	assert.True(t, p.Variable().IsIdentity(x))
	assert.Equal(t, "3*x^2+2*x+1", p.String())
}

func TestPolynomialOf_Multivariate(t *testing.T) {
	xv, yv := x.Value(), y.Value()
	e := xv.Multiply(yv).Add(xv).Add(goalgebra.Pow(yv, 2))

	p := goalgebra.PolynomialOf(e.Expression(), y)
	require.Equal(t, 2, p.Degree())
	assert.Equal(t, "x", p.Coefficient(0).String())
	assert.Equal(t, "x", p.Coefficient(1).String())
	assert.Equal(t, "1", p.Coefficient(2).String())
	assertEqual(t, e, p.Value())

	p = goalgebra.PolynomialOf(e.Expression(), z)
	assert.Equal(t, 0, p.Degree())
	assertEqual(t, e, p.Coefficient(0))
}

func TestPolynomial_Calculus(t *testing.T) {
	p := goalgebra.PolynomialOf(poly(x, 1, 2, 3).Expression(), x)
	assert.Equal(t, "6*x+2", p.Derivative().String())
	assert.Equal(t, "x^3+x^2+x", p.AntiDerivative().String())
	assertEqual(t, p.Value(), p.AntiDerivative().Derivative().Value())

	lin := goalgebra.PolynomialOf(x.Value().Expression(), x)
	assertEqual(t, goalgebra.Pow(x.Value(), 2).Multiply(q(t, 1, 2)), lin.AntiDerivative().Value())

	c := goalgebra.PolynomialOf(goalgebra.NewInteger(7).Expression(), x)
	assert.True(t, c.Derivative().IsZero())
}

func TestPolynomial_DivideAndRemainder(t *testing.T) {
	p := goalgebra.PolynomialOf(poly(x, -1, 0, 1).Expression(), x)
	d := goalgebra.PolynomialOf(poly(x, -1, 1).Expression(), x)
	quo, rem, err := p.DivideAndRemainder(d)
	require.NoError(t, err)
	assert.Equal(t, "x+1", quo.String())
	assert.True(t, rem.IsZero())

	p = goalgebra.PolynomialOf(poly(x, 1, 0, 1).Expression(), x)
	quo, rem, err = p.DivideAndRemainder(d)
	require.NoError(t, err)
	assert.Equal(t, "x+1", quo.String())
	assert.Equal(t, "2", rem.String())

	zero := goalgebra.PolynomialOf(goalgebra.Zero().Expression(), x)
	_, _, err = p.DivideAndRemainder(zero)
	assert.ErrorIs(t, err, goalgebra.ErrArithmeticDegenerate)
}

func TestPolynomial_Gcd(t *testing.T) {
	p := goalgebra.PolynomialOf(poly(x, 6, -5, 1).Expression(), x) // (x-2)(x-3)
	r := goalgebra.PolynomialOf(poly(x, -4, 0, 1).Expression(), x) // (x-2)(x+2)
	assert.Equal(t, "x-2", p.Gcd(r).String())
	assert.Equal(t, "x-2", r.Gcd(p).String())

	neg := goalgebra.PolynomialOf(poly(x, 2, -1).Expression(), x)
	zero := goalgebra.PolynomialOf(goalgebra.Zero().Expression(), x)
	assert.Equal(t, "x-2", neg.Gcd(zero).String())
}

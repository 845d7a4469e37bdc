package goalgebra_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/goalgebra"
)

// ============================================================
// Derivative tests
// ============================================================

func TestDerivative_Polynomial(t *testing.T) {
	xv, yv := x.Value(), y.Value()
	tests := []struct {
		name string
		v    goalgebra.Value
		by   goalgebra.Variable
		want string
	}{
		{"quadratic", poly(x, 4, -4, 1), x, "2*x-4"},
		{"other variable", goalgebra.Pow(xv, 2), y, "0"},
		{"constant", n(5), x, "0"},
		{"mixed in x", goalgebra.Pow(xv, 2).Multiply(goalgebra.Pow(yv, 3)), x, "2*x*y^3"},
		{"mixed in y", goalgebra.Pow(xv, 2).Multiply(goalgebra.Pow(yv, 3)), y, "3*x^2*y^2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Derivative(tt.by).String())
		})
	}
}

func TestDerivative_Functions(t *testing.T) {
	xv := x.Value()
	two := n(2).Multiply(xv)
	tests := []struct {
		name string
		v    goalgebra.Value
		want goalgebra.Value
	}{
		{"sin", goalgebra.Sin(xv), goalgebra.Cos(xv)},
		{"cos", goalgebra.Cos(xv), goalgebra.Sin(xv).Negate()},
		{"exp chain rule", goalgebra.Exp(two), n(2).Multiply(goalgebra.Exp(two))},
		{"ln", goalgebra.Ln(xv), goalgebra.NewInverse(xv).Value()},
		{"inverse", goalgebra.NewInverse(xv).Value(), goalgebra.NewInverse(goalgebra.Pow(xv, 2)).Value().Negate()},
		{"sin squared", goalgebra.Pow(goalgebra.Sin(xv), 2), n(2).Multiply(goalgebra.Sin(xv)).Multiply(goalgebra.Cos(xv))},
		{"product rule", xv.Multiply(goalgebra.Exp(xv)), goalgebra.Exp(xv).Add(xv.Multiply(goalgebra.Exp(xv)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, tt.want, tt.v.Derivative(x))
		})
	}
	assert.Equal(t, "cos(x)", goalgebra.Sin(xv).Derivative(x).String())
	assert.Equal(t, "-sin(x)", goalgebra.Cos(xv).Derivative(x).String())
}

func TestGradient(t *testing.T) {
	xv, yv := x.Value(), y.Value()
	e := goalgebra.Pow(xv, 2).Multiply(yv).Add(yv)
	grad := goalgebra.Gradient(e, []goalgebra.Variable{x, y})
	require.Len(t, grad, 2)
	assert.Equal(t, "2*x*y", grad[0].String())
	assert.Equal(t, "x^2+1", grad[1].String())

	lap := goalgebra.Laplacian(goalgebra.Pow(xv, 2).Add(goalgebra.Pow(yv, 2)), []goalgebra.Variable{x, y})
	assert.Equal(t, "4", lap.String())
}

func TestDerivative_ManyVariables(t *testing.T) {
	syms := make([]goalgebra.Variable, 12)
	var e goalgebra.Value = goalgebra.Zero()
	for i := range syms {
		s := goalgebra.NewSymbol(fmt.Sprintf("a%02d", i))
		syms[i] = s
		e = e.Add(goalgebra.Pow(s.Value(), 2))
	}
	d := e.Derivative(syms[3])
	assert.Equal(t, "2*a03", d.String())

	sub, err := e.Substitute(syms[0], n(3))
	require.NoError(t, err)
	assertEqual(t, e.Subtract(goalgebra.Pow(syms[0].Value(), 2)).Add(n(9)), sub)

	assert.Equal(t, "24", goalgebra.Laplacian(e, syms).String())
}

// ============================================================
// AntiDerivative tests
// ============================================================

func TestAntiDerivative(t *testing.T) {
	xv, yv := x.Value(), y.Value()
	two := n(2).Multiply(xv)
	tests := []struct {
		name string
		v    goalgebra.Value
		want goalgebra.Value
	}{
		{"power", n(3).Multiply(goalgebra.Pow(xv, 2)), goalgebra.Pow(xv, 3)},
		{"identity", xv, goalgebra.Pow(xv, 2).Multiply(q(t, 1, 2))},
		{"constant in x", yv, xv.Multiply(yv)},
		{"integer", n(4), n(4).Multiply(xv)},
		{"term by term", goalgebra.Sin(xv).Add(goalgebra.Exp(xv)), goalgebra.Exp(xv).Subtract(goalgebra.Cos(xv))},
		{"constant factor", n(2).Multiply(goalgebra.Sin(xv)), n(-2).Multiply(goalgebra.Cos(xv))},
		{"linear argument", goalgebra.Sin(two), goalgebra.Cos(two).Negate().Multiply(q(t, 1, 2))},
		{"ln", goalgebra.Ln(xv), xv.Multiply(goalgebra.Ln(xv)).Subtract(xv)},
		{"symbolic factor", yv.Multiply(goalgebra.Cos(xv)), yv.Multiply(goalgebra.Sin(xv))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.AntiDerivative(x)
			require.NoError(t, err)
			assertEqual(t, tt.want, got)
		})
	}
}

func TestAntiDerivative_ConstantDenominator(t *testing.T) {
	f, err := goalgebra.FractionOf(goalgebra.Sin(x.Value()), y.Value())
	require.NoError(t, err)
	_, ok := f.Expression().Variables()[0].(*goalgebra.Fraction)
	require.True(t, ok, "want a fraction atom, got %s", f)

	got, err := f.AntiDerivative(x)
	require.NoError(t, err)
	want := goalgebra.NewInverse(y.Value()).Value().Multiply(goalgebra.Cos(x.Value())).Negate()
	assertEqual(t, want, got)
}

func TestAntiDerivative_NotIntegrable(t *testing.T) {
	xv := x.Value()
	for _, v := range []goalgebra.Value{
		xv.Multiply(goalgebra.Sin(xv)),
		goalgebra.NewInverse(xv).Value(),
		goalgebra.Sin(goalgebra.Pow(xv, 2)),
	} {
		_, err := v.AntiDerivative(x)
		require.Error(t, err, "%s", v)
		assert.ErrorIs(t, err, goalgebra.ErrNotIntegrable)
		assert.Equal(t, "not_integrable", goalgebra.ErrorKind(err))
	}
}

func TestAntiDerivative_FundamentalTheorem(t *testing.T) {
	xv, yv := x.Value(), y.Value()
	for _, p := range []goalgebra.Value{
		poly(x, 1, 2, 3),
		n(3).Multiply(goalgebra.Pow(xv, 2)).Add(n(2).Multiply(xv).Multiply(yv)).Add(n(1)),
		poly(x, 0, 1),
		poly(x, 5, 0, 0, 7),
	} {
		a, err := p.AntiDerivative(x)
		require.NoError(t, err)
		assertEqual(t, p, a.Derivative(x))
	}
}

// ============================================================
// Substitution and evaluation tests
// ============================================================

func TestSubstitute(t *testing.T) {
	xv, yv := x.Value(), y.Value()

	got, err := goalgebra.Pow(xv, 2).Add(yv).Substitute(x, n(3))
	require.NoError(t, err)
	assertEqual(t, yv.Add(n(9)), got)

	got, err = goalgebra.Pow(xv, 2).Substitute(x, yv.Add(n(1)))
	require.NoError(t, err)
	assert.Equal(t, "y^2+2*y+1", got.String())

	got, err = goalgebra.Sin(xv).Substitute(x, n(0))
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = goalgebra.NewInverse(xv).Value().Substitute(x, n(2))
	require.NoError(t, err)
	assert.Equal(t, goalgebra.KindRational, got.Kind())
	assert.Equal(t, "1/2", got.String())

	_, err = goalgebra.NewInverse(xv).Value().Substitute(x, n(0))
	assert.ErrorIs(t, err, goalgebra.ErrArithmeticDegenerate)

	got, err = n(7).Substitute(x, n(1))
	require.NoError(t, err)
	assert.Equal(t, "7", got.String())
}

func TestFunction_Folding(t *testing.T) {
	xv := x.Value()
	assertEqual(t, xv, goalgebra.Exp(goalgebra.Ln(xv)))
	assertEqual(t, xv, goalgebra.Ln(goalgebra.Exp(xv)))
	assertEqual(t, n(1), goalgebra.Cos(n(0)))
	assertEqual(t, n(0), goalgebra.Ln(n(1)))

	_, err := goalgebra.FunctionOf("tan", xv)
	assert.Error(t, err)
}

func TestNumeric_Evaluation(t *testing.T) {
	assert.InDelta(t, math.Pi, numeric(t, goalgebra.Pi.Value().Numeric()), 1e-15)
	assert.InDelta(t, math.E, numeric(t, goalgebra.Exp(n(1)).Numeric()), 1e-15)

	halfPi := goalgebra.Pi.Value().Multiply(q(t, 1, 2))
	assert.InDelta(t, 1.0, numeric(t, goalgebra.Sin(halfPi).Numeric()), 1e-15)

	mixed := x.Value().Add(goalgebra.Pi.Value()).Numeric()
	assert.Equal(t, goalgebra.KindExpression, mixed.Kind())

	assert.Equal(t, goalgebra.KindExpression, goalgebra.Ln(n(0)).Numeric().Kind())
	assert.Equal(t, goalgebra.KindNumeric, n(3).Numeric().Kind())
}

package goalgebra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/njchilds90/goalgebra"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	x = goalgebra.NewSymbol("x")
	y = goalgebra.NewSymbol("y")
	z = goalgebra.NewSymbol("z")
)

func n(i int64) goalgebra.Value { return goalgebra.NewInteger(i) }

func q(t *testing.T, num, den int64) *goalgebra.Rational {
	t.Helper()
	r, err := goalgebra.NewRational(num, den)
	require.NoError(t, err)
	return r
}

// poly builds sum(c[k] * v^k).
func poly(v *goalgebra.Constant, c ...int64) goalgebra.Value {
	var result goalgebra.Value = goalgebra.Zero()
	for k, ck := range c {
		result = result.Add(n(ck).Multiply(goalgebra.Pow(v.Value(), k)))
	}
	return result
}

func assertEqual(t *testing.T, want, got goalgebra.Value) {
	t.Helper()
	assert.Truef(t, goalgebra.Equal(want, got), "want %s, got %s", want, got)
}

package goalgebra_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/goalgebra"
)

// ============================================================
// MCP tool call tests
// ============================================================

// param encodes v the way a JSON client would send it.
func param(t *testing.T, v goalgebra.Value) map[string]interface{} {
	t.Helper()
	j, err := goalgebra.ToJSON(v)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(j), &m))
	return m
}

func call(tool string, params map[string]interface{}) goalgebra.ToolResponse {
	return goalgebra.HandleToolCall(goalgebra.ToolRequest{Tool: tool, Params: params})
}

func TestHandleToolCall_Arithmetic(t *testing.T) {
	xv := x.Value()
	tests := []struct {
		tool string
		a, b goalgebra.Value
		want string
	}{
		{"add", xv, xv, "2*x"},
		{"subtract", xv, xv, "0"},
		{"multiply", poly(x, 1, 1), poly(x, -1, 1), "x^2-1"},
		{"divide", poly(x, -1, 0, 1), poly(x, -1, 1), "x+1"},
		{"gcd", poly(x, -1, 0, 1), poly(x, 1, -2, 1), "x-1"},
		{"lcm", n(4), n(6), "12"},
		{"add", q(t, 1, 2), q(t, 1, 2), "1"},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			resp := call(tt.tool, map[string]interface{}{"a": param(t, tt.a), "b": param(t, tt.b)})
			require.Empty(t, resp.Error)
			assert.Equal(t, tt.want, resp.String)
		})
	}
}

func TestHandleToolCall_ErrorKinds(t *testing.T) {
	resp := call("divide", map[string]interface{}{"a": param(t, x.Value()), "b": param(t, y.Value())})
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, "not_divisible", resp.Kind)

	resp = call("divide", map[string]interface{}{"a": param(t, n(1)), "b": param(t, n(0))})
	assert.Equal(t, "arithmetic_degenerate", resp.Kind)

	resp = call("antiderivative", map[string]interface{}{
		"a":   param(t, x.Value().Multiply(goalgebra.Sin(x.Value()))),
		"var": "x",
	})
	assert.Equal(t, "not_integrable", resp.Kind)

	resp = call("add", map[string]interface{}{"a": param(t, n(1))})
	assert.Contains(t, resp.Error, "missing param: b")
	assert.Empty(t, resp.Kind)
}

func TestHandleToolCall_DivideAndRemainder(t *testing.T) {
	resp := call("divide_and_remainder", map[string]interface{}{"a": param(t, n(-42)), "b": param(t, n(9))})
	require.Empty(t, resp.Error)
	assert.Equal(t, `["-4","-6"]`, resp.String)
	results, ok := resp.Result.([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 2)
}

func TestHandleToolCall_Calculus(t *testing.T) {
	xv, yv := x.Value(), y.Value()
	resp := call("derivative", map[string]interface{}{"a": param(t, goalgebra.Pow(xv, 2)), "var": "x"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "2*x", resp.String)
	assert.Equal(t, "2 x", resp.LaTeX)

	resp = call("antiderivative", map[string]interface{}{"a": param(t, n(3).Multiply(goalgebra.Pow(xv, 2))), "var": "x"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x^3", resp.String)

	resp = call("substitute", map[string]interface{}{"a": param(t, poly(x, 1, 0, 1)), "var": "x", "value": param(t, n(3))})
	require.Empty(t, resp.Error)
	assert.Equal(t, "10", resp.String)

	e := goalgebra.Pow(xv, 2).Multiply(yv)
	resp = call("gradient", map[string]interface{}{"a": param(t, e), "vars": []interface{}{"x", "y"}})
	require.Empty(t, resp.Error)
	assert.Equal(t, `["2*x*y","x^2"]`, resp.String)

	resp = call("laplacian", map[string]interface{}{"a": param(t, e), "vars": []interface{}{"x", "y"}})
	require.Empty(t, resp.Error)
	assert.Equal(t, "2*y", resp.String)

	resp = call("derivative", map[string]interface{}{"a": param(t, xv), "var": ""})
	assert.NotEmpty(t, resp.Error)
}

func TestHandleToolCall_NamedConstantVariables(t *testing.T) {
	xe := x.Value().Multiply(goalgebra.E.Value())
	resp := call("gradient", map[string]interface{}{"a": param(t, xe), "vars": []interface{}{"x", "e"}})
	require.Empty(t, resp.Error)
	assert.Equal(t, `["e","x"]`, resp.String)

	resp = call("laplacian", map[string]interface{}{
		"a":    param(t, goalgebra.Pow(goalgebra.Pi.Value(), 2)),
		"vars": []interface{}{"pi"},
	})
	require.Empty(t, resp.Error)
	assert.Equal(t, "2", resp.String)
}

func TestHandleToolCall_ExponentLimit(t *testing.T) {
	base := param(t, poly(x, 1, 1))
	resp := call("pow", map[string]interface{}{"a": base, "n": float64(1 << 40)})
	assert.Contains(t, resp.Error, "exponent limit")

	tb := goalgebra.Toolbox{MaxExponent: 4}
	resp = tb.Handle(goalgebra.ToolRequest{Tool: "pow", Params: map[string]interface{}{"a": base, "n": float64(5)}})
	assert.Contains(t, resp.Error, "exponent limit 4")

	resp = tb.Handle(goalgebra.ToolRequest{Tool: "pow", Params: map[string]interface{}{"a": base, "n": float64(4)}})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x^4+4*x^3+6*x^2+4*x+1", resp.String)

	deep := map[string]interface{}{
		"type": "pow",
		"base": base,
		"exp":  map[string]interface{}{"type": "integer", "value": "5"},
	}
	resp = tb.Handle(goalgebra.ToolRequest{Tool: "negate", Params: map[string]interface{}{"a": deep}})
	assert.Contains(t, resp.Error, "out of range")
}

func TestHandleToolCall_NonFiniteNumeric(t *testing.T) {
	inf := map[string]interface{}{"type": "numeric", "value": "Inf"}
	var resp goalgebra.ToolResponse
	require.NotPanics(t, func() {
		resp = call("subtract", map[string]interface{}{"a": inf, "b": inf})
	})
	assert.Contains(t, resp.Error, "not finite")
}

func TestHandleToolCall_Unary(t *testing.T) {
	resp := call("inverse", map[string]interface{}{"a": param(t, n(4))})
	require.Empty(t, resp.Error)
	assert.Equal(t, "1/4", resp.String)

	resp = call("negate", map[string]interface{}{"a": param(t, x.Value())})
	assert.Equal(t, "-x", resp.String)

	resp = call("pow", map[string]interface{}{"a": param(t, poly(x, 1, 1)), "n": float64(2)})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x^2+2*x+1", resp.String)

	resp = call("pow", map[string]interface{}{"a": param(t, x.Value()), "n": float64(-1)})
	assert.NotEmpty(t, resp.Error)

	resp = call("content", map[string]interface{}{"a": param(t, poly(x, 4, -6))})
	require.Empty(t, resp.Error)
	assert.Equal(t, `["-2","3*x-2"]`, resp.String)

	resp = call("numeric", map[string]interface{}{"a": param(t, goalgebra.Pi.Value())})
	require.Empty(t, resp.Error)
	assert.True(t, strings.HasPrefix(resp.String, "3.14159265358979"), resp.String)

	resp = call("compare", map[string]interface{}{"a": param(t, x.Value()), "b": param(t, y.Value())})
	assert.Equal(t, -1, resp.Result)
}

func TestHandleToolCall_Renderers(t *testing.T) {
	alpha := goalgebra.NewSymbol("alpha").Value()
	resp := call("to_mathml", map[string]interface{}{"a": param(t, alpha)})
	require.Empty(t, resp.Error)
	assert.Contains(t, resp.Result, "<mi>α</mi>")

	tb := goalgebra.Toolbox{}
	resp = tb.Handle(goalgebra.ToolRequest{Tool: "to_mathml", Params: map[string]interface{}{"a": param(t, alpha)}})
	assert.Contains(t, resp.Result, "<mi>alpha</mi>")

	resp = call("to_latex", map[string]interface{}{"a": param(t, goalgebra.Pi.Value())})
	assert.Equal(t, `\pi`, resp.Result)

	resp = call("to_code", map[string]interface{}{"a": param(t, goalgebra.Sin(x.Value()))})
	assert.Equal(t, "math.Sin(x)", resp.Result)
}

func TestHandleToolCall_UnknownTool(t *testing.T) {
	resp := goalgebra.HandleToolCall(goalgebra.ToolRequest{Tool: "nonexistent", Params: map[string]interface{}{}})
	if resp.Error == "" {
		t.Error("expected error for unknown tool")
	}
}

func TestMCPToolSpec(t *testing.T) {
	spec := goalgebra.MCPToolSpec()
	if !strings.Contains(spec, "divide_and_remainder") {
		t.Error("MCP spec should contain 'divide_and_remainder'")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(spec), &m); err != nil {
		t.Errorf("MCP spec should be valid JSON: %v", err)
	}
	tools, ok := m["tools"].([]interface{})
	if !ok || len(tools) != 22 {
		t.Errorf("expected 22 tools, got %v", len(tools))
	}

	resp := call("mcp_spec", nil)
	if resp.Result != spec {
		t.Error("mcp_spec tool should return MCPToolSpec")
	}
}

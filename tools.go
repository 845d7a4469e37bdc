package goalgebra

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	// Kind names the arithmetic failure, e.g. "not_divisible".
	Kind string `json:"kind,omitempty"`
}

// Toolbox dispatches tool calls. Symbols maps identifier names to the
// characters used by to_mathml. MaxExponent bounds every power a call may
// expand, in parameters and in the pow tool; zero means MaxExponent.
type Toolbox struct {
	Symbols     map[string]string
	MaxExponent int
}

// HandleToolCall runs req with the default Greek symbol table.
func HandleToolCall(req ToolRequest) ToolResponse {
	return Toolbox{Symbols: GreekSymbols()}.Handle(req)
}

func failure(err error) ToolResponse {
	return ToolResponse{Error: err.Error(), Kind: ErrorKind(err)}
}

func (tb Toolbox) maxExponent() int {
	if tb.MaxExponent > 0 {
		return tb.MaxExponent
	}
	return MaxExponent
}

// variableNamed resolves the named constants before plain symbols.
func variableNamed(name string) Variable {
	if c, ok := ConstantNamed(name); ok {
		return c
	}
	return NewSymbol(name)
}

func (tb Toolbox) Handle(req ToolRequest) ToolResponse {
	maxExp := tb.maxExponent()
	getValue := func(key string) (Value, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return fromJSON(val, maxExp)
	}
	getPair := func() (Value, Value, error) {
		a, err := getValue("a")
		if err != nil {
			return nil, nil, err
		}
		b, err := getValue("b")
		if err != nil {
			return nil, nil, err
		}
		return a, b, nil
	}
	getVariable := func(key string) (Variable, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("param %s must be a non-empty string", key)
		}
		return variableNamed(s), nil
	}
	getVariables := func(key string) ([]Variable, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		out := make([]Variable, len(raw))
		for i, r := range raw {
			s, ok := r.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("param %s[%d] must be string", key, i)
			}
			out[i] = variableNamed(s)
		}
		return out, nil
	}
	getInt := func(key string) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		n, ok := v.(float64)
		if !ok || n != float64(int(n)) {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		return int(n), nil
	}
	respond := func(v Value) ToolResponse {
		return ToolResponse{Result: v.toJSON(), LaTeX: v.LaTeX(), String: v.String()}
	}
	respondAll := func(vs []Value) ToolResponse {
		results := make([]interface{}, len(vs))
		strs := make([]string, len(vs))
		for i, v := range vs {
			results[i] = v.toJSON()
			strs[i] = v.String()
		}
		b, _ := json.Marshal(strs)
		return ToolResponse{Result: results, String: string(b)}
	}
	unary := func(fn func(Value) (Value, error)) ToolResponse {
		a, err := getValue("a")
		if err != nil {
			return failure(err)
		}
		r, err := fn(a)
		if err != nil {
			return failure(err)
		}
		return respond(Simplest(r))
	}
	binary := func(fn func(a, b Value) (Value, error)) ToolResponse {
		a, b, err := getPair()
		if err != nil {
			return failure(err)
		}
		r, err := fn(a, b)
		if err != nil {
			return failure(err)
		}
		return respond(Simplest(r))
	}
	calculus := func(fn func(a Value, v Variable) (Value, error)) ToolResponse {
		a, err := getValue("a")
		if err != nil {
			return failure(err)
		}
		v, err := getVariable("var")
		if err != nil {
			return failure(err)
		}
		r, err := fn(a, v)
		if err != nil {
			return failure(err)
		}
		return respond(Simplest(r))
	}

	switch req.Tool {
	case "add":
		return binary(func(a, b Value) (Value, error) { return a.Add(b), nil })

	case "subtract":
		return binary(func(a, b Value) (Value, error) { return a.Subtract(b), nil })

	case "multiply":
		return binary(func(a, b Value) (Value, error) { return a.Multiply(b), nil })

	case "divide":
		return binary(func(a, b Value) (Value, error) { return a.Divide(b) })

	case "divide_and_remainder":
		a, b, err := getPair()
		if err != nil {
			return failure(err)
		}
		res, err := a.DivideAndRemainder(b)
		if err != nil {
			return failure(err)
		}
		return respondAll([]Value{Simplest(res.Quotient), Simplest(res.Remainder)})

	case "gcd":
		return binary(func(a, b Value) (Value, error) { return a.Gcd(b), nil })

	case "lcm":
		return binary(Lcm)

	case "negate":
		return unary(func(a Value) (Value, error) { return a.Negate(), nil })

	case "inverse":
		return unary(Inverse)

	case "pow":
		n, err := getInt("n")
		if err != nil {
			return failure(err)
		}
		if n < 0 {
			return ToolResponse{Error: "param n must be non-negative"}
		}
		if n > maxExp {
			return ToolResponse{Error: fmt.Sprintf("param n exceeds the exponent limit %d", maxExp)}
		}
		return unary(func(a Value) (Value, error) { return Pow(a, n), nil })

	case "content":
		a, err := getValue("a")
		if err != nil {
			return failure(err)
		}
		g, p := GcdAndNormalize(a)
		return respondAll([]Value{g, Simplest(p)})

	case "derivative":
		return calculus(func(a Value, v Variable) (Value, error) { return a.Derivative(v), nil })

	case "antiderivative":
		return calculus(func(a Value, v Variable) (Value, error) { return a.AntiDerivative(v) })

	case "substitute":
		value, err := getValue("value")
		if err != nil {
			return failure(err)
		}
		return calculus(func(a Value, v Variable) (Value, error) { return a.Substitute(v, value) })

	case "gradient":
		a, err := getValue("a")
		if err != nil {
			return failure(err)
		}
		vars, err := getVariables("vars")
		if err != nil {
			return failure(err)
		}
		return respondAll(Gradient(a, vars))

	case "laplacian":
		a, err := getValue("a")
		if err != nil {
			return failure(err)
		}
		vars, err := getVariables("vars")
		if err != nil {
			return failure(err)
		}
		return respond(Laplacian(a, vars))

	case "numeric":
		return unary(func(a Value) (Value, error) { return a.Numeric(), nil })

	case "compare":
		a, b, err := getPair()
		if err != nil {
			return failure(err)
		}
		c := Simplest(a).Compare(Simplest(b))
		return ToolResponse{Result: c, String: fmt.Sprintf("%d", c)}

	case "to_latex":
		a, err := getValue("a")
		if err != nil {
			return failure(err)
		}
		return ToolResponse{Result: a.LaTeX(), LaTeX: a.LaTeX(), String: a.String()}

	case "to_code":
		a, err := getValue("a")
		if err != nil {
			return failure(err)
		}
		return ToolResponse{Result: a.Code(), String: a.String()}

	case "to_mathml":
		a, err := getValue("a")
		if err != nil {
			return failure(err)
		}
		s, err := MathML(a, tb.Symbols)
		if err != nil {
			return failure(err)
		}
		return ToolResponse{Result: s, String: a.String()}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

func MCPToolSpec() string {
	pair := map[string]string{"a": "object", "b": "object"}
	single := map[string]string{"a": "object"}
	withVar := map[string]string{"a": "object", "var": "string"}
	withVars := map[string]string{"a": "object", "vars": "array"}
	tools := []map[string]interface{}{
		ts("add", "Sum a+b", []string{"a", "b"}, pair),
		ts("subtract", "Difference a-b", []string{"a", "b"}, pair),
		ts("multiply", "Product a*b", []string{"a", "b"}, pair),
		ts("divide", "Exact quotient a/b; fails with kind not_divisible when a remainder is left", []string{"a", "b"}, pair),
		ts("divide_and_remainder", "Quotient and remainder [q, r] with a = q*b + r", []string{"a", "b"}, pair),
		ts("gcd", "Greatest common divisor of integers, rationals or polynomials", []string{"a", "b"}, pair),
		ts("lcm", "Least common multiple a/gcd(a,b)*b", []string{"a", "b"}, pair),
		ts("negate", "Negation -a", []string{"a"}, single),
		ts("inverse", "Multiplicative inverse 1/a", []string{"a"}, single),
		ts("pow", "Power a^n for integer 0 <= n <= the server's exponent limit", []string{"a", "n"}, map[string]string{"a": "object", "n": "integer"}),
		ts("content", "Signed content and primitive part [c, p] with a = c*p", []string{"a"}, single),
		ts("derivative", "Derivative d/dvar", []string{"a", "var"}, withVar),
		ts("antiderivative", "Antiderivative with zero constant; fails with kind not_integrable", []string{"a", "var"}, withVar),
		ts("substitute", "Substitute var with value", []string{"a", "var", "value"}, map[string]string{"a": "object", "var": "string", "value": "object"}),
		ts("gradient", "Gradient vector. Requires vars (string[])", []string{"a", "vars"}, withVars),
		ts("laplacian", "Laplacian, the sum of second partials", []string{"a", "vars"}, withVars),
		ts("numeric", "Evaluate to a float where every symbol has a value", []string{"a"}, single),
		ts("compare", "Total order: -1, 0 or 1", []string{"a", "b"}, pair),
		ts("to_latex", "Convert to LaTeX", []string{"a"}, single),
		ts("to_code", "Convert to a Go expression", []string{"a"}, single),
		ts("to_mathml", "Convert to presentation MathML", []string{"a"}, single),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}

package goalgebra

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(v Value) (string, error) {
	b, err := json.Marshal(v.toJSON())
	return string(b), err
}

// JSONValue returns the JSON object form of v.
func JSONValue(v Value) map[string]interface{} { return v.toJSON() }

func (i *Integer) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "integer", "value": i.String()}
}

func (r *Rational) toJSON() map[string]interface{} {
	if r.isInteger() {
		return wrap(r.num).toJSON()
	}
	return map[string]interface{}{"type": "rational", "numerator": r.num.String(), "denominator": r.den.String()}
}

func (n *Numeric) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "numeric", "value": n.val.Text('g', 36)}
}

func (e *Expression) toJSON() map[string]interface{} {
	switch len(e.summands) {
	case 0:
		return zero.toJSON()
	case 1:
		return summandJSON(e.summands[0])
	}
	terms := make([]interface{}, len(e.summands))
	for i, s := range e.summands {
		terms[i] = summandJSON(s)
	}
	return map[string]interface{}{"type": "add", "terms": terms}
}

func summandJSON(s Summand) map[string]interface{} {
	factors := make([]interface{}, 0, s.literal.Size()+1)
	if !s.coefficient.IsOne() || s.literal.IsEmpty() {
		factors = append(factors, s.coefficient.toJSON())
	}
	for _, p := range s.literal.productands {
		if p.exponent == 1 {
			factors = append(factors, p.variable.toJSON())
			continue
		}
		factors = append(factors, map[string]interface{}{
			"type": "pow",
			"base": p.variable.toJSON(),
			"exp":  NewInteger(int64(p.exponent)).toJSON(),
		})
	}
	if len(factors) == 1 {
		return factors[0].(map[string]interface{})
	}
	return map[string]interface{}{"type": "mul", "factors": factors}
}

func (c *Constant) toJSON() map[string]interface{} {
	if c.value != nil {
		return map[string]interface{}{"type": "constant", "name": c.name}
	}
	return map[string]interface{}{"type": "symbol", "name": c.name}
}

func (f *Fraction) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "fraction", "numerator": f.num.toJSON(), "denominator": f.den.toJSON()}
}

func (f *Function) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}

func (n *NumericVariable) toJSON() map[string]interface{} { return n.value.toJSON() }

// ParseJSON decodes a JSON document into a value.
func ParseJSON(data []byte) (Value, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return FromJSON(m)
}

// MaxExponent bounds the exponents FromJSON expands.
const MaxExponent = 1024

// FromJSON builds a value from its JSON object form. Sums, products and
// powers are evaluated, so the result is always canonical. Powers beyond
// MaxExponent in absolute value are rejected.
func FromJSON(data map[string]interface{}) (Value, error) {
	return fromJSON(data, MaxExponent)
}

func fromJSON(data map[string]interface{}, maxExponent int) (Value, error) {
	if data == nil {
		return nil, fmt.Errorf("value must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (Value, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		val, err := fromJSON(m, maxExponent)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return val, nil
	}

	subObjArray := func(field string) ([]Value, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Value, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			val, err := fromJSON(m, maxExponent)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = val
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s, nil
			}
		case float64:
			return big.NewFloat(s).Text('g', -1), nil
		}
		return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
	}

	subInteger := func(field string) (*Integer, error) {
		s, err := subString(field)
		if err != nil {
			return nil, err
		}
		i, err := ParseInteger(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		return i, nil
	}

	switch typ {
	case "integer":
		return subInteger("value")

	case "rational":
		n, err := subInteger("numerator")
		if err != nil {
			return nil, err
		}
		d, err := subInteger("denominator")
		if err != nil {
			return nil, err
		}
		r, err := NewRationalBig(n.val, d.val)
		if err != nil {
			return nil, err
		}
		return Simplest(r), nil

	case "num":
		s, err := subString("value")
		if err != nil {
			return nil, err
		}
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, fmt.Errorf("invalid num value: %s", s)
		}
		return Simplest(reduce(r.Num(), r.Denom())), nil

	case "numeric":
		s, err := subString("value")
		if err != nil {
			return nil, err
		}
		return ParseNumeric(s)

	case "symbol", "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return NewSymbol(name).Value(), nil

	case "constant":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		c, ok := ConstantNamed(name)
		if !ok {
			return nil, fmt.Errorf("unknown constant: %s", name)
		}
		return c.Value(), nil

	case "fraction":
		num, err := subObj("numerator")
		if err != nil {
			return nil, err
		}
		den, err := subObj("denominator")
		if err != nil {
			return nil, err
		}
		return FractionOf(num, den)

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		arg, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		return FunctionOf(name, arg)

	case "add":
		terms, err := subObjArray("terms")
		if err != nil {
			return nil, err
		}
		return Simplest(Sum(terms...)), nil

	case "mul":
		factors, err := subObjArray("factors")
		if err != nil {
			return nil, err
		}
		return Simplest(Product(factors...)), nil

	case "pow":
		base, err := subObj("base")
		if err != nil {
			return nil, err
		}
		expV, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		exp, err := expV.IntegerValue()
		if err != nil {
			return nil, fmt.Errorf("pow: exponent must be an integer: %w", err)
		}
		k, ok := exp.Int()
		if !ok || k > maxExponent || k < -maxExponent {
			return nil, fmt.Errorf("pow: exponent %s out of range (limit %d)", exp, maxExponent)
		}
		if k >= 0 {
			return Simplest(Pow(base, k)), nil
		}
		return FractionOf(one, Pow(base, -k))
	}
	return nil, fmt.Errorf("unknown value type: %s", typ)
}

package goalgebra

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// ============================================================
// Text, LaTeX and Go source
// ============================================================

// parenthesize wraps v unless it renders as a single atom.
func parenthesize(v Value) string {
	s := v.String()
	switch x := v.(type) {
	case *Integer:
		if x.Signum() >= 0 {
			return s
		}
	case *Expression:
		if u, err := x.VariableValue(); err == nil {
			if _, ok := u.(*Fraction); !ok {
				return s
			}
		}
		if i, err := x.IntegerValue(); err == nil && i.Signum() >= 0 {
			return s
		}
	}
	return "(" + s + ")"
}

func (e *Expression) String() string {
	if len(e.summands) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, s := range e.summands {
		c := s.coefficient
		if c.Signum() > 0 && i > 0 {
			sb.WriteString("+")
		}
		switch {
		case s.literal.IsEmpty():
			sb.WriteString(c.String())
			continue
		case c.IsOne():
		case c.abs().IsOne():
			sb.WriteString("-")
		default:
			sb.WriteString(c.String())
			sb.WriteString("*")
		}
		sb.WriteString(s.literal.String())
	}
	return sb.String()
}

func (e *Expression) LaTeX() string {
	if len(e.summands) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, s := range e.summands {
		c := s.coefficient
		switch {
		case i == 0 && c.Signum() < 0:
			sb.WriteString("-")
		case i > 0 && c.Signum() < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		abs := c.abs()
		if s.literal.IsEmpty() {
			sb.WriteString(abs.LaTeX())
			continue
		}
		if !abs.IsOne() {
			sb.WriteString(abs.LaTeX())
			sb.WriteString(" ")
		}
		sb.WriteString(literalLaTeX(s.literal))
	}
	return sb.String()
}

func literalLaTeX(l *Literal) string {
	parts := make([]string, len(l.productands))
	for i, p := range l.productands {
		base := p.variable.LaTeX()
		if p.exponent == 1 {
			parts[i] = base
			continue
		}
		if _, ok := p.variable.(*Fraction); ok {
			base = "\\left(" + base + "\\right)"
		}
		parts[i] = base + "^{" + strconv.Itoa(p.exponent) + "}"
	}
	return strings.Join(parts, " ")
}

// Code renders e as a Go expression over float64 identifiers.
func (e *Expression) Code() string {
	if len(e.summands) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, s := range e.summands {
		c := s.coefficient
		switch {
		case i == 0 && c.Signum() < 0:
			sb.WriteString("-")
		case i > 0 && c.Signum() < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		abs := c.abs()
		factors := make([]string, 0, len(s.literal.productands)+1)
		if !abs.IsOne() || s.literal.IsEmpty() {
			factors = append(factors, abs.Code())
		}
		for _, p := range s.literal.productands {
			if p.exponent == 1 {
				factors = append(factors, p.variable.Code())
				continue
			}
			factors = append(factors, "math.Pow("+p.variable.Code()+", "+strconv.Itoa(p.exponent)+")")
		}
		sb.WriteString(strings.Join(factors, "*"))
	}
	return sb.String()
}

// ============================================================
// Markup — MathML presentation tree
// ============================================================

// Markup is a MathML presentation element. Leaves carry text; inner nodes
// carry children.
type Markup struct {
	XMLName  xml.Name
	Text     string `xml:",chardata"`
	Children []*Markup
}

func element(tag string, children ...*Markup) *Markup {
	return &Markup{XMLName: xml.Name{Local: tag}, Children: children}
}

func leaf(tag, text string) *Markup {
	return &Markup{XMLName: xml.Name{Local: tag}, Text: text}
}

func (m *Markup) Tag() string { return m.XMLName.Local }

func (m *Markup) append(children ...*Markup) { m.Children = append(m.Children, children...) }

// superscript raises base to exponent; exponent one leaves base as is.
func superscript(base *Markup, exponent int) *Markup {
	if exponent == 1 {
		return base
	}
	return element("msup", base, leaf("mn", strconv.Itoa(exponent)))
}

func fenced(inner *Markup) *Markup {
	return element("mrow", leaf("mo", "("), inner, leaf("mo", ")"))
}

// appendSigned writes a leading minus as an operator followed by |v|.
func appendSigned(parent *Markup, v Value) {
	if v.Signum() < 0 {
		parent.append(leaf("mo", "-"))
		v = v.Negate()
	}
	v.appendMarkup(parent, 1)
}

func (i *Integer) appendMarkup(parent *Markup, exponent int) {
	parent.append(superscript(leaf("mn", i.String()), exponent))
}

func (r *Rational) appendMarkup(parent *Markup, exponent int) {
	if r.isInteger() {
		wrap(r.num).appendMarkup(parent, exponent)
		return
	}
	frac := element("mfrac", leaf("mn", r.num.String()), leaf("mn", r.den.String()))
	if exponent != 1 {
		frac = fenced(frac)
	}
	parent.append(superscript(frac, exponent))
}

func (n *Numeric) appendMarkup(parent *Markup, exponent int) {
	parent.append(superscript(leaf("mn", n.String()), exponent))
}

func (e *Expression) appendMarkup(parent *Markup, exponent int) {
	row := element("mrow")
	if len(e.summands) == 0 {
		row.append(leaf("mn", "0"))
	}
	for i, s := range e.summands {
		c := s.coefficient
		if c.Signum() > 0 && i > 0 {
			row.append(leaf("mo", "+"))
		}
		switch {
		case s.literal.IsEmpty():
			appendSigned(row, c)
			continue
		case c.abs().IsOne():
			if c.Signum() < 0 {
				row.append(leaf("mo", "-"))
			}
		default:
			appendSigned(row, c)
		}
		for _, p := range s.literal.productands {
			p.variable.appendMarkup(row, p.exponent)
		}
	}
	if exponent == 1 {
		parent.append(row)
		return
	}
	parent.append(superscript(fenced(row), exponent))
}

func (c *Constant) appendMarkup(parent *Markup, exponent int) {
	parent.append(superscript(leaf("mi", c.name), exponent))
}

func (f *Fraction) appendMarkup(parent *Markup, exponent int) {
	frac := element("mfrac", MarkupOf(f.num), MarkupOf(f.den))
	if exponent != 1 {
		frac = fenced(frac)
	}
	parent.append(superscript(frac, exponent))
}

// Function powers render as sin^2(x).
func (f *Function) appendMarkup(parent *Markup, exponent int) {
	parent.append(superscript(leaf("mi", f.name), exponent), leaf("mo", "("), MarkupOf(f.arg), leaf("mo", ")"))
}

func (n *NumericVariable) appendMarkup(parent *Markup, exponent int) {
	n.value.appendMarkup(parent, exponent)
}

// GreekSymbols returns a fresh table from spelled-out Greek letter names to
// their Unicode characters.
func GreekSymbols() map[string]string {
	return map[string]string{
		"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
		"zeta": "ζ", "eta": "η", "theta": "θ", "iota": "ι", "kappa": "κ",
		"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "omicron": "ο",
		"pi": "π", "rho": "ρ", "sigma": "σ", "tau": "τ", "upsilon": "υ",
		"phi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
		"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
		"Pi": "Π", "Sigma": "Σ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",
	}
}

// MathML renders v as a math element. Identifier text found in symbols is
// replaced by its mapping; a nil table leaves names as they are.
func MathML(v Value, symbols map[string]string) (string, error) {
	root := element("math", MarkupOf(v))
	if len(symbols) > 0 {
		rename(root, symbols)
	}
	b, err := xml.Marshal(root)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func rename(m *Markup, symbols map[string]string) {
	if m.Tag() == "mi" {
		if s, ok := symbols[m.Text]; ok {
			m.Text = s
		}
	}
	for _, c := range m.Children {
		rename(c, symbols)
	}
}

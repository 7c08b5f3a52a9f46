package selector

import (
	"fmt"
	"strings"

	htmlerrors "github.com/MeKo-Christian/GoWebCore/errors"
)

// Parse parses a comma-separated selector list.
// Selectors that cannot be parsed yield a SelectorError; the caller
// typically drops the offending rule and continues.
func Parse(input string) (List, error) {
	var list List
	for _, part := range splitTopLevel(input, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		complexSel, err := parseComplex(part)
		if err != nil {
			return nil, err
		}
		list = append(list, complexSel)
	}
	return list, nil
}

// MustParse parses a selector list, returning nil on error.
// Used for internal, known-good selectors.
func MustParse(input string) List {
	list, err := Parse(input)
	if err != nil {
		return nil
	}
	return list
}

// splitTopLevel splits on sep at bracket/paren/quote depth zero.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

type selParser struct {
	input string
	pos   int
}

func parseComplex(input string) (Complex, error) {
	p := &selParser{input: input}
	c := Complex{Source: input}

	for {
		p.skipSpace()
		compound, err := p.parseCompound()
		if err != nil {
			return Complex{}, err
		}
		c.Compounds = append(c.Compounds, compound)

		comb, more := p.parseCombinator()
		if !more {
			break
		}
		c.Combinators = append(c.Combinators, comb)
	}

	if len(c.Compounds) == 0 {
		return Complex{}, &htmlerrors.SelectorError{Selector: input, Position: 0, Message: "empty selector"}
	}
	return c, nil
}

func (p *selParser) skipSpace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// parseCombinator consumes whitespace and an optional explicit combinator.
// Returns false when the input is exhausted.
func (p *selParser) parseCombinator() (byte, bool) {
	sawSpace := false
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		sawSpace = true
		p.pos++
	}
	if p.pos >= len(p.input) {
		return 0, false
	}
	switch p.input[p.pos] {
	case '>', '+', '~':
		comb := p.input[p.pos]
		p.pos++
		p.skipSpace()
		return comb, true
	}
	if sawSpace {
		return CombinatorDescendant, true
	}
	return 0, false
}

func (p *selParser) parseCompound() (Compound, error) {
	var compound Compound
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == '*':
			p.pos++
			compound.Parts = append(compound.Parts, Simple{Kind: KindUniversal})
		case c == '#':
			p.pos++
			name := p.parseIdent()
			if name == "" {
				return Compound{}, p.errorf("expected id after '#'")
			}
			compound.Parts = append(compound.Parts, Simple{Kind: KindID, Name: name})
		case c == '.':
			p.pos++
			name := p.parseIdent()
			if name == "" {
				return Compound{}, p.errorf("expected class after '.'")
			}
			compound.Parts = append(compound.Parts, Simple{Kind: KindClass, Name: name})
		case c == '[':
			attr, err := p.parseAttr()
			if err != nil {
				return Compound{}, err
			}
			compound.Parts = append(compound.Parts, attr)
		case c == ':':
			pseudo, err := p.parsePseudo()
			if err != nil {
				return Compound{}, err
			}
			compound.Parts = append(compound.Parts, pseudo)
		case isIdentStart(c):
			name := strings.ToLower(p.parseIdent())
			compound.Parts = append(compound.Parts, Simple{Kind: KindTag, Name: name})
		default:
			// Combinator or unknown: end of this compound.
			if len(compound.Parts) == 0 {
				return Compound{}, p.errorf("unexpected character %q", c)
			}
			return compound, nil
		}

		if p.pos < len(p.input) {
			next := p.input[p.pos]
			if isSpace(next) || next == '>' || next == '+' || next == '~' || next == ',' {
				break
			}
		}
	}
	if len(compound.Parts) == 0 {
		return Compound{}, p.errorf("empty compound selector")
	}
	return compound, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (p *selParser) parseIdent() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *selParser) parseAttr() (Simple, error) {
	// Consume '['.
	p.pos++
	p.skipSpace()
	name := strings.ToLower(p.parseIdent())
	if name == "" {
		return Simple{}, p.errorf("expected attribute name")
	}
	p.skipSpace()

	s := Simple{Kind: KindAttr, Name: name}
	if p.pos < len(p.input) && p.input[p.pos] == ']' {
		p.pos++
		return s, nil
	}

	// Operator.
	for _, op := range []string{"~=", "|=", "^=", "$=", "*=", "="} {
		if strings.HasPrefix(p.input[p.pos:], op) {
			s.Op = op
			p.pos += len(op)
			break
		}
	}
	if s.Op == "" {
		return Simple{}, p.errorf("expected attribute operator")
	}
	p.skipSpace()

	// Value: quoted or bare.
	if p.pos < len(p.input) && (p.input[p.pos] == '"' || p.input[p.pos] == '\'') {
		quote := p.input[p.pos]
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != quote {
			p.pos++
		}
		s.Value = p.input[start:p.pos]
		if p.pos < len(p.input) {
			p.pos++
		}
	} else {
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != ']' && !isSpace(p.input[p.pos]) {
			p.pos++
		}
		s.Value = p.input[start:p.pos]
	}
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == ']' {
		p.pos++
	}
	return s, nil
}

func (p *selParser) parsePseudo() (Simple, error) {
	// Consume ':'.
	p.pos++
	kind := KindPseudoClass
	if p.pos < len(p.input) && p.input[p.pos] == ':' {
		p.pos++
		kind = KindPseudoElement
	}
	name := strings.ToLower(p.parseIdent())
	if name == "" {
		return Simple{}, p.errorf("expected pseudo name")
	}

	// Single-colon legacy pseudo-elements.
	if kind == KindPseudoClass {
		switch name {
		case "before", "after", "first-line", "first-letter":
			kind = KindPseudoElement
		}
	}

	s := Simple{Kind: kind, Name: name}
	if p.pos < len(p.input) && p.input[p.pos] == '(' {
		depth := 1
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && depth > 0 {
			switch p.input[p.pos] {
			case '(':
				depth++
			case ')':
				depth--
			}
			p.pos++
		}
		arg := p.input[start : p.pos-1]
		switch name {
		case "not", "is", "where", "has":
			inner, err := Parse(arg)
			if err != nil {
				return Simple{}, err
			}
			s.Args = inner
		default:
			s.ArgText = strings.TrimSpace(arg)
		}
	}
	return s, nil
}

func (p *selParser) errorf(format string, args ...any) error {
	return &htmlerrors.SelectorError{
		Selector: p.input,
		Position: p.pos,
		Message:  fmt.Sprintf(format, args...),
	}
}

package cssparser

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	htmlerrors "github.com/MeKo-Christian/GoWebCore/errors"
	"github.com/MeKo-Christian/GoWebCore/selector"
)

// token is one lexed CSS token with its source text.
type token struct {
	tt   css.TokenType
	text string
}

// lex runs the tdewolff CSS lexer over the input. Comments are replaced
// with single spaces so adjacent tokens stay separated.
func lex(input string) []token {
	lexer := css.NewLexer(parse.NewInputString(input))
	var out []token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			return out
		}
		if tt == css.CommentToken {
			out = append(out, token{css.WhitespaceToken, " "})
			continue
		}
		out = append(out, token{tt, string(data)})
	}
}

func text(toks []token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.text)
	}
	return sb.String()
}

type parser struct {
	toks  []token
	pos   int
	sheet *Stylesheet
	order int
}

func (p *parser) done() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) cur() token {
	return p.toks[p.pos]
}

// readPrelude collects tokens until a '{' or ';' at nesting depth zero.
// The terminator is consumed; 0 is returned at end of input.
func (p *parser) readPrelude() ([]token, byte) {
	var prelude []token
	depth := 0
	for !p.done() {
		t := p.cur()
		switch t.tt {
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.LeftBraceToken:
			if depth == 0 {
				p.pos++
				return prelude, '{'
			}
		case css.SemicolonToken:
			if depth == 0 {
				p.pos++
				return prelude, ';'
			}
		case css.RightBraceToken:
			if depth == 0 {
				// Stray close brace ends the prelude; the caller skips it.
				return prelude, 0
			}
		}
		prelude = append(prelude, t)
		p.pos++
	}
	return prelude, 0
}

// readBlock collects tokens until the matching '}' of an already-consumed
// '{'. The closing brace is consumed.
func (p *parser) readBlock() []token {
	var block []token
	depth := 0
	for !p.done() {
		t := p.cur()
		switch t.tt {
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			if depth == 0 {
				p.pos++
				return block
			}
			depth--
		}
		block = append(block, t)
		p.pos++
	}
	return block
}

// parseRules parses a rule sequence (a stylesheet or an at-rule body).
func (p *parser) parseRules(layer int) []Rule {
	var rules []Rule
	for !p.done() {
		t := p.cur()
		switch t.tt {
		case css.WhitespaceToken, css.SemicolonToken, css.CDOToken, css.CDCToken:
			p.pos++
			continue
		case css.RightBraceToken:
			// Stray close brace: recover by skipping it.
			p.addError("unbalanced-block")
			p.pos++
			continue
		case css.AtKeywordToken:
			p.pos++
			if r := p.parseAtRule(strings.ToLower(strings.TrimPrefix(t.text, "@")), layer); r != nil {
				rules = append(rules, r...)
			}
			continue
		}

		prelude, term := p.readPrelude()
		if term != '{' {
			if strings.TrimSpace(text(prelude)) != "" {
				p.addError("unparsable-declaration")
			}
			continue
		}
		block := p.readBlock()
		rules = append(rules, p.parseStyleRule(strings.TrimSpace(text(prelude)), block, layer, "")...)
	}
	return rules
}

//nolint:gocyclo // at-rule dispatch
func (p *parser) parseAtRule(name string, layer int) []Rule {
	prelude, term := p.readPrelude()
	preludeText := strings.TrimSpace(text(prelude))

	switch name {
	case "charset", "namespace":
		if term == '{' {
			p.readBlock()
		}
		return nil

	case "import":
		if term == '{' {
			p.readBlock()
			return nil
		}
		href := parseImportHref(prelude)
		if href == "" {
			return nil
		}
		p.sheet.Imports = append(p.sheet.Imports, href)
		return []Rule{&ImportRule{Href: href}}

	case "media":
		if term != '{' {
			return nil
		}
		body := p.subParser(p.readBlock())
		return []Rule{&MediaRule{Condition: preludeText, Rules: body.parseRules(layer)}}

	case "supports":
		if term != '{' {
			return nil
		}
		body := p.subParser(p.readBlock())
		return []Rule{&SupportsRule{Condition: preludeText, Rules: body.parseRules(layer)}}

	case "container":
		if term != '{' {
			return nil
		}
		ctrName, cond := splitContainerPrelude(preludeText)
		body := p.subParser(p.readBlock())
		return []Rule{&ContainerRule{Name: ctrName, Condition: cond, Rules: body.parseRules(layer)}}

	case "keyframes", "-webkit-keyframes", "-moz-keyframes":
		if term != '{' {
			return nil
		}
		return []Rule{p.parseKeyframes(preludeText, p.readBlock())}

	case "font-face":
		if term != '{' {
			return nil
		}
		return []Rule{&FontFaceRule{Descriptors: p.parseDeclarations(p.readBlock())}}

	case "layer":
		if term == ';' || term == 0 {
			var names []string
			for _, n := range strings.Split(preludeText, ",") {
				n = strings.TrimSpace(n)
				if n != "" {
					p.sheet.registerLayer(n)
					names = append(names, n)
				}
			}
			if len(names) == 0 {
				return nil
			}
			return []Rule{&LayerStatement{Names: names}}
		}
		idx := p.sheet.registerLayer(preludeText)
		body := p.subParser(p.readBlock())
		return body.parseRules(idx)

	default:
		p.addError("unknown-at-rule")
		if term == '{' {
			p.readBlock()
		}
		return nil
	}
}

func (p *parser) subParser(toks []token) *parser {
	sub := &parser{toks: toks, sheet: p.sheet, order: p.order}
	// Source order continues through nested bodies; the stylesheet
	// renumbers after the full parse, so local order is advisory.
	return sub
}

// parseStyleRule parses a selector prelude and declaration block,
// flattening any nested rules after their parent.
func (p *parser) parseStyleRule(selText string, block []token, layer int, parentSel string) []Rule {
	if parentSel != "" {
		selText = combineNested(parentSel, selText)
	}

	list, err := selector.Parse(selText)
	if err != nil || len(list) == 0 {
		p.addError("invalid-selector")
		return nil
	}

	decls, nested := p.splitBlock(block)
	rule := &StyleRule{
		Selectors:    list,
		SelectorText: selText,
		Declarations: p.finishDeclarations(decls),
		LayerIndex:   layer,
		SourceOrder:  p.order,
	}
	p.order++

	out := []Rule{rule}
	for _, n := range nested {
		out = append(out, p.parseStyleRule(n.selText, n.block, layer, selText)...)
	}
	return out
}

type nestedRule struct {
	selText string
	block   []token
}

// splitBlock separates a declaration block into declaration segments and
// nested style rules.
func (p *parser) splitBlock(block []token) ([][]token, []nestedRule) {
	var segments [][]token
	var nested []nestedRule
	var seg []token
	depth := 0

	for i := 0; i < len(block); i++ {
		t := block[i]
		switch t.tt {
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.SemicolonToken:
			if depth == 0 {
				segments = append(segments, seg)
				seg = nil
				continue
			}
		case css.LeftBraceToken:
			if depth == 0 {
				// Nested rule: seg is its selector, the block follows.
				inner, consumed := balancedBlock(block[i+1:])
				nested = append(nested, nestedRule{
					selText: strings.TrimSpace(text(seg)),
					block:   inner,
				})
				seg = nil
				i += consumed
				continue
			}
		}
		seg = append(seg, t)
	}
	if len(seg) > 0 {
		segments = append(segments, seg)
	}
	return segments, nested
}

// balancedBlock returns the tokens up to the matching '}' and the number
// of tokens consumed including that brace.
func balancedBlock(toks []token) ([]token, int) {
	depth := 0
	for i, t := range toks {
		switch t.tt {
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			if depth == 0 {
				return toks[:i], i + 1
			}
			depth--
		}
	}
	return toks, len(toks)
}

// finishDeclarations parses segments into declarations and mirrors
// vendor-prefixed properties onto their standard names.
func (p *parser) finishDeclarations(segments [][]token) []Declaration {
	var decls []Declaration
	for _, seg := range segments {
		d, ok := p.parseDeclaration(seg)
		if !ok {
			continue
		}
		decls = append(decls, d)
	}
	return applyVendorPrefixes(decls)
}

func (p *parser) parseDeclarations(block []token) []Declaration {
	segments, _ := p.splitBlock(block)
	return p.finishDeclarations(segments)
}

func (p *parser) parseDeclaration(seg []token) (Declaration, bool) {
	colon := -1
	depth := 0
	for i, t := range seg {
		switch t.tt {
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.ColonToken:
			if depth == 0 {
				colon = i
			}
		}
		if colon >= 0 {
			break
		}
	}
	if colon < 0 {
		if strings.TrimSpace(text(seg)) != "" {
			p.addError("unparsable-declaration")
		}
		return Declaration{}, false
	}

	prop := strings.TrimSpace(text(seg[:colon]))
	if prop == "" {
		p.addError("unparsable-declaration")
		return Declaration{}, false
	}
	if !strings.HasPrefix(prop, "--") {
		prop = strings.ToLower(prop)
	}

	value := strings.TrimSpace(text(seg[colon+1:]))
	important := false
	if idx := strings.LastIndexByte(value, '!'); idx >= 0 {
		if strings.EqualFold(strings.TrimSpace(value[idx+1:]), "important") {
			important = true
			value = strings.TrimSpace(value[:idx])
		}
	}

	return Declaration{Property: prop, Value: value, Important: important}, true
}

// Vendor prefixes mirrored onto standard property names.
var vendorPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-"}

func applyVendorPrefixes(decls []Declaration) []Declaration {
	for _, d := range decls {
		for _, prefix := range vendorPrefixes {
			if !strings.HasPrefix(d.Property, prefix) {
				continue
			}
			std := strings.TrimPrefix(d.Property, prefix)
			if !hasProperty(decls, std) {
				decls = append(decls, Declaration{Property: std, Value: d.Value, Important: d.Important})
			}
			break
		}
	}
	return decls
}

func hasProperty(decls []Declaration, name string) bool {
	for _, d := range decls {
		if d.Property == name {
			return true
		}
	}
	return false
}

func (p *parser) parseKeyframes(name string, block []token) *KeyframesRule {
	body := p.subParser(block)
	kf := &KeyframesRule{Name: name}
	for !body.done() {
		t := body.cur()
		if t.tt == css.WhitespaceToken || t.tt == css.SemicolonToken {
			body.pos++
			continue
		}
		prelude, term := body.readPrelude()
		if term != '{' {
			break
		}
		stop := KeyframeStop{
			Selector:     strings.TrimSpace(text(prelude)),
			Declarations: body.parseDeclarations(body.readBlock()),
		}
		kf.Stops = append(kf.Stops, stop)
	}
	return kf
}

func parseImportHref(prelude []token) string {
	for i := 0; i < len(prelude); i++ {
		t := prelude[i]
		switch t.tt {
		case css.URLToken:
			return stripURL(t.text)
		case css.StringToken:
			return stripQuotes(t.text)
		case css.FunctionToken:
			if strings.EqualFold(t.text, "url(") {
				for j := i + 1; j < len(prelude); j++ {
					if prelude[j].tt == css.StringToken {
						return stripQuotes(prelude[j].text)
					}
					if prelude[j].tt == css.RightParenthesisToken {
						break
					}
				}
			}
		}
	}
	return ""
}

func stripURL(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 5 && strings.EqualFold(s[:4], "url(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[4 : len(s)-1])
	}
	return stripQuotes(s)
}

func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// combineNested resolves a nested selector against its parent: "&" is
// substituted where present, otherwise the parent becomes a descendant
// prefix.
func combineNested(parent, sel string) string {
	var parts []string
	for _, s := range strings.Split(sel, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.Contains(s, "&") {
			parts = append(parts, strings.ReplaceAll(s, "&", parent))
		} else {
			parts = append(parts, parent+" "+s)
		}
	}
	return strings.Join(parts, ", ")
}

// splitContainerPrelude separates an optional container name from the
// condition: "sidebar (min-width: 400px)" or "(min-width: 400px)".
func splitContainerPrelude(prelude string) (name, cond string) {
	prelude = strings.TrimSpace(prelude)
	if strings.HasPrefix(prelude, "(") {
		return "", prelude
	}
	if idx := strings.IndexByte(prelude, '('); idx > 0 {
		return strings.TrimSpace(prelude[:idx]), strings.TrimSpace(prelude[idx:])
	}
	return prelude, ""
}

func (p *parser) addError(code string) {
	p.sheet.Errors = append(p.sheet.Errors, &htmlerrors.ParseError{
		Code:    code,
		Message: htmlerrors.Message(code),
	})
}

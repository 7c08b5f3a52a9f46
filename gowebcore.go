// Package GoWebCore is an HTML/CSS document parser and style resolver: it
// converts raw HTML into a parsed element tree enriched with fully
// cascaded CSS properties and emits a flat, layout-ready render node list.
//
// # Basic Usage
//
//	result := GoWebCore.Render("<h1>Hello</h1>", GoWebCore.WithStylesheet("h1 { color: red }"))
//	for _, node := range result.Nodes {
//		// hand to layout
//	}
//
// The pipeline is total: malformed HTML and CSS produce best-effort
// output, never an error. Parse errors are available as a diagnostic side
// channel via WithCollectErrors.
package GoWebCore

import (
	"github.com/MeKo-Christian/GoWebCore/cascade"
	"github.com/MeKo-Christian/GoWebCore/cssparser"
	"github.com/MeKo-Christian/GoWebCore/dom"
	htmlerrors "github.com/MeKo-Christian/GoWebCore/errors"
	"github.com/MeKo-Christian/GoWebCore/render"
	"github.com/MeKo-Christian/GoWebCore/tokenizer"
	"github.com/MeKo-Christian/GoWebCore/treebuilder"
)

// Version is the current version of GoWebCore.
const Version = "0.1.0-dev"

// Parse parses an HTML string and returns the document tree.
//
// Malformed HTML is handled per the HTML5 specification; with
// WithCollectErrors the recoverable parse errors are returned alongside
// the document.
func Parse(html string, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)

	tok := tokenizer.New(html)
	tb := treebuilder.New()
	for {
		tt := tok.Next()
		tb.ProcessToken(tt)
		if tt.Type == tokenizer.EOF {
			break
		}
	}

	if cfg.strict || cfg.collectErrors {
		errs := convertTokenizerErrors(tok.Errors())
		if len(errs) > 0 && cfg.strict {
			return tb.Document(), errs[0]
		}
		if len(errs) > 0 && cfg.collectErrors {
			return tb.Document(), htmlerrors.ParseErrors(errs)
		}
	}
	return tb.Document(), nil
}

// ParseFragment parses an HTML fragment in a context element, with
// innerHTML semantics.
func ParseFragment(html string, context string) []dom.Node {
	tok := tokenizer.New(html)
	tb := treebuilder.NewFragment(context)
	for {
		tt := tok.Next()
		tb.ProcessToken(tt)
		if tt.Type == tokenizer.EOF {
			break
		}
	}
	return tb.FragmentNodes()
}

// Tokenize exposes the raw token stream for callers that drive their own
// tree construction.
func Tokenize(html string) []tokenizer.Token {
	return tokenizer.Tokenize(html)
}

// Render runs the full pipeline over an HTML string: tokenize, build the
// tree, cascade styles, and emit the render node list.
func Render(html string, opts ...Option) *render.ParseResult {
	doc, _ := Parse(html)
	return NewRenderer(opts...).RenderDocument(doc)
}

// Renderer binds an environment and stylesheet set for repeated document
// rendering. Stylesheet mutations (ReplaceSync, insertRule) bump the
// style generation so the next render recomputes styles.
type Renderer struct {
	cfg    *config
	env    *cascade.Environment
	sheets []*cssparser.Stylesheet
}

// NewRenderer creates a renderer from the given options.
func NewRenderer(opts ...Option) *Renderer {
	cfg := newConfig(opts...)
	env := cascade.NewEnvironment()
	if cfg.viewportWidth > 0 {
		env.ViewportWidth = cfg.viewportWidth
	}
	if cfg.viewportHeight > 0 {
		env.ViewportHeight = cfg.viewportHeight
	}
	if cfg.colorScheme != "" {
		env.ColorScheme = cfg.colorScheme
	}
	if cfg.reducedMotion != "" {
		env.ReducedMotion = cfg.reducedMotion
	}
	env.ContainerSize = cfg.containerSize

	r := &Renderer{cfg: cfg, env: env}
	for _, css := range cfg.stylesheets {
		r.AddStylesheet(css)
	}
	return r
}

// Env returns the renderer's environment for viewport updates and style
// generation queries.
func (r *Renderer) Env() *cascade.Environment {
	return r.env
}

// AddStylesheet parses and registers an author stylesheet. The returned
// stylesheet supports ReplaceSync, InsertRule, and DeleteRule.
func (r *Renderer) AddStylesheet(css string) *cssparser.Stylesheet {
	sheet := cssparser.Parse(css)
	sheet.OnMutate(r.env.BumpStyleGeneration)
	r.sheets = append(r.sheets, sheet)
	r.env.BumpStyleGeneration()
	return sheet
}

// RenderDocument cascades and renders a parsed document. Inline <style>
// blocks in the document participate in the cascade after the registered
// stylesheets.
func (r *Renderer) RenderDocument(doc *dom.Document) *render.ParseResult {
	engine := cascade.NewEngine(r.env)

	if r.cfg.userAgentCSS != "" {
		engine.AddSheet(cssparser.Parse(r.cfg.userAgentCSS))
	}
	for _, sheet := range r.sheets {
		engine.AddSheet(sheet)
	}
	for _, css := range documentStyles(doc) {
		engine.AddSheet(cssparser.Parse(css))
	}

	return render.BuildResult(doc, engine, render.Options{
		StructuredTables: r.cfg.structuredTables,
		SVGRenderer:      r.cfg.svgRenderer,
	})
}

// documentStyles collects the contents of every <style> element in
// document order.
func documentStyles(doc *dom.Document) []string {
	var styles []string
	var walk func(n dom.Node)
	walk = func(n dom.Node) {
		for _, child := range n.Children() {
			el, ok := child.(*dom.Element)
			if !ok {
				continue
			}
			if el.TagName == "style" {
				styles = append(styles, el.Text())
				continue
			}
			walk(el)
		}
	}
	walk(doc)
	return styles
}

func convertTokenizerErrors(errs []tokenizer.ParseError) []*htmlerrors.ParseError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]*htmlerrors.ParseError, 0, len(errs))
	for _, e := range errs {
		out = append(out, &htmlerrors.ParseError{
			Code:    e.Code,
			Message: htmlerrors.Message(e.Code),
			Line:    e.Line,
			Column:  e.Column,
		})
	}
	return out
}

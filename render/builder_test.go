package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Christian/GoWebCore/cascade"
	"github.com/MeKo-Christian/GoWebCore/cssparser"
	"github.com/MeKo-Christian/GoWebCore/dom"
	"github.com/MeKo-Christian/GoWebCore/tokenizer"
	"github.com/MeKo-Christian/GoWebCore/treebuilder"
)

func renderHTML(t *testing.T, html, css string, opts Options) *ParseResult {
	t.Helper()
	doc := treebuilder.Build(tokenizer.Tokenize(html))
	env := cascade.NewEnvironment()
	engine := cascade.NewEngine(env)
	if css != "" {
		engine.AddSheet(cssparser.Parse(css))
	}
	return BuildResult(doc, engine, opts)
}

func nodeKinds(nodes []*RenderNode) []NodeKind {
	out := make([]NodeKind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

func spanText(node *RenderNode) string {
	var sb strings.Builder
	for _, s := range node.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func allText(nodes []*RenderNode) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(spanText(n))
	}
	return sb.String()
}

func TestSimpleParagraphs(t *testing.T) {
	r := renderHTML(t, "<p>a</p><p>b</p>", "", Options{})
	var blocks []*RenderNode
	for _, n := range r.Nodes {
		if n.Kind == BlockNode {
			blocks = append(blocks, n)
		}
	}
	require.Len(t, blocks, 2)
	assert.Equal(t, "a", spanText(blocks[0]))
	assert.Equal(t, "b", spanText(blocks[1]))
}

func TestImplicitlyClosedParagraphs(t *testing.T) {
	// <p>a<p>b yields two separate paragraph render nodes.
	r := renderHTML(t, "<p>a<p>b</p>", "", Options{})
	var texts []string
	for _, n := range r.Nodes {
		if n.Kind == BlockNode {
			texts = append(texts, spanText(n))
		}
	}
	assert.Equal(t, []string{"a", "b"}, texts)
}

func TestHeadingNode(t *testing.T) {
	r := renderHTML(t, "<h2>Title</h2>", "", Options{})
	require.NotEmpty(t, r.Nodes)
	h := r.Nodes[0]
	assert.Equal(t, HeadingNode, h.Kind)
	assert.Equal(t, 2, h.Level)
	assert.Equal(t, "Title", spanText(h))
}

func TestInlineFormatting(t *testing.T) {
	r := renderHTML(t, "<p>plain <strong>bold <em>both</em></strong></p>", "", Options{})
	var spans []InlineSpan
	for _, n := range r.Nodes {
		spans = append(spans, n.Spans...)
	}
	require.GreaterOrEqual(t, len(spans), 3)

	byText := map[string]InlineSpan{}
	for _, s := range spans {
		byText[strings.TrimSpace(s.Text)] = s
	}
	assert.False(t, byText["plain"].Bold)
	assert.True(t, byText["bold"].Bold)
	assert.False(t, byText["bold"].Italic)
	assert.True(t, byText["both"].Bold)
	assert.True(t, byText["both"].Italic)
}

func TestLinkContext(t *testing.T) {
	r := renderHTML(t, `<p><a href="/x" download>go</a><a href="javascript:evil()">no</a></p>`, "", Options{})
	var spans []InlineSpan
	for _, n := range r.Nodes {
		spans = append(spans, n.Spans...)
	}
	byText := map[string]InlineSpan{}
	for _, s := range spans {
		byText[strings.TrimSpace(s.Text)] = s
	}
	assert.Equal(t, "/x", byText["go"].Href)
	assert.Equal(t, "/x", byText["go"].Download)
	assert.Equal(t, "", byText["no"].Href, "javascript: links are dropped")
}

func TestListIndent(t *testing.T) {
	r := renderHTML(t, "<ul><li>a<ul><li>b</li></ul></li></ul>", "", Options{})
	var items []*RenderNode
	for _, n := range r.Nodes {
		if n.Kind == ListItemNode {
			items = append(items, n)
		}
	}
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Indent)
	assert.Equal(t, 1, items[1].Indent)
}

func TestBlockquoteIndent(t *testing.T) {
	r := renderHTML(t, "<blockquote>quoted</blockquote>", "", Options{})
	var found bool
	for _, n := range r.Nodes {
		if n.Kind == BlockquoteNode {
			found = true
			assert.Equal(t, 1, n.Indent)
			assert.Equal(t, "quoted", spanText(n))
		}
	}
	assert.True(t, found)
}

func TestPreformatted(t *testing.T) {
	r := renderHTML(t, "<pre>line1\nline2</pre>", "", Options{})
	var pres []*RenderNode
	for _, n := range r.Nodes {
		if n.Kind == PreformattedNode {
			pres = append(pres, n)
		}
	}
	require.Len(t, pres, 2)
	assert.Equal(t, "line1", spanText(pres[0]))
	assert.Equal(t, "line2", spanText(pres[1]))
}

func TestHorizontalRule(t *testing.T) {
	r := renderHTML(t, "a<hr>b", "", Options{})
	assert.Contains(t, nodeKinds(r.Nodes), HorizontalRuleNode)
}

func TestHiddenSubtreeSkipped(t *testing.T) {
	r := renderHTML(t, `<p>shown</p><div hidden><p>gone</p></div><p style="display:none">also gone</p>`, "", Options{})
	text := allText(r.Nodes)
	assert.Contains(t, text, "shown")
	assert.NotContains(t, text, "gone")
}

func TestDisplayNoneViaStylesheet(t *testing.T) {
	r := renderHTML(t, `<p class="x">gone</p><p>kept</p>`, ".x { display: none }", Options{})
	text := allText(r.Nodes)
	assert.NotContains(t, text, "gone")
	assert.Contains(t, text, "kept")
}

func TestTableASCII(t *testing.T) {
	r := renderHTML(t, "<table><tr><th>h1</th><th>h2</th></tr><tr><td>a</td><td>b</td></tr></table>", "", Options{})
	var lines []string
	for _, n := range r.Nodes {
		if n.Kind == PreformattedNode {
			lines = append(lines, spanText(n))
		}
	}
	require.Len(t, lines, 5)
	assert.Equal(t, "┌────┬────┐", lines[0])
	assert.Equal(t, "│ h1 │ h2 │", lines[1])
	assert.Equal(t, "╞════╪════╡", lines[2])
	assert.Equal(t, "│ a  │ b  │", lines[3])
	assert.Equal(t, "└────┴────┘", lines[4])
}

func TestTableInteriorSeparators(t *testing.T) {
	r := renderHTML(t, "<table><tr><td>a</td></tr><tr><td>b</td></tr><tr><td>c</td></tr></table>", "", Options{})
	var lines []string
	for _, n := range r.Nodes {
		if n.Kind == PreformattedNode {
			lines = append(lines, spanText(n))
		}
	}
	require.Len(t, lines, 7)
	assert.Equal(t, "┌───┐", lines[0])
	assert.Equal(t, "│ a │", lines[1])
	assert.Equal(t, "├───┤", lines[2])
	assert.Equal(t, "│ b │", lines[3])
	assert.Equal(t, "├───┤", lines[4])
	assert.Equal(t, "│ c │", lines[5])
	assert.Equal(t, "└───┘", lines[6])
}

func TestTableInteriorCross(t *testing.T) {
	lines := renderTableLines([][]string{{"a", "b"}, {"c", "d"}}, false)
	require.Len(t, lines, 5)
	assert.Equal(t, "├───┼───┤", lines[2])
}

func TestTableStructured(t *testing.T) {
	r := renderHTML(t, "<table><tr><td>a</td><td>b</td></tr></table>", "", Options{StructuredTables: true})
	var table *RenderNode
	for _, n := range r.Nodes {
		if n.Kind == TableNode {
			table = n
		}
	}
	require.NotNil(t, table)
	assert.Equal(t, [][]string{{"a", "b"}}, table.Rows)
	assert.False(t, table.HeaderRow)
}

func TestWidgets(t *testing.T) {
	html := `<form action="/submit" method="post">
<input type="text" name="q" value="v" placeholder="hint">
<input type="email" name="e">
<input type="image" name="i">
<input type="hidden" name="h" value="secret">
<input type="checkbox" name="c" checked>
<select name="s"><option value="1">one</option><option value="2" selected>two</option></select>
<textarea name="t" rows="4" cols="20">body</textarea>
<button type="reset">Clear</button>
</form>`
	r := renderHTML(t, html, "", Options{})

	require.Len(t, r.Forms, 1)
	assert.Equal(t, "/submit", r.Forms[0].Action)
	assert.Equal(t, "post", r.Forms[0].Method)

	require.Len(t, r.Widgets, 8)
	kinds := make([]string, len(r.Widgets))
	for i, w := range r.Widgets {
		kinds[i] = w.Kind
		assert.Equal(t, 0, w.FormIndex, "widget %d should belong to form 0", i)
	}
	assert.Equal(t, []string{"text", "text", "submit", "hidden", "checkbox", "select", "textarea", "reset"}, kinds)

	assert.Equal(t, "hint", r.Widgets[0].Placeholder)
	assert.True(t, r.Widgets[4].Checked)

	sel := r.Widgets[5]
	require.Len(t, sel.Options, 2)
	assert.True(t, sel.Options[1].Selected)
	assert.Equal(t, "2", sel.Value)

	ta := r.Widgets[6]
	assert.Equal(t, "body", ta.Value)
	assert.Equal(t, 4, ta.Rows)
	assert.Equal(t, 20, ta.Cols)

	// Hidden inputs never become render nodes.
	for _, n := range r.Nodes {
		if n.Kind == WidgetNode {
			assert.NotEqual(t, "hidden", n.Widget.Kind)
		}
	}
}

func TestWidgetOutsideForm(t *testing.T) {
	r := renderHTML(t, `<input type="text" name="q">`, "", Options{})
	require.Len(t, r.Widgets, 1)
	assert.Equal(t, -1, r.Widgets[0].FormIndex)
}

func TestPictureSource(t *testing.T) {
	r := renderHTML(t, `<picture><source srcset="big.webp 2x, small.webp"><img src="fallback.png"></picture>`, "", Options{})
	var pic *RenderNode
	for _, n := range r.Nodes {
		if n.Kind == PictureNode {
			pic = n
		}
	}
	require.NotNil(t, pic)
	assert.Equal(t, "big.webp", pic.Image.Src)
}

func TestProgressGlyphs(t *testing.T) {
	r := renderHTML(t, `<p><progress value="5" max="10"></progress></p>`, "", Options{})
	text := allText(r.Nodes)
	assert.Equal(t, "█████░░░░░", text)
}

func TestPlaceholders(t *testing.T) {
	r := renderHTML(t, `<iframe src="x"></iframe>`, "", Options{})
	assert.Contains(t, allText(r.Nodes), "[iframe]")
}

func TestHeadCollection(t *testing.T) {
	html := `<html><head>
<title>My Page</title>
<base href="https://example.com/">
<link rel="stylesheet" href="a.css">
<link rel="icon" href="fav.ico">
<style>p { color: red }</style>
<script src="app.js"></script>
<script>var x = 1;</script>
</head><body><p>hi</p></body></html>`
	r := renderHTML(t, html, "", Options{})

	assert.Equal(t, "My Page", r.Title)
	assert.Equal(t, "https://example.com/", r.BaseURL)
	assert.Equal(t, []string{"a.css"}, r.StyleLinks)
	assert.Equal(t, "fav.ico", r.Favicon)
	require.Len(t, r.Styles, 1)
	assert.Contains(t, r.Styles[0], "color: red")
	require.Len(t, r.Scripts, 2)
	assert.Equal(t, "app.js", r.Scripts[0].Src)
	assert.False(t, r.Scripts[0].Inline)
	assert.True(t, r.Scripts[1].Inline)
	assert.Equal(t, "var x = 1;", r.Scripts[1].Code)
}

func TestQuirksFlag(t *testing.T) {
	r := renderHTML(t, "<p>x</p>", "", Options{})
	assert.True(t, r.QuirksMode)

	r = renderHTML(t, "<!DOCTYPE html><p>x</p>", "", Options{})
	assert.False(t, r.QuirksMode)
}

func TestTemplates(t *testing.T) {
	r := renderHTML(t, `<template id="row"><p>inside</p></template><p>outside</p>`, "", Options{})
	assert.NotContains(t, allText(r.Nodes), "inside")
	require.Contains(t, r.Templates, "row")
	assert.Contains(t, allText(r.Templates["row"]), "inside")
}

func TestPseudoContentAndCounters(t *testing.T) {
	css := `
h2 { counter-increment: section }
body { counter-reset: section }
h2::before { content: counter(section) ". " }`
	r := renderHTML(t, "<h2>One</h2><h2>Two</h2>", css, Options{})

	var headings []string
	for _, n := range r.Nodes {
		if n.Kind == HeadingNode {
			headings = append(headings, spanText(n))
		}
	}
	require.Len(t, headings, 2)
	assert.Equal(t, "1. One", headings[0])
	assert.Equal(t, "2. Two", headings[1])
}

func TestPseudoAfter(t *testing.T) {
	r := renderHTML(t, `<p>note</p>`, `p::after { content: " ✗" }`, Options{})
	assert.Contains(t, allText(r.Nodes), "note ✗")
}

func TestQuoteGlyphs(t *testing.T) {
	r := renderHTML(t, "<p><q>quoted</q></p>", "", Options{})
	assert.Contains(t, allText(r.Nodes), "“quoted”")
}

func TestSpanColorFromCascade(t *testing.T) {
	r := renderHTML(t, `<p class="warn">alert</p>`, ".warn { color: orange }", Options{})
	var found bool
	for _, n := range r.Nodes {
		for _, s := range n.Spans {
			if strings.TrimSpace(s.Text) == "alert" {
				found = true
				assert.Equal(t, "orange", s.Color)
			}
		}
	}
	assert.True(t, found)
}

func TestStyleBoxOnBlocks(t *testing.T) {
	r := renderHTML(t, `<p class="pad">x</p>`, ".pad { margin: 1px 2px; padding-left: 3px; background: teal }", Options{})
	var block *RenderNode
	for _, n := range r.Nodes {
		if n.Kind == BlockNode && spanText(n) == "x" {
			block = n
		}
	}
	require.NotNil(t, block)
	assert.Equal(t, "1px", block.Box.MarginTop)
	assert.Equal(t, "2px", block.Box.MarginRight)
	assert.Equal(t, "1px", block.Box.MarginBottom)
	assert.Equal(t, "2px", block.Box.MarginLeft)
	assert.Equal(t, "3px", block.Box.PaddingLeft)
	assert.Equal(t, "teal", block.Box.Background)
}

func TestGridNode(t *testing.T) {
	r := renderHTML(t, `<div class="g">cell</div>`, ".g { display: grid; grid-template-columns: 1fr 2fr }", Options{})
	var grid *RenderNode
	for _, n := range r.Nodes {
		if n.Kind == GridNode {
			grid = n
		}
	}
	require.NotNil(t, grid)
	assert.Equal(t, []string{"1fr", "2fr"}, grid.Tracks)
}

func TestSummaryNode(t *testing.T) {
	r := renderHTML(t, "<details><summary>More</summary><p>body</p></details>", "", Options{})
	kinds := nodeKinds(r.Nodes)
	assert.Contains(t, kinds, SummaryNode)
}

func TestSVGPlaceholderAndHook(t *testing.T) {
	r := renderHTML(t, `<svg><circle r="5"/></svg>`, "", Options{})
	assert.Contains(t, allText(r.Nodes), "[svg]")

	opts := Options{SVGRenderer: func(el *dom.Element) (*WidgetBlueprint, bool) {
		return &WidgetBlueprint{Kind: "img", PixWidth: 4, PixHeight: 4, Pixels: make([]byte, 64)}, true
	}}
	r = renderHTML(t, `<svg><circle r="5"/></svg>`, "", opts)
	require.Len(t, r.Widgets, 1)
	assert.Equal(t, 4, r.Widgets[0].PixWidth)
}

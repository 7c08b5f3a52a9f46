package treebuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Christian/GoWebCore/dom"
	"github.com/MeKo-Christian/GoWebCore/tokenizer"
)

func parse(input string) *dom.Document {
	return Build(tokenizer.Tokenize(input))
}

func childTags(n dom.Node) []string {
	var out []string
	for _, c := range n.Children() {
		if el, ok := c.(*dom.Element); ok {
			out = append(out, el.TagName)
		}
	}
	return out
}

func TestImplicitStructure(t *testing.T) {
	doc := parse("hello")
	html := doc.DocumentElement()
	require.NotNil(t, html)
	assert.Equal(t, []string{"head", "body"}, childTags(html))
	require.NotNil(t, doc.Body())
	assert.Equal(t, "hello", doc.Body().Text())
}

func TestEmptyInput(t *testing.T) {
	doc := parse("")
	require.NotNil(t, doc.DocumentElement())
	assert.Equal(t, []string{"head", "body"}, childTags(doc.DocumentElement()))
}

func TestHeadAndBody(t *testing.T) {
	doc := parse("<html><head><title>T</title></head><body><p>x</p></body></html>")
	assert.Equal(t, "T", doc.Title())
	assert.Equal(t, []string{"p"}, childTags(doc.Body()))
}

func TestPAutoClose(t *testing.T) {
	doc := parse("<body><p>a<p>b</p></body>")
	body := doc.Body()
	require.NotNil(t, body)
	assert.Equal(t, []string{"p", "p"}, childTags(body))

	ps := body.Children()
	first := ps[0].(*dom.Element)
	second := ps[1].(*dom.Element)
	assert.Equal(t, "a", first.Text())
	assert.Equal(t, "b", second.Text())
}

func TestPAutoCloseOnDiv(t *testing.T) {
	doc := parse("<p>a<div>b</div>")
	body := doc.Body()
	assert.Equal(t, []string{"p", "div"}, childTags(body))
}

func TestFosterParenting(t *testing.T) {
	doc := parse("<!DOCTYPE html><html><body><table><div id=x>hi</div></table></body></html>")
	body := doc.Body()
	require.NotNil(t, body)

	tags := childTags(body)
	assert.Equal(t, []string{"div", "table"}, tags)

	div := body.Children()[0].(*dom.Element)
	assert.Equal(t, "x", div.ID())
	assert.Equal(t, "hi", div.Text())
}

func TestFosterParentingText(t *testing.T) {
	doc := parse("<table>loose<tr><td>cell</td></tr></table>")
	body := doc.Body()
	require.NotNil(t, body)

	children := body.Children()
	require.NotEmpty(t, children)
	txt, ok := children[0].(*dom.Text)
	require.True(t, ok, "non-whitespace table text must be foster parented first")
	assert.Equal(t, "loose", txt.Data)
}

func TestImplicitTbodyAndTr(t *testing.T) {
	doc := parse("<table><td>x</td></table>")
	body := doc.Body()
	table := body.Children()[0].(*dom.Element)
	require.Equal(t, "table", table.TagName)
	assert.Equal(t, []string{"tbody"}, childTags(table))
	tbody := table.Children()[0].(*dom.Element)
	assert.Equal(t, []string{"tr"}, childTags(tbody))
	tr := tbody.Children()[0].(*dom.Element)
	assert.Equal(t, []string{"td"}, childTags(tr))
}

func TestTableSections(t *testing.T) {
	doc := parse("<table><thead><tr><th>h</th></tr></thead><tbody><tr><td>c</td></tr></tbody></table>")
	table := doc.Body().Children()[0].(*dom.Element)
	assert.Equal(t, []string{"thead", "tbody"}, childTags(table))
}

func TestRawTextChild(t *testing.T) {
	doc := parse("<script>var x = 0 < 1;</script>")
	var script *dom.Element
	var find func(n dom.Node)
	find = func(n dom.Node) {
		if el, ok := n.(*dom.Element); ok && el.TagName == "script" {
			script = el
			return
		}
		for _, c := range n.Children() {
			find(c)
		}
	}
	find(doc)
	require.NotNil(t, script)
	require.Len(t, script.Children(), 1)
	txt, ok := script.Children()[0].(*dom.Text)
	require.True(t, ok)
	assert.Equal(t, "var x = 0 < 1;", txt.Data)
}

func TestVoidElementsHaveNoChildren(t *testing.T) {
	doc := parse("<body><br>text<img src=x>more</body>")
	body := doc.Body()
	for _, c := range body.Children() {
		if el, ok := c.(*dom.Element); ok {
			assert.Empty(t, el.Children(), "void element %s must have no children", el.TagName)
		}
	}
}

func TestAdjacentTextCoalesced(t *testing.T) {
	// The character tokens arrive split; the tree must hold one text node.
	tb := New()
	for _, tok := range []tokenizer.Token{
		tokenizer.NewStartTagToken("p"),
		tokenizer.NewCharacterToken("a"),
		tokenizer.NewCharacterToken("b"),
		tokenizer.NewCharacterToken("c"),
		tokenizer.NewEndTagToken("p"),
		{Type: tokenizer.EOF},
	} {
		tb.ProcessToken(tok)
	}
	p := tb.Document().Body().Children()[0].(*dom.Element)
	require.Len(t, p.Children(), 1)
	assert.Equal(t, "abc", p.Children()[0].(*dom.Text).Data)
}

func TestQuirksModeDetection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  dom.QuirksMode
	}{
		{"standards", "<!DOCTYPE html><p>x", dom.NoQuirks},
		{"missing doctype", "<p>x", dom.Quirks},
		{"legacy 3.2", `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 3.2 Final//EN"><p>`, dom.Quirks},
		{"xhtml transitional", `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "x"><p>`, dom.LimitedQuirks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(tt.input).QuirksMode)
		})
	}
}

func TestDuplicateHTMLAttributesMerged(t *testing.T) {
	doc := parse(`<html lang="en"><head></head><body></body></html><html dir="ltr">`)
	html := doc.DocumentElement()
	assert.Equal(t, "en", html.Attr("lang"))
}

func TestHeadingAutoClose(t *testing.T) {
	doc := parse("<h1>a<h2>b")
	assert.Equal(t, []string{"h1", "h2"}, childTags(doc.Body()))
}

func TestListNesting(t *testing.T) {
	doc := parse("<ul><li>a<li>b</ul>")
	ul := doc.Body().Children()[0].(*dom.Element)
	assert.Equal(t, []string{"li", "li"}, childTags(ul))
}

func TestSelectOptions(t *testing.T) {
	doc := parse("<select><option>a<option>b</select>")
	var sel *dom.Element
	for _, c := range doc.Body().Children() {
		if el, ok := c.(*dom.Element); ok && el.TagName == "select" {
			sel = el
		}
	}
	require.NotNil(t, sel)
	assert.Equal(t, []string{"option", "option"}, childTags(sel))
}

func TestTemplateContentNotRendered(t *testing.T) {
	doc := parse(`<template id="t"><p>inside</p></template>`)
	var tmpl *dom.Element
	var find func(n dom.Node)
	find = func(n dom.Node) {
		if el, ok := n.(*dom.Element); ok && el.TagName == "template" {
			tmpl = el
			return
		}
		for _, c := range n.Children() {
			find(c)
		}
	}
	find(doc)
	require.NotNil(t, tmpl)
	assert.Empty(t, tmpl.Children())
	require.NotNil(t, tmpl.TemplateContent)
	assert.Equal(t, []string{"p"}, childTags(tmpl.TemplateContent))
}

func TestEveryNodeParentLinked(t *testing.T) {
	doc := parse(`<!DOCTYPE html><div><p>a<span>b</span></p><table><tr><td>c</td></tr></table></div>`)
	var walk func(n dom.Node)
	walk = func(n dom.Node) {
		for _, c := range n.Children() {
			require.Same(t, n, c.Parent())
			found := false
			for _, cc := range c.Parent().Children() {
				if cc == c {
					found = true
				}
			}
			require.True(t, found, "child missing from parent's child list")
			walk(c)
		}
	}
	walk(doc)
}

func TestFragmentParsing(t *testing.T) {
	tb := NewFragment("tr")
	for _, tok := range tokenizer.Tokenize("<td>Cell</td>") {
		tb.ProcessToken(tok)
	}
	tb.ProcessToken(tokenizer.Token{Type: tokenizer.EOF})
	nodes := tb.FragmentNodes()
	require.Len(t, nodes, 1)
	td := nodes[0].(*dom.Element)
	assert.Equal(t, "td", td.TagName)
	assert.Equal(t, "Cell", td.Text())
}

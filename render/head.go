package render

import (
	"strings"

	"github.com/MeKo-Christian/GoWebCore/dom"
)

// collectHead extracts the document metadata from the head subtree:
// title, base URL, stylesheet links, favicon, inline styles, and scripts.
// Head text is otherwise discarded.
func (b *Builder) collectHead(head *dom.Element) {
	var walk func(n dom.Node)
	walk = func(n dom.Node) {
		for _, child := range n.Children() {
			el, ok := child.(*dom.Element)
			if !ok {
				continue
			}
			switch el.TagName {
			case "title":
				if b.result.Title == "" {
					b.result.Title = collapseWhitespace(el.Text())
				}
			case "base":
				if b.result.BaseURL == "" {
					b.result.BaseURL = el.Attr("href")
				}
			case "link":
				b.collectLink(el)
			case "style":
				b.result.Styles = append(b.result.Styles, el.Text())
			case "script":
				b.collectScript(el)
			case "template":
				b.collectTemplate(el)
			default:
				walk(el)
			}
		}
	}
	walk(head)
}

func (b *Builder) collectLink(el *dom.Element) {
	rel := strings.ToLower(el.Attr("rel"))
	href := el.Attr("href")
	if href == "" {
		return
	}
	switch {
	case strings.Contains(rel, "stylesheet"):
		b.result.StyleLinks = append(b.result.StyleLinks, href)
	case strings.Contains(rel, "icon"):
		if b.result.Favicon == "" {
			b.result.Favicon = href
		}
	}
}

func (b *Builder) collectScript(el *dom.Element) {
	rec := ScriptRecord{Type: el.Attr("type")}
	if src := el.Attr("src"); src != "" {
		rec.Src = src
	} else {
		rec.Inline = true
		rec.Code = el.Text()
	}
	b.result.Scripts = append(b.result.Scripts, rec)
}

func (b *Builder) collectTemplate(el *dom.Element) {
	id := el.ID()
	if id == "" || el.TemplateContent == nil {
		return
	}
	sub := newBuilder(b.engine, b.opts)
	sub.walkChildren(el.TemplateContent)
	sub.flushBlock()
	b.result.Templates[id] = sub.result.Nodes
}

func collapseWhitespace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			space = true
		default:
			if space && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			space = false
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

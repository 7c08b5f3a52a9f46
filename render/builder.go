package render

import (
	"strconv"
	"strings"

	"github.com/MeKo-Christian/GoWebCore/cascade"
	"github.com/MeKo-Christian/GoWebCore/dom"
)

// Options configures the render builder.
type Options struct {
	// StructuredTables emits Table nodes with cell text instead of the
	// box-drawn preformatted rendering.
	StructuredTables bool

	// SVGRenderer rasterizes an <svg> subtree into an image widget.
	// When nil, SVG elements render as placeholders.
	SVGRenderer func(el *dom.Element) (*WidgetBlueprint, bool)
}

// Builder walks the element tree, applies the cascade per element, and
// accumulates the flat render node list.
type Builder struct {
	engine *cascade.Engine
	opts   Options
	result *ParseResult

	// Inline formatting depths.
	bold      int
	italic    int
	codeDepth int
	delDepth  int
	markDepth int
	underline int

	// Link context.
	linkHref     string
	linkDownload string

	listDepth   int
	preDepth    int
	quoteDepth  int
	quoteIndent int

	counters  map[string]int
	formIndex int

	picture *pictureState

	// Open block scratch.
	curSpans  []InlineSpan
	curKind   NodeKind
	curLevel  int
	curAlign  string
	curIndent int
	curBox    StyleBox
	curTracks []string
}

type pictureState struct {
	sources []string
}

// pendingSpan is generated pseudo-element content awaiting injection at
// the right point of the walk.
type pendingSpan struct {
	text  string
	props cascade.Props
	ok    bool
}

// BuildResult renders a parsed document against the cascade engine.
func BuildResult(doc *dom.Document, engine *cascade.Engine, opts Options) *ParseResult {
	b := newBuilder(engine, opts)
	b.result.QuirksMode = doc.QuirksMode != dom.NoQuirks

	if head := doc.Head(); head != nil {
		b.collectHead(head)
	}
	if body := doc.Body(); body != nil {
		b.walkChildren(body)
	}
	b.flushBlock()
	return b.result
}

func newBuilder(engine *cascade.Engine, opts Options) *Builder {
	return &Builder{
		engine: engine,
		opts:   opts,
		result: &ParseResult{
			Templates: make(map[string][]*RenderNode),
		},
		counters:  make(map[string]int),
		formIndex: -1,
		curKind:   BlockNode,
	}
}

func (b *Builder) emit(node *RenderNode) {
	b.result.Nodes = append(b.result.Nodes, node)
}

func (b *Builder) lastNodeKind() NodeKind {
	if len(b.result.Nodes) == 0 {
		return ParagraphBreakNode
	}
	return b.result.Nodes[len(b.result.Nodes)-1].Kind
}

// flushBlock emits the open block scratch as a render node.
func (b *Builder) flushBlock() {
	if len(b.curSpans) == 0 {
		b.resetBlock()
		return
	}

	node := &RenderNode{
		Kind:   b.curKind,
		Spans:  b.curSpans,
		Box:    b.curBox,
		Level:  b.curLevel,
		Align:  b.curAlign,
		Indent: b.curIndent,
		Tracks: b.curTracks,
	}
	if node.Kind == BlockNode && b.quoteIndent > 0 {
		node.Kind = BlockquoteNode
		node.Indent = b.quoteIndent
	}
	b.emit(node)
	b.resetBlock()
}

func (b *Builder) resetBlock() {
	b.curSpans = nil
	b.curKind = BlockNode
	b.curLevel = 0
	b.curAlign = ""
	b.curIndent = 0
	b.curBox = StyleBox{}
	b.curTracks = nil
}

// paragraphBreak flushes and separates blocks, collapsing runs of breaks.
func (b *Builder) paragraphBreak() {
	b.flushBlock()
	if b.lastNodeKind() != ParagraphBreakNode && len(b.result.Nodes) > 0 {
		b.emit(&RenderNode{Kind: ParagraphBreakNode})
	}
}

// flushPre emits the current preformatted line, possibly empty.
func (b *Builder) flushPre() {
	b.emit(&RenderNode{Kind: PreformattedNode, Spans: b.curSpans, Box: b.curBox})
	b.curSpans = nil
}

func (b *Builder) addSpan(text string, props cascade.Props) {
	if text == "" {
		return
	}
	b.curSpans = append(b.curSpans, InlineSpan{
		Text:      text,
		Href:      b.linkHref,
		Download:  b.linkDownload,
		Bold:      b.bold > 0,
		Italic:    b.italic > 0,
		Code:      b.codeDepth > 0,
		Del:       b.delDepth > 0,
		Mark:      b.markDepth > 0,
		Underline: b.underline > 0,
		Color:     props["color"],
		Scale:     fontScale(props["font-size"]),
	})
}

func (b *Builder) inject(ps pendingSpan) {
	if ps.ok {
		b.addSpan(ps.text, ps.props)
	}
}

func (b *Builder) walkChildren(n dom.Node) {
	for _, child := range n.Children() {
		switch c := child.(type) {
		case *dom.Text:
			if b.preDepth == 0 && len(b.curSpans) == 0 && c.IsWhitespace() {
				continue
			}
			b.text(c.Data, b.propsForTextParent(n))
		case *dom.Element:
			b.walkElement(c)
		}
	}
}

func (b *Builder) propsForTextParent(n dom.Node) cascade.Props {
	if el, ok := n.(*dom.Element); ok {
		return b.engine.ComputedFor(el)
	}
	return cascade.Props{}
}

func (b *Builder) text(data string, props cascade.Props) {
	if b.preDepth > 0 {
		// Preserve whitespace; each newline closes a preformatted line.
		for {
			nl := strings.IndexByte(data, '\n')
			if nl < 0 {
				b.addSpan(data, props)
				return
			}
			b.addSpan(data[:nl], props)
			b.flushPre()
			data = data[nl+1:]
		}
	}

	s := collapseWhitespace(data)
	if s == "" {
		// Inter-word whitespace: keep one space between spans.
		if len(b.curSpans) > 0 && !strings.HasSuffix(b.curSpans[len(b.curSpans)-1].Text, " ") &&
			strings.ContainsAny(data, " \t\n\f\r") {
			b.curSpans[len(b.curSpans)-1].Text += " "
		}
		return
	}
	if strings.ContainsAny(data[:1], " \t\n\f\r") && len(b.curSpans) > 0 {
		s = " " + s
	}
	if strings.ContainsAny(data[len(data)-1:], " \t\n\f\r") {
		s += " "
	}
	b.addSpan(s, props)
}

// blockEntryTags flush the open block when their start is seen; their
// ::before content belongs inside the new block, not the previous one.
var blockEntryTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "div": true, "article": true, "section": true,
	"header": true, "footer": true, "aside": true, "main": true,
	"nav": true, "figure": true, "figcaption": true, "address": true,
	"details": true, "dd": true, "dt": true, "caption": true,
	"center": true, "fieldset": true, "legend": true, "dl": true,
	"hgroup": true, "dialog": true, "summary": true, "li": true,
	"blockquote": true, "pre": true, "listing": true, "plaintext": true,
}

//nolint:gocyclo // per-tag dispatch is the algorithm
func (b *Builder) walkElement(el *dom.Element) {
	props := b.engine.ComputedFor(el)

	// Hidden subtrees produce no output.
	if props["display"] == "none" || el.HasAttr("hidden") ||
		props["visibility"] == "hidden" {
		return
	}

	applyCounterDeclarations(b.counters, props["counter-reset"], props["counter-increment"])

	tag := el.TagName
	before := b.pseudoSpan(el, "before")
	if !blockEntryTags[tag] {
		b.inject(before)
		before.ok = false
	}

	switch tag {
	case "head", "meta", "base", "title":
		// Head metadata is collected separately.

	case "script":
		b.collectScript(el)

	case "style":
		b.result.Styles = append(b.result.Styles, el.Text())

	case "link":
		b.collectLink(el)

	case "template":
		b.collectTemplate(el)

	case "br":
		if b.preDepth > 0 {
			b.flushPre()
		} else {
			b.paragraphBreak()
		}

	case "hr":
		b.flushBlock()
		b.emit(&RenderNode{Kind: HorizontalRuleNode, Box: boxFromProps(props)})

	case "a":
		prevHref, prevDownload := b.linkHref, b.linkDownload
		href := strings.TrimSpace(el.Attr("href"))
		if !strings.HasPrefix(strings.ToLower(href), "javascript:") {
			b.linkHref = href
		}
		if el.HasAttr("download") {
			b.linkDownload = el.Attr("download")
			if b.linkDownload == "" {
				b.linkDownload = href
			}
		}
		b.walkChildren(el)
		b.linkHref, b.linkDownload = prevHref, prevDownload

	case "strong", "b":
		b.bold++
		b.walkChildren(el)
		b.bold--

	case "em", "i", "cite", "var", "dfn":
		b.italic++
		b.walkChildren(el)
		b.italic--

	case "code", "kbd", "samp", "tt":
		b.codeDepth++
		b.walkChildren(el)
		b.codeDepth--

	case "del", "s", "strike":
		b.delDepth++
		b.walkChildren(el)
		b.delDepth--

	case "mark":
		b.markDepth++
		b.walkChildren(el)
		b.markDepth--

	case "u", "ins":
		b.underline++
		b.walkChildren(el)
		b.underline--

	case "q":
		open, close := quoteGlyphs(b.quoteDepth)
		b.quoteDepth++
		b.addSpan(open, props)
		b.walkChildren(el)
		b.addSpan(close, props)
		b.quoteDepth--

	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.flushBlock()
		b.curKind = HeadingNode
		b.curLevel = int(tag[1] - '0')
		b.curAlign = alignFor(el, props)
		b.curBox = boxFromProps(props)
		b.inject(before)
		b.walkChildren(el)
		b.inject(b.pseudoSpan(el, "after"))
		b.flushBlock()
		return

	case "p", "div", "article", "section", "header", "footer", "aside",
		"main", "nav", "figure", "figcaption", "address", "details",
		"dd", "dt", "caption", "center", "fieldset", "legend", "dl",
		"hgroup", "dialog":
		if isGridDisplay(props) {
			b.flushBlock()
			b.curKind = GridNode
			b.curTracks = strings.Fields(props["grid-template-columns"])
			b.curBox = boxFromProps(props)
			b.inject(before)
			b.walkChildren(el)
			b.inject(b.pseudoSpan(el, "after"))
			b.flushBlock()
			return
		}
		b.paragraphBreak()
		b.curBox = boxFromProps(props)
		b.curAlign = alignFor(el, props)
		b.inject(before)
		b.walkChildren(el)
		b.inject(b.pseudoSpan(el, "after"))
		b.flushBlock()
		return

	case "summary":
		b.flushBlock()
		b.curKind = SummaryNode
		b.curBox = boxFromProps(props)
		b.inject(before)
		b.walkChildren(el)
		b.inject(b.pseudoSpan(el, "after"))
		b.flushBlock()
		return

	case "pre", "listing", "plaintext":
		b.flushBlock()
		b.curBox = boxFromProps(props)
		b.preDepth++
		b.inject(before)
		b.walkChildren(el)
		if len(b.curSpans) > 0 {
			b.flushPre()
		}
		b.preDepth--
		b.resetBlock()
		b.inject(b.pseudoSpan(el, "after"))
		return

	case "ul", "ol", "menu", "dir":
		b.paragraphBreak()
		b.listDepth++
		b.walkChildren(el)
		b.listDepth--

	case "li":
		b.flushBlock()
		b.curKind = ListItemNode
		b.curIndent = max(b.listDepth-1, 0)
		b.curAlign = alignFor(el, props)
		b.curBox = boxFromProps(props)
		b.inject(before)
		b.walkChildren(el)
		b.inject(b.pseudoSpan(el, "after"))
		b.flushBlock()
		return

	case "blockquote":
		b.paragraphBreak()
		b.quoteIndent++
		b.inject(before)
		b.walkChildren(el)
		b.inject(b.pseudoSpan(el, "after"))
		b.flushBlock()
		b.quoteIndent--
		return

	case "table":
		b.flushBlock()
		b.renderTable(el, props)

	case "form":
		b.result.Forms = append(b.result.Forms, FormRecord{
			Action:  el.Attr("action"),
			Method:  strings.ToLower(firstNonEmpty(el.Attr("method"), "get")),
			Enctype: el.Attr("enctype"),
		})
		prev := b.formIndex
		b.formIndex = len(b.result.Forms) - 1
		b.paragraphBreak()
		b.walkChildren(el)
		b.formIndex = prev

	case "input":
		bp := b.buildInputWidget(el)
		b.result.Widgets = append(b.result.Widgets, bp)
		if bp.Kind != "hidden" {
			b.flushBlock()
			b.emit(&RenderNode{Kind: WidgetNode, Widget: bp, Box: boxFromProps(props)})
		}

	case "select":
		bp := b.buildSelectWidget(el)
		b.result.Widgets = append(b.result.Widgets, bp)
		b.flushBlock()
		b.emit(&RenderNode{Kind: WidgetNode, Widget: bp, Box: boxFromProps(props)})

	case "textarea":
		bp := b.buildTextareaWidget(el)
		b.result.Widgets = append(b.result.Widgets, bp)
		b.flushBlock()
		b.emit(&RenderNode{Kind: WidgetNode, Widget: bp, Box: boxFromProps(props)})

	case "button":
		bp := b.buildButtonWidget(el)
		b.result.Widgets = append(b.result.Widgets, bp)
		b.flushBlock()
		b.emit(&RenderNode{Kind: WidgetNode, Widget: bp, Box: boxFromProps(props)})

	case "img":
		bp := b.buildImageWidget(el)
		b.result.Widgets = append(b.result.Widgets, bp)
		b.flushBlock()
		if b.picture != nil {
			b.emit(&RenderNode{Kind: PictureNode, Image: bp, Box: boxFromProps(props)})
		} else {
			b.emit(&RenderNode{Kind: WidgetNode, Widget: bp, Box: boxFromProps(props)})
		}

	case "picture":
		prev := b.picture
		b.picture = &pictureState{}
		b.walkChildren(el)
		b.picture = prev

	case "source":
		if b.picture != nil {
			url := firstSrcsetURL(el.Attr("srcset"))
			if url == "" {
				url = el.Attr("src")
			}
			if url != "" {
				b.picture.sources = append(b.picture.sources, url)
			}
		}

	case "svg":
		b.flushBlock()
		if b.opts.SVGRenderer != nil {
			if bp, ok := b.opts.SVGRenderer(el); ok {
				b.result.Widgets = append(b.result.Widgets, bp)
				b.emit(&RenderNode{Kind: WidgetNode, Widget: bp, Box: boxFromProps(props)})
				break
			}
		}
		b.emitPlaceholder("svg", props)

	case "iframe", "video", "audio", "object", "embed", "noembed",
		"canvas", "noscript":
		b.flushBlock()
		b.emitPlaceholder(tag, props)

	case "progress", "meter":
		b.addSpan(b.progressSpan(el), props)

	default:
		b.walkChildren(el)
	}

	b.inject(b.pseudoSpan(el, "after"))
}

func (b *Builder) emitPlaceholder(tag string, props cascade.Props) {
	b.emit(&RenderNode{
		Kind:  BlockNode,
		Spans: []InlineSpan{{Text: "[" + tag + "]", Code: true}},
		Box:   boxFromProps(props),
	})
}

// pseudoSpan resolves ::before/::after generated content for an element,
// applying the pseudo-element's counter declarations.
func (b *Builder) pseudoSpan(el *dom.Element, pseudo string) pendingSpan {
	pp := b.engine.PseudoProps(el, pseudo)
	if len(pp) == 0 || pp["display"] == "none" {
		return pendingSpan{}
	}
	applyCounterDeclarations(b.counters, pp["counter-reset"], pp["counter-increment"])

	content, ok := resolveContent(pp["content"], b.counters, el)
	if !ok {
		return pendingSpan{}
	}
	props := pp
	if pp["color"] == "" {
		props = b.engine.ComputedFor(el)
	}
	return pendingSpan{text: content, props: props, ok: true}
}

// renderTable collects cell text and emits either box-drawn preformatted
// lines or a structured table node.
func (b *Builder) renderTable(el *dom.Element, props cascade.Props) {
	rows, headerRow, caption := collectTableRows(el)

	if caption != "" {
		b.emit(&RenderNode{
			Kind:  BlockNode,
			Spans: []InlineSpan{{Text: caption, Italic: true}},
		})
	}
	if len(rows) == 0 {
		return
	}

	if b.opts.StructuredTables {
		b.emit(&RenderNode{
			Kind:      TableNode,
			Rows:      rows,
			HeaderRow: headerRow,
			Box:       boxFromProps(props),
		})
		return
	}

	for _, line := range renderTableLines(rows, headerRow) {
		b.emit(&RenderNode{
			Kind:  PreformattedNode,
			Spans: []InlineSpan{{Text: line}},
		})
	}
}

// collectTableRows flattens a table subtree into rows of cell text.
func collectTableRows(table *dom.Element) (rows [][]string, headerRow bool, caption string) {
	var walk func(n dom.Node)
	walk = func(n dom.Node) {
		for _, child := range n.Children() {
			el, ok := child.(*dom.Element)
			if !ok {
				continue
			}
			switch el.TagName {
			case "caption":
				caption = collapseWhitespace(el.Text())
			case "tr":
				var row []string
				allHeader := true
				for _, cell := range el.Children() {
					ce, ok := cell.(*dom.Element)
					if !ok {
						continue
					}
					switch ce.TagName {
					case "th":
						row = append(row, collapseWhitespace(ce.Text()))
					case "td":
						allHeader = false
						row = append(row, collapseWhitespace(ce.Text()))
					}
				}
				if len(rows) == 0 && allHeader && len(row) > 0 {
					headerRow = true
				}
				rows = append(rows, row)
			default:
				walk(el)
			}
		}
	}
	walk(table)
	return rows, headerRow, caption
}

func (b *Builder) progressSpan(el *dom.Element) string {
	maxVal := 1.0
	if m := el.Attr("max"); m != "" {
		if f, err := strconv.ParseFloat(m, 64); err == nil && f > 0 {
			maxVal = f
		}
	}
	if v := el.Attr("value"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return progressGlyphs(f/maxVal, false)
		}
	}
	return progressGlyphs(0, true)
}

func alignFor(el *dom.Element, props cascade.Props) string {
	if a := props["text-align"]; a != "" {
		return a
	}
	return strings.ToLower(el.Attr("align"))
}

func isGridDisplay(props cascade.Props) bool {
	d := props["display"]
	return d == "grid" || d == "inline-grid"
}

// quoteGlyphs returns the open/close quotation marks for a nesting depth.
func quoteGlyphs(depth int) (string, string) {
	if depth%2 == 0 {
		return "“", "”"
	}
	return "‘", "’"
}

// fontScale converts a computed font-size to a scale relative to 16px.
func fontScale(fontSize string) float64 {
	fontSize = strings.TrimSpace(strings.ToLower(fontSize))
	if fontSize == "" {
		return 1
	}
	switch fontSize {
	case "xx-small":
		return 0.5625
	case "x-small":
		return 0.625
	case "small":
		return 0.8125
	case "medium":
		return 1
	case "large":
		return 1.125
	case "x-large":
		return 1.5
	case "xx-large":
		return 2
	}

	numEnd := 0
	for numEnd < len(fontSize) {
		c := fontSize[numEnd]
		if (c >= '0' && c <= '9') || c == '.' {
			numEnd++
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(fontSize[:numEnd], 64)
	if err != nil {
		return 1
	}
	switch fontSize[numEnd:] {
	case "px":
		return f / 16
	case "em", "rem":
		return f
	case "%":
		return f / 100
	case "pt":
		return f / 12
	default:
		return 1
	}
}

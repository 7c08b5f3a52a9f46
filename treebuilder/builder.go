package treebuilder

import (
	"strings"

	"github.com/MeKo-Christian/GoWebCore/dom"
	"github.com/MeKo-Christian/GoWebCore/internal/constants"
	"github.com/MeKo-Christian/GoWebCore/tokenizer"
)

// TreeBuilder drives the HTML5 tree construction state machine.
type TreeBuilder struct {
	document *dom.Document
	alloc    *dom.NodeAllocator

	openElements []*dom.Element

	mode         InsertionMode
	originalMode InsertionMode

	headElement *dom.Element
	formElement *dom.Element

	// Table parsing support.
	pendingTableText []string
	framesetOK       bool
	fosterParenting  bool

	fragmentContext string
	fragmentRoot    *dom.Element
}

// New creates a new tree builder for full document parsing.
func New() *TreeBuilder {
	return &TreeBuilder{
		document:   dom.NewDocument(),
		alloc:      dom.NewNodeAllocator(),
		mode:       Initial,
		framesetOK: true,
	}
}

// NewFragment creates a tree builder for fragment parsing in the given
// context element (innerHTML semantics).
func NewFragment(context string) *TreeBuilder {
	tb := &TreeBuilder{
		document: dom.NewDocument(),
		alloc:    dom.NewNodeAllocator(),
		mode:     InBody,
	}

	html := tb.alloc.NewElement("html")
	tb.document.AppendChild(html)
	tb.openElements = append(tb.openElements, html)

	context = strings.ToLower(context)
	tb.fragmentContext = context
	if context != "" && context != "html" {
		ctx := tb.alloc.NewElement(context)
		html.AppendChild(ctx)
		tb.openElements = append(tb.openElements, ctx)
		tb.fragmentRoot = ctx

		switch context {
		case "tbody", "thead", "tfoot":
			tb.mode = InTableBody
		case "tr":
			tb.mode = InRow
		case "td", "th":
			tb.mode = InCell
		case "caption":
			tb.mode = InCaption
		case "colgroup":
			tb.mode = InColumnGroup
		case "table":
			tb.mode = InTable
		case "select":
			tb.mode = InSelect
		default:
			tb.mode = InBody
		}
	} else {
		tb.fragmentRoot = html
		tb.mode = BeforeHead
	}
	tb.originalMode = tb.mode

	return tb
}

// Build constructs a document from a complete token stream.
func Build(tokens []tokenizer.Token) *dom.Document {
	tb := New()
	for _, tok := range tokens {
		tb.ProcessToken(tok)
	}
	tb.ProcessToken(tokenizer.Token{Type: tokenizer.EOF})
	return tb.Document()
}

// Document returns the constructed document.
func (tb *TreeBuilder) Document() *dom.Document {
	return tb.document
}

// FragmentNodes returns the fragment's top-level child nodes.
func (tb *TreeBuilder) FragmentNodes() []dom.Node {
	if tb.fragmentRoot == nil {
		return nil
	}
	return tb.fragmentRoot.Children()
}

// ProcessToken consumes a tokenizer token and updates the tree.
func (tb *TreeBuilder) ProcessToken(tok tokenizer.Token) {
	for {
		var reprocess bool
		switch tb.mode {
		case Initial:
			reprocess = tb.processInitial(tok)
		case BeforeHTML:
			reprocess = tb.processBeforeHTML(tok)
		case BeforeHead:
			reprocess = tb.processBeforeHead(tok)
		case InHead:
			reprocess = tb.processInHead(tok)
		case AfterHead:
			reprocess = tb.processAfterHead(tok)
		case Text:
			reprocess = tb.processText(tok)
		case InBody:
			reprocess = tb.processInBody(tok)
		case InTable:
			reprocess = tb.processInTable(tok)
		case InTableText:
			reprocess = tb.processInTableText(tok)
		case InCaption:
			reprocess = tb.processInCaption(tok)
		case InColumnGroup:
			reprocess = tb.processInColumnGroup(tok)
		case InTableBody:
			reprocess = tb.processInTableBody(tok)
		case InRow:
			reprocess = tb.processInRow(tok)
		case InCell:
			reprocess = tb.processInCell(tok)
		case InSelect:
			reprocess = tb.processInSelect(tok)
		case InSelectInTable:
			reprocess = tb.processInSelectInTable(tok)
		case InTemplate:
			reprocess = tb.processInTemplate(tok)
		case AfterBody:
			reprocess = tb.processAfterBody(tok)
		case InFrameset:
			reprocess = tb.processInFrameset(tok)
		case AfterFrameset:
			reprocess = tb.processAfterFrameset(tok)
		case AfterAfterBody:
			reprocess = tb.processAfterAfterBody(tok)
		default:
			reprocess = tb.processInBody(tok)
		}
		if !reprocess {
			return
		}
	}
}

// --- Stack helpers ----------------------------------------------------

func (tb *TreeBuilder) currentNode() dom.Node {
	if len(tb.openElements) == 0 {
		return tb.document
	}
	return tb.openElements[len(tb.openElements)-1]
}

func (tb *TreeBuilder) currentElement() *dom.Element {
	if len(tb.openElements) == 0 {
		return nil
	}
	return tb.openElements[len(tb.openElements)-1]
}

func (tb *TreeBuilder) popCurrent() *dom.Element {
	if len(tb.openElements) == 0 {
		return nil
	}
	el := tb.openElements[len(tb.openElements)-1]
	tb.openElements = tb.openElements[:len(tb.openElements)-1]
	return el
}

func (tb *TreeBuilder) popUntil(name string) {
	for len(tb.openElements) > 0 {
		el := tb.popCurrent()
		if el.TagName == name {
			return
		}
	}
}

func (tb *TreeBuilder) elementInStack(name string) bool {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		if tb.openElements[i].TagName == name {
			return true
		}
	}
	return false
}

// elementInScope walks the open-element stack from the top; the target
// must be found before any terminator element.
func (tb *TreeBuilder) elementInScope(name string, terminators map[string]bool) bool {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		tag := tb.openElements[i].TagName
		if tag == name {
			return true
		}
		if terminators[tag] {
			return false
		}
	}
	return false
}

func (tb *TreeBuilder) inScope(name string) bool {
	return tb.elementInScope(name, constants.DefaultScopeTerminators)
}

func (tb *TreeBuilder) inButtonScope(name string) bool {
	return tb.elementInScope(name, constants.ButtonScopeTerminators)
}

func (tb *TreeBuilder) inListItemScope(name string) bool {
	return tb.elementInScope(name, constants.ListItemScopeTerminators)
}

func (tb *TreeBuilder) inTableScope(name string) bool {
	return tb.elementInScope(name, constants.TableScopeTerminators)
}

// generateImpliedEndTags pops implied-end-tag elements from the top of the
// stack until the excluded name (or a non-implied element) is exposed.
func (tb *TreeBuilder) generateImpliedEndTags(except string) {
	for {
		cur := tb.currentElement()
		if cur == nil || cur.TagName == except || !constants.ImpliedEndTagElements[cur.TagName] {
			return
		}
		tb.popCurrent()
	}
}

// closeNamed closes an element by name: implied end tags are generated
// first, then elements are popped through the target.
func (tb *TreeBuilder) closeNamed(name string) {
	tb.generateImpliedEndTags(name)
	tb.popUntil(name)
}

// closePElement closes an open p element per the p-auto-close rule.
func (tb *TreeBuilder) closePElement() {
	tb.generateImpliedEndTags("p")
	tb.popUntil("p")
}

// --- Insertion --------------------------------------------------------

func (tb *TreeBuilder) insertComment(data string) {
	tb.insertNode(tb.alloc.NewComment(data), nil)
}

func (tb *TreeBuilder) insertText(data string) {
	if data == "" {
		return
	}
	parent, before := tb.appropriateInsertionLocation()
	tb.insertNode(tb.alloc.NewText(data), &insertionLocation{parent: parent, before: before})
}

func (tb *TreeBuilder) insertElement(name string, attrs []tokenizer.Attr) *dom.Element {
	el := tb.createElement(name, attrs)
	tb.insertNode(el, nil)
	tb.openElements = append(tb.openElements, el)
	return el
}

// insertVoidElement inserts an element that takes no children and does not
// remain on the open-element stack.
func (tb *TreeBuilder) insertVoidElement(name string, attrs []tokenizer.Attr) *dom.Element {
	el := tb.insertElement(name, attrs)
	tb.popCurrent()
	return el
}

func (tb *TreeBuilder) createElement(name string, attrs []tokenizer.Attr) *dom.Element {
	el := tb.alloc.NewElement(name)
	if el.TagName == "template" && el.TemplateContent == nil {
		el.TemplateContent = dom.NewDocumentFragment()
	}
	for _, a := range attrs {
		el.Attributes.SetIfAbsent(a.Name, a.Value)
	}
	return el
}

// addMissingAttributes merges attributes from a duplicate <html> or <body>
// start tag into the existing element.
func (tb *TreeBuilder) addMissingAttributes(el *dom.Element, attrs []tokenizer.Attr) {
	if el == nil {
		return
	}
	for _, a := range attrs {
		el.Attributes.SetIfAbsent(a.Name, a.Value)
	}
}

type insertionLocation struct {
	parent dom.Node
	before dom.Node
}

func (tb *TreeBuilder) withFosterParenting(fn func() bool) bool {
	prev := tb.fosterParenting
	tb.fosterParenting = true
	defer func() { tb.fosterParenting = prev }()
	return fn()
}

// appropriateInsertionLocation determines where the next node goes,
// honoring template content and foster parenting.
func (tb *TreeBuilder) appropriateInsertionLocation() (dom.Node, dom.Node) {
	current := tb.currentElement()
	if current != nil && current.TagName == "template" {
		if current.TemplateContent == nil {
			current.TemplateContent = dom.NewDocumentFragment()
		}
		return current.TemplateContent, nil
	}
	if !tb.fosterParenting || current == nil || !constants.TableFosterTargets[current.TagName] {
		return tb.currentNode(), nil
	}
	return tb.fosterInsertionLocation()
}

// fosterInsertionLocation finds the spot just before the innermost open
// table. If a template is open above the table, content goes inside the
// template instead.
func (tb *TreeBuilder) fosterInsertionLocation() (dom.Node, dom.Node) {
	tableEl, tableIndex := tb.lastInStack("table")
	templateEl, templateIndex := tb.lastInStack("template")
	if templateEl != nil && (tableEl == nil || templateIndex > tableIndex) {
		if templateEl.TemplateContent == nil {
			templateEl.TemplateContent = dom.NewDocumentFragment()
		}
		return templateEl.TemplateContent, nil
	}
	if tableEl == nil {
		return tb.currentNode(), nil
	}
	if p := tableEl.Parent(); p != nil {
		return p, tableEl
	}
	if tableIndex > 0 {
		return tb.openElements[tableIndex-1], nil
	}
	return tb.document, nil
}

func (tb *TreeBuilder) lastInStack(name string) (*dom.Element, int) {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		if tb.openElements[i].TagName == name {
			return tb.openElements[i], i
		}
	}
	return nil, -1
}

// insertNode places a node at the given location (or the appropriate one),
// eagerly coalescing adjacent text nodes.
func (tb *TreeBuilder) insertNode(node dom.Node, loc *insertionLocation) {
	var parent dom.Node
	var before dom.Node
	if loc != nil && loc.parent != nil {
		parent = loc.parent
		before = loc.before
	} else {
		parent, before = tb.appropriateInsertionLocation()
	}

	if before == nil {
		children := parent.Children()
		if txt, ok := node.(*dom.Text); ok && len(children) > 0 {
			if last, ok := children[len(children)-1].(*dom.Text); ok {
				last.Append(txt.Data)
				return
			}
		}
		parent.AppendChild(node)
		return
	}

	if txt, ok := node.(*dom.Text); ok {
		if mergeTarget := siblingTextBefore(parent, before); mergeTarget != nil {
			mergeTarget.Append(txt.Data)
			return
		}
		if beforeText, ok := before.(*dom.Text); ok {
			beforeText.Prepend(txt.Data)
			return
		}
	}
	parent.InsertBefore(node, before)
}

func siblingTextBefore(parent dom.Node, ref dom.Node) *dom.Text {
	children := parent.Children()
	for i := range children {
		if children[i] == ref {
			if i > 0 {
				if t, ok := children[i-1].(*dom.Text); ok {
					return t
				}
			}
			return nil
		}
	}
	return nil
}

// clearStackBackToTableContext pops until a table, template, or html
// element is current.
func (tb *TreeBuilder) clearStackBackToTableContext() {
	for {
		cur := tb.currentElement()
		if cur == nil {
			return
		}
		switch cur.TagName {
		case "table", "template", "html":
			return
		}
		tb.popCurrent()
	}
}

// clearStackBackToTableBodyContext pops until a table section, template,
// or html element is current.
func (tb *TreeBuilder) clearStackBackToTableBodyContext() {
	for {
		cur := tb.currentElement()
		if cur == nil {
			return
		}
		switch cur.TagName {
		case "tbody", "tfoot", "thead", "template", "html":
			return
		}
		tb.popCurrent()
	}
}

// clearStackBackToTableRowContext pops until a tr, template, or html
// element is current.
func (tb *TreeBuilder) clearStackBackToTableRowContext() {
	for {
		cur := tb.currentElement()
		if cur == nil {
			return
		}
		switch cur.TagName {
		case "tr", "template", "html":
			return
		}
		tb.popCurrent()
	}
}

// resetInsertionMode selects the mode appropriate for the current stack.
func (tb *TreeBuilder) resetInsertionMode() {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		switch tb.openElements[i].TagName {
		case "select":
			tb.mode = InSelect
			return
		case "td", "th":
			tb.mode = InCell
			return
		case "tr":
			tb.mode = InRow
			return
		case "tbody", "thead", "tfoot":
			tb.mode = InTableBody
			return
		case "caption":
			tb.mode = InCaption
			return
		case "colgroup":
			tb.mode = InColumnGroup
			return
		case "table":
			tb.mode = InTable
			return
		case "template":
			tb.mode = InTemplate
			return
		case "head":
			tb.mode = InHead
			return
		case "body":
			tb.mode = InBody
			return
		case "frameset":
			tb.mode = InFrameset
			return
		case "html":
			if tb.headElement == nil {
				tb.mode = BeforeHead
			} else {
				tb.mode = AfterHead
			}
			return
		}
	}
	tb.mode = InBody
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		switch r {
		case '\t', '\n', '\f', '\r', ' ':
			continue
		default:
			return false
		}
	}
	return true
}

func ptrToString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

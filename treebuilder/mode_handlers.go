package treebuilder

import (
	"strings"

	"github.com/MeKo-Christian/GoWebCore/dom"
	"github.com/MeKo-Christian/GoWebCore/internal/constants"
	"github.com/MeKo-Christian/GoWebCore/tokenizer"
)

// Insertion mode handlers. Each returns true when the token must be
// reprocessed in the (possibly changed) current mode.

func (tb *TreeBuilder) processInitial(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
		tb.document.QuirksMode = dom.Quirks
		tb.mode = BeforeHTML
		return true
	case tokenizer.Comment:
		tb.document.AppendChild(tb.alloc.NewComment(tok.Data))
		return false
	case tokenizer.DOCTYPE:
		tb.document.Doctype = dom.NewDocumentType(tok.Name, ptrToString(tok.PublicID), ptrToString(tok.SystemID))
		tb.setQuirksModeFromDoctype(tok)
		tb.mode = BeforeHTML
		return false
	default:
		tb.document.QuirksMode = dom.Quirks
		tb.mode = BeforeHTML
		return true
	}
}

func (tb *TreeBuilder) processBeforeHTML(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
		tok.Data = strings.TrimLeft(tok.Data, "\t\n\f\r ")
	case tokenizer.Comment:
		tb.document.AppendChild(tb.alloc.NewComment(tok.Data))
		return false
	case tokenizer.DOCTYPE:
		return false
	case tokenizer.StartTag:
		if tok.Name == "html" {
			tb.insertElement("html", tok.Attrs)
			tb.mode = BeforeHead
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "head", "body", "html", "br":
			// Trigger implicit root creation and reprocess.
		default:
			return false
		}
	}

	tb.insertElement("html", nil)
	tb.mode = BeforeHead
	return true
}

func (tb *TreeBuilder) processBeforeHead(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.DOCTYPE:
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			if len(tb.openElements) > 0 && tb.openElements[0].TagName == "html" {
				tb.addMissingAttributes(tb.openElements[0], tok.Attrs)
			}
			return false
		case "head":
			tb.headElement = tb.insertElement("head", tok.Attrs)
			tb.mode = InHead
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "head", "body", "html", "br":
			// Fall through to implicit head creation.
		default:
			return false
		}
	}

	tb.headElement = tb.insertElement("head", nil)
	tb.mode = InHead
	return true
}

func (tb *TreeBuilder) processInHead(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.DOCTYPE:
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			tb.mode = InBody
			return true
		case "title", "textarea", "script", "style", "xmp", "noframes", "noembed":
			// The tokenizer has already switched to raw-text/RCDATA for
			// these; the element's content arrives as a single text run.
			tb.insertElement(tok.Name, tok.Attrs)
			tb.originalMode = tb.mode
			tb.mode = Text
			return false
		case "noscript":
			tb.insertElement(tok.Name, tok.Attrs)
			return false
		case "base", "basefont", "bgsound", "link", "meta":
			tb.insertVoidElement(tok.Name, tok.Attrs)
			return false
		case "template":
			tb.insertElement("template", tok.Attrs)
			tb.mode = InTemplate
			return false
		case "head":
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "head":
			tb.popUntil("head")
			tb.mode = AfterHead
			return false
		case "noscript":
			if tb.elementInStack("noscript") {
				tb.popUntil("noscript")
			}
			return false
		case "template":
			if !tb.elementInStack("template") {
				return false
			}
			tb.popUntil("template")
			tb.resetInsertionMode()
			return false
		case "body", "html", "br":
			// Fall through: close head and reprocess.
		default:
			return false
		}
	case tokenizer.EOF:
		tb.popUntil("head")
		tb.mode = AfterHead
		return true
	}

	tb.popUntil("head")
	tb.mode = AfterHead
	return true
}

func (tb *TreeBuilder) processAfterHead(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.DOCTYPE:
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			tb.mode = InBody
			return true
		case "body":
			tb.insertElement("body", tok.Attrs)
			tb.framesetOK = false
			tb.mode = InBody
			return false
		case "frameset":
			tb.insertElement("frameset", tok.Attrs)
			tb.mode = InFrameset
			return false
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			// Misnested head element: re-enter the head to place it.
			return tb.reprocessInHead(tok)
		case "head":
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "template":
			return tb.reprocessInHead(tok)
		case "body", "html", "br":
			// Fall through to implicit body.
		default:
			return false
		}
	}

	tb.insertElement("body", nil)
	tb.mode = InBody
	return true
}

// reprocessInHead temporarily re-enters in-head handling for elements that
// appear after the head was closed.
func (tb *TreeBuilder) reprocessInHead(tok tokenizer.Token) bool {
	if tb.headElement != nil {
		tb.openElements = append(tb.openElements, tb.headElement)
		reprocess := tb.processInHead(tok)
		for i := len(tb.openElements) - 1; i >= 0; i-- {
			if tb.openElements[i] == tb.headElement {
				tb.openElements = append(tb.openElements[:i], tb.openElements[i+1:]...)
				break
			}
		}
		return reprocess
	}
	return tb.processInHead(tok)
}

func (tb *TreeBuilder) processText(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		tb.insertText(tok.Data)
		return false
	case tokenizer.EndTag:
		tb.popCurrent()
		tb.mode = tb.originalMode
		return false
	case tokenizer.EOF:
		tb.popCurrent()
		tb.mode = tb.originalMode
		return true
	default:
		return false
	}
}

//nolint:gocyclo // the in-body mode is the heart of the algorithm
func (tb *TreeBuilder) processInBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		data := strings.ReplaceAll(tok.Data, "\x00", "")
		if data == "" {
			return false
		}
		tb.insertText(data)
		if !isAllWhitespace(data) {
			tb.framesetOK = false
		}
		return false

	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false

	case tokenizer.DOCTYPE:
		return false

	case tokenizer.StartTag:
		return tb.processInBodyStartTag(tok)

	case tokenizer.EndTag:
		return tb.processInBodyEndTag(tok)

	case tokenizer.EOF:
		return false
	}
	return false
}

//nolint:gocyclo // tag dispatch mandated by the algorithm
func (tb *TreeBuilder) processInBodyStartTag(tok tokenizer.Token) bool {
	name := tok.Name
	switch name {
	case "html":
		if len(tb.openElements) > 0 && tb.openElements[0].TagName == "html" {
			tb.addMissingAttributes(tb.openElements[0], tok.Attrs)
		}
		return false

	case "base", "basefont", "bgsound", "link", "meta", "noframes", "style",
		"script", "template", "title":
		return tb.processInHead(tok)

	case "body":
		if body := tb.document.Body(); body != nil {
			tb.addMissingAttributes(body, tok.Attrs)
		}
		return false

	case "frameset":
		// Ignored once content has committed the document to a body.
		return false

	case "p", "div", "address", "article", "aside", "blockquote", "center",
		"details", "dialog", "dir", "dl", "fieldset", "figcaption", "figure",
		"footer", "header", "hgroup", "main", "menu", "nav", "ol", "section",
		"summary", "ul":
		if tb.inButtonScope("p") {
			tb.closePElement()
		}
		tb.insertElement(name, tok.Attrs)
		return false

	case "h1", "h2", "h3", "h4", "h5", "h6":
		if tb.inButtonScope("p") {
			tb.closePElement()
		}
		if cur := tb.currentElement(); cur != nil && constants.HeadingElements[cur.TagName] {
			tb.popCurrent()
		}
		tb.insertElement(name, tok.Attrs)
		return false

	case "pre", "listing":
		if tb.inButtonScope("p") {
			tb.closePElement()
		}
		tb.insertElement(name, tok.Attrs)
		tb.framesetOK = false
		return false

	case "form":
		if tb.formElement != nil {
			return false
		}
		if tb.inButtonScope("p") {
			tb.closePElement()
		}
		tb.formElement = tb.insertElement(name, tok.Attrs)
		return false

	case "li":
		tb.framesetOK = false
		if tb.inListItemScope("li") {
			tb.closeNamed("li")
		}
		if tb.inButtonScope("p") {
			tb.closePElement()
		}
		tb.insertElement(name, tok.Attrs)
		return false

	case "dd", "dt":
		tb.framesetOK = false
		if tb.inScope("dd") {
			tb.closeNamed("dd")
		}
		if tb.inScope("dt") {
			tb.closeNamed("dt")
		}
		if tb.inButtonScope("p") {
			tb.closePElement()
		}
		tb.insertElement(name, tok.Attrs)
		return false

	case "button":
		if tb.inScope("button") {
			tb.closeNamed("button")
		}
		tb.insertElement(name, tok.Attrs)
		tb.framesetOK = false
		return false

	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
		"strike", "strong", "tt", "u":
		tb.insertElement(name, tok.Attrs)
		return false

	case "table":
		if tb.document.QuirksMode != dom.Quirks && tb.inButtonScope("p") {
			tb.closePElement()
		}
		tb.insertElement(name, tok.Attrs)
		tb.framesetOK = false
		tb.mode = InTable
		return false

	case "area", "br", "embed", "img", "wbr":
		tb.insertVoidElement(name, tok.Attrs)
		tb.framesetOK = false
		return false

	case "input":
		tb.insertVoidElement(name, tok.Attrs)
		if !strings.EqualFold(tok.AttrVal("type"), "hidden") {
			tb.framesetOK = false
		}
		return false

	case "param", "source", "track", "col":
		tb.insertVoidElement(name, tok.Attrs)
		return false

	case "hr":
		if tb.inButtonScope("p") {
			tb.closePElement()
		}
		tb.insertVoidElement(name, tok.Attrs)
		tb.framesetOK = false
		return false

	case "image":
		// Historical alias.
		tok.Name = "img"
		return tb.processInBodyStartTag(tok)

	case "textarea":
		tb.insertElement(name, tok.Attrs)
		tb.originalMode = tb.mode
		tb.mode = Text
		tb.framesetOK = false
		return false

	case "xmp":
		if tb.inButtonScope("p") {
			tb.closePElement()
		}
		tb.framesetOK = false
		tb.insertElement(name, tok.Attrs)
		tb.originalMode = tb.mode
		tb.mode = Text
		return false

	case "noembed":
		tb.insertElement(name, tok.Attrs)
		tb.originalMode = tb.mode
		tb.mode = Text
		return false

	case "select":
		tb.insertElement(name, tok.Attrs)
		tb.framesetOK = false
		switch tb.mode {
		case InTable, InCaption, InTableBody, InRow, InCell:
			tb.mode = InSelectInTable
		default:
			tb.mode = InSelect
		}
		return false

	case "optgroup", "option":
		if cur := tb.currentElement(); cur != nil && cur.TagName == "option" {
			tb.popCurrent()
		}
		tb.insertElement(name, tok.Attrs)
		return false

	case "rb", "rp", "rt", "rtc":
		if tb.inScope("ruby") {
			tb.generateImpliedEndTags(name)
		}
		tb.insertElement(name, tok.Attrs)
		return false

	case "caption", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
		// Table parts outside a table: parse error, ignore.
		return false

	case "head":
		return false

	default:
		tb.insertElement(name, tok.Attrs)
		return false
	}
}

//nolint:gocyclo // tag dispatch mandated by the algorithm
func (tb *TreeBuilder) processInBodyEndTag(tok tokenizer.Token) bool {
	name := tok.Name
	switch name {
	case "body":
		if tb.inScope("body") {
			tb.mode = AfterBody
		}
		return false

	case "html":
		if tb.inScope("body") {
			tb.mode = AfterBody
			return true
		}
		return false

	case "p":
		if !tb.inButtonScope("p") {
			tb.insertElement("p", nil)
		}
		tb.closePElement()
		return false

	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !tb.headingInScope() {
			return false
		}
		tb.generateImpliedEndTags("")
		for len(tb.openElements) > 0 {
			el := tb.popCurrent()
			if constants.HeadingElements[el.TagName] {
				break
			}
		}
		return false

	case "li":
		if tb.inListItemScope("li") {
			tb.closeNamed("li")
		}
		return false

	case "dd", "dt":
		if tb.inScope(name) {
			tb.closeNamed(name)
		}
		return false

	case "form":
		tb.formElement = nil
		if tb.inScope("form") {
			tb.closeNamed("form")
		}
		return false

	case "br":
		// Treated as <br> start tag.
		tb.insertVoidElement("br", nil)
		tb.framesetOK = false
		return false

	case "template":
		if tb.elementInStack("template") {
			tb.popUntil("template")
			tb.resetInsertionMode()
		}
		return false

	default:
		if tb.inScope(name) {
			tb.closeNamed(name)
		}
		return false
	}
}

func (tb *TreeBuilder) headingInScope() bool {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		tag := tb.openElements[i].TagName
		if constants.HeadingElements[tag] {
			return true
		}
		if constants.DefaultScopeTerminators[tag] {
			return false
		}
	}
	return false
}

// --- Table modes ------------------------------------------------------

func (tb *TreeBuilder) processInTable(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		cur := tb.currentElement()
		if cur != nil && constants.TableFosterTargets[cur.TagName] {
			tb.pendingTableText = tb.pendingTableText[:0]
			tb.originalMode = tb.mode
			tb.mode = InTableText
			return true
		}
		return tb.fosterProcessInBody(tok)

	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false

	case tokenizer.DOCTYPE:
		return false

	case tokenizer.StartTag:
		switch tok.Name {
		case "caption":
			tb.clearStackBackToTableContext()
			tb.insertElement(tok.Name, tok.Attrs)
			tb.mode = InCaption
			return false
		case "colgroup":
			tb.clearStackBackToTableContext()
			tb.insertElement(tok.Name, tok.Attrs)
			tb.mode = InColumnGroup
			return false
		case "col":
			tb.clearStackBackToTableContext()
			tb.insertElement("colgroup", nil)
			tb.mode = InColumnGroup
			return true
		case "tbody", "tfoot", "thead":
			tb.clearStackBackToTableContext()
			tb.insertElement(tok.Name, tok.Attrs)
			tb.mode = InTableBody
			return false
		case "td", "th", "tr":
			// Synthesize the missing <tbody>.
			tb.clearStackBackToTableContext()
			tb.insertElement("tbody", nil)
			tb.mode = InTableBody
			return true
		case "table":
			if tb.inTableScope("table") {
				tb.popUntil("table")
				tb.resetInsertionMode()
				return true
			}
			return false
		case "style", "script", "template":
			return tb.processInHead(tok)
		case "input":
			if strings.EqualFold(tok.AttrVal("type"), "hidden") {
				tb.insertVoidElement(tok.Name, tok.Attrs)
				return false
			}
			return tb.fosterProcessInBody(tok)
		case "form":
			if tb.formElement == nil {
				tb.formElement = tb.insertVoidElement(tok.Name, tok.Attrs)
			}
			return false
		default:
			return tb.fosterProcessInBody(tok)
		}

	case tokenizer.EndTag:
		switch tok.Name {
		case "table":
			if tb.inTableScope("table") {
				tb.popUntil("table")
				tb.resetInsertionMode()
			}
			return false
		case "body", "caption", "col", "colgroup", "html", "tbody", "td",
			"tfoot", "th", "thead", "tr":
			return false
		case "template":
			return tb.processInHead(tok)
		default:
			return tb.fosterProcessInBody(tok)
		}

	case tokenizer.EOF:
		return false
	}
	return false
}

// fosterProcessInBody handles misplaced table content: it is processed
// using in-body rules with foster parenting enabled.
func (tb *TreeBuilder) fosterProcessInBody(tok tokenizer.Token) bool {
	return tb.withFosterParenting(func() bool {
		return tb.processInBody(tok)
	})
}

func (tb *TreeBuilder) processInTableText(tok tokenizer.Token) bool {
	if tok.Type == tokenizer.Character {
		data := strings.ReplaceAll(tok.Data, "\x00", "")
		if data != "" {
			tb.pendingTableText = append(tb.pendingTableText, data)
		}
		return false
	}

	// Flush pending text: whitespace stays in the table; anything else is
	// foster parented before it.
	text := strings.Join(tb.pendingTableText, "")
	tb.pendingTableText = tb.pendingTableText[:0]
	if text != "" {
		if isAllWhitespace(text) {
			tb.insertText(text)
		} else {
			tb.withFosterParenting(func() bool {
				tb.insertText(text)
				return false
			})
		}
	}
	tb.mode = tb.originalMode
	return true
}

func (tb *TreeBuilder) processInCaption(tok tokenizer.Token) bool {
	closeCaption := func() bool {
		if !tb.inTableScope("caption") {
			return false
		}
		tb.generateImpliedEndTags("")
		tb.popUntil("caption")
		tb.mode = InTable
		return true
	}

	switch tok.Type {
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th",
			"thead", "tr":
			if closeCaption() {
				return true
			}
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "caption":
			closeCaption()
			return false
		case "table":
			if closeCaption() {
				return true
			}
			return false
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot",
			"th", "thead", "tr":
			return false
		}
	}
	return tb.processInBody(tok)
}

func (tb *TreeBuilder) processInColumnGroup(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return false
		}
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.DOCTYPE:
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "col":
			tb.insertVoidElement(tok.Name, tok.Attrs)
			return false
		case "template":
			return tb.processInHead(tok)
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "colgroup":
			if cur := tb.currentElement(); cur != nil && cur.TagName == "colgroup" {
				tb.popCurrent()
				tb.mode = InTable
			}
			return false
		case "col":
			return false
		case "template":
			return tb.processInHead(tok)
		}
	case tokenizer.EOF:
		return false
	}

	if cur := tb.currentElement(); cur != nil && cur.TagName == "colgroup" {
		tb.popCurrent()
		tb.mode = InTable
		return true
	}
	return false
}

func (tb *TreeBuilder) processInTableBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.StartTag:
		switch tok.Name {
		case "tr":
			tb.clearStackBackToTableBodyContext()
			tb.insertElement(tok.Name, tok.Attrs)
			tb.mode = InRow
			return false
		case "th", "td":
			// Synthesize the missing <tr>.
			tb.clearStackBackToTableBodyContext()
			tb.insertElement("tr", nil)
			tb.mode = InRow
			return true
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if tb.tableBodyInScope() {
				tb.clearStackBackToTableBodyContext()
				tb.popCurrent()
				tb.mode = InTable
				return true
			}
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "tbody", "tfoot", "thead":
			if tb.inTableScope(tok.Name) {
				tb.clearStackBackToTableBodyContext()
				tb.popCurrent()
				tb.mode = InTable
			}
			return false
		case "table":
			if tb.tableBodyInScope() {
				tb.clearStackBackToTableBodyContext()
				tb.popCurrent()
				tb.mode = InTable
				return true
			}
			return false
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			return false
		}
	}
	return tb.processInTable(tok)
}

func (tb *TreeBuilder) tableBodyInScope() bool {
	return tb.inTableScope("tbody") || tb.inTableScope("thead") || tb.inTableScope("tfoot")
}

func (tb *TreeBuilder) processInRow(tok tokenizer.Token) bool {
	closeRow := func() bool {
		if !tb.inTableScope("tr") {
			return false
		}
		tb.clearStackBackToTableRowContext()
		tb.popCurrent()
		tb.mode = InTableBody
		return true
	}

	switch tok.Type {
	case tokenizer.StartTag:
		switch tok.Name {
		case "th", "td":
			tb.clearStackBackToTableRowContext()
			tb.insertElement(tok.Name, tok.Attrs)
			tb.mode = InCell
			return false
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if closeRow() {
				return true
			}
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "tr":
			closeRow()
			return false
		case "table":
			if closeRow() {
				return true
			}
			return false
		case "tbody", "tfoot", "thead":
			if tb.inTableScope(tok.Name) && closeRow() {
				return true
			}
			return false
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			return false
		}
	}
	return tb.processInTable(tok)
}

func (tb *TreeBuilder) processInCell(tok tokenizer.Token) bool {
	closeCell := func() bool {
		for _, cell := range []string{"td", "th"} {
			if tb.inTableScope(cell) {
				tb.generateImpliedEndTags("")
				tb.popUntil(cell)
				tb.mode = InRow
				return true
			}
		}
		return false
	}

	switch tok.Type {
	case tokenizer.StartTag:
		switch tok.Name {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th",
			"thead", "tr":
			if closeCell() {
				return true
			}
			return false
		}
	case tokenizer.EndTag:
		switch tok.Name {
		case "td", "th":
			if tb.inTableScope(tok.Name) {
				tb.generateImpliedEndTags("")
				tb.popUntil(tok.Name)
				tb.mode = InRow
			}
			return false
		case "body", "caption", "col", "colgroup", "html":
			return false
		case "table", "tbody", "tfoot", "thead", "tr":
			if tb.inTableScope(tok.Name) && closeCell() {
				return true
			}
			return false
		}
	}
	return tb.processInBody(tok)
}

// --- Select modes -----------------------------------------------------

func (tb *TreeBuilder) processInSelect(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		data := strings.ReplaceAll(tok.Data, "\x00", "")
		tb.insertText(data)
		return false
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.DOCTYPE:
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "html":
			return tb.processInBody(tok)
		case "option":
			if cur := tb.currentElement(); cur != nil && cur.TagName == "option" {
				tb.popCurrent()
			}
			tb.insertElement(tok.Name, tok.Attrs)
			return false
		case "optgroup":
			if cur := tb.currentElement(); cur != nil && cur.TagName == "option" {
				tb.popCurrent()
			}
			if cur := tb.currentElement(); cur != nil && cur.TagName == "optgroup" {
				tb.popCurrent()
			}
			tb.insertElement(tok.Name, tok.Attrs)
			return false
		case "select":
			tb.closeSelect()
			return false
		case "input", "keygen", "textarea":
			tb.closeSelect()
			return true
		case "script", "template":
			return tb.processInHead(tok)
		}
		return false
	case tokenizer.EndTag:
		switch tok.Name {
		case "optgroup":
			if cur := tb.currentElement(); cur != nil && cur.TagName == "option" {
				tb.popCurrent()
			}
			if cur := tb.currentElement(); cur != nil && cur.TagName == "optgroup" {
				tb.popCurrent()
			}
			return false
		case "option":
			if cur := tb.currentElement(); cur != nil && cur.TagName == "option" {
				tb.popCurrent()
			}
			return false
		case "select":
			tb.closeSelect()
			return false
		case "template":
			return tb.processInHead(tok)
		}
		return false
	case tokenizer.EOF:
		return false
	}
	return false
}

func (tb *TreeBuilder) closeSelect() {
	if tb.elementInStack("select") {
		tb.popUntil("select")
		tb.resetInsertionMode()
	}
}

func (tb *TreeBuilder) processInSelectInTable(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.StartTag, tokenizer.EndTag:
		switch tok.Name {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			tb.closeSelect()
			if tok.Type == tokenizer.StartTag {
				return true
			}
			return false
		}
	}
	return tb.processInSelect(tok)
}

// --- Tail modes -------------------------------------------------------

// processInTemplate is intentionally minimal: template content parses with
// in-body rules inside the template's content fragment.
func (tb *TreeBuilder) processInTemplate(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.EndTag:
		if tok.Name == "template" {
			tb.popUntil("template")
			tb.resetInsertionMode()
			return false
		}
	case tokenizer.EOF:
		if tb.elementInStack("template") {
			tb.popUntil("template")
			tb.resetInsertionMode()
			return true
		}
		return false
	}
	return tb.processInBody(tok)
}

func (tb *TreeBuilder) processAfterBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return tb.processInBody(tok)
		}
	case tokenizer.Comment:
		if root := tb.document.DocumentElement(); root != nil {
			root.AppendChild(tb.alloc.NewComment(tok.Data))
		}
		return false
	case tokenizer.DOCTYPE:
		return false
	case tokenizer.EndTag:
		if tok.Name == "html" {
			tb.mode = AfterAfterBody
			return false
		}
	case tokenizer.EOF:
		return false
	}

	tb.mode = InBody
	return true
}

func (tb *TreeBuilder) processInFrameset(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
		}
		return false
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.StartTag:
		switch tok.Name {
		case "frameset":
			tb.insertElement(tok.Name, tok.Attrs)
			return false
		case "frame":
			tb.insertVoidElement(tok.Name, tok.Attrs)
			return false
		case "noframes":
			return tb.processInHead(tok)
		}
		return false
	case tokenizer.EndTag:
		if tok.Name == "frameset" {
			if cur := tb.currentElement(); cur != nil && cur.TagName == "frameset" {
				tb.popCurrent()
			}
			if cur := tb.currentElement(); cur != nil && cur.TagName != "frameset" {
				tb.mode = AfterFrameset
			}
		}
		return false
	}
	return false
}

// processAfterFrameset is a minimal tail mode.
func (tb *TreeBuilder) processAfterFrameset(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
		}
		return false
	case tokenizer.Comment:
		tb.insertComment(tok.Data)
		return false
	case tokenizer.EndTag:
		if tok.Name == "html" {
			tb.mode = AfterAfterBody
		}
		return false
	}
	return false
}

// processAfterAfterBody is a minimal tail mode.
func (tb *TreeBuilder) processAfterAfterBody(tok tokenizer.Token) bool {
	switch tok.Type {
	case tokenizer.Comment:
		tb.document.AppendChild(tb.alloc.NewComment(tok.Data))
		return false
	case tokenizer.Character:
		if isAllWhitespace(tok.Data) {
			return tb.processInBody(tok)
		}
	case tokenizer.DOCTYPE:
		return false
	case tokenizer.EOF:
		return false
	}

	tb.mode = InBody
	return true
}

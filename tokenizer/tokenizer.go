package tokenizer

import (
	"strings"

	"github.com/MeKo-Christian/GoWebCore/internal/constants"
)

// Tokenizer implements the HTML5 tokenization state machine.
//
// It produces a stream of tokens and collects parse errors. The tokenizer
// never fails: malformed input produces best-effort tokens.
//
// Input may arrive in one piece (New) or incrementally (NewStreaming +
// Append). When input runs out mid-construct and more may still arrive,
// the machine suspends with its state intact; buffered text is only
// emitted once a tag interrupts it or the input is finalized. This keeps
// chunked tokenization byte-for-byte equivalent to a single pass.
type Tokenizer struct {
	buf []rune
	pos int

	state State

	reconsume bool
	ignoreLF  bool
	sawBOM    bool

	final    bool
	finished bool

	line   int
	column int

	// Current tag token being built.
	currentTagKind        TokenKind
	currentTagName        []rune
	currentTagAttrs       []Attr
	currentTagAttrSeen    map[string]struct{}
	currentTagSelfClosing bool

	currentAttrName    []rune
	currentAttrValue   []rune
	currentAttrHasAmp  bool

	currentComment []rune

	currentDoctypeName        []rune
	currentDoctypePublic      *[]rune // nil = not set
	currentDoctypeSystem      *[]rune
	currentDoctypeForceQuirks bool
	doctypeIDQuote            rune
	commentBang               bool

	// For rawtext/rcdata end-tag matching.
	rawtextTagName string
	tempBuffer     []rune

	textBuffer strings.Builder
	textHasAmp bool

	pending []Token
	errors  []ParseError
}

// ParseError represents a tokenizer parse error.
type ParseError struct {
	Code    string
	Line    int
	Column  int
}

// New creates a tokenizer over a complete input string.
func New(input string) *Tokenizer {
	t := NewStreaming()
	t.Append(input)
	t.final = true
	return t
}

// NewStreaming creates a tokenizer that accepts input via Append.
// Call Finish once all input has been appended.
func NewStreaming() *Tokenizer {
	return &Tokenizer{
		state:  DataState,
		line:   1,
		column: 0,
	}
}

// Append adds more input to the tokenizer. A leading U+FEFF BOM on the very
// first append is discarded.
func (t *Tokenizer) Append(input string) {
	r := []rune(input)
	if !t.sawBOM {
		t.sawBOM = true
		if len(r) > 0 && r[0] == 0xFEFF {
			r = r[1:]
		}
	}
	t.buf = append(t.buf, r...)
}

// Finish marks the input complete. Subsequent Next calls drain remaining
// tokens and then return EOF.
func (t *Tokenizer) Finish() {
	t.final = true
}

// Errors returns the parse errors encountered so far.
func (t *Tokenizer) Errors() []ParseError {
	return t.errors
}

// Next returns the next token.
// Returns a token with Type == EOF when input is exhausted.
func (t *Tokenizer) Next() Token {
	for len(t.pending) == 0 {
		if t.pos < len(t.buf) || t.reconsume {
			t.step()
			continue
		}
		if t.final && !t.finished {
			t.finalize()
			continue
		}
		return Token{Type: EOF}
	}
	token := t.pending[0]
	t.pending = t.pending[1:]
	return token
}

// run advances the machine until the available input is consumed.
// Completed tokens accumulate in the pending queue.
func (t *Tokenizer) run() {
	for t.pos < len(t.buf) || t.reconsume {
		t.step()
	}
	if t.final && !t.finished {
		t.finalize()
	}
}

// takePending removes and returns all queued tokens.
func (t *Tokenizer) takePending() []Token {
	out := t.pending
	t.pending = nil
	return out
}

// Tokenize runs the tokenizer over a complete input and returns all tokens
// except the trailing EOF sentinel.
func Tokenize(input string) []Token {
	t := New(input)
	var out []Token
	for {
		tok := t.Next()
		if tok.Type == EOF {
			return out
		}
		out = append(out, tok)
	}
}

//nolint:gocyclo // state machine dispatcher
func (t *Tokenizer) step() {
	switch t.state {
	case DataState:
		t.stateData()
	case RCDATAState:
		t.stateRCDATA()
	case RAWTEXTState:
		t.stateRAWTEXT()
	case TagOpenState:
		t.stateTagOpen()
	case EndTagOpenState:
		t.stateEndTagOpen()
	case TagNameState:
		t.stateTagName()
	case RCDATALessThanSignState:
		t.stateTextLessThanSign(RCDATAState, RCDATAEndTagOpenState)
	case RCDATAEndTagOpenState:
		t.stateTextEndTagOpen(RCDATAState, RCDATAEndTagNameState)
	case RCDATAEndTagNameState:
		t.stateTextEndTagName(RCDATAState, true)
	case RAWTEXTLessThanSignState:
		t.stateTextLessThanSign(RAWTEXTState, RAWTEXTEndTagOpenState)
	case RAWTEXTEndTagOpenState:
		t.stateTextEndTagOpen(RAWTEXTState, RAWTEXTEndTagNameState)
	case RAWTEXTEndTagNameState:
		t.stateTextEndTagName(RAWTEXTState, false)
	case BeforeAttributeNameState:
		t.stateBeforeAttributeName()
	case AttributeNameState:
		t.stateAttributeName()
	case AfterAttributeNameState:
		t.stateAfterAttributeName()
	case BeforeAttributeValueState:
		t.stateBeforeAttributeValue()
	case AttributeValueDoubleQuotedState:
		t.stateAttributeValueQuoted('"')
	case AttributeValueSingleQuotedState:
		t.stateAttributeValueQuoted('\'')
	case AttributeValueUnquotedState:
		t.stateAttributeValueUnquoted()
	case AfterAttributeValueQuotedState:
		t.stateAfterAttributeValueQuoted()
	case SelfClosingStartTagState:
		t.stateSelfClosingStartTag()
	case BogusCommentState:
		t.stateBogusComment()
	case MarkupDeclarationOpenState:
		t.stateMarkupDeclarationOpen()
	case CommentStartState:
		t.stateCommentStart()
	case CommentStartDashState:
		t.stateCommentStartDash()
	case CommentState:
		t.stateComment()
	case CommentEndDashState:
		t.stateCommentEndDash()
	case CommentEndState:
		t.stateCommentEnd()
	case DOCTYPEState:
		t.stateDoctype()
	case BeforeDOCTYPENameState:
		t.stateBeforeDoctypeName()
	case DOCTYPENameState:
		t.stateDoctypeName()
	case AfterDOCTYPENameState:
		t.stateAfterDoctypeName()
	case DOCTYPEPublicIdentifierState:
		t.stateDoctypePublicIdentifier()
	case DOCTYPESystemIdentifierState:
		t.stateDoctypeSystemIdentifier()
	case BogusDOCTYPEState:
		t.stateBogusDoctype()
	default:
		t.state = DataState
	}
}

func (t *Tokenizer) getChar() (rune, bool) {
	if t.reconsume {
		t.reconsume = false
		if t.pos == 0 {
			return 0, false
		}
		t.pos--
	}

	for {
		if t.pos >= len(t.buf) {
			return 0, false
		}

		c := t.buf[t.pos]
		t.pos++

		if c == '\r' {
			t.ignoreLF = true
			t.advance('\n')
			return '\n', true
		}
		if c == '\n' {
			if t.ignoreLF {
				t.ignoreLF = false
				continue
			}
			t.advance('\n')
			return '\n', true
		}

		t.ignoreLF = false
		t.advance(c)
		return c, true
	}
}

func (t *Tokenizer) advance(c rune) {
	if c == '\n' {
		t.line++
		t.column = 0
	} else {
		t.column++
	}
}

func (t *Tokenizer) unread() {
	t.reconsume = true
}

// peekSeq reports whether the upcoming input matches s case-insensitively.
// A pending reconsume is taken into account.
func (t *Tokenizer) peekSeq(s string) bool {
	start := t.pos
	if t.reconsume {
		start--
	}
	if start < 0 || start+len(s) > len(t.buf) {
		return false
	}
	for i, sc := range s {
		c := constants.ToLowerASCII(t.buf[start+i])
		if c != sc {
			return false
		}
	}
	return true
}

func (t *Tokenizer) consume(n int) {
	if t.reconsume {
		t.reconsume = false
		if t.pos > 0 {
			t.pos--
		}
	}
	for i := 0; i < n && t.pos < len(t.buf); i++ {
		t.advance(t.buf[t.pos])
		t.pos++
	}
}

func (t *Tokenizer) addError(code string) {
	t.errors = append(t.errors, ParseError{Code: code, Line: t.line, Column: t.column})
}

// --- Text buffering ---------------------------------------------------

func (t *Tokenizer) appendText(c rune) {
	if c == '&' {
		t.textHasAmp = true
	}
	t.textBuffer.WriteRune(c)
}

func (t *Tokenizer) appendTextString(s string) {
	if strings.ContainsRune(s, '&') {
		t.textHasAmp = true
	}
	t.textBuffer.WriteString(s)
}

// flushText emits the buffered text run as a Character token.
// Character references are decoded in data and RCDATA content, not rawtext.
func (t *Tokenizer) flushText(decode bool) {
	if t.textBuffer.Len() == 0 {
		return
	}
	s := t.textBuffer.String()
	t.textBuffer.Reset()
	if decode && t.textHasAmp {
		s = decodeEntities(s)
	}
	t.textHasAmp = false
	t.pending = append(t.pending, NewCharacterToken(s))
}

// --- Tag construction -------------------------------------------------

func (t *Tokenizer) newTag(kind TokenKind) {
	t.currentTagKind = kind
	t.currentTagName = t.currentTagName[:0]
	t.currentTagAttrs = nil
	t.currentTagAttrSeen = nil
	t.currentTagSelfClosing = false
	t.currentAttrName = t.currentAttrName[:0]
	t.currentAttrValue = t.currentAttrValue[:0]
	t.currentAttrHasAmp = false
}

// finishAttr commits the attribute under construction, dropping duplicates.
// The first occurrence of a name wins.
func (t *Tokenizer) finishAttr() {
	if len(t.currentAttrName) == 0 {
		t.currentAttrValue = t.currentAttrValue[:0]
		t.currentAttrHasAmp = false
		return
	}
	name := string(t.currentAttrName)
	value := string(t.currentAttrValue)
	if t.currentAttrHasAmp {
		value = decodeEntities(value)
	}
	if t.currentTagAttrSeen == nil {
		t.currentTagAttrSeen = make(map[string]struct{}, 4)
	}
	if _, dup := t.currentTagAttrSeen[name]; !dup {
		t.currentTagAttrSeen[name] = struct{}{}
		t.currentTagAttrs = append(t.currentTagAttrs, Attr{Name: name, Value: value})
	}
	t.currentAttrName = t.currentAttrName[:0]
	t.currentAttrValue = t.currentAttrValue[:0]
	t.currentAttrHasAmp = false
}

func (t *Tokenizer) emitTag() {
	t.finishAttr()
	name := string(t.currentTagName)

	if t.currentTagKind == EndTag {
		if len(t.currentTagAttrs) > 0 {
			t.addError("end-tag-with-attributes")
		}
		t.pending = append(t.pending, NewEndTagToken(name))
		t.state = DataState
		return
	}

	tok := Token{
		Type:        StartTag,
		Name:        name,
		Attrs:       t.currentTagAttrs,
		SelfClosing: t.currentTagSelfClosing,
	}
	t.pending = append(t.pending, tok)

	// Raw-text and RCDATA elements switch the tokenizer until the literal
	// matching close tag.
	switch {
	case constants.RawTextElements[name]:
		t.rawtextTagName = name
		t.state = RAWTEXTState
	case constants.RCDATAElements[name]:
		t.rawtextTagName = name
		t.state = RCDATAState
	default:
		t.state = DataState
	}
}

func (t *Tokenizer) emitComment() {
	t.pending = append(t.pending, NewCommentToken(string(t.currentComment)))
	t.currentComment = t.currentComment[:0]
	t.commentBang = false
	t.state = DataState
}

func (t *Tokenizer) emitDoctype() {
	tok := Token{
		Type:        DOCTYPE,
		Name:        string(t.currentDoctypeName),
		ForceQuirks: t.currentDoctypeForceQuirks,
	}
	if t.currentDoctypePublic != nil {
		s := string(*t.currentDoctypePublic)
		tok.PublicID = &s
	}
	if t.currentDoctypeSystem != nil {
		s := string(*t.currentDoctypeSystem)
		tok.SystemID = &s
	}
	t.pending = append(t.pending, tok)

	t.currentDoctypeName = t.currentDoctypeName[:0]
	t.currentDoctypePublic = nil
	t.currentDoctypeSystem = nil
	t.currentDoctypeForceQuirks = false
	t.doctypeIDQuote = 0
	t.state = DataState
}

// --- Data, RCDATA, RAWTEXT -------------------------------------------

func (t *Tokenizer) stateData() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if c == '<' {
		t.state = TagOpenState
		return
	}
	t.appendText(c)
}

func (t *Tokenizer) stateRCDATA() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if c == '<' {
		t.state = RCDATALessThanSignState
		return
	}
	t.appendText(c)
}

func (t *Tokenizer) stateRAWTEXT() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if c == '<' {
		t.state = RAWTEXTLessThanSignState
		return
	}
	t.textBuffer.WriteRune(c)
}

func (t *Tokenizer) stateTextLessThanSign(textState, endTagOpenState State) {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if c == '/' {
		t.tempBuffer = t.tempBuffer[:0]
		t.state = endTagOpenState
		return
	}
	t.textBuffer.WriteRune('<')
	t.unread()
	t.state = textState
}

func (t *Tokenizer) stateTextEndTagOpen(textState, endTagNameState State) {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if constants.IsASCIIAlpha(c) {
		t.unread()
		t.state = endTagNameState
		return
	}
	t.textBuffer.WriteString("</")
	t.unread()
	t.state = textState
}

// stateTextEndTagName matches the accumulated tag name against the element
// that entered raw-text/RCDATA mode; only that close tag exits.
func (t *Tokenizer) stateTextEndTagName(textState State, decode bool) {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if constants.IsASCIIAlpha(c) {
		t.tempBuffer = append(t.tempBuffer, constants.ToLowerASCII(c))
		return
	}

	match := string(t.tempBuffer) == t.rawtextTagName
	if match {
		switch {
		case constants.IsWhitespace(c):
			t.flushText(decode)
			t.newTag(EndTag)
			t.currentTagName = append(t.currentTagName, t.tempBuffer...)
			t.rawtextTagName = ""
			t.state = BeforeAttributeNameState
			return
		case c == '/':
			t.flushText(decode)
			t.newTag(EndTag)
			t.currentTagName = append(t.currentTagName, t.tempBuffer...)
			t.rawtextTagName = ""
			t.state = SelfClosingStartTagState
			return
		case c == '>':
			t.flushText(decode)
			t.newTag(EndTag)
			t.currentTagName = append(t.currentTagName, t.tempBuffer...)
			t.rawtextTagName = ""
			t.emitTag()
			return
		}
	}

	// Not the appropriate end tag: the "</name" run is literal content.
	t.textBuffer.WriteString("</")
	t.textBuffer.WriteString(string(t.tempBuffer))
	t.unread()
	t.state = textState
}

// --- Tag states -------------------------------------------------------

func (t *Tokenizer) stateTagOpen() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if c == '!' || c == '/' || c == '?' || constants.IsASCIIAlpha(c) {
		t.flushText(true)
	}
	switch {
	case c == '!':
		t.state = MarkupDeclarationOpenState
	case c == '/':
		t.state = EndTagOpenState
	case constants.IsASCIIAlpha(c):
		t.newTag(StartTag)
		t.unread()
		t.state = TagNameState
	case c == '?':
		t.addError("unexpected-question-mark-instead-of-tag-name")
		t.currentComment = t.currentComment[:0]
		t.unread()
		t.state = BogusCommentState
	default:
		// Stray '<' is literal text.
		t.addError("invalid-first-character")
		t.appendText('<')
		t.unread()
		t.state = DataState
	}
}

func (t *Tokenizer) stateEndTagOpen() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch {
	case constants.IsASCIIAlpha(c):
		t.newTag(EndTag)
		t.unread()
		t.state = TagNameState
	case c == '>':
		t.addError("missing-end-tag-name")
		t.state = DataState
	default:
		t.addError("invalid-first-character")
		t.currentComment = t.currentComment[:0]
		t.unread()
		t.state = BogusCommentState
	}
}

func (t *Tokenizer) stateTagName() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch {
	case constants.IsWhitespace(c):
		t.state = BeforeAttributeNameState
	case c == '/':
		t.state = SelfClosingStartTagState
	case c == '>':
		t.emitTag()
	default:
		t.currentTagName = append(t.currentTagName, constants.ToLowerASCII(c))
	}
}

func (t *Tokenizer) stateBeforeAttributeName() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch {
	case constants.IsWhitespace(c):
		// ignore
	case c == '/' || c == '>':
		t.unread()
		t.state = AfterAttributeNameState
	case c == '=':
		t.addError("unexpected-equals-sign-before-attribute-name")
		t.finishAttr()
		t.currentAttrName = append(t.currentAttrName, '=')
		t.state = AttributeNameState
	default:
		t.finishAttr()
		t.unread()
		t.state = AttributeNameState
	}
}

func (t *Tokenizer) stateAttributeName() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch {
	case constants.IsWhitespace(c) || c == '/' || c == '>':
		t.unread()
		t.state = AfterAttributeNameState
	case c == '=':
		t.state = BeforeAttributeValueState
	default:
		t.currentAttrName = append(t.currentAttrName, constants.ToLowerASCII(c))
	}
}

func (t *Tokenizer) stateAfterAttributeName() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch {
	case constants.IsWhitespace(c):
		// ignore
	case c == '/':
		t.state = SelfClosingStartTagState
	case c == '=':
		t.state = BeforeAttributeValueState
	case c == '>':
		t.emitTag()
	default:
		t.finishAttr()
		t.unread()
		t.state = AttributeNameState
	}
}

func (t *Tokenizer) stateBeforeAttributeValue() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch {
	case constants.IsWhitespace(c):
		// ignore
	case c == '"':
		t.state = AttributeValueDoubleQuotedState
	case c == '\'':
		t.state = AttributeValueSingleQuotedState
	case c == '>':
		t.addError("missing-attribute-value")
		t.emitTag()
	default:
		t.unread()
		t.state = AttributeValueUnquotedState
	}
}

func (t *Tokenizer) stateAttributeValueQuoted(quote rune) {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch c {
	case quote:
		t.state = AfterAttributeValueQuotedState
	case '&':
		t.currentAttrHasAmp = true
		t.currentAttrValue = append(t.currentAttrValue, c)
	default:
		t.currentAttrValue = append(t.currentAttrValue, c)
	}
}

func (t *Tokenizer) stateAttributeValueUnquoted() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch {
	case constants.IsWhitespace(c):
		t.state = BeforeAttributeNameState
	case c == '>':
		t.emitTag()
	case c == '&':
		t.currentAttrHasAmp = true
		t.currentAttrValue = append(t.currentAttrValue, c)
	default:
		t.currentAttrValue = append(t.currentAttrValue, c)
	}
}

func (t *Tokenizer) stateAfterAttributeValueQuoted() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch {
	case constants.IsWhitespace(c):
		t.state = BeforeAttributeNameState
	case c == '/':
		t.state = SelfClosingStartTagState
	case c == '>':
		t.emitTag()
	default:
		t.addError("missing-whitespace-between-attributes")
		t.unread()
		t.state = BeforeAttributeNameState
	}
}

func (t *Tokenizer) stateSelfClosingStartTag() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if c == '>' {
		t.currentTagSelfClosing = true
		t.emitTag()
		return
	}
	t.addError("unexpected-solidus-in-tag")
	t.unread()
	t.state = BeforeAttributeNameState
}

// --- Comments and bogus comments -------------------------------------

func (t *Tokenizer) stateMarkupDeclarationOpen() {
	switch {
	case t.peekSeq("--"):
		t.consume(2)
		t.currentComment = t.currentComment[:0]
		t.state = CommentStartState
	case t.peekSeq("doctype"):
		t.consume(7)
		t.state = DOCTYPEState
	default:
		t.addError("incorrectly-opened-comment")
		t.currentComment = t.currentComment[:0]
		t.state = BogusCommentState
	}
}

func (t *Tokenizer) stateBogusComment() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if c == '>' {
		t.emitComment()
		return
	}
	t.currentComment = append(t.currentComment, c)
}

func (t *Tokenizer) stateCommentStart() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch c {
	case '-':
		t.state = CommentStartDashState
	case '>':
		t.addError("abrupt-closing-of-comment")
		t.emitComment()
	default:
		t.unread()
		t.state = CommentState
	}
}

func (t *Tokenizer) stateCommentStartDash() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch c {
	case '-':
		t.state = CommentEndState
	case '>':
		t.addError("abrupt-closing-of-comment")
		t.emitComment()
	default:
		t.currentComment = append(t.currentComment, '-')
		t.unread()
		t.state = CommentState
	}
}

func (t *Tokenizer) stateComment() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if c == '-' {
		t.state = CommentEndDashState
		return
	}
	t.currentComment = append(t.currentComment, c)
}

func (t *Tokenizer) stateCommentEndDash() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if c == '-' {
		t.state = CommentEndState
		return
	}
	t.currentComment = append(t.currentComment, '-')
	t.unread()
	t.state = CommentState
}

func (t *Tokenizer) stateCommentEnd() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch c {
	case '>':
		t.emitComment()
	case '-':
		t.currentComment = append(t.currentComment, '-')
	case '!':
		// "--!>" closes the comment with an error; anything else after
		// the bang is comment content.
		if t.commentBang {
			t.currentComment = append(t.currentComment, '-', '-', '!')
			t.unread()
			t.commentBang = false
			t.state = CommentState
			return
		}
		t.commentBang = true
	default:
		if t.commentBang {
			t.currentComment = append(t.currentComment, '-', '-', '!')
			t.commentBang = false
		} else {
			t.currentComment = append(t.currentComment, '-', '-')
		}
		t.unread()
		t.state = CommentState
	}
}

// --- DOCTYPE ----------------------------------------------------------

func (t *Tokenizer) stateDoctype() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if !constants.IsWhitespace(c) {
		t.unread()
	}
	t.state = BeforeDOCTYPENameState
}

func (t *Tokenizer) stateBeforeDoctypeName() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch {
	case constants.IsWhitespace(c):
		// ignore
	case c == '>':
		t.addError("missing-doctype-name")
		t.currentDoctypeForceQuirks = true
		t.emitDoctype()
	default:
		t.currentDoctypeName = append(t.currentDoctypeName[:0], constants.ToLowerASCII(c))
		t.state = DOCTYPENameState
	}
}

func (t *Tokenizer) stateDoctypeName() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	switch {
	case constants.IsWhitespace(c):
		t.state = AfterDOCTYPENameState
	case c == '>':
		t.emitDoctype()
	default:
		t.currentDoctypeName = append(t.currentDoctypeName, constants.ToLowerASCII(c))
	}
}

func (t *Tokenizer) stateAfterDoctypeName() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if constants.IsWhitespace(c) {
		return
	}
	if c == '>' {
		t.emitDoctype()
		return
	}
	t.unread()
	switch {
	case t.peekSeq("public"):
		t.consume(6)
		t.doctypeIDQuote = 0
		t.state = DOCTYPEPublicIdentifierState
	case t.peekSeq("system"):
		t.consume(6)
		t.doctypeIDQuote = 0
		t.state = DOCTYPESystemIdentifierState
	default:
		t.consume(1)
		t.addError("invalid-character-sequence-after-doctype-name")
		t.currentDoctypeForceQuirks = true
		t.state = BogusDOCTYPEState
	}
}

func (t *Tokenizer) stateDoctypePublicIdentifier() {
	c, ok := t.getChar()
	if !ok {
		return
	}

	if t.doctypeIDQuote != 0 {
		switch c {
		case t.doctypeIDQuote:
			t.doctypeIDQuote = 0
			t.state = DOCTYPESystemIdentifierState
		case '>':
			t.addError("abrupt-doctype-public-identifier")
			t.currentDoctypeForceQuirks = true
			t.emitDoctype()
		default:
			*t.currentDoctypePublic = append(*t.currentDoctypePublic, c)
		}
		return
	}

	switch {
	case constants.IsWhitespace(c):
		// ignore
	case c == '"' || c == '\'':
		t.doctypeIDQuote = c
		id := []rune{}
		t.currentDoctypePublic = &id
	case c == '>':
		t.addError("missing-doctype-public-identifier")
		t.currentDoctypeForceQuirks = true
		t.emitDoctype()
	default:
		t.addError("missing-quote-before-doctype-public-identifier")
		t.currentDoctypeForceQuirks = true
		t.unread()
		t.state = BogusDOCTYPEState
	}
}

func (t *Tokenizer) stateDoctypeSystemIdentifier() {
	c, ok := t.getChar()
	if !ok {
		return
	}

	if t.doctypeIDQuote != 0 {
		switch c {
		case t.doctypeIDQuote:
			t.doctypeIDQuote = 0
		case '>':
			t.addError("abrupt-doctype-system-identifier")
			t.currentDoctypeForceQuirks = true
			t.emitDoctype()
		default:
			*t.currentDoctypeSystem = append(*t.currentDoctypeSystem, c)
		}
		return
	}

	switch {
	case constants.IsWhitespace(c):
		// ignore
	case c == '"' || c == '\'':
		if t.currentDoctypeSystem == nil {
			t.doctypeIDQuote = c
			id := []rune{}
			t.currentDoctypeSystem = &id
		} else {
			t.currentDoctypeForceQuirks = true
			t.unread()
			t.state = BogusDOCTYPEState
		}
	case c == '>':
		t.emitDoctype()
	default:
		t.addError("missing-quote-before-doctype-system-identifier")
		t.currentDoctypeForceQuirks = true
		t.unread()
		t.state = BogusDOCTYPEState
	}
}

func (t *Tokenizer) stateBogusDoctype() {
	c, ok := t.getChar()
	if !ok {
		return
	}
	if c == '>' {
		t.emitDoctype()
	}
}

// --- End of input -----------------------------------------------------

// finalize handles end of input for the current state and queues the EOF
// sentinel. Unfinished tags are dropped; unfinished comments and doctypes
// are emitted, matching browser recovery.
func (t *Tokenizer) finalize() {
	t.finished = true

	switch t.state {
	case DataState, RCDATAState:
		t.flushText(true)
	case RAWTEXTState:
		t.flushText(false)
	case TagOpenState:
		t.appendText('<')
		t.flushText(true)
	case EndTagOpenState:
		t.appendTextString("</")
		t.flushText(true)
	case RCDATALessThanSignState:
		t.textBuffer.WriteRune('<')
		t.flushText(true)
	case RAWTEXTLessThanSignState:
		t.textBuffer.WriteRune('<')
		t.flushText(false)
	case RCDATAEndTagOpenState:
		t.textBuffer.WriteString("</")
		t.flushText(true)
	case RAWTEXTEndTagOpenState:
		t.textBuffer.WriteString("</")
		t.flushText(false)
	case RCDATAEndTagNameState:
		t.textBuffer.WriteString("</")
		t.textBuffer.WriteString(string(t.tempBuffer))
		t.flushText(true)
	case RAWTEXTEndTagNameState:
		t.textBuffer.WriteString("</")
		t.textBuffer.WriteString(string(t.tempBuffer))
		t.flushText(false)
	case TagNameState, BeforeAttributeNameState, AttributeNameState,
		AfterAttributeNameState, BeforeAttributeValueState,
		AttributeValueDoubleQuotedState, AttributeValueSingleQuotedState,
		AttributeValueUnquotedState, AfterAttributeValueQuotedState,
		SelfClosingStartTagState:
		t.addError("eof-in-tag")
	case BogusCommentState:
		t.emitComment()
	case CommentStartState:
		t.addError("eof-in-comment")
		t.emitComment()
	case CommentStartDashState, CommentEndDashState:
		t.addError("eof-in-comment")
		t.currentComment = append(t.currentComment, '-')
		t.emitComment()
	case CommentState:
		t.addError("eof-in-comment")
		t.emitComment()
	case CommentEndState:
		t.addError("eof-in-comment")
		t.currentComment = append(t.currentComment, '-', '-')
		t.emitComment()
	case MarkupDeclarationOpenState:
		t.addError("incorrectly-opened-comment")
		t.emitComment()
	case DOCTYPEState, BeforeDOCTYPENameState, DOCTYPENameState,
		AfterDOCTYPENameState, DOCTYPEPublicIdentifierState,
		DOCTYPESystemIdentifierState, BogusDOCTYPEState:
		t.addError("eof-in-doctype")
		t.currentDoctypeForceQuirks = true
		t.emitDoctype()
	}

	t.pending = append(t.pending, Token{Type: EOF})
}

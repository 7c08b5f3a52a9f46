package tokenizer

// State represents the tokenizer state.
// The tokenizer is a state machine that transitions between these states.
type State int

// Tokenizer states, the subset of the HTML5 specification sufficient for
// real-world content.
// See: https://html.spec.whatwg.org/multipage/parsing.html#tokenization
const (
	DataState State = iota
	RCDATAState
	RAWTEXTState
	TagOpenState
	EndTagOpenState
	TagNameState
	RCDATALessThanSignState
	RCDATAEndTagOpenState
	RCDATAEndTagNameState
	RAWTEXTLessThanSignState
	RAWTEXTEndTagOpenState
	RAWTEXTEndTagNameState
	BeforeAttributeNameState
	AttributeNameState
	AfterAttributeNameState
	BeforeAttributeValueState
	AttributeValueDoubleQuotedState
	AttributeValueSingleQuotedState
	AttributeValueUnquotedState
	AfterAttributeValueQuotedState
	SelfClosingStartTagState
	BogusCommentState
	MarkupDeclarationOpenState
	CommentStartState
	CommentStartDashState
	CommentState
	CommentEndDashState
	CommentEndState
	DOCTYPEState
	BeforeDOCTYPENameState
	DOCTYPENameState
	AfterDOCTYPENameState
	DOCTYPEPublicIdentifierState
	DOCTYPESystemIdentifierState
	BogusDOCTYPEState
)

// String returns the name of the state for debugging.
func (s State) String() string {
	names := [...]string{
		"Data",
		"RCDATA",
		"RAWTEXT",
		"TagOpen",
		"EndTagOpen",
		"TagName",
		"RCDATALessThanSign",
		"RCDATAEndTagOpen",
		"RCDATAEndTagName",
		"RAWTEXTLessThanSign",
		"RAWTEXTEndTagOpen",
		"RAWTEXTEndTagName",
		"BeforeAttributeName",
		"AttributeName",
		"AfterAttributeName",
		"BeforeAttributeValue",
		"AttributeValueDoubleQuoted",
		"AttributeValueSingleQuoted",
		"AttributeValueUnquoted",
		"AfterAttributeValueQuoted",
		"SelfClosingStartTag",
		"BogusComment",
		"MarkupDeclarationOpen",
		"CommentStart",
		"CommentStartDash",
		"Comment",
		"CommentEndDash",
		"CommentEnd",
		"DOCTYPE",
		"BeforeDOCTYPEName",
		"DOCTYPEName",
		"AfterDOCTYPEName",
		"DOCTYPEPublicIdentifier",
		"DOCTYPESystemIdentifier",
		"BogusDOCTYPE",
	}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

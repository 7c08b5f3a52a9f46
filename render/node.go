// Package render walks the element tree, applies the cascade, and emits
// the flat, layout-ready render node list.
package render

// NodeKind identifies a render node variant.
type NodeKind int

// Render node kinds.
const (
	BlockNode NodeKind = iota
	HeadingNode
	PreformattedNode
	ListItemNode
	BlockquoteNode
	HorizontalRuleNode
	ParagraphBreakNode
	WidgetNode
	TableNode
	GridNode
	SummaryNode
	PictureNode
)

// String returns the node kind name.
func (k NodeKind) String() string {
	names := [...]string{
		"Block",
		"Heading",
		"Preformatted",
		"ListItem",
		"Blockquote",
		"HorizontalRule",
		"ParagraphBreak",
		"Widget",
		"Table",
		"Grid",
		"Summary",
		"Picture",
	}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// InlineSpan is a text run with inline formatting attributes.
type InlineSpan struct {
	Text string

	// Href and Download carry the enclosing link context.
	Href     string
	Download string

	Bold      bool
	Italic    bool
	Code      bool
	Del       bool
	Mark      bool
	Underline bool

	// Color is the computed color, empty for the default.
	Color string

	// Scale is the font scale relative to the base size (1.0 = normal).
	Scale float64
}

// StyleBox carries the computed box properties a render node hands to
// layout.
type StyleBox struct {
	Display  string
	Position string

	MarginTop    string
	MarginRight  string
	MarginBottom string
	MarginLeft   string

	PaddingTop    string
	PaddingRight  string
	PaddingBottom string
	PaddingLeft   string

	BorderWidth string
	BorderStyle string
	BorderColor string

	Background string
	Color      string

	Width     string
	Height    string
	FontSize  string
	TextAlign string

	FlexDirection  string
	JustifyContent string
	AlignItems     string

	GridTemplateColumns string
	GridTemplateRows    string
}

// RenderNode is one entry of the layout-pipeline input list.
type RenderNode struct {
	Kind NodeKind

	// Spans is the inline content for inline-bearing nodes.
	Spans []InlineSpan

	// Box is the computed style box of the originating element.
	Box StyleBox

	// Level is the heading level (1-6) for Heading nodes.
	Level int

	// Align is the horizontal alignment for headings and list items.
	Align string

	// Indent is the nesting depth for list items and blockquotes.
	Indent int

	// Widget is set for Widget nodes.
	Widget *WidgetBlueprint

	// Image is set for Picture nodes.
	Image *WidgetBlueprint

	// Rows holds the cell texts for structured Table nodes.
	Rows [][]string

	// HeaderRow is true when the table's first row is a header row.
	HeaderRow bool

	// Tracks holds the grid column track list for Grid nodes.
	Tracks []string
}

// SelectOption is one option of a select widget.
type SelectOption struct {
	Label    string
	Value    string
	Selected bool
}

// WidgetBlueprint declaratively describes an embedded interactive element.
// Layout and the widget runtime turn it into a live control.
type WidgetBlueprint struct {
	// Kind is the normalized control kind: text, password, submit, reset,
	// button, checkbox, radio, select, textarea, file, hidden, or img.
	Kind string

	Name  string
	Value string

	Checked  bool
	Disabled bool
	ReadOnly bool
	Required bool
	Multiple bool

	// FormIndex is the index into ParseResult.Forms, or -1 when the
	// control is outside any form.
	FormIndex int

	// Placeholder and validation attributes for text-like inputs.
	Placeholder string
	MaxLength   int
	Pattern     string

	// Options for select widgets.
	Options []SelectOption

	// Rows and Cols for textarea widgets.
	Rows int
	Cols int

	// Src and Alt for image widgets.
	Src string
	Alt string

	// Accept for file inputs.
	Accept string

	// Pixels is a pre-decoded RGBA buffer for rendered inline SVG.
	Pixels    []byte
	PixWidth  int
	PixHeight int
}

// FormRecord describes one <form> element.
type FormRecord struct {
	Action  string
	Method  string
	Enctype string
}

// ScriptRecord describes one <script> element.
type ScriptRecord struct {
	// Inline is true when the script carried its code inline.
	Inline bool

	Src  string
	Code string
	Type string
}

// ParseResult is the complete output handed to the layout and runtime
// subsystems.
type ParseResult struct {
	Nodes []*RenderNode

	Title string

	Forms   []FormRecord
	Widgets []*WidgetBlueprint

	BaseURL string

	Scripts []ScriptRecord

	// Styles holds inline <style> blocks in document order.
	Styles []string

	// StyleLinks holds external stylesheet URLs in document order.
	StyleLinks []string

	QuirksMode bool

	// Templates maps template element ids to their rendered content.
	Templates map[string][]*RenderNode

	// Favicon is the <link rel="icon"> href, if any.
	Favicon string
}

package dom

// leafNode provides the childless Node behavior shared by text, comment,
// and doctype nodes. Leaf nodes carry a payload instead of children; the
// child-mutation methods are no-ops.
type leafNode struct {
	parent Node
}

// Parent implements Node.
func (n *leafNode) Parent() Node {
	return n.parent
}

// SetParent implements Node.
func (n *leafNode) SetParent(parent Node) {
	n.parent = parent
}

// Children implements Node; leaf nodes have none.
func (n *leafNode) Children() []Node {
	return nil
}

// AppendChild implements Node (no-op for leaf nodes).
func (n *leafNode) AppendChild(_ Node) {}

// InsertBefore implements Node (no-op for leaf nodes).
func (n *leafNode) InsertBefore(_, _ Node) {}

// RemoveChild implements Node (no-op for leaf nodes).
func (n *leafNode) RemoveChild(_ Node) {}

// Text is a text node. Adjacent text siblings under one parent are
// coalesced eagerly at insertion time, so a parent never holds two
// consecutive Text children.
type Text struct {
	leafNode

	// Data is the character data.
	Data string
}

// NewText creates a new text node.
func NewText(data string) *Text {
	return &Text{Data: data}
}

// Type implements Node.
func (t *Text) Type() NodeType {
	return TextNodeType
}

// Append extends the character data in place. The tree builder uses it
// to merge an incoming run into an existing preceding sibling.
func (t *Text) Append(data string) {
	t.Data += data
}

// Prepend inserts character data before the existing payload, used when
// a run lands just before this node at a foster-parenting point.
func (t *Text) Prepend(data string) {
	t.Data = data + t.Data
}

// IsWhitespace reports whether the node contains only HTML whitespace.
func (t *Text) IsWhitespace() bool {
	for _, r := range t.Data {
		switch r {
		case '\t', '\n', '\f', '\r', ' ':
		default:
			return false
		}
	}
	return true
}

// Clone implements Node.
func (t *Text) Clone(_ bool) Node {
	return &Text{Data: t.Data}
}

// Comment is a comment node. The render walk discards comments; they are
// kept in the tree so serial traversals see the document as parsed.
type Comment struct {
	leafNode

	// Data is the comment content, without the <!-- --> delimiters.
	Data string
}

// NewComment creates a new comment node.
func NewComment(data string) *Comment {
	return &Comment{Data: data}
}

// Type implements Node.
func (c *Comment) Type() NodeType {
	return CommentNodeType
}

// Clone implements Node.
func (c *Comment) Clone(_ bool) Node {
	return &Comment{Data: c.Data}
}

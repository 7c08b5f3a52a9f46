package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementBasics(t *testing.T) {
	e := NewElement("DIV")
	assert.Equal(t, "div", e.TagName)
	assert.Equal(t, ElementNodeType, e.Type())

	e.SetAttr("ID", "main")
	e.SetAttr("class", "a b")
	assert.Equal(t, "main", e.ID())
	assert.Equal(t, []string{"a", "b"}, e.Classes())
	assert.True(t, e.HasClass("b"))
	assert.False(t, e.HasClass("c"))
}

func TestTreeStructure(t *testing.T) {
	doc := NewDocument()
	html := NewElement("html")
	body := NewElement("body")
	doc.AppendChild(html)
	html.AppendChild(body)

	p := NewElement("p")
	body.AppendChild(p)
	p.AppendChild(NewText("hello"))

	require.Same(t, Node(doc), html.Parent())
	require.Same(t, Node(html), body.Parent())
	assert.Equal(t, "hello", p.Text())
	assert.Same(t, body, doc.Body())

	// Every node reaches the document walking up.
	var n Node = p
	for n.Parent() != nil {
		n = n.Parent()
	}
	assert.Equal(t, DocumentNodeType, n.Type())
}

func TestInsertBefore(t *testing.T) {
	parent := NewElement("body")
	table := NewElement("table")
	parent.AppendChild(table)

	div := NewElement("div")
	parent.InsertBefore(div, table)

	children := parent.Children()
	require.Len(t, children, 2)
	assert.Same(t, Node(div), children[0])
	assert.Same(t, Node(table), children[1])
	assert.Same(t, Node(parent), div.Parent())
}

func TestRemoveChild(t *testing.T) {
	parent := NewElement("ul")
	li := NewElement("li")
	parent.AppendChild(li)
	parent.RemoveChild(li)
	assert.Empty(t, parent.Children())
	assert.Nil(t, li.Parent())
}

func TestAttributesFirstWins(t *testing.T) {
	a := NewAttributes()
	a.SetIfAbsent("href", "first")
	a.SetIfAbsent("href", "second")
	v, ok := a.Get("href")
	require.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 1, a.Len())
}

func TestAllocatorReuse(t *testing.T) {
	alloc := NewNodeAllocator()
	seen := map[*Element]bool{}
	for i := 0; i < elementChunkSize*2; i++ {
		e := alloc.NewElement("span")
		require.False(t, seen[e], "allocator handed out the same element twice")
		seen[e] = true
		assert.Equal(t, "span", e.TagName)
		assert.Zero(t, e.Attributes.Len())
	}
}

func TestTextCoalescingHelpers(t *testing.T) {
	txt := NewText("b")
	txt.Append("c")
	txt.Prepend("a")
	assert.Equal(t, "abc", txt.Data)
	assert.False(t, txt.IsWhitespace())
	assert.True(t, NewText(" \t\n").IsWhitespace())

	// Leaf nodes ignore child mutations.
	txt.AppendChild(NewText("x"))
	assert.Empty(t, txt.Children())
}

func TestCloneDeep(t *testing.T) {
	e := NewElement("div")
	e.SetAttr("id", "x")
	e.AppendChild(NewText("hi"))

	clone := e.Clone(true).(*Element)
	clone.SetAttr("id", "y")

	assert.Equal(t, "x", e.ID())
	assert.Equal(t, "y", clone.ID())
	assert.Equal(t, "hi", clone.Text())
}

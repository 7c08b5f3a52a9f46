package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Christian/GoWebCore/dom"
)

func TestParseAndSpecificity(t *testing.T) {
	tests := []struct {
		selector string
		want     int
	}{
		{"p", 1},
		{"*", 0},
		{".c", 100},
		{"#t", 10000},
		{"p.c", 101},
		{"#t .c p", 10101},
		{"a[href]", 101},
		{"p:first-child", 101},
		{"p::before", 2},
		{"div > p + span", 3},
		{":not(#x)", 10000},
		{":is(.a, #b)", 10000},
		{":where(.a, #b)", 0},
		{"li:nth-child(2n+1)", 101},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			list, err := Parse(tt.selector)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, tt.want, list[0].Specificity())
		})
	}
}

func TestKeySelector(t *testing.T) {
	tests := []struct {
		selector string
		want     string
	}{
		{"p", "p"},
		{"#t", "#t"},
		{".c", ".c"},
		{"div p.note", ".note"},
		{"div #x.note", "#x"},
		{"ul > li", "li"},
		{"*", "*"},
		{"[data-x]", "*"},
		{"p::before", "p"},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			list, err := Parse(tt.selector)
			require.NoError(t, err)
			assert.Equal(t, tt.want, list[0].Key())
		})
	}
}

func TestCommaListSpecificities(t *testing.T) {
	list, err := Parse("p, .c, #t")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 1, list[0].Specificity())
	assert.Equal(t, 100, list[1].Specificity())
	assert.Equal(t, 10000, list[2].Specificity())
}

// buildTree returns body for:
// <body><div id=d class="outer dark"><p class=a>1</p><p>2</p><span>s</span></div></body>
func buildTree() (*dom.Element, *dom.Element, *dom.Element, *dom.Element, *dom.Element) {
	body := dom.NewElement("body")
	div := dom.NewElement("div")
	div.SetAttr("id", "d")
	div.SetAttr("class", "outer dark")
	body.AppendChild(div)

	p1 := dom.NewElement("p")
	p1.SetAttr("class", "a")
	div.AppendChild(p1)
	p2 := dom.NewElement("p")
	div.AppendChild(p2)
	span := dom.NewElement("span")
	div.AppendChild(span)
	return body, div, p1, p2, span
}

func TestMatching(t *testing.T) {
	_, div, p1, p2, span := buildTree()

	tests := []struct {
		selector string
		el       *dom.Element
		want     bool
	}{
		{"p", p1, true},
		{"p", span, false},
		{"#d", div, true},
		{".a", p1, true},
		{".a", p2, false},
		{".outer.dark", div, true},
		{"div p", p1, true},
		{"div > p", p2, true},
		{"body > p", p1, false},
		{"p + p", p2, true},
		{"p + p", p1, false},
		{"p ~ span", span, true},
		{"p:first-child", p1, true},
		{"p:first-child", p2, false},
		{"span:last-child", span, true},
		{"p:nth-child(2)", p2, true},
		{"p:nth-child(odd)", p1, true},
		{"p:not(.a)", p2, true},
		{"p:not(.a)", p1, false},
		{":is(p, span)", span, true},
		{"div:has(span)", div, true},
		{"[class~=dark]", div, true},
		{"[id=d]", div, true},
		{"[id^=x]", div, false},
		{"p:hover", p1, false},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			list, err := Parse(tt.selector)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Matches(tt.el, list))
		})
	}
}

func TestPseudoElementExtraction(t *testing.T) {
	list, err := Parse("p::before")
	require.NoError(t, err)
	assert.Equal(t, "before", list[0].PseudoElement())

	list, err = Parse("p:after")
	require.NoError(t, err)
	assert.Equal(t, "after", list[0].PseudoElement())

	list, err = Parse("p")
	require.NoError(t, err)
	assert.Equal(t, "", list[0].PseudoElement())
}

func TestQueryAll(t *testing.T) {
	body, _, p1, p2, _ := buildTree()
	got, err := QueryAll(body, "p")
	require.NoError(t, err)
	assert.Equal(t, []*dom.Element{p1, p2}, got)

	first, err := QueryFirst(body, "p")
	require.NoError(t, err)
	assert.Same(t, p1, first)
}

func TestParseErrors(t *testing.T) {
	for _, bad := range []string{"..", "#", "[", "p >"} {
		_, err := Parse(bad)
		assert.Error(t, err, "selector %q should not parse", bad)
	}
}

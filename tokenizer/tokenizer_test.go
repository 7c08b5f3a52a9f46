package tokenizer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestBasicTags(t *testing.T) {
	toks := Tokenize("<p>Hello</p>")
	require.Len(t, toks, 3)
	assert.Equal(t, StartTag, toks[0].Type)
	assert.Equal(t, "p", toks[0].Name)
	assert.Equal(t, Character, toks[1].Type)
	assert.Equal(t, "Hello", toks[1].Data)
	assert.Equal(t, EndTag, toks[2].Type)
	assert.Equal(t, "p", toks[2].Name)
}

func TestAttributeParsing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Attr
	}{
		{"double quoted", `<a href="x">`, []Attr{{"href", "x"}}},
		{"single quoted", `<a href='x'>`, []Attr{{"href", "x"}}},
		{"unquoted", `<a href=x>`, []Attr{{"href", "x"}}},
		{"valueless", `<input disabled>`, []Attr{{"disabled", ""}}},
		{"name lowercased", `<a HREF="x">`, []Attr{{"href", "x"}}},
		{"duplicate keeps first", `<a id="a" id="b">`, []Attr{{"id", "a"}}},
		{"several", `<a b=1 c='2' d>`, []Attr{{"b", "1"}, {"c", "2"}, {"d", ""}}},
		{"entity in value", `<a title="a&amp;b">`, []Attr{{"title", "a&b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Tokenize(tt.input)
			require.NotEmpty(t, toks)
			assert.Equal(t, tt.want, toks[0].Attrs)
		})
	}
}

func TestSelfClosing(t *testing.T) {
	toks := Tokenize("<br/>")
	require.Len(t, toks, 1)
	assert.True(t, toks[0].SelfClosing)
	assert.Equal(t, "br", toks[0].Name)
}

func TestRawText(t *testing.T) {
	toks := Tokenize("<script>var x = 0 < 1;</script>")
	require.Len(t, toks, 3)
	assert.Equal(t, "script", toks[0].Name)
	assert.Equal(t, "var x = 0 < 1;", toks[1].Data)
	assert.Equal(t, EndTag, toks[2].Type)
}

func TestRawTextNonMatchingCloseTag(t *testing.T) {
	toks := Tokenize("<style>a</span>b</style>")
	require.Len(t, toks, 3)
	assert.Equal(t, "a</span>b", toks[1].Data)
}

func TestRCDATADecodesEntities(t *testing.T) {
	toks := Tokenize("<title>a &amp; b</title>")
	require.Len(t, toks, 3)
	assert.Equal(t, "a & b", toks[1].Data)
}

func TestRawTextDoesNotDecode(t *testing.T) {
	toks := Tokenize("<script>&amp;</script>")
	require.Len(t, toks, 3)
	assert.Equal(t, "&amp;", toks[1].Data)
}

func TestEntityDecoding(t *testing.T) {
	toks := Tokenize("5 &lt; 10 &amp; 20 &#x4E;&#78;")
	require.Len(t, toks, 1)
	assert.Equal(t, "5 < 10 & 20 NN", toks[0].Data)
}

func TestUnknownEntityPassesThrough(t *testing.T) {
	toks := Tokenize("a &nosuch; b && c")
	require.Len(t, toks, 1)
	assert.Equal(t, "a &nosuch; b && c", toks[0].Data)
}

func TestStrayLessThan(t *testing.T) {
	toks := Tokenize("5 < 10")
	require.Len(t, toks, 1)
	assert.Equal(t, "5 < 10", toks[0].Data)
}

func TestComment(t *testing.T) {
	toks := Tokenize("a<!-- b -->c")
	require.Len(t, toks, 3)
	assert.Equal(t, Comment, toks[1].Type)
	assert.Equal(t, " b ", toks[1].Data)
}

func TestCommentWithDashes(t *testing.T) {
	toks := Tokenize("<!-- a-b--c -->")
	require.Len(t, toks, 1)
	assert.Equal(t, " a-b--c ", toks[0].Data)
}

func TestBogusComment(t *testing.T) {
	toks := Tokenize("<?xml version='1.0'?>x")
	require.Len(t, toks, 2)
	assert.Equal(t, Comment, toks[0].Type)
	assert.Equal(t, "x", toks[1].Data)
}

func TestDoctype(t *testing.T) {
	toks := Tokenize("<!DOCTYPE html><p>")
	require.Len(t, toks, 2)
	assert.Equal(t, DOCTYPE, toks[0].Type)
	assert.Equal(t, "html", toks[0].Name)
	assert.False(t, toks[0].ForceQuirks)
}

func TestDoctypeLegacyPublic(t *testing.T) {
	toks := Tokenize(`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`)
	require.Len(t, toks, 1)
	require.NotNil(t, toks[0].PublicID)
	assert.Equal(t, "-//W3C//DTD HTML 4.01//EN", *toks[0].PublicID)
	require.NotNil(t, toks[0].SystemID)
}

func TestCRLFNormalization(t *testing.T) {
	toks := Tokenize("a\r\nb\rc")
	require.Len(t, toks, 1)
	assert.Equal(t, "a\nb\nc", toks[0].Data)
}

func TestEOFInTagDropsTag(t *testing.T) {
	toks := Tokenize("a<p b=")
	require.Len(t, toks, 1)
	assert.Equal(t, "a", toks[0].Data)
}

func TestEOFInCommentEmitsComment(t *testing.T) {
	toks := Tokenize("<!-- open")
	require.Len(t, toks, 1)
	assert.Equal(t, Comment, toks[0].Type)
	assert.Equal(t, " open", toks[0].Data)
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
}

func TestIncrementalSplitMidTag(t *testing.T) {
	p := NewIncremental()
	p.Feed("<p>Hel")
	first := p.Flush()
	require.Equal(t, []TokenKind{StartTag}, kinds(first))

	p.Feed("lo</p>")
	second := p.Flush()
	rest := p.End()

	var all []Token
	all = append(all, first...)
	all = append(all, second...)
	all = append(all, rest...)

	want := Tokenize("<p>Hello</p>")
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("incremental tokens differ from single pass (-want +got):\n%s", diff)
	}
}

func TestIncrementalMatchesSinglePass(t *testing.T) {
	input := `<!DOCTYPE html><html><head><title>t &amp; u</title></head>` +
		`<body><table><div id=x>hi</div></table><script>if (a<b) {}</script>` +
		`<!-- note --><p class="a b">text &lt;here&gt;</p></body></html>`

	for _, chunkSize := range []int{1, 2, 3, 7, 16, len(input)} {
		p := NewIncremental()
		var got []Token
		for at := 0; at < len(input); at += chunkSize {
			end := at + chunkSize
			if end > len(input) {
				end = len(input)
			}
			got = append(got, p.FeedAndFlush(input[at:end])...)
		}
		got = append(got, p.End()...)

		want := Tokenize(input)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("chunk size %d: tokens differ (-want +got):\n%s", chunkSize, diff)
		}
	}
}

func TestIncrementalNeverReturnsTokenTwice(t *testing.T) {
	p := NewIncremental()
	p.Feed("<p>a</p>")
	first := p.Flush()
	second := p.Flush()
	assert.NotEmpty(t, first)
	assert.Empty(t, second)
}

func TestIncrementalReset(t *testing.T) {
	p := NewIncremental()
	p.Feed("<p>partial")
	p.Flush()
	p.Reset()
	p.Feed("<b>x</b>")
	p.Flush()
	toks := p.End()
	var names []string
	for _, tok := range toks {
		if tok.Type == StartTag || tok.Type == EndTag {
			names = append(names, tok.Name)
		}
	}
	assert.NotContains(t, names, "p")
}

func TestIncrementalCallback(t *testing.T) {
	p := NewIncremental()
	var batches int
	p.OnTokens(func(toks []Token) { batches++ })
	p.FeedAndFlush("<p>x</p>")
	p.End()
	assert.Equal(t, 1, batches)
}

func TestEndMidTagRecovers(t *testing.T) {
	p := NewIncremental()
	p.Feed("<p>text<div unfinished")
	p.Flush()
	toks := p.End()

	var data strings.Builder
	for _, tok := range toks {
		if tok.Type == Character {
			data.WriteString(tok.Data)
		}
	}
	assert.Equal(t, "text", data.String())
}

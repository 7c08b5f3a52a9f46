package GoWebCore

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Christian/GoWebCore/dom"
	"github.com/MeKo-Christian/GoWebCore/render"
	"github.com/MeKo-Christian/GoWebCore/tokenizer"
	"github.com/MeKo-Christian/GoWebCore/treebuilder"
)

func allText(nodes []*render.RenderNode) string {
	var sb strings.Builder
	for _, n := range nodes {
		for _, s := range n.Spans {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}

func spanColor(t *testing.T, nodes []*render.RenderNode, text string) string {
	t.Helper()
	for _, n := range nodes {
		for _, s := range n.Spans {
			if strings.TrimSpace(s.Text) == text {
				return s.Color
			}
		}
	}
	t.Fatalf("span %q not found", text)
	return ""
}

// S1: foster parenting moves the div before the table in document order.
func TestScenarioFosterParenting(t *testing.T) {
	doc, err := Parse("<!DOCTYPE html><html><body><table><div id=x>hi</div></table></body></html>")
	require.NoError(t, err)

	body := doc.Body()
	require.NotNil(t, body)
	var tags []string
	for _, c := range body.Children() {
		if el, ok := c.(*dom.Element); ok {
			tags = append(tags, el.TagName)
		}
	}
	assert.Equal(t, []string{"div", "table"}, tags)

	div := body.Children()[0].(*dom.Element)
	assert.Equal(t, "x", div.ID())
	assert.Equal(t, "hi", div.Text())
}

// S2: specificity plus !important.
func TestScenarioSpecificityImportant(t *testing.T) {
	result := Render(
		`<p id="t" class="c">text</p>`,
		WithStylesheet("#t { color: blue } .c { color: red !important } p { color: green }"),
	)
	assert.Equal(t, "red", spanColor(t, result.Nodes, "text"))
}

// S3: unlayered normal declarations beat layered ones.
func TestScenarioCascadeLayers(t *testing.T) {
	result := Render(
		"<p>text</p>",
		WithStylesheet(`@layer base, theme;
@layer base { p { color: red } }
@layer theme { p { color: blue } }
p { color: green }`),
	)
	assert.Equal(t, "green", spanColor(t, result.Nodes, "text"))
}

// S4: incremental parse split mid-tag equals single-pass tokenization.
func TestScenarioIncrementalSplit(t *testing.T) {
	p := NewPipeline()
	p.Feed("<p>Hel")
	first := p.Flush()
	require.NotNil(t, first)

	p.Feed("lo</p>")
	p.Flush()
	final := p.End()

	assert.Equal(t, "Hello", allText(final.Nodes))

	want := Tokenize("<p>Hello</p>")
	if diff := cmp.Diff(want, p.Tokens()); diff != "" {
		t.Errorf("tokens differ from single pass (-want +got):\n%s", diff)
	}
}

// S5: entity decoding.
func TestScenarioEntityDecoding(t *testing.T) {
	result := Render("<p>5 &lt; 10 &amp; 20 &#x4E;&#78;</p>")
	assert.Equal(t, "5 < 10 & 20 NN", allText(result.Nodes))
}

// S6: var() with fallback across a replaceSync generation bump.
func TestScenarioVarAndGeneration(t *testing.T) {
	r := NewRenderer()
	sheet := r.AddStylesheet(":root { --x: 1px } div { width: var(--x, 5px) }")

	doc, err := Parse("<div>content</div>")
	require.NoError(t, err)

	result := r.RenderDocument(doc)
	require.NotEmpty(t, result.Nodes)
	assert.Equal(t, "1px", blockWidth(t, result.Nodes))

	gen := r.Env().StyleGeneration()
	sheet.ReplaceSync(":root { --x: 2px } div { width: var(--x, 5px) }")
	assert.Greater(t, r.Env().StyleGeneration(), gen)

	result = r.RenderDocument(doc)
	assert.Equal(t, "2px", blockWidth(t, result.Nodes))
}

func blockWidth(t *testing.T, nodes []*render.RenderNode) string {
	t.Helper()
	for _, n := range nodes {
		if n.Box.Width != "" {
			return n.Box.Width
		}
	}
	t.Fatal("no node with a computed width")
	return ""
}

func TestScenarioMediaQueryViewport(t *testing.T) {
	css := "@media (min-width: 10000px) { p { color: red } }"
	result := Render("<p>text</p>", WithStylesheet(css), WithViewport(1024, 768))
	assert.Equal(t, "", spanColor(t, result.Nodes, "text"))
}

func TestEmptyInput(t *testing.T) {
	doc, err := Parse("")
	require.NoError(t, err)
	require.NotNil(t, doc.DocumentElement())

	result := Render("")
	assert.Empty(t, result.Nodes)
	assert.True(t, result.QuirksMode)
}

func TestScriptBodyPreserved(t *testing.T) {
	result := Render("<script>var x = 0 < 1;</script>")
	require.Len(t, result.Scripts, 1)
	assert.Equal(t, "var x = 0 < 1;", result.Scripts[0].Code)
}

func TestDocumentInlineStyleApplies(t *testing.T) {
	result := Render(`<html><head><style>p { color: teal }</style></head><body><p>text</p></body></html>`)
	assert.Equal(t, "teal", spanColor(t, result.Nodes, "text"))
	require.Len(t, result.Styles, 1)
}

func TestUserAgentSheetLowestPriority(t *testing.T) {
	result := Render("<p>text</p>",
		WithUserAgentSheet("p { color: black }"),
		WithStylesheet("p { color: navy }"),
	)
	assert.Equal(t, "navy", spanColor(t, result.Nodes, "text"))
}

func TestParseFragment(t *testing.T) {
	nodes := ParseFragment("<td>Cell</td>", "tr")
	require.Len(t, nodes, 1)
	td := nodes[0].(*dom.Element)
	assert.Equal(t, "td", td.TagName)
}

func TestCollectErrors(t *testing.T) {
	_, err := Parse("x</>y", WithCollectErrors())
	assert.Error(t, err)
}

func TestStrictMode(t *testing.T) {
	doc, err := Parse("x</>y", WithStrictMode())
	assert.Error(t, err)
	require.NotNil(t, doc, "strict mode still returns the recovered document")

	_, err = Parse("<p>clean</p>", WithStrictMode())
	assert.NoError(t, err)
}

func TestStreamEvents(t *testing.T) {
	var events []Event
	for ev := range StreamEvents(`<p class="x">hi</p><!-- c -->`) {
		events = append(events, ev)
	}
	require.Len(t, events, 4)
	assert.Equal(t, StartTagEvent, events[0].Type)
	assert.Equal(t, "x", events[0].Attrs["class"])
	assert.Equal(t, TextEvent, events[1].Type)
	assert.Equal(t, EndTagEvent, events[2].Type)
	assert.Equal(t, CommentEvent, events[3].Type)
}

func TestPipelineReset(t *testing.T) {
	p := NewPipeline()
	p.FeedAndFlush("<p>old</p>")
	p.Reset()
	p.FeedAndFlush("<p>new</p>")
	result := p.End()
	text := allText(result.Nodes)
	assert.Contains(t, text, "new")
	assert.NotContains(t, text, "old")
}

func TestIncrementalEqualsSinglePassEndToEnd(t *testing.T) {
	input := `<!DOCTYPE html><html><head><title>T</title></head><body>` +
		`<h1>Head</h1><table><tr><td>c</td></tr></table><p>done</p></body></html>`

	p := NewPipeline()
	for at := 0; at < len(input); at += 5 {
		end := at + 5
		if end > len(input) {
			end = len(input)
		}
		p.FeedAndFlush(input[at:end])
	}
	incremental := p.End()

	doc := treebuilder.Build(tokenizer.Tokenize(input))
	single := NewRenderer().RenderDocument(doc)

	assert.Equal(t, allText(single.Nodes), allText(incremental.Nodes))
	assert.Equal(t, single.Title, incremental.Title)
}

package cssparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styleRules(rules []Rule) []*StyleRule {
	var out []*StyleRule
	for _, r := range rules {
		if sr, ok := r.(*StyleRule); ok {
			out = append(out, sr)
		}
	}
	return out
}

func TestSimpleRule(t *testing.T) {
	s := Parse("p { color: red; margin: 0 }")
	srs := styleRules(s.Rules)
	require.Len(t, srs, 1)
	assert.Equal(t, "p", srs[0].SelectorText)
	require.Len(t, srs[0].Declarations, 2)
	assert.Equal(t, Declaration{Property: "color", Value: "red"}, srs[0].Declarations[0])
	assert.Equal(t, Declaration{Property: "margin", Value: "0"}, srs[0].Declarations[1])
	assert.Equal(t, UnlayeredIndex, srs[0].LayerIndex)
}

func TestImportant(t *testing.T) {
	s := Parse("a { color: red !important; background: blue }")
	srs := styleRules(s.Rules)
	require.Len(t, srs, 1)
	assert.True(t, srs[0].Declarations[0].Important)
	assert.Equal(t, "red", srs[0].Declarations[0].Value)
	assert.False(t, srs[0].Declarations[1].Important)
}

func TestCommentsStripped(t *testing.T) {
	s := Parse("/* lead */ p { /* mid */ color: /* x */ red }")
	srs := styleRules(s.Rules)
	require.Len(t, srs, 1)
	require.Len(t, srs[0].Declarations, 1)
	assert.Equal(t, "red", srs[0].Declarations[0].Value)
}

func TestCommaSelectors(t *testing.T) {
	s := Parse("h1, .title { font-weight: bold }")
	srs := styleRules(s.Rules)
	require.Len(t, srs, 1)
	require.Len(t, srs[0].Selectors, 2)
	assert.Equal(t, 1, srs[0].Selectors[0].Specificity())
	assert.Equal(t, 100, srs[0].Selectors[1].Specificity())
}

func TestRecoveryAfterBadRule(t *testing.T) {
	s := Parse("p { color: red } €€ }} div { color: blue }")
	srs := styleRules(s.Rules)
	require.Len(t, srs, 2)
	assert.Equal(t, "div", srs[1].SelectorText)
	assert.NotEmpty(t, s.Errors)
}

func TestMediaRule(t *testing.T) {
	s := Parse("@media (min-width: 600px) { p { color: red } }")
	require.Len(t, s.Rules, 1)
	mr, ok := s.Rules[0].(*MediaRule)
	require.True(t, ok)
	assert.Equal(t, "(min-width: 600px)", mr.Condition)
	require.Len(t, styleRules(mr.Rules), 1)
}

func TestSupportsRule(t *testing.T) {
	s := Parse("@supports (display: grid) { div { display: grid } }")
	sr, ok := s.Rules[0].(*SupportsRule)
	require.True(t, ok)
	assert.Equal(t, "(display: grid)", sr.Condition)
}

func TestContainerRule(t *testing.T) {
	s := Parse("@container sidebar (min-width: 400px) { p { color: red } }")
	cr, ok := s.Rules[0].(*ContainerRule)
	require.True(t, ok)
	assert.Equal(t, "sidebar", cr.Name)
	assert.Equal(t, "(min-width: 400px)", cr.Condition)
}

func TestKeyframes(t *testing.T) {
	s := Parse("@keyframes spin { from { transform: rotate(0) } to { transform: rotate(360deg) } }")
	kf, ok := s.Rules[0].(*KeyframesRule)
	require.True(t, ok)
	assert.Equal(t, "spin", kf.Name)
	require.Len(t, kf.Stops, 2)
	assert.Equal(t, "from", kf.Stops[0].Selector)
	assert.Equal(t, "rotate(360deg)", kf.Stops[1].Declarations[0].Value)
}

func TestFontFace(t *testing.T) {
	s := Parse(`@font-face { font-family: "Mono"; src: url(mono.woff2) }`)
	ff, ok := s.Rules[0].(*FontFaceRule)
	require.True(t, ok)
	require.Len(t, ff.Descriptors, 2)
}

func TestImport(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"url form", `@import url(theme.css);`, "theme.css"},
		{"url string form", `@import url("theme.css");`, "theme.css"},
		{"bare string", `@import "theme.css";`, "theme.css"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Parse(tt.input)
			require.Len(t, s.Imports, 1)
			assert.Equal(t, tt.want, s.Imports[0])
		})
	}
}

func TestCharsetSkipped(t *testing.T) {
	s := Parse(`@charset "utf-8"; p { color: red }`)
	assert.Len(t, styleRules(s.Rules), 1)
}

func TestLayerStatement(t *testing.T) {
	s := Parse("@layer base, theme; @layer base { p { color: red } } @layer theme { p { color: blue } } p { color: green }")
	assert.Equal(t, []string{"base", "theme"}, s.Layers)

	srs := styleRules(s.Rules)
	require.Len(t, srs, 3)
	assert.Equal(t, 0, srs[0].LayerIndex)
	assert.Equal(t, 1, srs[1].LayerIndex)
	assert.Equal(t, UnlayeredIndex, srs[2].LayerIndex)
}

func TestVendorPrefixMirroring(t *testing.T) {
	s := Parse("div { -webkit-border-radius: 4px }")
	srs := styleRules(s.Rules)
	require.Len(t, srs, 1)
	decls := srs[0].Declarations
	require.Len(t, decls, 2)
	assert.Equal(t, "border-radius", decls[1].Property)
	assert.Equal(t, "4px", decls[1].Value)
}

func TestVendorPrefixDoesNotOverride(t *testing.T) {
	s := Parse("div { -webkit-transform: a; transform: b }")
	decls := styleRules(s.Rules)[0].Declarations
	require.Len(t, decls, 2)
	assert.Equal(t, "b", decls[1].Value)
}

func TestCustomPropertyKeepsCase(t *testing.T) {
	s := Parse(":root { --Main-Color: red }")
	decls := styleRules(s.Rules)[0].Declarations
	require.Len(t, decls, 1)
	assert.Equal(t, "--Main-Color", decls[0].Property)
}

func TestNestedRules(t *testing.T) {
	s := Parse(".card { color: black; .title { font-weight: bold } &:first-child { margin: 0 } }")
	srs := styleRules(s.Rules)
	require.Len(t, srs, 3)
	assert.Equal(t, ".card", srs[0].SelectorText)
	assert.Equal(t, ".card .title", srs[1].SelectorText)
	assert.Equal(t, ".card:first-child", srs[2].SelectorText)
}

func TestSourceOrderAssigned(t *testing.T) {
	s := Parse("p { } @media (x) { div { } } span { }")
	var orders []int
	var walk func(rules []Rule)
	walk = func(rules []Rule) {
		for _, r := range rules {
			switch rule := r.(type) {
			case *StyleRule:
				orders = append(orders, rule.SourceOrder)
			case *MediaRule:
				walk(rule.Rules)
			}
		}
	}
	walk(s.Rules)
	assert.Equal(t, []int{0, 1, 2}, orders)
}

func TestReplaceSyncBumpsRevision(t *testing.T) {
	s := Parse("p { color: red }")
	rev := s.Revision
	var hookCalled bool
	s.OnMutate(func() { hookCalled = true })
	s.ReplaceSync("p { color: blue }")
	assert.Greater(t, s.Revision, rev)
	assert.True(t, hookCalled)
	assert.Equal(t, "blue", styleRules(s.Rules)[0].Declarations[0].Value)
}

func TestInsertAndDeleteRule(t *testing.T) {
	s := Parse("p { color: red }")
	s.InsertRule("div { color: blue }", 0)
	srs := styleRules(s.Rules)
	require.Len(t, srs, 2)
	assert.Equal(t, "div", srs[0].SelectorText)
	assert.Equal(t, 0, srs[0].SourceOrder)
	assert.Equal(t, 1, srs[1].SourceOrder)

	s.DeleteRule(0)
	srs = styleRules(s.Rules)
	require.Len(t, srs, 1)
	assert.Equal(t, "p", srs[0].SelectorText)
}

func TestParseDeclarationsInline(t *testing.T) {
	decls := ParseDeclarations("color: red; font-size: 12px !important")
	require.Len(t, decls, 2)
	assert.Equal(t, "color", decls[0].Property)
	assert.True(t, decls[1].Important)
	assert.Equal(t, "12px", decls[1].Value)
}

func TestUnknownAtRuleSkipped(t *testing.T) {
	s := Parse("@unknown-thing { garbage } p { color: red }")
	assert.Len(t, styleRules(s.Rules), 1)
	assert.NotEmpty(t, s.Errors)
}

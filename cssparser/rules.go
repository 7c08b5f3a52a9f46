// Package cssparser parses CSS text into stylesheets.
//
// The parser is total: syntax errors skip to the next rule and are
// recorded in the stylesheet's error list.
package cssparser

import (
	"math"

	"github.com/MeKo-Christian/GoWebCore/selector"
)

// UnlayeredIndex is the effective layer index of rules outside any @layer:
// unlayered rules win over layered ones for normal declarations.
const UnlayeredIndex = math.MaxInt32

// Declaration is a single property declaration.
type Declaration struct {
	// Property is the normalized (lowercase) property name. Custom
	// properties (--name) keep their case.
	Property string

	// Value is the declaration value with surrounding whitespace trimmed
	// and any "!important" suffix removed.
	Value string

	// Important is true when the declaration carried "!important".
	Important bool
}

// Rule is the sum type over CSS rule variants.
type Rule interface {
	ruleNode()
}

// StyleRule is a selector list with a declaration block.
type StyleRule struct {
	// Selectors is the parsed selector list; one specificity per item.
	Selectors selector.List

	// SelectorText is the raw selector text.
	SelectorText string

	// Declarations in source order; later duplicates override earlier
	// within the rule.
	Declarations []Declaration

	// LayerIndex is the cascade layer this rule belongs to, or
	// UnlayeredIndex for rules outside any @layer.
	LayerIndex int

	// SourceOrder is the rule's global position in the stylesheet.
	SourceOrder int
}

func (*StyleRule) ruleNode() {}

// MediaRule is an @media block.
type MediaRule struct {
	Condition string
	Rules     []Rule
}

func (*MediaRule) ruleNode() {}

// SupportsRule is an @supports block.
type SupportsRule struct {
	Condition string
	Rules     []Rule
}

func (*SupportsRule) ruleNode() {}

// ContainerRule is an @container block.
type ContainerRule struct {
	Name      string
	Condition string
	Rules     []Rule
}

func (*ContainerRule) ruleNode() {}

// KeyframeStop is one stop in a @keyframes rule.
type KeyframeStop struct {
	// Selector is the stop selector text ("from", "to", "50%").
	Selector string

	Declarations []Declaration
}

// KeyframesRule is an @keyframes block.
type KeyframesRule struct {
	Name  string
	Stops []KeyframeStop
}

func (*KeyframesRule) ruleNode() {}

// FontFaceRule is an @font-face block.
type FontFaceRule struct {
	Descriptors []Declaration
}

func (*FontFaceRule) ruleNode() {}

// ImportRule records an @import; fetching is the caller's concern.
type ImportRule struct {
	Href string
}

func (*ImportRule) ruleNode() {}

// LayerStatement is the statement form "@layer a, b;" registering layer
// order without rules.
type LayerStatement struct {
	Names []string
}

func (*LayerStatement) ruleNode() {}

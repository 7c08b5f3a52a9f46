package cssparser

import (
	"fmt"

	htmlerrors "github.com/MeKo-Christian/GoWebCore/errors"
)

// Stylesheet is an ordered list of CSS rules plus the layer registry.
//
// All mutation entry points (ReplaceSync, InsertRule, DeleteRule) bump the
// revision and invoke the mutation hook so cached computed styles are
// invalidated lazily.
type Stylesheet struct {
	// Rules in source order. Conditional group rules nest.
	Rules []Rule

	// Layers holds layer names in declaration order; a rule's LayerIndex
	// points into this list (or is UnlayeredIndex).
	Layers []string

	// Imports lists @import URLs in source order. The outer scheduler may
	// fetch them and prepend the parsed rules via PrependRules.
	Imports []string

	// Errors collects recoverable parse errors.
	Errors htmlerrors.ParseErrors

	// Revision increments on every mutation.
	Revision int

	onMutate func()

	anonLayers int
}

// Parse parses CSS source text into a stylesheet.
func Parse(text string) *Stylesheet {
	s := &Stylesheet{}
	s.parseInto(text)
	return s
}

func (s *Stylesheet) parseInto(text string) {
	p := &parser{toks: lex(text), sheet: s}
	s.Rules = p.parseRules(UnlayeredIndex)
	s.renumber()
}

// OnMutate registers a hook invoked after every mutation, typically the
// style-generation bump.
func (s *Stylesheet) OnMutate(fn func()) {
	s.onMutate = fn
}

// ReplaceSync replaces the entire stylesheet contents.
func (s *Stylesheet) ReplaceSync(text string) {
	s.Rules = nil
	s.Layers = nil
	s.Imports = nil
	s.Errors = nil
	s.anonLayers = 0
	s.parseInto(text)
	s.mutated()
}

// InsertRule parses a single rule and inserts it at the given index.
// The index is clamped to the rule list bounds.
func (s *Stylesheet) InsertRule(text string, index int) {
	p := &parser{toks: lex(text), sheet: s}
	rules := p.parseRules(UnlayeredIndex)
	if len(rules) == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.Rules) {
		index = len(s.Rules)
	}
	s.Rules = append(s.Rules[:index], append(rules, s.Rules[index:]...)...)
	s.renumber()
	s.mutated()
}

// DeleteRule removes the rule at the given index.
func (s *Stylesheet) DeleteRule(index int) {
	if index < 0 || index >= len(s.Rules) {
		return
	}
	s.Rules = append(s.Rules[:index], s.Rules[index+1:]...)
	s.renumber()
	s.mutated()
}

// PrependRules inserts already-parsed rules at the front, used when an
// @import response arrives.
func (s *Stylesheet) PrependRules(rules []Rule) {
	s.Rules = append(rules, s.Rules...)
	s.renumber()
	s.mutated()
}

func (s *Stylesheet) mutated() {
	s.Revision++
	if s.onMutate != nil {
		s.onMutate()
	}
}

// registerLayer returns the index for a layer name, assigning indices in
// declaration order. An empty name creates an anonymous layer.
func (s *Stylesheet) registerLayer(name string) int {
	if name == "" {
		s.anonLayers++
		name = fmt.Sprintf("<anonymous-%d>", s.anonLayers)
	}
	for i, existing := range s.Layers {
		if existing == name {
			return i
		}
	}
	s.Layers = append(s.Layers, name)
	return len(s.Layers) - 1
}

// renumber reassigns global source order to every style rule, including
// rules nested in conditional groups.
func (s *Stylesheet) renumber() {
	order := 0
	var walk func(rules []Rule)
	walk = func(rules []Rule) {
		for _, r := range rules {
			switch rule := r.(type) {
			case *StyleRule:
				rule.SourceOrder = order
				order++
			case *MediaRule:
				walk(rule.Rules)
			case *SupportsRule:
				walk(rule.Rules)
			case *ContainerRule:
				walk(rule.Rules)
			}
		}
	}
	walk(s.Rules)
}

// ParseDeclarations parses a bare declaration list, as found in a style
// attribute.
func ParseDeclarations(text string) []Declaration {
	s := &Stylesheet{}
	p := &parser{toks: lex(text), sheet: s}
	return p.parseDeclarations(p.toks)
}

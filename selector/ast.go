// Package selector provides CSS selector parsing, matching, and
// specificity computation for the style resolver.
package selector

import "strings"

// SimpleKind identifies a simple selector component.
type SimpleKind int

// Simple selector kinds.
const (
	KindTag SimpleKind = iota
	KindUniversal
	KindID
	KindClass
	KindAttr
	KindPseudoClass
	KindPseudoElement
)

// Simple is one simple selector: a tag name, #id, .class, [attr],
// :pseudo-class, or ::pseudo-element.
type Simple struct {
	Kind SimpleKind

	// Name is the tag, id, class, attribute, or pseudo name (lowercase).
	Name string

	// Op and Value describe an attribute match ([attr op value]).
	// Op is one of "", "=", "~=", "|=", "^=", "$=", "*=".
	Op    string
	Value string

	// Args holds the inner selector list for :not(), :is(), :where(),
	// and :has().
	Args List

	// ArgText is the raw argument for :nth-child() and friends.
	ArgText string
}

// Compound is a sequence of simple selectors with no combinator between
// them (e.g. "a.external[href]").
type Compound struct {
	Parts []Simple
}

// Combinators joining compounds within a complex selector.
const (
	CombinatorDescendant = ' '
	CombinatorChild      = '>'
	CombinatorAdjacent   = '+'
	CombinatorSibling    = '~'
)

// Complex is a full selector: compounds joined by combinators, rightmost
// compound last. Combinators[i] joins Compounds[i] and Compounds[i+1].
type Complex struct {
	Compounds   []Compound
	Combinators []byte

	// Source is the original selector text.
	Source string
}

// List is a comma-separated selector list.
type List []Complex

// PseudoElement returns the pseudo-element of the rightmost compound
// ("before", "after", ...) or "" if none.
func (c *Complex) PseudoElement() string {
	if len(c.Compounds) == 0 {
		return ""
	}
	last := c.Compounds[len(c.Compounds)-1]
	for _, p := range last.Parts {
		if p.Kind == KindPseudoElement {
			return p.Name
		}
	}
	return ""
}

// Key returns the rule-index bucket key for this selector: "#id" if the
// rightmost compound has an id, else ".class" for its first class, else
// the tag name, else "*".
func (c *Complex) Key() string {
	if len(c.Compounds) == 0 {
		return "*"
	}
	last := c.Compounds[len(c.Compounds)-1]

	for _, p := range last.Parts {
		if p.Kind == KindID {
			return "#" + p.Name
		}
	}
	for _, p := range last.Parts {
		if p.Kind == KindClass {
			return "." + p.Name
		}
	}
	for _, p := range last.Parts {
		if p.Kind == KindTag {
			return p.Name
		}
	}
	return "*"
}

// Specificity computes the selector's specificity encoded as a single
// integer: id-count*10000 + (class+attr+pseudo-class)*100 + (type+
// pseudo-element). :not(X) contributes X's specificity; :is(X) uses the
// maximum of its arguments; :where() contributes zero.
func (c *Complex) Specificity() int {
	total := 0
	for _, comp := range c.Compounds {
		for _, p := range comp.Parts {
			total += simpleSpecificity(p)
		}
	}
	return total
}

func simpleSpecificity(p Simple) int {
	switch p.Kind {
	case KindID:
		return 10000
	case KindClass, KindAttr:
		return 100
	case KindTag:
		return 1
	case KindPseudoElement:
		return 1
	case KindPseudoClass:
		switch p.Name {
		case "where":
			return 0
		case "not", "is", "has":
			max := 0
			for _, inner := range p.Args {
				if s := inner.Specificity(); s > max {
					max = s
				}
			}
			return max
		case "nth-child", "nth-last-child", "nth-of-type", "nth-last-of-type":
			return 100
		default:
			return 100
		}
	case KindUniversal:
		return 0
	}
	return 0
}

// String returns the selector source text.
func (c *Complex) String() string {
	if c.Source != "" {
		return c.Source
	}
	var sb strings.Builder
	for i, comp := range c.Compounds {
		if i > 0 {
			sb.WriteByte(c.Combinators[i-1])
		}
		for _, p := range comp.Parts {
			switch p.Kind {
			case KindID:
				sb.WriteByte('#')
				sb.WriteString(p.Name)
			case KindClass:
				sb.WriteByte('.')
				sb.WriteString(p.Name)
			case KindUniversal:
				sb.WriteByte('*')
			default:
				sb.WriteString(p.Name)
			}
		}
	}
	return sb.String()
}

package selector

import (
	"strconv"
	"strings"

	"github.com/MeKo-Christian/GoWebCore/dom"
)

// Matches reports whether any selector in the list matches the element.
// Pseudo-elements on the rightmost compound are ignored for matching; the
// cascade queries them separately.
func Matches(el *dom.Element, list List) bool {
	for i := range list {
		if MatchComplex(el, &list[i]) {
			return true
		}
	}
	return false
}

// MatchComplex matches a single complex selector against an element,
// walking combinators right to left.
func MatchComplex(el *dom.Element, c *Complex) bool {
	if len(c.Compounds) == 0 {
		return false
	}
	return matchFrom(el, c, len(c.Compounds)-1)
}

func matchFrom(el *dom.Element, c *Complex, idx int) bool {
	if el == nil {
		return false
	}
	if !matchCompound(el, c.Compounds[idx]) {
		return false
	}
	if idx == 0 {
		return true
	}

	switch c.Combinators[idx-1] {
	case CombinatorChild:
		return matchFrom(el.ParentElement(), c, idx-1)
	case CombinatorAdjacent:
		return matchFrom(el.PreviousSiblingElement(), c, idx-1)
	case CombinatorSibling:
		for prev := el.PreviousSiblingElement(); prev != nil; prev = prev.PreviousSiblingElement() {
			if matchFrom(prev, c, idx-1) {
				return true
			}
		}
		return false
	default: // descendant
		for p := el.ParentElement(); p != nil; p = p.ParentElement() {
			if matchFrom(p, c, idx-1) {
				return true
			}
		}
		return false
	}
}

func matchCompound(el *dom.Element, compound Compound) bool {
	for _, part := range compound.Parts {
		if !matchSimple(el, part) {
			return false
		}
	}
	return true
}

//nolint:gocyclo // simple selector dispatch
func matchSimple(el *dom.Element, s Simple) bool {
	switch s.Kind {
	case KindUniversal:
		return true
	case KindTag:
		return el.TagName == s.Name
	case KindID:
		return el.ID() == s.Name
	case KindClass:
		return el.HasClass(s.Name)
	case KindAttr:
		return matchAttr(el, s)
	case KindPseudoElement:
		// Pseudo-elements do not restrict the originating element.
		return true
	case KindPseudoClass:
		return matchPseudoClass(el, s)
	}
	return false
}

func matchAttr(el *dom.Element, s Simple) bool {
	val, ok := el.Attributes.Get(s.Name)
	if !ok {
		return false
	}
	switch s.Op {
	case "":
		return true
	case "=":
		return val == s.Value
	case "~=":
		for _, w := range strings.Fields(val) {
			if w == s.Value {
				return true
			}
		}
		return false
	case "|=":
		return val == s.Value || strings.HasPrefix(val, s.Value+"-")
	case "^=":
		return s.Value != "" && strings.HasPrefix(val, s.Value)
	case "$=":
		return s.Value != "" && strings.HasSuffix(val, s.Value)
	case "*=":
		return s.Value != "" && strings.Contains(val, s.Value)
	}
	return false
}

//nolint:gocyclo // pseudo-class dispatch
func matchPseudoClass(el *dom.Element, s Simple) bool {
	switch s.Name {
	case "root":
		p := el.Parent()
		return p == nil || p.Type() == dom.DocumentNodeType
	case "first-child":
		return nthIndex(el) == 1
	case "last-child":
		return nthLastIndex(el) == 1
	case "only-child":
		return nthIndex(el) == 1 && nthLastIndex(el) == 1
	case "first-of-type":
		return nthOfTypeIndex(el) == 1
	case "last-of-type":
		return nthLastOfTypeIndex(el) == 1
	case "nth-child":
		return matchNth(s.ArgText, nthIndex(el))
	case "nth-last-child":
		return matchNth(s.ArgText, nthLastIndex(el))
	case "nth-of-type":
		return matchNth(s.ArgText, nthOfTypeIndex(el))
	case "nth-last-of-type":
		return matchNth(s.ArgText, nthLastOfTypeIndex(el))
	case "empty":
		return len(el.Children()) == 0
	case "not":
		return !Matches(el, s.Args)
	case "is", "where":
		return Matches(el, s.Args)
	case "has":
		return hasDescendantMatch(el, s.Args)
	case "link", "any-link":
		return el.TagName == "a" && el.HasAttr("href")
	case "enabled":
		return isFormControl(el.TagName) && !el.HasAttr("disabled")
	case "disabled":
		return el.HasAttr("disabled")
	case "checked":
		return el.HasAttr("checked") || el.HasAttr("selected")
	case "required":
		return el.HasAttr("required")
	case "optional":
		return isFormControl(el.TagName) && !el.HasAttr("required")
	case "lang":
		return matchLang(el, s.ArgText)
	case "hover", "focus", "focus-within", "focus-visible", "active",
		"visited", "target":
		// Dynamic user states never apply to a static render.
		return false
	case "scope":
		return true
	default:
		// Unknown pseudo-classes do not match.
		return false
	}
}

func isFormControl(tag string) bool {
	switch tag {
	case "input", "select", "textarea", "button", "optgroup", "option",
		"fieldset":
		return true
	}
	return false
}

func matchLang(el *dom.Element, want string) bool {
	want = strings.ToLower(strings.Trim(want, "\"'"))
	if want == "" {
		return false
	}
	for e := el; e != nil; e = e.ParentElement() {
		if lang := strings.ToLower(e.Attr("lang")); lang != "" {
			return lang == want || strings.HasPrefix(lang, want+"-")
		}
	}
	return false
}

func hasDescendantMatch(el *dom.Element, list List) bool {
	for _, child := range el.Children() {
		ce, ok := child.(*dom.Element)
		if !ok {
			continue
		}
		if Matches(ce, list) || hasDescendantMatch(ce, list) {
			return true
		}
	}
	return false
}

// --- Structural indexes -----------------------------------------------

func siblingElements(el *dom.Element) []*dom.Element {
	p := el.Parent()
	if p == nil {
		return []*dom.Element{el}
	}
	var out []*dom.Element
	for _, c := range p.Children() {
		if e, ok := c.(*dom.Element); ok {
			out = append(out, e)
		}
	}
	return out
}

func nthIndex(el *dom.Element) int {
	for i, e := range siblingElements(el) {
		if e == el {
			return i + 1
		}
	}
	return 0
}

func nthLastIndex(el *dom.Element) int {
	sibs := siblingElements(el)
	for i, e := range sibs {
		if e == el {
			return len(sibs) - i
		}
	}
	return 0
}

func nthOfTypeIndex(el *dom.Element) int {
	n := 0
	for _, e := range siblingElements(el) {
		if e.TagName == el.TagName {
			n++
		}
		if e == el {
			return n
		}
	}
	return 0
}

func nthLastOfTypeIndex(el *dom.Element) int {
	sibs := siblingElements(el)
	n := 0
	for i := len(sibs) - 1; i >= 0; i-- {
		if sibs[i].TagName == el.TagName {
			n++
		}
		if sibs[i] == el {
			return n
		}
	}
	return 0
}

// matchNth evaluates an An+B expression ("odd", "even", "3", "2n+1", "-n+3")
// against a 1-based index.
func matchNth(expr string, index int) bool {
	if index <= 0 {
		return false
	}
	expr = strings.ToLower(strings.ReplaceAll(expr, " ", ""))
	switch expr {
	case "odd":
		return index%2 == 1
	case "even":
		return index%2 == 0
	case "":
		return false
	}

	a, b, ok := parseAnPlusB(expr)
	if !ok {
		return false
	}
	if a == 0 {
		return index == b
	}
	diff := index - b
	return diff%a == 0 && diff/a >= 0
}

func parseAnPlusB(expr string) (a, b int, ok bool) {
	nIdx := strings.IndexByte(expr, 'n')
	if nIdx < 0 {
		v, err := strconv.Atoi(expr)
		if err != nil {
			return 0, 0, false
		}
		return 0, v, true
	}

	aPart := expr[:nIdx]
	switch aPart {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		v, err := strconv.Atoi(aPart)
		if err != nil {
			return 0, 0, false
		}
		a = v
	}

	bPart := expr[nIdx+1:]
	if bPart == "" {
		return a, 0, true
	}
	v, err := strconv.Atoi(strings.TrimPrefix(bPart, "+"))
	if err != nil {
		return 0, 0, false
	}
	return a, v, true
}

// QueryAll returns all descendant elements of root matching the selector.
func QueryAll(root dom.Node, input string) ([]*dom.Element, error) {
	list, err := Parse(input)
	if err != nil {
		return nil, err
	}
	var out []*dom.Element
	var walk func(n dom.Node)
	walk = func(n dom.Node) {
		for _, c := range n.Children() {
			if el, ok := c.(*dom.Element); ok {
				if Matches(el, list) {
					out = append(out, el)
				}
				walk(el)
			}
		}
	}
	walk(root)
	return out, nil
}

// QueryFirst returns the first matching descendant element, or nil.
func QueryFirst(root dom.Node, input string) (*dom.Element, error) {
	all, err := QueryAll(root, input)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

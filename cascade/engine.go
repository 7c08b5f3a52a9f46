package cascade

import (
	"sort"
	"strings"

	"github.com/MeKo-Christian/GoWebCore/cssparser"
	"github.com/MeKo-Christian/GoWebCore/dom"
	"github.com/MeKo-Christian/GoWebCore/selector"
)

// Props is the computed property map for one element: normalized property
// names to resolved value strings. Values contain no unresolved var()
// references.
type Props map[string]string

// Declaration priority tiers, low to high. Within a tier, events order by
// layer key, then specificity, then source order.
const (
	tierLayeredNormal = iota
	tierUnlayeredNormal
	tierInlineNormal
	tierLayeredImportant
	tierInlineImportant
	tierUnlayeredImportant
)

// Engine resolves computed styles for elements against a stylesheet list
// and the environment.
//
// Computed maps are cached per element, keyed by the style generation;
// any stylesheet mutation bumps the generation and invalidates all caches
// lazily.
type Engine struct {
	env    *Environment
	sheets []*cssparser.Stylesheet

	indexes []indexState
	cache   map[*dom.Element]cachedStyle
}

type indexState struct {
	index    *RuleIndex
	revision int
}

type cachedStyle struct {
	generation int
	props      Props
}

// NewEngine creates a cascade engine over the environment.
func NewEngine(env *Environment) *Engine {
	return &Engine{
		env:   env,
		cache: make(map[*dom.Element]cachedStyle),
	}
}

// AddSheet appends a stylesheet; its mutations bump the style generation.
func (e *Engine) AddSheet(sheet *cssparser.Stylesheet) {
	e.sheets = append(e.sheets, sheet)
	e.indexes = append(e.indexes, indexState{})
	sheet.OnMutate(e.env.BumpStyleGeneration)
	e.env.BumpStyleGeneration()
}

// Sheets returns the stylesheet list in cascade order.
func (e *Engine) Sheets() []*cssparser.Stylesheet {
	return e.sheets
}

// Env returns the engine's environment.
func (e *Engine) Env() *Environment {
	return e.env
}

func (e *Engine) indexFor(i int) *RuleIndex {
	state := &e.indexes[i]
	if state.index == nil || state.revision != e.sheets[i].Revision {
		state.index = NewIndex(e.sheets[i])
		state.revision = e.sheets[i].Revision
	}
	return state.index
}

// ComputedFor returns the computed property map for an element,
// recomputing only when the style generation has moved.
func (e *Engine) ComputedFor(el *dom.Element) Props {
	if cached, ok := e.cache[el]; ok && cached.generation == e.env.generation {
		return cached.props
	}

	var parentProps Props
	if parent := el.ParentElement(); parent != nil {
		parentProps = e.ComputedFor(parent)
	}

	props := e.cascade(el, parentProps, "")
	e.cache[el] = cachedStyle{generation: e.env.generation, props: props}
	return props
}

// PseudoProps resolves the computed map for an element's pseudo-element
// ("before" or "after"). Pseudo-elements inherit from their originating
// element.
func (e *Engine) PseudoProps(el *dom.Element, pseudo string) Props {
	return e.cascade(el, e.ComputedFor(el), pseudo)
}

type declEvent struct {
	tier     int
	layerKey int
	spec     int
	sheet    int
	order    int
	seq      int

	prop  string
	value string
}

func (e *Engine) cascade(el *dom.Element, parentProps Props, pseudo string) Props {
	var events []declEvent
	seq := 0

	tag := el.TagName
	id := el.ID()
	classes := el.Classes()

	for si := range e.sheets {
		ix := e.indexFor(si)
		for _, entry := range ix.Candidates(tag, id, classes) {
			if !e.conditionsHold(el, entry.Conditions) {
				continue
			}
			for _, sel := range entry.Selectors {
				if sel.PseudoElement() != pseudo {
					continue
				}
				if !selector.MatchComplex(el, sel) {
					continue
				}
				spec := sel.Specificity()
				for _, d := range entry.Rule.Declarations {
					ev := declEvent{
						spec:  spec,
						sheet: si,
						order: entry.Rule.SourceOrder,
						seq:   seq,
						prop:  d.Property,
						value: d.Value,
					}
					seq++
					layered := entry.Rule.LayerIndex != cssparser.UnlayeredIndex
					switch {
					case !d.Important && layered:
						ev.tier = tierLayeredNormal
						ev.layerKey = entry.Rule.LayerIndex
					case !d.Important:
						ev.tier = tierUnlayeredNormal
					case layered:
						// Important declarations invert layer order.
						ev.tier = tierLayeredImportant
						ev.layerKey = -entry.Rule.LayerIndex
					default:
						ev.tier = tierUnlayeredImportant
					}
					events = append(events, ev)
				}
			}
		}
	}

	// Inline style overlays everything non-important; inline !important
	// beats layered !important but loses to unlayered !important.
	if pseudo == "" {
		if style := el.Attr("style"); style != "" {
			for _, d := range cssparser.ParseDeclarations(style) {
				ev := declEvent{
					tier:  tierInlineNormal,
					seq:   seq,
					prop:  d.Property,
					value: d.Value,
				}
				if d.Important {
					ev.tier = tierInlineImportant
				}
				seq++
				events = append(events, ev)
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.layerKey != b.layerKey {
			return a.layerKey < b.layerKey
		}
		if a.spec != b.spec {
			return a.spec < b.spec
		}
		if a.sheet != b.sheet {
			return a.sheet < b.sheet
		}
		if a.order != b.order {
			return a.order < b.order
		}
		return a.seq < b.seq
	})

	props := make(Props, len(events))
	for _, ev := range events {
		props[ev.prop] = ev.value
	}

	// Custom properties inherit through the parent chain.
	for k, v := range parentProps {
		if strings.HasPrefix(k, "--") {
			if _, set := props[k]; !set {
				props[k] = v
			}
		}
	}

	// Substitute var() references, falling back when undefined.
	for k, v := range props {
		if strings.Contains(v, "var(") {
			props[k] = strings.TrimSpace(e.resolveVar(v, props, 0))
		}
	}

	// Resolve CSS-wide keywords per property.
	for k, v := range props {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "inherit":
			props[k] = parentProps[k]
		case "initial", "revert":
			props[k] = ""
		case "unset":
			if IsInherited(k) {
				props[k] = parentProps[k]
			} else {
				props[k] = ""
			}
		}
	}

	// Inherited properties with no declaration take the parent's value.
	for k, v := range parentProps {
		if strings.HasPrefix(k, "--") || !IsInherited(k) {
			continue
		}
		if _, set := props[k]; !set {
			props[k] = v
		}
	}

	return props
}

func (e *Engine) conditionsHold(el *dom.Element, conds []Condition) bool {
	for _, c := range conds {
		switch c.Kind {
		case CondMedia:
			if !EvalMedia(c.Expr, e.env) {
				return false
			}
		case CondSupports:
			if !EvalSupports(c.Expr) {
				return false
			}
		case CondContainer:
			if !e.evalContainer(el, c.Name, c.Expr) {
				return false
			}
		}
	}
	return true
}

const maxVarDepth = 8

// resolveVar substitutes var(--name, fallback) references against the
// element's resolved custom properties. A miss with no fallback yields an
// empty string.
func (e *Engine) resolveVar(value string, props Props, depth int) string {
	if depth > maxVarDepth {
		return ""
	}

	var sb strings.Builder
	for {
		idx := strings.Index(value, "var(")
		if idx < 0 {
			sb.WriteString(value)
			return sb.String()
		}
		sb.WriteString(value[:idx])

		inner, rest, ok := balancedParen(value[idx+4:])
		if !ok {
			// Malformed reference: drop the remainder.
			return sb.String()
		}
		value = rest

		name, fallback := splitVarArgs(inner)
		if sub, found := props[name]; found && strings.TrimSpace(sub) != "" {
			if strings.Contains(sub, "var(") {
				sub = e.resolveVar(sub, props, depth+1)
			}
			sb.WriteString(sub)
			continue
		}
		if fallback != "" {
			sb.WriteString(e.resolveVar(strings.TrimSpace(fallback), props, depth+1))
		}
	}
}

// balancedParen splits "inner)rest" at the matching close paren.
func balancedParen(s string) (inner, rest string, ok bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
			depth--
		}
	}
	return "", "", false
}

// splitVarArgs separates the custom property name from the fallback.
func splitVarArgs(inner string) (name, fallback string) {
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return strings.TrimSpace(inner[:i]), inner[i+1:]
			}
		}
	}
	return strings.TrimSpace(inner), ""
}

// InvalidateElement drops one element's cached style, for callers that
// mutate attributes directly.
func (e *Engine) InvalidateElement(el *dom.Element) {
	delete(e.cache, el)
}

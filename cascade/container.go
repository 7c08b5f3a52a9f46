package cascade

import (
	"strings"

	"github.com/MeKo-Christian/GoWebCore/dom"
)

// evalContainer evaluates an @container condition for an element.
//
// The query targets the nearest ancestor that establishes a container
// (container-type or container-name set), optionally filtered by name.
// Container dimensions come from the layout pass via the environment;
// absent that, the viewport is used.
func (e *Engine) evalContainer(el *dom.Element, name, cond string) bool {
	container := e.findContainer(el, name)
	if container == nil {
		return false
	}
	w, h := e.env.containerSizeFor(container)

	for _, feature := range extractParenGroups(cond) {
		if !evalSizeFeature(feature, w, h) {
			return false
		}
	}
	return true
}

func (e *Engine) findContainer(el *dom.Element, name string) *dom.Element {
	for p := el.ParentElement(); p != nil; p = p.ParentElement() {
		props := e.ComputedFor(p)
		ctype := props["container-type"]
		cname := props["container-name"]
		if ctype == "" && cname == "" {
			if short := props["container"]; short != "" {
				parts := strings.SplitN(short, "/", 2)
				cname = strings.TrimSpace(parts[0])
				if len(parts) == 2 {
					ctype = strings.TrimSpace(parts[1])
				}
			}
		}
		if ctype == "" && cname == "" {
			continue
		}
		if name == "" || containsName(cname, name) {
			return p
		}
	}
	return nil
}

func containsName(cname, want string) bool {
	for _, n := range strings.Fields(cname) {
		if n == want {
			return true
		}
	}
	return false
}

// evalSizeFeature handles the container query feature subset: width,
// height, and aspect-ratio bounds.
func evalSizeFeature(feature string, w, h int) bool {
	name, value := splitFeature(feature)
	switch name {
	case "min-width":
		px, ok := parseLengthPx(value)
		return !ok || w >= px
	case "max-width":
		px, ok := parseLengthPx(value)
		return !ok || w <= px
	case "width":
		px, ok := parseLengthPx(value)
		return !ok || w == px
	case "min-height":
		px, ok := parseLengthPx(value)
		return !ok || h >= px
	case "max-height":
		px, ok := parseLengthPx(value)
		return !ok || h <= px
	case "height":
		px, ok := parseLengthPx(value)
		return !ok || h == px
	case "aspect-ratio", "min-aspect-ratio", "max-aspect-ratio":
		return evalAspectRatio(name, value, w, h)
	default:
		return true
	}
}

package cascade

import "strings"

// inheritedProperties are the properties that pass from parent to child
// when the child has no declaration of its own.
var inheritedProperties = map[string]bool{
	"color":           true,
	"line-height":     true,
	"letter-spacing":  true,
	"word-spacing":    true,
	"white-space":     true,
	"word-break":      true,
	"overflow-wrap":   true,
	"cursor":          true,
	"direction":       true,
	"visibility":      true,
	"caption-side":    true,
	"border-collapse": true,
	"border-spacing":  true,
	"empty-cells":     true,
	"quotes":          true,
	"orphans":         true,
	"widows":          true,
	"pointer-events":  true,
}

// inheritedPrefixes cover the property families that inherit wholesale.
var inheritedPrefixes = []string{
	"font",
	"text-",
	"list-style",
}

// IsInherited reports whether a property inherits from the parent.
// Custom properties always inherit.
func IsInherited(prop string) bool {
	if strings.HasPrefix(prop, "--") {
		return true
	}
	if inheritedProperties[prop] {
		return true
	}
	for _, prefix := range inheritedPrefixes {
		if prop == strings.TrimSuffix(prefix, "-") || strings.HasPrefix(prop, prefix) {
			return true
		}
	}
	return false
}

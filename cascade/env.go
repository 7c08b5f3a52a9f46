// Package cascade resolves computed styles: it indexes style rules,
// evaluates conditional groups against the environment, and applies the
// cascade (layers, specificity, importance, inheritance, var()).
package cascade

import "github.com/MeKo-Christian/GoWebCore/dom"

// Environment supplies the viewport and user-preference values consumed
// by media and container queries, and owns the style generation counter.
type Environment struct {
	ViewportWidth  int
	ViewportHeight int

	// ColorScheme is "light" or "dark".
	ColorScheme string

	// ReducedMotion is "no-preference" or "reduce".
	ReducedMotion string

	// Contrast is "no-preference", "more", or "less".
	Contrast string

	// Pointer is "fine", "coarse", or "none".
	Pointer string

	// Hover is "hover" or "none".
	Hover string

	// DisplayMode is "browser" unless embedded otherwise.
	DisplayMode string

	// ContainerSize reports the rendered size of a container element, as
	// set by the downstream layout pass. A false return falls back to the
	// viewport.
	ContainerSize func(el *dom.Element) (width, height int, ok bool)

	generation int
}

// NewEnvironment creates an environment with desktop-browser defaults.
func NewEnvironment() *Environment {
	return &Environment{
		ViewportWidth:  1024,
		ViewportHeight: 768,
		ColorScheme:    "light",
		ReducedMotion:  "no-preference",
		Contrast:       "no-preference",
		Pointer:        "fine",
		Hover:          "hover",
		DisplayMode:    "browser",
		generation:     1,
	}
}

// StyleGeneration returns the current style generation.
func (e *Environment) StyleGeneration() int {
	return e.generation
}

// BumpStyleGeneration invalidates all cached computed styles; caches
// recompute lazily on next read.
func (e *Environment) BumpStyleGeneration() {
	e.generation++
}

func (e *Environment) containerSizeFor(el *dom.Element) (int, int) {
	if e.ContainerSize != nil {
		if w, h, ok := e.ContainerSize(el); ok {
			return w, h
		}
	}
	return e.ViewportWidth, e.ViewportHeight
}

package GoWebCore

import (
	"github.com/MeKo-Christian/GoWebCore/dom"
	"github.com/MeKo-Christian/GoWebCore/render"
)

// config holds parser and renderer configuration.
type config struct {
	viewportWidth  int
	viewportHeight int
	colorScheme    string
	reducedMotion  string

	userAgentCSS string
	stylesheets  []string

	structuredTables bool
	svgRenderer      func(el *dom.Element) (*render.WidgetBlueprint, bool)
	containerSize    func(el *dom.Element) (int, int, bool)

	strict        bool
	collectErrors bool
}

// newConfig creates a new config with defaults and applies options.
func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures parsing and rendering behavior.
type Option func(*config)

// WithViewport sets the viewport dimensions in CSS pixels, consumed by
// media and container queries.
func WithViewport(width, height int) Option {
	return func(c *config) {
		c.viewportWidth = width
		c.viewportHeight = height
	}
}

// WithColorScheme sets the prefers-color-scheme value ("light" or "dark").
func WithColorScheme(scheme string) Option {
	return func(c *config) {
		c.colorScheme = scheme
	}
}

// WithReducedMotion sets the prefers-reduced-motion value
// ("no-preference" or "reduce").
func WithReducedMotion(value string) Option {
	return func(c *config) {
		c.reducedMotion = value
	}
}

// WithUserAgentSheet sets the user-agent stylesheet applied before all
// author stylesheets.
func WithUserAgentSheet(css string) Option {
	return func(c *config) {
		c.userAgentCSS = css
	}
}

// WithStylesheet registers an author stylesheet.
func WithStylesheet(css string) Option {
	return func(c *config) {
		c.stylesheets = append(c.stylesheets, css)
	}
}

// WithStructuredTables emits structured table nodes instead of the
// box-drawn preformatted rendering.
func WithStructuredTables() Option {
	return func(c *config) {
		c.structuredTables = true
	}
}

// WithSVGRenderer installs the SVG rasterization hook. Without it, SVG
// subtrees render as placeholders.
func WithSVGRenderer(fn func(el *dom.Element) (*render.WidgetBlueprint, bool)) Option {
	return func(c *config) {
		c.svgRenderer = fn
	}
}

// WithContainerSize installs the layout feedback hook reporting rendered
// container dimensions for @container queries.
func WithContainerSize(fn func(el *dom.Element) (int, int, bool)) Option {
	return func(c *config) {
		c.containerSize = fn
	}
}

// WithStrictMode makes Parse return the first parse error alongside the
// recovered document. By default, parse errors are handled per the HTML5
// specification and parsing continues.
func WithStrictMode() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithCollectErrors makes Parse return collected parse errors as a
// ParseErrors value (unwrappable into individual errors). Without it,
// parse errors are silently recovered.
func WithCollectErrors() Option {
	return func(c *config) {
		c.collectErrors = true
	}
}

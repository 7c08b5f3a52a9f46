package constants

// Scope terminators for the tree builder.
// These define which elements terminate various scopes during parsing.

// DefaultScopeTerminators terminate the default "in scope" test.
var DefaultScopeTerminators = map[string]bool{
	"applet":   true,
	"caption":  true,
	"html":     true,
	"table":    true,
	"td":       true,
	"th":       true,
	"marquee":  true,
	"object":   true,
	"template": true,
}

// ListItemScopeTerminators terminate the "in list item scope" test.
// This is the default scope plus ol and ul.
var ListItemScopeTerminators = map[string]bool{
	"applet":   true,
	"caption":  true,
	"html":     true,
	"table":    true,
	"td":       true,
	"th":       true,
	"marquee":  true,
	"object":   true,
	"template": true,
	"ol":       true,
	"ul":       true,
}

// ButtonScopeTerminators terminate the "in button scope" test,
// used for implicit <p> closing.
var ButtonScopeTerminators = map[string]bool{
	"applet":   true,
	"caption":  true,
	"html":     true,
	"table":    true,
	"td":       true,
	"th":       true,
	"marquee":  true,
	"object":   true,
	"template": true,
	"button":   true,
}

// TableScopeTerminators terminate the "in table scope" test.
var TableScopeTerminators = map[string]bool{
	"html":     true,
	"table":    true,
	"template": true,
}

// SelectScopeInclusions is the inverted select scope: every element except
// optgroup and option terminates it.
var SelectScopeInclusions = map[string]bool{
	"optgroup": true,
	"option":   true,
}

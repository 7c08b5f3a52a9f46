// Package constants provides element classification tables shared by the
// tokenizer, tree builder, and render builder.
package constants

// VoidElements never have children and have no end tag.
var VoidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// RawTextElements have their content treated as raw text by the tokenizer.
// Only the literal matching close tag exits raw-text mode.
var RawTextElements = map[string]bool{
	"script":   true,
	"style":    true,
	"xmp":      true,
	"noframes": true,
	"noembed":  true,
}

// RCDATAElements behave like raw-text elements, except that character
// references are decoded in their content.
var RCDATAElements = map[string]bool{
	"textarea": true,
	"title":    true,
}

// PAutoCloseElements close an open <p> element when their start tag is seen
// while a p is in button scope.
var PAutoCloseElements = map[string]bool{
	"address":    true,
	"article":    true,
	"aside":      true,
	"blockquote": true,
	"center":     true,
	"details":    true,
	"dialog":     true,
	"dir":        true,
	"div":        true,
	"dl":         true,
	"fieldset":   true,
	"figcaption": true,
	"figure":     true,
	"footer":     true,
	"header":     true,
	"hgroup":     true,
	"hr":         true,
	"main":       true,
	"menu":       true,
	"nav":        true,
	"ol":         true,
	"p":          true,
	"section":    true,
	"summary":    true,
	"table":      true,
	"ul":         true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"pre":        true,
	"listing":    true,
	"form":       true,
}

// ImpliedEndTagElements are popped by the "generate implied end tags" step
// when closing a named ancestor.
var ImpliedEndTagElements = map[string]bool{
	"dd":       true,
	"dt":       true,
	"li":       true,
	"optgroup": true,
	"option":   true,
	"p":        true,
	"rb":       true,
	"rp":       true,
	"rt":       true,
	"rtc":      true,
	"tbody":    true,
	"td":       true,
	"tfoot":    true,
	"th":       true,
	"thead":    true,
	"tr":       true,
}

// TableFosterTargets are elements whose children may not receive arbitrary
// content; misplaced content appearing under them is foster parented.
var TableFosterTargets = map[string]bool{
	"table": true,
	"tbody": true,
	"tfoot": true,
	"thead": true,
	"tr":    true,
}

// TableAllowedChildren are start tags that are legitimate inside table
// context and therefore never foster parented.
var TableAllowedChildren = map[string]bool{
	"caption":  true,
	"col":      true,
	"colgroup": true,
	"tbody":    true,
	"td":       true,
	"tfoot":    true,
	"th":       true,
	"thead":    true,
	"tr":       true,
	"style":    true,
	"script":   true,
	"template": true,
	"form":     true,
}

// HeadingElements are h1 through h6.
var HeadingElements = map[string]bool{
	"h1": true,
	"h2": true,
	"h3": true,
	"h4": true,
	"h5": true,
	"h6": true,
}

// ListContainerElements increment the list nesting depth in the render walk.
var ListContainerElements = map[string]bool{
	"ul":   true,
	"ol":   true,
	"menu": true,
	"dir":  true,
}

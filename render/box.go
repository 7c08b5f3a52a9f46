package render

import (
	"strings"

	"github.com/MeKo-Christian/GoWebCore/cascade"
)

// boxFromProps projects the computed map onto the layout style box,
// expanding the margin/padding shorthands.
func boxFromProps(p cascade.Props) StyleBox {
	b := StyleBox{
		Display:             p["display"],
		Position:            p["position"],
		Background:          firstNonEmpty(p["background-color"], p["background"]),
		Color:               p["color"],
		Width:               p["width"],
		Height:              p["height"],
		FontSize:            p["font-size"],
		TextAlign:           p["text-align"],
		FlexDirection:       p["flex-direction"],
		JustifyContent:      p["justify-content"],
		AlignItems:          p["align-items"],
		GridTemplateColumns: p["grid-template-columns"],
		GridTemplateRows:    p["grid-template-rows"],
		BorderWidth:         p["border-width"],
		BorderStyle:         p["border-style"],
		BorderColor:         p["border-color"],
	}

	b.MarginTop, b.MarginRight, b.MarginBottom, b.MarginLeft = expandSides(
		p["margin"],
		p["margin-top"], p["margin-right"], p["margin-bottom"], p["margin-left"])
	b.PaddingTop, b.PaddingRight, b.PaddingBottom, b.PaddingLeft = expandSides(
		p["padding"],
		p["padding-top"], p["padding-right"], p["padding-bottom"], p["padding-left"])

	if border := p["border"]; border != "" {
		w, s, c := splitBorderShorthand(border)
		if b.BorderWidth == "" {
			b.BorderWidth = w
		}
		if b.BorderStyle == "" {
			b.BorderStyle = s
		}
		if b.BorderColor == "" {
			b.BorderColor = c
		}
	}

	return b
}

// expandSides applies the CSS 1-4 value shorthand, with per-side
// properties taking precedence.
func expandSides(shorthand, top, right, bottom, left string) (string, string, string, string) {
	if shorthand != "" {
		parts := strings.Fields(shorthand)
		var t, r, btm, l string
		switch len(parts) {
		case 1:
			t, r, btm, l = parts[0], parts[0], parts[0], parts[0]
		case 2:
			t, r, btm, l = parts[0], parts[1], parts[0], parts[1]
		case 3:
			t, r, btm, l = parts[0], parts[1], parts[2], parts[1]
		default:
			if len(parts) >= 4 {
				t, r, btm, l = parts[0], parts[1], parts[2], parts[3]
			}
		}
		top = firstNonEmpty(top, t)
		right = firstNonEmpty(right, r)
		bottom = firstNonEmpty(bottom, btm)
		left = firstNonEmpty(left, l)
	}
	return top, right, bottom, left
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true,
	"solid": true, "double": true, "groove": true, "ridge": true,
	"inset": true, "outset": true,
}

func splitBorderShorthand(border string) (width, style, color string) {
	for _, part := range strings.Fields(border) {
		lower := strings.ToLower(part)
		switch {
		case borderStyles[lower]:
			style = lower
		case startsNumeric(part) || lower == "thin" || lower == "medium" || lower == "thick":
			width = part
		default:
			color = part
		}
	}
	return width, style, color
}

func startsNumeric(s string) bool {
	return s != "" && (s[0] >= '0' && s[0] <= '9' || s[0] == '.')
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package render

import (
	"strconv"
	"strings"

	"github.com/MeKo-Christian/GoWebCore/dom"
)

// Exotic input types collapse to text; image submits.
var inputKindAliases = map[string]string{
	"number":         "text",
	"email":          "text",
	"url":            "text",
	"tel":            "text",
	"date":           "text",
	"time":           "text",
	"color":          "text",
	"range":          "text",
	"datetime-local": "text",
	"month":          "text",
	"week":           "text",
	"search":         "text",
	"image":          "submit",
}

func normalizeInputKind(typ string) string {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" {
		return "text"
	}
	if alias, ok := inputKindAliases[typ]; ok {
		return alias
	}
	switch typ {
	case "text", "password", "submit", "reset", "button", "checkbox",
		"radio", "file", "hidden":
		return typ
	}
	return "text"
}

func (b *Builder) buildInputWidget(el *dom.Element) *WidgetBlueprint {
	bp := &WidgetBlueprint{
		Kind:        normalizeInputKind(el.Attr("type")),
		Name:        el.Attr("name"),
		Value:       el.Attr("value"),
		Checked:     el.HasAttr("checked"),
		Disabled:    el.HasAttr("disabled"),
		ReadOnly:    el.HasAttr("readonly"),
		Required:    el.HasAttr("required"),
		Placeholder: el.Attr("placeholder"),
		Pattern:     el.Attr("pattern"),
		Accept:      el.Attr("accept"),
		FormIndex:   b.formIndex,
	}
	if ml := el.Attr("maxlength"); ml != "" {
		if n, err := strconv.Atoi(ml); err == nil {
			bp.MaxLength = n
		}
	}
	if bp.Kind == "submit" && bp.Value == "" {
		bp.Value = "Submit"
	}
	if bp.Kind == "reset" && bp.Value == "" {
		bp.Value = "Reset"
	}
	return bp
}

func (b *Builder) buildSelectWidget(el *dom.Element) *WidgetBlueprint {
	bp := &WidgetBlueprint{
		Kind:      "select",
		Name:      el.Attr("name"),
		Disabled:  el.HasAttr("disabled"),
		Required:  el.HasAttr("required"),
		Multiple:  el.HasAttr("multiple"),
		FormIndex: b.formIndex,
	}

	var collect func(n dom.Node)
	collect = func(n dom.Node) {
		for _, c := range n.Children() {
			opt, ok := c.(*dom.Element)
			if !ok {
				continue
			}
			switch opt.TagName {
			case "option":
				label := collapseWhitespace(opt.Text())
				value := opt.Attr("value")
				if value == "" {
					value = label
				}
				bp.Options = append(bp.Options, SelectOption{
					Label:    label,
					Value:    value,
					Selected: opt.HasAttr("selected"),
				})
			case "optgroup":
				collect(opt)
			}
		}
	}
	collect(el)

	// Default selection falls on the first option.
	if len(bp.Options) > 0 {
		anySelected := false
		for _, o := range bp.Options {
			if o.Selected {
				anySelected = true
				break
			}
		}
		if !anySelected && !bp.Multiple {
			bp.Options[0].Selected = true
		}
		for _, o := range bp.Options {
			if o.Selected {
				bp.Value = o.Value
				break
			}
		}
	}
	return bp
}

func (b *Builder) buildTextareaWidget(el *dom.Element) *WidgetBlueprint {
	bp := &WidgetBlueprint{
		Kind:        "textarea",
		Name:        el.Attr("name"),
		Value:       el.Text(),
		Disabled:    el.HasAttr("disabled"),
		ReadOnly:    el.HasAttr("readonly"),
		Required:    el.HasAttr("required"),
		Placeholder: el.Attr("placeholder"),
		FormIndex:   b.formIndex,
	}
	if n, err := strconv.Atoi(el.Attr("rows")); err == nil {
		bp.Rows = n
	}
	if n, err := strconv.Atoi(el.Attr("cols")); err == nil {
		bp.Cols = n
	}
	return bp
}

func (b *Builder) buildButtonWidget(el *dom.Element) *WidgetBlueprint {
	kind := strings.ToLower(el.Attr("type"))
	switch kind {
	case "reset", "button":
	default:
		kind = "submit"
	}
	value := collapseWhitespace(el.Text())
	if value == "" {
		value = el.Attr("value")
	}
	return &WidgetBlueprint{
		Kind:      kind,
		Name:      el.Attr("name"),
		Value:     value,
		Disabled:  el.HasAttr("disabled"),
		FormIndex: b.formIndex,
	}
}

func (b *Builder) buildImageWidget(el *dom.Element) *WidgetBlueprint {
	src := el.Attr("src")
	if b.picture != nil && len(b.picture.sources) > 0 {
		src = b.picture.sources[0]
	}
	return &WidgetBlueprint{
		Kind:      "img",
		Src:       src,
		Alt:       el.Attr("alt"),
		Name:      el.Attr("name"),
		FormIndex: b.formIndex,
	}
}

// firstSrcsetURL extracts the first URL from a srcset attribute.
func firstSrcsetURL(srcset string) string {
	first := strings.SplitN(srcset, ",", 2)[0]
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

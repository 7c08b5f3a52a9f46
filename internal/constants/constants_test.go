package constants

import "testing"

func TestCharClasses(t *testing.T) {
	tests := []struct {
		char rune
		ws   bool
	}{
		{'\t', true},
		{'\n', true},
		{'\f', true},
		{' ', true},
		{'\r', false}, // CR is normalized away before classification
		{'a', false},
		{'0', false},
	}
	for _, tt := range tests {
		if got := IsWhitespace(tt.char); got != tt.ws {
			t.Errorf("IsWhitespace(%q) = %v, want %v", tt.char, got, tt.ws)
		}
	}

	if !IsASCIIAlpha('Z') || !IsASCIIAlpha('a') || IsASCIIAlpha('1') {
		t.Error("IsASCIIAlpha misclassifies")
	}
	if !IsASCIIAlphaNum('7') || IsASCIIAlphaNum('-') {
		t.Error("IsASCIIAlphaNum misclassifies")
	}
	if ToLowerASCII('Q') != 'q' || ToLowerASCII('q') != 'q' || ToLowerASCII('é') != 'é' {
		t.Error("ToLowerASCII misclassifies")
	}
}

func TestElementSets(t *testing.T) {
	for _, void := range []string{"br", "hr", "img", "input", "meta", "link", "area", "base", "col", "embed", "param", "source", "track", "wbr"} {
		if !VoidElements[void] {
			t.Errorf("%s should be void", void)
		}
	}
	for _, raw := range []string{"script", "style", "xmp", "noframes", "noembed"} {
		if !RawTextElements[raw] {
			t.Errorf("%s should be raw-text", raw)
		}
	}
	if !RCDATAElements["textarea"] || !RCDATAElements["title"] {
		t.Error("RCDATA set incomplete")
	}
	if RawTextElements["textarea"] {
		t.Error("textarea is RCDATA, not raw-text")
	}
	if !PAutoCloseElements["div"] || !PAutoCloseElements["p"] || PAutoCloseElements["span"] {
		t.Error("p-auto-close set wrong")
	}
}

func TestEntities(t *testing.T) {
	tests := map[string]string{
		"amp": "&", "lt": "<", "gt": ">", "nbsp": " ",
		"mdash": "—", "hellip": "…", "rarr": "→", "euro": "€",
	}
	for name, want := range tests {
		if got := NamedEntities[name]; got != want {
			t.Errorf("NamedEntities[%q] = %q, want %q", name, got, want)
		}
	}
	if NumericReplacements[0x80] != '€' {
		t.Error("0x80 should map to the euro sign")
	}
}

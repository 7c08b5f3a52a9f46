package treebuilder

import (
	"strings"

	"github.com/MeKo-Christian/GoWebCore/dom"
	"github.com/MeKo-Christian/GoWebCore/tokenizer"
)

// Public identifier prefixes that trigger full quirks mode.
var quirksPublicIDPrefixes = []string{
	"+//silmaril//dtd html pro v0r11 19970101//",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

// Public identifier prefixes that trigger limited quirks mode.
var limitedQuirksPublicIDPrefixes = []string{
	"-//w3c//dtd xhtml 1.0 frameset//",
	"-//w3c//dtd xhtml 1.0 transitional//",
}

// setQuirksModeFromDoctype applies the HTML5 DOCTYPE quirks rules.
func (tb *TreeBuilder) setQuirksModeFromDoctype(tok tokenizer.Token) {
	name := strings.ToLower(tok.Name)
	public := strings.ToLower(ptrToString(tok.PublicID))
	system := strings.ToLower(ptrToString(tok.SystemID))

	if tok.ForceQuirks || name != "html" {
		tb.document.QuirksMode = dom.Quirks
		return
	}

	switch public {
	case "-//w3o//dtd w3 html strict 3.0//en//",
		"-/w3c/dtd html 4.0 transitional/en",
		"html":
		tb.document.QuirksMode = dom.Quirks
		return
	}
	if system == "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd" {
		tb.document.QuirksMode = dom.Quirks
		return
	}
	for _, prefix := range quirksPublicIDPrefixes {
		if strings.HasPrefix(public, prefix) {
			tb.document.QuirksMode = dom.Quirks
			return
		}
	}
	if tok.SystemID == nil {
		for _, prefix := range []string{
			"-//w3c//dtd html 4.01 frameset//",
			"-//w3c//dtd html 4.01 transitional//",
		} {
			if strings.HasPrefix(public, prefix) {
				tb.document.QuirksMode = dom.Quirks
				return
			}
		}
	}

	for _, prefix := range limitedQuirksPublicIDPrefixes {
		if strings.HasPrefix(public, prefix) {
			tb.document.QuirksMode = dom.LimitedQuirks
			return
		}
	}
	if tok.SystemID != nil {
		for _, prefix := range []string{
			"-//w3c//dtd html 4.01 frameset//",
			"-//w3c//dtd html 4.01 transitional//",
		} {
			if strings.HasPrefix(public, prefix) {
				tb.document.QuirksMode = dom.LimitedQuirks
				return
			}
		}
	}

	tb.document.QuirksMode = dom.NoQuirks
}

package tokenizer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/MeKo-Christian/GoWebCore/internal/constants"
)

func decodeNumericEntity(text string, isHex bool) rune {
	base := 10
	if isHex {
		base = 16
	}
	codepoint, err := strconv.ParseInt(text, base, 32)
	if err != nil {
		return unicode.ReplacementChar
	}

	cp := int(codepoint)
	if replacement, ok := constants.NumericReplacements[cp]; ok {
		return replacement
	}

	// Invalid ranges per HTML5.
	if cp > 0x10FFFF {
		return unicode.ReplacementChar
	}
	if cp >= 0xD800 && cp <= 0xDFFF {
		return unicode.ReplacementChar
	}
	return rune(cp)
}

// decodeEntities decodes HTML character references in a string.
//
// Named references require the trailing semicolon; unrecognized references
// pass through literally. Numeric references are decoded with or without
// the semicolon.
func decodeEntities(text string) string {
	if !strings.ContainsRune(text, '&') {
		return text
	}

	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	i := 0
	for i < len(runes) {
		if runes[i] != '&' {
			out = append(out, runes[i])
			i++
			continue
		}

		j := i + 1
		if j < len(runes) && runes[j] == '#' {
			j++
			isHex := false
			if j < len(runes) && (runes[j] == 'x' || runes[j] == 'X') {
				isHex = true
				j++
			}

			digitStart := j
			if isHex {
				for j < len(runes) && isHexDigit(runes[j]) {
					j++
				}
			} else {
				for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
					j++
				}
			}

			digits := string(runes[digitStart:j])
			if digits == "" {
				// "&#" with no digits is literal.
				out = append(out, runes[i:j]...)
				i = j
				continue
			}
			out = append(out, decodeNumericEntity(digits, isHex))
			if j < len(runes) && runes[j] == ';' {
				j++
			}
			i = j
			continue
		}

		// Named reference: collect alphanumerics.
		for j < len(runes) && constants.IsASCIIAlphaNum(runes[j]) {
			j++
		}
		name := string(runes[i+1 : j])
		if name != "" && j < len(runes) && runes[j] == ';' {
			if value, ok := constants.NamedEntities[name]; ok {
				out = append(out, []rune(value)...)
				i = j + 1
				continue
			}
		}

		// No match: the ampersand is literal.
		out = append(out, '&')
		i++
	}

	return string(out)
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

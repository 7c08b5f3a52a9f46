package constants

// Character classification lookup tables for the tokenizer hot path.
// These provide O(1) classification for ASCII characters.

// isWhitespace provides fast lookup for HTML whitespace characters:
// U+0009 TAB, U+000A LF, U+000C FF, U+0020 SPACE.
var isWhitespace [256]bool

// isASCIIUpper provides fast lookup for uppercase ASCII letters (A-Z).
var isASCIIUpper [256]bool

// isASCIIAlpha provides fast lookup for ASCII letters (A-Z, a-z).
var isASCIIAlpha [256]bool

// isASCIIAlphaNum provides fast lookup for ASCII alphanumerics.
var isASCIIAlphaNum [256]bool

func init() {
	isWhitespace['\t'] = true
	isWhitespace['\n'] = true
	isWhitespace['\f'] = true
	isWhitespace[' '] = true

	for c := 'A'; c <= 'Z'; c++ {
		isASCIIUpper[c] = true
		isASCIIAlpha[c] = true
		isASCIIAlphaNum[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		isASCIIAlpha[c] = true
		isASCIIAlphaNum[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		isASCIIAlphaNum[c] = true
	}
}

// IsWhitespace returns true if c is an HTML5 whitespace character.
func IsWhitespace(c rune) bool {
	if c < 256 {
		return isWhitespace[c]
	}
	return false
}

// IsASCIIUpper returns true if c is an uppercase ASCII letter.
func IsASCIIUpper(c rune) bool {
	if c < 256 {
		return isASCIIUpper[c]
	}
	return false
}

// IsASCIIAlpha returns true if c is an ASCII letter.
func IsASCIIAlpha(c rune) bool {
	if c < 256 {
		return isASCIIAlpha[c]
	}
	return false
}

// IsASCIIAlphaNum returns true if c is an ASCII letter or digit.
func IsASCIIAlphaNum(c rune) bool {
	if c < 256 {
		return isASCIIAlphaNum[c]
	}
	return false
}

// ToLowerASCII lowercases a single ASCII letter, leaving other runes alone.
func ToLowerASCII(c rune) rune {
	if IsASCIIUpper(c) {
		return c + 0x20
	}
	return c
}

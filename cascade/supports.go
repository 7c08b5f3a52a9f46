package cascade

import "strings"

// EvalSupports evaluates an @supports condition.
//
// The default is optimistic: a syntactically well-formed declaration test
// returns true, including unknown properties. Only malformed tests fail.
func EvalSupports(cond string) bool {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return true
	}

	lower := strings.ToLower(cond)
	if strings.HasPrefix(lower, "not") && (len(cond) == 3 || cond[3] == ' ' || cond[3] == '(') {
		return !EvalSupports(strings.TrimSpace(cond[3:]))
	}

	if parts := splitTopLevelWord(cond, "or"); len(parts) > 1 {
		for _, part := range parts {
			if EvalSupports(part) {
				return true
			}
		}
		return false
	}
	if parts := splitTopLevelWord(cond, "and"); len(parts) > 1 {
		for _, part := range parts {
			if !EvalSupports(part) {
				return false
			}
		}
		return true
	}

	// Parenthesized group: unwrap.
	if strings.HasPrefix(cond, "(") && strings.HasSuffix(cond, ")") && balanced(cond) {
		return evalSupportsLeaf(cond[1 : len(cond)-1])
	}
	return evalSupportsLeaf(cond)
}

func evalSupportsLeaf(inner string) bool {
	inner = strings.TrimSpace(inner)
	// Nested condition inside the parens.
	lower := strings.ToLower(inner)
	if (strings.HasPrefix(lower, "not") && (len(inner) == 3 || inner[3] == ' ' || inner[3] == '(')) || strings.HasPrefix(inner, "(") {
		return EvalSupports(inner)
	}
	if strings.HasPrefix(lower, "selector(") {
		return true
	}

	// "prop: value" declaration test.
	colon := strings.IndexByte(inner, ':')
	if colon <= 0 {
		return false
	}
	prop := strings.TrimSpace(inner[:colon])
	value := strings.TrimSpace(inner[colon+1:])
	if prop == "" || value == "" {
		return false
	}
	for _, c := range prop {
		if !isIdentRune(c) {
			return false
		}
	}
	return true
}

func isIdentRune(c rune) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c >= 0x80
}

func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// splitTopLevelWord splits on a keyword at paren depth zero.
func splitTopLevelWord(s, word string) []string {
	var parts []string
	depth := 0
	start := 0
	lower := strings.ToLower(s)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && strings.HasPrefix(lower[i:], word) {
			prevOK := i == 0 || s[i-1] == ' ' || s[i-1] == ')'
			nextIdx := i + len(word)
			nextOK := nextIdx >= len(s) || s[nextIdx] == ' ' || s[nextIdx] == '('
			if prevOK && nextOK && i > start {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = nextIdx
				i = nextIdx - 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	if len(parts) == 1 {
		return parts
	}
	return parts
}

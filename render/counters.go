package render

import (
	"strconv"
	"strings"

	"github.com/MeKo-Christian/GoWebCore/dom"
)

// applyCounterDeclarations mutates the counter map for one element's
// counter-reset and counter-increment declarations. Multiple name/value
// pairs apply left to right.
func applyCounterDeclarations(counters map[string]int, reset, increment string) {
	for _, p := range parseCounterPairs(reset, 0) {
		counters[p.name] = p.n
	}
	for _, p := range parseCounterPairs(increment, 1) {
		counters[p.name] += p.n
	}
}

type counterPair struct {
	name string
	n    int
}

// parseCounterPairs parses "name [N]? name2 [N]?" into ordered pairs, in
// source order. A name that appears twice yields two pairs.
func parseCounterPairs(value string, def int) []counterPair {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "none") {
		return nil
	}

	var out []counterPair
	fields := strings.Fields(value)
	for i := 0; i < len(fields); i++ {
		name := fields[i]
		n := def
		if i+1 < len(fields) {
			if v, err := strconv.Atoi(fields[i+1]); err == nil {
				n = v
				i++
			}
		}
		out = append(out, counterPair{name: name, n: n})
	}
	return out
}

// resolveContent evaluates a pseudo-element content value: concatenated
// quoted strings, counter(name) substitutions, and attr(name) lookups.
// Returns false for none/normal or an empty result.
func resolveContent(value string, counters map[string]int, el *dom.Element) (string, bool) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "none", "normal":
		return "", false
	}

	var sb strings.Builder
	i := 0
	for i < len(value) {
		c := value[i]
		switch {
		case c == '"' || c == '\'':
			end := i + 1
			for end < len(value) && value[end] != c {
				end++
			}
			sb.WriteString(value[i+1 : end])
			i = end + 1
		case strings.HasPrefix(value[i:], "counter("):
			close := strings.IndexByte(value[i:], ')')
			if close < 0 {
				i = len(value)
				break
			}
			args := value[i+len("counter(") : i+close]
			name := strings.TrimSpace(strings.SplitN(args, ",", 2)[0])
			sb.WriteString(strconv.Itoa(counters[name]))
			i += close + 1
		case strings.HasPrefix(value[i:], "attr("):
			close := strings.IndexByte(value[i:], ')')
			if close < 0 {
				i = len(value)
				break
			}
			name := strings.TrimSpace(value[i+len("attr(") : i+close])
			if el != nil {
				sb.WriteString(el.Attr(name))
			}
			i += close + 1
		default:
			i++
		}
	}

	out := sb.String()
	return out, out != ""
}

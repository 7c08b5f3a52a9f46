package cascade

import (
	"sort"

	"github.com/MeKo-Christian/GoWebCore/cssparser"
	"github.com/MeKo-Christian/GoWebCore/selector"
)

// ConditionKind identifies a conditional group wrapping a rule.
type ConditionKind int

// Condition kinds.
const (
	CondMedia ConditionKind = iota
	CondSupports
	CondContainer
)

// Condition is one conditional group on the path from the stylesheet root
// to an indexed rule.
type Condition struct {
	Kind ConditionKind

	// Name is the container name for CondContainer.
	Name string

	// Expr is the condition expression text.
	Expr string
}

// IndexedRule is a rule-index entry: one style rule bucketed under a key,
// with the selectors that produced that key and the conditions guarding
// the rule.
type IndexedRule struct {
	Rule *cssparser.StyleRule

	// Selectors are the rule's selectors whose key selector matches this
	// bucket. The caller validates each against the element.
	Selectors []*selector.Complex

	// Specificity orders the bucket: the highest specificity among the
	// bucketed selectors.
	Specificity int

	// Conditions must all evaluate true for the rule to participate.
	Conditions []Condition
}

// RuleIndex buckets style rules by key selector for O(1) candidate lookup.
//
// Buckets: "#id", ".class", tag name, and "*". Each bucket is sorted by
// ascending specificity, then source order.
type RuleIndex struct {
	buckets map[string][]*IndexedRule
}

// NewIndex builds the index for a stylesheet, descending into conditional
// group rules and recording their conditions.
func NewIndex(sheet *cssparser.Stylesheet) *RuleIndex {
	ix := &RuleIndex{buckets: make(map[string][]*IndexedRule)}
	ix.addRules(sheet.Rules, nil)
	for key := range ix.buckets {
		bucket := ix.buckets[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].Specificity != bucket[j].Specificity {
				return bucket[i].Specificity < bucket[j].Specificity
			}
			return bucket[i].Rule.SourceOrder < bucket[j].Rule.SourceOrder
		})
	}
	return ix
}

func (ix *RuleIndex) addRules(rules []cssparser.Rule, conds []Condition) {
	for _, r := range rules {
		switch rule := r.(type) {
		case *cssparser.StyleRule:
			ix.addStyleRule(rule, conds)
		case *cssparser.MediaRule:
			ix.addRules(rule.Rules, append(sliceClone(conds), Condition{Kind: CondMedia, Expr: rule.Condition}))
		case *cssparser.SupportsRule:
			ix.addRules(rule.Rules, append(sliceClone(conds), Condition{Kind: CondSupports, Expr: rule.Condition}))
		case *cssparser.ContainerRule:
			ix.addRules(rule.Rules, append(sliceClone(conds), Condition{
				Kind: CondContainer,
				Name: rule.Name,
				Expr: rule.Condition,
			}))
		}
	}
}

func sliceClone(conds []Condition) []Condition {
	out := make([]Condition, len(conds))
	copy(out, conds)
	return out
}

// addStyleRule groups the rule's selectors by bucket key; a rule appears
// in each distinct bucket once.
func (ix *RuleIndex) addStyleRule(rule *cssparser.StyleRule, conds []Condition) {
	byKey := make(map[string][]*selector.Complex)
	var keys []string
	for i := range rule.Selectors {
		sel := &rule.Selectors[i]
		key := sel.Key()
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], sel)
	}

	for _, key := range keys {
		sels := byKey[key]
		maxSpec := 0
		for _, sel := range sels {
			if s := sel.Specificity(); s > maxSpec {
				maxSpec = s
			}
		}
		ix.buckets[key] = append(ix.buckets[key], &IndexedRule{
			Rule:        rule,
			Selectors:   sels,
			Specificity: maxSpec,
			Conditions:  conds,
		})
	}
}

// Candidates returns the union of the buckets relevant to an element.
// The result is a superset of the matching rules; the caller validates
// each selector.
func (ix *RuleIndex) Candidates(tag, id string, classes []string) []*IndexedRule {
	var out []*IndexedRule
	seen := make(map[*IndexedRule]bool)

	appendBucket := func(key string) {
		for _, entry := range ix.buckets[key] {
			if !seen[entry] {
				seen[entry] = true
				out = append(out, entry)
			}
		}
	}

	appendBucket("*")
	appendBucket(tag)
	if id != "" {
		appendBucket("#" + id)
	}
	for _, class := range classes {
		appendBucket("." + class)
	}
	return out
}

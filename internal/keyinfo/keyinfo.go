/*
Package keyinfo classifies document text into investor-relevant categories
using fixed sets of case-insensitive regular expressions.
*/
package keyinfo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// Category identifies a group of related patterns.
type Category string

const (
	FutureGrowthProspects     Category = "future_growth_prospects"
	KeyChangesInBusiness      Category = "key_changes_in_business"
	KeyTriggers               Category = "key_triggers"
	MaterialEffectsOnEarnings Category = "material_effects_on_earnings"
)

// Rule binds a category to its display label and ordered pattern literals.
type Rule struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Patterns []string `json:"patterns"`
}

// Table is an ordered list of rules. Order determines both result order and
// report section order.
type Table []Rule

type compiledRule struct {
	category Category
	label    string
	patterns []*regexp.Regexp
}

// Classifier applies a Table to text. It holds only compiled, read-only
// state and may be shared between goroutines.
type Classifier struct {
	rules []compiledRule
}

// NewClassifier compiles every pattern of the table. Patterns are matched
// case-insensitively.
func NewClassifier(table Table) (*Classifier, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("pattern table has no categories")
	}

	seen := make(map[Category]struct{}, len(table))
	rules := make([]compiledRule, 0, len(table))

	for _, rule := range table {
		if rule.Category == "" {
			return nil, fmt.Errorf("pattern table contains a rule with no category")
		}
		if _, dup := seen[rule.Category]; dup {
			return nil, fmt.Errorf("duplicate category %q in pattern table", rule.Category)
		}
		seen[rule.Category] = struct{}{}

		cr := compiledRule{
			category: rule.Category,
			label:    rule.Label,
			patterns: make([]*regexp.Regexp, 0, len(rule.Patterns)),
		}
		if cr.label == "" {
			cr.label = string(rule.Category)
		}

		for _, p := range rule.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q in category %s: %w", p, rule.Category, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		rules = append(rules, cr)
	}

	return &Classifier{rules: rules}, nil
}

// MustNewClassifier is like NewClassifier but panics on error.
func MustNewClassifier(table Table) *Classifier {
	c, err := NewClassifier(table)
	if err != nil {
		panic(err)
	}
	return c
}

// Classify scans text with every pattern, one pattern at a time. A phrase that
// satisfies patterns in several categories, or several patterns of the same
// category, is reported once per pattern.
func (c *Classifier) Classify(text string) *Result {
	res := &Result{
		order:   make([]Category, 0, len(c.rules)),
		labels:  make(map[Category]string, len(c.rules)),
		matches: make(map[Category][]string, len(c.rules)),
	}

	for _, rule := range c.rules {
		found := []string{}
		for _, re := range rule.patterns {
			found = append(found, re.FindAllString(text, -1)...)
		}
		res.order = append(res.order, rule.category)
		res.labels[rule.category] = rule.label
		res.matches[rule.category] = found
	}

	return res
}

// Result is the ordered outcome of a classification.
type Result struct {
	order   []Category
	labels  map[Category]string
	matches map[Category][]string
}

// Categories returns the categories in table order.
func (r *Result) Categories() []Category {
	out := make([]Category, len(r.order))
	copy(out, r.order)
	return out
}

// Label returns the display label of a category.
func (r *Result) Label(c Category) string {
	return r.labels[c]
}

// Matches returns the matched substrings for a category. The returned slice
// is a copy; it is empty, not nil, for known categories without matches.
func (r *Result) Matches(c Category) []string {
	m, ok := r.matches[c]
	if !ok {
		return nil
	}
	out := make([]string, len(m))
	copy(out, m)
	return out
}

// Has reports whether the category is part of the result.
func (r *Result) Has(c Category) bool {
	_, ok := r.matches[c]
	return ok
}

// Total returns the number of matches across all categories.
func (r *Result) Total() int {
	n := 0
	for _, m := range r.matches {
		n += len(m)
	}
	return n
}

// Empty reports whether no category has a match.
func (r *Result) Empty() bool {
	return r.Total() == 0
}

// MarshalJSON encodes the result as an object whose keys follow table order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(c))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.matches[c])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

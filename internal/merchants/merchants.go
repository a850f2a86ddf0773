// Package merchants matches transaction descriptions against a curated
// table of merchant keyword patterns and maps them to catalog categories.
package merchants

import (
	"strings"
)

// Pattern maps a set of keywords to a category with a confidence score.
type Pattern struct {
	Keywords        []string `yaml:"keywords"`
	CategoryName    string   `yaml:"category"`
	SubcategoryName string   `yaml:"subcategory,omitempty"`
	Confidence      float64  `yaml:"confidence"`
}

// Match is the result of a successful lookup.
type Match struct {
	CategoryName    string
	SubcategoryName string
	Confidence      float64
	Merchant        string
}

// Matcher holds an ordered, immutable pattern table. The zero value is not
// usable; construct with NewMatcher or Default.
type Matcher struct {
	patterns []Pattern
}

// NewMatcher builds a matcher over the given table. The table order is
// significant: when two patterns share the highest confidence, the earlier
// entry wins.
func NewMatcher(patterns []Pattern) *Matcher {
	table := make([]Pattern, len(patterns))
	copy(table, patterns)
	return &Matcher{patterns: table}
}

// Default returns a matcher over the built-in merchant table.
func Default() *Matcher {
	return NewMatcher(defaultTable)
}

// Match scans the table for keywords contained in the description
// (case-insensitive) and returns the highest-confidence hit, or nil when
// nothing matches.
func (m *Matcher) Match(description string) *Match {
	upper := strings.ToUpper(description)

	var best *Pattern
	bestConfidence := 0.0
	for i := range m.patterns {
		p := &m.patterns[i]
		for _, kw := range p.Keywords {
			if strings.Contains(upper, strings.ToUpper(kw)) {
				if p.Confidence > bestConfidence {
					best = p
					bestConfidence = p.Confidence
				}
				break
			}
		}
	}
	if best == nil {
		return nil
	}
	return &Match{
		CategoryName:    best.CategoryName,
		SubcategoryName: best.SubcategoryName,
		Confidence:      bestConfidence,
		Merchant:        Normalize(description),
	}
}

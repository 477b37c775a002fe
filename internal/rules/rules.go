// Package rules holds the category rule table and the keyword matcher
// that assigns a category to each transaction description.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rosa-dev/rosa/internal/model"
)

// Rule maps a category name to the keyword substrings that select it.
// Rules are evaluated in declaration order; the first match wins, so a
// keyword listed under two categories always resolves to the earlier one.
type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Table is an ordered rule set. Keywords are lowercased on construction;
// matching assumes the description has been through normalize.Clean.
type Table struct {
	rules []Rule
}

// NewTable builds a Table from rules, lowercasing every keyword.
func NewTable(rs []Rule) *Table {
	cleaned := make([]Rule, 0, len(rs))
	for _, r := range rs {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		cleaned = append(cleaned, Rule{Name: r.Name, Keywords: kws})
	}
	return &Table{rules: cleaned}
}

// Categorize returns the category for a normalized description. Rules are
// scanned in order; substring match, not word-boundary. Falls back to
// model.CategoryOther when nothing matches.
func (t *Table) Categorize(desc string) string {
	for _, r := range t.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(desc, kw) {
				return r.Name
			}
		}
	}
	return model.CategoryOther
}

// Categories returns the declared category names in table order.
func (t *Table) Categories() []string {
	names := make([]string, len(t.rules))
	for i, r := range t.rules {
		names[i] = r.Name
	}
	return names
}

// Rules returns the underlying rule slice.
func (t *Table) Rules() []Rule {
	return t.rules
}

// LoadFile reads a rule table from a YAML file holding a list of
// {name, keywords} entries.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var rs []Rule
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return NewTable(rs), nil
}

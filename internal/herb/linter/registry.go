package linter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Registry is the ordered set of known rules. It is populated once at
// startup and only read afterwards, so it can be shared between goroutines.
type Registry struct {
	// rules holds rules in registration order
	rules []Rule

	// byName maps rule names to their definitions
	byName map[string]Rule

	// categories maps category names to rule names
	categories map[string][]string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:     make(map[string]Rule),
		categories: make(map[string][]string),
	}
}

// Register adds rules to the registry and validates them.
// Returns an error if any rule has an invalid name, duplicates an existing
// rule, or is neither a TreeRule nor a TextRule.
func (r *Registry) Register(rules ...Rule) error {
	for _, rule := range rules {
		name := rule.Name()
		if name == "" {
			return fmt.Errorf("rule has empty name")
		}

		if _, exists := r.byName[name]; exists {
			return fmt.Errorf("duplicate rule name: %s", name)
		}

		if !isValidRuleName(name) {
			return fmt.Errorf("invalid rule name %q: must be kebab-case (lowercase with hyphens)", name)
		}

		switch rule.(type) {
		case TreeRule, TextRule:
		default:
			return fmt.Errorf("rule %s implements neither Check nor CheckText", name)
		}

		r.rules = append(r.rules, rule)
		r.byName[name] = rule

		if cat := rule.Category(); cat != "" {
			r.categories[cat] = append(r.categories[cat], name)
		}
	}

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(rules ...Rule) *Registry {
	if err := r.Register(rules...); err != nil {
		panic(err)
	}
	return r
}

// Rule looks up a rule by name.
func (r *Registry) Rule(name string) (Rule, bool) {
	rule, ok := r.byName[name]
	return rule, ok
}

// Rules returns all rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Names returns every registered rule name in registration order. This is
// the set directive names are validated against.
func (r *Registry) Names() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name()
	}
	return names
}

// AllRules returns all registered rules sorted by name.
func (r *Registry) AllRules() []Rule {
	rules := r.Rules()
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Name() < rules[j].Name()
	})
	return rules
}

// Categories returns all category names sorted alphabetically.
func (r *Registry) Categories() []string {
	cats := make([]string, 0, len(r.categories))
	for cat := range r.categories {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// RulesByCategory returns all rules in the specified category.
func (r *Registry) RulesByCategory(category string) []Rule {
	names := r.categories[category]
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		rules = append(rules, r.byName[name])
	}
	return rules
}

// Expand resolves a selector to rule names. A selector is "all", a category
// name, an exact rule name, or a glob such as "html-*". An exact rule name
// takes precedence over a category of the same name.
func (r *Registry) Expand(selector string) []string {
	if selector == "all" {
		return r.Names()
	}
	if _, ok := r.byName[selector]; ok {
		return []string{selector}
	}
	if names, ok := r.categories[selector]; ok {
		return append([]string(nil), names...)
	}
	if strings.ContainsAny(selector, "*?[") {
		var names []string
		for _, rule := range r.rules {
			if ok, _ := doublestar.Match(selector, rule.Name()); ok {
				names = append(names, rule.Name())
			}
		}
		return names
	}
	return nil
}

// isValidRuleName checks if a rule name follows kebab-case convention.
func isValidRuleName(name string) bool {
	if name == "" {
		return false
	}

	for i, ch := range name {
		if ch >= 'a' && ch <= 'z' {
			continue
		}
		if ch >= '0' && ch <= '9' && i > 0 {
			continue
		}
		if ch == '-' && i > 0 && i < len(name)-1 {
			continue
		}
		return false
	}

	return true
}

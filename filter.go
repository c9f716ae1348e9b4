// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"fmt"
	"slices"

	"github.com/woozymasta/pathrules"
)

// entryMatcher holds compiled selection rules matched against entry file names.
type entryMatcher struct {
	matcher *pathrules.Matcher
}

// newEntryMatcher compiles selection rules; nil matcher means "no rules".
func newEntryMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*entryMatcher, error) {
	rules = normalizeRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidRules, err)
	}

	return &entryMatcher{matcher: matcher}, nil
}

// normalizeRules normalizes rule patterns and drops empty patterns.
func normalizeRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := normalizePathForMatching(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Match reports whether entry file name is included by rules.
func (m *entryMatcher) Match(e Entry) bool {
	if m == nil || m.matcher == nil {
		return true
	}

	candidate := NormalizeName(e.FileName())
	if candidate == "" {
		return false
	}

	return m.matcher.Included(candidate, false)
}

// FilterResources keeps entries whose "name.ext" file name is included by ordered rules.
// Empty rules keep every entry. Zero matcher options mean case-insensitive with default exclude.
func FilterResources(entries []Entry, rules []pathrules.Rule, opts pathrules.MatcherOptions) ([]Entry, error) {
	if opts == (pathrules.MatcherOptions{}) {
		opts = pathrules.MatcherOptions{CaseInsensitive: true, DefaultAction: pathrules.ActionExclude}
	}

	matcher, err := newEntryMatcher(rules, opts)
	if err != nil {
		return nil, err
	}
	if matcher == nil {
		return entries, nil
	}

	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if matcher.Match(entry) {
			out = append(out, entry)
		}
	}

	return out, nil
}

// FilterByType keeps entries of any listed type; no types keeps every entry.
func FilterByType(entries []Entry, types ...FileType) []Entry {
	if len(types) == 0 {
		return entries
	}

	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if slices.Contains(types, entry.Type) {
			out = append(out, entry)
		}
	}

	return out
}

// IncludeRules builds include rules from raw patterns.
func IncludeRules(patterns ...string) []pathrules.Rule {
	return buildRules(pathrules.Rule{Action: pathrules.ActionInclude}, patterns)
}

// ExcludeRules builds exclude rules from raw patterns.
func ExcludeRules(patterns ...string) []pathrules.Rule {
	return buildRules(pathrules.Rule{Action: pathrules.ActionExclude}, patterns)
}

// buildRules copies template action onto every non-empty pattern.
func buildRules(template pathrules.Rule, patterns []string) []pathrules.Rule {
	rules := make([]pathrules.Rule, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = normalizePathForMatching(pattern)
		if pattern == "" {
			continue
		}

		rule := template
		rule.Pattern = pattern
		rules = append(rules, rule)
	}

	return rules
}

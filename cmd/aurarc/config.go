// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/woozymasta/aurora"
	"github.com/woozymasta/pathrules"
	"gopkg.in/yaml.v3"
)

// Config is the optional aurarc YAML configuration. Command line flags override it.
type Config struct {
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
	// FileMode is the extract output file policy.
	FileMode string `yaml:"file_mode"`
	// Rules are ordered selection patterns matched against "name.ext";
	// a leading "!" turns a pattern into an exclude rule.
	Rules []string `yaml:"rules"`
	// CursorNames maps cursor group id N to CursorNames[N-1].
	CursorNames []string `yaml:"cursor_names"`
	// Workers is the number of extract workers.
	Workers int `yaml:"workers"`
	// RawNames keeps stored names unsanitized on extract.
	RawNames bool `yaml:"raw_names"`
}

// ReadConfig loads path; an empty path yields the zero config.
func ReadConfig(path string) (*Config, error) {
	cfg := new(Config)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// SelectionRules converts config patterns into ordered selection rules.
// Exclude-only lists start from an implicit include of everything.
func (c *Config) SelectionRules() []pathrules.Rule {
	if c == nil {
		return nil
	}

	return selectionRules(c.Rules)
}

// selectionRules builds ordered rules from patterns with optional "!" exclude prefix.
func selectionRules(patterns []string) []pathrules.Rule {
	var rules []pathrules.Rule
	hasInclude := false
	for _, pattern := range patterns {
		if rest, ok := strings.CutPrefix(pattern, "!"); ok {
			rules = append(rules, aurora.ExcludeRules(rest)...)
			continue
		}

		hasInclude = true
		rules = append(rules, aurora.IncludeRules(pattern)...)
	}

	if len(rules) > 0 && !hasInclude {
		rules = append(aurora.IncludeRules("*"), rules...)
	}

	return rules
}

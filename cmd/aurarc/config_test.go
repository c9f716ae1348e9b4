// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/aurora"
	"github.com/woozymasta/pathrules"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "aurarc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
log_level: debug
workers: 3
file_mode: truncate
raw_names: true
rules:
  - "*.2da"
  - "!secret.2da"
cursor_names:
  - gui_mp_defaultu
  - gui_mp_walk
`)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "truncate", cfg.FileMode)
	assert.True(t, cfg.RawNames)
	assert.Equal(t, []string{"gui_mp_defaultu", "gui_mp_walk"}, cfg.CursorNames)

	rules := cfg.SelectionRules()
	require.Len(t, rules, 2)
	assert.Equal(t, pathrules.ActionInclude, rules[0].Action)
	assert.Equal(t, "*.2da", rules[0].Pattern)
	assert.Equal(t, pathrules.ActionExclude, rules[1].Action)
	assert.Equal(t, "secret.2da", rules[1].Pattern)
}

func TestReadConfigEmptyPath(t *testing.T) {
	t.Parallel()

	cfg, err := ReadConfig("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
	assert.Empty(t, cfg.SelectionRules())
}

func TestReadConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = ReadConfig(writeConfig(t, "workers: [1, 2"))
	require.Error(t, err)
}

func TestSelectionRulesExcludeOnly(t *testing.T) {
	t.Parallel()

	rules := selectionRules([]string{"!*.tlk"})
	require.Len(t, rules, 2)
	assert.Equal(t, pathrules.ActionInclude, rules[0].Action)
	assert.Equal(t, "*", rules[0].Pattern)

	entries := []aurora.Entry{
		{Name: "dialog", Type: aurora.FileTypeTLK, Index: 0},
		{Name: "spells", Type: aurora.FileType2DA, Index: 1},
	}
	got, err := aurora.FilterResources(entries, rules, pathrules.MatcherOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "spells", got[0].Name)
}

func TestExtractOptionsFlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	g := &globalOptions{config: &Config{Workers: 2, FileMode: "truncate", Rules: []string{"*.uti"}}}
	cmd := newExtractCmd(g)
	require.NoError(t, cmd.ParseFlags([]string{"--workers", "5", "--exclude", "*.tlk"}))

	var f extractFlags
	f.workers, _ = cmd.Flags().GetInt("workers")
	f.exclude, _ = cmd.Flags().GetStringSlice("exclude")

	opts := extractOptions(cmd, g.config, f)
	assert.Equal(t, 5, opts.MaxWorkers)
	assert.Equal(t, aurora.ExtractFileModeTruncate, opts.FileMode)
	require.Len(t, opts.Rules, 2)
	assert.Equal(t, "*", opts.Rules[0].Pattern)
	assert.Equal(t, "*.tlk", opts.Rules[1].Pattern)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn")
	require.NoError(t, err)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = newLogger(&buf, "loud")
	require.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "aurarc version "+version)
}

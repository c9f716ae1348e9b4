// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/woozymasta/aurora"
)

// extractFlags are extract command overrides of config values.
type extractFlags struct {
	fileMode string
	include  []string
	exclude  []string
	workers  int
	rawNames bool
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	var f extractFlags

	cmd := &cobra.Command{
		Use:   "extract <archive> <dir>",
		Short: "Extract container resources to a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := aurora.Open(args[0])
			if err != nil {
				return err
			}

			opts := extractOptions(cmd, g.config, f)
			return runExtract(cmd, r, args[1], opts)
		},
	}

	cmd.Flags().IntVarP(&f.workers, "workers", "j", 0, "number of parallel workers (0 means GOMAXPROCS)")
	cmd.Flags().StringVar(&f.fileMode, "file-mode", "", "output file policy: auto, overwrite_smart, truncate, create_only")
	cmd.Flags().BoolVar(&f.rawNames, "raw-names", false, "keep stored names without sanitizing")
	cmd.Flags().StringSliceVarP(&f.include, "include", "i", nil, "include pattern matched against name.ext")
	cmd.Flags().StringSliceVarP(&f.exclude, "exclude", "x", nil, "exclude pattern matched against name.ext")
	return cmd
}

// extractOptions merges config values with explicitly set flags.
func extractOptions(cmd *cobra.Command, cfg *Config, f extractFlags) aurora.ExtractOptions {
	if cfg == nil {
		cfg = &Config{}
	}

	opts := aurora.ExtractOptions{
		MaxWorkers: cfg.Workers,
		FileMode:   aurora.ExtractFileMode(cfg.FileMode),
		RawNames:   cfg.RawNames,
		Rules:      cfg.SelectionRules(),
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		opts.MaxWorkers = f.workers
	}
	if flags.Changed("file-mode") {
		opts.FileMode = aurora.ExtractFileMode(f.fileMode)
	}
	if flags.Changed("raw-names") {
		opts.RawNames = f.rawNames
	}
	if flags.Changed("include") || flags.Changed("exclude") {
		patterns := append([]string(nil), f.include...)
		for _, p := range f.exclude {
			patterns = append(patterns, "!"+p)
		}
		opts.Rules = selectionRules(patterns)
	}

	return opts
}

// runExtract extracts a into dir and logs one line per written file.
func runExtract(cmd *cobra.Command, a aurora.Archive, dir string, opts aurora.ExtractOptions) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	opts.OnEntryDone = func(e aurora.Entry, written int64, outputPath string) {
		log.Debug().Str("file", outputPath).Int64("bytes", written).Msg("written")
	}

	entries, err := aurora.FilterResources(a.Resources(), opts.Rules, opts.RulesMatcherOptions)
	if err != nil {
		return err
	}
	count := len(entries)
	opts.Entries = entries
	opts.Rules = nil

	if err := aurora.Extract(ctx, a, dir, opts); err != nil {
		return err
	}

	log.Info().Int("resources", count).Str("dir", dir).Msg("extracted")
	return nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package main

import (
	"github.com/spf13/cobra"
	"github.com/woozymasta/aurora"
)

func newCursorsCmd(g *globalOptions) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "cursors <executable> <dir>",
		Short: "Re-encode cursor groups of a PE executable into .cur files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := aurora.OpenPEResources(args[0])
			if err != nil {
				return err
			}

			cursors, err := aurora.NewCursorArchive(store, g.config.CursorNames)
			if err != nil {
				return err
			}

			opts := aurora.ExtractOptions{MaxWorkers: g.config.Workers}
			if cmd.Flags().Changed("workers") {
				opts.MaxWorkers = workers
			}

			return runExtract(cmd, cursors, args[1], opts)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "number of parallel workers (0 means GOMAXPROCS)")
	return cmd
}

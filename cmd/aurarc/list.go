// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/opencontainers/go-digest"
	"github.com/spf13/cobra"
	"github.com/woozymasta/aurora"
)

// listOutput is the JSON form of the list command.
type listOutput struct {
	Description *aurora.LocString `json:"description,omitempty"`
	Entries     []listEntry       `json:"entries"`
	Header      aurora.Header     `json:"header"`
}

// listEntry is one listed resource.
type listEntry struct {
	Digest digest.Digest `json:"digest,omitempty"`
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Index  uint32        `json:"index"`
	Size   uint32        `json:"size"`
}

func newListCmd(g *globalOptions) *cobra.Command {
	var withDigest, asJSON bool

	cmd := &cobra.Command{
		Use:   "list <archive>",
		Short: "List container header and resources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := aurora.Open(args[0])
			if err != nil {
				return err
			}

			out, err := buildListOutput(cmd.Context(), r, withDigest)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			return printList(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&withDigest, "digest", false, "compute sha256 digest of every resource")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// buildListOutput collects header, description and entries of r.
func buildListOutput(ctx context.Context, r *aurora.Reader, withDigest bool) (listOutput, error) {
	out := listOutput{Header: r.Header()}
	if desc := r.Description(); !desc.Empty() {
		out.Description = &desc
	}

	entries := r.Resources()
	var sums []aurora.EntryDigest
	if withDigest {
		var err error
		sums, err = aurora.Digests(ctx, r)
		if err != nil {
			return out, err
		}
	}

	out.Entries = make([]listEntry, len(entries))
	for i, e := range entries {
		size, err := r.ResourceSize(e.Index)
		if err != nil {
			return out, err
		}

		out.Entries[i] = listEntry{
			Index: e.Index,
			Name:  aurora.SanitizeDisplayName(e.FileName()),
			Type:  e.Type.String(),
			Size:  size,
		}
		if sums != nil {
			out.Entries[i].Digest = sums[i].Digest
		}
	}

	return out, nil
}

// printList writes out as human readable text.
func printList(w io.Writer, out listOutput) error {
	h := out.Header
	if _, err := fmt.Fprintf(w, "%s%s  resources: %d  built: %d/%d\n",
		h.Tag, h.Version, h.ResourceCount, 1900+h.BuildYear, h.BuildDay+1); err != nil {
		return err
	}

	if out.Description != nil {
		if _, err := fmt.Fprintf(w, "description: %s\n", aurora.SanitizeDisplayName(out.Description.String())); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range out.Entries {
		line := fmt.Sprintf("%d\t%s\t%s\t%d", e.Index, e.Name, e.Type, e.Size)
		if e.Digest != "" {
			line += "\t" + e.Digest.String()
		}

		if _, err := fmt.Fprintln(tw, line); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

/*
Package aurora provides read-only access to BioWare Aurora engine resource
containers. Two archive kinds share one Archive interface:

  - ERF, MOD, HAK and SAV containers in V1.0 and V2.0 layouts;
  - cursor groups embedded in PE executables, re-encoded as standalone .cur files.

Containers are parsed once when opened. Payloads are read on demand and
never cached, so a Reader may be shared between goroutines.

# Reading

Open a container and read entries:

	r, err := aurora.Open("chapter1.mod")
	if err != nil {
	    return err
	}
	for _, e := range r.Resources() {
	    data, err := r.ReadResource(e.Index)
	    if err != nil {
	        return err
	    }
	    _ = data
	}

Find an entry by name and type, or by "name.ext" file name:

	e, ok := aurora.FindResource(r, "m1q1_door", aurora.FileTypeUTD)
	e, ok = aurora.FindFile(r, "m1q1_door.utd")

For metadata-only scans:

	h, err := aurora.ReadHeader("chapter1.mod")
	entries, err := aurora.ListResources("chapter1.mod")

# Cursors

Expose the cursor groups of an executable:

	store, err := aurora.OpenPEResources("nwmain.exe")
	if err != nil {
	    return err
	}
	cursors, err := aurora.NewCursorArchive(store, []string{"gui_mp_defaultu", "gui_mp_walk"})
	if err != nil {
	    return err
	}
	data, err := cursors.ReadResource(1) // gui_mp_defaultu.cur

# Extracting

Extract selected entries with parallel workers; selection uses
github.com/woozymasta/pathrules matched against "name.ext":

	err := aurora.Extract(ctx, r, "out/", aurora.ExtractOptions{
	    MaxWorkers: 4,
	    Rules:      aurora.IncludeRules("*.2da", "*.tlk"),
	})

Output names are sanitized by default; set RawNames to keep them as stored.

# Digests

Content digests (sha256) are computed per entry:

	sums, err := aurora.Digests(ctx, r)
*/
package aurora

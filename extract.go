// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// extractWorkItem stores one selected entry with prepared output file name.
type extractWorkItem struct {
	fileName string
	entry    Entry
}

// Extract writes selected archive entries to dstDir as "name.ext" files.
// Extraction is parallelized by MaxWorkers; on failure it returns the first encountered error.
// Progress is logged at debug level to the logger carried by ctx.
func Extract(ctx context.Context, a Archive, dstDir string, opts ExtractOptions) error {
	if a == nil {
		return ErrNilReader
	}

	opts.applyDefaults()
	log := zerolog.Ctx(ctx)

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers < 1 {
		workers = 1
	}

	entries := opts.Entries
	if entries == nil {
		entries = a.Resources()
	}

	entries, err := FilterResources(entries, opts.Rules, opts.RulesMatcherOptions)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return nil
	}

	workItems, err := prepareExtractWorkItems(entries, opts.RawNames)
	if err != nil {
		return err
	}

	dstRootAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}

	if err := os.MkdirAll(dstRootAbs, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	log.Debug().
		Str("dir", dstRootAbs).
		Int("entries", len(workItems)).
		Int("workers", workers).
		Msg("extract started")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

dispatch:
	for _, task := range workItems {
		select {
		case <-gctx.Done():
			break dispatch
		default:
		}

		g.Go(func() error {
			return extractPreparedEntry(gctx, a, dstRootAbs, task, opts.FileMode, opts.OnEntryDone)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// errgroup cancels gctx only on failure; a parent cancellation stops dispatch silently.
	return ctx.Err()
}

// prepareExtractWorkItems validates selected entries and prepares output file names.
func prepareExtractWorkItems(entries []Entry, rawNames bool) ([]extractWorkItem, error) {
	workItems := make([]extractWorkItem, 0, len(entries))
	if !rawNames {
		names, err := sanitizeEntryFileNames(entries)
		if err != nil {
			return nil, err
		}

		for i := range entries {
			workItems = append(workItems, extractWorkItem{entry: entries[i], fileName: names[i]})
		}

		return workItems, nil
	}

	for _, entry := range entries {
		fileName, err := normalizeExtractFileName(entry.FileName())
		if err != nil {
			return nil, fmt.Errorf("entry %d %q: %w", entry.Index, entry.FileName(), err)
		}

		workItems = append(workItems, extractWorkItem{entry: entry, fileName: fileName})
	}

	return workItems, nil
}

// extractPreparedEntry writes one prepared work item to destination root.
func extractPreparedEntry(
	ctx context.Context,
	a Archive,
	dstRootAbs string,
	task extractWorkItem,
	fileMode ExtractFileMode,
	onEntryDone func(entry Entry, written int64, outputPath string),
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	outPath := filepath.Join(dstRootAbs, task.fileName)

	data, err := a.ReadResource(task.entry.Index)
	if err != nil {
		return fmt.Errorf("read %s: %w", task.entry.FileName(), err)
	}

	file, needsTruncate, err := openExtractFile(outPath, fileMode, int64(len(data)))
	if err != nil {
		return fmt.Errorf("open %s: %w", task.fileName, err)
	}

	written, copyErr := io.Copy(file, bytes.NewReader(data))
	if copyErr == nil && needsTruncate {
		if truncErr := file.Truncate(written); truncErr != nil {
			_ = file.Close()
			return fmt.Errorf("truncate %s: %w", task.fileName, truncErr)
		}
	}

	closeErr := file.Close()
	if copyErr != nil {
		return fmt.Errorf("write %s: %w", task.fileName, copyErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", task.fileName, closeErr)
	}

	zerolog.Ctx(ctx).Debug().
		Uint32("index", task.entry.Index).
		Str("file", task.fileName).
		Int64("bytes", written).
		Msg("entry extracted")

	if onEntryDone != nil {
		onEntryDone(task.entry, written, outPath)
	}

	return nil
}

// openExtractFile opens output path according to selected extract file mode.
func openExtractFile(path string, mode ExtractFileMode, expectedSize int64) (*os.File, bool, error) {
	switch mode {
	case ExtractFileModeAuto:
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			return file, false, nil
		}

		if !os.IsExist(err) {
			return nil, false, err
		}

		file, truncErr := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		return file, false, truncErr
	case ExtractFileModeOverwriteSmart:
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o600)
		if err != nil {
			return nil, false, err
		}

		info, err := file.Stat()
		if err != nil {
			_ = file.Close()
			return nil, false, err
		}

		needsTruncate := info.Size() > expectedSize
		return file, needsTruncate, nil
	case ExtractFileModeTruncate:
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		return file, false, err
	case ExtractFileModeCreateOnly:
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		return file, false, err
	default:
		return nil, false, fmt.Errorf("unknown extract file mode %q", mode)
	}
}

// normalizeExtractFileName rejects names that would leave the destination directory.
// Aurora archives are flat, so any separator is rejected.
func normalizeExtractFileName(name string) (string, error) {
	raw := strings.TrimSpace(name)
	switch {
	case raw == "", raw == ".", raw == "..":
		return "", ErrInvalidExtractPath
	case strings.ContainsRune(raw, 0):
		return "", ErrInvalidExtractPath
	case strings.ContainsAny(raw, `/\`):
		return "", ErrInvalidExtractPath
	case hasWindowsDrivePrefix(raw):
		return "", ErrInvalidExtractPath
	}

	return raw, nil
}

// hasWindowsDrivePrefix reports whether name starts with drive prefix like C:.
func hasWindowsDrivePrefix(name string) bool {
	if len(name) < 2 {
		return false
	}

	return isASCIIAlpha(name[0]) && name[1] == ':'
}

// isASCIIAlpha reports whether byte is ASCII latin letter.
func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"context"
	"fmt"
	"runtime"

	"github.com/opencontainers/go-digest"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ResourceDigest reads one resource and returns its sha256 content digest.
func ResourceDigest(a Archive, e Entry) (EntryDigest, error) {
	if a == nil {
		return EntryDigest{}, ErrNilReader
	}

	data, err := a.ReadResource(e.Index)
	if err != nil {
		return EntryDigest{}, fmt.Errorf("digest %s: %w", e.FileName(), err)
	}

	return EntryDigest{
		Entry:  e,
		Size:   int64(len(data)),
		Digest: digest.SHA256.FromBytes(data),
	}, nil
}

// Digests computes content digests of every archive entry in directory order.
// Entries are read in parallel; the first read failure aborts the scan.
func Digests(ctx context.Context, a Archive) ([]EntryDigest, error) {
	if a == nil {
		return nil, ErrNilReader
	}

	entries := a.Resources()
	out := make([]EntryDigest, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			d, err := ResourceDigest(a, e)
			if err != nil {
				return err
			}

			out[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int("entries", len(out)).Msg("digests computed")
	return out, nil
}

// Verify reports whether the resource payload still matches expected digest.
func Verify(a Archive, expected EntryDigest) (bool, error) {
	if a == nil {
		return false, ErrNilReader
	}

	if err := expected.Digest.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	data, err := a.ReadResource(expected.Entry.Index)
	if err != nil {
		return false, err
	}

	verifier := expected.Digest.Verifier()
	_, _ = verifier.Write(data)
	return verifier.Verified() && int64(len(data)) == expected.Size, nil
}

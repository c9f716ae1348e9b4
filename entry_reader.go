// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"bytes"
	"fmt"
	"io"
)

// ReadResource reads the full payload of the entry at index.
// The returned slice is freshly allocated and owned by the caller.
func (r *Reader) ReadResource(index uint32) ([]byte, error) {
	if r == nil || (r.ra == nil && r.path == "") {
		return nil, ErrNilReader
	}

	if uint64(index) >= uint64(len(r.locations)) {
		return nil, fmt.Errorf("%w: %d/%d", ErrIndexOutOfRange, index, len(r.locations))
	}

	loc := r.locations[index]
	if r.ra != nil {
		return readPayload(r.ra, r.size, loc)
	}

	f, size, err := openFileWithSize(r.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return readPayload(f, size, loc)
}

// OpenResource opens the entry at index as an independent seekable stream.
func (r *Reader) OpenResource(index uint32) (*bytes.Reader, error) {
	return openResource(r, index)
}

// ResourceSize returns the recorded payload size of the entry at index without reading it.
func (r *Reader) ResourceSize(index uint32) (uint32, error) {
	if r == nil {
		return 0, ErrNilReader
	}

	if uint64(index) >= uint64(len(r.locations)) {
		return 0, fmt.Errorf("%w: %d/%d", ErrIndexOutOfRange, index, len(r.locations))
	}

	return r.locations[index].size, nil
}

// readPayload reads exactly loc.size bytes at loc.offset or fails; it never returns a short payload.
func readPayload(ra io.ReaderAt, size int64, loc location) ([]byte, error) {
	offset := int64(loc.offset)
	if offset > size {
		return nil, fmt.Errorf("%w: offset %d beyond end %d", ErrSeek, offset, size)
	}

	if int64(loc.size) > size-offset {
		return nil, fmt.Errorf("%w: need %d bytes at %d, file has %d", ErrTruncated, loc.size, offset, size)
	}

	data := make([]byte, loc.size)
	if err := readFullAt(ra, data, offset); err != nil {
		return nil, err
	}

	return data, nil
}

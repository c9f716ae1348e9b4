// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import "io"

// ReadHeader opens a container and returns only validated header fields without parsing the directory.
func ReadHeader(path string) (Header, error) {
	f, size, err := openFileWithSize(path)
	if err != nil {
		return Header{}, err
	}
	defer func() { _ = f.Close() }()

	return ReadHeaderFromReaderAt(f, size)
}

// ReadHeaderFromReaderAt reads only validated header fields from a random-access source.
func ReadHeaderFromReaderAt(ra io.ReaderAt, size int64) (Header, error) {
	if ra == nil {
		return Header{}, ErrNilReader
	}

	return parseHeader(ra, size)
}

// ListResources opens a container and returns directory entries without payload reads
// and without parsing the description.
func ListResources(path string) ([]Entry, error) {
	r, err := OpenWithOptions(path, ReaderOptions{SkipDescription: true})
	if err != nil {
		return nil, err
	}

	return r.entries, nil
}

// ListResourcesFromReaderAt parses directory entries from a random-access source.
func ListResourcesFromReaderAt(ra io.ReaderAt, size int64) ([]Entry, error) {
	r, err := NewReaderFromReaderAtWithOptions(ra, size, ReaderOptions{SkipDescription: true})
	if err != nil {
		return nil, err
	}

	return r.entries, nil
}

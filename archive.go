// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"bytes"
	"strings"
)

// Archive is a read-only collection of indexed resources.
//
// Resources returns the directory in stable order. ReadResource returns a
// freshly allocated payload owned by the caller; failures are local to the call
// and never invalidate the archive.
type Archive interface {
	Resources() []Entry
	ReadResource(index uint32) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ Archive = (*Reader)(nil)
	_ Archive = (*CursorArchive)(nil)
)

// FindResource looks up an entry by case-insensitive name and exact type.
func FindResource(a Archive, name string, t FileType) (Entry, bool) {
	if a == nil {
		return Entry{}, false
	}

	name = NormalizeName(name)
	for _, e := range a.Resources() {
		if e.Type == t && strings.EqualFold(e.Name, name) {
			return e, true
		}
	}

	return Entry{}, false
}

// FindFile looks up an entry by case-insensitive "name.ext" file name.
func FindFile(a Archive, fileName string) (Entry, bool) {
	name, t := SplitFileName(NormalizeName(fileName))
	return FindResource(a, name, t)
}

// openResource wraps ReadResource output in an independent seekable reader.
func openResource(a Archive, index uint32) (*bytes.Reader, error) {
	data, err := a.ReadResource(index)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(data), nil
}

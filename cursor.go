// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Cursor group and standalone cursor file layout.
const (
	cursorHeaderSize     = 6  // reserved, type, count
	cursorGroupEntrySize = 14 // width, height, planes, bpp, bytes, id
	cursorDirEntrySize   = 16 // width, height, bpp, reserved, hotspot x/y, size, offset
	cursorHotspotSize    = 4  // hotspot x/y prefix of every cursor resource
)

// CursorArchive exposes the cursor groups of a PE resource store as an archive
// of standalone .cur files.
//
// Entry index is the cursor group's PE integer id. The archive keeps no
// mutable state; concurrency safety is that of the wrapped store.
type CursorArchive struct {
	store   ResourceStore
	entries []Entry
}

// NewCursorArchive enumerates cursor groups of store.
// The name of group id N is remap[N-1] when present, otherwise "cursor<N-1>".
// A named (non-integer) group fails the whole construction.
func NewCursorArchive(store ResourceStore, remap []string) (*CursorArchive, error) {
	if store == nil {
		return nil, ErrNilReader
	}

	ids := store.ResourceIDs(KindGroupCursor)
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		if !id.IsInteger() {
			return nil, fmt.Errorf("%w: cursor group %q", ErrNonIntegerResource, id.Name)
		}
		if id.ID == 0 {
			return nil, fmt.Errorf("%w: cursor group id 0", ErrFormat)
		}

		pos := id.ID - 1
		name := fmt.Sprintf("cursor%d", pos)
		if uint64(pos) < uint64(len(remap)) && remap[pos] != "" {
			name = remap[pos]
		}

		entries = append(entries, Entry{
			Name:  name,
			Type:  FileTypeCUR,
			Index: id.ID,
		})
	}

	return &CursorArchive{store: store, entries: entries}, nil
}

// Resources returns a copy of synthesized cursor entries.
func (c *CursorArchive) Resources() []Entry {
	if c == nil {
		return nil
	}

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// OpenResource re-encodes cursor group index as an independent seekable stream.
func (c *CursorArchive) OpenResource(index uint32) (*bytes.Reader, error) {
	return openResource(c, index)
}

// ReadResource re-encodes cursor group with PE id index into a standalone cursor file.
//
// Output layout: reserved, type and count words copied from the group; one
// 16-byte directory entry per cursor (width, height/2, bpp, 0, hotspot x/y,
// size, offset); then each cursor resource without its 4-byte hotspot prefix.
// Group height is stored doubled by convention and is halved here; width, height
// and bpp are truncated to one byte, planes are dropped.
func (c *CursorArchive) ReadResource(index uint32) ([]byte, error) {
	if c == nil || c.store == nil {
		return nil, ErrNilReader
	}

	group, ok := c.store.Resource(KindGroupCursor, IntegerID(index))
	if !ok {
		return nil, fmt.Errorf("%w: cursor group %d", ErrNotFound, index)
	}

	if len(group) < cursorHeaderSize {
		return nil, fmt.Errorf("%w: cursor group %d header", ErrTruncated, index)
	}

	count := int(binary.LittleEndian.Uint16(group[4:6]))
	if len(group) < cursorHeaderSize+count*cursorGroupEntrySize {
		return nil, fmt.Errorf("%w: cursor group %d declares %d cursors in %d bytes",
			ErrTruncated, index, count, len(group))
	}

	cursors := make([][]byte, count)
	total := cursorHeaderSize + count*cursorDirEntrySize
	for i := range cursors {
		rec := group[cursorHeaderSize+i*cursorGroupEntrySize:]
		id := binary.LittleEndian.Uint16(rec[12:14])

		cursor, ok := c.store.Resource(KindCursor, IntegerID(uint32(id)))
		if !ok {
			return nil, fmt.Errorf("%w: cursor %d of group %d", ErrNotFound, id, index)
		}
		if len(cursor) < cursorHotspotSize {
			return nil, fmt.Errorf("%w: cursor %d of group %d has %d bytes", ErrTruncated, id, index, len(cursor))
		}

		cursors[i] = cursor
		total += len(cursor) - cursorHotspotSize
	}

	out := make([]byte, total)
	copy(out[0:6], group[0:6])

	offset := uint32(cursorHeaderSize + count*cursorDirEntrySize) //nolint:gosec // count is uint16
	for i, cursor := range cursors {
		rec := group[cursorHeaderSize+i*cursorGroupEntrySize:]
		dir := out[cursorHeaderSize+i*cursorDirEntrySize:]
		payloadSize := uint32(len(cursor) - cursorHotspotSize) //nolint:gosec // bounded by slice length

		dir[0] = byte(binary.LittleEndian.Uint16(rec[0:2]))     // width
		dir[1] = byte(binary.LittleEndian.Uint16(rec[2:4]) / 2) // height
		// rec[4:6] planes, dropped
		dir[2] = byte(binary.LittleEndian.Uint16(rec[6:8])) // bits per pixel
		dir[3] = 0
		copy(dir[4:8], cursor[:cursorHotspotSize]) // hotspot x, y
		binary.LittleEndian.PutUint32(dir[8:12], payloadSize)
		binary.LittleEndian.PutUint32(dir[12:16], offset)

		copy(out[offset:], cursor[cursorHotspotSize:])
		offset += payloadSize
	}

	return out, nil
}

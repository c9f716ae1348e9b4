// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader provides read-only access to a parsed ERF container
// (ERF, MOD, HAK or SAV; V1.0 or V2.0).
//
// The directory is parsed once and never mutated afterwards. Readers opened by
// path do not hold the file open: every ReadResource call re-opens it, so
// concurrent extractions share no file position state.
type Reader struct {
	// ra is the caller-owned random-access source, nil for path-backed readers.
	ra io.ReaderAt
	// path is the backing file re-opened on every payload read.
	path string
	// description is the optional V1.0 localized description.
	description LocString
	// entries stores parsed immutable directory records.
	entries []Entry
	// locations is index-aligned with entries.
	locations []location
	// size is source size in bytes as seen at parse time.
	size int64
	// header stores parsed header fields.
	header Header
}

// Open opens an ERF container by path and parses its directory.
func Open(path string) (*Reader, error) {
	return OpenWithOptions(path, ReaderOptions{})
}

// OpenWithOptions opens an ERF container by path and parses its directory using explicit reader options.
func OpenWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	f, size, err := openFileWithSize(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := &Reader{size: size}
	if err := r.parse(f, size, opts); err != nil {
		return nil, err
	}

	r.path = path
	return r, nil
}

// NewReaderFromReaderAt parses an ERF container from existing ReaderAt and known size.
// The ReaderAt must stay valid for as long as resources are read.
func NewReaderFromReaderAt(ra io.ReaderAt, size int64) (*Reader, error) {
	return NewReaderFromReaderAtWithOptions(ra, size, ReaderOptions{})
}

// NewReaderFromReaderAtWithOptions parses an ERF container from existing ReaderAt using explicit reader options.
func NewReaderFromReaderAtWithOptions(ra io.ReaderAt, size int64, opts ReaderOptions) (*Reader, error) {
	if ra == nil {
		return nil, ErrNilReader
	}

	r := &Reader{ra: ra, size: size}
	if err := r.parse(ra, size, opts); err != nil {
		return nil, err
	}

	return r, nil
}

// Header returns parsed header fields.
func (r *Reader) Header() Header {
	if r == nil {
		return Header{}
	}

	return r.header
}

// Description returns a copy of the localized description; empty for V2.0 archives.
func (r *Reader) Description() LocString {
	if r == nil {
		return LocString{}
	}

	return r.description.clone()
}

// Resources returns a copy of parsed directory entries in index order.
func (r *Reader) Resources() []Entry {
	if r == nil {
		return nil
	}

	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Len returns number of directory entries.
func (r *Reader) Len() int {
	if r == nil {
		return 0
	}

	return len(r.entries)
}

// parse reads and validates header, description and directory.
// Nothing is published on r unless every step succeeds.
func (r *Reader) parse(ra io.ReaderAt, size int64, opts ReaderOptions) error {
	header, err := parseHeader(ra, size)
	if err != nil {
		return err
	}

	var description LocString
	if header.Version == Version1 {
		description.ID = header.DescriptionID
		if !opts.SkipDescription {
			description, err = readLocString(
				ra, int64(header.DescriptionOffset), size, header.DescriptionID, header.LangCount,
			)
			if err != nil {
				return fmt.Errorf("%s: %w", errReadContainer, err)
			}
		}
	}

	var entries []Entry
	var locations []location
	switch header.Version {
	case Version1:
		entries, err = readKeyListV1(ra, size, header)
		if err == nil {
			locations, err = readResListV1(ra, size, header)
		}
	case Version2:
		entries, locations, err = readResListV2(ra, size, header)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", errReadContainer, err)
	}

	r.header = header
	r.description = description
	r.entries = entries
	r.locations = locations
	return nil
}

// parseHeader reads tag, version and version-specific header fields.
// Validation order: container tag, version, V2.0 encoding.
func parseHeader(ra io.ReaderAt, size int64) (Header, error) {
	var h Header

	var prefix [tagSizeUTF16]byte
	n, err := ra.ReadAt(prefix[:], 0)
	if n < tagSize {
		if err != nil && !errors.Is(err, io.EOF) {
			return h, fmt.Errorf("%s: %w: %w", errReadContainer, ErrIO, err)
		}

		return h, fmt.Errorf("%w: short header", ErrNotContainer)
	}

	idBlock := prefix[:tagSize]
	base := int64(tagSize)
	if isUTF16Tag(prefix[:]) {
		if n < tagSizeUTF16 {
			return h, fmt.Errorf("%w: short UTF-16LE header", ErrNotContainer)
		}

		idBlock = narrowUTF16Tag(prefix[:tagSizeUTF16])
		base = tagSizeUTF16
		h.UTF16 = true
	}

	h.Tag = Tag(idBlock[0:4])
	h.Version = Version(idBlock[4:8])

	switch h.Tag {
	case TagERF, TagMOD, TagHAK, TagSAV:
	default:
		return h, fmt.Errorf("%w: tag %q", ErrNotContainer, string(h.Tag))
	}

	switch h.Version {
	case Version1, Version2:
	default:
		return h, fmt.Errorf("%w: %q", ErrUnsupportedVersion, string(h.Version))
	}

	if h.Version == Version2 && !h.UTF16 {
		return h, fmt.Errorf("%w: version %s requires UTF-16LE", ErrInconsistentEncoding, h.Version)
	}

	if h.Version == Version1 {
		return h, parseHeaderV1(ra, size, base, &h)
	}

	return h, parseHeaderV2(ra, size, base, &h)
}

// parseHeaderV1 reads the 152-byte V1.0 header body following tag and version.
func parseHeaderV1(ra io.ReaderAt, size int64, base int64, h *Header) error {
	const bodySize = 9*4 + reservedHeaderV1
	if base+bodySize > size {
		return fmt.Errorf("%s: %w: header needs %d bytes, file has %d", errReadContainer, ErrTruncated, base+bodySize, size)
	}

	var body [9 * 4]byte
	if err := readFullAt(ra, body[:], base); err != nil {
		return fmt.Errorf("%s: %w", errReadContainer, err)
	}

	h.LangCount = binary.LittleEndian.Uint32(body[0:4])
	// body[4:8] is the description byte count, unused
	h.ResourceCount = binary.LittleEndian.Uint32(body[8:12])
	h.DescriptionOffset = binary.LittleEndian.Uint32(body[12:16])
	h.KeyListOffset = binary.LittleEndian.Uint32(body[16:20])
	h.ResListOffset = binary.LittleEndian.Uint32(body[20:24])
	h.BuildYear = binary.LittleEndian.Uint32(body[24:28])
	h.BuildDay = binary.LittleEndian.Uint32(body[28:32])
	h.DescriptionID = binary.LittleEndian.Uint32(body[32:36])
	return nil
}

// parseHeaderV2 reads the 16-byte V2.0 header body; the resource list follows at 0x20.
func parseHeaderV2(ra io.ReaderAt, size int64, base int64, h *Header) error {
	const bodySize = 4 * 4
	if base+bodySize > size {
		return fmt.Errorf("%s: %w: header needs %d bytes, file has %d", errReadContainer, ErrTruncated, base+bodySize, size)
	}

	var body [bodySize]byte
	if err := readFullAt(ra, body[:], base); err != nil {
		return fmt.Errorf("%s: %w", errReadContainer, err)
	}

	h.ResourceCount = binary.LittleEndian.Uint32(body[0:4])
	h.BuildYear = binary.LittleEndian.Uint32(body[4:8])
	h.BuildDay = binary.LittleEndian.Uint32(body[8:12])
	// body[12:16] is unknown, usually 0xFFFFFFFF
	h.ResListOffset = resListOffsetV2
	return nil
}

// readKeyListV1 reads name and type of every entry from the V1.0 key list.
func readKeyListV1(ra io.ReaderAt, size int64, h Header) ([]Entry, error) {
	table, err := readTable(ra, size, int64(h.KeyListOffset), h.ResourceCount, keyRecordSizeV1)
	if err != nil {
		return nil, fmt.Errorf("read key list: %w", err)
	}

	entries := make([]Entry, h.ResourceCount)
	for i := range entries {
		rec := table[i*keyRecordSizeV1 : (i+1)*keyRecordSizeV1]
		entries[i] = Entry{
			Name: decodeFixedASCII(rec[:nameSizeV1]),
			// rec[16:20] is a resource id, ignored
			Type:  FileType(binary.LittleEndian.Uint16(rec[20:22])),
			Index: uint32(i), //nolint:gosec // bounded by uint32 resource count
		}
	}

	return entries, nil
}

// readResListV1 reads offset and size of every entry, joined with the key list by position.
func readResListV1(ra io.ReaderAt, size int64, h Header) ([]location, error) {
	table, err := readTable(ra, size, int64(h.ResListOffset), h.ResourceCount, resRecordSize)
	if err != nil {
		return nil, fmt.Errorf("read resource list: %w", err)
	}

	locations := make([]location, h.ResourceCount)
	for i := range locations {
		rec := table[i*resRecordSize : (i+1)*resRecordSize]
		locations[i] = location{
			offset: binary.LittleEndian.Uint32(rec[0:4]),
			size:   binary.LittleEndian.Uint32(rec[4:8]),
		}
	}

	return locations, nil
}

// readResListV2 reads the merged V2.0 resource list: UTF-16LE name, offset, size.
func readResListV2(ra io.ReaderAt, size int64, h Header) ([]Entry, []location, error) {
	table, err := readTable(ra, size, int64(h.ResListOffset), h.ResourceCount, resRecordSizeV2)
	if err != nil {
		return nil, nil, fmt.Errorf("read resource list: %w", err)
	}

	entries := make([]Entry, h.ResourceCount)
	locations := make([]location, h.ResourceCount)
	for i := range entries {
		rec := table[i*resRecordSizeV2 : (i+1)*resRecordSizeV2]

		fullName, err := decodeFixedUTF16LE(rec[:nameUnitsV2*2])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidName, i, err)
		}

		name, fileType := SplitFileName(fullName)
		entries[i] = Entry{
			Name:  name,
			Type:  fileType,
			Index: uint32(i), //nolint:gosec // bounded by uint32 resource count
		}
		locations[i] = location{
			offset: binary.LittleEndian.Uint32(rec[nameUnitsV2*2:]),
			size:   binary.LittleEndian.Uint32(rec[nameUnitsV2*2+4:]),
		}
	}

	return entries, locations, nil
}

// readTable reads count fixed-size records at offset after checking they fit into the source.
func readTable(ra io.ReaderAt, size int64, offset int64, count uint32, recordSize int) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}

	if offset > size {
		return nil, fmt.Errorf("%w: table offset %d beyond end %d", ErrSeek, offset, size)
	}

	tableSize := int64(count) * int64(recordSize)
	if tableSize > size-offset {
		return nil, fmt.Errorf("%w: %d records of %d bytes at %d exceed file size %d",
			ErrTruncated, count, recordSize, offset, size)
	}

	table := make([]byte, tableSize)
	if err := readFullAt(ra, table, offset); err != nil {
		return nil, err
	}

	return table, nil
}

// readFullAt fills buf from offset; short reads map to ErrTruncated.
func readFullAt(ra io.ReaderAt, buf []byte, offset int64) error {
	n, err := ra.ReadAt(buf, offset)
	if n == len(buf) {
		return nil
	}

	if err == nil || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: got %d of %d bytes at %d", ErrTruncated, n, len(buf), offset)
	}

	return fmt.Errorf("%w: %w", ErrIO, err)
}

// openFileWithSize opens a file and returns a handle plus current size.
func openFileWithSize(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: open container: %w", ErrIO, err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("%w: stat: %w", ErrIO, err)
	}

	return f, fi.Size(), nil
}

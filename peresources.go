// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
)

// PE resource directory layout.
const (
	peDirHeaderSize  = 16
	peDirEntrySize   = 8
	peDataEntrySize  = 16
	peHighBit        = 0x80000000
	peMaxTreeDepth   = 3
	peMaxDirEntries  = 0xFFFF * 2
	peResourceDirIdx = 2 // IMAGE_DIRECTORY_ENTRY_RESOURCE
)

// NonIntegerID marks a resource identified by name rather than by integer id.
const NonIntegerID uint32 = 0xFFFFFFFF

// ResourceKind is a PE resource type id.
type ResourceKind uint32

// PE resource kinds used by Aurora executables.
const (
	KindCursor      ResourceKind = 1
	KindIcon        ResourceKind = 3
	KindGroupCursor ResourceKind = 12
	KindGroupIcon   ResourceKind = 14
)

// ResourceID identifies one PE resource of a kind, either by integer id or by name.
type ResourceID struct {
	// Name is set for named resources; ID is NonIntegerID then.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// ID is the integer resource id.
	ID uint32 `json:"id" yaml:"id"`
}

// IntegerID returns ResourceID for integer id.
func IntegerID(id uint32) ResourceID {
	return ResourceID{ID: id}
}

// NamedID returns ResourceID for a named resource.
func NamedID(name string) ResourceID {
	return ResourceID{ID: NonIntegerID, Name: name}
}

// IsInteger reports whether resource is identified by integer id.
func (id ResourceID) IsInteger() bool {
	return id.Name == "" && id.ID != NonIntegerID
}

// String returns "#id" for integer ids and the name otherwise.
func (id ResourceID) String() string {
	if id.IsInteger() {
		return fmt.Sprintf("#%d", id.ID)
	}

	return id.Name
}

// ResourceStore is a source of raw PE resources.
// Resource returns nil, false when resource is absent.
type ResourceStore interface {
	ResourceIDs(kind ResourceKind) []ResourceID
	Resource(kind ResourceKind, id ResourceID) ([]byte, bool)
}

// peResource is one parsed leaf of the resource tree (first language only).
type peResource struct {
	data []byte
	id   ResourceID
}

// PEResources is an in-memory ResourceStore parsed from the .rsrc section of a PE image.
// It is immutable after construction and safe for concurrent use.
type PEResources struct {
	kinds map[ResourceKind][]peResource
}

// Compile-time interface check.
var _ ResourceStore = (*PEResources)(nil)

// OpenPEResources opens a PE executable by path and loads its resource tree.
func OpenPEResources(path string) (*PEResources, error) {
	f, _, err := openFileWithSize(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return NewPEResources(f)
}

// NewPEResources loads the resource tree of a PE image from a random-access source.
// Resource payloads are copied, the source is not retained.
func NewPEResources(ra io.ReaderAt) (*PEResources, error) {
	if ra == nil {
		return nil, ErrNilReader
	}

	f, err := pe.NewFile(ra)
	if err != nil {
		return nil, fmt.Errorf("%w: parse PE: %w", ErrFormat, err)
	}
	defer func() { _ = f.Close() }()

	rva := resourceDirectoryRVA(f)
	if rva == 0 {
		return &PEResources{kinds: map[ResourceKind][]peResource{}}, nil
	}

	sections := newSectionCache(f)
	tree, err := sections.slice(rva, 0)
	if err != nil {
		return nil, fmt.Errorf("locate resource directory: %w", err)
	}

	kinds, err := parseResourceTree(tree, sections.slice)
	if err != nil {
		return nil, err
	}

	return &PEResources{kinds: kinds}, nil
}

// ResourceIDs returns identifiers of every resource of kind in directory order.
func (p *PEResources) ResourceIDs(kind ResourceKind) []ResourceID {
	if p == nil {
		return nil
	}

	list := p.kinds[kind]
	out := make([]ResourceID, len(list))
	for i := range list {
		out[i] = list[i].id
	}

	return out
}

// Resource returns a copy of resource payload.
func (p *PEResources) Resource(kind ResourceKind, id ResourceID) ([]byte, bool) {
	if p == nil {
		return nil, false
	}

	for _, res := range p.kinds[kind] {
		if sameResourceID(res.id, id) {
			return bytes.Clone(res.data), true
		}
	}

	return nil, false
}

// sameResourceID compares integer ids exactly and names case-insensitively.
func sameResourceID(a, b ResourceID) bool {
	if a.IsInteger() || b.IsInteger() {
		return a.IsInteger() && b.IsInteger() && a.ID == b.ID
	}

	return strings.EqualFold(a.Name, b.Name)
}

// resourceDirectoryRVA returns RVA of the resource directory, falling back to the .rsrc section.
func resourceDirectoryRVA(f *pe.File) uint32 {
	var dd pe.DataDirectory
	switch oh := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		if oh.NumberOfRvaAndSizes > peResourceDirIdx {
			dd = oh.DataDirectory[peResourceDirIdx]
		}
	case *pe.OptionalHeader64:
		if oh.NumberOfRvaAndSizes > peResourceDirIdx {
			dd = oh.DataDirectory[peResourceDirIdx]
		}
	}

	if dd.VirtualAddress != 0 {
		return dd.VirtualAddress
	}

	if s := f.Section(".rsrc"); s != nil {
		return s.VirtualAddress
	}

	return 0
}

// sectionCache maps RVAs to section bytes, reading every section at most once.
type sectionCache struct {
	file *pe.File
	data map[*pe.Section][]byte
}

// newSectionCache creates an empty cache over PE sections.
func newSectionCache(f *pe.File) *sectionCache {
	return &sectionCache{file: f, data: make(map[*pe.Section][]byte, len(f.Sections))}
}

// slice returns section bytes starting at rva; size 0 means "up to section end".
func (c *sectionCache) slice(rva uint32, size uint32) ([]byte, error) {
	for _, s := range c.file.Sections {
		span := max(s.VirtualSize, s.Size)
		if rva < s.VirtualAddress || rva-s.VirtualAddress >= span {
			continue
		}

		data, ok := c.data[s]
		if !ok {
			var err error
			data, err = s.Data()
			if err != nil {
				return nil, fmt.Errorf("%w: read section %s: %w", ErrIO, s.Name, err)
			}
			c.data[s] = data
		}

		off := uint64(rva - s.VirtualAddress)
		end := uint64(len(data))
		if size != 0 {
			end = off + uint64(size)
		}
		if off > uint64(len(data)) || end > uint64(len(data)) {
			return nil, fmt.Errorf("%w: rva 0x%x+%d outside section %s", ErrInvalidResourceTree, rva, size, s.Name)
		}

		return data[off:end], nil
	}

	return nil, fmt.Errorf("%w: rva 0x%x not mapped by any section", ErrInvalidResourceTree, rva)
}

// parseResourceTree walks type -> name/id -> language directories of a resource section.
// tree starts at the root directory; data entries are resolved by RVA through resolve.
func parseResourceTree(tree []byte, resolve func(rva, size uint32) ([]byte, error)) (map[ResourceKind][]peResource, error) {
	w := treeWalker{tree: tree, resolve: resolve, seen: make(map[uint32]struct{})}

	types, err := w.directory(0)
	if err != nil {
		return nil, err
	}

	out := make(map[ResourceKind][]peResource, len(types))
	for _, typeEntry := range types {
		if typeEntry.named || !typeEntry.subdir {
			// named resource types are not used by the supported kinds
			continue
		}

		kind := ResourceKind(typeEntry.id)
		resources, err := w.directory(typeEntry.offset)
		if err != nil {
			return nil, fmt.Errorf("resource type %d: %w", kind, err)
		}

		for _, resEntry := range resources {
			id := IntegerID(resEntry.id)
			if resEntry.named {
				id = NamedID(resEntry.name)
			}

			data, err := w.leaf(resEntry, 2)
			if err != nil {
				return nil, fmt.Errorf("resource type %d id %s: %w", kind, id, err)
			}
			if data == nil {
				continue
			}

			out[kind] = append(out[kind], peResource{id: id, data: data})
		}
	}

	return out, nil
}

// treeEntry is one decoded IMAGE_RESOURCE_DIRECTORY_ENTRY.
type treeEntry struct {
	name   string
	id     uint32
	offset uint32
	named  bool
	subdir bool
}

// treeWalker decodes resource directories with loop and bounds protection.
type treeWalker struct {
	tree    []byte
	resolve func(rva, size uint32) ([]byte, error)
	seen    map[uint32]struct{}
}

// directory decodes all entries of directory at offset.
func (w *treeWalker) directory(offset uint32) ([]treeEntry, error) {
	if _, dup := w.seen[offset]; dup {
		return nil, fmt.Errorf("%w: directory loop at 0x%x", ErrInvalidResourceTree, offset)
	}
	w.seen[offset] = struct{}{}

	if uint64(offset)+peDirHeaderSize > uint64(len(w.tree)) {
		return nil, fmt.Errorf("%w: directory at 0x%x out of bounds", ErrInvalidResourceTree, offset)
	}

	hdr := w.tree[offset : offset+peDirHeaderSize]
	count := int(binary.LittleEndian.Uint16(hdr[12:14])) + int(binary.LittleEndian.Uint16(hdr[14:16]))
	if count > peMaxDirEntries {
		return nil, fmt.Errorf("%w: %d directory entries", ErrInvalidResourceTree, count)
	}

	start := uint64(offset) + peDirHeaderSize
	if start+uint64(count)*peDirEntrySize > uint64(len(w.tree)) {
		return nil, fmt.Errorf("%w: directory entries at 0x%x out of bounds", ErrInvalidResourceTree, offset)
	}

	entries := make([]treeEntry, 0, count)
	for i := 0; i < count; i++ {
		rec := w.tree[start+uint64(i)*peDirEntrySize:]
		nameField := binary.LittleEndian.Uint32(rec[0:4])
		dataField := binary.LittleEndian.Uint32(rec[4:8])

		e := treeEntry{
			offset: dataField &^ peHighBit,
			subdir: dataField&peHighBit != 0,
		}

		if nameField&peHighBit != 0 {
			name, err := w.name(nameField &^ peHighBit)
			if err != nil {
				return nil, err
			}
			e.named = true
			e.name = name
			e.id = NonIntegerID
		} else {
			e.id = nameField
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// name decodes IMAGE_RESOURCE_DIR_STRING_U at offset.
func (w *treeWalker) name(offset uint32) (string, error) {
	if uint64(offset)+2 > uint64(len(w.tree)) {
		return "", fmt.Errorf("%w: name at 0x%x out of bounds", ErrInvalidResourceTree, offset)
	}

	length := uint64(binary.LittleEndian.Uint16(w.tree[offset:]))
	end := uint64(offset) + 2 + length*2
	if end > uint64(len(w.tree)) {
		return "", fmt.Errorf("%w: name at 0x%x out of bounds", ErrInvalidResourceTree, offset)
	}

	units := make([]uint16, length)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(w.tree[uint64(offset)+2+uint64(i)*2:])
	}

	return string(utf16.Decode(units)), nil
}

// leaf descends from e to the first data entry; nil data means an empty directory.
func (w *treeWalker) leaf(e treeEntry, depth int) ([]byte, error) {
	if !e.subdir {
		return w.data(e.offset)
	}

	if depth >= peMaxTreeDepth {
		return nil, fmt.Errorf("%w: tree deeper than %d levels", ErrInvalidResourceTree, peMaxTreeDepth)
	}

	children, err := w.directory(e.offset)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, nil
	}

	return w.leaf(children[0], depth+1)
}

// data resolves IMAGE_RESOURCE_DATA_ENTRY at offset to a payload copy.
func (w *treeWalker) data(offset uint32) ([]byte, error) {
	if uint64(offset)+peDataEntrySize > uint64(len(w.tree)) {
		return nil, fmt.Errorf("%w: data entry at 0x%x out of bounds", ErrInvalidResourceTree, offset)
	}

	rva := binary.LittleEndian.Uint32(w.tree[offset:])
	size := binary.LittleEndian.Uint32(w.tree[offset+4:])
	if size == 0 {
		return []byte{}, nil
	}

	payload, err := w.resolve(rva, size)
	if err != nil {
		return nil, err
	}

	return bytes.Clone(payload), nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"github.com/opencontainers/go-digest"
	"github.com/woozymasta/pathrules"
)

// Internal binary layout and format limits.
const (
	tagSize          = 8    // ASCII tag + version
	tagSizeUTF16     = 16   // UTF-16LE tag + version
	headerSizeV1     = 160  // full V1.0 header, tag included
	headerSizeV2     = 0x20 // full V2.0 header, tag included
	keyRecordSizeV1  = 24   // ASCII name + id + type + reserved
	resRecordSize    = 8    // offset + size
	resRecordSizeV2  = 72   // UTF-16LE name + offset + size
	nameSizeV1       = 16   // V1.0 key list name width in bytes
	nameUnitsV2      = 32   // V2.0 name width in UTF-16 code units
	resListOffsetV2  = 0x20 // V2.0 resource list offset
	reservedHeaderV1 = 116  // V1.0 reserved header tail
)

// Tag is the 4-byte container kind.
type Tag string

// Accepted container kinds.
const (
	TagERF Tag = "ERF "
	TagMOD Tag = "MOD "
	TagHAK Tag = "HAK "
	TagSAV Tag = "SAV "
)

// Version is the 4-byte container version.
type Version string

// Supported container versions.
const (
	Version1 Version = "V1.0"
	Version2 Version = "V2.0"
)

// Entry describes one archive directory record.
type Entry struct {
	// Name is the resource name as stored, without extension.
	Name string `json:"name" yaml:"name"`
	// Type is the resource type code.
	Type FileType `json:"type" yaml:"type"`
	// Index is the directory position and the handle passed to ReadResource.
	Index uint32 `json:"index" yaml:"index"`
}

// FileName returns "name.ext" for known types and the bare name otherwise.
func (e Entry) FileName() string {
	ext := e.Type.Extension()
	if ext == "" {
		return e.Name
	}

	return e.Name + "." + ext
}

// location is the payload position of one ERF entry, index-aligned with Entry.
type location struct {
	offset uint32
	size   uint32
}

// Header stores parsed ERF header fields.
type Header struct {
	// Tag is the container kind.
	Tag Tag `json:"tag" yaml:"tag"`
	// Version is the container version.
	Version Version `json:"version" yaml:"version"`
	// UTF16 reports whether tag, version and names are UTF-16LE encoded.
	UTF16 bool `json:"utf16,omitempty" yaml:"utf16,omitempty"`
	// LangCount is the number of description strings (V1.0 only).
	LangCount uint32 `json:"lang_count,omitempty" yaml:"lang_count,omitempty"`
	// ResourceCount is the number of directory entries.
	ResourceCount uint32 `json:"resource_count" yaml:"resource_count"`
	// DescriptionOffset is the absolute description offset (V1.0 only).
	DescriptionOffset uint32 `json:"description_offset,omitempty" yaml:"description_offset,omitempty"`
	// KeyListOffset is the absolute name/type list offset (V1.0 only).
	KeyListOffset uint32 `json:"key_list_offset,omitempty" yaml:"key_list_offset,omitempty"`
	// ResListOffset is the absolute offset/size list offset.
	ResListOffset uint32 `json:"res_list_offset" yaml:"res_list_offset"`
	// BuildYear is years since 1900.
	BuildYear uint32 `json:"build_year" yaml:"build_year"`
	// BuildDay is days since January 1st.
	BuildDay uint32 `json:"build_day" yaml:"build_day"`
	// DescriptionID is the talk table string reference of the description (V1.0 only).
	DescriptionID uint32 `json:"description_id,omitempty" yaml:"description_id,omitempty"`
}

// ReaderOptions configures reader parse behavior.
type ReaderOptions struct {
	// SkipDescription leaves the V1.0 description empty instead of parsing it.
	SkipDescription bool `json:"skip_description,omitempty" yaml:"skip_description,omitempty"`
}

// EntryDigest pairs one entry with the digest of its payload.
type EntryDigest struct {
	// Digest is the sha256 content digest of the payload.
	Digest digest.Digest `json:"digest" yaml:"digest"`
	// Entry is the directory record.
	Entry Entry `json:"entry" yaml:"entry"`
	// Size is payload size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// ExtractOptions configures Extract behavior.
type ExtractOptions struct {
	// OnEntryDone is called after one entry is fully written to disk.
	OnEntryDone func(entry Entry, written int64, outputPath string) `json:"-" yaml:"-"`
	// FileMode controls output file creation policy.
	FileMode ExtractFileMode `json:"file_mode,omitempty" yaml:"file_mode,omitempty"`
	// Entries limits extraction to selected entries; nil means all archive entries.
	Entries []Entry `json:"-" yaml:"-"`
	// Rules selects entries by file name ("name.ext"); empty means no rule filtering.
	Rules []pathrules.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	// RulesMatcherOptions control rule matching.
	RulesMatcherOptions pathrules.MatcherOptions `json:"rules_matcher_options,omitzero" yaml:"rules_matcher_options,omitzero"`
	// MaxWorkers is number of extraction workers (zero means GOMAXPROCS).
	MaxWorkers int `json:"max_workers,omitempty" yaml:"max_workers,omitempty"`
	// RawNames disables default file name sanitization during extract.
	RawNames bool `json:"raw_names,omitempty" yaml:"raw_names,omitempty"`
}

// ExtractFileMode controls output file open behavior during extraction.
type ExtractFileMode string

// Output file creation policies for extraction.
const (
	// ExtractFileModeAuto first tries create-only, then falls back to truncate for existing files.
	ExtractFileModeAuto ExtractFileMode = "auto"
	// ExtractFileModeOverwriteSmart rewrites files in place and truncates only when existing file is larger.
	ExtractFileModeOverwriteSmart ExtractFileMode = "overwrite_smart"
	// ExtractFileModeTruncate opens existing files with truncate and creates missing files.
	ExtractFileModeTruncate ExtractFileMode = "truncate"
	// ExtractFileModeCreateOnly creates files only when absent and fails on existing files.
	ExtractFileModeCreateOnly ExtractFileMode = "create_only"
)

// applyDefaults fills zero-valued extract options with defaults.
func (opts *ExtractOptions) applyDefaults() {
	if opts.FileMode == "" {
		opts.FileMode = ExtractFileModeAuto
	}

	if opts.RulesMatcherOptions == (pathrules.MatcherOptions{}) {
		opts.RulesMatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		}
	}

	if opts.RulesMatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.RulesMatcherOptions.DefaultAction = pathrules.ActionExclude
	}
}

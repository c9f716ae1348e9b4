// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"encoding/binary"
	"fmt"
	"io"
	"maps"
	"slices"

	"golang.org/x/text/encoding/charmap"
)

// maxLocStringLength bounds one description string.
const maxLocStringLength = 16 * 1024 * 1024

// Language is an Aurora language identifier.
type Language uint32

// Known languages.
const (
	LanguageEnglish            Language = 0
	LanguageFrench             Language = 1
	LanguageGerman             Language = 2
	LanguageItalian            Language = 3
	LanguageSpanish            Language = 4
	LanguagePolish             Language = 5
	LanguageKorean             Language = 128
	LanguageChineseTraditional Language = 129
	LanguageChineseSimplified  Language = 130
	LanguageJapanese           Language = 131
)

// Gender selects masculine or feminine string variant.
type Gender uint32

// String variants.
const (
	GenderMale   Gender = 0
	GenderFemale Gender = 1
)

// LanguageID packs language and gender into a raw string table key.
func LanguageID(lang Language, gender Gender) uint32 {
	return uint32(lang)*2 + uint32(gender&1)
}

// LocString is a localized string table keyed by raw language id.
type LocString struct {
	// Strings maps raw language id (language*2 + gender) to UTF-8 text.
	Strings map[uint32]string `json:"strings,omitempty" yaml:"strings,omitempty"`
	// ID is the talk table string reference.
	ID uint32 `json:"id" yaml:"id"`
}

// Empty reports whether no strings are present.
func (s LocString) Empty() bool {
	return len(s.Strings) == 0
}

// Get returns string for language and gender.
func (s LocString) Get(lang Language, gender Gender) (string, bool) {
	v, ok := s.Strings[LanguageID(lang, gender)]
	return v, ok
}

// String returns the English variant when present, otherwise the string with the lowest id.
func (s LocString) String() string {
	if v, ok := s.Get(LanguageEnglish, GenderMale); ok {
		return v
	}
	if v, ok := s.Get(LanguageEnglish, GenderFemale); ok {
		return v
	}
	if len(s.Strings) == 0 {
		return ""
	}

	ids := slices.Sorted(maps.Keys(s.Strings))
	return s.Strings[ids[0]]
}

// clone returns a deep copy safe to hand to callers.
func (s LocString) clone() LocString {
	out := LocString{ID: s.ID}
	if s.Strings != nil {
		out.Strings = maps.Clone(s.Strings)
	}

	return out
}

// readLocString reads count (languageID, length, bytes) records starting at offset.
// Text is Windows-1252 on disk.
func readLocString(ra io.ReaderAt, offset int64, size int64, id uint32, count uint32) (LocString, error) {
	out := LocString{ID: id}
	if count == 0 {
		return out, nil
	}

	if offset > size {
		return out, fmt.Errorf("%w: description offset %d beyond end %d", ErrSeek, offset, size)
	}

	out.Strings = make(map[uint32]string, min(count, 16))
	decoder := charmap.Windows1252.NewDecoder()
	off := offset
	for i := uint32(0); i < count; i++ {
		var rec [8]byte
		if err := readFullAt(ra, rec[:], off); err != nil {
			return out, fmt.Errorf("read description record %d: %w", i, err)
		}
		off += int64(len(rec))

		lang := binary.LittleEndian.Uint32(rec[0:4])
		length := binary.LittleEndian.Uint32(rec[4:8])
		if length > maxLocStringLength || int64(length) > size-off {
			return out, fmt.Errorf("%w: description string %d length %d", ErrTruncated, i, length)
		}

		raw := make([]byte, length)
		if err := readFullAt(ra, raw, off); err != nil {
			return out, fmt.Errorf("read description string %d: %w", i, err)
		}
		off += int64(length)

		text, err := decoder.Bytes(trimNUL(raw))
		if err != nil {
			return out, fmt.Errorf("%w: decode description string %d: %w", ErrFormat, i, err)
		}

		out.Strings[lang] = string(text)
	}

	return out, nil
}

// trimNUL cuts string data at the first NUL byte.
func trimNUL(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}

	return b
}

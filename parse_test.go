// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"
)

// fixtureEntry describes one resource of a hand-built container.
// For V2.0 fixtures name is the full stored name including extension.
type fixtureEntry struct {
	name string
	data []byte
	typ  FileType
}

// fixtureString is one description record.
type fixtureString struct {
	text []byte
	lang uint32
}

// buildERFV1 assembles an ASCII V1.0 container:
// header, description, key list, resource list, payloads.
func buildERFV1(tag string, desc []fixtureString, entries []fixtureEntry) []byte {
	var descBlock []byte
	for _, s := range desc {
		rec := make([]byte, 8)
		binary.LittleEndian.PutUint32(rec[0:], s.lang)
		binary.LittleEndian.PutUint32(rec[4:], uint32(len(s.text)))
		descBlock = append(descBlock, rec...)
		descBlock = append(descBlock, s.text...)
	}

	descOffset := headerSizeV1
	keyOffset := descOffset + len(descBlock)
	resOffset := keyOffset + len(entries)*keyRecordSizeV1
	dataOffset := resOffset + len(entries)*resRecordSize

	out := make([]byte, dataOffset)
	copy(out[0:4], tag)
	copy(out[4:8], Version1)
	binary.LittleEndian.PutUint32(out[8:], uint32(len(desc)))
	binary.LittleEndian.PutUint32(out[12:], uint32(len(descBlock)))
	binary.LittleEndian.PutUint32(out[16:], uint32(len(entries)))
	binary.LittleEndian.PutUint32(out[20:], uint32(descOffset))
	binary.LittleEndian.PutUint32(out[24:], uint32(keyOffset))
	binary.LittleEndian.PutUint32(out[28:], uint32(resOffset))
	binary.LittleEndian.PutUint32(out[32:], 103)
	binary.LittleEndian.PutUint32(out[36:], 41)
	binary.LittleEndian.PutUint32(out[40:], 0xFFFFFFFF)
	copy(out[descOffset:], descBlock)

	offset := dataOffset
	for i, e := range entries {
		key := out[keyOffset+i*keyRecordSizeV1:]
		copy(key[:nameSizeV1], e.name)
		binary.LittleEndian.PutUint32(key[16:], uint32(i))
		binary.LittleEndian.PutUint16(key[20:], uint16(e.typ))

		res := out[resOffset+i*resRecordSize:]
		binary.LittleEndian.PutUint32(res[0:], uint32(offset))
		binary.LittleEndian.PutUint32(res[4:], uint32(len(e.data)))
		offset += len(e.data)
	}

	for _, e := range entries {
		out = append(out, e.data...)
	}

	return out
}

// buildERFV2 assembles a UTF-16LE V2.0 container: header, resource list, payloads.
func buildERFV2(tag string, entries []fixtureEntry) []byte {
	dataOffset := resListOffsetV2 + len(entries)*resRecordSizeV2

	out := make([]byte, dataOffset)
	copy(out[0:tagSizeUTF16], utf16LE(tag+string(Version2)))
	binary.LittleEndian.PutUint32(out[16:], uint32(len(entries)))
	binary.LittleEndian.PutUint32(out[20:], 107)
	binary.LittleEndian.PutUint32(out[24:], 200)
	binary.LittleEndian.PutUint32(out[28:], 0xFFFFFFFF)

	offset := dataOffset
	for i, e := range entries {
		rec := out[resListOffsetV2+i*resRecordSizeV2:]
		copy(rec[:nameUnitsV2*2], utf16LE(e.name))
		binary.LittleEndian.PutUint32(rec[nameUnitsV2*2:], uint32(offset))
		binary.LittleEndian.PutUint32(rec[nameUnitsV2*2+4:], uint32(len(e.data)))
		offset += len(e.data)
	}

	for _, e := range entries {
		out = append(out, e.data...)
	}

	return out
}

// utf16LE encodes s as UTF-16LE without terminator.
func utf16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[i*2:], u)
	}

	return out
}

// writeFixture stores data in a temp file and returns its path.
func writeFixture(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	return path
}

// twoEntryModV1 is a MOD V1.0 fixture with two UTC creatures.
func twoEntryModV1() []byte {
	return buildERFV1("MOD ", nil, []fixtureEntry{
		{name: "a", typ: FileTypeUTC, data: []byte{0x01, 0x02, 0x03}},
		{name: "b", typ: FileTypeUTC, data: []byte{0x04, 0x05}},
	})
}

func TestFixtureV1Layout(t *testing.T) {
	t.Parallel()

	data := twoEntryModV1()
	if got, want := len(data), headerSizeV1+2*keyRecordSizeV1+2*resRecordSize+5; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	if string(data[:8]) != "MOD V1.0" {
		t.Fatalf("tag=%q, want %q", data[:8], "MOD V1.0")
	}
}

func TestFixtureV2Layout(t *testing.T) {
	t.Parallel()

	data := buildERFV2("ERF ", []fixtureEntry{{name: "icon.tga", data: []byte("x")}})
	if got, want := len(data), resListOffsetV2+resRecordSizeV2+1; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	if !isUTF16Tag(data) {
		t.Fatal("V2 fixture tag is not UTF-16LE")
	}
}

// writeOver replaces the content of an existing fixture.
func writeOver(t *testing.T, path string, data []byte) {
	t.Helper()

	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

// decodeFixedASCII decodes a zero-padded fixed-width name field.
// Bytes after the first NUL are ignored.
func decodeFixedASCII(b []byte) string {
	if idx := bytes.IndexByte(b, 0); idx >= 0 {
		b = b[:idx]
	}

	return string(b)
}

// decodeFixedUTF16LE decodes a zero-padded fixed-width UTF-16LE field.
// Unpaired surrogates are rejected instead of being replaced.
func decodeFixedUTF16LE(b []byte) (string, error) {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i:])
		if u == 0 {
			break
		}

		units = append(units, u)
	}

	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return "", fmt.Errorf("unpaired high surrogate 0x%04X at unit %d", u, i)
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return "", fmt.Errorf("unpaired low surrogate 0x%04X at unit %d", u, i)
		}
	}

	return string(utf16.Decode(units)), nil
}

// isUTF16Tag reports whether an 8-byte header prefix looks like UTF-16LE text
// ("E\0R\0F\0 \0").
func isUTF16Tag(b []byte) bool {
	return len(b) >= 4 && b[1] == 0 && b[3] == 0
}

// narrowUTF16Tag drops the high bytes of a UTF-16LE tag+version block.
func narrowUTF16Tag(b []byte) []byte {
	out := make([]byte, len(b)/2)
	for i := range out {
		out[i] = b[i*2]
	}

	return out
}

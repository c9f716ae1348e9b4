// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"path"
	"strings"
)

// NormalizeName converts a user supplied resource name or file name to lookup form.
// It trims spaces, accepts both "/" and "\", and keeps only the last path segment,
// since Aurora archives are flat.
func NormalizeName(raw string) string {
	raw = normalizePathForMatching(raw)
	if raw == "" {
		return ""
	}

	base := path.Base(raw)
	if base == "." || base == "/" {
		return ""
	}

	return base
}

// normalizePathForMatching normalizes user/input paths for matcher use.
func normalizePathForMatching(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, `\`, `/`)
	p = strings.TrimPrefix(p, "./")
	return p
}

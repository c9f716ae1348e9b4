// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/aurora

package aurora

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific sentinel below wraps exactly one of them,
// so callers can match either the kind or the exact cause with errors.Is.
var (
	// ErrFormat means archive or resource data does not follow the expected binary format.
	ErrFormat = errors.New("invalid format")
	// ErrIO means the underlying source could not be read or positioned.
	ErrIO = errors.New("i/o failure")
	// ErrIndexOutOfRange means resource index is outside of the archive directory.
	ErrIndexOutOfRange = errors.New("resource index out of range")
	// ErrNotFound means a referenced resource does not exist in its store.
	ErrNotFound = errors.New("resource not found")
)

// Sentinel errors for archive operations. Use errors.Is in callers.
var (
	// ErrNotContainer means the leading tag is not one of the accepted container kinds.
	ErrNotContainer = fmt.Errorf("%w: not a recognized container", ErrFormat)
	// ErrUnsupportedVersion means the version tag is neither V1.0 nor V2.0.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrFormat)
	// ErrInconsistentEncoding means a V2.0 archive header is not UTF-16LE encoded.
	ErrInconsistentEncoding = fmt.Errorf("%w: inconsistent encoding", ErrFormat)
	// ErrInvalidName means an entry name could not be decoded.
	ErrInvalidName = fmt.Errorf("%w: invalid entry name", ErrFormat)
	// ErrNonIntegerResource means a PE resource is identified by name instead of integer id.
	ErrNonIntegerResource = fmt.Errorf("%w: non-integer resource identifier", ErrFormat)
	// ErrInvalidResourceTree means PE resource directory tree is malformed.
	ErrInvalidResourceTree = fmt.Errorf("%w: malformed resource directory", ErrFormat)
	// ErrSeek means a recorded offset points beyond the end of the source.
	ErrSeek = fmt.Errorf("%w: seek failed", ErrIO)
	// ErrTruncated means fewer bytes were available than the recorded size.
	ErrTruncated = fmt.Errorf("%w: truncated read", ErrIO)
	// ErrNilReader means the reader or resource store is nil.
	ErrNilReader = errors.New("reader is nil")
	// ErrInvalidExtractPath means entry file name is invalid for extraction destination.
	ErrInvalidExtractPath = errors.New("invalid extract path")
	// ErrInvalidRules means one or more selection rules are invalid.
	ErrInvalidRules = errors.New("invalid selection rules")
)

// errReadContainer is the boundary context added to every load-time read failure.
const errReadContainer = "failed reading container"

// Copyright 2026 Lattice ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serialization provides the public API for reading and writing
// argument collections in the native .latt format.
//
// Example:
//
//	w, err := serialization.NewWriter("result.latt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//	err = w.WriteCollection("pooling.maxForwardResult",
//	    fwd.Result().Args(), pooling.EntryNames, nil)
package serialization

import (
	"github.com/lattice-ml/lattice/internal/serialization"
)

// Type aliases for public API

// Writer writes argument collections in .latt format.
type Writer = serialization.Writer

// Reader reads argument collections from .latt format.
type Reader = serialization.Reader

// ReaderOptions configures a Reader.
type ReaderOptions = serialization.ReaderOptions

// Header is the parsed JSON header of a .latt file.
type Header = serialization.Header

// EntryMeta describes one argument entry.
type EntryMeta = serialization.EntryMeta

// Common errors.
var (
	ErrInvalidMagic     = serialization.ErrInvalidMagic
	ErrVersionMismatch  = serialization.ErrVersionMismatch
	ErrChecksumMismatch = serialization.ErrChecksumMismatch
)

// NewWriter creates a new .latt file writer.
func NewWriter(path string) (*Writer, error) {
	return serialization.NewWriter(path)
}

// NewReader creates a new .latt file reader with checksum validation
// enabled.
func NewReader(path string) (*Reader, error) {
	return serialization.NewReader(path)
}

// NewReaderWithOptions creates a new .latt file reader with custom
// options.
func NewReaderWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	return serialization.NewReaderWithOptions(path, opts)
}

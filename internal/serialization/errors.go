package serialization

import "errors"

// Common errors.
var (
	ErrInvalidMagic     = errors.New("invalid magic bytes")
	ErrVersionMismatch  = errors.New("format version mismatch")
	ErrChecksumMismatch = errors.New("checksum mismatch: file may be corrupted")
	ErrHeaderTooLarge   = errors.New("header exceeds maximum size")
	ErrOutOfBounds      = errors.New("entry extends beyond data section")
	ErrDuplicateEntry   = errors.New("duplicate entry id")
)

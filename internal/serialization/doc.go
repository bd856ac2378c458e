// Package serialization provides the native .latt binary format for
// persisting argument collections (inputs and results) to disk.
//
//	Format Structure:
//	  [0x00] 4  bytes: Magic "LATT"
//	  [0x04] 4  bytes: Version (uint32 LE)
//	  [0x08] 4  bytes: Flags (uint32 LE)
//	  [0x0C] 4  bytes: Reserved (zero)
//	  [0x10] 8  bytes: Header Size (uint64 LE)
//	  [0x18] 8  bytes: Data Size (uint64 LE)
//	  [0x20] 32 bytes: SHA-256 of everything after the fixed header
//	  [0x40] Header: JSON metadata
//	  [...]  Tensor data: raw bytes, 64-byte aligned
//
// Entries are written in ascending argument id order and carry both the
// numeric id and a symbolic name, so a round trip restores a collection
// bit-identically and stays readable across releases.
package serialization

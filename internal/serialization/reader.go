package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

const maxHeaderSize = 100 * 1024 * 1024

// Reader reads argument collections from .latt format.
type Reader struct {
	file       *os.File
	header     Header
	dataOffset int64
	dataSize   int64
	checksum   [32]byte
	opts       ReaderOptions
	closed     bool
}

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool
}

// NewReader creates a new .latt file reader with checksum validation
// enabled.
func NewReader(path string) (*Reader, error) {
	return NewReaderWithOptions(path, ReaderOptions{})
}

// NewReaderWithOptions creates a new .latt file reader with custom
// options.
func NewReaderWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r := &Reader{file: file, opts: opts}
	if err := r.parseHeader(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	if !opts.SkipChecksumValidation {
		if err := r.validateChecksum(); err != nil {
			_ = file.Close()
			return nil, err
		}
	}
	return r, nil
}

func (r *Reader) parseHeader() error {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r.file, fixed); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixed[:4]) != MagicBytes {
		return ErrInvalidMagic
	}
	if v := binary.LittleEndian.Uint32(fixed[0x04:]); v != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrVersionMismatch, v, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixed[0x10:])
	if headerSize > maxHeaderSize {
		return ErrHeaderTooLarge
	}
	r.dataSize = int64(binary.LittleEndian.Uint64(fixed[0x18:]))
	copy(r.checksum[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r.file, headerBytes); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	r.dataOffset = align(FixedHeaderSize+int64(headerSize), DataAlignment)

	seen := make(map[int]bool, len(r.header.Entries))
	for _, e := range r.header.Entries {
		if seen[e.ID] {
			return fmt.Errorf("%w: id %d", ErrDuplicateEntry, e.ID)
		}
		seen[e.ID] = true
		if e.Offset < 0 || e.Size < 0 || e.Offset+e.Size > r.dataSize {
			return fmt.Errorf("%w: entry %q", ErrOutOfBounds, e.Name)
		}
	}
	return nil
}

// validateChecksum hashes everything after the fixed header and compares
// it against the stored checksum.
func (r *Reader) validateChecksum() error {
	if _, err := r.file.Seek(FixedHeaderSize, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	computed, err := ComputeChecksumReader(r.file)
	if err != nil {
		return fmt.Errorf("failed to compute checksum: %w", err)
	}
	return ValidateChecksum(computed, r.checksum)
}

// Header returns the parsed JSON header.
func (r *Reader) Header() Header {
	return r.header
}

// ReadEntries reads every entry into freshly allocated tensors, keyed by
// argument id.
func (r *Reader) ReadEntries() (map[compute.ArgumentID]*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	entries := make(map[compute.ArgumentID]*tensor.RawTensor, len(r.header.Entries))
	for _, e := range r.header.Entries {
		dt, ok := stringToDtype(e.DType)
		if !ok {
			return nil, fmt.Errorf("entry %q: unknown dtype %q", e.Name, e.DType)
		}
		raw, err := tensor.NewRaw(tensor.Shape(e.Shape), dt)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
		if int64(raw.ByteSize()) != e.Size {
			return nil, fmt.Errorf("entry %q: size %d does not match shape %v of %s", e.Name, e.Size, e.Shape, e.DType)
		}
		if _, err := r.file.ReadAt(raw.Data(), r.dataOffset+e.Offset); err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
		entries[compute.ArgumentID(e.ID)] = raw
	}
	return entries, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

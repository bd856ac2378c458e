package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lattice-ml/lattice/internal/compute"
)

const latticeVersion = "0.1.0"

// Writer writes argument collections in .latt format.
type Writer struct {
	file   *os.File
	closed bool
}

// NewWriter creates a new .latt file writer.
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &Writer{file: file}, nil
}

// WriteCollection writes all stored entries of a collection. names maps
// argument ids to the symbolic names recorded in the header; ids without
// a name entry get "entry.<id>". Entries are laid out in ascending id
// order.
func (w *Writer) WriteCollection(objectType string, c *compute.Collection, names map[compute.ArgumentID]string, metadata map[string]string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	header := Header{
		FormatVersion:  FormatVersion,
		LatticeVersion: latticeVersion,
		ObjectType:     objectType,
		CreatedAt:      time.Now().UTC(),
		Metadata:       metadata,
	}

	ids := c.IDs()
	var currentOffset int64
	for _, id := range ids {
		raw, err := c.Get(id)
		if err != nil {
			return err
		}
		name, ok := names[id]
		if !ok {
			name = fmt.Sprintf("entry.%d", id)
		}
		size := int64(raw.ByteSize())
		header.Entries = append(header.Entries, EntryMeta{
			ID:     int(id),
			Name:   name,
			DType:  dtypeToString(raw.DType()),
			Shape:  []int(raw.Shape()),
			Offset: currentOffset,
			Size:   size,
		})
		currentOffset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	// Assemble the variable section (header JSON, padding, payload) in
	// memory; the checksum in the fixed header covers it in full.
	padded := int(align(int64(FixedHeaderSize+len(headerJSON)), DataAlignment)) - FixedHeaderSize
	body := make([]byte, padded, padded+int(currentOffset))
	copy(body, headerJSON)
	for _, id := range ids {
		raw, err := c.Get(id)
		if err != nil {
			return err
		}
		body = append(body, raw.Data()...)
	}

	fixed := make([]byte, FixedHeaderSize)
	copy(fixed, MagicBytes)
	binary.LittleEndian.PutUint32(fixed[0x04:], FormatVersion)
	binary.LittleEndian.PutUint32(fixed[0x08:], 0) // flags
	binary.LittleEndian.PutUint64(fixed[0x10:], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[0x18:], uint64(currentOffset))
	sum := ComputeChecksum(body)
	copy(fixed[ChecksumOffset:], sum[:])

	if _, err := w.file.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.file.Write(body); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// align rounds n up to the next multiple of a.
func align(n, a int64) int64 {
	return (n + a - 1) / a * a
}

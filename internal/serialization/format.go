package serialization

import (
	"time"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "LATT"
	FormatVersion   = 1
	FixedHeaderSize = 64   // 0x40 bytes
	DataAlignment   = 64   // Align tensor data to 64 bytes
	ChecksumSize    = 32   // SHA-256
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
)

// Data type string constants for serialization.
const (
	DTypeFloat32 = "float32"
	DTypeFloat64 = "float64"
	DTypeInt64   = "int64"
)

// Header is the JSON header of a .latt file.
type Header struct {
	FormatVersion  int               `json:"format_version"`
	LatticeVersion string            `json:"lattice_version"`
	ObjectType     string            `json:"object_type"` // e.g. "pooling.maxForwardResult"
	CreatedAt      time.Time         `json:"created_at"`
	Entries        []EntryMeta       `json:"entries"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// EntryMeta describes one argument entry in a .latt file.
type EntryMeta struct {
	ID     int    `json:"id"`     // Argument id within the collection
	Name   string `json:"name"`   // Symbolic name (e.g. "auxSelectedIndices")
	DType  string `json:"dtype"`  // Element type
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Bytes from the start of the data section
	Size   int64  `json:"size"`   // Size in bytes
}

func dtypeToString(dt tensor.DataType) string {
	switch dt {
	case tensor.Float32:
		return DTypeFloat32
	case tensor.Float64:
		return DTypeFloat64
	case tensor.Int64:
		return DTypeInt64
	default:
		return "unknown"
	}
}

func stringToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case DTypeFloat32:
		return tensor.Float32, true
	case DTypeFloat64:
		return tensor.Float64, true
	case DTypeInt64:
		return tensor.Int64, true
	default:
		return 0, false
	}
}

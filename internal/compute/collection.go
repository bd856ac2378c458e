package compute

import (
	"fmt"
	"sort"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// ArgumentID is a stable small-integer identifier for an argument slot in
// an Input or Result collection. Ids are fixed per algorithm family and
// never renumbered; see the package documentation.
type ArgumentID int

// Collection is an ordered mapping from argument ids to tensors. The set
// of valid ids is closed at construction; Get and Put with an id outside
// that set fail with ErrUnsupportedIdentifier and leave the collection
// unchanged. Iteration order is ascending id.
type Collection struct {
	valid   map[ArgumentID]struct{}
	entries map[ArgumentID]*tensor.RawTensor
}

// NewCollection creates a collection accepting exactly the given ids.
func NewCollection(ids ...ArgumentID) *Collection {
	valid := make(map[ArgumentID]struct{}, len(ids))
	for _, id := range ids {
		valid[id] = struct{}{}
	}
	return &Collection{
		valid:   valid,
		entries: make(map[ArgumentID]*tensor.RawTensor, len(ids)),
	}
}

// Put stores a tensor under id, overwriting any prior value.
func (c *Collection) Put(id ArgumentID, t *tensor.RawTensor) error {
	if _, ok := c.valid[id]; !ok {
		return fmt.Errorf("%w: id %d", ErrUnsupportedIdentifier, id)
	}
	c.entries[id] = t
	return nil
}

// Get returns the tensor stored under id.
func (c *Collection) Get(id ArgumentID) (*tensor.RawTensor, error) {
	if _, ok := c.valid[id]; !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnsupportedIdentifier, id)
	}
	t, ok := c.entries[id]
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotSet, id)
	}
	return t, nil
}

// Has reports whether a tensor is stored under id.
func (c *Collection) Has(id ArgumentID) bool {
	t, ok := c.entries[id]
	return ok && t != nil
}

// Len returns the number of stored entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// IDs returns the ids of all stored entries in ascending order.
func (c *Collection) IDs() []ArgumentID {
	ids := make([]ArgumentID, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a new collection with independent entry slots whose
// tensors share the underlying buffers (reference-counted, no data copy).
func (c *Collection) Clone() *Collection {
	valid := make(map[ArgumentID]struct{}, len(c.valid))
	for id := range c.valid {
		valid[id] = struct{}{}
	}
	entries := make(map[ArgumentID]*tensor.RawTensor, len(c.entries))
	for id, t := range c.entries {
		if t != nil {
			entries[id] = t.Clone()
		}
	}
	return &Collection{valid: valid, entries: entries}
}

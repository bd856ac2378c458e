package layers

import (
	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Argument ids shared by every layer family. The values are part of the
// public contract and are never renumbered; family-specific auxiliary
// ids start after the shared ones.
const (
	// DataID identifies the input tensor of a forward pass.
	DataID compute.ArgumentID = 0

	// ValueID identifies the value tensor of a forward result.
	ValueID compute.ArgumentID = 0
)

// ForwardInput holds the argument tensors of a forward pass.
type ForwardInput struct {
	args *compute.Collection
}

// MakeForwardInput creates a forward input accepting DataID plus any
// family-specific extra ids. Layer families embed the returned value.
func MakeForwardInput(extra ...compute.ArgumentID) ForwardInput {
	ids := append([]compute.ArgumentID{DataID}, extra...)
	return ForwardInput{args: compute.NewCollection(ids...)}
}

// SetData stores the layer input tensor.
func (in *ForwardInput) SetData(t *tensor.RawTensor) error {
	return in.args.Put(DataID, t)
}

// Data returns the layer input tensor.
func (in *ForwardInput) Data() (*tensor.RawTensor, error) {
	return in.args.Get(DataID)
}

// Args exposes the underlying argument collection.
func (in *ForwardInput) Args() *compute.Collection {
	return in.args
}

// CloneInto copies the wrapper into dst, sharing tensor buffers.
func (in *ForwardInput) CloneInto(dst *ForwardInput) {
	dst.args = in.args.Clone()
}

// ForwardResult holds the value tensor of a forward pass plus the layer
// data entries the matching backward pass will consume.
type ForwardResult struct {
	args      *compute.Collection
	allocated bool
}

// MakeForwardResult creates a forward result accepting ValueID plus the
// family's layer data ids. Layer families embed the returned value.
func MakeForwardResult(aux ...compute.ArgumentID) ForwardResult {
	ids := append([]compute.ArgumentID{ValueID}, aux...)
	return ForwardResult{args: compute.NewCollection(ids...)}
}

// SetValue stores the value tensor.
func (r *ForwardResult) SetValue(t *tensor.RawTensor) error {
	return r.args.Put(ValueID, t)
}

// Value returns the value tensor.
func (r *ForwardResult) Value() (*tensor.RawTensor, error) {
	return r.args.Get(ValueID)
}

// Put stores a layer data tensor under id.
func (r *ForwardResult) Put(id compute.ArgumentID, t *tensor.RawTensor) error {
	return r.args.Put(id, t)
}

// Get returns the layer data tensor stored under id.
func (r *ForwardResult) Get(id compute.ArgumentID) (*tensor.RawTensor, error) {
	return r.args.Get(id)
}

// Args exposes the underlying argument collection.
func (r *ForwardResult) Args() *compute.Collection {
	return r.args
}

// Allocated reports whether output storage is in place.
func (r *ForwardResult) Allocated() bool {
	return r.allocated
}

// MarkAllocated records that output storage is in place. Families call
// this at the end of a successful Allocate; user code calls it when
// registering externally managed buffers.
func (r *ForwardResult) MarkAllocated() {
	r.allocated = true
}

// CloneInto copies the wrapper into dst, sharing tensor buffers.
func (r *ForwardResult) CloneInto(dst *ForwardResult) {
	dst.args = r.args.Clone()
	dst.allocated = r.allocated
}

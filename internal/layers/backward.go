package layers

import (
	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Backward-pass argument ids shared by every layer family.
const (
	// InputGradientID identifies the upstream gradient tensor of a
	// backward pass (same shape as the matching forward value).
	InputGradientID compute.ArgumentID = 0

	// GradientID identifies the gradient tensor of a backward result
	// (same shape as the original forward input).
	GradientID compute.ArgumentID = 0
)

// BackwardInput holds the upstream gradient plus the layer data saved by
// the matching forward pass.
type BackwardInput struct {
	args *compute.Collection
}

// MakeBackwardInput creates a backward input accepting InputGradientID
// plus the family's layer data ids. Layer families embed the returned
// value.
func MakeBackwardInput(aux ...compute.ArgumentID) BackwardInput {
	ids := append([]compute.ArgumentID{InputGradientID}, aux...)
	return BackwardInput{args: compute.NewCollection(ids...)}
}

// SetInputGradient stores the upstream gradient tensor.
func (in *BackwardInput) SetInputGradient(t *tensor.RawTensor) error {
	return in.args.Put(InputGradientID, t)
}

// InputGradient returns the upstream gradient tensor.
func (in *BackwardInput) InputGradient() (*tensor.RawTensor, error) {
	return in.args.Get(InputGradientID)
}

// Put stores a layer data tensor under id. Callers typically copy these
// entries over from the forward result.
func (in *BackwardInput) Put(id compute.ArgumentID, t *tensor.RawTensor) error {
	return in.args.Put(id, t)
}

// Get returns the layer data tensor stored under id.
func (in *BackwardInput) Get(id compute.ArgumentID) (*tensor.RawTensor, error) {
	return in.args.Get(id)
}

// Args exposes the underlying argument collection.
func (in *BackwardInput) Args() *compute.Collection {
	return in.args
}

// CloneInto copies the wrapper into dst, sharing tensor buffers.
func (in *BackwardInput) CloneInto(dst *BackwardInput) {
	dst.args = in.args.Clone()
}

// BackwardResult holds the gradient tensor of a backward pass.
type BackwardResult struct {
	args      *compute.Collection
	allocated bool
}

// MakeBackwardResult creates an empty backward result. Layer families
// embed the returned value.
func MakeBackwardResult() BackwardResult {
	return BackwardResult{args: compute.NewCollection(GradientID)}
}

// SetGradient stores the gradient tensor.
func (r *BackwardResult) SetGradient(t *tensor.RawTensor) error {
	return r.args.Put(GradientID, t)
}

// Gradient returns the gradient tensor.
func (r *BackwardResult) Gradient() (*tensor.RawTensor, error) {
	return r.args.Get(GradientID)
}

// Args exposes the underlying argument collection.
func (r *BackwardResult) Args() *compute.Collection {
	return r.args
}

// Allocated reports whether output storage is in place.
func (r *BackwardResult) Allocated() bool {
	return r.allocated
}

// MarkAllocated records that output storage is in place.
func (r *BackwardResult) MarkAllocated() {
	r.allocated = true
}

// CloneInto copies the wrapper into dst, sharing tensor buffers.
func (r *BackwardResult) CloneInto(dst *BackwardResult) {
	dst.args = r.args.Clone()
	dst.allocated = r.allocated
}

package pooling

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/layers"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// BackwardInput holds the upstream gradient plus the auxiliary data
// recorded by the matching forward pass.
type BackwardInput struct {
	layers.BackwardInput
	kind kind
}

func newBackwardInput(k kind) *BackwardInput {
	if k == maxKind {
		return &BackwardInput{
			BackwardInput: layers.MakeBackwardInput(AuxSelectedIndicesID, AuxInputDimensionsID),
			kind:          k,
		}
	}
	return &BackwardInput{
		BackwardInput: layers.MakeBackwardInput(AuxInputDimensionsID),
		kind:          k,
	}
}

// SetLayerData copies the auxiliary entries of a forward result into
// this input, sharing the underlying tensors.
func (in *BackwardInput) SetLayerData(fr *ForwardResult) error {
	dims, err := fr.InputDimensions()
	if err != nil {
		return err
	}
	if err := in.Put(AuxInputDimensionsID, dims); err != nil {
		return err
	}
	if in.kind == maxKind {
		sel, err := fr.SelectedIndices()
		if err != nil {
			return err
		}
		if err := in.Put(AuxSelectedIndicesID, sel); err != nil {
			return err
		}
	}
	return nil
}

// inputShape reconstructs the original (pre-pooling) shape from the
// auxInputDimensions entry.
func (in *BackwardInput) inputShape() (tensor.Shape, error) {
	dims, err := in.Get(AuxInputDimensionsID)
	if err != nil {
		return nil, err
	}
	if len(dims.Shape()) != 1 {
		return nil, fmt.Errorf("%w: auxInputDimensions must be 1-D, got %v", compute.ErrInvalidInput, dims.Shape())
	}
	values := dims.AsInt64()
	shape := make(tensor.Shape, len(values))
	for i, v := range values {
		shape[i] = int(v)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: auxInputDimensions: %v", compute.ErrInvalidInput, err)
	}
	return shape, nil
}

// Check validates the upstream gradient against the shape the forward
// pass recorded. Missing auxiliary data and shape mismatches are invalid
// input; all violations are reported together.
func (in *BackwardInput) Check(par compute.Parameter, _ compute.Method) error {
	ve := &compute.ValidationError{Err: compute.ErrInvalidInput}

	p, ok := par.(*Parameter)
	if !ok {
		ve.Add("parameter", "expected pooling parameter, got %T", par)
		return ve
	}

	grad, err := in.InputGradient()
	if err != nil {
		ve.Add("inputGradient", "required tensor is not set")
	} else if dt := grad.DType(); dt != tensor.Float32 && dt != tensor.Float64 {
		ve.Add("inputGradient", "dtype must be float32 or float64, got %s", dt)
	}

	srcShape, err := in.inputShape()
	if err != nil {
		ve.Add("auxInputDimensions", "required auxiliary data is missing or malformed: %v", err)
		return ve.ErrOrNil()
	}

	expected, err := p.OutputShape(srcShape)
	if err != nil {
		ve.Add("auxInputDimensions", "%v", err)
		return ve.ErrOrNil()
	}
	if grad != nil && !grad.Shape().Equal(expected) {
		ve.Add("inputGradient", "shape %v does not match the forward output shape %v", grad.Shape(), expected)
	}

	if in.kind == maxKind {
		sel, err := in.Get(AuxSelectedIndicesID)
		if err != nil {
			ve.Add("auxSelectedIndices", "required auxiliary data is not set")
		} else {
			if sel.DType() != tensor.Int64 {
				ve.Add("auxSelectedIndices", "dtype must be int64, got %s", sel.DType())
			}
			if !sel.Shape().Equal(expected) {
				ve.Add("auxSelectedIndices", "shape %v does not match the forward output shape %v", sel.Shape(), expected)
			}
		}
	}

	return ve.ErrOrNil()
}

// BackwardResult holds the gradient tensor of a backward pooling pass.
type BackwardResult struct {
	layers.BackwardResult
}

func newBackwardResult() *BackwardResult {
	return &BackwardResult{BackwardResult: layers.MakeBackwardResult()}
}

// Allocate allocates a zero-initialized gradient tensor of the original
// input shape recorded in auxInputDimensions.
func (r *BackwardResult) Allocate(in compute.Input, _ compute.Parameter, _ compute.Method) error {
	bin, ok := in.(*BackwardInput)
	if !ok {
		return fmt.Errorf("%w: expected pooling backward input, got %T", compute.ErrInvalidInput, in)
	}

	srcShape, err := bin.inputShape()
	if err != nil {
		return err
	}
	grad, err := bin.InputGradient()
	if err != nil {
		return err
	}

	out, err := tensor.NewRaw(srcShape, grad.DType())
	if err != nil {
		return err
	}
	if err := r.SetGradient(out); err != nil {
		return err
	}
	r.MarkAllocated()
	return nil
}

// BackwardBatch orchestrates one backward pooling pass.
type BackwardBatch struct {
	batch  *compute.Batch
	kind   kind
	par    *Parameter
	env    compute.Env
	input  *BackwardInput
	result *BackwardResult
}

// NewMaxBackward creates a backward max-pooling batch. The parameter
// must match the one used by the forward pass.
func NewMaxBackward(par *Parameter, dt tensor.DataType, env compute.Env) *BackwardBatch {
	return newBackward(maxKind, par, dt, env)
}

// NewAvgBackward creates a backward average-pooling batch.
func NewAvgBackward(par *Parameter, dt tensor.DataType, env compute.Env) *BackwardBatch {
	return newBackward(avgKind, par, dt, env)
}

func newBackward(k kind, par *Parameter, dt tensor.DataType, env compute.Env) *BackwardBatch {
	b := &BackwardBatch{
		kind:   k,
		par:    par,
		env:    env,
		input:  newBackwardInput(k),
		result: newBackwardResult(),
	}
	b.batch = compute.NewBatch(DefaultDense, dt, newBackwardContainer(env, k), b.input, par, b.result)
	return b
}

// Input returns the batch's input object.
func (b *BackwardBatch) Input() *BackwardInput {
	return b.input
}

// Parameter returns the batch's parameter record.
func (b *BackwardBatch) Parameter() *Parameter {
	return b.par
}

// Result returns the batch's result object.
func (b *BackwardBatch) Result() *BackwardResult {
	return b.result
}

// SetResult registers an externally managed result. An allocated result
// is reused by Compute without reallocation.
func (b *BackwardBatch) SetResult(res *BackwardResult) error {
	if res == nil {
		return compute.ErrNullResult
	}
	b.result = res
	b.batch.SetResult(res)
	return nil
}

// Compute runs check, allocation and the bound kernel, in that order.
func (b *BackwardBatch) Compute() error {
	return b.batch.Compute()
}

// Clone produces an independent batch sharing tensor buffers with the
// original.
func (b *BackwardBatch) Clone() *BackwardBatch {
	clone := newBackward(b.kind, b.par.clone(), b.batch.DataType(), b.env)
	b.input.CloneInto(&clone.input.BackwardInput)
	b.result.CloneInto(&clone.result.BackwardResult)
	return clone
}

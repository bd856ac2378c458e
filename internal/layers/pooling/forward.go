package pooling

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/layers"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// kind distinguishes the two pooling families sharing this package.
type kind int

const (
	maxKind kind = iota
	avgKind
)

// ForwardInput holds the input tensor of a forward pooling pass.
type ForwardInput struct {
	layers.ForwardInput
}

func newForwardInput() *ForwardInput {
	return &ForwardInput{ForwardInput: layers.MakeForwardInput()}
}

// Check validates the input against the parameter. It is pure and
// idempotent; all violations are reported together.
func (in *ForwardInput) Check(par compute.Parameter, _ compute.Method) error {
	ve := &compute.ValidationError{Err: compute.ErrInvalidInput}

	p, ok := par.(*Parameter)
	if !ok {
		ve.Add("parameter", "expected pooling parameter, got %T", par)
		return ve
	}

	data, err := in.Data()
	if err != nil {
		ve.Add("data", "required tensor is not set")
		return ve
	}

	if dt := data.DType(); dt != tensor.Float32 && dt != tensor.Float64 {
		ve.Add("data", "dtype must be float32 or float64, got %s", dt)
	}
	for _, d := range p.Dimensions {
		if d >= len(data.Shape()) {
			ve.Add("data", "pooled dimension %d outside input rank %d", d, len(data.Shape()))
		}
	}
	if len(ve.Violations) == 0 {
		if _, err := p.OutputShape(data.Shape()); err != nil {
			ve.Add("data", "%v", err)
		}
	}

	return ve.ErrOrNil()
}

// ForwardResult holds the pooled value tensor plus the auxiliary layer
// data the backward pass needs.
type ForwardResult struct {
	layers.ForwardResult
	kind kind
}

func newForwardResult(k kind) *ForwardResult {
	if k == maxKind {
		return &ForwardResult{
			ForwardResult: layers.MakeForwardResult(AuxSelectedIndicesID, AuxInputDimensionsID),
			kind:          k,
		}
	}
	return &ForwardResult{
		ForwardResult: layers.MakeForwardResult(AuxInputDimensionsID),
		kind:          k,
	}
}

// SelectedIndices returns the auxSelectedIndices tensor (max pooling).
func (r *ForwardResult) SelectedIndices() (*tensor.RawTensor, error) {
	return r.Get(AuxSelectedIndicesID)
}

// InputDimensions returns the auxInputDimensions tensor.
func (r *ForwardResult) InputDimensions() (*tensor.RawTensor, error) {
	return r.Get(AuxInputDimensionsID)
}

// Allocate computes the output shape from the input shape and the
// parameter, then allocates zero-initialized value and auxiliary
// tensors. Deterministic: identical (input shape, parameter, method)
// always yield identical output shapes.
func (r *ForwardResult) Allocate(in compute.Input, par compute.Parameter, _ compute.Method) error {
	fin, ok := in.(*ForwardInput)
	if !ok {
		return fmt.Errorf("%w: expected pooling forward input, got %T", compute.ErrInvalidInput, in)
	}
	p, ok := par.(*Parameter)
	if !ok {
		return fmt.Errorf("%w: expected pooling parameter, got %T", compute.ErrInvalidInput, par)
	}

	data, err := fin.Data()
	if err != nil {
		return err
	}
	outShape, err := p.OutputShape(data.Shape())
	if err != nil {
		return err
	}

	value, err := tensor.NewRaw(outShape, data.DType())
	if err != nil {
		return err
	}
	if err := r.SetValue(value); err != nil {
		return err
	}

	if r.kind == maxKind {
		sel, err := tensor.NewRaw(outShape, tensor.Int64)
		if err != nil {
			return err
		}
		if err := r.Put(AuxSelectedIndicesID, sel); err != nil {
			return err
		}
	}

	dims, err := tensor.NewRaw(tensor.Shape{len(data.Shape())}, tensor.Int64)
	if err != nil {
		return err
	}
	if err := r.Put(AuxInputDimensionsID, dims); err != nil {
		return err
	}

	r.MarkAllocated()
	return nil
}

// ForwardBatch orchestrates one forward pooling pass.
type ForwardBatch struct {
	batch  *compute.Batch
	kind   kind
	par    *Parameter
	env    compute.Env
	input  *ForwardInput
	result *ForwardResult
}

// NewMaxForward creates a forward max-pooling batch for the given
// precision. The method variant is fixed to DefaultDense.
func NewMaxForward(par *Parameter, dt tensor.DataType, env compute.Env) *ForwardBatch {
	return newForward(maxKind, par, dt, env)
}

// NewAvgForward creates a forward average-pooling batch.
func NewAvgForward(par *Parameter, dt tensor.DataType, env compute.Env) *ForwardBatch {
	return newForward(avgKind, par, dt, env)
}

func newForward(k kind, par *Parameter, dt tensor.DataType, env compute.Env) *ForwardBatch {
	b := &ForwardBatch{
		kind:   k,
		par:    par,
		env:    env,
		input:  newForwardInput(),
		result: newForwardResult(k),
	}
	b.batch = compute.NewBatch(DefaultDense, dt, newForwardContainer(env, k), b.input, par, b.result)
	return b
}

// Input returns the batch's input object.
func (b *ForwardBatch) Input() *ForwardInput {
	return b.input
}

// Parameter returns the batch's parameter record.
func (b *ForwardBatch) Parameter() *Parameter {
	return b.par
}

// Result returns the batch's result object.
func (b *ForwardBatch) Result() *ForwardResult {
	return b.result
}

// SetResult registers an externally managed result. An allocated result
// is reused by Compute without reallocation.
func (b *ForwardBatch) SetResult(res *ForwardResult) error {
	if res == nil {
		return compute.ErrNullResult
	}
	b.result = res
	b.batch.SetResult(res)
	return nil
}

// Compute runs check, allocation and the bound kernel, in that order.
func (b *ForwardBatch) Compute() error {
	return b.batch.Compute()
}

// Clone produces an independent batch whose Input, Parameter and Result
// wrapper objects are owned by the clone while the underlying tensor
// buffers are shared.
func (b *ForwardBatch) Clone() *ForwardBatch {
	clone := newForward(b.kind, b.par.clone(), b.batch.DataType(), b.env)
	b.input.CloneInto(&clone.input.ForwardInput)
	b.result.CloneInto(&clone.result.ForwardResult)
	return clone
}

// RestoreMaxForwardResult rebuilds a max-pooling forward result from
// deserialized entries.
func RestoreMaxForwardResult(entries map[compute.ArgumentID]*tensor.RawTensor) (*ForwardResult, error) {
	return restoreForwardResult(maxKind, entries,
		[]compute.ArgumentID{layers.ValueID, AuxSelectedIndicesID, AuxInputDimensionsID})
}

// RestoreAvgForwardResult rebuilds an average-pooling forward result
// from deserialized entries.
func RestoreAvgForwardResult(entries map[compute.ArgumentID]*tensor.RawTensor) (*ForwardResult, error) {
	return restoreForwardResult(avgKind, entries,
		[]compute.ArgumentID{layers.ValueID, AuxInputDimensionsID})
}

func restoreForwardResult(k kind, entries map[compute.ArgumentID]*tensor.RawTensor, required []compute.ArgumentID) (*ForwardResult, error) {
	res := newForwardResult(k)
	for _, id := range required {
		t, ok := entries[id]
		if !ok {
			return nil, fmt.Errorf("%w: missing entry %d", compute.ErrInvalidInput, id)
		}
		if err := res.Put(id, t); err != nil {
			return nil, err
		}
	}
	res.MarkAllocated()
	return res, nil
}

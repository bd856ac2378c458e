package compute

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Parameter is an algorithm's configuration record. It is treated as
// immutable once Compute begins; Check validates its fields and reports
// every violated constraint at once.
type Parameter interface {
	Check() error
}

// Input holds the required argument tensors of an algorithm. Check is
// pure validation: it inspects shapes and types without mutating state
// and is idempotent.
type Input interface {
	Check(par Parameter, m Method) error
}

// Result holds an algorithm's output tensors and auxiliary data.
// Allocate computes every output shape from the input's shapes and the
// parameter's fields by closed-form arithmetic (never from data values),
// then allocates zero-initialized storage; it must be deterministic.
// Allocated reports whether storage is already in place, in which case
// the framework reuses it without reallocating.
type Result interface {
	Allocate(in Input, par Parameter, m Method) error
	Allocated() bool
}

// Batch orchestrates a single non-streaming invocation of one algorithm
// instance: one Input, one Parameter, one reference-counted Result and
// the Container that dispatches to the bound kernel.
//
// A single Batch instance's Compute must not be invoked concurrently
// with itself.
type Batch struct {
	method    Method
	dtype     tensor.DataType
	container *Container
	input     Input
	parameter Parameter
	result    Result
}

// NewBatch wires an algorithm instance together. Algorithm families call
// this from their own constructors with freshly created Input and Result
// objects.
func NewBatch(m Method, dt tensor.DataType, c *Container, in Input, par Parameter, res Result) *Batch {
	return &Batch{
		method:    m,
		dtype:     dt,
		container: c,
		input:     in,
		parameter: par,
		result:    res,
	}
}

// Method returns the method variant fixed at construction.
func (b *Batch) Method() Method {
	return b.method
}

// DataType returns the numeric precision fixed at construction.
func (b *Batch) DataType() tensor.DataType {
	return b.dtype
}

// Result returns the current result object.
func (b *Batch) Result() Result {
	return b.result
}

// SetResult registers an externally managed result. An already-allocated
// result is reused by Compute without reallocation, which enables
// in-place and externally managed buffers.
func (b *Batch) SetResult(res Result) {
	b.result = res
}

// Compute validates the parameter and input, allocates the result if no
// allocated result is registered, and invokes the bound kernel. A failed
// compute leaves the result unchanged; re-invoking after changing the
// input re-runs all three steps.
func (b *Batch) Compute() error {
	if b.input == nil || b.result == nil {
		return ErrNullResult
	}

	if b.parameter != nil {
		if err := b.parameter.Check(); err != nil {
			return err
		}
	}

	if err := b.input.Check(b.parameter, b.method); err != nil {
		return err
	}

	if !b.result.Allocated() {
		if err := b.result.Allocate(b.input, b.parameter, b.method); err != nil {
			return fmt.Errorf("%w: %v", ErrAllocationFailure, err)
		}
	}

	return b.container.Compute(b.method, b.dtype, b.input, b.parameter, b.result)
}

package kmeansinit

import (
	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Batch orchestrates one centroid initialization.
type Batch struct {
	batch  *compute.Batch
	par    *Parameter
	env    compute.Env
	method compute.Method
	input  *Input
	result *Result
}

// NewBatch creates a centroid initialization batch for the given method
// variant and precision.
func NewBatch(method compute.Method, par *Parameter, dt tensor.DataType, env compute.Env) *Batch {
	b := &Batch{
		par:    par,
		env:    env,
		method: method,
		input:  newInput(),
		result: newResult(),
	}
	b.batch = compute.NewBatch(method, dt, newContainer(env), b.input, par, b.result)
	return b
}

// Input returns the batch's input object.
func (b *Batch) Input() *Input {
	return b.input
}

// Parameter returns the batch's parameter record.
func (b *Batch) Parameter() *Parameter {
	return b.par
}

// Result returns the batch's result object.
func (b *Batch) Result() *Result {
	return b.result
}

// SetResult registers an externally managed result. An allocated result
// is reused by Compute without reallocation.
func (b *Batch) SetResult(res *Result) error {
	if res == nil {
		return compute.ErrNullResult
	}
	b.result = res
	b.batch.SetResult(res)
	return nil
}

// Compute runs check, allocation and the selected kernel, in that
// order.
func (b *Batch) Compute() error {
	return b.batch.Compute()
}

// Clone produces an independent batch sharing tensor buffers with the
// original.
func (b *Batch) Clone() *Batch {
	clone := NewBatch(b.method, b.par.clone(), b.batch.DataType(), b.env)
	b.input.cloneInto(clone.input)
	b.result.cloneInto(clone.result)
	return clone
}

func newContainer(env compute.Env) *compute.Container {
	c := compute.NewContainer(env)
	c.Register(DeterministicDense, tensor.Float32, deterministicKernel[float32]{})
	c.Register(DeterministicDense, tensor.Float64, deterministicKernel[float64]{})
	c.Register(RandomDense, tensor.Float32, randomKernel[float32]{})
	c.Register(RandomDense, tensor.Float64, randomKernel[float64]{})
	c.Register(PlusPlusDense, tensor.Float32, plusPlusKernel[float32]{})
	c.Register(PlusPlusDense, tensor.Float64, plusPlusKernel[float64]{})
	return c
}

package pooling

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// newForwardContainer binds the forward kernels of the family to the
// execution environment. One kernel is registered per supported
// precision; the Batch resolves it by (Method, DataType) on each compute.
func newForwardContainer(env compute.Env, k kind) *compute.Container {
	c := compute.NewContainer(env)
	switch k {
	case maxKind:
		c.Register(DefaultDense, tensor.Float32, maxForwardKernel[float32]{})
		c.Register(DefaultDense, tensor.Float64, maxForwardKernel[float64]{})
	case avgKind:
		c.Register(DefaultDense, tensor.Float32, avgForwardKernel[float32]{})
		c.Register(DefaultDense, tensor.Float64, avgForwardKernel[float64]{})
	}
	return c
}

// newBackwardContainer binds the backward kernels of the family.
func newBackwardContainer(env compute.Env, k kind) *compute.Container {
	c := compute.NewContainer(env)
	switch k {
	case maxKind:
		c.Register(DefaultDense, tensor.Float32, maxBackwardKernel[float32]{})
		c.Register(DefaultDense, tensor.Float64, maxBackwardKernel[float64]{})
	case avgKind:
		c.Register(DefaultDense, tensor.Float32, avgBackwardKernel[float32]{})
		c.Register(DefaultDense, tensor.Float64, avgBackwardKernel[float64]{})
	}
	return c
}

// forwardSetup casts the framework arguments to family types, builds the
// window geometry and validates that an externally registered result
// matches the inferred output shape. It only validates; kernels record
// the input dimensions after every fallible step has passed, so a
// failed compute leaves a registered result unchanged.
func forwardSetup(in compute.Input, par compute.Parameter, res compute.Result) (*geometry, *tensor.RawTensor, *tensor.RawTensor, *ForwardResult, error) {
	fin, ok := in.(*ForwardInput)
	if !ok {
		return nil, nil, nil, nil, fmt.Errorf("%w: expected pooling forward input, got %T", compute.ErrInvalidInput, in)
	}
	p, ok := par.(*Parameter)
	if !ok {
		return nil, nil, nil, nil, fmt.Errorf("%w: expected pooling parameter, got %T", compute.ErrInvalidInput, par)
	}
	r, ok := res.(*ForwardResult)
	if !ok {
		return nil, nil, nil, nil, fmt.Errorf("%w: expected pooling forward result, got %T", compute.ErrInvalidInput, res)
	}

	data, err := fin.Data()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	g, err := newGeometry(p, data.Shape())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	value, err := r.Value()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if !value.Shape().Equal(g.outShape) {
		return nil, nil, nil, nil, fmt.Errorf("%w: registered result shape %v does not match inferred output shape %v",
			compute.ErrInvalidInput, value.Shape(), g.outShape)
	}

	dims, err := r.InputDimensions()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if dims.NumElements() != len(data.Shape()) {
		return nil, nil, nil, nil, fmt.Errorf("%w: auxInputDimensions holds %d entries for rank %d input",
			compute.ErrInvalidInput, dims.NumElements(), len(data.Shape()))
	}

	return g, data, value, r, nil
}

// recordInputDimensions stores the input shape in auxInputDimensions.
// forwardSetup has already validated the destination, so the fetch
// cannot fail here.
func recordInputDimensions(r *ForwardResult, shape tensor.Shape) {
	dims, err := r.InputDimensions()
	if err != nil {
		return
	}
	dimData := dims.AsInt64()
	for i, d := range shape {
		dimData[i] = int64(d)
	}
}

// backwardSetup casts the framework arguments to family types and
// rebuilds the window geometry from the recorded input dimensions. It
// validates that the allocated gradient matches the original input
// shape.
func backwardSetup(in compute.Input, par compute.Parameter, res compute.Result) (*geometry, *tensor.RawTensor, *tensor.RawTensor, *BackwardInput, error) {
	bin, ok := in.(*BackwardInput)
	if !ok {
		return nil, nil, nil, nil, fmt.Errorf("%w: expected pooling backward input, got %T", compute.ErrInvalidInput, in)
	}
	p, ok := par.(*Parameter)
	if !ok {
		return nil, nil, nil, nil, fmt.Errorf("%w: expected pooling parameter, got %T", compute.ErrInvalidInput, par)
	}
	r, ok := res.(*BackwardResult)
	if !ok {
		return nil, nil, nil, nil, fmt.Errorf("%w: expected pooling backward result, got %T", compute.ErrInvalidInput, res)
	}

	srcShape, err := bin.inputShape()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	g, err := newGeometry(p, srcShape)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	grad, err := bin.InputGradient()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	out, err := r.Gradient()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if !out.Shape().Equal(srcShape) {
		return nil, nil, nil, nil, fmt.Errorf("%w: registered gradient shape %v does not match input shape %v",
			compute.ErrInvalidInput, out.Shape(), srcShape)
	}

	return g, grad, out, bin, nil
}

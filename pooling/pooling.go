// Copyright 2026 Lattice ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pooling provides the public API for N-dimensional max and
// average pooling, forward and backward.
//
// Example:
//
//	par := pooling.New2D([2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0})
//	fwd := pooling.NewMaxForward(par, tensor.Float32, compute.DefaultEnv())
//	_ = fwd.Input().SetData(x)
//	if err := fwd.Compute(); err != nil {
//	    log.Fatal(err)
//	}
//	value, _ := fwd.Result().Value()
package pooling

import (
	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/layers"
	"github.com/lattice-ml/lattice/internal/layers/pooling"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Method variants.
const DefaultDense = pooling.DefaultDense

// Argument ids. The values are part of the public contract.
const (
	DataID               = layers.DataID
	ValueID              = layers.ValueID
	InputGradientID      = layers.InputGradientID
	GradientID           = layers.GradientID
	AuxSelectedIndicesID = pooling.AuxSelectedIndicesID
	AuxInputDimensionsID = pooling.AuxInputDimensionsID
)

// DivisorPolicy selects the average-pooling divisor at the borders.
type DivisorPolicy = pooling.DivisorPolicy

// Divisor policies.
const (
	DivideByInBounds   = pooling.DivideByInBounds
	DivideByWindowSize = pooling.DivideByWindowSize
)

// Parameter configures a pooling family.
type Parameter = pooling.Parameter

// Input, result and batch types.
type (
	ForwardInput   = pooling.ForwardInput
	ForwardResult  = pooling.ForwardResult
	ForwardBatch   = pooling.ForwardBatch
	BackwardInput  = pooling.BackwardInput
	BackwardResult = pooling.BackwardResult
	BackwardBatch  = pooling.BackwardBatch
)

// EntryNames maps result argument ids to serialized entry names.
var EntryNames = pooling.EntryNames

// NewParameter creates a parameter pooling the given dimensions.
func NewParameter(dims, kernel, stride, pad []int) *Parameter {
	return pooling.NewParameter(dims, kernel, stride, pad)
}

// New2D creates a parameter pooling the two innermost dimensions of a
// 4-D NCHW tensor.
func New2D(kernel, stride, pad [2]int) *Parameter {
	return pooling.New2D(kernel, stride, pad)
}

// New3D creates a parameter pooling the three innermost dimensions of a
// 5-D NCDHW tensor.
func New3D(kernel, stride, pad [3]int) *Parameter {
	return pooling.New3D(kernel, stride, pad)
}

// NewMaxForward creates a forward max-pooling batch.
func NewMaxForward(par *Parameter, dt tensor.DataType, env compute.Env) *ForwardBatch {
	return pooling.NewMaxForward(par, dt, env)
}

// NewAvgForward creates a forward average-pooling batch.
func NewAvgForward(par *Parameter, dt tensor.DataType, env compute.Env) *ForwardBatch {
	return pooling.NewAvgForward(par, dt, env)
}

// NewMaxBackward creates a backward max-pooling batch.
func NewMaxBackward(par *Parameter, dt tensor.DataType, env compute.Env) *BackwardBatch {
	return pooling.NewMaxBackward(par, dt, env)
}

// NewAvgBackward creates a backward average-pooling batch.
func NewAvgBackward(par *Parameter, dt tensor.DataType, env compute.Env) *BackwardBatch {
	return pooling.NewAvgBackward(par, dt, env)
}

// RestoreMaxForwardResult rebuilds a max-pooling forward result from
// deserialized entries.
func RestoreMaxForwardResult(entries map[compute.ArgumentID]*tensor.RawTensor) (*ForwardResult, error) {
	return pooling.RestoreMaxForwardResult(entries)
}

// RestoreAvgForwardResult rebuilds an average-pooling forward result
// from deserialized entries.
func RestoreAvgForwardResult(entries map[compute.ArgumentID]*tensor.RawTensor) (*ForwardResult, error) {
	return pooling.RestoreAvgForwardResult(entries)
}

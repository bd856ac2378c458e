// Copyright 2026 Lattice ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense tensors used by
// the Lattice algorithms.
//
// The package defines core types for type-safe tensor access:
//   - Tensor[T]: High-level generic tensor with compile-time element type
//   - RawTensor: Low-level shaped view over a reference-counted buffer
//   - Shape, DataType: Core type definitions
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3})
//	x.Set(1.5, 0, 2)
package tensor

import (
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element types.
// Supported types: float32, float64, int64.
type DType = tensor.DType

// Float is a constraint for floating-point element types.
type Float = tensor.Float

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int64   DataType = tensor.Int64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the low-level tensor representation.
type RawTensor = tensor.RawTensor

// Tensor is the high-level generic tensor.
type Tensor[T DType] = tensor.Tensor[T]

// NewRaw creates a zero-initialized RawTensor.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// New wraps a RawTensor in a typed tensor.
func New[T DType](raw *RawTensor) *Tensor[T] {
	return tensor.New[T](raw)
}

// FromSlice creates a typed tensor holding a copy of data.
func FromSlice[T DType](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType](shape Shape) *Tensor[T] {
	return tensor.Zeros[T](shape)
}

// Ones creates a tensor filled with ones.
func Ones[T DType](shape Shape) *Tensor[T] {
	return tensor.Ones[T](shape)
}

// Full creates a tensor filled with value.
func Full[T DType](shape Shape, value T) *Tensor[T] {
	return tensor.Full(shape, value)
}

// TypeOf returns the DataType of the compile-time element type T.
func TypeOf[T DType]() DataType {
	return tensor.TypeOf[T]()
}

// Values returns a typed slice view of a RawTensor's data.
func Values[T DType](r *RawTensor) []T {
	return tensor.Values[T](r)
}

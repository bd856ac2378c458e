// Copyright 2026 Lattice ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package compute provides the public API of the Lattice compute
// framework: the Input/Parameter/Result contracts, argument
// collections, execution environments and the Batch driver that every
// algorithm family builds on.
package compute

import (
	"github.com/lattice-ml/lattice/internal/compute"
)

// Type aliases for public API

// ArgumentID identifies an argument slot in a collection.
type ArgumentID = compute.ArgumentID

// Collection is an ordered mapping from argument ids to tensors.
type Collection = compute.Collection

// Method selects a computation variant within an algorithm family.
type Method = compute.Method

// Env carries the execution environment of a container.
type Env = compute.Env

// Input, Parameter and Result are the three argument contracts of a
// batch computation.
type (
	Input     = compute.Input
	Parameter = compute.Parameter
	Result    = compute.Result
)

// Kernel is a method- and precision-specific computation.
type Kernel = compute.Kernel

// Container dispatches kernels by (Method, DataType).
type Container = compute.Container

// Batch drives one check/allocate/compute cycle.
type Batch = compute.Batch

// ValidationError aggregates individual argument violations.
type ValidationError = compute.ValidationError

// Violation describes one failed argument check.
type Violation = compute.Violation

// Sentinel errors.
var (
	ErrInvalidInput          = compute.ErrInvalidInput
	ErrUnsupportedIdentifier = compute.ErrUnsupportedIdentifier
	ErrNotSet                = compute.ErrNotSet
	ErrAllocationFailure     = compute.ErrAllocationFailure
	ErrNullResult            = compute.ErrNullResult
	ErrUnsupportedMethod     = compute.ErrUnsupportedMethod
)

// NewCollection creates a collection accepting exactly the given ids.
func NewCollection(ids ...ArgumentID) *Collection {
	return compute.NewCollection(ids...)
}

// DefaultEnv returns the environment for the current process.
func DefaultEnv() Env {
	return compute.DefaultEnv()
}

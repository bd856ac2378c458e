// Copyright 2026 Lattice ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kmeansinit provides the public API for k-means centroid
// initialization.
//
// Example:
//
//	par := kmeansinit.NewParameter(8)
//	b := kmeansinit.NewBatch(kmeansinit.PlusPlusDense, par, tensor.Float64, compute.DefaultEnv())
//	_ = b.Input().SetData(observations)
//	if err := b.Compute(); err != nil {
//	    log.Fatal(err)
//	}
//	centroids, _ := b.Result().Centroids()
package kmeansinit

import (
	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/kmeansinit"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// Method variants.
const (
	DeterministicDense = kmeansinit.DeterministicDense
	RandomDense        = kmeansinit.RandomDense
	PlusPlusDense      = kmeansinit.PlusPlusDense
)

// Argument ids.
const (
	DataID      = kmeansinit.DataID
	CentroidsID = kmeansinit.CentroidsID
)

// Parameter configures centroid initialization.
type Parameter = kmeansinit.Parameter

// Input, result and batch types.
type (
	Input  = kmeansinit.Input
	Result = kmeansinit.Result
	Batch  = kmeansinit.Batch
)

// NewParameter returns a parameter with the given cluster count.
func NewParameter(nClusters int) *Parameter {
	return kmeansinit.NewParameter(nClusters)
}

// NewBatch creates a centroid initialization batch.
func NewBatch(method compute.Method, par *Parameter, dt tensor.DataType, env compute.Env) *Batch {
	return kmeansinit.NewBatch(method, par, dt, env)
}

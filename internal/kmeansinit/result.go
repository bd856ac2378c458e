package kmeansinit

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// CentroidsID identifies the centroid matrix of the result.
const CentroidsID compute.ArgumentID = 0

// Result holds the initial centroid matrix, shaped
// [NClusters, nFeatures].
type Result struct {
	args      *compute.Collection
	allocated bool
}

func newResult() *Result {
	return &Result{args: compute.NewCollection(CentroidsID)}
}

// SetCentroids stores the centroid matrix.
func (r *Result) SetCentroids(t *tensor.RawTensor) error {
	return r.args.Put(CentroidsID, t)
}

// Centroids returns the centroid matrix.
func (r *Result) Centroids() (*tensor.RawTensor, error) {
	return r.args.Get(CentroidsID)
}

// Args exposes the underlying argument collection.
func (r *Result) Args() *compute.Collection {
	return r.args
}

// Allocated reports whether output storage is in place.
func (r *Result) Allocated() bool {
	return r.allocated
}

// MarkAllocated records that output storage is in place.
func (r *Result) MarkAllocated() {
	r.allocated = true
}

// Allocate allocates a zero-initialized centroid matrix matching the
// data precision.
func (r *Result) Allocate(in compute.Input, par compute.Parameter, _ compute.Method) error {
	kin, ok := in.(*Input)
	if !ok {
		return fmt.Errorf("%w: expected k-means init input, got %T", compute.ErrInvalidInput, in)
	}
	p, ok := par.(*Parameter)
	if !ok {
		return fmt.Errorf("%w: expected k-means init parameter, got %T", compute.ErrInvalidInput, par)
	}

	data, err := kin.Data()
	if err != nil {
		return err
	}
	centroids, err := tensor.NewRaw(tensor.Shape{p.NClusters, data.Shape()[1]}, data.DType())
	if err != nil {
		return err
	}
	if err := r.SetCentroids(centroids); err != nil {
		return err
	}
	r.allocated = true
	return nil
}

func (r *Result) cloneInto(dst *Result) {
	dst.args = r.args.Clone()
	dst.allocated = r.allocated
}

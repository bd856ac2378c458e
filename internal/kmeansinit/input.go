package kmeansinit

import (
	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// DataID identifies the observation matrix of the input.
const DataID compute.ArgumentID = 0

// Input holds the observation matrix, shaped [nRows, nFeatures].
type Input struct {
	args *compute.Collection
}

func newInput() *Input {
	return &Input{args: compute.NewCollection(DataID)}
}

// SetData stores the observation matrix.
func (in *Input) SetData(t *tensor.RawTensor) error {
	return in.args.Put(DataID, t)
}

// Data returns the observation matrix.
func (in *Input) Data() (*tensor.RawTensor, error) {
	return in.args.Get(DataID)
}

// Args exposes the underlying argument collection.
func (in *Input) Args() *compute.Collection {
	return in.args
}

// Check validates the observation matrix against the parameter. Every
// method needs at least NClusters observations.
func (in *Input) Check(par compute.Parameter, _ compute.Method) error {
	ve := &compute.ValidationError{Err: compute.ErrInvalidInput}

	p, ok := par.(*Parameter)
	if !ok {
		ve.Add("parameter", "expected k-means init parameter, got %T", par)
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
	if len(data.Shape()) != 2 {
		ve.Add("data", "observations must be 2-D, got shape %v", data.Shape())
		return ve.ErrOrNil()
	}
	if nRows := data.Shape()[0]; nRows < p.NClusters {
		ve.Add("data", "%d observations cannot seed %d clusters", nRows, p.NClusters)
	}

	return ve.ErrOrNil()
}

func (in *Input) cloneInto(dst *Input) {
	dst.args = in.args.Clone()
}

package kmeansinit

import (
	"github.com/lattice-ml/lattice/internal/compute"
)

// Method variants of centroid initialization.
const (
	DeterministicDense compute.Method = 0
	RandomDense        compute.Method = 1
	PlusPlusDense      compute.Method = 2
)

// Parameter configures centroid initialization.
type Parameter struct {
	// NClusters is the number of centroids to produce.
	NClusters int
	// Seed drives the randomized methods. DeterministicDense
	// ignores it.
	Seed int64
}

// NewParameter returns a parameter with the given cluster count and a
// fixed default seed.
func NewParameter(nClusters int) *Parameter {
	return &Parameter{NClusters: nClusters, Seed: 777}
}

// Check validates the parameter in isolation.
func (p *Parameter) Check() error {
	ve := &compute.ValidationError{Err: compute.ErrInvalidInput}
	if p.NClusters < 1 {
		ve.Add("nClusters", "must be at least 1, got %d", p.NClusters)
	}
	return ve.ErrOrNil()
}

func (p *Parameter) clone() *Parameter {
	c := *p
	return &c
}

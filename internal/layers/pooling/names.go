package pooling

import (
	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/layers"
)

// EntryNames maps the argument ids of pooling results to the symbolic
// names used in serialized files.
var EntryNames = map[compute.ArgumentID]string{
	layers.ValueID:       "value",
	AuxSelectedIndicesID: "auxSelectedIndices",
	AuxInputDimensionsID: "auxInputDimensions",
}

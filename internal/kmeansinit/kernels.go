package kmeansinit

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

func kernelSetup(in compute.Input, par compute.Parameter, res compute.Result) (*Parameter, *tensor.RawTensor, *tensor.RawTensor, error) {
	kin, ok := in.(*Input)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: expected k-means init input, got %T", compute.ErrInvalidInput, in)
	}
	p, ok := par.(*Parameter)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: expected k-means init parameter, got %T", compute.ErrInvalidInput, par)
	}
	r, ok := res.(*Result)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: expected k-means init result, got %T", compute.ErrInvalidInput, res)
	}

	data, err := kin.Data()
	if err != nil {
		return nil, nil, nil, err
	}
	centroids, err := r.Centroids()
	if err != nil {
		return nil, nil, nil, err
	}
	want := tensor.Shape{p.NClusters, data.Shape()[1]}
	if !centroids.Shape().Equal(want) {
		return nil, nil, nil, fmt.Errorf("%w: registered centroids shape %v does not match %v",
			compute.ErrInvalidInput, centroids.Shape(), want)
	}
	return p, data, centroids, nil
}

// copyRow copies observation row src into centroid row dst.
func copyRow[T tensor.Float](centroids, data []T, dst, src, nFeatures int) {
	copy(centroids[dst*nFeatures:(dst+1)*nFeatures], data[src*nFeatures:(src+1)*nFeatures])
}

// rowF64 widens observation row r into buf.
func rowF64[T tensor.Float](buf []float64, data []T, r, nFeatures int) []float64 {
	row := data[r*nFeatures : (r+1)*nFeatures]
	for i, v := range row {
		buf[i] = float64(v)
	}
	return buf
}

// deterministicKernel takes the first NClusters observations as the
// initial centroids.
type deterministicKernel[T tensor.Float] struct{}

func (deterministicKernel[T]) Compute(_ compute.Env, in compute.Input, par compute.Parameter, res compute.Result) error {
	p, data, centroids, err := kernelSetup(in, par, res)
	if err != nil {
		return err
	}
	src := tensor.Values[T](data)
	dst := tensor.Values[T](centroids)
	nFeatures := data.Shape()[1]

	for c := 0; c < p.NClusters; c++ {
		copyRow(dst, src, c, c, nFeatures)
	}
	return nil
}

// randomKernel samples NClusters distinct observations uniformly,
// driven by the parameter seed.
type randomKernel[T tensor.Float] struct{}

func (randomKernel[T]) Compute(_ compute.Env, in compute.Input, par compute.Parameter, res compute.Result) error {
	p, data, centroids, err := kernelSetup(in, par, res)
	if err != nil {
		return err
	}
	src := tensor.Values[T](data)
	dst := tensor.Values[T](centroids)
	nRows, nFeatures := data.Shape()[0], data.Shape()[1]

	rng := rand.New(rand.NewSource(p.Seed))
	rows := rng.Perm(nRows)[:p.NClusters]
	for c, r := range rows {
		copyRow(dst, src, c, r, nFeatures)
	}
	return nil
}

// plusPlusKernel applies k-means++ seeding: the first centroid is drawn
// uniformly, each following one with probability proportional to the
// squared Euclidean distance to the nearest centroid chosen so far.
type plusPlusKernel[T tensor.Float] struct{}

func (plusPlusKernel[T]) Compute(_ compute.Env, in compute.Input, par compute.Parameter, res compute.Result) error {
	p, data, centroids, err := kernelSetup(in, par, res)
	if err != nil {
		return err
	}
	src := tensor.Values[T](data)
	dst := tensor.Values[T](centroids)
	nRows, nFeatures := data.Shape()[0], data.Shape()[1]

	rng := rand.New(rand.NewSource(p.Seed))
	first := rng.Intn(nRows)
	copyRow(dst, src, 0, first, nFeatures)

	// minDist tracks each observation's squared distance to its
	// nearest chosen centroid.
	minDist := make([]float64, nRows)
	rowBuf := make([]float64, nFeatures)
	centBuf := make([]float64, nFeatures)

	rowF64(centBuf, src, first, nFeatures)
	for r := 0; r < nRows; r++ {
		d := floats.Distance(rowF64(rowBuf, src, r, nFeatures), centBuf, 2)
		minDist[r] = d * d
	}

	for c := 1; c < p.NClusters; c++ {
		total := floats.Sum(minDist)
		var next int
		if total <= 0 {
			// All remaining mass is zero (duplicate points);
			// fall back to a uniform draw.
			next = rng.Intn(nRows)
		} else {
			x := rng.Float64() * total
			for next = 0; next < nRows-1; next++ {
				x -= minDist[next]
				if x <= 0 {
					break
				}
			}
		}
		copyRow(dst, src, c, next, nFeatures)

		rowF64(centBuf, src, next, nFeatures)
		for r := 0; r < nRows; r++ {
			d := floats.Distance(rowF64(rowBuf, src, r, nFeatures), centBuf, 2)
			if sq := d * d; sq < minDist[r] {
				minDist[r] = sq
			}
		}
	}
	return nil
}

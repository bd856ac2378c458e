package pooling

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/parallel"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// maxForwardKernel computes forward max pooling for one precision.
//
// Each output position takes the maximum over its window; padded
// positions are excluded from the reduction. The within-window flat
// offset of the maximum is recorded in auxSelectedIndices with ties
// broken by first occurrence in scan order, because the backward pass
// must route the gradient to exactly that element.
type maxForwardKernel[T tensor.Float] struct{}

func (maxForwardKernel[T]) Compute(env compute.Env, in compute.Input, par compute.Parameter, res compute.Result) error {
	g, data, value, r, err := forwardSetup(in, par, res)
	if err != nil {
		return err
	}

	sel, err := r.SelectedIndices()
	if err != nil {
		return err
	}
	if !sel.Shape().Equal(g.outShape) {
		return fmt.Errorf("%w: auxSelectedIndices shape %v does not match output shape %v",
			compute.ErrInvalidInput, sel.Shape(), g.outShape)
	}
	recordInputDimensions(r, data.Shape())

	src := tensor.Values[T](data)
	dst := tensor.Values[T](value)
	idx := sel.AsInt64()

	cfg := parallel.Config{Workers: env.Workers, MinChunk: env.MinChunk}
	rank := len(g.outShape)
	m := len(g.pooled)

	// Output positions are independent; each worker owns a disjoint
	// output region.
	parallel.For(g.outShape.NumElements(), func(o int) {
		coords := make([]int, rank)
		starts := make([]int, m)
		decompose(o, g.outStrides, coords)

		base := 0
		for _, d := range g.outer {
			base += coords[d] * g.inStrides[d]
		}
		g.windowStarts(coords, starts)

		first := true
		var best T
		bestOff := int64(-1)
		g.forEachInWindow(base, starts, func(inOff, winOff int) {
			v := src[inOff]
			if first || v > best {
				best = v
				bestOff = int64(winOff)
				first = false
			}
		})

		dst[o] = best
		idx[o] = bestOff
	}, cfg)

	return nil
}

package pooling

import (
	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/parallel"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// maxBackwardKernel routes each upstream gradient element to the input
// position selected by the forward pass and accumulates overlapping
// contributions. Workers partition the non-pooled slices so the
// scatter-adds of different goroutines never touch the same element.
type maxBackwardKernel[T tensor.Float] struct{}

func (maxBackwardKernel[T]) Compute(env compute.Env, in compute.Input, par compute.Parameter, res compute.Result) error {
	g, grad, out, bin, err := backwardSetup(in, par, res)
	if err != nil {
		return err
	}

	sel, err := bin.Get(AuxSelectedIndicesID)
	if err != nil {
		return err
	}

	src := tensor.Values[T](grad)
	dst := tensor.Values[T](out)
	idx := sel.AsInt64()

	// All indices are checked up front; a compute that fails must not
	// leave the registered gradient partially written.
	if err := g.checkSelectedIndices(idx); err != nil {
		return err
	}
	clear(dst)

	cfg := parallel.Config{Workers: env.Workers, MinChunk: env.MinChunk}
	m := len(g.pooled)

	parallel.For(g.outerCount, func(outer int) {
		scratch := make([]int, len(g.outer))
		pooledCoords := make([]int, m)
		winCoords := make([]int, m)
		inBase, outBase := g.outerBases(outer, scratch)

		for po := 0; po < g.pooledOutCount; po++ {
			decompose(po, g.pooledOutStrides, pooledCoords)
			outOff := outBase
			for j, d := range g.pooled {
				outOff += pooledCoords[j] * g.outStrides[d]
			}

			decompose(int(idx[outOff]), g.kernelStrides, winCoords)

			inOff := inBase
			for j, d := range g.pooled {
				inOff += (pooledCoords[j]*g.stride[j] - g.pad[j] + winCoords[j]) * g.inStrides[d]
			}
			dst[inOff] += src[outOff]
		}
	}, cfg)

	return nil
}

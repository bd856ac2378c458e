package pooling

import (
	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/parallel"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// avgBackwardKernel spreads each upstream gradient element uniformly
// over the in-bounds part of its window, divided by the same divisor
// the forward pass used. Overlapping windows accumulate. Workers
// partition the non-pooled slices to keep the accumulation race-free.
type avgBackwardKernel[T tensor.Float] struct{}

func (avgBackwardKernel[T]) Compute(env compute.Env, in compute.Input, par compute.Parameter, res compute.Result) error {
	g, grad, out, _, err := backwardSetup(in, par, res)
	if err != nil {
		return err
	}
	p := par.(*Parameter)

	src := tensor.Values[T](grad)
	dst := tensor.Values[T](out)

	// Setup is the only fallible step; once it passes the spread below
	// always runs to completion, so clearing here cannot expose a
	// half-written gradient.
	clear(dst)

	cfg := parallel.Config{Workers: env.Workers, MinChunk: env.MinChunk}
	m := len(g.pooled)

	parallel.For(g.outerCount, func(outer int) {
		scratch := make([]int, len(g.outer))
		pooledCoords := make([]int, m)
		starts := make([]int, m)
		inBase, outBase := g.outerBases(outer, scratch)

		for po := 0; po < g.pooledOutCount; po++ {
			decompose(po, g.pooledOutStrides, pooledCoords)
			outOff := outBase
			for j, d := range g.pooled {
				outOff += pooledCoords[j] * g.outStrides[d]
				starts[j] = pooledCoords[j]*g.stride[j] - g.pad[j]
			}

			divisor := g.kernelVolume
			if p.Divisor == DivideByInBounds {
				divisor = g.inBoundsCount(starts)
			}
			share := T(float64(src[outOff]) / float64(divisor))
			g.forEachInWindow(inBase, starts, func(inOff, winOff int) {
				dst[inOff] += share
			})
		}
	}, cfg)

	return nil
}

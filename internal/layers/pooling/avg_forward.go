package pooling

import (
	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/parallel"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// avgForwardKernel computes forward average pooling for one precision.
//
// Sums accumulate in float64 regardless of the element type to keep the
// reduction stable for large windows. The divisor follows the parameter
// policy: the in-bounds element count by default, or the full window
// volume when DivideByWindowSize is selected.
type avgForwardKernel[T tensor.Float] struct{}

func (avgForwardKernel[T]) Compute(env compute.Env, in compute.Input, par compute.Parameter, res compute.Result) error {
	g, data, value, r, err := forwardSetup(in, par, res)
	if err != nil {
		return err
	}
	p := par.(*Parameter)
	recordInputDimensions(r, data.Shape())

	src := tensor.Values[T](data)
	dst := tensor.Values[T](value)

	cfg := parallel.Config{Workers: env.Workers, MinChunk: env.MinChunk}
	rank := len(g.outShape)
	m := len(g.pooled)

	parallel.For(g.outShape.NumElements(), func(o int) {
		coords := make([]int, rank)
		starts := make([]int, m)
		decompose(o, g.outStrides, coords)

		base := 0
		for _, d := range g.outer {
			base += coords[d] * g.inStrides[d]
		}
		g.windowStarts(coords, starts)

		var sum float64
		g.forEachInWindow(base, starts, func(inOff, winOff int) {
			sum += float64(src[inOff])
		})

		divisor := g.kernelVolume
		if p.Divisor == DivideByInBounds {
			divisor = g.inBoundsCount(starts)
		}
		dst[o] = T(sum / float64(divisor))
	}, cfg)

	return nil
}

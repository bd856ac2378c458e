package pooling

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// geometry precomputes the index arithmetic shared by the pooling
// kernels: strides of the input, output and kernel window, the pooled
// dimension set and the batch-like remainder.
type geometry struct {
	inShape    tensor.Shape
	outShape   tensor.Shape
	inStrides  []int
	outStrides []int

	pooled []int // pooled dimension indices
	kernel []int // window extent per pooled dimension
	stride []int
	pad    []int

	kernelStrides []int // row-major strides over the kernel window
	kernelVolume  int

	outer        []int // non-pooled dimension indices
	outerShape   tensor.Shape
	outerStrides []int // row-major strides over outerShape
	outerCount   int

	pooledOutShape   tensor.Shape // output extents of the pooled dimensions
	pooledOutStrides []int
	pooledOutCount   int
}

func newGeometry(p *Parameter, inShape tensor.Shape) (*geometry, error) {
	outShape, err := p.OutputShape(inShape)
	if err != nil {
		return nil, err
	}

	g := &geometry{
		inShape:    inShape,
		outShape:   outShape,
		inStrides:  inShape.ComputeStrides(),
		outStrides: outShape.ComputeStrides(),
		pooled:     p.Dimensions,
		kernel:     p.KernelSizes,
		stride:     p.Strides,
		pad:        p.Paddings,
	}

	g.kernelStrides = tensor.Shape(g.kernel).ComputeStrides()
	g.kernelVolume = tensor.Shape(g.kernel).NumElements()

	isPooled := make(map[int]bool, len(g.pooled))
	for _, d := range g.pooled {
		isPooled[d] = true
	}
	for d := range inShape {
		if !isPooled[d] {
			g.outer = append(g.outer, d)
			g.outerShape = append(g.outerShape, inShape[d])
		}
	}
	g.outerStrides = g.outerShape.ComputeStrides()
	g.outerCount = g.outerShape.NumElements()

	for _, d := range g.pooled {
		g.pooledOutShape = append(g.pooledOutShape, outShape[d])
	}
	g.pooledOutStrides = g.pooledOutShape.ComputeStrides()
	g.pooledOutCount = g.pooledOutShape.NumElements()

	return g, nil
}

// windowStarts fills starts with the first input coordinate of the
// window for the given output coordinates, per pooled dimension.
// Coordinates may be negative (inside the padding).
func (g *geometry) windowStarts(outCoords, starts []int) {
	for j, d := range g.pooled {
		starts[j] = outCoords[d]*g.stride[j] - g.pad[j]
	}
}

// forEachInWindow visits every in-bounds element of the window anchored
// at starts, in row-major scan order over the kernel window. base is the
// flat input offset contributed by the non-pooled coordinates. winOff is
// the flat offset of the visited element within the window.
func (g *geometry) forEachInWindow(base int, starts []int, visit func(inOff, winOff int)) {
	m := len(g.pooled)
	k := make([]int, m)
	for {
		inOff := base
		inBounds := true
		for j := 0; j < m; j++ {
			x := starts[j] + k[j]
			if x < 0 || x >= g.inShape[g.pooled[j]] {
				inBounds = false
				break
			}
			inOff += x * g.inStrides[g.pooled[j]]
		}
		if inBounds {
			winOff := 0
			for j := 0; j < m; j++ {
				winOff += k[j] * g.kernelStrides[j]
			}
			visit(inOff, winOff)
		}

		j := m - 1
		for ; j >= 0; j-- {
			k[j]++
			if k[j] < g.kernel[j] {
				break
			}
			k[j] = 0
		}
		if j < 0 {
			return
		}
	}
}

// checkSelectedIndices verifies that every recorded window offset lies
// inside the kernel volume and resolves to an in-bounds input position.
// The pass only reads, so a caller can reject corrupt indices before
// touching the gradient tensor.
func (g *geometry) checkSelectedIndices(idx []int64) error {
	m := len(g.pooled)
	scratch := make([]int, len(g.outer))
	pooledCoords := make([]int, m)
	winCoords := make([]int, m)

	for outer := 0; outer < g.outerCount; outer++ {
		_, outBase := g.outerBases(outer, scratch)
		for po := 0; po < g.pooledOutCount; po++ {
			decompose(po, g.pooledOutStrides, pooledCoords)
			outOff := outBase
			for j, d := range g.pooled {
				outOff += pooledCoords[j] * g.outStrides[d]
			}

			w := idx[outOff]
			if w < 0 || w >= int64(g.kernelVolume) {
				return fmt.Errorf("%w: selected index %d outside window volume %d",
					compute.ErrInvalidInput, w, g.kernelVolume)
			}
			decompose(int(w), g.kernelStrides, winCoords)
			for j, d := range g.pooled {
				x := pooledCoords[j]*g.stride[j] - g.pad[j] + winCoords[j]
				if x < 0 || x >= g.inShape[d] {
					return fmt.Errorf("%w: selected index %d resolves outside the input",
						compute.ErrInvalidInput, w)
				}
			}
		}
	}
	return nil
}

// inBoundsCount returns the number of non-padded elements in the window
// anchored at starts.
func (g *geometry) inBoundsCount(starts []int) int {
	count := 1
	for j, d := range g.pooled {
		lo := max(starts[j], 0)
		hi := min(starts[j]+g.kernel[j], g.inShape[d])
		if hi <= lo {
			return 0
		}
		count *= hi - lo
	}
	return count
}

// decompose converts a flat index into coordinates using row-major
// strides.
func decompose(flat int, strides, coords []int) {
	for i, s := range strides {
		coords[i] = flat / s
		flat %= s
	}
}

// outerBases returns the flat input and output offsets contributed by
// the outer (non-pooled) coordinates of the given outer slice index.
func (g *geometry) outerBases(outerIdx int, scratch []int) (inBase, outBase int) {
	decompose(outerIdx, g.outerStrides, scratch)
	for i, d := range g.outer {
		inBase += scratch[i] * g.inStrides[d]
		outBase += scratch[i] * g.outStrides[d]
	}
	return inBase, outBase
}

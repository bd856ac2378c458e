package pooling

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// DefaultDense is the default dense computation method for pooling
// layers. It is the only method variant of the family.
const DefaultDense compute.Method = 0

// Auxiliary layer data ids recorded by the forward pass and consumed by
// the backward pass. The values are stable public contract.
const (
	// AuxSelectedIndicesID identifies the tensor of within-window
	// offsets of the selected maxima (max pooling only).
	AuxSelectedIndicesID compute.ArgumentID = 1

	// AuxInputDimensionsID identifies the tensor holding the original
	// input dimensions.
	AuxInputDimensionsID compute.ArgumentID = 2
)

// DivisorPolicy selects the denominator used by average pooling.
type DivisorPolicy int

const (
	// DivideByInBounds divides each window sum by the number of
	// in-bounds (non-padded) elements. Numerically safer at edges and
	// the default.
	DivideByInBounds DivisorPolicy = iota

	// DivideByWindowSize divides by the full kernel volume, counting
	// padded positions as zeros.
	DivideByWindowSize
)

// Parameter configures a pooling layer. All slices have one entry per
// pooled dimension, in the order listed by Dimensions. The record is
// immutable once Compute begins.
type Parameter struct {
	Dimensions  []int // Indices of the pooled dimensions within the input rank.
	KernelSizes []int // Window extent per pooled dimension.
	Strides     []int // Window step per pooled dimension, >= 1.
	Paddings    []int // Zero-padding per pooled dimension, on both sides.
	Divisor     DivisorPolicy
}

// NewParameter creates a pooling parameter over the given pooled
// dimensions.
func NewParameter(dimensions, kernelSizes, strides, paddings []int) *Parameter {
	return &Parameter{
		Dimensions:  dimensions,
		KernelSizes: kernelSizes,
		Strides:     strides,
		Paddings:    paddings,
	}
}

// New2D creates a parameter pooling the last two dimensions of a 4-D
// [batch, channels, height, width] input.
func New2D(kernel, stride, padding [2]int) *Parameter {
	return NewParameter([]int{2, 3}, kernel[:], stride[:], padding[:])
}

// New3D creates a parameter pooling the last three dimensions of a 5-D
// [batch, channels, depth, height, width] input.
func New3D(kernel, stride, padding [3]int) *Parameter {
	return NewParameter([]int{2, 3, 4}, kernel[:], stride[:], padding[:])
}

// Check validates the parameter and reports every violated constraint.
func (p *Parameter) Check() error {
	ve := &compute.ValidationError{Err: compute.ErrInvalidInput}

	m := len(p.Dimensions)
	if m == 0 {
		ve.Add("dimensions", "at least one pooled dimension is required")
	}
	if len(p.KernelSizes) != m {
		ve.Add("kernelSizes", "expected %d entries, got %d", m, len(p.KernelSizes))
	}
	if len(p.Strides) != m {
		ve.Add("strides", "expected %d entries, got %d", m, len(p.Strides))
	}
	if len(p.Paddings) != m {
		ve.Add("paddings", "expected %d entries, got %d", m, len(p.Paddings))
	}
	if len(ve.Violations) > 0 {
		return ve
	}

	seen := make(map[int]struct{}, m)
	for i, d := range p.Dimensions {
		if d < 0 {
			ve.Add("dimensions", "index %d is negative (%d)", i, d)
		}
		if _, dup := seen[d]; dup {
			ve.Add("dimensions", "dimension %d listed more than once", d)
		}
		seen[d] = struct{}{}
	}
	for i, k := range p.KernelSizes {
		if k < 1 {
			ve.Add("kernelSizes", "entry %d must be >= 1, got %d", i, k)
		}
	}
	for i, s := range p.Strides {
		if s < 1 {
			ve.Add("strides", "entry %d must be >= 1, got %d", i, s)
		}
	}
	for i, pad := range p.Paddings {
		if pad < 0 {
			ve.Add("paddings", "entry %d must be >= 0, got %d", i, pad)
		}
		if i < len(p.KernelSizes) && p.KernelSizes[i] >= 1 && pad >= p.KernelSizes[i] {
			// Padding >= kernel would admit windows with no in-bounds
			// elements, leaving the reduction undefined.
			ve.Add("paddings", "entry %d (%d) must be smaller than the kernel size (%d)", i, pad, p.KernelSizes[i])
		}
	}
	if p.Divisor != DivideByInBounds && p.Divisor != DivideByWindowSize {
		ve.Add("divisor", "unknown policy %d", p.Divisor)
	}

	return ve.ErrOrNil()
}

// OutputShape computes the pooled output shape for an input shape using
// only closed-form arithmetic: each pooled extent D becomes
// floor((D + 2P - K)/S) + 1, every other extent is unchanged.
func (p *Parameter) OutputShape(in tensor.Shape) (tensor.Shape, error) {
	out := in.Clone()
	for i, d := range p.Dimensions {
		if d >= len(in) {
			return nil, fmt.Errorf("%w: pooled dimension %d outside input rank %d", compute.ErrInvalidInput, d, len(in))
		}
		extent := (in[d]+2*p.Paddings[i]-p.KernelSizes[i])/p.Strides[i] + 1
		if extent <= 0 {
			return nil, fmt.Errorf("%w: kernel %d with stride %d and padding %d yields empty output for extent %d",
				compute.ErrInvalidInput, p.KernelSizes[i], p.Strides[i], p.Paddings[i], in[d])
		}
		out[d] = extent
	}
	return out, nil
}

// clone returns a deep copy of the parameter.
func (p *Parameter) clone() *Parameter {
	return &Parameter{
		Dimensions:  append([]int(nil), p.Dimensions...),
		KernelSizes: append([]int(nil), p.KernelSizes...),
		Strides:     append([]int(nil), p.Strides...),
		Paddings:    append([]int(nil), p.Paddings...),
		Divisor:     p.Divisor,
	}
}

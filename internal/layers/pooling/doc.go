// Package pooling implements N-dimensional max and average pooling
// layers, forward and backward.
//
// A pooling layer reduces the pooled spatial dimensions of its input by
// sliding a kernel window with a stride and optional zero-padding; the
// remaining dimensions are treated as batch or channel dimensions. 2D
// and 3D pooling are configurations of the same code, not separate
// implementations.
//
// The forward pass records auxiliary data in its Result so that the
// backward pass is well-defined: max pooling saves the within-window
// offset of each selected maximum (auxSelectedIndices), and both
// variants save the original input dimensions (auxInputDimensions),
// since stride arithmetic alone does not determine the un-pooled shape.
package pooling

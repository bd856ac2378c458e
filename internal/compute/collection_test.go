package compute

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-ml/lattice/internal/tensor"
)

func mustRaw(t *testing.T, shape tensor.Shape, dt tensor.DataType) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, dt)
	require.NoError(t, err)
	return raw
}

func TestCollectionPutGet(t *testing.T) {
	c := NewCollection(0, 1)
	x := mustRaw(t, tensor.Shape{2}, tensor.Float32)

	require.NoError(t, c.Put(0, x))

	got, err := c.Get(0)
	require.NoError(t, err)
	assert.Same(t, x, got)
}

func TestCollectionUnknownIdentifier(t *testing.T) {
	c := NewCollection(0, 1)
	x := mustRaw(t, tensor.Shape{2}, tensor.Float32)
	require.NoError(t, c.Put(0, x))

	err := c.Put(5, mustRaw(t, tensor.Shape{1}, tensor.Float32))
	assert.ErrorIs(t, err, ErrUnsupportedIdentifier)

	_, err = c.Get(5)
	assert.ErrorIs(t, err, ErrUnsupportedIdentifier)

	// A rejected access leaves the collection unchanged.
	assert.Equal(t, 1, c.Len())
	got, err := c.Get(0)
	require.NoError(t, err)
	assert.Same(t, x, got)
}

func TestCollectionGetUnset(t *testing.T) {
	c := NewCollection(0, 1)
	_, err := c.Get(1)
	assert.ErrorIs(t, err, ErrNotSet)
	assert.False(t, c.Has(1))
}

func TestCollectionIDsAscending(t *testing.T) {
	c := NewCollection(2, 0, 1)
	require.NoError(t, c.Put(2, mustRaw(t, tensor.Shape{1}, tensor.Float32)))
	require.NoError(t, c.Put(0, mustRaw(t, tensor.Shape{1}, tensor.Float32)))
	require.NoError(t, c.Put(1, mustRaw(t, tensor.Shape{1}, tensor.Float32)))

	assert.Equal(t, []ArgumentID{0, 1, 2}, c.IDs())
}

func TestCollectionCloneSharesBuffers(t *testing.T) {
	c := NewCollection(0)
	x := mustRaw(t, tensor.Shape{3}, tensor.Float64)
	require.NoError(t, c.Put(0, x))

	clone := c.Clone()
	got, err := clone.Get(0)
	require.NoError(t, err)

	x.AsFloat64()[1] = 4.25
	assert.Equal(t, 4.25, got.AsFloat64()[1], "clone entries share the underlying buffers")

	// Replacing an entry in the clone leaves the original untouched.
	require.NoError(t, clone.Put(0, mustRaw(t, tensor.Shape{3}, tensor.Float64)))
	orig, err := c.Get(0)
	require.NoError(t, err)
	assert.Same(t, x, orig)
}

func TestValidationErrorUnwrap(t *testing.T) {
	ve := &ValidationError{Err: ErrInvalidInput}
	ve.Add("data", "missing")
	ve.Add("kernel", "extent %d too small", 0)

	err := ve.ErrOrNil()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "data")
	assert.Contains(t, err.Error(), "kernel")
}

func TestValidationErrorNilWhenEmpty(t *testing.T) {
	ve := &ValidationError{Err: ErrInvalidInput}
	assert.NoError(t, ve.ErrOrNil())
}

func TestSentinelsDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidInput,
		ErrUnsupportedIdentifier,
		ErrNotSet,
		ErrAllocationFailure,
		ErrNullResult,
		ErrUnsupportedMethod,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}
}

package tensor

import (
	"math"
	"testing"
)

// Test helpers

func assertEqualFloat32(t *testing.T, expected, actual float32, msg string) {
	t.Helper()
	if math.Abs(float64(expected-actual)) > 1e-6 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

// DType Tests

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int64, 8},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestTypeOf(t *testing.T) {
	if TypeOf[float32]() != Float32 {
		t.Error("TypeOf[float32] should be Float32")
	}
	if TypeOf[float64]() != Float64 {
		t.Error("TypeOf[float64] should be Float64")
	}
	if TypeOf[int64]() != Int64 {
		t.Error("TypeOf[int64] should be Int64")
	}
}

// Shape Tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("zero extent should be rejected")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("negative extent should be rejected")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("strides = %v, want %v", strides, want)
			break
		}
	}
}

// RawTensor Tests

func TestNewRawZeroInitialized(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	assertEqualShape(t, Shape{2, 3}, raw.Shape(), "shape")
	if raw.ByteSize() != 24 {
		t.Errorf("ByteSize() = %d, want 24", raw.ByteSize())
	}
	for i, v := range raw.AsFloat32() {
		if v != 0 {
			t.Errorf("element %d = %v, want 0", i, v)
		}
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, -1}, Float32); err == nil {
		t.Error("NewRaw should reject negative extents")
	}
}

func TestRawTensorCloneSharesBuffer(t *testing.T) {
	raw, err := NewRaw(Shape{4}, Float64)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	clone := raw.Clone()

	raw.AsFloat64()[2] = 7.5
	if clone.AsFloat64()[2] != 7.5 {
		t.Error("clone should share the underlying buffer")
	}
	if raw.IsUnique() {
		t.Error("buffer should have two references after Clone")
	}

	clone.Release()
	if !raw.IsUnique() {
		t.Error("buffer should be unique again after Release")
	}
}

func TestValuesTypeMismatchPanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32)
	defer func() {
		if recover() == nil {
			t.Error("Values[int64] on a float32 tensor should panic")
		}
	}()
	_ = Values[int64](raw)
}

// Tensor Tests

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	assertEqualFloat32(t, 6, x.At(1, 2), "At(1,2)")

	x.Set(9, 0, 1)
	assertEqualFloat32(t, 9, x.At(0, 1), "after Set")
}

func TestFromSliceLengthMismatch(t *testing.T) {
	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 3}); err == nil {
		t.Error("FromSlice should reject mismatched lengths")
	}
}

func TestCreationHelpers(t *testing.T) {
	ones := Ones[float64](Shape{3})
	for i := 0; i < 3; i++ {
		if ones.At(i) != 1 {
			t.Errorf("Ones element %d = %v, want 1", i, ones.At(i))
		}
	}

	full := Full[int64](Shape{2, 2}, 42)
	if full.At(1, 1) != 42 {
		t.Errorf("Full element = %v, want 42", full.At(1, 1))
	}

	zeros := Zeros[float32](Shape{2})
	if zeros.At(0) != 0 || zeros.At(1) != 0 {
		t.Error("Zeros should be zero-initialized")
	}
}

func TestTensorCloneSharesData(t *testing.T) {
	x, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{4})
	y := x.Clone()

	x.Set(8, 0)
	assertEqualFloat32(t, 8, y.At(0), "clone shares data")
}

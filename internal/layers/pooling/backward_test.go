package pooling

import (
	"errors"
	"testing"

	"github.com/lattice-ml/lattice/internal/compute"
	"github.com/lattice-ml/lattice/internal/tensor"
)

// runMaxForward computes a forward max pass used as the baseline of the
// backward tests.
func runMaxForward(t *testing.T, par *Parameter, shape tensor.Shape, data []float32) *ForwardBatch {
	t.Helper()
	fwd := NewMaxForward(par, tensor.Float32, testEnv)
	if err := fwd.Input().SetData(rawFloat32(t, shape, data)); err != nil {
		t.Fatal(err)
	}
	if err := fwd.Compute(); err != nil {
		t.Fatalf("forward Compute failed: %v", err)
	}
	return fwd
}

func TestMaxBackwardScattersToSelectedPositions(t *testing.T) {
	par := New2D([2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0})
	fwd := runMaxForward(t, par, tensor.Shape{1, 1, 4, 4}, seq(16))

	bwd := NewMaxBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetLayerData(fwd.Result()); err != nil {
		t.Fatal(err)
	}
	grad := rawFloat32(t, tensor.Shape{1, 1, 2, 2}, []float32{10, 20, 30, 40})
	if err := bwd.Input().SetInputGradient(grad); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); err != nil {
		t.Fatalf("backward Compute failed: %v", err)
	}

	out, err := bwd.Result().Gradient()
	if err != nil {
		t.Fatal(err)
	}
	if !out.Shape().Equal(tensor.Shape{1, 1, 4, 4}) {
		t.Fatalf("gradient shape = %v", out.Shape())
	}

	// Each window's maximum sits at its bottom-right corner; everything
	// else receives zero.
	want := []float32{
		0, 0, 0, 0,
		0, 10, 0, 20,
		0, 0, 0, 0,
		0, 30, 0, 40,
	}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("gradient[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestMaxBackwardGradientMassPreserved(t *testing.T) {
	par := New2D([2]int{3, 3}, [2]int{2, 2}, [2]int{1, 1})
	shape := tensor.Shape{2, 2, 7, 9}
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = float32((i * 31) % 97)
	}
	fwd := runMaxForward(t, par, shape, data)

	value, _ := fwd.Result().Value()
	numOutputs := value.NumElements()

	bwd := NewMaxBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetLayerData(fwd.Result()); err != nil {
		t.Fatal(err)
	}
	ones := make([]float32, numOutputs)
	for i := range ones {
		ones[i] = 1
	}
	if err := bwd.Input().SetInputGradient(rawFloat32(t, value.Shape(), ones)); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); err != nil {
		t.Fatalf("backward Compute failed: %v", err)
	}

	out, _ := bwd.Result().Gradient()
	var sum float32
	for _, v := range out.AsFloat32() {
		sum += v
	}
	if sum != float32(numOutputs) {
		t.Errorf("gradient mass = %v, want %v", sum, numOutputs)
	}
}

func TestMaxBackwardOverlapAccumulates(t *testing.T) {
	// Stride 1 windows (1,3) and (3,2) both select the middle element.
	par := NewParameter([]int{1}, []int{2}, []int{1}, []int{0})
	fwd := runMaxForward(t, par, tensor.Shape{1, 3}, []float32{1, 3, 2})

	bwd := NewMaxBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetLayerData(fwd.Result()); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Input().SetInputGradient(rawFloat32(t, tensor.Shape{1, 2}, []float32{1, 1})); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); err != nil {
		t.Fatalf("backward Compute failed: %v", err)
	}

	out, _ := bwd.Result().Gradient()
	want := []float32{0, 2, 0}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("gradient[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestAvgBackwardDistributesUniformly(t *testing.T) {
	par := New2D([2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0})
	fwd := NewAvgForward(par, tensor.Float32, testEnv)
	if err := fwd.Input().SetData(rawFloat32(t, tensor.Shape{1, 1, 4, 4}, seq(16))); err != nil {
		t.Fatal(err)
	}
	if err := fwd.Compute(); err != nil {
		t.Fatal(err)
	}

	bwd := NewAvgBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetLayerData(fwd.Result()); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Input().SetInputGradient(rawFloat32(t, tensor.Shape{1, 1, 2, 2}, []float32{4, 8, 12, 16})); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); err != nil {
		t.Fatalf("backward Compute failed: %v", err)
	}

	out, _ := bwd.Result().Gradient()
	want := []float32{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("gradient[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestAvgBackwardInBoundsDivisorAtBorders(t *testing.T) {
	// One in-bounds element per window: the full upstream gradient
	// lands on it undivided.
	par := New2D([2]int{2, 2}, [2]int{2, 2}, [2]int{1, 1})
	fwd := NewAvgForward(par, tensor.Float32, testEnv)
	if err := fwd.Input().SetData(rawFloat32(t, tensor.Shape{1, 1, 2, 2}, []float32{1, 2, 3, 4})); err != nil {
		t.Fatal(err)
	}
	if err := fwd.Compute(); err != nil {
		t.Fatal(err)
	}

	bwd := NewAvgBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetLayerData(fwd.Result()); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Input().SetInputGradient(rawFloat32(t, tensor.Shape{1, 1, 2, 2}, []float32{5, 6, 7, 8})); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); err != nil {
		t.Fatalf("backward Compute failed: %v", err)
	}

	out, _ := bwd.Result().Gradient()
	want := []float32{5, 6, 7, 8}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("gradient[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestBackwardRequiresLayerData(t *testing.T) {
	par := New2D([2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0})
	bwd := NewMaxBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetInputGradient(rawFloat32(t, tensor.Shape{1, 1, 2, 2}, []float32{1, 1, 1, 1})); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); !errors.Is(err, compute.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBackwardGradientShapeMismatch(t *testing.T) {
	par := New2D([2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0})
	fwd := runMaxForward(t, par, tensor.Shape{1, 1, 4, 4}, seq(16))

	bwd := NewMaxBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetLayerData(fwd.Result()); err != nil {
		t.Fatal(err)
	}
	// Gradient shaped like the input instead of the output.
	if err := bwd.Input().SetInputGradient(rawFloat32(t, tensor.Shape{1, 1, 4, 4}, seq(16))); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); !errors.Is(err, compute.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMaxBackwardRejectsCorruptSelectedIndices(t *testing.T) {
	par := New2D([2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0})
	fwd := runMaxForward(t, par, tensor.Shape{1, 1, 4, 4}, seq(16))

	sel, err := fwd.Result().SelectedIndices()
	if err != nil {
		t.Fatal(err)
	}
	for i := range sel.AsInt64() {
		sel.AsInt64()[i] = 99
	}

	bwd := NewMaxBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetLayerData(fwd.Result()); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Input().SetInputGradient(rawFloat32(t, tensor.Shape{1, 1, 2, 2}, []float32{1, 1, 1, 1})); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); !errors.Is(err, compute.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for out-of-range indices, got %v", err)
	}
}

func TestBackwardAvgIgnoresSelectedIndices(t *testing.T) {
	par := New2D([2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0})
	bwd := NewAvgBackward(par, tensor.Float32, testEnv)

	raw, err := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Int64)
	if err != nil {
		t.Fatal(err)
	}
	if err := bwd.Input().Put(AuxSelectedIndicesID, raw); !errors.Is(err, compute.ErrUnsupportedIdentifier) {
		t.Errorf("average backward input must reject selected indices, got %v", err)
	}
}

func TestMaxBackward3D(t *testing.T) {
	par := New3D([3]int{2, 2, 2}, [3]int{2, 2, 2}, [3]int{0, 0, 0})
	shape := tensor.Shape{2, 1, 3, 4, 4}
	fwd := runMaxForward(t, par, shape, seq(96))

	bwd := NewMaxBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetLayerData(fwd.Result()); err != nil {
		t.Fatal(err)
	}
	grad := rawFloat32(t, tensor.Shape{2, 1, 1, 2, 2}, []float32{10, 20, 30, 40, 50, 60, 70, 80})
	if err := bwd.Input().SetInputGradient(grad); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); err != nil {
		t.Fatalf("backward Compute failed: %v", err)
	}

	out, err := bwd.Result().Gradient()
	if err != nil {
		t.Fatal(err)
	}
	if !out.Shape().Equal(shape) {
		t.Fatalf("gradient shape = %v", out.Shape())
	}

	// Each window's maximum sits at its deepest bottom-right corner,
	// in both batch slices.
	want := make([]float32, 96)
	want[21], want[23], want[29], want[31] = 10, 20, 30, 40
	want[69], want[71], want[77], want[79] = 50, 60, 70, 80
	var sum float32
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("gradient[%d] = %v, want %v", i, v, want[i])
		}
		sum += v
	}
	if sum != 360 {
		t.Errorf("gradient mass = %v, want 360", sum)
	}
}

func TestMaxBackwardFailedComputeLeavesGradientUnchanged(t *testing.T) {
	par := New2D([2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0})
	fwd := runMaxForward(t, par, tensor.Shape{1, 1, 4, 4}, seq(16))

	bwd := NewMaxBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetLayerData(fwd.Result()); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Input().SetInputGradient(rawFloat32(t, tensor.Shape{1, 1, 2, 2}, []float32{10, 20, 30, 40})); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); err != nil {
		t.Fatalf("backward Compute failed: %v", err)
	}

	out, err := bwd.Result().Gradient()
	if err != nil {
		t.Fatal(err)
	}
	before := append([]float32(nil), out.AsFloat32()...)

	// The indices tensor is shared with the forward result. Corrupting
	// it must fail the recompute without touching the already computed
	// gradient.
	sel, err := fwd.Result().SelectedIndices()
	if err != nil {
		t.Fatal(err)
	}
	sel.AsInt64()[0] = 99

	if err := bwd.Compute(); !errors.Is(err, compute.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	for i, v := range out.AsFloat32() {
		if v != before[i] {
			t.Errorf("gradient[%d] = %v after failed compute, want %v", i, v, before[i])
		}
	}
}

func TestMaxBackwardRejectsIndicesResolvingOutsideInput(t *testing.T) {
	// With padding 1 the corner window is anchored at (-1,-1), so its
	// kernel offset 0 lies inside the padding.
	par := New2D([2]int{2, 2}, [2]int{2, 2}, [2]int{1, 1})
	fwd := runMaxForward(t, par, tensor.Shape{1, 1, 2, 2}, seq(4))

	sel, err := fwd.Result().SelectedIndices()
	if err != nil {
		t.Fatal(err)
	}
	sel.AsInt64()[0] = 0

	bwd := NewMaxBackward(par, tensor.Float32, testEnv)
	if err := bwd.Input().SetLayerData(fwd.Result()); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Input().SetInputGradient(rawFloat32(t, tensor.Shape{1, 1, 2, 2}, []float32{1, 1, 1, 1})); err != nil {
		t.Fatal(err)
	}
	if err := bwd.Compute(); !errors.Is(err, compute.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for an index inside the padding, got %v", err)
	}
}

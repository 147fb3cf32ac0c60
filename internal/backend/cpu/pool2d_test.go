package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/googlenet/internal/tensor"
)

func arangeRaw(shape tensor.Shape) *tensor.RawTensor {
	r := tensor.MustNewRaw(shape, tensor.Float32, tensor.CPU)
	for i, data := 0, r.AsFloat32(); i < len(data); i++ {
		data[i] = float32(i + 1)
	}
	return r
}

// TestMaxPool2D_BasicForward tests 2x2 pooling with stride 2.
func TestMaxPool2D_BasicForward(t *testing.T) {
	backend := New()
	input := arangeRaw(tensor.Shape{1, 1, 4, 4})

	output := backend.MaxPool2D(input, 2, 2, 0)

	if !output.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Expected shape [1 1 2 2], got %v", output.Shape())
	}
	expected := []float32{6, 8, 14, 16}
	for i, exp := range expected {
		if got := output.AsFloat32()[i]; got != exp {
			t.Errorf("Output[%d]: expected %.1f, got %.1f", i, exp, got)
		}
	}
}

func TestMaxPool2D_PaddingNeverWins(t *testing.T) {
	backend := New()
	input := tensor.MustNewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Float32, tensor.CPU)
	copy(input.AsFloat32(), []float32{-5, -4, -3, -2})

	// 3x3, stride 1, pad 1 keeps the spatial size.
	output := backend.MaxPool2D(input, 3, 1, 1)

	if !output.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Expected shape [1 1 2 2], got %v", output.Shape())
	}
	for i, got := range output.AsFloat32() {
		if got != -2 {
			t.Errorf("Output[%d]: expected -2 (padding must not contribute 0), got %v", i, got)
		}
	}
}

func TestMaxPool2D_StemDownsampling(t *testing.T) {
	backend := New()
	sizes := []struct{ in, out int }{{112, 56}, {56, 28}, {28, 14}, {14, 7}}

	for _, s := range sizes {
		input := tensor.MustNewRaw(tensor.Shape{1, 2, s.in, s.in}, tensor.Float32, tensor.CPU)
		output := backend.MaxPool2D(input, 3, 2, 1)
		want := tensor.Shape{1, 2, s.out, s.out}
		if !output.Shape().Equal(want) {
			t.Errorf("maxpool(3,2,1) on %d: got %v, want %v", s.in, output.Shape(), want)
		}
	}
}

func TestMaxPool2D_Float64(t *testing.T) {
	backend := New()
	input := tensor.MustNewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Float64, tensor.CPU)
	copy(input.AsFloat64(), []float64{1.5, 2.5, 3.5, 0.5})

	output := backend.MaxPool2D(input, 2, 2, 0)
	if got := output.AsFloat64()[0]; got != 3.5 {
		t.Errorf("Expected 3.5, got %v", got)
	}
}

func TestAvgPool2D_BasicForward(t *testing.T) {
	backend := New()
	input := arangeRaw(tensor.Shape{1, 1, 4, 4})

	output := backend.AvgPool2D(input, 2, 2, 0)

	expected := []float32{3.5, 5.5, 11.5, 13.5}
	for i, exp := range expected {
		if got := output.AsFloat32()[i]; got != exp {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, got)
		}
	}
}

func TestAvgPool2D_CountsPadding(t *testing.T) {
	backend := New()
	input := tensor.MustNewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Float32, tensor.CPU)
	for i := range input.AsFloat32() {
		input.AsFloat32()[i] = 9
	}

	output := backend.AvgPool2D(input, 3, 1, 1)

	// Every window covers 4 real cells out of 9.
	for i, got := range output.AsFloat32() {
		if math.Abs(float64(got-4)) > 1e-6 {
			t.Errorf("Output[%d]: expected 4, got %v", i, got)
		}
	}
}

func TestAvgPool2D_AuxiliaryGeometry(t *testing.T) {
	backend := New()
	input := tensor.MustNewRaw(tensor.Shape{2, 3, 14, 14}, tensor.Float32, tensor.CPU)

	output := backend.AvgPool2D(input, 5, 3, 0)
	if !output.Shape().Equal(tensor.Shape{2, 3, 4, 4}) {
		t.Errorf("avgpool(5,3) on 14x14: got %v, want [2 3 4 4]", output.Shape())
	}

	global := backend.AvgPool2D(tensor.MustNewRaw(tensor.Shape{2, 3, 7, 7}, tensor.Float32, tensor.CPU), 7, 1, 0)
	if !global.Shape().Equal(tensor.Shape{2, 3, 1, 1}) {
		t.Errorf("avgpool(7,1) on 7x7: got %v, want [2 3 1 1]", global.Shape())
	}
}

func TestPool2D_InvalidArgumentsPanic(t *testing.T) {
	backend := New()
	input := tensor.MustNewRaw(tensor.Shape{1, 1, 4, 4}, tensor.Float32, tensor.CPU)
	small := tensor.MustNewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Float32, tensor.CPU)

	cases := map[string]func(){
		"kernel too large":          func() { backend.MaxPool2D(input, 5, 1, 0) },
		"kernel too large stride 2": func() { backend.MaxPool2D(small, 3, 2, 0) },
		"kernel too large stride 3": func() { backend.AvgPool2D(input, 5, 3, 0) },
		"zero stride":               func() { backend.AvgPool2D(input, 2, 0, 0) },
		"excess padding":            func() { backend.MaxPool2D(input, 3, 1, 2) },
		"not 4D": func() {
			backend.MaxPool2D(tensor.MustNewRaw(tensor.Shape{4, 4}, tensor.Float32, tensor.CPU), 2, 2, 0)
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		})
	}
}

package nn

import (
	"fmt"

	"github.com/born-ml/googlenet/internal/tensor"
)

// window is the square pooling geometry shared by MaxPool2D and AvgPool2D.
type window struct {
	size, stride, padding int
}

func newWindow(op string, size, stride, padding int) window {
	switch {
	case size <= 0:
		panic(fmt.Sprintf("%s: invalid kernel size %d", op, size))
	case stride <= 0:
		panic(fmt.Sprintf("%s: invalid stride %d", op, stride))
	case padding < 0 || padding > size/2:
		panic(fmt.Sprintf("%s: padding %d must be in [0, %d]", op, padding, size/2))
	}
	return window{size: size, stride: stride, padding: padding}
}

func (w window) check(op string, x interface{ Shape() tensor.Shape }) {
	if len(x.Shape()) != 4 {
		panic(fmt.Sprintf("%s: expected 4D input [N,C,H,W], got shape %v", op, x.Shape()))
	}
}

// ComputeOutputSize returns the pooled height and width.
func (w window) ComputeOutputSize(h, wd int) [2]int {
	return [2]int{
		tensor.PoolOutputSize(h, w.size, w.stride, w.padding),
		tensor.PoolOutputSize(wd, w.size, w.stride, w.padding),
	}
}

func (w window) describe(name string) string {
	return fmt.Sprintf("%s(kernel_size=%d, stride=%d, padding=%d)", name, w.size, w.stride, w.padding)
}

// MaxPool2D keeps the largest value of each window. Padding cells hold
// -Inf and never win.
//
// GoogLeNet uses 3x3 stride 2 padding 1 between stages (halving H and W)
// and 3x3 stride 1 padding 1 in the Inception pool branch (size kept).
type MaxPool2D[B tensor.Backend] struct {
	window
	backend B
}

// NewMaxPool2D panics unless kernelSize and stride are positive and
// padding lies in [0, kernelSize/2].
func NewMaxPool2D[B tensor.Backend](kernelSize, stride, padding int, backend B) *MaxPool2D[B] {
	return &MaxPool2D[B]{window: newWindow("maxpool2d", kernelSize, stride, padding), backend: backend}
}

func (m *MaxPool2D[B]) Forward(x *tensor.Tensor[float32, B], _ Mode) *tensor.Tensor[float32, B] {
	m.check("maxpool2d", x)
	return tensor.MaxPool2D(x, m.size, m.stride, m.padding)
}

func (m *MaxPool2D[B]) Parameters() []*Parameter[B] { return nil }
func (m *MaxPool2D[B]) NamedParameters() []NamedParameter[B] { return nil }
func (m *MaxPool2D[B]) String() string { return m.describe("MaxPool2D") }

// AvgPool2D averages each window, dividing by kernelSize² even where the
// window overlaps padding.
//
// GoogLeNet uses it unpadded twice: 5x5 stride 3 at the head of each
// auxiliary classifier (14x14 to 4x4) and 7x7 stride 1 as the global pool
// (7x7 to 1x1).
type AvgPool2D[B tensor.Backend] struct {
	window
	backend B
}

func NewAvgPool2D[B tensor.Backend](kernelSize, stride, padding int, backend B) *AvgPool2D[B] {
	return &AvgPool2D[B]{window: newWindow("avgpool2d", kernelSize, stride, padding), backend: backend}
}

func (a *AvgPool2D[B]) Forward(x *tensor.Tensor[float32, B], _ Mode) *tensor.Tensor[float32, B] {
	a.check("avgpool2d", x)
	return tensor.AvgPool2D(x, a.size, a.stride, a.padding)
}

func (a *AvgPool2D[B]) Parameters() []*Parameter[B] { return nil }
func (a *AvgPool2D[B]) NamedParameters() []NamedParameter[B] { return nil }
func (a *AvgPool2D[B]) String() string { return a.describe("AvgPool2D") }

package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/googlenet/internal/parallel"
	"github.com/born-ml/googlenet/internal/tensor"
)

// poolPlaneWork is the fewest (n, c) planes worth handing to one worker.
const poolPlaneWork = 16

// MaxPool2D takes the maximum of every kernelSize×kernelSize window.
//
// Input shape:  [N, C, H, W]
// Output shape: [N, C, H_out, W_out], H_out = (H + 2*padding - k) / stride + 1
//
// Padding cells behave as -Inf, so they never win. Example (2x2, stride 2):
//
//	[[1,2,3,4],        [[6,8],
//	 [5,6,7,8],   →     [14,16]]
//	 [9,10,11,12],
//	 [13,14,15,16]]
func (cpu *CPUBackend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride, padding int) *tensor.RawTensor {
	g := cpu.poolGeometry("maxpool2d", input, kernelSize, stride, padding)
	output := tensor.MustNewRaw(tensor.Shape{g.N, g.C, g.HOut, g.WOut}, input.DType(), cpu.device)

	switch input.DType() {
	case tensor.Float32:
		maxPool(output.AsFloat32(), input.AsFloat32(), g, cpu.par)
	case tensor.Float64:
		maxPool(output.AsFloat64(), input.AsFloat64(), g, cpu.par)
	default:
		panic(fmt.Sprintf("maxpool2d: unsupported dtype %v", input.DType()))
	}
	return output
}

// AvgPool2D averages every kernelSize×kernelSize window.
//
// Padding cells count as zeros and the divisor is always kernelSize²,
// matching count_include_pad semantics.
func (cpu *CPUBackend) AvgPool2D(input *tensor.RawTensor, kernelSize, stride, padding int) *tensor.RawTensor {
	g := cpu.poolGeometry("avgpool2d", input, kernelSize, stride, padding)
	output := tensor.MustNewRaw(tensor.Shape{g.N, g.C, g.HOut, g.WOut}, input.DType(), cpu.device)

	switch input.DType() {
	case tensor.Float32:
		avgPool(output.AsFloat32(), input.AsFloat32(), g, cpu.par)
	case tensor.Float64:
		avgPool(output.AsFloat64(), input.AsFloat64(), g, cpu.par)
	default:
		panic(fmt.Sprintf("avgpool2d: unsupported dtype %v", input.DType()))
	}
	return output
}

type poolGeometry struct {
	N, C, H, W         int
	HOut, WOut         int
	k, stride, padding int
}

func (cpu *CPUBackend) poolGeometry(op string, input *tensor.RawTensor, kernelSize, stride, padding int) poolGeometry {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("%s: expected 4D input [N,C,H,W], got %dD", op, len(shape)))
	}
	if kernelSize <= 0 {
		panic(fmt.Sprintf("%s: invalid kernel size %d", op, kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("%s: invalid stride %d", op, stride))
	}
	if padding < 0 || 2*padding > kernelSize {
		panic(fmt.Sprintf("%s: padding %d must be in [0, kernel/2] for kernel %d", op, padding, kernelSize))
	}

	g := poolGeometry{
		N: shape[0], C: shape[1], H: shape[2], W: shape[3],
		k: kernelSize, stride: stride, padding: padding,
	}
	g.HOut = tensor.PoolOutputSize(g.H, kernelSize, stride, padding)
	g.WOut = tensor.PoolOutputSize(g.W, kernelSize, stride, padding)
	if g.HOut <= 0 || g.WOut <= 0 {
		panic(fmt.Sprintf("%s: kernel size %d too large for input %dx%d (padding=%d)",
			op, kernelSize, g.H, g.W, padding))
	}
	return g
}

func maxPool[F float32 | float64](out, in []F, g poolGeometry, cfg parallel.Config) {
	negInf := F(math.Inf(-1))
	parallel.ForBatch(g.N, g.C, func(n, c int) {
		plane := (n*g.C + c)
		src := in[plane*g.H*g.W : (plane+1)*g.H*g.W]
		dst := out[plane*g.HOut*g.WOut : (plane+1)*g.HOut*g.WOut]

		for oh := 0; oh < g.HOut; oh++ {
			h0 := oh*g.stride - g.padding
			hLo, hHi := max(h0, 0), min(h0+g.k, g.H)
			for ow := 0; ow < g.WOut; ow++ {
				w0 := ow*g.stride - g.padding
				wLo, wHi := max(w0, 0), min(w0+g.k, g.W)

				best := negInf
				for h := hLo; h < hHi; h++ {
					row := src[h*g.W : (h+1)*g.W]
					for w := wLo; w < wHi; w++ {
						if row[w] > best {
							best = row[w]
						}
					}
				}
				dst[oh*g.WOut+ow] = best
			}
		}
	}, cfg.WithMinChunk(poolPlaneWork))
}

func avgPool[F float32 | float64](out, in []F, g poolGeometry, cfg parallel.Config) {
	area := F(g.k * g.k)
	parallel.ForBatch(g.N, g.C, func(n, c int) {
		plane := (n*g.C + c)
		src := in[plane*g.H*g.W : (plane+1)*g.H*g.W]
		dst := out[plane*g.HOut*g.WOut : (plane+1)*g.HOut*g.WOut]

		for oh := 0; oh < g.HOut; oh++ {
			h0 := oh*g.stride - g.padding
			hLo, hHi := max(h0, 0), min(h0+g.k, g.H)
			for ow := 0; ow < g.WOut; ow++ {
				w0 := ow*g.stride - g.padding
				wLo, wHi := max(w0, 0), min(w0+g.k, g.W)

				var sum F
				for h := hLo; h < hHi; h++ {
					row := src[h*g.W : (h+1)*g.W]
					for w := wLo; w < wHi; w++ {
						sum += row[w]
					}
				}
				dst[oh*g.WOut+ow] = sum / area
			}
		}
	}, cfg.WithMinChunk(poolPlaneWork))
}

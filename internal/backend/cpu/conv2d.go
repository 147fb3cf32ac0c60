package cpu

import (
	"fmt"

	"github.com/born-ml/googlenet/internal/parallel"
	"github.com/born-ml/googlenet/internal/tensor"
)

// Conv2D performs 2D convolution using im2col followed by GEMM.
//
// Input shape:  [N, C_in, H, W]
// Kernel shape: [C_out, C_in, K_h, K_w]
// Output shape: [N, C_out, H_out, W_out]
//
//	H_out = (H + 2*padding - K_h) / stride + 1
//
// Each sample is lowered independently: its patches form a
// [C_in*K_h*K_w, H_out*W_out] column matrix, and
// kernel[C_out, C_in*K_h*K_w] @ col lands directly in the sample's
// [C_out, H_out*W_out] output plane. Samples run on separate workers.
// A 1×1 kernel with stride 1 and no padding skips im2col entirely: the
// input plane already is the column matrix.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	if stride <= 0 || padding < 0 {
		panic(fmt.Sprintf("conv2d: invalid stride=%d padding=%d", stride, padding))
	}

	g := convGeometry{
		N: inputShape[0], CIn: inputShape[1], H: inputShape[2], W: inputShape[3],
		COut: kernelShape[0], KH: kernelShape[2], KW: kernelShape[3],
		stride: stride, padding: padding,
	}
	if g.CIn != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", g.CIn, kernelShape[1]))
	}
	if input.DType() != kernel.DType() {
		panic(fmt.Sprintf("conv2d: dtype mismatch input=%s kernel=%s", input.DType(), kernel.DType()))
	}

	g.HOut = tensor.PoolOutputSize(g.H, g.KH, stride, padding)
	g.WOut = tensor.PoolOutputSize(g.W, g.KW, stride, padding)
	if g.HOut <= 0 || g.WOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", g.HOut, g.WOut))
	}

	output := tensor.MustNewRaw(tensor.Shape{g.N, g.COut, g.HOut, g.WOut}, input.DType(), cpu.device)

	switch input.DType() {
	case tensor.Float32:
		conv2d(output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), g, gemm32, cpu.par)
	case tensor.Float64:
		conv2d(output.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(), g, gemm64, cpu.par)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	return output
}

type convGeometry struct {
	N, CIn, H, W    int
	COut, KH, KW    int
	HOut, WOut      int
	stride, padding int
}

func (g convGeometry) pointwise() bool {
	return g.KH == 1 && g.KW == 1 && g.stride == 1 && g.padding == 0
}

func conv2d[F float32 | float64](out, in, kernel []F, g convGeometry, gemm func(c, a, b []F, m, k, n int), cfg parallel.Config) {
	inPlane := g.CIn * g.H * g.W
	outPlane := g.COut * g.HOut * g.WOut
	colRows := g.CIn * g.KH * g.KW
	colCols := g.HOut * g.WOut

	parallel.For(g.N, func(n int) {
		sample := in[n*inPlane : (n+1)*inPlane]
		dst := out[n*outPlane : (n+1)*outPlane]

		col := sample
		if !g.pointwise() {
			col = make([]F, colRows*colCols)
			im2col(col, sample, g)
		}
		gemm(dst, kernel, col, g.COut, colRows, colCols)
	}, cfg)
}

// im2col lays one sample's patches out as [C*K_h*K_w, H_out*W_out]:
// row (c, kh, kw) holds that kernel tap's input value for every output
// position, zero where the tap falls in padding.
func im2col[F float32 | float64](col, sample []F, g convGeometry) {
	colCols := g.HOut * g.WOut
	row := 0
	for c := 0; c < g.CIn; c++ {
		plane := sample[c*g.H*g.W : (c+1)*g.H*g.W]
		for kh := 0; kh < g.KH; kh++ {
			for kw := 0; kw < g.KW; kw++ {
				dst := col[row*colCols : (row+1)*colCols]
				i := 0
				for oh := 0; oh < g.HOut; oh++ {
					h := oh*g.stride - g.padding + kh
					if h < 0 || h >= g.H {
						for ow := 0; ow < g.WOut; ow++ {
							dst[i] = 0
							i++
						}
						continue
					}
					src := plane[h*g.W : (h+1)*g.W]
					for ow := 0; ow < g.WOut; ow++ {
						w := ow*g.stride - g.padding + kw
						if w >= 0 && w < g.W {
							dst[i] = src[w]
						} else {
							dst[i] = 0
						}
						i++
					}
				}
				row++
			}
		}
	}
}

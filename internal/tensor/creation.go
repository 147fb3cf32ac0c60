package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err)
	}
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, T(1), b)
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn fills a float tensor with standard normal samples drawn from rng
// using the Box-Muller transform. A nil rng uses the math/rand global source.
//
//	rng := rand.New(rand.NewSource(42))
//	x := tensor.Randn[float32](Shape{2, 3, 224, 224}, backend, rng)
func Randn[T DType, B Backend](shape Shape, b B, rng *rand.Rand) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	uniform := rand.Float64 //nolint:gosec // G404: reproducibility matters, not secrecy
	if rng != nil {
		uniform = rng.Float64
	}

	switch data := any(t.Data()).(type) {
	case []float32:
		fillNormal(data, uniform)
	case []float64:
		fillNormal(data, uniform)
	default:
		panic("Randn only supports float32 and float64 types")
	}
	return t
}

func fillNormal[F float32 | float64](data []F, uniform func() float64) {
	for i := 0; i < len(data); i += 2 {
		u1 := uniform()
		for u1 == 0 {
			u1 = uniform()
		}
		u2 := uniform()
		r := math.Sqrt(-2.0 * math.Log(u1))
		data[i] = F(r * math.Cos(2.0*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = F(r * math.Sin(2.0*math.Pi*u2))
		}
	}
}

// Rand fills a float tensor with samples uniform in [0, 1).
// A nil rng uses the math/rand global source.
func Rand[T DType, B Backend](shape Shape, b B, rng *rand.Rand) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	uniform := rand.Float64 //nolint:gosec // G404: reproducibility matters, not secrecy
	if rng != nil {
		uniform = rng.Float64
	}

	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(uniform())
		}
	case []float64:
		for i := range data {
			data[i] = uniform()
		}
	default:
		panic("Rand only supports float32 and float64 types")
	}
	return t
}

// Arange creates the 1D tensor [start, start+1, ..., end-1].
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	n := int(end - start)
	if n <= 0 {
		panic("end must be greater than start")
	}
	t := Zeros[T, B](Shape{n}, b)
	data := t.Data()
	for i := range data {
		data[i] = start + T(i)
	}
	return t
}

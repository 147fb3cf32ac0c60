package tensor

import "fmt"

// Tensor pairs a RawTensor with the backend that computes on it. T fixes
// the element type at compile time; the RawTensor carries it at run time.
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
//	sum := t.Add(t)
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New wraps raw without copying.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return &Tensor[T, B]{raw: raw, backend: b}
}

// FromSlice copies data into a fresh tensor of the given shape.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	if n := shape.NumElements(); n != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, n, len(data))
	}
	var zero T
	raw, err := NewRaw(shape, inferDataType(zero), b.Device())
	if err != nil {
		return nil, err
	}
	out := New[T, B](raw, b)
	copy(out.Data(), data)
	return out, nil
}

func (t *Tensor[T, B]) Shape() Shape { return t.raw.Shape() }
func (t *Tensor[T, B]) DType() DataType { return t.raw.DType() }
func (t *Tensor[T, B]) Device() Device { return t.raw.Device() }
func (t *Tensor[T, B]) NumElements() int { return t.raw.NumElements() }
func (t *Tensor[T, B]) Backend() B { return t.backend }

// Raw exposes the storage for backend calls.
func (t *Tensor[T, B]) Raw() *RawTensor { return t.raw }

// Data is a zero-copy view of the elements. Writes are visible to every
// clone sharing the buffer.
func (t *Tensor[T, B]) Data() []T {
	var zero T
	return viewAs[T](t.raw, inferDataType(zero))
}

// Item returns the value of a one-element tensor, such as a scalar loss.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.Shape()))
	}
	return t.Data()[0]
}

// offset maps a full index tuple to a flat position, panicking on any
// out-of-range coordinate.
func (t *Tensor[T, B]) offset(idx []int) int {
	shape, strides := t.Shape(), t.raw.Strides()
	if len(idx) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(idx)))
	}
	pos := 0
	for dim, i := range idx {
		if i < 0 || i >= shape[dim] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", i, dim, shape[dim]))
		}
		pos += i * strides[dim]
	}
	return pos
}

// At reads one element.
func (t *Tensor[T, B]) At(idx ...int) T { return t.Data()[t.offset(idx)] }

// Set writes one element.
func (t *Tensor[T, B]) Set(v T, idx ...int) { t.Data()[t.offset(idx)] = v }

func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%v on %s", t.raw.DType(), t.raw.Shape(), t.raw.Device())
}

// Clone shares the buffer copy-on-write. Afterwards neither handle is
// unique, so kernels allocate instead of writing in place and both stay
// stable snapshots.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return New[T, B](t.raw.Clone(), t.backend)
}

// Copy duplicates the buffer.
func (t *Tensor[T, B]) Copy() *Tensor[T, B] {
	return New[T, B](t.raw.Copy(), t.backend)
}

package nn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/googlenet/internal/tensor"
)

// Sequential runs its children in order, feeding each output to the next.
//
// Children are named by position, so in
//
//	nn.NewSequential[B](
//	    nn.NewConv2D(192, 96, 1, 1, 1, 0, true, backend, rng),
//	    nn.NewReLU[B](),
//	    nn.NewConv2D(96, 128, 3, 3, 1, 1, true, backend, rng),
//	    nn.NewReLU[B](),
//	)
//
// the second kernel is "2.weight". Inception branches rely on this layout
// for their checkpoint keys.
type Sequential[B tensor.Backend] struct {
	children []Module[B]
}

// NewSequential wraps children in a Sequential.
func NewSequential[B tensor.Backend](children ...Module[B]) *Sequential[B] {
	return &Sequential[B]{children: children}
}

func (s *Sequential[B]) Forward(x *tensor.Tensor[float32, B], mode Mode) *tensor.Tensor[float32, B] {
	for _, child := range s.children {
		x = child.Forward(x, mode)
	}
	return x
}

func (s *Sequential[B]) Parameters() []*Parameter[B] {
	return ParametersOf(s.NamedParameters())
}

func (s *Sequential[B]) NamedParameters() []NamedParameter[B] {
	var named []NamedParameter[B]
	for i, child := range s.children {
		named = append(named, Prefix(strconv.Itoa(i), child.NamedParameters())...)
	}
	return named
}

// Len is the number of children.
func (s *Sequential[B]) Len() int { return len(s.children) }

// Module returns child i and panics when i is out of range.
func (s *Sequential[B]) Module(i int) Module[B] {
	if i < 0 || i >= len(s.children) {
		panic(fmt.Sprintf("sequential: index %d out of bounds [0, %d)", i, len(s.children)))
	}
	return s.children[i]
}

func (s *Sequential[B]) String() string {
	var sb strings.Builder
	sb.WriteString("Sequential(\n")
	for i, child := range s.children {
		fmt.Fprintf(&sb, "  (%d): %v\n", i, child)
	}
	sb.WriteString(")")
	return sb.String()
}

package googlenet

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/born-ml/googlenet/internal/nn"
	"github.com/born-ml/googlenet/internal/tensor"
)

// Summary returns a per-stage table of output shapes and parameter counts
// for one input image.
func (n *Network[B]) Summary() string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	count := func(params []*nn.Parameter[B]) int {
		total := 0
		for _, p := range params {
			total += p.Tensor().NumElements()
		}
		return total
	}
	row := func(name, desc string, shape tensor.Shape, params int) {
		fmt.Fprintf(tw, "%s\t%s\t%v\t%d\n", name, desc, shape, params)
	}

	fmt.Fprintln(tw, "layer\tdescription\toutput\tparams")

	size := n.cfg.InputSize
	row("input", "", tensor.Shape{1, InputChannels, size, size}, 0)

	size = tensor.PoolOutputSize(size, 7, 2, 3)
	size = tensor.PoolOutputSize(size, 3, 2, 1)
	size = tensor.PoolOutputSize(size, 3, 2, 1)
	row("stem", "conv7x7/2, maxpool, conv1x1, conv3x3, maxpool", tensor.Shape{1, StemChannels, size, size}, count(n.stem.Parameters()))

	for i, block := range n.blocks {
		name := n.table[i].Name
		row(name.ModuleName(), block.String(), tensor.Shape{1, block.OutChannels(), size, size}, count(block.Parameters()))

		for t, tap := range auxTaps {
			if name == tap && n.aux[t] != nil {
				row(fmt.Sprintf("aux%d", t+1), n.aux[t].String(), tensor.Shape{1, n.cfg.NumClasses}, count(n.aux[t].Parameters()))
			}
		}
		if poolAfter[name] {
			size = tensor.PoolOutputSize(size, 3, 2, 1)
			row("maxpool", n.pool.String(), tensor.Shape{1, block.OutChannels(), size, size}, 0)
		}
	}

	row("avgpool", n.avgpool.String(), tensor.Shape{1, FeatureChannels, 1, 1}, 0)
	row("dropout", n.dropout.String(), tensor.Shape{1, FeatureChannels}, 0)
	row("fc", n.fc.String(), tensor.Shape{1, n.cfg.NumClasses}, count(n.fc.Parameters()))
	_ = tw.Flush()

	fmt.Fprintf(&sb, "total parameters: %d\n", n.NumParameters())
	return sb.String()
}

func (n *Network[B]) String() string {
	aux := "off"
	if n.cfg.AuxLogits {
		aux = "on"
	}
	return fmt.Sprintf("GoogLeNet(num_classes=%d, aux_logits=%s, params=%d)", n.cfg.NumClasses, aux, n.NumParameters())
}

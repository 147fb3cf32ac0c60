package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/googlenet/backend/cpu"
	"github.com/born-ml/googlenet/googlenet"
	"github.com/born-ml/googlenet/nn"
	"github.com/born-ml/googlenet/tensor"
)

// errUsage reports a flag error that the flag package has already printed.
var errUsage = errors.New("usage")

// commonFlags are accepted by every command that builds a network.
type commonFlags struct {
	fs      *flag.FlagSet
	config  string
	classes int
	seed    int64
	aux     bool
	noAux   bool
	workers int
	weights string
	verbose bool
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	c := &commonFlags{fs: fs}
	fs.StringVar(&c.config, "config", "", "YAML config file (defaults to the published configuration)")
	fs.IntVar(&c.classes, "classes", 0, "number of classes (overrides config when given)")
	fs.Int64Var(&c.seed, "seed", 0, "weight init and data seed (overrides config when given, 0 included)")
	fs.BoolVar(&c.aux, "aux", true, "auxiliary classifiers on or off (overrides config when given)")
	fs.BoolVar(&c.noAux, "no-aux", false, "same as -aux=false")
	fs.IntVar(&c.workers, "workers", 0, "CPU workers per kernel (0 = one per CPU)")
	fs.StringVar(&c.weights, "weights", "", "SafeTensors weights file to load")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	return fs, c
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %v\n", fs.Args())
		return errUsage
	}
	return nil
}

// overrides reports only the flags present on the command line, so an
// explicit -seed 0 or -aux still wins over the config file.
func (c *commonFlags) overrides() googlenet.Overrides {
	var o googlenet.Overrides
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "classes":
			o.NumClasses = &c.classes
		case "seed":
			o.Seed = &c.seed
		case "aux":
			o.AuxLogits = &c.aux
		}
	})
	if c.noAux {
		off := false
		o.AuxLogits = &off
	}
	return o
}

func (c *commonFlags) loadConfig() (googlenet.Config, error) {
	cfg := googlenet.DefaultConfig(googlenet.DefaultNumClasses)
	if c.config != "" {
		var err error
		if cfg, err = googlenet.LoadConfig(c.config); err != nil {
			return googlenet.Config{}, err
		}
	}

	cfg.ApplyOverrides(c.overrides())
	if err := cfg.Validate(); err != nil {
		return googlenet.Config{}, err
	}
	return cfg, nil
}

func (c *commonFlags) backend() *cpu.Backend {
	if c.workers == 0 {
		return cpu.New()
	}
	return cpu.NewWithWorkers(c.workers)
}

func (c *commonFlags) buildNetwork(log *slog.Logger) (*googlenet.Network[*cpu.Backend], error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	net, err := googlenet.New(cfg, c.backend())
	if err != nil {
		return nil, errors.Wrap(err, "build network")
	}
	log.Debug("network built",
		"classes", cfg.NumClasses,
		"aux_logits", cfg.AuxLogits,
		"seed", cfg.Seed,
		"params", net.NumParameters(),
		"elapsed", time.Since(start))

	if c.weights != "" {
		info, err := net.LoadWeights(c.weights)
		if err != nil {
			return nil, err
		}
		log.Info("weights loaded", "path", c.weights, "id", info.ID)
	}
	return net, nil
}

func runSummary(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("summary", stderr)
	if err := parse(fs, args); err != nil {
		return err
	}
	log := newLogger(stderr, c.verbose)

	net, err := c.buildNetwork(log)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, net)
	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, net.Summary())

	if c.verbose {
		data, err := net.Config().Marshal()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nconfig:\n%s", data)
	}
	return nil
}

func runForward(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("forward", stderr)
	batch := fs.Int("batch", 2, "number of random images")
	train := fs.Bool("train", false, "training mode (dropout active)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *batch <= 0 {
		return errors.Errorf("batch must be > 0 (got %d)", *batch)
	}
	log := newLogger(stderr, c.verbose)

	net, err := c.buildNetwork(log)
	if err != nil {
		return err
	}
	cfg := net.Config()

	//nolint:gosec // synthetic inputs, not security-critical
	rng := rand.New(rand.NewSource(cfg.Seed + 1))
	size := cfg.InputSize
	images := tensor.Randn[float32](tensor.Shape{*batch, googlenet.InputChannels, size, size}, net.Backend(), rng)

	ids := make([]int32, *batch)
	for i := range ids {
		ids[i] = rng.Int31n(int32(cfg.NumClasses))
	}
	labels, err := tensor.FromSlice(ids, tensor.Shape{*batch}, net.Backend())
	if err != nil {
		return err
	}

	mode := nn.Inference()
	if *train {
		mode = nn.Training(rng)
	}

	start := time.Now()
	scores := net.Forward(images, mode)
	log.Info("forward", "batch", *batch, "mode", mode, "elapsed", time.Since(start))
	log.Debug("scores", "main", scores.Main.Shape(), "aux0", shapeOf(scores.Aux0), "aux1", shapeOf(scores.Aux1))

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "head\tlogit mean\tlogit std\tconfidence\tentropy")
	for _, s := range googlenet.Summarize(scores) {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", s.Head, s.LogitMean, s.LogitStdDev, s.Confidence, s.Entropy)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	loss := net.Loss(scores, labels)
	fmt.Fprintf(stdout, "\nloss: %s\n", loss)
	fmt.Fprintf(stdout, "accuracy: %.4f\n", nn.Accuracy(scores.Main, labels))
	return nil
}

func shapeOf(t *tensor.Tensor[float32, *cpu.Backend]) any {
	if t == nil {
		return "none"
	}
	return t.Shape()
}

func runExport(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("export", stderr)
	out := fs.String("o", "", "output SafeTensors path (required)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *out == "" {
		fmt.Fprintln(stderr, "export: -o is required")
		fs.Usage()
		return errUsage
	}
	log := newLogger(stderr, c.verbose)

	net, err := c.buildNetwork(log)
	if err != nil {
		return err
	}

	id, err := net.SaveWeights(*out)
	if err != nil {
		return err
	}
	log.Info("weights saved", "path", *out, "id", id, "params", net.NumParameters())
	fmt.Fprintln(stdout, id)
	return nil
}

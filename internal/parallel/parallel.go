// Package parallel fans index ranges out across worker goroutines for the
// CPU kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how a loop is split across goroutines.
type Config struct {
	Enabled      bool // Run on multiple goroutines at all.
	NumWorkers   int  // Upper bound on goroutines per loop.
	MinChunkSize int  // Fewest iterations a single goroutine is given.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1,
	}
}

// Sequential disables fan-out.
func Sequential() Config {
	return Config{NumWorkers: 1, MinChunkSize: 1}
}

// WithMinChunk returns a copy of cfg that gives each worker at least n
// iterations. Cheap loop bodies want a large n; per-sample kernels want 1.
func (cfg Config) WithMinChunk(n int) Config {
	cfg.MinChunkSize = max(n, 1)
	return cfg
}

// For calls f(i) for every i in [0, n). Iterations are split into
// contiguous chunks; f must be safe to call concurrently for distinct i.
func For(n int, f func(i int), cfg Config) {
	workers := max(cfg.NumWorkers, 1)
	minChunk := max(cfg.MinChunkSize, 1)
	if !cfg.Enabled || workers == 1 || n <= minChunk {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := max((n+workers-1)/workers, minChunk)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForBatch iterates the batch×channels grid common to NCHW kernels.
func ForBatch(batch, channels int, f func(b, c int), cfg Config) {
	For(batch*channels, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}

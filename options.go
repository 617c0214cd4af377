package qppvalidator

import "runtime"

// Option configures validation behavior.
type Option func(*Options)

// Options holds all configuration for a validation engine.
type Options struct {
	// SubPopulationExclusions lists population criteria keys exempted from
	// the aggregate child-count check. Exclusions affect only that
	// aggregate check; identifier matching still runs for every declared
	// sub-population key.
	SubPopulationExclusions map[string]struct{}

	// MaxErrors stops validation after this many findings (0 = unlimited)
	MaxErrors int

	// ParallelGroups runs the per-template-group pass across goroutines.
	// Group output merge order is then unspecified; each validator's own
	// output order stays deterministic.
	ParallelGroups bool

	// WorkerCount is the number of workers for batch validation
	WorkerCount int

	// EnablePooling enables object pooling for results and paths.
	// Pooling requires calling Release() on results.
	EnablePooling bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		SubPopulationExclusions: map[string]struct{}{},
		MaxErrors:               0, // unlimited
		ParallelGroups:          false,
		WorkerCount:             runtime.NumCPU(),
		EnablePooling:           true,
	}
}

// Excluded reports whether a population criteria key is in the exclusion set.
func (o *Options) Excluded(key string) bool {
	_, ok := o.SubPopulationExclusions[key]
	return ok
}

// WithSubPopulationExclusions sets the population criteria keys exempted
// from aggregate cardinality checking.
func WithSubPopulationExclusions(keys ...string) Option {
	return func(o *Options) {
		o.SubPopulationExclusions = make(map[string]struct{}, len(keys))
		for _, key := range keys {
			o.SubPopulationExclusions[key] = struct{}{}
		}
	}
}

// WithMaxErrors sets the maximum number of findings before stopping.
// Use 0 for unlimited.
func WithMaxErrors(max int) Option {
	return func(o *Options) {
		o.MaxErrors = max
	}
}

// WithParallelGroups enables parallel execution of the per-template-group
// validation pass.
func WithParallelGroups(enable bool) Option {
	return func(o *Options) {
		o.ParallelGroups = enable
	}
}

// WithWorkerCount sets the number of workers for batch validation.
// Defaults to runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// WithPooling enables or disables object pooling.
func WithPooling(enable bool) Option {
	return func(o *Options) {
		o.EnablePooling = enable
	}
}

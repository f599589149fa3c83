package ctxt

import "github.com/viant/llmcc/rank"

// Options enumerates the external pipeline knobs of spec.md §6: disabling
// parallelism, dumping the HIR, capping ranker output, and an FQN clustering
// depth that is stored here but not read by the renderer.
type Options struct {
	// Sequential disables the work-stealing per-unit pipeline and runs
	// collection/binding/block-building one compile unit at a time —
	// used by tests that assert parallel and sequential runs agree
	// (spec.md §8 round-trip laws).
	Sequential bool

	// PrintIR dumps the HIR to a textual tree (hir.Dump) after building.
	PrintIR bool

	// TopK limits ranker output count; nil means unlimited.
	TopK *int

	// ComponentDepth records an FQN clustering depth. The render package
	// does not read it: DOT output is not grouped into clusters.
	ComponentDepth int

	// Languages restricts analysis to the given language tags (empty means
	// every language the caller's files resolve to via extension).
	Languages []string

	RankDirection rank.Direction
	RankConfig    rank.Config
}

// Option configures Options via the functional-options pattern (grounded on
// the teacher's analyzer.Option).
type Option func(*Options)

// WithSequential disables parallel phase execution.
func WithSequential(v bool) Option {
	return func(o *Options) { o.Sequential = v }
}

// WithPrintIR toggles the post-build HIR dump.
func WithPrintIR(v bool) Option {
	return func(o *Options) { o.PrintIR = v }
}

// WithTopK caps ranker output to the top k composite-score nodes.
func WithTopK(k int) Option {
	return func(o *Options) { o.TopK = &k }
}

// WithComponentDepth sets ComponentDepth; the renderer does not read it.
func WithComponentDepth(depth int) Option {
	return func(o *Options) { o.ComponentDepth = depth }
}

// WithLanguages restricts analysis to the named languages.
func WithLanguages(langs ...string) Option {
	return func(o *Options) { o.Languages = langs }
}

// WithRankDirection selects which relation the ranker's adjacency follows.
func WithRankDirection(d rank.Direction) Option {
	return func(o *Options) { o.RankDirection = d }
}

// WithRankConfig overrides the ranker's tunable parameters wholesale.
func WithRankConfig(cfg rank.Config) Option {
	return func(o *Options) { o.RankConfig = cfg }
}

// DefaultOptions returns the pipeline defaults (parallel, no IR dump, no
// top-k cap, component depth 2, DependsOn-directed ranking).
func DefaultOptions() Options {
	return Options{
		ComponentDepth: 2,
		RankDirection:  rank.DirectionDependsOn,
		RankConfig:     rank.DefaultConfig(),
	}
}

// NewOptions builds an Options value from the defaults plus the given
// overrides.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

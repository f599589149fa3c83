// Package rank implements the single-pass ranker of spec.md §4.10:
// PageRank, HITS, Brandes' betweenness, a proximity boost, and a composite
// score over a project's block adjacency. Grounded on llmcc-core's
// pagerank.rs, the original this spec was distilled from.
package rank

import "github.com/viant/llmcc/block"

// Direction selects which relation the adjacency follows.
type Direction uint8

const (
	// DirectionDependsOn ranks nodes the project heavily depends on (data
	// types) higher.
	DirectionDependsOn Direction = iota
	// DirectionDependedBy ranks orchestrators that many nodes depend on
	// higher.
	DirectionDependedBy
)

// Config is the ranker's tunable parameter set (spec.md §4.10; not a
// contract per §9's open questions — treat weights as tunable).
type Config struct {
	DampingFactor float64
	MaxIterations int
	Tolerance     float64
	Relation      block.Relation
	Direction     Direction

	ProximityEnabled    bool
	ProximityTopN       int
	ProximityMaxDepth   int
	ProximityAttenuation float64
	ProximityStrength   float64

	HitsIterations int

	BetweennessEnabled    bool
	BetweennessNormalized bool
}

// DefaultConfig mirrors llmcc-core's PageRankConfig::default.
func DefaultConfig() Config {
	return Config{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
		Relation:      block.RelDependsOn,
		Direction:     DirectionDependsOn,

		ProximityEnabled:     true,
		ProximityTopN:        20,
		ProximityMaxDepth:    4,
		ProximityAttenuation: 0.6,
		ProximityStrength:    10.0,

		HitsIterations: 50,

		BetweennessEnabled:    true,
		BetweennessNormalized: true,
	}
}

// Composite score weights (spec.md §4.10).
const (
	weightPageRank   = 0.40
	weightAuthority  = 0.25
	weightHub        = 0.15
	weightBetweenness = 0.20
)

// kindWeight returns the per-kind multiplier applied to a node's PageRank
// term before the composite score is computed (spec.md §4.10: Class/Enum
// 2.0, Func 1.5, else 1.0).
func kindWeight(k block.Kind) float64 {
	switch k {
	case block.KindClass:
		return 2.0
	case block.KindFunc:
		return 1.5
	default:
		return 1.0
	}
}

package rank

import (
	"math"
	"sort"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/ids"
)

// HITSScores holds one node's authority and hub score.
type HITSScores struct {
	Authority float64
	Hub       float64
}

// RankedBlock is the per-node ranking result of spec.md §4.10.
type RankedBlock struct {
	Node        Node
	PageRank    float64
	HITS        HITSScores
	Betweenness float64
	Composite   float64
}

// Result is the outcome of one Rank call, including convergence metadata
// useful for diagnostics and tests (spec.md §8 "converged" ranker property).
type Result struct {
	Blocks                []RankedBlock
	PageRankIterations    int
	PageRankConverged     bool
	TotalNodes            int
	IsolatedNodesFiltered int
}

// TopK returns the k highest-composite-score blocks, stable under ties by
// ascending name (spec.md §8: "stable under ties by descending composite
// score then ascending name"). Result.Blocks is already sorted this way;
// TopK just bounds it.
func (r Result) TopK(k int) []RankedBlock {
	if k < 0 || k >= len(r.Blocks) {
		return r.Blocks
	}
	return r.Blocks[:k]
}

// Rank computes PageRank, HITS, betweenness, and the composite score over
// adj's nodes restricted to "interesting" kinds (Class, Func — spec.md
// §4.10 filters to Class/Trait/Interface/Enum/Func; block.KindClass already
// folds Struct/Enum/Trait/Interface together, block.KindImpl is excluded as
// it names no symbol of its own).
func Rank(adj Adjacency, cfg Config) Result {
	all := adj.Entries()
	var interesting []Node
	for _, n := range all {
		if n.Kind == block.KindClass || n.Kind == block.KindFunc {
			interesting = append(interesting, n)
		}
	}
	totalInitial := len(interesting)
	if totalInitial == 0 {
		return Result{PageRankConverged: true}
	}

	indexByBlock := make(map[ids.BlockId]int, len(interesting))
	for i, n := range interesting {
		indexByBlock[n.BlockID] = i
	}

	outgoing := buildAdjacency(adj, interesting, indexByBlock, cfg)

	entries, outgoing, isolated := filterIsolated(interesting, outgoing)
	if len(entries) == 0 {
		return Result{TotalNodes: totalInitial, IsolatedNodesFiltered: isolated, PageRankConverged: true}
	}

	prScores, prIterations, prConverged := computePageRank(outgoing, cfg)
	hitsScores := computeHITS(outgoing, cfg)

	betweenness := make([]float64, len(entries))
	if cfg.BetweennessEnabled {
		betweenness = computeBetweenness(outgoing, cfg)
	}

	proximity := make([]float64, len(entries))
	for i := range proximity {
		proximity[i] = 1.0
	}
	if cfg.ProximityEnabled {
		proximity = computeProximity(prScores, outgoing, cfg)
	}

	ranked := make([]RankedBlock, len(entries))
	for i, n := range entries {
		weightedPR := prScores[i] * kindWeight(n.Kind) * proximity[i]
		composite := weightPageRank*weightedPR +
			weightAuthority*hitsScores[i].Authority +
			weightHub*hitsScores[i].Hub +
			weightBetweenness*betweenness[i]
		ranked[i] = RankedBlock{
			Node:        n,
			PageRank:    weightedPR,
			HITS:        hitsScores[i],
			Betweenness: betweenness[i],
			Composite:   composite,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Composite != ranked[j].Composite {
			return ranked[i].Composite > ranked[j].Composite
		}
		return ranked[i].Node.Name < ranked[j].Node.Name
	})

	return Result{
		Blocks:                ranked,
		PageRankIterations:    prIterations,
		PageRankConverged:     prConverged,
		TotalNodes:            totalInitial,
		IsolatedNodesFiltered: isolated,
	}
}

// relationToFollow resolves cfg.Relation/cfg.Direction into the concrete
// relation whose forward edges the adjacency should follow.
func relationToFollow(cfg Config) block.Relation {
	if cfg.Direction == DirectionDependsOn {
		return cfg.Relation
	}
	switch cfg.Relation {
	case block.RelDependsOn:
		return block.RelDependedBy
	case block.RelDependedBy:
		return block.RelDependsOn
	default:
		return cfg.Relation
	}
}

func buildAdjacency(adj Adjacency, entries []Node, indexByBlock map[ids.BlockId]int, cfg Config) [][]int {
	rel := relationToFollow(cfg)
	out := make([][]int, len(entries))
	for i, n := range entries {
		targets := adj.Related(n.BlockID, rel)
		seen := make(map[int]bool, len(targets))
		var row []int
		for _, t := range targets {
			j, ok := indexByBlock[t]
			if !ok || j == i || seen[j] {
				continue
			}
			seen[j] = true
			row = append(row, j)
		}
		sort.Ints(row)
		out[i] = row
	}
	return out
}

func filterIsolated(entries []Node, outgoing [][]int) ([]Node, [][]int, int) {
	incoming := make([]int, len(outgoing))
	for _, neighbours := range outgoing {
		for _, j := range neighbours {
			incoming[j]++
		}
	}
	keep := make([]bool, len(outgoing))
	isolated := 0
	for i, neighbours := range outgoing {
		keep[i] = len(neighbours) > 0 || incoming[i] > 0
		if !keep[i] {
			isolated++
		}
	}
	if isolated == 0 {
		return entries, outgoing, 0
	}

	var filtered []Node
	oldToNew := make(map[int]int)
	for i, n := range entries {
		if keep[i] {
			oldToNew[i] = len(filtered)
			filtered = append(filtered, n)
		}
	}
	if len(filtered) == 0 {
		return nil, nil, isolated
	}
	filteredOut := make([][]int, len(filtered))
	for i, n := range entries {
		if !keep[i] {
			continue
		}
		var row []int
		for _, j := range outgoing[i] {
			if keep[j] {
				row = append(row, oldToNew[j])
			}
		}
		filteredOut[oldToNew[i]] = row
	}
	return filtered, filteredOut, isolated
}

func computePageRank(adjacency [][]int, cfg Config) ([]float64, int, bool) {
	n := len(adjacency)
	ranks := make([]float64, n)
	for i := range ranks {
		ranks[i] = 1.0 / float64(n)
	}
	damping := cfg.DampingFactor
	teleport := (1.0 - damping) / float64(n)

	iterations := 0
	converged := false

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		iterations = iter + 1
		next := make([]float64, n)
		for i := range next {
			next[i] = teleport
		}

		sinkMass := 0.0
		for idx, neighbours := range adjacency {
			if len(neighbours) == 0 {
				sinkMass += ranks[idx]
				continue
			}
			share := ranks[idx] * damping / float64(len(neighbours))
			for _, target := range neighbours {
				next[target] += share
			}
		}

		if sinkMass > 0 {
			redistributed := sinkMass * damping / float64(n)
			for i := range next {
				next[i] += redistributed
			}
		}

		delta := 0.0
		for i := range next {
			delta += math.Abs(next[i] - ranks[i])
		}
		ranks = next

		if delta < cfg.Tolerance {
			converged = true
			break
		}
	}

	return ranks, iterations, converged
}

func computeHITS(adjacency [][]int, cfg Config) []HITSScores {
	n := len(adjacency)
	auth := make([]float64, n)
	hub := make([]float64, n)
	for i := range auth {
		auth[i] = 1.0
		hub[i] = 1.0
	}

	incoming := make([][]int, n)
	for i, neighbours := range adjacency {
		for _, j := range neighbours {
			incoming[j] = append(incoming[j], i)
		}
	}

	for iter := 0; iter < cfg.HitsIterations; iter++ {
		newAuth := make([]float64, n)
		newHub := make([]float64, n)

		for i := 0; i < n; i++ {
			for _, j := range incoming[i] {
				newAuth[i] += hub[j]
			}
		}
		for i := 0; i < n; i++ {
			for _, j := range adjacency[i] {
				newHub[i] += auth[j]
			}
		}

		authNorm := 0.0
		hubNorm := 0.0
		for i := 0; i < n; i++ {
			authNorm += newAuth[i] * newAuth[i]
			hubNorm += newHub[i] * newHub[i]
		}
		authNorm = math.Sqrt(authNorm)
		hubNorm = math.Sqrt(hubNorm)

		if authNorm > 1e-10 {
			for i := range newAuth {
				newAuth[i] /= authNorm
			}
		}
		if hubNorm > 1e-10 {
			for i := range newHub {
				newHub[i] /= hubNorm
			}
		}

		auth, hub = newAuth, newHub
	}

	out := make([]HITSScores, n)
	for i := range out {
		out[i] = HITSScores{Authority: auth[i], Hub: hub[i]}
	}
	return out
}

// computeBetweenness implements Brandes' algorithm over the graph treated
// as undirected (spec.md §4.10).
func computeBetweenness(adjacency [][]int, cfg Config) []float64 {
	n := len(adjacency)
	betweenness := make([]float64, n)

	incoming := make([][]int, n)
	for i, neighbours := range adjacency {
		for _, j := range neighbours {
			incoming[j] = append(incoming[j], i)
		}
	}

	for s := 0; s < n; s++ {
		var stack []int
		predecessors := make([][]int, n)
		sigma := make([]float64, n)
		sigma[s] = 1.0
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		dist[s] = 0

		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)

			relax := func(w int) {
				if dist[w] < 0 {
					queue = append(queue, w)
					dist[w] = dist[v] + 1
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
			for _, w := range adjacency[v] {
				relax(w)
			}
			for _, w := range incoming[v] {
				relax(w)
			}
		}

		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
			}
			if w != s {
				betweenness[w] += delta[w]
			}
		}
	}

	if cfg.BetweennessNormalized && n > 2 {
		norm := float64((n - 1) * (n - 2))
		for i := range betweenness {
			betweenness[i] /= norm
		}
	}

	return betweenness
}

// computeProximity implements the proximity boost of spec.md §4.10: a
// bounded-depth BFS from the top-N PageRank nodes over the undirected
// graph, accruing importance*attenuation^depth at every reached node.
func computeProximity(ranks []float64, adjacency [][]int, cfg Config) []float64 {
	n := len(ranks)
	if n == 0 {
		return nil
	}

	bidirectional := make([][]int, n)
	has := make([]map[int]bool, n)
	for i := range has {
		has[i] = make(map[int]bool)
	}
	for i, neighbours := range adjacency {
		for _, j := range neighbours {
			if !has[i][j] {
				has[i][j] = true
				bidirectional[i] = append(bidirectional[i], j)
			}
			if !has[j][i] {
				has[j][i] = true
				bidirectional[j] = append(bidirectional[j], i)
			}
		}
	}

	closeness := make([]float64, n)
	topIdx := make([]int, n)
	for i := range topIdx {
		topIdx[i] = i
	}
	sort.SliceStable(topIdx, func(i, j int) bool { return ranks[topIdx[i]] > ranks[topIdx[j]] })

	topN := cfg.ProximityTopN
	if topN > n {
		topN = n
	}
	topIdx = topIdx[:topN]
	if len(topIdx) == 0 {
		out := make([]float64, n)
		for i := range out {
			out[i] = 1.0
		}
		return out
	}

	totalTopWeight := 0.0
	for _, idx := range topIdx {
		totalTopWeight += ranks[idx]
	}

	for _, root := range topIdx {
		importance := 1.0 / float64(len(topIdx))
		if totalTopWeight > 0 {
			importance = ranks[root] / totalTopWeight
		}

		visited := make([]bool, n)
		visited[root] = true
		type item struct {
			node, depth int
		}
		queue := []item{{root, 0}}

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			decay := math.Pow(cfg.ProximityAttenuation, float64(cur.depth))
			closeness[cur.node] += importance * decay

			if cur.depth >= cfg.ProximityMaxDepth {
				continue
			}
			for _, neighbor := range bidirectional[cur.node] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, item{neighbor, cur.depth + 1})
				}
			}
		}
	}

	out := make([]float64, n)
	for i, boost := range closeness {
		out[i] = 1.0 + cfg.ProximityStrength*boost
	}
	return out
}

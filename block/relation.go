package block

import (
	"sort"
	"sync"

	"github.com/viant/llmcc/ids"
)

// edgeKey identifies one directed, typed edge for deduplication.
type edgeKey struct {
	from ids.BlockId
	to   ids.BlockId
	rel  Relation
}

// RelationMap is the directed typed-edge store of spec.md §3.6: a per-unit
// relation map is independent of other units during binding (spec.md §5);
// cross-unit merging happens later, single-threaded, in project.LinkUnits.
type RelationMap struct {
	mu      sync.RWMutex
	forward map[ids.BlockId]map[Relation][]ids.BlockId
	reverse map[ids.BlockId]map[Relation][]ids.BlockId
	seen    map[edgeKey]bool
}

// NewRelationMap creates an empty relation map.
func NewRelationMap() *RelationMap {
	return &RelationMap{
		forward: make(map[ids.BlockId]map[Relation][]ids.BlockId),
		reverse: make(map[ids.BlockId]map[Relation][]ids.BlockId),
		seen:    make(map[edgeKey]bool),
	}
}

// Insert records from --rel--> to, plus a reverse-index entry under the
// same relation (read back by In), deduplicated by (from, to, rel). Idempotent.
func (m *RelationMap) Insert(from, to ids.BlockId, rel Relation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := edgeKey{from, to, rel}
	if m.seen[key] {
		return
	}
	m.seen[key] = true

	if m.forward[from] == nil {
		m.forward[from] = make(map[Relation][]ids.BlockId)
	}
	m.forward[from][rel] = append(m.forward[from][rel], to)

	if m.reverse[to] == nil {
		m.reverse[to] = make(map[Relation][]ids.BlockId)
	}
	m.reverse[to][rel] = append(m.reverse[to][rel], from)
}

// Out returns the blocks reachable from id via rel.
func (m *RelationMap) Out(id ids.BlockId, rel Relation) []ids.BlockId {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.forward[id][rel]
	cp := make([]ids.BlockId, len(out))
	copy(cp, out)
	return cp
}

// In returns the blocks that reach id via rel.
func (m *RelationMap) In(id ids.BlockId, rel Relation) []ids.BlockId {
	m.mu.RLock()
	defer m.mu.RUnlock()
	in := m.reverse[id][rel]
	cp := make([]ids.BlockId, len(in))
	copy(cp, in)
	return cp
}

// Related returns the union of id's direct edges (in either direction)
// restricted to the given relations, deduplicated and sorted for
// deterministic output (spec.md §4.9 find_related_blocks, §5 ordering
// guarantees).
func (m *RelationMap) Related(id ids.BlockId, relations []Relation) []ids.BlockId {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set := make(map[ids.BlockId]bool)
	for _, rel := range relations {
		for _, to := range m.forward[id][rel] {
			set[to] = true
		}
		for _, from := range m.reverse[id][rel] {
			set[from] = true
		}
	}
	out := make([]ids.BlockId, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllFrom returns every (relation, to) edge recorded for id, used by
// traversal and the renderer's edge collectors.
func (m *RelationMap) AllFrom(id ids.BlockId) map[Relation][]ids.BlockId {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[Relation][]ids.BlockId, len(m.forward[id]))
	for rel, tos := range m.forward[id] {
		cp := make([]ids.BlockId, len(tos))
		copy(cp, tos)
		out[rel] = cp
	}
	return out
}

// Merge copies every edge of other into m, preserving deduplication. Used
// to fold a unit's relation map into the project-wide aggregate.
func (m *RelationMap) Merge(other *RelationMap) {
	other.mu.RLock()
	type flat struct {
		from, to ids.BlockId
		rel      Relation
	}
	var edges []flat
	for from, byRel := range other.forward {
		for rel, tos := range byRel {
			for _, to := range tos {
				edges = append(edges, flat{from, to, rel})
			}
		}
	}
	other.mu.RUnlock()

	for _, e := range edges {
		m.Insert(e.from, e.to, e.rel)
	}
}

// Reverse exposes Relation.reverse for callers (e.g. project.LinkUnits) that
// must insert the symmetric counterpart of a cross-unit edge.
func Reverse(rel Relation) Relation { return rel.reverse() }

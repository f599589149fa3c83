package project

import (
	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/ctxt"
	"github.com/viant/llmcc/ids"
	"github.com/viant/llmcc/internal/logx"
	"github.com/viant/llmcc/scope"
	"github.com/viant/llmcc/symbol"
)

// LinkUnits resolves the cross-unit references deferred by every unit's
// Binder (spec.md §4.7, §4.9): each placeholder UnresolvedType symbol is
// checked against globals again now that every unit has been collected; if
// a real definition now exists, every symbol that depended on the
// placeholder is re-linked to the real target, and a DependsOn/DependedBy
// block edge is materialized. Deduplicated by (from_block, to_block,
// relation) via RelationMap.Insert's own idempotency. Idempotent modulo
// ordering: re-running over an already-linked context performs no new
// inserts (spec.md §8).
func LinkUnits(c *ctxt.CompileCtxt, relations *block.RelationMap) {
	global := c.Scope(c.Globals)
	if global == nil {
		return
	}

	for _, ref := range c.Unresolved() {
		placeholder, ok := c.Symbol(ref.Placeholder)
		if !ok || placeholder.Kind != symbol.KindUnresolvedType {
			continue // not an unresolved placeholder
		}

		target := resolveGlobal(c, global, ref.NameKey, ref.Placeholder)
		if target == 0 {
			logx.Debug("cross-unit reference still unresolved", "name", ref.Name)
			continue
		}

		for _, dependent := range placeholder.Depended() {
			owner, ok := c.Symbol(dependent.Other)
			if !ok {
				continue
			}
			symbol.Link(c.Symbol, dependent.Other, target, dependent.Kind)

			if owner.HasBlock {
				if targetSym, ok := c.Symbol(target); ok && targetSym.HasBlock {
					relations.Insert(owner.BlockID, targetSym.BlockID, block.RelDependsOn)
					relations.Insert(targetSym.BlockID, owner.BlockID, block.RelDependedBy)
				}
			}
		}
	}
}

// resolveGlobal looks up nameKey in the project-global scope, skipping the
// placeholder itself and any other still-unresolved candidate.
func resolveGlobal(c *ctxt.CompileCtxt, global *scope.Scope, nameKey ids.InternedStr, placeholder ids.SymId) ids.SymId {
	candidates := append(append([]ids.SymId{}, global.ByFQN(nameKey)...), global.ByName(nameKey)...)
	for _, cand := range candidates {
		if cand == placeholder {
			continue
		}
		sym, ok := c.Symbol(cand)
		if !ok || sym.Kind == symbol.KindUnresolvedType {
			continue
		}
		return cand
	}
	return 0
}

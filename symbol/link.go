package symbol

import "github.com/viant/llmcc/ids"

// Resolver looks up a Symbol by id. CompileCtxt.Symbol satisfies this.
type Resolver func(ids.SymId) (*Symbol, bool)

// Link records a dependency edge from -> to of the given kind on both
// sides, one symbol at a time so no two symbol locks are ever held
// simultaneously (spec.md §5's "writers must never call back into another
// scope under a write guard", applied here to symbols). This is the only
// sanctioned way to add a dependency edge; callers must not call
// Symbol.AddDependency/AddDependent directly outside this function, which
// is what keeps the §3.4 reciprocity invariant from drifting.
func Link(resolve Resolver, from, to ids.SymId, kind DepKind) {
	if fromSym, ok := resolve(from); ok {
		fromSym.AddDependency(to, kind)
	}
	if toSym, ok := resolve(to); ok {
		toSym.AddDependent(from, kind)
	}
}

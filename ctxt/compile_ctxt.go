// Package ctxt implements the CompileCtxt of spec.md §4.1, §4.2: the
// arenas, intern pool, globals scope, and per-file CompileUnit views that
// every later phase (collect, bind, block, project) is handed instead of
// raw files.
package ctxt

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/afs"

	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/ids"
	"github.com/viant/llmcc/lang"
	"github.com/viant/llmcc/scope"
	"github.com/viant/llmcc/symbol"
)

// UnresolvedRef is a reference the binder could not resolve within its own
// compile unit, deferred for a later cross-unit pass (spec.md §4.7, §9).
type UnresolvedRef struct {
	UnitIndex int
	FromIdent ids.HirId
	Name      string
	NameKey   ids.InternedStr
	// ScopeID is the scope the reference was made from, used to replay the
	// lookup once every unit's globals have been merged.
	ScopeID ids.ScopeId
	// Placeholder is the UnresolvedType symbol the binder inserted in
	// place of a successful resolution, so project.LinkUnits can find
	// who depended on it once a real definition shows up.
	Placeholder ids.SymId
}

// CompileUnit is one source file's view into the shared CompileCtxt: its
// index, path, language, source bytes, and parsed HIR root (spec.md §4.1).
type CompileUnit struct {
	Index    int
	Path     string
	Language lang.Language
	Source   []byte
	Root     ids.HirId
	HasRoot  bool
	// FileScope is the scope that owns this unit's top-level declarations.
	FileScope ids.ScopeId
}

// CompileCtxt owns every arena, the intern pool, the project-global scope,
// and the per-unit bookkeeping a full compile pass over many files shares
// (spec.md §4.1). One CompileCtxt serves one project compile; all of its
// arenas are safe for concurrent access from the parallel per-unit pipeline
// (spec.md §5).
type CompileCtxt struct {
	Hir    *hir.Store
	Scopes *scope.Store
	Syms   *symbol.Store
	Blocks *block.Store
	Interner *InternPool

	Registry *lang.Registry
	Options  Options

	// Globals is the project-global scope, index 0 of every scope.Stack
	// built against this context.
	Globals ids.ScopeId

	units []*CompileUnit

	unresolvedMu sync.Mutex
	unresolved   []UnresolvedRef
}

// New creates an empty CompileCtxt wired to registry and configured by
// opts. Callers then populate it via FromFiles or FromSources.
func New(registry *lang.Registry, opts ...Option) *CompileCtxt {
	c := &CompileCtxt{
		Hir:      hir.NewStore(1024),
		Scopes:   scope.NewStore(64),
		Syms:     symbol.NewStore(1024),
		Blocks:   block.NewStore(1024),
		Interner: NewInternPool(),
		Registry: registry,
		Options:  NewOptions(opts...),
	}
	globalScope := scope.New(ids.InvalidHirId)
	c.Globals = c.Scopes.Alloc(globalScope)
	return c
}

// Scope implements scope.Provider.
func (c *CompileCtxt) Scope(id ids.ScopeId) *scope.Scope { return c.Scopes.Scope(id) }

// Symbol implements symbol.Resolver.
func (c *CompileCtxt) Symbol(id ids.SymId) (*symbol.Symbol, bool) { return c.Syms.Get(id) }

// Unit returns the CompileUnit at index, or nil if out of range.
func (c *CompileCtxt) Unit(index int) *CompileUnit {
	if index < 0 || index >= len(c.units) {
		return nil
	}
	return c.units[index]
}

// Units returns every registered compile unit, in file order.
func (c *CompileCtxt) Units() []*CompileUnit { return c.units }

// AddUnresolved records a reference the binder could not resolve locally,
// for the cross-unit linking pass (package project's LinkUnits).
func (c *CompileCtxt) AddUnresolved(ref UnresolvedRef) {
	c.unresolvedMu.Lock()
	defer c.unresolvedMu.Unlock()
	c.unresolved = append(c.unresolved, ref)
}

// Unresolved returns a snapshot of every deferred cross-unit reference.
func (c *CompileCtxt) Unresolved() []UnresolvedRef {
	c.unresolvedMu.Lock()
	defer c.unresolvedMu.Unlock()
	out := make([]UnresolvedRef, len(c.unresolved))
	copy(out, c.unresolved)
	return out
}

// FromSources registers one compile unit per (path, source) pair, resolving
// each path's language via Registry. It does not parse or build HIR — that
// is the caller's (project.RunPipeline's) job, run per unit so the
// parallel/sequential choice in Options stays at the orchestration layer,
// not buried in CompileCtxt.
func (c *CompileCtxt) FromSources(sources map[string][]byte) error {
	paths := make([]string, 0, len(sources))
	for path := range sources {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		src := sources[path]
		l, err := c.Registry.ForPath(path)
		if err != nil {
			return err
		}
		if len(c.Options.Languages) > 0 && !containsStr(c.Options.Languages, l.Name()) {
			continue
		}
		unit := &CompileUnit{
			Index:    len(c.units),
			Path:     path,
			Language: l,
			Source:   src,
		}
		c.units = append(c.units, unit)
	}
	return nil
}

// FromFiles downloads every path via an afs.Service (spec.md's domain-stack
// wiring note: file access goes through afs, not bare os.ReadFile, mirroring
// the teacher's analyzer.Analyzer and inspector/repository.Detector) and
// registers a compile unit for each, in the same order as paths.
func (c *CompileCtxt) FromFiles(ctx context.Context, paths []string) error {
	fs := afs.New()
	sources := make(map[string][]byte, len(paths))
	order := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := fs.DownloadWithURL(ctx, p)
		if err != nil {
			return fmt.Errorf("ctxt: download %s: %w", p, err)
		}
		sources[p] = data
		order = append(order, p)
	}
	for _, p := range order {
		l, err := c.Registry.ForPath(p)
		if err != nil {
			return err
		}
		if len(c.Options.Languages) > 0 && !containsStr(c.Options.Languages, l.Name()) {
			continue
		}
		unit := &CompileUnit{
			Index:    len(c.units),
			Path:     p,
			Language: l,
			Source:   sources[p],
		}
		c.units = append(c.units, unit)
	}
	return nil
}

func containsStr(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

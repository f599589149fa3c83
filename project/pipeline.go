package project

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/llmcc/bind"
	"github.com/viant/llmcc/block"
	"github.com/viant/llmcc/collect"
	"github.com/viant/llmcc/ctxt"
	"github.com/viant/llmcc/hir"
	"github.com/viant/llmcc/ids"
	"github.com/viant/llmcc/internal/logx"
	"github.com/viant/llmcc/internal/parallel"
	"github.com/viant/llmcc/rank"
)

// Result is what RunPipeline hands back: the linked project graph plus the
// ranker output over it (spec.md §6's only core output besides the two DOT
// strings, which callers derive via package render).
type Result struct {
	Graph *ProjectGraph
	Rank  rank.Result
}

// RunPipeline performs phases D→L of spec.md §2 over every unit already
// registered on c (via CompileCtxt.FromFiles/FromSources): parse, build
// HIR, collect, bind, build blocks, link cross-unit references, then rank.
// This is the one entry point spec.md §6 names besides the from_files/
// from_sources constructors.
func RunPipeline(ctx context.Context, c *ctxt.CompileCtxt) (*Result, error) {
	units := c.Units()
	bind.EnsurePrimitives(c)

	if err := parallel.Run(ctx, len(units), c.Options.Sequential, func(ctx context.Context, i int) error {
		unit := units[i]
		parseRoot, err := unit.Language.Parse(ctx, unit.Source)
		if err != nil {
			return fmt.Errorf("project: %s: %w", unit.Path, err)
		}
		builder := hir.NewBuilder(classifierFor(unit), c.Hir)
		unit.Root = builder.Build(parseRoot)
		unit.HasRoot = true
		return nil
	}); err != nil {
		return nil, err
	}

	if err := parallel.Run(ctx, len(units), c.Options.Sequential, func(ctx context.Context, i int) error {
		unit := units[i]
		col := collect.New(c, unit)
		unit.FileScope = col.Run()
		return nil
	}); err != nil {
		return nil, err
	}

	if err := parallel.Run(ctx, len(units), c.Options.Sequential, func(ctx context.Context, i int) error {
		unit := units[i]
		b := bind.New(c, unit)
		b.Run()
		return nil
	}); err != nil {
		return nil, err
	}

	relations := block.NewRelationMap()
	blockRoots := make(map[int]ids.BlockId, len(units))
	var blockRootsMu sync.Mutex

	if err := parallel.Run(ctx, len(units), c.Options.Sequential, func(ctx context.Context, i int) error {
		unit := units[i]
		builder := block.NewBuilder(c.Hir, c.Syms, c.Blocks, unit.Language)
		rootID := builder.Build(unit.Root)

		blockRootsMu.Lock()
		blockRoots[i] = rootID
		blockRootsMu.Unlock()
		return nil
	}); err != nil {
		return nil, err
	}

	block.LinkRelations(c.Syms, relations)

	graph := Build(c, blockRoots, relations)
	LinkUnits(c, relations)

	if c.Options.PrintIR {
		for _, unit := range units {
			logx.Debug("hir dump", "unit", unit.Path, "tree", hir.Dump(c.Hir, unit.Root, hir.DefaultDumpConfig()))
		}
	}

	rankResult := rank.Rank(graph, rankConfigFor(c))
	if c.Options.TopK != nil {
		rankResult.Blocks = rankResult.TopK(*c.Options.TopK)
	}

	return &Result{Graph: graph, Rank: rankResult}, nil
}

func rankConfigFor(c *ctxt.CompileCtxt) rank.Config {
	cfg := c.Options.RankConfig
	cfg.Direction = c.Options.RankDirection
	return cfg
}

// classifierFor adapts a lang.Language's HirKind method to hir.Classifier.
// lang.Language already matches hir.Classifier's single method structurally
// (spec.md §9's accept-interfaces note), so this is a pass-through — it
// exists as a named conversion point in case a future language needs to
// wrap classification (e.g. per-file overrides).
func classifierFor(unit *ctxt.CompileUnit) hir.Classifier {
	return unit.Language
}

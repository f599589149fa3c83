package hir

import (
	"fmt"
	"strings"

	"github.com/viant/llmcc/ids"
)

// DumpFormat selects how Dump renders a HIR subtree, grounded on
// llmcc-core's PrintFormat (Tree/Compact/Flat).
type DumpFormat uint8

const (
	FormatTree DumpFormat = iota
	FormatCompact
	FormatFlat
)

// DumpConfig controls Dump's output (a trimmed PrintConfig: the core only
// needs the `--print-ir` debug dump of spec.md §6, not the original's full
// snippet/line-info rendering machinery).
type DumpConfig struct {
	Format      DumpFormat
	MaxDepth    int
	IndentWidth int
	WithNodeIDs bool
}

// DefaultDumpConfig mirrors llmcc-core's PrintConfig::default (tree format,
// 2-space indent, depth cap 1000 to guard against pathological input).
func DefaultDumpConfig() DumpConfig {
	return DumpConfig{Format: FormatTree, MaxDepth: 1000, IndentWidth: 2}
}

// Dump renders the subtree rooted at id to a textual tree for the
// `print_ir` debug option (spec.md §6).
func Dump(store *Store, id ids.HirId, cfg DumpConfig) string {
	var b strings.Builder
	dump(&b, store, id, 0, cfg)
	return b.String()
}

func dump(b *strings.Builder, store *Store, id ids.HirId, depth int, cfg DumpConfig) {
	if depth > cfg.MaxDepth {
		b.WriteString(strings.Repeat(" ", depth*cfg.IndentWidth))
		b.WriteString("...\n")
		return
	}
	n := store.Get(id)
	if n == nil {
		return
	}

	switch cfg.Format {
	case FormatFlat:
		b.WriteString(n.Kind.String())
		if cfg.WithNodeIDs {
			fmt.Fprintf(b, " %s", id)
		}
		b.WriteString("\n")
		for _, c := range n.Children {
			dump(b, store, c, depth, cfg)
		}
	case FormatCompact:
		fmt.Fprintf(b, "(%s", n.Kind)
		for _, c := range n.Children {
			b.WriteString(" ")
			dump(b, store, c, depth+1, cfg)
		}
		b.WriteString(")")
		if depth == 0 {
			b.WriteString("\n")
		}
	default: // FormatTree
		b.WriteString(strings.Repeat(" ", depth*cfg.IndentWidth))
		fmt.Fprintf(b, "(%s", n.Kind)
		if cfg.WithNodeIDs {
			fmt.Fprintf(b, " %s", id)
		}
		if len(n.Children) == 0 {
			b.WriteString(")\n")
			return
		}
		b.WriteString("\n")
		for _, c := range n.Children {
			dump(b, store, c, depth+1, cfg)
		}
		b.WriteString(strings.Repeat(" ", depth*cfg.IndentWidth))
		b.WriteString(")\n")
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/viant/llmcc/ctxt"
	"github.com/viant/llmcc/internal/logx"
	"github.com/viant/llmcc/lang"
	"github.com/viant/llmcc/lang/cpp"
	"github.com/viant/llmcc/lang/golang"
	"github.com/viant/llmcc/lang/python"
	"github.com/viant/llmcc/lang/rust"
	"github.com/viant/llmcc/lang/typescript"
	"github.com/viant/llmcc/project"
	"github.com/viant/llmcc/render"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <file-or-directory>",
	Short: "Analyze a source tree and render its design and architecture graphs",
	Long:  `Parses every recognized source file under the given path, resolves symbols, ranks blocks, and prints the design and/or architecture DOT graphs.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("sequential", false, "disable the work-stealing per-unit pipeline")
	analyzeCmd.Flags().Bool("print-ir", false, "dump the built HIR to stderr")
	analyzeCmd.Flags().Int("top-k", 0, "limit ranker output to the top k composite-score blocks (0 = unlimited)")
	analyzeCmd.Flags().Int("component-depth", 2, "FQN clustering depth (stored in the options; the renderer does not read it)")
	analyzeCmd.Flags().String("graph", "design", "graph to print (design|arch|both)")
	analyzeCmd.Flags().StringSlice("lang", nil, "restrict analysis to the given language tags (default: all registered)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	sequential, err := cmd.Flags().GetBool("sequential")
	if err != nil {
		return err
	}
	printIR, err := cmd.Flags().GetBool("print-ir")
	if err != nil {
		return err
	}
	topK, err := cmd.Flags().GetInt("top-k")
	if err != nil {
		return err
	}
	componentDepth, err := cmd.Flags().GetInt("component-depth")
	if err != nil {
		return err
	}
	graphKind, err := cmd.Flags().GetString("graph")
	if err != nil {
		return err
	}
	langs, err := cmd.Flags().GetStringSlice("lang")
	if err != nil {
		return err
	}

	registry := lang.NewRegistry(golang.New(), rust.New(), cpp.New(), python.New(), typescript.New())

	opts := []ctxt.Option{
		ctxt.WithSequential(sequential),
		ctxt.WithPrintIR(printIR),
		ctxt.WithComponentDepth(componentDepth),
	}
	if topK > 0 {
		opts = append(opts, ctxt.WithTopK(topK))
	}
	if len(langs) > 0 {
		opts = append(opts, ctxt.WithLanguages(langs...))
	}

	c := ctxt.New(registry, opts...)

	if info, err := project.NewDetector().Detect(args[0]); err == nil && info.Type != "unknown" {
		logx.Debug("detected project", "root", info.RootPath, "type", info.Type, "name", info.Name)
	}

	paths, err := sourcePaths(args[0], registry)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("analyze: no recognized source files under %s", args[0])
	}

	ctx := cmd.Context()
	if err := c.FromFiles(ctx, paths); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	result, err := project.RunPipeline(ctx, c)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	switch graphKind {
	case "design":
		fmt.Println(render.DesignGraph(result.Graph))
	case "arch":
		fmt.Println(render.ArchGraph(result.Graph))
	case "both":
		fmt.Println(render.DesignGraph(result.Graph))
		fmt.Println(render.ArchGraph(result.Graph))
	default:
		return fmt.Errorf("analyze: unknown --graph value %q (want design|arch|both)", graphKind)
	}

	return nil
}

// sourcePaths resolves root to a list of files registry recognizes: root
// itself if it is a single file, or every matching file under it if it is
// a directory.
func sourcePaths(root string, registry *lang.Registry) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if _, err := registry.ForPath(root); err != nil {
			return nil, err
		}
		return []string{root}, nil
	}

	var out []string
	err = filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if fi.Name() == ".git" || fi.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if _, err := registry.ForPath(path); err != nil {
			return nil
		}
		out = append(out, path)
		return nil
	})
	return out, err
}

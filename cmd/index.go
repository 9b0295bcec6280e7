package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/indexer"
	"github.com/ziadkadry99/splatdocs/internal/progress"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the semantic search index",
	Long: `Embeds every selected subsection of both languages, plus one overview per
part, into a chromem vector index under {output_dir}/vectordb. Unchanged
subsections are skipped on later runs.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().Bool("force", false, "discard the existing index and rebuild from scratch")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := cfg.VectorDir()
	if force, _ := cmd.Flags().GetBool("force"); force {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}

	pipeline := indexer.NewPipeline(embedder, store, dir)
	pipeline.SetSelector(cfg.Selection())
	pipeline.SetReporter(progress.NewReporter("Indexing"))

	result, err := pipeline.Run(ctx, content.Course())
	if err != nil {
		return fmt.Errorf("indexing: %w", err)
	}

	fmt.Printf("\nIndex complete:\n")
	fmt.Printf("  Embedder:        %s (%d dims)\n", embedder.Name(), embedder.Dimensions())
	fmt.Printf("  Indexed:         %d\n", result.Indexed)
	fmt.Printf("  Skipped:         %d (unchanged)\n", result.Skipped)
	fmt.Printf("  Removed:         %d\n", result.Removed)
	if result.Rebuilt {
		fmt.Printf("  Rebuilt:         yes\n")
	}
	fmt.Printf("  Documents:       %d\n", store.Count())
	fmt.Printf("  Duration:        %s\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("  Output:          %s\n", dir)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "\nWarnings (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/filter"
	"github.com/ziadkadry99/splatdocs/internal/nav"
	"github.com/ziadkadry99/splatdocs/internal/progress"
	"github.com/ziadkadry99/splatdocs/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Export the course as a static website",
	Long: `Exports both languages as self-contained static HTML, one page per
subsection under {output}/{lang}/section/{id}/, with a keyword search index
per language. Widgets render in their initial state.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().String("output", "", "override output directory (defaults to {output_dir}/site)")
	siteCmd.Flags().StringSlice("include", nil, "only export subsections matching these globs (part/section/subsection)")
	siteCmd.Flags().StringSlice("exclude", nil, "skip subsections matching these globs")
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after exporting")
	siteCmd.Flags().Int("port", 8080, "port for the local server")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	catalog := content.Course()
	if err := checkParity(catalog, cfg.StrictParity, os.Stderr); err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.SiteDir()
	}

	sel := cfg.Selection()
	if cmd.Flags().Changed("include") {
		sel.Include, _ = cmd.Flags().GetStringSlice("include")
	}
	if cmd.Flags().Changed("exclude") {
		sel.Exclude, _ = cmd.Flags().GetStringSlice("exclude")
	}
	for _, patterns := range [][]string{sel.Include, sel.Exclude} {
		if bad, ok := filter.Valid(patterns); !ok {
			return fmt.Errorf("invalid glob pattern %q", bad)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator := site.NewSiteGenerator(catalog, outputDir, cfg.DefaultSubsection)
	generator.Select = sel
	generator.Expanded = nav.DefaultState(catalog.Tree(cfg.Language()).PartIDs(), cfg.ExpandedParts).Expanded
	generator.Reporter = progress.NewReporter("Exporting pages")
	pageCount, err := generator.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)

	serve, _ := cmd.Flags().GetBool("serve")
	if !serve {
		return nil
	}
	port, _ := cmd.Flags().GetInt("port")
	openBrowser, _ := cmd.Flags().GetBool("open")

	fmt.Printf("Serving at http://localhost:%d (press Ctrl+C to stop)\n", port)
	if err := site.Serve(ctx, outputDir, port, openBrowser); err != nil {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}

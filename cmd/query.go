package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Semantically search the course",
	Long:  `Searches the vector index with a natural language query and returns the closest subsections and part overviews.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().String("lang", "", "language to search (defaults to the config default_language)")
	queryCmd.Flags().Int("limit", 10, "maximum number of results")
	queryCmd.Flags().String("type", "", "filter by type: subsection, part")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	queryText := strings.Join(args, " ")

	limit, _ := cmd.Flags().GetInt("limit")
	typeFilter, _ := cmd.Flags().GetString("type")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	langFlag, _ := cmd.Flags().GetString("lang")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lang := cfg.Language()
	if langFlag != "" {
		if !i18n.Language(langFlag).Valid() {
			return fmt.Errorf("unsupported language %q (use es or en)", langFlag)
		}
		lang = i18n.Language(langFlag)
	}

	store, err := loadVectorStore(ctx, cfg, true)
	if err != nil {
		return fmt.Errorf("%w\nRun `splatdocs index` first to build the index", err)
	}
	if store.Count() == 0 {
		fmt.Println("Vector store is empty. Run `splatdocs index` first.")
		return nil
	}

	langTag := lang.String()
	filter := &vectordb.SearchFilter{Lang: &langTag}
	if typeFilter != "" {
		docType := vectordb.DocumentType(typeFilter)
		if docType != vectordb.DocTypeSubsection && docType != vectordb.DocTypePart {
			return fmt.Errorf("unknown type %q (use subsection or part)", typeFilter)
		}
		filter.Type = &docType
	}

	results, err := store.Search(ctx, queryText, limit, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		return printQueryResultsJSON(results)
	}

	fmt.Println(vectordb.FormatResults(results))
	return nil
}

type queryResultJSON struct {
	Rank         int     `json:"rank"`
	Similarity   float64 `json:"similarity"`
	Type         string  `json:"type"`
	Lang         string  `json:"lang"`
	PartID       string  `json:"part_id"`
	SectionID    string  `json:"section_id,omitempty"`
	SubsectionID string  `json:"subsection_id,omitempty"`
	Title        string  `json:"title"`
	Summary      string  `json:"summary"`
}

func printQueryResultsJSON(results []vectordb.SearchResult) error {
	out := make([]queryResultJSON, 0, len(results))
	for i, r := range results {
		md := r.Document.Metadata
		out = append(out, queryResultJSON{
			Rank:         i + 1,
			Similarity:   float64(r.Similarity),
			Type:         string(md.Type),
			Lang:         md.Lang,
			PartID:       md.PartID,
			SectionID:    md.SectionID,
			SubsectionID: md.SubsectionID,
			Title:        md.Title,
			Summary:      vectordb.Excerpt(r.Document.Content, 200),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

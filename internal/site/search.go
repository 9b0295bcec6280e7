package site

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/filter"
)

// SearchEntry represents a single searchable subsection.
type SearchEntry struct {
	ID      string `json:"id"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	Part    string `json:"part"`
	Section string `json:"section"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex builds the client-side keyword index for one tree.
// Subsections rejected by sel are left out.
func BuildSearchIndex(t *content.Tree, sel filter.Set, links Links) []SearchEntry {
	var entries []SearchEntry
	for _, p := range t.Parts {
		for _, s := range p.Sections {
			for _, sub := range s.Subsections {
				if !sel.Match(filter.Path(p.ID, s.ID, sub.ID)) {
					continue
				}
				text := plain(sub.Body.PlainText())
				entries = append(entries, SearchEntry{
					ID:      sub.ID,
					Path:    links.Subsection(t.Lang, sub.ID),
					Title:   sub.Title,
					Part:    p.Title,
					Section: s.Title,
					Summary: summarize(text, 160),
					Content: summarize(text, 2000),
				})
			}
		}
	}
	return entries
}

// plain strips the markdown markers that would otherwise pollute matching.
func plain(md string) string {
	r := strings.NewReplacer("**", "", "*", "", "#", "", "> ", "", "- ", "", "`", "")
	return strings.Join(strings.Fields(r.Replace(md)), " ")
}

func summarize(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := strings.LastIndex(s[:n], " ")
	if cut <= 0 {
		cut = n
	}
	return s[:cut] + "..."
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

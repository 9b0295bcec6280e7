package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/filter"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/nav"
	"github.com/ziadkadry99/splatdocs/internal/progress"
)

const (
	styleFile       = "style.css"
	scriptFile      = "script.js"
	searchIndexFile = "search-index.json"
)

// SiteGenerator exports every subsection of every language as a static
// HTML page.
type SiteGenerator struct {
	Catalog   *content.Catalog
	OutputDir string
	// DefaultID is where the root index.html redirects.
	DefaultID string
	Select    filter.Set
	Expanded  nav.Expansion
	Reporter  progress.Reporter
}

// NewSiteGenerator creates a SiteGenerator writing to outputDir.
func NewSiteGenerator(catalog *content.Catalog, outputDir, defaultID string) *SiteGenerator {
	return &SiteGenerator{
		Catalog:   catalog,
		OutputDir: outputDir,
		DefaultID: defaultID,
		Reporter:  progress.Nop{},
	}
}

type exportJob struct {
	lang i18n.Language
	id   string
}

// Generate builds the full static site. Returns the number of pages
// generated.
func (g *SiteGenerator) Generate(ctx context.Context) (int, error) {
	pages, err := NewPages(g.Catalog, NewRenderer())
	if err != nil {
		return 0, err
	}

	var jobs []exportJob
	for _, lang := range g.Catalog.Languages() {
		tree := g.Catalog.Tree(lang)
		for _, e := range content.Flatten(tree) {
			if g.Select.Match(filter.Path(e.PartID, e.SectionID, e.ID)) {
				jobs = append(jobs, exportJob{lang: lang, id: e.ID})
			}
		}
	}
	if len(jobs) == 0 {
		return 0, fmt.Errorf("no subsections selected for export")
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, styleFile), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, scriptFile), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	for _, lang := range g.Catalog.Languages() {
		tree := g.Catalog.Tree(lang)
		dir := filepath.Join(g.OutputDir, string(lang))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
		entries := BuildSearchIndex(tree, g.Select, StaticLinks(0))
		if err := WriteSearchIndex(entries, filepath.Join(dir, searchIndexFile)); err != nil {
			return 0, fmt.Errorf("writing search index: %w", err)
		}
	}

	if err := g.writeRedirect(); err != nil {
		return 0, err
	}

	g.Reporter.Start(len(jobs))
	defer g.Reporter.Finish()
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := g.renderPage(pages, job); err != nil {
			return i, fmt.Errorf("rendering %s/%s: %w", job.lang, job.id, err)
		}
		g.Reporter.Update(i+1, string(job.lang)+"/"+job.id)
	}
	return len(jobs), nil
}

// PagePath is the export path of a subsection relative to the output root.
func PagePath(lang i18n.Language, id string) string {
	return filepath.Join(string(lang), "section", id, "index.html")
}

func (g *SiteGenerator) renderPage(pages *Pages, job exportJob) error {
	expanded := g.Expanded
	if expanded == nil {
		expanded = nav.NewExpansion(g.Catalog.Tree(job.lang).PartIDs()...)
	}
	view, err := pages.View(nav.Resolve(g.Catalog, job.lang, job.id), expanded, StaticLinks(3))
	if err != nil {
		return err
	}

	outPath := filepath.Join(g.OutputDir, PagePath(job.lang, job.id))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return pages.Write(f, view)
}

// writeRedirect writes the root index.html pointing at the default page in
// the default language.
func (g *SiteGenerator) writeRedirect() error {
	target := StaticLinks(0).Subsection(i18n.Default, g.DefaultID)
	html := fmt.Sprintf(redirectTemplate, target, target)
	return os.WriteFile(filepath.Join(g.OutputDir, "index.html"), []byte(html), 0o644)
}

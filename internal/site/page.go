package site

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/nav"
)

// NavLink is a previous/next footer link.
type NavLink struct {
	Label string
	Title string
	Href  string
}

// PageView holds the data passed to the HTML template for each page.
type PageView struct {
	Lang            i18n.Language
	Title           string
	Brand           string
	PartTitle       string
	PartDescription string
	SectionTitle    string
	Content         template.HTML
	Sidebar         template.HTML
	Found           bool
	Placeholder     string
	Prev            *NavLink
	Next            *NavLink
	ToggleLabel     string
	ToggleHref      string
	CurrentID       string
	SearchLabel     string
	NoResultsLabel  string
	StyleHref       string
	ScriptHref      string
	SearchIndexHref string

	// Root prefixes search result paths: "" for live pages, the relative
	// way back to the export root for static ones.
	Root     string
	Static   bool
	Semantic bool
}

// Pages builds and writes full HTML pages.
type Pages struct {
	catalog  *content.Catalog
	renderer *Renderer
	tmpl     *template.Template
}

// NewPages parses the page template.
func NewPages(catalog *content.Catalog, renderer *Renderer) (*Pages, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Pages{catalog: catalog, renderer: renderer, tmpl: tmpl}, nil
}

// View assembles the template data for a resolved page.
func (p *Pages) View(page nav.Page, expanded nav.Expansion, links Links) (PageView, error) {
	lang := page.Lang
	tree := p.catalog.Tree(lang)

	v := PageView{
		Lang:            lang,
		Brand:           i18n.T(lang, i18n.MsgBrand),
		Found:           page.Found,
		Placeholder:     page.Placeholder,
		ToggleLabel:     i18n.T(lang, i18n.MsgToggle),
		CurrentID:       page.ID,
		SearchLabel:     i18n.T(lang, i18n.MsgSearch),
		NoResultsLabel:  i18n.T(lang, i18n.MsgNoResults),
		StyleHref:       links.Asset(lang, styleFile),
		ScriptHref:      links.Asset(lang, scriptFile),
		SearchIndexHref: links.Asset(lang, searchIndexFile),
		Root:            links.BasePath,
		Static:          links.Static,
	}
	if links.Static {
		v.ToggleHref = links.Subsection(lang.Toggle(), page.ID)
	}

	var activeSection string
	if page.Found {
		activeSection = page.Entry.SectionID
		v.Title = page.Entry.Title
		if page.Part != nil {
			v.PartTitle = page.Part.Title
			v.PartDescription = page.Part.Description
		}
		if page.Section != nil {
			v.SectionTitle = page.Section.Title
		}
		body, err := p.renderer.Body(page.Entry.Body, lang)
		if err != nil {
			return PageView{}, fmt.Errorf("rendering %s: %w", page.ID, err)
		}
		v.Content = body
		if page.Prev != nil {
			v.Prev = &NavLink{Label: i18n.T(lang, i18n.MsgPrevious), Title: page.Prev.Title, Href: links.Subsection(lang, page.Prev.ID)}
		}
		if page.Next != nil {
			v.Next = &NavLink{Label: i18n.T(lang, i18n.MsgNext), Title: page.Next.Title, Href: links.Subsection(lang, page.Next.ID)}
		}
	} else {
		v.Title = i18n.T(lang, i18n.MsgBrand)
	}
	v.Sidebar = Sidebar(tree, expanded, activeSection, page.ID, links)
	return v, nil
}

// Write renders a view.
func (p *Pages) Write(w io.Writer, v PageView) error {
	return p.tmpl.Execute(w, v)
}

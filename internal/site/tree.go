package site

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/nav"
)

// Links builds URLs for one rendering mode. Live pages use absolute server
// routes; exported pages use paths relative to the page being written.
type Links struct {
	Static bool
	// BasePath is the relative prefix back to the export root, e.g.
	// "../../../" for {lang}/section/{id}/index.html.
	BasePath string
}

// LiveLinks are the server routes.
var LiveLinks = Links{}

// StaticLinks returns links for a page nested depth directories below the
// export root.
func StaticLinks(depth int) Links {
	return Links{Static: true, BasePath: strings.Repeat("../", depth)}
}

// Subsection is the URL of a subsection page.
func (l Links) Subsection(lang i18n.Language, id string) string {
	if l.Static {
		return l.BasePath + string(lang) + "/section/" + id + "/"
	}
	return "/section/" + id
}

// Asset is the URL of a css/js/json file.
func (l Links) Asset(lang i18n.Language, name string) string {
	if l.Static {
		if name == searchIndexFile {
			return l.BasePath + string(lang) + "/" + name
		}
		return l.BasePath + name
	}
	if name == searchIndexFile {
		return "/api/search-index?lang=" + string(lang)
	}
	return "/static/" + name
}

// Sidebar renders the part/section/subsection outline. Expanded parts show
// their sections; the active section also lists its subsections.
func Sidebar(t *content.Tree, expanded nav.Expansion, activeSection, activeID string, links Links) template.HTML {
	var b strings.Builder
	b.WriteString("<ul class=\"parts\">\n")
	for _, p := range t.Parts {
		open := expanded.Has(p.ID)
		class := "part"
		if open {
			class += " expanded"
		}
		fmt.Fprintf(&b, `<li class="%s" data-part="%s">`, class, p.ID)
		if links.Static {
			fmt.Fprintf(&b, `<button type="button" class="part-toggle">%s</button>`+"\n", template.HTMLEscapeString(p.Title))
		} else {
			fmt.Fprintf(&b, `<form method="post" action="/sidebar/%s/toggle"><input type="hidden" name="return" value="%s"><button type="submit" class="part-toggle">%s</button></form>`+"\n",
				template.URLQueryEscaper(p.ID), template.HTMLEscapeString(activeID), template.HTMLEscapeString(p.Title))
		}
		// Static pages always emit the sections so the script can expand
		// parts without a round trip.
		if open || links.Static {
			renderSections(&b, t.Lang, p, activeSection, activeID, links)
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
	return template.HTML(b.String())
}

func renderSections(b *strings.Builder, lang i18n.Language, p content.Part, activeSection, activeID string, links Links) {
	b.WriteString("<ul class=\"sections\">\n")
	for _, s := range p.Sections {
		first, ok := s.FirstSubsection()
		if !ok {
			continue
		}
		class := ""
		if s.ID == activeSection {
			class = ` class="active"`
		}
		fmt.Fprintf(b, `<li%s><a href="%s">%s</a>`, class, links.Subsection(lang, first), template.HTMLEscapeString(s.Title))
		if s.ID == activeSection {
			b.WriteString("\n<ul class=\"subsections\">\n")
			for _, sub := range s.Subsections {
				subClass := ""
				if sub.ID == activeID {
					subClass = ` class="active"`
				}
				fmt.Fprintf(b, `<li%s><a href="%s">%s</a></li>`+"\n", subClass, links.Subsection(lang, sub.ID), template.HTMLEscapeString(sub.Title))
			}
			b.WriteString("</ul>\n")
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}

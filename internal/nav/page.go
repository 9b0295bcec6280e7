package nav

import (
	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
)

// Page is a resolved route: the subsection to render and everything around
// it. When Found is false only Lang, ID and Placeholder are meaningful.
type Page struct {
	Lang        i18n.Language
	ID          string
	Found       bool
	Index       int
	Entry       content.Entry
	Prev        *content.Entry
	Next        *content.Entry
	Part        *content.Part
	Section     *content.Section
	Placeholder string
}

// Resolve looks id up in the tree for lang. A missing id is not an error:
// the page carries the localized placeholder instead.
func Resolve(c *content.Catalog, lang i18n.Language, id string) Page {
	tree := c.Tree(lang)
	p := Page{Lang: tree.Lang, ID: id, Index: content.NotFound}

	flat := content.Flatten(tree)
	i := content.ResolveCurrent(flat, id)
	if i == content.NotFound {
		p.Placeholder = i18n.T(tree.Lang, i18n.MsgNotFound)
		return p
	}
	p.Found = true
	p.Index = i
	p.Entry = flat[i]
	p.Prev, p.Next = content.Neighbors(flat, i)
	p.Part, _ = tree.Part(p.Entry.PartID)
	p.Section, _, _ = tree.Section(p.Entry.SectionID)
	return p
}

// SectionTarget maps a section id to its first subsection so that
// "/section/7" keeps working. It reports false when id is not a section or
// the section is empty.
func SectionTarget(t *content.Tree, id string) (string, bool) {
	s, _, ok := t.Section(id)
	if !ok {
		return "", false
	}
	return s.FirstSubsection()
}

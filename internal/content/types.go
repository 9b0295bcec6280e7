// Package content holds the course trees and the pure navigation functions
// that operate on them.
package content

import (
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/widgets"
)

// Part is a top-level chapter.
type Part struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections"`
}

// Section belongs to exactly one Part.
type Section struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Subsections []Subsection `json:"subsections"`
}

// Subsection is the smallest routable unit; one page of the site.
type Subsection struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  Body   `json:"-"`
}

// Tree is one language's complete course. Trees are built once and never
// mutated.
type Tree struct {
	Lang  i18n.Language `json:"lang"`
	Parts []Part        `json:"parts"`
}

// BodyKind tags a Body.
type BodyKind int

const (
	BodyText BodyKind = iota
	BodyComposite
)

// Body is either a plain text paragraph or a composite of prose and demo
// blocks. Callers switch on Kind.
type Body struct {
	Kind   BodyKind
	Text   string
	Blocks []Block
}

// Text builds a plain text body.
func Text(s string) Body { return Body{Kind: BodyText, Text: s} }

// Composite builds a body made of blocks.
func Composite(blocks ...Block) Body { return Body{Kind: BodyComposite, Blocks: blocks} }

// BlockKind tags a Block.
type BlockKind int

const (
	BlockProse BlockKind = iota
	BlockDemo
)

// Block is one element of a composite body: markdown prose or an embedded
// widget.
type Block struct {
	Kind     BlockKind
	Markdown string
	Widget   widgets.Kind
}

// Prose builds a markdown block.
func Prose(md string) Block { return Block{Kind: BlockProse, Markdown: md} }

// Demo builds a widget block.
func Demo(k widgets.Kind) Block { return Block{Kind: BlockDemo, Widget: k} }

// Widgets lists the widget kinds a body embeds, in order.
func (b Body) Widgets() []widgets.Kind {
	var out []widgets.Kind
	for _, blk := range b.Blocks {
		if blk.Kind == BlockDemo {
			out = append(out, blk.Widget)
		}
	}
	return out
}

// PlainText returns the body's prose with demo blocks dropped. It feeds the
// search index.
func (b Body) PlainText() string {
	if b.Kind == BodyText {
		return b.Text
	}
	var s string
	for _, blk := range b.Blocks {
		if blk.Kind != BlockProse {
			continue
		}
		if s != "" {
			s += "\n\n"
		}
		s += blk.Markdown
	}
	return s
}

// Catalog selects a Tree by language.
type Catalog struct {
	trees map[i18n.Language]*Tree
}

// NewCatalog builds a catalog from the given trees. A later tree for the
// same language replaces an earlier one.
func NewCatalog(trees ...*Tree) *Catalog {
	c := &Catalog{trees: make(map[i18n.Language]*Tree, len(trees))}
	for _, t := range trees {
		c.trees[t.Lang] = t
	}
	return c
}

// Course returns the built-in bilingual catalog.
func Course() *Catalog {
	return NewCatalog(Spanish(), English())
}

// Tree returns the tree for lang, falling back to the default language.
func (c *Catalog) Tree(lang i18n.Language) *Tree {
	if t, ok := c.trees[lang]; ok {
		return t
	}
	return c.trees[i18n.Default]
}

// Languages lists the languages present in the catalog, in i18n.All order.
func (c *Catalog) Languages() []i18n.Language {
	var out []i18n.Language
	for _, l := range i18n.All {
		if _, ok := c.trees[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

package site

import (
	"bytes"
	"fmt"
	"html/template"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/widgets"
)

// Renderer turns subsection bodies into HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GitHub flavoured markdown.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Markdown converts a markdown fragment.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Body renders a subsection body. Demo blocks become widget figures in
// their initial state.
func (r *Renderer) Body(b content.Body, lang i18n.Language) (template.HTML, error) {
	switch b.Kind {
	case content.BodyText:
		return template.HTML("<p>" + template.HTMLEscapeString(b.Text) + "</p>"), nil
	case content.BodyComposite:
		var out strings.Builder
		for i, blk := range b.Blocks {
			switch blk.Kind {
			case content.BlockProse:
				h, err := r.Markdown(blk.Markdown)
				if err != nil {
					return "", err
				}
				out.WriteString(string(h))
			case content.BlockDemo:
				h, err := DemoHTML(blk.Widget, lang)
				if err != nil {
					return "", fmt.Errorf("block %d: %w", i, err)
				}
				out.WriteString(string(h))
			}
		}
		return template.HTML(out.String()), nil
	default:
		return "", fmt.Errorf("unknown body kind %d", b.Kind)
	}
}

// demoSeed keeps rendered pages reproducible.
const demoSeed = 3

// DemoHTML renders a freshly mounted widget with its controls. The figure
// carries data-widget so the page script can attach it to the live host.
func DemoHTML(kind widgets.Kind, lang i18n.Language) (template.HTML, error) {
	w, err := widgets.New(kind, rand.New(rand.NewPCG(demoSeed, demoSeed)))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<figure class="demo" data-widget="%s">`+"\n", kind)
	fmt.Fprintf(&b, `<figcaption>%s</figcaption>`+"\n", template.HTMLEscapeString(w.Title(lang)))
	fmt.Fprintf(&b, `<div class="demo-canvas">%s</div>`+"\n", w.Render(lang))
	b.WriteString(`<div class="demo-controls">` + "\n")
	for _, c := range w.Controls(lang) {
		writeControl(&b, c)
	}
	b.WriteString("</div>\n</figure>\n")
	return template.HTML(b.String()), nil
}

func writeControl(b *strings.Builder, c widgets.Control) {
	label := template.HTMLEscapeString(c.Label)
	switch c.Type {
	case widgets.ControlSlider:
		fmt.Fprintf(b, `<label class="demo-slider">%s <input type="range" data-action="%s" min="%s" max="%s" step="%s" value="%s"></label>`+"\n",
			label, c.Name, num(c.Min), num(c.Max), num(stepOrDefault(c.Step)), num(c.Value))
	case widgets.ControlButton:
		fmt.Fprintf(b, `<button type="button" data-action="%s">%s</button>`+"\n", c.Name, label)
	case widgets.ControlChoice:
		fmt.Fprintf(b, `<span class="demo-choice" data-action="%s">%s `, c.Name, label)
		for _, opt := range c.Options {
			fmt.Fprintf(b, `<button type="button" data-option="%s">%s</button>`, opt, template.HTMLEscapeString(opt))
		}
		b.WriteString("</span>\n")
	}
}

func stepOrDefault(s float64) float64 {
	if s <= 0 {
		return 1
	}
	return s
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package widgets

import (
	"fmt"
	"html"
	"strings"
)

const (
	colorBackground = "#020617"
	colorPanel      = "#0f172a"
	colorGrid       = "#1e293b"
	colorMuted      = "#64748b"
	colorText       = "#e2e8f0"
	colorIndigo     = "#6366f1"
	colorEmerald    = "#10b981"
	colorRose       = "#f43f5e"
	colorBlue       = "#3b82f6"
	colorAmber      = "#f59e0b"
	colorSlate      = "#94a3b8"
)

// canvas accumulates SVG markup.
type canvas struct {
	b strings.Builder
}

func newCanvas(width, height int) *canvas {
	c := &canvas{}
	fmt.Fprintf(&c.b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`, width, height, width, height)
	fmt.Fprintf(&c.b, `<rect width="%d" height="%d" rx="8" fill="%s"/>`, width, height, colorBackground)
	return c
}

func (c *canvas) circle(cx, cy, r float64, fill string, opacity float64) {
	fmt.Fprintf(&c.b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f"/>`, cx, cy, r, fill, opacity)
}

func (c *canvas) ring(cx, cy, r float64, stroke string, dashed bool) {
	dash := ""
	if dashed {
		dash = ` stroke-dasharray="4 4"`
	}
	fmt.Fprintf(&c.b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s"%s/>`, cx, cy, r, stroke, dash)
}

func (c *canvas) ellipse(cx, cy, rx, ry, rotation float64, fill string, opacity float64) {
	fmt.Fprintf(&c.b, `<ellipse cx="%.2f" cy="%.2f" rx="%.2f" ry="%.2f" transform="rotate(%.2f %.2f %.2f)" fill="%s" fill-opacity="%.2f"/>`,
		cx, cy, rx, ry, rotation, cx, cy, fill, opacity)
}

func (c *canvas) rect(x, y, w, h float64, fill string, opacity float64) {
	fmt.Fprintf(&c.b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%.2f"/>`, x, y, w, h, fill, opacity)
}

func (c *canvas) line(x1, y1, x2, y2 float64, stroke string, width float64) {
	fmt.Fprintf(&c.b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`, x1, y1, x2, y2, stroke, width)
}

func (c *canvas) path(d, stroke string, width float64, dashed bool) {
	dash := ""
	if dashed {
		dash = ` stroke-dasharray="4 4"`
	}
	fmt.Fprintf(&c.b, `<path d="%s" fill="none" stroke="%s" stroke-width="%.2f"%s/>`, d, stroke, width, dash)
}

func (c *canvas) text(x, y float64, size int, fill, anchor, s string) {
	fmt.Fprintf(&c.b, `<text x="%.2f" y="%.2f" font-size="%d" font-family="sans-serif" fill="%s" text-anchor="%s">%s</text>`,
		x, y, size, fill, anchor, html.EscapeString(s))
}

func (c *canvas) String() string {
	return c.b.String() + "</svg>"
}

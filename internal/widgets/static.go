package widgets

import (
	"fmt"
	"math"

	"github.com/ziadkadry99/splatdocs/internal/i18n"
)

// ---- Projection ----

// ProjectionResult is the 2D footprint of the demo ellipsoid.
type ProjectionResult struct {
	Width3D  float64 `json:"width_3d"`
	Scale    float64 `json:"scale"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// Projection shows how depth and rotation change a splat's screen ellipse.
type Projection struct {
	depth    float64
	rotation float64
}

func NewProjection() *Projection { return &Projection{depth: 50} }

// Project applies the fake perspective divide.
func (p *Projection) Project() ProjectionResult {
	rad := p.rotation * math.Pi / 180
	width3D := 30 + math.Abs(math.Cos(rad))*20
	scale := 100 / (p.depth + 20)
	return ProjectionResult{
		Width3D:  width3D,
		Scale:    scale,
		Width:    width3D * scale,
		Height:   40 * scale,
		Rotation: math.Sin(rad) * 45,
	}
}

func (p *Projection) Kind() Kind { return KindProjection }

func (p *Projection) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Proyección 3D → 2D (EWA Splatting)", "3D → 2D Projection (EWA Splatting)")
}

func (p *Projection) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "depth", Type: ControlSlider, Label: i18n.Pick(lang, "Profundidad (Z)", "Depth (Z)"), Min: 10, Max: 150, Step: 1, Value: p.depth},
		{Name: "rotation", Type: ControlSlider, Label: i18n.Pick(lang, "Rotación (Y)", "Rotation (Y)"), Min: 0, Max: 180, Step: 1, Value: p.rotation},
	}
}

func (p *Projection) Apply(a Action) (Effect, error) {
	switch a.Name {
	case "depth":
		p.depth = clamp(a.Value, 10, 150)
	case "rotation":
		p.rotation = clamp(a.Value, 0, 180)
	default:
		return Effect{}, unknownAction(p.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (p *Projection) Snapshot() any {
	return map[string]any{"depth": p.depth, "rotation": p.rotation, "projection": p.Project()}
}

func (p *Projection) Render(lang i18n.Language) string {
	r := p.Project()
	c := newCanvas(400, 220)
	c.text(100, 20, 11, colorSlate, "middle", "3D")
	c.ellipse(100, 110, (30+math.Abs(math.Cos(p.rotation*math.Pi/180))*20)/2, 20, p.rotation/4, colorIndigo, 0.6)
	c.line(180, 110, 220, 110, colorMuted, 1)
	c.text(300, 20, 11, colorSlate, "middle", i18n.Pick(lang, "Imagen 2D", "2D Image"))
	c.ellipse(300, 110, r.Width, r.Height, r.Rotation, colorEmerald, 0.7)
	c.text(300, 205, 10, colorMuted, "middle", fmt.Sprintf("scale = %.2f", r.Scale))
	return c.String()
}

// ---- Rasterization ----

const (
	rasterGrid   = 10
	rasterRadius = 25.0
)

// Rasterization shows per-tile coverage of a splat dragged over a grid.
type Rasterization struct {
	x, y float64
}

func NewRasterization() *Rasterization { return &Rasterization{x: 50, y: 50} }

// Coverage returns the intensity of each grid cell, row-major.
func (r *Rasterization) Coverage() [rasterGrid][rasterGrid]float64 {
	var grid [rasterGrid][rasterGrid]float64
	for row := 0; row < rasterGrid; row++ {
		for col := 0; col < rasterGrid; col++ {
			cx := float64(col)*10 + 5
			cy := float64(row)*10 + 5
			d := math.Hypot(cx-r.x, cy-r.y)
			if d < rasterRadius {
				grid[row][col] = math.Pow(1-d/rasterRadius, 1.5)
			}
		}
	}
	return grid
}

func (r *Rasterization) Kind() Kind { return KindRasterization }

func (r *Rasterization) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Rasterización por Tiles", "Tile Rasterization")
}

func (r *Rasterization) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "x", Type: ControlSlider, Label: "X", Min: 0, Max: 100, Step: 1, Value: r.x},
		{Name: "y", Type: ControlSlider, Label: "Y", Min: 0, Max: 100, Step: 1, Value: r.y},
	}
}

func (r *Rasterization) Apply(a Action) (Effect, error) {
	switch a.Name {
	case "x":
		r.x = clamp(a.Value, 0, 100)
	case "y":
		r.y = clamp(a.Value, 0, 100)
	default:
		return Effect{}, unknownAction(r.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (r *Rasterization) Snapshot() any {
	return map[string]any{"x": r.x, "y": r.y, "coverage": r.Coverage()}
}

func (r *Rasterization) Render(lang i18n.Language) string {
	c := newCanvas(240, 240)
	grid := r.Coverage()
	for row := range grid {
		for col, v := range grid[row] {
			c.rect(20+float64(col)*20, 20+float64(row)*20, 19, 19, colorIndigo, 0.08+0.92*v)
		}
	}
	c.ring(20+r.x*2, 20+r.y*2, rasterRadius*2, colorRose, true)
	return c.String()
}

// ---- Gaussian ----

// Gaussian lets the reader shape a single 2D Gaussian.
type Gaussian struct {
	scaleX, scaleY float64
	rotation       float64
	opacity        float64
}

func NewGaussian() *Gaussian {
	return &Gaussian{scaleX: 1, scaleY: 1, opacity: 0.8}
}

// Covariance returns Σ = R S Sᵀ Rᵀ for the current scale and rotation.
func (g *Gaussian) Covariance() [2][2]float64 {
	rad := g.rotation * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	sx2, sy2 := g.scaleX*g.scaleX, g.scaleY*g.scaleY
	return [2][2]float64{
		{c*c*sx2 + s*s*sy2, c * s * (sx2 - sy2)},
		{c * s * (sx2 - sy2), s*s*sx2 + c*c*sy2},
	}
}

func (g *Gaussian) Kind() Kind { return KindGaussian }

func (g *Gaussian) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Anatomía de una Gaussiana", "Anatomy of a Gaussian")
}

func (g *Gaussian) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "scale_x", Type: ControlSlider, Label: i18n.Pick(lang, "Escala X", "Scale X"), Min: 0.2, Max: 2.5, Step: 0.1, Value: g.scaleX},
		{Name: "scale_y", Type: ControlSlider, Label: i18n.Pick(lang, "Escala Y", "Scale Y"), Min: 0.2, Max: 2.5, Step: 0.1, Value: g.scaleY},
		{Name: "rotation", Type: ControlSlider, Label: i18n.Pick(lang, "Rotación", "Rotation"), Min: 0, Max: 360, Step: 1, Value: g.rotation},
		{Name: "opacity", Type: ControlSlider, Label: i18n.Pick(lang, "Opacidad (α)", "Opacity (α)"), Min: 0, Max: 1, Step: 0.05, Value: g.opacity},
	}
}

func (g *Gaussian) Apply(a Action) (Effect, error) {
	switch a.Name {
	case "scale_x":
		g.scaleX = clamp(a.Value, 0.2, 2.5)
	case "scale_y":
		g.scaleY = clamp(a.Value, 0.2, 2.5)
	case "rotation":
		g.rotation = clamp(a.Value, 0, 360)
	case "opacity":
		g.opacity = clamp(a.Value, 0, 1)
	default:
		return Effect{}, unknownAction(g.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (g *Gaussian) Snapshot() any {
	return map[string]any{
		"scale_x":    g.scaleX,
		"scale_y":    g.scaleY,
		"rotation":   g.rotation,
		"opacity":    g.opacity,
		"covariance": g.Covariance(),
	}
}

func (g *Gaussian) Render(lang i18n.Language) string {
	c := newCanvas(300, 300)
	c.line(150, 20, 150, 280, colorGrid, 1)
	c.line(20, 150, 280, 150, colorGrid, 1)
	c.ellipse(150, 150, 50*g.scaleX, 50*g.scaleY, g.rotation, colorIndigo, g.opacity)
	c.circle(150, 150, 3, colorText, 1)
	c.text(158, 146, 10, colorText, "start", "μ")
	cov := g.Covariance()
	c.text(12, 288, 10, colorSlate, "start", fmt.Sprintf("Σ = [[%.2f %.2f] [%.2f %.2f]]", cov[0][0], cov[0][1], cov[1][0], cov[1][1]))
	return c.String()
}

// ---- Spherical harmonics ----

// SH shows how the SH degree changes view-dependent highlights and memory.
type SH struct {
	angle  float64
	degree int
}

func NewSH() *SH { return &SH{degree: 3} }

// Coefficients is the number of SH coefficients per color channel.
func (s *SH) Coefficients() int { return (s.degree + 1) * (s.degree + 1) }

// Floats is the number of color floats stored per Gaussian.
func (s *SH) Floats() int { return s.Coefficients() * 3 }

func (s *SH) highlight() (pos, intensity, size float64) {
	return 50 + s.angle/90*40, float64(s.degree) / 3, 40 - float64(s.degree)*10
}

func (s *SH) Kind() Kind { return KindSH }

func (s *SH) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Armónicos Esféricos: Color Dependiente de la Vista", "Spherical Harmonics: View-Dependent Color")
}

func (s *SH) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "angle", Type: ControlSlider, Label: i18n.Pick(lang, "Ángulo de vista", "View angle"), Min: -90, Max: 90, Step: 1, Value: s.angle},
		{Name: "degree", Type: ControlSlider, Label: i18n.Pick(lang, "Grado SH", "SH degree"), Min: 0, Max: 3, Step: 1, Value: float64(s.degree)},
	}
}

func (s *SH) Apply(a Action) (Effect, error) {
	switch a.Name {
	case "angle":
		s.angle = clamp(a.Value, -90, 90)
	case "degree":
		s.degree = clampInt(a.Value, 0, 3)
	default:
		return Effect{}, unknownAction(s.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (s *SH) Snapshot() any {
	pos, intensity, size := s.highlight()
	return map[string]any{
		"angle":        s.angle,
		"degree":       s.degree,
		"coefficients": s.Coefficients(),
		"floats":       s.Floats(),
		"highlight":    map[string]float64{"position": pos, "intensity": intensity, "size": size},
	}
}

func (s *SH) Render(lang i18n.Language) string {
	pos, intensity, size := s.highlight()
	c := newCanvas(300, 220)
	c.circle(150, 100, 70, colorIndigo, 0.9)
	if intensity > 0 {
		c.circle(80+pos*1.4, 70, size, "#ffffff", 0.6*intensity)
	}
	c.text(150, 200, 11, colorText, "middle",
		fmt.Sprintf("%d %s · %d floats", s.Coefficients(), i18n.Pick(lang, "coeficientes", "coefficients"), s.Floats()))
	return c.String()
}

// ---- NeRF architecture ----

// NeRF shows how an MLP maps position and view direction to density and
// color.
type NeRF struct {
	spatial float64
	view    float64
}

func NewNeRF() *NeRF { return &NeRF{spatial: 50} }

// Output returns the density in [0,1] and an RGB color.
func (n *NeRF) Output() (density float64, r, g, b int) {
	density = (math.Sin(n.spatial/10) + 1) / 2
	r = int(math.Round((math.Cos(n.view/20) + 1) * 120))
	g = int(math.Round((math.Sin(n.spatial/20) + 1) * 100))
	b = int(math.Round((math.Sin(n.view/15) + 1) * 120))
	return density, r, g, b
}

func (n *NeRF) Kind() Kind { return KindNeRF }

func (n *NeRF) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Arquitectura NeRF (MLP)", "NeRF Architecture (MLP)")
}

func (n *NeRF) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "spatial", Type: ControlSlider, Label: i18n.Pick(lang, "Posición (x, y, z)", "Position (x, y, z)"), Min: 0, Max: 100, Step: 1, Value: n.spatial},
		{Name: "view", Type: ControlSlider, Label: i18n.Pick(lang, "Dirección (θ, φ)", "Direction (θ, φ)"), Min: 0, Max: 100, Step: 1, Value: n.view},
	}
}

func (n *NeRF) Apply(a Action) (Effect, error) {
	switch a.Name {
	case "spatial":
		n.spatial = clamp(a.Value, 0, 100)
	case "view":
		n.view = clamp(a.Value, 0, 100)
	default:
		return Effect{}, unknownAction(n.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (n *NeRF) Snapshot() any {
	density, r, g, b := n.Output()
	return map[string]any{"spatial": n.spatial, "view": n.view, "density": density, "rgb": [3]int{r, g, b}}
}

func (n *NeRF) Render(lang i18n.Language) string {
	density, r, g, b := n.Output()
	c := newCanvas(420, 180)
	c.rect(20, 50, 80, 30, colorGrid, 1)
	c.text(60, 70, 10, colorText, "middle", "(x, y, z)")
	c.rect(20, 100, 80, 30, colorGrid, 1)
	c.text(60, 120, 10, colorText, "middle", "(θ, φ)")
	c.rect(160, 40, 100, 100, colorIndigo, 0.4)
	c.text(210, 95, 12, colorText, "middle", "MLP")
	c.line(100, 65, 160, 80, colorMuted, 1)
	c.line(100, 115, 160, 100, colorMuted, 1)
	c.rect(320, 50, 80, 30, colorSlate, density)
	c.text(360, 45, 10, colorSlate, "middle", fmt.Sprintf("σ = %.2f", density))
	c.rect(320, 100, 80, 30, fmt.Sprintf("rgb(%d,%d,%d)", r, g, b), 1)
	c.text(360, 145, 10, colorSlate, "middle", i18n.Pick(lang, "Color", "Color"))
	return c.String()
}

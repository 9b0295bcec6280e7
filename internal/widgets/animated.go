package widgets

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ziadkadry99/splatdocs/internal/i18n"
)

// transport is the play/pause state shared by the timer-driven demos.
type transport struct {
	playing bool
}

func (t *transport) Playing() bool { return t.playing }

// handle applies the common play, pause and toggle actions. It reports
// whether the action was one of them.
func (t *transport) handle(name string) bool {
	switch name {
	case "play":
		t.playing = true
	case "pause":
		t.playing = false
	case "toggle":
		t.playing = !t.playing
	default:
		return false
	}
	return true
}

func transportControl(lang i18n.Language, playing bool) Control {
	label := i18n.T(lang, i18n.MsgPlay)
	if playing {
		label = i18n.T(lang, i18n.MsgPause)
	}
	return Control{Name: "toggle", Type: ControlButton, Label: label}
}

// ---- Pipeline ----

const (
	pipelineSteps    = 4
	pipelineInterval = 4 * time.Second
)

var pipelineStepText = [pipelineSteps][2][2]string{
	{
		{"1. Proyección", "Se transforman las Gaussias del espacio 3D al plano de imagen 2D usando la matriz de vista."},
		{"1. Projection", "Gaussians are transformed from 3D space to the 2D image plane using the view matrix."},
	},
	{
		{"2. Culling", "Se descartan las Gaussias que están fuera del campo de visión (Frustum) para ahorrar recursos."},
		{"2. Culling", "Gaussians outside the camera view frustum are discarded to save performance."},
	},
	{
		{"3. Tiling & Sort", "La pantalla se divide en tiles de 16x16. Las Gaussias se ordenan por profundidad (Radix Sort)."},
		{"3. Tiling & Sort", "Screen is divided into 16x16 tiles. Gaussians are sorted by depth (Radix Sort)."},
	},
	{
		{"4. Rasterización", "Cada tile procesa sus listas de Gaussias. Se acumula color y opacidad (Alpha Blending) pixel por pixel."},
		{"4. Rasterization", "Each tile processes its Gaussian lists. Color and opacity are accumulated (Alpha Blending) per pixel."},
	},
}

// Pipeline cycles through the four rasterization stages while playing.
type Pipeline struct {
	transport
	step int
}

func NewPipeline() *Pipeline {
	return &Pipeline{transport: transport{playing: true}}
}

func (p *Pipeline) Step() int { return p.step }

func (p *Pipeline) Interval() time.Duration { return pipelineInterval }

func (p *Pipeline) Tick() {
	if p.playing {
		p.step = (p.step + 1) % pipelineSteps
	}
}

func (p *Pipeline) Kind() Kind { return KindPipeline }

func (p *Pipeline) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Pipeline de Rasterización", "Rasterization Pipeline")
}

func (p *Pipeline) Controls(lang i18n.Language) []Control {
	return []Control{
		transportControl(lang, p.playing),
		{Name: "step", Type: ControlSlider, Label: i18n.Pick(lang, "Etapa", "Stage"), Min: 0, Max: pipelineSteps - 1, Step: 1, Value: float64(p.step)},
	}
}

func (p *Pipeline) Apply(a Action) (Effect, error) {
	if p.handle(a.Name) {
		return Effect{}, nil
	}
	if a.Name != "step" {
		return Effect{}, unknownAction(p.Kind(), a.Name)
	}
	p.step = clampInt(a.Value, 0, pipelineSteps-1)
	p.playing = false
	return Effect{}, nil
}

func (p *Pipeline) Snapshot() any {
	return map[string]any{"step": p.step, "playing": p.playing}
}

func (p *Pipeline) Render(lang i18n.Language) string {
	li := 0
	if lang == i18n.English {
		li = 1
	}
	c := newCanvas(480, 200)
	for i := 0; i < pipelineSteps; i++ {
		fill, opacity := colorGrid, 1.0
		if i == p.step {
			fill = colorIndigo
		} else if i < p.step {
			opacity = 0.6
		}
		x := 20 + float64(i)*115
		c.rect(x, 30, 100, 50, fill, opacity)
		c.text(x+50, 60, 11, colorText, "middle", pipelineStepText[i][li][0])
	}
	c.rect(20, 95, 440*float64(p.step+1)/pipelineSteps, 4, colorIndigo, 1)
	c.text(240, 140, 13, colorText, "middle", pipelineStepText[p.step][li][0])
	c.text(240, 165, 10, colorSlate, "middle", pipelineStepText[p.step][li][1])
	return c.String()
}

// ---- Dynamic 4D ----

// Dynamic4DMode selects how the 4D demo visualizes motion.
type Dynamic4DMode string

const (
	ModeDeformation Dynamic4DMode = "deformation"
	ModeSlicing     Dynamic4DMode = "slicing"
)

const (
	dynamicInterval = 30 * time.Millisecond
	dynamicStep     = 0.5
	dynamicPeriod   = 100.0
)

// Dynamic4D moves a Gaussian along a closed trajectory in time.
type Dynamic4D struct {
	transport
	time float64
	mode Dynamic4DMode
}

func NewDynamic4D() *Dynamic4D {
	return &Dynamic4D{transport: transport{playing: true}, mode: ModeSlicing}
}

func (d *Dynamic4D) Time() float64           { return d.time }
func (d *Dynamic4D) Mode() Dynamic4DMode     { return d.mode }
func (d *Dynamic4D) Interval() time.Duration { return dynamicInterval }

func (d *Dynamic4D) Tick() {
	if d.playing {
		d.time = math.Mod(d.time+dynamicStep, dynamicPeriod)
	}
}

// Position returns the Gaussian's position, in percent, at normalized time t.
func Position(t float64) (x, y float64) {
	return 50 + math.Cos(t*2*math.Pi)*20, 50 + math.Sin(t*2*math.Pi)*30
}

func (d *Dynamic4D) Kind() Kind { return KindDynamic4D }

func (d *Dynamic4D) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Visualizando el Espacio-Tiempo (4D)", "Visualizing Spacetime (4D)")
}

func (d *Dynamic4D) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "mode", Type: ControlChoice, Label: i18n.Pick(lang, "Método", "Method"), Options: []string{string(ModeDeformation), string(ModeSlicing)}},
		transportControl(lang, d.playing),
		{Name: "time", Type: ControlSlider, Label: i18n.Pick(lang, "Tiempo (t)", "Time (t)"), Min: 0, Max: dynamicPeriod, Step: 0.1, Value: d.time},
	}
}

func (d *Dynamic4D) Apply(a Action) (Effect, error) {
	if d.handle(a.Name) {
		return Effect{}, nil
	}
	switch a.Name {
	case "time":
		d.time = clamp(a.Value, 0, dynamicPeriod)
		d.playing = false
	case "mode":
		switch Dynamic4DMode(a.Option) {
		case ModeDeformation, ModeSlicing:
			d.mode = Dynamic4DMode(a.Option)
		default:
			return Effect{}, fmt.Errorf("%w: mode %q", ErrUnknownAction, a.Option)
		}
	default:
		return Effect{}, unknownAction(d.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (d *Dynamic4D) Snapshot() any {
	x, y := Position(d.time / dynamicPeriod)
	return map[string]any{"time": d.time, "playing": d.playing, "mode": d.mode, "x": x, "y": y}
}

func (d *Dynamic4D) Render(lang i18n.Language) string {
	const w, h = 400.0, 240.0
	c := newCanvas(int(w), int(h))
	x, y := Position(d.time / dynamicPeriod)
	if d.mode == ModeDeformation {
		c.rect(30, 100, 70, 40, colorGrid, 1)
		c.text(65, 125, 10, colorText, "middle", "MLP / Grid")
		c.text(65, 90, 10, colorSlate, "middle", fmt.Sprintf("t = %.2f", d.time/dynamicPeriod))
		c.text(65, 160, 10, colorEmerald, "middle", "Δx, Δy")
		c.ring(0.7*w, 0.5*h, 24, colorIndigo, false)
		c.circle((x+20)/100*w, y/100*h, 24, colorIndigo, 0.8)
		return c.String()
	}
	var path strings.Builder
	for i := 0; i < 100; i++ {
		_, py := Position(float64(i) / 100)
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&path, "%s %.2f %.2f ", cmd, float64(i)/100*w, py/100*h)
	}
	c.path(strings.TrimSpace(path.String()), colorGrid, 20, false)
	c.path(strings.TrimSpace(path.String()), colorEmerald, 2, true)
	sliceX := d.time / 100 * w
	c.line(sliceX, 0, sliceX, h, colorRose, 2)
	c.circle(sliceX, y/100*h, 20, colorEmerald, 0.9)
	c.text(12, h-12, 10, colorMuted, "start", i18n.Pick(lang, "Slice Actual", "Current Slice"))
	return c.String()
}

// ---- NeRF vs 3DGS comparison ----

const (
	comparisonInterval = 50 * time.Millisecond
	comparisonStep     = 0.5
)

type splatPoint struct {
	x, y, z float64
	color   string
	size    float64
}

var comparisonPoints = []splatPoint{
	{0, 0, 0, "#f59e0b", 20},
	{30, 10, 10, "#d97706", 15},
	{-30, -10, -10, "#fbbf24", 15},
	{0, 40, 0, "#b45309", 18},
	{0, -40, 0, "#b45309", 18},
	{20, 0, 30, "#fcd34d", 12},
	{-20, 0, -30, "#fcd34d", 12},
}

// ProjectedPoint is a splat after rotation and fake perspective.
type ProjectedPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Depth float64 `json:"depth"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// Comparison contrasts NeRF ray marching with a rotating cloud of splats
// drawn with the painter's algorithm.
type Comparison struct {
	transport
	scan     float64
	rotation float64
}

func NewComparison() *Comparison {
	return &Comparison{transport: transport{playing: true}, scan: 50, rotation: 45}
}

func (c *Comparison) Interval() time.Duration { return comparisonInterval }
func (c *Comparison) Rotation() float64       { return c.rotation }

func (c *Comparison) Tick() {
	if c.playing {
		c.rotation = math.Mod(c.rotation+comparisonStep, 360)
	}
}

// RayEndY is where the NeRF sample ray ends for the current scan value.
func (c *Comparison) RayEndY() float64 {
	return 20 + c.scan/100*120
}

// Project rotates the splats around Y and returns them in draw order.
func (c *Comparison) Project() []ProjectedPoint {
	rad := c.rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	out := make([]ProjectedPoint, 0, len(comparisonPoints))
	for _, p := range comparisonPoints {
		rx := p.x*cos - p.z*sin
		rz := p.x*sin + p.z*cos
		scale := 200 / (200 - rz)
		out = append(out, ProjectedPoint{
			X:     120 + rx*scale,
			Y:     80 + p.y*scale,
			Depth: rz,
			Size:  p.size * scale,
			Color: p.color,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}

func (c *Comparison) Kind() Kind { return KindComparison }

func (c *Comparison) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "NeRF vs. 3D Gaussian Splatting", "NeRF vs. 3D Gaussian Splatting")
}

func (c *Comparison) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "scan", Type: ControlSlider, Label: i18n.Pick(lang, "Muestreo del rayo", "Ray sampling"), Min: 0, Max: 100, Step: 1, Value: c.scan},
		{Name: "rotation", Type: ControlSlider, Label: i18n.Pick(lang, "Rotación", "Rotation"), Min: 0, Max: 360, Step: 1, Value: c.rotation},
		transportControl(lang, c.playing),
	}
}

func (c *Comparison) Apply(a Action) (Effect, error) {
	if c.handle(a.Name) {
		return Effect{}, nil
	}
	switch a.Name {
	case "scan":
		c.scan = clamp(a.Value, 0, 100)
	case "rotation":
		c.rotation = clamp(a.Value, 0, 360)
		c.playing = false
	default:
		return Effect{}, unknownAction(c.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (c *Comparison) Snapshot() any {
	return map[string]any{
		"scan":     c.scan,
		"rotation": c.rotation,
		"playing":  c.playing,
		"ray_end":  c.RayEndY(),
		"points":   c.Project(),
	}
}

func (c *Comparison) Render(lang i18n.Language) string {
	cv := newCanvas(480, 180)
	cv.text(120, 16, 11, colorSlate, "middle", "NeRF")
	cv.line(30, 80, 220, c.RayEndY(), colorIndigo, 2)
	for i := 0; i < 8; i++ {
		t := float64(i) / 7
		cv.circle(30+t*190, 80+t*(c.RayEndY()-80), 3, colorIndigo, 0.4+0.6*t)
	}
	cv.text(360, 16, 11, colorSlate, "middle", "3DGS")
	for _, p := range c.Project() {
		cv.circle(p.X+240, p.Y, p.Size/2, p.Color, 0.85)
	}
	cv.text(240, 172, 10, colorMuted, "middle",
		i18n.Pick(lang, "Implícita (red neuronal) vs. explícita (primitivas)", "Implicit (neural network) vs. explicit (primitives)"))
	return cv.String()
}

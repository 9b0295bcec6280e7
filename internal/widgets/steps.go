package widgets

import (
	"fmt"
	"math"

	"github.com/ziadkadry99/splatdocs/internal/i18n"
)

// stepper is a bounded step counter shared by the walkthrough demos.
type stepper struct {
	step, last int
}

// handle applies step, next, prev and reset. It reports whether the action
// was one of them.
func (s *stepper) handle(a Action) bool {
	switch a.Name {
	case "step":
		s.step = clampInt(a.Value, 0, s.last)
	case "next":
		s.step = min(s.step+1, s.last)
	case "prev":
		s.step = max(s.step-1, 0)
	case "reset":
		s.step = 0
	default:
		return false
	}
	return true
}

func (s *stepper) Step() int { return s.step }

func (s *stepper) controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "prev", Type: ControlButton, Label: i18n.T(lang, i18n.MsgPrevious)},
		{Name: "step", Type: ControlSlider, Label: i18n.Pick(lang, "Paso", "Step"), Min: 0, Max: float64(s.last), Step: 1, Value: float64(s.step)},
		{Name: "next", Type: ControlButton, Label: i18n.T(lang, i18n.MsgNext)},
		{Name: "reset", Type: ControlButton, Label: "Reset"},
	}
}

// ---- Loss ----

// LossTerms are the components of the 3DGS training loss.
type LossTerms struct {
	L1    float64 `json:"l1"`
	SSIM  float64 `json:"d_ssim"`
	Total float64 `json:"total"`
}

// Loss shows how the L1 and D-SSIM terms blend as reconstruction error grows.
type Loss struct {
	errorLevel float64
}

func NewLoss() *Loss { return &Loss{errorLevel: 50} }

// Terms computes the blended loss, rounded to three decimals.
func (l *Loss) Terms() LossTerms {
	l1 := l.errorLevel / 100
	ssim := l.errorLevel / 100 * 0.5
	total := 0.8*l1 + 0.2*ssim
	return LossTerms{L1: round3(l1), SSIM: round3(ssim), Total: round3(total)}
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func (l *Loss) Kind() Kind { return KindLoss }

func (l *Loss) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Función de Pérdida: L1 + D-SSIM", "Loss Function: L1 + D-SSIM")
}

func (l *Loss) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "error", Type: ControlSlider, Label: i18n.Pick(lang, "Nivel de error", "Error level"), Min: 0, Max: 100, Step: 1, Value: l.errorLevel},
	}
}

func (l *Loss) Apply(a Action) (Effect, error) {
	if a.Name != "error" {
		return Effect{}, unknownAction(l.Kind(), a.Name)
	}
	l.errorLevel = clamp(a.Value, 0, 100)
	return Effect{}, nil
}

func (l *Loss) Snapshot() any {
	return map[string]any{"error": l.errorLevel, "terms": l.Terms()}
}

func (l *Loss) Render(lang i18n.Language) string {
	t := l.Terms()
	c := newCanvas(360, 200)
	bars := []struct {
		label string
		value float64
		color string
	}{
		{"L1", t.L1, colorBlue},
		{"D-SSIM", t.SSIM, colorAmber},
		{"L", t.Total, colorRose},
	}
	for i, b := range bars {
		x := 50 + float64(i)*100
		h := b.value * 140
		c.rect(x, 160-h, 60, h, b.color, 0.8)
		c.text(x+30, 180, 11, colorText, "middle", b.label)
		c.text(x+30, 152-h, 10, colorSlate, "middle", fmt.Sprintf("%.3f", b.value))
	}
	c.text(180, 20, 10, colorMuted, "middle", "L = 0.8·L1 + 0.2·D-SSIM")
	return c.String()
}

// ---- Optimization ----

type optimizationFrame struct {
	x, y, w, h, rot float64
	color           string
	loss            float64
}

var optimizationFrames = []optimizationFrame{
	{30, 30, 30, 80, 45, "#ef4444", 1.0},
	{60, 45, 35, 70, 30, "#f59e0b", 0.6},
	{68, 48, 55, 45, 10, "#eab308", 0.3},
	{70, 50, 60, 40, 0, "#34d399", 0.1},
	{70, 50, 60, 40, 0, colorEmerald, 0},
}

var optimizationLabels = [][2]string{
	{"Inicio: Aleatorio", "Start: Random"},
	{"Paso 1: Ajustar Posición (μ)", "Step 1: Adjust Position (μ)"},
	{"Paso 2: Ajustar Forma (Σ)", "Step 2: Adjust Shape (Σ)"},
	{"Paso 3: Ajustar Color (SH)", "Step 3: Adjust Color (SH)"},
	{"Convergencia", "Convergence"},
}

// Optimization steps a predicted Gaussian toward the ground truth.
type Optimization struct {
	stepper
}

func NewOptimization() *Optimization {
	return &Optimization{stepper{last: len(optimizationFrames) - 1}}
}

// LossValue is the loss at the current step.
func (o *Optimization) LossValue() float64 { return optimizationFrames[o.step].loss }

func (o *Optimization) Kind() Kind { return KindOptimization }

func (o *Optimization) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Optimización Iterativa (Adam)", "Iterative Optimization (Adam)")
}

func (o *Optimization) Controls(lang i18n.Language) []Control { return o.controls(lang) }

func (o *Optimization) Apply(a Action) (Effect, error) {
	if !o.handle(a) {
		return Effect{}, unknownAction(o.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (o *Optimization) Snapshot() any {
	return map[string]any{"step": o.step, "loss": o.LossValue()}
}

func (o *Optimization) Render(lang i18n.Language) string {
	f := optimizationFrames[o.step]
	c := newCanvas(320, 240)
	c.ellipse(70*3, 50*2, 30, 20, 0, colorMuted, 0.3)
	c.ellipse(f.x*3, f.y*2, f.w/2, f.h/2, f.rot, f.color, 0.7)
	c.text(160, 200, 11, colorText, "middle", optimizationLabels[o.step][langIndex(lang)])
	c.text(160, 222, 10, colorSlate, "middle", fmt.Sprintf("%s: %.1f", i18n.Pick(lang, "Pérdida", "Loss"), f.loss))
	return c.String()
}

// ---- Structure from Motion ----

type camera struct{ x, y, angle float64 }

var sfmCameras = []camera{
	{50, 10, 90},
	{90, 50, 180},
	{50, 90, 270},
	{10, 50, 0},
}

var sfmSteps = [][2][2]string{
	{{"1. Captura", "Múltiples fotos alrededor del objeto."}, {"1. Capture", "Multiple photos around the object."}},
	{{"2. Features", "Detección y matching de puntos clave."}, {"2. Features", "Keypoint detection and matching."}},
	{{"3. Triangulación", "Cálculo de profundidad y Nube de Puntos."}, {"3. Triangulation", "Depth calculation and Point Cloud."}},
}

// SfM walks through the COLMAP capture, matching and triangulation stages.
type SfM struct {
	stepper
}

func NewSfM() *SfM { return &SfM{stepper{last: len(sfmSteps) - 1}} }

func (s *SfM) Kind() Kind { return KindSfM }

func (s *SfM) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Pipeline Structure from Motion (SfM)", "Structure from Motion (SfM) Pipeline")
}

func (s *SfM) Controls(lang i18n.Language) []Control { return s.controls(lang) }

func (s *SfM) Apply(a Action) (Effect, error) {
	if !s.handle(a) {
		return Effect{}, unknownAction(s.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (s *SfM) Snapshot() any { return map[string]any{"step": s.step} }

func (s *SfM) Render(lang i18n.Language) string {
	c := newCanvas(260, 260)
	li := langIndex(lang)
	for _, cam := range sfmCameras {
		cx, cy := cam.x*2.2+20, cam.y*2.2+20
		c.rect(cx-8, cy-6, 16, 12, colorSlate, 1)
		if s.step >= 1 {
			c.line(cx, cy, 130, 130, colorIndigo, 1)
		}
	}
	if s.step >= 2 {
		for i := 0; i < 12; i++ {
			a := float64(i) / 12 * 2 * math.Pi
			c.circle(130+math.Cos(a)*22, 130+math.Sin(a)*22, 2.5, colorEmerald, 1)
		}
	} else {
		c.rect(110, 110, 40, 40, colorAmber, 0.5)
	}
	c.text(130, 236, 11, colorText, "middle", sfmSteps[s.step][li][0])
	c.text(130, 252, 9, colorSlate, "middle", sfmSteps[s.step][li][1])
	return c.String()
}

// ---- Initialization ----

var initializationSteps = [][2][2]string{
	{{"Punto SfM", "Input: Un punto 3D desnudo proveniente de COLMAP."}, {"SfM Point", "Input: A bare 3D point from COLMAP."}},
	{{"Posición (μ)", "La posición del punto se asigna como la media (centro) de la Gaussiana."}, {"Position (μ)", "Point position is assigned as the mean (center) of the Gaussian."}},
	{{"Covarianza (Σ)", "El tamaño (escala) se calcula basado en la distancia a los vecinos más cercanos (KNN)."}, {"Covariance (Σ)", "Size (scale) is calculated based on distance to nearest neighbors (KNN)."}},
	{{"Color & Opacidad", "El color se toma de las imágenes originales. La opacidad inicia en un valor fijo."}, {"Color & Opacity", "Color is sampled from original images. Opacity starts at a fixed value."}},
}

// Initialization turns an SfM point into a renderable Gaussian step by step.
type Initialization struct {
	stepper
}

func NewInitialization() *Initialization {
	return &Initialization{stepper{last: len(initializationSteps) - 1}}
}

func (n *Initialization) Kind() Kind { return KindInitialization }

func (n *Initialization) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Inicialización: De Punto a Gaussiana", "Initialization: From Point to Gaussian")
}

func (n *Initialization) Controls(lang i18n.Language) []Control { return n.controls(lang) }

func (n *Initialization) Apply(a Action) (Effect, error) {
	if !n.handle(a) {
		return Effect{}, unknownAction(n.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (n *Initialization) Snapshot() any { return map[string]any{"step": n.step} }

func (n *Initialization) Render(lang i18n.Language) string {
	c := newCanvas(240, 240)
	li := langIndex(lang)
	switch n.step {
	case 0:
		c.circle(120, 100, 3, colorText, 1)
	case 1:
		c.circle(120, 100, 3, colorText, 1)
		c.line(120, 60, 120, 140, colorGrid, 1)
		c.line(80, 100, 160, 100, colorGrid, 1)
		c.text(128, 96, 10, colorText, "start", "μ")
	case 2:
		c.ellipse(120, 100, 50, 30, 0, colorSlate, 0.3)
		c.ring(120, 100, 50, colorMuted, true)
	default:
		c.ellipse(120, 100, 50, 30, 0, colorEmerald, 0.6)
	}
	c.text(120, 200, 12, colorText, "middle", initializationSteps[n.step][li][0])
	c.text(120, 222, 8, colorSlate, "middle", initializationSteps[n.step][li][1])
	return c.String()
}

// ---- Compression ----

// CompressionTab selects the compression demo panel.
type CompressionTab string

const (
	TabVRAM     CompressionTab = "vram"
	TabSHvsSG   CompressionTab = "sh_sg"
	TabTraining CompressionTab = "training"
)

type vramBar struct {
	label           [2]string
	disk, stat, dyn float64
}

var vramBars = []vramBar{
	{[2]string{"3DGS Estándar", "Standard 3DGS"}, 0, 30, 70},
	{[2]string{"Cuantizado", "Quantized"}, 10, 30, 60},
	{[2]string{"Optimizado (MEGS/ProtoGS)", "Optimized (MEGS/ProtoGS)"}, 0, 25, 30},
}

// Compression compares memory strategies across three tabs.
type Compression struct {
	tab CompressionTab
}

func NewCompression() *Compression { return &Compression{tab: TabVRAM} }

func (c *Compression) Tab() CompressionTab { return c.tab }

// GradientThreshold is the exponential densification threshold at training
// progress p in [0,1], against the fixed baseline of 0.5.
func GradientThreshold(p float64) (exponential, fixed float64) {
	p = clamp(p, 0, 1)
	return 0.1 * math.Exp(p*math.Log(9)), 0.5
}

func (c *Compression) Kind() Kind { return KindCompression }

func (c *Compression) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Compresión y Memoria", "Compression and Memory")
}

func (c *Compression) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "tab", Type: ControlChoice, Label: i18n.Pick(lang, "Vista", "View"),
			Options: []string{string(TabVRAM), string(TabSHvsSG), string(TabTraining)}},
	}
}

func (c *Compression) Apply(a Action) (Effect, error) {
	if a.Name != "tab" {
		return Effect{}, unknownAction(c.Kind(), a.Name)
	}
	switch CompressionTab(a.Option) {
	case TabVRAM, TabSHvsSG, TabTraining:
		c.tab = CompressionTab(a.Option)
	default:
		return Effect{}, fmt.Errorf("%w: tab %q", ErrUnknownAction, a.Option)
	}
	return Effect{}, nil
}

func (c *Compression) Snapshot() any { return map[string]any{"tab": c.tab} }

func (c *Compression) Render(lang i18n.Language) string {
	cv := newCanvas(420, 220)
	li := langIndex(lang)
	switch c.tab {
	case TabSHvsSG:
		cv.rect(40, 40, 150, 120, colorRose, 0.3)
		cv.text(115, 80, 11, colorText, "middle", i18n.Pick(lang, "SH Orden 3", "SH Order 3"))
		cv.text(115, 110, 13, colorRose, "middle", "48 floats")
		cv.rect(230, 40, 150, 120, colorEmerald, 0.3)
		cv.text(305, 80, 11, colorText, "middle", "SG 3 Lobes")
		cv.text(305, 110, 13, colorEmerald, "middle", "~24 floats")
	case TabTraining:
		cv.path("M 40 140 L 380 140", colorMuted, 2, true)
		d := ""
		for i := 0; i <= 20; i++ {
			p := float64(i) / 20
			exp, _ := GradientThreshold(p)
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			d += fmt.Sprintf("%s %.1f %.1f ", cmd, 40+p*340, 180-exp*160)
		}
		cv.path(d[:len(d)-1], colorEmerald, 2, false)
		cv.text(300, 130, 10, colorMuted, "start", i18n.Pick(lang, "Umbral Fijo", "Fixed Threshold"))
	default:
		for i, b := range vramBars {
			x := 50 + float64(i)*120
			y := 180.0
			for _, seg := range []struct {
				v     float64
				color string
			}{{b.dyn, colorRose}, {b.stat, colorIndigo}, {b.disk, colorAmber}} {
				h := seg.v * 1.5
				y -= h
				cv.rect(x, y, 80, h, seg.color, 0.6)
			}
			cv.text(x+40, 200, 9, colorText, "middle", b.label[li])
		}
	}
	return cv.String()
}

func langIndex(lang i18n.Language) int {
	if lang == i18n.English {
		return 1
	}
	return 0
}

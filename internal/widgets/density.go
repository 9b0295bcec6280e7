package widgets

import (
	"math/rand/v2"

	"github.com/ziadkadry99/splatdocs/internal/i18n"
)

// DensityPhase is the last transition applied to a Density demo.
type DensityPhase string

const (
	DensityInitial DensityPhase = "initial"
	DensitySplit   DensityPhase = "split"
	DensityClone   DensityPhase = "clone"
	DensityReset   DensityPhase = "reset"
)

const (
	densityInitialSize = 20.0
	densitySplitMin    = 10.0
	densitySplitFactor = 1.5
	densityCloneChance = 0.3
)

// Blob is one Gaussian drawn by the density demo, in percent coordinates.
type Blob struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// Density illustrates adaptive density control: large Gaussians split,
// under-reconstructed areas get clones.
type Density struct {
	rng    *rand.Rand
	blobs  []Blob
	nextID int
	phase  DensityPhase
}

func NewDensity(rng *rand.Rand) *Density {
	d := &Density{rng: rng}
	d.restore()
	d.phase = DensityInitial
	return d
}

func (d *Density) restore() {
	d.blobs = []Blob{{ID: 1, X: 50, Y: 50, Size: densityInitialSize, Color: colorRose}}
	d.nextID = 2
}

// Split replaces every blob larger than the split threshold with two
// smaller ones offset diagonally.
func (d *Density) Split() {
	next := make([]Blob, 0, len(d.blobs)*2)
	for _, b := range d.blobs {
		if b.Size <= densitySplitMin {
			next = append(next, b)
			continue
		}
		size := b.Size / densitySplitFactor
		next = append(next,
			Blob{ID: d.nextID, X: b.X - 5, Y: b.Y - 5, Size: size, Color: colorEmerald},
			Blob{ID: d.nextID + 1, X: b.X + 5, Y: b.Y + 5, Size: size, Color: colorEmerald},
		)
		d.nextID += 2
	}
	d.blobs = next
	d.phase = DensitySplit
}

// Clone appends a jittered copy of each blob that passes the gradient
// threshold draw.
func (d *Density) Clone() {
	current := len(d.blobs)
	for i := 0; i < current; i++ {
		b := d.blobs[i]
		if d.rng.Float64() <= densityCloneChance {
			continue
		}
		d.blobs = append(d.blobs, Blob{
			ID:    d.nextID,
			X:     b.X + (d.rng.Float64()*10 - 5),
			Y:     b.Y + (d.rng.Float64()*10 - 5),
			Size:  b.Size,
			Color: colorBlue,
		})
		d.nextID++
	}
	d.phase = DensityClone
}

// Reset restores the single initial blob.
func (d *Density) Reset() {
	d.restore()
	d.phase = DensityReset
}

// Blobs returns a copy of the current blob list.
func (d *Density) Blobs() []Blob {
	return append([]Blob(nil), d.blobs...)
}

func (d *Density) Phase() DensityPhase { return d.phase }

func (d *Density) Kind() Kind { return KindDensity }

func (d *Density) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Control de Densidad Adaptativo", "Adaptive Density Control")
}

func (d *Density) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "reset", Type: ControlButton, Label: "Reset"},
		{Name: "split", Type: ControlButton, Label: i18n.Pick(lang, "Simular SPLIT", "Simulate SPLIT")},
		{Name: "clone", Type: ControlButton, Label: i18n.Pick(lang, "Simular CLONE", "Simulate CLONE")},
	}
}

func (d *Density) Apply(a Action) (Effect, error) {
	switch a.Name {
	case "split":
		d.Split()
	case "clone":
		d.Clone()
	case "reset":
		d.Reset()
	default:
		return Effect{}, unknownAction(d.Kind(), a.Name)
	}
	return Effect{}, nil
}

func (d *Density) message(lang i18n.Language) string {
	switch d.phase {
	case DensitySplit:
		return i18n.Pick(lang,
			"Split: Se dividen las grandes (Over-reconstruction) en más pequeñas.",
			"Split: Large ones (Over-reconstruction) are split into smaller ones.")
	case DensityClone:
		return i18n.Pick(lang,
			"Clone: Se duplican en áreas 'vacías' (Under-reconstruction).",
			"Clone: Duplicated in 'empty' areas (Under-reconstruction).")
	case DensityReset:
		return "Reset."
	default:
		return i18n.Pick(lang,
			"Estado inicial: 1 Gaussiana grande con alto error.",
			"Initial state: 1 large Gaussian with high error.")
	}
}

func (d *Density) Snapshot() any {
	return struct {
		Phase DensityPhase `json:"phase"`
		Blobs []Blob       `json:"blobs"`
	}{d.phase, d.Blobs()}
}

func (d *Density) Render(lang i18n.Language) string {
	c := newCanvas(400, 260)
	c.ring(200, 130, 60, colorMuted, true)
	c.text(200, 60, 10, colorMuted, "middle", i18n.Pick(lang, "Área Objetivo", "Target Area"))
	for _, b := range d.blobs {
		c.circle(b.X*4, b.Y*2.6, b.Size, b.Color, 0.7)
	}
	c.text(12, 250, 11, colorText, "start", d.message(lang))
	return c.String()
}

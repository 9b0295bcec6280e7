package widgets

import (
	"math/rand/v2"
	"time"

	"github.com/ziadkadry99/splatdocs/internal/i18n"
)

// DotStatus is the visual status of a pruning-demo dot.
type DotStatus string

const (
	DotNormal DotStatus = "normal"
	DotPruned DotStatus = "pruned"
	DotReset  DotStatus = "reset"
)

// PruningPhase is the last transition applied to a Pruning demo.
type PruningPhase string

const (
	PruningSpawned       PruningPhase = "spawned"
	PruningOpacityPruned PruningPhase = "opacity-pruned"
	PruningSizePruned    PruningPhase = "size-pruned"
	PruningResetApplied  PruningPhase = "reset-applied"
)

// Settle rules name what a pending settle enforces. They travel in the
// Option of the settle follow-up.
const (
	SettleOpacity = "opacity"
	SettleSize    = "size"
	SettleReset   = "reset"
)

const (
	pruneDotCount        = 15
	pruneOpacityMin      = 0.1
	pruneSizeMax         = 40.0
	pruneResetOpacityCap = 0.3
	// SettleDelay is the pause between marking dots and removing them.
	SettleDelay = 500 * time.Millisecond
)

// Dot is one Gaussian in the pruning demo.
type Dot struct {
	ID      int       `json:"id"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Size    float64   `json:"size"`
	Opacity float64   `json:"opacity"`
	Color   string    `json:"color"`
	Status  DotStatus `json:"status"`
}

// Pruning illustrates opacity and size pruning as a two-phase transition:
// matching dots are marked, then removed once Settle runs.
type Pruning struct {
	rng    *rand.Rand
	dots   []Dot
	nextID int
	phase  PruningPhase
}

func NewPruning(rng *rand.Rand) *Pruning {
	p := &Pruning{rng: rng}
	p.Spawn()
	return p
}

// NewPruningWith starts a demo from a fixed set of dots.
func NewPruningWith(dots []Dot) *Pruning {
	p := &Pruning{dots: append([]Dot(nil), dots...), phase: PruningSpawned}
	for _, d := range dots {
		if d.ID >= p.nextID {
			p.nextID = d.ID + 1
		}
	}
	return p
}

// Spawn replaces the dots with a fresh random population.
func (p *Pruning) Spawn() {
	dots := make([]Dot, 0, pruneDotCount)
	for i := 0; i < pruneDotCount; i++ {
		big := p.rng.Float64() > 0.8
		faint := p.rng.Float64() > 0.6
		d := Dot{
			ID:     p.nextID,
			X:      p.rng.Float64()*90 + 5,
			Y:      p.rng.Float64()*80 + 10,
			Size:   15 + p.rng.Float64()*10,
			Status: DotNormal,
		}
		if big {
			d.Size = 50 + p.rng.Float64()*20
		}
		if faint {
			d.Opacity = 0.05
		} else {
			d.Opacity = 0.6 + p.rng.Float64()*0.4
		}
		switch {
		case big:
			d.Color = colorRose
		case faint:
			d.Color = colorSlate
		default:
			d.Color = colorEmerald
		}
		dots = append(dots, d)
		p.nextID++
	}
	p.dots = dots
	p.phase = PruningSpawned
}

// PruneOpacity marks dots under the opacity threshold for removal.
func (p *Pruning) PruneOpacity() {
	p.mark(func(d Dot) bool { return d.Opacity < pruneOpacityMin })
	p.phase = PruningOpacityPruned
}

// PruneSize marks oversized dots for removal.
func (p *Pruning) PruneSize() {
	p.mark(func(d Dot) bool { return d.Size > pruneSizeMax })
	p.phase = PruningSizePruned
}

// ResetOpacity caps every dot's opacity and flags it as reset until Settle.
// Dots already marked for pruning stay marked.
func (p *Pruning) ResetOpacity() {
	for i := range p.dots {
		d := &p.dots[i]
		if d.Status == DotPruned {
			continue
		}
		d.Opacity = min(d.Opacity, pruneResetOpacityCap)
		d.Status = DotReset
		if d.Size > pruneSizeMax {
			d.Color = colorRose
		} else {
			d.Color = colorBlue
		}
	}
	p.phase = PruningResetApplied
}

func (p *Pruning) mark(match func(Dot) bool) {
	for i := range p.dots {
		if match(p.dots[i]) {
			p.dots[i].Status = DotPruned
		}
	}
}

// Settle completes a pending transition. The opacity and size rules remove
// every dot that breaks them, whatever its status; the reset rule returns
// reset dots to normal.
func (p *Pruning) Settle(rule string) error {
	var drop func(Dot) bool
	switch rule {
	case SettleOpacity:
		drop = func(d Dot) bool { return d.Opacity < pruneOpacityMin }
	case SettleSize:
		drop = func(d Dot) bool { return d.Size > pruneSizeMax }
	case SettleReset:
		for i := range p.dots {
			if p.dots[i].Status == DotReset {
				p.dots[i].Status = DotNormal
			}
		}
		return nil
	default:
		return unknownAction(p.Kind(), "settle:"+rule)
	}
	kept := p.dots[:0]
	for _, d := range p.dots {
		if !drop(d) {
			kept = append(kept, d)
		}
	}
	p.dots = kept
	return nil
}

// Dots returns a copy of the current dots.
func (p *Pruning) Dots() []Dot {
	return append([]Dot(nil), p.dots...)
}

func (p *Pruning) Phase() PruningPhase { return p.phase }

func (p *Pruning) Kind() Kind { return KindPruning }

func (p *Pruning) Title(lang i18n.Language) string {
	return i18n.Pick(lang, "Simulador de Poda (Pruning)", "Pruning Simulator")
}

func (p *Pruning) Controls(lang i18n.Language) []Control {
	return []Control{
		{Name: "spawn", Type: ControlButton, Label: i18n.Pick(lang, "Generar Gaussias", "Spawn Gaussians")},
		{Name: "prune_opacity", Type: ControlButton, Label: i18n.Pick(lang, "Podar Invisibles (< 0.1)", "Prune Invisible (< 0.1)")},
		{Name: "reset_opacity", Type: ControlButton, Label: "Opacity Reset (Global)"},
		{Name: "prune_size", Type: ControlButton, Label: i18n.Pick(lang, "Podar Gigantes (> 40px)", "Prune Giant (> 40px)")},
	}
}

func (p *Pruning) Apply(a Action) (Effect, error) {
	var rule string
	switch a.Name {
	case "spawn":
		p.Spawn()
		return Effect{}, nil
	case "prune_opacity":
		p.PruneOpacity()
		rule = SettleOpacity
	case "prune_size":
		p.PruneSize()
		rule = SettleSize
	case "reset_opacity":
		p.ResetOpacity()
		rule = SettleReset
	case "settle":
		return Effect{}, p.Settle(a.Option)
	default:
		return Effect{}, unknownAction(p.Kind(), a.Name)
	}
	return Effect{Followup: &Followup{After: SettleDelay, Action: Action{Name: "settle", Option: rule}}}, nil
}

func (p *Pruning) Snapshot() any {
	return struct {
		Phase PruningPhase `json:"phase"`
		Dots  []Dot        `json:"dots"`
	}{p.phase, p.Dots()}
}

func (p *Pruning) Render(lang i18n.Language) string {
	c := newCanvas(400, 260)
	for _, d := range p.dots {
		opacity := d.Opacity
		r := d.Size / 2
		if d.Status == DotPruned {
			opacity = 0
			r = 0
		}
		c.circle(d.X*4, d.Y*2.6, r, d.Color, opacity)
	}
	c.circle(16, 246, 5, colorEmerald, 1)
	c.text(26, 250, 10, colorText, "start", "Normal")
	c.circle(86, 246, 5, colorSlate, 1)
	c.text(96, 250, 10, colorText, "start", i18n.Pick(lang, "Baja Opacidad", "Low Opacity"))
	c.circle(186, 246, 5, colorRose, 1)
	c.text(196, 250, 10, colorText, "start", i18n.Pick(lang, "Excesiva", "Excessive"))
	return c.String()
}

// Package widgets implements the interactive demos embedded in the course:
// small state machines whose visual output is a pure function of their
// current control values, rendered server-side as SVG.
package widgets

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/ziadkadry99/splatdocs/internal/i18n"
)

// Kind names a demo widget type. It is the value used in content blocks,
// URLs and websocket messages.
type Kind string

const (
	KindNeRF           Kind = "nerf"
	KindComparison     Kind = "comparison"
	KindGaussian       Kind = "gaussian"
	KindSH             Kind = "sh"
	KindProjection     Kind = "projection"
	KindRasterization  Kind = "rasterization"
	KindPipeline       Kind = "pipeline"
	KindSfM            Kind = "sfm"
	KindInitialization Kind = "initialization"
	KindOptimization   Kind = "optimization"
	KindLoss           Kind = "loss"
	KindDensity        Kind = "density"
	KindPruning        Kind = "pruning"
	KindDynamic4D      Kind = "dynamic4d"
	KindCompression    Kind = "compression"
)

var (
	ErrUnknownKind   = errors.New("unknown widget kind")
	ErrUnknownAction = errors.New("unknown widget action")
)

// Action is a single control input: a button press, a slider value or a
// choice among options.
type Action struct {
	Name   string  `json:"action"`
	Value  float64 `json:"value,omitempty"`
	Option string  `json:"option,omitempty"`
}

// Followup asks the host to deliver Action back to the same widget after a
// delay. It is how two-phase transitions (mark, wait, filter) are expressed
// without the widget owning a timer itself.
type Followup struct {
	After  time.Duration
	Action Action
}

// Effect describes what the host must do after an action was applied.
type Effect struct {
	Followup *Followup
}

// ControlType selects how a control is presented.
type ControlType string

const (
	ControlSlider ControlType = "slider"
	ControlButton ControlType = "button"
	ControlChoice ControlType = "choice"
)

// Control describes one input of a widget, with its range clamps.
type Control struct {
	Name    string      `json:"name"`
	Type    ControlType `json:"type"`
	Label   string      `json:"label"`
	Min     float64     `json:"min,omitempty"`
	Max     float64     `json:"max,omitempty"`
	Step    float64     `json:"step,omitempty"`
	Value   float64     `json:"value,omitempty"`
	Options []string    `json:"options,omitempty"`
}

// Widget is a demo instance. Implementations are not safe for concurrent
// use; a single owner (a page render or a live host loop) drives each one.
type Widget interface {
	Kind() Kind
	Title(lang i18n.Language) string
	Controls(lang i18n.Language) []Control
	Apply(a Action) (Effect, error)
	Snapshot() any
	Render(lang i18n.Language) string
}

// Animated widgets advance on a timer while playing.
type Animated interface {
	Widget
	Interval() time.Duration
	Playing() bool
	Tick()
}

type factory func(rng *rand.Rand) Widget

var registry = map[Kind]factory{
	KindNeRF:           func(*rand.Rand) Widget { return NewNeRF() },
	KindComparison:     func(*rand.Rand) Widget { return NewComparison() },
	KindGaussian:       func(*rand.Rand) Widget { return NewGaussian() },
	KindSH:             func(*rand.Rand) Widget { return NewSH() },
	KindProjection:     func(*rand.Rand) Widget { return NewProjection() },
	KindRasterization:  func(*rand.Rand) Widget { return NewRasterization() },
	KindPipeline:       func(*rand.Rand) Widget { return NewPipeline() },
	KindSfM:            func(*rand.Rand) Widget { return NewSfM() },
	KindInitialization: func(*rand.Rand) Widget { return NewInitialization() },
	KindOptimization:   func(*rand.Rand) Widget { return NewOptimization() },
	KindLoss:           func(*rand.Rand) Widget { return NewLoss() },
	KindDensity:        func(rng *rand.Rand) Widget { return NewDensity(rng) },
	KindPruning:        func(rng *rand.Rand) Widget { return NewPruning(rng) },
	KindDynamic4D:      func(*rand.Rand) Widget { return NewDynamic4D() },
	KindCompression:    func(*rand.Rand) Widget { return NewCompression() },
}

// New creates a freshly mounted widget of the given kind. A nil rng gets a
// time-seeded source.
func New(kind Kind, rng *rand.Rand) (Widget, error) {
	f, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17))
	}
	return f(rng), nil
}

// Kinds returns every registered kind, sorted.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Valid reports whether k names a registered widget.
func (k Kind) Valid() bool {
	_, ok := registry[k]
	return ok
}

func unknownAction(k Kind, name string) error {
	return fmt.Errorf("%w: %s does not handle %q", ErrUnknownAction, k, name)
}

// clamp bounds v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v float64, lo, hi int) int {
	return int(clamp(v, float64(lo), float64(hi)))
}

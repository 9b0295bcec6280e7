package widgets

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/splatdocs/internal/i18n"
)

func seeded() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) }

func TestDensitySplitFromInitial(t *testing.T) {
	d := NewDensity(seeded())
	require.Len(t, d.Blobs(), 1)
	require.Equal(t, 20.0, d.Blobs()[0].Size)

	d.Split()

	blobs := d.Blobs()
	require.Len(t, blobs, 2)
	for _, b := range blobs {
		assert.InDelta(t, 20/1.5, b.Size, 1e-9)
		assert.NotEqual(t, 1, b.ID, "original blob must be replaced")
	}
	assert.Equal(t, DensitySplit, d.Phase())
}

func TestDensitySplitKeepsSmallBlobs(t *testing.T) {
	d := NewDensity(seeded())
	d.Split() // 13.33
	d.Split() // 8.88, below threshold afterwards
	require.Len(t, d.Blobs(), 4)
	d.Split()
	assert.Len(t, d.Blobs(), 4)
}

func TestDensityCloneAndReset(t *testing.T) {
	d := NewDensity(seeded())
	for i := 0; i < 5; i++ {
		d.Clone()
	}
	blobs := d.Blobs()
	require.NotEmpty(t, blobs)
	assert.Equal(t, 1, blobs[0].ID)
	seen := map[int]bool{}
	for _, b := range blobs {
		assert.False(t, seen[b.ID], "duplicate id %d", b.ID)
		seen[b.ID] = true
	}

	d.Reset()
	assert.Equal(t, []Blob{{ID: 1, X: 50, Y: 50, Size: 20, Color: colorRose}}, d.Blobs())
	assert.Equal(t, DensityReset, d.Phase())
}

func TestPruneOpacityRemovesOnlyFaintDots(t *testing.T) {
	p := NewPruningWith([]Dot{
		{ID: 1, Size: 20, Opacity: 0.05, Status: DotNormal},
		{ID: 2, Size: 20, Opacity: 0.8, Status: DotNormal},
		{ID: 3, Size: 60, Opacity: 0.09, Status: DotNormal},
		{ID: 4, Size: 20, Opacity: 0.1, Status: DotNormal},
	})

	eff, err := p.Apply(Action{Name: "prune_opacity"})
	require.NoError(t, err)
	require.NotNil(t, eff.Followup)
	assert.Equal(t, SettleDelay, eff.Followup.After)
	assert.Equal(t, 500*time.Millisecond, eff.Followup.After)

	// Marked but still present until the delay has elapsed.
	require.Len(t, p.Dots(), 4)

	_, err = p.Apply(eff.Followup.Action)
	require.NoError(t, err)

	dots := p.Dots()
	require.Len(t, dots, 2)
	for _, d := range dots {
		assert.GreaterOrEqual(t, d.Opacity, 0.1)
	}
}

func TestPruneSizeAndResetOpacity(t *testing.T) {
	p := NewPruningWith([]Dot{
		{ID: 1, Size: 20, Opacity: 0.9},
		{ID: 2, Size: 55, Opacity: 0.9},
	})
	p.ResetOpacity()
	for _, d := range p.Dots() {
		assert.Equal(t, DotReset, d.Status)
		assert.LessOrEqual(t, d.Opacity, 0.3)
	}
	require.NoError(t, p.Settle(SettleReset))
	for _, d := range p.Dots() {
		assert.Equal(t, DotNormal, d.Status)
	}

	p.PruneSize()
	require.NoError(t, p.Settle(SettleSize))
	require.Len(t, p.Dots(), 1)
	assert.Equal(t, 1, p.Dots()[0].ID)

	assert.ErrorIs(t, p.Settle("bogus"), ErrUnknownAction)
}

// applyAll applies the actions in order and returns their follow-ups
// without running them.
func applyAll(t *testing.T, w Widget, names ...string) []Action {
	t.Helper()
	var followups []Action
	for _, name := range names {
		eff, err := w.Apply(Action{Name: name})
		require.NoError(t, err)
		if eff.Followup != nil {
			followups = append(followups, eff.Followup.Action)
		}
	}
	return followups
}

func TestPruningOverlappingTransitions(t *testing.T) {
	dots := []Dot{
		{ID: 1, Size: 20, Opacity: 0.05, Status: DotNormal},
		{ID: 2, Size: 20, Opacity: 0.8, Status: DotNormal},
		{ID: 3, Size: 60, Opacity: 0.9, Status: DotNormal},
		{ID: 4, Size: 60, Opacity: 0.05, Status: DotNormal},
	}

	tests := []struct {
		name    string
		actions []string
		want    []int
	}{
		{"prune opacity then reset", []string{"prune_opacity", "reset_opacity"}, []int{2, 3}},
		{"prune size then reset", []string{"prune_size", "reset_opacity"}, []int{1, 2}},
		{"reset then prune opacity", []string{"reset_opacity", "prune_opacity"}, []int{2, 3}},
		{"prune opacity then prune size", []string{"prune_opacity", "prune_size"}, []int{2}},
		{"prune size then prune opacity", []string{"prune_size", "prune_opacity"}, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPruningWith(dots)
			followups := applyAll(t, p, tt.actions...)
			require.Len(t, followups, len(tt.actions))
			require.Len(t, p.Dots(), len(dots), "nothing leaves before its settle")

			for _, f := range followups {
				_, err := p.Apply(f)
				require.NoError(t, err)
			}

			var ids []int
			for _, d := range p.Dots() {
				ids = append(ids, d.ID)
				assert.Equal(t, DotNormal, d.Status)
				if slices.Contains(tt.actions, "prune_opacity") {
					assert.GreaterOrEqual(t, d.Opacity, 0.1)
				}
				if slices.Contains(tt.actions, "prune_size") {
					assert.LessOrEqual(t, d.Size, 40.0)
				}
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestPruningResetKeepsMarkedDotsHidden(t *testing.T) {
	p := NewPruningWith([]Dot{
		{ID: 1, Size: 20, Opacity: 0.05, Status: DotNormal},
		{ID: 2, Size: 20, Opacity: 0.8, Status: DotNormal},
	})
	applyAll(t, p, "prune_opacity", "reset_opacity")

	dots := p.Dots()
	assert.Equal(t, DotPruned, dots[0].Status)
	assert.Equal(t, DotReset, dots[1].Status)
}

func TestPruningSpawn(t *testing.T) {
	p := NewPruning(seeded())
	dots := p.Dots()
	require.Len(t, dots, 15)
	for _, d := range dots {
		if d.Size > 40 {
			assert.Equal(t, colorRose, d.Color)
		}
		if d.Opacity == 0.05 && d.Size <= 40 {
			assert.Equal(t, colorSlate, d.Color)
		}
	}
}

func TestPipelineTickAndScrub(t *testing.T) {
	p := NewPipeline()
	require.True(t, p.Playing())
	for i := 0; i < 5; i++ {
		p.Tick()
	}
	assert.Equal(t, 1, p.Step())

	_, err := p.Apply(Action{Name: "step", Value: 9})
	require.NoError(t, err)
	assert.Equal(t, 3, p.Step())
	assert.False(t, p.Playing(), "scrubbing pauses")

	p.Tick()
	assert.Equal(t, 3, p.Step(), "paused pipeline must not advance")
}

func TestDynamic4DWrapsAndPauses(t *testing.T) {
	d := NewDynamic4D()
	_, err := d.Apply(Action{Name: "time", Value: 99.8})
	require.NoError(t, err)
	require.False(t, d.Playing())

	_, err = d.Apply(Action{Name: "play"})
	require.NoError(t, err)
	d.Tick()
	assert.InDelta(t, 0.3, d.Time(), 1e-9)

	_, err = d.Apply(Action{Name: "mode", Option: "deformation"})
	require.NoError(t, err)
	assert.Equal(t, ModeDeformation, d.Mode())

	_, err = d.Apply(Action{Name: "mode", Option: "sideways"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestComparisonPainterOrder(t *testing.T) {
	c := NewComparison()
	pts := c.Project()
	require.Len(t, pts, 7)
	for i := 1; i < len(pts); i++ {
		assert.GreaterOrEqual(t, pts[i-1].Depth, pts[i].Depth)
	}
	assert.InDelta(t, 80, c.RayEndY(), 1e-9)

	c.Tick()
	assert.InDelta(t, 45.5, c.Rotation(), 1e-9)
}

func TestProjectionAndLoss(t *testing.T) {
	p := NewProjection()
	r := p.Project()
	assert.InDelta(t, 50, r.Width3D, 1e-9)
	assert.InDelta(t, 100.0/70, r.Scale, 1e-9)
	assert.InDelta(t, 0, r.Rotation, 1e-9)

	_, err := p.Apply(Action{Name: "depth", Value: 1000})
	require.NoError(t, err)
	assert.InDelta(t, 100.0/170, p.Project().Scale, 1e-9)

	_, err = p.Apply(Action{Name: "depth", Value: math.NaN()})
	require.NoError(t, err)
	assert.InDelta(t, 100.0/30, p.Project().Scale, 1e-9, "NaN depth falls back to the minimum")
	assert.NotContains(t, p.Render(i18n.English), "NaN")

	_, err = p.Apply(Action{Name: "rotation", Value: math.Inf(1)})
	require.NoError(t, err)
	assert.InDelta(t, 180, p.Controls(i18n.English)[1].Value, 1e-9)

	l := NewLoss()
	assert.Equal(t, LossTerms{L1: 0.5, SSIM: 0.25, Total: 0.45}, l.Terms())
}

func TestRasterizationCoverage(t *testing.T) {
	r := NewRasterization()
	grid := r.Coverage()
	assert.Greater(t, grid[4][4], 0.0)
	assert.Equal(t, 0.0, grid[0][0])
	d := math.Hypot(45-50, 45-50)
	assert.InDelta(t, math.Pow(1-d/25, 1.5), grid[4][4], 1e-9)
}

func TestSHMemory(t *testing.T) {
	s := NewSH()
	assert.Equal(t, 16, s.Coefficients())
	assert.Equal(t, 48, s.Floats())
	_, err := s.Apply(Action{Name: "degree", Value: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Coefficients())
}

func TestSteppersClamp(t *testing.T) {
	o := NewOptimization()
	for i := 0; i < 10; i++ {
		_, err := o.Apply(Action{Name: "next"})
		require.NoError(t, err)
	}
	assert.Equal(t, 4, o.Step())
	assert.Equal(t, 0.0, o.LossValue())

	_, err := o.Apply(Action{Name: "prev"})
	require.NoError(t, err)
	assert.Equal(t, 3, o.Step())
}

func TestEveryKindRendersInBothLanguages(t *testing.T) {
	for _, k := range Kinds() {
		w, err := New(k, seeded())
		require.NoError(t, err, k)
		assert.Equal(t, k, w.Kind())
		for _, lang := range i18n.All {
			svg := w.Render(lang)
			assert.True(t, strings.HasPrefix(svg, "<svg"), "%s/%s", k, lang)
			assert.True(t, strings.HasSuffix(svg, "</svg>"), "%s/%s", k, lang)
			assert.NotEmpty(t, w.Title(lang))
		}
		_, err = w.Apply(Action{Name: "definitely-not-an-action"})
		assert.ErrorIs(t, err, ErrUnknownAction, k)
	}
	assert.Len(t, Kinds(), 15)
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New("hologram", nil)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestPlayerStartStop(t *testing.T) {
	var ticks atomic.Int32
	p := NewPlayer(5*time.Millisecond, func(context.Context) { ticks.Add(1) })

	p.Start(context.Background())
	p.Start(context.Background())
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	require.True(t, p.Running())

	p.Stop()
	assert.False(t, p.Running())
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, ticks.Load(), "no ticks after Stop")

	p.Stop()
}

func TestPlayerReleasedWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPlayer(time.Millisecond, func(ctx context.Context) { <-ctx.Done() })
	p.Start(ctx)
	cancel()
	require.Eventually(t, func() bool { return !p.Running() }, time.Second, time.Millisecond)
	p.Stop()
}

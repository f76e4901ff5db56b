package tiles

import (
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/vovakirdan/tui-tiles/internal/core"
)

// Spring parameters for EaseElastic: underdamped so the value overshoots a
// few times before resting on the target.
const (
	elasticFrequency = 14.0
	elasticDamping   = 0.25
)

// ScreenRenderer is the terminal-side Renderer. It records container
// positions and runs tweens in simulation time; Game.Render reads the
// resulting values every frame.
type ScreenRenderer struct {
	positions [2]float64
	scale     float64
	opacity   map[Target]float64 // Tiles not fully opaque
	tweens    []*tween
}

type tween struct {
	target  Target
	tw      Tween
	elapsed time.Duration
	started bool
	done    bool
	from    float64

	// EaseElastic state
	spring   harmonica.Spring
	pos, vel float64
}

// NewScreenRenderer creates a renderer with the score at rest and every tile
// fully visible.
func NewScreenRenderer() *ScreenRenderer {
	return &ScreenRenderer{
		scale:   1,
		opacity: make(map[Target]float64),
	}
}

// SetPosition implements Renderer.
func (r *ScreenRenderer) SetPosition(container int, offset float64) {
	r.positions[container] = offset
}

// Rebuild implements Renderer. Fades of the replaced rows are dropped.
func (r *ScreenRenderer) Rebuild(container int, _ []Row) {
	for t := range r.opacity {
		if t.Kind == TargetTile && t.Container == container {
			delete(r.opacity, t)
		}
	}
	for _, t := range r.tweens {
		if t.target.Kind == TargetTile && t.target.Container == container {
			t.done = true
		}
	}
	r.compact()
}

// Animate implements Renderer. The tween starts after its delay; starting
// replaces any running tween on the same target and property.
func (r *ScreenRenderer) Animate(target Target, tw Tween) {
	r.tweens = append(r.tweens, &tween{target: target, tw: tw})
}

// Advance moves every tween forward by dt.
func (r *ScreenRenderer) Advance(dt time.Duration) {
	for _, t := range r.tweens {
		if t.done {
			continue
		}
		t.elapsed += dt
		if t.elapsed < t.tw.Delay {
			continue
		}
		if !t.started {
			r.start(t, dt)
		}
		r.step(t)
	}
	r.compact()
}

func (r *ScreenRenderer) start(t *tween, dt time.Duration) {
	for _, o := range r.tweens {
		if o != t && o.started && !o.done && o.target == t.target && o.tw.Property == t.tw.Property {
			o.done = true
		}
	}
	t.started = true
	t.from = r.value(t.target, t.tw.Property)
	if t.tw.Ease == EaseElastic {
		t.spring = harmonica.NewSpring(dt.Seconds(), elasticFrequency, elasticDamping)
		t.pos = t.from
	}
}

func (r *ScreenRenderer) step(t *tween) {
	active := t.elapsed - t.tw.Delay
	if t.tw.Duration <= 0 || active >= t.tw.Duration {
		r.set(t.target, t.tw.Property, t.tw.To)
		t.done = true
		return
	}

	p := float64(active) / float64(t.tw.Duration)
	var v float64
	switch t.tw.Ease {
	case EaseLinear:
		v = t.from + (t.tw.To-t.from)*p
	case EaseElastic:
		if active > 0 {
			t.pos, t.vel = t.spring.Update(t.pos, t.vel, t.tw.To)
		}
		v = t.pos
	default:
		e := 1 - (1-p)*(1-p)
		v = t.from + (t.tw.To-t.from)*e
	}
	r.set(t.target, t.tw.Property, v)
}

func (r *ScreenRenderer) value(target Target, prop Property) float64 {
	switch prop {
	case PropScale:
		return r.scale
	case PropOpacity:
		if v, ok := r.opacity[target]; ok {
			return v
		}
	}
	return 1
}

func (r *ScreenRenderer) set(target Target, prop Property, v float64) {
	switch prop {
	case PropScale:
		r.scale = v
	case PropOpacity:
		r.opacity[target] = core.ClampF(v, 0, 1)
	}
}

// compact drops finished tweens.
func (r *ScreenRenderer) compact() {
	live := r.tweens[:0]
	for _, t := range r.tweens {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(r.tweens); i++ {
		r.tweens[i] = nil
	}
	r.tweens = live
}

// Position returns the last offset applied to a container.
func (r *ScreenRenderer) Position(container int) float64 {
	return r.positions[container]
}

// Scale returns the current score display scale.
func (r *ScreenRenderer) Scale() float64 {
	return r.scale
}

// Opacity returns the current opacity of a tile.
func (r *ScreenRenderer) Opacity(container, row, lane int) float64 {
	return r.value(TileTarget(container, row, lane), PropOpacity)
}

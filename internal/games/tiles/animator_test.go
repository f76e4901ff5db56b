package tiles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const frame = 10 * time.Millisecond

func advance(r *ScreenRenderer, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		r.Advance(frame)
	}
}

func TestScreenRendererDefaults(t *testing.T) {
	r := NewScreenRenderer()
	assert.Equal(t, 1.0, r.Scale())
	assert.Equal(t, 1.0, r.Opacity(0, 3, 2))
	assert.Empty(t, r.tweens)

	r.SetPosition(1, -4800)
	assert.Equal(t, -4800.0, r.Position(1))
}

func TestTweenReachesTarget(t *testing.T) {
	r := NewScreenRenderer()
	r.Animate(ScoreTarget(), Tween{Property: PropScale, To: 1.2, Duration: 300 * time.Millisecond, Ease: EaseOut})

	advance(r, 150*time.Millisecond)
	mid := r.Scale()
	assert.Greater(t, mid, 1.1, "ease-out is past the linear midpoint")
	assert.Less(t, mid, 1.2)

	advance(r, 150*time.Millisecond)
	assert.Equal(t, 1.2, r.Scale())
	assert.Empty(t, r.tweens)
}

func TestLinearTween(t *testing.T) {
	r := NewScreenRenderer()
	r.Animate(TileTarget(0, 1, 2), Tween{Property: PropOpacity, To: 0, Duration: 100 * time.Millisecond, Ease: EaseLinear})

	advance(r, 50*time.Millisecond)
	assert.InDelta(t, 0.5, r.Opacity(0, 1, 2), 1e-9)
	assert.Equal(t, 1.0, r.Opacity(0, 1, 3), "other tiles are untouched")
}

func TestZeroDurationSnaps(t *testing.T) {
	r := NewScreenRenderer()
	r.Animate(ScoreTarget(), Tween{Property: PropScale, To: 2})
	r.Advance(frame)
	assert.Equal(t, 2.0, r.Scale())
}

func TestScorePopSettlesElastically(t *testing.T) {
	r := NewScreenRenderer()
	r.Animate(ScoreTarget(), Tween{Property: PropScale, To: 1.2, Duration: 300 * time.Millisecond, Ease: EaseOut})
	r.Animate(ScoreTarget(), Tween{
		Property: PropScale, To: 1, Duration: 700 * time.Millisecond, Delay: 300 * time.Millisecond, Ease: EaseElastic,
	})

	advance(r, 300*time.Millisecond)
	assert.Equal(t, 1.2, r.Scale())

	lowest := r.Scale()
	for i := 0; i < 70; i++ {
		r.Advance(frame)
		lowest = min(lowest, r.Scale())
	}

	assert.Less(t, lowest, 1.0, "the spring overshoots below rest")
	assert.Equal(t, 1.0, r.Scale())
	assert.Empty(t, r.tweens)
}

func TestDelayedTweenWaits(t *testing.T) {
	r := NewScreenRenderer()
	r.Animate(ScoreTarget(), Tween{Property: PropScale, To: 3, Duration: frame, Delay: 100 * time.Millisecond})

	advance(r, 90*time.Millisecond)
	assert.Equal(t, 1.0, r.Scale())
	assert.NotEmpty(t, r.tweens)

	advance(r, 20*time.Millisecond)
	assert.Equal(t, 3.0, r.Scale())
}

func TestNewTweenReplacesRunningOne(t *testing.T) {
	r := NewScreenRenderer()
	r.Animate(ScoreTarget(), Tween{Property: PropScale, To: 5, Duration: time.Second, Ease: EaseLinear})
	advance(r, 100*time.Millisecond)

	r.Animate(ScoreTarget(), Tween{Property: PropScale, To: 1, Duration: 100 * time.Millisecond, Ease: EaseLinear})
	advance(r, 200*time.Millisecond)

	assert.Equal(t, 1.0, r.Scale())
	assert.Empty(t, r.tweens)
}

func TestRebuildDropsTileState(t *testing.T) {
	r := NewScreenRenderer()
	r.Animate(TileTarget(0, 4, 1), Tween{Property: PropOpacity, To: 0, Duration: 300 * time.Millisecond})
	r.Animate(TileTarget(1, 4, 1), Tween{Property: PropOpacity, To: 0, Duration: 300 * time.Millisecond})
	advance(r, 100*time.Millisecond)
	assert.Less(t, r.Opacity(0, 4, 1), 1.0)

	r.Rebuild(0, nil)
	assert.Equal(t, 1.0, r.Opacity(0, 4, 1))
	assert.Less(t, r.Opacity(1, 4, 1), 1.0, "other container keeps its fades")

	advance(r, 300*time.Millisecond)
	assert.Equal(t, 1.0, r.Opacity(0, 4, 1))
	assert.Equal(t, 0.0, r.Opacity(1, 4, 1))
}

func TestFadeChar(t *testing.T) {
	tests := []struct {
		opacity float64
		want    rune
		visible bool
	}{
		{1, '▓', true},
		{0.5, '▒', true},
		{0.1, '░', true},
		{0, 0, false},
	}
	for _, tt := range tests {
		got, visible := fadeChar(tt.opacity)
		assert.Equal(t, tt.visible, visible, "opacity %v", tt.opacity)
		assert.Equal(t, tt.want, got, "opacity %v", tt.opacity)
	}
}

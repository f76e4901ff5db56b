package tiles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/registry"
)

func newTestGame(t *testing.T) (*Game, *core.Screen) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	g := New()
	g.UseScoreStore(core.NewMemoryStore())
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 24, TickRate: 100, Seed: 1})
	return g, core.NewScreen(40, 24)
}

func TestGameRegistered(t *testing.T) {
	g, err := registry.Create(ID)
	require.NoError(t, err)
	assert.Equal(t, "Piano Tiles", g.Title())
	_, ok := g.(registry.ScoreStoreUser)
	assert.True(t, ok)
}

func TestGameStepScoresSurvival(t *testing.T) {
	g, _ := newTestGame(t)

	var res core.StepResult
	for i := 0; i < 10; i++ {
		res = g.Step(core.NewInputFrame())
	}
	assert.Equal(t, 10, res.State.Score)
	assert.Equal(t, 10, res.State.BestScore)
	assert.False(t, res.State.GameOver)
	assert.Empty(t, res.State.EndReason)
}

func TestGameLaneKeyTapsTile(t *testing.T) {
	g, _ := newTestGame(t)
	g.scroller.ring[0].Offset = -2000
	lane := g.scroller.ring[0].Rows[9].Pressable

	in := core.NewInputFrame()
	in.Set(core.ActionLane1 + core.Action(lane))
	res := g.Step(in)

	assert.Equal(t, 2, res.State.Score, "one tap plus one tick")
	assert.True(t, g.scroller.ring[0].Rows[9].Tiles[lane].Tapped)
}

func TestGameClickTapsTileUnderCursor(t *testing.T) {
	g, screen := newTestGame(t)
	g.scroller.ring[0].Offset = -2000
	g.Render(screen)

	lane := g.scroller.ring[0].Rows[9].Pressable
	in := core.NewInputFrame()
	in.Click(g.layout.laneX(lane)+1, 20) // Row 9 covers the bottom of the field
	res := g.Step(in)

	assert.Equal(t, 2, res.State.Score)
	assert.True(t, g.scroller.ring[0].Rows[9].Tiles[lane].Tapped)
}

func TestGameClickOnSeparatorIsIgnored(t *testing.T) {
	g, screen := newTestGame(t)
	g.scroller.ring[0].Offset = -2000
	g.Render(screen)

	in := core.NewInputFrame()
	in.Click(g.layout.x, 20)
	in.Click(g.layout.laneX(1)-1, 20)
	in.Click(g.layout.x+g.layout.width()-1, 20) // Right edge
	in.Click(g.layout.x+g.layout.width()+2, 20) // Beside the strip
	in.Click(g.layout.laneX(0), 0)              // HUD row
	res := g.Step(in)

	assert.Equal(t, 1, res.State.Score)
	assert.False(t, res.State.GameOver)
}

func TestGameWrongClickEndsRun(t *testing.T) {
	g, screen := newTestGame(t)
	g.scroller.ring[0].Offset = -2000
	g.Render(screen)

	wrong := (g.scroller.ring[0].Rows[9].Pressable + 1) % Lanes
	in := core.NewInputFrame()
	in.Click(g.layout.laneX(wrong), 20)
	res := g.Step(in)

	assert.True(t, res.State.GameOver)
	assert.Equal(t, string(EndWrongTile), res.State.EndReason)
	assert.Equal(t, 0, res.State.Score)

	res = g.Step(core.NewInputFrame())
	assert.Equal(t, 0, res.State.Score, "no ticks after the run ended")

	screen.Clear()
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
	assert.Contains(t, screen.String(), "wrong tile")
}

func TestGameRender(t *testing.T) {
	g, screen := newTestGame(t)
	g.Render(screen)

	hud := screen.Row(0)
	assert.Contains(t, hud, "Score: 0")
	assert.Contains(t, hud, "Best: 0")
	assert.Contains(t, hud, "x1.00")

	trigger := screen.Row(23)
	for _, key := range laneKeys {
		assert.Contains(t, trigger, key)
	}
	assert.True(t, strings.ContainsRune(trigger, TriggerChar))

	// Nothing has scrolled into view yet
	assert.False(t, strings.ContainsRune(screen.String(), TileChar))
}

func TestGameRenderDrawsVisibleTiles(t *testing.T) {
	g, screen := newTestGame(t)
	g.scroller.ring[0].Offset = -2000
	g.renderer.SetPosition(0, -2000)
	g.Render(screen)

	lane := g.scroller.ring[0].Rows[9].Pressable
	assert.Equal(t, TileChar, screen.Get(g.layout.laneX(lane), 20))
	assert.Equal(t, core.ColorBrightCyan, screen.GetCell(g.layout.laneX(lane), 20).Color)
}

func TestGameDifficultyPreset(t *testing.T) {
	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g, _ := newTestGame(t)
	assert.Equal(t, "hard", g.Variant())
	assert.InDelta(t, 0.3, g.scroller.Speed(), 1e-9)

	SetDifficultyPreset("")
	g.Reset(core.DefaultConfig())
	assert.Equal(t, "normal", g.Variant())
	assert.InDelta(t, 0.2, g.scroller.Speed(), 1e-9)
}

func TestGameKeepsBestAcrossResets(t *testing.T) {
	g, _ := newTestGame(t)
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Reset(core.DefaultConfig())

	assert.Equal(t, 0, g.State().Score)
	assert.Equal(t, 30, g.State().BestScore)
}

func TestGameSetVariantOverridesPackagePreset(t *testing.T) {
	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g, _ := newTestGame(t)
	g.SetVariant("easy")
	g.Reset(core.DefaultConfig())

	assert.Equal(t, "easy", g.Variant())
	assert.InDelta(t, 0.15, g.scroller.Speed(), 1e-9)
}

// Package tiles implements a piano tiles reflex game.
// Rows of four tiles scroll towards a trigger line; the player taps the one
// dark tile of every row before it crosses the line.
package tiles

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/registry"
)

// ID is the registry and score table identifier of the game.
const ID = "tiles"

// Visual characters for rendering
const (
	TileChar     = '█'
	LaneSepChar  = '│'
	TriggerChar  = '═'
	MissMarkChar = '✗'
)

const tileColor = core.ColorBrightCyan

// Fade steps of a tapped tile, from almost opaque to almost gone.
var fadeChars = []rune{'▓', '▒', '░'}

// laneKeys are shown under each lane on the trigger line.
var laneKeys = [Lanes]string{"D", "F", "J", "K"}

// Package-level settings applied on the next Reset, set by the CLI and menu.
var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	gameLogger       = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the preset applied on top of the loaded config.
// Unknown names clear the preset.
func SetDifficultyPreset(name string) {
	preset, _ := config.ParsePreset(name)
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = preset
}

// SetLogger sets the logger used by new runs.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	gameLogger = l
}

func settings() (string, config.DifficultyPreset, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return configPath, difficultyPreset, gameLogger
}

// field is the on-screen area of the tile strip, in cells.
type field struct {
	x, y  int // Top-left corner (left lane separator)
	laneW int // Width of one lane without separators
	h     int // Rows between the HUD and the trigger line
}

func (f field) width() int {
	return f.laneW*Lanes + Lanes + 1
}

// laneX returns the first column of a lane.
func (f field) laneX(lane int) int {
	return f.x + 1 + lane*(f.laneW+1)
}

// Game adapts the Scroller to the platform: it turns input frames into taps,
// drives one tick per step and draws the strip into a screen buffer.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.TilesConfig
	preset   config.DifficultyPreset
	variant  *config.DifficultyPreset // Per-instance preset, overrides the package setting
	scroller *Scroller
	renderer *ScreenRenderer
	store    core.ScoreStore
	layout   field // Layout of the last Render, used to map clicks
}

// New creates a new tiles game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Piano Tiles"
}

// Variant returns the difficulty preset of the current run.
func (g *Game) Variant() string {
	if g.preset == "" {
		return string(config.DifficultyNormal)
	}
	return string(g.preset)
}

// SetVariant picks the difficulty preset for this instance.
// Unknown names fall back to the configured values.
func (g *Game) SetVariant(name string) {
	preset, _ := config.ParsePreset(name)
	g.variant = &preset
}

// UseScoreStore sets the store holding the best score.
// Without one the game keeps the best score in memory.
func (g *Game) UseScoreStore(store core.ScoreStore) {
	g.store = store
}

// Reset loads the configuration and starts a new run.
func (g *Game) Reset(rt core.RuntimeConfig) {
	path, preset, logger := settings()
	if g.variant != nil {
		preset = *g.variant
	}

	cfg, err := config.LoadTiles(path)
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.DefaultTilesConfig()
	}
	if preset != "" {
		config.ApplyTilesPreset(&cfg, preset)
	}
	if g.store == nil {
		g.store = core.NewMemoryStore()
	}

	g.runtime = rt
	g.cfg = cfg
	g.preset = preset
	g.renderer = NewScreenRenderer()
	g.scroller = NewScroller(cfg, rt.Seed, g.renderer, g.store, logger.With("game", ID))
	g.scroller.Play()
}

// Step applies this frame's taps, then advances the strip by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.renderer.Advance(g.runtime.TickInterval())

	if !g.scroller.Running() {
		return core.StepResult{State: g.State()}
	}

	for _, lane := range in.Lanes {
		g.scroller.TapLane(lane)
		if !g.scroller.Running() {
			return core.StepResult{State: g.State()}
		}
	}
	for _, p := range in.Clicks {
		if c, r, lane, ok := g.tileAtCell(p); ok {
			g.scroller.Tap(c, r, lane)
		}
		if !g.scroller.Running() {
			return core.StepResult{State: g.State()}
		}
	}

	g.scroller.Tick()
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.scroller == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:     g.scroller.Score(),
		BestScore: g.scroller.Best(),
		GameOver:  !g.scroller.Running(),
		EndReason: string(g.scroller.Reason()),
	}
}

// Scroller exposes the running Scroller.
func (g *Game) Scroller() *Scroller {
	return g.scroller
}

// computeLayout centers the strip on a w x h screen. Row 0 holds the HUD and
// the last row the trigger line.
func computeLayout(w, h int) field {
	laneW := core.Clamp((w-Lanes-1)/Lanes, 1, 12)
	f := field{laneW: laneW, h: max(h-2, 1), y: 1}
	f.x = max((w-f.width())/2, 0)
	return f
}

// cellY maps a strip coordinate to a screen row. The viewport [-vp, 0)
// spans the field rows.
func (g *Game) cellY(f field, y float64) int {
	vp := g.cfg.Layout.ViewportHeight
	return f.y + int(math.Floor((y+vp)*float64(f.h)/vp))
}

// stripY maps the center of a screen row to a strip coordinate.
func (g *Game) stripY(f field, cy int) float64 {
	vp := g.cfg.Layout.ViewportHeight
	return -vp + (float64(cy-f.y)+0.5)*vp/float64(f.h)
}

// tileAtCell finds the tile drawn at a screen cell.
func (g *Game) tileAtCell(p core.Point) (container, row, lane int, ok bool) {
	f := g.layout
	if f.laneW == 0 || !core.NewRect(f.x+1, f.y, f.width()-2, f.h).Contains(p.X, p.Y) {
		return 0, 0, 0, false
	}
	rel := p.X - f.x - 1
	lane = rel / (f.laneW + 1)
	if rel%(f.laneW+1) == f.laneW {
		return 0, 0, 0, false // On a separator
	}
	container, row, ok = g.scroller.TileAt(g.stripY(f, p.Y))
	return container, row, lane, ok
}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	if g.scroller == nil {
		return
	}
	f := computeLayout(dst.Width(), dst.Height())
	g.layout = f

	// Lane separators
	for i := 0; i <= Lanes; i++ {
		dst.DrawVLine(f.x+i*(f.laneW+1), f.y, f.h, LaneSepChar, core.ColorGray)
	}

	containers := g.scroller.Containers()
	rowHeight := g.cfg.RowHeight()
	for c := range containers {
		offset := g.renderer.Position(c)
		for r, row := range containers[c].Rows {
			top := offset + RowTop(r, rowHeight)
			g.drawRow(dst, f, c, r, row, top, top+rowHeight)
		}
	}

	g.drawTriggerLine(dst, f)
	g.drawHUD(dst, f)

	if !g.scroller.Running() {
		st := g.State()
		g.drawCenteredMessage(dst,
			"GAME OVER",
			fmt.Sprintf("%s  |  Score: %d  Best: %d", st.EndReason, st.Score, st.BestScore),
			"R: restart  B: menu  Q: quit",
		)
	}
}

// drawRow draws one row spanning strip coordinates [top, bottom).
// The last screen row of a tile is left empty so rows stay apart.
func (g *Game) drawRow(dst *core.Screen, f field, c, r int, row Row, top, bottom float64) {
	y0 := max(g.cellY(f, top), f.y)
	y1 := g.cellY(f, bottom) - 1
	if y1-y0 < 1 {
		y1 = g.cellY(f, bottom)
	}
	y1 = min(y1, f.y+f.h)
	if y0 >= y1 {
		return
	}

	for lane, tile := range row.Tiles {
		if !tile.Pressable {
			continue
		}
		ch, color := TileChar, tileColor
		if tile.Tapped {
			opacity := g.renderer.Opacity(c, r, lane)
			var visible bool
			ch, visible = fadeChar(opacity)
			if !visible {
				continue
			}
			color = tileColor.Dimmed()
			if opacity <= 0.5 {
				color = color.Dimmed()
			}
		}
		dst.DrawRectColored(core.NewRect(f.laneX(lane), y0, f.laneW, y1-y0), ch, color)
	}
}

// fadeChar picks the glyph for a tapped tile at the given opacity.
func fadeChar(opacity float64) (rune, bool) {
	switch {
	case opacity <= 0:
		return 0, false
	case opacity > 2.0/3:
		return fadeChars[0], true
	case opacity > 1.0/3:
		return fadeChars[1], true
	default:
		return fadeChars[2], true
	}
}

func (g *Game) drawTriggerLine(dst *core.Screen, f field) {
	y := f.y + f.h
	color := core.ColorRed
	if !g.scroller.Running() && g.scroller.Reason() == EndMissed {
		color = core.ColorBrightRed
	}
	dst.DrawHLine(f.x, y, f.width(), TriggerChar, color)
	for lane, key := range laneKeys {
		dst.DrawTextColored(f.laneX(lane)+(f.laneW-len(key))/2, y, key, core.ColorBrightWhite)
	}
	if g.scroller.Reason() == EndMissed {
		dst.SetColored(f.x+f.width()/2, y, MissMarkChar, core.ColorBrightRed)
	}
}

// drawHUD draws score, best score and speed on the top row. The score is
// highlighted while its tap animation plays.
func (g *Game) drawHUD(dst *core.Screen, f field) {
	score := fmt.Sprintf("Score: %d", g.scroller.Score())
	if g.renderer.Scale() > 1.02 {
		dst.DrawTextColored(1, 0, "» "+score+" «", core.ColorBrightYellow)
	} else {
		dst.DrawTextColored(3, 0, score, core.ColorBrightWhite)
	}

	speed := fmt.Sprintf("x%.2f", g.scroller.Speed()/g.cfg.Scroll.BaseSpeed)
	dst.DrawTextColored((dst.Width()-len(speed))/2, 0, speed, core.ColorGray)

	best := fmt.Sprintf("Best: %d", g.scroller.Best())
	dst.DrawTextColored(dst.Width()-len(best)-1, 0, best, core.ColorYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len(title)
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightRed)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l)
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

package tiles

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
)

// BestScoreKey is the ScoreStore key holding the best score.
const BestScoreKey = "highScore"

// EndReason says why a run stopped.
type EndReason string

const (
	EndNone      EndReason = ""
	EndMissed    EndReason = "missed a tile"
	EndWrongTile EndReason = "wrong tile"
	EndStopped   EndReason = "stopped"
)

// TapResult is the outcome of a single tap.
type TapResult int

const (
	TapIgnored TapResult = iota // Nothing happened (idle, already tapped, empty lane)
	TapScored                   // A pressable tile was tapped
	TapWrong                    // A non-pressable tile was tapped; the run is over
)

// Scroller runs the tile strip: two containers of rows scrolling towards the
// trigger line, tap handling, miss detection and scoring.
//
// A Scroller is not safe for concurrent use. The host must serialize Tick and
// Tap calls; Bubble Tea does that by delivering messages one at a time.
type Scroller struct {
	cfg      config.TilesConfig
	rng      *rand.Rand
	lastLane int // Pressable lane of the last generated row, across both containers
	ring     ring

	score    int
	best     int
	speed    float64
	running  bool
	reason   EndReason
	ticks    int
	recycles int

	renderer Renderer
	store    core.ScoreStore
	logger   *log.Logger
}

// NewScroller creates an idle Scroller. Nil collaborators are replaced with a
// no-op renderer, an in-memory store and a discarding logger.
func NewScroller(cfg config.TilesConfig, seed int64, renderer Renderer, store core.ScoreStore, logger *log.Logger) *Scroller {
	if renderer == nil {
		renderer = nopRenderer{}
	}
	if store == nil {
		store = core.NewMemoryStore()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Scroller{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		renderer: renderer,
		store:    store,
		logger:   logger,
	}
	s.best = s.storedBest()
	return s
}

// storedBest reads the persisted best score. A missing value is initialized
// to zero. An unreadable one counts as zero and the store is left untouched.
func (s *Scroller) storedBest() int {
	v, ok, err := s.store.Get(BestScoreKey)
	if err != nil {
		s.logger.Warn("could not read best score", "error", err)
		return 0
	}
	if !ok {
		if err := s.store.Set(BestScoreKey, 0); err != nil {
			s.logger.Warn("could not initialize best score", "error", err)
		}
		return 0
	}
	return max(v, 0)
}

// Play starts a new run: score reset, fresh rows in both containers, and the
// containers parked above the viewport.
func (s *Scroller) Play() {
	s.score = 0
	s.speed = s.cfg.Scroll.BaseSpeed
	s.reason = EndNone
	s.ticks = 0
	s.recycles = 0
	s.best = max(s.best, s.storedBest())

	for i := range s.ring {
		s.fill(i)
	}

	// First container sits one container plus one viewport above the line,
	// the second directly above the first.
	viewport := s.cfg.Layout.ViewportHeight
	s.ring[0].Offset = -s.ring[0].Height - viewport
	s.ring[1].Offset = -(s.ring[0].Height + s.ring[1].Height) - viewport

	s.running = true
	s.syncPositions()

	s.logger.Debug("run started", "speed", s.speed, "best", s.best)
}

// Stop ends the run without a miss.
func (s *Scroller) Stop() {
	if s.running {
		s.end(EndStopped)
	}
}

// Tick advances the run by one fixed step. It is a no-op when idle.
func (s *Scroller) Tick() {
	if !s.running {
		return
	}
	s.ticks++

	// Survival score
	s.score++
	s.recordBest()

	step := s.cfg.Scroll.StepFactor * s.speed
	s.ring[0].Offset += step
	s.ring[1].Offset += step

	// Misses are checked before recycling, the reverse of recycling first:
	// a container that passed the line in this step must not take an
	// untapped tile with it.
	if c, r, missed := s.missedTile(); missed {
		s.syncPositions()
		s.logger.Debug("tile missed", "container", c, "row", r)
		s.end(EndMissed)
		return
	}

	for i := range s.ring {
		if s.ring[i].Offset >= 0 {
			s.recycle(i)
		}
	}

	s.syncPositions()
}

// missedTile finds an untapped pressable tile of the front container that
// reached the trigger line. A tile's top at strip y has crossed once
// y >= -tolerance, i.e. |offset| - tolerance <= rowTop.
func (s *Scroller) missedTile() (container, row int, missed bool) {
	f := s.ring.front()
	c := &s.ring[f]
	rowHeight := s.cfg.RowHeight()
	tolerance := s.cfg.Layout.TriggerTolerance

	for r := range c.Rows {
		if !c.Rows[r].PendingTile() {
			continue
		}
		if c.Offset+RowTop(r, rowHeight) >= -tolerance {
			return f, r, true
		}
	}
	return 0, 0, false
}

// recycle moves container i directly behind the other one, regenerates its
// rows and speeds the strip up.
func (s *Scroller) recycle(i int) {
	s.ring[i].Offset = -s.ring[i].Height + s.ring[other(i)].Offset
	s.fill(i)
	s.speed += s.cfg.Scroll.SpeedStep
	s.recycles++

	s.logger.Debug("container recycled", "container", i, "offset", s.ring[i].Offset, "speed", s.speed)
}

// fill replaces container i's rows with freshly generated ones.
func (s *Scroller) fill(i int) {
	rows, last := GenerateRows(s.rng, s.lastLane, s.cfg.Layout.RowsPerContainer)
	s.lastLane = last
	s.ring[i].Rows = rows
	s.ring[i].Height = s.cfg.ContainerHeight()
	s.renderer.Rebuild(i, rows)
}

func (s *Scroller) syncPositions() {
	for i := range s.ring {
		s.renderer.SetPosition(i, s.ring[i].Offset)
	}
}

// Tap handles a tap on one tile.
// Tapping the pressable tile scores once; tapping any other tile ends the run.
// Indexes must address an existing tile.
func (s *Scroller) Tap(container, row, lane int) TapResult {
	if !s.running {
		return TapIgnored
	}
	if container < 0 || container >= len(s.ring) {
		panic(fmt.Sprintf("tiles: container %d out of range", container))
	}
	rows := s.ring[container].Rows
	if row < 0 || row >= len(rows) || lane < 0 || lane >= Lanes {
		panic(fmt.Sprintf("tiles: tile (%d, %d) out of range", row, lane))
	}

	tile := &rows[row].Tiles[lane]
	if !tile.Pressable {
		s.logger.Debug("wrong tile tapped", "container", container, "row", row, "lane", lane)
		s.end(EndWrongTile)
		return TapWrong
	}
	if tile.Tapped {
		return TapIgnored
	}

	tile.Tapped = true
	s.score++
	s.recordBest()

	anim := s.cfg.Animation
	s.renderer.Animate(ScoreTarget(), Tween{
		Property: PropScale,
		To:       anim.ScoreScale,
		Duration: secs(anim.ScoreUpSecs),
		Ease:     EaseOut,
	})
	s.renderer.Animate(ScoreTarget(), Tween{
		Property: PropScale,
		To:       1,
		Duration: secs(anim.ScoreSettleSecs),
		Delay:    secs(anim.ScoreUpSecs),
		Ease:     EaseElastic,
	})
	s.renderer.Animate(TileTarget(container, row, lane), Tween{
		Property: PropOpacity,
		To:       0,
		Duration: secs(anim.TileFadeSecs),
		Ease:     EaseOut,
	})

	return TapScored
}

// TapLane taps the given lane of the lowest visible row that still waits for
// a tap. Lanes with no such row on screen are ignored.
func (s *Scroller) TapLane(lane int) TapResult {
	if !s.running {
		return TapIgnored
	}

	rowHeight := s.cfg.RowHeight()
	viewport := s.cfg.Layout.ViewportHeight

	bestC, bestR := -1, -1
	bestTop := 0.0
	for c := range s.ring {
		for r, row := range s.ring[c].Rows {
			if !row.PendingTile() {
				continue
			}
			top := s.ring[c].Offset + RowTop(r, rowHeight)
			if top >= 0 || top+rowHeight <= -viewport {
				continue // Not on screen
			}
			if bestC < 0 || top > bestTop {
				bestC, bestR, bestTop = c, r, top
			}
		}
	}

	if bestC < 0 {
		return TapIgnored
	}
	return s.Tap(bestC, bestR, lane)
}

// TileAt returns the container and row covering strip coordinate y.
func (s *Scroller) TileAt(y float64) (container, row int, ok bool) {
	rowHeight := s.cfg.RowHeight()
	for c := range s.ring {
		if r, found := s.ring[c].RowAt(y, rowHeight); found {
			return c, r, true
		}
	}
	return 0, 0, false
}

// recordBest persists max(score, stored best). The store is read every time
// so a best raised elsewhere (another SSH session) is never overwritten.
// Nothing is written while the stored value cannot be read.
func (s *Scroller) recordBest() {
	stored, ok, err := s.store.Get(BestScoreKey)
	if err != nil {
		s.best = max(s.score, s.best)
		s.logger.Debug("best score not persisted", "error", err)
		return
	}
	if !ok || stored < 0 {
		stored = 0
	}
	s.best = max(s.score, stored, s.best)
	if ok && s.best == stored {
		return
	}
	if err := s.store.Set(BestScoreKey, s.best); err != nil {
		s.logger.Warn("could not persist best score", "error", err)
	}
}

func (s *Scroller) end(reason EndReason) {
	s.running = false
	s.reason = reason
	s.recordBest()

	s.logger.Debug("run ended",
		"reason", string(reason),
		"score", s.score,
		"best", s.best,
		"ticks", s.ticks,
		"recycles", s.recycles,
		"speed", s.speed,
	)
}

// Score returns the score of the current or last run.
func (s *Scroller) Score() int { return s.score }

// Best returns the best score known to this Scroller.
func (s *Scroller) Best() int { return s.best }

// Speed returns the current scroll speed.
func (s *Scroller) Speed() float64 { return s.speed }

// Running reports whether a run is in progress.
func (s *Scroller) Running() bool { return s.running }

// Reason returns why the last run ended.
func (s *Scroller) Reason() EndReason { return s.reason }

// Ticks returns the number of ticks processed in the current run.
func (s *Scroller) Ticks() int { return s.ticks }

// Containers returns the two containers. Callers must not modify them.
func (s *Scroller) Containers() [2]Container { return s.ring }

type nopRenderer struct{}

func (nopRenderer) SetPosition(int, float64) {}
func (nopRenderer) Rebuild(int, []Row)       {}
func (nopRenderer) Animate(Target, Tween)    {}

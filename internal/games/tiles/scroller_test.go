package tiles

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tiles/internal/config"
	"github.com/vovakirdan/tui-tiles/internal/core"
)

type animation struct {
	target Target
	tween  Tween
}

// recordingRenderer captures everything the Scroller sends to its renderer.
type recordingRenderer struct {
	positions  [2]float64
	rebuilds   [2]int
	animations []animation
}

func (r *recordingRenderer) SetPosition(c int, offset float64) { r.positions[c] = offset }
func (r *recordingRenderer) Rebuild(c int, _ []Row)             { r.rebuilds[c]++ }
func (r *recordingRenderer) Animate(target Target, tw Tween) {
	r.animations = append(r.animations, animation{target, tw})
}

// flakyStore fails the next failReads reads.
type flakyStore struct {
	*core.MemoryStore
	failReads int
}

func (f *flakyStore) Get(key string) (int, bool, error) {
	if f.failReads > 0 {
		f.failReads--
		return 0, false, errors.New("disk I/O error")
	}
	return f.MemoryStore.Get(key)
}

func newTestScroller(t *testing.T, store core.ScoreStore) (*Scroller, *recordingRenderer) {
	t.Helper()
	rec := &recordingRenderer{}
	s := NewScroller(config.DefaultTilesConfig(), 1, rec, store, nil)
	return s, rec
}

// tapAll taps every pending tile of both containers.
func tapAll(t *testing.T, s *Scroller) {
	t.Helper()
	for c := range s.ring {
		for r, row := range s.ring[c].Rows {
			if row.PendingTile() {
				require.Equal(t, TapScored, s.Tap(c, r, row.Pressable))
			}
		}
	}
}

func TestPlayParksContainersAboveViewport(t *testing.T) {
	s, rec := newTestScroller(t, nil)
	s.Play()

	c := s.Containers()
	require.Len(t, c[0].Rows, 10)
	require.Len(t, c[1].Rows, 10)
	assert.Equal(t, 2000.0, c[0].Height)
	assert.Equal(t, -2800.0, c[0].Offset)
	assert.Equal(t, -4800.0, c[1].Offset)

	assert.Equal(t, [2]float64{-2800, -4800}, rec.positions)
	assert.Equal(t, [2]int{1, 1}, rec.rebuilds)
	assert.True(t, s.Running())
	assert.Equal(t, 0, s.Score())
	assert.InDelta(t, 0.2, s.Speed(), 1e-9)

	// Consecutive rows differ across the container boundary too
	assert.NotEqual(t, c[0].Rows[9].Pressable, c[1].Rows[0].Pressable)
}

func TestTickScoresSurvival(t *testing.T) {
	store := core.NewMemoryStore()
	s, rec := newTestScroller(t, store)
	s.Play()

	for i := 0; i < 100; i++ {
		s.Tick()
	}

	assert.True(t, s.Running())
	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 100, s.Best())
	assert.Equal(t, -2800.0+100*4, s.Containers()[0].Offset)
	assert.Equal(t, s.Containers()[0].Offset, rec.positions[0])

	best, ok, _ := store.Get(BestScoreKey)
	require.True(t, ok)
	assert.Equal(t, 100, best)
}

func TestTickIsNoOpWhenIdle(t *testing.T) {
	s, _ := newTestScroller(t, nil)
	s.Tick()
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Ticks())
}

func TestMissEndsRunOnce(t *testing.T) {
	s, _ := newTestScroller(t, nil)
	s.Play()

	for s.Running() && s.Ticks() < 10000 {
		s.Tick()
	}
	require.False(t, s.Running())
	assert.Equal(t, EndMissed, s.Reason())

	// The last row of the first container reaches the line after
	// (1000 - 2) / 4 ticks, rounded up.
	assert.Equal(t, 250, s.Ticks())
	assert.Equal(t, 250, s.Score())

	offset := s.Containers()[0].Offset
	s.Tick()
	assert.Equal(t, 250, s.Score())
	assert.Equal(t, offset, s.Containers()[0].Offset)
	assert.Equal(t, TapIgnored, s.Tap(0, 0, 0))
}

func TestMissIgnoresTappedTiles(t *testing.T) {
	s, _ := newTestScroller(t, nil)
	s.Play()
	tapAll(t, s)

	for i := 0; i < 300; i++ {
		s.Tick()
	}
	assert.True(t, s.Running(), "tapped tiles never count as missed")
}

func TestRecycleMovesContainerBehindOther(t *testing.T) {
	s, rec := newTestScroller(t, nil)
	s.Play()
	tapAll(t, s)
	require.Equal(t, 20, s.Score())

	s.ring[0].Offset = -2
	s.Tick()

	c := s.Containers()
	assert.Equal(t, -4796.0, c[1].Offset)
	assert.Equal(t, -2000.0+c[1].Offset, c[0].Offset)
	assert.InDelta(t, 0.25, s.Speed(), 1e-9)
	assert.Equal(t, 2, rec.rebuilds[0])
	assert.Equal(t, 1, rec.rebuilds[1])

	require.Len(t, c[0].Rows, 10)
	for _, row := range c[0].Rows {
		assert.True(t, row.PendingTile(), "recycled rows start untapped")
	}
	assert.True(t, s.Running())
}

func TestMissCheckedBeforeRecycle(t *testing.T) {
	s, _ := newTestScroller(t, nil)
	s.Play()

	// The bottom row is still pending while the container jumps past the line.
	s.ring[0].Offset = -1
	s.Tick()

	assert.False(t, s.Running())
	assert.Equal(t, EndMissed, s.Reason())
}

func TestWrongTileEndsRun(t *testing.T) {
	s, _ := newTestScroller(t, nil)
	s.Play()

	row := s.ring[0].Rows[0]
	wrong := (row.Pressable + 1) % Lanes

	assert.Equal(t, TapWrong, s.Tap(0, 0, wrong))
	assert.False(t, s.Running())
	assert.Equal(t, EndWrongTile, s.Reason())

	s.Tick()
	assert.Equal(t, 0, s.Score())
}

func TestTapScoresOnceAndAnimates(t *testing.T) {
	s, rec := newTestScroller(t, nil)
	s.Play()

	lane := s.ring[0].Rows[3].Pressable
	assert.Equal(t, TapScored, s.Tap(0, 3, lane))
	assert.Equal(t, TapIgnored, s.Tap(0, 3, lane))

	assert.Equal(t, 1, s.Score())
	assert.True(t, s.ring[0].Rows[3].Tiles[lane].Tapped)
	assert.True(t, s.Running())

	require.Len(t, rec.animations, 3)
	assert.Equal(t, animation{ScoreTarget(), Tween{
		Property: PropScale, To: 1.2, Duration: 300 * time.Millisecond, Ease: EaseOut,
	}}, rec.animations[0])
	assert.Equal(t, animation{ScoreTarget(), Tween{
		Property: PropScale, To: 1, Duration: 700 * time.Millisecond, Delay: 300 * time.Millisecond, Ease: EaseElastic,
	}}, rec.animations[1])
	assert.Equal(t, animation{TileTarget(0, 3, lane), Tween{
		Property: PropOpacity, To: 0, Duration: 300 * time.Millisecond, Ease: EaseOut,
	}}, rec.animations[2])
}

func TestTapWhileIdleIsIgnored(t *testing.T) {
	s, rec := newTestScroller(t, nil)
	assert.Equal(t, TapIgnored, s.Tap(0, 0, 0))
	assert.Empty(t, rec.animations)
}

func TestTapOutOfRangePanics(t *testing.T) {
	s, _ := newTestScroller(t, nil)
	s.Play()

	assert.Panics(t, func() { s.Tap(2, 0, 0) })
	assert.Panics(t, func() { s.Tap(0, 10, 0) })
	assert.Panics(t, func() { s.Tap(0, 0, Lanes) })
}

func TestTapLaneHitsLowestPendingRow(t *testing.T) {
	s, _ := newTestScroller(t, nil)
	s.Play()
	s.ring[0].Offset = -2000 // Rows 6-9 on screen

	rows := s.ring[0].Rows
	assert.Equal(t, TapScored, s.TapLane(rows[9].Pressable))
	assert.True(t, s.ring[0].Rows[9].Tiles[rows[9].Pressable].Tapped)

	assert.Equal(t, TapScored, s.TapLane(rows[8].Pressable))
	assert.True(t, s.ring[0].Rows[8].Tiles[rows[8].Pressable].Tapped)

	wrong := (rows[7].Pressable + 1) % Lanes
	assert.Equal(t, TapWrong, s.TapLane(wrong))
	assert.Equal(t, EndWrongTile, s.Reason())
}

func TestTapLaneWithNothingOnScreen(t *testing.T) {
	s, _ := newTestScroller(t, nil)
	s.Play()

	assert.Equal(t, TapIgnored, s.TapLane(0))
	assert.True(t, s.Running())
}

func TestTileAt(t *testing.T) {
	s, _ := newTestScroller(t, nil)
	s.Play()

	c, r, ok := s.TileAt(-2800 + 250)
	require.True(t, ok)
	assert.Equal(t, 0, c)
	assert.Equal(t, 1, r)

	c, r, ok = s.TileAt(-2801)
	require.True(t, ok)
	assert.Equal(t, 1, c)
	assert.Equal(t, 9, r)

	_, _, ok = s.TileAt(-100)
	assert.False(t, ok)
}

func TestBestScorePersistsAcrossScrollers(t *testing.T) {
	store := core.NewMemoryStore()
	require.NoError(t, store.Set(BestScoreKey, 42))

	s, _ := newTestScroller(t, store)
	assert.Equal(t, 42, s.Best())

	s.Play()
	for i := 0; i < 50; i++ {
		s.Tick()
	}
	assert.Equal(t, 50, s.Best())
	best, _, _ := store.Get(BestScoreKey)
	assert.Equal(t, 50, best)

	next, _ := newTestScroller(t, store)
	assert.Equal(t, 50, next.Best())
	next.Play()
	for i := 0; i < 10; i++ {
		next.Tick()
	}
	assert.Equal(t, 50, next.Best())
	best, _, _ = store.Get(BestScoreKey)
	assert.Equal(t, 50, best)
}

func TestBestScoreRaisedElsewhereIsKept(t *testing.T) {
	store := core.NewMemoryStore()
	s, _ := newTestScroller(t, store)
	s.Play()
	s.Tick()

	require.NoError(t, store.Set(BestScoreKey, 500))
	s.Tick()

	best, _, _ := store.Get(BestScoreKey)
	assert.Equal(t, 500, best)
	assert.Equal(t, 500, s.Best())
}

func TestMissingBestScoreInitializedToZero(t *testing.T) {
	store := core.NewMemoryStore()
	newTestScroller(t, store)

	best, ok, _ := store.Get(BestScoreKey)
	require.True(t, ok)
	assert.Equal(t, 0, best)
}

func TestUnreadableBestScoreIsNotOverwritten(t *testing.T) {
	store := &flakyStore{MemoryStore: core.NewMemoryStore()}
	require.NoError(t, store.Set(BestScoreKey, 42))

	s, _ := newTestScroller(t, store)
	require.Equal(t, 42, s.Best())

	// Play and the first tick both fail to read.
	store.failReads = 2
	s.Play()
	assert.Equal(t, 42, s.Best())
	s.Tick()

	best, ok, err := store.Get(BestScoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, best)

	for i := 0; i < 5; i++ {
		s.Tick()
	}
	best, _, _ = store.Get(BestScoreKey)
	assert.Equal(t, 42, best)
	assert.Equal(t, 42, s.Best())
}

func TestUnreadableBestScoreOnStartup(t *testing.T) {
	store := &flakyStore{MemoryStore: core.NewMemoryStore(), failReads: 1}
	require.NoError(t, store.Set(BestScoreKey, 42))

	s, _ := newTestScroller(t, store)
	assert.Equal(t, 0, s.Best())

	best, _, _ := store.Get(BestScoreKey)
	assert.Equal(t, 42, best, "a failed read must not initialize the key")

	s.Play()
	assert.Equal(t, 42, s.Best())
}

func TestStopEndsRun(t *testing.T) {
	s, _ := newTestScroller(t, nil)
	s.Play()
	s.Stop()

	assert.False(t, s.Running())
	assert.Equal(t, EndStopped, s.Reason())

	s.Play()
	assert.True(t, s.Running())
	assert.Equal(t, EndNone, s.Reason())
}

func TestSpeedEscalatesWithPreset(t *testing.T) {
	cfg := config.DefaultTilesConfig()
	config.ApplyTilesPreset(&cfg, config.DifficultyFixed)

	s := NewScroller(cfg, 1, nil, nil, nil)
	s.Play()
	tapAll(t, s)
	s.ring[0].Offset = -2
	s.Tick()

	assert.InDelta(t, cfg.Scroll.BaseSpeed, s.Speed(), 1e-9, "fixed preset never speeds up")
}

package tiles

import "time"

// TargetKind identifies what an animation applies to.
type TargetKind int

const (
	TargetScore TargetKind = iota // The score display
	TargetTile                    // A single tile
)

// Target addresses an animated object.
// Container, Row and Lane are only meaningful for TargetTile.
type Target struct {
	Kind      TargetKind
	Container int
	Row       int
	Lane      int
}

// ScoreTarget addresses the score display.
func ScoreTarget() Target {
	return Target{Kind: TargetScore}
}

// TileTarget addresses one tile.
func TileTarget(container, row, lane int) Target {
	return Target{Kind: TargetTile, Container: container, Row: row, Lane: lane}
}

// Property is an animatable property.
type Property int

const (
	PropScale   Property = iota // Score display scale, 1.0 at rest
	PropOpacity                 // Tile opacity, 1.0 fully visible
)

// Ease selects the interpolation curve of a tween.
type Ease int

const (
	EaseOut     Ease = iota // Quadratic ease-out
	EaseLinear              // Constant rate
	EaseElastic             // Spring that overshoots and settles on the target
)

// Tween describes "animate property P to value V over duration D".
type Tween struct {
	Property Property
	To       float64
	Duration time.Duration
	Delay    time.Duration
	Ease     Ease
}

// Renderer receives visual updates from the Scroller.
// Layout is never read back: heights and row positions come from the config.
type Renderer interface {
	// SetPosition snaps a container to a strip offset with no easing.
	SetPosition(container int, offset float64)

	// Rebuild tells the renderer a container's rows were regenerated.
	// Any state kept for the old rows must be dropped.
	Rebuild(container int, rows []Row)

	// Animate starts a tween on a target.
	Animate(target Target, tw Tween)
}

// secs converts fractional seconds from the config to a duration.
func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

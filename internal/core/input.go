package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLane1          // D, 1 - tap first lane
	ActionLane2          // F, 2 - tap second lane
	ActionLane3          // J, 3 - tap third lane
	ActionLane4          // K, 4 - tap fourth lane
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLane1:
		return "Lane1"
	case ActionLane2:
		return "Lane2"
	case ActionLane3:
		return "Lane3"
	case ActionLane4:
		return "Lane4"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Lane returns the zero-based lane index for a lane action.
// ok is false for every other action.
func (a Action) Lane() (lane int, ok bool) {
	if a < ActionLane1 || a > ActionLane4 {
		return 0, false
	}
	return int(a - ActionLane1), true
}

// InputFrame collects the input for one simulation tick.
// Taps keep their arrival order because every tap is scored individually.
type InputFrame struct {
	// Actions maps control actions to whether they were triggered this frame.
	Actions map[Action]bool

	// Lanes holds lane taps (0-3) in the order they arrived.
	Lanes []int

	// Clicks holds mouse presses in screen coordinates, in arrival order.
	Clicks []Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
// Lane actions are also queued as taps.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	if lane, ok := a.Lane(); ok {
		f.Lanes = append(f.Lanes, lane)
	}
}

// Click queues a mouse press at the given screen cell.
func (f *InputFrame) Click(x, y int) {
	f.Clicks = append(f.Clicks, Point{X: x, Y: y})
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Lanes = f.Lanes[:0]
	f.Clicks = f.Clicks[:0]
}

package core

// Color is the foreground color of a screen cell. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

// Colors available to games.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Dimmed returns the next darker shade: bright colors drop to their base
// color, base colors drop to gray.
func (c Color) Dimmed() Color {
	switch {
	case c >= ColorBrightRed && c <= ColorBrightWhite:
		return c - (ColorBrightRed - ColorRed)
	case c == ColorDefault:
		return ColorDefault
	default:
		return ColorGray
	}
}

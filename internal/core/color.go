package core

import "fmt"

// Color is a foreground color for a screen cell. The terminal platform
// maps each value to a neon hex color, or to an ANSI index where the
// palette has no neon shade.
type Color uint8

// Cell colors. ColorDefault leaves the terminal foreground untouched.
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

	numColors
)

var colorNames = [numColors]string{
	"default", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-red", "bright-green", "bright-yellow", "bright-blue",
	"bright-magenta", "bright-cyan", "bright-white", "orange", "gray",
}

// String returns the color name.
func (c Color) String() string {
	if c < numColors {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// Colors lists every foreground color except ColorDefault.
func Colors() []Color {
	out := make([]Color, 0, numColors-1)
	for c := ColorDefault + 1; c < numColors; c++ {
		out = append(out, c)
	}
	return out
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-dash/internal/core"
)

// neonHex maps cell colors to the neon palette. Colors missing here fall
// back to the terminal's ANSI palette by index.
var neonHex = map[core.Color]string{
	core.ColorBrightCyan:    "#00F0FF",
	core.ColorBrightMagenta: "#FF2BD6",
	core.ColorMagenta:       "#B000FF",
	core.ColorBrightYellow:  "#FFE600",
	core.ColorBrightGreen:   "#39FF14",
	core.ColorBrightRed:     "#FF3131",
	core.ColorOrange:        "#FF8C00",
	core.ColorBrightBlue:    "#4D7CFF",
	core.ColorGray:          "#6C6C80",
}

// ansiIndex is the 256-color code used when no neon color is defined.
var ansiIndex = map[core.Color]string{
	core.ColorRed:         "1",
	core.ColorGreen:       "2",
	core.ColorYellow:      "3",
	core.ColorBlue:        "4",
	core.ColorCyan:        "6",
	core.ColorWhite:       "7",
	core.ColorBrightWhite: "15",
}

// Palette renders screen buffers with one lipgloss renderer. SSH sessions
// each get their own so color detection follows the client terminal.
type Palette struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
}

// NewPalette builds the neon styles for a renderer. A nil renderer uses
// the process default.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{
		styles: make(map[core.Color]lipgloss.Style, len(neonHex)+len(ansiIndex)),
		plain:  r.NewStyle(),
	}
	for c, hex := range neonHex {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(hex))
	}
	for c, idx := range ansiIndex {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(idx))
	}
	// Neon glyphs read better bold on dark backgrounds.
	for _, c := range []core.Color{core.ColorBrightCyan, core.ColorBrightMagenta, core.ColorBrightYellow} {
		p.styles[c] = p.styles[c].Bold(true)
	}
	return p
}

var defaultPalette = NewPalette(nil)

// RenderScreen converts a Screen buffer to a styled string with the
// default palette.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p.styles[color]
			if !ok {
				style = p.plain
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

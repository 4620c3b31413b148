package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/golden-duck/internal/core"
	"github.com/vovakirdan/golden-duck/internal/present"
)

// Palette maps color roles to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// dayPalette is the bright sky look.
var dayPalette = Palette{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorDuck:      fg("220").Bold(true),
	core.ColorDuckDead:  fg("9"),
	core.ColorPipeTier1: fg("34"),
	core.ColorPipeTier2: fg("142"),
	core.ColorPipeTier3: fg("166"),
	core.ColorEgg:       fg("230").Bold(true),
	core.ColorGround:    fg("136"),
	core.ColorCloud:     fg("15"),
	core.ColorHUD:       fg("15").Bold(true),
	core.ColorBalance:   fg("220").Bold(true),
	core.ColorAlert:     fg("9").Bold(true),
	core.ColorDim:       fg("245"),
}

// nightPalette keeps the same roles with darker pipes and ground.
var nightPalette = Palette{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorDuck:      fg("226").Bold(true),
	core.ColorDuckDead:  fg("196"),
	core.ColorPipeTier1: fg("23"),
	core.ColorPipeTier2: fg("60"),
	core.ColorPipeTier3: fg("89"),
	core.ColorEgg:       fg("229"),
	core.ColorGround:    fg("238"),
	core.ColorCloud:     fg("240"),
	core.ColorHUD:       fg("252"),
	core.ColorBalance:   fg("214").Bold(true),
	core.ColorAlert:     fg("203").Bold(true),
	core.ColorDim:       fg("241"),
}

// PaletteFor returns the palette for a theme.
func PaletteFor(t present.Theme) Palette {
	if t == present.ThemeNight {
		return nightPalette
	}
	return dayPalette
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[startColor]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/php-runner/internal/core"
)

// colorPair is the style key of a run of cells.
type colorPair struct {
	fg, bg core.Color
}

// styleFor builds the lipgloss style for a foreground/background pair.
// ColorDefault leaves the terminal's own color in place.
func styleFor(p colorPair) lipgloss.Style {
	s := lipgloss.NewStyle()
	if code := p.fg.ANSI(); code != "" {
		s = s.Foreground(lipgloss.Color(code))
	}
	if code := p.bg.ANSI(); code != "" {
		s = s.Background(lipgloss.Color(code))
	}
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same colors share one styled run to keep
// escape sequences short.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[colorPair]lipgloss.Style)
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			pair := colorPair{cell.Fg, cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.Fg, cell.Bg}) != pair {
					break
				}
				r := cell.Rune
				if r == 0 {
					r = ' '
				}
				run.WriteRune(r)
				x++
			}

			if pair == (colorPair{}) {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[pair]
			if !ok {
				style = styleFor(pair)
				styles[pair] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/last-letter/internal/core"
	"github.com/vovakirdan/last-letter/internal/game"
)

// Layout rows around the play area.
const (
	hudRows   = 1
	floorRows = 1
	helpRows  = 1
)

// Glyphs
const (
	HeartFull  = '♥'
	HeartEmpty = '♡'
	FloorChar  = '▔'
	BurstChar  = '✺'
	SparkChar  = '·'
)

// canvasHeight returns the rows available to the game canvas for a terminal
// of the given height.
func canvasHeight(termH int) int {
	return max(termH-helpRows, hudRows+floorRows+1)
}

// playRows returns the rows letters can occupy on a canvas.
func playRows(canvasH int) int {
	return max(canvasH-hudRows-floorRows, 1)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	// No colors to apply
	if r.ColorProfile() == termenv.Ascii {
		return s.String()
	}
	styles := make(map[core.Color]lipgloss.Style)
	styleFor := func(c core.Color) lipgloss.Style {
		st, ok := styles[c]
		if !ok {
			st = r.NewStyle()
			if c != core.ColorDefault {
				st = st.Foreground(lipgloss.Color(c))
			}
			styles[c] = st
		}
		return st
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if startColor == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// cellMapper converts play-area pixels to canvas cells.
type cellMapper struct {
	cellW, cellH float64
}

// cell returns the canvas position of a pixel point.
// ok is false when the point is above the play area.
func (cm cellMapper) cell(x, y float64) (col, row int, ok bool) {
	if y < 0 {
		return 0, 0, false
	}
	return int(x / cm.cellW), hudRows + int(y/cm.cellH), true
}

// drawPlayfield renders the HUD, letters and floor of a running session.
func drawPlayfield(dst *core.Screen, sess *game.Session, settings *core.Settings, cm cellMapper) {
	dst.Clear()

	drawHUD(dst, sess, settings)

	floorY := dst.Height() - floorRows
	for _, l := range sess.Letters() {
		col, row, ok := cm.cell(l.X, l.Y)
		if !ok || row >= floorY {
			continue
		}
		// Letters past the right edge after a shrink stay visible
		col = core.Clamp(col, 0, dst.Width()-1)
		if l.Exploding {
			dst.SetColor(col, row, BurstChar, l.Color)
			dst.SetColor(col-1, row, SparkChar, l.Color)
			dst.SetColor(col+1, row, SparkChar, l.Color)
			continue
		}
		dst.SetColor(col, row, l.Char, l.Color)
	}

	dst.DrawHLine(0, floorY, dst.Width(), FloorChar, core.ColorPurple)
}

// drawHUD draws hearts, score and difficulty on the top row.
func drawHUD(dst *core.Screen, sess *game.Session, settings *core.Settings) {
	x := 1
	health := max(sess.Health(), 0)
	for i := 0; i < sess.MaxHealth(); i++ {
		if i < health {
			dst.SetColor(x, 0, HeartFull, core.NeonRed)
		} else {
			dst.SetColor(x, 0, HeartEmpty, core.ColorGray)
		}
		x += 2
	}

	score := fmt.Sprintf("SCORE %d", sess.Score())
	dst.DrawTextColor(x+1, 0, score, core.ColorWhite)
	best := fmt.Sprintf("BEST %d", max(sess.HighScore(), sess.Score()))
	dst.DrawTextColor(x+len(score)+4, 0, best, core.ColorGray)

	sound := "♪"
	if settings.Muted {
		sound = "MUTED"
	}
	right := fmt.Sprintf("LV %.1f  %s", settings.Difficulty, sound)
	dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 0, right, core.ColorYellow)
}

// drawCenteredMessage draws a boxed two-line message in the middle of the canvas.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorPurple)

	dst.DrawTextCentered(boxY+1, title, core.ColorWhite)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorGray)
}

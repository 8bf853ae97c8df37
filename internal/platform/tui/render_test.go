package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/last-letter/internal/config"
	"github.com/vovakirdan/last-letter/internal/core"
	"github.com/vovakirdan/last-letter/internal/game"
)

func TestCellMapper(t *testing.T) {
	cm := cellMapper{cellW: 10, cellH: 20}

	tests := []struct {
		name    string
		x, y    float64
		col     int
		row     int
		visible bool
	}{
		{"origin", 0, 0, 0, hudRows, true},
		{"inside cell", 25, 45, 2, hudRows + 2, true},
		{"above play area", 50, -30, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := cm.cell(tt.x, tt.y)
			if ok != tt.visible {
				t.Fatalf("visible = %v, want %v", ok, tt.visible)
			}
			if ok && (col != tt.col || row != tt.row) {
				t.Errorf("cell(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, col, row, tt.col, tt.row)
			}
		})
	}
}

func TestLayoutRows(t *testing.T) {
	if got := canvasHeight(24); got != 23 {
		t.Errorf("canvasHeight(24) = %d, want 23", got)
	}
	if got := canvasHeight(1); got != hudRows+floorRows+1 {
		t.Errorf("canvasHeight(1) = %d, want minimum", got)
	}
	if got := playRows(23); got != 21 {
		t.Errorf("playRows(23) = %d, want 21", got)
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "AB")
	s.SetColor(3, 1, 'Z', core.NeonBlue)

	out := RenderScreen(s, lipgloss.NewRenderer(io.Discard))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "AB   " {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "   Z " {
		t.Errorf("line 1 = %q, want plain Z", lines[1])
	}
}

func TestRenderScreenColored(t *testing.T) {
	s := core.NewScreen(5, 1)
	s.SetColor(0, 0, 'Z', core.NeonBlue)

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	out := RenderScreen(s, r)
	if out == s.String() || !strings.Contains(out, "Z") {
		t.Errorf("colored render = %q, want styled Z", out)
	}
}

func TestDrawPlayfield(t *testing.T) {
	cfg := config.Default()
	settings := &core.Settings{}
	sess := game.New(game.Options{Config: cfg, Seed: 3, Settings: settings})

	scr := core.NewScreen(40, 10)
	cm := cellMapper{cellW: cfg.Display.CellWidth, cellH: cfg.Display.CellHeight}
	sess.SetPlayArea(float64(scr.Width())*cm.cellW, float64(playRows(scr.Height()))*cm.cellH)
	sess.StartSession()

	// Run until a letter is visible
	var now float64
	for now = 0; now < 5000; now += 50 {
		sess.Tick(now)
		if ls := sess.Letters(); len(ls) > 0 && ls[0].Y >= 0 {
			break
		}
	}
	ls := sess.Letters()
	if len(ls) == 0 {
		t.Fatal("no letter spawned")
	}

	drawPlayfield(scr, sess, settings, cm)

	col, row, _ := cm.cell(ls[0].X, ls[0].Y)
	if got := scr.Get(col, row); got != ls[0].Char {
		t.Errorf("cell (%d, %d) = %q, want %q", col, row, got, ls[0].Char)
	}
	if got := scr.Get(0, scr.Height()-1); got != FloorChar {
		t.Errorf("floor = %q, want %q", got, FloorChar)
	}
	if got := scr.Get(1, 0); got != HeartFull {
		t.Errorf("HUD heart = %q, want %q", got, HeartFull)
	}
	if !strings.Contains(scr.Row(0), "SCORE 0") {
		t.Errorf("HUD = %q, want score", scr.Row(0))
	}

	// A hit letter turns into a burst
	sess.OnKey(strings.ToLower(string(ls[0].Char)))
	drawPlayfield(scr, sess, settings, cm)
	if got := scr.Get(col, row); got != BurstChar {
		t.Errorf("exploding cell = %q, want %q", got, BurstChar)
	}
	if !strings.Contains(scr.Row(0), "SCORE 1") {
		t.Errorf("HUD = %q, want score 1", scr.Row(0))
	}
}

func TestLetterKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
		ok   bool
	}{
		{"letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, "a", true},
		{"digit passes through", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7")}, "7", true},
		{"alt letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a"), Alt: true}, "", false},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")}, "", false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "", false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := letterKey(tt.msg)
			if got != tt.want || ok != tt.ok {
				t.Errorf("letterKey() = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

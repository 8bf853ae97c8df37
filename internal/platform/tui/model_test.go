package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/last-letter/internal/config"
	"github.com/vovakirdan/last-letter/internal/core"
	"github.com/vovakirdan/last-letter/internal/storage"
)

type recordingSound struct {
	played []core.Effect
	muted  bool
}

func (r *recordingSound) Play(e core.Effect)  { r.played = append(r.played, e) }
func (r *recordingSound) SetMuted(muted bool) { r.muted = muted }

func (r *recordingSound) count(e core.Effect) int {
	n := 0
	for _, p := range r.played {
		if p == e {
			n++
		}
	}
	return n
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *recordingSound) {
	t.Helper()
	cfg := config.Default()
	cfg.Gameplay.StartHealth = 1

	sound := &recordingSound{}
	m := NewModel(Options{
		Config:   cfg,
		Runtime:  core.RuntimeConfig{ScreenW: 40, ScreenH: 8, TickRate: 10, Seed: 7},
		Store:    store,
		Sound:    sound,
		Renderer: lipgloss.NewRenderer(io.Discard),
	})
	return m, sound
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return nm, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStartsOnStartScreen(t *testing.T) {
	m, _ := newTestModel(t, nil)

	if m.state != screenStart {
		t.Fatalf("state = %v, want start", m.state)
	}
	if m.session.Running() {
		t.Error("session should not run before the player starts it")
	}
	if view := m.View(); !strings.Contains(view, "Press ENTER to start") {
		t.Errorf("start view missing prompt:\n%s", view)
	}

	// Letters do nothing on the start screen
	m, _ = update(t, m, keyRunes("a"))
	if m.state != screenStart || m.session.Running() {
		t.Error("letter key should not start the game")
	}
}

func TestModelStartSession(t *testing.T) {
	m, sound := newTestModel(t, nil)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != screenPlaying {
		t.Fatalf("state = %v, want playing", m.state)
	}
	if cmd == nil {
		t.Error("starting a session should schedule a tick")
	}
	if !m.session.Running() {
		t.Error("session should be running")
	}
	if sound.count(core.EffectStart) != 1 {
		t.Errorf("start effect played %d times, want 1", sound.count(core.EffectStart))
	}
	if m.gen != 1 {
		t.Errorf("gen = %d, want 1", m.gen)
	}
}

func TestModelDropsStaleTicks(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	base := time.Unix(1000, 0)
	m, cmd := update(t, m, TickMsg{Gen: 0, Time: base})
	if cmd != nil {
		t.Error("stale tick should not schedule another tick")
	}
	if !m.lastWall.IsZero() {
		t.Error("stale tick should not touch the clock")
	}

	m, cmd = update(t, m, TickMsg{Gen: m.gen, Time: base})
	if cmd == nil {
		t.Error("current tick should schedule the next one")
	}
	if m.lastWall != base {
		t.Error("current tick should set the wall clock")
	}
}

func TestModelClockAndPause(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	base := time.Unix(1000, 0)
	m, _ = update(t, m, TickMsg{Gen: m.gen, Time: base})
	m, _ = update(t, m, TickMsg{Gen: m.gen, Time: base.Add(100 * time.Millisecond)})
	if m.activeMs != 100 {
		t.Fatalf("activeMs = %v, want 100", m.activeMs)
	}
	if got := m.session.GameTime(); got != 100 {
		t.Errorf("GameTime() = %v, want 100", got)
	}

	// Pause freezes the clock while ticks keep arriving
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != screenPaused {
		t.Fatalf("state = %v, want paused", m.state)
	}
	m, cmd := update(t, m, TickMsg{Gen: m.gen, Time: base.Add(5 * time.Second)})
	if cmd == nil {
		t.Error("paused game should keep its tick loop")
	}
	if m.activeMs != 100 || m.session.GameTime() != 100 {
		t.Errorf("clock advanced while paused: activeMs %v, game time %v", m.activeMs, m.session.GameTime())
	}
	if view := m.View(); !strings.Contains(view, "PAUSED") {
		t.Errorf("paused view missing overlay:\n%s", view)
	}

	// Resume; the paused wall time is not counted
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, TickMsg{Gen: m.gen, Time: base.Add(5*time.Second + 50*time.Millisecond)})
	if m.activeMs != 150 {
		t.Errorf("activeMs = %v after resume, want 150", m.activeMs)
	}
}

func TestModelLetterKeysGoToSession(t *testing.T) {
	m, sound := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// "q" is a letter while playing, not quit
	m, cmd := update(t, m, keyRunes("q"))
	if cmd != nil || m.quitting {
		t.Error("q should not quit during play")
	}
	if sound.count(core.EffectMiss) != 1 {
		t.Errorf("miss effect played %d times, want 1", sound.count(core.EffectMiss))
	}

	// Non-letters are ignored by the session
	m, _ = update(t, m, keyRunes("1"))
	if sound.count(core.EffectMiss) != 1 {
		t.Error("digit should not count as a miss")
	}
	_ = m
}

func TestModelToggleMute(t *testing.T) {
	m, sound := newTestModel(t, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.settings.Muted || !sound.muted {
		t.Error("tab should mute")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.settings.Muted || sound.muted {
		t.Error("second tab should unmute")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit the program")
	}
	if m.session.Running() {
		t.Error("quitting should end the running session")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
	if m.runtime.ScreenW != 100 || m.runtime.ScreenH != 30 {
		t.Errorf("runtime size = %dx%d", m.runtime.ScreenW, m.runtime.ScreenH)
	}
}

// playUntilOver hits the first letter it sees, then lets the rest fall.
func playUntilOver(t *testing.T, m Model) Model {
	t.Helper()
	base := time.Unix(1000, 0)
	hit := false
	for i := 0; i < 600; i++ {
		m, _ = update(t, m, TickMsg{Gen: m.gen, Time: base.Add(time.Duration(i) * 50 * time.Millisecond)})
		if m.state == screenGameOver {
			return m
		}
		if ls := m.session.Letters(); !hit && len(ls) > 0 {
			m, _ = update(t, m, keyRunes(strings.ToLower(string(ls[0].Char))))
			hit = true
		}
	}
	t.Fatal("game did not end")
	return m
}

func TestModelGameOverRecordsScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, sound := newTestModel(t, store)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = playUntilOver(t, m)

	if m.session.Score() != 1 {
		t.Fatalf("score = %d, want 1", m.session.Score())
	}
	if sound.count(core.EffectGameOver) != 1 {
		t.Errorf("gameOver effect played %d times, want 1", sound.count(core.EffectGameOver))
	}

	board := storage.NewBoard(store, string(config.DifficultyNormal))
	if high, ok, _ := board.HighScore(); !ok || high != 1 {
		t.Errorf("high score = %d, %v; want 1, true", high, ok)
	}
	if top, _ := board.TopScores(10); len(top) != 1 || top[0].Score != 1 {
		t.Errorf("history = %v, want one run of 1", top)
	}
	if len(m.topScores) != 1 {
		t.Errorf("game-over screen has %d top scores, want 1", len(m.topScores))
	}

	view := m.View()
	for _, want := range []string{"GAME OVER", "Score: 1", "NEW HIGH SCORE!"} {
		if !strings.Contains(view, want) {
			t.Errorf("game-over view missing %q:\n%s", want, view)
		}
	}

	// Ticks from the finished loop are ignored; enter starts a fresh run
	m, cmd := update(t, m, TickMsg{Gen: m.gen, Time: time.Unix(5000, 0)})
	if cmd != nil {
		t.Error("no ticks after game over")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != screenPlaying || m.session.Score() != 0 || m.gen != 2 {
		t.Errorf("restart: state %v, score %d, gen %d", m.state, m.session.Score(), m.gen)
	}
	if m.best != 1 {
		t.Errorf("best = %d, want 1", m.best)
	}
}

func TestModelRestartSeedsAreReproducible(t *testing.T) {
	a, _ := newTestModel(t, nil)
	b, _ := newTestModel(t, nil)

	base := time.Unix(1000, 0)
	run := func(m Model) []rune {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		for i := 0; i < 40; i++ {
			m, _ = update(t, m, TickMsg{Gen: m.gen, Time: base.Add(time.Duration(i) * 50 * time.Millisecond)})
		}
		var chars []rune
		for _, l := range m.session.Letters() {
			chars = append(chars, l.Char)
		}
		return chars
	}

	ca, cb := run(a), run(b)
	if string(ca) != string(cb) {
		t.Errorf("same seed produced %q and %q", string(ca), string(cb))
	}
}

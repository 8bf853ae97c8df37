package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/vovakirdan/last-letter/internal/config"
	"github.com/vovakirdan/last-letter/internal/storage"
)

type testContext struct {
	ssh.Context
	values map[any]any
}

func (c *testContext) Value(key any) any       { return c.values[key] }
func (c *testContext) SetValue(key, value any) { c.values[key] = value }

type testSession struct {
	ssh.Session
	ctx *testContext
}

func (s *testSession) Context() ssh.Context { return s.ctx }

func newTestSession() *testSession {
	return &testSession{ctx: &testContext{values: make(map[any]any)}}
}

func TestEndGameMiddlewareSavesDisconnectedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, _ := newTestModel(t, store)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Hit one letter and leave the game running
	base := time.Unix(1000, 0)
	for i := 0; i < 100 && m.session.Score() == 0; i++ {
		m, _ = update(t, m, TickMsg{Gen: m.gen, Time: base.Add(time.Duration(i) * 50 * time.Millisecond)})
		if ls := m.session.Letters(); len(ls) > 0 {
			m, _ = update(t, m, keyRunes(strings.ToLower(string(ls[0].Char))))
		}
	}
	if m.session.Score() != 1 || !m.session.Running() {
		t.Fatalf("setup: score %d, running %v", m.session.Score(), m.session.Running())
	}

	sess := newTestSession()
	sess.Context().SetValue(modelContextKey{}, m)

	srv := &SSHServer{logger: log.New(io.Discard)}
	nextCalled := false
	srv.endGameMiddleware(func(ssh.Session) { nextCalled = true })(sess)

	if !nextCalled {
		t.Error("middleware should call the next handler")
	}
	if m.session.Running() {
		t.Error("disconnect should end the running session")
	}
	board := storage.NewBoard(store, string(config.DifficultyNormal))
	if high, ok, _ := board.HighScore(); !ok || high != 1 {
		t.Errorf("high score = %d, %v; want 1, true", high, ok)
	}
}

func TestEndGameMiddlewareWithoutModel(t *testing.T) {
	srv := &SSHServer{logger: log.New(io.Discard)}
	nextCalled := false
	srv.endGameMiddleware(func(ssh.Session) { nextCalled = true })(newTestSession())
	if !nextCalled {
		t.Error("middleware should call the next handler")
	}
}

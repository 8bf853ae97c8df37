// Package audio plays the game's sound effects through the system speaker.
// Effects are synthesized once at startup and mixed on demand, so several
// copies of the same effect can overlap.
package audio

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/last-letter/internal/config"
	"github.com/vovakirdan/last-letter/internal/core"
)

// Manager owns the speaker and the pre-rendered effects.
type Manager struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	logger      *log.Logger
	mixer       *beep.Mixer
	buffers     map[core.Effect]*beep.Buffer
	initialized bool
	muted       atomic.Bool
}

// NewManager creates a manager. Nothing plays until Initialize succeeds.
func NewManager(cfg config.AudioConfig, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Manager{
		cfg:     cfg,
		logger:  logger,
		mixer:   &beep.Mixer{},
		buffers: make(map[core.Effect]*beep.Buffer),
	}
	m.muted.Store(cfg.Muted)
	return m
}

// Initialize opens the speaker and renders all effects.
// Safe to call more than once. On error the manager stays silent.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	rate := beep.SampleRate(m.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		m.logger.Warn("audio unavailable, sound effects disabled", "error", err)
		return err
	}

	for _, e := range core.Effects() {
		m.buffers[e] = Render(e, rate, m.cfg.Volume)
	}

	speaker.Play(m.mixer)
	m.initialized = true
	m.logger.Debug("audio initialized", "sample_rate", m.cfg.SampleRate, "volume", m.cfg.Volume)
	return nil
}

// Cleanup stops all sounds. Play is a no-op afterwards until Initialize.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()

	// beep has no way to release the device; an empty mixer keeps it quiet
	m.initialized = false
}

// Play starts an effect and returns immediately.
func (m *Manager) Play(effect core.Effect) {
	if m.muted.Load() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	buf, ok := m.buffers[effect]
	if !ok || buf == nil {
		m.logger.Debug("unknown sound effect", "effect", effect.String())
		return
	}

	speaker.Lock()
	m.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// SetMuted turns all effects on or off.
func (m *Manager) SetMuted(muted bool) {
	m.muted.Store(muted)
}

// Muted reports whether effects are muted.
func (m *Manager) Muted() bool {
	return m.muted.Load()
}

// Initialized reports whether the speaker is open.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/last-letter/internal/config"
	"github.com/vovakirdan/last-letter/internal/core"
	"github.com/vovakirdan/last-letter/internal/game"
	"github.com/vovakirdan/last-letter/internal/storage"
)

// gameOverTopScores is how many runs the game-over screen lists.
const gameOverTopScores = 5

type screenState int

const (
	screenStart screenState = iota
	screenPlaying
	screenPaused
	screenGameOver
)

// Sound is the audio output the model drives. audio.Manager implements it.
type Sound interface {
	game.SoundPlayer
	SetMuted(muted bool)
}

type silentSound struct{}

func (silentSound) Play(core.Effect) {}
func (silentSound) SetMuted(bool)    {}

// Options configures a Model.
type Options struct {
	Config   config.Config // Preset already applied
	Runtime  core.RuntimeConfig
	Preset   config.DifficultyPreset
	Store    *storage.Store     // High scores and history; nil disables them
	Sound    Sound              // Silent if nil
	Logger   *log.Logger        // Discarded if nil
	Renderer *lipgloss.Renderer // Per-connection renderer for SSH; default if nil
}

// Model is the Bubble Tea model for a Last Letter game.
// It owns the session clock: time only advances while the game is on screen
// and not paused.
type Model struct {
	cfg      config.Config
	runtime  core.RuntimeConfig
	settings *core.Settings
	session  *game.Session
	board    *storage.Board
	sound    Sound
	logger   *log.Logger
	renderer *lipgloss.Renderer
	keys     KeyMap
	help     help.Model
	screen   *core.Screen
	cells    cellMapper

	state     screenState
	gen       int       // Tick loop generation
	activeMs  float64   // Unpaused ms since the session started
	lastWall  time.Time // Wall time of the previous tick
	runs      int       // Sessions started
	best      int       // Best score shown on the start screen
	topScores []storage.ScoreEntry
	quitting  bool
}

// NewModel creates a model showing the start screen.
func NewModel(opts Options) Model {
	preset := opts.Preset
	if preset == "" {
		preset = config.DifficultyNormal
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Sound == nil {
		opts.Sound = silentSound{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}

	settings := &core.Settings{
		Muted:  opts.Config.Audio.Muted,
		Preset: string(preset),
	}
	opts.Sound.SetMuted(settings.Muted)

	var board *storage.Board
	var scores game.HighScores
	if opts.Store != nil {
		board = storage.NewBoard(opts.Store, string(preset))
		scores = board
	}

	sess := game.New(game.Options{
		Config:   opts.Config,
		Seed:     opts.Runtime.Seed,
		Settings: settings,
		Sound:    opts.Sound,
		Scores:   scores,
		Logger:   opts.Logger,
	})
	logger := opts.Logger
	sess.OnGameOver(func(score int) {
		if board == nil || score <= 0 {
			return
		}
		//nolint:errcheck // Best-effort save, game continues regardless
		board.SaveScore(score)
		logger.Debug("score recorded", "board", board.Name(), "score", score)
	})

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	m := Model{
		cfg:      opts.Config,
		runtime:  opts.Runtime,
		settings: settings,
		session:  sess,
		board:    board,
		sound:    opts.Sound,
		logger:   opts.Logger,
		renderer: opts.Renderer,
		keys:     DefaultKeyMap(),
		help:     h,
		screen:   core.NewScreen(opts.Runtime.ScreenW, canvasHeight(opts.Runtime.ScreenH)),
		cells:    cellMapper{cellW: opts.Config.Display.CellWidth, cellH: opts.Config.Display.CellHeight},
		best:     loadBest(board, opts.Logger),
	}
	m.applyPlayArea()
	return m
}

func loadBest(board *storage.Board, logger *log.Logger) int {
	if board == nil {
		return 0
	}
	best, _, err := board.HighScore()
	if err != nil {
		logger.Warn("could not read high score", "error", err)
	}
	return best
}

// Init sets the window title. The start screen needs no ticks.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Last Letter")
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Mute):
		m.toggleMute()
		return m, nil
	}

	switch m.state {
	case screenStart, screenGameOver:
		switch {
		case key.Matches(msg, m.keys.Start):
			return m.startSession()
		case key.Matches(msg, m.keys.Exit):
			return m.quit()
		}

	case screenPlaying:
		if key.Matches(msg, m.keys.Pause) {
			m.state = screenPaused
			return m, nil
		}
		if text, ok := letterKey(msg); ok {
			m.session.OnKey(text)
		}

	case screenPaused:
		switch {
		case key.Matches(msg, m.keys.Pause), key.Matches(msg, m.keys.Start):
			m.state = screenPlaying
		case key.Matches(msg, m.keys.Exit):
			return m.quit()
		}
	}

	return m, nil
}

// handleResize processes window resize events.
// The running session keeps its letters; only the play area changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, canvasHeight(msg.Height))
	m.help.Width = msg.Width
	m.applyPlayArea()
	return m, nil
}

// handleTick advances the session clock and the simulation.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || (m.state != screenPlaying && m.state != screenPaused) {
		return m, nil
	}

	if m.state == screenPlaying && !m.lastWall.IsZero() {
		if dt := msg.Time.Sub(m.lastWall); dt > 0 {
			m.activeMs += float64(dt) / float64(time.Millisecond)
		}
	}
	m.lastWall = msg.Time

	if m.state == screenPlaying {
		m.session.Tick(m.activeMs)
	}

	if m.session.Over() {
		m.state = screenGameOver
		m.best = max(m.best, m.session.Score())
		m.loadTopScores()
		return m, nil
	}

	return m, tickCmd(m.runtime.TickRate, m.gen)
}

// startSession begins a new run and a new tick loop.
func (m Model) startSession() (tea.Model, tea.Cmd) {
	m.runs++
	seed := time.Now().UnixNano()
	if m.runtime.Seed != 0 {
		seed = m.runtime.Seed + int64(m.runs-1)
	}

	m.session.StartSessionWithSeed(seed)
	m.activeMs = 0
	m.lastWall = time.Time{}
	m.topScores = nil
	m.gen++
	m.state = screenPlaying

	return m, tickCmd(m.runtime.TickRate, m.gen)
}

// quit ends a running session so its high score is kept.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.EndSession("player quit")
	m.quitting = true
	return m, tea.Quit
}

// EndSession ends the running session, if any, and saves a beaten high score.
// Call it only from the update loop or after the program has stopped.
func (m Model) EndSession(reason string) {
	if !m.session.Running() {
		return
	}
	score := m.session.EndSession()
	m.logger.Debug("session ended", "reason", reason, "score", score)
}

func (m Model) toggleMute() {
	m.settings.Muted = !m.settings.Muted
	m.sound.SetMuted(m.settings.Muted)
}

func (m Model) applyPlayArea() {
	w := float64(m.screen.Width()) * m.cells.cellW
	h := float64(playRows(m.screen.Height())) * m.cells.cellH
	m.session.SetPlayArea(w, h)
}

func (m *Model) loadTopScores() {
	if m.board == nil {
		return
	}
	top, err := m.board.TopScores(gameOverTopScores)
	if err != nil {
		m.logger.Warn("could not load top scores", "board", m.board.Name(), "error", err)
		return
	}
	m.topScores = top
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case screenStart:
		body = m.viewStart()
	case screenGameOver:
		body = m.viewGameOver()
	default:
		drawPlayfield(m.screen, m.session, m.settings, m.cells)
		if m.state == screenPaused {
			drawCenteredMessage(m.screen, "PAUSED", "esc to resume  |  q to quit")
		}
		body = RenderScreen(m.screen, m.renderer)
	}

	helpStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	return body + "\n" + helpStyle.Render(m.help.View(m.keys))
}

func (m Model) viewStart() string {
	title := m.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(core.NeonPink)).
		MarginBottom(1)
	text := m.renderer.NewStyle().Foreground(lipgloss.Color(core.ColorWhite))
	dim := m.renderer.NewStyle().Foreground(lipgloss.Color(core.ColorGray))

	lines := []string{
		title.Render("L A S T   L E T T E R"),
		text.Render("Type the falling letters before they hit the floor."),
		dim.Render(fmt.Sprintf("Difficulty: %s   Best: %d", m.settings.Preset, m.best)),
		"",
		text.Bold(true).Render("Press ENTER to start"),
	}
	return m.place(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) viewGameOver() string {
	title := m.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(core.NeonRed))
	text := m.renderer.NewStyle().Foreground(lipgloss.Color(core.ColorWhite))
	banner := m.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(core.NeonGreen))

	lines := []string{
		title.Render("GAME OVER"),
		"",
		text.Render(fmt.Sprintf("Score: %d", m.session.Score())),
		text.Render(fmt.Sprintf("Best: %d", m.best)),
	}
	if m.session.NewHighScore() {
		lines = append(lines, banner.Render("NEW HIGH SCORE!"))
	}
	if len(m.topScores) > 0 {
		lines = append(lines, "", m.topScoresTable())
	}
	lines = append(lines, "", text.Bold(true).Render("Press ENTER to play again"))

	return m.place(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// topScoresTable renders the board's best runs.
func (m Model) topScoresTable() string {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}
	rows := make([]table.Row, len(m.topScores))
	for i, s := range m.topScores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	t.SetStyles(scoreTableStyles(false))

	return m.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(t.View())
}

// place centers content on the canvas area above the help line.
func (m Model) place(content string) string {
	return m.renderer.Place(m.screen.Width(), m.screen.Height(), lipgloss.Center, lipgloss.Center, content)
}

// scoreTableStyles returns the table styles shared by score views.
func scoreTableStyles(focused bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	if focused {
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	return s
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

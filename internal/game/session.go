// Package game implements the Last Letter simulation: a timestamp-driven
// loop that spawns, moves and reaps falling letters, matches key presses
// against them and ends the session when health runs out.
//
// A Session is not safe for concurrent use. The platform calls Tick and
// OnKey from a single goroutine (the Bubble Tea update loop).
package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/last-letter/internal/config"
	"github.com/vovakirdan/last-letter/internal/core"
	"github.com/vovakirdan/last-letter/internal/letters"
)

// KeyResult describes what a key press did.
type KeyResult int

const (
	KeyIgnored KeyResult = iota // Not a letter, or the session isn't running
	KeyHit                      // A letter was destroyed
	KeyMiss                     // No falling letter matched
)

// Options configures a Session.
type Options struct {
	Config   config.Config
	Seed     int64
	Settings *core.Settings // Shared with the presentation layer; created if nil
	Sound    SoundPlayer    // Silent if nil
	Scores   HighScores     // Nothing is persisted if nil
	Logger   *log.Logger    // Discarded if nil
}

// Session is one playthrough, from StartSession to game over or EndSession.
type Session struct {
	cfg        config.Config
	seed       int64
	settings   *core.Settings
	sound      SoundPlayer
	scores     HighScores
	logger     *log.Logger
	difficulty *config.DifficultyManager
	store      *letters.Store

	areaW, areaH float64

	score     int
	health    int
	gameTime  float64 // ms of simulated time since start
	highScore int     // Best score when the session started

	started   bool    // First tick seen
	lastTick  float64 // Timestamp of the previous tick
	lastSpawn float64 // Timestamp of the previous spawn

	running    bool
	over       bool
	finished   bool // High score already handled
	onGameOver func(score int)
}

// New creates a session. Call StartSession before ticking.
func New(opts Options) *Session {
	s := &Session{
		cfg:        opts.Config,
		seed:       opts.Seed,
		settings:   opts.Settings,
		sound:      opts.Sound,
		scores:     opts.Scores,
		logger:     opts.Logger,
		difficulty: config.NewDifficultyManager(opts.Config.Difficulty, opts.Config.Gameplay),
	}
	if s.settings == nil {
		s.settings = &core.Settings{}
	}
	if s.sound == nil {
		s.sound = silentPlayer{}
	}
	if s.scores == nil {
		s.scores = noHighScores{}
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.store = letters.NewStore(opts.Seed, opts.Config.Gameplay, opts.Config.PaletteColors())
	return s
}

// OnGameOver registers the callback fired once when health runs out.
func (s *Session) OnGameOver(fn func(score int)) {
	s.onGameOver = fn
}

// SetPlayArea sets the play-area size in pixels. Letters spawn across the
// width and hit the floor at the height.
func (s *Session) SetPlayArea(width, height float64) {
	s.areaW = width
	s.areaH = height
}

// StartSession resets all state and starts a new playthrough.
func (s *Session) StartSession() {
	s.StartSessionWithSeed(s.seed)
}

// StartSessionWithSeed is StartSession with a fresh RNG seed.
// A session that is still running is ended first.
func (s *Session) StartSessionWithSeed(seed int64) {
	if s.running {
		s.finish()
	}

	s.seed = seed
	s.store.Reset(seed)
	s.score = 0
	s.health = s.cfg.Gameplay.StartHealth
	s.gameTime = 0
	s.started = false
	s.lastTick = 0
	s.lastSpawn = 0
	s.running = true
	s.over = false
	s.finished = false
	s.settings.Difficulty = s.difficulty.Initial()
	s.highScore = s.loadHighScore()

	s.logger.Debug("session started", "seed", seed, "difficulty", s.settings.Difficulty, "high_score", s.highScore)
	s.sound.Play(core.EffectStart)
}

// EndSession stops the session and returns the final score.
// A beaten high score is saved. Safe to call more than once.
func (s *Session) EndSession() int {
	s.running = false
	s.finish()
	return s.score
}

// Tick advances the simulation to timestampMs. Timestamps come from a
// monotonic clock; the first tick only anchors the timers.
func (s *Session) Tick(timestampMs float64) {
	if !s.running {
		return
	}

	// 1. Delta since the previous tick
	if !s.started {
		s.started = true
		s.lastTick = timestampMs
		s.lastSpawn = timestampMs
	}
	delta := max(timestampMs-s.lastTick, 0)
	if timestampMs > s.lastTick {
		s.lastTick = timestampMs
	}
	now := s.lastTick

	// 2. Game time and difficulty ramp
	prev := s.gameTime
	s.gameTime += delta
	level := s.difficulty.Advance(s.settings.Difficulty, prev, s.gameTime)
	if level != s.settings.Difficulty {
		s.logger.Debug("difficulty increased", "from", s.settings.Difficulty, "to", level, "game_time_ms", s.gameTime)
		s.settings.Difficulty = level
	}

	// 3. Rates from the current difficulty
	spawnRate := s.difficulty.SpawnInterval(level)
	speed := s.difficulty.LetterSpeed(level)

	// 4. Spawn
	if now-s.lastSpawn > spawnRate {
		s.store.Spawn(s.areaW, speed)
		s.lastSpawn = now
	}

	// 5. Move
	s.store.Advance(delta / 1000)

	// 6. Floor damage
	if crossed := s.store.ReapFloor(s.areaH); crossed > 0 {
		s.sound.Play(core.EffectDamage)
		s.health -= crossed
		s.logger.Debug("letters reached the floor", "count", crossed, "health", s.health)
	}

	// 7. Explosion cleanup
	s.store.ReapExploded(now)

	s.observeHealth()
}

// OnKey handles a key press. Only single letters do anything.
func (s *Session) OnKey(key string) KeyResult {
	if !s.running {
		return KeyIgnored
	}
	r, ok := letters.IsLetterKey(key)
	if !ok {
		return KeyIgnored
	}

	// Keys carry no timestamp. The burst is stamped with the last tick, so the
	// grace period can end up to one frame early in wall time.
	if s.store.MatchAndExplode(r, s.lastTick) {
		s.sound.Play(core.EffectHit)
		s.score++
		return KeyHit
	}
	s.sound.Play(core.EffectMiss)
	return KeyMiss
}

// observeHealth ends the session the first time health drops to zero.
func (s *Session) observeHealth() {
	if s.over || s.health > 0 {
		return
	}
	s.over = true
	s.running = false

	s.logger.Info("game over", "score", s.score, "game_time_ms", s.gameTime, "difficulty", s.settings.Difficulty)
	s.sound.Play(core.EffectGameOver)
	s.finish()

	if s.onGameOver != nil {
		s.onGameOver(s.score)
	}
}

// finish saves the score if it beats the stored high score. Runs once per session.
func (s *Session) finish() {
	if s.finished {
		return
	}
	s.finished = true

	best, ok, err := s.scores.HighScore()
	if err != nil {
		s.logger.Warn("could not read high score", "error", err)
		return
	}
	if ok && s.score <= best {
		return
	}
	if !ok && s.score <= 0 {
		return
	}
	if err := s.scores.SetHighScore(s.score); err != nil {
		s.logger.Warn("could not save high score", "score", s.score, "error", err)
		return
	}
	s.logger.Info("new high score", "score", s.score, "previous", best)
}

func (s *Session) loadHighScore() int {
	best, _, err := s.scores.HighScore()
	if err != nil {
		s.logger.Warn("could not read high score", "error", err)
		return 0
	}
	return best
}

// Letters returns a snapshot of the letters in spawn order.
func (s *Session) Letters() []letters.Letter {
	return s.store.Letters()
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Health returns the remaining health. It can be negative after a bad tick.
func (s *Session) Health() int {
	return s.health
}

// MaxHealth returns the health a session starts with.
func (s *Session) MaxHealth() int {
	return s.cfg.Gameplay.StartHealth
}

// Difficulty returns the current difficulty level.
func (s *Session) Difficulty() float64 {
	return s.settings.Difficulty
}

// GameTime returns the simulated time since start in ms.
func (s *Session) GameTime() float64 {
	return s.gameTime
}

// HighScore returns the best score as loaded at session start.
func (s *Session) HighScore() int {
	return s.highScore
}

// NewHighScore reports whether the current score beats the stored one.
func (s *Session) NewHighScore() bool {
	return s.score > s.highScore
}

// Running reports whether the session accepts ticks and keys.
func (s *Session) Running() bool {
	return s.running
}

// Over reports whether the session ended because health ran out.
func (s *Session) Over() bool {
	return s.over
}

// Package sim runs a Last Letter session headlessly with a CPU typist and a
// virtual clock. Runs are fully determined by the seed, so they double as
// balance checks for the difficulty ramp.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/last-letter/internal/game"
	"github.com/vovakirdan/last-letter/internal/letters"
)

// Bot defaults
const (
	DefaultAccuracy   = 0.9   // Chance a key press targets the right letter
	DefaultReactionMs = 450.0 // Time between key presses
	DefaultStepMs     = 1000.0 / 60
	DefaultDurationMs = 5 * 60 * 1000.0
)

// BotConfig controls the CPU typist.
type BotConfig struct {
	Seed       int64
	Accuracy   float64 // 0-1, 1 = never mistypes
	ReactionMs float64 // Minimum ms between key presses
	StepMs     float64 // Virtual tick length
	DurationMs float64 // Stop after this much virtual time
}

// DefaultBotConfig returns a moderately skilled typist.
func DefaultBotConfig() BotConfig {
	return BotConfig{
		Accuracy:   DefaultAccuracy,
		ReactionMs: DefaultReactionMs,
		StepMs:     DefaultStepMs,
		DurationMs: DefaultDurationMs,
	}
}

// Result summarizes a finished run.
type Result struct {
	Score      int
	Health     int
	Difficulty float64
	GameTimeMs float64
	Keys       int
	Hits       int
	Misses     int
	GameOver   bool
}

// Accuracy returns the share of key presses that destroyed a letter.
func (r Result) Accuracy() float64 {
	if r.Keys == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Keys)
}

// String formats the result for terminal output.
func (r Result) String() string {
	return fmt.Sprintf("score=%d health=%d difficulty=%.1f time=%.1fs keys=%d hits=%d misses=%d over=%v",
		r.Score, r.Health, r.Difficulty, r.GameTimeMs/1000, r.Keys, r.Hits, r.Misses, r.GameOver)
}

// Run starts sess and plays it until game over or the configured duration.
// The session must already have a play area.
func Run(sess *game.Session, cfg BotConfig) Result {
	if cfg.StepMs <= 0 {
		cfg.StepMs = DefaultStepMs
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	sess.StartSessionWithSeed(cfg.Seed)

	var res Result
	nextKey := cfg.ReactionMs
	for now := 0.0; now <= cfg.DurationMs && sess.Running(); now += cfg.StepMs {
		sess.Tick(now)
		if !sess.Running() || now < nextKey {
			continue
		}

		target, ok := lowestLetter(sess.Letters())
		if !ok {
			continue
		}
		char := target.Char
		// Skill-limited like a human: sometimes the finger slips
		if rng.Float64() >= cfg.Accuracy {
			char = rune('A' + rng.Intn(26))
		}

		switch sess.OnKey(string(char)) {
		case game.KeyHit:
			res.Hits++
		case game.KeyMiss:
			res.Misses++
		}
		res.Keys++
		nextKey = now + cfg.ReactionMs
	}

	if sess.Running() {
		sess.EndSession()
	}

	res.Score = sess.Score()
	res.Health = sess.Health()
	res.Difficulty = sess.Difficulty()
	res.GameTimeMs = sess.GameTime()
	res.GameOver = sess.Over()
	return res
}

// lowestLetter returns the falling letter closest to the floor.
func lowestLetter(ls []letters.Letter) (letters.Letter, bool) {
	var best letters.Letter
	found := false
	for _, l := range ls {
		if l.Exploding {
			continue
		}
		if !found || l.Y > best.Y {
			best = l
			found = true
		}
	}
	return best, found
}

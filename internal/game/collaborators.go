package game

import "github.com/vovakirdan/last-letter/internal/core"

// SoundPlayer triggers sound effects. Play must not block and never fails
// observably; playback problems are the player's business.
type SoundPlayer interface {
	Play(effect core.Effect)
}

// HighScores persists the best score.
type HighScores interface {
	// HighScore returns the stored best score; ok is false when none exists.
	HighScore() (score int, ok bool, err error)
	// SetHighScore replaces the stored best score.
	SetHighScore(score int) error
}

type silentPlayer struct{}

func (silentPlayer) Play(core.Effect) {}

type noHighScores struct{}

func (noHighScores) HighScore() (int, bool, error) { return 0, false, nil }
func (noHighScores) SetHighScore(int) error        { return nil }

package storage

import "github.com/vovakirdan/last-letter/internal/game"

// Board is a Store narrowed to a single board. It satisfies the game's
// high score collaborator.
type Board struct {
	store *Store
	name  string
}

// NewBoard returns a view of one board in the store.
func NewBoard(store *Store, name string) *Board {
	return &Board{store: store, name: name}
}

// Name returns the board name.
func (b *Board) Name() string {
	return b.name
}

// HighScore returns the board's best score.
func (b *Board) HighScore() (int, bool, error) {
	return b.store.HighScore(b.name)
}

// SetHighScore overwrites the board's best score.
func (b *Board) SetHighScore(score int) error {
	return b.store.SetHighScore(b.name, score)
}

// SaveScore appends a run to the board's history.
func (b *Board) SaveScore(score int) error {
	_, err := b.store.SaveScore(b.name, score)
	return err
}

// TopScores returns the best runs on the board.
func (b *Board) TopScores(limit int) ([]ScoreEntry, error) {
	return b.store.TopScores(b.name, limit)
}

// Ensure Board implements game.HighScores
var _ game.HighScores = (*Board)(nil)

// Package letters implements the store of falling letters: spawning,
// vertical movement, floor collision, key matching and explosion cleanup.
package letters

import (
	"github.com/vovakirdan/last-letter/internal/core"
)

// Letter is a single falling letter.
type Letter struct {
	ID        string     // Stable identifier, only used for rendering
	Char      rune       // Uppercase A-Z, the key that destroys it
	X         float64    // Horizontal position, fixed at spawn
	Y         float64    // Vertical position, grows while falling
	Speed     float64    // Fall rate in px/s, fixed at spawn
	Color     core.Color // Cosmetic
	Exploding bool       // Hit by the player; waiting for removal

	explodedAt float64 // Timestamp (ms) when Exploding was set
}

// ExplodedAt returns the timestamp (ms) at which the letter was hit.
// Zero for letters that are not exploding.
func (l Letter) ExplodedAt() float64 {
	return l.explodedAt
}

// Matches reports whether key destroys this letter, ignoring case.
func (l Letter) Matches(key rune) bool {
	return l.Char == toUpper(key)
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// IsLetterKey reports whether key is a single ASCII letter.
func IsLetterKey(key string) (rune, bool) {
	if len(key) != 1 {
		return 0, false
	}
	r := rune(key[0])
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return toUpper(r), true
	}
	return 0, false
}

package letters

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/vovakirdan/last-letter/internal/config"
	"github.com/vovakirdan/last-letter/internal/core"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Store owns the letters of one session in spawn order.
type Store struct {
	letters []Letter
	rng     *rand.Rand
	cfg     config.GameplayConfig
	palette []core.Color
}

// NewStore creates an empty store with the given RNG seed.
func NewStore(seed int64, cfg config.GameplayConfig, palette []core.Color) *Store {
	if len(palette) == 0 {
		palette = core.NeonPalette()
	}
	s := &Store{
		letters: make([]Letter, 0, 16),
		cfg:     cfg,
		palette: palette,
	}
	s.Reset(seed)
	return s
}

// Reset removes all letters and reseeds the RNG.
func (s *Store) Reset(seed int64) {
	s.letters = s.letters[:0]
	s.rng = rand.New(rand.NewSource(seed))
}

// Spawn creates a letter above the play area and appends it.
// The letter gets a random character and color, a random x clear of both
// edges and a speed of baseSpeed with random jitter.
func (s *Store) Spawn(areaWidth, baseSpeed float64) Letter {
	char := rune(alphabet[s.rng.Intn(len(alphabet))])
	color := s.palette[s.rng.Intn(len(s.palette))]

	margin := s.cfg.EdgeMargin
	x := areaWidth / 2
	if span := areaWidth - 2*margin; span > 0 {
		x = margin + s.rng.Float64()*span
	}

	jitter := s.cfg.SpeedJitter
	speed := baseSpeed * (1 - jitter + s.rng.Float64()*2*jitter)

	l := Letter{
		ID:    s.newID(),
		Char:  char,
		X:     x,
		Y:     s.cfg.SpawnY,
		Speed: speed,
		Color: color,
	}
	s.letters = append(s.letters, l)
	return l
}

// Add appends a prepared letter at the end of spawn order.
// The letter gets an ID if it has none.
func (s *Store) Add(l Letter) Letter {
	if l.ID == "" {
		l.ID = s.newID()
	}
	l.Char = toUpper(l.Char)
	s.letters = append(s.letters, l)
	return l
}

func (s *Store) newID() string {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Advance moves every falling letter down by speed * dt.
// Exploding letters stay where they were hit.
func (s *Store) Advance(dtSeconds float64) {
	if dtSeconds <= 0 {
		return
	}
	for i := range s.letters {
		if s.letters[i].Exploding {
			continue
		}
		s.letters[i].Y += s.letters[i].Speed * dtSeconds
	}
}

// ReapFloor drops every falling letter whose bottom reached floorY and
// returns how many were dropped.
func (s *Store) ReapFloor(floorY float64) int {
	limit := floorY - s.cfg.FloorMargin
	crossed := 0
	kept := s.letters[:0]
	for _, l := range s.letters {
		if !l.Exploding && l.Y >= limit {
			crossed++
			continue
		}
		kept = append(kept, l)
	}
	s.clearTail(len(kept))
	s.letters = kept
	return crossed
}

// MatchAndExplode flags the oldest falling letter matching key as exploding.
// At most one letter is flagged per call.
func (s *Store) MatchAndExplode(key rune, nowMs float64) bool {
	for i := range s.letters {
		l := &s.letters[i]
		if l.Exploding || !l.Matches(key) {
			continue
		}
		l.Exploding = true
		l.explodedAt = nowMs
		return true
	}
	return false
}

// ReapExploded removes letters that have been exploding for at least the
// grace period and returns how many were removed.
func (s *Store) ReapExploded(nowMs float64) int {
	removed := 0
	kept := s.letters[:0]
	for _, l := range s.letters {
		if l.Exploding && nowMs-l.explodedAt >= s.cfg.ExplosionGraceMs {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	s.clearTail(len(kept))
	s.letters = kept
	return removed
}

// clearTail zeroes letters past n so filtered-out entries don't linger in the backing array.
func (s *Store) clearTail(n int) {
	clear(s.letters[n:])
}

// Letters returns a copy of the letters in spawn order.
func (s *Store) Letters() []Letter {
	out := make([]Letter, len(s.letters))
	copy(out, s.letters)
	return out
}

// Len returns the number of letters in the store.
func (s *Store) Len() int {
	return len(s.letters)
}

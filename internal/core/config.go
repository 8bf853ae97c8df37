package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The platform uses it to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Settings is the session configuration shared by the simulation and the
// presentation layer. It is passed by pointer; reads and writes are plain
// field access and happen on the UI goroutine only.
type Settings struct {
	Difficulty float64 // Live difficulty, written by the simulation
	Muted      bool    // Whether sound effects are muted
	Preset     string  // Difficulty preset name, also the score board name
}

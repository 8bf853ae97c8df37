package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/last-letter/internal/audio"
	"github.com/vovakirdan/last-letter/internal/core"
	"github.com/vovakirdan/last-letter/internal/platform/tui"
	"github.com/vovakirdan/last-letter/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game of Last Letter.

Controls:
  A-Z      - Destroy a falling letter
  Enter    - Start / play again
  Esc      - Pause / resume
  Tab      - Mute / unmute
  Q        - Quit (outside of play)
  Ctrl+C   - Quit

Difficulty options:
  normal - Starts at level 1.0, speeds up every 15 seconds
  hard   - Starts at level 2.0 with two hearts
  insane - Starts at level 3.0 with one heart
  fixed  - Level 1.0 forever

Examples:
  lastletter play
  lastletter play --difficulty insane
  lastletter play --mute --seed 42
  lastletter play --config ./my-lastletter.yaml --log-file /tmp/lastletter.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns stdout, so logs only go to --log-file
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	sound := audio.NewManager(cfg.Audio, logger)
	//nolint:errcheck // Logged by the manager; the game runs silently
	sound.Initialize()
	if !sound.Initialized() && !sound.Muted() {
		fmt.Fprintln(os.Stderr, "Warning: no audio device, playing without sound")
	}

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Preset: preset,
		Store:  store,
		Sound:  sound,
		Logger: logger,
	})

	sound.Cleanup()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// lastletter is a falling-letters typing game for the terminal.
//
// Usage:
//
//	lastletter play              - Play in this terminal
//	lastletter scores [board]    - Show score history for a difficulty board
//	lastletter serve             - Start SSH server for remote play
//	lastletter simulate          - Run a headless game with a CPU typist
//	lastletter config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.lastletter/scores.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - normal, hard, insane or fixed (default: config file)
//	--mute                - Disable sound effects
//	--log-file <path>     - Write logs to a file
//	--debug               - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/last-letter/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lastletter",
	Short: "Last Letter - type the falling letters before they land",
	Long: `Last Letter is a terminal typing game. Letters fall from the top of
the screen; type one to destroy it. Every letter that reaches the floor
costs a heart, and the game speeds up as you survive.

Available commands:
  play      - Play in this terminal
  scores    - View score history
  serve     - Start SSH server for remote play
  simulate  - Run a headless game with a CPU typist
  config    - Print the effective configuration

Examples:
  lastletter play
  lastletter play --difficulty hard
  lastletter scores insane
  lastletter serve --ssh :2222
  lastletter simulate --seed 42 --accuracy 0.8`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lastletter/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: normal, hard, insane, fixed (default: use config file)")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger shared by all components.
// Logs go to --log-file when given, otherwise to fallback.
// The returned func closes the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "lastletter",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// loadGameConfig loads the config and applies --difficulty and --mute.
// Without --difficulty the config file's difficulty settings are used as-is.
func loadGameConfig() (config.Config, config.DifficultyPreset, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}

	preset, err := config.SelectPreset(&cfg, flagDifficulty)
	if err != nil {
		return config.Config{}, "", err
	}
	if flagMute {
		cfg.Audio.Muted = true
	}
	return cfg, preset, nil
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/last-letter/internal/game"
	"github.com/vovakirdan/last-letter/internal/sim"
)

var (
	flagAccuracy float64
	flagReaction float64
	flagDuration time.Duration
	flagWidth    float64
	flagHeight   float64
	flagRuns     int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game with a CPU typist",
	Long: `Play Last Letter without a terminal using a CPU typist and a virtual
clock. A run with the same seed and flags always gives the same result,
which makes this useful for tuning the config.

Scores from simulated runs are never recorded.

Examples:
  lastletter simulate --seed 42
  lastletter simulate --accuracy 0.7 --reaction 600 --runs 20
  lastletter simulate --difficulty insane --duration 2m`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagAccuracy, "accuracy", sim.DefaultAccuracy, "Chance the CPU types the right letter (0-1)")
	simulateCmd.Flags().Float64Var(&flagReaction, "reaction", sim.DefaultReactionMs, "Milliseconds between CPU key presses")
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", 5*time.Minute, "Maximum virtual play time")
	simulateCmd.Flags().Float64Var(&flagWidth, "width", 800, "Play area width in pixels")
	simulateCmd.Flags().Float64Var(&flagHeight, "height", 600, "Play area height in pixels")
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of runs; run i uses seed+i")
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}

	logger.Info("simulating", "preset", preset, "seed", seed, "runs", flagRuns,
		"accuracy", flagAccuracy, "reaction_ms", flagReaction)

	var totalScore int
	for i := 0; i < max(flagRuns, 1); i++ {
		sess := game.New(game.Options{
			Config: cfg,
			Logger: logger.With("run", i),
		})
		sess.SetPlayArea(flagWidth, flagHeight)

		res := sim.Run(sess, sim.BotConfig{
			Seed:       seed + int64(i),
			Accuracy:   flagAccuracy,
			ReactionMs: flagReaction,
			StepMs:     1000 / float64(fps),
			DurationMs: float64(flagDuration.Milliseconds()),
		})
		totalScore += res.Score

		fmt.Printf("run %d seed=%d %s\n", i+1, seed+int64(i), res)
	}

	if flagRuns > 1 {
		fmt.Printf("average score: %.1f\n", float64(totalScore)/float64(flagRuns))
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/last-letter/internal/config"
	"github.com/vovakirdan/last-letter/internal/platform/tui"
	"github.com/vovakirdan/last-letter/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show score history",
	Long: `Display the score history of a difficulty board. Each preset
(normal, hard, insane, fixed) keeps its own board and high score.

In a terminal the scoreboard is interactive; use --plain or pipe the
output to get the top 10 as text. --clear deletes the board's history
and high score.

Examples:
  lastletter scores
  lastletter scores insane
  lastletter scores hard --plain
  lastletter scores fixed --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the top 10 as text")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the board's scores and high score")
}

func runScores(_ *cobra.Command, args []string) {
	name := flagDifficulty
	if len(args) == 1 {
		name = args[0]
	}
	board, err := config.ParsePreset(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearBoard(string(board)); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing board: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Printf("Cleared board %s\n", board)
		return
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, board, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	printScores(store, board)
}

func printScores(store *storage.Store, board config.DifficultyPreset) {
	scores, err := store.TopScores(string(board), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", board)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'lastletter play --difficulty %s' to set the first high score!\n", board)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.Stats(string(board)); err == nil {
		fmt.Printf("Best: %d   Games: %d   Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

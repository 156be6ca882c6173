package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/hyperengineering/between/internal/config"
	"github.com/hyperengineering/between/internal/history"
	"github.com/hyperengineering/between/internal/orchestrator"
	"github.com/hyperengineering/between/internal/puzzle"
	"github.com/hyperengineering/between/internal/selector"
	"github.com/hyperengineering/between/internal/validator"
	"github.com/spf13/cobra"
)

var (
	generateDate  string
	generateJSON  bool
	generateForce bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a daily puzzle without running the server",
	Long:  "Generate and persist the puzzle for a date, printing the selected rounds.",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateDate, "date", "",
		"Puzzle date as YYYY-MM-DD (default: today, UTC)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false,
		"Output in JSON format")
	generateCmd.Flags().BoolVar(&generateForce, "force", false,
		"Regenerate even if a puzzle for the date already exists")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Keep command output clean; only warnings and above reach stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	date := generateDate
	if date == "" {
		date = time.Now().UTC().Format(puzzle.DateFormat)
	}
	if _, err := time.Parse(puzzle.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}

	store, err := history.NewSQLiteStore(cfg.Database.Path, cfg.Puzzle.MaxHistoryDays)
	if err != nil {
		return err
	}
	defer store.Close()

	sel := selector.New(validator.Default())
	puzzles := orchestrator.New(newSource(cfg), store, sel, orchestrator.Config{
		RoundCount:   cfg.Puzzle.RoundsPerDay,
		BatchSize:    cfg.Puzzle.BatchSize,
		MaxAttempts:  cfg.Puzzle.MaxAttempts,
		RecentSample: cfg.Puzzle.RecentSample,
		BackoffBase:  time.Duration(cfg.Puzzle.BackoffBase),
		BackoffCap:   time.Duration(cfg.Puzzle.BackoffCap),
	})

	var p *puzzle.DailyPuzzle
	if generateForce {
		p, err = puzzles.Regenerate(cmd.Context(), date)
	} else {
		p, err = puzzles.DailyPuzzle(cmd.Context(), date)
	}
	if err != nil {
		return err
	}

	if generateJSON {
		return printJSON(cmd.OutOrStdout(), p)
	}
	return printRounds(cmd.OutOrStdout(), p)
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRounds writes the puzzle as an aligned table.
func printRounds(w io.Writer, p *puzzle.DailyPuzzle) error {
	fmt.Fprintf(w, "Puzzle for %s (%d rounds)\n\n", p.Date, len(p.Rounds))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUND\tANCHOR A\tANCHOR B\tANSWER\tCATEGORY")
	for i, r := range p.Rounds {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, r.AnchorA, r.AnchorB, r.Answer, r.Category)
	}
	return tw.Flush()
}

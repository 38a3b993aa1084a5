package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/GeorgeKontos14/FlexFringe/internal/runlog"
	"github.com/spf13/cobra"
)

var (
	historyLast int
	historyJSON bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded ensemble runs from the runlog database (requires --db)",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLast, "last", 20, "show N most recent runs")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON instead of a table")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.RunlogPath == "" {
		return fmt.Errorf("history requires --db path/to/runlog.db")
	}

	store, err := runlog.Open(cfg.RunlogPath)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(historyLast)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	return printHistoryTable(runs)
}

func printHistoryTable(runs []runlog.Run) error {
	fmt.Printf("%-38s  %-20s  %7s  %8s  %s\n", "Run", "Driver", "Budget", "Produced", "Time")
	fmt.Printf("%-38s  %-20s  %7s  %8s  %s\n",
		"--------------------------------------", "--------------------", "-------", "--------", "--------------------")
	for _, r := range runs {
		fmt.Printf("%-38s  %-20s  %7d  %8d  %s\n",
			r.RunID, r.Driver, r.Budget, r.Produced, r.CreatedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

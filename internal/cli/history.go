package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abayate/earthwise/internal/daemon"
	"github.com/abayate/earthwise/internal/domain"
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show")
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(streakCmd)
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent day snapshots, newest first",
	RunE:  runHistory,
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current streak and recent daily results",
	RunE:  runStreak,
}

func runHistory(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.Engine().History(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTIME\tPOINTS\tDONE\tTRIGGER")
	for _, e := range entries {
		trigger := ""
		if e.Action != nil {
			trigger = e.Action.Section
			if e.Action.TaskID != "" {
				trigger += ":" + e.Action.TaskID
			}
		}
		at := time.UnixMilli(e.TS).Format("15:04:05")
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			e.Date, at, e.Totals.Points, e.Totals.CompletedCount, trigger)
	}
	return w.Flush()
}

func runStreak(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	eng := d.Engine()
	fmt.Printf("Current streak: %d days\n\n", eng.Streak())

	// Last 7 calendar days, oldest first.
	log := eng.Log()
	now := time.Now()
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := domain.DateKey(day)
		mark := "·"
		if log[key] {
			mark = "✓"
		}
		fmt.Printf("  %s  %s\n", key, mark)
	}
	return nil
}

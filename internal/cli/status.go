package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abayate/earthwise/internal/app/engine"
	"github.com/abayate/earthwise/internal/daemon"
	"github.com/abayate/earthwise/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's points, streak, and progress",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	eng := d.Engine()
	award := eng.Award()
	agg, err := eng.Aggregates()
	if err != nil {
		return err
	}
	ms := eng.Milestone()

	health, err := eng.Tasks(domain.CategoryHealth)
	if err != nil {
		return err
	}
	eco, err := eng.Tasks(domain.CategoryEco)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Date\t%s\n", eng.Today())
	fmt.Fprintf(w, "Points today\t%d\n", award.Total)
	fmt.Fprintf(w, "Streak\t%d days\n", eng.Streak())
	fmt.Fprintf(w, "Health tasks\t%d/%d done\n", domain.CompletedCount(health), len(health))
	fmt.Fprintf(w, "Eco tasks\t%d/%d done\n", domain.CompletedCount(eco), len(eco))
	fmt.Fprintf(w, "This month\t%d points\n", agg.MonthlyPoints)
	fmt.Fprintf(w, "Lifetime\t%d points\n", agg.LifetimePoints)
	fmt.Fprintf(w, "Next milestone\t%d (%d to go)\n", ms.Next, ms.Remaining)
	if err := w.Flush(); err != nil {
		return err
	}

	rank, err := eng.Rank(engine.SeedBoard())
	if err != nil {
		return err
	}
	fmt.Printf("\nLeaderboard: #%d", rank.Rank)
	if rank.NextName != "" {
		fmt.Printf(" — %d points to pass %s", rank.Gap, rank.NextName)
	}
	fmt.Println()
	return nil
}

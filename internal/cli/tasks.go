package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abayate/earthwise/internal/daemon"
	"github.com/abayate/earthwise/internal/domain"
)

func init() {
	rootCmd.AddCommand(tasksCmd)
}

var tasksCmd = &cobra.Command{
	Use:   "tasks [health|eco]",
	Short: "List today's tasks and their completion state",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTasks,
}

func runTasks(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	cats := []domain.Category{domain.CategoryHealth, domain.CategoryEco}
	if len(args) == 1 {
		cat := domain.Category(args[0])
		if !cat.Valid() {
			return fmt.Errorf("unknown category %q (want health or eco)", args[0])
		}
		cats = []domain.Category{cat}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tID\tTASK\tPOINTS\tDONE")
	for _, cat := range cats {
		tasks, err := d.Engine().Tasks(cat)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			done := ""
			if t.Completed {
				done = "✓"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", cat, t.ID, t.Label, t.Points, done)
		}
	}
	return w.Flush()
}

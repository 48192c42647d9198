package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abayate/earthwise/internal/daemon"
	"github.com/abayate/earthwise/internal/domain"
)

func init() {
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(undoCmd)
}

var completeCmd = &cobra.Command{
	Use:   "complete <health|eco> <task-id>",
	Short: "Mark a task completed and award its points",
	Args:  cobra.ExactArgs(2),
	RunE:  runComplete,
}

var undoCmd = &cobra.Command{
	Use:   "undo <health|eco> <task-id>",
	Short: "Un-complete a task and reverse its points",
	Args:  cobra.ExactArgs(2),
	RunE:  runUndo,
}

func runComplete(cmd *cobra.Command, args []string) error {
	return toggleTo(args[0], args[1], true)
}

func runUndo(cmd *cobra.Command, args []string) error {
	return toggleTo(args[0], args[1], false)
}

// toggleTo drives the engine toggle toward the wanted completion
// state; already-there is not an error.
func toggleTo(catArg, taskID string, want bool) error {
	cat := domain.Category(catArg)
	if !cat.Valid() {
		return fmt.Errorf("unknown category %q (want health or eco)", catArg)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	tasks, err := d.Engine().Tasks(cat)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID == taskID && t.Completed == want {
			fmt.Printf("%s already %s\n", t.Label, stateWord(want))
			return nil
		}
	}

	tasks, err = d.Engine().Toggle(cat, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return fmt.Errorf("no task %q in today's %s list", taskID, cat)
		}
		return err
	}

	for _, t := range tasks {
		if t.ID == taskID {
			award := d.Engine().Award()
			fmt.Printf("%s %s. Today: %d points, streak %d days.\n",
				t.Label, stateWord(t.Completed), award.Total, d.Engine().Streak())
			return nil
		}
	}
	return nil
}

func stateWord(completed bool) string {
	if completed {
		return "completed"
	}
	return "undone"
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abayate/earthwise/internal/daemon"
	"github.com/abayate/earthwise/internal/domain"
)

func init() {
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset <health|eco>",
	Short: "Clear completion marks in a category (points already awarded are kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	cat := domain.Category(args[0])
	if !cat.Valid() {
		return fmt.Errorf("unknown category %q (want health or eco)", args[0])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	tasks, err := d.Engine().ResetCategory(cat)
	if err != nil {
		return err
	}
	fmt.Printf("Reset %d %s tasks.\n", len(tasks), cat)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abayate/earthwise/internal/daemon"
	"github.com/abayate/earthwise/internal/domain"
	"github.com/abayate/earthwise/internal/infra/remote"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Show the remote profile row and audit-log cross-check",
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}
	if !cfg.Remote.Enabled || cfg.Remote.BaseURL == "" {
		return fmt.Errorf("%w (enable it in config.toml under [remote])", domain.ErrRemoteDisabled)
	}

	client := remote.NewClient(remote.Config{
		BaseURL: cfg.Remote.BaseURL,
		UserID:  cfg.User.ID,
		Timeout: cfg.Remote.RemoteTimeout(),
		Retries: cfg.Remote.Retries,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	row, err := client.Profile(ctx)
	if err != nil {
		return err
	}
	if row == nil {
		fmt.Println("No remote profile row yet. Complete a task to create one.")
		return nil
	}

	auditTotal, err := client.LifetimeFromAudit(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Today\t%d points\n", row.TodaysPoints)
	fmt.Fprintf(w, "This month\t%d points\n", row.MonthPoints)
	fmt.Fprintf(w, "Lifetime\t%d points\n", row.TotalPoints)
	fmt.Fprintf(w, "Tasks completed\t%d\n", row.TotalTasks)
	fmt.Fprintf(w, "Last activity\t%s\n", row.LastActivityDate)
	fmt.Fprintf(w, "Audit-log sum\t%d points\n", auditTotal)
	if err := w.Flush(); err != nil {
		return err
	}

	if auditTotal != row.TotalPoints {
		fmt.Printf("\nNote: audit log and profile row disagree by %d points.\n",
			row.TotalPoints-auditTotal)
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathracers/internal/logging"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress: coins, unlocks, facts and history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprintln(cmd.ErrOrStderr(), "This erases all progress. Re-run with --yes to confirm.")
			return nil
		}

		st, repo, err := openRepo(cmd, logging.Discard())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := repo.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm erasing all progress")
}

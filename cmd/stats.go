package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathracers/internal/dashboard"
	"github.com/abhisek/mathracers/internal/logging"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime racing statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, repo, err := openRepo(cmd, logging.Discard())
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		state := repo.LoadState(ctx)
		sum := dashboard.Build(state.Profile, state.Facts, state.Leagues, repo.LoadHistory(ctx))

		weak, _ := cmd.Flags().GetInt("weak")
		last, _ := cmd.Flags().GetInt("last")
		printStats(cmd.OutOrStdout(), sum, weak, last)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("weak", 10, "Number of weakest facts to show (0 for all)")
	statsCmd.Flags().Int("last", 10, "Number of recent races to show (0 for all)")
}

func printStats(w io.Writer, sum dashboard.Summary, weak, last int) {
	for _, kv := range sum.Totals() {
		fmt.Fprintf(w, "%-10s %s\n", kv[0], kv[1])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "By table")
	fmt.Fprintln(w, dashboard.RenderTable(dashboard.TableHeaders, sum.TableRows()))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Weakest facts")
	if rows := sum.WeakRows(weak); len(rows) > 0 {
		fmt.Fprintln(w, dashboard.RenderTable(dashboard.WeakHeaders, rows))
	} else {
		fmt.Fprintln(w, "  No missed facts yet.")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent races")
	if rows := sum.HistoryRows(last); len(rows) > 0 {
		fmt.Fprintln(w, dashboard.RenderTable(dashboard.HistoryHeaders, rows))
	} else {
		fmt.Fprintln(w, "  No races yet.")
	}
}

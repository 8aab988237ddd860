package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathracers/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective tuning as TOML",
	Long: `Print the race tuning in effect: built-in defaults overlaid with the
tuning file. Redirect the output to config.toml to start customizing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tuning := loadTuning(cmd)
		if def, _ := cmd.Flags().GetBool("defaults"); def {
			tuning = config.Default()
		}
		return tuning.Encode(cmd.OutOrStdout())
	},
}

func init() {
	configCmd.Flags().Bool("defaults", false, "Print the built-in defaults, ignoring the tuning file")
}

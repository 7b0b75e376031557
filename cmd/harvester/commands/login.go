package commands

import (
	"github.com/spf13/cobra"

	"linkharvest/internal/pipeline"
)

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Logs in to LinkedIn and saves the session state for later scrape runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cmd.SilenceUsage = true
		return pipeline.NewRunner(cfg).RunLogin(cmd.Context())
	},
}

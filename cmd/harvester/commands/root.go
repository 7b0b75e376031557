package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linkharvest/internal/config"
	"linkharvest/pkg/utils"
)

var (
	configPath string

	flagStatePath string
	flagHeadless  bool
	flagEmail     string
	flagPassword  string
)

var rootCmd = &cobra.Command{
	Use:   "harvester",
	Short: "harvester collects LinkedIn job posts and files the relevant ones into a spreadsheet.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "Path to the YAML config file.")
	rootCmd.PersistentFlags().StringVar(&flagStatePath, "storage-state", "", "Path to the saved browser session state.")
	rootCmd.PersistentFlags().BoolVar(&flagHeadless, "headless", false, "Run the browser without a visible window.")
	rootCmd.PersistentFlags().StringVar(&flagEmail, "email", "", "LinkedIn account email (overrides LINKEDIN_EMAIL).")
	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "LinkedIn account password (overrides LINKEDIN_PASSWORD).")
}

// loadConfig reads the config file and layers the command-line flags on
// top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if flagStatePath != "" {
		cfg.Browser.StatePath = flagStatePath
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.HeadlessMode = flagHeadless
	}
	if flagEmail != "" {
		cfg.Login.Email = flagEmail
	}
	if flagPassword != "" {
		cfg.Login.Password = flagPassword
	}

	utils.ConfigureLogger(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// ExecuteContext runs the CLI. Authentication and persistence failures
// carry their own exit codes; everything else exits 1.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var runErr *utils.RunError
		if errors.As(err, &runErr) {
			os.Exit(runErr.ExitCode)
		}
		os.Exit(1)
	}
}

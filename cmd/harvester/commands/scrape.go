package commands

import (
	"github.com/spf13/cobra"

	"linkharvest/internal/pipeline"
)

var (
	flagQuery       string
	flagMaxPosts    int
	flagOutput      string
	flagOllamaURL   string
	flagOllamaModel string
)

func init() {
	scrapeCmd.Flags().StringVar(&flagQuery, "query", "", "Search query for the content search.")
	scrapeCmd.Flags().IntVar(&flagMaxPosts, "max-posts", 0, "Stop collecting after this many posts.")
	scrapeCmd.Flags().StringVar(&flagOutput, "output", "", "Path of the xlsx workbook to write.")
	scrapeCmd.Flags().StringVar(&flagOllamaURL, "ollama-url", "", "Base URL of the Ollama server.")
	scrapeCmd.Flags().StringVar(&flagOllamaModel, "ollama-model", "", "Model name to classify posts with.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Searches LinkedIn posts, classifies them, and merges the relevant ones into the workbook.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if flagQuery != "" {
			cfg.Search.Query = flagQuery
		}
		if flagMaxPosts > 0 {
			cfg.Search.MaxPosts = flagMaxPosts
		}
		if flagOutput != "" {
			cfg.Storage.OutputPath = flagOutput
		}
		if flagOllamaURL != "" {
			cfg.LLM.BaseURL = flagOllamaURL
		}
		if flagOllamaModel != "" {
			cfg.LLM.Model = flagOllamaModel
		}

		cmd.SilenceUsage = true
		return pipeline.NewRunner(cfg).Run(cmd.Context())
	},
}

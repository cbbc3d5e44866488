package cmd

import (
	"context"
	"fmt"

	"content-exporter/core/config"
	"content-exporter/core/logger"

	"github.com/spf13/cobra"
)

// categoriesCmd runs the discovery chain alone and prints the working set.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Discover the exportable content categories",
	Long: `Runs the category discovery chain (structured query, unstructured query,
scripted evaluation, manual fallback) and prints the validated category list,
one per line.`,
	RunE: runCategories,
}

func init() {
	categoriesCmd.Flags().StringVar(&exportChannelMode, "channel", "", "Override channel mode (local, remote, database)")

	RootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyExportFlags(cfg)

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	_, chain, cleanup, err := buildPipeline(cfg, l)
	if err != nil {
		return err
	}
	defer cleanup()

	categories := chain.Discover(context.Background())
	if len(categories) == 0 {
		return fmt.Errorf("discovery produced no categories")
	}

	// Plain list on stdout so the output is scriptable
	for _, category := range categories {
		fmt.Println(category)
	}

	return nil
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"content-exporter/core/config"
	"content-exporter/core/logger"
	"content-exporter/core/storage"
	"content-exporter/feature/export"
	"content-exporter/feature/export/models"
	"content-exporter/feature/export/render"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for export command
	exportChannelMode string
	exportCategories  string
	exportName        string
	withAuthors       bool
	publishExport     bool
)

// exportCmd runs the full export pipeline.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export content records to a validated CSV dataset",
	Long: `Export discovers the content categories, fetches primary and override
records per category, reconciles them into a validated seven-column dataset,
and writes the result plus a run summary to the output directory.

Examples:
  # Export via the local backend CLI
  content-exporter export

  # Export over SSH with author records
  content-exporter export --channel remote --authors

  # Export straight from the CMS database and publish to object storage
  content-exporter export --channel database --publish`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportChannelMode, "channel", "", "Override channel mode (local, remote, database)")
	exportCmd.Flags().StringVar(&exportCategories, "categories", "", "Extra categories for the manual discovery fallback (comma-separated)")
	exportCmd.Flags().StringVar(&exportName, "name", "", "Export file name (default content-export-<date>.csv)")
	exportCmd.Flags().BoolVar(&withAuthors, "authors", false, "Also export author records with per-author counts")
	exportCmd.Flags().BoolVar(&publishExport, "publish", false, "Upload the finished export to object storage")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	source, chain, cleanup, err := buildPipeline(cfg, l)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := export.NewService(chain, source, cfg.Channel.Mode, l)

	run, err := svc.Execute(ctx)
	if err != nil {
		return fmt.Errorf("export run failed: %w", err)
	}

	// Author export degrades, it never fails the run
	if withAuthors {
		authors, err := svc.ExportAuthors(ctx, run.Categories, &run.Summary)
		if err != nil {
			l.Warn("author export skipped", zap.Error(err))
			run.Summary.Warn("author export skipped: %v", err)
		} else if path, err := render.WriteAuthorsCSV(cfg.Export.OutputDir, "authors.csv", authors); err != nil {
			l.Warn("author export write failed", zap.Error(err))
			run.Summary.Warn("author export write failed: %v", err)
		} else {
			l.Info("authors written", zap.String("path", path), zap.Int("count", len(authors)))
		}
	}

	name := exportName
	if name == "" {
		name = fmt.Sprintf("content-export-%s.csv", time.Now().Format("2006-01-02"))
	}

	renderer := render.NewCSVRenderer(cfg.Export.OutputDir, name)
	path, err := renderer.Render(render.Dataset{
		BaseDomain: cfg.Export.BaseDomain,
		Header:     models.Columns(),
		Rows:       run.Rows,
	})
	if err != nil {
		return fmt.Errorf("failed to render export: %w", err)
	}

	if err := run.Summary.WriteFile(cfg.Export.OutputDir); err != nil {
		l.Warn("failed to persist run summary", zap.Error(err))
	}

	if publishExport || cfg.Export.Publish {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		object, err := render.NewPublisher(client, cfg.Storage.Bucket).Publish(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to publish export: %w", err)
		}
		l.Info("export published", zap.String("bucket", cfg.Storage.Bucket), zap.String("object", object))
	}

	l.Info("export written", zap.String("path", path), zap.Int("rows", len(run.Rows)))
	printWarnings(l, &run.Summary)

	return nil
}

// applyExportFlags folds command-line overrides into the loaded config.
func applyExportFlags(cfg *config.Config) {
	if exportChannelMode != "" {
		cfg.Channel.Mode = exportChannelMode
	}
	if exportCategories != "" {
		if cfg.Export.Categories != "" {
			cfg.Export.Categories += ","
		}
		cfg.Export.Categories += exportCategories
	}
}

// printWarnings surfaces every absorbed partial failure in the run report.
func printWarnings(l *zap.Logger, s *export.Summary) {
	for _, w := range s.Warnings {
		l.Warn("run warning", zap.String("warning", w))
	}
}

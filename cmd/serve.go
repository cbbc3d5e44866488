package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"content-exporter/core/config"
	"content-exporter/core/logger"
	"content-exporter/core/middleware/auth"
	"content-exporter/core/middleware/requestid"
	"content-exporter/feature/export"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd exposes the last run summary and export files over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the last run summary and export files",
	Long: `Starts a small HTTP server exposing the most recent run summary as JSON
and the files in the export output directory for download.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// Request ID first so everything downstream is traceable
		app.Use(requestid.New())

		// Logging middleware wired to zap + request ID
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRequestID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Auth protects the whole surface
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		app.Get("/api/summary", func(c *fiber.Ctx) error {
			summary, err := export.LoadSummary(cfg.Export.OutputDir)
			if err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "no run summary available",
				})
			}
			return c.JSON(summary)
		})

		// Export downloads
		app.Static("/exports", cfg.Export.OutputDir, fiber.Static{
			Browse: true,
		})

		// 4. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 5. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

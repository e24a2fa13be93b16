package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"vmp-sync/core/loader"
	"vmp-sync/core/logger"
	"vmp-sync/core/middleware/auth"
	"vmp-sync/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "vmp-sync/docs/swagger"
)

// @title VMP Sync API
// @version 1.0
// @description Sync triggers and webhooks for the volunteer-management platform.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Long:  `Starts the HTTP trigger server, the webhook receivers and the periodic cache pass.`,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := buildEnv()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := e.logg
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		occurrenceFeature, err := e.occurrenceFeature()
		if err != nil {
			logg.Fatal("Failed to build occurrence feature", zap.Error(err))
		}

		mgr := loader.NewManager()
		mgr.Register(occurrenceFeature)
		mgr.Register(e.servicehoursFeature())
		mgr.Register(e.registrationFeature())

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// RayID first so every later log line carries the request id.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
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

		// Swagger documentation (public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Every trigger and webhook sits behind the api key.
		app.Use(auth.New(auth.Config{ApiKey: e.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// The periodic cache pass calls the service directly instead of
		// going through its own HTTP trigger.
		scheduler := cron.New()
		if e.cfg.Server.Schedule != "" {
			_, err := scheduler.AddFunc(e.cfg.Server.Schedule, func() {
				summary, err := occurrenceFeature.Service().CacheOccurrences(context.Background())
				if err != nil {
					logg.Error("Scheduled cache pass failed", zap.Error(err))
					return
				}
				logg.Info("Scheduled cache pass finished", zap.String("summary", summary))
			})
			if err != nil {
				logg.Fatal("Invalid schedule expression",
					zap.String("schedule", e.cfg.Server.Schedule), zap.Error(err))
			}
			scheduler.Start()
		}

		go func() {
			logg.Info("Starting server", zap.String("port", e.cfg.Server.Port))
			if err := app.Listen(":" + e.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		<-scheduler.Stop().Done()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"esports-tracker/core/loader"
	"esports-tracker/core/logger"
	"esports-tracker/core/middleware/auth"
	"esports-tracker/core/middleware/rayid"
	"esports-tracker/core/scheduler"
	"esports-tracker/feature/esports"
	"esports-tracker/feature/esports/announce"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "esports-tracker/docs/swagger"
)

// @title Esports Tracker API
// @version 1.0
// @description Schedules, results, standings and pick/ban statistics of tracked esports leagues.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the esports tracker server",
	Long:  `Loads every league, keeps them fresh on a schedule and serves the query API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration and logger
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 2. Fetcher with optional response persistence
		f, err := newFetcher(ctx, cfg, logg)
		if err != nil {
			return err
		}

		// 3. Engine and announcer
		eng, err := esports.NewEngine(cfg.Esports, f, logg)
		if err != nil {
			return err
		}
		if !cfg.Announce.IsValidBackend() {
			return fmt.Errorf("unknown announce backend %q", cfg.Announce.Backend)
		}
		sink, closeSink, err := announce.New(cfg.Announce, logg)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeSink(); err != nil {
				logg.Warn("Failed to close announcer", zap.Error(err))
			}
		}()

		// 4. Background cycles. Polls before the first load are no-ops.
		sched := scheduler.New(eng.Location(), logg)
		if err := sched.Add("reload", cfg.Esports.ReloadSchedule, eng.ReloadData); err != nil {
			return err
		}
		if err := sched.Add("poll", cfg.Esports.PollSchedule, func(ctx context.Context) error {
			if !eng.IsReady() {
				return nil
			}
			changed := eng.PollUpdates(ctx)
			if n := announce.Publish(ctx, sink, changed, logg); n > 0 {
				logg.Info("Announced match updates", zap.Int("count", n))
			}
			return nil
		}); err != nil {
			return err
		}

		ready := eng.Start(ctx)
		sched.Start()
		go func() {
			select {
			case <-ready:
				logg.Info("Esports data ready", zap.Uint64("generation", eng.Generation()))
			case <-ctx.Done():
			}
		}()

		// 5. HTTP app
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(esports.NewFeature(eng, logg))

		// RayID must be first to trace everything
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

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			errCh <- app.Listen(cfg.Server.Address())
		}()

		// 6. Graceful shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
		}

		logg.Info("Shutting down server...")
		cancel()
		stopCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer stop()
		sched.Stop(stopCtx)
		return app.ShutdownWithContext(stopCtx)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

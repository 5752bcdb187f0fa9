package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"NewsPlatter/internal/app"
	"NewsPlatter/internal/config"
	"NewsPlatter/internal/logging"
)

type cli struct {
	cfgFile  string
	logLevel string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "newsplatter",
		Short: "Multi-language news pipeline",
		Long: `newsplatter fetches country news feeds, selects and summarizes the most
relevant articles, translates them for immigrant communities and publishes
them to the app's document store.

Example usage:
  newsplatter run canada           # One pipeline run
  newsplatter popular germany      # Refresh daily popular snapshots
  newsplatter push uae --hours 12  # Push the most clicked article
  newsplatter schedule             # Run every job on its cron schedule`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "YAML config file (default $NEWSPLATTER_CONFIG)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(c.runCmd(), c.popularCmd(), c.pushCmd(), c.scheduleCmd())
	return root
}

func (c *cli) init() error {
	if c.cfgFile != "" {
		if err := os.Setenv("NEWSPLATTER_CONFIG", c.cfgFile); err != nil {
			return err
		}
	}
	c.cfg = config.Load()
	if c.logLevel != "" {
		c.cfg.Logging.Level = c.logLevel
	}
	c.logger = logging.New(c.cfg.Logging.Level, c.cfg.Logging.Format)
	return nil
}

func (c *cli) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <country>",
		Short: "Run the news pipeline once for a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToLower(args[0])
			return c.withApp(config.TaskRun, code, func(ctx context.Context, a *app.Application) error {
				report, err := a.RunPipeline(ctx, code)
				if err != nil {
					return err
				}
				c.logger.Info("pipeline complete",
					"country", code,
					"run_id", report.RunID,
					"fetched", report.Fetched,
					"published", report.Published,
					"persisted", report.Persisted)
				return nil
			})
		},
	}
}

func (c *cli) popularCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "popular <country>",
		Short: "Refresh the daily popular snapshots of a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToLower(args[0])
			return c.withApp(config.TaskPopular, code, func(ctx context.Context, a *app.Application) error {
				_, err := a.RunDailyPopular(ctx, code)
				return err
			})
		},
	}
}

func (c *cli) pushCmd() *cobra.Command {
	var hours int
	cmd := &cobra.Command{
		Use:   "push <country>",
		Short: "Send a push notification for the most clicked recent article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToLower(args[0])
			return c.withApp(config.TaskPush, code, func(ctx context.Context, a *app.Application) error {
				result, sent, err := a.RunPush(ctx, code, hours)
				if err != nil {
					return err
				}
				c.logger.Info("push complete", "country", code, "sent", sent, "success", result.SuccessCount)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 0, "look-back window in hours (default from config)")
	return cmd
}

func (c *cli) scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule [country...]",
		Short: "Run every job on its cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := make([]string, len(args))
			for i, arg := range args {
				codes[i] = strings.ToLower(arg)
			}
			return c.withApp(config.TaskSchedule, "", func(ctx context.Context, a *app.Application) error {
				return a.Schedule(ctx, codes)
			})
		},
	}
}

// withApp validates the configuration for task, builds the application and
// runs fn with a context cancelled on SIGINT or SIGTERM.
func (c *cli) withApp(task config.Task, code string, fn func(context.Context, *app.Application) error) error {
	if err := c.cfg.Validate(task, code); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			c.logger.Warn("close application", "err", err)
		}
	}()

	return fn(ctx, application)
}

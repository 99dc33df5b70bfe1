package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pfrederiksen/ticketwatch/internal/config"
	"github.com/pfrederiksen/ticketwatch/internal/logger"
	"github.com/pfrederiksen/ticketwatch/internal/notifier"
	"github.com/pfrederiksen/ticketwatch/internal/scraper"
	"github.com/pfrederiksen/ticketwatch/internal/telegram"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticketwatch",
		Short: "Notify a Telegram chat about upcoming events with tickets on sale",
		Long: `A single-run job that checks an events page for upcoming events,
drops the sold out ones and sends the rest to a Telegram chat.
Schedule it externally (cron, CI) to check periodically.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading options: %w", err)
	}

	level, err := logger.ParseLevel(opts.LogLevel)
	if err != nil {
		return err
	}
	prev := logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	defer logger.SetDefault(prev)
	logger.ResetMetrics()

	if missing := opts.Missing(); missing != "" {
		logger.Error("Missing required parameter", logger.Fields{"param": missing}, nil)
		return nil
	}

	if err := opts.Validate(); err != nil {
		return err
	}

	var n notifier.Notifier
	if opts.DryRun {
		// keep stdout a single JSON document
		preview := cmd.OutOrStdout()
		if OutputFormat(opts.Format) == FormatJSON {
			preview = cmd.ErrOrStderr()
		}
		n = notifier.NewDryRunNotifier(preview)
	} else {
		client, err := telegram.NewClient(opts.TelegramToken, opts.TelegramChatID)
		if err != nil {
			return fmt.Errorf("initializing Telegram client: %w", err)
		}
		n = notifier.NewTelegramNotifier(client)
	}

	p := &Pipeline{
		Fetcher:  scraper.New(scraper.WithTimeout(opts.Timeout)),
		Notifier: n,
		ICSFile:  opts.ICSFile,
		DryRun:   opts.DryRun,
	}

	logger.Info("Checking events page", logger.Fields{
		"url":     opts.URL,
		"dry_run": opts.DryRun,
	})

	result, err := p.Run(cmd.Context(), opts.URL)
	if err != nil {
		return err
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, OutputFormat(opts.Format)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Info("Run complete", logger.Fields{
		"available": result.EventCount,
		"notified":  result.Notified,
		"metrics":   logger.GetMetricsSnapshot(),
	})

	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}

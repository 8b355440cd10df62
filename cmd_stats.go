package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"expense-api/config"
	"expense-api/queue"
)

var statsWorkerCmd = &cobra.Command{
	Use:   "stats-worker",
	Short: "Consume queued API calls and record them in the statistics store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.AMQPURL == "" {
			return errors.New("AMQP_URL is required for the stats worker")
		}
		log := newLogger(cfg, os.Stdout)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, log, true)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		log.Info("Stats worker started", "queue", cfg.AMQPQueue)
		err = a.queue.ConsumeCalls(ctx, func(ctx context.Context, msg *queue.CallMessage) error {
			if msg.Timestamp.IsZero() {
				_, err := a.stats.RecordCall(ctx, msg.Path)
				return err
			}
			_, err := a.stats.RecordCallAt(ctx, msg.Path, msg.Timestamp)
			return err
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		log.Info("Stats worker stopped")
		return nil
	},
}

var migrateStatsCmd = &cobra.Command{
	Use:   "migrate-stats",
	Short: "Backfill the endpoint field on legacy call statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}
		log := newLogger(cfg, os.Stderr)

		a, err := newApp(cmd.Context(), cfg, log, false)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		fixed := a.stats.MigrateEndpoints(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %d call statistics\n", fixed)
		return nil
	},
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"expense-api/config"
	"expense-api/controllers"
	"expense-api/middleware"
	"expense-api/observability"
	"expense-api/routes"
)

const serviceName = "expense-api"

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if servePort != "" {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log := newLogger(cfg, os.Stdout)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
			Enabled:  cfg.OTelEnabled,
			Service:  serviceName,
			Endpoint: cfg.OTelEndpoint,
		}, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Error("Failed to shut down tracer", "error", err)
			}
		}()

		a, err := newApp(ctx, cfg, log, true)
		if err != nil {
			return err
		}
		defer a.Close(context.Background())

		if fixed := a.stats.MigrateEndpoints(ctx); fixed > 0 {
			log.Info("Migrated call statistics", "documents", fixed)
		}

		router := routes.SetupRoutes(routes.Controllers{
			Expenses:   controllers.NewExpenseController(a.expenses),
			Reports:    controllers.NewReportController(a.reports),
			Statistics: controllers.NewStatisticsController(a.stats),
		}, a.verifier, serviceName)

		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
		var handler http.Handler = router
		handler = middleware.RecordCalls(a.recordCall)(handler)
		handler = middleware.RateLimit(limiter)(handler)
		handler = middleware.CORS(cfg.CORSOrigins)(handler)
		handler = middleware.RequestLogger(log)(handler)

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       cfg.RequestTimeout,
			WriteTimeout:      cfg.RequestTimeout,
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("Server starting", "port", cfg.Port, "backend", cfg.DataBackend)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown", "error", err)
			return err
		}
		log.Info("Server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (overrides PORT)")
}

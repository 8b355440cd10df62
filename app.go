package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"

	"expense-api/auth"
	"expense-api/cache"
	"expense-api/config"
	"expense-api/logger"
	"expense-api/queue"
	"expense-api/repository"
	"expense-api/repository/memory"
	"expense-api/services"
)

// app owns every external client. Nothing is global: services receive
// their stores at construction.
type app struct {
	cfg *config.Config
	log *slog.Logger

	mongo *mongo.Client
	redis *redis.Client
	queue *queue.Client

	verifier *auth.TokenVerifier
	expenses *services.ExpenseService
	reports  *services.ReportService
	stats    *services.StatisticsService
}

// newLogger builds the process logger and installs it as the slog default,
// which middleware and the queue client fall back to.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	log := logger.New(cfg.LogLevel, w)
	slog.SetDefault(log)
	return log
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger, withQueue bool) (*app, error) {
	a := &app{cfg: cfg, log: log, verifier: auth.NewTokenVerifier(cfg.JWTSecret)}

	var (
		expenseRepo services.ExpenseRepository
		reportRepo  services.ReportRepository
		statsRepo   services.StatsRepository
	)
	switch cfg.DataBackend {
	case "memory":
		expenseRepo, reportRepo, statsRepo = memory.NewExpenseStore(), memory.NewReportStore(), memory.NewStatsStore()
		log.Info("Initialized memory backend")
	default:
		client, err := config.ConnectMongoDB(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		a.mongo = client
		db := client.Database(cfg.MongoDatabase)
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			log.Warn("Failed to create indexes", "error", err)
		}
		expenseRepo = repository.NewExpenseRepository(db.Collection(repository.ExpensesCollection))
		reportRepo = repository.NewReportRepository(db.Collection(repository.ReportsCollection))
		statsRepo = repository.NewStatsRepository(db.Collection(repository.CallStatsCollection))
		log.Info("Initialized MongoDB backend", "database", cfg.MongoDatabase)
	}

	var reportCache cache.Cache
	if cfg.RedisAddr != "" {
		client, err := config.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.redis = client
		reportCache = cache.NewRedisCache(client)
	} else {
		reportCache = cache.NewMemoryCache(cfg.ReportCacheTTL, 2*cfg.ReportCacheTTL)
	}

	if withQueue && cfg.AMQPURL != "" {
		client, err := queue.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.queue = client
	}

	a.expenses = services.NewExpenseService(expenseRepo, log)
	a.reports = services.NewReportService(reportRepo, a.expenses, reportCache, cfg.ReportCacheTTL, log)
	a.stats = services.NewStatisticsService(statsRepo, cfg.StatsKeyPrefix, log)
	return a, nil
}

// recordCall counts a call through the queue when one is configured and
// directly against the statistics store otherwise.
func (a *app) recordCall(ctx context.Context, path string) error {
	if a.queue != nil {
		return a.queue.PublishCall(ctx, path)
	}
	_, err := a.stats.RecordCall(ctx, path)
	return err
}

func (a *app) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			a.log.Error("Failed to close AMQP client", "error", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("Failed to close Redis client", "error", err)
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			a.log.Error(fmt.Sprintf("Failed to disconnect MongoDB: %v", err))
		}
	}
}

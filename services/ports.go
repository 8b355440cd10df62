package services

import (
	"context"
	"time"

	"expense-api/models"
)

// Storage ports. Implementations live in repository (MongoDB) and
// repository/memory.
type (
	ExpenseRepository interface {
		Insert(ctx context.Context, e models.Expense) error
		Get(ctx context.Context, userID, id string) (models.Expense, error)
		Find(ctx context.Context, userID string, from, to *time.Time) ([]models.Expense, error)
		Replace(ctx context.Context, e models.Expense) error
		UpdateDescription(ctx context.Context, userID, id, description string) error
		Delete(ctx context.Context, userID, id string) error
		DeleteAll(ctx context.Context, userID string) (int64, error)
	}

	ReportRepository interface {
		Insert(ctx context.Context, r models.Report) error
		Get(ctx context.Context, userID, id string) (models.Report, error)
		ListIDs(ctx context.Context, userID string) ([]string, error)
		Delete(ctx context.Context, userID, id string) error
		DeleteAll(ctx context.Context, userID string) (int64, error)
	}

	StatsRepository interface {
		// Increment adds one call for key, creating the counter with the
		// given endpoint if it does not exist yet.
		Increment(ctx context.Context, key, endpoint string, at time.Time) (models.CallStat, error)
		List(ctx context.Context) ([]models.CallStat, error)
		SetEndpoint(ctx context.Context, key, endpoint string) error
	}
)

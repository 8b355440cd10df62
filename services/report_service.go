package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"expense-api/cache"
	"expense-api/models"
	"expense-api/repository"
)

const reportNotFoundMsg = "Report not found, check if report id is correct"

// ReportService builds report snapshots from the expense store and serves
// them through a read-through cache.
type ReportService struct {
	repo     ReportRepository
	expenses *ExpenseService
	cache    cache.Cache
	cacheTTL time.Duration
	log      *slog.Logger
	now      func() time.Time
}

func NewReportService(repo ReportRepository, expenses *ExpenseService, c cache.Cache, cacheTTL time.Duration, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		repo:     repo,
		expenses: expenses,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      logger.With("component", "report"),
		now:      time.Now,
	}
}

func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Create snapshots the expenses in [dateFrom, dateTo] into a new report.
// dateTo is recorded as today when not supplied.
func (s *ReportService) Create(ctx context.Context, userID string, dateFrom, dateTo *time.Time) (string, error) {
	expenses, err := s.expenses.Query(ctx, userID, dateFrom, dateTo)
	if err != nil {
		return "", err
	}
	if len(expenses) == 0 {
		return "", NewValidationError("No expenses found")
	}

	total, mostExpensive := Summarize(expenses)

	var from *time.Time
	if dateFrom != nil {
		t := StartOfDay(*dateFrom)
		from = &t
	}
	to := StartOfDay(s.now())
	if dateTo != nil {
		to = StartOfDay(*dateTo)
	}

	r := models.Report{
		ID:                 uuid.New().String(),
		UserID:             userID,
		DateFrom:           from,
		DateTo:             &to,
		Expenses:           expenses,
		MostExpensiveItems: mostExpensive,
		TotalPrice:         total,
		CreatedAt:          s.now(),
	}
	if err := s.repo.Insert(ctx, r); err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	s.log.InfoContext(ctx, "report created",
		"user_id", userID, "report_id", r.ID, "expenses", len(expenses), "total_price", total)
	return r.ID, nil
}

// Summarize returns the sum of expense totals and every item priced at the
// maximum item price across all expenses, ties included.
func Summarize(expenses []models.Expense) (float64, []models.Item) {
	var total, maxPrice float64
	for _, e := range expenses {
		total += e.TotalPrice
		for _, item := range e.Items {
			if item.Price >= maxPrice {
				maxPrice = item.Price
			}
		}
	}

	mostExpensive := []models.Item{}
	for _, e := range expenses {
		for _, item := range e.Items {
			if item.Price >= maxPrice {
				mostExpensive = append(mostExpensive, item)
			}
		}
	}
	return total, mostExpensive
}

func (s *ReportService) ListIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.repo.ListIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return ids, nil
}

func (s *ReportService) Get(ctx context.Context, userID, reportID string) (models.Report, error) {
	key := reportCacheKey(userID, reportID)
	if r, ok := s.fromCache(ctx, key); ok {
		r.UserID = userID
		return r, nil
	}

	r, err := s.repo.Get(ctx, userID, reportID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Report{}, NewNotFoundError(reportNotFoundMsg)
	}
	if err != nil {
		return models.Report{}, fmt.Errorf("get report: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(r); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				s.log.WarnContext(ctx, "report cache write failed", "key", key, "error", err)
			}
		}
	}
	return r, nil
}

func (s *ReportService) Delete(ctx context.Context, userID, reportID string) error {
	err := s.repo.Delete(ctx, userID, reportID)
	if errors.Is(err, repository.ErrNotFound) {
		return NewNotFoundError("Report not found, check if report id is correct and user id is correct")
	}
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	s.invalidate(ctx, reportCacheKey(userID, reportID))
	return nil
}

func (s *ReportService) DeleteAll(ctx context.Context, userID string) error {
	ids, err := s.repo.ListIDs(ctx, userID)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	if _, err := s.repo.DeleteAll(ctx, userID); err != nil {
		return fmt.Errorf("delete reports: %w", err)
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, reportCacheKey(userID, id))
	}
	s.invalidate(ctx, keys...)
	s.log.InfoContext(ctx, "reports deleted", "user_id", userID, "count", len(ids))
	return nil
}

func (s *ReportService) fromCache(ctx context.Context, key string) (models.Report, bool) {
	if s.cache == nil {
		return models.Report{}, false
	}
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WarnContext(ctx, "report cache read failed", "key", key, "error", err)
		return models.Report{}, false
	}
	if !ok {
		return models.Report{}, false
	}
	var r models.Report
	if err := json.Unmarshal(data, &r); err != nil {
		s.log.WarnContext(ctx, "report cache entry unreadable", "key", key, "error", err)
		return models.Report{}, false
	}
	return r, true
}

func (s *ReportService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.WarnContext(ctx, "report cache invalidation failed", "keys", keys, "error", err)
	}
}

func reportCacheKey(userID, reportID string) string {
	return "report:" + userID + ":" + reportID
}

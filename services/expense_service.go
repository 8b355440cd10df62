package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"expense-api/models"
	"expense-api/repository"
)

// ExpenseService creates, queries and mutates a user's expenses.
type ExpenseService struct {
	repo ExpenseRepository
	log  *slog.Logger
	now  func() time.Time
}

func NewExpenseService(repo ExpenseRepository, logger *slog.Logger) *ExpenseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpenseService{
		repo: repo,
		log:  logger.With("component", "expense"),
		now:  time.Now,
	}
}

// WithClock replaces the time source. Tests use it to pin timestamps.
func (s *ExpenseService) WithClock(now func() time.Time) *ExpenseService {
	s.now = now
	return s
}

// Create validates the expense, stamps both timestamps and returns the new id.
func (s *ExpenseService) Create(ctx context.Context, userID, description string, items []models.Item) (string, error) {
	if description == "" {
		return "", NewValidationError("Description can not be empty")
	}
	if len(items) == 0 {
		return "", NewValidationError("Items can not be empty")
	}
	normalized := make([]models.Item, 0, len(items))
	for _, item := range items {
		item, err := normalizeItem(item)
		if err != nil {
			return "", err
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		normalized = append(normalized, item)
	}

	now := s.now()
	e := models.Expense{
		ID:          uuid.New().String(),
		UserID:      userID,
		Description: description,
		Items:       normalized,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	e.TotalPrice = e.ComputeTotal()

	if err := s.repo.Insert(ctx, e); err != nil {
		return "", fmt.Errorf("create expense: %w", err)
	}
	s.log.InfoContext(ctx, "expense created",
		"user_id", userID, "expense_id", e.ID, "items", len(e.Items), "total_price", e.TotalPrice)
	return e.ID, nil
}

// Query returns the user's expenses created between the start of dateFrom
// and the end of dateTo, both inclusive. Nil bounds are open.
func (s *ExpenseService) Query(ctx context.Context, userID string, dateFrom, dateTo *time.Time) ([]models.Expense, error) {
	var from, to *time.Time
	if dateFrom != nil {
		t := StartOfDay(*dateFrom)
		from = &t
	}
	if dateTo != nil {
		t := EndOfDay(*dateTo)
		to = &t
	}
	expenses, err := s.repo.Find(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	return expenses, nil
}

// UpdateItem replaces the fields of one item, keeping its id, and
// recomputes the total and the updated timestamp.
func (s *ExpenseService) UpdateItem(ctx context.Context, userID, expenseID, itemID string, item models.Item) error {
	e, err := s.repo.Get(ctx, userID, expenseID)
	if errors.Is(err, repository.ErrNotFound) {
		return NewNotFoundError(fmt.Sprintf("Expense with id %s not found", expenseID))
	}
	if err != nil {
		return fmt.Errorf("load expense: %w", err)
	}

	item, err = normalizeItem(item)
	if err != nil {
		return err
	}

	found := false
	for i := range e.Items {
		if e.Items[i].ID == itemID {
			item.ID = itemID
			e.Items[i] = item
			found = true
			break
		}
	}
	if !found {
		return NewNotFoundError(fmt.Sprintf("Item with id %s not found in expense", itemID))
	}

	e.TotalPrice = e.ComputeTotal()
	e.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFoundError(fmt.Sprintf("Expense with id %s not found", expenseID))
		}
		return fmt.Errorf("save expense: %w", err)
	}
	s.log.InfoContext(ctx, "expense item updated",
		"user_id", userID, "expense_id", expenseID, "item_id", itemID, "total_price", e.TotalPrice)
	return nil
}

// UpdateDescription changes only the description. Total and timestamps are
// left as they are.
func (s *ExpenseService) UpdateDescription(ctx context.Context, userID, expenseID, description string) error {
	if description == "" {
		return NewValidationError("Description can not be empty")
	}
	err := s.repo.UpdateDescription(ctx, userID, expenseID, description)
	if errors.Is(err, repository.ErrNotFound) {
		return NewNotFoundError(fmt.Sprintf("Expense with id %s not found", expenseID))
	}
	if err != nil {
		return fmt.Errorf("update description: %w", err)
	}
	return nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID string) error {
	err := s.repo.Delete(ctx, userID, expenseID)
	if errors.Is(err, repository.ErrNotFound) {
		return NewNotFoundError(fmt.Sprintf("Expense with id %s not found", expenseID))
	}
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.log.InfoContext(ctx, "expense deleted", "user_id", userID, "expense_id", expenseID)
	return nil
}

func (s *ExpenseService) DeleteAll(ctx context.Context, userID string) error {
	n, err := s.repo.DeleteAll(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete expenses: %w", err)
	}
	s.log.InfoContext(ctx, "expenses deleted", "user_id", userID, "count", n)
	return nil
}

// normalizeItem rejects an empty name or a non-positive price and coerces a
// non-positive quantity to 1.
func normalizeItem(item models.Item) (models.Item, error) {
	if item.Name == "" {
		return item, NewValidationError("Item name can not be empty")
	}
	if item.Price <= 0 {
		return item, NewValidationError("Item price must be greater than 0")
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	return item, nil
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Package memory holds in-process stores used when DATA_BACKEND=memory and in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"expense-api/models"
	"expense-api/repository"
)

type ExpenseStore struct {
	mu    sync.Mutex
	items map[string]models.Expense
	order []string
}

func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{items: map[string]models.Expense{}}
}

func (s *ExpenseStore) Insert(_ context.Context, e models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.items[e.ID] = cloneExpense(e)
	return nil
}

func (s *ExpenseStore) Get(_ context.Context, userID, id string) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok || e.UserID != userID {
		return models.Expense{}, repository.ErrNotFound
	}
	return cloneExpense(e), nil
}

func (s *ExpenseStore) Find(_ context.Context, userID string, from, to *time.Time) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Expense{}
	for _, id := range s.order {
		e := s.items[id]
		if e.UserID != userID {
			continue
		}
		if from != nil && e.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && e.CreatedAt.After(*to) {
			continue
		}
		out = append(out, cloneExpense(e))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *ExpenseStore) Replace(_ context.Context, e models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[e.ID]
	if !ok || cur.UserID != e.UserID {
		return repository.ErrNotFound
	}
	s.items[e.ID] = cloneExpense(e)
	return nil
}

func (s *ExpenseStore) UpdateDescription(_ context.Context, userID, id, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	e.Description = description
	s.items[id] = e
	return nil
}

func (s *ExpenseStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	s.remove(id)
	return nil
}

func (s *ExpenseStore) DeleteAll(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range append([]string(nil), s.order...) {
		if s.items[id].UserID == userID {
			s.remove(id)
			n++
		}
	}
	return n, nil
}

func (s *ExpenseStore) remove(id string) {
	delete(s.items, id)
	s.order = removeID(s.order, id)
}

type ReportStore struct {
	mu    sync.Mutex
	items map[string]models.Report
	order []string
}

func NewReportStore() *ReportStore {
	return &ReportStore{items: map[string]models.Report{}}
}

func (s *ReportStore) Insert(_ context.Context, r models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.items[r.ID] = r
	return nil
}

func (s *ReportStore) Get(_ context.Context, userID, id string) (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok || r.UserID != userID {
		return models.Report{}, repository.ErrNotFound
	}
	return r, nil
}

func (s *ReportStore) ListIDs(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := []string{}
	for _, id := range s.order {
		if s.items[id].UserID == userID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *ReportStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok || r.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	s.order = removeID(s.order, id)
	return nil
}

func (s *ReportStore) DeleteAll(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range append([]string(nil), s.order...) {
		if s.items[id].UserID == userID {
			delete(s.items, id)
			s.order = removeID(s.order, id)
			n++
		}
	}
	return n, nil
}

// StatsStore increments under its mutex, so concurrent calls never lose a count.
type StatsStore struct {
	mu    sync.Mutex
	stats map[string]models.CallStat
}

func NewStatsStore() *StatsStore {
	return &StatsStore{stats: map[string]models.CallStat{}}
}

func (s *StatsStore) Increment(_ context.Context, key, endpoint string, at time.Time) (models.CallStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stat, ok := s.stats[key]
	if !ok {
		stat = models.CallStat{Key: key, Endpoint: endpoint}
	}
	stat.Count++
	stat.LastCall = at
	s.stats[key] = stat
	return stat, nil
}

func (s *StatsStore) List(_ context.Context) ([]models.CallStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CallStat, 0, len(s.stats))
	for _, stat := range s.stats {
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *StatsStore) SetEndpoint(_ context.Context, key, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stat, ok := s.stats[key]
	if !ok {
		return repository.ErrNotFound
	}
	stat.Endpoint = endpoint
	s.stats[key] = stat
	return nil
}

// Put stores stat as-is. It lets callers seed documents written by older
// versions of the service.
func (s *StatsStore) Put(stat models.CallStat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[stat.Key] = stat
}

func cloneExpense(e models.Expense) models.Expense {
	e.Items = append([]models.Item(nil), e.Items...)
	return e
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

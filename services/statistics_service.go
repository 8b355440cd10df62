package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// LastCall is the endpoint with the latest recorded call.
type LastCall struct {
	Endpoint string
	Time     time.Time
}

// EndpointCount pairs a canonical endpoint with its call count.
type EndpointCount struct {
	Endpoint string
	Count    int64
}

// StatisticsService records calls per canonical endpoint and answers
// aggregate queries over the whole collection. Queries read a
// non-transactional snapshot.
type StatisticsService struct {
	repo   StatsRepository
	prefix string
	log    *slog.Logger
	now    func() time.Time
}

func NewStatisticsService(repo StatsRepository, keyPrefix string, logger *slog.Logger) *StatisticsService {
	if logger == nil {
		logger = slog.Default()
	}
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &StatisticsService{
		repo:   repo,
		prefix: keyPrefix,
		log:    logger.With("component", "statistics"),
		now:    time.Now,
	}
}

func (s *StatisticsService) WithClock(now func() time.Time) *StatisticsService {
	s.now = now
	return s
}

// RecordCall counts one call to rawPath and returns the storage key it was
// counted under.
func (s *StatisticsService) RecordCall(ctx context.Context, rawPath string) (string, error) {
	return s.RecordCallAt(ctx, rawPath, s.now())
}

// RecordCallAt is RecordCall with an explicit call time, for calls
// delivered late through the queue.
func (s *StatisticsService) RecordCallAt(ctx context.Context, rawPath string, at time.Time) (string, error) {
	endpoint := NormalizeEndpoint(rawPath)
	key := StorageKey(s.prefix, endpoint)
	stat, err := s.repo.Increment(ctx, key, endpoint, at)
	if err != nil {
		return "", fmt.Errorf("record call: %w", err)
	}
	s.log.DebugContext(ctx, "call recorded", "key", key, "count", stat.Count)
	return key, nil
}

func (s *StatisticsService) LastCalled(ctx context.Context) (LastCall, error) {
	stats, err := s.repo.List(ctx)
	if err != nil {
		return LastCall{}, fmt.Errorf("list call stats: %w", err)
	}
	var last LastCall
	for _, stat := range stats {
		if stat.LastCall.IsZero() {
			continue
		}
		if last.Time.IsZero() || stat.LastCall.After(last.Time) {
			last = LastCall{Endpoint: stat.Endpoint, Time: stat.LastCall}
		}
	}
	if last.Endpoint == "" {
		return LastCall{}, ErrNoStatistics
	}
	return last, nil
}

func (s *StatisticsService) MostCalled(ctx context.Context) (EndpointCount, error) {
	stats, err := s.repo.List(ctx)
	if err != nil {
		return EndpointCount{}, fmt.Errorf("list call stats: %w", err)
	}
	var most EndpointCount
	for _, stat := range stats {
		if stat.Count > most.Count {
			most = EndpointCount{Endpoint: stat.Endpoint, Count: stat.Count}
		}
	}
	if most.Endpoint == "" {
		return EndpointCount{}, ErrNoStatistics
	}
	return most, nil
}

// AllStats returns every endpoint ordered by descending count. Ties keep
// scan order.
func (s *StatisticsService) AllStats(ctx context.Context) ([]EndpointCount, error) {
	stats, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list call stats: %w", err)
	}
	if len(stats) == 0 {
		return nil, ErrNoStatistics
	}
	out := make([]EndpointCount, 0, len(stats))
	for _, stat := range stats {
		out = append(out, EndpointCount{Endpoint: stat.Endpoint, Count: stat.Count})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// MigrateEndpoints fills in the endpoint of counters stored without one,
// rebuilding it from the storage key. Per-document failures are logged and
// skipped. It returns the number of documents fixed.
func (s *StatisticsService) MigrateEndpoints(ctx context.Context) int {
	stats, err := s.repo.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "endpoint migration: list failed", "error", err)
		return 0
	}
	fixed := 0
	for _, stat := range stats {
		if stat.Endpoint != "" {
			continue
		}
		endpoint := EndpointFromKey(s.prefix, stat.Key)
		if err := s.repo.SetEndpoint(ctx, stat.Key, endpoint); err != nil {
			s.log.WarnContext(ctx, "endpoint migration: update failed", "key", stat.Key, "error", err)
			continue
		}
		fixed++
	}
	if fixed > 0 {
		s.log.InfoContext(ctx, "endpoint migration finished", "fixed", fixed)
	}
	return fixed
}

package queries

import (
	"context"
	"sync"

	"github.com/learnova/gateway/internal/models"
)

// TabCounts are the support-page tab badges for one student, plus the
// per-thread message counts shown on each row.
type TabCounts struct {
	Open     int            `json:"open"`
	Resolved int            `json:"resolved"`
	Total    int            `json:"total"`
	Messages map[string]int `json:"messages"`
}

// StatsSelector derives TabCounts from the store and memoizes the result per
// student. A cached value is reused until the store's revision changes, so
// repeated dashboard polls do not re-scan threads.
type StatsSelector struct {
	store Store

	mu    sync.Mutex
	cache map[string]statsEntry
}

type statsEntry struct {
	revision uint64
	counts   TabCounts
}

// NewStatsSelector creates a selector over store.
func NewStatsSelector(store Store) *StatsSelector {
	return &StatsSelector{store: store, cache: make(map[string]statsEntry)}
}

// Counts returns the tab counts for studentID, recomputing only when the
// store has changed since the cached value was taken.
func (s *StatsSelector) Counts(ctx context.Context, studentID string) (TabCounts, error) {
	rev := s.store.Revision()

	s.mu.Lock()
	if e, ok := s.cache[studentID]; ok && e.revision == rev {
		s.mu.Unlock()
		return e.counts, nil
	}
	s.mu.Unlock()

	threads, err := s.store.ListByStudent(ctx, studentID)
	if err != nil {
		return TabCounts{}, err
	}

	counts := TabCounts{Messages: make(map[string]int, len(threads))}
	for _, t := range threads {
		switch t.Status {
		case models.QueryStatusResolved:
			counts.Resolved++
		default:
			counts.Open++
		}
		counts.Messages[t.ID.String()] = len(t.Messages)
	}
	counts.Total = counts.Open + counts.Resolved

	s.mu.Lock()
	s.cache[studentID] = statsEntry{revision: rev, counts: counts}
	s.mu.Unlock()
	return counts, nil
}

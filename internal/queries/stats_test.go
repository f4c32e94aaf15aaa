package queries

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnova/gateway/internal/models"
)

// countingStore counts ListByStudent calls so memoization is observable.
type countingStore struct {
	*MemoryStore
	lists int64
}

func (c *countingStore) ListByStudent(ctx context.Context, studentID string) ([]models.QueryThread, error) {
	atomic.AddInt64(&c.lists, 1)
	return c.MemoryStore.ListByStudent(ctx, studentID)
}

func TestStatsCountsTabs(t *testing.T) {
	s := NewMemoryStore()
	th1, err := s.Create(context.Background(), "s1", "First subject", "hello")
	require.NoError(t, err)
	_, err = s.Create(context.Background(), "s1", "Second subject", "hello")
	require.NoError(t, err)
	require.NoError(t, s.Resolve(context.Background(), th1.ID))

	sel := NewStatsSelector(s)
	counts, err := sel.Counts(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, 1, counts.Open)
	assert.Equal(t, 1, counts.Resolved)
	assert.Equal(t, 2, counts.Total)
	assert.Equal(t, 1, counts.Messages[th1.ID.String()])
}

func TestStatsAreMemoizedUntilStoreChanges(t *testing.T) {
	cs := &countingStore{MemoryStore: NewMemoryStore()}
	_, err := cs.Create(context.Background(), "s1", "First subject", "hello")
	require.NoError(t, err)

	sel := NewStatsSelector(cs)

	for i := 0; i < 5; i++ {
		_, err := sel.Counts(context.Background(), "s1")
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&cs.lists), "repeated polls must hit the cache")

	// A mutation invalidates the cached counts.
	_, err = cs.Create(context.Background(), "s1", "Second subject", "hello")
	require.NoError(t, err)

	counts, err := sel.Counts(context.Background(), "s1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&cs.lists))
	assert.Equal(t, 2, counts.Open)
}

func TestStatsMemoizePerStudent(t *testing.T) {
	cs := &countingStore{MemoryStore: NewMemoryStore()}
	_, err := cs.Create(context.Background(), "s1", "First subject", "hello")
	require.NoError(t, err)

	sel := NewStatsSelector(cs)

	_, err = sel.Counts(context.Background(), "s1")
	require.NoError(t, err)
	_, err = sel.Counts(context.Background(), "s2")
	require.NoError(t, err)
	_, err = sel.Counts(context.Background(), "s1")
	require.NoError(t, err)
	_, err = sel.Counts(context.Background(), "s2")
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt64(&cs.lists), "one scan per student")
}

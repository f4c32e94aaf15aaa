package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnova/gateway/internal/models"
)

func page(unread int) *models.NotificationPage {
	return &models.NotificationPage{Notifications: []models.Notification{}, UnreadCount: unread}
}

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache()

	_, ok := c.Get("k")
	assert.False(t, ok)

	gen := c.Begin("k")
	assert.True(t, c.Complete("k", gen, page(3)))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 3, got.UnreadCount)
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	c := NewCache()

	first := c.Begin("k")
	second := c.Begin("k") // a newer refresh starts before the first lands

	assert.True(t, c.Complete("k", second, page(7)))
	assert.False(t, c.Complete("k", first, page(1)), "stale response must not apply")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 7, got.UnreadCount, "newer state must survive the stale completion")
}

func TestCompletionOrderDoesNotMatterForStaleness(t *testing.T) {
	c := NewCache()

	first := c.Begin("k")
	second := c.Begin("k")

	// The stale refresh lands first; the newer one still wins.
	assert.False(t, c.Complete("k", first, page(1)))
	assert.True(t, c.Complete("k", second, page(2)))

	got, _ := c.Get("k")
	assert.Equal(t, 2, got.UnreadCount)
}

func TestInvalidateDropsPage(t *testing.T) {
	c := NewCache()
	gen := c.Begin("k")
	c.Complete("k", gen, page(1))

	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestKeysAreIndependent(t *testing.T) {
	c := NewCache()
	g1 := c.Begin("a")
	g2 := c.Begin("b")
	assert.True(t, c.Complete("a", g1, page(1)))
	assert.True(t, c.Complete("b", g2, page(2)))
}

package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnova/gateway/internal/upstream"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Free", FormatPrice(nil))
	assert.Equal(t, "Free", FormatPrice(floatPtr(0)))
	assert.Equal(t, "$12.5", FormatPrice(floatPtr(12.5)))
	assert.Equal(t, "$49", FormatPrice(floatPtr(49)))
	assert.Equal(t, "$199.99", FormatPrice(floatPtr(199.99)))
}

func TestEventBadge(t *testing.T) {
	m := newTestMapper()

	ongoing := m.Event(upstream.RawEvent{ID: "e1", Status: strPtr("ongoing")})
	assert.Nil(t, ongoing.Badge)

	completed := m.Event(upstream.RawEvent{ID: "e2", Status: strPtr("completed")})
	assert.Nil(t, completed.Badge)

	upcoming := m.Event(upstream.RawEvent{ID: "e3", Status: strPtr("upcoming")})
	require.NotNil(t, upcoming.Badge)
	assert.Equal(t, "upcoming", *upcoming.Badge)

	cancelled := m.Event(upstream.RawEvent{ID: "e4", Status: strPtr("cancelled")})
	require.NotNil(t, cancelled.Badge)
	assert.Equal(t, "cancelled", *cancelled.Badge)
}

func TestEventsFilterDraftsPreservingOrder(t *testing.T) {
	m := newTestMapper()
	raws := []upstream.RawEvent{
		{ID: "a", Status: strPtr("ongoing")},
		{ID: "b", Status: strPtr("draft")},
		{ID: "c", Status: strPtr("upcoming")},
		{ID: "d", Status: strPtr("draft")},
		{ID: "e", Status: strPtr("completed")},
	}

	views := m.Events(raws)

	require.Len(t, views, 3)
	assert.Equal(t, "a", views[0].ID)
	assert.Equal(t, "c", views[1].ID)
	assert.Equal(t, "e", views[2].ID)
	for _, v := range views {
		assert.NotEqual(t, "draft", v.Status)
	}
}

func TestEventDefaults(t *testing.T) {
	m := newTestMapper()

	v := m.Event(upstream.RawEvent{ID: "e9"})

	assert.Equal(t, "e9", v.Slug)
	assert.Equal(t, "Untitled Event", v.Title)
	assert.Equal(t, "Online", v.Location)
	assert.Equal(t, "Free", v.DisplayPrice)
	assert.Equal(t, float64(0), v.Cost)
	assert.Nil(t, v.Badge)
}

func TestEventNoMissingJSONFields(t *testing.T) {
	m := newTestMapper()

	data, err := json.Marshal(m.Event(upstream.RawEvent{ID: "e1"}))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))

	// badge is deliberately nullable; everything else must be defined.
	for _, key := range []string{
		"id", "slug", "title", "description", "startDate", "endDate",
		"startTime", "endTime", "location", "image", "cost", "costInr",
		"displayPrice", "attendees", "maxAttendees", "status",
	} {
		val, ok := got[key]
		require.True(t, ok, "field %q missing from JSON", key)
		assert.NotNil(t, val, "field %q is null", key)
	}
}

func TestProgramDefaults(t *testing.T) {
	m := newTestMapper()

	v := m.Program(upstream.RawProgram{ID: "p1", Courses: []string{"c1", "c2"}})

	assert.Equal(t, "Untitled Program", v.Title)
	assert.Equal(t, DefaultLevel, v.Level)
	assert.Equal(t, 2, v.CourseCount)
	assert.Equal(t, DefaultImage, v.Image)
}

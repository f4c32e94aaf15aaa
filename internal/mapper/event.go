package mapper

import (
	"strconv"

	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/internal/upstream"
)

// FreePrice is the display price for events with no or zero cost.
const FreePrice = "Free"

// Event maps a raw event record into an EventView.
func (m *Mapper) Event(raw upstream.RawEvent) models.EventView {
	status := strOr(raw.Status, "")
	return models.EventView{
		ID:           raw.ID,
		Slug:         strOr(raw.Slug, raw.ID),
		Title:        strOr(raw.Title, "Untitled Event"),
		Description:  strOr(raw.Description, ""),
		StartDate:    strOr(raw.StartDate, ""),
		EndDate:      strOr(raw.EndDate, ""),
		StartTime:    strOr(raw.StartTime, ""),
		EndTime:      strOr(raw.EndTime, ""),
		Location:     eventLocation(raw.Location),
		Image:        m.images.Resolve(strOr(raw.Image, "")),
		Cost:         floatOr(raw.Cost, 0),
		CostINR:      floatOr(raw.CostINR, 0),
		DisplayPrice: FormatPrice(raw.Cost),
		Attendees:    intOr(raw.Attendees, 0),
		MaxAttendees: intOr(raw.MaxAttendees, 0),
		Status:       status,
		Badge:        eventBadge(status),
	}
}

// Events filters out draft events and maps the remainder, preserving the
// original relative order. The filter runs before mapping.
func (m *Mapper) Events(raws []upstream.RawEvent) []models.EventView {
	visible := FilterDrafts(raws)
	out := make([]models.EventView, 0, len(visible))
	for _, raw := range visible {
		out = append(out, m.Event(raw))
	}
	return out
}

// FilterDrafts removes draft-status events from a raw list, keeping order.
func FilterDrafts(raws []upstream.RawEvent) []upstream.RawEvent {
	out := make([]upstream.RawEvent, 0, len(raws))
	for _, raw := range raws {
		if strOr(raw.Status, "") == models.EventStatusDraft {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// FormatPrice renders an event cost for display: absent or zero cost is the
// literal "Free", anything else is "$" plus the bare number (12.5 → "$12.5").
func FormatPrice(cost *float64) string {
	if cost == nil || *cost == 0 {
		return FreePrice
	}
	return "$" + strconv.FormatFloat(*cost, 'f', -1, 64)
}

// eventBadge is nil for ongoing/completed events and the raw status string
// otherwise, so states like "upcoming" or "cancelled" surface as a badge.
func eventBadge(status string) *string {
	switch status {
	case "", models.EventStatusOngoing, models.EventStatusCompleted:
		return nil
	}
	s := status
	return &s
}

func eventLocation(loc *string) string {
	return strOr(loc, "Online")
}

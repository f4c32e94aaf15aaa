package queries

import (
	"time"

	"github.com/google/uuid"

	"github.com/learnova/gateway/internal/models"
)

// DemoStudentID owns the seeded demo threads.
const DemoStudentID = "demo-student"

// DemoThreads returns the static demo dataset used until the backend grows
// a real queries API. Timestamps are anchored to now so ordering is stable.
func DemoThreads(now time.Time) []models.QueryThread {
	mk := func(offset time.Duration, subject, status string, msgs ...models.QueryMessage) models.QueryThread {
		created := now.Add(-offset)
		updated := created
		if n := len(msgs); n > 0 {
			updated = msgs[n-1].SentAt
		}
		return models.QueryThread{
			ID:        uuid.New(),
			StudentID: DemoStudentID,
			Subject:   subject,
			Status:    status,
			Messages:  msgs,
			CreatedAt: created,
			UpdatedAt: updated,
		}
	}
	msg := func(offset time.Duration, sender, content string) models.QueryMessage {
		return models.QueryMessage{
			ID:      uuid.New(),
			Sender:  sender,
			Content: content,
			SentAt:  now.Add(-offset),
		}
	}

	return []models.QueryThread{
		mk(72*time.Hour, "Certificate not issued after course completion", models.QueryStatusOpen,
			msg(72*time.Hour, models.SenderStudent, "I finished the UX Design course last week but my certificate still shows as pending."),
			msg(70*time.Hour, models.SenderSupport, "Thanks for reaching out. Certificates are generated within 5 business days; we'll follow up."),
			msg(24*time.Hour, models.SenderStudent, "It has been more than five days now, any update?"),
		),
		mk(120*time.Hour, "Payment charged twice for Data Science program", models.QueryStatusOpen,
			msg(120*time.Hour, models.SenderStudent, "My card statement shows two charges for the same enrollment."),
			msg(118*time.Hour, models.SenderSupport, "We can see the duplicate authorization; the second one will be voided automatically."),
		),
		mk(240*time.Hour, "Cannot join the live workshop session", models.QueryStatusResolved,
			msg(240*time.Hour, models.SenderStudent, "The join button on the workshop page does nothing."),
			msg(238*time.Hour, models.SenderSupport, "A fix was deployed, please refresh the page and try again."),
			msg(236*time.Hour, models.SenderStudent, "Works now, thank you!"),
		),
	}
}

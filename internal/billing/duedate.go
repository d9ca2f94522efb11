// Package billing holds the pure due-date arithmetic behind enrollment,
// renewal and the billing radar. No persistence, no clocks: callers pass
// "today" in.
package billing

import (
	"math"

	"github.com/dmelo/academia-app/i18n"
	"github.com/dmelo/academia-app/internal/models"
)

// DueSoonWindowDays is the alert window of the billing radar: students due
// within this many days (or already overdue) are surfaced for outreach.
const DueSoonWindowDays = 3

type Kind string

const (
	Overdue  Kind = "overdue"
	DueToday Kind = "due_today"
	DueSoon  Kind = "due_soon"
	NotDue   Kind = "not_due"
)

// Classification places a due date relative to today.
// DaysDelta is negative for overdue students.
type Classification struct {
	Kind      Kind `json:"kind"`
	DaysDelta int  `json:"daysDelta"`
}

// NextDueDate returns base plus the plan duration in calendar days.
func NextDueDate(base models.Date, durationDays int) models.Date {
	return base.AddDays(durationDays)
}

// Classify is total over all date pairs. Both endpoints are already
// midnight-normalized dates; the day count is still rounded up so a partial
// day can never slip out of the window boundary.
func Classify(due, today models.Date) Classification {
	delta := int(math.Ceil(due.Sub(today.Time).Hours() / 24))
	c := Classification{DaysDelta: delta}
	switch {
	case delta < 0:
		c.Kind = Overdue
	case delta == 0:
		c.Kind = DueToday
	case delta <= DueSoonWindowDays:
		c.Kind = DueSoon
	default:
		c.Kind = NotDue
	}
	return c
}

// Label renders the radar badge text ("Vencido há 5 dias", "Vence Hoje", ...).
func Label(c Classification, lang string) string {
	switch c.Kind {
	case Overdue:
		return i18n.Tf(lang, "radar.overdue", -c.DaysDelta)
	case DueToday:
		return i18n.T(lang, "radar.due_today")
	default:
		return i18n.Tf(lang, "radar.due_in", c.DaysDelta)
	}
}

// ReminderMessage builds the outreach text sent over WhatsApp.
func ReminderMessage(name string, due models.Date, c Classification, lang string) string {
	var prefix string
	switch c.Kind {
	case Overdue:
		prefix = i18n.Tf(lang, "reminder.overdue", due.BR())
	case DueToday:
		prefix = i18n.T(lang, "reminder.due_today")
	default:
		prefix = i18n.Tf(lang, "reminder.due_in", c.DaysDelta, due.BR())
	}
	return i18n.Tf(lang, "reminder.greeting", name, prefix)
}

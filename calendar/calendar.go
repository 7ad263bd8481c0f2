// Package calendar reads upcoming events from the organization's external
// calendar and records RSVPs on them. Nothing is stored locally; the
// attendee list is whatever the calendar service last accepted.
package calendar

import (
	"context"
	"strings"
	"time"
)

// MaxUpcoming caps how many events Upcoming returns.
const MaxUpcoming = 100

type Event struct {
	ID        string
	Name      string
	Start     time.Time
	AllDay    bool
	Location  string
	Attendees []string
}

// IsAttending reports whether email is on the event's attendee list.
func (e Event) IsAttending(email string) bool {
	for _, a := range e.Attendees {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}

type Client interface {
	// Upcoming returns future events ordered by start time.
	Upcoming(ctx context.Context) ([]Event, error)
	// SetAttendance adds email to, or removes it from, the event's attendees.
	SetAttendance(ctx context.Context, eventID, email string, attending bool) error
}

// UpdateAttendees returns the list with email added or removed and whether
// anything changed.
func UpdateAttendees(current []string, email string, attending bool) ([]string, bool) {
	out := make([]string, 0, len(current)+1)
	found := false
	for _, a := range current {
		if strings.EqualFold(a, email) {
			found = true
			if !attending {
				continue
			}
		}
		out = append(out, a)
	}
	if attending && !found {
		out = append(out, email)
	}
	return out, found != attending
}

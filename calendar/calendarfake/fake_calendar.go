package calendarfake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jrsteele09/diplomats-site/calendar"
	"github.com/jrsteele09/diplomats-site/internal/errors"
)

var _ calendar.Client = (*Calendar)(nil)

// Calendar is an in-memory calendar.Client.
type Calendar struct {
	lock   sync.RWMutex
	events map[string]calendar.Event
	// Err, when set, is returned by every call.
	Err error
}

func New(events ...calendar.Event) *Calendar {
	c := &Calendar{events: make(map[string]calendar.Event)}
	for _, e := range events {
		c.events[e.ID] = e
	}
	return c
}

// Demo returns a calendar with a few events starting after now, for mock mode.
func Demo(now time.Time) *Calendar {
	day := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	return New(
		calendar.Event{ID: "evt-open-house", Name: "Open House", Start: day.Add(34 * time.Hour), Location: "Engineering Hall 1800"},
		calendar.Event{ID: "evt-campus-tour", Name: "Campus Tour", Start: day.Add(3*24*time.Hour + 14*time.Hour), Location: "Union South"},
		calendar.Event{ID: "evt-general-meeting", Name: "General Meeting", Start: day.Add(7*24*time.Hour + 18*time.Hour), Location: "Mechanical Engineering 1152"},
	)
}

func (c *Calendar) Upcoming(context.Context) ([]calendar.Event, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.Err != nil {
		return nil, c.Err
	}
	out := make([]calendar.Event, 0, len(c.events))
	for _, e := range c.events {
		e.Attendees = append([]string(nil), e.Attendees...)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	if len(out) > calendar.MaxUpcoming {
		out = out[:calendar.MaxUpcoming]
	}
	return out, nil
}

func (c *Calendar) SetAttendance(_ context.Context, eventID, email string, attending bool) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.Err != nil {
		return c.Err
	}
	e, ok := c.events[eventID]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "event %s", eventID)
	}
	e.Attendees, _ = calendar.UpdateAttendees(e.Attendees, email, attending)
	c.events[eventID] = e
	return nil
}

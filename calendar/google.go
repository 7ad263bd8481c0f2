package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/diplomats-site/internal/config"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Google talks to the Google Calendar v3 API.
type Google struct {
	svc        *gcal.Service
	calendarID string
	now        func() time.Time
}

var _ Client = (*Google)(nil)

// NewGoogle authenticates with the credentials file named by GOOGLE_CREDS.
func NewGoogle(ctx context.Context, cfg config.CalendarConfig) (*Google, error) {
	if cfg.GetGoogleCredentialsFile() == "" {
		return nil, errors.Wrapf(errors.ErrNotConfigured, "google calendar credentials")
	}
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(cfg.GetGoogleCredentialsFile()),
		option.WithScopes(gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return NewGoogleWithService(svc, cfg.GetCalendarID()), nil
}

func NewGoogleWithService(svc *gcal.Service, calendarID string) *Google {
	return &Google{svc: svc, calendarID: calendarID, now: time.Now}
}

func (g *Google) Upcoming(ctx context.Context) ([]Event, error) {
	res, err := g.svc.Events.List(g.calendarID).
		TimeMin(g.now().UTC().Format(time.RFC3339)).
		MaxResults(MaxUpcoming).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Mark(fmt.Errorf("listing events: %w", err), errors.ErrStoreUnavailable)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, fromGoogle(item))
	}
	return events, nil
}

func (g *Google) SetAttendance(ctx context.Context, eventID, email string, attending bool) error {
	current, err := g.svc.Events.Get(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 404 {
			return errors.Wrapf(errors.ErrNotFound, "event %s", eventID)
		}
		return errors.Mark(fmt.Errorf("getting event %s: %w", eventID, err), errors.ErrStoreUnavailable)
	}

	emails := make([]string, 0, len(current.Attendees))
	for _, a := range current.Attendees {
		emails = append(emails, a.Email)
	}
	updated, changed := UpdateAttendees(emails, email, attending)
	if !changed {
		return nil
	}

	patch := &gcal.Event{ForceSendFields: []string{"Attendees"}}
	for _, a := range current.Attendees {
		if contains(updated, a.Email) {
			patch.Attendees = append(patch.Attendees, a)
		}
	}
	if attending {
		patch.Attendees = append(patch.Attendees, &gcal.EventAttendee{Email: email, ResponseStatus: "accepted"})
	}

	if _, err := g.svc.Events.Patch(g.calendarID, eventID, patch).SendUpdates("none").Context(ctx).Do(); err != nil {
		return errors.Mark(fmt.Errorf("patching event %s: %w", eventID, err), errors.ErrStoreUnavailable)
	}
	return nil
}

func contains(list []string, email string) bool {
	return Event{Attendees: list}.IsAttending(email)
}

func fromGoogle(item *gcal.Event) Event {
	e := Event{
		ID:       item.Id,
		Name:     item.Summary,
		Location: item.Location,
	}
	if item.Start != nil {
		if item.Start.DateTime != "" {
			e.Start, _ = time.Parse(time.RFC3339, item.Start.DateTime)
		} else if item.Start.Date != "" {
			e.Start, _ = time.Parse(time.DateOnly, item.Start.Date)
			e.AllDay = true
		}
	}
	for _, a := range item.Attendees {
		if a.Email != "" {
			e.Attendees = append(e.Attendees, a.Email)
		}
	}
	return e
}

package server

import (
	"net/http"

	"github.com/jrsteele09/diplomats-site/calendar"
	"github.com/jrsteele09/diplomats-site/internal/config"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/sessions"
	"github.com/rs/zerolog/log"
)

const (
	msgRSVPNeedsEmail   = "Please enter your email to RSVP."
	msgRSVPInvalid      = "Please choose an event and enter a valid email."
	msgRSVPUnknownEvent = "That event is no longer on the calendar."
	msgRSVPFailed       = "We couldn't update your RSVP. Please try again."
	msgRSVPAdded        = "You're on the list. See you there!"
	msgRSVPRemoved      = "Your RSVP was removed."
	msgLoginToCancel    = "Please login to cancel an RSVP."
)

// EventsPageData backs events.html.
type EventsPageData struct {
	Events      []calendar.Event
	Unavailable bool
	CanRSVP     bool
	NeedsEmail  bool
	Email       string
}

// EventsPageHandler always renders, whoever is asking.
func (s *Server) EventsPageHandler() PageHandler {
	return func(r *http.Request, sess *sessions.Session) (Result, error) {
		denied, _ := s.rsvpDenial(sess)
		data := EventsPageData{
			CanRSVP:    denied == "",
			NeedsEmail: !sess.IsAuthorized(),
		}
		if sess.IsAuthorized() {
			data.Email = sess.Principal.Email
		}

		events, err := s.calendar.Upcoming(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to load calendar events")
			data.Unavailable = true
		}
		data.Events = events
		return Render{Template: "events.html", Data: data}, nil
	}
}

// RSVPSubmissionHandler adds or removes the visitor on an event. Who may
// do so is set by RSVP_ACCESS. Removing an attendee needs a signed in visitor.
func (s *Server) RSVPSubmissionHandler() PageHandler {
	return func(r *http.Request, sess *sessions.Session) (Result, error) {
		if location, msg := s.rsvpDenial(sess); location != "" {
			sess.Flash(msg)
			return Redirect{Location: location}, nil
		}
		if err := r.ParseForm(); err != nil {
			return ClientError{Code: http.StatusBadRequest}, nil
		}
		form := parseRSVPForm(r)
		if sess.IsAuthorized() {
			form.Email = sess.Principal.Email
		} else if !form.Attending {
			// Anonymous visitors can only add themselves; the email is unverified.
			sess.Flash(msgLoginToCancel)
			return Redirect{Location: RouteLogin}, nil
		}
		if form.Email == "" {
			sess.Flash(msgRSVPNeedsEmail)
			return Redirect{Location: RouteEvents}, nil
		}
		if err := s.validateForm(form); err != nil {
			sess.Flash(msgRSVPInvalid)
			return Redirect{Location: RouteEvents}, nil
		}

		err := s.calendar.SetAttendance(r.Context(), form.EventID, form.Email, form.Attending)
		switch {
		case errors.Is(err, errors.ErrNotFound):
			sess.Flash(msgRSVPUnknownEvent)
		case err != nil:
			log.Err(err).Str("event_id", form.EventID).Msg("Failed to update RSVP")
			sess.Flash(msgRSVPFailed)
		case form.Attending:
			sess.Flash(msgRSVPAdded)
		default:
			sess.Flash(msgRSVPRemoved)
		}
		return Redirect{Location: RouteEvents}, nil
	}
}

// rsvpDenial says where to send a visitor who may not RSVP and what to
// tell them. An empty location means the visitor may RSVP.
func (s *Server) rsvpDenial(sess *sessions.Session) (location, msg string) {
	switch s.config.GetRSVPAccess() {
	case config.RSVPPublic:
		return "", ""
	case config.RSVPAuthenticated:
		if !sess.IsAuthorized() {
			return RouteLogin, msgLoginToRSVP
		}
		return "", ""
	default:
		if !sess.IsAuthorized() {
			return RouteLogin, msgLoginToRSVP
		}
		if !sess.IsMember() {
			return RouteIndex, msgRSVPMembersOnly
		}
		return "", ""
	}
}

package server

import (
	"net/http"

	"github.com/jrsteele09/diplomats-site/sessions"
	"github.com/rs/zerolog/log"
)

// sessionCookieName is the cookie carrying the signed visitor session.
const sessionCookieName = "diplomats_session"

// Flash messages shown to visitors.
const (
	msgAlreadyLoggedIn      = "You are already logged in."
	msgLoginFailed          = "We couldn't sign you in. Please try again."
	msgLoggedOut            = "Successfully logged out."
	msgNotLoggedIn          = "You were not logged in."
	msgLoginFirst           = "Please login first."
	msgLoginToAsk           = "Please login to ask questions."
	msgLoginToRSVP          = "Please login to RSVP."
	msgQuestionsMembersOnly = "Only Engineering Diplomats may view the list of questions."
	msgPointsMembersOnly    = "Only Engineering Diplomats have points."
	msgRSVPMembersOnly      = "Only Engineering Diplomats may RSVP."
)

// loadSession decodes the session cookie. A missing, expired or forged
// cookie yields a fresh anonymous session.
func (s *Server) loadSession(r *http.Request) (*sessions.Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return sessions.New(), false
	}
	sess, err := s.sessions.Decode(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("discarding invalid session cookie")
		return sessions.New(), true
	}
	return sess, true
}

// saveSession writes the session back. An empty session removes the
// cookie, or sets nothing if the visitor never had one.
func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, sess *sessions.Session, hadCookie bool) {
	if isEmpty(sess) {
		if hadCookie {
			s.SetSessionCookie(w, r, "", -1)
		}
		return
	}
	token, err := s.sessions.Encode(sess)
	if err != nil {
		log.Err(err).Msg("Failed to encode session")
		return
	}
	s.SetSessionCookie(w, r, token, int(s.sessions.MaxAge().Seconds()))
}

func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, value string, maxAge int) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func isEmpty(sess *sessions.Session) bool {
	return sess.OAuthState == "" && sess.TokenDigest == "" && sess.Principal == nil && len(sess.Flashes) == 0
}

// requireLogin redirects anonymous visitors to the login page with msg.
func (s *Server) requireLogin(msg string, next PageHandler) PageHandler {
	return func(r *http.Request, sess *sessions.Session) (Result, error) {
		if !sess.IsAuthorized() {
			sess.Flash(msg)
			return Redirect{Location: RouteLogin}, nil
		}
		return next(r, sess)
	}
}

// requireMember additionally sends signed in non-members home with msg.
func (s *Server) requireMember(msg string, next PageHandler) PageHandler {
	return s.requireLogin(msgLoginFirst, func(r *http.Request, sess *sessions.Session) (Result, error) {
		if !sess.IsMember() {
			sess.Flash(msg)
			return Redirect{Location: RouteIndex}, nil
		}
		return next(r, sess)
	})
}

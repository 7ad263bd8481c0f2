package server

import (
	"net/http"

	"github.com/jrsteele09/diplomats-site/sessions"
)

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() PageHandler {
	return func(_ *http.Request, sess *sessions.Session) (Result, error) {
		if sess.IsAuthorized() {
			sess.Flash(msgAlreadyLoggedIn)
			return Redirect{Location: RouteIndex}, nil
		}
		return Render{Template: "login.html"}, nil
	}
}

// LoginSubmissionHandler starts the OAuth flow (POST /login)
func (s *Server) LoginSubmissionHandler() PageHandler {
	return func(_ *http.Request, sess *sessions.Session) (Result, error) {
		res, err := s.auth.BeginLogin(sess)
		if err != nil {
			return nil, err
		}
		if res.AlreadyLoggedIn {
			sess.Flash(msgAlreadyLoggedIn)
			return Redirect{Location: RouteIndex}, nil
		}
		return Redirect{Location: res.RedirectURL}, nil
	}
}

// LogoutHandler clears the session. It is safe to call repeatedly.
func (s *Server) LogoutHandler() PageHandler {
	return func(_ *http.Request, sess *sessions.Session) (Result, error) {
		if s.auth.Logout(sess) {
			sess.Flash(msgLoggedOut)
		} else {
			sess.Flash(msgNotLoggedIn)
		}
		return Redirect{Location: RouteIndex}, nil
	}
}

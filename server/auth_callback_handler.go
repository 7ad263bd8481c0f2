package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/diplomats-site/auth"
	"github.com/jrsteele09/diplomats-site/sessions"
)

// OAuthCallbackHandler completes the login started by POST /login. A
// missing or mismatched state is answered with 404.
func (s *Server) OAuthCallbackHandler() PageHandler {
	return func(r *http.Request, sess *sessions.Session) (Result, error) {
		res, err := s.auth.CompleteLogin(r.Context(), sess, r.URL.Query())
		if err != nil {
			return nil, err
		}
		if res.AlreadyLoggedIn {
			sess.Flash(msgAlreadyLoggedIn)
			return Redirect{Location: RouteIndex}, nil
		}
		sess.Flash(fmt.Sprintf("Successfully logged in. Hello %s.", auth.Greeting(res.Principal.DisplayName)))
		return Redirect{Location: RouteIndex}, nil
	}
}

package server

import (
	"net/http"

	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/members"
	"github.com/jrsteele09/diplomats-site/sessions"
)

// PointsPageHandler shows the signed in member's point record. Members
// without a record yet see zero points.
func (s *Server) PointsPageHandler() PageHandler {
	return func(r *http.Request, sess *sessions.Session) (Result, error) {
		p, err := s.repos.Members.Points(r.Context(), sess.Principal.Email)
		if errors.Is(err, errors.ErrNotFound) {
			p, err = members.Points{Email: sess.Principal.Email}, nil
		}
		if err != nil {
			return nil, errors.Mark(err, errors.ErrStoreUnavailable)
		}
		return Render{Template: "points.html", Data: p}, nil
	}
}

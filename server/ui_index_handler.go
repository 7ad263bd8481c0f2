package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/diplomats-site/internal/buildinfo"
	"github.com/jrsteele09/diplomats-site/sessions"
	"github.com/rs/zerolog/log"
)

// IndexHandler renders the home page
func (s *Server) IndexHandler() PageHandler {
	return func(*http.Request, *sessions.Session) (Result, error) {
		return Render{Template: "index.html"}, nil
	}
}

func (s *Server) ResourcesHandler() PageHandler {
	return func(*http.Request, *sessions.Session) (Result, error) {
		return Render{Template: "resources.html"}, nil
	}
}

func (s *Server) FundraisersHandler() PageHandler {
	return func(r *http.Request, _ *sessions.Session) (Result, error) {
		list, err := s.repos.Fundraisers.List(r.Context())
		if err != nil {
			return nil, err
		}
		return Render{Template: "fundraisers.html", Data: list}, nil
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	buildinfo.Info
	Mock bool `json:"mock"`
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := HealthResponse{
			Info: buildinfo.Get(s.config.GetAppName()),
			Mock: s.config.GetMock(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Err(err).Msg("Failed to write health response")
		}
	}
}

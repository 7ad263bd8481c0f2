package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex, s.page(s.IndexHandler()))
	s.RegisterRouteHandler("GET "+RouteResources, s.page(s.ResourcesHandler()))
	s.RegisterRouteHandler("GET "+RouteFundraisers, s.page(s.FundraisersHandler()))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, s.page(s.LoginPageHandler()))
	s.RegisterRouteHandler("POST "+RouteLogin, s.page(s.LoginSubmissionHandler()))
	s.RegisterRouteHandler("GET "+RouteAuthorize, s.page(s.OAuthCallbackHandler()))
	s.RegisterRouteHandler("GET "+RouteLogout, s.page(s.LogoutHandler()))

	// Questions
	s.RegisterRouteHandler("GET "+RouteAsk, s.page(s.requireLogin(msgLoginToAsk, s.AskPageHandler())))
	s.RegisterRouteHandler("POST "+RouteAsk, s.page(s.requireLogin(msgLoginToAsk, s.AskSubmissionHandler())))
	s.RegisterRouteHandler("GET "+RouteQuestions, s.page(s.requireMember(msgQuestionsMembersOnly, s.QuestionsPageHandler())))
	s.RegisterRouteHandler("POST "+RouteQuestions, s.page(s.requireMember(msgQuestionsMembersOnly, s.AnswerSubmissionHandler())))

	// Events
	s.RegisterRouteHandler("GET "+RouteEvents, s.page(s.EventsPageHandler()))
	s.RegisterRouteHandler("POST "+RouteEvents, s.page(s.RSVPSubmissionHandler()))

	s.RegisterRouteHandler("GET "+RoutePoints, s.page(s.requireMember(msgPointsMembersOnly, s.PointsPageHandler())))

	// Operational
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.CacheMiddleware))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.CacheMiddleware))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/static"), "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		if !s.assets.serve(w, r, filePath) {
			log.Debug().Str("path", filePath).Msg("static file not found")
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/diplomats-site/auth"
	"github.com/jrsteele09/diplomats-site/calendar"
	"github.com/jrsteele09/diplomats-site/fundraisers"
	"github.com/jrsteele09/diplomats-site/identity"
	"github.com/jrsteele09/diplomats-site/internal/config"
	"github.com/jrsteele09/diplomats-site/internal/metrics"
	"github.com/jrsteele09/diplomats-site/members"
	"github.com/jrsteele09/diplomats-site/notify"
	"github.com/jrsteele09/diplomats-site/questions"
	"github.com/jrsteele09/diplomats-site/sessions"
	"github.com/jrsteele09/diplomats-site/tasks"
	"github.com/rs/zerolog/log"
)

// Repos holds all repository dependencies for the site.
type Repos struct {
	Members     members.Repo
	Questions   questions.Repo
	Fundraisers fundraisers.Repo
}

// Deps are the collaborators the server composes. Captcha is optional.
type Deps struct {
	Repos      Repos
	Provider   identity.Provider
	Sessions   *sessions.Codec
	Tasks      tasks.Runner
	Dispatcher *notify.Dispatcher
	Calendar   calendar.Client
	Metrics    *metrics.Metrics
	Captcha    CaptchaVerifier
}

type Server struct {
	env        string
	router     *chi.Mux
	routes     []string
	config     config.Config
	auth       *auth.AuthorizationService
	repos      Repos
	sessions   *sessions.Codec
	tasks      tasks.Runner
	dispatcher *notify.Dispatcher
	calendar   calendar.Client
	metrics    *metrics.Metrics
	captcha    CaptchaVerifier
	validate   *validator.Validate
	pages      map[string]*template.Template
	assets     assetCatalog
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Repos.Members == nil || deps.Repos.Questions == nil || deps.Repos.Fundraisers == nil {
		return nil, fmt.Errorf("[Server New] members, questions and fundraisers repos are required")
	}
	if deps.Sessions == nil || deps.Tasks == nil || deps.Dispatcher == nil || deps.Calendar == nil {
		return nil, fmt.Errorf("[Server New] sessions, tasks, dispatcher and calendar are required")
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	authService, err := auth.NewAuthorizationService(deps.Provider, auth.Repos{Members: deps.Repos.Members},
		auth.WithLoginRecorder(deps.Metrics))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create authorization service: %w", err)
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	assets, err := embeddedAssets()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to load static assets: %w", err)
	}

	s := &Server{
		env:        cfg.GetEnv(),
		router:     chi.NewRouter(),
		assets:     assets,
		config:     cfg,
		auth:       authService,
		repos:      deps.Repos,
		sessions:   deps.Sessions,
		tasks:      deps.Tasks,
		dispatcher: deps.Dispatcher,
		calendar:   deps.Calendar,
		metrics:    deps.Metrics,
		captcha:    deps.Captcha,
		validate:   newValidator(),
		pages:      pages,
	}

	s.router.Use(s.HTMLMiddleWare()...)
	s.router.NotFound(s.page(s.notFoundHandler()).ServeHTTP)
	s.router.MethodNotAllowed(s.page(s.clientErrorHandler(http.StatusMethodNotAllowed)).ServeHTTP)

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RegisterRouteHandler registers handler for a "METHOD /path" pattern.
func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	method, path, ok := strings.Cut(pattern, " ")
	if !ok {
		method, path = "", pattern
	}
	s.routes = append(s.routes, pattern)
	if method == "" {
		s.router.Handle(path, handler)
		return
	}
	s.router.Method(method, path, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.RegisterRouteHandler(pattern, http.HandlerFunc(handler))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Debug().Msgf("[%-19s] %s", methodLabel(method), path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

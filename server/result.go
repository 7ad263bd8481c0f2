package server

import (
	"bytes"
	"net/http"

	"github.com/jrsteele09/diplomats-site/internal/config"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/sessions"
	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// Result is what a page handler asks the server to send back: a rendered
// page, a redirect, or a bare client error.
type Result interface {
	isResult()
}

// Render executes a page template. Status defaults to 200.
type Render struct {
	Template string
	Data     any
	Status   int
}

// Redirect sends a 302 to Location.
type Redirect struct {
	Location string
}

// ClientError renders the error page with Code.
type ClientError struct {
	Code int
}

func (Render) isResult()      {}
func (Redirect) isResult()    {}
func (ClientError) isResult() {}

// PageHandler handles one request against the visitor's session. Any
// change it makes to the session is written back before the response.
type PageHandler func(r *http.Request, sess *sessions.Session) (Result, error)

// PageData is handed to every template.
type PageData struct {
	AppName       string
	Path          string
	Principal     *sessions.Principal
	Authorized    bool
	Member        bool
	Flashes       []string
	ReCaptchaKey  string
	RSVPAccess    config.RSVPAccess
	Data          any
	StatusCode    int
	StatusMessage string
}

// page adapts a PageHandler into an http.Handler: it loads the session,
// maps errors onto results, saves the session and writes the result.
func (s *Server) page(h PageHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, hadCookie := s.loadSession(r)

		res, err := h(r, sess)
		if err != nil {
			res = s.errorResult(r, sess, err)
		}

		switch res := res.(type) {
		case Redirect:
			s.saveSession(w, r, sess, hadCookie)
			http.Redirect(w, r, res.Location, http.StatusFound)
		case ClientError:
			s.writePage(w, r, sess, hadCookie, Render{Template: "error.html", Status: res.Code})
		case Render:
			s.writePage(w, r, sess, hadCookie, res)
		default:
			log.Error().Str("path", r.URL.Path).Msgf("page handler returned %T", res)
			s.writePage(w, r, sess, hadCookie, Render{Template: "error.html", Status: http.StatusInternalServerError})
		}
	})
}

// errorResult maps handler errors to responses. An invalid OAuth state is
// a plain 404, identity failures go back to the login page, and anything
// else is a server error.
func (s *Server) errorResult(r *http.Request, sess *sessions.Session, err error) Result {
	switch {
	case errors.Is(err, errors.ErrInvalidState):
		log.Warn().Str("path", r.URL.Path).Msg("rejected oauth callback with invalid state")
		return ClientError{Code: http.StatusNotFound}
	case errors.Is(err, errors.ErrIdentity):
		log.Err(err).Str("path", r.URL.Path).Msg("login failed")
		sess.Flash(msgLoginFailed)
		return Redirect{Location: RouteLogin}
	case errors.Is(err, errors.ErrStoreUnavailable):
		log.Err(err).Str("path", r.URL.Path).Msg("store unavailable")
	default:
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	return ClientError{Code: http.StatusInternalServerError}
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, sess *sessions.Session, hadCookie bool, res Render) {
	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}

	tmpl, ok := s.pages[res.Template]
	if !ok {
		log.Error().Str("template", res.Template).Msg("unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := PageData{
		AppName:       s.config.GetAppName(),
		Path:          r.URL.Path,
		Principal:     sess.Principal,
		Authorized:    sess.IsAuthorized(),
		Member:        sess.IsMember(),
		Flashes:       sess.TakeFlashes(),
		ReCaptchaKey:  s.config.GetReCaptchaSiteKey(),
		RSVPAccess:    s.config.GetRSVPAccess(),
		Data:          res.Data,
		StatusCode:    status,
		StatusMessage: http.StatusText(status),
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		log.Err(err).Str("template", res.Template).Msg("Failed to render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.saveSession(w, r, sess, hadCookie)
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) notFoundHandler() PageHandler {
	return func(*http.Request, *sessions.Session) (Result, error) {
		return ClientError{Code: http.StatusNotFound}, nil
	}
}

func (s *Server) clientErrorHandler(code int) PageHandler {
	return func(*http.Request, *sessions.Session) (Result, error) {
		return ClientError{Code: code}, nil
	}
}

// Package auth drives the sign-in state machine: it starts a login by
// handing the visitor to the identity provider, completes it on the
// callback by resolving the principal and their membership, and signs
// visitors out.
package auth

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/diplomats-site/identity"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/jrsteele09/diplomats-site/members"
	"github.com/jrsteele09/diplomats-site/sessions"
	"github.com/rs/zerolog/log"
)

// Login outcomes reported to the LoginRecorder.
const (
	OutcomeSuccess         = "success"
	OutcomeAlreadyLoggedIn = "already_logged_in"
	OutcomeInvalidState    = "invalid_state"
	OutcomeIdentityError   = "identity_error"
	OutcomeStoreError      = "store_error"
)

// LoginRecorder counts login attempts by outcome.
type LoginRecorder interface {
	IncLogin(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) IncLogin(string) {}

// Repos holds the repository dependencies for the AuthorizationService.
type Repos struct {
	Members members.Repo
}

type AuthorizationService struct {
	provider identity.Provider
	repos    Repos
	newState func() string
	recorder LoginRecorder
}

// AuthorizationServiceOption defines a function type to modify the AuthorizationService instance.
type AuthorizationServiceOption func(*AuthorizationService)

// WithStateGenerator replaces the random CSRF state source (primarily for testing).
func WithStateGenerator(fn func() string) AuthorizationServiceOption {
	return func(as *AuthorizationService) {
		as.newState = fn
	}
}

func WithLoginRecorder(r LoginRecorder) AuthorizationServiceOption {
	return func(as *AuthorizationService) {
		if r != nil {
			as.recorder = r
		}
	}
}

func NewAuthorizationService(provider identity.Provider, repos Repos, options ...AuthorizationServiceOption) (*AuthorizationService, error) {
	if provider == nil {
		return nil, errors.Wrapf(errors.ErrNotConfigured, "[NewAuthorizationService] identity provider is required")
	}
	if repos.Members == nil {
		return nil, errors.Wrapf(errors.ErrNotConfigured, "[NewAuthorizationService] members repo is required")
	}

	as := &AuthorizationService{
		provider: provider,
		repos:    repos,
		newState: uuid.NewString,
		recorder: nopRecorder{},
	}
	for _, opt := range options {
		opt(as)
	}
	return as, nil
}

// BeginResult tells the caller where to send the visitor.
type BeginResult struct {
	AlreadyLoggedIn bool
	RedirectURL     string
}

// BeginLogin moves an anonymous session to LoginPending with a fresh state
// and returns the provider URL. An authorized session is left untouched.
func (as *AuthorizationService) BeginLogin(sess *sessions.Session) (BeginResult, error) {
	if sess.IsAuthorized() {
		as.recorder.IncLogin(OutcomeAlreadyLoggedIn)
		return BeginResult{AlreadyLoggedIn: true}, nil
	}

	state := as.newState()
	if err := sess.BeginLogin(state); err != nil {
		return BeginResult{}, err
	}
	return BeginResult{RedirectURL: as.provider.AuthCodeURL(state)}, nil
}

// CompleteResult describes a finished callback.
type CompleteResult struct {
	AlreadyLoggedIn bool
	Principal       sessions.Principal
}

// CompleteLogin handles the provider callback. The state check comes first,
// so a replayed callback on an authorized session is still rejected when its
// state does not match. Errors wrap ErrInvalidState, ErrIdentity or
// ErrStoreUnavailable, and on any error the session is left unauthorized.
func (as *AuthorizationService) CompleteLogin(ctx context.Context, sess *sessions.Session, callback url.Values) (CompleteResult, error) {
	if err := sess.ConsumeState(callback.Get("state")); err != nil {
		as.recorder.IncLogin(OutcomeInvalidState)
		return CompleteResult{}, err
	}

	if sess.IsAuthorized() {
		as.recorder.IncLogin(OutcomeAlreadyLoggedIn)
		return CompleteResult{AlreadyLoggedIn: true, Principal: *sess.Principal}, nil
	}

	token, profile, err := as.provider.Authenticate(ctx, callback)
	if err != nil {
		as.recorder.IncLogin(OutcomeIdentityError)
		return CompleteResult{}, errors.Mark(err, errors.ErrIdentity)
	}

	roster, err := as.repos.Members.ListEmails(ctx)
	if err != nil {
		as.recorder.IncLogin(OutcomeStoreError)
		return CompleteResult{}, errors.Mark(err, errors.ErrStoreUnavailable)
	}

	email := members.NormalizeEmail(profile.Email)
	principal := sessions.Principal{
		DisplayName: strings.TrimSpace(profile.DisplayName),
		Email:       email,
		IsMember:    members.IsMember(roster, email),
	}
	if err := sess.Authorize(token.AccessToken, principal); err != nil {
		as.recorder.IncLogin(OutcomeIdentityError)
		return CompleteResult{}, err
	}

	as.recorder.IncLogin(OutcomeSuccess)
	log.Info().Str("email", principal.Email).Bool("member", principal.IsMember).Msg("visitor signed in")
	return CompleteResult{Principal: principal}, nil
}

// Logout clears the session and reports whether anyone was signed in.
// Calling it on an anonymous session is a no-op.
func (as *AuthorizationService) Logout(sess *sessions.Session) bool {
	wasAuthorized := sess.IsAuthorized()
	sess.Clear()
	return wasAuthorized
}

// Greeting returns the name used in the welcome message. Directory names
// come as "Last, First"; the part after the comma is used when present.
func Greeting(displayName string) string {
	if _, first, ok := strings.Cut(displayName, ","); ok && strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	return strings.TrimSpace(displayName)
}

package sessions

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/jrsteele09/diplomats-site/internal/errors"
)

// State is the login state of a visitor's session.
type State int

const (
	Anonymous State = iota
	LoginPending
	Authorized
)

func (s State) String() string {
	switch s {
	case LoginPending:
		return "login_pending"
	case Authorized:
		return "authorized"
	default:
		return "anonymous"
	}
}

// Principal is the authenticated visitor. IsMember is decided once at login
// and is not re-checked for the lifetime of the session.
type Principal struct {
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	IsMember    bool   `json:"member"`
}

// Session is the per-visitor state carried in the signed session cookie.
// Principal and TokenDigest are either both set or both empty.
type Session struct {
	OAuthState string `json:"st,omitempty"`
	// TokenDigest is the hex SHA-256 of the provider access token. The
	// token itself is never stored, so the cookie size does not depend on it.
	TokenDigest string     `json:"td,omitempty"`
	Principal   *Principal `json:"p,omitempty"`
	Flashes     []string   `json:"f,omitempty"`
}

// New returns an empty (anonymous) session.
func New() *Session {
	return &Session{}
}

// IsAuthorized is true iff the session holds both a token digest and a principal.
func (s *Session) IsAuthorized() bool {
	return s != nil && s.TokenDigest != "" && s.Principal != nil
}

// IsMember is true for an authorized session whose principal is on the roster.
func (s *Session) IsMember() bool {
	return s.IsAuthorized() && s.Principal.IsMember
}

func (s *Session) State() State {
	switch {
	case s.IsAuthorized():
		return Authorized
	case s != nil && s.OAuthState != "":
		return LoginPending
	default:
		return Anonymous
	}
}

// BeginLogin records the CSRF state sent to the identity provider,
// replacing any earlier in-flight login.
func (s *Session) BeginLogin(state string) error {
	if state == "" {
		return errors.Wrapf(errors.ErrInvalidState, "begin login")
	}
	s.OAuthState = state
	return nil
}

// ConsumeState checks the state returned on the provider callback against the
// stored one. The stored state is single use: it is cleared whether or not it matched.
func (s *Session) ConsumeState(returned string) error {
	stored := s.OAuthState
	s.OAuthState = ""
	if returned == "" || stored == "" {
		return errors.ErrInvalidState
	}
	if subtle.ConstantTimeCompare([]byte(returned), []byte(stored)) != 1 {
		return errors.ErrInvalidState
	}
	return nil
}

// Authorize moves the session to Authorized. Token and principal are set together.
func (s *Session) Authorize(accessToken string, principal Principal) error {
	if accessToken == "" {
		return errors.Wrapf(errors.ErrIdentity, "authorize: empty access token")
	}
	if principal.Email == "" {
		return errors.Wrapf(errors.ErrIdentity, "authorize: principal has no email")
	}
	s.TokenDigest = DigestToken(accessToken)
	s.Principal = &principal
	s.OAuthState = ""
	return nil
}

// Clear drops everything, including pending flashes.
func (s *Session) Clear() {
	*s = Session{}
}

// Flash queues a message for the next rendered page.
func (s *Session) Flash(msg string) {
	s.Flashes = append(s.Flashes, msg)
}

// TakeFlashes returns the queued messages and empties the queue.
func (s *Session) TakeFlashes() []string {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

// DigestToken returns the fixed-length digest kept in place of an access token.
func DigestToken(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return hex.EncodeToString(sum[:])
}

// Package identity wraps the external OAuth2 authorization-code flow used
// to sign visitors in. A Provider builds the consent URL and, on the
// callback, exchanges the code for an access token and resolves the
// principal's profile.
package identity

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/diplomats-site/internal/errors"
)

// Token is the provider access token kept in the session.
type Token struct {
	AccessToken string
	Expiry      time.Time
}

// Profile is what the provider reports about the signed in visitor.
type Profile struct {
	DisplayName string
	Email       string
}

type Provider interface {
	// AuthCodeURL returns the URL the visitor is sent to, carrying state.
	AuthCodeURL(state string) string
	// Authenticate completes the flow from the callback query.
	Authenticate(ctx context.Context, callback url.Values) (Token, Profile, error)
}

// callbackCode returns the authorization code, or the provider's error
// if the visitor declined consent.
func callbackCode(callback url.Values) (string, error) {
	if e := callback.Get("error"); e != "" {
		desc := callback.Get("error_description")
		return "", errors.Wrapf(errors.ErrIdentity, "provider returned %s: %s", e, desc)
	}
	code := strings.TrimSpace(callback.Get("code"))
	if code == "" {
		return "", errors.Wrapf(errors.ErrIdentity, "callback has no code")
	}
	return code, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

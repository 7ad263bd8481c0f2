package identity

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/diplomats-site/internal/config"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	"golang.org/x/oauth2"
)

// OIDC signs visitors in against any OpenID Connect issuer, discovered
// from its well-known configuration.
type OIDC struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth    *oauth2.Config
	timeout  time.Duration
}

var _ Provider = (*OIDC)(nil)

func NewOIDC(ctx context.Context, cfg config.OAuthConfig) (*OIDC, error) {
	ctx, cancel := withTimeout(ctx, cfg.GetExternalTimeout())
	defer cancel()

	provider, err := oidc.NewProvider(ctx, cfg.GetIssuer())
	if err != nil {
		return nil, errors.Mark(fmt.Errorf("oidc discovery for %s: %w", cfg.GetIssuer(), err), errors.ErrIdentity)
	}

	return &OIDC{
		provider: provider,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.GetClientID()}),
		oauth: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURL(),
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		timeout: cfg.GetExternalTimeout(),
	}, nil
}

func (o *OIDC) AuthCodeURL(state string) string {
	return o.oauth.AuthCodeURL(state)
}

func (o *OIDC) Authenticate(ctx context.Context, callback url.Values) (Token, Profile, error) {
	code, err := callbackCode(callback)
	if err != nil {
		return Token{}, Profile{}, err
	}

	ctx, cancel := withTimeout(ctx, o.timeout)
	defer cancel()

	tok, err := o.oauth.Exchange(ctx, code)
	if err != nil {
		return Token{}, Profile{}, errors.Mark(fmt.Errorf("exchanging code: %w", err), errors.ErrIdentity)
	}

	var claims struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	if rawID, ok := tok.Extra("id_token").(string); ok && rawID != "" {
		idToken, err := o.verifier.Verify(ctx, rawID)
		if err != nil {
			return Token{}, Profile{}, errors.Mark(fmt.Errorf("verifying id token: %w", err), errors.ErrIdentity)
		}
		if err := idToken.Claims(&claims); err != nil {
			return Token{}, Profile{}, errors.Mark(err, errors.ErrIdentity)
		}
	}

	if claims.Email == "" || claims.Name == "" {
		info, err := o.provider.UserInfo(ctx, oauth2.StaticTokenSource(tok))
		if err != nil {
			return Token{}, Profile{}, errors.Mark(fmt.Errorf("userinfo: %w", err), errors.ErrIdentity)
		}
		if err := info.Claims(&claims); err != nil {
			return Token{}, Profile{}, errors.Mark(err, errors.ErrIdentity)
		}
		if claims.Email == "" {
			claims.Email = info.Email
		}
	}

	if claims.Email == "" {
		return Token{}, Profile{}, errors.Wrapf(errors.ErrIdentity, "issuer returned no email")
	}
	return Token{AccessToken: tok.AccessToken, Expiry: tok.Expiry}, Profile{DisplayName: claims.Name, Email: claims.Email}, nil
}

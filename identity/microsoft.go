package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/diplomats-site/internal/config"
	"github.com/jrsteele09/diplomats-site/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const (
	DefaultGraphURL = "https://graph.microsoft.com/v1.0"
	graphScope      = "User.Read"
)

// Microsoft signs visitors in with Azure AD and reads their profile from
// Microsoft Graph.
type Microsoft struct {
	oauth      *oauth2.Config
	graphURL   string
	httpClient *http.Client
	timeout    time.Duration
}

var _ Provider = (*Microsoft)(nil)

type MicrosoftOption func(*Microsoft)

// WithEndpoint replaces the Azure AD endpoints.
func WithEndpoint(ep oauth2.Endpoint) MicrosoftOption {
	return func(m *Microsoft) {
		m.oauth.Endpoint = ep
	}
}

func WithGraphURL(u string) MicrosoftOption {
	return func(m *Microsoft) {
		m.graphURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient sets the client used for the token exchange and Graph calls.
func WithHTTPClient(c *http.Client) MicrosoftOption {
	return func(m *Microsoft) {
		m.httpClient = c
	}
}

func NewMicrosoft(cfg config.OAuthConfig, opts ...MicrosoftOption) *Microsoft {
	m := &Microsoft{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURL(),
			Scopes:       []string{graphScope},
			Endpoint:     microsoft.AzureADEndpoint(cfg.GetAzureTenant()),
		},
		graphURL: DefaultGraphURL,
		timeout:  cfg.GetExternalTimeout(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Microsoft) AuthCodeURL(state string) string {
	return m.oauth.AuthCodeURL(state)
}

func (m *Microsoft) Authenticate(ctx context.Context, callback url.Values) (Token, Profile, error) {
	code, err := callbackCode(callback)
	if err != nil {
		return Token{}, Profile{}, err
	}

	ctx, cancel := withTimeout(ctx, m.timeout)
	defer cancel()
	if m.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	}

	tok, err := m.oauth.Exchange(ctx, code)
	if err != nil {
		return Token{}, Profile{}, errors.Mark(fmt.Errorf("exchanging code: %w", err), errors.ErrIdentity)
	}

	profile, err := m.me(ctx, m.oauth.Client(ctx, tok))
	if err != nil {
		return Token{}, Profile{}, err
	}
	return Token{AccessToken: tok.AccessToken, Expiry: tok.Expiry}, profile, nil
}

type graphUser struct {
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

func (m *Microsoft) me(ctx context.Context, client *http.Client) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.graphURL+"/me", nil)
	if err != nil {
		return Profile{}, errors.Mark(err, errors.ErrIdentity)
	}
	requestID := uuid.NewString()
	req.Header.Set("client-request-id", requestID)
	req.Header.Set("return-client-request-id", "true")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Profile{}, errors.Mark(fmt.Errorf("graph /me: %w", err), errors.ErrIdentity)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Str("client_request_id", requestID).Int("status", resp.StatusCode).Msg("graph profile request rejected")
		return Profile{}, errors.Wrapf(errors.ErrIdentity, "graph /me returned %d", resp.StatusCode)
	}

	var u graphUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return Profile{}, errors.Mark(fmt.Errorf("decoding graph profile: %w", err), errors.ErrIdentity)
	}

	email := u.Mail
	if email == "" {
		email = u.UserPrincipalName
	}
	if email == "" {
		return Profile{}, errors.Wrapf(errors.ErrIdentity, "graph profile has no email")
	}
	return Profile{DisplayName: u.DisplayName, Email: email}, nil
}

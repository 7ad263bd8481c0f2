package config

import "time"

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetAzureTenant() string
	GetIssuer() string
	GetRedirectURL() string
	GetExternalTimeout() time.Duration
}

type OAuth struct {
	ClientID        string        `yaml:"client_id" env:"AZURE_ID"`
	ClientSecret    string        `yaml:"client_secret" env:"AZURE_KEY"`
	AzureTenant     string        `yaml:"azure_tenant" env:"AZURE_TENANT"`
	Issuer          string        `yaml:"issuer" env:"OAUTH_ISSUER"`
	RedirectURL     string        `yaml:"redirect_url" env:"OAUTH_REDIRECT_URL"`
	ExternalTimeout time.Duration `yaml:"external_timeout" env:"EXTERNAL_TIMEOUT"`
}

func (o *OAuth) applyDefaults() {
	if o.AzureTenant == "" {
		o.AzureTenant = "organizations"
	}
	if o.ExternalTimeout == 0 {
		o.ExternalTimeout = 10 * time.Second
	}
}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetClientSecret() string {
	return o.ClientSecret
}

func (o OAuth) GetAzureTenant() string {
	return o.AzureTenant
}

// GetIssuer returns an OpenID Connect issuer. When set, discovery replaces the Microsoft endpoints.
func (o OAuth) GetIssuer() string {
	return o.Issuer
}

func (o OAuth) GetRedirectURL() string {
	return o.RedirectURL
}

// GetExternalTimeout bounds every call to the identity provider, store, mail and calendar services.
func (o OAuth) GetExternalTimeout() time.Duration {
	return o.ExternalTimeout
}

// GetRedirectURL falls back to BASE_URL + /authorize when no explicit redirect URL is configured.
func (s *Settings) GetRedirectURL() string {
	if s.OAuth.RedirectURL != "" {
		return s.OAuth.RedirectURL
	}
	return s.GetBaseURL() + "/authorize"
}

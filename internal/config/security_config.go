package config

import "time"

// RSVPAccess selects who may change attendance on calendar events.
type RSVPAccess string

const (
	RSVPMember        RSVPAccess = "member"
	RSVPAuthenticated RSVPAccess = "authenticated"
	RSVPPublic        RSVPAccess = "public"
)

type SecurityConfig interface {
	GetSecretKey() string
	GetMaxSessionAge() time.Duration
	GetRSVPAccess() RSVPAccess
	GetReCaptchaSiteKey() string
	GetReCaptchaSecret() string
}

type Security struct {
	SecretKey       string        `yaml:"secret_key" env:"SECRET_KEY"`
	MaxSessionAge   time.Duration `yaml:"session_max_age" env:"SESSION_MAX_AGE"`
	RSVPAccess      RSVPAccess    `yaml:"rsvp_access" env:"RSVP_ACCESS"`
	ReCaptchaKey    string        `yaml:"recaptcha_public_key" env:"RECAPTCHA_PUBLIC_KEY"`
	ReCaptchaSecret string        `yaml:"recaptcha_private_key" env:"RECAPTCHA_PRIVATE_KEY"`
}

var _ SecurityConfig = Security{}

func (s *Security) applyDefaults() {
	if s.MaxSessionAge == 0 {
		s.MaxSessionAge = 24 * time.Hour
	}
	if s.RSVPAccess == "" {
		s.RSVPAccess = RSVPMember
	}
}

func (s Security) GetSecretKey() string {
	return s.SecretKey
}

func (s Security) GetMaxSessionAge() time.Duration {
	return s.MaxSessionAge
}

func (s Security) GetRSVPAccess() RSVPAccess {
	return s.RSVPAccess
}

func (s Security) GetReCaptchaSiteKey() string {
	return s.ReCaptchaKey
}

// GetReCaptchaSecret returns the server-side reCAPTCHA key. Verification is skipped when empty.
func (s Security) GetReCaptchaSecret() string {
	return s.ReCaptchaSecret
}

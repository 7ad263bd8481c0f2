package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config interface {
	EnvConfig
	OAuthConfig
	MailConfig
	StoreConfig
	CalendarConfig
	SecurityConfig
	TaskConfig
}

// Settings is the concrete configuration. Values are layered as
// defaults, then the optional YAML file, then environment variables.
type Settings struct {
	EnvVars  `yaml:",inline"`
	OAuth    `yaml:"oauth"`
	Mail     `yaml:"mail"`
	Store    `yaml:"store"`
	Calendar `yaml:"calendar"`
	Security `yaml:"security"`
	Tasks    `yaml:"tasks"`
}

var _ Config = (*Settings)(nil)

// Load reads the YAML file at path (if any), applies environment
// overrides and fills in defaults for anything left unset.
func Load(path string) (*Settings, error) {
	s := &Settings{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), s); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	s.applyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// New loads configuration from the environment only.
func New() (*Settings, error) {
	return Load("")
}

func (s *Settings) applyDefaults() {
	s.EnvVars.applyDefaults()
	s.OAuth.applyDefaults()
	s.Mail.applyDefaults()
	s.Store.applyDefaults()
	s.Calendar.applyDefaults()
	s.Security.applyDefaults()
	s.Tasks.applyDefaults()
}

// Validate reports configuration that would leave the service unusable.
func (s *Settings) Validate() error {
	if !s.GetMock() && s.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required unless MOCK is enabled")
	}
	switch s.GetRSVPAccess() {
	case RSVPMember, RSVPAuthenticated, RSVPPublic:
	default:
		return fmt.Errorf("unknown RSVP_ACCESS %q", s.RSVPAccess)
	}
	return nil
}

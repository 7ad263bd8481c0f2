package config

import (
	"fmt"
	"strings"
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	GetLogLevel() string
	GetMock() bool
}

type EnvVars struct {
	Port     string `yaml:"port" env:"PORT"`
	AppName  string `yaml:"app_name" env:"APP_NAME"`
	Env      string `yaml:"env" env:"ENV"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	Mock     bool   `yaml:"mock" env:"MOCK"`
}

var _ EnvConfig = EnvVars{}

func (e *EnvVars) applyDefaults() {
	if e.Port == "" {
		e.Port = "8080"
	}
	if e.AppName == "" {
		e.AppName = "Engineering Diplomats"
	}
	if e.Env == "" {
		e.Env = "DEV"
	}
	if e.BaseURL == "" {
		e.BaseURL = "http://localhost:8080"
	}
	if e.LogLevel == "" {
		e.LogLevel = "info"
		if e.Env == "DEV" {
			e.LogLevel = "debug"
		}
	}
}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "8080"
	}
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

// GetBaseURL returns the externally visible base URL (e.g. "https://engineeringdiplomats.org").
// The OAuth redirect URI is derived from it.
func (e EnvVars) GetBaseURL() string {
	return strings.TrimSuffix(e.BaseURL, "/")
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

// GetMock reports whether external identity and calendar APIs are replaced by deterministic fakes.
func (e EnvVars) GetMock() bool {
	return e.Mock
}

package config

import "time"

type TaskConfig interface {
	GetTaskTimeout() time.Duration
	GetTaskMaxConcurrent() int
}

type Tasks struct {
	Timeout       time.Duration `yaml:"timeout" env:"TASK_TIMEOUT"`
	MaxConcurrent int           `yaml:"max_concurrent" env:"TASK_MAX_CONCURRENT"`
}

var _ TaskConfig = Tasks{}

func (t *Tasks) applyDefaults() {
	if t.Timeout == 0 {
		t.Timeout = 2 * time.Minute
	}
}

func (t Tasks) GetTaskTimeout() time.Duration {
	return t.Timeout
}

// GetTaskMaxConcurrent caps concurrently running background tasks. Zero means unbounded.
func (t Tasks) GetTaskMaxConcurrent() int {
	return t.MaxConcurrent
}

package app

import (
	"errors"
	"fmt"
)

// Config holds the runtime settings of an App, as opposed to the run
// description in config.Model.
type Config struct {
	ConfigPath string // .hcl/.yaml file or directory

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("WorkerCount must be positive, got %d", cfg.WorkerCount)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("HealthcheckPort must be in [0, 65535], got %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
